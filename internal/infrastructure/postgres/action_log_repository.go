package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/internal/domain/undo"
)

var _ repository.ActionLogRepository = (*ActionLogRepo)(nil)

// ActionLogRepo implementación sobre PostgreSQL (usable con pool o tx).
type ActionLogRepo struct {
	q Querier
}

// NewActionLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewActionLogRepository(q Querier) *ActionLogRepo {
	return &ActionLogRepo{q: q}
}

// Append persiste una nueva entrada. DataBefore se normaliza: nunca NULL ni
// texto en blanco, siempre al menos el objeto vacío.
func (r *ActionLogRepo) Append(log *entity.ActionLog) (int64, error) {
	createdAt := log.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	query := `
		INSERT INTO action_logs (action_type, descriptions, data_before, visible, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	var id int64
	err := r.q.QueryRow(context.Background(), query,
		log.ActionType, log.Descriptions, undo.Normalize(log.DataBefore), log.Visible, createdAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("append action log: %w", err)
	}
	log.ID = id
	return id, nil
}

// GetByID obtiene una entrada por ID.
func (r *ActionLogRepo) GetByID(id int64) (*entity.ActionLog, error) {
	query := `
		SELECT id, action_type, descriptions, data_before, visible, created_at
		FROM action_logs WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get action log")
}

// MostRecentUndoable entrada más reciente con Visible=true y
// ActionType != UNDO_ACTION, o nil.
func (r *ActionLogRepo) MostRecentUndoable() (*entity.ActionLog, error) {
	query := `
		SELECT id, action_type, descriptions, data_before, visible, created_at
		FROM action_logs
		WHERE visible AND action_type <> $1
		ORDER BY id DESC LIMIT 1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, entity.ActionUndo), "most recent undoable")
}

// MostRecentUndoableForUpdate igual que MostRecentUndoable con bloqueo de fila.
func (r *ActionLogRepo) MostRecentUndoableForUpdate() (*entity.ActionLog, error) {
	query := `
		SELECT id, action_type, descriptions, data_before, visible, created_at
		FROM action_logs
		WHERE visible AND action_type <> $1
		ORDER BY id DESC LIMIT 1
		FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, entity.ActionUndo), "most recent undoable for update")
}

// Seal marca la entrada como consumida (Visible=false).
func (r *ActionLogRepo) Seal(id int64) error {
	query := `UPDATE action_logs SET visible = FALSE WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		return fmt.Errorf("seal action log: %w", err)
	}
	return nil
}

// List lista entradas, más recientes primero.
func (r *ActionLogRepo) List(limit, offset int) ([]*entity.ActionLog, error) {
	query := `
		SELECT id, action_type, descriptions, data_before, visible, created_at
		FROM action_logs
		ORDER BY id DESC LIMIT $1 OFFSET $2`
	return r.scanMany(query, "list action logs", limit, offset)
}

// ListByType lista entradas de un tipo de acción.
func (r *ActionLogRepo) ListByType(actionType string, limit, offset int) ([]*entity.ActionLog, error) {
	query := `
		SELECT id, action_type, descriptions, data_before, visible, created_at
		FROM action_logs WHERE action_type = $1
		ORDER BY id DESC LIMIT $2 OFFSET $3`
	return r.scanMany(query, "list by type", actionType, limit, offset)
}

// ListByDateRange lista entradas dentro de un rango de fechas.
func (r *ActionLogRepo) ListByDateRange(from, to time.Time, limit, offset int) ([]*entity.ActionLog, error) {
	query := `
		SELECT id, action_type, descriptions, data_before, visible, created_at
		FROM action_logs WHERE created_at >= $1 AND created_at <= $2
		ORDER BY id DESC LIMIT $3 OFFSET $4`
	return r.scanMany(query, "list by date range", from, to, limit, offset)
}

// Count total de entradas.
func (r *ActionLogRepo) Count() (int64, error) {
	var n int64
	if err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM action_logs`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count action logs: %w", err)
	}
	return n, nil
}

// PurgeOlderThan elimina físicamente entradas con más de days días y
// devuelve cuántas se eliminaron.
func (r *ActionLogRepo) PurgeOlderThan(days int) (int64, error) {
	query := `DELETE FROM action_logs WHERE created_at < now() - make_interval(days => $1)`
	tag, err := r.q.Exec(context.Background(), query, days)
	if err != nil {
		return 0, fmt.Errorf("purge action logs: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *ActionLogRepo) scanOne(row pgx.Row, op string) (*entity.ActionLog, error) {
	var l entity.ActionLog
	err := row.Scan(&l.ID, &l.ActionType, &l.Descriptions, &l.DataBefore, &l.Visible, &l.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &l, nil
}

func (r *ActionLogRepo) scanMany(query, op string, args ...any) ([]*entity.ActionLog, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	var list []*entity.ActionLog
	for rows.Next() {
		var l entity.ActionLog
		if err := rows.Scan(&l.ID, &l.ActionType, &l.Descriptions, &l.DataBefore, &l.Visible, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan action log: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
