package repository

import (
	"time"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// ActionLogRepository define el puerto de persistencia para el diario de
// auditoría (DIP). Las entradas nunca se editan: solo se agregan, se sellan
// (Visible=false) o se purgan por antigüedad.
type ActionLogRepository interface {
	Append(log *entity.ActionLog) (int64, error)
	GetByID(id int64) (*entity.ActionLog, error)
	// MostRecentUndoable devuelve la entrada más reciente con Visible=true y
	// ActionType != UNDO_ACTION, o nil si no hay ninguna.
	MostRecentUndoable() (*entity.ActionLog, error)
	// MostRecentUndoableForUpdate igual que MostRecentUndoable pero bloquea
	// la fila (SELECT FOR UPDATE) dentro de la transacción en curso.
	MostRecentUndoableForUpdate() (*entity.ActionLog, error)
	// Seal marca la entrada como consumida (Visible=false).
	Seal(id int64) error
	List(limit, offset int) ([]*entity.ActionLog, error)
	ListByType(actionType string, limit, offset int) ([]*entity.ActionLog, error)
	ListByDateRange(from, to time.Time, limit, offset int) ([]*entity.ActionLog, error)
	Count() (int64, error)
	// PurgeOlderThan elimina físicamente entradas con más de days días.
	// Es mantenimiento, independiente del mecanismo de undo.
	PurgeOlderThan(days int) (int64, error)
}
