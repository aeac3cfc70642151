package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.StockTransactionRepository = (*StockTransactionRepo)(nil)

// StockTransactionRepo implementación sobre PostgreSQL (usable con pool o tx).
type StockTransactionRepo struct {
	q Querier
}

// NewStockTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockTransactionRepository(q Querier) *StockTransactionRepo {
	return &StockTransactionRepo{q: q}
}

// CreateTransaction persiste la cabecera de un comprobante y devuelve su ID.
func (r *StockTransactionRepo) CreateTransaction(t *entity.StockTransaction) (int64, error) {
	query := `
		INSERT INTO stock_transactions (type, note, total_value, created_by, date_created)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	dateCreated := t.DateCreated
	if dateCreated.IsZero() {
		dateCreated = time.Now()
	}
	var id int64
	err := r.q.QueryRow(context.Background(), query,
		t.Type, t.Note, t.TotalValue, t.CreatedBy, dateCreated,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create transaction: %w", err)
	}
	t.ID = id
	return id, nil
}

// AddDetail persiste una línea del comprobante y devuelve su ID.
func (r *StockTransactionRepo) AddDetail(d *entity.TransactionDetail) (int64, error) {
	query := `
		INSERT INTO transaction_details (transaction_id, product_id, product_name, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	var id int64
	err := r.q.QueryRow(context.Background(), query,
		d.TransactionID, d.ProductID, d.ProductName, d.Quantity, d.UnitPrice,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("add detail: %w", err)
	}
	d.ID = id
	return id, nil
}

// GetByID obtiene el comprobante con sus detalles en orden de línea.
func (r *StockTransactionRepo) GetByID(id int64) (*entity.StockTransaction, error) {
	query := `
		SELECT id, type, note, total_value, created_by, date_created
		FROM stock_transactions WHERE id = $1`
	var t entity.StockTransaction
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&t.ID, &t.Type, &t.Note, &t.TotalValue, &t.CreatedBy, &t.DateCreated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}

	detailQuery := `
		SELECT id, transaction_id, product_id, product_name, quantity, unit_price
		FROM transaction_details WHERE transaction_id = $1
		ORDER BY id`
	rows, err := r.q.Query(context.Background(), detailQuery, id)
	if err != nil {
		return nil, fmt.Errorf("get details: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var d entity.TransactionDetail
		if err := rows.Scan(&d.ID, &d.TransactionID, &d.ProductID, &d.ProductName, &d.Quantity, &d.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan detail: %w", err)
		}
		t.Details = append(t.Details, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &t, nil
}

// List lista comprobantes (cabeceras, sin detalles), más recientes primero.
func (r *StockTransactionRepo) List(limit, offset int) ([]*entity.StockTransaction, error) {
	query := `
		SELECT id, type, note, total_value, created_by, date_created
		FROM stock_transactions
		ORDER BY date_created DESC, id DESC LIMIT $1 OFFSET $2`
	return r.scanMany(query, "list transactions", limit, offset)
}

// ListByType lista comprobantes de un tipo.
func (r *StockTransactionRepo) ListByType(txType string, limit, offset int) ([]*entity.StockTransaction, error) {
	query := `
		SELECT id, type, note, total_value, created_by, date_created
		FROM stock_transactions WHERE type = $1
		ORDER BY date_created DESC, id DESC LIMIT $2 OFFSET $3`
	return r.scanMany(query, "list by type", txType, limit, offset)
}

// ListByDateRange lista comprobantes dentro de un rango de fechas.
func (r *StockTransactionRepo) ListByDateRange(from, to time.Time, limit, offset int) ([]*entity.StockTransaction, error) {
	query := `
		SELECT id, type, note, total_value, created_by, date_created
		FROM stock_transactions WHERE date_created >= $1 AND date_created <= $2
		ORDER BY date_created DESC, id DESC LIMIT $3 OFFSET $4`
	return r.scanMany(query, "list by date range", from, to, limit, offset)
}

// UpdateTotalValue recalcula el total del comprobante desde sus líneas.
func (r *StockTransactionRepo) UpdateTotalValue(transactionID int64) error {
	query := `
		UPDATE stock_transactions
		SET total_value = (
			SELECT COALESCE(SUM(quantity * unit_price), 0)
			FROM transaction_details WHERE transaction_id = $1
		)
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, transactionID)
	if err != nil {
		return fmt.Errorf("update total value: %w", err)
	}
	return nil
}

// GetDetailByID obtiene una línea por ID.
func (r *StockTransactionRepo) GetDetailByID(detailID int64) (*entity.TransactionDetail, error) {
	query := `
		SELECT id, transaction_id, product_id, product_name, quantity, unit_price
		FROM transaction_details WHERE id = $1`
	var d entity.TransactionDetail
	err := r.q.QueryRow(context.Background(), query, detailID).Scan(
		&d.ID, &d.TransactionID, &d.ProductID, &d.ProductName, &d.Quantity, &d.UnitPrice,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get detail: %w", err)
	}
	return &d, nil
}

// UpdateDetail persiste cantidad y precio de una línea.
func (r *StockTransactionRepo) UpdateDetail(d *entity.TransactionDetail) error {
	query := `UPDATE transaction_details SET quantity = $2, unit_price = $3 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, d.ID, d.Quantity, d.UnitPrice)
	if err != nil {
		return fmt.Errorf("update detail: %w", err)
	}
	return nil
}

// RemoveDetail elimina una línea.
func (r *StockTransactionRepo) RemoveDetail(detailID int64) error {
	query := `DELETE FROM transaction_details WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, detailID)
	if err != nil {
		return fmt.Errorf("remove detail: %w", err)
	}
	return nil
}

// HasDetailsForProduct indica si el producto aparece en alguna línea existente.
func (r *StockTransactionRepo) HasDetailsForProduct(productID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM transaction_details WHERE product_id = $1)`
	var exists bool
	if err := r.q.QueryRow(context.Background(), query, productID).Scan(&exists); err != nil {
		return false, fmt.Errorf("has details for product: %w", err)
	}
	return exists, nil
}

func (r *StockTransactionRepo) scanMany(query, op string, args ...any) ([]*entity.StockTransaction, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	var list []*entity.StockTransaction
	for rows.Next() {
		var t entity.StockTransaction
		if err := rows.Scan(&t.ID, &t.Type, &t.Note, &t.TotalValue, &t.CreatedBy, &t.DateCreated); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
