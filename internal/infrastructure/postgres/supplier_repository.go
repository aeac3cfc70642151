package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo implementación sobre PostgreSQL (usable con pool o tx).
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

// Create persiste un nuevo proveedor y devuelve su ID.
func (r *SupplierRepo) Create(supplier *entity.Supplier) (int64, error) {
	query := `
		INSERT INTO suppliers (name, phone, address, visible, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())
		RETURNING id`
	var id int64
	err := r.q.QueryRow(context.Background(), query, supplier.Name, supplier.Phone, supplier.Address, supplier.Visible).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create supplier: %w", err)
	}
	return id, nil
}

// GetByID obtiene un proveedor por ID.
func (r *SupplierRepo) GetByID(id int64) (*entity.Supplier, error) {
	query := `
		SELECT id, name, phone, address, visible, created_at, updated_at
		FROM suppliers WHERE id = $1`
	var s entity.Supplier
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.Name, &s.Phone, &s.Address, &s.Visible, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return &s, nil
}

// Update persiste los campos editables.
func (r *SupplierRepo) Update(supplier *entity.Supplier) error {
	query := `UPDATE suppliers SET name = $2, phone = $3, address = $4, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, supplier.ID, supplier.Name, supplier.Phone, supplier.Address)
	if err != nil {
		return fmt.Errorf("update supplier: %w", err)
	}
	return nil
}

// List lista proveedores visibles.
func (r *SupplierRepo) List(limit, offset int) ([]*entity.Supplier, error) {
	query := `
		SELECT id, name, phone, address, visible, created_at, updated_at
		FROM suppliers WHERE visible
		ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Supplier
	for rows.Next() {
		var s entity.Supplier
		if err := rows.Scan(&s.ID, &s.Name, &s.Phone, &s.Address, &s.Visible, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// SetVisible oculta o restaura el proveedor (borrado suave).
func (r *SupplierRepo) SetVisible(id int64, visible bool) error {
	query := `UPDATE suppliers SET visible = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, visible)
	if err != nil {
		return fmt.Errorf("set supplier visible: %w", err)
	}
	return nil
}
