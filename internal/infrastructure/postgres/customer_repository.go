package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación sobre PostgreSQL (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// Create persiste un nuevo cliente y devuelve su ID.
func (r *CustomerRepo) Create(customer *entity.Customer) (int64, error) {
	query := `
		INSERT INTO customers (name, phone, address, visible, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())
		RETURNING id`
	var id int64
	err := r.q.QueryRow(context.Background(), query, customer.Name, customer.Phone, customer.Address, customer.Visible).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create customer: %w", err)
	}
	return id, nil
}

// GetByID obtiene un cliente por ID.
func (r *CustomerRepo) GetByID(id int64) (*entity.Customer, error) {
	query := `
		SELECT id, name, phone, address, visible, created_at, updated_at
		FROM customers WHERE id = $1`
	var c entity.Customer
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.Name, &c.Phone, &c.Address, &c.Visible, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return &c, nil
}

// Update persiste los campos editables.
func (r *CustomerRepo) Update(customer *entity.Customer) error {
	query := `UPDATE customers SET name = $2, phone = $3, address = $4, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, customer.ID, customer.Name, customer.Phone, customer.Address)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	return nil
}

// List lista clientes visibles.
func (r *CustomerRepo) List(limit, offset int) ([]*entity.Customer, error) {
	query := `
		SELECT id, name, phone, address, visible, created_at, updated_at
		FROM customers WHERE visible
		ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Customer
	for rows.Next() {
		var c entity.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Address, &c.Visible, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// SetVisible oculta o restaura el cliente (borrado suave).
func (r *CustomerRepo) SetVisible(id int64, visible bool) error {
	query := `UPDATE customers SET visible = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, visible)
	if err != nil {
		return fmt.Errorf("set customer visible: %w", err)
	}
	return nil
}
