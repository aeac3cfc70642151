package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación sobre PostgreSQL (usable con pool o tx).
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// Create persiste una nueva categoría y devuelve su ID.
func (r *CategoryRepo) Create(category *entity.Category) (int64, error) {
	query := `
		INSERT INTO categories (name, description, visible, created_at, updated_at)
		VALUES ($1, $2, $3, now(), now())
		RETURNING id`
	var id int64
	err := r.q.QueryRow(context.Background(), query, category.Name, category.Description, category.Visible).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create category: %w", err)
	}
	return id, nil
}

// GetByID obtiene una categoría por ID; incluye filas con Visible=false.
func (r *CategoryRepo) GetByID(id int64) (*entity.Category, error) {
	query := `
		SELECT id, name, description, visible, created_at, updated_at
		FROM categories WHERE id = $1`
	var c entity.Category
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.Name, &c.Description, &c.Visible, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

// Update persiste nombre y descripción.
func (r *CategoryRepo) Update(category *entity.Category) error {
	query := `UPDATE categories SET name = $2, description = $3, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, category.ID, category.Name, category.Description)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

// List lista categorías visibles.
func (r *CategoryRepo) List(limit, offset int) ([]*entity.Category, error) {
	query := `
		SELECT id, name, description, visible, created_at, updated_at
		FROM categories WHERE visible
		ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Visible, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// SetVisible oculta o restaura la categoría (borrado suave).
func (r *CategoryRepo) SetVisible(id int64, visible bool) error {
	query := `UPDATE categories SET visible = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, visible)
	if err != nil {
		return fmt.Errorf("set category visible: %w", err)
	}
	return nil
}

// HardDelete elimina físicamente la fila.
func (r *CategoryRepo) HardDelete(id int64) error {
	query := `DELETE FROM categories WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
