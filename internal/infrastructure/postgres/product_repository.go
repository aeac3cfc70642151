package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = "id, name, category_id, price, quantity, min_threshold, inventory_value, visible, created_at, updated_at"

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL
// (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto y devuelve su ID.
func (r *ProductRepo) Create(product *entity.Product) (int64, error) {
	query := `
		INSERT INTO products (name, category_id, price, quantity, min_threshold, inventory_value, visible, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
		RETURNING id`
	var id int64
	err := r.q.QueryRow(context.Background(), query,
		product.Name, product.CategoryID, product.Price, product.Quantity,
		product.MinThreshold, product.InventoryValue, product.Visible,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create product: %w", err)
	}
	return id, nil
}

// GetByID obtiene un producto por ID; incluye filas con Visible=false.
func (r *ProductRepo) GetByID(id int64) (*entity.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE id = $1`, productColumns)
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get product")
}

// GetByIDForUpdate obtiene el producto y bloquea la fila (SELECT FOR UPDATE).
func (r *ProductRepo) GetByIDForUpdate(id int64) (*entity.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE id = $1 FOR UPDATE`, productColumns)
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get product for update")
}

// Update persiste los campos editables del producto.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, category_id = $3, price = $4, min_threshold = $5, inventory_value = $6, updated_at = now()
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.CategoryID, product.Price,
		product.MinThreshold, product.InventoryValue,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// UpdateQuantity fija cantidad y valor de inventario en una sola escritura.
func (r *ProductRepo) UpdateQuantity(id int64, quantity int64, inventoryValue decimal.Decimal) error {
	query := `
		UPDATE products SET quantity = $2, inventory_value = $3, updated_at = now()
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, quantity, inventoryValue)
	if err != nil {
		return fmt.Errorf("update quantity: %w", err)
	}
	return nil
}

// List lista productos visibles.
func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM products WHERE visible
		ORDER BY name LIMIT $1 OFFSET $2`, productColumns)
	return r.scanMany(query, "list products", limit, offset)
}

// SearchByName lista productos visibles cuyo nombre contiene name.
func (r *ProductRepo) SearchByName(name string, limit, offset int) ([]*entity.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM products
		WHERE visible AND name ILIKE '%%' || $1 || '%%'
		ORDER BY name LIMIT $2 OFFSET $3`, productColumns)
	return r.scanMany(query, "search products", name, limit, offset)
}

// ListLowStock productos visibles con quantity <= min_threshold.
func (r *ProductRepo) ListLowStock() ([]*entity.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM products
		WHERE visible AND quantity <= min_threshold
		ORDER BY quantity, name`, productColumns)
	return r.scanMany(query, "list low stock")
}

// TotalInventoryValue suma de inventory_value de los productos visibles.
func (r *ProductRepo) TotalInventoryValue() (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(inventory_value), 0) FROM products WHERE visible`
	var total decimal.Decimal
	if err := r.q.QueryRow(context.Background(), query).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("total inventory value: %w", err)
	}
	return total, nil
}

// ExistsVisibleByCategory indica si algún producto visible referencia la categoría.
func (r *ProductRepo) ExistsVisibleByCategory(categoryID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM products WHERE visible AND category_id = $1)`
	var exists bool
	if err := r.q.QueryRow(context.Background(), query, categoryID).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists by category: %w", err)
	}
	return exists, nil
}

// SetVisible oculta o restaura el producto (borrado suave).
func (r *ProductRepo) SetVisible(id int64, visible bool) error {
	query := `UPDATE products SET visible = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, visible)
	if err != nil {
		return fmt.Errorf("set visible: %w", err)
	}
	return nil
}

// HardDelete elimina físicamente la fila.
func (r *ProductRepo) HardDelete(id int64) error {
	query := `DELETE FROM products WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func (r *ProductRepo) scanOne(row pgx.Row, op string) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.Name, &p.CategoryID, &p.Price, &p.Quantity,
		&p.MinThreshold, &p.InventoryValue, &p.Visible, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &p, nil
}

func (r *ProductRepo) scanMany(query, op string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.CategoryID, &p.Price, &p.Quantity,
			&p.MinThreshold, &p.InventoryValue, &p.Visible, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
