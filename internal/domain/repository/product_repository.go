package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID devuelve también filas con Visible=false (borradas suavemente);
// los listados filtran por Visible=true.
type ProductRepository interface {
	Create(product *entity.Product) (int64, error)
	GetByID(id int64) (*entity.Product, error)
	// GetByIDForUpdate bloquea la fila (SELECT FOR UPDATE) dentro de la
	// transacción en curso; solo tiene sentido vía TxRunner.
	GetByIDForUpdate(id int64) (*entity.Product, error)
	Update(product *entity.Product) error
	// UpdateQuantity fija cantidad y valor de inventario en una sola escritura.
	UpdateQuantity(id int64, quantity int64, inventoryValue decimal.Decimal) error
	List(limit, offset int) ([]*entity.Product, error)
	SearchByName(name string, limit, offset int) ([]*entity.Product, error)
	ListLowStock() ([]*entity.Product, error)
	TotalInventoryValue() (decimal.Decimal, error)
	ExistsVisibleByCategory(categoryID int64) (bool, error)
	SetVisible(id int64, visible bool) error
	HardDelete(id int64) error
}
