package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del almacén.
// Quantity es el stock actual (entero, nunca negativo) e InventoryValue es
// un valor derivado (Quantity × Price) que se recalcula en cada mutación.
// Visible implementa borrado suave: un producto con historial nunca se
// elimina físicamente.
type Product struct {
	ID             int64
	Name           string
	CategoryID     int64
	Price          decimal.Decimal
	Quantity       int64
	MinThreshold   int64
	InventoryValue decimal.Decimal
	Visible        bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsLowStock indica si el producto está en alerta de stock bajo
// (Quantity ≤ MinThreshold).
func (p *Product) IsLowStock() bool {
	return p.Quantity <= p.MinThreshold
}

// ComputeInventoryValue calcula Quantity × Price.
func ComputeInventoryValue(quantity int64, price decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(quantity).Mul(price)
}
