package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de comprobante de inventario.
const (
	TransactionTypeImport = "Import"
	TransactionTypeExport = "Export"
)

// StockTransaction representa un comprobante de entrada o salida de almacén.
// Los detalles conservan el orden de inserción (orden de línea).
type StockTransaction struct {
	ID          int64
	Type        string // Import | Export
	Note        string
	TotalValue  decimal.Decimal
	CreatedBy   int64
	DateCreated time.Time
	Details     []*TransactionDetail
}

// IsImport indica si el comprobante es de entrada.
func (t *StockTransaction) IsImport() bool {
	return t.Type == TransactionTypeImport
}

// TransactionDetail es una línea de un comprobante. ProductName es una copia
// puntual del nombre al momento de la operación; no se sincroniza con
// renombres posteriores del producto.
type TransactionDetail struct {
	ID            int64
	TransactionID int64
	ProductID     int64
	ProductName   string
	Quantity      int64
	UnitPrice     decimal.Decimal
}

// TotalPrice valor de la línea (Quantity × UnitPrice).
func (d *TransactionDetail) TotalPrice() decimal.Decimal {
	return decimal.NewFromInt(d.Quantity).Mul(d.UnitPrice)
}
