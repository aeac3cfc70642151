package dto

import "github.com/shopspring/decimal"

// StockMovementRequest body para POST /api/inventory/imports y /api/inventory/exports.
type StockMovementRequest struct {
	ProductID int64           `json:"product_id" validate:"required,gt=0"`
	Quantity  int64           `json:"quantity" validate:"required,gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Note      string          `json:"note" validate:"max=500"`
}

// BatchLineRequest una línea de un comprobante por lote.
type BatchLineRequest struct {
	ProductID int64           `json:"product_id" validate:"required,gt=0"`
	Quantity  int64           `json:"quantity" validate:"required,gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// BatchMovementRequest body para POST /api/inventory/imports/batch y /exports/batch.
// Todas las líneas se aplican en una sola transacción: o entran todas o ninguna.
type BatchMovementRequest struct {
	Lines []BatchLineRequest `json:"lines" validate:"required,min=1,max=100,dive"`
	Note  string             `json:"note" validate:"max=500"`
}

// StockMovementResponse resultado de un movimiento unitario.
type StockMovementResponse struct {
	TransactionID    int64           `json:"transaction_id"`
	ProductID        int64           `json:"product_id"`
	PreviousQuantity int64           `json:"previous_quantity"`
	NewQuantity      int64           `json:"new_quantity"`
	PreviousValue    decimal.Decimal `json:"previous_value"`
	NewValue         decimal.Decimal `json:"new_value"`
}

// BatchMovementResponse resultado de un movimiento por lote.
type BatchMovementResponse struct {
	TransactionID int64                   `json:"transaction_id"`
	Lines         []StockMovementResponse `json:"lines"`
}

// UndoResponse resultado de POST /api/inventory/undo.
// Reverted=false (sin error) significa que no había nada que deshacer.
type UndoResponse struct {
	Reverted    bool   `json:"reverted"`
	Description string `json:"description,omitempty"`
}

// DeleteProductResponse resultado de DELETE /api/products/:id.
// Mode indica si el borrado fue lógico ("soft") o físico ("hard");
// el servidor lo decide según el historial, nunca el cliente.
type DeleteProductResponse struct {
	Mode string `json:"mode"`
}

// InventoryValueResponse valor total del inventario visible.
type InventoryValueResponse struct {
	TotalValue decimal.Decimal `json:"total_value"`
}
