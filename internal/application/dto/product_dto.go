package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	CategoryID   int64           `json:"category_id" validate:"min=0"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int64           `json:"quantity" validate:"min=0"`
	MinThreshold int64           `json:"min_threshold" validate:"min=0"`
}

// UpdateProductRequest entrada para editar un producto (sin Quantity:
// la cantidad solo cambia vía movimientos de inventario).
type UpdateProductRequest struct {
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	CategoryID   int64           `json:"category_id" validate:"min=0"`
	Price        decimal.Decimal `json:"price"`
	MinThreshold int64           `json:"min_threshold" validate:"min=0"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	CategoryID     int64           `json:"category_id,omitempty"`
	Price          decimal.Decimal `json:"price"`
	Quantity       int64           `json:"quantity"`
	MinThreshold   int64           `json:"min_threshold"`
	InventoryValue decimal.Decimal `json:"inventory_value"`
	LowStock       bool            `json:"low_stock"`
	Visible        bool            `json:"visible"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ToProductResponse mapea la entidad a su DTO de salida.
func ToProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:             p.ID,
		Name:           p.Name,
		CategoryID:     p.CategoryID,
		Price:          p.Price,
		Quantity:       p.Quantity,
		MinThreshold:   p.MinThreshold,
		InventoryValue: p.InventoryValue,
		LowStock:       p.IsLowStock(),
		Visible:        p.Visible,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

// ToProductResponses mapea una lista de entidades.
func ToProductResponses(list []*entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, ToProductResponse(p))
	}
	return out
}
