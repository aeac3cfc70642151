package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// TransactionDetailResponse una línea de comprobante.
type TransactionDetailResponse struct {
	ID          int64           `json:"id"`
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

// TransactionResponse cabecera de comprobante con sus líneas.
type TransactionResponse struct {
	ID          int64                       `json:"id"`
	Type        string                      `json:"type"`
	Note        string                      `json:"note,omitempty"`
	TotalValue  decimal.Decimal             `json:"total_value"`
	CreatedBy   int64                       `json:"created_by"`
	DateCreated time.Time                   `json:"date_created"`
	Details     []TransactionDetailResponse `json:"details,omitempty"`
}

// UpdateDetailRequest body para PUT /api/transactions/:id/details/:detailId.
type UpdateDetailRequest struct {
	Quantity  int64           `json:"quantity" validate:"required,gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// ToTransactionResponse mapea la entidad a su DTO de salida.
func ToTransactionResponse(t *entity.StockTransaction) TransactionResponse {
	out := TransactionResponse{
		ID:          t.ID,
		Type:        t.Type,
		Note:        t.Note,
		TotalValue:  t.TotalValue,
		CreatedBy:   t.CreatedBy,
		DateCreated: t.DateCreated,
	}
	for _, d := range t.Details {
		out.Details = append(out.Details, TransactionDetailResponse{
			ID:          d.ID,
			ProductID:   d.ProductID,
			ProductName: d.ProductName,
			Quantity:    d.Quantity,
			UnitPrice:   d.UnitPrice,
			TotalPrice:  d.TotalPrice(),
		})
	}
	return out
}

// ToTransactionResponses mapea una lista de comprobantes.
func ToTransactionResponses(list []*entity.StockTransaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(list))
	for _, t := range list {
		out = append(out, ToTransactionResponse(t))
	}
	return out
}
