package dto

import (
	"time"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// CategoryRequest entrada para crear/editar una categoría.
type CategoryRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"max=500"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Visible     bool      `json:"visible"`
	CreatedAt   time.Time `json:"created_at"`
}

// DeleteCategoryResponse resultado de DELETE /api/categories/:id.
type DeleteCategoryResponse struct {
	Mode string `json:"mode"`
}

// PartyRequest entrada para crear/editar un proveedor o cliente.
type PartyRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Phone   string `json:"phone" validate:"max=50"`
	Address string `json:"address" validate:"max=300"`
}

// PartyResponse salida de un proveedor o cliente.
type PartyResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	Visible   bool      `json:"visible"`
	CreatedAt time.Time `json:"created_at"`
}

// ToCategoryResponse mapea la entidad a su DTO de salida.
func ToCategoryResponse(c *entity.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name, Description: c.Description, Visible: c.Visible, CreatedAt: c.CreatedAt}
}

// ToCategoryResponses mapea una lista de categorías.
func ToCategoryResponses(list []*entity.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, ToCategoryResponse(c))
	}
	return out
}

// ToSupplierResponse mapea la entidad a su DTO de salida.
func ToSupplierResponse(s *entity.Supplier) PartyResponse {
	return PartyResponse{ID: s.ID, Name: s.Name, Phone: s.Phone, Address: s.Address, Visible: s.Visible, CreatedAt: s.CreatedAt}
}

// ToSupplierResponses mapea una lista de proveedores.
func ToSupplierResponses(list []*entity.Supplier) []PartyResponse {
	out := make([]PartyResponse, 0, len(list))
	for _, s := range list {
		out = append(out, ToSupplierResponse(s))
	}
	return out
}

// ToCustomerResponse mapea la entidad a su DTO de salida.
func ToCustomerResponse(c *entity.Customer) PartyResponse {
	return PartyResponse{ID: c.ID, Name: c.Name, Phone: c.Phone, Address: c.Address, Visible: c.Visible, CreatedAt: c.CreatedAt}
}

// ToCustomerResponses mapea una lista de clientes.
func ToCustomerResponses(list []*entity.Customer) []PartyResponse {
	out := make([]PartyResponse, 0, len(list))
	for _, c := range list {
		out = append(out, ToCustomerResponse(c))
	}
	return out
}
