package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
)

// SupplierHandler CRUD de proveedores (protegido).
type SupplierHandler struct {
	uc *usecase.SupplierUseCase
}

// NewSupplierHandler construye el handler.
func NewSupplierHandler(uc *usecase.SupplierUseCase) *SupplierHandler {
	return &SupplierHandler{uc: uc}
}

// Create crea un proveedor.
func (h *SupplierHandler) Create(c *fiber.Ctx) error {
	var in dto.PartyRequest
	if !parseBody(c, &in) {
		return nil
	}
	s, err := h.uc.Create(c.Context(), in.Name, in.Phone, in.Address)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToSupplierResponse(s))
}

// Update edita un proveedor.
func (h *SupplierHandler) Update(c *fiber.Ctx) error {
	id := paramID(c, "id")
	if id == 0 {
		return nil
	}
	var in dto.PartyRequest
	if !parseBody(c, &in) {
		return nil
	}
	s, err := h.uc.Update(c.Context(), id, in.Name, in.Phone, in.Address)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToSupplierResponse(s))
}

// GetByID devuelve un proveedor.
func (h *SupplierHandler) GetByID(c *fiber.Ctx) error {
	id := paramID(c, "id")
	if id == 0 {
		return nil
	}
	s, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToSupplierResponse(s))
}

// List lista proveedores visibles.
func (h *SupplierHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	list, err := h.uc.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToSupplierResponses(list))
}

// Delete borra suavemente un proveedor.
func (h *SupplierHandler) Delete(c *fiber.Ctx) error {
	id := paramID(c, "id")
	if id == 0 {
		return nil
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "proveedor ocultado"})
}
