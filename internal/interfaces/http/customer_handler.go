package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
)

// CustomerHandler CRUD de clientes (protegido).
type CustomerHandler struct {
	uc *usecase.CustomerUseCase
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *usecase.CustomerUseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

// Create crea un cliente.
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.PartyRequest
	if !parseBody(c, &in) {
		return nil
	}
	customer, err := h.uc.Create(c.Context(), in.Name, in.Phone, in.Address)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToCustomerResponse(customer))
}

// Update edita un cliente.
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	id := paramID(c, "id")
	if id == 0 {
		return nil
	}
	var in dto.PartyRequest
	if !parseBody(c, &in) {
		return nil
	}
	customer, err := h.uc.Update(c.Context(), id, in.Name, in.Phone, in.Address)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToCustomerResponse(customer))
}

// GetByID devuelve un cliente.
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	id := paramID(c, "id")
	if id == 0 {
		return nil
	}
	customer, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToCustomerResponse(customer))
}

// List lista clientes visibles.
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	list, err := h.uc.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToCustomerResponses(list))
}

// Delete borra suavemente un cliente.
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	id := paramID(c, "id")
	if id == 0 {
		return nil
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "cliente ocultado"})
}
