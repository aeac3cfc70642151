package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
)

// CategoryHandler CRUD de categorías (protegido).
type CategoryHandler struct {
	uc       *usecase.CategoryUseCase
	deletion *inventory.DeletionUseCase
}

// NewCategoryHandler construye el handler.
func NewCategoryHandler(uc *usecase.CategoryUseCase, deletion *inventory.DeletionUseCase) *CategoryHandler {
	return &CategoryHandler{uc: uc, deletion: deletion}
}

// Create crea una categoría.
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CategoryRequest
	if !parseBody(c, &in) {
		return nil
	}
	category, err := h.uc.Create(c.Context(), in.Name, in.Description)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToCategoryResponse(category))
}

// Update edita nombre y descripción.
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	id := paramID(c, "id")
	if id == 0 {
		return nil
	}
	var in dto.CategoryRequest
	if !parseBody(c, &in) {
		return nil
	}
	category, err := h.uc.Update(c.Context(), id, in.Name, in.Description)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToCategoryResponse(category))
}

// GetByID devuelve una categoría.
func (h *CategoryHandler) GetByID(c *fiber.Ctx) error {
	id := paramID(c, "id")
	if id == 0 {
		return nil
	}
	category, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToCategoryResponse(category))
}

// List lista categorías visibles.
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	list, err := h.uc.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToCategoryResponses(list))
}

// Delete borra la categoría: suave si tiene productos visibles, físico si
// está vacía. El modo lo decide el servidor.
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id := paramID(c, "id")
	if id == 0 {
		return nil
	}
	outcome, err := h.deletion.DeleteCategory(c.Context(), GetUserID(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.DeleteCategoryResponse{Mode: string(outcome)})
}
