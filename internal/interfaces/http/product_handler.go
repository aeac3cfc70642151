package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
)

// ProductHandler CRUD de catálogo (protegido). El borrado delega en el guard
// de dependencias, que decide entre suave y físico.
type ProductHandler struct {
	uc       *usecase.ProductUseCase
	deletion *inventory.DeletionUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase, deletion *inventory.DeletionUseCase) *ProductHandler {
	return &ProductHandler{uc: uc, deletion: deletion}
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "name, category_id, price, quantity, min_threshold"
// @Success      201  {object}  dto.ProductResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if !parseBody(c, &in) {
		return nil
	}
	product, err := h.uc.Create(c.Context(), GetUserID(c), usecase.CreateProductInput{
		Name:         in.Name,
		CategoryID:   in.CategoryID,
		Price:        in.Price,
		Quantity:     in.Quantity,
		MinThreshold: in.MinThreshold,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToProductResponse(product))
}

// Update godoc
// @Summary      Editar producto (sin cantidad)
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "name, category_id, price, min_threshold"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id := paramID(c, "id")
	if id == 0 {
		return nil
	}
	var in dto.UpdateProductRequest
	if !parseBody(c, &in) {
		return nil
	}
	product, err := h.uc.Update(c.Context(), GetUserID(c), id, usecase.UpdateProductInput{
		Name:         in.Name,
		CategoryID:   in.CategoryID,
		Price:        in.Price,
		MinThreshold: in.MinThreshold,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToProductResponse(product))
}

// GetByID godoc
// @Summary      Producto por ID
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	id := paramID(c, "id")
	if id == 0 {
		return nil
	}
	product, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToProductResponse(product))
}

// List godoc
// @Summary      Listar productos visibles
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        name    query  string  false  "filtrar por nombre (parcial)"
// @Param        limit   query  int     false  "máximo de filas"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {array}  dto.ProductResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	list, err := h.uc.List(c.Context(), c.Query("name"), page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToProductResponses(list))
}

// Delete godoc
// @Summary      Borrar producto
// @Description  El servidor decide el modo: suave si el producto aparece en
//               comprobantes, físico si nadie lo referencia.
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID del producto"
// @Success      200  {object}  dto.DeleteProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id := paramID(c, "id")
	if id == 0 {
		return nil
	}
	outcome, err := h.deletion.DeleteProduct(c.Context(), GetUserID(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.DeleteProductResponse{Mode: string(outcome)})
}
