package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
)

// InventoryHandler maneja movimientos de stock, undo y consultas agregadas
// (protegido).
type InventoryHandler struct {
	ledger  *inventory.LedgerUseCase
	undo    *inventory.UndoUseCase
	queries *inventory.StockQueryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(ledger *inventory.LedgerUseCase, undo *inventory.UndoUseCase, queries *inventory.StockQueryUseCase) *InventoryHandler {
	return &InventoryHandler{ledger: ledger, undo: undo, queries: queries}
}

// ImportStock godoc
// @Summary      Registrar entrada de stock de un producto
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockMovementRequest  true  "product_id, quantity, unit_price, note"
// @Success      201   {object}  dto.StockMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/imports [post]
func (h *InventoryHandler) ImportStock(c *fiber.Ctx) error {
	var in dto.StockMovementRequest
	if !parseBody(c, &in) {
		return nil
	}
	res, err := h.ledger.ImportStock(c.Context(), GetUserID(c), in.ProductID, in.Quantity, in.UnitPrice, in.Note)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(res))
}

// ExportStock godoc
// @Summary      Registrar salida de stock de un producto
// @Description  Falla con 409 INSUFFICIENT_STOCK si la cantidad resultante
//               fuera negativa; en ese caso no se persiste nada.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockMovementRequest  true  "product_id, quantity, unit_price, note"
// @Success      201   {object}  dto.StockMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/exports [post]
func (h *InventoryHandler) ExportStock(c *fiber.Ctx) error {
	var in dto.StockMovementRequest
	if !parseBody(c, &in) {
		return nil
	}
	res, err := h.ledger.ExportStock(c.Context(), GetUserID(c), in.ProductID, in.Quantity, in.UnitPrice, in.Note)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(res))
}

// ImportBatch godoc
// @Summary      Registrar entrada por lote (todo o nada)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BatchMovementRequest  true  "lines, note"
// @Success      201   {object}  dto.BatchMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/imports/batch [post]
func (h *InventoryHandler) ImportBatch(c *fiber.Ctx) error {
	return h.batch(c, true)
}

// ExportBatch godoc
// @Summary      Registrar salida por lote (todo o nada)
// @Description  Si una sola línea dejaría stock negativo, el lote entero se
//               rechaza sin persistir cabecera, líneas ni ajustes.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BatchMovementRequest  true  "lines, note"
// @Success      201   {object}  dto.BatchMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/exports/batch [post]
func (h *InventoryHandler) ExportBatch(c *fiber.Ctx) error {
	return h.batch(c, false)
}

func (h *InventoryHandler) batch(c *fiber.Ctx, isImport bool) error {
	var in dto.BatchMovementRequest
	if !parseBody(c, &in) {
		return nil
	}
	lines := make([]inventory.BatchLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, inventory.BatchLine{ProductID: l.ProductID, Quantity: l.Quantity, UnitPrice: l.UnitPrice})
	}
	var (
		res *inventory.BatchResult
		err error
	)
	if isImport {
		res, err = h.ledger.ImportBatch(c.Context(), GetUserID(c), lines, in.Note)
	} else {
		res, err = h.ledger.ExportBatch(c.Context(), GetUserID(c), lines, in.Note)
	}
	if err != nil {
		return writeError(c, err)
	}
	out := dto.BatchMovementResponse{TransactionID: res.TransactionID}
	for i := range res.Lines {
		out.Lines = append(out.Lines, toMovementResponse(&res.Lines[i]))
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Undo godoc
// @Summary      Deshacer la última acción de inventario
// @Description  Revierte la entrada deshacible más reciente del diario.
//               Si no hay nada que deshacer responde 200 con reverted=false.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UndoResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/inventory/undo [post]
func (h *InventoryHandler) Undo(c *fiber.Ctx) error {
	res, err := h.undo.UndoLastAction(c.Context(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.UndoResponse{Reverted: res.Reverted, Description: res.Description})
}

// LowStock godoc
// @Summary      Productos con stock en o bajo su umbral mínimo
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ProductResponse
// @Router       /api/inventory/low-stock [get]
func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	list, err := h.queries.GetLowStockProducts(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToProductResponses(list))
}

// TotalValue godoc
// @Summary      Valor total del inventario visible
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.InventoryValueResponse
// @Router       /api/inventory/total-value [get]
func (h *InventoryHandler) TotalValue(c *fiber.Ctx) error {
	total, err := h.queries.GetTotalInventoryValue(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.InventoryValueResponse{TotalValue: total})
}

func toMovementResponse(r *inventory.MovementResult) dto.StockMovementResponse {
	return dto.StockMovementResponse{
		TransactionID:    r.TransactionID,
		ProductID:        r.ProductID,
		PreviousQuantity: r.PreviousQuantity,
		NewQuantity:      r.NewQuantity,
		PreviousValue:    r.PreviousValue,
		NewValue:         r.NewValue,
	}
}
