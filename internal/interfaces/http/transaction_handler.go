package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
)

// TransactionHandler consultas y gestión de comprobantes (protegido).
type TransactionHandler struct {
	ledger *inventory.LedgerUseCase
}

// NewTransactionHandler construye el handler.
func NewTransactionHandler(ledger *inventory.LedgerUseCase) *TransactionHandler {
	return &TransactionHandler{ledger: ledger}
}

// List godoc
// @Summary      Listar comprobantes
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        type    query  string  false  "Import o Export"
// @Param        from    query  string  false  "fecha inicial (RFC 3339)"
// @Param        to      query  string  false  "fecha final (RFC 3339)"
// @Param        limit   query  int     false  "máximo de filas"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {array}   dto.TransactionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/transactions [get]
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()

	filter := inventory.TransactionFilter{
		Type:   c.Query("type"),
		Limit:  page.Limit,
		Offset: page.Offset,
	}
	var ok bool
	if filter.From, ok = parseTimeQuery(c, "from"); !ok {
		return nil
	}
	if filter.To, ok = parseTimeQuery(c, "to"); !ok {
		return nil
	}

	list, err := h.ledger.ListTransactions(c.Context(), filter)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToTransactionResponses(list))
}

// GetByID godoc
// @Summary      Comprobante con sus líneas
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID del comprobante"
// @Success      200  {object}  dto.TransactionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transactions/{id} [get]
func (h *TransactionHandler) GetByID(c *fiber.Ctx) error {
	id := paramID(c, "id")
	if id == 0 {
		return nil
	}
	t, err := h.ledger.GetTransactionByID(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToTransactionResponse(t))
}

// UpdateDetail godoc
// @Summary      Editar una línea de un comprobante
// @Description  Recalcula el total del comprobante. No toca stock ni auditoría.
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id        path  int  true  "ID del comprobante"
// @Param        detailId  path  int  true  "ID de la línea"
// @Param        body      body  dto.UpdateDetailRequest  true  "quantity, unit_price"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transactions/{id}/details/{detailId} [put]
func (h *TransactionHandler) UpdateDetail(c *fiber.Ctx) error {
	id := paramID(c, "id")
	if id == 0 {
		return nil
	}
	detailID := paramID(c, "detailId")
	if detailID == 0 {
		return nil
	}
	var in dto.UpdateDetailRequest
	if !parseBody(c, &in) {
		return nil
	}
	if err := h.ledger.UpdateDetail(c.Context(), GetUserID(c), id, detailID, in.Quantity, in.UnitPrice); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "línea actualizada"})
}

// RemoveDetail godoc
// @Summary      Eliminar una línea de un comprobante
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        id        path  int  true  "ID del comprobante"
// @Param        detailId  path  int  true  "ID de la línea"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transactions/{id}/details/{detailId} [delete]
func (h *TransactionHandler) RemoveDetail(c *fiber.Ctx) error {
	id := paramID(c, "id")
	if id == 0 {
		return nil
	}
	detailID := paramID(c, "detailId")
	if detailID == 0 {
		return nil
	}
	if err := h.ledger.RemoveDetail(c.Context(), GetUserID(c), id, detailID); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "línea eliminada"})
}

// parseTimeQuery lee un query param RFC 3339 opcional. El segundo valor es
// false si el formato era inválido y ya se respondió con 400.
func parseTimeQuery(c *fiber.Ctx, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: name + ": fecha inválida (RFC 3339)"})
		return nil, false
	}
	return &t, true
}
