package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
)

// ActionLogHandler consultas y mantenimiento del diario de auditoría
// (protegido).
type ActionLogHandler struct {
	uc *usecase.ActionLogUseCase
}

// NewActionLogHandler construye el handler.
func NewActionLogHandler(uc *usecase.ActionLogUseCase) *ActionLogHandler {
	return &ActionLogHandler{uc: uc}
}

// List godoc
// @Summary      Listar entradas del diario de auditoría
// @Tags         action-logs
// @Security     Bearer
// @Produce      json
// @Param        type    query  string  false  "filtrar por tipo de acción"
// @Param        from    query  string  false  "fecha inicial (RFC 3339)"
// @Param        to      query  string  false  "fecha final (RFC 3339)"
// @Param        limit   query  int     false  "máximo de filas"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {array}   dto.ActionLogResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/action-logs [get]
func (h *ActionLogHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()

	from, ok := parseTimeQuery(c, "from")
	if !ok {
		return nil
	}
	to, ok := parseTimeQuery(c, "to")
	if !ok {
		return nil
	}

	list, err := h.uc.List(c.Context(), c.Query("type"), from, to, page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToActionLogResponses(list))
}

// GetByID godoc
// @Summary      Entrada del diario por ID
// @Tags         action-logs
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID de la entrada"
// @Success      200  {object}  dto.ActionLogResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/action-logs/{id} [get]
func (h *ActionLogHandler) GetByID(c *fiber.Ctx) error {
	id := paramID(c, "id")
	if id == 0 {
		return nil
	}
	log, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToActionLogResponse(log))
}

// Count godoc
// @Summary      Total de entradas del diario
// @Tags         action-logs
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ActionLogCountResponse
// @Router       /api/action-logs/count [get]
func (h *ActionLogHandler) Count(c *fiber.Ctx) error {
	total, err := h.uc.Count(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ActionLogCountResponse{Total: total})
}

// Delete godoc
// @Summary      Ocultar una entrada del diario (borrado suave)
// @Description  La entrada deja de ser deshacible pero se conserva.
// @Tags         action-logs
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID de la entrada"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/action-logs/{id} [delete]
func (h *ActionLogHandler) Delete(c *fiber.Ctx) error {
	id := paramID(c, "id")
	if id == 0 {
		return nil
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "entrada ocultada"})
}

// Purge godoc
// @Summary      Purgar entradas antiguas del diario
// @Tags         action-logs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PurgeLogsRequest  true  "older_than_days"
// @Success      200  {object}  dto.PurgeLogsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/action-logs/purge [post]
func (h *ActionLogHandler) Purge(c *fiber.Ctx) error {
	var in dto.PurgeLogsRequest
	if !parseBody(c, &in) {
		return nil
	}
	purged, err := h.uc.PurgeOlderThan(c.Context(), in.OlderThanDays)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.PurgeLogsResponse{Purged: purged})
}
