package http

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
)

var validate = validator.New()

// parseBody decodifica y valida el body JSON. Devuelve false si ya respondió
// con 400; el handler debe cortar.
func parseBody(c *fiber.Ctx, out interface{}) bool {
	if err := c.BodyParser(out); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		return false
	}
	if err := validate.Struct(out); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		return false
	}
	return true
}

// paramID lee un parámetro de ruta como int64 positivo. Devuelve 0 si ya
// respondió con 400.
func paramID(c *fiber.Ctx, name string) int64 {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
		return 0
	}
	return int64(id)
}
