package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
)

// AuthHandler login y gestión de usuarios.
type AuthHandler struct {
	uc *usecase.UserUseCase
}

// NewAuthHandler construye el handler.
func NewAuthHandler(uc *usecase.UserUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "username, password"
// @Success      200  {object}  dto.LoginResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if !parseBody(c, &in) {
		return nil
	}
	token, user, err := h.uc.Login(c.Context(), in.Username, in.Password)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.LoginResponse{Token: token, User: dto.ToUserResponse(user)})
}

// CreateUser godoc
// @Summary      Crear usuario
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUserRequest  true  "username, password, full_name, role"
// @Success      201  {object}  dto.UserResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/users [post]
func (h *AuthHandler) CreateUser(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if !parseBody(c, &in) {
		return nil
	}
	user, err := h.uc.Create(c.Context(), usecase.CreateUserInput{
		Username: in.Username,
		Password: in.Password,
		FullName: in.FullName,
		Role:     in.Role,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToUserResponse(user))
}

// GetUser devuelve un usuario por ID.
func (h *AuthHandler) GetUser(c *fiber.Ctx) error {
	id := paramID(c, "id")
	if id == 0 {
		return nil
	}
	user, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToUserResponse(user))
}

// ListUsers lista usuarios.
func (h *AuthHandler) ListUsers(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	list, err := h.uc.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToUserResponses(list))
}
