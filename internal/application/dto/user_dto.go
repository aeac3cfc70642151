package dto

import (
	"time"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// LoginRequest body para POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required,min=1,max=100"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginResponse token JWT y datos del usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// CreateUserRequest entrada para alta de usuario.
type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=1,max=100"`
	Password string `json:"password" validate:"required,min=6,max=100"`
	FullName string `json:"full_name" validate:"max=200"`
	Role     string `json:"role" validate:"required,oneof=admin bodeguero"`
}

// UserResponse salida de un usuario (sin hash de contraseña).
type UserResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name,omitempty"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// ToUserResponse mapea la entidad a su DTO de salida.
func ToUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		FullName:  u.FullName,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
	}
}

// ToUserResponses mapea una lista de usuarios.
func ToUserResponses(list []*entity.User) []UserResponse {
	out := make([]UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, ToUserResponse(u))
	}
	return out
}
