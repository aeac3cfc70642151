package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin     = "admin"
	RoleBodeguero = "bodeguero"
)

// Estados válidos para User.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User representa un usuario del sistema. Su ID se usa únicamente como
// atributo de autoría (actorID) en comprobantes y auditoría.
type User struct {
	ID           int64
	Username     string
	PasswordHash string // bcrypt, nunca plano después de persistir
	FullName     string
	Role         string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
