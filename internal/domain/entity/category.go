package entity

import "time"

// Category representa una categoría de productos. Visible implementa borrado
// suave: una categoría con productos nunca se elimina físicamente.
type Category struct {
	ID          int64
	Name        string
	Description string
	Visible     bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
