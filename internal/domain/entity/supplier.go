package entity

import "time"

// Supplier representa un proveedor (dato de referencia, CRUD simple).
type Supplier struct {
	ID        int64
	Name      string
	Phone     string
	Address   string
	Visible   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Customer representa un cliente (dato de referencia, CRUD simple).
type Customer struct {
	ID        int64
	Name      string
	Phone     string
	Address   string
	Visible   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
