package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// SupplierRepository define el puerto de persistencia para Supplier (DIP).
type SupplierRepository interface {
	Create(supplier *entity.Supplier) (int64, error)
	GetByID(id int64) (*entity.Supplier, error)
	Update(supplier *entity.Supplier) error
	List(limit, offset int) ([]*entity.Supplier, error)
	SetVisible(id int64, visible bool) error
}

// CustomerRepository define el puerto de persistencia para Customer (DIP).
type CustomerRepository interface {
	Create(customer *entity.Customer) (int64, error)
	GetByID(id int64) (*entity.Customer, error)
	Update(customer *entity.Customer) error
	List(limit, offset int) ([]*entity.Customer, error)
	SetVisible(id int64, visible bool) error
}

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(user *entity.User) (int64, error)
	GetByID(id int64) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
	Update(user *entity.User) error
	List(limit, offset int) ([]*entity.User, error)
}
