package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(category *entity.Category) (int64, error)
	GetByID(id int64) (*entity.Category, error)
	Update(category *entity.Category) error
	List(limit, offset int) ([]*entity.Category, error)
	SetVisible(id int64, visible bool) error
	HardDelete(id int64) error
}
