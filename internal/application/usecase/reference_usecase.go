package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// SupplierUseCase CRUD simple de proveedores.
type SupplierUseCase struct {
	repo repository.SupplierRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo}
}

func (uc *SupplierUseCase) Create(ctx context.Context, name, phone, address string) (*entity.Supplier, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	s := &entity.Supplier{Name: name, Phone: strings.TrimSpace(phone), Address: strings.TrimSpace(address), Visible: true}
	id, err := uc.repo.Create(s)
	if err != nil {
		return nil, err
	}
	s.ID = id
	return s, nil
}

func (uc *SupplierUseCase) Update(ctx context.Context, id int64, name, phone, address string) (*entity.Supplier, error) {
	name = strings.TrimSpace(name)
	if id <= 0 || name == "" {
		return nil, domain.ErrInvalidInput
	}
	s, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if s == nil || !s.Visible {
		return nil, domain.ErrNotFound
	}
	s.Name = name
	s.Phone = strings.TrimSpace(phone)
	s.Address = strings.TrimSpace(address)
	if err := uc.repo.Update(s); err != nil {
		return nil, err
	}
	return s, nil
}

func (uc *SupplierUseCase) GetByID(ctx context.Context, id int64) (*entity.Supplier, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidInput
	}
	s, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

func (uc *SupplierUseCase) List(ctx context.Context, limit, offset int) ([]*entity.Supplier, error) {
	if limit <= 0 {
		limit = 20
	}
	return uc.repo.List(limit, offset)
}

// Delete borra suavemente (los proveedores pueden figurar en reportes
// históricos; nunca se eliminan físicamente desde la API).
func (uc *SupplierUseCase) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.ErrInvalidInput
	}
	s, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if s == nil || !s.Visible {
		return domain.ErrNotFound
	}
	return uc.repo.SetVisible(id, false)
}

// CustomerUseCase CRUD simple de clientes.
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

func (uc *CustomerUseCase) Create(ctx context.Context, name, phone, address string) (*entity.Customer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	c := &entity.Customer{Name: name, Phone: strings.TrimSpace(phone), Address: strings.TrimSpace(address), Visible: true}
	id, err := uc.repo.Create(c)
	if err != nil {
		return nil, err
	}
	c.ID = id
	return c, nil
}

func (uc *CustomerUseCase) Update(ctx context.Context, id int64, name, phone, address string) (*entity.Customer, error) {
	name = strings.TrimSpace(name)
	if id <= 0 || name == "" {
		return nil, domain.ErrInvalidInput
	}
	c, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil || !c.Visible {
		return nil, domain.ErrNotFound
	}
	c.Name = name
	c.Phone = strings.TrimSpace(phone)
	c.Address = strings.TrimSpace(address)
	if err := uc.repo.Update(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (uc *CustomerUseCase) GetByID(ctx context.Context, id int64) (*entity.Customer, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidInput
	}
	c, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func (uc *CustomerUseCase) List(ctx context.Context, limit, offset int) ([]*entity.Customer, error) {
	if limit <= 0 {
		limit = 20
	}
	return uc.repo.List(limit, offset)
}

func (uc *CustomerUseCase) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.ErrInvalidInput
	}
	c, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if c == nil || !c.Visible {
		return domain.ErrNotFound
	}
	return uc.repo.SetVisible(id, false)
}
