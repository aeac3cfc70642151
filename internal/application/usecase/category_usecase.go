package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// CategoryUseCase CRUD de categorías. El borrado pasa por el guard de
// dependencias (inventory.DeletionUseCase), no por aquí.
type CategoryUseCase struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(categoryRepo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{categoryRepo: categoryRepo}
}

// Create da de alta una categoría.
func (uc *CategoryUseCase) Create(ctx context.Context, name, description string) (*entity.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	category := &entity.Category{Name: name, Description: strings.TrimSpace(description), Visible: true}
	id, err := uc.categoryRepo.Create(category)
	if err != nil {
		return nil, err
	}
	category.ID = id
	return category, nil
}

// Update edita nombre y descripción.
func (uc *CategoryUseCase) Update(ctx context.Context, id int64, name, description string) (*entity.Category, error) {
	name = strings.TrimSpace(name)
	if id <= 0 || name == "" {
		return nil, domain.ErrInvalidInput
	}
	category, err := uc.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil || !category.Visible {
		return nil, domain.ErrNotFound
	}
	category.Name = name
	category.Description = strings.TrimSpace(description)
	if err := uc.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// GetByID devuelve una categoría por ID.
func (uc *CategoryUseCase) GetByID(ctx context.Context, id int64) (*entity.Category, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidInput
	}
	category, err := uc.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	return category, nil
}

// List lista categorías visibles.
func (uc *CategoryUseCase) List(ctx context.Context, limit, offset int) ([]*entity.Category, error) {
	if limit <= 0 {
		limit = 20
	}
	return uc.categoryRepo.List(limit, offset)
}
