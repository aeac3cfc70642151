package usecase

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ProductUseCase CRUD de catálogo. Las mutaciones de cantidad NO pasan por
// aquí: solo por el motor de inventario (ledger/undo).
type ProductUseCase struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo, categoryRepo: categoryRepo}
}

// CreateProductInput datos para alta de producto.
type CreateProductInput struct {
	Name         string
	CategoryID   int64
	Price        decimal.Decimal
	Quantity     int64
	MinThreshold int64
}

// Create da de alta un producto. InventoryValue se deriva siempre.
func (uc *ProductUseCase) Create(ctx context.Context, actorID int64, in CreateProductInput) (*entity.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.Price.IsNegative() || in.Quantity < 0 || in.MinThreshold < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.CategoryID > 0 {
		category, err := uc.categoryRepo.GetByID(in.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil || !category.Visible {
			return nil, domain.ErrNotFound
		}
	}
	product := &entity.Product{
		Name:           name,
		CategoryID:     in.CategoryID,
		Price:          in.Price,
		Quantity:       in.Quantity,
		MinThreshold:   in.MinThreshold,
		InventoryValue: entity.ComputeInventoryValue(in.Quantity, in.Price),
		Visible:        true,
	}
	id, err := uc.productRepo.Create(product)
	if err != nil {
		return nil, err
	}
	product.ID = id
	return product, nil
}

// UpdateProductInput datos editables de un producto. No incluye Quantity.
type UpdateProductInput struct {
	Name         string
	CategoryID   int64
	Price        decimal.Decimal
	MinThreshold int64
}

// Update edita nombre, categoría, precio y umbral. Si cambia el precio,
// InventoryValue se recalcula con la cantidad vigente.
func (uc *ProductUseCase) Update(ctx context.Context, actorID, id int64, in UpdateProductInput) (*entity.Product, error) {
	name := strings.TrimSpace(in.Name)
	if id <= 0 || name == "" || in.Price.IsNegative() || in.MinThreshold < 0 {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.Visible {
		return nil, domain.ErrNotFound
	}
	product.Name = name
	product.CategoryID = in.CategoryID
	product.Price = in.Price
	product.MinThreshold = in.MinThreshold
	product.InventoryValue = entity.ComputeInventoryValue(product.Quantity, in.Price)
	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetByID devuelve un producto (incluye borrados suavemente, con su flag).
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

// List lista productos visibles; name filtra por coincidencia parcial.
func (uc *ProductUseCase) List(ctx context.Context, name string, limit, offset int) ([]*entity.Product, error) {
	if limit <= 0 {
		limit = 20
	}
	if name = strings.TrimSpace(name); name != "" {
		return uc.productRepo.SearchByName(name, limit, offset)
	}
	return uc.productRepo.List(limit, offset)
}
