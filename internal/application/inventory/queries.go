package inventory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// StockQueryUseCase lecturas agregadas de stock (sin implicaciones de
// invariantes: solo consultas).
type StockQueryUseCase struct {
	productRepo repository.ProductRepository
}

// NewStockQueryUseCase construye el caso de uso.
func NewStockQueryUseCase(productRepo repository.ProductRepository) *StockQueryUseCase {
	return &StockQueryUseCase{productRepo: productRepo}
}

// GetLowStockProducts productos visibles con Quantity ≤ MinThreshold.
func (uc *StockQueryUseCase) GetLowStockProducts(ctx context.Context) ([]*entity.Product, error) {
	return uc.productRepo.ListLowStock()
}

// GetTotalInventoryValue suma de inventory_value de los productos visibles.
func (uc *StockQueryUseCase) GetTotalInventoryValue(ctx context.Context) (decimal.Decimal, error) {
	return uc.productRepo.TotalInventoryValue()
}
