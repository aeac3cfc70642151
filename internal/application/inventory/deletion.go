package inventory

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// DeletionOutcome indica qué camino tomó un borrado: suave (ocultar) o
// físico. El caller nunca elige; se deriva de las referencias existentes
// para que las transacciones históricas siempre resuelvan su producto.
type DeletionOutcome string

const (
	OutcomeSoft DeletionOutcome = "soft"
	OutcomeHard DeletionOutcome = "hard"
)

// DeletionUseCase decide y ejecuta borrados de Product y Category según sus
// dependencias (guard de integridad referencial).
type DeletionUseCase struct {
	txRunner     TxRunner
	txRepo       repository.StockTransactionRepository
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewDeletionUseCase construye el caso de uso.
func NewDeletionUseCase(
	txRunner TxRunner,
	txRepo repository.StockTransactionRepository,
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
) *DeletionUseCase {
	return &DeletionUseCase{txRunner: txRunner, txRepo: txRepo, productRepo: productRepo, categoryRepo: categoryRepo}
}

// ProductHasDependencies indica si el producto aparece en alguna línea de
// comprobante existente.
func (uc *DeletionUseCase) ProductHasDependencies(ctx context.Context, productID int64) (bool, error) {
	if productID <= 0 {
		return false, domain.ErrInvalidInput
	}
	return uc.txRepo.HasDetailsForProduct(productID)
}

// CategoryHasProducts indica si algún producto visible referencia la categoría.
func (uc *DeletionUseCase) CategoryHasProducts(ctx context.Context, categoryID int64) (bool, error) {
	if categoryID <= 0 {
		return false, domain.ErrInvalidInput
	}
	return uc.productRepo.ExistsVisibleByCategory(categoryID)
}

// DeleteProduct oculta el producto si tiene historial (líneas de comprobante)
// o lo elimina físicamente si nadie lo referencia. La decisión y la escritura
// ocurren dentro de una transacción con la fila bloqueada.
func (uc *DeletionUseCase) DeleteProduct(ctx context.Context, actorID, productID int64) (DeletionOutcome, error) {
	if productID <= 0 {
		return "", domain.ErrInvalidInput
	}
	var outcome DeletionOutcome
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		txRepo repository.StockTransactionRepository,
		_ repository.ActionLogRepository,
	) error {
		product, err := productRepo.GetByIDForUpdate(productID)
		if err != nil {
			return err
		}
		if product == nil || !product.Visible {
			return domain.ErrNotFound
		}
		hasDeps, err := txRepo.HasDetailsForProduct(productID)
		if err != nil {
			return err
		}
		if hasDeps {
			outcome = OutcomeSoft
			return productRepo.SetVisible(productID, false)
		}
		outcome = OutcomeHard
		return productRepo.HardDelete(productID)
	})
	if err != nil {
		return "", err
	}
	return outcome, nil
}

// DeleteCategory oculta la categoría si tiene productos visibles o la elimina
// físicamente si está vacía.
func (uc *DeletionUseCase) DeleteCategory(ctx context.Context, actorID, categoryID int64) (DeletionOutcome, error) {
	if categoryID <= 0 {
		return "", domain.ErrInvalidInput
	}
	category, err := uc.categoryRepo.GetByID(categoryID)
	if err != nil {
		return "", err
	}
	if category == nil || !category.Visible {
		return "", domain.ErrNotFound
	}
	hasProducts, err := uc.productRepo.ExistsVisibleByCategory(categoryID)
	if err != nil {
		return "", err
	}
	if hasProducts {
		if err := uc.categoryRepo.SetVisible(categoryID, false); err != nil {
			return "", err
		}
		return OutcomeSoft, nil
	}
	if err := uc.categoryRepo.HardDelete(categoryID); err != nil {
		return "", err
	}
	return OutcomeHard, nil
}
