package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// TransactionFilter filtros para listar comprobantes.
type TransactionFilter struct {
	Type   string // "", Import o Export
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// GetTransactionByID devuelve el comprobante con sus detalles.
func (uc *LedgerUseCase) GetTransactionByID(ctx context.Context, id int64) (*entity.StockTransaction, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidInput
	}
	t, err := uc.txRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	return t, nil
}

// ListTransactions lista comprobantes según el filtro (lecturas puras).
func (uc *LedgerUseCase) ListTransactions(ctx context.Context, filter TransactionFilter) ([]*entity.StockTransaction, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.From != nil && filter.To != nil {
		if filter.From.After(*filter.To) {
			return nil, domain.ErrInvalidInput
		}
		return uc.txRepo.ListByDateRange(*filter.From, *filter.To, filter.Limit, filter.Offset)
	}
	if filter.Type != "" {
		if filter.Type != entity.TransactionTypeImport && filter.Type != entity.TransactionTypeExport {
			return nil, domain.ErrInvalidInput
		}
		return uc.txRepo.ListByType(filter.Type, filter.Limit, filter.Offset)
	}
	return uc.txRepo.List(filter.Limit, filter.Offset)
}

// UpdateDetail edita una línea existente de un comprobante y recalcula el
// total. Es gestión explícita de detalles: no toca stock ni auditoría.
func (uc *LedgerUseCase) UpdateDetail(ctx context.Context, actorID, transactionID, detailID, quantity int64, unitPrice decimal.Decimal) error {
	if transactionID <= 0 || detailID <= 0 {
		return domain.ErrInvalidInput
	}
	if quantity <= 0 || quantity > maxQuantity || unitPrice.IsNegative() {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.Run(ctx, func(
		_ repository.ProductRepository,
		txRepo repository.StockTransactionRepository,
		_ repository.ActionLogRepository,
	) error {
		d, err := txRepo.GetDetailByID(detailID)
		if err != nil {
			return err
		}
		if d == nil || d.TransactionID != transactionID {
			return domain.ErrNotFound
		}
		d.Quantity = quantity
		d.UnitPrice = unitPrice
		if err := txRepo.UpdateDetail(d); err != nil {
			return err
		}
		return txRepo.UpdateTotalValue(transactionID)
	})
}

// RemoveDetail elimina una línea de un comprobante y recalcula el total.
func (uc *LedgerUseCase) RemoveDetail(ctx context.Context, actorID, transactionID, detailID int64) error {
	if transactionID <= 0 || detailID <= 0 {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.Run(ctx, func(
		_ repository.ProductRepository,
		txRepo repository.StockTransactionRepository,
		_ repository.ActionLogRepository,
	) error {
		d, err := txRepo.GetDetailByID(detailID)
		if err != nil {
			return err
		}
		if d == nil || d.TransactionID != transactionID {
			return domain.ErrNotFound
		}
		if err := txRepo.RemoveDetail(detailID); err != nil {
			return err
		}
		return txRepo.UpdateTotalValue(transactionID)
	})
}
