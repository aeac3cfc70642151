package inventory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/internal/domain/undo"
)

// Límites heredados del esquema: cantidades y precios fuera de estos rangos
// se rechazan antes de cualquier escritura.
const (
	maxQuantity  = 999_999
	maxUnitPrice = 999_999_999
)

// LedgerUseCase registra comprobantes de entrada/salida (simples y por lote)
// de forma transaccional, con bloqueo de fila (SELECT FOR UPDATE) sobre el
// producto y una entrada de auditoría con el estado previo.
type LedgerUseCase struct {
	txRunner TxRunner
	txRepo   repository.StockTransactionRepository
}

// NewLedgerUseCase construye el caso de uso. txRepo se usa solo para lecturas
// fuera de transacción.
func NewLedgerUseCase(txRunner TxRunner, txRepo repository.StockTransactionRepository) *LedgerUseCase {
	return &LedgerUseCase{txRunner: txRunner, txRepo: txRepo}
}

// BatchLine línea de un comprobante por lote.
type BatchLine struct {
	ProductID int64
	Quantity  int64
	UnitPrice decimal.Decimal
}

// MovementResult estado previo y posterior de un producto tras un movimiento.
// El caller lo necesita para construir mensajes y para las pruebas.
type MovementResult struct {
	TransactionID    int64
	ProductID        int64
	PreviousQuantity int64
	NewQuantity      int64
	PreviousValue    decimal.Decimal
	NewValue         decimal.Decimal
}

// BatchResult resultado de un comprobante por lote.
type BatchResult struct {
	TransactionID int64
	Lines         []MovementResult
}

// ImportStock registra una entrada de un solo producto: cabecera + línea +
// ajuste de stock + auditoría, todo en una transacción.
func (uc *LedgerUseCase) ImportStock(ctx context.Context, actorID, productID, quantity int64, unitPrice decimal.Decimal, note string) (*MovementResult, error) {
	return uc.single(ctx, actorID, entity.TransactionTypeImport, productID, quantity, unitPrice, note)
}

// ExportStock registra una salida de un solo producto. Falla con
// domain.ErrInsufficientStock si la cantidad resultante fuera negativa;
// en ese caso no persiste cabecera ni línea.
func (uc *LedgerUseCase) ExportStock(ctx context.Context, actorID, productID, quantity int64, unitPrice decimal.Decimal, note string) (*MovementResult, error) {
	return uc.single(ctx, actorID, entity.TransactionTypeExport, productID, quantity, unitPrice, note)
}

func (uc *LedgerUseCase) single(ctx context.Context, actorID int64, txType string, productID, quantity int64, unitPrice decimal.Decimal, note string) (*MovementResult, error) {
	if err := validateLine(productID, quantity, unitPrice); err != nil {
		return nil, err
	}

	now := time.Now()
	res := &MovementResult{ProductID: productID}

	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		txRepo repository.StockTransactionRepository,
		logRepo repository.ActionLogRepository,
	) error {
		// Bloquea la fila del producto para que dos salidas concurrentes no
		// pasen ambas la verificación de stock.
		product, err := productRepo.GetByIDForUpdate(productID)
		if err != nil {
			return err
		}
		if product == nil || !product.Visible {
			return domain.ErrNotFound
		}

		newQuantity := product.Quantity + quantity
		if txType == entity.TransactionTypeExport {
			newQuantity = product.Quantity - quantity
			if newQuantity < 0 {
				return domain.ErrInsufficientStock
			}
		} else if newQuantity > maxQuantity {
			return domain.ErrStockLimit
		}

		header := &entity.StockTransaction{
			Type:        txType,
			Note:        strings.TrimSpace(note),
			CreatedBy:   actorID,
			DateCreated: now,
		}
		transID, err := txRepo.CreateTransaction(header)
		if err != nil {
			return err
		}
		if _, err := txRepo.AddDetail(&entity.TransactionDetail{
			TransactionID: transID,
			ProductID:     productID,
			ProductName:   product.Name,
			Quantity:      quantity,
			UnitPrice:     unitPrice,
		}); err != nil {
			return err
		}

		newValue := entity.ComputeInventoryValue(newQuantity, product.Price)
		if err := productRepo.UpdateQuantity(productID, newQuantity, newValue); err != nil {
			return err
		}
		if err := txRepo.UpdateTotalValue(transID); err != nil {
			return err
		}

		// Auditoría: snapshot de la cantidad ANTES del ajuste.
		snap, err := undo.ForProduct(productID, product.Quantity).Encode()
		if err != nil {
			return fmt.Errorf("encode snapshot: %w", err)
		}
		actionType := entity.ActionImportStock
		verb := "Entrada"
		if txType == entity.TransactionTypeExport {
			actionType = entity.ActionExportStock
			verb = "Salida"
		}
		if _, err := logRepo.Append(&entity.ActionLog{
			ActionType:   actionType,
			Descriptions: fmt.Sprintf("%s de %d unidades del producto %d (comprobante %d)", verb, quantity, productID, transID),
			DataBefore:   snap,
			Visible:      true,
			CreatedAt:    now,
		}); err != nil {
			return err
		}

		res.TransactionID = transID
		res.PreviousQuantity = product.Quantity
		res.NewQuantity = newQuantity
		res.PreviousValue = product.InventoryValue
		res.NewValue = newValue
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// ImportBatch registra una entrada por lote: una cabecera, N líneas, N
// ajustes y UNA entrada de auditoría consolidada. Todo o nada.
func (uc *LedgerUseCase) ImportBatch(ctx context.Context, actorID int64, lines []BatchLine, note string) (*BatchResult, error) {
	return uc.batch(ctx, actorID, entity.TransactionTypeImport, lines, note)
}

// ExportBatch registra una salida por lote. Si una sola línea violara el
// invariante de stock no negativo, el lote entero se revierte: ni cabecera,
// ni líneas, ni ajustes previos de ese mismo lote.
func (uc *LedgerUseCase) ExportBatch(ctx context.Context, actorID int64, lines []BatchLine, note string) (*BatchResult, error) {
	return uc.batch(ctx, actorID, entity.TransactionTypeExport, lines, note)
}

func (uc *LedgerUseCase) batch(ctx context.Context, actorID int64, txType string, lines []BatchLine, note string) (*BatchResult, error) {
	if len(lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	seen := make(map[int64]bool, len(lines))
	for _, line := range lines {
		if err := validateLine(line.ProductID, line.Quantity, line.UnitPrice); err != nil {
			return nil, err
		}
		if seen[line.ProductID] {
			return nil, domain.ErrDuplicate
		}
		seen[line.ProductID] = true
	}

	now := time.Now()
	res := &BatchResult{}

	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		txRepo repository.StockTransactionRepository,
		logRepo repository.ActionLogRepository,
	) error {
		// Bloquear en orden ascendente de ID para evitar deadlocks entre
		// lotes concurrentes.
		lockOrder := make([]int64, 0, len(lines))
		for _, line := range lines {
			lockOrder = append(lockOrder, line.ProductID)
		}
		sort.Slice(lockOrder, func(i, j int) bool { return lockOrder[i] < lockOrder[j] })

		products := make(map[int64]*entity.Product, len(lines))
		for _, id := range lockOrder {
			product, err := productRepo.GetByIDForUpdate(id)
			if err != nil {
				return err
			}
			if product == nil || !product.Visible {
				return fmt.Errorf("producto %d: %w", id, domain.ErrNotFound)
			}
			products[id] = product
		}

		// Verificar todas las líneas antes de escribir nada.
		for _, line := range lines {
			product := products[line.ProductID]
			if txType == entity.TransactionTypeExport {
				if product.Quantity-line.Quantity < 0 {
					return fmt.Errorf("producto %d: %w", line.ProductID, domain.ErrInsufficientStock)
				}
			} else if product.Quantity+line.Quantity > maxQuantity {
				return fmt.Errorf("producto %d: %w", line.ProductID, domain.ErrStockLimit)
			}
		}

		header := &entity.StockTransaction{
			Type:        txType,
			Note:        strings.TrimSpace(note),
			CreatedBy:   actorID,
			DateCreated: now,
		}
		transID, err := txRepo.CreateTransaction(header)
		if err != nil {
			return err
		}

		// Snapshot consolidado con las cantidades previas de todo el lote.
		prior := make([]undo.ProductState, 0, len(lines))
		for _, line := range lines {
			product := products[line.ProductID]
			prior = append(prior, undo.ProductState{ProductID: line.ProductID, Quantity: product.Quantity})

			if _, err := txRepo.AddDetail(&entity.TransactionDetail{
				TransactionID: transID,
				ProductID:     line.ProductID,
				ProductName:   product.Name,
				Quantity:      line.Quantity,
				UnitPrice:     line.UnitPrice,
			}); err != nil {
				return err
			}

			newQuantity := product.Quantity + line.Quantity
			if txType == entity.TransactionTypeExport {
				newQuantity = product.Quantity - line.Quantity
			}
			newValue := entity.ComputeInventoryValue(newQuantity, product.Price)
			if err := productRepo.UpdateQuantity(line.ProductID, newQuantity, newValue); err != nil {
				return err
			}

			res.Lines = append(res.Lines, MovementResult{
				TransactionID:    transID,
				ProductID:        line.ProductID,
				PreviousQuantity: product.Quantity,
				NewQuantity:      newQuantity,
				PreviousValue:    product.InventoryValue,
				NewValue:         newValue,
			})
		}
		if err := txRepo.UpdateTotalValue(transID); err != nil {
			return err
		}

		snap, err := undo.ForBatch(prior).Encode()
		if err != nil {
			return fmt.Errorf("encode snapshot: %w", err)
		}
		actionType := entity.ActionImportBatch
		verb := "Entrada"
		if txType == entity.TransactionTypeExport {
			actionType = entity.ActionExportBatch
			verb = "Salida"
		}
		if _, err := logRepo.Append(&entity.ActionLog{
			ActionType:   actionType,
			Descriptions: fmt.Sprintf("%s por lote de %d productos (comprobante %d)", verb, len(lines), transID),
			DataBefore:   snap,
			Visible:      true,
			CreatedAt:    now,
		}); err != nil {
			return err
		}

		res.TransactionID = transID
		return nil
	})
	if err != nil {
		res.Lines = nil
		return nil, err
	}
	return res, nil
}

func validateLine(productID, quantity int64, unitPrice decimal.Decimal) error {
	if productID <= 0 {
		return domain.ErrInvalidInput
	}
	if quantity <= 0 || quantity > maxQuantity {
		return domain.ErrInvalidInput
	}
	if unitPrice.IsNegative() || unitPrice.GreaterThan(decimal.NewFromInt(maxUnitPrice)) {
		return domain.ErrInvalidInput
	}
	return nil
}
