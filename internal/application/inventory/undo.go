package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/internal/domain/undo"
)

// UndoUseCase revierte la última acción deshacible del diario de auditoría.
// Es un undo de UN solo nivel: la entrada revertida se sella (Visible=false)
// y la reversión queda registrada como UNDO_ACTION, que está excluida del
// conjunto deshacible, por lo que un segundo undo consecutivo devuelve
// NothingToUndo en lugar de re-revertir. Ese comportamiento es deliberado.
type UndoUseCase struct {
	txRunner TxRunner
}

// NewUndoUseCase construye el caso de uso.
func NewUndoUseCase(txRunner TxRunner) *UndoUseCase {
	return &UndoUseCase{txRunner: txRunner}
}

// UndoResult resultado de un intento de undo. Reverted=false (sin error)
// significa que no había nada que deshacer.
type UndoResult struct {
	Reverted    bool
	Description string
}

// UndoLastAction lee la entrada deshacible más reciente, restaura las
// cantidades previas de cada producto afectado, sella la entrada y registra
// un UNDO_ACTION con el estado justo anterior a la reversión. Todo dentro de
// una transacción, con las filas de producto bloqueadas igual que en un
// ajuste ordinario.
func (uc *UndoUseCase) UndoLastAction(ctx context.Context, actorID int64) (*UndoResult, error) {
	res := &UndoResult{}

	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		txRepo repository.StockTransactionRepository,
		logRepo repository.ActionLogRepository,
	) error {
		entry, err := logRepo.MostRecentUndoableForUpdate()
		if err != nil {
			return err
		}
		if entry == nil {
			// NothingToUndo: resultado normal, no un error.
			return nil
		}

		snap, err := undo.Decode(entry.DataBefore)
		if err != nil {
			return fmt.Errorf("log %d: %w", entry.ID, err)
		}
		// El motor siempre escribe un snapshot restaurable en las entradas
		// deshacibles; una entrada sin estado es dato de auditoría corrupto.
		if snap.IsEmpty() {
			return fmt.Errorf("log %d: %w", entry.ID, domain.ErrCorruptAuditEntry)
		}

		// Estado justo antes de la reversión, para el registro UNDO_ACTION.
		current := make([]undo.ProductState, 0, len(snap.States()))

		for _, state := range snap.States() {
			product, err := productRepo.GetByIDForUpdate(state.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return fmt.Errorf("producto %d: %w", state.ProductID, domain.ErrUndoTargetMissing)
			}
			if state.Quantity < 0 {
				return fmt.Errorf("log %d: %w", entry.ID, domain.ErrCorruptAuditEntry)
			}
			current = append(current, undo.ProductState{ProductID: product.ID, Quantity: product.Quantity})

			value := entity.ComputeInventoryValue(state.Quantity, product.Price)
			if err := productRepo.UpdateQuantity(state.ProductID, state.Quantity, value); err != nil {
				return err
			}
		}

		if err := logRepo.Seal(entry.ID); err != nil {
			return err
		}

		undoSnap, err := undo.ForBatch(current).Encode()
		if err != nil {
			return fmt.Errorf("encode snapshot: %w", err)
		}
		description := fmt.Sprintf("Reversión de %s (log %d)", entry.ActionType, entry.ID)
		if _, err := logRepo.Append(&entity.ActionLog{
			ActionType:   entity.ActionUndo,
			Descriptions: description,
			DataBefore:   undoSnap,
			Visible:      true,
		}); err != nil {
			return err
		}

		res.Reverted = true
		res.Description = description
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
