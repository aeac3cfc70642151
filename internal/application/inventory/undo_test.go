package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/undo"
)

func newUndo(store *memStore) *inventory.UndoUseCase {
	return inventory.NewUndoUseCase(&fakeTxRunner{store: store})
}

// Escenario de referencia: producto con 50 unidades a precio 10.
// Una salida de 60 falla sin efectos; una de 20 deja {30, 300}; el undo
// restaura {50, 500}.
func TestUndo_EscenarioSalidaYReversion(t *testing.T) {
	store := newMemStore()
	productID := store.seedProduct("Varilla", 50, decimal.NewFromInt(10), 5)
	ledger := newLedger(store)
	undoUC := newUndo(store)
	ctx := context.Background()

	_, err := ledger.ExportStock(ctx, testActorID, productID, 60, decimal.NewFromInt(10), "")
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(50), store.products[productID].Quantity)

	_, err = ledger.ExportStock(ctx, testActorID, productID, 20, decimal.NewFromInt(10), "")
	require.NoError(t, err)
	assert.Equal(t, int64(30), store.products[productID].Quantity)
	assert.True(t, store.products[productID].InventoryValue.Equal(decimal.NewFromInt(300)))

	res, err := undoUC.UndoLastAction(ctx, testActorID)
	require.NoError(t, err)
	assert.True(t, res.Reverted)

	assert.Equal(t, int64(50), store.products[productID].Quantity)
	assert.True(t, store.products[productID].InventoryValue.Equal(decimal.NewFromInt(500)),
		"el valor se recalcula con el precio vigente al restaurar")
}

func TestUndo_SellaEntradaYRegistraUndoAction(t *testing.T) {
	store := newMemStore()
	productID := store.seedProduct("Malla", 10, decimal.NewFromInt(3), 0)
	ledger := newLedger(store)
	undoUC := newUndo(store)
	ctx := context.Background()

	_, err := ledger.ImportStock(ctx, testActorID, productID, 5, decimal.NewFromInt(3), "")
	require.NoError(t, err)

	logRepo := &fakeLogRepo{s: store}
	original, err := logRepo.MostRecentUndoable()
	require.NoError(t, err)
	require.NotNil(t, original)

	res, err := undoUC.UndoLastAction(ctx, testActorID)
	require.NoError(t, err)
	require.True(t, res.Reverted)

	// La entrada original quedó sellada.
	sealed, err := logRepo.GetByID(original.ID)
	require.NoError(t, err)
	assert.False(t, sealed.Visible)

	// La reversión quedó registrada como UNDO_ACTION con el estado previo
	// a restaurar (la cantidad que tenía el producto antes del undo).
	undoEntries, err := logRepo.ListByType(entity.ActionUndo, 10, 0)
	require.NoError(t, err)
	require.Len(t, undoEntries, 1)
	snap, err := undo.Decode(undoEntries[0].DataBefore)
	require.NoError(t, err)
	require.Len(t, snap.States(), 1)
	assert.Equal(t, int64(15), snap.States()[0].Quantity)
}

func TestUndo_SegundoUndoConsecutivoNoHaceNada(t *testing.T) {
	store := newMemStore()
	productID := store.seedProduct("Cable", 10, decimal.NewFromInt(2), 0)
	ledger := newLedger(store)
	undoUC := newUndo(store)
	ctx := context.Background()

	_, err := ledger.ImportStock(ctx, testActorID, productID, 5, decimal.NewFromInt(2), "")
	require.NoError(t, err)

	first, err := undoUC.UndoLastAction(ctx, testActorID)
	require.NoError(t, err)
	assert.True(t, first.Reverted)
	assert.Equal(t, int64(10), store.products[productID].Quantity)

	// UNDO_ACTION está excluido del conjunto deshacible: un segundo undo
	// consecutivo es NothingToUndo, no una re-reversión.
	second, err := undoUC.UndoLastAction(ctx, testActorID)
	require.NoError(t, err)
	assert.False(t, second.Reverted)
	assert.Equal(t, int64(10), store.products[productID].Quantity)
}

func TestUndo_SinHistorialDevuelveNothingToUndo(t *testing.T) {
	undoUC := newUndo(newMemStore())

	res, err := undoUC.UndoLastAction(context.Background(), testActorID)
	require.NoError(t, err, "sin nada que deshacer no es un error")
	assert.False(t, res.Reverted)
	assert.Empty(t, res.Description)
}

func TestUndo_RestauraTodoElLote(t *testing.T) {
	store := newMemStore()
	a := store.seedProduct("A", 10, decimal.NewFromInt(1), 0)
	b := store.seedProduct("B", 20, decimal.NewFromInt(2), 0)
	ledger := newLedger(store)
	undoUC := newUndo(store)
	ctx := context.Background()

	_, err := ledger.ExportBatch(ctx, testActorID, []inventory.BatchLine{
		{ProductID: a, Quantity: 4, UnitPrice: decimal.NewFromInt(1)},
		{ProductID: b, Quantity: 9, UnitPrice: decimal.NewFromInt(2)},
	}, "")
	require.NoError(t, err)
	assert.Equal(t, int64(6), store.products[a].Quantity)
	assert.Equal(t, int64(11), store.products[b].Quantity)

	res, err := undoUC.UndoLastAction(ctx, testActorID)
	require.NoError(t, err)
	require.True(t, res.Reverted)

	assert.Equal(t, int64(10), store.products[a].Quantity)
	assert.Equal(t, int64(20), store.products[b].Quantity)
}

func TestUndo_SnapshotCorrupto(t *testing.T) {
	store := newMemStore()
	store.seedProduct("X", 10, decimal.NewFromInt(1), 0)
	logRepo := &fakeLogRepo{s: store}
	_, err := logRepo.Append(&entity.ActionLog{
		ActionType:   entity.ActionImportStock,
		Descriptions: "entrada con snapshot roto",
		DataBefore:   []byte(`{"kind":"QUANTITY"`), // JSON truncado
		Visible:      true,
	})
	require.NoError(t, err)

	undoUC := newUndo(store)
	_, err = undoUC.UndoLastAction(context.Background(), testActorID)
	assert.ErrorIs(t, err, domain.ErrCorruptAuditEntry)
}

func TestUndo_EntradaDeshacibleSinEstadoEsCorrupta(t *testing.T) {
	store := newMemStore()
	logRepo := &fakeLogRepo{s: store}
	_, err := logRepo.Append(&entity.ActionLog{
		ActionType:   entity.ActionImportStock,
		Descriptions: "entrada sin snapshot",
		DataBefore:   nil, // se normaliza a objeto vacío
		Visible:      true,
	})
	require.NoError(t, err)

	undoUC := newUndo(store)
	_, err = undoUC.UndoLastAction(context.Background(), testActorID)
	assert.ErrorIs(t, err, domain.ErrCorruptAuditEntry,
		"una entrada deshacible sin estado restaurable es dato corrupto")
}

func TestUndo_ProductoDelSnapshotYaNoExiste(t *testing.T) {
	store := newMemStore()
	snap, err := undo.ForProduct(999, 5).Encode()
	require.NoError(t, err)
	logRepo := &fakeLogRepo{s: store}
	_, err = logRepo.Append(&entity.ActionLog{
		ActionType:   entity.ActionExportStock,
		Descriptions: "salida de un producto luego eliminado",
		DataBefore:   snap,
		Visible:      true,
	})
	require.NoError(t, err)

	undoUC := newUndo(store)
	_, err = undoUC.UndoLastAction(context.Background(), testActorID)
	assert.ErrorIs(t, err, domain.ErrUndoTargetMissing)

	// La transacción se revirtió: la entrada sigue visible, sin UNDO_ACTION.
	entry, err := (&fakeLogRepo{s: store}).MostRecentUndoable()
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.True(t, entry.Visible)
	count, err := (&fakeLogRepo{s: store}).Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
