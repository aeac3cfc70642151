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

const testActorID int64 = 7

func newLedger(store *memStore) *inventory.LedgerUseCase {
	return inventory.NewLedgerUseCase(&fakeTxRunner{store: store}, &fakeTransactionRepo{s: store})
}

// ──────────────────────────────────────────────────────────────────────────────
// Movimientos simples
// ──────────────────────────────────────────────────────────────────────────────

func TestImportStock_ActualizaCantidadYValor(t *testing.T) {
	store := newMemStore()
	productID := store.seedProduct("Tornillos", 10, decimal.NewFromInt(5), 3)
	uc := newLedger(store)

	res, err := uc.ImportStock(context.Background(), testActorID, productID, 15, decimal.NewFromInt(4), "compra semanal")
	require.NoError(t, err)

	assert.Equal(t, int64(10), res.PreviousQuantity)
	assert.Equal(t, int64(25), res.NewQuantity)
	assert.True(t, res.NewValue.Equal(decimal.NewFromInt(125)), "InventoryValue = 25 × 5, con el precio del producto")

	p := store.products[productID]
	assert.Equal(t, int64(25), p.Quantity)
	assert.True(t, p.InventoryValue.Equal(decimal.NewFromInt(125)))

	// Comprobante con una línea y total = cantidad × precio unitario
	trans := store.transactions[res.TransactionID]
	require.NotNil(t, trans)
	assert.Equal(t, entity.TransactionTypeImport, trans.Type)
	assert.Equal(t, testActorID, trans.CreatedBy)
	assert.True(t, trans.TotalValue.Equal(decimal.NewFromInt(60)), "total = 15 × 4")

	// Una entrada de auditoría deshacible con la cantidad previa
	logRepo := &fakeLogRepo{s: store}
	entry, err := logRepo.MostRecentUndoable()
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, entity.ActionImportStock, entry.ActionType)
	snap, err := undo.Decode(entry.DataBefore)
	require.NoError(t, err)
	require.Len(t, snap.States(), 1)
	assert.Equal(t, int64(10), snap.States()[0].Quantity)
}

func TestExportStock_DescuentaYConservaNombrePuntual(t *testing.T) {
	store := newMemStore()
	productID := store.seedProduct("Cemento", 40, decimal.NewFromInt(20), 5)
	uc := newLedger(store)

	res, err := uc.ExportStock(context.Background(), testActorID, productID, 12, decimal.NewFromInt(25), "")
	require.NoError(t, err)
	assert.Equal(t, int64(28), res.NewQuantity)

	trans, err := uc.GetTransactionByID(context.Background(), res.TransactionID)
	require.NoError(t, err)
	require.Len(t, trans.Details, 1)
	assert.Equal(t, "Cemento", trans.Details[0].ProductName, "la línea copia el nombre al momento de la operación")
	assert.True(t, trans.TotalValue.Equal(decimal.NewFromInt(300)), "total = 12 × 25")
}

func TestExportStock_InsuficienteNoPersisteNada(t *testing.T) {
	store := newMemStore()
	productID := store.seedProduct("Pintura", 50, decimal.NewFromInt(10), 5)
	uc := newLedger(store)

	_, err := uc.ExportStock(context.Background(), testActorID, productID, 60, decimal.NewFromInt(10), "")
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Nada cambió: ni stock, ni comprobantes, ni auditoría.
	assert.Equal(t, int64(50), store.products[productID].Quantity)
	assert.Empty(t, store.transactions)
	assert.Empty(t, store.logs)
}

func TestImportStock_ExcedeLimiteDeStock(t *testing.T) {
	store := newMemStore()
	productID := store.seedProduct("Arena", 999_990, decimal.NewFromInt(1), 0)
	uc := newLedger(store)

	_, err := uc.ImportStock(context.Background(), testActorID, productID, 100, decimal.NewFromInt(1), "")
	require.ErrorIs(t, err, domain.ErrStockLimit)
	assert.Equal(t, int64(999_990), store.products[productID].Quantity)
}

func TestImportStock_ValidacionDeEntrada(t *testing.T) {
	store := newMemStore()
	productID := store.seedProduct("Clavos", 10, decimal.NewFromInt(2), 1)
	uc := newLedger(store)
	ctx := context.Background()

	_, err := uc.ImportStock(ctx, testActorID, 0, 5, decimal.NewFromInt(1), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "product_id inválido")

	_, err = uc.ImportStock(ctx, testActorID, productID, 0, decimal.NewFromInt(1), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero")

	_, err = uc.ImportStock(ctx, testActorID, productID, 5, decimal.NewFromInt(-1), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "precio negativo")
}

func TestImportStock_ProductoInexistenteOBorrado(t *testing.T) {
	store := newMemStore()
	hiddenID := store.seedProduct("Oculto", 10, decimal.NewFromInt(2), 1)
	store.products[hiddenID].Visible = false
	uc := newLedger(store)
	ctx := context.Background()

	_, err := uc.ImportStock(ctx, testActorID, 999, 5, decimal.NewFromInt(1), "")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.ImportStock(ctx, testActorID, hiddenID, 5, decimal.NewFromInt(1), "")
	assert.ErrorIs(t, err, domain.ErrNotFound, "un producto oculto no admite movimientos")
}

// ──────────────────────────────────────────────────────────────────────────────
// Lotes: todo o nada
// ──────────────────────────────────────────────────────────────────────────────

func TestImportBatch_UnComprobanteUnaEntradaDeAuditoria(t *testing.T) {
	store := newMemStore()
	a := store.seedProduct("A", 1, decimal.NewFromInt(10), 0)
	b := store.seedProduct("B", 2, decimal.NewFromInt(20), 0)
	c := store.seedProduct("C", 3, decimal.NewFromInt(30), 0)
	uc := newLedger(store)

	res, err := uc.ImportBatch(context.Background(), testActorID, []inventory.BatchLine{
		{ProductID: c, Quantity: 7, UnitPrice: decimal.NewFromInt(30)},
		{ProductID: a, Quantity: 5, UnitPrice: decimal.NewFromInt(10)},
		{ProductID: b, Quantity: 6, UnitPrice: decimal.NewFromInt(20)},
	}, "lote de prueba")
	require.NoError(t, err)
	require.Len(t, res.Lines, 3)

	assert.Equal(t, int64(10), store.products[c].Quantity)
	assert.Equal(t, int64(6), store.products[a].Quantity)
	assert.Equal(t, int64(8), store.products[b].Quantity)

	// Una sola cabecera; las líneas conservan el orden de entrada.
	assert.Len(t, store.transactions, 1)
	trans, err := uc.GetTransactionByID(context.Background(), res.TransactionID)
	require.NoError(t, err)
	require.Len(t, trans.Details, 3)
	assert.Equal(t, c, trans.Details[0].ProductID)
	assert.Equal(t, a, trans.Details[1].ProductID)
	assert.Equal(t, b, trans.Details[2].ProductID)
	assert.True(t, trans.TotalValue.Equal(decimal.NewFromInt(380)), "total = 7×30 + 5×10 + 6×20")

	// Una única entrada de auditoría consolidada para todo el lote.
	require.Len(t, store.logs, 1)
	for _, entry := range store.logs {
		assert.Equal(t, entity.ActionImportBatch, entry.ActionType)
		snap, err := undo.Decode(entry.DataBefore)
		require.NoError(t, err)
		assert.Len(t, snap.States(), 3)
	}
}

func TestExportBatch_UnaLineaInvalidaRevierteTodo(t *testing.T) {
	store := newMemStore()
	ids := make([]int64, 0, 5)
	for i := 0; i < 5; i++ {
		ids = append(ids, store.seedProduct("P", 100, decimal.NewFromInt(1), 0))
	}
	uc := newLedger(store)

	lines := []inventory.BatchLine{
		{ProductID: ids[0], Quantity: 10, UnitPrice: decimal.NewFromInt(1)},
		{ProductID: ids[1], Quantity: 10, UnitPrice: decimal.NewFromInt(1)},
		{ProductID: ids[2], Quantity: 500, UnitPrice: decimal.NewFromInt(1)}, // insuficiente
		{ProductID: ids[3], Quantity: 10, UnitPrice: decimal.NewFromInt(1)},
		{ProductID: ids[4], Quantity: 10, UnitPrice: decimal.NewFromInt(1)},
	}
	_, err := uc.ExportBatch(context.Background(), testActorID, lines, "")
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Ni siquiera las líneas anteriores a la fallida quedaron aplicadas.
	for _, id := range ids {
		assert.Equal(t, int64(100), store.products[id].Quantity)
	}
	assert.Empty(t, store.transactions)
	assert.Empty(t, store.details)
	assert.Empty(t, store.logs)
}

func TestBatch_ProductoDuplicadoRechazado(t *testing.T) {
	store := newMemStore()
	id := store.seedProduct("Único", 10, decimal.NewFromInt(1), 0)
	uc := newLedger(store)

	_, err := uc.ImportBatch(context.Background(), testActorID, []inventory.BatchLine{
		{ProductID: id, Quantity: 1, UnitPrice: decimal.NewFromInt(1)},
		{ProductID: id, Quantity: 2, UnitPrice: decimal.NewFromInt(1)},
	}, "")
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestBatch_LoteVacioRechazado(t *testing.T) {
	uc := newLedger(newMemStore())
	_, err := uc.ImportBatch(context.Background(), testActorID, nil, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Gestión de detalles
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateDetail_RecalculaTotal(t *testing.T) {
	store := newMemStore()
	productID := store.seedProduct("Ladrillos", 100, decimal.NewFromInt(2), 0)
	uc := newLedger(store)
	ctx := context.Background()

	res, err := uc.ImportStock(ctx, testActorID, productID, 10, decimal.NewFromInt(2), "")
	require.NoError(t, err)

	trans, err := uc.GetTransactionByID(ctx, res.TransactionID)
	require.NoError(t, err)
	detailID := trans.Details[0].ID

	require.NoError(t, uc.UpdateDetail(ctx, testActorID, res.TransactionID, detailID, 4, decimal.NewFromInt(3)))

	trans, err = uc.GetTransactionByID(ctx, res.TransactionID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), trans.Details[0].Quantity)
	assert.True(t, trans.TotalValue.Equal(decimal.NewFromInt(12)), "total recalculado = 4 × 3")

	// El stock no cambia: la edición de línea es correctiva, no un movimiento.
	assert.Equal(t, int64(110), store.products[productID].Quantity)
}

func TestRemoveDetail_LineaAjena(t *testing.T) {
	store := newMemStore()
	p1 := store.seedProduct("Uno", 100, decimal.NewFromInt(1), 0)
	p2 := store.seedProduct("Dos", 100, decimal.NewFromInt(1), 0)
	uc := newLedger(store)
	ctx := context.Background()

	res1, err := uc.ImportStock(ctx, testActorID, p1, 5, decimal.NewFromInt(1), "")
	require.NoError(t, err)
	res2, err := uc.ImportStock(ctx, testActorID, p2, 5, decimal.NewFromInt(1), "")
	require.NoError(t, err)

	trans2, err := uc.GetTransactionByID(ctx, res2.TransactionID)
	require.NoError(t, err)

	// La línea pertenece a otro comprobante → NOT_FOUND y nada se borra.
	err = uc.RemoveDetail(ctx, testActorID, res1.TransactionID, trans2.Details[0].ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Len(t, store.details, 2)
}
