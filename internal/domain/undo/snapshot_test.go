package undo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/undo"
)

func TestDecode_RoundTripProducto(t *testing.T) {
	raw, err := undo.ForProduct(42, 17).Encode()
	require.NoError(t, err)

	snap, err := undo.Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, undo.KindQuantity, snap.Kind)
	require.Len(t, snap.States(), 1)
	assert.Equal(t, int64(42), snap.States()[0].ProductID)
	assert.Equal(t, int64(17), snap.States()[0].Quantity)
	assert.False(t, snap.IsEmpty())
}

func TestDecode_RoundTripLote(t *testing.T) {
	raw, err := undo.ForBatch([]undo.ProductState{
		{ProductID: 1, Quantity: 10},
		{ProductID: 2, Quantity: 0},
	}).Encode()
	require.NoError(t, err)

	snap, err := undo.Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, undo.KindBatch, snap.Kind)
	assert.Len(t, snap.States(), 2)
}

func TestDecode_VacioYNullSonEmpty(t *testing.T) {
	for _, raw := range [][]byte{nil, []byte(""), []byte("  "), []byte("null"), []byte("{}")} {
		snap, err := undo.Decode(raw)
		require.NoError(t, err, "entrada %q", raw)
		assert.Equal(t, undo.KindEmpty, snap.Kind)
		assert.True(t, snap.IsEmpty())
	}
}

func TestDecode_CorruptosReportanError(t *testing.T) {
	cases := map[string][]byte{
		"json malformado":      []byte(`{"kind":`),
		"kind desconocido":     []byte(`{"kind":"FULL_PRODUCT"}`),
		"quantity sin product": []byte(`{"kind":"QUANTITY"}`),
		"batch sin items":      []byte(`{"kind":"BATCH_QUANTITY","items":[]}`),
		"texto plano":          []byte(`restaurar a 5`),
	}
	for name, raw := range cases {
		_, err := undo.Decode(raw)
		assert.ErrorIs(t, err, domain.ErrCorruptAuditEntry, name)
	}
}

func TestNormalize_NuncaDevuelveNull(t *testing.T) {
	for _, raw := range [][]byte{nil, []byte(""), []byte("null"), []byte("  \n")} {
		out := undo.Normalize(raw)
		snap, err := undo.Decode(out)
		require.NoError(t, err)
		assert.True(t, snap.IsEmpty())
	}

	// Un snapshot ya válido pasa intacto (solo sin espacios exteriores).
	raw, err := undo.ForProduct(1, 2).Encode()
	require.NoError(t, err)
	assert.Equal(t, raw, undo.Normalize(append([]byte("  "), raw...)))
}
