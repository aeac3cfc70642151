// Package undo define el snapshot tipado que la auditoría guarda en
// DataBefore. Se reemplaza el blob JSON libre del diseño anterior por una
// variante etiquetada por tipo, para que la deserialización del undo sea
// exhaustiva y verificada en compilación.
package undo

import (
	"bytes"
	"encoding/json"

	"github.com/jhoicas/almacen-api/internal/domain"
)

// Kinds de snapshot. KindEmpty marca la ausencia normalizada de estado:
// los consumidores nunca distinguen entre null y vacío.
const (
	KindEmpty    = "EMPTY"
	KindQuantity = "QUANTITY"
	KindBatch    = "BATCH_QUANTITY"
)

// ProductState cantidad de un producto en un instante dado.
type ProductState struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

// Snapshot estado serializable previo a una mutación, suficiente para
// revertirla. Product aplica a KindQuantity; Items a KindBatch.
type Snapshot struct {
	Kind    string         `json:"kind"`
	Product *ProductState  `json:"product,omitempty"`
	Items   []ProductState `json:"items,omitempty"`
}

// Empty snapshot sin estado (objeto vacío explícito, nunca null).
func Empty() Snapshot {
	return Snapshot{Kind: KindEmpty}
}

// ForProduct snapshot de la cantidad previa de un solo producto.
func ForProduct(productID, quantity int64) Snapshot {
	return Snapshot{Kind: KindQuantity, Product: &ProductState{ProductID: productID, Quantity: quantity}}
}

// ForBatch snapshot consolidado de las cantidades previas de un lote.
func ForBatch(items []ProductState) Snapshot {
	return Snapshot{Kind: KindBatch, Items: items}
}

// States devuelve los estados a restaurar, sin importar la variante.
func (s Snapshot) States() []ProductState {
	switch s.Kind {
	case KindQuantity:
		if s.Product == nil {
			return nil
		}
		return []ProductState{*s.Product}
	case KindBatch:
		return s.Items
	}
	return nil
}

// IsEmpty indica si el snapshot no tiene estado restaurable.
func (s Snapshot) IsEmpty() bool {
	return len(s.States()) == 0
}

// Encode serializa el snapshot a JSON.
func (s Snapshot) Encode() ([]byte, error) {
	return json.Marshal(s)
}

// Normalize garantiza que DataBefore nunca sea null ni texto en blanco:
// la entrada vacía se convierte en el objeto vacío explícito.
func Normalize(raw []byte) []byte {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		b, _ := Empty().Encode()
		return b
	}
	return trimmed
}

// Decode deserializa DataBefore. Texto vacío u objeto vacío se normalizan a
// KindEmpty; JSON malformado o una variante desconocida/incoherente se
// reportan como domain.ErrCorruptAuditEntry (nunca se ignoran).
func Decode(raw []byte) (Snapshot, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) || bytes.Equal(trimmed, []byte("{}")) {
		return Empty(), nil
	}
	var s Snapshot
	if err := json.Unmarshal(trimmed, &s); err != nil {
		return Snapshot{}, domain.ErrCorruptAuditEntry
	}
	switch s.Kind {
	case KindEmpty:
		return Empty(), nil
	case KindQuantity:
		if s.Product == nil {
			return Snapshot{}, domain.ErrCorruptAuditEntry
		}
	case KindBatch:
		if len(s.Items) == 0 {
			return Snapshot{}, domain.ErrCorruptAuditEntry
		}
	default:
		return Snapshot{}, domain.ErrCorruptAuditEntry
	}
	return s, nil
}
