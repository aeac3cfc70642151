package entity

import "time"

// Tipos de acción registrados en la auditoría.
const (
	ActionImportStock = "IMPORT_STOCK"
	ActionExportStock = "EXPORT_STOCK"
	ActionImportBatch = "IMPORT_BATCH"
	ActionExportBatch = "EXPORT_BATCH"
	ActionUndo        = "UNDO_ACTION"
)

// ActionLog es una entrada del diario de auditoría (append-only).
// DataBefore guarda el snapshot serializado del estado previo a la mutación;
// nunca es NULL: ante ausencia se normaliza a un objeto vacío.
// Visible=false significa que la entrada fue consumida por undo o borrada
// suavemente; nunca se edita una entrada existente.
type ActionLog struct {
	ID           int64
	ActionType   string
	Descriptions string
	DataBefore   []byte
	Visible      bool
	CreatedAt    time.Time
}
