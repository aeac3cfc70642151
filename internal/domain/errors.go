package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrStockLimit        = errors.New("el stock resultante supera el límite permitido")
	ErrCorruptAuditEntry = errors.New("entrada de auditoría corrupta")
	ErrUndoTargetMissing = errors.New("el producto referido por la auditoría ya no existe")
)
