package dto

import (
	"time"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// ActionLogResponse una entrada del diario de auditoría. El snapshot interno
// (data_before) no se expone: es un detalle del motor de undo.
type ActionLogResponse struct {
	ID           int64     `json:"id"`
	ActionType   string    `json:"action_type"`
	Descriptions string    `json:"descriptions"`
	Visible      bool      `json:"visible"`
	CreatedAt    time.Time `json:"created_at"`
}

// ActionLogCountResponse total de entradas del diario.
type ActionLogCountResponse struct {
	Total int64 `json:"total"`
}

// PurgeLogsRequest body para POST /api/action-logs/purge.
type PurgeLogsRequest struct {
	OlderThanDays int `json:"older_than_days" validate:"required,gt=0"`
}

// PurgeLogsResponse entradas eliminadas físicamente.
type PurgeLogsResponse struct {
	Purged int64 `json:"purged"`
}

// ToActionLogResponse mapea la entidad a su DTO de salida.
func ToActionLogResponse(l *entity.ActionLog) ActionLogResponse {
	return ActionLogResponse{
		ID:           l.ID,
		ActionType:   l.ActionType,
		Descriptions: l.Descriptions,
		Visible:      l.Visible,
		CreatedAt:    l.CreatedAt,
	}
}

// ToActionLogResponses mapea una lista de entradas.
func ToActionLogResponses(list []*entity.ActionLog) []ActionLogResponse {
	out := make([]ActionLogResponse, 0, len(list))
	for _, l := range list {
		out = append(out, ToActionLogResponse(l))
	}
	return out
}
