package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ActionLogUseCase consultas y mantenimiento del diario de auditoría.
// No participa en el contrato de undo: eso es del UndoUseCase.
type ActionLogUseCase struct {
	logRepo repository.ActionLogRepository
}

// NewActionLogUseCase construye el caso de uso.
func NewActionLogUseCase(logRepo repository.ActionLogRepository) *ActionLogUseCase {
	return &ActionLogUseCase{logRepo: logRepo}
}

// GetByID devuelve una entrada por ID.
func (uc *ActionLogUseCase) GetByID(ctx context.Context, id int64) (*entity.ActionLog, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidInput
	}
	log, err := uc.logRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if log == nil {
		return nil, domain.ErrNotFound
	}
	return log, nil
}

// List lista entradas; actionType y rango de fechas son opcionales.
func (uc *ActionLogUseCase) List(ctx context.Context, actionType string, from, to *time.Time, limit, offset int) ([]*entity.ActionLog, error) {
	if limit <= 0 {
		limit = 20
	}
	if from != nil && to != nil {
		if from.After(*to) {
			return nil, domain.ErrInvalidInput
		}
		return uc.logRepo.ListByDateRange(*from, *to, limit, offset)
	}
	if actionType != "" {
		return uc.logRepo.ListByType(actionType, limit, offset)
	}
	return uc.logRepo.List(limit, offset)
}

// Count total de entradas del diario.
func (uc *ActionLogUseCase) Count(ctx context.Context) (int64, error) {
	return uc.logRepo.Count()
}

// Delete borra suavemente una entrada (Visible=false). La entrada deja de
// ser deshacible pero se conserva para historial.
func (uc *ActionLogUseCase) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.ErrInvalidInput
	}
	log, err := uc.logRepo.GetByID(id)
	if err != nil {
		return err
	}
	if log == nil {
		return domain.ErrNotFound
	}
	return uc.logRepo.Seal(id)
}

// PurgeOlderThan elimina físicamente entradas con más de days días.
func (uc *ActionLogUseCase) PurgeOlderThan(ctx context.Context, days int) (int64, error) {
	if days <= 0 {
		return 0, domain.ErrInvalidInput
	}
	return uc.logRepo.PurgeOlderThan(days)
}
