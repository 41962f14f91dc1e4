package repository

import (
	"context"

	"github.com/jhoicas/qcommerce-agent/internal/domain/entity"
)

// ActionLogRepository persiste la traza de acciones enviadas a la automatización.
type ActionLogRepository interface {
	Create(ctx context.Context, action *entity.ActionLog) error
	UpdateStatus(ctx context.Context, id, status, response string) error
	ListRecent(ctx context.Context, limit int) ([]entity.ActionLog, error)
}
