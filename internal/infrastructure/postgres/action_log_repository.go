package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/qcommerce-agent/internal/domain"
	"github.com/jhoicas/qcommerce-agent/internal/domain/entity"
	"github.com/jhoicas/qcommerce-agent/internal/domain/repository"
)

var _ repository.ActionLogRepository = (*ActionLogRepo)(nil)

// ActionLogRepo traza de acciones enviadas a la automatización.
type ActionLogRepo struct {
	q Querier
}

// NewActionLogRepository construye el adaptador. Acepta pool o tx.
func NewActionLogRepository(q Querier) *ActionLogRepo {
	return &ActionLogRepo{q: q}
}

// Create inserta la acción; genera el ID si viene vacío.
func (r *ActionLogRepo) Create(ctx context.Context, a *entity.ActionLog) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	const query = `
		INSERT INTO action_log (id, timestamp, action_type, details, status, endpoint, response)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, a.ID, a.Timestamp, string(a.ActionType), a.Details, a.Status, a.Endpoint, a.Response)
	if err != nil {
		return wrapErr("action_log.Create", err)
	}
	return nil
}

// UpdateStatus cambia estado y respuesta. ErrNotFound si el ID no existe.
func (r *ActionLogRepo) UpdateStatus(ctx context.Context, id, status, response string) error {
	tag, err := r.q.Exec(ctx, `UPDATE action_log SET status = $2, response = $3 WHERE id = $1`, id, status, response)
	if err != nil {
		return wrapErr("action_log.UpdateStatus", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("action_log %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ListRecent últimas acciones, la más reciente primero.
func (r *ActionLogRepo) ListRecent(ctx context.Context, limit int) ([]entity.ActionLog, error) {
	const query = `
		SELECT id::text, timestamp, action_type, details, status, endpoint, response
		FROM action_log ORDER BY timestamp DESC LIMIT $1`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, wrapErr("action_log.ListRecent", err)
	}
	defer rows.Close()

	out := make([]entity.ActionLog, 0, limit)
	for rows.Next() {
		var (
			a    entity.ActionLog
			kind string
		)
		if err := rows.Scan(&a.ID, &a.Timestamp, &kind, &a.Details, &a.Status, &a.Endpoint, &a.Response); err != nil {
			return nil, fmt.Errorf("action_log.ListRecent scan: %w", err)
		}
		a.ActionType = entity.EventKind(kind)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("action_log.ListRecent rows: %w", err)
	}
	return out, nil
}
