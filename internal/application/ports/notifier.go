package ports

import (
	"context"
	"errors"
	"time"

	"github.com/jhoicas/qcommerce-agent/internal/domain/entity"
)

// Notifier puerto hacia el servicio de automatización (webhook).
// Una llamada = un intento; reintentos y timeout los gobierna el dispatcher.
type Notifier interface {
	Notify(ctx context.Context, kind entity.EventKind, payload map[string]any) error
}

// Envelope evento encolado pendiente de envío.
type Envelope struct {
	ActionID   string           `json:"action_id"`
	Kind       entity.EventKind `json:"kind"`
	Payload    map[string]any   `json:"payload"`
	EnqueuedAt time.Time        `json:"enqueued_at"`
}

// ErrQueueFull la cola no acepta más eventos; Push nunca bloquea al caller.
var ErrQueueFull = errors.New("cola de notificaciones llena")

// ErrQueueClosed la cola fue cerrada.
var ErrQueueClosed = errors.New("cola de notificaciones cerrada")

// NotificationQueue desacopla el envío del camino crítico del cálculo.
type NotificationQueue interface {
	// Push encola sin bloquear; devuelve ErrQueueFull si no hay espacio.
	Push(ctx context.Context, env Envelope) error
	// Pop bloquea hasta que haya un evento, se cancele ctx o se cierre la cola.
	Pop(ctx context.Context) (Envelope, error)
	Close() error
}
