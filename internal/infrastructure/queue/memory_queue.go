// Package queue implementa NotificationQueue en memoria (canal acotado) y sobre Redis.
package queue

import (
	"context"
	"sync"

	"github.com/jhoicas/qcommerce-agent/internal/application/ports"
)

var _ ports.NotificationQueue = (*MemoryQueue)(nil)

// MemoryQueue cola acotada sobre canal. Los eventos pendientes se pierden al reiniciar.
type MemoryQueue struct {
	ch     chan ports.Envelope
	done   chan struct{}
	closed sync.Once
}

// NewMemoryQueue size <= 0 usa 128.
func NewMemoryQueue(size int) *MemoryQueue {
	if size <= 0 {
		size = 128
	}
	return &MemoryQueue{ch: make(chan ports.Envelope, size), done: make(chan struct{})}
}

// Push encola sin bloquear.
func (q *MemoryQueue) Push(_ context.Context, env ports.Envelope) error {
	select {
	case <-q.done:
		return ports.ErrQueueClosed
	default:
	}
	select {
	case q.ch <- env:
		return nil
	default:
		return ports.ErrQueueFull
	}
}

// Pop espera el próximo evento. Tras Close se siguen entregando los pendientes.
func (q *MemoryQueue) Pop(ctx context.Context) (ports.Envelope, error) {
	select {
	case env := <-q.ch:
		return env, nil
	default:
	}
	select {
	case env := <-q.ch:
		return env, nil
	case <-q.done:
		return ports.Envelope{}, ports.ErrQueueClosed
	case <-ctx.Done():
		return ports.Envelope{}, ctx.Err()
	}
}

// Len eventos pendientes.
func (q *MemoryQueue) Len() int { return len(q.ch) }

// Close deja de aceptar eventos. Idempotente.
func (q *MemoryQueue) Close() error {
	q.closed.Do(func() { close(q.done) })
	return nil
}
