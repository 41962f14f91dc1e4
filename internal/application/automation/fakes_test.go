package automation_test

import (
	"context"
	"errors"
	"sync"

	"github.com/jhoicas/qcommerce-agent/internal/application/ports"
	"github.com/jhoicas/qcommerce-agent/internal/domain/entity"
	"github.com/jhoicas/qcommerce-agent/internal/domain/repository"
)

// recordingNotifier guarda los eventos entregados; fail decide el resultado de cada intento.
type recordingNotifier struct {
	mu    sync.Mutex
	calls []entity.EventKind
	sent  []map[string]any
	fail  func(ctx context.Context, attempt int) error
}

func (n *recordingNotifier) Notify(ctx context.Context, kind entity.EventKind, payload map[string]any) error {
	n.mu.Lock()
	n.calls = append(n.calls, kind)
	attempt := len(n.calls)
	n.mu.Unlock()
	if n.fail != nil {
		if err := n.fail(ctx, attempt); err != nil {
			return err
		}
	}
	n.mu.Lock()
	n.sent = append(n.sent, payload)
	n.mu.Unlock()
	return nil
}

func (n *recordingNotifier) Calls() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.calls)
}

// alwaysTimeout simula un endpoint que no responde nunca.
func alwaysTimeout(ctx context.Context, _ int) error {
	<-ctx.Done()
	return ctx.Err()
}

// chanQueue cola acotada sobre canal.
type chanQueue struct {
	ch     chan ports.Envelope
	closed chan struct{}
	once   sync.Once
}

func newChanQueue(size int) *chanQueue {
	return &chanQueue{ch: make(chan ports.Envelope, size), closed: make(chan struct{})}
}

func (q *chanQueue) Push(_ context.Context, env ports.Envelope) error {
	select {
	case <-q.closed:
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

func (q *chanQueue) Pop(ctx context.Context) (ports.Envelope, error) {
	select {
	case env := <-q.ch:
		return env, nil
	case <-q.closed:
		return ports.Envelope{}, ports.ErrQueueClosed
	case <-ctx.Done():
		return ports.Envelope{}, ctx.Err()
	}
}

func (q *chanQueue) Close() error {
	q.once.Do(func() { close(q.closed) })
	return nil
}

// actionStore ActionLogRepository en memoria.
type actionStore struct {
	mu   sync.Mutex
	logs map[string]*entity.ActionLog
	ids  []string
}

func newActionStore() *actionStore {
	return &actionStore{logs: map[string]*entity.ActionLog{}}
}

func (s *actionStore) Create(_ context.Context, a *entity.ActionLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *a
	s.logs[a.ID] = &cp
	s.ids = append(s.ids, a.ID)
	return nil
}

func (s *actionStore) UpdateStatus(_ context.Context, id, status, response string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.logs[id]
	if !ok {
		return errors.New("no existe")
	}
	a.Status = status
	a.Response = response
	return nil
}

func (s *actionStore) ListRecent(_ context.Context, limit int) ([]entity.ActionLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []entity.ActionLog{}
	for i := len(s.ids) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, *s.logs[s.ids[i]])
	}
	return out, nil
}

func (s *actionStore) Status(id string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.logs[id]; ok {
		return a.Status
	}
	return ""
}

// inventoryStub InventoryRepository con filas fijas.
type inventoryStub struct {
	rows []entity.InventoryRecord
}

func (s *inventoryStub) GetInventory(_ context.Context, f repository.InventoryFilter) ([]entity.InventoryRecord, error) {
	var out []entity.InventoryRecord
	for _, r := range s.rows {
		if f.Matches(r) {
			out = append(out, r)
		}
	}
	return out, nil
}
