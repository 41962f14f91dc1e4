// Package memory implementa los repositorios sobre slices en memoria. Se usa cuando
// el dataset viene de CSV/XLSX y en tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/jhoicas/qcommerce-agent/internal/domain"
	"github.com/jhoicas/qcommerce-agent/internal/domain/entity"
	"github.com/jhoicas/qcommerce-agent/internal/domain/repository"
)

var (
	_ repository.SalesRepository     = (*Store)(nil)
	_ repository.InventoryRepository = (*Store)(nil)
	_ repository.ActionLogRepository = (*Store)(nil)
)

// Store dataset en memoria, seguro para uso concurrente.
type Store struct {
	mu        sync.RWMutex
	sales     []entity.SalesRecord
	inventory []entity.InventoryRecord
	actions   []entity.ActionLog
}

// NewStore copia los slices recibidos.
func NewStore(sales []entity.SalesRecord, inventory []entity.InventoryRecord) *Store {
	s := &Store{}
	s.Replace(sales, inventory)
	return s
}

// Replace reemplaza ventas e inventario (recarga del dataset).
func (s *Store) Replace(sales []entity.SalesRecord, inventory []entity.InventoryRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sales = append([]entity.SalesRecord(nil), sales...)
	s.inventory = append([]entity.InventoryRecord(nil), inventory...)
}

// SetStock actualiza el stock de (ciudad, producto). ErrNotFound si no existe.
func (s *Store) SetStock(city, product string, stock int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.inventory {
		if s.inventory[i].City == city && s.inventory[i].Product == product {
			s.inventory[i].CurrentStock = stock
			return nil
		}
	}
	return fmt.Errorf("inventario %s/%s: %w", city, product, domain.ErrNotFound)
}

// GetSales ventas que cumplen el filtro, por fecha.
func (s *Store) GetSales(ctx context.Context, f repository.SalesFilter) ([]entity.SalesRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.SalesRecord, 0)
	for _, r := range s.sales {
		if f.Matches(r) {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

// GetInventory filas que cumplen el filtro, por ciudad y producto.
func (s *Store) GetInventory(ctx context.Context, f repository.InventoryFilter) ([]entity.InventoryRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.InventoryRecord, 0)
	for _, r := range s.inventory {
		if f.Matches(r) {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].City != out[j].City {
			return out[i].City < out[j].City
		}
		return out[i].Product < out[j].Product
	})
	return out, nil
}

// Create registra una acción.
func (s *Store) Create(_ context.Context, a *entity.ActionLog) error {
	if a.ID == "" {
		return domain.NewValidationError("id", "es obligatorio")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.actions = append(s.actions, *a)
	return nil
}

// UpdateStatus cambia estado y respuesta de una acción.
func (s *Store) UpdateStatus(_ context.Context, id, status, response string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.actions {
		if s.actions[i].ID == id {
			s.actions[i].Status = status
			s.actions[i].Response = response
			return nil
		}
	}
	return fmt.Errorf("acción %s: %w", id, domain.ErrNotFound)
}

// ListRecent últimas acciones, la más reciente primero.
func (s *Store) ListRecent(_ context.Context, limit int) ([]entity.ActionLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.ActionLog, 0, limit)
	for i := len(s.actions) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.actions[i])
	}
	return out, nil
}
