package repository

import (
	"context"

	"github.com/jhoicas/qcommerce-agent/internal/domain/entity"
)

// InventoryFilter filtros opcionales para el snapshot de inventario.
type InventoryFilter struct {
	City    string
	Product string
}

// Matches indica si el registro cumple el filtro.
func (f InventoryFilter) Matches(r entity.InventoryRecord) bool {
	if f.City != "" && r.City != f.City {
		return false
	}
	if f.Product != "" && r.Product != f.Product {
		return false
	}
	return true
}

// InventoryRepository puerto de lectura del inventario actual.
// Las implementaciones devuelven copias; el núcleo de decisión no retiene referencias.
type InventoryRepository interface {
	GetInventory(ctx context.Context, filter InventoryFilter) ([]entity.InventoryRecord, error)
}
