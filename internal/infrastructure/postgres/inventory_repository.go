package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/qcommerce-agent/internal/domain/entity"
	"github.com/jhoicas/qcommerce-agent/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo lectura del snapshot de inventario por (ciudad, producto).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador. Acepta pool o tx.
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// GetInventory filas que cumplen el filtro, por ciudad y producto.
func (r *InventoryRepo) GetInventory(ctx context.Context, f repository.InventoryFilter) ([]entity.InventoryRecord, error) {
	query := `
		SELECT city, product, category, current_stock, reorder_level, max_capacity,
		       cost_per_unit, supplier, lead_time_days, last_restocked
		FROM inventory_data WHERE 1=1`
	var args []any
	if f.City != "" {
		args = append(args, f.City)
		query += fmt.Sprintf(" AND city = $%d", len(args))
	}
	if f.Product != "" {
		args = append(args, f.Product)
		query += fmt.Sprintf(" AND product = $%d", len(args))
	}
	query += " ORDER BY city, product"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapErr("inventory.GetInventory", err)
	}
	defer rows.Close()

	out := make([]entity.InventoryRecord, 0)
	for rows.Next() {
		var (
			rec           entity.InventoryRecord
			lastRestocked *time.Time
		)
		if err := rows.Scan(
			&rec.City, &rec.Product, &rec.Category, &rec.CurrentStock, &rec.ReorderLevel, &rec.MaxCapacity,
			&rec.CostPerUnit, &rec.Supplier, &rec.LeadTimeDays, &lastRestocked,
		); err != nil {
			return nil, fmt.Errorf("inventory.GetInventory scan: %w", err)
		}
		if lastRestocked != nil {
			rec.LastRestocked = *lastRestocked
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("inventory.GetInventory rows: %w", err)
	}
	return out, nil
}
