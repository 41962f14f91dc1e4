package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/qcommerce-agent/internal/domain/entity"
)

// LoadResult filas copiadas por tabla.
type LoadResult struct {
	Sales     int64
	Inventory int64
}

// BulkLoad reemplaza ventas e inventario en una sola transacción usando COPY.
// Si falla cualquier paso no queda nada a medias.
func BulkLoad(ctx context.Context, pool *pgxpool.Pool, sales []entity.SalesRecord, inventory []entity.InventoryRecord) (LoadResult, error) {
	var res LoadResult
	err := NewTxRunner(pool).Run(ctx, func(tx pgx.Tx) error {
		if err := EnsureSchema(ctx, tx); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `TRUNCATE sales_data, inventory_data`); err != nil {
			return fmt.Errorf("truncate: %w", err)
		}

		n, err := tx.CopyFrom(ctx,
			pgx.Identifier{"sales_data"},
			[]string{"date", "city", "product", "category", "units_sold", "revenue", "avg_order_value"},
			pgx.CopyFromSlice(len(sales), func(i int) ([]any, error) {
				s := sales[i]
				return []any{s.Date, s.City, s.Product, s.Category, s.UnitsSold, s.Revenue, s.AvgOrderValue}, nil
			}),
		)
		if err != nil {
			return fmt.Errorf("copy sales_data: %w", err)
		}
		res.Sales = n

		n, err = tx.CopyFrom(ctx,
			pgx.Identifier{"inventory_data"},
			[]string{"city", "product", "category", "current_stock", "reorder_level", "max_capacity",
				"cost_per_unit", "supplier", "lead_time_days", "last_restocked"},
			pgx.CopyFromSlice(len(inventory), func(i int) ([]any, error) {
				r := inventory[i]
				var last any
				if !r.LastRestocked.IsZero() {
					last = r.LastRestocked
				}
				return []any{r.City, r.Product, r.Category, r.CurrentStock, r.ReorderLevel, r.MaxCapacity,
					r.CostPerUnit, r.Supplier, r.LeadTimeDays, last}, nil
			}),
		)
		if err != nil {
			return fmt.Errorf("copy inventory_data: %w", err)
		}
		res.Inventory = n
		return nil
	})
	if err != nil {
		return LoadResult{}, err
	}
	return res, nil
}
