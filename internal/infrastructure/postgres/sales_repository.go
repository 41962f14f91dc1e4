package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/qcommerce-agent/internal/domain/entity"
	"github.com/jhoicas/qcommerce-agent/internal/domain/repository"
)

var _ repository.SalesRepository = (*SalesRepo)(nil)

// SalesRepo lectura del historial de ventas.
type SalesRepo struct {
	q Querier
}

// NewSalesRepository construye el adaptador. Acepta pool o tx.
func NewSalesRepository(q Querier) *SalesRepo {
	return &SalesRepo{q: q}
}

// GetSales ventas que cumplen el filtro, por fecha ascendente.
func (r *SalesRepo) GetSales(ctx context.Context, f repository.SalesFilter) ([]entity.SalesRecord, error) {
	query := `
		SELECT date, city, product, category, units_sold, revenue, avg_order_value
		FROM sales_data WHERE 1=1`
	var args []any
	add := func(cond string, v any) {
		args = append(args, v)
		query += fmt.Sprintf(" AND %s $%d", cond, len(args))
	}
	if f.Product != "" {
		add("product =", f.Product)
	}
	if f.City != "" {
		add("city =", f.City)
	}
	if !f.From.IsZero() {
		add("date >=", f.From)
	}
	if !f.To.IsZero() {
		add("date <", f.To)
	}
	query += " ORDER BY date, city, product"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapErr("sales.GetSales", err)
	}
	defer rows.Close()

	out := make([]entity.SalesRecord, 0)
	for rows.Next() {
		var s entity.SalesRecord
		if err := rows.Scan(&s.Date, &s.City, &s.Product, &s.Category, &s.UnitsSold, &s.Revenue, &s.AvgOrderValue); err != nil {
			return nil, fmt.Errorf("sales.GetSales scan: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sales.GetSales rows: %w", err)
	}
	return out, nil
}
