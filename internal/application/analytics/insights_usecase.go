// Package analytics contiene los casos de uso de lectura para el tablero de operación:
// KPIs recientes, desempeño por ciudad y resumen de ventas.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/qcommerce-agent/internal/application/dto"
	"github.com/jhoicas/qcommerce-agent/internal/domain"
	"github.com/jhoicas/qcommerce-agent/internal/domain/entity"
	"github.com/jhoicas/qcommerce-agent/internal/domain/repository"
)

// Valores por defecto del tablero.
const (
	DefaultWindowDays    = 7
	DefaultCriticalStock = 5
	maxWindowDays        = 365
)

// InsightsUseCase agrega ventas e inventario. Solo lectura; no guarda estado.
type InsightsUseCase struct {
	salesRepo     repository.SalesRepository
	inventoryRepo repository.InventoryRepository
	criticalStock int
	now           func() time.Time
}

// NewInsightsUseCase construye el caso de uso. criticalStock <= 0 usa DefaultCriticalStock.
func NewInsightsUseCase(
	salesRepo repository.SalesRepository,
	inventoryRepo repository.InventoryRepository,
	criticalStock int,
) *InsightsUseCase {
	if criticalStock <= 0 {
		criticalStock = DefaultCriticalStock
	}
	return &InsightsUseCase{
		salesRepo:     salesRepo,
		inventoryRepo: inventoryRepo,
		criticalStock: criticalStock,
		now:           time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *InsightsUseCase) WithClock(now func() time.Time) *InsightsUseCase {
	uc.now = now
	return uc
}

// GetInsights KPIs de los últimos 7 días.
//
// Dos lecturas en paralelo:
//  1. ventas de la ventana → ingresos, unidades y ranking de ciudades
//  2. inventario completo  → ítems bajo nivel de reorden y alertas críticas
func (uc *InsightsUseCase) GetInsights(ctx context.Context) (*dto.InsightsDTO, error) {
	type salesResult struct {
		rows []entity.SalesRecord
		err  error
	}
	type inventoryResult struct {
		rows []entity.InventoryRecord
		err  error
	}

	salesCh := make(chan salesResult, 1)
	invCh := make(chan inventoryResult, 1)

	go func() {
		rows, err := uc.windowSales(ctx, DefaultWindowDays)
		salesCh <- salesResult{rows, err}
	}()
	go func() {
		rows, err := uc.inventoryRepo.GetInventory(ctx, repository.InventoryFilter{})
		invCh <- inventoryResult{rows, err}
	}()

	sales := <-salesCh
	inv := <-invCh

	if sales.err != nil {
		return nil, fmt.Errorf("insights: ventas: %w", sales.err)
	}
	if inv.err != nil {
		return nil, fmt.Errorf("insights: inventario: %w", inv.err)
	}

	out := &dto.InsightsDTO{WindowDays: DefaultWindowDays, TotalRevenue: decimal.Zero}
	for _, s := range sales.rows {
		out.TotalRevenue = out.TotalRevenue.Add(s.Revenue)
		out.TotalUnitsSold += s.UnitsSold
	}
	out.TotalRevenue = out.TotalRevenue.Round(2)

	for _, r := range inv.rows {
		if r.CurrentStock > r.ReorderLevel {
			continue
		}
		out.LowStockCount++
		if r.CurrentStock <= uc.criticalStock {
			out.CriticalAlerts++
		}
	}

	cities := cityPerformance(sales.rows)
	if len(cities) > 0 {
		out.TopPerformingCity = cities[0].City
		out.BottomPerformingCity = cities[len(cities)-1].City
	}
	return out, nil
}

// CityPerformance métricas por ciudad en los últimos days días, ingresos desc.
func (uc *InsightsUseCase) CityPerformance(ctx context.Context, days int) ([]dto.CityPerformanceDTO, error) {
	days, err := normalizeDays(days)
	if err != nil {
		return nil, err
	}
	rows, err := uc.windowSales(ctx, days)
	if err != nil {
		return nil, fmt.Errorf("desempeño por ciudad: %w", err)
	}
	return cityPerformance(rows), nil
}

// SalesSummary ventas por (ciudad, producto) en los últimos days días, unidades desc.
func (uc *InsightsUseCase) SalesSummary(ctx context.Context, days int) ([]dto.SalesSummaryDTO, error) {
	days, err := normalizeDays(days)
	if err != nil {
		return nil, err
	}
	rows, err := uc.windowSales(ctx, days)
	if err != nil {
		return nil, fmt.Errorf("resumen de ventas: %w", err)
	}

	type key struct{ city, product string }
	type acc struct {
		units   int
		revenue decimal.Decimal
		aovSum  decimal.Decimal
		n       int
		days    map[string]struct{}
	}
	groups := make(map[key]*acc)
	for _, s := range rows {
		k := key{s.City, s.Product}
		a, ok := groups[k]
		if !ok {
			a = &acc{days: map[string]struct{}{}}
			groups[k] = a
		}
		a.units += s.UnitsSold
		a.revenue = a.revenue.Add(s.Revenue)
		a.aovSum = a.aovSum.Add(s.AvgOrderValue)
		a.n++
		a.days[s.Date.Format("2006-01-02")] = struct{}{}
	}

	out := make([]dto.SalesSummaryDTO, 0, len(groups))
	for k, a := range groups {
		out = append(out, dto.SalesSummaryDTO{
			City:          k.city,
			Product:       k.product,
			TotalUnits:    a.units,
			TotalRevenue:  a.revenue.Round(2),
			AvgOrderValue: mean(a.aovSum, a.n),
			DaysWithSales: len(a.days),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalUnits != out[j].TotalUnits {
			return out[i].TotalUnits > out[j].TotalUnits
		}
		if out[i].City != out[j].City {
			return out[i].City < out[j].City
		}
		return out[i].Product < out[j].Product
	})
	return out, nil
}

func (uc *InsightsUseCase) windowSales(ctx context.Context, days int) ([]entity.SalesRecord, error) {
	return uc.salesRepo.GetSales(ctx, repository.LastDays(uc.now(), days))
}

func cityPerformance(rows []entity.SalesRecord) []dto.CityPerformanceDTO {
	type acc struct {
		units    int
		revenue  decimal.Decimal
		aovSum   decimal.Decimal
		n        int
		products map[string]struct{}
	}
	groups := make(map[string]*acc)
	for _, s := range rows {
		a, ok := groups[s.City]
		if !ok {
			a = &acc{products: map[string]struct{}{}}
			groups[s.City] = a
		}
		a.units += s.UnitsSold
		a.revenue = a.revenue.Add(s.Revenue)
		a.aovSum = a.aovSum.Add(s.AvgOrderValue)
		a.n++
		a.products[s.Product] = struct{}{}
	}

	out := make([]dto.CityPerformanceDTO, 0, len(groups))
	for city, a := range groups {
		out = append(out, dto.CityPerformanceDTO{
			City:          city,
			TotalUnits:    a.units,
			TotalRevenue:  a.revenue.Round(2),
			ProductsSold:  len(a.products),
			AvgOrderValue: mean(a.aovSum, a.n),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].TotalRevenue.Cmp(out[j].TotalRevenue); c != 0 {
			return c > 0
		}
		return out[i].City < out[j].City
	})
	return out
}

func mean(sum decimal.Decimal, n int) decimal.Decimal {
	if n == 0 {
		return decimal.Zero
	}
	return sum.Div(decimal.NewFromInt(int64(n))).Round(2)
}

func normalizeDays(days int) (int, error) {
	if days == 0 {
		return DefaultWindowDays, nil
	}
	if days < 0 || days > maxWindowDays {
		return 0, domain.NewValidationError("days", fmt.Sprintf("debe estar entre 1 y %d", maxWindowDays))
	}
	return days, nil
}
