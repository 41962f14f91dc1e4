package inventory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/jhoicas/qcommerce-agent/internal/domain"
	"github.com/jhoicas/qcommerce-agent/internal/domain/entity"
	domaininv "github.com/jhoicas/qcommerce-agent/internal/domain/inventory"
	"github.com/jhoicas/qcommerce-agent/internal/domain/repository"
)

// Valores por defecto del asesor de reposición.
const (
	DefaultRestockWindowDays = 3
	DefaultThresholdRatio    = 0.2
)

// RestockUseCase detecta los ítems que requieren reposición urgente y los ordena por urgencia.
// No guarda estado entre llamadas: el stock puede cambiar entre consultas.
type RestockUseCase struct {
	salesRepo     repository.SalesRepository
	inventoryRepo repository.InventoryRepository
	windowDays    int
	now           func() time.Time
}

// NewRestockUseCase construye el caso de uso. windowDays <= 0 usa DefaultRestockWindowDays.
func NewRestockUseCase(
	salesRepo repository.SalesRepository,
	inventoryRepo repository.InventoryRepository,
	windowDays int,
) *RestockUseCase {
	if windowDays <= 0 {
		windowDays = DefaultRestockWindowDays
	}
	return &RestockUseCase{
		salesRepo:     salesRepo,
		inventoryRepo: inventoryRepo,
		windowDays:    windowDays,
		now:           time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *RestockUseCase) WithClock(now func() time.Time) *RestockUseCase {
	uc.now = now
	return uc
}

// WindowDays ventana reciente configurada.
func (uc *RestockUseCase) WindowDays() int { return uc.windowDays }

// FindUrgentRestocks devuelve los ítems urgentes, el más urgente primero.
//
// Por cada registro de inventario se promedian las ventas diarias de (ciudad, producto)
// en la ventana reciente. Urgente si stock < thresholdRatio * promedio * días; sin ventas
// recientes se usa stock < nivel de reorden. Orden: stock/(demanda+1) ascendente, luego
// stock ascendente, luego ciudad y producto para que la salida sea determinista.
func (uc *RestockUseCase) FindUrgentRestocks(ctx context.Context, thresholdRatio float64) ([]entity.RestockAlert, error) {
	if thresholdRatio <= 0 || math.IsNaN(thresholdRatio) || math.IsInf(thresholdRatio, 0) {
		return nil, domain.NewValidationError("threshold_ratio", "debe ser un número mayor que 0")
	}

	records, err := uc.inventoryRepo.GetInventory(ctx, repository.InventoryFilter{})
	if err != nil {
		return nil, fmt.Errorf("reposición: leer inventario: %w", err)
	}
	if len(records) == 0 {
		return []entity.RestockAlert{}, nil
	}

	sales, err := uc.salesRepo.GetSales(ctx, repository.LastDays(uc.now(), uc.windowDays))
	if err != nil {
		return nil, fmt.Errorf("reposición: leer ventas: %w", err)
	}

	type key struct{ city, product string }
	recent := make(map[key]int, len(records))
	for _, s := range sales {
		recent[key{s.City, s.Product}] += s.UnitsSold
	}

	alerts := make([]entity.RestockAlert, 0)
	for _, r := range records {
		u := domaininv.EvaluateUrgency(r.CurrentStock, r.ReorderLevel, recent[key{r.City, r.Product}], uc.windowDays, thresholdRatio)
		if !u.Urgent {
			continue
		}
		alerts = append(alerts, entity.RestockAlert{
			City:         r.City,
			Product:      r.Product,
			Supplier:     r.Supplier,
			CurrentStock: r.CurrentStock,
			ReorderLevel: r.ReorderLevel,
			RecentDemand: u.DemandEstimate,
			UrgencyRank:  u.Rank,
			ColdStart:    u.ColdStart,

			SuggestedQuantity: domaininv.SuggestOrderQuantity(r.CurrentStock, r.ReorderLevel, r.MaxCapacity, u.DemandEstimate),
			LeadTimeDays:      r.LeadTimeDays,
			UnitCost:          r.CostPerUnit,
		})
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		a, b := alerts[i], alerts[j]
		if a.UrgencyRank != b.UrgencyRank || a.CurrentStock != b.CurrentStock {
			return domaininv.MoreUrgent(a.UrgencyRank, a.CurrentStock, b.UrgencyRank, b.CurrentStock)
		}
		if a.City != b.City {
			return a.City < b.City
		}
		return a.Product < b.Product
	})

	for i := range alerts {
		alerts[i].Priority = i + 1
	}
	return alerts, nil
}

// LowStock devuelve los registros con stock <= nivel de reorden, menor stock primero.
func (uc *RestockUseCase) LowStock(ctx context.Context) ([]entity.InventoryRecord, error) {
	records, err := uc.inventoryRepo.GetInventory(ctx, repository.InventoryFilter{})
	if err != nil {
		return nil, fmt.Errorf("stock bajo: leer inventario: %w", err)
	}
	low := make([]entity.InventoryRecord, 0)
	for _, r := range records {
		if r.CurrentStock <= r.ReorderLevel {
			low = append(low, r)
		}
	}
	sort.SliceStable(low, func(i, j int) bool {
		if low[i].CurrentStock != low[j].CurrentStock {
			return low[i].CurrentStock < low[j].CurrentStock
		}
		if low[i].City != low[j].City {
			return low[i].City < low[j].City
		}
		return low[i].Product < low[j].Product
	})
	return low, nil
}

var statusOrder = map[string]int{entity.StockLow: 0, entity.StockMedium: 1, entity.StockHigh: 2}

// Inventory snapshot completo ordenado por estado de stock y luego stock ascendente.
func (uc *RestockUseCase) Inventory(ctx context.Context, filter repository.InventoryFilter) ([]entity.InventoryRecord, error) {
	records, err := uc.inventoryRepo.GetInventory(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("inventario: %w", err)
	}
	sort.SliceStable(records, func(i, j int) bool {
		si, sj := statusOrder[records[i].StockStatus()], statusOrder[records[j].StockStatus()]
		if si != sj {
			return si < sj
		}
		return records[i].CurrentStock < records[j].CurrentStock
	})
	return records, nil
}
