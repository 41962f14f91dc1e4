package dto

import (
	"math"

	"github.com/jhoicas/qcommerce-agent/internal/domain/entity"
)

// FromAllocation arma la respuesta de reparto (ciudades por asignación desc).
func FromAllocation(res *entity.AllocationResult) *AllocationResponse {
	historic := 0
	for _, u := range res.UnitsByCity {
		historic += u
	}
	cities := res.Cities()
	out := &AllocationResponse{
		Product:       res.Product,
		TotalQuantity: res.TotalQuantity,
		LookbackDays:  res.LookbackDays,
		Allocations:   make([]CityAllocationDTO, 0, len(cities)),
	}
	for _, c := range cities {
		share := 0.0
		if historic > 0 {
			share = math.Round(float64(res.UnitsByCity[c])*10000/float64(historic)) / 100
		}
		out.Allocations = append(out.Allocations, CityAllocationDTO{
			City:          c,
			Units:         res.Allocations[c],
			HistoricUnits: res.UnitsByCity[c],
			SharePct:      share,
		})
	}
	return out
}

// FromRestockAlerts conserva el orden de urgencia recibido.
func FromRestockAlerts(alerts []entity.RestockAlert) []RestockAlertDTO {
	out := make([]RestockAlertDTO, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, RestockAlertDTO{
			Priority:     a.Priority,
			City:         a.City,
			Product:      a.Product,
			Supplier:     a.Supplier,
			CurrentStock: a.CurrentStock,
			ReorderLevel: a.ReorderLevel,
			RecentDemand: a.RecentDemand,
			UrgencyRank:  math.Round(a.UrgencyRank*10000) / 10000,
			ColdStart:    a.ColdStart,

			SuggestedQuantity: a.SuggestedQuantity,
			LeadTimeDays:      a.LeadTimeDays,
		})
	}
	return out
}

// FromInventory filas de inventario con su estado de stock.
func FromInventory(rows []entity.InventoryRecord) []InventoryItemDTO {
	out := make([]InventoryItemDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, InventoryItemDTO{
			City:         r.City,
			Product:      r.Product,
			Category:     r.Category,
			CurrentStock: r.CurrentStock,
			ReorderLevel: r.ReorderLevel,
			MaxCapacity:  r.MaxCapacity,
			Supplier:     r.Supplier,
			LeadTimeDays: r.LeadTimeDays,
			StockStatus:  r.StockStatus(),
		})
	}
	return out
}
