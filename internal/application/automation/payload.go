package automation

import "github.com/jhoicas/qcommerce-agent/internal/domain/entity"

// AllocationPayload registro plano de un reparto para el webhook.
func AllocationPayload(res *entity.AllocationResult) map[string]any {
	allocations := make(map[string]any, len(res.Allocations))
	for city, q := range res.Allocations {
		allocations[city] = q
	}
	return map[string]any{
		"action_type":    "inventory_allocation",
		"product":        res.Product,
		"total_quantity": res.TotalQuantity,
		"lookback_days":  res.LookbackDays,
		"allocations":    allocations,
	}
}

// RestockAlertPayload registro plano de una alerta de reposición.
func RestockAlertPayload(a entity.RestockAlert) map[string]any {
	return map[string]any{
		"action_type":   "restock_alert",
		"city":          a.City,
		"product":       a.Product,
		"supplier":      a.Supplier,
		"current_stock": a.CurrentStock,
		"reorder_level": a.ReorderLevel,
		"recent_demand": a.RecentDemand,
		"urgency_rank":  a.UrgencyRank,
		"priority":      a.Priority,
		"cold_start":    a.ColdStart,
	}
}
