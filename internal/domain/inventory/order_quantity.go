package inventory

import "math"

// SuggestOrderQuantity unidades a pedir para volver al nivel objetivo.
//
// Objetivo: capacidad máxima si se conoce, si no el doble del nivel de reorden;
// nunca menos que la demanda estimada de la ventana. Siempre pide al menos 1.
func SuggestOrderQuantity(stock, reorderLevel, maxCapacity int, demandEstimate float64) int {
	target := maxCapacity
	if target <= 0 {
		target = 2 * reorderLevel
	}
	if d := int(math.Ceil(demandEstimate)); d > target {
		target = d
	}
	if q := target - stock; q > 0 {
		return q
	}
	return 1
}
