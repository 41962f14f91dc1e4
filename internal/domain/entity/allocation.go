package entity

import "sort"

// AllocationRequest pide repartir TotalQuantity unidades de Product entre ciudades.
type AllocationRequest struct {
	Product       string
	TotalQuantity int
}

// AllocationResult reparto por ciudad. Invariante: Sum() == TotalQuantity.
type AllocationResult struct {
	Product       string
	TotalQuantity int
	LookbackDays  int
	Allocations   map[string]int // ciudad → unidades asignadas
	UnitsByCity   map[string]int // ventas históricas usadas como base
}

// Sum total de unidades asignadas.
func (r AllocationResult) Sum() int {
	total := 0
	for _, q := range r.Allocations {
		total += q
	}
	return total
}

// Cities devuelve las ciudades ordenadas por asignación descendente y nombre.
func (r AllocationResult) Cities() []string {
	cities := make([]string, 0, len(r.Allocations))
	for c := range r.Allocations {
		cities = append(cities, c)
	}
	sort.Slice(cities, func(i, j int) bool {
		a, b := r.Allocations[cities[i]], r.Allocations[cities[j]]
		if a != b {
			return a > b
		}
		return cities[i] < cities[j]
	})
	return cities
}
