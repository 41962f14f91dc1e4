package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryRecord snapshot de stock de un producto en una ciudad.
// ReorderLevel es el umbral por debajo del cual se considera reponer.
type InventoryRecord struct {
	City          string
	Product       string
	Category      string
	CurrentStock  int
	ReorderLevel  int
	Supplier      string
	MaxCapacity   int             // opcional (0 = desconocido)
	LeadTimeDays  int             // opcional
	CostPerUnit   decimal.Decimal // opcional
	LastRestocked time.Time       // opcional
}

// Stock status según el umbral de reorden.
const (
	StockLow    = "LOW_STOCK"
	StockMedium = "MEDIUM_STOCK"
	StockHigh   = "HIGH_STOCK"
)

// StockStatus clasifica el registro: <= reorden es bajo, <= 1.5x reorden es medio.
func (r InventoryRecord) StockStatus() string {
	switch {
	case r.CurrentStock <= r.ReorderLevel:
		return StockLow
	case float64(r.CurrentStock) <= float64(r.ReorderLevel)*1.5:
		return StockMedium
	default:
		return StockHigh
	}
}
