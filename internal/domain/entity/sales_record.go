package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesRecord hecho histórico inmutable: unidades vendidas de un producto en una ciudad en un día.
type SalesRecord struct {
	Date          time.Time
	City          string
	Product       string
	Category      string
	UnitsSold     int
	Revenue       decimal.Decimal
	AvgOrderValue decimal.Decimal
}
