package entity

import "github.com/shopspring/decimal"

// RestockAlert derivado y efímero; se recalcula en cada consulta.
// La fuente de verdad sigue siendo InventoryRecord.
type RestockAlert struct {
	City         string
	Product      string
	Supplier     string
	CurrentStock int
	ReorderLevel int
	RecentDemand float64 // unidades estimadas en la ventana reciente
	UrgencyRank  float64 // stock / (demanda + 1); menor = más urgente
	ColdStart    bool    // sin ventas recientes: se evaluó contra ReorderLevel
	Priority     int     // 1 = más urgente

	SuggestedQuantity int             // unidades a pedir para volver al nivel objetivo
	LeadTimeDays      int             // opcional
	UnitCost          decimal.Decimal // opcional
}
