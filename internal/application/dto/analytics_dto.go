package dto

import "github.com/shopspring/decimal"

// InsightsDTO respuesta de GET /api/insights (KPIs de la ventana reciente).
type InsightsDTO struct {
	WindowDays           int             `json:"window_days"`
	TotalRevenue         decimal.Decimal `json:"total_revenue"`
	TotalUnitsSold       int             `json:"total_units_sold"`
	LowStockCount        int             `json:"low_stock_count"`
	CriticalAlerts       int             `json:"critical_alerts"` // stock <= umbral crítico
	TopPerformingCity    string          `json:"top_performing_city,omitempty"`
	BottomPerformingCity string          `json:"bottom_performing_city,omitempty"`
}

// CityPerformanceDTO métricas agregadas por ciudad (orden: ingresos desc).
type CityPerformanceDTO struct {
	City          string          `json:"city"`
	TotalUnits    int             `json:"total_units"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	ProductsSold  int             `json:"products_sold"`
	AvgOrderValue decimal.Decimal `json:"avg_order_value"`
}

// SalesSummaryDTO ventas agregadas por (ciudad, producto) (orden: unidades desc).
type SalesSummaryDTO struct {
	City          string          `json:"city"`
	Product       string          `json:"product"`
	TotalUnits    int             `json:"total_units"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	AvgOrderValue decimal.Decimal `json:"avg_order_value"`
	DaysWithSales int             `json:"days_with_sales"`
}
