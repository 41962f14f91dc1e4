package dto

// AllocationRequest body para POST /api/allocations.
type AllocationRequest struct {
	Product       string `json:"product"`
	TotalQuantity int    `json:"total_quantity"`
	LookbackDays  int    `json:"lookback_days,omitempty"` // 0 = valor por defecto (7)
	Notify        bool   `json:"notify,omitempty"`        // encolar aviso a la automatización
}

// CityAllocationDTO asignación de una ciudad.
type CityAllocationDTO struct {
	City          string  `json:"city"`
	Units         int     `json:"units"`
	HistoricUnits int     `json:"historic_units"` // ventas en la ventana usadas como base
	SharePct      float64 `json:"share_pct"`      // % de la demanda histórica
}

// AllocationResponse resultado del reparto. Σ Allocations[].Units == TotalQuantity.
type AllocationResponse struct {
	Product        string              `json:"product"`
	TotalQuantity  int                 `json:"total_quantity"`
	LookbackDays   int                 `json:"lookback_days"`
	Allocations    []CityAllocationDTO `json:"allocations"`
	Recommendation string              `json:"recommendation,omitempty"`
	ActionID       string              `json:"action_id,omitempty"`
	Warnings       []string            `json:"warnings,omitempty"`
}

// RestockAlertDTO ítem urgente de reposición.
type RestockAlertDTO struct {
	Priority     int     `json:"priority"` // 1 = más urgente
	City         string  `json:"city"`
	Product      string  `json:"product"`
	Supplier     string  `json:"supplier,omitempty"`
	CurrentStock int     `json:"current_stock"`
	ReorderLevel int     `json:"reorder_level"`
	RecentDemand float64 `json:"recent_demand"`
	UrgencyRank  float64 `json:"urgency_rank"`
	ColdStart    bool    `json:"cold_start"`

	SuggestedQuantity int `json:"suggested_quantity"`
	LeadTimeDays      int `json:"lead_time_days,omitempty"`
}

// RestockResponse respuesta de GET /api/restock/urgent.
type RestockResponse struct {
	ThresholdRatio float64           `json:"threshold_ratio"`
	WindowDays     int               `json:"window_days"`
	Total          int               `json:"total"`
	Alerts         []RestockAlertDTO `json:"alerts"`
	ActionID       string            `json:"action_id,omitempty"`
	Warnings       []string          `json:"warnings,omitempty"`
}

// InventoryItemDTO fila del inventario con estado de stock.
type InventoryItemDTO struct {
	City         string `json:"city"`
	Product      string `json:"product"`
	Category     string `json:"category"`
	CurrentStock int    `json:"current_stock"`
	ReorderLevel int    `json:"reorder_level"`
	MaxCapacity  int    `json:"max_capacity,omitempty"`
	Supplier     string `json:"supplier"`
	LeadTimeDays int    `json:"lead_time_days,omitempty"`
	StockStatus  string `json:"stock_status"` // LOW_STOCK | MEDIUM_STOCK | HIGH_STOCK
}
