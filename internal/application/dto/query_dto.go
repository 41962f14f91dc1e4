package dto

// Intenciones soportadas por el endpoint de consultas estructuradas.
const (
	IntentAllocate    = "allocate"
	IntentRestock     = "restock"
	IntentPerformance = "performance"
)

// QueryRequest consulta ya interpretada aguas arriba (sin NLU en el servidor).
type QueryRequest struct {
	Intent         string  `json:"intent"`
	Product        string  `json:"product,omitempty"`
	TotalQuantity  int     `json:"total_quantity,omitempty"`
	LookbackDays   int     `json:"lookback_days,omitempty"`
	ThresholdRatio float64 `json:"threshold_ratio,omitempty"`
	Days           int     `json:"days,omitempty"`
}

// QueryResponse respuesta con datos estructurados + texto de recomendación.
type QueryResponse struct {
	Intent      string               `json:"intent"`
	Response    string               `json:"response"`
	Allocation  *AllocationResponse  `json:"allocation,omitempty"`
	Restock     []RestockAlertDTO    `json:"restock,omitempty"`
	Performance []CityPerformanceDTO `json:"performance,omitempty"`
	Warnings    []string             `json:"warnings,omitempty"`
}
