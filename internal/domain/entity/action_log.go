package entity

import "time"

// EventKind tipo de evento enviado al servicio de automatización.
type EventKind string

const (
	EventAllocation   EventKind = "ALLOCATION"
	EventRestockAlert EventKind = "RESTOCK_ALERT"
	EventRestockOrder EventKind = "RESTOCK_ORDER"
	EventAlert        EventKind = "ALERT"
)

// Valid indica si el tipo de evento es conocido.
func (k EventKind) Valid() bool {
	switch k {
	case EventAllocation, EventRestockAlert, EventRestockOrder, EventAlert:
		return true
	}
	return false
}

// Estados de una acción registrada.
const (
	ActionPending   = "pending"
	ActionCompleted = "completed"
	ActionFailed    = "failed"
)

// ActionLog traza de una acción disparada hacia la automatización (webhook).
type ActionLog struct {
	ID         string
	Timestamp  time.Time
	ActionType EventKind
	Details    string
	Status     string
	Endpoint   string
	Response   string
}
