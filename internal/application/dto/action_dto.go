package dto

import "time"

// RestockOrderRequest body para POST /api/actions/restock.
type RestockOrderRequest struct {
	City     string `json:"city"`
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
}

// AlertRequest body para POST /api/actions/alert.
type AlertRequest struct {
	Message    string   `json:"message"`
	Priority   string   `json:"priority"`   // low | medium | high | critical (default medium)
	Recipients []string `json:"recipients"` // default operations@company.com
}

// ActionResponse resultado de registrar y encolar una acción.
type ActionResponse struct {
	ActionID string   `json:"action_id"`
	Message  string   `json:"message"`
	Warnings []string `json:"warnings,omitempty"`
}

// ActionLogDTO traza de una acción.
type ActionLogDTO struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	ActionType string    `json:"action_type"`
	Details    string    `json:"details"`
	Status     string    `json:"status"`
	Endpoint   string    `json:"endpoint,omitempty"`
	Response   string    `json:"response,omitempty"`
}

// NotifyRequest body para POST /api/notify (entrega síncrona).
type NotifyRequest struct {
	Event   string         `json:"event"` // ALLOCATION | RESTOCK_ALERT | RESTOCK_ORDER | ALERT
	Payload map[string]any `json:"payload"`
	Details string         `json:"details,omitempty"`
}

// NotifyResponse resultado de la entrega síncrona.
type NotifyResponse struct {
	ActionID  string `json:"action_id"`
	Delivered bool   `json:"delivered"`
	Error     string `json:"error,omitempty"`
}
