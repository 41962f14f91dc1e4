package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrUnauthorized     = errors.New("no autorizado")
	ErrForbidden        = errors.New("acceso denegado")
	ErrValidation       = errors.New("validación fallida")
	ErrInsufficientData = errors.New("datos históricos insuficientes")
	ErrNotification     = errors.New("notificación fallida")
)

// ValidationError entrada rechazada antes de cualquier cálculo.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validación: " + e.Reason
	}
	return fmt.Sprintf("validación: %s: %s", e.Field, e.Reason)
}

// Is permite errors.Is(err, ErrValidation) y errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation || target == ErrInvalidInput
}

// NewValidationError atajo para construir un ValidationError.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// InsufficientDataError no existe base histórica para decidir. No se reintenta;
// el caller decide el fallback (reparto parejo, rechazo, etc.).
type InsufficientDataError struct {
	Product      string
	LookbackDays int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("sin ventas de %q en los últimos %d días", e.Product, e.LookbackDays)
}

func (e *InsufficientDataError) Is(target error) bool { return target == ErrInsufficientData }

// NotificationError fallo del envío al servicio de automatización.
// Nunca hace fallar el cálculo que lo originó: se registra y se reporta como advertencia.
type NotificationError struct {
	Kind     string
	Attempts int
	Err      error
}

func (e *NotificationError) Error() string {
	if e.Attempts == 0 {
		return fmt.Sprintf("notificación %s no encolada: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("notificación %s fallida tras %d intento(s): %v", e.Kind, e.Attempts, e.Err)
}

func (e *NotificationError) Is(target error) bool { return target == ErrNotification }

func (e *NotificationError) Unwrap() error { return e.Err }
