package repository

import (
	"context"
	"time"

	"github.com/jhoicas/qcommerce-agent/internal/domain/entity"
)

// SalesFilter filtros opcionales para consultar ventas. Campos vacíos/cero no filtran.
// El rango es semiabierto: From <= date < To.
type SalesFilter struct {
	Product string
	City    string
	From    time.Time
	To      time.Time
}

// Matches indica si el registro cumple el filtro.
func (f SalesFilter) Matches(r entity.SalesRecord) bool {
	if f.Product != "" && r.Product != f.Product {
		return false
	}
	if f.City != "" && r.City != f.City {
		return false
	}
	if !f.From.IsZero() && r.Date.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && !r.Date.Before(f.To) {
		return false
	}
	return true
}

// LastDays filtro de los últimos days días calendario, hoy incluido.
// Las fechas de venta se guardan como medianoche UTC, así que la ventana se arma sobre la
// fecha calendario de now en UTC sin importar la zona del reloj.
func LastDays(now time.Time, days int) SalesFilter {
	y, m, d := now.Date()
	to := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
	return SalesFilter{From: to.AddDate(0, 0, -days), To: to}
}

// SalesRepository puerto de lectura del historial de ventas (read-only).
type SalesRepository interface {
	GetSales(ctx context.Context, filter SalesFilter) ([]entity.SalesRecord, error)
}
