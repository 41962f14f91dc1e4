// Package dataset carga el historial de ventas y el inventario desde CSV o XLSX
// y genera datasets de ejemplo.
package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/qcommerce-agent/internal/domain/entity"
)

// Dataset ventas + inventario cargados de una misma fuente.
type Dataset struct {
	Sales     []entity.SalesRecord
	Inventory []entity.InventoryRecord
}

// Nivel de reorden derivado cuando la fuente no trae la columna.
const (
	minDerivedReorderLevel = 10
	derivedReorderFactor   = 0.2
)

// Alias de columnas de exportaciones externas (Google Sheets, planillas de tiendas).
var columnAliases = map[string]string{
	"city_name":           "city",
	"product_name":        "product",
	"stock_quantity":      "current_stock",
	"store_name":          "supplier",
	"gross_selling_value": "revenue",
	"selling_price":       "avg_order_value",
	"average_order_value": "avg_order_value",
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"02/01/2006",
	"2006/01/02",
}

// table filas de texto con encabezado normalizado.
type table struct {
	source string
	cols   map[string]int
	rows   [][]string
}

func newTable(source string, records [][]string) (*table, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: archivo vacío", source)
	}
	cols := make(map[string]int, len(records[0]))
	for i, h := range records[0] {
		name := normalizeColumn(h)
		if alias, ok := columnAliases[name]; ok {
			name = alias
		}
		if _, dup := cols[name]; !dup {
			cols[name] = i
		}
	}
	return &table{source: source, cols: cols, rows: records[1:]}, nil
}

// normalizeColumn "Units Sold" -> "units_sold".
func normalizeColumn(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.Join(strings.Fields(strings.ReplaceAll(h, "-", " ")), "_")
}

func (t *table) has(col string) bool {
	_, ok := t.cols[col]
	return ok
}

func (t *table) require(cols ...string) error {
	var missing []string
	for _, c := range cols {
		if !t.has(c) {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%s: faltan columnas %s", t.source, strings.Join(missing, ", "))
	}
	return nil
}

// cell texto de la columna col en la fila; vacío si no existe.
func (t *table) cell(row []string, col string) string {
	i, ok := t.cols[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// parseInt acepta "12", "12.0" y vacío (0).
func parseInt(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("número inválido %q", s)
	}
	return int(math.Round(f)), nil
}

func parseDecimal(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return decimal.Zero, fmt.Errorf("importe inválido %q", s)
	}
	return d, nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("fecha inválida %q", s)
}

func (t *table) sales() ([]entity.SalesRecord, error) {
	if err := t.require("date", "city", "product", "units_sold"); err != nil {
		return nil, err
	}
	out := make([]entity.SalesRecord, 0, len(t.rows))
	for i, row := range t.rows {
		if blank(row) {
			continue
		}
		line := i + 2
		rec := entity.SalesRecord{
			City:     t.cell(row, "city"),
			Product:  t.cell(row, "product"),
			Category: t.cell(row, "category"),
		}
		if rec.City == "" || rec.Product == "" {
			return nil, fmt.Errorf("%s línea %d: city y product son obligatorios", t.source, line)
		}
		var err error
		if rec.Date, err = parseDate(t.cell(row, "date")); err != nil {
			return nil, fmt.Errorf("%s línea %d: %w", t.source, line, err)
		}
		if rec.UnitsSold, err = parseInt(t.cell(row, "units_sold")); err != nil {
			return nil, fmt.Errorf("%s línea %d: units_sold: %w", t.source, line, err)
		}
		if rec.UnitsSold < 0 {
			return nil, fmt.Errorf("%s línea %d: units_sold negativo", t.source, line)
		}
		if rec.Revenue, err = parseDecimal(t.cell(row, "revenue")); err != nil {
			return nil, fmt.Errorf("%s línea %d: revenue: %w", t.source, line, err)
		}
		if rec.AvgOrderValue, err = parseDecimal(t.cell(row, "avg_order_value")); err != nil {
			return nil, fmt.Errorf("%s línea %d: avg_order_value: %w", t.source, line, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func (t *table) inventory() ([]entity.InventoryRecord, error) {
	if err := t.require("city", "product", "current_stock"); err != nil {
		return nil, err
	}
	out := make([]entity.InventoryRecord, 0, len(t.rows))
	for i, row := range t.rows {
		if blank(row) {
			continue
		}
		line := i + 2
		rec := entity.InventoryRecord{
			City:     t.cell(row, "city"),
			Product:  t.cell(row, "product"),
			Category: t.cell(row, "category"),
			Supplier: t.cell(row, "supplier"),
		}
		if rec.City == "" || rec.Product == "" {
			return nil, fmt.Errorf("%s línea %d: city y product son obligatorios", t.source, line)
		}
		ints := []struct {
			col string
			dst *int
		}{
			{"current_stock", &rec.CurrentStock},
			{"reorder_level", &rec.ReorderLevel},
			{"max_capacity", &rec.MaxCapacity},
			{"lead_time_days", &rec.LeadTimeDays},
		}
		for _, f := range ints {
			n, err := parseInt(t.cell(row, f.col))
			if err != nil {
				return nil, fmt.Errorf("%s línea %d: %s: %w", t.source, line, f.col, err)
			}
			if n < 0 {
				return nil, fmt.Errorf("%s línea %d: %s negativo", t.source, line, f.col)
			}
			*f.dst = n
		}
		var err error
		if rec.CostPerUnit, err = parseDecimal(t.cell(row, "cost_per_unit")); err != nil {
			return nil, fmt.Errorf("%s línea %d: cost_per_unit: %w", t.source, line, err)
		}
		if s := t.cell(row, "last_restocked"); s != "" {
			if rec.LastRestocked, err = parseDate(s); err != nil {
				return nil, fmt.Errorf("%s línea %d: last_restocked: %w", t.source, line, err)
			}
		}
		out = append(out, rec)
	}
	if !t.has("reorder_level") {
		deriveReorderLevels(out)
	}
	return out, nil
}

// deriveReorderLevels aplica max(10, 0.2 * stock medio) a todas las filas.
func deriveReorderLevels(rows []entity.InventoryRecord) {
	if len(rows) == 0 {
		return
	}
	total := 0
	for _, r := range rows {
		total += r.CurrentStock
	}
	level := int(derivedReorderFactor * float64(total) / float64(len(rows)))
	if level < minDerivedReorderLevel {
		level = minDerivedReorderLevel
	}
	for i := range rows {
		rows[i].ReorderLevel = level
	}
}
