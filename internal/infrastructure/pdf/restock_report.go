// Package pdf genera el reporte de reposición para el equipo de operaciones.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + parámetros  │  Fecha de generación        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  URGENTES: # | Ciudad | Producto | Stock | Demanda | Pedir   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  STOCK BAJO: Ciudad | Producto | Stock | Reorden | Proveedor │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/qcommerce-agent/internal/application/ports"
	"github.com/jhoicas/qcommerce-agent/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorAlert   = &props.Color{Red: 176, Green: 32, Blue: 32}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// RestockReportGenerator implementa ports.RestockReportRenderer usando Maroto v2.
type RestockReportGenerator struct{}

// NewRestockReportGenerator construye el generador.
func NewRestockReportGenerator() *RestockReportGenerator { return &RestockReportGenerator{} }

var _ ports.RestockReportRenderer = (*RestockReportGenerator)(nil)

// RenderRestockReport genera el PDF y devuelve sus bytes.
func (g *RestockReportGenerator) RenderRestockReport(ctx context.Context, report ports.RestockReport) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de reposición", true).
		WithAuthor("qcommerce-agent", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(sectionRow(fmt.Sprintf("REPOSICIÓN URGENTE (%d)", len(report.Alerts)), colorAlert))
	if len(report.Alerts) == 0 {
		m.AddRows(emptyRow("Sin ítems urgentes con el umbral actual."))
	} else {
		m.AddRows(urgentHeaderRow())
		m.AddRows(urgentRows(report.Alerts)...)
	}

	if report.LowStock != nil {
		m.AddRows(line.NewRow(4))
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
		m.AddRows(sectionRow(fmt.Sprintf("STOCK BAJO (%d)", len(report.LowStock)), colorPrimary))
		if len(report.LowStock) == 0 {
			m.AddRows(emptyRow("Ningún producto por debajo del nivel de reorden."))
		} else {
			m.AddRows(lowStockHeaderRow())
			m.AddRows(lowStockRows(report.LowStock)...)
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(report ports.RestockReport) core.Row {
	return row.New(18).Add(
		col.New(8).Add(
			text.New("Reporte de reposición", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Umbral %.2f × demanda   |   Ventana %d días", report.ThresholdRatio, report.WindowDays), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(report.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 9, Align: align.Right, Top: 7,
			}),
		),
	)
}

func sectionRow(title string, color *props.Color) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 9, Color: color, Top: 2}),
	))
}

func emptyRow(msg string) core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New(msg, props.Text{Size: 8, Color: colorGray, Top: 1}),
	))
}

func headerCell(label string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(label, props.Text{
		Style: fontstyle.Bold, Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
	}))
}

func cell(value string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(value, props.Text{
		Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
	}))
}

func urgentHeaderRow() core.Row {
	return row.New(7).Add(
		headerCell("#", 1, align.Center),
		headerCell("Ciudad", 2, align.Left),
		headerCell("Producto", 3, align.Left),
		headerCell("Stock", 1, align.Right),
		headerCell("Demanda", 2, align.Right),
		headerCell("Pedir", 1, align.Right),
		headerCell("Proveedor", 2, align.Left),
	)
}

func urgentRows(alerts []entity.RestockAlert) []core.Row {
	rows := make([]core.Row, 0, len(alerts))
	for _, a := range alerts {
		demand := fmt.Sprintf("%.0f", a.RecentDemand)
		if a.ColdStart {
			demand = "sin ventas"
		}
		rows = append(rows, row.New(6).Add(
			cell(strconv.Itoa(a.Priority), 1, align.Center),
			cell(a.City, 2, align.Left),
			cell(a.Product, 3, align.Left),
			cell(strconv.Itoa(a.CurrentStock), 1, align.Right),
			cell(demand, 2, align.Right),
			cell(strconv.Itoa(a.SuggestedQuantity), 1, align.Right),
			cell(nonEmpty(a.Supplier, "-"), 2, align.Left),
		))
	}
	return rows
}

func lowStockHeaderRow() core.Row {
	return row.New(7).Add(
		headerCell("Ciudad", 3, align.Left),
		headerCell("Producto", 3, align.Left),
		headerCell("Stock", 2, align.Right),
		headerCell("Reorden", 2, align.Right),
		headerCell("Proveedor", 2, align.Left),
	)
}

func lowStockRows(records []entity.InventoryRecord) []core.Row {
	rows := make([]core.Row, 0, len(records))
	for _, r := range records {
		rows = append(rows, row.New(6).Add(
			cell(r.City, 3, align.Left),
			cell(r.Product, 3, align.Left),
			cell(strconv.Itoa(r.CurrentStock), 2, align.Right),
			cell(strconv.Itoa(r.ReorderLevel), 2, align.Right),
			cell(nonEmpty(r.Supplier, "-"), 2, align.Left),
		))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
