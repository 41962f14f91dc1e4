package ai

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/qcommerce-agent/internal/application/dto"
	"github.com/jhoicas/qcommerce-agent/internal/application/ports"
)

var _ ports.TextGenerator = (*TemplateGenerator)(nil)

// Máximo de líneas de detalle por recomendación.
const templateMaxLines = 5

// TemplateGenerator redacta con plantillas fijas. Determinista y sin red:
// es el fallback cuando el modelo remoto falla.
type TemplateGenerator struct {
	p *message.Printer
}

// NewTemplateGenerator tag define el formato de números (miles, decimales); vacío = es.
func NewTemplateGenerator(tag string) *TemplateGenerator {
	lang, err := language.Parse(tag)
	if err != nil || tag == "" {
		lang = language.Spanish
	}
	return &TemplateGenerator{p: message.NewPrinter(lang)}
}

// Name identifica la variante.
func (g *TemplateGenerator) Name() string { return "template" }

// Recommend arma el texto según la intención.
func (g *TemplateGenerator) Recommend(_ context.Context, rec ports.Recommendation) (string, error) {
	switch rec.Intent {
	case dto.IntentAllocate:
		return g.allocation(rec)
	case dto.IntentRestock:
		return g.restock(rec), nil
	case dto.IntentPerformance:
		return g.performance(rec), nil
	default:
		return "", fmt.Errorf("plantilla: intención desconocida %q", rec.Intent)
	}
}

func (g *TemplateGenerator) allocation(rec ports.Recommendation) (string, error) {
	res := rec.Allocation
	if res == nil {
		return "", fmt.Errorf("plantilla: reparto sin datos")
	}
	var b strings.Builder
	b.WriteString(g.p.Sprintf("Reparto de %d unidades de %s según las ventas de los últimos %d días:\n",
		res.TotalQuantity, res.Product, res.LookbackDays))

	historic := 0
	for _, u := range res.UnitsByCity {
		historic += u
	}
	for i, city := range res.Cities() {
		if i == templateMaxLines {
			b.WriteString(g.p.Sprintf("… y %d ciudades más.\n", len(res.Allocations)-templateMaxLines))
			break
		}
		share := 0.0
		if historic > 0 {
			share = float64(res.UnitsByCity[city]) * 100 / float64(historic)
		}
		b.WriteString(g.p.Sprintf("- %s: %d unidades (%.1f%% de la demanda)\n", city, res.Allocations[city], share))
	}
	if top := res.Cities(); len(top) > 0 && res.Allocations[top[0]] > 0 {
		b.WriteString(g.p.Sprintf("Priorizar el despacho a %s, la ciudad con mayor demanda.", top[0]))
	}
	return strings.TrimSpace(b.String()), nil
}

func (g *TemplateGenerator) restock(rec ports.Recommendation) string {
	if len(rec.Alerts) == 0 {
		return "Ningún ítem requiere reposición urgente."
	}
	var b strings.Builder
	b.WriteString(g.p.Sprintf("%d ítems requieren reposición urgente:\n", len(rec.Alerts)))
	for i, a := range rec.Alerts {
		if i == templateMaxLines {
			b.WriteString(g.p.Sprintf("… y %d más.\n", len(rec.Alerts)-templateMaxLines))
			break
		}
		if a.ColdStart {
			b.WriteString(g.p.Sprintf("%d. %s en %s: %d unidades, bajo el nivel de reorden (%d), sin ventas recientes\n",
				a.Priority, a.Product, a.City, a.CurrentStock, a.ReorderLevel))
			continue
		}
		b.WriteString(g.p.Sprintf("%d. %s en %s: %d unidades frente a una demanda de %.0f\n",
			a.Priority, a.Product, a.City, a.CurrentStock, a.RecentDemand))
	}
	first := rec.Alerts[0]
	if first.Supplier != "" {
		b.WriteString(g.p.Sprintf("Contactar primero a %s por %s en %s.", first.Supplier, first.Product, first.City))
	}
	return strings.TrimSpace(b.String())
}

func (g *TemplateGenerator) performance(rec ports.Recommendation) string {
	rows := rec.Performance
	if len(rows) == 0 {
		return "No hay ventas en el período consultado."
	}
	var b strings.Builder
	top := rows[0]
	b.WriteString(g.p.Sprintf("%s lidera con %s en ingresos (%d unidades).\n",
		top.City, g.money(top.TotalRevenue.InexactFloat64()), top.TotalUnits))
	if len(rows) > 1 {
		bottom := rows[len(rows)-1]
		b.WriteString(g.p.Sprintf("%s tiene el menor desempeño: %s en ingresos (%d unidades).\n",
			bottom.City, g.money(bottom.TotalRevenue.InexactFloat64()), bottom.TotalUnits))
		b.WriteString(g.p.Sprintf("Revisar surtido y promociones en %s.", bottom.City))
	}
	return strings.TrimSpace(b.String())
}

func (g *TemplateGenerator) money(v float64) string {
	return g.p.Sprintf("%.2f", v)
}
