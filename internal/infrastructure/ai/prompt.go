package ai

import (
	"fmt"
	"strings"

	"github.com/jhoicas/qcommerce-agent/internal/application/dto"
	"github.com/jhoicas/qcommerce-agent/internal/application/ports"
)

// systemPrompt instrucciones comunes a los modelos remotos.
const systemPrompt = `Eres el asistente de operaciones de una empresa de quick commerce.
Recibes datos ya calculados (repartos de inventario, alertas de reposición o desempeño por ciudad).
Redacta una recomendación breve y accionable en español para el equipo de operaciones.

Reglas:
- No inventes cifras: usa solo los datos recibidos y no recalcules repartos ni prioridades.
- Máximo 6 líneas, sin markdown ni encabezados.
- Cierra con la acción concreta más importante.`

// maxPromptRows filas de detalle enviadas al modelo.
const maxPromptRows = 15

// userPrompt serializa la recomendación como texto plano para el modelo.
func userPrompt(rec ports.Recommendation) (string, error) {
	var b strings.Builder
	switch rec.Intent {
	case dto.IntentAllocate:
		res := rec.Allocation
		if res == nil {
			return "", fmt.Errorf("reparto sin datos")
		}
		fmt.Fprintf(&b, "Reparto de %d unidades de %s (ventana %d días). Ciudad: asignadas / ventas históricas\n",
			res.TotalQuantity, res.Product, res.LookbackDays)
		for i, c := range res.Cities() {
			if i == maxPromptRows {
				break
			}
			fmt.Fprintf(&b, "%s: %d / %d\n", c, res.Allocations[c], res.UnitsByCity[c])
		}
	case dto.IntentRestock:
		fmt.Fprintf(&b, "%d ítems con reposición urgente (prioridad, ciudad, producto, stock, demanda reciente, proveedor):\n", len(rec.Alerts))
		for i, a := range rec.Alerts {
			if i == maxPromptRows {
				break
			}
			fmt.Fprintf(&b, "%d, %s, %s, %d, %.0f, %s\n", a.Priority, a.City, a.Product, a.CurrentStock, a.RecentDemand, a.Supplier)
		}
	case dto.IntentPerformance:
		b.WriteString("Desempeño por ciudad (ciudad, ingresos, unidades, productos):\n")
		for i, p := range rec.Performance {
			if i == maxPromptRows {
				break
			}
			fmt.Fprintf(&b, "%s, %s, %d, %d\n", p.City, p.TotalRevenue.StringFixed(2), p.TotalUnits, p.ProductsSold)
		}
	default:
		return "", fmt.Errorf("intención desconocida %q", rec.Intent)
	}
	return b.String(), nil
}
