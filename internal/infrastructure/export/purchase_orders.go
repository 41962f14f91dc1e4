// Package export serializa las órdenes de compra sugeridas para los proveedores.
package export

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/qcommerce-agent/internal/application/ports"
	"github.com/jhoicas/qcommerce-agent/internal/domain/entity"
)

// UnassignedSupplier agrupa los ítems urgentes sin proveedor asignado.
const UnassignedSupplier = "UNASSIGNED"

// PurchaseOrderXML implementa ports.PurchaseOrderRenderer con etree.
//
// Un <PurchaseOrder> por proveedor, líneas en el orden de prioridad de las alertas:
//
//	<PurchaseOrders generatedAt="..." thresholdRatio="0.20" windowDays="3">
//	  <PurchaseOrder supplier="Supplier_2" lines="1">
//	    <Line priority="1" city="Delhi" product="Smartphone">
//	      <Quantity>291</Quantity>
//	      <UnitCost>12.50</UnitCost>
//	      <Subtotal>3637.50</Subtotal>
//	    </Line>
//	    <Total>3637.50</Total>
//	  </PurchaseOrder>
//	</PurchaseOrders>
type PurchaseOrderXML struct {
	indent int
}

// NewPurchaseOrderXML construye el renderer; indent 0 produce XML compacto.
func NewPurchaseOrderXML(indent int) *PurchaseOrderXML {
	return &PurchaseOrderXML{indent: indent}
}

var _ ports.PurchaseOrderRenderer = (*PurchaseOrderXML)(nil)

// RenderPurchaseOrders arma el documento.
func (r *PurchaseOrderXML) RenderPurchaseOrders(ctx context.Context, report ports.RestockReport) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("PurchaseOrders")
	root.CreateAttr("generatedAt", report.GeneratedAt.UTC().Format("2006-01-02T15:04:05Z"))
	root.CreateAttr("thresholdRatio", strconv.FormatFloat(report.ThresholdRatio, 'f', 2, 64))
	root.CreateAttr("windowDays", strconv.Itoa(report.WindowDays))

	for _, group := range groupBySupplier(report.Alerts) {
		order := root.CreateElement("PurchaseOrder")
		order.CreateAttr("supplier", group.supplier)
		order.CreateAttr("lines", strconv.Itoa(len(group.alerts)))

		total := decimal.Zero
		costed := false
		for _, a := range group.alerts {
			line := order.CreateElement("Line")
			line.CreateAttr("priority", strconv.Itoa(a.Priority))
			line.CreateAttr("city", a.City)
			line.CreateAttr("product", a.Product)
			if a.ColdStart {
				line.CreateAttr("coldStart", "true")
			}
			line.CreateElement("Quantity").SetText(strconv.Itoa(a.SuggestedQuantity))
			if a.LeadTimeDays > 0 {
				line.CreateElement("LeadTimeDays").SetText(strconv.Itoa(a.LeadTimeDays))
			}
			// sin costo conocido no se inventa un subtotal
			if a.UnitCost.IsPositive() {
				subtotal := a.UnitCost.Mul(decimal.NewFromInt(int64(a.SuggestedQuantity)))
				line.CreateElement("UnitCost").SetText(a.UnitCost.StringFixed(2))
				line.CreateElement("Subtotal").SetText(subtotal.StringFixed(2))
				total = total.Add(subtotal)
				costed = true
			}
		}
		if costed {
			order.CreateElement("Total").SetText(total.StringFixed(2))
		}
	}

	if r.indent > 0 {
		doc.Indent(r.indent)
	}
	var out bytes.Buffer
	if _, err := doc.WriteTo(&out); err != nil {
		return nil, fmt.Errorf("export: serializar órdenes de compra: %w", err)
	}
	return out.Bytes(), nil
}

type supplierGroup struct {
	supplier string
	alerts   []entity.RestockAlert
}

// groupBySupplier conserva el orden de prioridad dentro de cada proveedor;
// los proveedores se ordenan por la prioridad de su ítem más urgente.
func groupBySupplier(alerts []entity.RestockAlert) []supplierGroup {
	index := make(map[string]int)
	groups := make([]supplierGroup, 0)
	for _, a := range alerts {
		supplier := a.Supplier
		if supplier == "" {
			supplier = UnassignedSupplier
		}
		i, ok := index[supplier]
		if !ok {
			i = len(groups)
			index[supplier] = i
			groups = append(groups, supplierGroup{supplier: supplier})
		}
		groups[i].alerts = append(groups[i].alerts, a)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].alerts[0].Priority < groups[j].alerts[0].Priority
	})
	return groups
}
