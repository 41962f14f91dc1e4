package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/qcommerce-agent/internal/application/ports"
)

// ReportUseCase documentos de reposición (PDF para operaciones, XML para proveedores)
// sobre el mismo cálculo de urgencia que la API.
type ReportUseCase struct {
	restock *RestockUseCase
	pdf     ports.RestockReportRenderer
	xml     ports.PurchaseOrderRenderer
	now     func() time.Time
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(restock *RestockUseCase, pdf ports.RestockReportRenderer, xml ports.PurchaseOrderRenderer) *ReportUseCase {
	return &ReportUseCase{restock: restock, pdf: pdf, xml: xml, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *ReportUseCase) WithClock(now func() time.Time) *ReportUseCase {
	uc.now = now
	return uc
}

// RestockPDF reporte de reposición urgente y stock bajo.
func (uc *ReportUseCase) RestockPDF(ctx context.Context, thresholdRatio float64) ([]byte, error) {
	report, err := uc.build(ctx, thresholdRatio, true)
	if err != nil {
		return nil, err
	}
	doc, err := uc.pdf.RenderRestockReport(ctx, *report)
	if err != nil {
		return nil, fmt.Errorf("reporte PDF: %w", err)
	}
	return doc, nil
}

// PurchaseOrdersXML órdenes de compra por proveedor para los ítems urgentes.
func (uc *ReportUseCase) PurchaseOrdersXML(ctx context.Context, thresholdRatio float64) ([]byte, error) {
	report, err := uc.build(ctx, thresholdRatio, false)
	if err != nil {
		return nil, err
	}
	doc, err := uc.xml.RenderPurchaseOrders(ctx, *report)
	if err != nil {
		return nil, fmt.Errorf("órdenes de compra XML: %w", err)
	}
	return doc, nil
}

func (uc *ReportUseCase) build(ctx context.Context, thresholdRatio float64, withLowStock bool) (*ports.RestockReport, error) {
	alerts, err := uc.restock.FindUrgentRestocks(ctx, thresholdRatio)
	if err != nil {
		return nil, err
	}
	report := &ports.RestockReport{
		GeneratedAt:    uc.now(),
		ThresholdRatio: thresholdRatio,
		WindowDays:     uc.restock.WindowDays(),
		Alerts:         alerts,
	}
	if withLowStock {
		if report.LowStock, err = uc.restock.LowStock(ctx); err != nil {
			return nil, err
		}
	}
	return report, nil
}
