package ports

import (
	"context"
	"time"

	"github.com/jhoicas/qcommerce-agent/internal/domain/entity"
)

// RestockReport datos ya calculados para los documentos de reposición.
type RestockReport struct {
	GeneratedAt    time.Time
	ThresholdRatio float64
	WindowDays     int
	Alerts         []entity.RestockAlert    // en orden de urgencia
	LowStock       []entity.InventoryRecord // stock <= nivel de reorden
}

// RestockReportRenderer genera el reporte imprimible (PDF).
type RestockReportRenderer interface {
	RenderRestockReport(ctx context.Context, report RestockReport) ([]byte, error)
}

// PurchaseOrderRenderer genera las órdenes de compra por proveedor (XML).
type PurchaseOrderRenderer interface {
	RenderPurchaseOrders(ctx context.Context, report RestockReport) ([]byte, error)
}
