package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/qcommerce-agent/internal/application/ports"
	"github.com/jhoicas/qcommerce-agent/internal/domain/entity"
	"github.com/jhoicas/qcommerce-agent/internal/infrastructure/pdf"
)

func TestRenderRestockReport(t *testing.T) {
	report := ports.RestockReport{
		GeneratedAt:    time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
		ThresholdRatio: 0.2,
		WindowDays:     3,
		Alerts: []entity.RestockAlert{
			{City: "Delhi", Product: "Smartphone", CurrentStock: 9, RecentDemand: 300, Priority: 1, SuggestedQuantity: 291, Supplier: "Supplier_2"},
			{City: "Chennai", Product: "Router", CurrentStock: 7, ColdStart: true, Priority: 2, SuggestedQuantity: 33},
		},
		LowStock: []entity.InventoryRecord{
			{City: "Chennai", Product: "Router", CurrentStock: 7, ReorderLevel: 20},
		},
	}

	doc, err := pdf.NewRestockReportGenerator().RenderRestockReport(context.Background(), report)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")))
}

func TestRenderRestockReport_Vacio(t *testing.T) {
	doc, err := pdf.NewRestockReportGenerator().RenderRestockReport(context.Background(), ports.RestockReport{GeneratedAt: time.Now()})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")))
}

func TestRenderRestockReport_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := pdf.NewRestockReportGenerator().RenderRestockReport(ctx, ports.RestockReport{})
	assert.ErrorIs(t, err, context.Canceled)
}
