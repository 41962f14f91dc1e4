package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/qcommerce-agent/internal/application/inventory"
	"github.com/jhoicas/qcommerce-agent/internal/application/ports"
	"github.com/jhoicas/qcommerce-agent/internal/domain"
)

type captureRenderer struct {
	got ports.RestockReport
	err error
}

func (c *captureRenderer) RenderRestockReport(_ context.Context, r ports.RestockReport) ([]byte, error) {
	c.got = r
	return []byte("%PDF"), c.err
}

func (c *captureRenderer) RenderPurchaseOrders(_ context.Context, r ports.RestockReport) ([]byte, error) {
	c.got = r
	return []byte("<PurchaseOrders/>"), c.err
}

func TestRestockPDF_IncluyeUrgentesYStockBajo(t *testing.T) {
	r := &captureRenderer{}
	uc := inventory.NewReportUseCase(newRestock(restockFixture()), r, r).WithClock(clock)

	doc, err := uc.RestockPDF(context.Background(), 0.2)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), doc)

	assert.Equal(t, fixedNow, r.got.GeneratedAt)
	assert.Equal(t, 3, r.got.WindowDays)
	require.Len(t, r.got.Alerts, 3)
	assert.Equal(t, "Delhi", r.got.Alerts[0].City)
	assert.Equal(t, 291, r.got.Alerts[0].SuggestedQuantity, "demanda 300 supera 2*reorden; 300 - 9")
	require.Len(t, r.got.LowStock, 3)
}

func TestPurchaseOrdersXML_SinStockBajo(t *testing.T) {
	r := &captureRenderer{}
	uc := inventory.NewReportUseCase(newRestock(restockFixture()), r, r)

	_, err := uc.PurchaseOrdersXML(context.Background(), 0.2)
	require.NoError(t, err)
	assert.Len(t, r.got.Alerts, 3)
	assert.Nil(t, r.got.LowStock)
}

func TestReport_Errores(t *testing.T) {
	r := &captureRenderer{err: errors.New("sin fuentes")}
	uc := inventory.NewReportUseCase(newRestock(restockFixture()), r, r)

	_, err := uc.RestockPDF(context.Background(), 0.2)
	assert.ErrorContains(t, err, "sin fuentes")

	_, err = uc.PurchaseOrdersXML(context.Background(), -1)
	assert.ErrorIs(t, err, domain.ErrValidation)
}
