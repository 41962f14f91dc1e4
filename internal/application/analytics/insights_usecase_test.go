package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/qcommerce-agent/internal/application/analytics"
	"github.com/jhoicas/qcommerce-agent/internal/domain"
	"github.com/jhoicas/qcommerce-agent/internal/domain/entity"
	"github.com/jhoicas/qcommerce-agent/internal/domain/repository"
)

var today = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

type stubRepo struct {
	sales     []entity.SalesRecord
	inventory []entity.InventoryRecord
	salesErr  error
}

func (s *stubRepo) GetSales(_ context.Context, f repository.SalesFilter) ([]entity.SalesRecord, error) {
	if s.salesErr != nil {
		return nil, s.salesErr
	}
	var out []entity.SalesRecord
	for _, r := range s.sales {
		if f.Matches(r) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *stubRepo) GetInventory(_ context.Context, f repository.InventoryFilter) ([]entity.InventoryRecord, error) {
	var out []entity.InventoryRecord
	for _, r := range s.inventory {
		if f.Matches(r) {
			out = append(out, r)
		}
	}
	return out, nil
}

func rec(offset int, city, product string, units int, revenue, aov string) entity.SalesRecord {
	return entity.SalesRecord{
		Date: today.AddDate(0, 0, offset), City: city, Product: product, UnitsSold: units,
		Revenue: decimal.RequireFromString(revenue), AvgOrderValue: decimal.RequireFromString(aov),
	}
}

func newUseCase(repo *stubRepo) *analytics.InsightsUseCase {
	return analytics.NewInsightsUseCase(repo, repo, 0).
		WithClock(func() time.Time { return today.Add(15 * time.Hour) })
}

func sampleRepo() *stubRepo {
	return &stubRepo{
		sales: []entity.SalesRecord{
			rec(0, "Mumbai", "Milk", 10, "500.00", "50"),
			rec(-1, "Mumbai", "Bread", 4, "120.00", "30"),
			rec(-2, "Delhi", "Milk", 6, "300.00", "50"),
			rec(-6, "Chennai", "Milk", 1, "50.00", "50"),
			rec(-7, "Chennai", "Milk", 100, "9999.00", "99"), // fuera de la ventana de 7 días
		},
		inventory: []entity.InventoryRecord{
			{City: "Mumbai", Product: "Milk", CurrentStock: 3, ReorderLevel: 20},
			{City: "Delhi", Product: "Milk", CurrentStock: 15, ReorderLevel: 20},
			{City: "Chennai", Product: "Milk", CurrentStock: 80, ReorderLevel: 20},
		},
	}
}

func TestGetInsights(t *testing.T) {
	got, err := newUseCase(sampleRepo()).GetInsights(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 7, got.WindowDays)
	assert.True(t, decimal.RequireFromString("970").Equal(got.TotalRevenue), got.TotalRevenue.String())
	assert.Equal(t, 21, got.TotalUnitsSold)
	assert.Equal(t, 2, got.LowStockCount)
	assert.Equal(t, 1, got.CriticalAlerts)
	assert.Equal(t, "Mumbai", got.TopPerformingCity)
	assert.Equal(t, "Chennai", got.BottomPerformingCity)
}

func TestGetInsights_SinVentas(t *testing.T) {
	got, err := newUseCase(&stubRepo{}).GetInsights(context.Background())
	require.NoError(t, err)
	assert.True(t, got.TotalRevenue.IsZero())
	assert.Empty(t, got.TopPerformingCity)
}

func TestGetInsights_PropagaErrorDeVentas(t *testing.T) {
	errDB := errors.New("db caída")
	_, err := newUseCase(&stubRepo{salesErr: errDB}).GetInsights(context.Background())
	assert.ErrorIs(t, err, errDB)
}

func TestCityPerformance(t *testing.T) {
	got, err := newUseCase(sampleRepo()).CityPerformance(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "Mumbai", got[0].City)
	assert.Equal(t, 14, got[0].TotalUnits)
	assert.Equal(t, 2, got[0].ProductsSold)
	assert.True(t, decimal.NewFromInt(40).Equal(got[0].AvgOrderValue))
	assert.Equal(t, "Delhi", got[1].City)
	assert.Equal(t, "Chennai", got[2].City)

	got, err = newUseCase(sampleRepo()).CityPerformance(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, got, 1, "solo las ventas de hoy")
	assert.Equal(t, "Mumbai", got[0].City)
}

func TestSalesSummary(t *testing.T) {
	repo := sampleRepo()
	repo.sales = append(repo.sales, rec(-3, "Mumbai", "Milk", 2, "100.00", "50"))

	got, err := newUseCase(repo).SalesSummary(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, got, 4)

	assert.Equal(t, "Mumbai", got[0].City)
	assert.Equal(t, "Milk", got[0].Product)
	assert.Equal(t, 12, got[0].TotalUnits)
	assert.Equal(t, 2, got[0].DaysWithSales)
	assert.True(t, decimal.RequireFromString("600").Equal(got[0].TotalRevenue))
}

func TestDiasInvalidos(t *testing.T) {
	uc := newUseCase(sampleRepo())
	_, err := uc.CityPerformance(context.Background(), -1)
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = uc.SalesSummary(context.Background(), 1000)
	assert.ErrorIs(t, err, domain.ErrValidation)
}
