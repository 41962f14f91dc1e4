package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/qcommerce-agent/internal/application/inventory"
	"github.com/jhoicas/qcommerce-agent/internal/domain"
	"github.com/jhoicas/qcommerce-agent/internal/domain/entity"
)

func newRestock(repo *fakeRepo) *inventory.RestockUseCase {
	return inventory.NewRestockUseCase(repo, repo, 3).WithClock(clock)
}

func restockFixture() *fakeRepo {
	return &fakeRepo{
		sales: []entity.SalesRecord{
			// 300 unidades en 3 días → umbral 0.2 * 300 = 60
			sale(0, "Mumbai", "Smartphone", 100), sale(-1, "Mumbai", "Smartphone", 100), sale(-2, "Mumbai", "Smartphone", 100),
			sale(0, "Delhi", "Smartphone", 300),
			sale(-1, "Pune", "Laptop", 30),
			sale(-10, "Chennai", "Router", 500), // fuera de la ventana → cold start
		},
		inventory: []entity.InventoryRecord{
			{City: "Mumbai", Product: "Smartphone", CurrentStock: 11, ReorderLevel: 50, Supplier: "Supplier_1"},
			{City: "Delhi", Product: "Smartphone", CurrentStock: 9, ReorderLevel: 50, Supplier: "Supplier_2"},
			{City: "Pune", Product: "Laptop", CurrentStock: 40, ReorderLevel: 5},    // 40 >= 0.2*30
			{City: "Chennai", Product: "Router", CurrentStock: 7, ReorderLevel: 20}, // cold start, urgente
			{City: "Kolkata", Product: "Cable", CurrentStock: 25, ReorderLevel: 20}, // cold start, ok
		},
	}
}

func TestFindUrgentRestocks_OrdenPorUrgencia(t *testing.T) {
	alerts, err := newRestock(restockFixture()).FindUrgentRestocks(context.Background(), 0.2)
	require.NoError(t, err)
	require.Len(t, alerts, 3)

	// Delhi 9/301 < Mumbai 11/301 < Chennai 7/1
	assert.Equal(t, "Delhi", alerts[0].City)
	assert.Equal(t, "Mumbai", alerts[1].City)
	assert.Equal(t, "Chennai", alerts[2].City)
	assert.True(t, alerts[2].ColdStart)
	assert.False(t, alerts[0].ColdStart)

	for i, a := range alerts {
		assert.Equal(t, i+1, a.Priority)
	}
	assert.InDelta(t, 300.0, alerts[0].RecentDemand, 1e-9)
	assert.Equal(t, "Supplier_2", alerts[0].Supplier)
}

func TestFindUrgentRestocks_Determinista(t *testing.T) {
	repo := restockFixture()
	uc := newRestock(repo)

	first, err := uc.FindUrgentRestocks(context.Background(), 0.2)
	require.NoError(t, err)
	second, err := uc.FindUrgentRestocks(context.Background(), 0.2)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 2, repo.inventoryCall, "cada llamada relee el inventario (sin caché)")
}

func TestFindUrgentRestocks_ReflejaCambiosDeStock(t *testing.T) {
	repo := restockFixture()
	uc := newRestock(repo)

	before, err := uc.FindUrgentRestocks(context.Background(), 0.2)
	require.NoError(t, err)
	require.Len(t, before, 3)

	repo.inventory[3].CurrentStock = 100 // Chennai repuesto
	after, err := uc.FindUrgentRestocks(context.Background(), 0.2)
	require.NoError(t, err)
	assert.Len(t, after, 2)
}

func TestFindUrgentRestocks_UmbralInvalido(t *testing.T) {
	for _, r := range []float64{0, -0.1} {
		_, err := newRestock(restockFixture()).FindUrgentRestocks(context.Background(), r)
		assert.ErrorIs(t, err, domain.ErrValidation)
	}
}

func TestFindUrgentRestocks_InventarioVacio(t *testing.T) {
	alerts, err := newRestock(&fakeRepo{}).FindUrgentRestocks(context.Background(), 0.2)
	require.NoError(t, err)
	assert.Empty(t, alerts)
}

func TestLowStock_OrdenaPorStock(t *testing.T) {
	low, err := newRestock(restockFixture()).LowStock(context.Background())
	require.NoError(t, err)

	require.Len(t, low, 3)
	assert.Equal(t, []int{7, 9, 11}, []int{low[0].CurrentStock, low[1].CurrentStock, low[2].CurrentStock})
}

func TestFindUrgentRestocks_RelojFueraDeUTC(t *testing.T) {
	bogota := time.FixedZone("UTC-5", -5*3600)
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, bogota)

	repo := restockFixture()
	alerts, err := inventory.NewRestockUseCase(repo, repo, 3).
		WithClock(func() time.Time { return now }).
		FindUrgentRestocks(context.Background(), 0.2)
	require.NoError(t, err)
	require.Len(t, alerts, 3)

	// El día -2 sigue dentro de la ventana de 3 días: Mumbai suma 300.
	assert.Equal(t, "Mumbai", alerts[1].City)
	assert.InDelta(t, 300.0, alerts[1].RecentDemand, 1e-9)
}
