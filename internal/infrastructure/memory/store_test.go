package memory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/qcommerce-agent/internal/domain"
	"github.com/jhoicas/qcommerce-agent/internal/domain/entity"
	"github.com/jhoicas/qcommerce-agent/internal/domain/repository"
	"github.com/jhoicas/qcommerce-agent/internal/infrastructure/memory"
)

var base = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

func seed() *memory.Store {
	return memory.NewStore(
		[]entity.SalesRecord{
			{Date: base.AddDate(0, 0, 2), City: "Delhi", Product: "Milk", UnitsSold: 3},
			{Date: base, City: "Mumbai", Product: "Milk", UnitsSold: 5},
			{Date: base.AddDate(0, 0, 1), City: "Mumbai", Product: "Bread", UnitsSold: 2},
		},
		[]entity.InventoryRecord{
			{City: "Mumbai", Product: "Milk", CurrentStock: 10},
			{City: "Delhi", Product: "Milk", CurrentStock: 4},
		},
	)
}

func TestGetSales_FiltraYOrdenaPorFecha(t *testing.T) {
	s := seed()
	got, err := s.GetSales(context.Background(), repository.SalesFilter{Product: "Milk"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Mumbai", got[0].City)

	got, err = s.GetSales(context.Background(), repository.SalesFilter{From: base.AddDate(0, 0, 1), To: base.AddDate(0, 0, 2)})
	require.NoError(t, err)
	require.Len(t, got, 1, "el límite superior es exclusivo")
	assert.Equal(t, "Bread", got[0].Product)
}

func TestGetInventory_OrdenDeterminista(t *testing.T) {
	got, err := seed().GetInventory(context.Background(), repository.InventoryFilter{})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Delhi", got[0].City)
}

func TestSetStock(t *testing.T) {
	s := seed()
	require.NoError(t, s.SetStock("Delhi", "Milk", 99))
	got, _ := s.GetInventory(context.Background(), repository.InventoryFilter{City: "Delhi"})
	assert.Equal(t, 99, got[0].CurrentStock)

	assert.ErrorIs(t, s.SetStock("Pune", "Milk", 1), domain.ErrNotFound)
}

func TestContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := seed().GetSales(ctx, repository.SalesFilter{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestActionLog(t *testing.T) {
	s := seed()
	ctx := context.Background()
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, s.Create(ctx, &entity.ActionLog{ID: id, Status: entity.ActionPending}))
	}
	require.NoError(t, s.UpdateStatus(ctx, "b", entity.ActionCompleted, "200"))
	assert.ErrorIs(t, s.UpdateStatus(ctx, "zz", entity.ActionFailed, ""), domain.ErrNotFound)
	assert.ErrorIs(t, s.Create(ctx, &entity.ActionLog{}), domain.ErrValidation)

	got, err := s.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "c", got[0].ID)
	assert.Equal(t, entity.ActionCompleted, got[1].Status)
}

func TestConcurrencia(t *testing.T) {
	s := seed()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			_ = s.SetStock("Mumbai", "Milk", n)
		}(i)
		go func() {
			defer wg.Done()
			_, _ = s.GetInventory(context.Background(), repository.InventoryFilter{})
		}()
	}
	wg.Wait()
}
