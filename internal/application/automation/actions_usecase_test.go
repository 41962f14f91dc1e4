package automation_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/qcommerce-agent/internal/application/automation"
	"github.com/jhoicas/qcommerce-agent/internal/application/dto"
	"github.com/jhoicas/qcommerce-agent/internal/domain"
	"github.com/jhoicas/qcommerce-agent/internal/domain/entity"
)

func newActions(size int) (*automation.ActionsUseCase, *chanQueue, *actionStore) {
	q := newChanQueue(size)
	store := newActionStore()
	inv := &inventoryStub{rows: []entity.InventoryRecord{
		{City: "Mumbai", Product: "Milk", CurrentStock: 12, ReorderLevel: 20, Supplier: "Amul"},
		{City: "Delhi", Product: "Milk", CurrentStock: 40, ReorderLevel: 20, Supplier: "Mother Dairy"},
	}}
	d := newDispatcher(&recordingNotifier{}, q, store, time.Second)
	return automation.NewActionsUseCase(d, inv, store), q, store
}

func TestNotifyAllocation_PayloadPlano(t *testing.T) {
	uc, q, _ := newActions(4)
	res := &entity.AllocationResult{
		Product: "Milk", TotalQuantity: 100, LookbackDays: 7,
		Allocations: map[string]int{"Mumbai": 60, "Delhi": 40},
	}

	id, err := uc.NotifyAllocation(context.Background(), res)
	require.NoError(t, err)

	env := <-q.ch
	assert.Equal(t, id, env.ActionID)
	assert.Equal(t, entity.EventAllocation, env.Kind)
	assert.Equal(t, "Milk", env.Payload["product"])
	assert.Equal(t, 100, env.Payload["total_quantity"])
	assert.Equal(t, map[string]any{"Mumbai": 60, "Delhi": 40}, env.Payload["allocations"])
}

func TestNotifyRestockAlerts_RespetaLimiteYReportaColaLlena(t *testing.T) {
	uc, _, _ := newActions(2)
	alerts := []entity.RestockAlert{
		{City: "A", Product: "Milk", Priority: 1},
		{City: "B", Product: "Milk", Priority: 2},
		{City: "C", Product: "Milk", Priority: 3},
		{City: "D", Product: "Milk", Priority: 4},
	}

	ids, warnings := uc.NotifyRestockAlerts(context.Background(), alerts, 3)

	assert.Len(t, ids, 3, "también se registra la acción que no cupo en la cola")
	require.Len(t, warnings, 1)
	assert.ErrorIs(t, warnings[0], domain.ErrNotification)
}

func TestTriggerRestock(t *testing.T) {
	uc, q, store := newActions(4)
	ctx := context.Background()

	t.Run("ok", func(t *testing.T) {
		resp, err := uc.TriggerRestock(ctx, dto.RestockOrderRequest{City: "Mumbai", Product: "Milk", Quantity: 50})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.ActionID)
		assert.Empty(t, resp.Warnings)
		assert.Equal(t, entity.ActionPending, store.Status(resp.ActionID))

		env := <-q.ch
		assert.Equal(t, entity.EventRestockOrder, env.Kind)
		assert.Equal(t, "Amul", env.Payload["supplier"])
		assert.Equal(t, 50, env.Payload["quantity"])
	})

	cases := map[string]dto.RestockOrderRequest{
		"sin ciudad":         {Product: "Milk", Quantity: 5},
		"sin producto":       {City: "Mumbai", Quantity: 5},
		"cantidad cero":      {City: "Mumbai", Product: "Milk"},
		"cantidad negativa":  {City: "Mumbai", Product: "Milk", Quantity: -3},
		"ciudad desconocida": {City: "Pune", Product: "Milk", Quantity: 5},
		"producto sin stock": {City: "Mumbai", Product: "Bread", Quantity: 5},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := uc.TriggerRestock(ctx, in)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
	assert.Empty(t, q.ch, "ninguna entrada inválida llega a la cola")
}

func TestSendAlert(t *testing.T) {
	uc, q, _ := newActions(4)
	ctx := context.Background()

	resp, err := uc.SendAlert(ctx, dto.AlertRequest{Message: "  Stock bajo en Delhi  "})
	require.NoError(t, err)
	assert.Contains(t, resp.Message, "medium")

	env := <-q.ch
	assert.Equal(t, entity.EventAlert, env.Kind)
	assert.Equal(t, "Stock bajo en Delhi", env.Payload["message"])
	assert.Equal(t, automation.DefaultAlertRecipients, env.Payload["recipients"])

	_, err = uc.SendAlert(ctx, dto.AlertRequest{Message: ""})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.SendAlert(ctx, dto.AlertRequest{Message: "x", Priority: "urgentísimo"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	resp, err = uc.SendAlert(ctx, dto.AlertRequest{Message: "x", Priority: "CRITICAL", Recipients: []string{"ops@x.com"}})
	require.NoError(t, err)
	env = <-q.ch
	assert.Equal(t, "critical", env.Payload["priority"])
	assert.Equal(t, []string{"ops@x.com"}, env.Payload["recipients"])
	assert.NotEmpty(t, resp.ActionID)
}

func TestRecentActions_MasRecientesPrimero(t *testing.T) {
	uc, _, _ := newActions(8)
	ctx := context.Background()
	for _, msg := range []string{"uno", "dos", "tres"} {
		_, err := uc.SendAlert(ctx, dto.AlertRequest{Message: msg})
		require.NoError(t, err)
	}

	got, err := uc.RecentActions(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Contains(t, got[0].Details, "tres")
	assert.Contains(t, got[1].Details, "dos")
	assert.Equal(t, string(entity.EventAlert), got[0].ActionType)
}

func TestNotifyNow_EntregaSincrona(t *testing.T) {
	n := &recordingNotifier{}
	store := newActionStore()
	uc := automation.NewActionsUseCase(newDispatcher(n, newChanQueue(1), store, time.Second), nil, store)

	resp, err := uc.NotifyNow(context.Background(), dto.NotifyRequest{Event: " alert ", Payload: map[string]any{"message": "ping"}})
	require.NoError(t, err)
	assert.True(t, resp.Delivered)
	assert.Equal(t, 1, n.Calls())
	assert.Equal(t, entity.ActionCompleted, store.Status(resp.ActionID))
}

func TestNotifyNow_FalloDevuelveIDYError(t *testing.T) {
	n := &recordingNotifier{fail: func(context.Context, int) error { return errors.New("502 bad gateway") }}
	store := newActionStore()
	uc := automation.NewActionsUseCase(newDispatcher(n, newChanQueue(1), store, time.Second), nil, store)

	resp, err := uc.NotifyNow(context.Background(), dto.NotifyRequest{Event: "RESTOCK_ORDER"})
	assert.ErrorIs(t, err, domain.ErrNotification)
	require.NotNil(t, resp)
	assert.False(t, resp.Delivered)
	assert.NotEmpty(t, resp.ActionID)
	assert.Contains(t, resp.Error, "502")
}

func TestNotifyNow_EventoDesconocido(t *testing.T) {
	uc, _, _ := newActions(1)
	resp, err := uc.NotifyNow(context.Background(), dto.NotifyRequest{Event: "SHIPMENT"})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Nil(t, resp)
}
