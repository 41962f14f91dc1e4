package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/qcommerce-agent/internal/domain/inventory"
)

func TestEvaluateUrgency_ConVentasRecientes(t *testing.T) {
	// 30 unidades en 3 días → 10/día; umbral 0.2 * 10 * 3 = 6.
	u := inventory.EvaluateUrgency(5, 100, 30, 3, 0.2)
	assert.True(t, u.Urgent)
	assert.False(t, u.ColdStart)
	assert.InDelta(t, 10.0, u.AvgDaily, 1e-9)
	assert.InDelta(t, 30.0, u.DemandEstimate, 1e-9)
	assert.InDelta(t, 5.0/31.0, u.Rank, 1e-9)

	// Stock en el umbral exacto no es urgente (comparación estricta).
	u = inventory.EvaluateUrgency(6, 100, 30, 3, 0.2)
	assert.False(t, u.Urgent)
}

func TestEvaluateUrgency_ColdStartUsaNivelDeReorden(t *testing.T) {
	u := inventory.EvaluateUrgency(9, 10, 0, 3, 0.2)
	assert.True(t, u.Urgent)
	assert.True(t, u.ColdStart)
	assert.InDelta(t, 9.0, u.Rank, 1e-9)

	u = inventory.EvaluateUrgency(10, 10, 0, 3, 0.2)
	assert.False(t, u.Urgent)
}

func TestMoreUrgent_StockMenorGanaConIgualDemanda(t *testing.T) {
	a := inventory.EvaluateUrgency(9, 0, 300, 3, 0.2)
	b := inventory.EvaluateUrgency(11, 0, 300, 3, 0.2)
	assert.True(t, a.Urgent)
	assert.True(t, b.Urgent)
	assert.True(t, inventory.MoreUrgent(a.Rank, 9, b.Rank, 11))
	assert.False(t, inventory.MoreUrgent(b.Rank, 11, a.Rank, 9))
}

func TestMoreUrgent_EmpateDeRankDesempataPorStock(t *testing.T) {
	assert.True(t, inventory.MoreUrgent(0, 0, 0, 3))
	assert.False(t, inventory.MoreUrgent(0, 3, 0, 3))
}
