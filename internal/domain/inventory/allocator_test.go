package inventory_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/qcommerce-agent/internal/domain/inventory"
)

func sum(m map[string]int) int {
	total := 0
	for _, v := range m {
		total += v
	}
	return total
}

func TestDistribute_RepartoExactoSinResiduo(t *testing.T) {
	got, err := inventory.Distribute(map[string]int{"Mumbai": 40, "Delhi": 35, "Bangalore": 25}, 1000)
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"Mumbai": 400, "Delhi": 350, "Bangalore": 250}, got)
}

func TestDistribute_ResiduoAlMayorRemanente(t *testing.T) {
	// 50/30/20 sobre 7: 3.5, 2.1, 1.4 → 3,2,1 y residuo 1 para Mumbai (0.5).
	got, err := inventory.Distribute(map[string]int{"Mumbai": 50, "Delhi": 30, "Pune": 20}, 7)
	require.NoError(t, err)

	assert.Equal(t, 7, sum(got))
	assert.Equal(t, 4, got["Mumbai"])
	assert.Equal(t, 2, got["Delhi"])
	assert.Equal(t, 1, got["Pune"])
}

func TestDistribute_CiudadSinVentasRecibeCero(t *testing.T) {
	got, err := inventory.Distribute(map[string]int{"Mumbai": 3, "Delhi": 0, "Chennai": 1}, 5)
	require.NoError(t, err)

	assert.Equal(t, 0, got["Delhi"])
	assert.Equal(t, 5, sum(got))
}

func TestDistribute_SumaSiempreIgualAlTotal(t *testing.T) {
	units := map[string]int{"A": 7, "B": 13, "C": 1, "D": 29, "E": 0, "F": 3}
	for total := 1; total <= 500; total++ {
		got, err := inventory.Distribute(units, total)
		require.NoError(t, err)
		require.Equal(t, total, sum(got), "total=%d", total)
		require.Equal(t, 0, got["E"], "total=%d", total)
	}
}

func TestDistribute_EmpateDeterministico(t *testing.T) {
	units := map[string]int{"Delhi": 1, "Mumbai": 1, "Bangalore": 1}
	first, err := inventory.Distribute(units, 2)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		again, err := inventory.Distribute(units, 2)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
	// Empate total: desempata por nombre ascendente.
	assert.Equal(t, map[string]int{"Bangalore": 1, "Delhi": 1, "Mumbai": 0}, first)
}

func TestDistribute_CantidadesCercanasAlMaximo(t *testing.T) {
	cases := map[string]struct {
		units map[string]int
		total int
	}{
		"60/40":        {units: map[string]int{"Mumbai": 60, "Delhi": 40}, total: math.MaxInt64 / 50},
		"MaxInt64":     {units: map[string]int{"Mumbai": 50, "Delhi": 30, "Pune": 20}, total: math.MaxInt64},
		"ventas altas": {units: map[string]int{"Mumbai": math.MaxInt32, "Delhi": 7}, total: math.MaxInt64 - 1},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := inventory.Distribute(tc.units, tc.total)
			require.NoError(t, err)

			assert.Equal(t, tc.total, sum(got))
			for city, v := range got {
				assert.GreaterOrEqual(t, v, 0, city)
			}
			assert.Greater(t, got["Mumbai"], got["Delhi"])
		})
	}
}

func TestDistribute_TotalNegativo(t *testing.T) {
	_, err := inventory.Distribute(map[string]int{"Mumbai": 1}, -1)
	assert.Error(t, err)
}

func TestDistribute_SinDemanda(t *testing.T) {
	_, err := inventory.Distribute(map[string]int{"Mumbai": 0}, 10)
	assert.ErrorIs(t, err, inventory.ErrNoDemand)

	_, err = inventory.Distribute(nil, 10)
	assert.ErrorIs(t, err, inventory.ErrNoDemand)
}
