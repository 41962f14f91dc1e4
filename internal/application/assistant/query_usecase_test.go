package assistant_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/qcommerce-agent/internal/application/assistant"
	"github.com/jhoicas/qcommerce-agent/internal/application/dto"
	"github.com/jhoicas/qcommerce-agent/internal/application/ports"
	"github.com/jhoicas/qcommerce-agent/internal/domain"
	"github.com/jhoicas/qcommerce-agent/internal/domain/entity"
)

type fakeAllocator struct {
	got entity.AllocationRequest
	err error
}

func (f *fakeAllocator) Allocate(_ context.Context, req entity.AllocationRequest, lookbackDays int) (*entity.AllocationResult, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &entity.AllocationResult{
		Product: req.Product, TotalQuantity: req.TotalQuantity, LookbackDays: 7,
		Allocations: map[string]int{"Mumbai": 60, "Delhi": 40},
		UnitsByCity: map[string]int{"Mumbai": 30, "Delhi": 20},
	}, nil
}

type fakeAdvisor struct{ ratio float64 }

func (f *fakeAdvisor) FindUrgentRestocks(_ context.Context, ratio float64) ([]entity.RestockAlert, error) {
	f.ratio = ratio
	return []entity.RestockAlert{{City: "Delhi", Product: "Milk", CurrentStock: 2, Priority: 1}}, nil
}

type fakePerformance struct{}

func (fakePerformance) CityPerformance(context.Context, int) ([]dto.CityPerformanceDTO, error) {
	return []dto.CityPerformanceDTO{{City: "Mumbai", TotalUnits: 10}}, nil
}

type fakeGenerator struct {
	name  string
	text  string
	err   error
	calls int
}

func (g *fakeGenerator) Name() string { return g.name }

func (g *fakeGenerator) Recommend(_ context.Context, rec ports.Recommendation) (string, error) {
	g.calls++
	if g.err != nil {
		return "", g.err
	}
	return g.text + ":" + rec.Intent, nil
}

func newQuery(gen *fakeGenerator, fallback ports.TextGenerator) (*assistant.QueryUseCase, *fakeAllocator, *fakeAdvisor) {
	alloc := &fakeAllocator{}
	adv := &fakeAdvisor{}
	return assistant.NewQueryUseCase(alloc, adv, fakePerformance{}, gen, fallback, nil), alloc, adv
}

func TestHandle_Reparto(t *testing.T) {
	uc, alloc, _ := newQuery(&fakeGenerator{name: "anthropic", text: "ok"}, &fakeGenerator{name: "template"})

	resp, err := uc.Handle(context.Background(), dto.QueryRequest{Intent: " Allocate ", Product: " Milk ", TotalQuantity: 100})
	require.NoError(t, err)

	assert.Equal(t, "Milk", alloc.got.Product)
	require.NotNil(t, resp.Allocation)
	require.Len(t, resp.Allocation.Allocations, 2)
	assert.Equal(t, "Mumbai", resp.Allocation.Allocations[0].City)
	assert.InDelta(t, 60.0, resp.Allocation.Allocations[0].SharePct, 1e-9)
	assert.Equal(t, "ok:allocate", resp.Response)
	assert.Empty(t, resp.Warnings)
}

func TestHandle_ReposicionUsaUmbralPorDefecto(t *testing.T) {
	uc, _, adv := newQuery(&fakeGenerator{name: "template", text: "t"}, nil)

	resp, err := uc.Handle(context.Background(), dto.QueryRequest{Intent: dto.IntentRestock})
	require.NoError(t, err)
	assert.InDelta(t, assistant.DefaultThresholdRatio, adv.ratio, 1e-9)
	require.Len(t, resp.Restock, 1)
	assert.Equal(t, "Delhi", resp.Restock[0].City)
}

func TestHandle_ReposicionUsaUmbralConfigurado(t *testing.T) {
	uc, _, adv := newQuery(&fakeGenerator{name: "template", text: "t"}, nil)
	uc.WithDefaultThreshold(0.35)

	_, err := uc.Handle(context.Background(), dto.QueryRequest{Intent: dto.IntentRestock})
	require.NoError(t, err)
	assert.InDelta(t, 0.35, adv.ratio, 1e-9)

	_, err = uc.Handle(context.Background(), dto.QueryRequest{Intent: dto.IntentRestock, ThresholdRatio: 0.5})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, adv.ratio, 1e-9, "el valor de la consulta manda")
}

func TestHandle_Desempeno(t *testing.T) {
	uc, _, _ := newQuery(&fakeGenerator{name: "template", text: "t"}, nil)

	resp, err := uc.Handle(context.Background(), dto.QueryRequest{Intent: dto.IntentPerformance})
	require.NoError(t, err)
	require.Len(t, resp.Performance, 1)
}

func TestHandle_FalloDelModeloUsaPlantilla(t *testing.T) {
	remote := &fakeGenerator{name: "gemini", err: errors.New("503")}
	tmpl := &fakeGenerator{name: "template", text: "plantilla"}
	uc, _, _ := newQuery(remote, tmpl)

	resp, err := uc.Handle(context.Background(), dto.QueryRequest{Intent: dto.IntentRestock})
	require.NoError(t, err, "el texto nunca hace fallar la consulta")

	assert.Equal(t, "plantilla:restock", resp.Response)
	require.Len(t, resp.Warnings, 1)
	assert.Contains(t, resp.Warnings[0], "gemini")
	assert.Equal(t, 1, remote.calls)
	assert.Equal(t, 1, tmpl.calls)
}

func TestHandle_IntencionDesconocida(t *testing.T) {
	gen := &fakeGenerator{name: "template"}
	uc, _, _ := newQuery(gen, nil)

	_, err := uc.Handle(context.Background(), dto.QueryRequest{Intent: "forecast"})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Zero(t, gen.calls)
}

func TestHandle_PropagaErrorDelCalculo(t *testing.T) {
	uc, alloc, _ := newQuery(&fakeGenerator{name: "template"}, nil)
	alloc.err = &domain.InsufficientDataError{Product: "Milk", LookbackDays: 7}

	_, err := uc.Handle(context.Background(), dto.QueryRequest{Intent: dto.IntentAllocate, Product: "Milk", TotalQuantity: 5})
	assert.ErrorIs(t, err, domain.ErrInsufficientData)
}
