// Package assistant resuelve consultas estructuradas (reparto, reposición, desempeño)
// y redacta una recomendación en texto sobre los datos calculados.
package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/qcommerce-agent/internal/application/dto"
	"github.com/jhoicas/qcommerce-agent/internal/application/ports"
	"github.com/jhoicas/qcommerce-agent/internal/domain"
	"github.com/jhoicas/qcommerce-agent/internal/domain/entity"
	"github.com/jhoicas/qcommerce-agent/pkg/logger"
)

// Allocator reparte unidades según la demanda histórica.
type Allocator interface {
	Allocate(ctx context.Context, req entity.AllocationRequest, lookbackDays int) (*entity.AllocationResult, error)
}

// RestockAdvisor lista los ítems de reposición urgente.
type RestockAdvisor interface {
	FindUrgentRestocks(ctx context.Context, thresholdRatio float64) ([]entity.RestockAlert, error)
}

// PerformanceReader métricas por ciudad.
type PerformanceReader interface {
	CityPerformance(ctx context.Context, days int) ([]dto.CityPerformanceDTO, error)
}

// DefaultThresholdRatio umbral de urgencia si la consulta no indica otro ni se configuró uno.
const DefaultThresholdRatio = 0.2

// QueryUseCase orquesta el cálculo y la redacción.
// Si el generador principal falla se usa el de plantillas y se agrega una advertencia:
// la respuesta nunca falla por culpa del texto.
type QueryUseCase struct {
	allocator   Allocator
	restock     RestockAdvisor
	performance PerformanceReader
	generator   ports.TextGenerator
	fallback    ports.TextGenerator
	timeout     time.Duration
	threshold   float64
	log         *logger.Logger
}

// NewQueryUseCase construye el caso de uso. fallback debe ser determinista y sin red.
func NewQueryUseCase(
	allocator Allocator,
	restock RestockAdvisor,
	performance PerformanceReader,
	generator ports.TextGenerator,
	fallback ports.TextGenerator,
	log *logger.Logger,
) *QueryUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &QueryUseCase{
		allocator:   allocator,
		restock:     restock,
		performance: performance,
		generator:   generator,
		fallback:    fallback,
		timeout:     15 * time.Second,
		threshold:   DefaultThresholdRatio,
		log:         log.Component("assistant"),
	}
}

// WithTimeout cambia el tiempo máximo de redacción por consulta.
func (uc *QueryUseCase) WithTimeout(d time.Duration) *QueryUseCase {
	if d > 0 {
		uc.timeout = d
	}
	return uc
}

// WithDefaultThreshold umbral configurado para consultas de reposición sin threshold_ratio.
func (uc *QueryUseCase) WithDefaultThreshold(ratio float64) *QueryUseCase {
	if ratio > 0 {
		uc.threshold = ratio
	}
	return uc
}

// Handle resuelve la consulta según su intención.
func (uc *QueryUseCase) Handle(ctx context.Context, req dto.QueryRequest) (*dto.QueryResponse, error) {
	intent := strings.ToLower(strings.TrimSpace(req.Intent))
	resp := &dto.QueryResponse{Intent: intent}
	rec := ports.Recommendation{Intent: intent}

	switch intent {
	case dto.IntentAllocate:
		res, err := uc.allocator.Allocate(ctx, entity.AllocationRequest{
			Product:       strings.TrimSpace(req.Product),
			TotalQuantity: req.TotalQuantity,
		}, req.LookbackDays)
		if err != nil {
			return nil, err
		}
		resp.Allocation = dto.FromAllocation(res)
		rec.Allocation = res

	case dto.IntentRestock:
		ratio := req.ThresholdRatio
		if ratio == 0 {
			ratio = uc.threshold
		}
		alerts, err := uc.restock.FindUrgentRestocks(ctx, ratio)
		if err != nil {
			return nil, err
		}
		resp.Restock = dto.FromRestockAlerts(alerts)
		rec.Alerts = alerts

	case dto.IntentPerformance:
		rows, err := uc.performance.CityPerformance(ctx, req.Days)
		if err != nil {
			return nil, err
		}
		resp.Performance = rows
		rec.Performance = rows

	default:
		return nil, domain.NewValidationError("intent",
			fmt.Sprintf("debe ser %s, %s o %s", dto.IntentAllocate, dto.IntentRestock, dto.IntentPerformance))
	}

	text, warning := uc.recommend(ctx, rec)
	resp.Response = text
	if warning != "" {
		resp.Warnings = append(resp.Warnings, warning)
	}
	return resp, nil
}

// Recommend redacta el texto para datos ya calculados (lo usan también los handlers de reparto).
func (uc *QueryUseCase) Recommend(ctx context.Context, rec ports.Recommendation) (string, []string) {
	text, warning := uc.recommend(ctx, rec)
	if warning == "" {
		return text, nil
	}
	return text, []string{warning}
}

func (uc *QueryUseCase) recommend(ctx context.Context, rec ports.Recommendation) (string, string) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	text, err := uc.generator.Recommend(ctx, rec)
	if err == nil && strings.TrimSpace(text) != "" {
		return text, ""
	}
	if err == nil {
		err = fmt.Errorf("respuesta vacía")
	}
	uc.log.Warn().Err(err).Str("generator", uc.generator.Name()).Str("intent", rec.Intent).Msg("recomendación con plantilla")

	if uc.fallback == nil || uc.fallback.Name() == uc.generator.Name() {
		return "", fmt.Sprintf("recomendación no disponible: %v", err)
	}
	// La plantilla no llama a la red: el contexto original basta.
	text, ferr := uc.fallback.Recommend(context.WithoutCancel(ctx), rec)
	if ferr != nil {
		return "", fmt.Sprintf("recomendación no disponible: %v", ferr)
	}
	return text, fmt.Sprintf("%s no disponible (%v); se usó %s", uc.generator.Name(), err, uc.fallback.Name())
}
