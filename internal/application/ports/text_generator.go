package ports

import (
	"context"

	"github.com/jhoicas/qcommerce-agent/internal/application/dto"
	"github.com/jhoicas/qcommerce-agent/internal/domain/entity"
)

// Recommendation datos ya calculados sobre los que se redacta el texto.
// Solo uno de los campos de datos viene informado según Intent.
type Recommendation struct {
	Intent      string // dto.IntentAllocate | dto.IntentRestock | dto.IntentPerformance
	Allocation  *entity.AllocationResult
	Alerts      []entity.RestockAlert
	Performance []dto.CityPerformanceDTO
}

// TextGenerator define el puerto de salida para redactar recomendaciones.
// Hay dos variantes: plantillas (determinista, sin red) y modelo remoto (Anthropic, Gemini).
// La variante se elige en configuración, nunca inspeccionando el entorno en tiempo de ejecución.
type TextGenerator interface {
	// Name identifica la variante (template, anthropic, gemini) para logs y respuestas.
	Name() string
	// Recommend redacta el texto. El contexto debe llevar timeout si la variante llama a la red.
	Recommend(ctx context.Context, rec Recommendation) (string, error)
}
