package ai

import (
	"fmt"

	"github.com/jhoicas/qcommerce-agent/internal/application/ports"
	"github.com/jhoicas/qcommerce-agent/pkg/config"
)

// NewTextGenerator elige la variante configurada. Una API key vacía es error de arranque:
// nunca se cambia de proveedor en silencio.
func NewTextGenerator(cfg config.AIConfig) (ports.TextGenerator, error) {
	switch cfg.Provider {
	case "", config.AIProviderTemplate:
		return NewTemplateGenerator("es"), nil
	case config.AIProviderAnthropic:
		if cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("AI_PROVIDER=anthropic requiere ANTHROPIC_API_KEY")
		}
		return NewAnthropicService(cfg.AnthropicAPIKey, cfg.AnthropicModel), nil
	case config.AIProviderGemini:
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("AI_PROVIDER=gemini requiere GEMINI_API_KEY")
		}
		return NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiModel), nil
	default:
		return nil, fmt.Errorf("AI_PROVIDER desconocido %q", cfg.Provider)
	}
}
