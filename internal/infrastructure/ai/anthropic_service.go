package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jhoicas/qcommerce-agent/internal/application/ports"
)

// Verificar en tiempo de compilación que AnthropicService implementa TextGenerator.
var _ ports.TextGenerator = (*AnthropicService)(nil)

const (
	anthropicMessagesURL = "https://api.anthropic.com/v1/messages"
	anthropicVersion     = "2023-06-01"
)

// AnthropicService redacta recomendaciones con la API REST de Anthropic (Claude).
// Usa net/http; no requiere el SDK oficial.
type AnthropicService struct {
	apiKey     string
	model      string
	url        string
	httpClient *http.Client
}

// NewAnthropicService construye el adaptador. model suele ser "claude-3-5-haiku-20241022".
// Si apiKey está vacío las llamadas devuelven error descriptivo.
func NewAnthropicService(apiKey, model string) *AnthropicService {
	return &AnthropicService{
		apiKey: apiKey,
		model:  model,
		url:    anthropicMessagesURL,
		httpClient: &http.Client{
			// Tope de red; el caso de uso impone además su propio timeout.
			Timeout: 25 * time.Second,
		},
	}
}

// WithURL apunta a otro endpoint (proxy, tests).
func (s *AnthropicService) WithURL(url string) *AnthropicService {
	s.url = url
	return s
}

// Name identifica la variante.
func (s *AnthropicService) Name() string { return "anthropic" }

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Recommend envía los datos calculados a Claude y devuelve el texto redactado.
func (s *AnthropicService) Recommend(ctx context.Context, rec ports.Recommendation) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("AI: ANTHROPIC_API_KEY no configurado")
	}
	user, err := userPrompt(rec)
	if err != nil {
		return "", fmt.Errorf("AI: %w", err)
	}

	body, err := json.Marshal(anthropicRequest{
		Model:     s.model,
		MaxTokens: 512,
		System:    systemPrompt,
		Messages:  []anthropicMessage{{Role: "user", Content: user}},
	})
	if err != nil {
		return "", fmt.Errorf("AI: serializar request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("AI: crear HTTP request: %w", err)
	}
	req.Header.Set("x-api-key", s.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)
	req.Header.Set("content-type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("AI: timeout o cancelación: %w", ctx.Err())
		}
		return "", fmt.Errorf("AI: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return "", fmt.Errorf("AI: leer respuesta: %w", err)
	}

	var out anthropicResponse
	if resp.StatusCode != http.StatusOK {
		if jsonErr := json.Unmarshal(rawBody, &out); jsonErr == nil && out.Error != nil {
			return "", fmt.Errorf("AI: Anthropic error (%s): %s", out.Error.Type, out.Error.Message)
		}
		return "", fmt.Errorf("AI: Anthropic HTTP %d: %s", resp.StatusCode, string(rawBody))
	}
	if err := json.Unmarshal(rawBody, &out); err != nil {
		return "", fmt.Errorf("AI: deserializar respuesta Anthropic: %w", err)
	}

	var b strings.Builder
	for _, c := range out.Content {
		if c.Type == "text" {
			b.WriteString(c.Text)
		}
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", fmt.Errorf("AI: Claude devolvió respuesta vacía")
	}
	return text, nil
}
