package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jhoicas/qcommerce-agent/internal/application/ports"
)

var _ ports.TextGenerator = (*GeminiService)(nil)

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"

// GeminiService redacta recomendaciones con la API REST de Google Gemini.
type GeminiService struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewGeminiService construye el adaptador. model suele ser "gemini-1.5-flash".
func NewGeminiService(apiKey, model string) *GeminiService {
	return &GeminiService{
		apiKey:     apiKey,
		model:      model,
		baseURL:    geminiBaseURL,
		httpClient: &http.Client{Timeout: 20 * time.Second},
	}
}

// WithBaseURL apunta a otro endpoint (proxy, tests).
func (s *GeminiService) WithBaseURL(u string) *GeminiService {
	s.baseURL = strings.TrimRight(u, "/")
	return s
}

// Name identifica la variante.
func (s *GeminiService) Name() string { return "gemini" }

type geminiRequest struct {
	SystemInstruction *geminiContent  `json:"system_instruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
	GenerationConfig  genConfig       `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
	Role  string       `json:"role,omitempty"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type genConfig struct {
	Temperature     float32 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Recommend envía los datos calculados a Gemini y devuelve el texto redactado.
func (s *GeminiService) Recommend(ctx context.Context, rec ports.Recommendation) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("AI: GEMINI_API_KEY no configurado")
	}
	user, err := userPrompt(rec)
	if err != nil {
		return "", fmt.Errorf("AI: %w", err)
	}

	body, err := json.Marshal(geminiRequest{
		SystemInstruction: &geminiContent{Parts: []geminiPart{{Text: systemPrompt}}},
		Contents:          []geminiContent{{Role: "user", Parts: []geminiPart{{Text: user}}}},
		GenerationConfig:  genConfig{Temperature: 0.3, MaxOutputTokens: 512},
	})
	if err != nil {
		return "", fmt.Errorf("AI: serializar request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s:generateContent?key=%s", s.baseURL, url.PathEscape(s.model), url.QueryEscape(s.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("AI: crear HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("AI: timeout o cancelación: %w", ctx.Err())
		}
		// El error de url.Error incluye la URL con la API key: no propagarlo tal cual.
		return "", fmt.Errorf("AI: llamada HTTP a Gemini fallida")
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return "", fmt.Errorf("AI: leer respuesta: %w", err)
	}

	var out geminiResponse
	if resp.StatusCode != http.StatusOK {
		if jsonErr := json.Unmarshal(rawBody, &out); jsonErr == nil && out.Error != nil {
			return "", fmt.Errorf("AI: Gemini error %d: %s", out.Error.Code, out.Error.Message)
		}
		return "", fmt.Errorf("AI: Gemini HTTP %d", resp.StatusCode)
	}
	if err := json.Unmarshal(rawBody, &out); err != nil {
		return "", fmt.Errorf("AI: deserializar respuesta Gemini: %w", err)
	}
	if len(out.Candidates) == 0 {
		return "", fmt.Errorf("AI: Gemini no devolvió candidatos")
	}

	var b strings.Builder
	for _, p := range out.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", fmt.Errorf("AI: Gemini devolvió respuesta vacía")
	}
	return text, nil
}
