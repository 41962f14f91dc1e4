// Package automation adaptador HTTP hacia el servicio de automatización (webhook n8n).
package automation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jhoicas/qcommerce-agent/internal/application/ports"
	"github.com/jhoicas/qcommerce-agent/internal/domain/entity"
)

var _ ports.Notifier = (*WebhookClient)(nil)

// WebhookClient un POST JSON por llamada. El timeout por intento lo pone el caller
// vía ctx; el del http.Client es solo un tope de seguridad.
type WebhookClient struct {
	endpoint   string
	httpClient *http.Client
	now        func() time.Time
}

// NewWebhookClient construye el adaptador. httpClient nil usa uno con tope de 30 s.
func NewWebhookClient(endpoint string, httpClient *http.Client) *WebhookClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &WebhookClient{endpoint: endpoint, httpClient: httpClient, now: time.Now}
}

// Endpoint URL configurada.
func (c *WebhookClient) Endpoint() string { return c.endpoint }

// Notify envía {event, timestamp, ...payload}. Cualquier respuesta 2xx es éxito.
func (c *WebhookClient) Notify(ctx context.Context, kind entity.EventKind, payload map[string]any) error {
	body := make(map[string]any, len(payload)+2)
	for k, v := range payload {
		body[k] = v
	}
	body["event"] = string(kind)
	body["timestamp"] = c.now().UTC().Format(time.RFC3339)

	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("webhook: serializar payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("webhook: crear request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("webhook: timeout o cancelación: %w", ctx.Err())
		}
		return fmt.Errorf("webhook: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("webhook: HTTP %d: %s", resp.StatusCode, bytes.TrimSpace(snippet))
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64*1024))
	return nil
}
