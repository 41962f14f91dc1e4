package automation

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/qcommerce-agent/internal/application/dto"
	"github.com/jhoicas/qcommerce-agent/internal/domain"
	"github.com/jhoicas/qcommerce-agent/internal/domain/entity"
	"github.com/jhoicas/qcommerce-agent/internal/domain/repository"
)

// DefaultAlertRecipients destinatarios si la alerta no indica ninguno.
var DefaultAlertRecipients = []string{"operations@company.com"}

// DefaultRestockNotifyLimit alertas de reposición enviadas por consulta.
const DefaultRestockNotifyLimit = 5

var alertPriorities = map[string]bool{"low": true, "medium": true, "high": true, "critical": true}

// ActionsUseCase acciones que terminan en el servicio de automatización:
// avisos de reparto y de reposición, órdenes de reposición manuales y alertas libres.
type ActionsUseCase struct {
	dispatcher    *Dispatcher
	inventoryRepo repository.InventoryRepository
	actions       repository.ActionLogRepository
}

// NewActionsUseCase construye el caso de uso. actions puede ser nil (sin listado de trazas).
func NewActionsUseCase(
	dispatcher *Dispatcher,
	inventoryRepo repository.InventoryRepository,
	actions repository.ActionLogRepository,
) *ActionsUseCase {
	return &ActionsUseCase{dispatcher: dispatcher, inventoryRepo: inventoryRepo, actions: actions}
}

// NotifyAllocation encola el aviso de un reparto. El error, si lo hay, es solo advertencia.
func (uc *ActionsUseCase) NotifyAllocation(ctx context.Context, res *entity.AllocationResult) (string, error) {
	details := fmt.Sprintf("Reparto de %d unidades de %s entre %d ciudades", res.TotalQuantity, res.Product, len(res.Allocations))
	return uc.dispatcher.Enqueue(ctx, entity.EventAllocation, AllocationPayload(res), details)
}

// NotifyRestockAlerts encola una alerta por ítem (los limit más urgentes).
// Devuelve los IDs encolados y las advertencias de los que no se pudieron encolar.
func (uc *ActionsUseCase) NotifyRestockAlerts(ctx context.Context, alerts []entity.RestockAlert, limit int) ([]string, []error) {
	if limit <= 0 {
		limit = DefaultRestockNotifyLimit
	}
	if len(alerts) < limit {
		limit = len(alerts)
	}
	ids := make([]string, 0, limit)
	var warnings []error
	for _, a := range alerts[:limit] {
		details := fmt.Sprintf("Stock crítico en %s: %s (%d unidades)", a.City, a.Product, a.CurrentStock)
		id, err := uc.dispatcher.Enqueue(ctx, entity.EventRestockAlert, RestockAlertPayload(a), details)
		if err != nil {
			warnings = append(warnings, err)
		}
		if id != "" {
			ids = append(ids, id)
		}
	}
	return ids, warnings
}

// TriggerRestock registra y encola una orden de reposición para (ciudad, producto).
// Ciudad/producto desconocidos o cantidad no positiva se rechazan sin enviar nada.
func (uc *ActionsUseCase) TriggerRestock(ctx context.Context, in dto.RestockOrderRequest) (*dto.ActionResponse, error) {
	city, product := strings.TrimSpace(in.City), strings.TrimSpace(in.Product)
	if city == "" {
		return nil, domain.NewValidationError("city", "es obligatorio")
	}
	if product == "" {
		return nil, domain.NewValidationError("product", "es obligatorio")
	}
	if in.Quantity <= 0 {
		return nil, domain.NewValidationError("quantity", "debe ser mayor que 0")
	}

	rows, err := uc.inventoryRepo.GetInventory(ctx, repository.InventoryFilter{City: city, Product: product})
	if err != nil {
		return nil, fmt.Errorf("orden de reposición: leer inventario: %w", err)
	}
	if len(rows) == 0 {
		return nil, domain.NewValidationError("city", fmt.Sprintf("no hay inventario de %q en %q", product, city))
	}

	payload := map[string]any{
		"action_type": "restock_order",
		"city":        city,
		"product":     product,
		"quantity":    in.Quantity,
		"supplier":    rows[0].Supplier,
	}
	details := fmt.Sprintf("Orden de reposición para %s: %d unidades de %s", city, in.Quantity, product)
	id, warn := uc.dispatcher.Enqueue(ctx, entity.EventRestockOrder, payload, details)

	return &dto.ActionResponse{
		ActionID: id,
		Message:  details,
		Warnings: warningStrings(warn),
	}, nil
}

// SendAlert registra y encola una alerta libre para el equipo de operaciones.
func (uc *ActionsUseCase) SendAlert(ctx context.Context, in dto.AlertRequest) (*dto.ActionResponse, error) {
	message := strings.TrimSpace(in.Message)
	if message == "" {
		return nil, domain.NewValidationError("message", "es obligatorio")
	}
	priority := strings.ToLower(strings.TrimSpace(in.Priority))
	if priority == "" {
		priority = "medium"
	}
	if !alertPriorities[priority] {
		return nil, domain.NewValidationError("priority", "debe ser low, medium, high o critical")
	}
	recipients := in.Recipients
	if len(recipients) == 0 {
		recipients = DefaultAlertRecipients
	}

	payload := map[string]any{
		"action_type": "alert",
		"message":     message,
		"priority":    priority,
		"recipients":  recipients,
	}
	details := fmt.Sprintf("Alerta de prioridad %s: %s", priority, message)
	id, warn := uc.dispatcher.Enqueue(ctx, entity.EventAlert, payload, details)

	return &dto.ActionResponse{
		ActionID: id,
		Message:  details,
		Warnings: warningStrings(warn),
	}, nil
}

// RecentActions últimas acciones registradas.
func (uc *ActionsUseCase) RecentActions(ctx context.Context, limit int) ([]dto.ActionLogDTO, error) {
	if uc.actions == nil {
		return []dto.ActionLogDTO{}, nil
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	logs, err := uc.actions.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("acciones recientes: %w", err)
	}
	out := make([]dto.ActionLogDTO, 0, len(logs))
	for _, a := range logs {
		out = append(out, dto.ActionLogDTO{
			ID:         a.ID,
			Timestamp:  a.Timestamp,
			ActionType: string(a.ActionType),
			Details:    a.Details,
			Status:     a.Status,
			Endpoint:   a.Endpoint,
			Response:   a.Response,
		})
	}
	return out, nil
}

// NotifyNow entrega un evento de forma síncrona. El error de entrega se devuelve junto
// con la respuesta para que el caller informe el ID de la acción fallida.
func (uc *ActionsUseCase) NotifyNow(ctx context.Context, in dto.NotifyRequest) (*dto.NotifyResponse, error) {
	kind := entity.EventKind(strings.ToUpper(strings.TrimSpace(in.Event)))
	payload := in.Payload
	if payload == nil {
		payload = map[string]any{}
	}
	details := strings.TrimSpace(in.Details)
	if details == "" {
		details = fmt.Sprintf("Notificación manual %s", kind)
	}
	id, err := uc.dispatcher.NotifyNow(ctx, kind, payload, details)
	if id == "" && err != nil {
		return nil, err
	}
	resp := &dto.NotifyResponse{ActionID: id, Delivered: err == nil}
	if err != nil {
		resp.Error = err.Error()
	}
	return resp, err
}

func warningStrings(errs ...error) []string {
	var out []string
	for _, err := range errs {
		if err != nil {
			out = append(out, err.Error())
		}
	}
	return out
}
