// Package automation envía avisos al servicio de automatización (webhook n8n) fuera del
// camino crítico de los cálculos: cada evento se registra, se encola y un worker lo entrega
// con timeout por intento y como máximo un reintento.
package automation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/qcommerce-agent/internal/application/ports"
	"github.com/jhoicas/qcommerce-agent/internal/domain"
	"github.com/jhoicas/qcommerce-agent/internal/domain/entity"
	"github.com/jhoicas/qcommerce-agent/internal/domain/repository"
	"github.com/jhoicas/qcommerce-agent/pkg/logger"
)

// DispatcherConfig parámetros de entrega.
type DispatcherConfig struct {
	Endpoint     string        // solo para la traza de acciones
	Timeout      time.Duration // por intento; default 5 s
	MaxRetries   int           // 0 o 1
	RetryBackoff time.Duration // espera antes del reintento
}

// Dispatcher encola y entrega notificaciones. Un fallo nunca se propaga al cálculo
// que lo originó: se registra en el log y se devuelve como *domain.NotificationError.
type Dispatcher struct {
	notifier ports.Notifier
	queue    ports.NotificationQueue
	actions  repository.ActionLogRepository
	cfg      DispatcherConfig
	log      *logger.Logger
	now      func() time.Time
}

// NewDispatcher construye el dispatcher. actions puede ser nil (sin traza persistida).
func NewDispatcher(
	notifier ports.Notifier,
	queue ports.NotificationQueue,
	actions repository.ActionLogRepository,
	cfg DispatcherConfig,
	log *logger.Logger,
) *Dispatcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.MaxRetries > 1 {
		cfg.MaxRetries = 1
	}
	if cfg.RetryBackoff < 0 {
		cfg.RetryBackoff = 0
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Dispatcher{
		notifier: notifier,
		queue:    queue,
		actions:  actions,
		cfg:      cfg,
		log:      log.Component("dispatcher"),
		now:      time.Now,
	}
}

// Enqueue registra la acción (pending) y la encola sin bloquear.
// Devuelve el ID de la acción; si la cola no acepta el evento el error es *domain.NotificationError.
func (d *Dispatcher) Enqueue(ctx context.Context, kind entity.EventKind, payload map[string]any, details string) (string, error) {
	if !kind.Valid() {
		return "", domain.NewValidationError("event_kind", fmt.Sprintf("tipo desconocido %q", kind))
	}

	actionID := d.record(ctx, kind, details)
	env := ports.Envelope{ActionID: actionID, Kind: kind, Payload: withActionID(payload, actionID), EnqueuedAt: d.now()}

	if err := d.queue.Push(ctx, env); err != nil {
		d.log.Warn().Err(err).Str("event_kind", string(kind)).Str("action_id", actionID).Msg("notificación no encolada")
		d.setStatus(ctx, actionID, entity.ActionFailed, err.Error())
		return actionID, &domain.NotificationError{Kind: string(kind), Err: err}
	}
	d.log.Debug().Str("event_kind", string(kind)).Str("action_id", actionID).Msg("notificación encolada")
	return actionID, nil
}

// NotifyNow entrega el evento de forma síncrona con las mismas reglas de timeout y reintento.
func (d *Dispatcher) NotifyNow(ctx context.Context, kind entity.EventKind, payload map[string]any, details string) (string, error) {
	if !kind.Valid() {
		return "", domain.NewValidationError("event_kind", fmt.Sprintf("tipo desconocido %q", kind))
	}
	actionID := d.record(ctx, kind, details)
	err := d.deliver(ctx, ports.Envelope{ActionID: actionID, Kind: kind, Payload: withActionID(payload, actionID), EnqueuedAt: d.now()})
	return actionID, err
}

// Run consume la cola hasta que se cancele ctx o se cierre la cola.
// Pensado para correr en su propia goroutine desde main.
func (d *Dispatcher) Run(ctx context.Context) error {
	d.log.Info().Dur("timeout", d.cfg.Timeout).Int("max_retries", d.cfg.MaxRetries).Msg("dispatcher iniciado")
	for {
		env, err := d.queue.Pop(ctx)
		if err != nil {
			if errors.Is(err, ports.ErrQueueClosed) || ctx.Err() != nil {
				d.log.Info().Msg("dispatcher detenido")
				return nil
			}
			d.log.Error().Err(err).Msg("leer cola de notificaciones")
			if !sleep(ctx, time.Second) {
				return nil
			}
			continue
		}
		// El error ya quedó registrado; el worker sigue con el siguiente evento.
		_ = d.deliver(ctx, env)
	}
}

// deliver ejecuta hasta 1+MaxRetries intentos, cada uno con su propio timeout.
func (d *Dispatcher) deliver(ctx context.Context, env ports.Envelope) error {
	attempts := 1 + d.cfg.MaxRetries
	made := 0
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		made = attempt
		attemptCtx, cancel := context.WithTimeout(ctx, d.cfg.Timeout)
		lastErr = d.notifier.Notify(attemptCtx, env.Kind, env.Payload)
		cancel()

		if lastErr == nil {
			d.log.Info().
				Str("event_kind", string(env.Kind)).
				Str("action_id", env.ActionID).
				Int("attempt", attempt).
				Msg("notificación entregada")
			d.setStatus(ctx, env.ActionID, entity.ActionCompleted, "")
			return nil
		}

		d.log.Warn().Err(lastErr).
			Str("event_kind", string(env.Kind)).
			Str("action_id", env.ActionID).
			Int("attempt", attempt).
			Msg("fallo al notificar a la automatización")

		if attempt < attempts && !sleep(ctx, d.cfg.RetryBackoff) {
			break
		}
	}

	d.setStatus(ctx, env.ActionID, entity.ActionFailed, lastErr.Error())
	return &domain.NotificationError{Kind: string(env.Kind), Attempts: made, Err: lastErr}
}

func (d *Dispatcher) record(ctx context.Context, kind entity.EventKind, details string) string {
	id := uuid.New().String()
	if d.actions == nil {
		return id
	}
	err := d.actions.Create(ctx, &entity.ActionLog{
		ID:         id,
		Timestamp:  d.now(),
		ActionType: kind,
		Details:    details,
		Status:     entity.ActionPending,
		Endpoint:   d.cfg.Endpoint,
	})
	if err != nil {
		d.log.Warn().Err(err).Str("action_id", id).Msg("registrar acción")
	}
	return id
}

func (d *Dispatcher) setStatus(ctx context.Context, id, status, response string) {
	if d.actions == nil || id == "" {
		return
	}
	// La traza se actualiza aunque el contexto del request ya haya terminado.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
	defer cancel()
	if err := d.actions.UpdateStatus(ctx, id, status, response); err != nil {
		d.log.Warn().Err(err).Str("action_id", id).Msg("actualizar estado de la acción")
	}
}

func withActionID(payload map[string]any, id string) map[string]any {
	out := make(map[string]any, len(payload)+1)
	for k, v := range payload {
		out[k] = v
	}
	out["action_id"] = id
	return out
}

// sleep espera d o hasta que se cancele ctx; devuelve false si se canceló.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
