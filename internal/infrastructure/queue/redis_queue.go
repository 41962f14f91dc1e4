package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/qcommerce-agent/internal/application/ports"
)

var _ ports.NotificationQueue = (*RedisQueue)(nil)

// boundedPushScript LPUSH solo si la lista no superó el máximo.
// KEYS[1] = lista, ARGV[1] = máximo, ARGV[2] = evento
// Devuelve 1 si encoló, 0 si está llena.
var boundedPushScript = redis.NewScript(`
local n = redis.call('LLEN', KEYS[1])
if n >= tonumber(ARGV[1]) then
	return 0
end
redis.call('LPUSH', KEYS[1], ARGV[2])
return 1
`)

// RedisQueue cola persistente sobre una lista Redis (LPUSH / BRPOP).
// Sobrevive a reinicios del proceso y permite varios workers.
type RedisQueue struct {
	client  *redis.Client
	key     string
	maxLen  int
	block   time.Duration
	closing atomic.Bool
}

// NewRedisQueue maxLen <= 0 usa 128.
func NewRedisQueue(client *redis.Client, key string, maxLen int) *RedisQueue {
	if maxLen <= 0 {
		maxLen = 128
	}
	return &RedisQueue{client: client, key: key, maxLen: maxLen, block: time.Second}
}

// Push serializa y encola sin esperar al consumidor.
func (q *RedisQueue) Push(ctx context.Context, env ports.Envelope) error {
	if q.closing.Load() {
		return ports.ErrQueueClosed
	}
	raw, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("redis queue: serializar: %w", err)
	}
	ok, err := boundedPushScript.Run(ctx, q.client, []string{q.key}, q.maxLen, raw).Int()
	if err != nil {
		return fmt.Errorf("redis queue: push: %w", err)
	}
	if ok == 0 {
		return ports.ErrQueueFull
	}
	return nil
}

// Pop BRPOP en tramos cortos para poder notar Close y la cancelación de ctx.
func (q *RedisQueue) Pop(ctx context.Context) (ports.Envelope, error) {
	for {
		if q.closing.Load() {
			return ports.Envelope{}, ports.ErrQueueClosed
		}
		if err := ctx.Err(); err != nil {
			return ports.Envelope{}, err
		}
		res, err := q.client.BRPop(ctx, q.block, q.key).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			if ctx.Err() != nil {
				return ports.Envelope{}, ctx.Err()
			}
			return ports.Envelope{}, fmt.Errorf("redis queue: pop: %w", err)
		}
		// res = [key, valor]
		var env ports.Envelope
		if err := json.Unmarshal([]byte(res[1]), &env); err != nil {
			return ports.Envelope{}, fmt.Errorf("redis queue: evento corrupto: %w", err)
		}
		return env, nil
	}
}

// Len eventos pendientes.
func (q *RedisQueue) Len(ctx context.Context) (int64, error) {
	return q.client.LLen(ctx, q.key).Result()
}

// Close deja de aceptar y entregar eventos; los pendientes quedan en Redis.
// No cierra el cliente: lo maneja quien lo creó.
func (q *RedisQueue) Close() error {
	q.closing.Store(true)
	return nil
}
