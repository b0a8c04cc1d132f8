// Package notify carries badge and system notifications from the
// tracker to whatever delivers them (the worker, in this deployment).
package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"interntrack/internal/model"
)

// Queue is the abstraction over delivery backends.
type Queue interface {
	Publish(ctx context.Context, n model.Notification) error
	Consume(ctx context.Context) (<-chan model.Notification, error)
}

// InMemory is a channel-backed queue for single-process deployments
// and tests.
type InMemory struct {
	ch chan model.Notification
}

// NewInMemory creates a bounded in-memory queue.
func NewInMemory(size int) *InMemory {
	return &InMemory{ch: make(chan model.Notification, size)}
}

// Publish enqueues a notification.
func (q *InMemory) Publish(ctx context.Context, n model.Notification) error {
	select {
	case q.ch <- n:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Consume returns a channel for delivery workers.
func (q *InMemory) Consume(ctx context.Context) (<-chan model.Notification, error) {
	out := make(chan model.Notification)
	go func() {
		defer close(out)
		for {
			select {
			case n := <-q.ch:
				out <- n
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// RedisQueue is a Redis list-backed queue using LPUSH/BRPOP, letting a
// separate worker process drain notifications.
type RedisQueue struct {
	client *redis.Client
	key    string
}

// NewRedisQueue builds a queue on the given list key.
func NewRedisQueue(client *redis.Client, key string) *RedisQueue {
	if key == "" {
		key = "interntrack:notifications"
	}
	return &RedisQueue{client: client, key: key}
}

// Publish enqueues a JSON-encoded notification.
func (q *RedisQueue) Publish(ctx context.Context, n model.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return err
	}
	return q.client.LPush(ctx, q.key, payload).Err()
}

// Consume streams notifications using BRPOP. Undecodable payloads are
// skipped.
func (q *RedisQueue) Consume(ctx context.Context) (<-chan model.Notification, error) {
	out := make(chan model.Notification)
	go func() {
		defer close(out)
		for {
			res, err := q.client.BRPop(ctx, 5*time.Second, q.key).Result()
			if err != nil {
				if err == redis.Nil {
					continue
				}
				if ctx.Err() != nil {
					return
				}
				continue
			}
			if len(res) == 2 {
				var n model.Notification
				if err := json.Unmarshal([]byte(res[1]), &n); err == nil {
					out <- n
				}
			}
		}
	}()
	return out, nil
}
