package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"interntrack/internal/config"
	"interntrack/internal/notify"
	"interntrack/internal/store"
)

// Worker drains the notification queue and hands each entry to the
// delivery sink. The in-process API publishes; this process consumes,
// so delivery can lag or restart without blocking mutations.
func main() {
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("shutdown signal received")
		cancel()
	}()

	if cfg.QueueBackend != "redis" {
		log.Fatal("worker requires QUEUE_BACKEND=redis; the memory queue only exists inside the api process")
	}

	redisClient := store.NewRedis(cfg.RedisAddr)
	if !redisClient.Healthy(ctx) {
		log.Printf("WARNING: redis at %s not reachable, consuming will retry", cfg.RedisAddr)
	}
	q := notify.NewRedisQueue(redisClient.Client, "interntrack:notifications")

	messages, err := q.Consume(ctx)
	if err != nil {
		log.Fatalf("queue consume init failed: %v", err)
	}

	log.Println("worker started, waiting for notifications...")
	for n := range messages {
		// Delivery sink is the log in this deployment; swap for email
		// or push when an outbound channel exists.
		log.Printf("deliver to %s: %s — %s", n.RecipientID, n.Title, n.Message)
	}

	log.Println("worker stopped")
}
