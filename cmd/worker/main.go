package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"tria-ai-be/internal/config"
	"tria-ai-be/pkg/events"
	pktNats "tria-ai-be/pkg/nats"
)

// The worker tails the durable chat event stream. It runs beside the API so
// auditing survives restarts of either process.
func main() {
	cfg := config.Load()

	subscriber, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Fatalf("Unable to connect to NATS: %v", err)
	}
	defer subscriber.Close()

	err = subscriber.Subscribe("chat.>", "chat-audit-worker", func(ctx context.Context, event events.Event) error {
		log.Printf("[EVENT] %s %v", event.EventType(), event.Payload())
		return nil
	})
	if err != nil {
		log.Fatalf("Unable to subscribe to chat events: %v", err)
	}

	log.Println("Event worker running, press Ctrl+C to stop")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("Event worker shutting down")
}
