package service

import (
	"context"
	"encoding/json"
	"log"

	"tria-ai-be/internal/websocket"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the in-process bus and pushes each chat update to
// the websocket hub.
type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	hub       *websocket.Hub
}

func NewConsumerService(pubSub *gochannel.GoChannel, topicName string, hub *websocket.Hub) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		hub:       hub,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var payload struct {
		Kind           string    `json:"kind"`
		ConversationId uuid.UUID `json:"conversation_id"`
		Sender         string    `json:"sender"`
		Content        string    `json:"content"`
	}
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal chat update: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	cs.hub.Broadcast(websocket.ChatUpdate{
		Kind:           payload.Kind,
		ConversationId: payload.ConversationId,
		Sender:         payload.Sender,
		Payload: map[string]interface{}{
			"content": payload.Content,
		},
	})

	msg.Ack()
}
