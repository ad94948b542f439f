package events

import "time"

// Event is the contract every bus message satisfies.
type Event interface {
	// EventType returns the unique code for this event (e.g., "MESSAGE_SENT").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the generic implementation used by publishers that do not
// need a dedicated event struct.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// New builds a BaseEvent stamped with the current time.
func New(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
}

// Event type codes published by the chat backend.
const (
	TypeUserRegistered      = "USER_REGISTERED"
	TypeUserLogin           = "USER_LOGIN"
	TypeMessageSent         = "MESSAGE_SENT"
	TypePersonaReplied      = "PERSONA_REPLIED"
	TypeConversationCreated = "CONVERSATION_CREATED"
	TypeConversationDeleted = "CONVERSATION_DELETED"
)
