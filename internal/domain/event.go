package domain

import (
	"context"
	"encoding/json"
	"time"
)

// EventType identifies the kind of event being published.
type EventType string

const (
	EventConversationStarted EventType = "conversation.started"
	EventDebateContinued     EventType = "debate.continued"
	EventConversationDeleted EventType = "conversation.deleted"
	EventConversationExpired EventType = "conversation.expired"
)

// Event is the envelope published on the event bus.
type Event struct {
	Type           EventType       `json:"type"`
	Timestamp      time.Time       `json:"timestamp"`
	ConversationID string          `json:"conversation_id,omitempty"`
	Payload        json.RawMessage `json:"payload,omitempty"`
}

// ExchangePayload describes one user/bot exchange.
type ExchangePayload struct {
	Personality   PersonalityType `json:"personality"`
	Topic         string          `json:"topic"`
	BotPosition   string          `json:"bot_position"`
	ExchangeCount int             `json:"exchange_count"`
	UserChars     int             `json:"user_chars"`
	BotChars      int             `json:"bot_chars"`
}

// NewEvent builds an event, JSON-encoding payload when non-nil.
func NewEvent(t EventType, id ConversationID, ts time.Time, payload any) Event {
	ev := Event{Type: t, Timestamp: ts, ConversationID: id.String()}
	if payload != nil {
		if raw, err := json.Marshal(payload); err == nil {
			ev.Payload = raw
		}
	}
	return ev
}

// EventHandler is a callback invoked when an event is received.
type EventHandler func(ctx context.Context, event Event)

// EventBus provides a publish/subscribe mechanism for domain events.
type EventBus interface {
	// Publish sends an event to all matching subscribers.
	Publish(ctx context.Context, event Event)
	// Subscribe registers a handler for a specific event type.
	// Returns an unsubscribe function.
	Subscribe(eventType EventType, handler EventHandler) func()
	// SubscribeAll registers a handler that receives every event.
	// Returns an unsubscribe function.
	SubscribeAll(handler EventHandler) func()
	// Close drains in-flight handlers and prevents new publishes.
	Close()
}
