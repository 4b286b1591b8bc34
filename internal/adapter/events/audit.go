// Package events holds event bus subscribers that export domain events out
// of the process.
package events

import (
	"context"
	"encoding/json"
	"log/slog"

	"debate-bot/internal/domain"
)

// Audit writes one structured log record per domain event.
type Audit struct {
	logger *slog.Logger
}

// NewAudit creates an audit subscriber.
func NewAudit(logger *slog.Logger) *Audit {
	return &Audit{logger: logger.With("component", "audit")}
}

// Subscribe attaches the audit log to every event on bus.
func (a *Audit) Subscribe(bus domain.EventBus) func() {
	return bus.SubscribeAll(a.Handle)
}

// Handle logs e. Exchange payloads are flattened into attributes; message
// text never reaches the audit log.
func (a *Audit) Handle(ctx context.Context, e domain.Event) {
	attrs := []any{
		"event", string(e.Type),
		"conversation_id", e.ConversationID,
		"at", e.Timestamp,
	}
	switch e.Type {
	case domain.EventConversationStarted, domain.EventDebateContinued:
		var p domain.ExchangePayload
		if err := json.Unmarshal(e.Payload, &p); err == nil {
			attrs = append(attrs,
				"personality", string(p.Personality),
				"topic", p.Topic,
				"exchange_count", p.ExchangeCount,
				"user_chars", p.UserChars,
				"bot_chars", p.BotChars,
			)
		}
	default:
		if len(e.Payload) > 0 {
			attrs = append(attrs, "payload", string(e.Payload))
		}
	}
	a.logger.InfoContext(ctx, "domain event", attrs...)
}
