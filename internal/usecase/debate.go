package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"debate-bot/internal/domain"
)

// Use case names carried by *domain.UseCaseError.
const (
	UseCaseStartConversation = "StartConversation"
	UseCaseContinueDebate    = "ContinueDebate"
	UseCaseGetConversation   = "GetConversation"
)

// errNoReply means the orchestrator had no persona able to answer.
var errNoReply = errors.New("no persona produced a reply")

// DebateDeps holds injected dependencies shared by the debate use cases.
type DebateDeps struct {
	Repo         domain.ConversationRepository
	Orchestrator *DebateOrchestrator
	Logger       *slog.Logger
	MaxHistory   int              // 0 = domain.DefaultMaxHistory
	Bus          domain.EventBus  // optional, nil = no events
	Now          func() time.Time // optional, nil = time.Now
}

func (d DebateDeps) normalized() DebateDeps {
	if d.MaxHistory <= 0 {
		d.MaxHistory = domain.DefaultMaxHistory
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Now == nil {
		d.Now = func() time.Time { return time.Now().UTC() }
	}
	return d
}

// StartRequest opens a new conversation.
type StartRequest struct {
	Message              string
	PreferredPersonality string
	Timestamp            time.Time // zero = now
}

// ContinueRequest adds an exchange to an existing conversation.
type ContinueRequest struct {
	ConversationID       string
	Message              string
	PreferredPersonality string
	Timestamp            time.Time // zero = now
}

// ChatResponse is returned by both Start and Continue.
type ChatResponse struct {
	ConversationID string                    `json:"conversation_id"`
	Messages       []domain.TransportMessage `json:"message"`
}

func newChatResponse(conv *domain.Conversation) *ChatResponse {
	return &ChatResponse{
		ConversationID: conv.ID().String(),
		Messages:       conv.TransportMessages(),
	}
}

// exchange appends the user message and the persona's reply to conv.
func exchange(op string, deps DebateDeps, conv *domain.Conversation, text, preferred string, ts time.Time) error {
	if _, err := conv.AddUserMessage(text, ts); err != nil {
		return err
	}
	reply := deps.Orchestrator.GenerateBotResponse(conv, text, preferred)
	botTS := deps.Now()
	if botTS.Before(ts) {
		botTS = ts
	}
	if _, err := conv.AddBotMessage(reply, botTS); err != nil {
		// An invalid reply is our failure, not the caller's.
		return domain.NewDomainError(op, errNoReply, err.Error())
	}
	return nil
}

func publish(ctx context.Context, deps DebateDeps, t domain.EventType, conv *domain.Conversation, userText, reply string) {
	if deps.Bus == nil {
		return
	}
	personality, _ := conv.Personality()
	topic, _ := conv.Topic()
	position, _ := conv.BotPosition()
	deps.Bus.Publish(ctx, domain.NewEvent(t, conv.ID(), deps.Now(), domain.ExchangePayload{
		Personality:   personality,
		Topic:         topic,
		BotPosition:   position,
		ExchangeCount: conv.ExchangeCount(),
		UserChars:     len([]rune(userText)),
		BotChars:      len([]rune(reply)),
	}))
}

func lastReply(conv *domain.Conversation) string {
	if m, ok := conv.LastBotMessage(); ok {
		return m.Text()
	}
	return ""
}

func requestTime(deps DebateDeps, ts time.Time) time.Time {
	if ts.IsZero() {
		return deps.Now()
	}
	return ts
}
