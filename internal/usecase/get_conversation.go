package usecase

import (
	"context"
	"time"

	"debate-bot/internal/domain"
)

// ConversationView is a read-only summary of a stored conversation.
type ConversationView struct {
	ConversationID string                    `json:"conversation_id"`
	CreatedAt      time.Time                 `json:"created_at"`
	UpdatedAt      time.Time                 `json:"updated_at"`
	Topic          string                    `json:"topic,omitempty"`
	BotPosition    string                    `json:"bot_position,omitempty"`
	Personality    string                    `json:"bot_personality,omitempty"`
	MessageCount   int                       `json:"message_count"`
	ExchangeCount  int                       `json:"exchange_count"`
	Messages       []domain.TransportMessage `json:"message"`
}

// GetConversation loads a conversation for inspection without changing it.
type GetConversation struct {
	repo domain.ConversationRepository
}

// NewGetConversation creates the use case.
func NewGetConversation(repo domain.ConversationRepository) *GetConversation {
	return &GetConversation{repo: repo}
}

// Execute returns the view of the conversation with the given id.
func (uc *GetConversation) Execute(ctx context.Context, rawID string) (*ConversationView, error) {
	const op = "GetConversation.Execute"

	id, err := validateConversationID(op, rawID)
	if err != nil {
		return nil, err
	}
	conv, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, domain.WrapUseCase(UseCaseGetConversation, domain.WrapOp(op, err))
	}
	if conv == nil {
		return nil, domain.NewDomainError(op, domain.ErrConversationNotFound, id.String())
	}

	topic, _ := conv.Topic()
	position, _ := conv.BotPosition()
	personality, _ := conv.Personality()
	return &ConversationView{
		ConversationID: id.String(),
		CreatedAt:      conv.CreatedAt(),
		UpdatedAt:      conv.UpdatedAt(),
		Topic:          topic,
		BotPosition:    position,
		Personality:    string(personality),
		MessageCount:   conv.MessageCount(),
		ExchangeCount:  conv.ExchangeCount(),
		Messages:       conv.TransportMessages(),
	}, nil
}
