package usecase

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"debate-bot/internal/domain"
)

// MinMessageLength is the shortest user message accepted by the use cases,
// in characters after trimming.
const MinMessageLength = 5

// validateUserMessage returns the trimmed message or a validation error.
func validateUserMessage(op, message string) (string, error) {
	text := strings.TrimSpace(message)
	if text == "" {
		return "", domain.NewDomainError(op, domain.ErrInvalidMessage, "Message cannot be empty")
	}
	n := utf8.RuneCountInString(text)
	if n > domain.MaxMessageLength {
		return "", domain.NewDomainError(op, domain.ErrInvalidMessage,
			fmt.Sprintf("Message too long (max %d characters)", domain.MaxMessageLength))
	}
	if n < MinMessageLength {
		return "", domain.NewDomainError(op, domain.ErrInvalidMessage,
			fmt.Sprintf("Message too short (min %d characters)", MinMessageLength))
	}
	return text, nil
}

// validatePreferred accepts an empty preference or one the orchestrator
// knows about.
func validatePreferred(op, preferred string, available []domain.PersonalityType) error {
	if strings.TrimSpace(preferred) == "" {
		return nil
	}
	p, ok := domain.ParsePersonality(preferred)
	if ok {
		for _, a := range available {
			if a == p {
				return nil
			}
		}
	}
	names := make([]string, len(available))
	for i, a := range available {
		names[i] = string(a)
	}
	return domain.NewDomainError(op, domain.ErrInvalidPersonality,
		fmt.Sprintf("Invalid personality: %s. Available: %s", preferred, strings.Join(names, ", ")))
}

// validateConversationID parses the caller-supplied id.
func validateConversationID(op, raw string) (domain.ConversationID, error) {
	if strings.TrimSpace(raw) == "" {
		return domain.ConversationID{}, domain.NewDomainError(op, domain.ErrInvalidConversationID, "Conversation ID cannot be empty")
	}
	id, err := domain.ParseConversationID(raw)
	if err != nil {
		return domain.ConversationID{}, domain.NewDomainError(op, domain.ErrInvalidConversationID, "Invalid conversation ID format")
	}
	return id, nil
}
