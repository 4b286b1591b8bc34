package domain

import (
	"context"
	"time"
)

// ConversationRepository persists conversations. All failures other than a
// missing conversation on Update wrap ErrRepository.
type ConversationRepository interface {
	// Save stores a new conversation (or overwrites one with the same id).
	Save(ctx context.Context, conv *Conversation) error
	// FindByID returns (nil, nil) when no conversation has the id.
	FindByID(ctx context.Context, id ConversationID) (*Conversation, error)
	// Update replaces a stored conversation. It fails with
	// ErrConversationNotFound when absent and ErrConflict when the stored
	// version differs from conv.Version().
	Update(ctx context.Context, conv *Conversation) error
	// Delete reports whether a conversation was removed.
	Delete(ctx context.Context, id ConversationID) (bool, error)
	// Count returns the number of stored conversations.
	Count(ctx context.Context) (int, error)
	// HealthCheck reports whether the store is usable.
	HealthCheck(ctx context.Context) bool
}

// ConversationLister is implemented by stores that can enumerate ids.
type ConversationLister interface {
	ListIDs(ctx context.Context) ([]ConversationID, error)
}

// ConversationSweeper is implemented by stores that can expire idle
// conversations in bulk.
type ConversationSweeper interface {
	// DeleteIdleSince removes conversations whose last activity is before
	// cutoff and returns the removed ids.
	DeleteIdleSince(ctx context.Context, cutoff time.Time) ([]ConversationID, error)
}
