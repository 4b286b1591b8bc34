// Package store holds the conversation repository implementations: an
// in-process map, SQLite, Redis, and a circuit-breaker decorator.
package store

import (
	"context"
	"slices"
	"sync"
	"time"

	"debate-bot/internal/domain"
)

// MemoryStore keeps conversations in a map. Callers always receive deep
// copies, so a loaded conversation is never shared between requests.
type MemoryStore struct {
	mu    sync.RWMutex
	convs map[domain.ConversationID]*domain.Conversation
}

var (
	_ domain.ConversationRepository = (*MemoryStore)(nil)
	_ domain.ConversationLister     = (*MemoryStore)(nil)
	_ domain.ConversationSweeper    = (*MemoryStore)(nil)
)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{convs: make(map[domain.ConversationID]*domain.Conversation)}
}

func (s *MemoryStore) Save(ctx context.Context, conv *domain.Conversation) error {
	if err := ctx.Err(); err != nil {
		return domain.RepositoryError("memory.Save", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	conv.SetVersion(conv.Version() + 1)
	s.convs[conv.ID()] = conv.Clone()
	return nil
}

func (s *MemoryStore) FindByID(ctx context.Context, id domain.ConversationID) (*domain.Conversation, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.RepositoryError("memory.FindByID", err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.convs[id]
	if !ok {
		return nil, nil
	}
	return c.Clone(), nil
}

func (s *MemoryStore) Update(ctx context.Context, conv *domain.Conversation) error {
	const op = "memory.Update"
	if err := ctx.Err(); err != nil {
		return domain.RepositoryError(op, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.convs[conv.ID()]
	if !ok {
		return domain.NewDomainError(op, domain.ErrConversationNotFound, conv.ID().String())
	}
	if stored.Version() != conv.Version() {
		return domain.NewDomainError(op, domain.ErrConflict, conv.ID().String())
	}
	conv.SetVersion(conv.Version() + 1)
	s.convs[conv.ID()] = conv.Clone()
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id domain.ConversationID) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, domain.RepositoryError("memory.Delete", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.convs[id]
	delete(s.convs, id)
	return ok, nil
}

func (s *MemoryStore) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, domain.RepositoryError("memory.Count", err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.convs), nil
}

// HealthCheck always succeeds.
func (s *MemoryStore) HealthCheck(context.Context) bool { return true }

// ListIDs returns every stored id, oldest conversation first.
func (s *MemoryStore) ListIDs(ctx context.Context) ([]domain.ConversationID, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.RepositoryError("memory.ListIDs", err)
	}
	s.mu.RLock()
	convs := make([]*domain.Conversation, 0, len(s.convs))
	for _, c := range s.convs {
		convs = append(convs, c)
	}
	s.mu.RUnlock()

	slices.SortFunc(convs, func(a, b *domain.Conversation) int {
		return a.CreatedAt().Compare(b.CreatedAt())
	})
	ids := make([]domain.ConversationID, len(convs))
	for i, c := range convs {
		ids[i] = c.ID()
	}
	return ids, nil
}

func (s *MemoryStore) DeleteIdleSince(ctx context.Context, cutoff time.Time) ([]domain.ConversationID, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.RepositoryError("memory.DeleteIdleSince", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var removed []domain.ConversationID
	for id, c := range s.convs {
		if c.UpdatedAt().Before(cutoff) {
			delete(s.convs, id)
			removed = append(removed, id)
		}
	}
	return removed, nil
}

// Clear removes every conversation.
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.convs)
}
