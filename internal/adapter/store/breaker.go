package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker/v2"

	"debate-bot/internal/domain"
)

// Default circuit breaker settings.
const (
	defaultCBMaxFailures uint32        = 5
	defaultCBTimeout     time.Duration = 30 * time.Second
	defaultCBInterval    time.Duration = 60 * time.Second
)

// BreakerConfig configures the circuit breaker.
type BreakerConfig struct {
	// MaxFailures is the number of consecutive failures before the circuit opens.
	MaxFailures uint32
	// Timeout is how long the circuit stays open before going half-open.
	Timeout time.Duration
	// Interval clears failure counts while closed. 0 uses the default.
	Interval time.Duration
}

// Store is everything the service needs from a backend.
type Store interface {
	domain.ConversationRepository
	domain.ConversationLister
	domain.ConversationSweeper
}

// BreakerStore wraps a Store with a circuit breaker. Once the backend keeps
// failing, calls fail fast with domain.ErrStoreUnavailable instead of piling
// up on a dead connection.
type BreakerStore struct {
	inner   Store
	breaker *gobreaker.CircuitBreaker[any]
	logger  *slog.Logger
}

var _ Store = (*BreakerStore)(nil)

// NewBreakerStore wraps inner. Zero config fields use defaults.
func NewBreakerStore(name string, inner Store, cfg BreakerConfig, logger *slog.Logger) *BreakerStore {
	if cfg.MaxFailures == 0 {
		cfg.MaxFailures = defaultCBMaxFailures
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultCBTimeout
	}
	if cfg.Interval == 0 {
		cfg.Interval = defaultCBInterval
	}
	if logger == nil {
		logger = slog.Default()
	}

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        "store:" + name,
		MaxRequests: 1, // one probe while half-open
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.MaxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
		// A missing row or a lost race is an answer, not an outage.
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, domain.ErrConversationNotFound) ||
				errors.Is(err, domain.ErrConflict) ||
				errors.Is(err, context.Canceled)
		},
	})

	return &BreakerStore{inner: inner, breaker: cb, logger: logger}
}

func (s *BreakerStore) call(op string, fn func() (any, error)) (any, error) {
	v, err := s.breaker.Execute(fn)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%s: %w: %w", op, domain.ErrStoreUnavailable, err)
	}
	return v, err
}

func (s *BreakerStore) Save(ctx context.Context, conv *domain.Conversation) error {
	_, err := s.call("breaker.Save", func() (any, error) {
		return nil, s.inner.Save(ctx, conv)
	})
	return err
}

func (s *BreakerStore) FindByID(ctx context.Context, id domain.ConversationID) (*domain.Conversation, error) {
	v, err := s.call("breaker.FindByID", func() (any, error) {
		return s.inner.FindByID(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	conv, _ := v.(*domain.Conversation)
	return conv, nil
}

func (s *BreakerStore) Update(ctx context.Context, conv *domain.Conversation) error {
	_, err := s.call("breaker.Update", func() (any, error) {
		return nil, s.inner.Update(ctx, conv)
	})
	return err
}

func (s *BreakerStore) Delete(ctx context.Context, id domain.ConversationID) (bool, error) {
	v, err := s.call("breaker.Delete", func() (any, error) {
		return s.inner.Delete(ctx, id)
	})
	if err != nil {
		return false, err
	}
	return v.(bool), nil
}

func (s *BreakerStore) Count(ctx context.Context) (int, error) {
	v, err := s.call("breaker.Count", func() (any, error) {
		return s.inner.Count(ctx)
	})
	if err != nil {
		return 0, err
	}
	return v.(int), nil
}

// HealthCheck reports false while the circuit is open without touching the
// backend.
func (s *BreakerStore) HealthCheck(ctx context.Context) bool {
	if s.breaker.State() == gobreaker.StateOpen {
		return false
	}
	return s.inner.HealthCheck(ctx)
}

func (s *BreakerStore) ListIDs(ctx context.Context) ([]domain.ConversationID, error) {
	v, err := s.call("breaker.ListIDs", func() (any, error) {
		return s.inner.ListIDs(ctx)
	})
	if err != nil {
		return nil, err
	}
	ids, _ := v.([]domain.ConversationID)
	return ids, nil
}

func (s *BreakerStore) DeleteIdleSince(ctx context.Context, cutoff time.Time) ([]domain.ConversationID, error) {
	v, err := s.call("breaker.DeleteIdleSince", func() (any, error) {
		return s.inner.DeleteIdleSince(ctx, cutoff)
	})
	if err != nil {
		return nil, err
	}
	ids, _ := v.([]domain.ConversationID)
	return ids, nil
}

// State returns the current circuit breaker state for monitoring.
func (s *BreakerStore) State() gobreaker.State {
	return s.breaker.State()
}
