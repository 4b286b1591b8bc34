package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"debate-bot/internal/domain"
)

// flakyStore fails every call while down is set.
type flakyStore struct {
	*MemoryStore
	down  bool
	calls int
}

var errDown = errors.New("connection refused")

func (f *flakyStore) FindByID(ctx context.Context, id domain.ConversationID) (*domain.Conversation, error) {
	f.calls++
	if f.down {
		return nil, domain.RepositoryError("flaky.FindByID", errDown)
	}
	return f.MemoryStore.FindByID(ctx, id)
}

func (f *flakyStore) HealthCheck(context.Context) bool { return !f.down }

func newBreaker(inner Store) *BreakerStore {
	return NewBreakerStore("test", inner, BreakerConfig{MaxFailures: 3, Timeout: 50 * time.Millisecond}, nil)
}

func TestBreakerStorePassesThrough(t *testing.T) {
	s := newBreaker(NewMemoryStore())
	ctx := context.Background()
	c := newConversation(t, base, "hello there")

	require.NoError(t, s.Save(ctx, c))
	got, err := s.FindByID(ctx, c.ID())
	require.NoError(t, err)
	require.NotNil(t, got)

	missing, err := s.FindByID(ctx, domain.NewConversationID())
	require.NoError(t, err)
	assert.Nil(t, missing)

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	ids, err := s.ListIDs(ctx)
	require.NoError(t, err)
	assert.Len(t, ids, 1)

	deleted, err := s.Delete(ctx, c.ID())
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.True(t, s.HealthCheck(ctx))
}

func TestBreakerStoreOpensAfterFailures(t *testing.T) {
	inner := &flakyStore{MemoryStore: NewMemoryStore(), down: true}
	s := newBreaker(inner)
	ctx := context.Background()
	id := domain.NewConversationID()

	for i := 0; i < 3; i++ {
		_, err := s.FindByID(ctx, id)
		assert.ErrorIs(t, err, errDown)
	}
	assert.Equal(t, gobreaker.StateOpen, s.State())

	_, err := s.FindByID(ctx, id)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.ErrorIs(t, err, domain.ErrRepository)
	assert.Equal(t, domain.CodeStoreUnavailable, domain.ErrorCodeOf(err))
	assert.Equal(t, 3, inner.calls, "open circuit must not reach the backend")
	assert.False(t, s.HealthCheck(ctx))

	// Recovery through a half-open probe.
	inner.down = false
	time.Sleep(80 * time.Millisecond)
	_, err = s.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, gobreaker.StateClosed, s.State())
}

func TestBreakerStoreLogicalErrorsDoNotTrip(t *testing.T) {
	s := newBreaker(NewMemoryStore())
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		c := newConversation(t, base, "never saved")
		err := s.Update(ctx, c)
		assert.ErrorIs(t, err, domain.ErrConversationNotFound)
	}
	assert.Equal(t, gobreaker.StateClosed, s.State())
}
