package retention

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"debate-bot/internal/adapter/store"
	"debate-bot/internal/domain"
	"debate-bot/internal/usecase/eventbus"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func seed(t *testing.T, s *store.MemoryStore, at time.Time) domain.ConversationID {
	t.Helper()
	c, err := domain.NewConversation(domain.NewConversationID(), at, domain.DefaultMaxHistory)
	require.NoError(t, err)
	_, err = c.AddUserMessage("hello there", at)
	require.NoError(t, err)
	require.NoError(t, s.Save(context.Background(), c))
	return c.ID()
}

func TestRunOnceExpiresIdleConversations(t *testing.T) {
	mem := store.NewMemoryStore()
	stale := seed(t, mem, now.Add(-3*time.Hour))
	fresh := seed(t, mem, now.Add(-10*time.Minute))

	bus := eventbus.New(newTestLogger())
	var mu sync.Mutex
	var expired []string
	bus.Subscribe(domain.EventConversationExpired, func(_ context.Context, e domain.Event) {
		mu.Lock()
		defer mu.Unlock()
		expired = append(expired, e.ConversationID)
	})

	sw, err := New(Config{Schedule: "@hourly", MaxIdle: time.Hour}, mem, bus, newTestLogger())
	require.NoError(t, err)
	sw.now = func() time.Time { return now }

	n, err := sw.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	bus.Close()

	assert.Equal(t, []string{stale.String()}, expired)
	got, _ := mem.FindByID(context.Background(), fresh)
	assert.NotNil(t, got)
	got, _ = mem.FindByID(context.Background(), stale)
	assert.Nil(t, got)
}

type failingSweeper struct{}

func (failingSweeper) DeleteIdleSince(context.Context, time.Time) ([]domain.ConversationID, error) {
	return nil, domain.RepositoryError("fake.DeleteIdleSince", errors.New("disk full"))
}

func TestRunOnceError(t *testing.T) {
	sw, err := New(Config{Schedule: "1h", MaxIdle: time.Hour}, failingSweeper{}, nil, newTestLogger())
	require.NoError(t, err)
	_, err = sw.RunOnce(context.Background())
	assert.ErrorIs(t, err, domain.ErrRepository)
	assert.Contains(t, err.Error(), "retention.sweep")
}

type countingSweeper struct{ calls atomic.Int32 }

func (c *countingSweeper) DeleteIdleSince(context.Context, time.Time) ([]domain.ConversationID, error) {
	c.calls.Add(1)
	return nil, nil
}

func TestSweeperRunsOnSchedule(t *testing.T) {
	cs := &countingSweeper{}
	var observed atomic.Int32
	sw, err := New(Config{
		Schedule: "50ms",
		MaxIdle:  time.Hour,
		OnSweep:  func(error) { observed.Add(1) },
	}, cs, nil, newTestLogger())
	require.NoError(t, err)

	assert.True(t, sw.NextRun().IsZero())
	sw.Start(context.Background())
	sw.Start(context.Background()) // no-op
	assert.False(t, sw.NextRun().IsZero())

	time.Sleep(200 * time.Millisecond)
	sw.Stop()
	sw.Stop()

	calls := cs.calls.Load()
	assert.GreaterOrEqual(t, calls, int32(1))
	assert.Equal(t, calls, observed.Load())

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, calls, cs.calls.Load(), "no sweeps after Stop")
}

func TestSweeperStopsWithContext(t *testing.T) {
	cs := &countingSweeper{}
	sw, err := New(Config{Schedule: "30ms", MaxIdle: time.Hour}, cs, nil, newTestLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	sw.Start(ctx)
	cancel()
	time.Sleep(100 * time.Millisecond)
	sw.Stop()
	assert.Equal(t, int32(0), cs.calls.Load())
}

func TestNewValidation(t *testing.T) {
	_, err := New(Config{Schedule: "@hourly"}, failingSweeper{}, nil, nil)
	assert.Error(t, err)
	_, err = New(Config{Schedule: "", MaxIdle: time.Hour}, failingSweeper{}, nil, nil)
	assert.Error(t, err)
	_, err = New(Config{Schedule: "not a schedule", MaxIdle: time.Hour}, failingSweeper{}, nil, nil)
	assert.Error(t, err)
}

func TestParseSchedule(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"*/5 * * * *", false},
		{"@daily", false},
		{"15m", false},
		{"250ms", false},
		{"", true},
		{"-5m", true},
		{"0s", true},
		{"every tuesday", true},
	}
	for _, tt := range tests {
		_, err := ParseSchedule(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
		} else {
			assert.NoError(t, err, tt.in)
		}
	}

	s, err := ParseSchedule("90s")
	require.NoError(t, err)
	assert.Equal(t, now.Add(90*time.Second), s.Next(now))
}
