package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"debate-bot/internal/domain"
)

// backends lists every store under test. Redis runs only when
// DEBATEBOT_TEST_REDIS_URL points at a scratch server.
func backends(t *testing.T) map[string]func(t *testing.T) Store {
	t.Helper()
	b := map[string]func(t *testing.T) Store{
		"memory": func(t *testing.T) Store { return NewMemoryStore() },
		"sqlite": func(t *testing.T) Store {
			s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "conversations.db"))
			require.NoError(t, err)
			t.Cleanup(func() { s.Close() })
			return s
		},
	}
	if url := os.Getenv("DEBATEBOT_TEST_REDIS_URL"); url != "" {
		b["redis"] = func(t *testing.T) Store {
			opts, err := redis.ParseURL(url)
			require.NoError(t, err)
			client := redis.NewClient(opts)
			prefix := "debatebot-test:" + domain.NewConversationID().String() + ":"
			t.Cleanup(func() {
				ctx := context.Background()
				keys, _ := client.Keys(ctx, prefix+"*").Result()
				if len(keys) > 0 {
					client.Del(ctx, keys...)
				}
				client.Close()
			})
			return NewRedisStore(client, prefix)
		}
	}
	return b
}

var base = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newConversation(t *testing.T, at time.Time, msgs ...string) *domain.Conversation {
	t.Helper()
	c, err := domain.NewConversation(domain.NewConversationID(), at, domain.DefaultMaxHistory)
	require.NoError(t, err)
	for i, m := range msgs {
		ts := at.Add(time.Duration(i) * time.Second)
		if i%2 == 0 {
			_, err = c.AddUserMessage(m, ts)
		} else {
			_, err = c.AddBotMessage(m, ts)
		}
		require.NoError(t, err)
	}
	return c
}

func TestStoreContract(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			t.Run("save and find", func(t *testing.T) { testSaveFind(t, open(t)) })
			t.Run("find missing", func(t *testing.T) { testFindMissing(t, open(t)) })
			t.Run("update", func(t *testing.T) { testUpdate(t, open(t)) })
			t.Run("update conflict", func(t *testing.T) { testUpdateConflict(t, open(t)) })
			t.Run("update missing", func(t *testing.T) { testUpdateMissing(t, open(t)) })
			t.Run("delete and count", func(t *testing.T) { testDeleteCount(t, open(t)) })
			t.Run("isolation", func(t *testing.T) { testIsolation(t, open(t)) })
			t.Run("sweep", func(t *testing.T) { testSweep(t, open(t)) })
			t.Run("health", func(t *testing.T) { assert.True(t, open(t).HealthCheck(context.Background())) })
		})
	}
}

func testSaveFind(t *testing.T, s Store) {
	ctx := context.Background()
	c := newConversation(t, base, "vaccines are important", "they are not")
	c.CommitPersonality(domain.PersonalityConspiracyTheorist)

	require.NoError(t, s.Save(ctx, c))
	assert.Equal(t, int64(1), c.Version())

	got, err := s.FindByID(ctx, c.ID())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, c.ID(), got.ID())
	assert.Equal(t, c.TransportMessages(), got.TransportMessages())
	assert.True(t, c.CreatedAt().Equal(got.CreatedAt()))
	topic, _ := got.Topic()
	assert.Equal(t, "vaccines and public health", topic)
	p, _ := got.Personality()
	assert.Equal(t, domain.PersonalityConspiracyTheorist, p)
	assert.Equal(t, int64(1), got.Version())
}

func testFindMissing(t *testing.T, s Store) {
	got, err := s.FindByID(context.Background(), domain.NewConversationID())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func testUpdate(t *testing.T, s Store) {
	ctx := context.Background()
	c := newConversation(t, base, "climate talk", "reply")
	require.NoError(t, s.Save(ctx, c))

	loaded, err := s.FindByID(ctx, c.ID())
	require.NoError(t, err)
	_, err = loaded.AddUserMessage("more climate talk", base.Add(time.Minute))
	require.NoError(t, err)
	require.NoError(t, s.Update(ctx, loaded))
	assert.Equal(t, int64(2), loaded.Version())

	got, err := s.FindByID(ctx, c.ID())
	require.NoError(t, err)
	assert.Equal(t, 3, got.MessageCount())
	assert.True(t, base.Add(time.Minute).Equal(got.UpdatedAt()))
}

func testUpdateConflict(t *testing.T, s Store) {
	ctx := context.Background()
	c := newConversation(t, base, "first message")
	require.NoError(t, s.Save(ctx, c))

	a, err := s.FindByID(ctx, c.ID())
	require.NoError(t, err)
	b, err := s.FindByID(ctx, c.ID())
	require.NoError(t, err)

	_, _ = a.AddBotMessage("writer a", base.Add(time.Second))
	require.NoError(t, s.Update(ctx, a))

	_, _ = b.AddBotMessage("writer b", base.Add(time.Second))
	err = s.Update(ctx, b)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.ErrorIs(t, err, domain.ErrRepository)
	assert.Equal(t, int64(1), b.Version(), "version untouched on failure")

	got, err := s.FindByID(ctx, c.ID())
	require.NoError(t, err)
	last, _ := got.LastBotMessage()
	assert.Equal(t, "writer a", last.Text())
}

func testUpdateMissing(t *testing.T, s Store) {
	c := newConversation(t, base, "never saved")
	err := s.Update(context.Background(), c)
	assert.ErrorIs(t, err, domain.ErrConversationNotFound)
}

func testDeleteCount(t *testing.T, s Store) {
	ctx := context.Background()
	a := newConversation(t, base, "one")
	b := newConversation(t, base.Add(time.Second), "two")
	require.NoError(t, s.Save(ctx, a))
	require.NoError(t, s.Save(ctx, b))

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	ids, err := s.ListIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.ConversationID{a.ID(), b.ID()}, ids)

	deleted, err := s.Delete(ctx, a.ID())
	require.NoError(t, err)
	assert.True(t, deleted)
	deleted, err = s.Delete(ctx, a.ID())
	require.NoError(t, err)
	assert.False(t, deleted)

	n, err = s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func testIsolation(t *testing.T, s Store) {
	ctx := context.Background()
	c := newConversation(t, base, "hello there")
	require.NoError(t, s.Save(ctx, c))

	// Mutating the caller's copy after Save does not leak into the store.
	_, _ = c.AddBotMessage("unsaved", base.Add(time.Second))

	got, err := s.FindByID(ctx, c.ID())
	require.NoError(t, err)
	assert.Equal(t, 1, got.MessageCount())
}

func testSweep(t *testing.T, s Store) {
	ctx := context.Background()
	old := newConversation(t, base.Add(-2*time.Hour), "stale debate")
	fresh := newConversation(t, base, "fresh debate")
	require.NoError(t, s.Save(ctx, old))
	require.NoError(t, s.Save(ctx, fresh))

	removed, err := s.DeleteIdleSince(ctx, base.Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, []domain.ConversationID{old.ID()}, removed)

	got, err := s.FindByID(ctx, old.ID())
	require.NoError(t, err)
	assert.Nil(t, got)
	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	removed, err = s.DeleteIdleSince(ctx, base.Add(-time.Hour))
	require.NoError(t, err)
	assert.Empty(t, removed)
}

func TestMemoryStoreConcurrentUpdates(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	c := newConversation(t, base, "hello there")
	require.NoError(t, s.Save(ctx, c))

	var wg sync.WaitGroup
	var mu sync.Mutex
	wins, conflicts := 0, 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			loaded, err := s.FindByID(ctx, c.ID())
			if err != nil {
				t.Errorf("FindByID: %v", err)
				return
			}
			_, _ = loaded.AddBotMessage("reply", base.Add(time.Second))
			err = s.Update(ctx, loaded)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				wins++
			case errors.Is(err, domain.ErrConflict):
				conflicts++
			default:
				t.Errorf("Update: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.GreaterOrEqual(t, wins, 1)
	assert.Equal(t, 20, wins+conflicts)
	got, err := s.FindByID(ctx, c.ID())
	require.NoError(t, err)
	assert.Equal(t, int64(1+wins), got.Version())
}

func TestMemoryStoreCanceledContext(t *testing.T) {
	s := NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.FindByID(ctx, domain.NewConversationID())
	assert.ErrorIs(t, err, domain.ErrRepository)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMemoryStoreClear(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, newConversation(t, base, "hello there")))
	s.Clear()
	n, _ := s.Count(ctx)
	assert.Equal(t, 0, n)
}

func TestSQLiteStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conversations.db")
	ctx := context.Background()

	s, err := NewSQLiteStore(path)
	require.NoError(t, err)
	c := newConversation(t, base, "the economy is doing fine", "is it though")
	require.NoError(t, s.Save(ctx, c))
	require.NoError(t, s.Close())

	s, err = NewSQLiteStore(path)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.FindByID(ctx, c.ID())
	require.NoError(t, err)
	require.NotNil(t, got)
	topic, _ := got.Topic()
	assert.Equal(t, "economic policies", topic)
}

func TestSQLiteStoreCorruptRow(t *testing.T) {
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "conversations.db"))
	require.NoError(t, err)
	defer s.Close()

	id := domain.NewConversationID()
	_, err = s.db.Exec(
		"INSERT INTO conversations (id, version, created_at, updated_ms, data) VALUES (?, 1, ?, 0, ?)",
		id.String(), base.Format(time.RFC3339Nano), `{"id":"`+id.String()+`","max_history":5,"messages":[{"role":"user","text":"   "}]}`,
	)
	require.NoError(t, err)

	_, err = s.FindByID(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrRepository)
	assert.NotErrorIs(t, err, domain.ErrValidation)
}
