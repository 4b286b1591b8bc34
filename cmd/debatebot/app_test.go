package main

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"debate-bot/internal/adapter/store"
	"debate-bot/internal/infra/config"
	"debate-bot/internal/infra/logger"
	"debate-bot/internal/usecase"
)

func TestOpenStoreBackends(t *testing.T) {
	cfg := config.Defaults().Store
	cfg.CircuitBreaker.Enabled = false

	st, closer, err := openStore(cfg, logger.Discard())
	require.NoError(t, err)
	assert.IsType(t, &store.MemoryStore{}, st)
	assert.NoError(t, closer())

	cfg.Backend = "sqlite"
	cfg.SQLitePath = filepath.Join(t.TempDir(), "nested", "conversations.db")
	st, closer, err = openStore(cfg, logger.Discard())
	require.NoError(t, err)
	assert.IsType(t, &store.SQLiteStore{}, st)
	assert.True(t, st.HealthCheck(context.Background()))
	assert.NoError(t, closer())

	cfg.Backend = "cassandra"
	_, _, err = openStore(cfg, logger.Discard())
	assert.ErrorContains(t, err, "unknown store backend")
}

func TestOpenStoreWrapsBreaker(t *testing.T) {
	cfg := config.Defaults().Store
	st, closer, err := openStore(cfg, logger.Discard())
	require.NoError(t, err)
	defer closer()
	assert.IsType(t, &store.BreakerStore{}, st)
}

func TestNewAppChat(t *testing.T) {
	cfg := config.Defaults()
	cfg.Debate.Seed = 7

	a, err := newApp(cfg, logger.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	require.NotNil(t, a.metrics)

	ctx := context.Background()
	resp, err := a.chat.Chat(ctx, usecase.ChatRequest{Message: "Climate change is caused by humans"})
	require.NoError(t, err)
	require.Len(t, resp.Messages, 2)

	_, err = a.chat.Chat(ctx, usecase.ChatRequest{ConversationID: resp.ConversationID, Message: "The data is clear"})
	require.NoError(t, err)

	n, err := testutil.GatherAndCount(a.metrics.Registry(), "debatebot_active_conversations")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	expected := "# HELP debatebot_active_conversations Number of stored conversations.\n" +
		"# TYPE debatebot_active_conversations gauge\n" +
		"debatebot_active_conversations 1\n"
	assert.NoError(t, testutil.GatherAndCompare(a.metrics.Registry(), strings.NewReader(expected), "debatebot_active_conversations"))
}

func TestNewAppWithoutMetrics(t *testing.T) {
	cfg := config.Defaults()
	cfg.Metrics.Enabled = false
	cfg.Events.Audit = false

	a, err := newApp(cfg, logger.Discard())
	require.NoError(t, err)
	assert.Nil(t, a.metrics)
	assert.NoError(t, a.Close())
	assert.NoError(t, a.Close())
}

func TestNewAppKafkaRequiresBrokers(t *testing.T) {
	cfg := config.Defaults()
	cfg.Events.Kafka.Enabled = true

	_, err := newApp(cfg, logger.Discard())
	assert.ErrorContains(t, err, "kafka")
}
