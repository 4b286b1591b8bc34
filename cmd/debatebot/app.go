package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"debate-bot/internal/adapter/events"
	"debate-bot/internal/adapter/store"
	"debate-bot/internal/infra/config"
	"debate-bot/internal/infra/metrics"
	"debate-bot/internal/infra/random"
	"debate-bot/internal/usecase"
	"debate-bot/internal/usecase/eventbus"
	"debate-bot/internal/usecase/persona"
)

// app holds the components shared by serve and chat.
type app struct {
	cfg     *config.Config
	log     *slog.Logger
	store   store.Store
	bus     *eventbus.Bus
	metrics *metrics.Metrics // nil when metrics are disabled
	chat    *usecase.ChatService

	closers []func() error
}

// openStore builds the configured backend, wrapped in a circuit breaker when
// enabled. The returned closer releases backend connections.
func openStore(cfg config.StoreConfig, log *slog.Logger) (store.Store, func() error, error) {
	var (
		s      store.Store
		closer = func() error { return nil }
	)
	switch cfg.Backend {
	case "memory", "":
		s = store.NewMemoryStore()
	case "sqlite":
		if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0o700); err != nil {
			return nil, nil, fmt.Errorf("create sqlite dir: %w", err)
		}
		sq, err := store.NewSQLiteStore(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		s, closer = sq, sq.Close
	case "redis":
		rs, err := store.OpenRedisStore(cfg.RedisURL, cfg.KeyPrefix)
		if err != nil {
			return nil, nil, err
		}
		s, closer = rs, rs.Close
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}

	if cb := cfg.CircuitBreaker; cb.Enabled {
		s = store.NewBreakerStore(cfg.Backend, s, store.BreakerConfig{
			MaxFailures: cb.MaxFailures,
			Timeout:     cb.Timeout,
			Interval:    cb.Interval,
		}, log)
	}
	return s, closer, nil
}

// newApp composes store, event bus, subscribers, orchestrator and use cases.
func newApp(cfg *config.Config, log *slog.Logger) (*app, error) {
	a := &app{cfg: cfg, log: log}

	st, closeStore, err := openStore(cfg.Store, log)
	if err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	a.store = st
	a.closers = append(a.closers, closeStore)

	a.bus = eventbus.New(log)
	if cfg.Events.Audit {
		events.NewAudit(log).Subscribe(a.bus)
	}
	if cfg.Metrics.Enabled {
		a.metrics = metrics.New()
		a.metrics.Subscribe(a.bus)
	}
	if k := cfg.Events.Kafka; k.Enabled {
		exporter, err := events.NewKafkaExporter(k.Brokers, k.Topic, log)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("kafka: %w", err)
		}
		exporter.Subscribe(a.bus)
		a.closers = append(a.closers, exporter.Close)
	}

	rng := random.New(cfg.Debate.Seed)
	orch := usecase.NewDebateOrchestrator(persona.Defaults(rng), rng)
	deps := usecase.DebateDeps{
		Repo:         st,
		Orchestrator: orch,
		Logger:       log,
		MaxHistory:   cfg.Conversation.MaxHistory,
		Bus:          a.bus,
	}
	a.chat = usecase.NewChatService(usecase.ChatDeps{
		Start:        usecase.NewStartConversation(deps),
		Continue:     usecase.NewContinueDebate(deps),
		Get:          usecase.NewGetConversation(st),
		Repo:         st,
		Orchestrator: orch,
		Logger:       log,
		Locker:       usecase.NewConversationLocker(),
		Bus:          a.bus,
		Timeout:      cfg.Conversation.ResponseTimeout,
	})

	if a.metrics != nil {
		a.metrics.GaugeFunc("active_conversations", "Number of stored conversations.", func() float64 {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			n, err := a.chat.ActiveConversations(ctx)
			if err != nil {
				return 0
			}
			return float64(n)
		})
	}
	return a, nil
}

// Close drains the event bus, then releases exporters and the store.
func (a *app) Close() error {
	if a.bus != nil {
		a.bus.Close()
	}
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
