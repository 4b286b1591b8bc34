// Package retention expires conversations that have been idle longer than a
// configured age. Sweeps run on a cron schedule.
package retention

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"debate-bot/internal/domain"
)

// sweepTimeout bounds a single sweep.
const sweepTimeout = 5 * time.Minute

// Config controls the sweeper.
type Config struct {
	Schedule string          // cron expression "*/5 * * * *" OR duration "30m"
	MaxIdle  time.Duration   // conversations untouched for longer are deleted
	OnSweep  func(err error) // optional, called after every scheduled sweep
}

// Sweeper deletes idle conversations and publishes one expiry event per
// removed conversation.
type Sweeper struct {
	store    domain.ConversationSweeper
	bus      domain.EventBus
	logger   *slog.Logger
	maxIdle  time.Duration
	schedule cron.Schedule
	onSweep  func(error)
	now      func() time.Time

	cron    *cron.Cron
	entry   cron.EntryID
	mu      sync.Mutex
	started bool
	ctx     context.Context
	cancel  context.CancelFunc
}

// New validates cfg and creates a stopped sweeper. bus may be nil.
func New(cfg Config, store domain.ConversationSweeper, bus domain.EventBus, logger *slog.Logger) (*Sweeper, error) {
	if cfg.MaxIdle <= 0 {
		return nil, fmt.Errorf("retention: max idle must be positive, got %s", cfg.MaxIdle)
	}
	schedule, err := ParseSchedule(cfg.Schedule)
	if err != nil {
		return nil, fmt.Errorf("retention: invalid schedule %q: %w", cfg.Schedule, err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Sweeper{
		store:    store,
		bus:      bus,
		logger:   logger,
		maxIdle:  cfg.MaxIdle,
		schedule: schedule,
		onSweep:  cfg.OnSweep,
		now:      func() time.Time { return time.Now().UTC() },
		cron:     cron.New(),
	}, nil
}

// RunOnce performs a single sweep and returns the number of conversations
// removed.
func (s *Sweeper) RunOnce(ctx context.Context) (int, error) {
	now := s.now()
	cutoff := now.Add(-s.maxIdle)

	ids, err := s.store.DeleteIdleSince(ctx, cutoff)
	if err != nil {
		return 0, domain.WrapOp("retention.sweep", err)
	}
	if s.bus != nil {
		for _, id := range ids {
			s.bus.Publish(ctx, domain.NewEvent(domain.EventConversationExpired, id, now, map[string]string{
				"idle_cutoff": cutoff.Format(time.RFC3339),
			}))
		}
	}
	return len(ids), nil
}

// Start schedules recurring sweeps. It is a no-op when already started.
func (s *Sweeper) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.entry = s.cron.Schedule(s.schedule, cron.FuncJob(s.tick))
	s.cron.Start()
	s.started = true
	s.logger.Info("retention sweeper started", "max_idle", s.maxIdle.String())
}

func (s *Sweeper) tick() {
	s.mu.Lock()
	ctx := s.ctx
	s.mu.Unlock()
	if ctx == nil || ctx.Err() != nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, sweepTimeout)
	defer cancel()

	start := time.Now()
	n, err := s.RunOnce(ctx)
	if s.onSweep != nil {
		s.onSweep(err)
	}
	if err != nil {
		s.logger.Warn("retention sweep failed", "error", err, "duration", time.Since(start))
		return
	}
	if n > 0 {
		s.logger.Info("retention sweep completed", "expired", n, "duration", time.Since(start))
	} else {
		s.logger.Debug("retention sweep completed", "expired", 0)
	}
}

// NextRun returns when the next sweep is due, or the zero time when stopped.
func (s *Sweeper) NextRun() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return time.Time{}
	}
	return s.cron.Entry(s.entry).Next
}

// Stop cancels the schedule and waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.cancel()
	s.cron.Remove(s.entry)
	s.started = false
	s.ctx = nil
	s.mu.Unlock()

	<-s.cron.Stop().Done()
}

// ParseSchedule accepts a standard five-field cron expression, a descriptor
// such as "@hourly", or a positive Go duration.
func ParseSchedule(schedule string) (cron.Schedule, error) {
	if schedule == "" {
		return nil, fmt.Errorf("empty schedule")
	}
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	if sched, err := parser.Parse(schedule); err == nil {
		return sched, nil
	}
	dur, err := time.ParseDuration(schedule)
	if err != nil {
		return nil, fmt.Errorf("not a valid cron expression or duration: %q", schedule)
	}
	if dur <= 0 {
		return nil, fmt.Errorf("duration must be positive: %q", schedule)
	}
	return constantDelay(dur), nil
}

// constantDelay fires at a fixed interval. Unlike cron.Every it keeps
// sub-second precision.
type constantDelay time.Duration

func (d constantDelay) Next(t time.Time) time.Time {
	return t.Add(time.Duration(d))
}
