package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"debate-bot/internal/domain"
	"debate-bot/internal/infra/random"
	"debate-bot/internal/usecase/persona"
)

// --- Mocks ---

type mockRepo struct {
	mu        sync.Mutex
	convs     map[domain.ConversationID]*domain.Conversation
	saveErr   error
	findErr   error
	updateErr error
	finds     int
	saves     int
	updates   int
	healthy   bool
}

func newMockRepo() *mockRepo {
	return &mockRepo{convs: make(map[domain.ConversationID]*domain.Conversation), healthy: true}
}

func (m *mockRepo) Save(_ context.Context, c *domain.Conversation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	c.SetVersion(c.Version() + 1)
	m.convs[c.ID()] = c.Clone()
	return nil
}

func (m *mockRepo) FindByID(_ context.Context, id domain.ConversationID) (*domain.Conversation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.finds++
	if m.findErr != nil {
		return nil, m.findErr
	}
	c, ok := m.convs[id]
	if !ok {
		return nil, nil
	}
	return c.Clone(), nil
}

func (m *mockRepo) Update(_ context.Context, c *domain.Conversation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updates++
	if m.updateErr != nil {
		return m.updateErr
	}
	stored, ok := m.convs[c.ID()]
	if !ok {
		return domain.ErrConversationNotFound
	}
	if stored.Version() != c.Version() {
		return domain.ErrConflict
	}
	c.SetVersion(c.Version() + 1)
	m.convs[c.ID()] = c.Clone()
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id domain.ConversationID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.convs[id]
	delete(m.convs, id)
	return ok, nil
}

func (m *mockRepo) Count(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.convs), nil
}

func (m *mockRepo) HealthCheck(_ context.Context) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.healthy
}

func (m *mockRepo) get(t *testing.T, id string) *domain.Conversation {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.convs[domain.MustParseConversationID(id)]
	if !ok {
		t.Fatalf("conversation %s not stored", id)
	}
	return c.Clone()
}

// mockPersona answers with a fixed reply and records contexts it saw.
type mockPersona struct {
	mu    sync.Mutex
	kind  domain.PersonalityType
	reply string
	seen  []domain.DebateContext
}

func (p *mockPersona) Type() domain.PersonalityType { return p.kind }
func (p *mockPersona) GenerateResponse(dc domain.DebateContext) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.seen = append(p.seen, dc)
	return p.reply
}
func (p *mockPersona) InitialStance(topic string) string { return string(p.kind) + " on " + topic }

func (p *mockPersona) contexts() []domain.DebateContext {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.DebateContext, len(p.seen))
	copy(out, p.seen)
	return out
}

func mockPersonas() []*mockPersona {
	return []*mockPersona{
		{kind: domain.PersonalityConspiracyTheorist, reply: "conspiracy reply"},
		{kind: domain.PersonalitySkepticalScientist, reply: "scientist reply"},
		{kind: domain.PersonalityPopulist, reply: "populist reply"},
	}
}

func asPersonas(ps []*mockPersona) []domain.Persona {
	out := make([]domain.Persona, len(ps))
	for i, p := range ps {
		out[i] = p
	}
	return out
}

type recordingBus struct {
	mu     sync.Mutex
	events []domain.Event
}

func (b *recordingBus) Publish(_ context.Context, e domain.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, e)
}
func (b *recordingBus) Subscribe(domain.EventType, domain.EventHandler) func() { return func() {} }
func (b *recordingBus) SubscribeAll(domain.EventHandler) func()                { return func() {} }
func (b *recordingBus) Close()                                                 {}

func (b *recordingBus) types() []domain.EventType {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]domain.EventType, len(b.events))
	for i, e := range b.events {
		out[i] = e.Type
	}
	return out
}

// --- Fixtures ---

var fixedNow = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

type fixture struct {
	repo     *mockRepo
	bus      *recordingBus
	orch     *DebateOrchestrator
	start    *StartConversation
	cont     *ContinueDebate
	get      *GetConversation
	personas []*mockPersona
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	personas := mockPersonas()
	return newFixtureWith(t, asPersonas(personas), personas)
}

// newRealFixture wires the built-in persona tables.
func newRealFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWith(t, persona.Defaults(random.Fixed(0)), nil)
}

func newFixtureWith(t *testing.T, personas []domain.Persona, mocks []*mockPersona) *fixture {
	t.Helper()
	f := &fixture{
		repo:     newMockRepo(),
		bus:      &recordingBus{},
		orch:     NewDebateOrchestrator(personas, random.Fixed(0)),
		personas: mocks,
	}
	deps := DebateDeps{
		Repo:         f.repo,
		Orchestrator: f.orch,
		Logger:       slog.Default(),
		Bus:          f.bus,
		Now:          func() time.Time { return fixedNow },
	}
	f.start = NewStartConversation(deps)
	f.cont = NewContinueDebate(deps)
	f.get = NewGetConversation(f.repo)
	return f
}

func (f *fixture) chatService(locker *ConversationLocker) *ChatService {
	return NewChatService(ChatDeps{
		Start:        f.start,
		Continue:     f.cont,
		Get:          f.get,
		Repo:         f.repo,
		Orchestrator: f.orch,
		Logger:       slog.Default(),
		Locker:       locker,
		Bus:          f.bus,
	})
}

var errBoom = errors.New("boom")
