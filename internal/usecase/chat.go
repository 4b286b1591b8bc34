package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"debate-bot/internal/domain"
)

// ChatRequest is the transport-neutral input of a chat turn. An empty
// ConversationID starts a new conversation.
type ChatRequest struct {
	ConversationID string
	Message        string
	Personality    string
}

// PersonalityInfo describes one available persona.
type PersonalityInfo struct {
	Name    domain.PersonalityType `json:"name"`
	Stance  string                 `json:"stance"`
	Opening string                 `json:"opening"`
}

// HealthReport summarizes the state of the chat service's dependencies.
type HealthReport struct {
	Status     string          `json:"status"`
	Components map[string]bool `json:"components"`
	Timestamp  time.Time       `json:"timestamp"`
}

// Healthy reports whether every component is up.
func (h HealthReport) Healthy() bool { return h.Status == "healthy" }

// ChatDeps holds injected dependencies for ChatService.
type ChatDeps struct {
	Start        *StartConversation
	Continue     *ContinueDebate
	Get          *GetConversation
	Repo         domain.ConversationRepository
	Orchestrator *DebateOrchestrator
	Logger       *slog.Logger
	Locker       *ConversationLocker // optional, nil = no per-conversation locking
	Bus          domain.EventBus     // optional, nil = no events
	Timeout      time.Duration       // optional, 0 = no deadline per turn
}

// ChatService is the single entry point used by every transport. It routes
// a turn to Start or Continue and applies the per-conversation lock and the
// turn deadline.
type ChatService struct {
	deps ChatDeps
}

// NewChatService creates a chat service.
func NewChatService(deps ChatDeps) *ChatService {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &ChatService{deps: deps}
}

// Chat runs one turn.
func (s *ChatService) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	if s.deps.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.deps.Timeout)
		defer cancel()
	}

	now := time.Now().UTC()
	if strings.TrimSpace(req.ConversationID) == "" {
		resp, err := s.deps.Start.Execute(ctx, StartRequest{
			Message:              req.Message,
			PreferredPersonality: req.Personality,
			Timestamp:            now,
		})
		s.logTurn("start", req, resp, err)
		return resp, err
	}

	if s.deps.Locker != nil {
		unlock, err := s.deps.Locker.Lock(ctx, strings.TrimSpace(req.ConversationID))
		if err != nil {
			return nil, domain.WrapUseCase(UseCaseContinueDebate, err)
		}
		defer unlock()
	}

	resp, err := s.deps.Continue.Execute(ctx, ContinueRequest{
		ConversationID:       req.ConversationID,
		Message:              req.Message,
		PreferredPersonality: req.Personality,
		Timestamp:            now,
	})
	s.logTurn("continue", req, resp, err)
	return resp, err
}

func (s *ChatService) logTurn(kind string, req ChatRequest, resp *ChatResponse, err error) {
	if err != nil {
		s.deps.Logger.Warn("chat turn failed",
			"kind", kind,
			"conversation_id", req.ConversationID,
			"code", domain.ErrorCodeOf(err),
			"error", err,
		)
		return
	}
	s.deps.Logger.Info("chat turn",
		"kind", kind,
		"conversation_id", resp.ConversationID,
		"message_length", len([]rune(req.Message)),
		"messages", len(resp.Messages),
	)
}

// Conversation returns a read-only view of a conversation.
func (s *ChatService) Conversation(ctx context.Context, id string) (*ConversationView, error) {
	return s.deps.Get.Execute(ctx, id)
}

// Delete removes a conversation and reports whether it existed.
func (s *ChatService) Delete(ctx context.Context, rawID string) (bool, error) {
	const op = "ChatService.Delete"
	id, err := validateConversationID(op, rawID)
	if err != nil {
		return false, err
	}
	deleted, err := s.deps.Repo.Delete(ctx, id)
	if err != nil {
		return false, domain.WrapOp(op, err)
	}
	if deleted && s.deps.Bus != nil {
		s.deps.Bus.Publish(ctx, domain.NewEvent(domain.EventConversationDeleted, id, time.Now().UTC(), nil))
	}
	return deleted, nil
}

// Personalities lists the personas a caller may request.
func (s *ChatService) Personalities() []PersonalityInfo {
	available := s.deps.Orchestrator.AvailablePersonalities()
	out := make([]PersonalityInfo, 0, len(available))
	for _, p := range available {
		opening, _ := s.deps.Orchestrator.InitialStanceFor(p, "this topic")
		out = append(out, PersonalityInfo{Name: p, Stance: p.Stance(), Opening: opening})
	}
	return out
}

// Health checks the repository and the orchestrator.
func (s *ChatService) Health(ctx context.Context) HealthReport {
	components := map[string]bool{
		"api":          true,
		"repository":   s.deps.Repo.HealthCheck(ctx),
		"orchestrator": len(s.deps.Orchestrator.AvailablePersonalities()) > 0,
	}
	status := "healthy"
	for _, ok := range components {
		if !ok {
			status = "unhealthy"
			break
		}
	}
	return HealthReport{Status: status, Components: components, Timestamp: time.Now().UTC()}
}

// ActiveConversations returns the number of stored conversations.
func (s *ChatService) ActiveConversations(ctx context.Context) (int, error) {
	n, err := s.deps.Repo.Count(ctx)
	return n, domain.WrapOp("ChatService.ActiveConversations", err)
}
