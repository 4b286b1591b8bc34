package usecase

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/trace"

	"debate-bot/internal/domain"
	"debate-bot/internal/infra/tracer"
)

// StartConversation opens a conversation with the caller's first message and
// the bot's first reply.
type StartConversation struct {
	deps DebateDeps
}

// NewStartConversation creates the use case.
func NewStartConversation(deps DebateDeps) *StartConversation {
	return &StartConversation{deps: deps.normalized()}
}

// Execute validates req, creates and persists the conversation and returns
// its recent history. Validation errors are returned unchanged; any other
// failure is a *domain.UseCaseError.
func (uc *StartConversation) Execute(ctx context.Context, req StartRequest) (*ChatResponse, error) {
	ctx, span := tracer.StartSpan(ctx, "usecase.start_conversation")
	defer span.End()

	resp, err := uc.execute(ctx, req, span)
	if err != nil {
		tracer.RecordError(span, err)
		return nil, domain.WrapUseCase(UseCaseStartConversation, err)
	}
	tracer.SetOK(span)
	return resp, nil
}

func (uc *StartConversation) execute(ctx context.Context, req StartRequest, span trace.Span) (*ChatResponse, error) {
	const op = "StartConversation.Execute"

	text, err := validateUserMessage(op, req.Message)
	if err != nil {
		return nil, err
	}
	if err := validatePreferred(op, req.PreferredPersonality, uc.deps.Orchestrator.AvailablePersonalities()); err != nil {
		return nil, err
	}

	ts := requestTime(uc.deps, req.Timestamp)
	conv, err := domain.NewConversation(domain.NewConversationID(), ts, uc.deps.MaxHistory)
	if err != nil {
		// Only reachable through a bad MaxHistory, which is not the caller's fault.
		return nil, fmt.Errorf("%s: create conversation: %v", op, err)
	}
	if err := exchange(op, uc.deps, conv, text, req.PreferredPersonality, ts); err != nil {
		return nil, err
	}

	personality, _ := conv.Personality()
	span.SetAttributes(
		tracer.StringAttr("conversation.id", conv.ID().String()),
		tracer.StringAttr("conversation.personality", string(personality)),
	)

	if err := uc.deps.Repo.Save(ctx, conv); err != nil {
		return nil, domain.WrapOp(op, err)
	}

	uc.deps.Logger.Debug("conversation started",
		"conversation_id", conv.ID().String(),
		"personality", personality,
	)
	publish(ctx, uc.deps, domain.EventConversationStarted, conv, text, lastReply(conv))

	return newChatResponse(conv), nil
}
