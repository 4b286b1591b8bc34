package usecase

import (
	"context"

	"go.opentelemetry.io/otel/trace"

	"debate-bot/internal/domain"
	"debate-bot/internal/infra/tracer"
)

// ContinueDebate adds one exchange to an existing conversation.
type ContinueDebate struct {
	deps DebateDeps
}

// NewContinueDebate creates the use case.
func NewContinueDebate(deps DebateDeps) *ContinueDebate {
	return &ContinueDebate{deps: deps.normalized()}
}

// Execute validates req before touching the repository, then loads the
// conversation, appends the exchange and writes it back. Validation and
// not-found errors are returned unchanged; anything else is a
// *domain.UseCaseError.
func (uc *ContinueDebate) Execute(ctx context.Context, req ContinueRequest) (*ChatResponse, error) {
	ctx, span := tracer.StartSpan(ctx, "usecase.continue_debate")
	defer span.End()

	resp, err := uc.execute(ctx, req, span)
	if err != nil {
		tracer.RecordError(span, err)
		return nil, domain.WrapUseCase(UseCaseContinueDebate, err)
	}
	tracer.SetOK(span)
	return resp, nil
}

func (uc *ContinueDebate) execute(ctx context.Context, req ContinueRequest, span trace.Span) (*ChatResponse, error) {
	const op = "ContinueDebate.Execute"

	id, err := validateConversationID(op, req.ConversationID)
	if err != nil {
		return nil, err
	}
	text, err := validateUserMessage(op, req.Message)
	if err != nil {
		return nil, err
	}
	if err := validatePreferred(op, req.PreferredPersonality, uc.deps.Orchestrator.AvailablePersonalities()); err != nil {
		return nil, err
	}
	span.SetAttributes(tracer.StringAttr("conversation.id", id.String()))

	conv, err := uc.deps.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, domain.WrapOp(op, err)
	}
	if conv == nil {
		return nil, domain.NewDomainError(op, domain.ErrConversationNotFound, id.String())
	}

	ts := requestTime(uc.deps, req.Timestamp)
	if err := exchange(op, uc.deps, conv, text, req.PreferredPersonality, ts); err != nil {
		return nil, err
	}

	personality, _ := conv.Personality()
	span.SetAttributes(
		tracer.StringAttr("conversation.personality", string(personality)),
		tracer.IntAttr("conversation.exchanges", conv.ExchangeCount()),
	)

	if err := uc.deps.Repo.Update(ctx, conv); err != nil {
		return nil, domain.WrapOp(op, err)
	}

	uc.deps.Logger.Debug("debate continued",
		"conversation_id", id.String(),
		"personality", personality,
		"messages", conv.MessageCount(),
	)
	publish(ctx, uc.deps, domain.EventDebateContinued, conv, text, lastReply(conv))

	return newChatResponse(conv), nil
}
