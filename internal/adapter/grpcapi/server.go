// Package grpcapi exposes the debate service over gRPC.
package grpcapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/oklog/ulid/v2"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"debate-bot/internal/adapter/grpcapi/debatev1"
	"debate-bot/internal/domain"
	"debate-bot/internal/infra/metrics"
	"debate-bot/internal/usecase"
)

// ChatService is the slice of usecase.ChatService the gRPC API needs.
type ChatService interface {
	Chat(ctx context.Context, req usecase.ChatRequest) (*usecase.ChatResponse, error)
	Conversation(ctx context.Context, id string) (*usecase.ConversationView, error)
}

// Server implements debatev1.DebateServiceServer.
type Server struct {
	debatev1.UnimplementedDebateServiceServer

	chat    ChatService
	logger  *slog.Logger
	metrics *metrics.Metrics

	grpc      *grpc.Server
	boundAddr string
}

// New creates a gRPC server. m may be nil.
func New(chat ChatService, logger *slog.Logger, m *metrics.Metrics) *Server {
	s := &Server{
		chat:    chat,
		logger:  logger.With("component", "grpc"),
		metrics: m,
	}
	s.grpc = grpc.NewServer(grpc.ChainUnaryInterceptor(s.recoverInterceptor, s.logInterceptor))
	debatev1.RegisterDebateServiceServer(s.grpc, s)
	return s
}

// Chat runs one debate turn.
func (s *Server) Chat(ctx context.Context, req *debatev1.ChatRequest) (*debatev1.ChatResponse, error) {
	resp, err := s.chat.Chat(ctx, usecase.ChatRequest{
		ConversationID: req.ConversationId,
		Message:        req.Message,
		Personality:    req.Personality,
	})
	if err != nil {
		if s.metrics != nil {
			s.metrics.ObserveChatError("grpc", err)
		}
		return nil, MapError(err)
	}
	return &debatev1.ChatResponse{
		ConversationId: resp.ConversationID,
		Messages:       toMessages(resp.Messages),
	}, nil
}

// GetConversation returns a stored conversation.
func (s *Server) GetConversation(ctx context.Context, req *debatev1.GetConversationRequest) (*debatev1.Conversation, error) {
	view, err := s.chat.Conversation(ctx, req.ConversationId)
	if err != nil {
		return nil, MapError(err)
	}
	return &debatev1.Conversation{
		ConversationId: view.ConversationID,
		Topic:          view.Topic,
		BotPosition:    view.BotPosition,
		Personality:    view.Personality,
		MessageCount:   int32(view.MessageCount),
		ExchangeCount:  int32(view.ExchangeCount),
		CreatedAtUnix:  view.CreatedAt.Unix(),
		UpdatedAtUnix:  view.UpdatedAt.Unix(),
		Messages:       toMessages(view.Messages),
	}, nil
}

func toMessages(in []domain.TransportMessage) []*debatev1.Message {
	out := make([]*debatev1.Message, len(in))
	for i, m := range in {
		out[i] = &debatev1.Message{Role: m.Role, Message: m.Message}
	}
	return out
}

// MapError converts a use case error into a gRPC status.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	var de *domain.DomainError
	detail := ""
	if errors.As(err, &de) {
		detail = de.Detail
	}
	switch {
	case errors.Is(err, domain.ErrValidation):
		return status.Error(codes.InvalidArgument, detail)
	case errors.Is(err, domain.ErrConversationNotFound):
		return status.Error(codes.NotFound, fmt.Sprintf("conversation %s not found", detail))
	case errors.Is(err, domain.ErrConflict):
		return status.Error(codes.Aborted, "conversation was modified concurrently")
	case errors.Is(err, domain.ErrStoreUnavailable):
		return status.Error(codes.Unavailable, "conversation store temporarily unavailable")
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "turn timed out")
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "request canceled")
	default:
		return status.Error(codes.Internal, "internal server error")
	}
}

func (s *Server) logInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	requestID := ulid.Make().String()
	resp, err := handler(ctx, req)

	code := status.Code(err)
	level := slog.LevelInfo
	switch code {
	case codes.OK:
	case codes.Internal, codes.Unavailable, codes.Unknown:
		level = slog.LevelError
	default:
		level = slog.LevelWarn
	}
	s.logger.Log(ctx, level, "grpc request",
		"method", info.FullMethod,
		"code", code.String(),
		"duration", time.Since(start),
		"request_id", requestID,
	)
	return resp, err
}

func (s *Server) recoverInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
	defer func() {
		if rv := recover(); rv != nil {
			s.logger.Error("grpc handler panic", "method", info.FullMethod, "panic", rv)
			err = status.Error(codes.Internal, "internal server error")
		}
	}()
	return handler(ctx, req)
}

// Serve serves on ln until Stop. It blocks.
func (s *Server) Serve(ln net.Listener) error {
	return s.grpc.Serve(ln)
}

// Start listens on addr and serves in a goroutine.
func (s *Server) Start(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	s.boundAddr = ln.Addr().String()
	go func() {
		s.logger.Info("grpc server started", "addr", s.boundAddr)
		if err := s.grpc.Serve(ln); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			s.logger.Error("grpc server error", "error", err)
		}
	}()
	return nil
}

// Stop drains in-flight calls, giving up when ctx is done.
func (s *Server) Stop(ctx context.Context) {
	done := make(chan struct{})
	go func() {
		s.grpc.GracefulStop()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		s.grpc.Stop()
	}
}

// BoundAddr returns the address passed to Start after binding.
func (s *Server) BoundAddr() string { return s.boundAddr }
