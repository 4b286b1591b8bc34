package httpapi

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"debate-bot/internal/domain"
	"debate-bot/internal/infra/middleware"
	"debate-bot/internal/usecase"
)

const wsWriteTimeout = 5 * time.Second

type wsRequest struct {
	ConversationID string `json:"conversation_id,omitempty"`
	Message        string `json:"message"`
	Personality    string `json:"personality,omitempty"`
}

type wsError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type wsResponse struct {
	ConversationID string                    `json:"conversation_id,omitempty"`
	Messages       []domain.TransportMessage `json:"message,omitempty"`
	Error          *wsError                  `json:"error,omitempty"`
}

// originPatterns converts the CORS allow-list into host patterns for the
// websocket origin check.
func originPatterns(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, o := range origins {
		if o == "*" {
			out = append(out, "*")
			continue
		}
		if u, err := url.Parse(o); err == nil && u.Host != "" {
			out = append(out, u.Host)
		}
	}
	return out
}

// handleWebSocket runs a debate over one connection. Frames are processed in
// order; the connection remembers the conversation after the first reply so
// clients may omit conversation_id afterwards.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: originPatterns(s.cfg.CORSOrigins),
	})
	if err != nil {
		s.logger.Warn("websocket accept failed", "error", err)
		return
	}
	defer ws.Close(websocket.StatusInternalError, "")
	if s.cfg.MaxBodyBytes > 0 {
		ws.SetReadLimit(s.cfg.MaxBodyBytes)
	}

	logger := s.logger.With("request_id", middleware.RequestIDFrom(r.Context()))
	logger.Info("websocket connected", "remote", r.RemoteAddr)

	ctx := r.Context()
	current := ""
	for {
		var req wsRequest
		if err := wsjson.Read(ctx, ws, &req); err != nil {
			status := websocket.CloseStatus(err)
			if status != websocket.StatusNormalClosure && status != websocket.StatusGoingAway && !errors.Is(err, context.Canceled) {
				logger.Warn("websocket read failed", "error", err)
			}
			break
		}

		id := strings.TrimSpace(req.ConversationID)
		if id == "" {
			id = current
		}
		resp, err := s.chat.Chat(ctx, usecase.ChatRequest{
			ConversationID: id,
			Message:        req.Message,
			Personality:    req.Personality,
		})

		var out wsResponse
		if err != nil {
			if s.opts.Metrics != nil {
				s.opts.Metrics.ObserveChatError("websocket", err)
			}
			if StatusFor(err) >= http.StatusInternalServerError {
				logger.Error("websocket turn failed", "conversation_id", id, "error", err)
			}
			out = wsResponse{ConversationID: id, Error: &wsError{
				Code:    string(domain.ErrorCodeOf(err)),
				Message: ClientMessage(err),
			}}
		} else {
			current = resp.ConversationID
			out = wsResponse{ConversationID: resp.ConversationID, Messages: resp.Messages}
		}

		wctx, cancel := context.WithTimeout(ctx, wsWriteTimeout)
		err = wsjson.Write(wctx, ws, out)
		cancel()
		if err != nil {
			logger.Warn("websocket write failed", "error", err)
			return
		}
	}

	ws.Close(websocket.StatusNormalClosure, "")
	logger.Info("websocket disconnected", "conversation_id", current)
}
