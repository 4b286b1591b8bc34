package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"debate-bot/internal/domain"
	"debate-bot/internal/infra/middleware"
	"debate-bot/internal/usecase"
)

const apiName = "Persuasive Debate Chatbot API"

type chatRequest struct {
	ConversationID *string `json:"conversation_id"`
	Message        string  `json:"message"`
	Personality    string  `json:"personality,omitempty"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeBadRequest(w, r, err)
		return
	}

	var id string
	if req.ConversationID != nil {
		id = *req.ConversationID
		// An explicit but blank id is malformed, not a request for a new conversation.
		if strings.TrimSpace(id) == "" {
			s.writeError(w, r, domain.NewDomainError("httpapi.chat", domain.ErrInvalidConversationID, "Conversation ID cannot be empty"))
			return
		}
	}

	resp, err := s.chat.Chat(r.Context(), usecase.ChatRequest{
		ConversationID: id,
		Message:        req.Message,
		Personality:    req.Personality,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetConversation(w http.ResponseWriter, r *http.Request) {
	view, err := s.chat.Conversation(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleDeleteConversation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	deleted, err := s.chat.Delete(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if !deleted {
		s.writeError(w, r, domain.NewDomainError("httpapi.delete", domain.ErrConversationNotFound, id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePersonalities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"personalities": s.chat.Personalities()})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.chat.Health(r.Context())
	status := http.StatusOK
	if !report.Healthy() {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, report)
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	endpoints := map[string]string{
		"chat":          "POST /chat",
		"health":        "GET /health",
		"conversation":  "GET|DELETE /conversations/{id}",
		"personalities": "GET /personalities",
	}
	if s.cfg.WebSocket {
		endpoints["websocket"] = "GET /ws"
	}
	if s.opts.Metrics != nil {
		endpoints["metrics"] = "GET " + s.opts.MetricsPath
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"name":        apiName,
		"version":     s.opts.Version,
		"environment": s.opts.Environment,
		"endpoints":   endpoints,
		"uptime":      time.Since(s.started).Round(time.Second).String(),
		"timestamp":   time.Now().UTC(),
		"status":      "operational",
	})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	middleware.WriteError(w, http.StatusNotFound, "NOT_FOUND",
		"The requested resource was not found",
		fmt.Sprintf("Path %s does not exist", r.URL.Path))
}

func (s *Server) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	middleware.WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED",
		fmt.Sprintf("Method %s is not allowed for this endpoint", r.Method),
		"Check the API documentation for allowed methods")
}

// StatusFor maps a use case error to an HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrConversationNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// ClientMessage returns the text shown to API clients for err. Internal
// failures are never described.
func ClientMessage(err error) string {
	var de *domain.DomainError
	switch {
	case errors.Is(err, domain.ErrValidation):
		if errors.As(err, &de) && de.Detail != "" {
			return de.Detail
		}
		return "Invalid input"
	case errors.Is(err, domain.ErrConversationNotFound):
		if errors.As(err, &de) && de.Detail != "" {
			return fmt.Sprintf("Conversation %s not found", de.Detail)
		}
		return "Conversation not found"
	case errors.Is(err, domain.ErrConflict):
		return "The conversation was modified concurrently, please retry"
	case errors.Is(err, domain.ErrStoreUnavailable):
		return "Conversation store temporarily unavailable"
	default:
		return "Internal server error"
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	code := string(domain.ErrorCodeOf(err))
	var details any
	switch {
	case status == http.StatusBadRequest:
		details = "Please check your input data"
	case status >= http.StatusInternalServerError:
		code = "INTERNAL_ERROR"
		if status == http.StatusServiceUnavailable {
			code = string(domain.CodeStoreUnavailable)
		}
		details = "Please try again later or contact support"
		s.logger.Error("request failed",
			"path", r.URL.Path,
			"request_id", middleware.RequestIDFrom(r.Context()),
			"error", err,
		)
	}
	if s.opts.Metrics != nil {
		s.opts.Metrics.ObserveChatError("http", err)
	}
	middleware.WriteError(w, status, code, ClientMessage(err), details)
}

func (s *Server) writeBadRequest(w http.ResponseWriter, r *http.Request, err error) {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		middleware.WriteError(w, http.StatusRequestEntityTooLarge, string(domain.CodeValidation),
			"Request body too large", fmt.Sprintf("Maximum size is %d bytes", mbe.Limit))
		return
	}
	middleware.WriteError(w, http.StatusBadRequest, string(domain.CodeValidation),
		"Invalid JSON body", err.Error())
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return err
	}
	if dec.More() {
		return errors.New("request body must contain a single JSON object")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
