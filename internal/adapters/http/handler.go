package httpadapter

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/lockedin/taskplan-agent/internal/app/chat"
	"github.com/lockedin/taskplan-agent/internal/app/contract"
	"github.com/lockedin/taskplan-agent/internal/domain"
)

// userIDHeader carries the already-authenticated user identity. Resolving it
// (tokens, sessions) happens upstream of this service.
const userIDHeader = "X-User-ID"

type Server struct {
	svc *chat.Service
}

func NewServer(svc *chat.Service) http.Handler {
	s := &Server{svc: svc}
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", s.handleHealthz)

	// /ai/task-breakdown/chat → POST: start or continue a breakdown chat
	mux.HandleFunc("/ai/task-breakdown/chat", s.handleChat)

	// /ai/chats           → GET: list the user's sessions
	// /ai/chats/{id}      → GET: one session with its transcript
	// /ai/chats/{id}/plan → GET: the session's current step list
	mux.HandleFunc("/ai/chats", s.handleChats)
	mux.HandleFunc("/ai/chats/", s.handleChatWithID)

	return chainMiddlewares(mux, withLogging, withCORS, withRequestID)
}

// ─────────────────────────────────────────────
// DTOs (request/response)
// ─────────────────────────────────────────────

type chatRequest struct {
	Message string `json:"message"`
	ChatID  string `json:"chat_id,omitempty"`
}

type chatResponse struct {
	ChatID   string                 `json:"chat_id"`
	Response *contract.TaskResponse `json:"response"`
}

type sessionResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type messageResponse struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Role      string    `json:"role"`
	Type      string    `json:"type"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type listChatsResponse struct {
	Chats []sessionResponse `json:"chats"`
	Total int               `json:"total"`
}

type getChatResponse struct {
	Session  sessionResponse   `json:"session"`
	Messages []messageResponse `json:"messages"`
}

type planResponse struct {
	SessionID string     `json:"session_id"`
	Steps     []planStep `json:"steps"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type planStep struct {
	Number      int    `json:"step"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ─────────────────────────────────────────────
// Handlers
// ─────────────────────────────────────────────

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	userID, ok := authenticatedUser(w, r)
	if !ok {
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	out, err := s.svc.HandleMessage(r.Context(), chat.HandleMessageInput{
		UserID:    userID,
		Message:   req.Message,
		SessionID: domain.SessionID(req.ChatID),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	status := http.StatusCreated
	if req.ChatID != "" {
		status = http.StatusOK
	}

	writeJSON(w, status, chatResponse{
		ChatID:   string(out.SessionID),
		Response: out.Response,
	})
}

func (s *Server) handleChats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	userID, ok := authenticatedUser(w, r)
	if !ok {
		return
	}

	sessions, err := s.svc.ListUserChats(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	chats := make([]sessionResponse, 0, len(sessions))
	for _, sess := range sessions {
		chats = append(chats, toSessionResponse(sess))
	}

	writeJSON(w, http.StatusOK, listChatsResponse{Chats: chats, Total: len(chats)})
}

// /ai/chats/{id} or /ai/chats/{id}/plan
func (s *Server) handleChatWithID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/ai/chats/")
	if path == "" {
		http.NotFound(w, r)
		return
	}

	parts := strings.Split(path, "/")
	id := parts[0]
	if id == "" {
		http.NotFound(w, r)
		return
	}

	userID, ok := authenticatedUser(w, r)
	if !ok {
		return
	}

	switch {
	case len(parts) == 1:
		s.handleGetChat(w, r, userID, domain.SessionID(id))
	case len(parts) == 2 && parts[1] == "plan":
		s.handleGetPlan(w, r, userID, domain.SessionID(id))
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) handleGetChat(
	w http.ResponseWriter,
	r *http.Request,
	userID domain.UserID,
	sessionID domain.SessionID,
) {
	session, msgs, err := s.svc.GetChatWithMessages(r.Context(), userID, sessionID)
	if err != nil {
		writeError(w, err)
		return
	}

	messages := make([]messageResponse, 0, len(msgs))
	for _, m := range msgs {
		messages = append(messages, toMessageResponse(m))
	}

	writeJSON(w, http.StatusOK, getChatResponse{
		Session:  toSessionResponse(session),
		Messages: messages,
	})
}

func (s *Server) handleGetPlan(
	w http.ResponseWriter,
	r *http.Request,
	userID domain.UserID,
	sessionID domain.SessionID,
) {
	plan, err := s.svc.GetSessionPlan(r.Context(), userID, sessionID)
	if err != nil {
		writeError(w, err)
		return
	}

	steps := make([]planStep, 0, len(plan.Steps))
	for _, st := range plan.Steps {
		steps = append(steps, planStep{
			Number:      st.Number,
			Title:       st.Title,
			Description: st.Description,
		})
	}

	writeJSON(w, http.StatusOK, planResponse{
		SessionID: string(plan.SessionID),
		Steps:     steps,
		UpdatedAt: plan.UpdatedAt,
	})
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

func authenticatedUser(w http.ResponseWriter, r *http.Request) (domain.UserID, bool) {
	id := strings.TrimSpace(r.Header.Get(userIDHeader))
	if id == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]string{
			"error": "missing " + userIDHeader + " header",
		})
		return "", false
	}
	return domain.UserID(id), true
}

func toSessionResponse(s *domain.Session) sessionResponse {
	return sessionResponse{
		ID:        string(s.ID),
		Title:     s.Title,
		Status:    string(s.Status),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func toMessageResponse(m *domain.Message) messageResponse {
	return messageResponse{
		ID:        string(m.ID),
		SessionID: string(m.SessionID),
		Role:      string(m.Role),
		Type:      string(m.Type),
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}

// writeError maps the engine's failure taxonomy to HTTP status codes. Matching
// is by kind, never by message text.
func writeError(w http.ResponseWriter, err error) {
	var validationErr *domain.ValidationError
	var malformedErr *domain.MalformedResponseError
	var upstreamErr *domain.UpstreamError

	switch {
	case errors.As(err, &validationErr):
		badRequest(w, validationErr.Reason)
	case errors.Is(err, domain.ErrOffTopic):
		badRequest(w, "This input is not related to task breakdown. Please provide a goal or task to break down.")
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{
			"error": "chat session not found",
		})
	case errors.As(err, &malformedErr), errors.As(err, &upstreamErr):
		writeJSON(w, http.StatusBadGateway, map[string]string{
			"error": "AI chat processing failed",
		})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "internal server error",
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{
		"error": msg,
	})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{
		"error": "method not allowed",
	})
}
