// Package chat is the conversation engine: it owns the session state machine
// that mediates between the user, the completion service, and the persisted
// transcript.
package chat

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lockedin/taskplan-agent/internal/app/contract"
	"github.com/lockedin/taskplan-agent/internal/app/gate"
	"github.com/lockedin/taskplan-agent/internal/domain"
	"github.com/lockedin/taskplan-agent/internal/observability"
)

// Policy groups the engine's fixed behavior constants. They are injected at
// construction instead of living as literals at call sites.
type Policy struct {
	ContextWindow int     // historical turns sent to the model per call
	MaxMessageLen int     // input length ceiling, characters
	TitleLimit    int     // session title derived from the first message
	Model         string  // completion model name
	Temperature   float32 // completion sampling temperature
	MaxTokens     int     // completion output token budget
}

// DefaultPolicy returns the stock policy.
func DefaultPolicy() Policy {
	return Policy{
		ContextWindow: 10,
		MaxMessageLen: 1000,
		TitleLimit:    100,
		Model:         "llama-3.1-8b-instant",
		Temperature:   0.3,
		MaxTokens:     1024,
	}
}

type Service struct {
	completion   domain.CompletionClient
	sessionStore domain.SessionStore
	messageStore domain.MessageStore
	planStore    domain.PlanStore
	gate         *gate.Gate
	policy       Policy
	now          func() time.Time
	newID        func() string
}

func NewService(
	completion domain.CompletionClient,
	sessionStore domain.SessionStore,
	messageStore domain.MessageStore,
	planStore domain.PlanStore,
	policy Policy,
) *Service {
	return &Service{
		completion:   completion,
		sessionStore: sessionStore,
		messageStore: messageStore,
		planStore:    planStore,
		gate:         gate.New(policy.MaxMessageLen),
		policy:       policy,
		now:          time.Now,
		newID:        uuid.NewString,
	}
}

type HandleMessageInput struct {
	UserID  domain.UserID
	Message string

	// SessionID continues an existing session; empty starts a new one.
	SessionID domain.SessionID
}

type HandleMessageOutput struct {
	SessionID domain.SessionID
	Response  *contract.TaskResponse
}

// HandleMessage runs one conversation turn as a strictly sequential pipeline:
// gate, load or create the session, persist the user message, build the
// context window, call the completion service exactly once, parse the output,
// persist the assistant message, advance session status.
//
// The user message is persisted before the model call, so a failed turn leaves
// it durable and the caller can retry the same turn without resending.
// Concurrent turns on the same session are not serialized; two racing calls
// may interleave their appends.
func (s *Service) HandleMessage(ctx context.Context, in HandleMessageInput) (*HandleMessageOutput, error) {
	if err := s.gate.Validate(in.Message); err != nil {
		return nil, err
	}
	if s.gate.IsOffTopic(in.Message) {
		return nil, domain.ErrOffTopic
	}

	content := strings.TrimSpace(in.Message)

	log := observability.LoggerFromContext(ctx).With(
		"user_id", in.UserID,
	)

	var (
		session     *domain.Session
		messageType domain.MessageType
		err         error
	)

	if in.SessionID != "" {
		// Ownership lives in the query predicate: a session owned by another
		// user comes back as not found.
		session, err = s.sessionStore.FindSession(ctx, in.SessionID, in.UserID)
		if err != nil {
			return nil, err
		}
		messageType = domain.TypeRefinement
	} else {
		now := s.now()
		session = &domain.Session{
			ID:     domain.SessionID(s.newID()),
			UserID: in.UserID,
			Title:  truncate(content, s.policy.TitleLimit),
			// Provisional; corrected once the model responds.
			Status:    domain.StatusPlanned,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.sessionStore.CreateSession(ctx, session); err != nil {
			log.Error("failed to create session", "error", err)
			return nil, err
		}
		messageType = domain.TypeGoal
	}

	log = log.With("session_id", session.ID)

	userMsg := &domain.Message{
		ID:        domain.MessageID(s.newID()),
		SessionID: session.ID,
		Role:      domain.RoleUser,
		Type:      messageType,
		Content:   content,
		CreatedAt: s.now(),
	}
	if err := s.messageStore.AppendMessage(ctx, userMsg); err != nil {
		log.Error("failed to append user message", "error", err)
		return nil, err
	}

	turns, err := s.buildPrompt(ctx, session.ID)
	if err != nil {
		log.Error("failed to build prompt", "error", err)
		return nil, err
	}

	raw, err := s.completion.Complete(ctx, turns, domain.CompletionOptions{
		Model:       s.policy.Model,
		Temperature: s.policy.Temperature,
		MaxTokens:   s.policy.MaxTokens,
		ForceJSON:   true,
	})
	if err != nil {
		log.Error("completion call failed", "error", err)
		return nil, &domain.UpstreamError{Err: err}
	}
	if strings.TrimSpace(raw) == "" {
		log.Error("completion returned empty response")
		return nil, &domain.UpstreamError{Err: domain.ErrEmptyCompletion}
	}

	// On a malformed response nothing below runs: no assistant message, no
	// status change. The user's turn stays durable so a retry re-enters the
	// same context.
	parsed, err := contract.Parse(raw)
	if err != nil {
		log.Error("failed to parse model response", "error", err)
		return nil, err
	}

	assistantMsg := &domain.Message{
		ID:        domain.MessageID(s.newID()),
		SessionID: session.ID,
		Role:      domain.RoleAssistant,
		Type:      assistantMessageType(parsed.Status),
		Content:   raw,
		CreatedAt: s.now(),
	}
	if err := s.messageStore.AppendMessage(ctx, assistantMsg); err != nil {
		log.Error("failed to append assistant message", "error", err)
		return nil, err
	}

	switch parsed.Status {
	case contract.StatusPlanned:
		if err := s.sessionStore.UpdateSessionStatus(ctx, session.ID, domain.StatusPlanned, s.now()); err != nil {
			log.Error("failed to update session status", "error", err)
			return nil, err
		}
		if err := s.snapshotPlan(ctx, session, parsed.Steps); err != nil {
			log.Error("failed to save plan snapshot", "error", err)
			return nil, err
		}
	case contract.StatusClarificationRequired:
		if err := s.sessionStore.UpdateSessionStatus(ctx, session.ID, domain.StatusClarificationRequired, s.now()); err != nil {
			log.Error("failed to update session status", "error", err)
			return nil, err
		}
	case contract.StatusUnsupportedRequest:
		// Session status stays whatever it was before this turn.
	}

	log.Info("turn completed", "status", parsed.Status, "message_type", messageType)

	return &HandleMessageOutput{
		SessionID: session.ID,
		Response:  parsed,
	}, nil
}

// ListUserChats returns the user's sessions, most recently updated first.
func (s *Service) ListUserChats(ctx context.Context, userID domain.UserID) ([]*domain.Session, error) {
	return s.sessionStore.ListSessionsByUser(ctx, userID)
}

// GetChatWithMessages returns one session and its full transcript in creation
// order, scoped by ownership.
func (s *Service) GetChatWithMessages(
	ctx context.Context,
	userID domain.UserID,
	sessionID domain.SessionID,
) (*domain.Session, []*domain.Message, error) {
	session, err := s.sessionStore.FindSession(ctx, sessionID, userID)
	if err != nil {
		return nil, nil, err
	}

	msgs, err := s.messageStore.ListMessagesBySession(ctx, sessionID, 0)
	if err != nil {
		return nil, nil, err
	}

	return session, msgs, nil
}

// GetSessionPlan returns the session's current step list, scoped by ownership.
func (s *Service) GetSessionPlan(
	ctx context.Context,
	userID domain.UserID,
	sessionID domain.SessionID,
) (*domain.Plan, error) {
	if _, err := s.sessionStore.FindSession(ctx, sessionID, userID); err != nil {
		return nil, err
	}
	return s.planStore.GetPlanBySession(ctx, sessionID)
}

// snapshotPlan overwrites the session's plan with the breakdown just produced.
func (s *Service) snapshotPlan(ctx context.Context, session *domain.Session, steps []contract.Step) error {
	planSteps := make([]domain.PlanStep, 0, len(steps))
	for _, st := range steps {
		planSteps = append(planSteps, domain.PlanStep{
			Number:      st.Number,
			Title:       st.Title,
			Description: st.Description,
		})
	}

	now := s.now()
	return s.planStore.SavePlan(ctx, &domain.Plan{
		ID:        domain.PlanID(s.newID()),
		SessionID: session.ID,
		UserID:    session.UserID,
		Steps:     planSteps,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func assistantMessageType(status contract.ResponseStatus) domain.MessageType {
	switch status {
	case contract.StatusPlanned:
		return domain.TypeBreakdown
	case contract.StatusUnsupportedRequest:
		return domain.TypeUnsupported
	default:
		return domain.TypeClarification
	}
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
