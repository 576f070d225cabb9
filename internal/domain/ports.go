package domain

import "context"

// ChatTurn is one role-tagged entry in the prompt sent to the completion
// service. The synthetic system turn exists only here, never in storage.
type ChatTurn struct {
	Role    Role
	Content string
}

// CompletionOptions carries the per-call model policy. The engine injects
// these from configuration; adapters must not override them.
type CompletionOptions struct {
	Model       string
	Temperature float32
	MaxTokens   int
	ForceJSON   bool
}

// CompletionClient is the black-box completion service: given an ordered list
// of role-tagged turns it returns one text blob. No retry or rate-limit
// guarantees; exactly one call is made per conversation turn.
type CompletionClient interface {
	Complete(ctx context.Context, turns []ChatTurn, opts CompletionOptions) (string, error)
}

// SessionStore defines session persistence. FindSession scopes by owner in the
// query itself, so a foreign session is indistinguishable from a missing one.
type SessionStore interface {
	CreateSession(ctx context.Context, session *Session) error
	FindSession(ctx context.Context, id SessionID, userID UserID) (*Session, error)
	UpdateSessionStatus(ctx context.Context, id SessionID, status SessionStatus, updatedAt Timestamp) error
	ListSessionsByUser(ctx context.Context, userID UserID) ([]*Session, error)
}

// MessageStore defines message persistence.
type MessageStore interface {
	AppendMessage(ctx context.Context, msg *Message) error
	// ListMessagesBySession returns messages in creation order. A limit > 0
	// keeps only the most recent limit messages, still chronological.
	ListMessagesBySession(ctx context.Context, sessionID SessionID, limit int) ([]*Message, error)
}

// PlanStore persists the latest accepted step list per session.
type PlanStore interface {
	SavePlan(ctx context.Context, plan *Plan) error
	GetPlanBySession(ctx context.Context, sessionID SessionID) (*Plan, error)
}
