package domain

import (
	"fmt"
	"strings"
	"time"
)

type SessionID string
type UserID string
type MessageID string

type Role string

const (
	RoleSystem    Role = "system" // reserved for static instructions, never persisted by the engine
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ParseRole rejects unknown role strings at the deserialization boundary.
func ParseRole(s string) (Role, error) {
	switch Role(strings.TrimSpace(s)) {
	case RoleSystem:
		return RoleSystem, nil
	case RoleUser:
		return RoleUser, nil
	case RoleAssistant:
		return RoleAssistant, nil
	}
	return "", fmt.Errorf("unknown message role %q", s)
}

// SessionStatus reflects the most recent structured assistant response with
// status planned or clarification_required. An unsupported_request turn never
// changes it, so there is no persisted "unsupported" session status.
type SessionStatus string

const (
	StatusPlanned               SessionStatus = "planned"
	StatusClarificationRequired SessionStatus = "clarification_required"
)

func ParseSessionStatus(s string) (SessionStatus, error) {
	switch SessionStatus(strings.TrimSpace(s)) {
	case StatusPlanned:
		return StatusPlanned, nil
	case StatusClarificationRequired:
		return StatusClarificationRequired, nil
	}
	return "", fmt.Errorf("unknown session status %q", s)
}

// MessageType classifies a turn's content, independent of its role: the first
// user turn of a session is a goal, later user turns are refinements; assistant
// turns are breakdowns when the model planned, clarifications when it asked
// back, and unsupported when it refused the request.
type MessageType string

const (
	TypeGoal          MessageType = "goal"
	TypeBreakdown     MessageType = "breakdown"
	TypeRefinement    MessageType = "refinement"
	TypeClarification MessageType = "clarification"
	TypeUnsupported   MessageType = "unsupported"
)

func ParseMessageType(s string) (MessageType, error) {
	switch MessageType(strings.TrimSpace(s)) {
	case TypeGoal:
		return TypeGoal, nil
	case TypeBreakdown:
		return TypeBreakdown, nil
	case TypeRefinement:
		return TypeRefinement, nil
	case TypeClarification:
		return TypeClarification, nil
	case TypeUnsupported:
		return TypeUnsupported, nil
	}
	return "", fmt.Errorf("unknown message type %q", s)
}

type Timestamp = time.Time
