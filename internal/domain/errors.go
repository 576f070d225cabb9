package domain

import (
	"errors"
)

// Failure taxonomy of the conversation engine. Callers match by kind with
// errors.Is / errors.As, never by message text. Every failure is local to a
// single turn; nothing is retried inside the engine.

var (
	// ErrNotFound covers an unknown sessionId and a session owned by a
	// different user; ownership is enforced by query predicate, so the two
	// cases are deliberately indistinguishable.
	ErrNotFound = errors.New("chat session not found")

	// ErrOffTopic marks input classified as unrelated to task breakdown.
	// Nothing was persisted and no model call was made.
	ErrOffTopic = errors.New("message is not related to task breakdown")

	// ErrEmptyCompletion marks a completion call that returned no text.
	ErrEmptyCompletion = errors.New("completion service returned empty response")
)

// ValidationError reports bad user input: missing, empty after trim, or over
// the length ceiling. The reason is safe to surface to the user.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// UpstreamError wraps a completion-service failure. The user's turn is already
// durable when this is returned, so the caller may retry the same turn.
type UpstreamError struct {
	Err error
}

func (e *UpstreamError) Error() string { return "completion service failed: " + e.Err.Error() }
func (e *UpstreamError) Unwrap() error { return e.Err }

// MalformedResponseError reports model output that could not be coerced into
// the structured contract even after extraction repair.
type MalformedResponseError struct {
	Reason string
}

func (e *MalformedResponseError) Error() string { return "malformed model response: " + e.Reason }
