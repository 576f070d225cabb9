// Package contract defines the structured JSON contract the model must
// produce, and the parse/repair logic that coerces raw model output into it.
package contract

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lockedin/taskplan-agent/internal/domain"
)

// ResponseStatus is the tag of the model's structured response.
type ResponseStatus string

const (
	StatusPlanned               ResponseStatus = "planned"
	StatusClarificationRequired ResponseStatus = "clarification_required"
	StatusUnsupportedRequest    ResponseStatus = "unsupported_request"
)

// Step is one ordered, actionable step of a breakdown.
type Step struct {
	Number      int    `json:"step"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// TaskResponse is the validated form of the model's output. Exactly one shape
// is valid per status: planned carries a non-empty step list,
// clarification_required carries a non-empty question, unsupported_request
// carries nothing else. Parse enforces this; constructing a TaskResponse any
// other way is a bug.
type TaskResponse struct {
	Status                ResponseStatus `json:"status"`
	Steps                 []Step         `json:"steps,omitempty"`
	ClarificationQuestion string         `json:"clarification_question,omitempty"`
}

// wireResponse mirrors the raw JSON loosely, so shape violations are caught by
// validation rather than by the decoder picking zero values silently.
type wireResponse struct {
	Status                string     `json:"status"`
	Steps                 []wireStep `json:"steps"`
	ClarificationQuestion *string    `json:"clarification_question"`
}

type wireStep struct {
	Number      json.RawMessage `json:"step"`
	Title       json.RawMessage `json:"title"`
	Description json.RawMessage `json:"description"`
}

// decode reports whether the step has a numeric index and string title and
// description, mirroring the contract's per-field type requirements.
func (w wireStep) decode() (Step, bool) {
	var number float64
	var title, description string

	if w.Number == nil || json.Unmarshal(w.Number, &number) != nil {
		return Step{}, false
	}
	if w.Title == nil || json.Unmarshal(w.Title, &title) != nil {
		return Step{}, false
	}
	if w.Description == nil || json.Unmarshal(w.Description, &description) != nil {
		return Step{}, false
	}

	return Step{Number: int(number), Title: title, Description: description}, true
}

// Parse coerces raw model output into a TaskResponse. It is a pure function:
// all persistence happens in the caller after a successful parse.
//
// Strategy: strict parse of the whole text first; on failure, extraction
// repair (first '{' to last '}') for models that wrap JSON in prose; then
// shape validation per status. Irrecoverable text fails with
// *domain.MalformedResponseError.
func Parse(raw string) (*TaskResponse, error) {
	var wire wireResponse

	if err := json.Unmarshal([]byte(raw), &wire); err != nil {
		repaired, ok := extractObject(raw)
		if !ok {
			return nil, &domain.MalformedResponseError{Reason: "response is not valid JSON"}
		}
		if err := json.Unmarshal([]byte(repaired), &wire); err != nil {
			return nil, &domain.MalformedResponseError{Reason: "response is not valid JSON"}
		}
	}

	return validate(wire)
}

// extractObject locates the outermost brace-delimited slice of the text.
func extractObject(raw string) (string, bool) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")

	if start == -1 || end == -1 || end <= start {
		return "", false
	}

	return raw[start : end+1], true
}

func validate(wire wireResponse) (*TaskResponse, error) {
	status := ResponseStatus(wire.Status)

	switch status {
	case StatusPlanned, StatusClarificationRequired, StatusUnsupportedRequest:
	default:
		// No silent coercion to a default status.
		return nil, &domain.MalformedResponseError{
			Reason: fmt.Sprintf("invalid status %q", wire.Status),
		}
	}

	resp := &TaskResponse{Status: status}

	switch status {
	case StatusPlanned:
		if len(wire.Steps) == 0 {
			return nil, &domain.MalformedResponseError{
				Reason: "planned response must include steps",
			}
		}
		for i, s := range wire.Steps {
			// A single bad step fails the whole response.
			step, ok := s.decode()
			if !ok {
				return nil, &domain.MalformedResponseError{
					Reason: fmt.Sprintf("invalid step format at index %d", i),
				}
			}
			resp.Steps = append(resp.Steps, step)
		}

	case StatusClarificationRequired:
		if wire.ClarificationQuestion == nil || *wire.ClarificationQuestion == "" {
			return nil, &domain.MalformedResponseError{
				Reason: "clarification_required response must include a clarification_question",
			}
		}
		resp.ClarificationQuestion = *wire.ClarificationQuestion

	case StatusUnsupportedRequest:
		// No further fields required.
	}

	return resp, nil
}
