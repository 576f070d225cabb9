package domain

// PlanID identifies a plan snapshot
type PlanID string

// PlanStep is a single ordered, actionable step of a breakdown.
type PlanStep struct {
	Number      int    `json:"step"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Plan is the session's current step list: the most recent breakdown the
// model produced with status planned. Refinement turns overwrite it. The plan
// records what was produced, nothing about execution.
type Plan struct {
	ID        PlanID
	SessionID SessionID
	UserID    UserID

	Steps []PlanStep

	CreatedAt Timestamp
	UpdatedAt Timestamp
}
