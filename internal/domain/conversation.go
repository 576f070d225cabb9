package domain

// Message is one turn in a session's transcript. For assistant turns Content
// holds the raw model output string, not a re-serialized form: the raw text is
// the audit trail and is replayed verbatim into later prompts.
type Message struct {
	ID        MessageID
	SessionID SessionID
	Role      Role
	Type      MessageType
	Content   string
	CreatedAt Timestamp
}

// Session is a persisted, ongoing goal-breakdown conversation owned by one
// user. A session exclusively owns its messages; it is never deleted by the
// engine.
type Session struct {
	ID        SessionID
	UserID    UserID
	Title     string
	Status    SessionStatus
	CreatedAt Timestamp
	UpdatedAt Timestamp
}
