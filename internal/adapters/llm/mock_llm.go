package llm

import (
	"context"
	"sync"

	"github.com/lockedin/taskplan-agent/internal/domain"
)

// MockCompletion is a scripted completion client for local mode and tests.
// Enqueued responses are returned in order; once the script is exhausted, the
// default canned breakdown is returned.
type MockCompletion struct {
	mu        sync.Mutex
	script    []string
	calls     int
	lastTurns []domain.ChatTurn
}

const defaultMockResponse = `{"status":"planned","steps":[{"step":1,"title":"Clarify the goal","description":"Write down what done looks like."},{"step":2,"title":"Do the first concrete task","description":"Pick the smallest step that moves the goal forward."}]}`

func NewMockCompletion(script ...string) *MockCompletion {
	return &MockCompletion{script: script}
}

// Enqueue appends a scripted response.
func (m *MockCompletion) Enqueue(raw string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.script = append(m.script, raw)
}

// Complete implements domain.CompletionClient.
func (m *MockCompletion) Complete(
	ctx context.Context,
	turns []domain.ChatTurn,
	opts domain.CompletionOptions,
) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	m.lastTurns = append([]domain.ChatTurn(nil), turns...)

	if len(m.script) == 0 {
		return defaultMockResponse, nil
	}

	raw := m.script[0]
	m.script = m.script[1:]
	return raw, nil
}

// Calls reports how many times Complete has been invoked.
func (m *MockCompletion) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// LastTurns returns the prompt of the most recent call.
func (m *MockCompletion) LastTurns() []domain.ChatTurn {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastTurns
}
