package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/lockedin/taskplan-agent/internal/domain"
)

type SessionStore struct {
	mu       sync.RWMutex
	sessions map[domain.SessionID]*domain.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[domain.SessionID]*domain.Session),
	}
}

func (s *SessionStore) CreateSession(ctx context.Context, session *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[session.ID]; exists {
		return errors.New("session already exists")
	}

	stored := *session
	s.sessions[session.ID] = &stored
	return nil
}

// FindSession scopes by owner: a session held by another user is reported as
// not found.
func (s *SessionStore) FindSession(
	ctx context.Context,
	id domain.SessionID,
	userID domain.UserID,
) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok || sess.UserID != userID {
		return nil, domain.ErrNotFound
	}

	out := *sess
	return &out, nil
}

func (s *SessionStore) UpdateSessionStatus(
	ctx context.Context,
	id domain.SessionID,
	status domain.SessionStatus,
	updatedAt domain.Timestamp,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return domain.ErrNotFound
	}

	sess.Status = status
	sess.UpdatedAt = updatedAt
	return nil
}

func (s *SessionStore) ListSessionsByUser(
	ctx context.Context,
	userID domain.UserID,
) ([]*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.Session
	for _, sess := range s.sessions {
		if sess.UserID == userID {
			out := *sess
			result = append(result, &out)
		}
	}

	// Most recently updated first.
	sort.Slice(result, func(i, j int) bool {
		return result[i].UpdatedAt.After(result[j].UpdatedAt)
	})

	return result, nil
}
