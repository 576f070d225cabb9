package memory

import (
	"context"
	"sync"

	"github.com/lockedin/taskplan-agent/internal/domain"
)

type PlanStore struct {
	mu    sync.RWMutex
	plans map[domain.SessionID]*domain.Plan
}

func NewPlanStore() *PlanStore {
	return &PlanStore{
		plans: make(map[domain.SessionID]*domain.Plan),
	}
}

// SavePlan overwrites the session's current plan. The original creation time
// survives a refinement overwrite.
func (s *PlanStore) SavePlan(ctx context.Context, plan *domain.Plan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *plan
	if prev, ok := s.plans[plan.SessionID]; ok {
		stored.CreatedAt = prev.CreatedAt
	}
	s.plans[plan.SessionID] = &stored
	return nil
}

func (s *PlanStore) GetPlanBySession(
	ctx context.Context,
	sessionID domain.SessionID,
) (*domain.Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	plan, ok := s.plans[sessionID]
	if !ok {
		return nil, domain.ErrNotFound
	}

	out := *plan
	return &out, nil
}
