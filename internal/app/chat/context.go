package chat

import (
	"context"

	"github.com/lockedin/taskplan-agent/internal/domain"
)

// buildPrompt assembles the bounded context window for one completion call:
// the most recent contextWindow messages of the session in creation order,
// prefixed with the synthetic system turn. The window bounds prompt size while
// keeping recency-biased context; its size is engine policy, not a caller knob.
//
// Each stored message contributes one turn with its stored role and raw
// content. Assistant turns therefore replay the model's own unparsed prior
// output; an awkwardly formatted (but valid) prior answer degrades later turns,
// which is inherent to keeping the raw text as the audit trail.
func (s *Service) buildPrompt(ctx context.Context, sessionID domain.SessionID) ([]domain.ChatTurn, error) {
	history, err := s.messageStore.ListMessagesBySession(ctx, sessionID, s.policy.ContextWindow)
	if err != nil {
		return nil, err
	}

	turns := make([]domain.ChatTurn, 0, len(history)+1)
	turns = append(turns, domain.ChatTurn{
		Role:    domain.RoleSystem,
		Content: systemPrompt,
	})

	for _, m := range history {
		// The engine never persists system rows; skip any that show up anyway
		// so the fixed instruction turn stays the only system voice.
		if m.Role == domain.RoleSystem {
			continue
		}
		turns = append(turns, domain.ChatTurn{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	return turns, nil
}
