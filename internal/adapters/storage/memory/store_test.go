package memory_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lockedin/taskplan-agent/internal/adapters/storage/memory"
	"github.com/lockedin/taskplan-agent/internal/domain"
)

func TestMessageOrderAndLimit(t *testing.T) {
	ctx := context.Background()
	store := memory.NewMessageStore()

	base := time.Now()
	for i := 0; i < 15; i++ {
		err := store.AppendMessage(ctx, &domain.Message{
			ID:        domain.MessageID(fmt.Sprintf("m%02d", i)),
			SessionID: "s1",
			Role:      domain.RoleUser,
			Type:      domain.TypeRefinement,
			Content:   fmt.Sprintf("message %d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		})
		if err != nil {
			t.Fatalf("AppendMessage: %v", err)
		}
	}

	all, err := store.ListMessagesBySession(ctx, "s1", 0)
	if err != nil {
		t.Fatalf("ListMessagesBySession: %v", err)
	}
	if len(all) != 15 {
		t.Fatalf("expected 15 messages, got %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i].CreatedAt.Before(all[i-1].CreatedAt) {
			t.Fatalf("messages out of creation order at %d", i)
		}
	}

	recent, err := store.ListMessagesBySession(ctx, "s1", 10)
	if err != nil {
		t.Fatalf("ListMessagesBySession limited: %v", err)
	}
	if len(recent) != 10 {
		t.Fatalf("expected 10 messages, got %d", len(recent))
	}
	if recent[0].Content != "message 5" || recent[9].Content != "message 14" {
		t.Fatalf("limit must keep the most recent tail, got %q..%q", recent[0].Content, recent[9].Content)
	}
}

func TestFindSessionScopedByOwner(t *testing.T) {
	ctx := context.Background()
	store := memory.NewSessionStore()

	now := time.Now()
	err := store.CreateSession(ctx, &domain.Session{
		ID:        "s1",
		UserID:    "user-1",
		Title:     "Plan a move",
		Status:    domain.StatusPlanned,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	if _, err := store.FindSession(ctx, "s1", "user-1"); err != nil {
		t.Fatalf("owner lookup failed: %v", err)
	}
	if _, err := store.FindSession(ctx, "s1", "user-2"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign owner, got %v", err)
	}
	if _, err := store.FindSession(ctx, "missing", "user-1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown id, got %v", err)
	}
}

func TestUpdateSessionStatus(t *testing.T) {
	ctx := context.Background()
	store := memory.NewSessionStore()

	now := time.Now()
	_ = store.CreateSession(ctx, &domain.Session{
		ID:        "s1",
		UserID:    "user-1",
		Status:    domain.StatusPlanned,
		CreatedAt: now,
		UpdatedAt: now,
	})

	later := now.Add(time.Minute)
	if err := store.UpdateSessionStatus(ctx, "s1", domain.StatusClarificationRequired, later); err != nil {
		t.Fatalf("UpdateSessionStatus: %v", err)
	}

	sess, _ := store.FindSession(ctx, "s1", "user-1")
	if sess.Status != domain.StatusClarificationRequired || !sess.UpdatedAt.Equal(later) {
		t.Fatalf("unexpected session after update: %+v", sess)
	}

	if err := store.UpdateSessionStatus(ctx, "missing", domain.StatusPlanned, later); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPlanOverwriteKeepsCreatedAt(t *testing.T) {
	ctx := context.Background()
	store := memory.NewPlanStore()

	created := time.Now()
	_ = store.SavePlan(ctx, &domain.Plan{
		ID:        "p1",
		SessionID: "s1",
		UserID:    "user-1",
		Steps:     []domain.PlanStep{{Number: 1, Title: "a", Description: "b"}},
		CreatedAt: created,
		UpdatedAt: created,
	})

	later := created.Add(time.Hour)
	_ = store.SavePlan(ctx, &domain.Plan{
		ID:        "p2",
		SessionID: "s1",
		UserID:    "user-1",
		Steps:     []domain.PlanStep{{Number: 1, Title: "c", Description: "d"}},
		CreatedAt: later,
		UpdatedAt: later,
	})

	plan, err := store.GetPlanBySession(ctx, "s1")
	if err != nil {
		t.Fatalf("GetPlanBySession: %v", err)
	}
	if !plan.CreatedAt.Equal(created) || !plan.UpdatedAt.Equal(later) {
		t.Fatalf("overwrite should keep CreatedAt: %+v", plan)
	}
	if plan.Steps[0].Title != "c" {
		t.Fatalf("expected overwritten steps, got %+v", plan.Steps)
	}

	if _, err := store.GetPlanBySession(ctx, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
