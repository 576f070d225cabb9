package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/lockedin/taskplan-agent/internal/domain"
)

// Store implements SessionStore, MessageStore and PlanStore on Firestore.
// Messages live in a subcollection of their session; plans are keyed by
// session id.
type Store struct {
	client *firestore.Client
}

func NewStore(ctx context.Context, projectID string) (*Store, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID is required for Firestore store")
	}

	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}

	return &Store{client: client}, nil
}

// ─────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────

func (s *Store) sessionsCol() *firestore.CollectionRef {
	return s.client.Collection("chat_sessions")
}

func (s *Store) sessionDocRef(id domain.SessionID) *firestore.DocumentRef {
	return s.sessionsCol().Doc(string(id))
}

func (s *Store) messagesCol(sessionID domain.SessionID) *firestore.CollectionRef {
	return s.sessionDocRef(sessionID).Collection("messages")
}

func (s *Store) plansCol() *firestore.CollectionRef {
	return s.client.Collection("plans")
}

// ─────────────────────────────────────────
// Firestore Types
// ─────────────────────────────────────────

type sessionDoc struct {
	UserID    string    `firestore:"user_id"`
	Title     string    `firestore:"title"`
	Status    string    `firestore:"status"`
	CreatedAt time.Time `firestore:"created_at"`
	UpdatedAt time.Time `firestore:"updated_at"`
}

type messageDoc struct {
	SessionID string    `firestore:"session_id"`
	Role      string    `firestore:"role"`
	Type      string    `firestore:"type"`
	Content   string    `firestore:"content"`
	CreatedAt time.Time `firestore:"created_at"`
}

type planDoc struct {
	SessionID string        `firestore:"session_id"`
	UserID    string        `firestore:"user_id"`
	Steps     []planStepDoc `firestore:"steps"`
	CreatedAt time.Time     `firestore:"created_at"`
	UpdatedAt time.Time     `firestore:"updated_at"`
}

type planStepDoc struct {
	Number      int    `firestore:"step"`
	Title       string `firestore:"title"`
	Description string `firestore:"description"`
}

func (d sessionDoc) toDomain(id domain.SessionID) (*domain.Session, error) {
	sessionStatus, err := domain.ParseSessionStatus(d.Status)
	if err != nil {
		return nil, fmt.Errorf("decode sessionDoc %s: %w", id, err)
	}

	return &domain.Session{
		ID:        id,
		UserID:    domain.UserID(d.UserID),
		Title:     d.Title,
		Status:    sessionStatus,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}, nil
}

func (d messageDoc) toDomain(id domain.MessageID) (*domain.Message, error) {
	role, err := domain.ParseRole(d.Role)
	if err != nil {
		return nil, fmt.Errorf("decode messageDoc %s: %w", id, err)
	}
	msgType, err := domain.ParseMessageType(d.Type)
	if err != nil {
		return nil, fmt.Errorf("decode messageDoc %s: %w", id, err)
	}

	return &domain.Message{
		ID:        id,
		SessionID: domain.SessionID(d.SessionID),
		Role:      role,
		Type:      msgType,
		Content:   d.Content,
		CreatedAt: d.CreatedAt,
	}, nil
}

// ─────────────────────────────────────────
// SessionStore implementation
// ─────────────────────────────────────────

func (s *Store) CreateSession(ctx context.Context, session *domain.Session) error {
	doc := sessionDoc{
		UserID:    string(session.UserID),
		Title:     session.Title,
		Status:    string(session.Status),
		CreatedAt: session.CreatedAt,
		UpdatedAt: session.UpdatedAt,
	}

	_, err := s.sessionDocRef(session.ID).Create(ctx, doc)
	if err != nil {
		return fmt.Errorf("firestore CreateSession: %w", err)
	}
	return nil
}

func (s *Store) FindSession(
	ctx context.Context,
	id domain.SessionID,
	userID domain.UserID,
) (*domain.Session, error) {
	snap, err := s.sessionDocRef(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("firestore FindSession: %w", err)
	}

	var doc sessionDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("firestore FindSession decode: %w", err)
	}

	// Ownership check: a foreign session is indistinguishable from a missing one.
	if doc.UserID != string(userID) {
		return nil, domain.ErrNotFound
	}

	return doc.toDomain(id)
}

func (s *Store) UpdateSessionStatus(
	ctx context.Context,
	id domain.SessionID,
	sessionStatus domain.SessionStatus,
	updatedAt domain.Timestamp,
) error {
	_, err := s.sessionDocRef(id).Update(ctx, []firestore.Update{
		{Path: "status", Value: string(sessionStatus)},
		{Path: "updated_at", Value: updatedAt},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return domain.ErrNotFound
		}
		return fmt.Errorf("firestore UpdateSessionStatus: %w", err)
	}
	return nil
}

func (s *Store) ListSessionsByUser(
	ctx context.Context,
	userID domain.UserID,
) ([]*domain.Session, error) {
	q := s.sessionsCol().
		Where("user_id", "==", string(userID)).
		OrderBy("updated_at", firestore.Desc)

	iter := q.Documents(ctx)
	defer iter.Stop()

	var out []*domain.Session
	for {
		snap, err := iter.Next()
		if err != nil {
			if err == iterator.Done {
				break
			}
			return nil, fmt.Errorf("firestore ListSessionsByUser: %w", err)
		}

		var doc sessionDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decode sessionDoc: %w", err)
		}

		session, err := doc.toDomain(domain.SessionID(snap.Ref.ID))
		if err != nil {
			return nil, err
		}
		out = append(out, session)
	}
	return out, nil
}

// ─────────────────────────────────────────
// MessageStore implementation
// ─────────────────────────────────────────

func (s *Store) AppendMessage(ctx context.Context, msg *domain.Message) error {
	doc := messageDoc{
		SessionID: string(msg.SessionID),
		Role:      string(msg.Role),
		Type:      string(msg.Type),
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt,
	}

	_, err := s.messagesCol(msg.SessionID).Doc(string(msg.ID)).Set(ctx, doc)
	if err != nil {
		return fmt.Errorf("firestore AppendMessage: %w", err)
	}
	return nil
}

// ListMessagesBySession returns the transcript in creation order. A limit > 0
// queries the most recent limit messages descending and reverses them back to
// chronological order.
func (s *Store) ListMessagesBySession(
	ctx context.Context,
	sessionID domain.SessionID,
	limit int,
) ([]*domain.Message, error) {
	q := s.messagesCol(sessionID).OrderBy("created_at", firestore.Asc)
	if limit > 0 {
		q = s.messagesCol(sessionID).OrderBy("created_at", firestore.Desc).Limit(limit)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	var out []*domain.Message
	for {
		snap, err := iter.Next()
		if err != nil {
			if err == iterator.Done {
				break
			}
			return nil, fmt.Errorf("firestore ListMessagesBySession: %w", err)
		}

		var doc messageDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decode messageDoc: %w", err)
		}

		msg, err := doc.toDomain(domain.MessageID(snap.Ref.ID))
		if err != nil {
			return nil, err
		}
		out = append(out, msg)
	}

	if limit > 0 {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}

	return out, nil
}

// ─────────────────────────────────────────
// PlanStore implementation
// ─────────────────────────────────────────

func (s *Store) SavePlan(ctx context.Context, plan *domain.Plan) error {
	steps := make([]planStepDoc, 0, len(plan.Steps))
	for _, st := range plan.Steps {
		steps = append(steps, planStepDoc{
			Number:      st.Number,
			Title:       st.Title,
			Description: st.Description,
		})
	}

	doc := planDoc{
		SessionID: string(plan.SessionID),
		UserID:    string(plan.UserID),
		Steps:     steps,
		CreatedAt: plan.CreatedAt,
		UpdatedAt: plan.UpdatedAt,
	}

	_, err := s.plansCol().Doc(string(plan.SessionID)).Set(ctx, doc)
	if err != nil {
		return fmt.Errorf("firestore SavePlan: %w", err)
	}
	return nil
}

func (s *Store) GetPlanBySession(
	ctx context.Context,
	sessionID domain.SessionID,
) (*domain.Plan, error) {
	snap, err := s.plansCol().Doc(string(sessionID)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("firestore GetPlanBySession: %w", err)
	}

	var doc planDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("firestore GetPlanBySession decode: %w", err)
	}

	steps := make([]domain.PlanStep, 0, len(doc.Steps))
	for _, st := range doc.Steps {
		steps = append(steps, domain.PlanStep{
			Number:      st.Number,
			Title:       st.Title,
			Description: st.Description,
		})
	}

	return &domain.Plan{
		ID:        domain.PlanID(snap.Ref.ID),
		SessionID: sessionID,
		UserID:    domain.UserID(doc.UserID),
		Steps:     steps,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}, nil
}
