package notifications

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID map[string]Notification
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Notification{}}
}

func (r *testRepo) Create(ctx context.Context, n Notification) error {
	if n.ID == "" {
		return errors.New("repo: id required")
	}
	if _, ok := r.byID[n.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[n.ID] = n
	return nil
}

func (r *testRepo) ListByRecipient(ctx context.Context, recipientUserID string) ([]Notification, error) {
	out := make([]Notification, 0)
	for _, n := range r.byID {
		if n.RecipientUserID == recipientUserID {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *testRepo) Delete(ctx context.Context, recipientUserID, id string) error {
	if n, ok := r.byID[id]; ok && n.RecipientUserID == recipientUserID {
		delete(r.byID, id)
	}
	return nil
}

func (r *testRepo) DeleteByRecipient(ctx context.Context, recipientUserID string) error {
	for id, n := range r.byID {
		if n.RecipientUserID == recipientUserID {
			delete(r.byID, id)
		}
	}
	return nil
}

// -------------------------
// Tests
// -------------------------

func TestService_Post_AppendsToMailbox(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	now := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	n, err := svc.Post(context.Background(), "recipient-1", "sender-1", "quiere conectar contigo")
	if err != nil {
		t.Fatalf("Post returned error: %v", err)
	}
	if n.ID == "" {
		t.Fatalf("expected generated id")
	}
	if n.CreatedAt != now {
		t.Fatalf("expected CreatedAt to be now")
	}

	items, err := svc.List(context.Background(), "recipient-1")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(items) != 1 || items[0].SenderUserID != "sender-1" {
		t.Fatalf("expected one notification from sender-1, got %#v", items)
	}
}

func TestService_Post_RejectsBlankFields(t *testing.T) {
	svc := NewService(newTestRepo())

	cases := [][3]string{
		{"", "sender-1", "hola"},
		{"recipient-1", "", "hola"},
		{"recipient-1", "sender-1", "  "},
	}
	for _, c := range cases {
		if _, err := svc.Post(context.Background(), c[0], c[1], c[2]); err != ErrInvalidInput {
			t.Fatalf("expected ErrInvalidInput for %v, got %v", c, err)
		}
	}
}

func TestService_List_NewestFirst(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	base := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	for i, msg := range []string{"primera", "segunda", "tercera"} {
		ts := base.Add(time.Duration(i) * time.Minute)
		svc.now = func() time.Time { return ts }
		if _, err := svc.Post(context.Background(), "recipient-1", "sender-1", msg); err != nil {
			t.Fatalf("Post %q error: %v", msg, err)
		}
	}

	items, err := svc.List(context.Background(), "recipient-1")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 notifications, got %d", len(items))
	}
	if items[0].Message != "tercera" || items[2].Message != "primera" {
		t.Fatalf("expected newest-first order, got %q, %q, %q",
			items[0].Message, items[1].Message, items[2].Message)
	}
}

func TestService_Dismiss_IdempotentOnUnknownID(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	n, err := svc.Post(context.Background(), "recipient-1", "sender-1", "hola")
	if err != nil {
		t.Fatalf("Post error: %v", err)
	}

	if err := svc.Dismiss(context.Background(), "recipient-1", n.ID); err != nil {
		t.Fatalf("Dismiss error: %v", err)
	}
	// Segundo dismiss del mismo id: no-op, sin error.
	if err := svc.Dismiss(context.Background(), "recipient-1", n.ID); err != nil {
		t.Fatalf("expected idempotent dismiss, got %v", err)
	}
	// Id nunca existente: igual.
	if err := svc.Dismiss(context.Background(), "recipient-1", "no-such-id"); err != nil {
		t.Fatalf("expected no-op for unknown id, got %v", err)
	}

	items, _ := svc.List(context.Background(), "recipient-1")
	if len(items) != 0 {
		t.Fatalf("expected empty mailbox, got %d items", len(items))
	}
}

func TestService_Dismiss_OnlyTouchesOwnMailbox(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	n, err := svc.Post(context.Background(), "recipient-1", "sender-1", "hola")
	if err != nil {
		t.Fatalf("Post error: %v", err)
	}

	// Otro usuario intenta descartar con un id ajeno: no-op, el buzón
	// del dueño queda intacto.
	if err := svc.Dismiss(context.Background(), "intruder-1", n.ID); err != nil {
		t.Fatalf("Dismiss by non-owner returned error: %v", err)
	}
	items, _ := svc.List(context.Background(), "recipient-1")
	if len(items) != 1 {
		t.Fatalf("expected owner's mailbox untouched, got %d items", len(items))
	}

	// El dueño sí puede.
	if err := svc.Dismiss(context.Background(), "recipient-1", n.ID); err != nil {
		t.Fatalf("Dismiss by owner error: %v", err)
	}
	items, _ = svc.List(context.Background(), "recipient-1")
	if len(items) != 0 {
		t.Fatalf("expected empty mailbox after owner dismiss, got %d", len(items))
	}
}

func TestService_DismissAll_ClearsOnlyThatRecipient(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	_, _ = svc.Post(context.Background(), "recipient-1", "sender-1", "uno")
	_, _ = svc.Post(context.Background(), "recipient-1", "sender-2", "dos")
	_, _ = svc.Post(context.Background(), "recipient-2", "sender-1", "tres")

	if err := svc.DismissAll(context.Background(), "recipient-1"); err != nil {
		t.Fatalf("DismissAll error: %v", err)
	}

	items, _ := svc.List(context.Background(), "recipient-1")
	if len(items) != 0 {
		t.Fatalf("expected recipient-1 mailbox empty, got %d", len(items))
	}
	others, _ := svc.List(context.Background(), "recipient-2")
	if len(others) != 1 {
		t.Fatalf("expected recipient-2 mailbox untouched, got %d", len(others))
	}
}
