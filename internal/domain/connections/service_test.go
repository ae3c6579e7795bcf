package connections

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"pet-donor-connect/internal/domain/notifications"
)

// -------------------------
// Test repos (in-memory)
// -------------------------

type testRepo struct {
	mu   sync.Mutex
	byID map[string]ConnectionRequest
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]ConnectionRequest{}}
}

func (r *testRepo) Create(ctx context.Context, cr ConnectionRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cr.ID == "" {
		return errors.New("repo: id required")
	}
	if _, ok := r.byID[cr.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[cr.ID] = cr
	return nil
}

func (r *testRepo) Update(ctx context.Context, cr ConnectionRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[cr.ID]; !ok {
		return ErrNotFound
	}
	r.byID[cr.ID] = cr
	return nil
}

func (r *testRepo) ListBySender(ctx context.Context, senderUserID string) ([]ConnectionRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]ConnectionRequest, 0)
	for _, cr := range r.byID {
		if cr.SenderUserID == senderUserID {
			out = append(out, cr)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *testRepo) GetPending(ctx context.Context, senderUserID, recipientUserID string) (ConnectionRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, cr := range r.byID {
		if cr.SenderUserID == senderUserID && cr.RecipientUserID == recipientUserID && cr.Status == StatusPending {
			return cr, nil
		}
	}
	return ConnectionRequest{}, ErrNotFound
}

// flakyRepo inyecta un fallo de storage en GetPending.
type flakyRepo struct {
	*testRepo
	getPendingErr error
}

func (r *flakyRepo) GetPending(ctx context.Context, senderUserID, recipientUserID string) (ConnectionRequest, error) {
	if r.getPendingErr != nil {
		return ConnectionRequest{}, r.getPendingErr
	}
	return r.testRepo.GetPending(ctx, senderUserID, recipientUserID)
}

type inboxRepo struct {
	mu   sync.Mutex
	byID map[string]notifications.Notification
}

func newInboxRepo() *inboxRepo {
	return &inboxRepo{byID: map[string]notifications.Notification{}}
}

func (r *inboxRepo) Create(ctx context.Context, n notifications.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[n.ID] = n
	return nil
}

func (r *inboxRepo) ListByRecipient(ctx context.Context, recipientUserID string) ([]notifications.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]notifications.Notification, 0)
	for _, n := range r.byID {
		if n.RecipientUserID == recipientUserID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *inboxRepo) Delete(ctx context.Context, recipientUserID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n, ok := r.byID[id]; ok && n.RecipientUserID == recipientUserID {
		delete(r.byID, id)
	}
	return nil
}

func (r *inboxRepo) DeleteByRecipient(ctx context.Context, recipientUserID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, n := range r.byID {
		if n.RecipientUserID == recipientUserID {
			delete(r.byID, id)
		}
	}
	return nil
}

func newTestService() (*Service, *testRepo, *inboxRepo) {
	repo := newTestRepo()
	inbox := newInboxRepo()
	svc := NewService(repo, notifications.NewService(inbox))
	return svc, repo, inbox
}

// -------------------------
// Tests
// -------------------------

func TestService_Create_NotifiesRecipient(t *testing.T) {
	svc, _, inbox := newTestService()

	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	cr, err := svc.Create(context.Background(), "sender-1", "recipient-1", "pet-1")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if cr.Status != StatusPending {
		t.Fatalf("expected pending, got %s", cr.Status)
	}
	if cr.CreatedAt != now || cr.UpdatedAt != now {
		t.Fatalf("expected CreatedAt/UpdatedAt to be now")
	}

	// Exactamente una notificación para el recipient, nombrando al sender
	// y la mascota.
	items, _ := inbox.ListByRecipient(context.Background(), "recipient-1")
	if len(items) != 1 {
		t.Fatalf("expected exactly 1 notification, got %d", len(items))
	}
	if items[0].SenderUserID != "sender-1" {
		t.Fatalf("expected notification from sender-1, got %s", items[0].SenderUserID)
	}
	if !strings.Contains(items[0].Message, "pet-1") || !strings.Contains(items[0].Message, "sender-1") {
		t.Fatalf("expected message to reference sender and pet, got %q", items[0].Message)
	}
}

func TestService_Create_RejectsSelfConnection(t *testing.T) {
	svc, _, inbox := newTestService()

	_, err := svc.Create(context.Background(), "user-1", "user-1", "pet-1")
	if err != ErrSelfConnection {
		t.Fatalf("expected ErrSelfConnection, got %v", err)
	}

	// Sin cambio de estado: buzón intacto.
	items, _ := inbox.ListByRecipient(context.Background(), "user-1")
	if len(items) != 0 {
		t.Fatalf("expected no notifications after rejected request, got %d", len(items))
	}
}

func TestService_Create_RejectsDuplicatePending_PerPairNotPerPet(t *testing.T) {
	svc, _, inbox := newTestService()

	if _, err := svc.Create(context.Background(), "sender-1", "recipient-1", "pet-1"); err != nil {
		t.Fatalf("Create #1 error: %v", err)
	}

	// Misma mascota: duplicado.
	if _, err := svc.Create(context.Background(), "sender-1", "recipient-1", "pet-1"); err != ErrDuplicateRequest {
		t.Fatalf("expected ErrDuplicateRequest, got %v", err)
	}
	// Otra mascota, mismo par: también duplicado (dedup por par).
	if _, err := svc.Create(context.Background(), "sender-1", "recipient-1", "pet-2"); err != ErrDuplicateRequest {
		t.Fatalf("expected ErrDuplicateRequest for same pair other pet, got %v", err)
	}
	// Dirección inversa: permitido.
	if _, err := svc.Create(context.Background(), "recipient-1", "sender-1", "pet-2"); err != nil {
		t.Fatalf("expected reverse-direction request allowed, got %v", err)
	}

	items, _ := inbox.ListByRecipient(context.Background(), "recipient-1")
	if len(items) != 1 {
		t.Fatalf("expected single notification after duplicates rejected, got %d", len(items))
	}
}

func TestService_MarkConfirmed_AllowsNewRequestAfterwards(t *testing.T) {
	svc, repo, _ := newTestService()

	cr, err := svc.Create(context.Background(), "sender-1", "recipient-1", "pet-1")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if err := svc.MarkConfirmed(context.Background(), "sender-1", "recipient-1"); err != nil {
		t.Fatalf("MarkConfirmed error: %v", err)
	}
	if got := repo.byID[cr.ID].Status; got != StatusConfirmed {
		t.Fatalf("expected confirmed, got %s", got)
	}

	// Sin pending para el par: MarkConfirmed es no-op, no error.
	if err := svc.MarkConfirmed(context.Background(), "sender-1", "recipient-1"); err != nil {
		t.Fatalf("expected no-op MarkConfirmed, got %v", err)
	}

	// El par ya no tiene pending: se puede abrir una solicitud nueva.
	if _, err := svc.Create(context.Background(), "sender-1", "recipient-1", "pet-3"); err != nil {
		t.Fatalf("expected new request after confirmation, got %v", err)
	}
}

func TestService_ListBySender(t *testing.T) {
	svc, _, _ := newTestService()

	base := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }
	_, _ = svc.Create(context.Background(), "sender-1", "recipient-1", "pet-1")
	svc.now = func() time.Time { return base.Add(time.Minute) }
	_, _ = svc.Create(context.Background(), "sender-1", "recipient-2", "pet-2")
	_, _ = svc.Create(context.Background(), "sender-2", "recipient-1", "pet-1")

	items, err := svc.ListBySender(context.Background(), "sender-1")
	if err != nil {
		t.Fatalf("ListBySender error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 sent requests, got %d", len(items))
	}
	if items[0].RecipientUserID != "recipient-1" || items[1].RecipientUserID != "recipient-2" {
		t.Fatalf("expected stable order by creation, got %#v", items)
	}
}

func TestService_Create_ConcurrentSamePair_SingleRequest(t *testing.T) {
	svc, repo, inbox := newTestService()

	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Create(context.Background(), "sender-1", "recipient-1", "pet-1")
		}(i)
	}
	wg.Wait()

	okCount := 0
	for _, err := range errs {
		switch err {
		case nil:
			okCount++
		case ErrDuplicateRequest:
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if okCount != 1 {
		t.Fatalf("expected exactly 1 successful create, got %d", okCount)
	}
	if len(repo.byID) != 1 {
		t.Fatalf("expected exactly 1 pending request, got %d", len(repo.byID))
	}
	items, _ := inbox.ListByRecipient(context.Background(), "recipient-1")
	if len(items) != 1 {
		t.Fatalf("expected exactly 1 notification, got %d", len(items))
	}
}

func TestService_Create_SurfacesRepoFailure(t *testing.T) {
	repo := newTestRepo()
	inbox := newInboxRepo()
	boom := errors.New("connection refused")
	flaky := &flakyRepo{testRepo: repo, getPendingErr: boom}
	svc := NewService(flaky, notifications.NewService(inbox))

	// Un fallo de storage en la consulta de duplicados no equivale a
	// "no hay pending": se propaga sin crear nada.
	_, err := svc.Create(context.Background(), "sender-1", "recipient-1", "pet-1")
	if !errors.Is(err, boom) {
		t.Fatalf("expected repo failure to surface, got %v", err)
	}
	if len(repo.byID) != 0 {
		t.Fatalf("expected no request persisted after repo failure, got %d", len(repo.byID))
	}
	items, _ := inbox.ListByRecipient(context.Background(), "recipient-1")
	if len(items) != 0 {
		t.Fatalf("expected no notification after repo failure, got %d", len(items))
	}
}
