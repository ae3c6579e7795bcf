package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pet-donor-connect/internal/domain/notifications"
)

type notificationRepo struct {
	mu   sync.RWMutex
	byID map[string]notifications.Notification
}

func NewNotificationRepo() notifications.Repository {
	return &notificationRepo{
		byID: make(map[string]notifications.Notification),
	}
}

func (r *notificationRepo) Create(ctx context.Context, n notifications.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(n.ID) == "" {
		return errors.New("notification id required")
	}
	if _, exists := r.byID[n.ID]; exists {
		return errors.New("notification already exists")
	}
	r.byID[n.ID] = n
	return nil
}

func (r *notificationRepo) ListByRecipient(ctx context.Context, recipientUserID string) ([]notifications.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]notifications.Notification, 0)
	for _, n := range r.byID {
		if n.RecipientUserID == recipientUserID {
			out = append(out, n)
		}
	}

	// Buzón newest-first; desempate por ID para orden estable.
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *notificationRepo) Delete(ctx context.Context, recipientUserID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// No-op si no existe o pertenece a otro buzón: dismiss es
	// idempotente y solo opera sobre lo propio.
	if n, ok := r.byID[id]; ok && n.RecipientUserID == recipientUserID {
		delete(r.byID, id)
	}
	return nil
}

func (r *notificationRepo) DeleteByRecipient(ctx context.Context, recipientUserID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, n := range r.byID {
		if n.RecipientUserID == recipientUserID {
			delete(r.byID, id)
		}
	}
	return nil
}
