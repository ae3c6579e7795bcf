package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pet-donor-connect/internal/domain/connections"
)

type connectionRepo struct {
	mu   sync.RWMutex
	byID map[string]connections.ConnectionRequest
}

func NewConnectionRepo() connections.Repository {
	return &connectionRepo{
		byID: make(map[string]connections.ConnectionRequest),
	}
}

func (r *connectionRepo) Create(ctx context.Context, cr connections.ConnectionRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(cr.ID) == "" {
		return errors.New("connection request id required")
	}
	if _, exists := r.byID[cr.ID]; exists {
		return errors.New("connection request already exists")
	}
	// Unicidad del pending por par dirigido: espejo del UNIQUE parcial
	// de postgres, última defensa detrás del lock del service.
	if cr.Status == connections.StatusPending {
		for _, other := range r.byID {
			if other.SenderUserID == cr.SenderUserID &&
				other.RecipientUserID == cr.RecipientUserID &&
				other.Status == connections.StatusPending {
				return errors.New("pending request already exists for pair")
			}
		}
	}
	r.byID[cr.ID] = cr
	return nil
}

func (r *connectionRepo) Update(ctx context.Context, cr connections.ConnectionRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[cr.ID]; !exists {
		return connections.ErrNotFound
	}
	r.byID[cr.ID] = cr
	return nil
}

func (r *connectionRepo) ListBySender(ctx context.Context, senderUserID string) ([]connections.ConnectionRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]connections.ConnectionRequest, 0)
	for _, cr := range r.byID {
		if cr.SenderUserID == senderUserID {
			out = append(out, cr)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *connectionRepo) GetPending(ctx context.Context, senderUserID, recipientUserID string) (connections.ConnectionRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, cr := range r.byID {
		if cr.SenderUserID == senderUserID &&
			cr.RecipientUserID == recipientUserID &&
			cr.Status == connections.StatusPending {
			return cr, nil
		}
	}
	return connections.ConnectionRequest{}, connections.ErrNotFound
}
