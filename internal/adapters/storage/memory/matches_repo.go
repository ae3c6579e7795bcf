package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pet-donor-connect/internal/domain/matches"
)

type matchRepo struct {
	mu     sync.RWMutex
	byID   map[string]matches.Match
	byPair map[string]string // pairKey canónica -> matchID
}

func NewMatchRepo() matches.Repository {
	return &matchRepo{
		byID:   make(map[string]matches.Match),
		byPair: make(map[string]string),
	}
}

func (r *matchRepo) Create(ctx context.Context, m matches.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(m.ID) == "" {
		return errors.New("match id required")
	}

	key := matches.PairKey(m.UserAID, m.UserBID)
	// Unicidad por par: espejo del UNIQUE(pair_key) de postgres.
	if _, exists := r.byPair[key]; exists {
		return errors.New("match already exists for pair")
	}

	r.byID[m.ID] = m
	r.byPair[key] = m.ID
	return nil
}

func (r *matchRepo) GetByID(ctx context.Context, id string) (matches.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.byID[id]
	if !ok {
		return matches.Match{}, matches.ErrNotFound
	}
	return m, nil
}

func (r *matchRepo) GetByPairKey(ctx context.Context, pairKey string) (matches.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byPair[pairKey]
	if !ok {
		return matches.Match{}, matches.ErrNotFound
	}
	return r.byID[id], nil
}

func (r *matchRepo) ListByUser(ctx context.Context, userID string) ([]matches.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]matches.Match, 0)
	for _, m := range r.byID {
		if m.Contains(userID) {
			out = append(out, m)
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

func (r *matchRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.byID[id]
	if !ok {
		return matches.ErrNotFound
	}
	delete(r.byID, id)
	delete(r.byPair, matches.PairKey(m.UserAID, m.UserBID))
	return nil
}
