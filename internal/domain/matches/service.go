package matches

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"pet-donor-connect/internal/domain/notifications"
	"pet-donor-connect/internal/domain/pets"
	"pet-donor-connect/internal/domain/users"
	"pet-donor-connect/internal/observability"
	"pet-donor-connect/internal/platform/keyedmutex"
	"pet-donor-connect/internal/platform/logger"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrAlreadyMatched = errors.New("these users are already matched")
	ErrNotFound       = errors.New("not found")
	ErrForbidden      = errors.New("forbidden")
)

// ProfileDirectory resuelve el resumen de perfil del counterpart.
// Interface local para no acoplar este módulo al storage de users.
type ProfileDirectory interface {
	GetByID(ctx context.Context, id string) (users.User, error)
}

// PetLister expone las mascotas del counterpart (lo satisface pets.Service).
type PetLister interface {
	ListByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error)
}

// RequestTracker cierra la solicitud pendiente al confirmarse el match
// (lo satisface connections.Service). Best-effort.
type RequestTracker interface {
	MarkConfirmed(ctx context.Context, senderUserID, recipientUserID string) error
}

// MatchDetail es la vista de lectura de un match: el counterpart y sus
// mascotas, desde el punto de vista del usuario que consulta.
type MatchDetail struct {
	MatchID     string
	CreatedAt   time.Time
	Counterpart users.User
	Pets        []pets.Pet
}

type Service struct {
	repo     Repository
	inbox    *notifications.Service
	requests RequestTracker
	profiles ProfileDirectory
	pets     PetLister
	log      logger.Logger

	pairs *keyedmutex.M
	now   func() time.Time
}

func NewService(repo Repository, inbox *notifications.Service, requests RequestTracker, profiles ProfileDirectory, petLister PetLister, log logger.Logger) *Service {
	return &Service{
		repo:     repo,
		inbox:    inbox,
		requests: requests,
		profiles: profiles,
		pets:     petLister,
		log:      log,
		pairs:    keyedmutex.New(),
		now:      time.Now,
	}
}

// Confirm convierte el interés pendiente de senderUserID en un Match
// simétrico con confirmingUserID. Máquina de estados por par no ordenado:
// unconnected -> requested (implícito en la solicitud) -> matched (terminal).
// Idempotente contra re-confirmación: si el par ya tiene Match devuelve
// ErrAlreadyMatched sin duplicar registro ni re-notificar.
func (s *Service) Confirm(ctx context.Context, confirmingUserID, senderUserID string) (Match, error) {
	confirmingUserID = strings.TrimSpace(confirmingUserID)
	senderUserID = strings.TrimSpace(senderUserID)

	if confirmingUserID == "" || senderUserID == "" {
		return Match{}, ErrInvalidInput
	}
	if confirmingUserID == senderUserID {
		return Match{}, ErrInvalidInput
	}

	key := PairKey(confirmingUserID, senderUserID)

	// Sección crítica por par: check de existencia + creación como unidad.
	unlock := s.pairs.Lock(key)
	defer unlock()

	switch _, err := s.repo.GetByPairKey(ctx, key); {
	case err == nil:
		return Match{}, ErrAlreadyMatched
	case !errors.Is(err, ErrNotFound):
		// Fallo del storage: no se puede afirmar que el par no existe.
		return Match{}, err
	}

	a, b := NormalizePair(confirmingUserID, senderUserID)
	m := Match{
		ID:        uuid.NewString(),
		UserAID:   a,
		UserBID:   b,
		CreatedAt: s.now(),
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return Match{}, err
	}

	// Cierra la solicitud pendiente sender->confirmer. Best-effort: el
	// Match ya es durable, un fallo aquí no lo revierte.
	if err := s.requests.MarkConfirmed(ctx, senderUserID, confirmingUserID); err != nil {
		s.log.Warn("mark request confirmed failed", map[string]any{
			"pair_key": key,
			"error":    err.Error(),
		})
	}

	msg := fmt.Sprintf("User %s accepted your connection request", confirmingUserID)
	if _, err := s.inbox.Post(ctx, senderUserID, confirmingUserID, msg); err != nil {
		s.log.Warn("confirmation notification failed", map[string]any{
			"pair_key": key,
			"error":    err.Error(),
		})
	}

	observability.MatchesConfirmedTotal.Inc()
	return m, nil
}

// ListForUser devuelve los matches del usuario con el detalle del
// counterpart (perfil + mascotas). Orden: iteración estable del store.
func (s *Service) ListForUser(ctx context.Context, userID string) ([]MatchDetail, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrInvalidInput
	}

	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]MatchDetail, 0, len(items))
	for _, m := range items {
		counterpartID := m.Counterpart(userID)

		u, err := s.profiles.GetByID(ctx, counterpartID)
		if err != nil {
			// Perfil huérfano: el match se muestra igual, con el ID pelado.
			u = users.User{ID: counterpartID}
		}

		counterpartPets, err := s.pets.ListByOwner(ctx, counterpartID)
		if err != nil {
			counterpartPets = nil
		}

		out = append(out, MatchDetail{
			MatchID:     m.ID,
			CreatedAt:   m.CreatedAt,
			Counterpart: u,
			Pets:        counterpartPets,
		})
	}

	return out, nil
}

// Remove elimina el Match. Cualquiera de las dos partes puede hacerlo
// unilateralmente y la eliminación es silenciosa: no se notifica al otro
// lado.
func (s *Service) Remove(ctx context.Context, matchID, requestingUserID string) error {
	matchID = strings.TrimSpace(matchID)
	requestingUserID = strings.TrimSpace(requestingUserID)

	if matchID == "" || requestingUserID == "" {
		return ErrInvalidInput
	}

	m, err := s.repo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		// Fallo del storage, no ausencia: se propaga tal cual.
		return err
	}
	if !m.Contains(requestingUserID) {
		return ErrForbidden
	}

	return s.repo.Delete(ctx, matchID)
}
