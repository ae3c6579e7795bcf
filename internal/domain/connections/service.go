package connections

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"pet-donor-connect/internal/domain/notifications"
	"pet-donor-connect/internal/observability"
	"pet-donor-connect/internal/platform/keyedmutex"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrSelfConnection   = errors.New("cannot send a connection request to yourself")
	ErrDuplicateRequest = errors.New("a pending request to this user already exists")
	// ErrNotFound lo devuelven los repos cuando el par no tiene
	// solicitud pendiente; cualquier otro error es fallo del storage.
	ErrNotFound = errors.New("connection request not found")
)

type Service struct {
	repo  Repository
	inbox *notifications.Service
	pairs *keyedmutex.M
	now   func() time.Time
}

func NewService(repo Repository, inbox *notifications.Service) *Service {
	return &Service{
		repo:  repo,
		inbox: inbox,
		pairs: keyedmutex.New(),
		now:   time.Now,
	}
}

// Create registra el interés del sender por el recipient sobre una mascota
// y deja una notificación en el buzón del recipient. Reglas:
// - sender != recipient (ErrSelfConnection, sin cambio de estado)
// - un solo pending por par (sender, recipient), sin importar la mascota
func (s *Service) Create(ctx context.Context, senderUserID, recipientUserID, petID string) (ConnectionRequest, error) {
	senderUserID = strings.TrimSpace(senderUserID)
	recipientUserID = strings.TrimSpace(recipientUserID)
	petID = strings.TrimSpace(petID)

	if senderUserID == "" || recipientUserID == "" || petID == "" {
		return ConnectionRequest{}, ErrInvalidInput
	}
	if senderUserID == recipientUserID {
		return ConnectionRequest{}, ErrSelfConnection
	}

	// Sección crítica por par dirigido: el check de pendiente y el
	// insert deben ser una unidad para que dos solicitudes concurrentes
	// del mismo par no dupliquen el pending ni la notificación.
	unlock := s.pairs.Lock(senderUserID + "|" + recipientUserID)
	defer unlock()

	switch _, err := s.repo.GetPending(ctx, senderUserID, recipientUserID); {
	case err == nil:
		return ConnectionRequest{}, ErrDuplicateRequest
	case !errors.Is(err, ErrNotFound):
		// Fallo del storage: no se puede afirmar que no hay duplicado.
		return ConnectionRequest{}, err
	}

	now := s.now()
	cr := ConnectionRequest{
		ID:              uuid.NewString(),
		SenderUserID:    senderUserID,
		RecipientUserID: recipientUserID,
		PetID:           petID,
		Status:          StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Create(ctx, cr); err != nil {
		return ConnectionRequest{}, err
	}

	msg := fmt.Sprintf("User %s wants to connect with you about pet %s", senderUserID, petID)
	if _, err := s.inbox.Post(ctx, recipientUserID, senderUserID, msg); err != nil {
		return ConnectionRequest{}, err
	}

	observability.ConnectionRequestsTotal.Inc()
	return cr, nil
}

// ListBySender devuelve las solicitudes enviadas por un usuario
// (pendientes y confirmadas).
func (s *Service) ListBySender(ctx context.Context, senderUserID string) ([]ConnectionRequest, error) {
	senderUserID = strings.TrimSpace(senderUserID)
	if senderUserID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListBySender(ctx, senderUserID)
}

// MarkConfirmed pasa a confirmed la solicitud pendiente del par, si existe.
// Lo invoca el flujo de confirmación de match; si no hay pending no es error
// (el match pudo originarse con la solicitud ya confirmada por otra vía).
func (s *Service) MarkConfirmed(ctx context.Context, senderUserID, recipientUserID string) error {
	cr, err := s.repo.GetPending(ctx, senderUserID, recipientUserID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}

	cr.Status = StatusConfirmed
	cr.UpdatedAt = s.now()
	return s.repo.Update(ctx, cr)
}
