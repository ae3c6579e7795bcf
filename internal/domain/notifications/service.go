package notifications

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"pet-donor-connect/internal/observability"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// Post agrega una notificación al buzón del destinatario. Siempre que las
// entradas sean válidas, el append no tiene modos de fallo de negocio.
func (s *Service) Post(ctx context.Context, recipientUserID, senderUserID, message string) (Notification, error) {
	recipientUserID = strings.TrimSpace(recipientUserID)
	senderUserID = strings.TrimSpace(senderUserID)
	message = strings.TrimSpace(message)

	if recipientUserID == "" || senderUserID == "" || message == "" {
		return Notification{}, ErrInvalidInput
	}

	n := Notification{
		ID:              uuid.NewString(),
		RecipientUserID: recipientUserID,
		SenderUserID:    senderUserID,
		Message:         message,
		CreatedAt:       s.now(),
	}

	if err := s.repo.Create(ctx, n); err != nil {
		return Notification{}, err
	}

	observability.NotificationsPostedTotal.Inc()
	return n, nil
}

// List devuelve el buzón newest-first. "Tiene no leídas" se deriva como
// len > 0: no existe flag de leído, la presencia es la única señal.
func (s *Service) List(ctx context.Context, recipientUserID string) ([]Notification, error) {
	recipientUserID = strings.TrimSpace(recipientUserID)
	if recipientUserID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByRecipient(ctx, recipientUserID)
}

// Dismiss elimina exactamente una notificación del buzón del recipient.
// Idempotente: un id ya eliminado (o desconocido, o de otro buzón) no
// es error ni toca nada.
func (s *Service) Dismiss(ctx context.Context, recipientUserID, id string) error {
	recipientUserID = strings.TrimSpace(recipientUserID)
	id = strings.TrimSpace(id)
	if recipientUserID == "" || id == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, recipientUserID, id)
}

// DismissAll vacía el buzón del destinatario.
func (s *Service) DismissAll(ctx context.Context, recipientUserID string) error {
	recipientUserID = strings.TrimSpace(recipientUserID)
	if recipientUserID == "" {
		return ErrInvalidInput
	}
	return s.repo.DeleteByRecipient(ctx, recipientUserID)
}
