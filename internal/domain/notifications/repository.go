package notifications

import "context"

type Repository interface {
	Create(ctx context.Context, n Notification) error
	// ListByRecipient devuelve el buzón ordenado newest-first.
	ListByRecipient(ctx context.Context, recipientUserID string) ([]Notification, error)
	// Delete borra una notificación del buzón del recipient. Solo el
	// dueño del buzón puede borrarla: un id ajeno no toca nada. Si el
	// id no existe es no-op: el dismiss es idempotente por contrato
	// (ya no estar = éxito).
	Delete(ctx context.Context, recipientUserID, id string) error
	DeleteByRecipient(ctx context.Context, recipientUserID string) error
}
