package connections

import "context"

type Repository interface {
	Create(ctx context.Context, cr ConnectionRequest) error
	Update(ctx context.Context, cr ConnectionRequest) error
	ListBySender(ctx context.Context, senderUserID string) ([]ConnectionRequest, error)
	// GetPending devuelve la solicitud pendiente del par (sender, recipient)
	// si existe; ErrNotFound si no hay. La deduplicación es por par de
	// usuarios, no por mascota.
	GetPending(ctx context.Context, senderUserID, recipientUserID string) (ConnectionRequest, error)
}
