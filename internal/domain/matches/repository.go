package matches

import "context"

// Las implementaciones devuelven ErrNotFound (el sentinel de este
// paquete) cuando el Match buscado no existe; cualquier otro error es
// un fallo del storage.
type Repository interface {
	Create(ctx context.Context, m Match) error
	GetByID(ctx context.Context, id string) (Match, error)
	// GetByPairKey busca el Match del par canónico (ver PairKey).
	GetByPairKey(ctx context.Context, pairKey string) (Match, error)
	ListByUser(ctx context.Context, userID string) ([]Match, error)
	Delete(ctx context.Context, id string) error
}
