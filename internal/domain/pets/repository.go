package pets

import "context"

type Repository interface {
	Create(ctx context.Context, p Pet) error
	GetByID(ctx context.Context, id string) (Pet, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error)
	// ListAll es la fuente del working set de candidatos para el
	// descubrimiento por cercanía (conjunto acotado, ya cargado).
	ListAll(ctx context.Context) ([]Pet, error)
}
