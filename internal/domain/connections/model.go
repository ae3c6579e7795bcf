package connections

import "time"

type Status string

const (
	// StatusPending: interés unilateral, a la espera de confirmación.
	// No hay estado "declined": una solicitud no confirmada queda
	// pendiente para siempre (comportamiento documentado, no un bug).
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
)

// ConnectionRequest es el interés unilateral de un usuario (sender) por
// conectar con otro (recipient) a propósito de una mascota específica.
// Es una entidad durable con ciclo de vida propio: el sender puede
// consultar qué solicitudes tiene abiertas sin depender del buzón ajeno.
type ConnectionRequest struct {
	ID              string
	SenderUserID    string
	RecipientUserID string
	PetID           string

	Status Status

	CreatedAt time.Time
	UpdatedAt time.Time
}
