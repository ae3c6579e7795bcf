package notifications

import "time"

// Notification es una entrada del buzón de un usuario.
// Pertenece exclusivamente a su destinatario: solo se muta por
// dismiss (una) o dismiss-all (todas). Nunca se edita.
type Notification struct {
	ID              string
	RecipientUserID string
	SenderUserID    string
	Message         string
	CreatedAt       time.Time
}
