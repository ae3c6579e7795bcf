package postgres

import (
	"context"
	"database/sql"
	"strings"

	"pet-donor-connect/internal/domain/notifications"
)

type NotificationsRepo struct {
	db *sql.DB
}

func NewNotificationsRepo(db *sql.DB) *NotificationsRepo {
	return &NotificationsRepo{db: db}
}

func (r *NotificationsRepo) Create(ctx context.Context, n notifications.Notification) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO notifications (id, recipient_user_id, sender_user_id, message, created_at)
		VALUES ($1,$2,$3,$4,$5)
	`,
		n.ID,
		n.RecipientUserID,
		n.SenderUserID,
		n.Message,
		n.CreatedAt,
	)
	return err
}

func (r *NotificationsRepo) ListByRecipient(ctx context.Context, recipientUserID string) ([]notifications.Notification, error) {
	recipientUserID = strings.TrimSpace(recipientUserID)
	if recipientUserID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, recipient_user_id, sender_user_id, message, created_at
		FROM notifications
		WHERE recipient_user_id = $1
		ORDER BY created_at DESC, id DESC
	`, recipientUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]notifications.Notification, 0)
	for rows.Next() {
		var n notifications.Notification
		if err := rows.Scan(
			&n.ID,
			&n.RecipientUserID,
			&n.SenderUserID,
			&n.Message,
			&n.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// Delete es idempotente y está acotado al buzón del recipient: un id
// inexistente o ajeno no borra nada y no es error.
func (r *NotificationsRepo) Delete(ctx context.Context, recipientUserID, id string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM notifications
		WHERE id = $1 AND recipient_user_id = $2
	`, id, recipientUserID)
	return err
}

func (r *NotificationsRepo) DeleteByRecipient(ctx context.Context, recipientUserID string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM notifications
		WHERE recipient_user_id = $1
	`, recipientUserID)
	return err
}
