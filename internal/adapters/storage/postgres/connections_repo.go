package postgres

import (
	"context"
	"database/sql"
	"strings"

	"pet-donor-connect/internal/domain/connections"
)

type ConnectionsRepo struct {
	db *sql.DB
}

func NewConnectionsRepo(db *sql.DB) *ConnectionsRepo {
	return &ConnectionsRepo{db: db}
}

// Create inserta la solicitud. El índice UNIQUE parcial sobre
// (sender_user_id, recipient_user_id) WHERE status = 'pending' es la
// última defensa contra pendings duplicados detrás del lock del service.
func (r *ConnectionsRepo) Create(ctx context.Context, cr connections.ConnectionRequest) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO connection_requests (
			id, sender_user_id, recipient_user_id, pet_id,
			status, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		cr.ID,
		cr.SenderUserID,
		cr.RecipientUserID,
		cr.PetID,
		string(cr.Status),
		cr.CreatedAt,
		cr.UpdatedAt,
	)
	return err
}

func (r *ConnectionsRepo) Update(ctx context.Context, cr connections.ConnectionRequest) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE connection_requests
		SET status = $1, updated_at = $2
		WHERE id = $3
	`,
		string(cr.Status),
		cr.UpdatedAt,
		cr.ID,
	)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return connections.ErrNotFound
	}
	return nil
}

func (r *ConnectionsRepo) ListBySender(ctx context.Context, senderUserID string) ([]connections.ConnectionRequest, error) {
	senderUserID = strings.TrimSpace(senderUserID)
	if senderUserID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, connectionSelect+`
		WHERE sender_user_id = $1
		ORDER BY created_at ASC, id ASC
	`, senderUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]connections.ConnectionRequest, 0)
	for rows.Next() {
		cr, err := scanConnection(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, cr)
	}
	return out, rows.Err()
}

func (r *ConnectionsRepo) GetPending(ctx context.Context, senderUserID, recipientUserID string) (connections.ConnectionRequest, error) {
	row := r.db.QueryRowContext(ctx, connectionSelect+`
		WHERE sender_user_id = $1 AND recipient_user_id = $2 AND status = $3
		ORDER BY created_at ASC
		LIMIT 1
	`, senderUserID, recipientUserID, string(connections.StatusPending))

	cr, err := scanConnection(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return connections.ConnectionRequest{}, connections.ErrNotFound
		}
		return connections.ConnectionRequest{}, err
	}
	return cr, nil
}

const connectionSelect = `
	SELECT id, sender_user_id, recipient_user_id, pet_id, status, created_at, updated_at
	FROM connection_requests
`

func scanConnection(row rowScanner) (connections.ConnectionRequest, error) {
	var cr connections.ConnectionRequest
	var status string

	if err := row.Scan(
		&cr.ID,
		&cr.SenderUserID,
		&cr.RecipientUserID,
		&cr.PetID,
		&status,
		&cr.CreatedAt,
		&cr.UpdatedAt,
	); err != nil {
		return connections.ConnectionRequest{}, err
	}

	cr.Status = connections.Status(status)
	return cr, nil
}
