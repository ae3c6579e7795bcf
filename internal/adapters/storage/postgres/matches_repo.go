package postgres

import (
	"context"
	"database/sql"
	"strings"

	"pet-donor-connect/internal/domain/matches"
)

type MatchesRepo struct {
	db *sql.DB
}

func NewMatchesRepo(db *sql.DB) *MatchesRepo {
	return &MatchesRepo{db: db}
}

// Create inserta el Match del par canónico. El UNIQUE(pair_key) de la
// tabla es la última línea de defensa contra confirmaciones concurrentes
// del mismo par.
func (r *MatchesRepo) Create(ctx context.Context, m matches.Match) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO matches (id, pair_key, user_a_id, user_b_id, created_at)
		VALUES ($1,$2,$3,$4,$5)
	`,
		m.ID,
		matches.PairKey(m.UserAID, m.UserBID),
		m.UserAID,
		m.UserBID,
		m.CreatedAt,
	)
	return err
}

func (r *MatchesRepo) GetByID(ctx context.Context, id string) (matches.Match, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return matches.Match{}, matches.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, matchSelect+` WHERE id = $1`, id)
	return scanMatch(row)
}

func (r *MatchesRepo) GetByPairKey(ctx context.Context, pairKey string) (matches.Match, error) {
	row := r.db.QueryRowContext(ctx, matchSelect+` WHERE pair_key = $1`, pairKey)
	return scanMatch(row)
}

func (r *MatchesRepo) ListByUser(ctx context.Context, userID string) ([]matches.Match, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, matchSelect+`
		WHERE user_a_id = $1 OR user_b_id = $1
		ORDER BY created_at ASC, id ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]matches.Match, 0)
	for rows.Next() {
		var m matches.Match
		if err := rows.Scan(&m.ID, &m.UserAID, &m.UserBID, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Delete elimina por id. Borrar un Match inexistente no es error: la
// ruptura del vínculo es silenciosa e idempotente.
func (r *MatchesRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM matches WHERE id = $1`, id)
	return err
}

const matchSelect = `
	SELECT id, user_a_id, user_b_id, created_at
	FROM matches
`

func scanMatch(row rowScanner) (matches.Match, error) {
	var m matches.Match
	if err := row.Scan(&m.ID, &m.UserAID, &m.UserBID, &m.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return matches.Match{}, matches.ErrNotFound
		}
		return matches.Match{}, err
	}
	return m, nil
}
