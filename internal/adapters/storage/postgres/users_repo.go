package postgres

import (
	"context"
	"database/sql"
	"strings"

	"pet-donor-connect/internal/domain/users"
)

type UsersRepo struct {
	db *sql.DB
}

func NewUsersRepo(db *sql.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

func (r *UsersRepo) Upsert(ctx context.Context, u users.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, display_name, email, phone, address, lat, lng, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		ON CONFLICT (id) DO UPDATE SET
			display_name = EXCLUDED.display_name,
			email        = EXCLUDED.email,
			phone        = EXCLUDED.phone,
			address      = EXCLUDED.address,
			lat          = EXCLUDED.lat,
			lng          = EXCLUDED.lng
	`,
		u.ID,
		u.DisplayName,
		u.Email,
		u.Phone,
		u.Address,
		toNullFloat(u.Lat),
		toNullFloat(u.Lng),
		u.CreatedAt,
	)
	return err
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return users.User{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, display_name, email, phone, address, lat, lng, created_at
		FROM users
		WHERE id = $1
	`, id)

	u, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return users.User{}, ErrNotFound
		}
		return users.User{}, err
	}
	return u, nil
}

func (r *UsersRepo) ListAll(ctx context.Context) ([]users.User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, display_name, email, phone, address, lat, lng, created_at
		FROM users
		ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]users.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func scanUser(row rowScanner) (users.User, error) {
	var u users.User
	var lat, lng sql.NullFloat64

	if err := row.Scan(
		&u.ID,
		&u.DisplayName,
		&u.Email,
		&u.Phone,
		&u.Address,
		&lat,
		&lng,
		&u.CreatedAt,
	); err != nil {
		return users.User{}, err
	}

	if lat.Valid {
		v := lat.Float64
		u.Lat = &v
	}
	if lng.Valid {
		v := lng.Float64
		u.Lng = &v
	}
	return u, nil
}
