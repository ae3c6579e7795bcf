package postgres

import (
	"context"
	"database/sql"
	"strings"

	"pet-donor-connect/internal/domain/pets"
)

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pets (
			id, owner_user_id,
			name, species, breed, sex,
			blood_type, weight_kg, birth_date,
			address, lat, lng, photo_urls,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
	`,
		p.ID,
		p.OwnerUserID,
		p.Name,
		string(p.Species),
		p.Breed,
		string(p.Sex),
		string(p.BloodType),
		p.WeightKg,
		toNullTime(p.BirthDate),
		p.Address,
		toNullFloat(p.Lat),
		toNullFloat(p.Lng),
		joinURLs(p.PhotoURLs),
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, petSelect+` WHERE id = $1`, id)

	p, err := scanPet(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return pets.Pet{}, ErrNotFound
		}
		return pets.Pet{}, err
	}
	return p, nil
}

func (r *PetsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, petSelect+`
		WHERE owner_user_id = $1
		ORDER BY created_at ASC, id ASC
	`, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPets(rows)
}

func (r *PetsRepo) ListAll(ctx context.Context) ([]pets.Pet, error) {
	// Orden estable: el dedup de coordenadas depende del orden del
	// candidate set entre llamadas.
	rows, err := r.db.QueryContext(ctx, petSelect+` ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPets(rows)
}

const petSelect = `
	SELECT
		id, owner_user_id,
		name, species, breed, sex,
		blood_type, weight_kg, birth_date,
		address, lat, lng, photo_urls,
		created_at, updated_at
	FROM pets
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPet(row rowScanner) (pets.Pet, error) {
	var p pets.Pet
	var species, sex, blood string
	var bd sql.NullTime
	var lat, lng sql.NullFloat64
	var photos string

	if err := row.Scan(
		&p.ID,
		&p.OwnerUserID,
		&p.Name,
		&species,
		&p.Breed,
		&sex,
		&blood,
		&p.WeightKg,
		&bd,
		&p.Address,
		&lat,
		&lng,
		&photos,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return pets.Pet{}, err
	}

	p.Species = pets.Species(species)
	p.Sex = pets.Sex(sex)
	p.BloodType = pets.BloodType(blood)
	if bd.Valid {
		t := bd.Time
		p.BirthDate = &t
	}
	if lat.Valid {
		v := lat.Float64
		p.Lat = &v
	}
	if lng.Valid {
		v := lng.Float64
		p.Lng = &v
	}
	p.PhotoURLs = splitURLs(photos)

	return p, nil
}

func collectPets(rows *sql.Rows) ([]pets.Pet, error) {
	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// photo_urls se guarda como TEXT separado por newline: las URLs no
// contienen newlines y así evitamos depender de tipos array del driver.
func joinURLs(urls []string) string {
	return strings.Join(urls, "\n")
}

func splitURLs(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return strings.Split(raw, "\n")
}
