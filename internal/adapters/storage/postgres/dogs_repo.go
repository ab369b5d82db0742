package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"refugio-adopciones/internal/domain/dogs"
)

type DogsRepo struct {
	db *sql.DB
}

func NewDogsRepo(db *sql.DB) *DogsRepo {
	return &DogsRepo{db: db}
}

const dogColumns = `
	id,
	name, breed, age, size, gender, story,
	personality, status,
	created_at, updated_at`

func (r *DogsRepo) Create(ctx context.Context, d dogs.Dog) error {
	personality, err := encodePersonality(d.Personality)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO dogs (`+dogColumns+`
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		d.ID,
		d.Name,
		d.Breed,
		d.Age,
		d.Size,
		string(d.Gender),
		d.Story,
		personality,
		string(d.Status),
		d.CreatedAt,
		d.UpdatedAt,
	)
	return err
}

func (r *DogsRepo) Update(ctx context.Context, d dogs.Dog) error {
	personality, err := encodePersonality(d.Personality)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE dogs
		SET
			name = $2,
			breed = $3,
			age = $4,
			size = $5,
			gender = $6,
			story = $7,
			personality = $8,
			status = $9,
			updated_at = $10
		WHERE id = $1
	`,
		d.ID,
		d.Name,
		d.Breed,
		d.Age,
		d.Size,
		string(d.Gender),
		d.Story,
		personality,
		string(d.Status),
		d.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return dogs.ErrNotFound
	}
	return nil
}

// Delete borra el perro; dog_images cae por ON DELETE CASCADE.
func (r *DogsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM dogs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return dogs.ErrNotFound
	}
	return nil
}

func (r *DogsRepo) GetByID(ctx context.Context, id string) (dogs.Dog, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return dogs.Dog{}, dogs.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT`+dogColumns+`
		FROM dogs
		WHERE id = $1
	`, id)

	d, err := scanDog(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return dogs.Dog{}, dogs.ErrNotFound
		}
		return dogs.Dog{}, err
	}
	return d, nil
}

func (r *DogsRepo) List(ctx context.Context, filter dogs.ListFilter) ([]dogs.Dog, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if filter.Status != "" {
		rows, err = r.db.QueryContext(ctx, `
			SELECT`+dogColumns+`
			FROM dogs
			WHERE status = $1
			ORDER BY created_at DESC
		`, string(filter.Status))
	} else {
		rows, err = r.db.QueryContext(ctx, `
			SELECT`+dogColumns+`
			FROM dogs
			ORDER BY created_at DESC
		`)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]dogs.Dog, 0)
	for rows.Next() {
		d, err := scanDog(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDog(s scanner) (dogs.Dog, error) {
	var (
		d           dogs.Dog
		gender      string
		status      string
		personality []byte
	)
	if err := s.Scan(
		&d.ID,
		&d.Name,
		&d.Breed,
		&d.Age,
		&d.Size,
		&gender,
		&d.Story,
		&personality,
		&status,
		&d.CreatedAt,
		&d.UpdatedAt,
	); err != nil {
		return dogs.Dog{}, err
	}

	d.Gender = dogs.Sex(gender)
	d.Status = dogs.Status(status)

	if len(personality) > 0 {
		if err := json.Unmarshal(personality, &d.Personality); err != nil {
			return dogs.Dog{}, fmt.Errorf("dog %s: personality: %w", d.ID, err)
		}
	}
	if d.Personality == nil {
		d.Personality = []string{}
	}
	return d, nil
}

// personality es JSONB: mantiene orden y duplicados.
func encodePersonality(p []string) (string, error) {
	if p == nil {
		p = []string{}
	}
	b, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
