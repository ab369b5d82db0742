package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"refugio-adopciones/internal/domain/dogs"
)

type ImagesRepo struct {
	db *sql.DB
}

func NewImagesRepo(db *sql.DB) *ImagesRepo {
	return &ImagesRepo{db: db}
}

func (r *ImagesRepo) Create(ctx context.Context, img dogs.DogImage) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO dog_images (
			id, dog_id,
			image_url, object_key,
			display_order, created_at
		) VALUES ($1,$2,$3,$4,$5,$6)
	`,
		img.ID,
		img.DogID,
		img.ImageURL,
		img.ObjectKey,
		img.DisplayOrder,
		img.CreatedAt,
	)
	return err
}

func (r *ImagesRepo) GetByID(ctx context.Context, id string) (dogs.DogImage, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return dogs.DogImage{}, dogs.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, dog_id, image_url, object_key, display_order, created_at
		FROM dog_images
		WHERE id = $1
	`, id)

	var img dogs.DogImage
	if err := row.Scan(
		&img.ID,
		&img.DogID,
		&img.ImageURL,
		&img.ObjectKey,
		&img.DisplayOrder,
		&img.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return dogs.DogImage{}, dogs.ErrNotFound
		}
		return dogs.DogImage{}, err
	}
	return img, nil
}

func (r *ImagesRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM dog_images WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return dogs.ErrNotFound
	}
	return nil
}

func (r *ImagesRepo) ListByDog(ctx context.Context, dogID string) ([]dogs.DogImage, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, dog_id, image_url, object_key, display_order, created_at
		FROM dog_images
		WHERE dog_id = $1
		ORDER BY display_order ASC, created_at ASC, seq ASC
	`, dogID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]dogs.DogImage, 0)
	for rows.Next() {
		var img dogs.DogImage
		if err := rows.Scan(
			&img.ID,
			&img.DogID,
			&img.ImageURL,
			&img.ObjectKey,
			&img.DisplayOrder,
			&img.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, img)
	}
	return out, rows.Err()
}

func (r *ImagesRepo) DeleteByDog(ctx context.Context, dogID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM dog_images WHERE dog_id = $1`, dogID)
	return err
}
