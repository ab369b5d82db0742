package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"refugio-adopciones/internal/domain/dogs"
)

var ErrDogMissing = errors.New("dog does not exist")

type storedImage struct {
	img dogs.DogImage
	seq int64
}

type imageRepo struct {
	mu   sync.RWMutex
	byID map[string]storedImage
	next int64

	dogs *dogRepo // para chequear la FK en Create; nil = sin chequeo
}

// NewImageRepo: si repo viene de NewDogRepo se valida que el perro exista
// al insertar, igual que la FK en Postgres.
func NewImageRepo(repo dogs.Repository) dogs.ImageRepository {
	r := &imageRepo{byID: make(map[string]storedImage)}
	if dr, ok := repo.(*dogRepo); ok {
		r.dogs = dr
	}
	return r
}

func (r *imageRepo) Create(ctx context.Context, img dogs.DogImage) error {
	if strings.TrimSpace(img.ID) == "" {
		return errors.New("image id required")
	}
	if r.dogs != nil && !r.dogs.exists(img.DogID) {
		return ErrDogMissing
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[img.ID]; exists {
		return errors.New("image already exists")
	}
	r.next++
	r.byID[img.ID] = storedImage{img: img, seq: r.next}
	return nil
}

func (r *imageRepo) GetByID(ctx context.Context, id string) (dogs.DogImage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byID[id]
	if !ok {
		return dogs.DogImage{}, dogs.ErrNotFound
	}
	return s.img, nil
}

func (r *imageRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return dogs.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *imageRepo) ListByDog(ctx context.Context, dogID string) ([]dogs.DogImage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := make([]storedImage, 0)
	for _, s := range r.byID {
		if s.img.DogID == dogID {
			rows = append(rows, s)
		}
	}

	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i].img, rows[j].img
		if a.DisplayOrder != b.DisplayOrder {
			return a.DisplayOrder < b.DisplayOrder
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return rows[i].seq < rows[j].seq
	})

	out := make([]dogs.DogImage, 0, len(rows))
	for _, s := range rows {
		out = append(out, s.img)
	}
	return out, nil
}

func (r *imageRepo) DeleteByDog(ctx context.Context, dogID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, s := range r.byID {
		if s.img.DogID == dogID {
			delete(r.byID, id)
		}
	}
	return nil
}
