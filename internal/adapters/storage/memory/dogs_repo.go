package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"refugio-adopciones/internal/domain/dogs"
)

type dogRepo struct {
	mu   sync.RWMutex
	byID map[string]dogs.Dog
	seq  map[string]int64 // orden de inserción, desempata created_at
	next int64
}

func NewDogRepo() dogs.Repository {
	return &dogRepo{
		byID: make(map[string]dogs.Dog),
		seq:  make(map[string]int64),
	}
}

func (r *dogRepo) Create(ctx context.Context, d dogs.Dog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(d.ID) == "" {
		return errors.New("dog id required")
	}
	if _, exists := r.byID[d.ID]; exists {
		return errors.New("dog already exists")
	}
	r.next++
	r.byID[d.ID] = cloneDog(d)
	r.seq[d.ID] = r.next
	return nil
}

func (r *dogRepo) Update(ctx context.Context, d dogs.Dog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, exists := r.byID[d.ID]
	if !exists {
		return dogs.ErrNotFound
	}
	// created_at no se toca nunca
	d.CreatedAt = prev.CreatedAt
	r.byID[d.ID] = cloneDog(d)
	return nil
}

func (r *dogRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return dogs.ErrNotFound
	}
	delete(r.byID, id)
	delete(r.seq, id)
	return nil
}

func (r *dogRepo) GetByID(ctx context.Context, id string) (dogs.Dog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.byID[id]
	if !ok {
		return dogs.Dog{}, dogs.ErrNotFound
	}
	return cloneDog(d), nil
}

func (r *dogRepo) List(ctx context.Context, filter dogs.ListFilter) ([]dogs.Dog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]dogs.Dog, 0, len(r.byID))
	for _, d := range r.byID {
		if filter.Status != "" && d.Status != filter.Status {
			continue
		}
		out = append(out, cloneDog(d))
	}

	// created_at desc; empate => el insertado después va primero
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return r.seq[out[i].ID] > r.seq[out[j].ID]
	})
	return out, nil
}

func (r *dogRepo) exists(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byID[id]
	return ok
}

// cloneDog evita que el caller modifique el slice guardado.
func cloneDog(d dogs.Dog) dogs.Dog {
	if d.Personality != nil {
		p := make([]string, len(d.Personality))
		copy(p, d.Personality)
		d.Personality = p
	}
	return d
}
