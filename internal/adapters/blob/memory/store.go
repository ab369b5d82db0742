package memory

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"

	"refugio-adopciones/internal/ports/blobstore"
)

// Store guarda blobs en memoria (dev y tests). Las URLs no se pueden abrir,
// solo sirven como identificador estable.
type Store struct {
	mu      sync.RWMutex
	objects map[string]stored
	baseURL string
}

type stored struct {
	data        []byte
	contentType string
}

func New(baseURL string) *Store {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = "memory://dog-images"
	}
	return &Store{
		objects: make(map[string]stored),
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (s *Store) Upload(ctx context.Context, obj blobstore.Object) error {
	if strings.TrimSpace(obj.Key) == "" {
		return errors.New("object key required")
	}
	if obj.Body == nil {
		return errors.New("object body required")
	}
	data, err := io.ReadAll(obj.Body)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[obj.Key] = stored{data: data, contentType: obj.ContentType}
	return nil
}

func (s *Store) PublicURL(key string) string {
	return s.baseURL + "/" + key
}

func (s *Store) Remove(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.objects[key]; !ok {
		return blobstore.ErrNotFound
	}
	delete(s.objects, key)
	return nil
}

// Get devuelve el contenido guardado; ok=false si no existe.
func (s *Store) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.objects[key]
	return o.data, ok
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
