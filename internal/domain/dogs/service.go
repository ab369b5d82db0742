package dogs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"refugio-adopciones/internal/platform/logger"
	"refugio-adopciones/internal/platform/metrics"
	"refugio-adopciones/internal/ports/blobstore"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

const recentWindow = 7 * 24 * time.Hour

type Service struct {
	repo   Repository
	images ImageRepository
	blobs  blobstore.Store

	log     logger.Logger
	metrics *metrics.Metrics

	// cascadeBlobs: al borrar perro/foto también se borra el blob del bucket.
	cascadeBlobs bool

	now   func() time.Time
	token func() string // sufijo único para object keys
}

type Option func(*Service)

func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithCascadeBlobs(enabled bool) Option {
	return func(s *Service) { s.cascadeBlobs = enabled }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(repo Repository, images ImageRepository, blobs blobstore.Store, opts ...Option) *Service {
	s := &Service{
		repo:         repo,
		images:       images,
		blobs:        blobs,
		log:          logger.Nop(),
		cascadeBlobs: true,
		now:          time.Now,
	}
	s.token = func() string { return fmt.Sprintf("%d", s.now().UnixNano()) }
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type CreateInput struct {
	Name        string
	Breed       string
	Age         string
	Size        string
	Gender      Sex
	Story       string
	Personality []string
	Status      Status // vacío => available
}

// UpdateInput: punteros para PATCH real, nil = no tocar.
type UpdateInput struct {
	Name        *string
	Breed       *string
	Age         *string
	Size        *string
	Gender      *Sex
	Story       *string
	Personality *[]string
	Status      *Status
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Dog, error) {
	now := s.now()
	d := Dog{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(in.Name),
		Breed:       strings.TrimSpace(in.Breed),
		Age:         strings.TrimSpace(in.Age),
		Size:        strings.TrimSpace(in.Size),
		Gender:      Sex(strings.TrimSpace(string(in.Gender))),
		Story:       strings.TrimSpace(in.Story),
		Personality: NormalizePersonality(in.Personality),
		Status:      in.Status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if d.Status == "" {
		d.Status = StatusAvailable
	}
	if err := validateDog(d); err != nil {
		return Dog{}, err
	}

	if err := s.repo.Create(ctx, d); err != nil {
		return Dog{}, err
	}
	s.log.Info("dog created", map[string]any{"dog_id": d.ID, "name": d.Name})
	return d, nil
}

// CreateWithImages crea el perro y sube sus fotos. Si alguna foto falla,
// se deshace todo (fotos ya subidas y el perro) y se devuelve el error.
func (s *Service) CreateWithImages(ctx context.Context, in CreateInput, uploads []Upload) (DogWithImages, error) {
	if err := validateUploads(uploads); err != nil {
		return DogWithImages{}, err
	}

	d, err := s.Create(ctx, in)
	if err != nil {
		return DogWithImages{}, err
	}

	var undo undoStack
	undo.push("delete dog "+d.ID, func(ctx context.Context) error {
		return s.repo.Delete(ctx, d.ID)
	})

	imgs, err := s.AddImages(ctx, d.ID, uploads)
	if err != nil {
		s.rollback(ctx, &undo)
		return DogWithImages{}, err
	}
	return withGallery(d, imgs), nil
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Dog, error) {
	d, err := s.getDog(ctx, id)
	if err != nil {
		return Dog{}, err
	}

	if in.Name != nil {
		d.Name = strings.TrimSpace(*in.Name)
	}
	if in.Breed != nil {
		d.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.Age != nil {
		d.Age = strings.TrimSpace(*in.Age)
	}
	if in.Size != nil {
		d.Size = strings.TrimSpace(*in.Size)
	}
	if in.Gender != nil {
		d.Gender = Sex(strings.TrimSpace(string(*in.Gender)))
	}
	if in.Story != nil {
		d.Story = strings.TrimSpace(*in.Story)
	}
	if in.Personality != nil {
		d.Personality = NormalizePersonality(*in.Personality)
	}
	if in.Status != nil {
		// available <-> adopted sin restricciones
		d.Status = *in.Status
	}

	if err := validateDog(d); err != nil {
		return Dog{}, err
	}

	d.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, d); err != nil {
		return Dog{}, err
	}
	return d, nil
}

// Delete borra el perro y sus filas de fotos. Con cascadeBlobs también
// intenta borrar los blobs; si eso falla queda logueado, el borrado sigue.
func (s *Service) Delete(ctx context.Context, id string) error {
	d, err := s.getDog(ctx, id)
	if err != nil {
		return err
	}

	imgs, err := s.images.ListByDog(ctx, d.ID)
	if err != nil {
		return err
	}
	// primero la ficha: si falla, la galería queda intacta
	if err := s.repo.Delete(ctx, d.ID); err != nil {
		return err
	}
	if err := s.images.DeleteByDog(ctx, d.ID); err != nil {
		s.log.Warn("dog deleted but gallery cleanup failed", map[string]any{"dog_id": d.ID, "err": err.Error()})
	}

	if s.cascadeBlobs {
		for _, img := range imgs {
			s.removeBlob(ctx, img)
		}
	}

	s.log.Info("dog deleted", map[string]any{"dog_id": d.ID, "images": len(imgs)})
	return nil
}

// Get devuelve la ficha con la galería ordenada. ErrNotFound si no existe.
func (s *Service) Get(ctx context.Context, id string) (DogWithImages, error) {
	d, err := s.getDog(ctx, id)
	if err != nil {
		return DogWithImages{}, err
	}
	imgs, err := s.images.ListByDog(ctx, d.ID)
	if err != nil {
		return DogWithImages{}, err
	}
	return withGallery(d, imgs), nil
}

// GetPublic es Get para el perfil público: un adoptado se reporta como no encontrado.
func (s *Service) GetPublic(ctx context.Context, id string) (DogWithImages, error) {
	d, err := s.Get(ctx, id)
	if err != nil {
		return DogWithImages{}, err
	}
	if d.Status != StatusAvailable {
		return DogWithImages{}, ErrNotFound
	}
	return d, nil
}

// ListAvailable es el catálogo público: solo disponibles, más nuevos primero,
// cada uno con su portada resuelta.
func (s *Service) ListAvailable(ctx context.Context) ([]DogWithImages, error) {
	items, err := s.repo.List(ctx, ListFilter{Status: StatusAvailable})
	if err != nil {
		return nil, err
	}

	out := make([]DogWithImages, 0, len(items))
	for _, d := range items {
		// el filtro es del repo, pero el catálogo no puede mostrar adoptados
		if d.Status != StatusAvailable {
			continue
		}
		imgs, err := s.images.ListByDog(ctx, d.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, withGallery(d, imgs))
	}
	return out, nil
}

// ListAll es el listado de admin: cualquier estado, más nuevos primero.
func (s *Service) ListAll(ctx context.Context) ([]Dog, error) {
	return s.repo.List(ctx, ListFilter{})
}

func (s *Service) Stats(ctx context.Context) (Stats, error) {
	items, err := s.repo.List(ctx, ListFilter{})
	if err != nil {
		return Stats{}, err
	}

	cutoff := s.now().Add(-recentWindow)
	st := Stats{Total: len(items)}
	for _, d := range items {
		switch d.Status {
		case StatusAvailable:
			st.Available++
		case StatusAdopted:
			st.Adopted++
		}
		if d.CreatedAt.After(cutoff) {
			st.Recent++
		}
	}
	return st, nil
}

// RemoveImage borra la fila; con cascadeBlobs también el blob (best-effort).
func (s *Service) RemoveImage(ctx context.Context, imageID string) error {
	imageID = strings.TrimSpace(imageID)
	if imageID == "" {
		return ErrNotFound
	}

	img, err := s.images.GetByID(ctx, imageID)
	if err != nil {
		return err
	}
	if err := s.images.Delete(ctx, img.ID); err != nil {
		return err
	}
	if s.cascadeBlobs {
		s.removeBlob(ctx, img)
	}
	return nil
}

func (s *Service) getDog(ctx context.Context, id string) (Dog, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Dog{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) removeBlob(ctx context.Context, img DogImage) {
	if strings.TrimSpace(img.ObjectKey) == "" {
		return
	}
	if err := s.blobs.Remove(ctx, img.ObjectKey); err != nil {
		s.log.Warn("blob cleanup failed", map[string]any{
			"image_id":   img.ID,
			"object_key": img.ObjectKey,
			"err":        err.Error(),
		})
	}
}

// NormalizePersonality hace trim y descarta vacíos. Mantiene orden y duplicados.
func NormalizePersonality(in []string) []string {
	out := make([]string, 0, len(in))
	for _, p := range in {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

func validateDog(d Dog) error {
	required := []string{d.Name, d.Breed, d.Age, d.Size, d.Story}
	for _, v := range required {
		if v == "" {
			return ErrInvalidInput
		}
	}
	if !d.Gender.Valid() || !d.Status.Valid() {
		return ErrInvalidInput
	}
	return nil
}
