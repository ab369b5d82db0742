package dogs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"refugio-adopciones/internal/ports/blobstore"

	"github.com/google/uuid"
)

// Upload es un archivo recibido del formulario de admin.
type Upload struct {
	FileName    string
	ContentType string
	Size        int64 // -1 si no se conoce
	Body        io.Reader
}

// AddImages sube las fotos en orden, una por una, y agrega las filas con
// DisplayOrder continuando después del máximo actual.
// Si un archivo falla, se deshace lo hecho en este lote (filas y blobs).
func (s *Service) AddImages(ctx context.Context, dogID string, uploads []Upload) ([]DogImage, error) {
	if err := validateUploads(uploads); err != nil {
		return nil, err
	}

	d, err := s.getDog(ctx, dogID)
	if err != nil {
		return nil, err
	}

	existing, err := s.images.ListByDog(ctx, d.ID)
	if err != nil {
		return nil, err
	}
	if len(uploads) == 0 {
		return SortGallery(existing), nil
	}

	next := nextDisplayOrder(existing)
	token := s.token()

	var undo undoStack
	added := make([]DogImage, 0, len(uploads))

	for i, up := range uploads {
		key := ObjectKey(d.ID, token, i, up.FileName)

		if err := s.blobs.Upload(ctx, blobstore.Object{
			Key:         key,
			Body:        up.Body,
			Size:        up.Size,
			ContentType: up.ContentType,
		}); err != nil {
			s.metrics.IncUpload("error")
			s.rollback(ctx, &undo)
			return nil, fmt.Errorf("upload %q: %w", up.FileName, err)
		}
		undo.push("remove blob "+key, func(ctx context.Context) error {
			return s.blobs.Remove(ctx, key)
		})

		img := DogImage{
			ID:           uuid.NewString(),
			DogID:        d.ID,
			ImageURL:     s.blobs.PublicURL(key),
			ObjectKey:    key,
			DisplayOrder: next + i,
			CreatedAt:    s.now(),
		}
		if err := s.images.Create(ctx, img); err != nil {
			s.metrics.IncUpload("error")
			s.rollback(ctx, &undo)
			return nil, fmt.Errorf("save image %q: %w", up.FileName, err)
		}
		undo.push("delete image "+img.ID, func(ctx context.Context) error {
			return s.images.Delete(ctx, img.ID)
		})

		s.metrics.IncUpload("ok")
		added = append(added, img)
	}

	s.log.Info("dog images added", map[string]any{"dog_id": d.ID, "count": len(added)})
	return SortGallery(append(existing, added...)), nil
}

// ObjectKey arma el path del blob: <dogID>/<token>-<index><ext>.
// La extensión sale del nombre original (minúsculas); sin extensión => sin sufijo.
func ObjectKey(dogID, token string, index int, fileName string) string {
	ext := strings.ToLower(path.Ext(strings.TrimSpace(fileName)))
	if strings.ContainsAny(ext, `/\ `) {
		ext = ""
	}
	return fmt.Sprintf("%s/%s-%d%s", dogID, token, index, ext)
}

func validateUploads(uploads []Upload) error {
	for _, up := range uploads {
		if up.Body == nil {
			return ErrInvalidInput
		}
		ct := strings.TrimSpace(up.ContentType)
		if ct != "" && !strings.HasPrefix(strings.ToLower(ct), "image/") {
			return ErrInvalidInput
		}
	}
	return nil
}

// undoStack acumula acciones compensatorias de una secuencia de escrituras
// no transaccional. rollback las ejecuta en orden inverso.
type undoStack struct {
	steps []undoStep
}

type undoStep struct {
	name string
	fn   func(ctx context.Context) error
}

func (u *undoStack) push(name string, fn func(ctx context.Context) error) {
	u.steps = append(u.steps, undoStep{name: name, fn: fn})
}

func (u *undoStack) run(ctx context.Context) error {
	var errs []error
	for i := len(u.steps) - 1; i >= 0; i-- {
		st := u.steps[i]
		if err := st.fn(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", st.name, err))
		}
	}
	u.steps = nil
	return errors.Join(errs...)
}

// rollback corre la compensación aunque el request ya esté cancelado.
func (s *Service) rollback(ctx context.Context, u *undoStack) {
	if err := u.run(context.WithoutCancel(ctx)); err != nil {
		s.log.Error("rollback incomplete", map[string]any{"err": err.Error()})
	}
}
