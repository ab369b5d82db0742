package blobstore

import (
	"context"
	"errors"
	"io"
)

var ErrNotFound = errors.New("blob not found")

// Object describe lo que se sube: bytes + metadata mínima.
type Object struct {
	Key         string
	Body        io.Reader
	Size        int64 // -1 si no se conoce
	ContentType string
}

// Store es el contrato del bucket de imágenes.
type Store interface {
	Upload(ctx context.Context, obj Object) error
	PublicURL(key string) string
	Remove(ctx context.Context, key string) error
}
