package dogs

import "context"

type Repository interface {
	Create(ctx context.Context, d Dog) error
	Update(ctx context.Context, d Dog) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Dog, error)

	// List devuelve más nuevos primero (created_at desc).
	List(ctx context.Context, filter ListFilter) ([]Dog, error)
}

type ListFilter struct {
	Status Status // vacío = todos
}

type ImageRepository interface {
	Create(ctx context.Context, img DogImage) error
	GetByID(ctx context.Context, id string) (DogImage, error)
	Delete(ctx context.Context, id string) error

	// ListByDog devuelve display_order asc; empates en orden de inserción.
	ListByDog(ctx context.Context, dogID string) ([]DogImage, error)
	DeleteByDog(ctx context.Context, dogID string) error
}
