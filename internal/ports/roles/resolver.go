package roles

import (
	"context"

	"refugio-adopciones/internal/ports/auth"
)

// Resolver decide el rol de un usuario autenticado.
// Es la autorización real del lado servidor: la UI solo muestra/oculta cosas.
type Resolver interface {
	RoleOf(ctx context.Context, userID string) (auth.Role, error)
}
