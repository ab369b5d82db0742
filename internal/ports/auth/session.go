package auth

import (
	"context"
	"strings"
)

// Role del usuario dentro del refugio.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// Claims representa la información extraída del token.
type Claims struct {
	UserID string
	Email  string

	// Role viene del token si el proveedor lo incluye (app_metadata.role en GoTrue).
	// Vacío => se resuelve con un roles.Resolver.
	Role Role
}

// Session es el valor explícito que viaja en el context de cada request.
// Reemplaza el estado global de "usuario actual / es admin".
type Session struct {
	UserID string
	Email  string
	Role   Role
}

func (s Session) IsAuthenticated() bool {
	return strings.TrimSpace(s.UserID) != ""
}

func (s Session) IsAdmin() bool {
	return s.IsAuthenticated() && s.Role == RoleAdmin
}

// AuthVerifier valida un bearer token (JWT local o GoTrue) y devuelve sus claims.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}
