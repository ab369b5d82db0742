package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"refugio-adopciones/internal/platform/logger"
	"refugio-adopciones/internal/ports/auth"
	"refugio-adopciones/internal/ports/roles"
)

type ctxKey string

const sessionKey ctxKey = "session"

// DebugUserHeader permite inyectar un usuario sin token (solo en modo dev).
const DebugUserHeader = "X-Debug-User-ID"

type AuthOptions struct {
	// Verifier nil => modo dev: se confía en X-Debug-User-ID.
	Verifier auth.AuthVerifier
	// Roles resuelve el rol cuando el token no lo trae.
	Roles roles.Resolver
	Log   logger.Logger
}

// AuthContext arma la auth.Session del request:
// - Si Verifier != nil y viene Bearer token => Verify() y rol (token o Roles).
// - Si Verifier == nil => modo dev: X-Debug-User-ID.
// - Sin sesión el request sigue igual; RequireSession/RequireAdmin deciden 401/403.
func AuthContext(opts AuthOptions) func(http.Handler) http.Handler {
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var claims auth.Claims

			if opts.Verifier == nil {
				uid := strings.TrimSpace(r.Header.Get(DebugUserHeader))
				if uid == "" {
					next.ServeHTTP(w, r)
					return
				}
				claims = auth.Claims{UserID: uid}
			} else {
				token := bearerToken(r.Header.Get("Authorization"))
				if token == "" {
					next.ServeHTTP(w, r)
					return
				}
				c, err := opts.Verifier.Verify(r.Context(), token)
				if err != nil {
					// No cortamos aquí; sin sesión las rutas protegidas responden 401.
					log.Debug("token rejected", map[string]any{"err": err.Error()})
					next.ServeHTTP(w, r)
					return
				}
				claims = c
			}

			sess := auth.Session{UserID: claims.UserID, Email: claims.Email, Role: claims.Role}
			if sess.Role == "" {
				sess.Role = auth.RoleMember
				if opts.Roles != nil {
					role, err := opts.Roles.RoleOf(r.Context(), sess.UserID)
					if err != nil {
						log.Error("role lookup failed", map[string]any{"user_id": sess.UserID, "err": err.Error()})
					} else if role != "" {
						sess.Role = role
					}
				}
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
		})
	}
}

func WithSession(ctx context.Context, s auth.Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

func GetSession(ctx context.Context) (auth.Session, bool) {
	s, ok := ctx.Value(sessionKey).(auth.Session)
	if !ok || !s.IsAuthenticated() {
		return auth.Session{}, false
	}
	return s, true
}

// RequireSession corta con 401 si no hay sesión.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetSession(r.Context()); !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin: 401 sin sesión, 403 si la sesión no es admin.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, ok := GetSession(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		if !s.IsAdmin() {
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(authHeader string) string {
	if strings.TrimSpace(authHeader) == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
