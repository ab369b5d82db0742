package memory

import (
	"context"
	"strings"
	"sync"

	"refugio-adopciones/internal/ports/auth"
)

// RoleRepo guarda roles en memoria. Sin fila => member.
type RoleRepo struct {
	mu     sync.RWMutex
	byUser map[string]auth.Role
}

// NewRoleRepo arranca con adminIDs como admins (ADMIN_USER_IDS en dev).
func NewRoleRepo(adminIDs ...string) *RoleRepo {
	r := &RoleRepo{byUser: make(map[string]auth.Role)}
	for _, id := range adminIDs {
		if id = strings.TrimSpace(id); id != "" {
			r.byUser[id] = auth.RoleAdmin
		}
	}
	return r
}

func (r *RoleRepo) RoleOf(ctx context.Context, userID string) (auth.Role, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if role, ok := r.byUser[userID]; ok {
		return role, nil
	}
	return auth.RoleMember, nil
}

func (r *RoleRepo) SetRole(ctx context.Context, userID string, role auth.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byUser[userID] = role
	return nil
}
