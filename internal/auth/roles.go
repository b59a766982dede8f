package auth

import (
	"context"
	"errors"

	"internhub-api/internal/logger"
	"internhub-api/internal/models"
	"internhub-api/internal/storage"
)

// RoleRecordResolver overlays the stored role record on the token's role, so a
// caller who registered as a partner is treated as one before the identity
// provider reissues their token. Admin tokens are never overridden.
type RoleRecordResolver struct {
	next  IdentityResolver
	roles storage.RoleRepository
	log   logger.Logger
}

func NewRoleRecordResolver(next IdentityResolver, roles storage.RoleRepository, log logger.Logger) *RoleRecordResolver {
	return &RoleRecordResolver{next: next, roles: roles, log: log}
}

var _ IdentityResolver = (*RoleRecordResolver)(nil)

func (r *RoleRecordResolver) Resolve(ctx context.Context, token string) (models.Identity, error) {
	id, err := r.next.Resolve(ctx, token)
	if err != nil || id.Role == models.RoleAdmin {
		return id, err
	}

	rec, err := r.roles.GetByUID(ctx, id.UID)
	switch {
	case err == nil:
		if rec.Role.IsValid() {
			id.Role = rec.Role
		}
	case errors.Is(err, storage.ErrNotFound):
	default:
		// The token's own role is still authoritative enough to serve the request.
		r.log.Warn("Role record lookup failed", map[string]interface{}{"uid": id.UID, "error": err.Error()})
	}
	return id, nil
}
