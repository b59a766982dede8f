package middleware

import (
	"context"
	"errors"
	"net/http"

	"internhub-api/internal/models"
	"internhub-api/internal/services"

	"github.com/gin-gonic/gin"
)

// ErrPolicyDenied is returned by policies that refuse an identity.
var ErrPolicyDenied = errors.New("access denied")

// Policy decides whether an authenticated identity may reach a route.
type Policy interface {
	Check(ctx context.Context, id models.Identity) error
}

// PolicyFunc adapts a function to Policy.
type PolicyFunc func(ctx context.Context, id models.Identity) error

func (f PolicyFunc) Check(ctx context.Context, id models.Identity) error {
	return f(ctx, id)
}

// RequireRole admits identities holding any of roles.
func RequireRole(roles ...models.Role) Policy {
	return PolicyFunc(func(_ context.Context, id models.Identity) error {
		if id.HasRole(roles...) {
			return nil
		}
		return ErrPolicyDenied
	})
}

// PartnerGate reports whether a partner uid is approved.
type PartnerGate interface {
	RequireApproved(ctx context.Context, uid string) (*models.Partner, error)
}

// RequireApprovedPartner admits partners whose verification is approved.
func RequireApprovedPartner(gate PartnerGate) Policy {
	return PolicyFunc(func(ctx context.Context, id models.Identity) error {
		if id.Role != models.RolePartner {
			return ErrPolicyDenied
		}
		if _, err := gate.RequireApproved(ctx, id.UID); err != nil {
			if errors.Is(err, services.ErrForbidden) {
				return ErrPolicyDenied
			}
			return err
		}
		return nil
	})
}

// Authorize runs every policy against the identity set by JWTAuthMiddleware.
// Refusals abort with 403 and a missing identity with 401. Other policy
// failures abort with 500.
func Authorize(policies ...Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := GetIdentityFromContext(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		for _, p := range policies {
			err := p.Check(c.Request.Context(), id)
			if err == nil {
				continue
			}
			if errors.Is(err, ErrPolicyDenied) {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
				return
			}
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		c.Next()
	}
}
