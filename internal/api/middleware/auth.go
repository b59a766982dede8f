// internal/api/middleware/auth.go
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"internhub-api/internal/auth"
	"internhub-api/internal/logger"
	"internhub-api/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	authorizationHeader = "Authorization"
	identityCtx         = "identity" // Key to store the resolved identity in context
)

var errMissingIdentity = errors.New("identity not found in context")

// JWTAuthMiddleware resolves the bearer token and stores the identity for
// downstream handlers. Requests without a valid token are rejected with 401.
func JWTAuthMiddleware(resolver auth.IdentityResolver, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, msg := bearerToken(c)
		if msg != "" {
			log.Debug("Auth middleware: rejected request", map[string]interface{}{"path": c.FullPath(), "reason": msg})
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		id, err := resolver.Resolve(c.Request.Context(), token)
		if err != nil {
			log.Debug("Auth middleware: token rejected", map[string]interface{}{"error": err.Error()})
			if errors.Is(err, auth.ErrTokenExpired) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token has expired"})
			} else {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			}
			return
		}

		c.Set(identityCtx, id)
		c.Next()
	}
}

// OptionalAuthMiddleware attaches the identity when a valid bearer token is
// present and lets anonymous requests through. Invalid tokens are still rejected.
func OptionalAuthMiddleware(resolver auth.IdentityResolver, log logger.Logger) gin.HandlerFunc {
	required := JWTAuthMiddleware(resolver, log)
	return func(c *gin.Context) {
		if c.GetHeader(authorizationHeader) == "" {
			c.Next()
			return
		}
		required(c)
	}
}

func bearerToken(c *gin.Context) (string, string) {
	authHeader := c.GetHeader(authorizationHeader)
	if authHeader == "" {
		return "", "Authorization header required"
	}
	headerParts := strings.SplitN(authHeader, " ", 2)
	if len(headerParts) != 2 || strings.ToLower(headerParts[0]) != "bearer" || strings.TrimSpace(headerParts[1]) == "" {
		return "", "Invalid Authorization header format"
	}
	return strings.TrimSpace(headerParts[1]), ""
}

// GetIdentityFromContext returns the identity stored by JWTAuthMiddleware.
func GetIdentityFromContext(c *gin.Context) (models.Identity, error) {
	v, exists := c.Get(identityCtx)
	if !exists {
		return models.Identity{}, errMissingIdentity
	}
	id, ok := v.(models.Identity)
	if !ok {
		return models.Identity{}, errors.New("identity in context is of invalid type")
	}
	return id, nil
}

// OptionalIdentity returns the identity when the request carried one.
func OptionalIdentity(c *gin.Context) *models.Identity {
	id, err := GetIdentityFromContext(c)
	if err != nil {
		return nil
	}
	return &id
}
