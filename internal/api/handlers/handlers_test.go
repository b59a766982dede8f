package handlers_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"internhub-api/internal/api/middleware"
	"internhub-api/internal/auth"
	"internhub-api/internal/logger"
	"internhub-api/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const testSecret = "handler-test-secret"

var (
	partnerID = models.Identity{UID: "partner-1", Email: "hr@acme.test", Role: models.RolePartner}
	studentID = models.Identity{UID: "student-1", Email: "s1@uni.test", Role: models.RoleStudent}
	adminID   = models.Identity{UID: "admin-1", Email: "ops@internhub.test", Role: models.RoleAdmin}
)

func init() {
	gin.SetMode(gin.TestMode)
}

func authMiddleware() gin.HandlerFunc {
	return middleware.JWTAuthMiddleware(auth.NewJWTResolver(testSecret, ""), logger.NewNop())
}

func optionalAuthMiddleware() gin.HandlerFunc {
	return middleware.OptionalAuthMiddleware(auth.NewJWTResolver(testSecret, ""), logger.NewNop())
}

func tokenFor(t *testing.T, id models.Identity) string {
	t.Helper()
	token, err := auth.SignToken(testSecret, id, time.Hour)
	require.NoError(t, err)
	return token
}

// perform sends body (when non-empty) as JSON with the caller's bearer token.
func perform(t *testing.T, r http.Handler, method, path, body string, caller *models.Identity) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if caller != nil {
		req.Header.Set("Authorization", "Bearer "+tokenFor(t, *caller))
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorBody(msg string) string {
	return fmt.Sprintf(`{"error":%q}`, msg)
}

var errDatabase = errors.New("database unavailable")
