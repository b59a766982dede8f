package routes_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"internhub-api/config"
	"internhub-api/internal/api/handlers"
	"internhub-api/internal/api/routes"
	"internhub-api/internal/app"
	"internhub-api/internal/auth"
	"internhub-api/internal/logger"
	"internhub-api/internal/models"
	"internhub-api/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSecret = "routes-test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

// MockApplicationHandler is a mock implementation of ApplicationHandlerInterface
type MockApplicationHandler struct {
	mock.Mock
}

func (m *MockApplicationHandler) Submit(c *gin.Context)            { m.Called(c) }
func (m *MockApplicationHandler) List(c *gin.Context)              { m.Called(c) }
func (m *MockApplicationHandler) Get(c *gin.Context)               { m.Called(c) }
func (m *MockApplicationHandler) Timeline(c *gin.Context)          { m.Called(c) }
func (m *MockApplicationHandler) UpdateStatus(c *gin.Context)      { m.Called(c) }
func (m *MockApplicationHandler) BulkUpdate(c *gin.Context)        { m.Called(c) }
func (m *MockApplicationHandler) AddNote(c *gin.Context)           { m.Called(c) }
func (m *MockApplicationHandler) Rate(c *gin.Context)              { m.Called(c) }
func (m *MockApplicationHandler) ScheduleInterview(c *gin.Context) { m.Called(c) }

// Ensure MockApplicationHandler implements the interface (compile-time check)
var _ handlers.ApplicationHandlerInterface = (*MockApplicationHandler)(nil)

func passThrough(c *gin.Context) { c.Next() }

func TestRegisterApplicationRoutes(t *testing.T) {
	router := gin.New()
	guards := routes.Guards{Auth: passThrough, Partner: passThrough, Student: passThrough}

	routes.RegisterApplicationRoutes(router.Group("/api"), new(MockApplicationHandler), guards)

	expectedRoutes := []struct {
		Method string
		Path   string
	}{
		{http.MethodPost, "/api/applications"},
		{http.MethodGet, "/api/applications"},
		{http.MethodGet, "/api/applications/:id"},
		{http.MethodGet, "/api/applications/:id/timeline"},
		{http.MethodPost, "/api/applications/bulk-update"},
		{http.MethodPatch, "/api/applications/:id/status"},
		{http.MethodPatch, "/api/applications/:id/rating"},
		{http.MethodPost, "/api/applications/:id/note"},
		{http.MethodPost, "/api/applications/:id/schedule-interview"},
	}

	registered := make(map[string]bool)
	for _, info := range router.Routes() {
		registered[info.Method+" "+info.Path] = true
	}
	assert.Len(t, router.Routes(), len(expectedRoutes))
	for _, expected := range expectedRoutes {
		assert.True(t, registered[expected.Method+" "+expected.Path], "Expected route %s %s to be registered", expected.Method, expected.Path)
	}
}

// --- Full router against the memory store ---

type apiClient struct {
	t       *testing.T
	handler http.Handler
}

func newTestApp(t *testing.T) (*apiClient, *app.Application) {
	t.Helper()
	cfg := &config.Config{
		JWT:       config.JWTConfig{Secret: testSecret},
		Storage:   config.StorageConfig{Driver: "memory"},
		RateLimit: config.RateLimitConfig{Enabled: false},
		Discovery: config.DiscoveryConfig{MaxPageSize: 50, CacheTTL: time.Second},
	}
	application, err := app.New(context.Background(), cfg, logger.NewNop(), handlers.NewValidator())
	require.NoError(t, err)
	t.Cleanup(application.Close)

	router := gin.New()
	routes.RegisterRoutes(router, application)
	return &apiClient{t: t, handler: router}, application
}

func (a *apiClient) do(method, path string, caller *models.Identity, body interface{}) *httptest.ResponseRecorder {
	a.t.Helper()
	var payload string
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		payload = string(raw)
	}
	req := httptest.NewRequest(method, path, strings.NewReader(payload))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if caller != nil {
		token, err := auth.SignToken(testSecret, *caller, time.Hour)
		require.NoError(a.t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.handler.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHiringFlowOverHTTP(t *testing.T) {
	api, application := newTestApp(t)

	partner := models.Identity{UID: "acme-hr", Email: "hr@acme.test", Role: models.RolePartner}
	student := models.Identity{UID: "stu-1", Email: "stu1@uni.test", Role: models.RoleStudent}
	admin := models.Identity{UID: "ops", Email: "ops@internhub.test", Role: models.RoleAdmin}

	// Register: pending partners cannot post or discover.
	w := api.do(http.MethodPost, "/api/v1/partners/register", &partner, gin.H{"companyName": "Acme Corp"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	registered := decode[models.Partner](t, w)
	assert.Equal(t, models.VerificationPending, registered.VerificationStatus)

	w = api.do(http.MethodPost, "/api/v1/partners/register", &partner, gin.H{"companyName": "Acme Corp"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	jobBody := gin.H{"title": "Backend Intern", "description": "Build Go services", "skills": []string{"go"}, "status": "active"}
	w = api.do(http.MethodPost, "/api/v1/jobs", &partner, jobBody)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = api.do(http.MethodGet, "/api/v1/students/discover", &partner, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Only admins verify.
	verifyPath := fmt.Sprintf("/api/v1/partners/admin/%s/verify", registered.ID)
	w = api.do(http.MethodPatch, verifyPath, &partner, gin.H{"decision": "approved"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = api.do(http.MethodPatch, verifyPath, &admin, gin.H{"decision": "approved"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = api.do(http.MethodGet, "/api/v1/partners/verification-status", &partner, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[dto.VerificationStatusResponse](t, w).CanPostJobs)

	// Approved partner publishes a job that shows up publicly.
	w = api.do(http.MethodPost, "/api/v1/jobs", &partner, jobBody)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	job := decode[models.JobPosting](t, w)
	assert.Equal(t, "Acme Corp", job.CompanyName)

	w = api.do(http.MethodGet, "/api/v1/jobs/public/active", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, decode[dto.PageResponse[models.JobPosting]](t, w).Total)

	// Students cannot use partner routes.
	w = api.do(http.MethodGet, "/api/v1/jobs/partner/my-jobs", &student, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Apply once; the second attempt conflicts.
	w = api.do(http.MethodPost, "/api/v1/applications", &student, gin.H{"jobId": job.ID, "coverLetter": "Keen to learn"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	application1 := decode[models.JobApplication](t, w)
	assert.Equal(t, models.ApplicationID(student.UID, job.ID), application1.ID)

	w = api.do(http.MethodPost, "/api/v1/applications", &student, gin.H{"jobId": job.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Partners move the application; students only read it.
	statusPath := fmt.Sprintf("/api/v1/applications/%s/status", application1.ID)
	w = api.do(http.MethodPatch, statusPath, &student, gin.H{"status": "selected"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = api.do(http.MethodPatch, statusPath, &partner, gin.H{"status": "selected", "note": "Offer sent"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = api.do(http.MethodGet, fmt.Sprintf("/api/v1/applications/%s/timeline", application1.ID), &student, nil)
	require.Equal(t, http.StatusOK, w.Code)
	history := decode[[]models.StatusEntry](t, w)
	require.Len(t, history, 2)
	assert.Equal(t, models.ApplicationSelected, history[1].Status)

	w = api.do(http.MethodPatch, statusPath, &partner, gin.H{"status": "rejected"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(http.MethodGet, "/api/v1/partners/stats", &partner, nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats := decode[models.PartnerStats](t, w)
	assert.Equal(t, 1, stats.TotalJobsPosted)
	assert.Equal(t, 1, stats.ActiveJobs)
	assert.Equal(t, 1, stats.TotalApplications)
	assert.Equal(t, 1, stats.TotalHires)

	// Discovery only sees visible candidates.
	application.MemoryCandidates.Put(models.CandidateProfile{
		UID: "stu-1", Name: "Asha", Skills: []string{"Go"}, VisibleToPartners: true,
		ResumeURL: "https://cdn.test/asha.pdf", CreatedAt: time.Now(),
	})
	application.MemoryCandidates.Put(models.CandidateProfile{UID: "stu-2", Name: "Hidden", CreatedAt: time.Now()})

	w = api.do(http.MethodGet, "/api/v1/students/discover?skills=go", &partner, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	found := decode[dto.PageResponse[models.CandidateSummary]](t, w)
	require.Equal(t, 1, found.Total)
	assert.Equal(t, "stu-1", found.Items[0].UID)

	w = api.do(http.MethodGet, "/api/v1/students/stu-2/resume", &partner, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = api.do(http.MethodGet, "/api/v1/students/stu-1/resume", &partner, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://cdn.test/asha.pdf", decode[dto.ResumeResponse](t, w).ResumeURL)
}

func TestRegisteredStudentIsTreatedAsPartner(t *testing.T) {
	api, _ := newTestApp(t)
	caller := models.Identity{UID: "switcher", Email: "founder@startup.test", Role: models.RoleStudent}

	w := api.do(http.MethodGet, "/api/v1/partners/profile", &caller, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = api.do(http.MethodPost, "/api/v1/partners/register", &caller, gin.H{"companyName": "Startup"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = api.do(http.MethodGet, "/api/v1/partners/profile", &caller, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Startup", decode[models.Partner](t, w).CompanyName)
}

func TestAuthErrors(t *testing.T) {
	api, _ := newTestApp(t)

	w := api.do(http.MethodGet, "/api/v1/applications", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Authorization header required"}`, w.Body.String())

	w = api.do(http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = api.do(http.MethodGet, "/metrics", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPublicJobsFarPage(t *testing.T) {
	api, _ := newTestApp(t)

	w := api.do(http.MethodGet, "/api/v1/jobs?page=92233720368547760&limit=100", nil, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	page := decode[dto.PageResponse[models.JobPosting]](t, w)
	assert.Empty(t, page.Items)
	assert.Equal(t, 92233720368547760, page.Page)
}
