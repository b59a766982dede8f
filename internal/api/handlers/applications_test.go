package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"internhub-api/internal/api/handlers"
	"internhub-api/internal/logger"
	"internhub-api/internal/models"
	"internhub-api/internal/services"
	"internhub-api/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupApplicationRouter() (*gin.Engine, *MockApplicationService) {
	svc := new(MockApplicationService)
	h := handlers.NewApplicationHandler(svc, handlers.NewValidator(), logger.NewNop())

	r := gin.New()
	g := r.Group("/applications", authMiddleware())
	g.POST("", h.Submit)
	g.GET("", h.List)
	g.POST("/bulk-update", h.BulkUpdate)
	g.GET("/:id", h.Get)
	g.GET("/:id/timeline", h.Timeline)
	g.PATCH("/:id/status", h.UpdateStatus)
	g.PATCH("/:id/rating", h.Rate)
	g.POST("/:id/note", h.AddNote)
	g.POST("/:id/schedule-interview", h.ScheduleInterview)
	return r, svc
}

func TestApplicationHandler_Submit(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		r, svc := setupApplicationRouter()
		jobID := uuid.New()
		app := &models.JobApplication{ID: models.ApplicationID(studentID.UID, jobID), JobID: jobID, Status: models.ApplicationApplied}
		svc.On("Submit", mock.Anything, mock.MatchedBy(func(req *dto.SubmitApplicationRequest) bool {
			return req.JobID == jobID && req.Student == studentID && req.CoverLetter == "hello"
		})).Return(app, nil).Once()

		w := perform(t, r, http.MethodPost, "/applications", fmt.Sprintf(`{"jobId":%q,"coverLetter":"hello"}`, jobID), &studentID)

		require.Equal(t, http.StatusCreated, w.Code)
		var got models.JobApplication
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, app.ID, got.ID)
		svc.AssertExpectations(t)
	})

	t.Run("Missing job id", func(t *testing.T) {
		r, svc := setupApplicationRouter()
		w := perform(t, r, http.MethodPost, "/applications", `{"coverLetter":"hello"}`, &studentID)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Field 'jobId' is required")
		svc.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
	})

	t.Run("Duplicate", func(t *testing.T) {
		r, svc := setupApplicationRouter()
		svc.On("Submit", mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("%w: already applied to this job", services.ErrConflict)).Once()

		w := perform(t, r, http.MethodPost, "/applications", fmt.Sprintf(`{"jobId":%q}`, uuid.New()), &studentID)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, errorBody("conflict: already applied to this job"), w.Body.String())
	})
}

func TestApplicationHandler_List(t *testing.T) {
	t.Run("Filters are forwarded", func(t *testing.T) {
		r, svc := setupApplicationRouter()
		jobID := uuid.New()
		svc.On("ListApplications", mock.Anything, mock.MatchedBy(func(req *dto.ListApplicationsRequest) bool {
			return req.Caller == partnerID && req.JobID == jobID.String() && req.Status == "applied"
		})).Return([]models.ApplicationWithJob{{JobApplication: models.JobApplication{JobID: jobID}}}, 1, nil).Once()

		w := perform(t, r, http.MethodGet, "/applications?jobId="+jobID.String()+"&status=applied", "", &partnerID)

		require.Equal(t, http.StatusOK, w.Code)
		var page dto.PageResponse[models.ApplicationWithJob]
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
		assert.Equal(t, 1, page.Total)
		svc.AssertExpectations(t)
	})

	t.Run("Bad job id", func(t *testing.T) {
		r, svc := setupApplicationRouter()
		w := perform(t, r, http.MethodGet, "/applications?jobId=nope", "", &partnerID)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Field 'jobId' must be a valid UUID")
		svc.AssertNotCalled(t, "ListApplications", mock.Anything, mock.Anything)
	})
}

func TestApplicationHandler_Get(t *testing.T) {
	r, svc := setupApplicationRouter()
	id := uuid.New()
	svc.On("GetApplication", mock.Anything, &dto.GetApplicationRequest{ApplicationID: id, Caller: studentID}).
		Return(nil, fmt.Errorf("%w: application belongs to another student", services.ErrForbidden)).Once()

	w := perform(t, r, http.MethodGet, "/applications/"+id.String(), "", &studentID)

	assert.Equal(t, http.StatusForbidden, w.Code)
	svc.AssertExpectations(t)
}

func TestApplicationHandler_Timeline(t *testing.T) {
	r, svc := setupApplicationRouter()
	id := uuid.New()
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.On("Timeline", mock.Anything, mock.Anything).Return([]models.StatusEntry{
		{Status: models.ApplicationApplied, ChangedBy: studentID.UID, ChangedAt: at},
		{Status: models.ApplicationReviewed, ChangedBy: partnerID.UID, ChangedAt: at.Add(time.Hour)},
	}, nil).Once()

	w := perform(t, r, http.MethodGet, "/applications/"+id.String()+"/timeline", "", &studentID)

	require.Equal(t, http.StatusOK, w.Code)
	var history []models.StatusEntry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &history))
	require.Len(t, history, 2)
	assert.Equal(t, models.ApplicationReviewed, history[1].Status)
}

func TestApplicationHandler_UpdateStatus(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		r, svc := setupApplicationRouter()
		id := uuid.New()
		svc.On("SetStatus", mock.Anything, mock.MatchedBy(func(req *dto.UpdateApplicationStatusRequest) bool {
			return req.ApplicationID == id && req.Actor == partnerID && req.Status == "shortlisted" && req.Note == "strong"
		})).Return(&models.JobApplication{ID: id, Status: models.ApplicationShortlisted}, nil).Once()

		w := perform(t, r, http.MethodPatch, "/applications/"+id.String()+"/status", `{"status":"shortlisted","note":"strong"}`, &partnerID)

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("Final status", func(t *testing.T) {
		r, svc := setupApplicationRouter()
		svc.On("SetStatus", mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("%w: application is selected", services.ErrInvalidState)).Once()

		w := perform(t, r, http.MethodPatch, "/applications/"+uuid.NewString()+"/status", `{"status":"reviewed"}`, &partnerID)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Invalid id", func(t *testing.T) {
		r, _ := setupApplicationRouter()
		w := perform(t, r, http.MethodPatch, "/applications/123/status", `{"status":"reviewed"}`, &partnerID)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, errorBody("Invalid application ID format"), w.Body.String())
	})
}

func TestApplicationHandler_BulkUpdate(t *testing.T) {
	t.Run("Reports skipped ids", func(t *testing.T) {
		r, svc := setupApplicationRouter()
		ok, missing := uuid.New(), uuid.New()
		svc.On("BulkSetStatus", mock.Anything, mock.MatchedBy(func(req *dto.BulkUpdateStatusRequest) bool {
			return len(req.ApplicationIDs) == 2 && req.Status == "rejected" && req.Actor == partnerID
		})).Return(&dto.BulkUpdateResult{
			Updated: []uuid.UUID{ok},
			Skipped: []dto.BulkSkip{{ID: missing, Reason: "not found"}},
		}, nil).Once()

		body := fmt.Sprintf(`{"applicationIds":[%q,%q],"status":"rejected"}`, ok, missing)
		w := perform(t, r, http.MethodPost, "/applications/bulk-update", body, &partnerID)

		require.Equal(t, http.StatusOK, w.Code)
		var res dto.BulkUpdateResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Equal(t, []uuid.UUID{ok}, res.Updated)
		require.Len(t, res.Skipped, 1)
		assert.Equal(t, "not found", res.Skipped[0].Reason)
	})

	t.Run("Empty id list", func(t *testing.T) {
		r, svc := setupApplicationRouter()
		w := perform(t, r, http.MethodPost, "/applications/bulk-update", `{"applicationIds":[],"status":"rejected"}`, &partnerID)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "BulkSetStatus", mock.Anything, mock.Anything)
	})
}

func TestApplicationHandler_AddNoteAndRate(t *testing.T) {
	r, svc := setupApplicationRouter()
	id := uuid.New()
	note := "call back monday"
	svc.On("AddNote", mock.Anything, mock.MatchedBy(func(req *dto.AddNoteRequest) bool {
		return req.ApplicationID == id && req.Note == note
	})).Return(&models.JobApplication{ID: id, Notes: &note}, nil).Once()
	svc.On("Rate", mock.Anything, mock.MatchedBy(func(req *dto.RateApplicationRequest) bool {
		return req.Rating == 9
	})).Return(nil, fmt.Errorf("%w: rating must be between 1 and 5", services.ErrInvalidArgument)).Once()

	w := perform(t, r, http.MethodPost, "/applications/"+id.String()+"/note", `{"note":"call back monday"}`, &partnerID)
	assert.Equal(t, http.StatusOK, w.Code)

	w = perform(t, r, http.MethodPatch, "/applications/"+id.String()+"/rating", `{"rating":9}`, &partnerID)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "between 1 and 5")

	svc.AssertExpectations(t)
}

func TestApplicationHandler_ScheduleInterview(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		r, svc := setupApplicationRouter()
		id := uuid.New()
		when := time.Date(2026, 11, 2, 9, 30, 0, 0, time.UTC)
		svc.On("ScheduleInterview", mock.Anything, mock.MatchedBy(func(req *dto.ScheduleInterviewRequest) bool {
			return req.ApplicationID == id && req.ScheduledAt.Equal(when) && req.Mode == "online"
		})).Return(&models.JobApplication{ID: id, Status: models.ApplicationShortlisted}, nil).Once()

		body := `{"scheduledAt":"2026-11-02T09:30:00Z","mode":"online","meetingLink":"https://meet.test/abc"}`
		w := perform(t, r, http.MethodPost, "/applications/"+id.String()+"/schedule-interview", body, &partnerID)

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("Unknown mode", func(t *testing.T) {
		r, svc := setupApplicationRouter()
		body := `{"scheduledAt":"2026-11-02T09:30:00Z","mode":"carrier-pigeon"}`
		w := perform(t, r, http.MethodPost, "/applications/"+uuid.NewString()+"/schedule-interview", body, &partnerID)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Field 'mode' must be one of")
		svc.AssertNotCalled(t, "ScheduleInterview", mock.Anything, mock.Anything)
	})
}
