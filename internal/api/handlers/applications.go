package handlers

import (
	"net/http"

	"internhub-api/internal/logger"
	"internhub-api/internal/models"
	"internhub-api/internal/services"
	"internhub-api/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ApplicationHandler holds dependencies for the application pipeline.
type ApplicationHandler struct {
	service   services.ApplicationService
	validator *validator.Validate
	log       logger.Logger
}

// NewApplicationHandler creates a new ApplicationHandler.
func NewApplicationHandler(service services.ApplicationService, validate *validator.Validate, log logger.Logger) *ApplicationHandler {
	return &ApplicationHandler{service: service, validator: validate, log: log}
}

// Submit godoc
// @Summary      Apply to a job
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        application body      dto.SubmitApplicationRequest true "Job and cover letter"
// @Success      201 {object}  models.JobApplication
// @Failure      400 {object}  dto.ErrorResponse "Already applied or job closed"
// @Failure      404 {object}  dto.ErrorResponse
// @Router       /applications [post]
// @Security     BearerAuth
func (h *ApplicationHandler) Submit(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}
	var req dto.SubmitApplicationRequest
	if !bindAndValidate(c, h.validator, &req) {
		return
	}
	req.Student = id

	app, err := h.service.Submit(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.log, err, "Failed to submit application")
		return
	}
	c.JSON(http.StatusCreated, app)
}

// List godoc
// @Summary      List applications
// @Description  Partners see applications to their jobs, students see their own.
// @Tags         applications
// @Produce      json
// @Param        jobId  query string false "Job filter" Format(uuid)
// @Param        status query string false "Status filter"
// @Param        page   query int    false "Page" default(1)
// @Param        limit  query int    false "Page size" default(20)
// @Success      200 {object}  dto.PageResponse[models.ApplicationWithJob]
// @Router       /applications [get]
// @Security     BearerAuth
func (h *ApplicationHandler) List(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}
	var req dto.ListApplicationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	if !validateStruct(c, h.validator, &req) {
		return
	}
	req.Caller = id

	apps, total, err := h.service.ListApplications(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.log, err, "Failed to list applications")
		return
	}
	page := req.Pagination.Normalize(dto.MaxPageSize)
	c.JSON(http.StatusOK, dto.PageResponse[models.ApplicationWithJob]{Items: apps, Total: total, Page: page.Page, Limit: page.Limit})
}

// Get godoc
// @Summary      Get an application
// @Tags         applications
// @Produce      json
// @Param        id path      string true "Application ID" Format(uuid)
// @Success      200 {object}  models.JobApplication
// @Failure      403 {object}  dto.ErrorResponse
// @Failure      404 {object}  dto.ErrorResponse
// @Router       /applications/{id} [get]
// @Security     BearerAuth
func (h *ApplicationHandler) Get(c *gin.Context) {
	req, ok := h.readRequest(c)
	if !ok {
		return
	}
	app, err := h.service.GetApplication(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.log, err, "Failed to retrieve application")
		return
	}
	c.JSON(http.StatusOK, app)
}

// Timeline godoc
// @Summary      Get an application's status history
// @Tags         applications
// @Produce      json
// @Param        id path      string true "Application ID" Format(uuid)
// @Success      200 {array}   models.StatusEntry
// @Router       /applications/{id}/timeline [get]
// @Security     BearerAuth
func (h *ApplicationHandler) Timeline(c *gin.Context) {
	req, ok := h.readRequest(c)
	if !ok {
		return
	}
	history, err := h.service.Timeline(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.log, err, "Failed to retrieve application timeline")
		return
	}
	c.JSON(http.StatusOK, history)
}

func (h *ApplicationHandler) readRequest(c *gin.Context) (*dto.GetApplicationRequest, bool) {
	id, ok := requireIdentity(c)
	if !ok {
		return nil, false
	}
	appID, ok := parseUUIDParam(c, "id", "application")
	if !ok {
		return nil, false
	}
	return &dto.GetApplicationRequest{ApplicationID: appID, Caller: id}, true
}

// UpdateStatus godoc
// @Summary      Move an application through the pipeline
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id     path      string                             true "Application ID" Format(uuid)
// @Param        status body      dto.UpdateApplicationStatusRequest true "New status and note"
// @Success      200 {object}  models.JobApplication
// @Failure      400 {object}  dto.ErrorResponse
// @Failure      403 {object}  dto.ErrorResponse
// @Router       /applications/{id}/status [patch]
// @Security     BearerAuth
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}
	appID, ok := parseUUIDParam(c, "id", "application")
	if !ok {
		return
	}
	var req dto.UpdateApplicationStatusRequest
	if !bindAndValidate(c, h.validator, &req) {
		return
	}
	req.ApplicationID = appID
	req.Actor = id

	app, err := h.service.SetStatus(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.log, err, "Failed to update application status")
		return
	}
	c.JSON(http.StatusOK, app)
}

// BulkUpdate godoc
// @Summary      Update many applications at once
// @Description  Status must be reviewed, shortlisted or rejected. Ids that cannot be updated are reported as skipped.
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        body body      dto.BulkUpdateStatusRequest true "Ids and status"
// @Success      200 {object}  dto.BulkUpdateResult
// @Failure      400 {object}  dto.ErrorResponse
// @Router       /applications/bulk-update [post]
// @Security     BearerAuth
func (h *ApplicationHandler) BulkUpdate(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}
	var req dto.BulkUpdateStatusRequest
	if !bindAndValidate(c, h.validator, &req) {
		return
	}
	req.Actor = id

	result, err := h.service.BulkSetStatus(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.log, err, "Failed to bulk update applications")
		return
	}
	c.JSON(http.StatusOK, result)
}

// AddNote godoc
// @Summary      Set the partner note on an application
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id   path      string             true "Application ID" Format(uuid)
// @Param        note body      dto.AddNoteRequest true "Note"
// @Success      200 {object}  models.JobApplication
// @Router       /applications/{id}/note [post]
// @Security     BearerAuth
func (h *ApplicationHandler) AddNote(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}
	appID, ok := parseUUIDParam(c, "id", "application")
	if !ok {
		return
	}
	var req dto.AddNoteRequest
	if !bindAndValidate(c, h.validator, &req) {
		return
	}
	req.ApplicationID = appID
	req.Actor = id

	app, err := h.service.AddNote(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.log, err, "Failed to save note")
		return
	}
	c.JSON(http.StatusOK, app)
}

// Rate godoc
// @Summary      Rate an application 1 to 5
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id     path      string                     true "Application ID" Format(uuid)
// @Param        rating body      dto.RateApplicationRequest true "Rating"
// @Success      200 {object}  models.JobApplication
// @Failure      400 {object}  dto.ErrorResponse
// @Router       /applications/{id}/rating [patch]
// @Security     BearerAuth
func (h *ApplicationHandler) Rate(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}
	appID, ok := parseUUIDParam(c, "id", "application")
	if !ok {
		return
	}
	var req dto.RateApplicationRequest
	if !bindAndValidate(c, h.validator, &req) {
		return
	}
	req.ApplicationID = appID
	req.Actor = id

	app, err := h.service.Rate(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.log, err, "Failed to rate application")
		return
	}
	c.JSON(http.StatusOK, app)
}

// ScheduleInterview godoc
// @Summary      Record interview details
// @Description  Does not change the application status.
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id        path      string                       true "Application ID" Format(uuid)
// @Param        interview body      dto.ScheduleInterviewRequest true "Interview"
// @Success      200 {object}  models.JobApplication
// @Router       /applications/{id}/schedule-interview [post]
// @Security     BearerAuth
func (h *ApplicationHandler) ScheduleInterview(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}
	appID, ok := parseUUIDParam(c, "id", "application")
	if !ok {
		return
	}
	var req dto.ScheduleInterviewRequest
	if !bindAndValidate(c, h.validator, &req) {
		return
	}
	req.ApplicationID = appID
	req.Actor = id

	app, err := h.service.ScheduleInterview(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.log, err, "Failed to schedule interview")
		return
	}
	c.JSON(http.StatusOK, app)
}
