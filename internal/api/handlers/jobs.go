package handlers

import (
	"net/http"

	"internhub-api/internal/api/middleware"
	"internhub-api/internal/logger"
	"internhub-api/internal/models"
	"internhub-api/internal/services"
	"internhub-api/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// JobHandler holds dependencies for job posting operations.
type JobHandler struct {
	service   services.JobService
	validator *validator.Validate
	log       logger.Logger
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(service services.JobService, validate *validator.Validate, log logger.Logger) *JobHandler {
	return &JobHandler{service: service, validator: validate, log: log}
}

// CreateJob godoc
// @Summary      Create a job posting
// @Description  Approved partners only. Status may be draft (default) or active.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        job body      dto.CreateJobRequest true "Job details"
// @Success      201 {object}  models.JobPosting
// @Failure      400 {object}  dto.ErrorResponse
// @Failure      403 {object}  dto.ErrorResponse "Partner not approved"
// @Router       /jobs [post]
// @Security     BearerAuth
func (h *JobHandler) CreateJob(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}
	var req dto.CreateJobRequest
	if !bindAndValidate(c, h.validator, &req) {
		return
	}
	req.PartnerUID = id.UID

	job, err := h.service.CreateJob(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.log, err, "Failed to create job")
		return
	}
	c.JSON(http.StatusCreated, job)
}

// GetJob godoc
// @Summary      Get a job posting
// @Description  Public. Drafts are only returned to the owning partner. Counts a view.
// @Tags         jobs
// @Produce      json
// @Param        id path      string true "Job ID" Format(uuid)
// @Success      200 {object}  models.JobPosting
// @Failure      404 {object}  dto.ErrorResponse
// @Router       /jobs/{id} [get]
func (h *JobHandler) GetJob(c *gin.Context) {
	jobID, ok := parseUUIDParam(c, "id", "job")
	if !ok {
		return
	}
	job, err := h.service.ViewJob(c.Request.Context(), &dto.ViewJobRequest{
		JobID:  jobID,
		Viewer: middleware.OptionalIdentity(c),
	})
	if err != nil {
		respondError(c, h.log, err, "Failed to retrieve job")
		return
	}
	c.JSON(http.StatusOK, job)
}

// ListPublicJobs godoc
// @Summary      List active public jobs
// @Tags         jobs
// @Produce      json
// @Param        jobType         query string false "Job type"
// @Param        experienceLevel query string false "Experience level"
// @Param        workMode        query string false "Work mode"
// @Param        skills          query string false "Comma separated skills"
// @Param        search          query string false "Free text"
// @Param        page            query int    false "Page" default(1)
// @Param        limit           query int    false "Page size" default(20)
// @Success      200 {object}  dto.PageResponse[models.JobPosting]
// @Router       /jobs [get]
func (h *JobHandler) ListPublicJobs(c *gin.Context) {
	var req dto.ListPublicJobsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	if !validateStruct(c, h.validator, &req) {
		return
	}

	jobs, total, err := h.service.ListPublicJobs(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.log, err, "Failed to list jobs")
		return
	}
	page := req.Pagination.Normalize(dto.MaxPageSize)
	c.JSON(http.StatusOK, dto.PageResponse[models.JobPosting]{Items: jobs, Total: total, Page: page.Page, Limit: page.Limit})
}

// ListMyJobs godoc
// @Summary      List the calling partner's jobs
// @Tags         jobs
// @Produce      json
// @Param        status query string false "Job status filter"
// @Param        page   query int    false "Page" default(1)
// @Param        limit  query int    false "Page size" default(20)
// @Success      200 {object}  dto.PageResponse[models.JobPosting]
// @Router       /jobs/partner/my-jobs [get]
// @Security     BearerAuth
func (h *JobHandler) ListMyJobs(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}
	var req dto.ListMyJobsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	req.PartnerUID = id.UID

	jobs, total, err := h.service.ListMyJobs(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.log, err, "Failed to list partner jobs")
		return
	}
	page := req.Pagination.Normalize(dto.MaxPageSize)
	c.JSON(http.StatusOK, dto.PageResponse[models.JobPosting]{Items: jobs, Total: total, Page: page.Page, Limit: page.Limit})
}

// UpdateJob godoc
// @Summary      Update job content
// @Description  Owner only. Keys outside the editable set are rejected.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id  path      string               true "Job ID" Format(uuid)
// @Param        job body      dto.UpdateJobRequest true "Fields to change"
// @Success      200 {object}  models.JobPosting
// @Failure      400 {object}  dto.ErrorResponse
// @Failure      403 {object}  dto.ErrorResponse
// @Router       /jobs/{id} [put]
// @Security     BearerAuth
func (h *JobHandler) UpdateJob(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}
	jobID, ok := parseUUIDParam(c, "id", "job")
	if !ok {
		return
	}
	var req dto.UpdateJobRequest
	fields, ok := bindPatch(c, h.validator, &req)
	if !ok {
		return
	}
	req.JobID = jobID
	req.PartnerUID = id.UID
	req.Fields = fields

	job, err := h.service.UpdateJob(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.log, err, "Failed to update job")
		return
	}
	c.JSON(http.StatusOK, job)
}

// UpdateJobStatus godoc
// @Summary      Change job status
// @Description  draft -> active -> closed or filled.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id     path      string                     true "Job ID" Format(uuid)
// @Param        status body      dto.UpdateJobStatusRequest true "New status"
// @Success      200 {object}  models.JobPosting
// @Failure      400 {object}  dto.ErrorResponse
// @Failure      403 {object}  dto.ErrorResponse
// @Router       /jobs/{id}/status [patch]
// @Security     BearerAuth
func (h *JobHandler) UpdateJobStatus(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}
	jobID, ok := parseUUIDParam(c, "id", "job")
	if !ok {
		return
	}
	var req dto.UpdateJobStatusRequest
	if !bindAndValidate(c, h.validator, &req) {
		return
	}
	req.JobID = jobID
	req.PartnerUID = id.UID

	job, err := h.service.SetJobStatus(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.log, err, "Failed to update job status")
		return
	}
	c.JSON(http.StatusOK, job)
}

// DeleteJob godoc
// @Summary      Delete a draft job
// @Tags         jobs
// @Param        id path string true "Job ID" Format(uuid)
// @Success      204 "No Content"
// @Failure      400 {object}  dto.ErrorResponse "Job is not a draft"
// @Failure      403 {object}  dto.ErrorResponse
// @Router       /jobs/{id} [delete]
// @Security     BearerAuth
func (h *JobHandler) DeleteJob(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}
	jobID, ok := parseUUIDParam(c, "id", "job")
	if !ok {
		return
	}
	if err := h.service.DeleteJob(c.Request.Context(), &dto.DeleteJobRequest{JobID: jobID, PartnerUID: id.UID}); err != nil {
		respondError(c, h.log, err, "Failed to delete job")
		return
	}
	c.Status(http.StatusNoContent)
}
