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

// StudentHandler serves candidate discovery to approved partners.
type StudentHandler struct {
	service     services.DiscoveryService
	validator   *validator.Validate
	maxPageSize int
	log         logger.Logger
}

// NewStudentHandler creates a new StudentHandler.
func NewStudentHandler(service services.DiscoveryService, validate *validator.Validate, maxPageSize int, log logger.Logger) *StudentHandler {
	return &StudentHandler{service: service, validator: validate, maxPageSize: maxPageSize, log: log}
}

// Discover godoc
// @Summary      Search visible candidates
// @Tags         students
// @Produce      json
// @Param        skills     query string false "Comma separated skills (any match)"
// @Param        domain     query string false "Domain"
// @Param        experience query string false "fresher, 0-1, 1-2, 2-5 or 5+"
// @Param        course     query string false "Completed course substring"
// @Param        minScore   query number false "Minimum aggregate score"
// @Param        search     query string false "Free text over name, email and skills"
// @Param        sortBy     query string false "recent, skillScore or experience"
// @Param        page       query int    false "Page" default(1)
// @Param        limit      query int    false "Page size" default(20)
// @Success      200 {object}  dto.PageResponse[models.CandidateSummary]
// @Router       /students/discover [get]
// @Security     BearerAuth
func (h *StudentHandler) Discover(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}
	var req dto.DiscoverCandidatesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	if !validateStruct(c, h.validator, &req) {
		return
	}
	req.PartnerUID = id.UID

	candidates, total, err := h.service.Discover(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.log, err, "Failed to discover candidates")
		return
	}
	page := req.Pagination.Normalize(h.maxPageSize)
	c.JSON(http.StatusOK, dto.PageResponse[models.CandidateSummary]{Items: candidates, Total: total, Page: page.Page, Limit: page.Limit})
}

// GetProfile godoc
// @Summary      Get a candidate summary
// @Tags         students
// @Produce      json
// @Param        uid path      string true "Student uid"
// @Success      200 {object}  models.CandidateSummary
// @Failure      404 {object}  dto.ErrorResponse
// @Router       /students/{uid}/profile [get]
// @Security     BearerAuth
func (h *StudentHandler) GetProfile(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}
	candidate, err := h.service.GetCandidate(c.Request.Context(), id.UID, c.Param("uid"))
	if err != nil {
		respondError(c, h.log, err, "Failed to retrieve candidate")
		return
	}
	c.JSON(http.StatusOK, candidate)
}

// GetResume godoc
// @Summary      Get a candidate's resume link
// @Description  Every attempt is written to the resume access log.
// @Tags         students
// @Produce      json
// @Param        uid path      string true "Student uid"
// @Success      200 {object}  dto.ResumeResponse
// @Failure      404 {object}  dto.ErrorResponse
// @Router       /students/{uid}/resume [get]
// @Security     BearerAuth
func (h *StudentHandler) GetResume(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}
	studentUID := c.Param("uid")
	url, err := h.service.ResumeAccess(c.Request.Context(), id.UID, studentUID)
	if err != nil {
		respondError(c, h.log, err, "Failed to retrieve resume")
		return
	}
	c.JSON(http.StatusOK, dto.ResumeResponse{StudentUID: studentUID, ResumeURL: url})
}

// Shortlist godoc
// @Summary      Add a candidate to the shortlist
// @Tags         students
// @Accept       json
// @Produce      json
// @Param        entry body      dto.ShortlistRequest true "Candidate"
// @Success      200 {object}  models.ShortlistEntry
// @Router       /students/shortlist [post]
// @Security     BearerAuth
func (h *StudentHandler) Shortlist(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}
	var req dto.ShortlistRequest
	if !bindAndValidate(c, h.validator, &req) {
		return
	}
	req.PartnerUID = id.UID

	entry, err := h.service.Shortlist(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.log, err, "Failed to shortlist candidate")
		return
	}
	c.JSON(http.StatusOK, entry)
}

// ListShortlist godoc
// @Summary      List shortlisted candidates
// @Tags         students
// @Produce      json
// @Success      200 {array}   models.ShortlistedCandidate
// @Router       /students/shortlist [get]
// @Security     BearerAuth
func (h *StudentHandler) ListShortlist(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}
	items, err := h.service.ListShortlist(c.Request.Context(), id.UID)
	if err != nil {
		respondError(c, h.log, err, "Failed to list shortlist")
		return
	}
	c.JSON(http.StatusOK, items)
}

// Unshortlist godoc
// @Summary      Remove a candidate from the shortlist
// @Tags         students
// @Param        uid path string true "Student uid"
// @Success      204 "No Content"
// @Failure      404 {object}  dto.ErrorResponse
// @Router       /students/shortlist/{uid} [delete]
// @Security     BearerAuth
func (h *StudentHandler) Unshortlist(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}
	if err := h.service.Unshortlist(c.Request.Context(), id.UID, c.Param("uid")); err != nil {
		respondError(c, h.log, err, "Failed to remove shortlist entry")
		return
	}
	c.Status(http.StatusNoContent)
}
