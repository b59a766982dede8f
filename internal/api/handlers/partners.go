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

// PartnerHandler holds dependencies for partner operations.
type PartnerHandler struct {
	service   services.PartnerService
	validator *validator.Validate
	log       logger.Logger
}

// NewPartnerHandler creates a new PartnerHandler.
func NewPartnerHandler(service services.PartnerService, validate *validator.Validate, log logger.Logger) *PartnerHandler {
	return &PartnerHandler{service: service, validator: validate, log: log}
}

// Register godoc
// @Summary      Register as a partner
// @Description  Creates a pending partner profile for the authenticated identity.
// @Tags         partners
// @Accept       json
// @Produce      json
// @Param        partner body      dto.RegisterPartnerRequest true "Company profile"
// @Success      201 {object}  models.Partner
// @Failure      400 {object}  dto.ErrorResponse "Invalid input or already registered"
// @Failure      401 {object}  dto.ErrorResponse
// @Router       /partners/register [post]
// @Security     BearerAuth
func (h *PartnerHandler) Register(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}
	var req dto.RegisterPartnerRequest
	if !bindAndValidate(c, h.validator, &req) {
		return
	}
	req.UID = id.UID
	req.Email = id.Email

	partner, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.log, err, "Failed to register partner")
		return
	}
	c.JSON(http.StatusCreated, partner)
}

// GetProfile godoc
// @Summary      Get own partner profile
// @Tags         partners
// @Produce      json
// @Success      200 {object}  models.Partner
// @Failure      404 {object}  dto.ErrorResponse
// @Router       /partners/profile [get]
// @Security     BearerAuth
func (h *PartnerHandler) GetProfile(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}
	partner, err := h.service.GetProfile(c.Request.Context(), id.UID)
	if err != nil {
		respondError(c, h.log, err, "Failed to retrieve partner profile")
		return
	}
	c.JSON(http.StatusOK, partner)
}

// UpdateProfile godoc
// @Summary      Update own partner profile
// @Description  Partial update. System-owned fields such as verificationStatus or stats are rejected.
// @Tags         partners
// @Accept       json
// @Produce      json
// @Param        profile body      dto.UpdatePartnerProfileRequest true "Fields to change"
// @Success      200 {object}  models.Partner
// @Failure      400 {object}  dto.ErrorResponse
// @Router       /partners/profile [put]
// @Security     BearerAuth
func (h *PartnerHandler) UpdateProfile(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}
	var req dto.UpdatePartnerProfileRequest
	fields, ok := bindPatch(c, h.validator, &req)
	if !ok {
		return
	}
	req.UID = id.UID
	req.Fields = fields

	partner, err := h.service.UpdateProfile(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.log, err, "Failed to update partner profile")
		return
	}
	c.JSON(http.StatusOK, partner)
}

// GetStats godoc
// @Summary      Get own partner counters
// @Tags         partners
// @Produce      json
// @Success      200 {object}  models.PartnerStats
// @Router       /partners/stats [get]
// @Security     BearerAuth
func (h *PartnerHandler) GetStats(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}
	stats, err := h.service.GetStats(c.Request.Context(), id.UID)
	if err != nil {
		respondError(c, h.log, err, "Failed to retrieve partner stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetVerificationStatus godoc
// @Summary      Get own verification status
// @Tags         partners
// @Produce      json
// @Success      200 {object}  dto.VerificationStatusResponse
// @Router       /partners/verification-status [get]
// @Security     BearerAuth
func (h *PartnerHandler) GetVerificationStatus(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}
	status, err := h.service.GetStatus(c.Request.Context(), id.UID)
	if err != nil {
		respondError(c, h.log, err, "Failed to retrieve verification status")
		return
	}
	c.JSON(http.StatusOK, status)
}

// ListPartners godoc
// @Summary      List partners (admin)
// @Tags         partners-admin
// @Produce      json
// @Param        status query string false "Verification status filter"
// @Param        page   query int    false "Page" default(1)
// @Param        limit  query int    false "Page size" default(20)
// @Success      200 {object}  dto.PageResponse[models.Partner]
// @Router       /partners/admin/all [get]
// @Security     BearerAuth
func (h *PartnerHandler) ListPartners(c *gin.Context) {
	var req dto.ListPartnersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	if !validateStruct(c, h.validator, &req) {
		return
	}

	partners, total, err := h.service.ListPartners(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.log, err, "Failed to list partners")
		return
	}
	page := req.Pagination.Normalize(dto.MaxPageSize)
	c.JSON(http.StatusOK, dto.PageResponse[models.Partner]{Items: partners, Total: total, Page: page.Page, Limit: page.Limit})
}

// VerifyPartner godoc
// @Summary      Approve or reject a pending partner (admin)
// @Tags         partners-admin
// @Accept       json
// @Produce      json
// @Param        id       path string                   true "Partner ID" Format(uuid)
// @Param        decision body dto.VerifyPartnerRequest true "approved or rejected"
// @Success      200 {object}  models.Partner
// @Failure      400 {object}  dto.ErrorResponse
// @Failure      404 {object}  dto.ErrorResponse
// @Router       /partners/admin/{id}/verify [patch]
// @Security     BearerAuth
func (h *PartnerHandler) VerifyPartner(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}
	partnerID, ok := parseUUIDParam(c, "id", "partner")
	if !ok {
		return
	}
	var req dto.VerifyPartnerRequest
	if !bindAndValidate(c, h.validator, &req) {
		return
	}
	req.PartnerID = partnerID
	req.ReviewerUID = id.UID

	partner, err := h.service.Verify(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.log, err, "Failed to verify partner")
		return
	}
	c.JSON(http.StatusOK, partner)
}

// SuspendPartner godoc
// @Summary      Suspend or reactivate an approved partner (admin)
// @Tags         partners-admin
// @Accept       json
// @Produce      json
// @Param        id      path string                    true "Partner ID" Format(uuid)
// @Param        suspend body dto.SuspendPartnerRequest true "suspend flag"
// @Success      200 {object}  models.Partner
// @Failure      400 {object}  dto.ErrorResponse
// @Router       /partners/admin/{id}/suspend [patch]
// @Security     BearerAuth
func (h *PartnerHandler) SuspendPartner(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}
	partnerID, ok := parseUUIDParam(c, "id", "partner")
	if !ok {
		return
	}
	var req dto.SuspendPartnerRequest
	if !bindAndValidate(c, h.validator, &req) {
		return
	}
	req.PartnerID = partnerID
	req.ReviewerUID = id.UID

	partner, err := h.service.Suspend(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.log, err, "Failed to update partner suspension")
		return
	}
	c.JSON(http.StatusOK, partner)
}
