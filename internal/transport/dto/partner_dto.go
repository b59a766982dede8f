// internal/transport/dto/partner_dto.go
package dto

import (
	"internhub-api/internal/models"

	"github.com/google/uuid"
)

// RegisterPartnerRequest is the self-registration payload. UID and Email come
// from the authenticated identity.
type RegisterPartnerRequest struct {
	UID           string `json:"-"`
	Email         string `json:"-"`
	CompanyName   string `json:"companyName" validate:"required,min=2,max=200"`
	Website       string `json:"website" validate:"omitempty,url"`
	Industry      string `json:"industry" validate:"omitempty,max=100"`
	CompanySize   string `json:"companySize" validate:"omitempty,max=50"`
	Location      string `json:"location" validate:"omitempty,max=200"`
	Description   string `json:"description" validate:"omitempty,max=5000"`
	ContactPerson string `json:"contactPerson" validate:"omitempty,max=200"`
	ContactPhone  string `json:"contactPhone" validate:"omitempty,max=50"`
}

// UpdatePartnerProfileRequest is a partial profile update. Fields lists every
// key present in the request body so system-owned keys can be rejected.
type UpdatePartnerProfileRequest struct {
	UID           string   `json:"-"`
	Fields        []string `json:"-"`
	CompanyName   *string  `json:"companyName,omitempty" validate:"omitempty,min=2,max=200"`
	Website       *string  `json:"website,omitempty" validate:"omitempty,url"`
	Industry      *string  `json:"industry,omitempty" validate:"omitempty,max=100"`
	CompanySize   *string  `json:"companySize,omitempty" validate:"omitempty,max=50"`
	Location      *string  `json:"location,omitempty" validate:"omitempty,max=200"`
	Description   *string  `json:"description,omitempty" validate:"omitempty,max=5000"`
	ContactPerson *string  `json:"contactPerson,omitempty" validate:"omitempty,max=200"`
	ContactPhone  *string  `json:"contactPhone,omitempty" validate:"omitempty,max=50"`
}

// VerifyPartnerRequest records a reviewer decision on a pending partner.
type VerifyPartnerRequest struct {
	PartnerID   uuid.UUID `json:"-"`
	ReviewerUID string    `json:"-"`
	Decision    string    `json:"decision" validate:"required"`
	Note        string    `json:"note" validate:"omitempty,max=1000"`
}

type SuspendPartnerRequest struct {
	PartnerID   uuid.UUID `json:"-"`
	ReviewerUID string    `json:"-"`
	Suspend     *bool     `json:"suspend" validate:"required"`
	Reason      string    `json:"reason" validate:"omitempty,max=1000"`
}

type ListPartnersRequest struct {
	Status string `form:"status"`
	Pagination
}

type VerificationStatusResponse struct {
	VerificationStatus models.VerificationStatus `json:"verificationStatus"`
	CanPostJobs        bool                      `json:"canPostJobs"`
	IsActive           bool                      `json:"isActive"`
}
