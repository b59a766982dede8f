package models

import (
	"time"

	"github.com/google/uuid"
)

// PartnerStats are derived counters maintained by the stats aggregator.
type PartnerStats struct {
	TotalJobsPosted   int `json:"totalJobsPosted"`
	ActiveJobs        int `json:"activeJobs"`
	TotalApplications int `json:"totalApplications"`
	TotalHires        int `json:"totalHires"`
}

// PartnerProfile is the editable part of a partner record.
type PartnerProfile struct {
	CompanyName   string `json:"companyName"`
	Website       string `json:"website,omitempty"`
	Industry      string `json:"industry,omitempty"`
	CompanySize   string `json:"companySize,omitempty"`
	Location      string `json:"location,omitempty"`
	Description   string `json:"description,omitempty"`
	ContactPerson string `json:"contactPerson,omitempty"`
	ContactPhone  string `json:"contactPhone,omitempty"`
}

type Partner struct {
	ID  uuid.UUID `json:"id"`
	UID string    `json:"uid"`
	// Email comes from the identity, never from the request body.
	Email string `json:"email"`
	PartnerProfile
	VerificationStatus VerificationStatus `json:"verificationStatus"`
	SubscriptionPlan   string             `json:"subscriptionPlan"`
	IsActive           bool               `json:"isActive"`
	Stats              PartnerStats       `json:"stats"`
	ApprovedBy         *string            `json:"approvedBy,omitempty"`
	ApprovedAt         *time.Time         `json:"approvedAt,omitempty"`
	CreatedAt          time.Time          `json:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt"`
}

// CanPostJobs is derived strictly from the verification status.
func (p *Partner) CanPostJobs() bool {
	return p.VerificationStatus == VerificationApproved
}

const DefaultSubscriptionPlan = "free"
