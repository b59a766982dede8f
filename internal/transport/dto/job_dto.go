// internal/transport/dto/job_dto.go
package dto

import (
	"time"

	"internhub-api/internal/models"

	"github.com/google/uuid"
)

// --- Job Request DTOs ---

// CreateJobRequest defines the structure for creating a new job posting.
type CreateJobRequest struct {
	PartnerUID       string     `json:"-"` // Set internally by handler from auth context
	Title            string     `json:"title" validate:"required,min=3,max=200"`
	Description      string     `json:"description" validate:"required,max=10000"`
	Skills           []string   `json:"skills" validate:"omitempty,max=50,dive,min=1,max=60"`
	ExperienceLevel  string     `json:"experienceLevel" validate:"omitempty,max=50"`
	Education        string     `json:"education" validate:"omitempty,max=200"`
	JobType          string     `json:"jobType" validate:"omitempty,max=50"`
	SalaryMin        *int       `json:"salaryMin" validate:"omitempty,gte=0"`
	SalaryMax        *int       `json:"salaryMax" validate:"omitempty,gte=0"`
	Currency         string     `json:"currency" validate:"omitempty,len=3"`
	Location         string     `json:"location" validate:"omitempty,max=200"`
	WorkMode         string     `json:"workMode" validate:"omitempty,max=50"`
	Deadline         *time.Time `json:"deadline"`
	Openings         int        `json:"openings" validate:"omitempty,gte=1"`
	Responsibilities []string   `json:"responsibilities" validate:"omitempty,max=50"`
	Benefits         []string   `json:"benefits" validate:"omitempty,max=50"`
	Visibility       string     `json:"visibility" validate:"omitempty,oneof=public private"`
	// Status is the requested initial status: draft (default) or active.
	Status string `json:"status"`
}

// UpdateJobRequest is a partial content update. Fields lists the keys present
// in the body so anything outside the allow-list can be rejected.
type UpdateJobRequest struct {
	JobID            uuid.UUID  `json:"-"`
	PartnerUID       string     `json:"-"`
	Fields           []string   `json:"-"`
	Title            *string    `json:"title,omitempty" validate:"omitempty,min=3,max=200"`
	Description      *string    `json:"description,omitempty" validate:"omitempty,max=10000"`
	Skills           []string   `json:"skills,omitempty" validate:"omitempty,max=50,dive,min=1,max=60"`
	ExperienceLevel  *string    `json:"experienceLevel,omitempty" validate:"omitempty,max=50"`
	Education        *string    `json:"education,omitempty" validate:"omitempty,max=200"`
	JobType          *string    `json:"jobType,omitempty" validate:"omitempty,max=50"`
	SalaryMin        *int       `json:"salaryMin,omitempty" validate:"omitempty,gte=0"`
	SalaryMax        *int       `json:"salaryMax,omitempty" validate:"omitempty,gte=0"`
	Currency         *string    `json:"currency,omitempty" validate:"omitempty,len=3"`
	Location         *string    `json:"location,omitempty" validate:"omitempty,max=200"`
	WorkMode         *string    `json:"workMode,omitempty" validate:"omitempty,max=50"`
	Deadline         *time.Time `json:"deadline,omitempty"`
	Openings         *int       `json:"openings,omitempty" validate:"omitempty,gte=1"`
	Responsibilities []string   `json:"responsibilities,omitempty" validate:"omitempty,max=50"`
	Benefits         []string   `json:"benefits,omitempty" validate:"omitempty,max=50"`
	Visibility       *string    `json:"visibility,omitempty" validate:"omitempty,oneof=public private"`
}

// UpdateJobStatusRequest defines the structure for updating the job status.
type UpdateJobStatusRequest struct {
	JobID      uuid.UUID `json:"-"`
	PartnerUID string    `json:"-"`
	Status     string    `json:"status" validate:"required"`
}

type DeleteJobRequest struct {
	JobID      uuid.UUID
	PartnerUID string
}

// ViewJobRequest reads a posting. Viewer is nil for anonymous callers.
type ViewJobRequest struct {
	JobID  uuid.UUID
	Viewer *models.Identity
}

// ListPublicJobsRequest defines filters for the public job board.
type ListPublicJobsRequest struct {
	JobType         string `form:"jobType"`
	ExperienceLevel string `form:"experienceLevel"`
	WorkMode        string `form:"workMode"`
	Skills          string `form:"skills"` // comma separated
	Search          string `form:"search" validate:"omitempty,max=200"`
	Pagination
}

// ListMyJobsRequest lists the calling partner's postings.
type ListMyJobsRequest struct {
	PartnerUID string `form:"-"`
	Status     string `form:"status"`
	Pagination
}
