// internal/transport/dto/application_dto.go
package dto

import (
	"time"

	"internhub-api/internal/models"

	"github.com/google/uuid"
)

// SubmitApplicationRequest is sent by a student applying to an active posting.
type SubmitApplicationRequest struct {
	Student     models.Identity `json:"-"`
	JobID       uuid.UUID       `json:"jobId" validate:"required"`
	CoverLetter string          `json:"coverLetter" validate:"omitempty,max=5000"`
}

// GetApplicationRequest is shared by the detail and timeline reads.
type GetApplicationRequest struct {
	ApplicationID uuid.UUID
	Caller        models.Identity
}

type ListApplicationsRequest struct {
	Caller models.Identity `form:"-"`
	JobID  string          `form:"jobId" validate:"omitempty,uuid"`
	Status string          `form:"status"`
	Pagination
}

type UpdateApplicationStatusRequest struct {
	ApplicationID uuid.UUID       `json:"-"`
	Actor         models.Identity `json:"-"`
	Status        string          `json:"status" validate:"required"`
	Note          string          `json:"note" validate:"omitempty,max=1000"`
}

type BulkUpdateStatusRequest struct {
	Actor          models.Identity `json:"-"`
	ApplicationIDs []uuid.UUID     `json:"applicationIds" validate:"required,min=1,max=100"`
	Status         string          `json:"status" validate:"required"`
	Note           string          `json:"note" validate:"omitempty,max=1000"`
}

type AddNoteRequest struct {
	ApplicationID uuid.UUID       `json:"-"`
	Actor         models.Identity `json:"-"`
	Note          string          `json:"note" validate:"required,max=5000"`
}

type RateApplicationRequest struct {
	ApplicationID uuid.UUID       `json:"-"`
	Actor         models.Identity `json:"-"`
	Rating        int             `json:"rating" validate:"required"`
}

type ScheduleInterviewRequest struct {
	ApplicationID uuid.UUID       `json:"-"`
	Actor         models.Identity `json:"-"`
	ScheduledAt   time.Time       `json:"scheduledAt" validate:"required"`
	Mode          string          `json:"mode" validate:"required,oneof=online onsite phone"`
	MeetingLink   string          `json:"meetingLink" validate:"omitempty,url"`
	Notes         string          `json:"notes" validate:"omitempty,max=2000"`
}

type BulkSkip struct {
	ID     uuid.UUID `json:"id"`
	Reason string    `json:"reason"`
}

// BulkUpdateResult reports per-id outcomes in input order.
type BulkUpdateResult struct {
	Updated []uuid.UUID `json:"updated"`
	Skipped []BulkSkip  `json:"skipped"`
}
