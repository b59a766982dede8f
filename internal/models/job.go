package models

import (
	"time"

	"github.com/google/uuid"
)

type JobStats struct {
	Views        int `json:"views"`
	Applications int `json:"applications"`
	Shortlisted  int `json:"shortlisted"`
	Selected     int `json:"selected"`
}

// JobContent holds the partner-editable fields of a posting.
type JobContent struct {
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	Skills           []string   `json:"skills"`
	ExperienceLevel  string     `json:"experienceLevel,omitempty"`
	Education        string     `json:"education,omitempty"`
	JobType          string     `json:"jobType,omitempty"`
	SalaryMin        *int       `json:"salaryMin,omitempty"`
	SalaryMax        *int       `json:"salaryMax,omitempty"`
	Currency         string     `json:"currency,omitempty"`
	Location         string     `json:"location,omitempty"`
	WorkMode         string     `json:"workMode,omitempty"`
	Deadline         *time.Time `json:"deadline,omitempty"`
	Openings         int        `json:"openings"`
	Responsibilities []string   `json:"responsibilities,omitempty"`
	Benefits         []string   `json:"benefits,omitempty"`
}

type JobPosting struct {
	ID         uuid.UUID `json:"id"`
	PartnerID  uuid.UUID `json:"partnerId"`
	PartnerUID string    `json:"partnerUid"`
	// CompanyName is copied from the partner at creation and not re-synced afterwards.
	CompanyName string `json:"companyName"`
	JobContent
	Status      JobStatus  `json:"status"`
	Visibility  Visibility `json:"visibility"`
	Stats       JobStats   `json:"stats"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	ClosedAt    *time.Time `json:"closedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// AcceptsApplications reports whether a student may apply at the given time.
func (j *JobPosting) AcceptsApplications(now time.Time) bool {
	if j.Status != JobStatusActive {
		return false
	}
	return j.Deadline == nil || !now.After(*j.Deadline)
}

// IsPubliclyListed is true for postings shown on the public board.
func (j *JobPosting) IsPubliclyListed() bool {
	return j.Status == JobStatusActive && j.Visibility == VisibilityPublic
}
