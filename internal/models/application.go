package models

import (
	"time"

	"github.com/google/uuid"
)

// applicationNamespace seeds the deterministic application keys.
var applicationNamespace = uuid.MustParse("6f1c1d2e-8f0a-4a53-9b57-2f0d7c6a1e44")

// ApplicationID derives the key of the single application a student may hold
// for a job. Two concurrent submits for the same pair collide on this key.
func ApplicationID(studentUID string, jobID uuid.UUID) uuid.UUID {
	return uuid.NewSHA1(applicationNamespace, []byte(studentUID+"_"+jobID.String()))
}

type StatusEntry struct {
	Status    ApplicationStatus `json:"status"`
	ChangedBy string            `json:"changedBy"`
	ChangedAt time.Time         `json:"changedAt"`
	Note      string            `json:"note,omitempty"`
}

type Interview struct {
	ScheduledAt time.Time `json:"scheduledAt"`
	Mode        string    `json:"mode"`
	MeetingLink string    `json:"meetingLink,omitempty"`
	Notes       string    `json:"notes,omitempty"`
}

// ProfileSnapshot is the applicant profile as it was when the application was submitted.
type ProfileSnapshot struct {
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Phone        string   `json:"phone,omitempty"`
	Skills       []string `json:"skills"`
	Education    []string `json:"education,omitempty"`
	Experience   []string `json:"experience,omitempty"`
	Projects     []string `json:"projects,omitempty"`
	Certificates []string `json:"certificates,omitempty"`
	Score        float64  `json:"score"`
}

type JobApplication struct {
	ID            uuid.UUID         `json:"id"`
	JobID         uuid.UUID         `json:"jobId"`
	PartnerID     uuid.UUID         `json:"partnerId"`
	StudentUID    string            `json:"studentUid"`
	CoverLetter   string            `json:"coverLetter,omitempty"`
	Profile       ProfileSnapshot   `json:"profile"`
	Status        ApplicationStatus `json:"status"`
	StatusHistory []StatusEntry     `json:"statusHistory"`
	Interview     *Interview        `json:"interview,omitempty"`
	PartnerRating *int              `json:"partnerRating,omitempty"`
	Notes         *string           `json:"notes,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

// JobSummary is the restricted posting projection joined onto application lists.
type JobSummary struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	CompanyName string    `json:"companyName"`
	Location    string    `json:"location,omitempty"`
	WorkMode    string    `json:"workMode,omitempty"`
	Status      JobStatus `json:"status"`
}

func (j *JobPosting) Summary() JobSummary {
	return JobSummary{
		ID:          j.ID,
		Title:       j.Title,
		CompanyName: j.CompanyName,
		Location:    j.Location,
		WorkMode:    j.WorkMode,
		Status:      j.Status,
	}
}

type ApplicationWithJob struct {
	JobApplication
	Job *JobSummary `json:"job,omitempty"`
}
