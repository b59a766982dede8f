package storage

import (
	"context"
	"time"

	"internhub-api/internal/models"

	"github.com/google/uuid"
)

// PartnerStat names an atomically incremented partner counter.
type PartnerStat string

const (
	PartnerStatTotalJobsPosted   PartnerStat = "total_jobs_posted"
	PartnerStatActiveJobs        PartnerStat = "active_jobs"
	PartnerStatTotalApplications PartnerStat = "total_applications"
	PartnerStatTotalHires        PartnerStat = "total_hires"
)

// JobStat names an atomically incremented posting counter.
type JobStat string

const (
	JobStatViews        JobStat = "views"
	JobStatApplications JobStat = "applications"
	JobStatShortlisted  JobStat = "shortlisted"
	JobStatSelected     JobStat = "selected"
)

// PartnerFilter narrows admin partner listings. A nil Status matches all.
type PartnerFilter struct {
	Status *models.VerificationStatus
}

// VerificationChange is a compare-and-set on a partner's verification state.
// Nil ApprovedBy/ApprovedAt keep the stored values.
type VerificationChange struct {
	From       models.VerificationStatus
	To         models.VerificationStatus
	IsActive   bool
	ApprovedBy *string
	ApprovedAt *time.Time
	At         time.Time
}

// JobFilter holds the equality predicates pushed down to storage. Empty
// strings and nil pointers match everything.
type JobFilter struct {
	PartnerID       *uuid.UUID
	Status          *models.JobStatus
	Visibility      *models.Visibility
	JobType         string
	ExperienceLevel string
	WorkMode        string
}

// ApplicationFilter holds the equality predicates for application listings.
type ApplicationFilter struct {
	PartnerID  *uuid.UUID
	StudentUID string
	JobID      *uuid.UUID
	Status     *models.ApplicationStatus
}

// PartnerRepository defines the interface for partner data operations.
type PartnerRepository interface {
	// Create returns ErrConflict when a partner already exists for p.UID.
	Create(ctx context.Context, p *models.Partner) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Partner, error)
	GetByUID(ctx context.Context, uid string) (*models.Partner, error)
	List(ctx context.Context, filter PartnerFilter) ([]models.Partner, error)
	// UpdateProfile rewrites the profile fields only; verification state and
	// stats are untouched.
	UpdateProfile(ctx context.Context, id uuid.UUID, profile models.PartnerProfile, at time.Time) (*models.Partner, error)
	// TransitionVerification applies change only while the partner is still in
	// change.From, otherwise ErrStaleState.
	TransitionVerification(ctx context.Context, id uuid.UUID, change VerificationChange) (*models.Partner, error)
	IncrementStat(ctx context.Context, id uuid.UUID, stat PartnerStat, delta int) error
}

// JobRepository defines the interface for job posting data operations.
type JobRepository interface {
	Create(ctx context.Context, job *models.JobPosting) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.JobPosting, error)
	GetMany(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*models.JobPosting, error)
	List(ctx context.Context, filter JobFilter) ([]models.JobPosting, error)
	// UpdateContent rewrites content and visibility, never status, lifecycle
	// timestamps or stats.
	UpdateContent(ctx context.Context, id uuid.UUID, content models.JobContent, visibility models.Visibility, at time.Time) (*models.JobPosting, error)
	// TransitionStatus moves the job from -> to and stamps publishedAt or
	// closedAt. ErrStaleState when the job is no longer in from.
	TransitionStatus(ctx context.Context, id uuid.UUID, from, to models.JobStatus, at time.Time) (*models.JobPosting, error)
	// Delete removes the job only while it is in status.
	Delete(ctx context.Context, id uuid.UUID, status models.JobStatus) error
	IncrementStat(ctx context.Context, id uuid.UUID, stat JobStat, delta int) error
}

// ApplicationRepository defines the interface for job application data operations.
type ApplicationRepository interface {
	// Create returns ErrConflict when the application key already exists.
	Create(ctx context.Context, app *models.JobApplication) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.JobApplication, error)
	Exists(ctx context.Context, studentUID string, jobID uuid.UUID) (bool, error)
	List(ctx context.Context, filter ApplicationFilter) ([]models.JobApplication, error)
	// AppendStatus sets the status and appends entry to the history in one
	// write, provided the current status is still from.
	AppendStatus(ctx context.Context, id uuid.UUID, from models.ApplicationStatus, entry models.StatusEntry) (*models.JobApplication, error)
	SetNotes(ctx context.Context, id uuid.UUID, notes string) (*models.JobApplication, error)
	SetRating(ctx context.Context, id uuid.UUID, rating int) (*models.JobApplication, error)
	// SetInterview stores the interview and appends entry to the history while
	// the status is still from.
	SetInterview(ctx context.Context, id uuid.UUID, from models.ApplicationStatus, interview models.Interview, entry models.StatusEntry) (*models.JobApplication, error)
}

// CandidateRepository reads the student profile read model.
type CandidateRepository interface {
	ListVisible(ctx context.Context) ([]models.CandidateProfile, error)
	GetByUID(ctx context.Context, uid string) (*models.CandidateProfile, error)
}

// ShortlistRepository stores partner shortlists keyed by (partner, student).
type ShortlistRepository interface {
	// Upsert keeps the original CreatedAt when the entry already exists.
	Upsert(ctx context.Context, entry *models.ShortlistEntry) (*models.ShortlistEntry, error)
	Delete(ctx context.Context, partnerUID, studentUID string) error
	ListByPartner(ctx context.Context, partnerUID string) ([]models.ShortlistEntry, error)
}

// ResumeAccessRepository is the append-only resume access audit log.
type ResumeAccessRepository interface {
	Append(ctx context.Context, rec *models.ResumeAccessLog) error
	ListByStudent(ctx context.Context, studentUID string) ([]models.ResumeAccessLog, error)
}

// RoleRepository maintains the role record attached to each identity.
type RoleRepository interface {
	Upsert(ctx context.Context, rec *models.RoleRecord) error
	GetByUID(ctx context.Context, uid string) (*models.RoleRecord, error)
}

// Store bundles every repository the services need.
type Store struct {
	Partners     PartnerRepository
	Jobs         JobRepository
	Applications ApplicationRepository
	Candidates   CandidateRepository
	Shortlists   ShortlistRepository
	ResumeAccess ResumeAccessRepository
	Roles        RoleRepository
}
