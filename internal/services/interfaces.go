package services

import (
	"context"

	"internhub-api/internal/models"
	"internhub-api/internal/transport/dto"

	"github.com/google/uuid"
)

// PartnerService runs the partner verification state machine.
type PartnerService interface {
	Register(ctx context.Context, req *dto.RegisterPartnerRequest) (*models.Partner, error)
	Verify(ctx context.Context, req *dto.VerifyPartnerRequest) (*models.Partner, error)
	Suspend(ctx context.Context, req *dto.SuspendPartnerRequest) (*models.Partner, error)
	GetProfile(ctx context.Context, uid string) (*models.Partner, error)
	GetStatus(ctx context.Context, uid string) (*dto.VerificationStatusResponse, error)
	GetStats(ctx context.Context, uid string) (*models.PartnerStats, error)
	UpdateProfile(ctx context.Context, req *dto.UpdatePartnerProfileRequest) (*models.Partner, error)
	ListPartners(ctx context.Context, req *dto.ListPartnersRequest) ([]models.Partner, int, error)
	// RequireApproved returns the caller's partner record or ErrForbidden
	// unless it exists and is approved.
	RequireApproved(ctx context.Context, uid string) (*models.Partner, error)
}

// JobService runs the job posting lifecycle.
type JobService interface {
	CreateJob(ctx context.Context, req *dto.CreateJobRequest) (*models.JobPosting, error)
	UpdateJob(ctx context.Context, req *dto.UpdateJobRequest) (*models.JobPosting, error)
	SetJobStatus(ctx context.Context, req *dto.UpdateJobStatusRequest) (*models.JobPosting, error)
	DeleteJob(ctx context.Context, req *dto.DeleteJobRequest) error
	ViewJob(ctx context.Context, req *dto.ViewJobRequest) (*models.JobPosting, error)
	ListPublicJobs(ctx context.Context, req *dto.ListPublicJobsRequest) ([]models.JobPosting, int, error)
	ListMyJobs(ctx context.Context, req *dto.ListMyJobsRequest) ([]models.JobPosting, int, error)
}

// ApplicationService runs the application pipeline.
type ApplicationService interface {
	Submit(ctx context.Context, req *dto.SubmitApplicationRequest) (*models.JobApplication, error)
	GetApplication(ctx context.Context, req *dto.GetApplicationRequest) (*models.JobApplication, error)
	Timeline(ctx context.Context, req *dto.GetApplicationRequest) ([]models.StatusEntry, error)
	ListApplications(ctx context.Context, req *dto.ListApplicationsRequest) ([]models.ApplicationWithJob, int, error)
	SetStatus(ctx context.Context, req *dto.UpdateApplicationStatusRequest) (*models.JobApplication, error)
	BulkSetStatus(ctx context.Context, req *dto.BulkUpdateStatusRequest) (*dto.BulkUpdateResult, error)
	AddNote(ctx context.Context, req *dto.AddNoteRequest) (*models.JobApplication, error)
	Rate(ctx context.Context, req *dto.RateApplicationRequest) (*models.JobApplication, error)
	ScheduleInterview(ctx context.Context, req *dto.ScheduleInterviewRequest) (*models.JobApplication, error)
}

// DiscoveryService lets approved partners search and shortlist candidates.
type DiscoveryService interface {
	Discover(ctx context.Context, req *dto.DiscoverCandidatesRequest) ([]models.CandidateSummary, int, error)
	GetCandidate(ctx context.Context, partnerUID, studentUID string) (*models.CandidateSummary, error)
	ResumeAccess(ctx context.Context, partnerUID, studentUID string) (string, error)
	Shortlist(ctx context.Context, req *dto.ShortlistRequest) (*models.ShortlistEntry, error)
	Unshortlist(ctx context.Context, partnerUID, studentUID string) error
	ListShortlist(ctx context.Context, partnerUID string) ([]models.ShortlistedCandidate, error)
}

// StatsAggregator maintains derived counters. Every method is best-effort:
// failures are logged and never surface to the caller.
type StatsAggregator interface {
	JobCreated(ctx context.Context, partnerID uuid.UUID)
	JobPublished(ctx context.Context, partnerID uuid.UUID)
	JobClosed(ctx context.Context, partnerID uuid.UUID)
	JobViewed(ctx context.Context, jobID uuid.UUID)
	ApplicationReceived(ctx context.Context, jobID, partnerID uuid.UUID)
	CandidateShortlisted(ctx context.Context, jobID uuid.UUID)
	CandidateSelected(ctx context.Context, jobID, partnerID uuid.UUID)
}
