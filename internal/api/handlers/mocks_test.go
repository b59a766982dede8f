package handlers_test

import (
	"context"

	"internhub-api/internal/models"
	"internhub-api/internal/services"
	"internhub-api/internal/transport/dto"

	"github.com/stretchr/testify/mock"
)

// MockJobService is a mock implementation of services.JobService
type MockJobService struct {
	mock.Mock
}

func (m *MockJobService) CreateJob(ctx context.Context, req *dto.CreateJobRequest) (*models.JobPosting, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.JobPosting), args.Error(1)
}

func (m *MockJobService) UpdateJob(ctx context.Context, req *dto.UpdateJobRequest) (*models.JobPosting, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.JobPosting), args.Error(1)
}

func (m *MockJobService) SetJobStatus(ctx context.Context, req *dto.UpdateJobStatusRequest) (*models.JobPosting, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.JobPosting), args.Error(1)
}

func (m *MockJobService) DeleteJob(ctx context.Context, req *dto.DeleteJobRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *MockJobService) ViewJob(ctx context.Context, req *dto.ViewJobRequest) (*models.JobPosting, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.JobPosting), args.Error(1)
}

func (m *MockJobService) ListPublicJobs(ctx context.Context, req *dto.ListPublicJobsRequest) ([]models.JobPosting, int, error) {
	args := m.Called(ctx, req)
	jobs, _ := args.Get(0).([]models.JobPosting)
	return jobs, args.Int(1), args.Error(2)
}

func (m *MockJobService) ListMyJobs(ctx context.Context, req *dto.ListMyJobsRequest) ([]models.JobPosting, int, error) {
	args := m.Called(ctx, req)
	jobs, _ := args.Get(0).([]models.JobPosting)
	return jobs, args.Int(1), args.Error(2)
}

var _ services.JobService = (*MockJobService)(nil)

// MockApplicationService is a mock implementation of services.ApplicationService
type MockApplicationService struct {
	mock.Mock
}

func (m *MockApplicationService) application(args mock.Arguments) (*models.JobApplication, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.JobApplication), args.Error(1)
}

func (m *MockApplicationService) Submit(ctx context.Context, req *dto.SubmitApplicationRequest) (*models.JobApplication, error) {
	return m.application(m.Called(ctx, req))
}

func (m *MockApplicationService) GetApplication(ctx context.Context, req *dto.GetApplicationRequest) (*models.JobApplication, error) {
	return m.application(m.Called(ctx, req))
}

func (m *MockApplicationService) Timeline(ctx context.Context, req *dto.GetApplicationRequest) ([]models.StatusEntry, error) {
	args := m.Called(ctx, req)
	history, _ := args.Get(0).([]models.StatusEntry)
	return history, args.Error(1)
}

func (m *MockApplicationService) ListApplications(ctx context.Context, req *dto.ListApplicationsRequest) ([]models.ApplicationWithJob, int, error) {
	args := m.Called(ctx, req)
	apps, _ := args.Get(0).([]models.ApplicationWithJob)
	return apps, args.Int(1), args.Error(2)
}

func (m *MockApplicationService) SetStatus(ctx context.Context, req *dto.UpdateApplicationStatusRequest) (*models.JobApplication, error) {
	return m.application(m.Called(ctx, req))
}

func (m *MockApplicationService) BulkSetStatus(ctx context.Context, req *dto.BulkUpdateStatusRequest) (*dto.BulkUpdateResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.BulkUpdateResult), args.Error(1)
}

func (m *MockApplicationService) AddNote(ctx context.Context, req *dto.AddNoteRequest) (*models.JobApplication, error) {
	return m.application(m.Called(ctx, req))
}

func (m *MockApplicationService) Rate(ctx context.Context, req *dto.RateApplicationRequest) (*models.JobApplication, error) {
	return m.application(m.Called(ctx, req))
}

func (m *MockApplicationService) ScheduleInterview(ctx context.Context, req *dto.ScheduleInterviewRequest) (*models.JobApplication, error) {
	return m.application(m.Called(ctx, req))
}

var _ services.ApplicationService = (*MockApplicationService)(nil)

// MockDiscoveryService is a mock implementation of services.DiscoveryService
type MockDiscoveryService struct {
	mock.Mock
}

func (m *MockDiscoveryService) Discover(ctx context.Context, req *dto.DiscoverCandidatesRequest) ([]models.CandidateSummary, int, error) {
	args := m.Called(ctx, req)
	items, _ := args.Get(0).([]models.CandidateSummary)
	return items, args.Int(1), args.Error(2)
}

func (m *MockDiscoveryService) GetCandidate(ctx context.Context, partnerUID, studentUID string) (*models.CandidateSummary, error) {
	args := m.Called(ctx, partnerUID, studentUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CandidateSummary), args.Error(1)
}

func (m *MockDiscoveryService) ResumeAccess(ctx context.Context, partnerUID, studentUID string) (string, error) {
	args := m.Called(ctx, partnerUID, studentUID)
	return args.String(0), args.Error(1)
}

func (m *MockDiscoveryService) Shortlist(ctx context.Context, req *dto.ShortlistRequest) (*models.ShortlistEntry, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ShortlistEntry), args.Error(1)
}

func (m *MockDiscoveryService) Unshortlist(ctx context.Context, partnerUID, studentUID string) error {
	return m.Called(ctx, partnerUID, studentUID).Error(0)
}

func (m *MockDiscoveryService) ListShortlist(ctx context.Context, partnerUID string) ([]models.ShortlistedCandidate, error) {
	args := m.Called(ctx, partnerUID)
	items, _ := args.Get(0).([]models.ShortlistedCandidate)
	return items, args.Error(1)
}

var _ services.DiscoveryService = (*MockDiscoveryService)(nil)

// MockPartnerService is a mock implementation of services.PartnerService
type MockPartnerService struct {
	mock.Mock
}

func (m *MockPartnerService) partner(args mock.Arguments) (*models.Partner, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Partner), args.Error(1)
}

func (m *MockPartnerService) Register(ctx context.Context, req *dto.RegisterPartnerRequest) (*models.Partner, error) {
	return m.partner(m.Called(ctx, req))
}

func (m *MockPartnerService) Verify(ctx context.Context, req *dto.VerifyPartnerRequest) (*models.Partner, error) {
	return m.partner(m.Called(ctx, req))
}

func (m *MockPartnerService) Suspend(ctx context.Context, req *dto.SuspendPartnerRequest) (*models.Partner, error) {
	return m.partner(m.Called(ctx, req))
}

func (m *MockPartnerService) GetProfile(ctx context.Context, uid string) (*models.Partner, error) {
	return m.partner(m.Called(ctx, uid))
}

func (m *MockPartnerService) GetStatus(ctx context.Context, uid string) (*dto.VerificationStatusResponse, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.VerificationStatusResponse), args.Error(1)
}

func (m *MockPartnerService) GetStats(ctx context.Context, uid string) (*models.PartnerStats, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PartnerStats), args.Error(1)
}

func (m *MockPartnerService) UpdateProfile(ctx context.Context, req *dto.UpdatePartnerProfileRequest) (*models.Partner, error) {
	return m.partner(m.Called(ctx, req))
}

func (m *MockPartnerService) ListPartners(ctx context.Context, req *dto.ListPartnersRequest) ([]models.Partner, int, error) {
	args := m.Called(ctx, req)
	items, _ := args.Get(0).([]models.Partner)
	return items, args.Int(1), args.Error(2)
}

func (m *MockPartnerService) RequireApproved(ctx context.Context, uid string) (*models.Partner, error) {
	return m.partner(m.Called(ctx, uid))
}

var _ services.PartnerService = (*MockPartnerService)(nil)
