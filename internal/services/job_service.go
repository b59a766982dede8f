package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"internhub-api/internal/logger"
	"internhub-api/internal/metrics"
	"internhub-api/internal/models"
	"internhub-api/internal/storage"
	"internhub-api/internal/transport/dto"

	"github.com/google/uuid"
)

// updatableJobFields is the allow-list for partial job updates.
var updatableJobFields = fieldSet(
	"title", "description", "skills", "experienceLevel", "education", "jobType",
	"salaryMin", "salaryMax", "currency", "location", "workMode", "deadline",
	"openings", "responsibilities", "benefits", "visibility",
)

type jobService struct {
	jobs     storage.JobRepository
	partners PartnerService
	stats    StatsAggregator
	log      logger.Logger
}

// NewJobService creates a new instance of JobService.
func NewJobService(store *storage.Store, partners PartnerService, stats StatsAggregator, log logger.Logger) JobService {
	return &jobService{
		jobs:     store.Jobs,
		partners: partners,
		stats:    stats,
		log:      log.WithFields(map[string]interface{}{"component": "jobs"}),
	}
}

var _ JobService = (*jobService)(nil)

func (s *jobService) CreateJob(ctx context.Context, req *dto.CreateJobRequest) (*models.JobPosting, error) {
	partner, err := s.partners.RequireApproved(ctx, req.PartnerUID)
	if err != nil {
		return nil, err
	}

	status := models.JobStatusDraft
	if req.Status != "" {
		status = models.JobStatus(strings.ToLower(strings.TrimSpace(req.Status)))
		if status != models.JobStatusDraft && status != models.JobStatusActive {
			return nil, fmt.Errorf("%w: initial status must be draft or active", ErrInvalidArgument)
		}
	}
	if err := checkSalaryRange(req.SalaryMin, req.SalaryMax); err != nil {
		return nil, err
	}

	visibility := models.VisibilityPublic
	if req.Visibility != "" {
		visibility = models.Visibility(req.Visibility)
	}
	openings := req.Openings
	if openings < 1 {
		openings = 1
	}

	ts := now()
	job := &models.JobPosting{
		ID:          uuid.New(),
		PartnerID:   partner.ID,
		PartnerUID:  partner.UID,
		CompanyName: partner.CompanyName,
		JobContent: models.JobContent{
			Title:            strings.TrimSpace(req.Title),
			Description:      req.Description,
			Skills:           nonNilStrings(req.Skills),
			ExperienceLevel:  req.ExperienceLevel,
			Education:        req.Education,
			JobType:          req.JobType,
			SalaryMin:        req.SalaryMin,
			SalaryMax:        req.SalaryMax,
			Currency:         strings.ToUpper(req.Currency),
			Location:         req.Location,
			WorkMode:         req.WorkMode,
			Deadline:         req.Deadline,
			Openings:         openings,
			Responsibilities: req.Responsibilities,
			Benefits:         req.Benefits,
		},
		Status:     status,
		Visibility: visibility,
		CreatedAt:  ts,
		UpdatedAt:  ts,
	}
	if status == models.JobStatusActive {
		job.PublishedAt = &ts
	}

	if err := s.jobs.Create(ctx, job); err != nil {
		s.log.Error("CreateJob: store write failed", map[string]interface{}{"partner_id": partner.ID.String(), "error": err})
		return nil, mapRepoError(err, "creating job")
	}

	s.stats.JobCreated(ctx, partner.ID)
	if status == models.JobStatusActive {
		s.stats.JobPublished(ctx, partner.ID)
	}
	metrics.RecordTransition("job", string(status))
	s.log.Info("CreateJob: job created", map[string]interface{}{"job_id": job.ID.String(), "status": string(status)})
	return job, nil
}

func (s *jobService) UpdateJob(ctx context.Context, req *dto.UpdateJobRequest) (*models.JobPosting, error) {
	if bad := unknownFields(req.Fields, updatableJobFields); len(bad) > 0 {
		return nil, fmt.Errorf("%w: fields cannot be updated: %s", ErrInvalidArgument, strings.Join(bad, ", "))
	}

	job, err := s.ownedJob(ctx, req.JobID, req.PartnerUID)
	if err != nil {
		return nil, err
	}

	c := &job.JobContent
	setString(&c.Title, req.Title)
	setString(&c.Description, req.Description)
	setString(&c.ExperienceLevel, req.ExperienceLevel)
	setString(&c.Education, req.Education)
	setString(&c.JobType, req.JobType)
	setString(&c.Location, req.Location)
	setString(&c.WorkMode, req.WorkMode)
	if req.Currency != nil {
		c.Currency = strings.ToUpper(*req.Currency)
	}
	if req.Skills != nil {
		c.Skills = req.Skills
	}
	if req.Responsibilities != nil {
		c.Responsibilities = req.Responsibilities
	}
	if req.Benefits != nil {
		c.Benefits = req.Benefits
	}
	if req.SalaryMin != nil {
		c.SalaryMin = req.SalaryMin
	}
	if req.SalaryMax != nil {
		c.SalaryMax = req.SalaryMax
	}
	if req.Deadline != nil {
		c.Deadline = req.Deadline
	}
	if req.Openings != nil {
		c.Openings = *req.Openings
	}
	if req.Visibility != nil {
		job.Visibility = models.Visibility(*req.Visibility)
	}
	if err := checkSalaryRange(c.SalaryMin, c.SalaryMax); err != nil {
		return nil, err
	}

	updated, err := s.jobs.UpdateContent(ctx, job.ID, job.JobContent, job.Visibility, now())
	if err != nil {
		return nil, mapRepoError(err, "updating job")
	}
	return updated, nil
}

// SetJobStatus moves a posting along draft -> active -> closed|filled.
func (s *jobService) SetJobStatus(ctx context.Context, req *dto.UpdateJobStatusRequest) (*models.JobPosting, error) {
	job, err := s.ownedJob(ctx, req.JobID, req.PartnerUID)
	if err != nil {
		return nil, err
	}
	target := models.JobStatus(strings.ToLower(strings.TrimSpace(req.Status)))
	if !target.IsValid() {
		return nil, fmt.Errorf("%w: unknown job status %q", ErrInvalidArgument, req.Status)
	}
	if !isAllowedJobTransition(job.Status, target) {
		return nil, fmt.Errorf("%w: cannot move job from %s to %s", ErrInvalidState, job.Status, target)
	}
	if target == models.JobStatusActive {
		if _, err := s.partners.RequireApproved(ctx, req.PartnerUID); err != nil {
			return nil, err
		}
	}

	// Only the request whose write wins moves the counters.
	updated, err := s.jobs.TransitionStatus(ctx, job.ID, job.Status, target, now())
	if err != nil {
		return nil, mapRepoError(err, "updating job status")
	}
	job = updated

	switch target {
	case models.JobStatusActive:
		s.stats.JobPublished(ctx, job.PartnerID)
	case models.JobStatusClosed:
		s.stats.JobClosed(ctx, job.PartnerID)
	}
	metrics.RecordTransition("job", string(target))
	s.log.Info("SetJobStatus: job status changed", map[string]interface{}{"job_id": job.ID.String(), "status": string(target)})
	return job, nil
}

func (s *jobService) DeleteJob(ctx context.Context, req *dto.DeleteJobRequest) error {
	job, err := s.ownedJob(ctx, req.JobID, req.PartnerUID)
	if err != nil {
		return err
	}
	if job.Status != models.JobStatusDraft {
		return fmt.Errorf("%w: only draft jobs can be deleted, close active jobs instead", ErrInvalidState)
	}
	if err := s.jobs.Delete(ctx, job.ID, models.JobStatusDraft); err != nil {
		return mapRepoError(err, "deleting job")
	}
	return nil
}

// ViewJob returns a posting and counts the view. Drafts are only visible to
// the owning partner; views by the owner are not counted.
func (s *jobService) ViewJob(ctx context.Context, req *dto.ViewJobRequest) (*models.JobPosting, error) {
	job, err := s.jobs.GetByID(ctx, req.JobID)
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("fetching job %s", req.JobID))
	}

	isOwner := req.Viewer != nil && req.Viewer.UID == job.PartnerUID
	if job.Status == models.JobStatusDraft && !isOwner {
		return nil, fmt.Errorf("%w: job %s", ErrNotFound, req.JobID)
	}
	if !isOwner {
		s.stats.JobViewed(ctx, job.ID)
		job.Stats.Views++
	}
	return job, nil
}

func (s *jobService) ListPublicJobs(ctx context.Context, req *dto.ListPublicJobsRequest) ([]models.JobPosting, int, error) {
	active := models.JobStatusActive
	public := models.VisibilityPublic
	jobs, err := s.jobs.List(ctx, storage.JobFilter{
		Status:          &active,
		Visibility:      &public,
		JobType:         req.JobType,
		ExperienceLevel: req.ExperienceLevel,
		WorkMode:        req.WorkMode,
	})
	if err != nil {
		return nil, 0, mapRepoError(err, "listing public jobs")
	}

	skills := splitList(req.Skills)
	search := strings.TrimSpace(req.Search)
	filtered := jobs[:0]
	for _, j := range jobs {
		if len(skills) > 0 && !intersectsFold(j.Skills, skills) {
			continue
		}
		if search != "" && !jobMatchesText(&j, search) {
			continue
		}
		filtered = append(filtered, j)
	}

	sort.SliceStable(filtered, func(a, b int) bool {
		pa, pb := filtered[a].PublishedAt, filtered[b].PublishedAt
		switch {
		case pa == nil:
			return false
		case pb == nil:
			return true
		case !pa.Equal(*pb):
			return pa.After(*pb)
		}
		return filtered[a].ID.String() < filtered[b].ID.String()
	})

	page := req.Pagination.Normalize(dto.MaxPageSize)
	return paginate(filtered, page), len(filtered), nil
}

func (s *jobService) ListMyJobs(ctx context.Context, req *dto.ListMyJobsRequest) ([]models.JobPosting, int, error) {
	partner, err := s.partners.GetProfile(ctx, req.PartnerUID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, 0, fmt.Errorf("%w: no partner profile for this account", ErrForbidden)
		}
		return nil, 0, err
	}

	filter := storage.JobFilter{PartnerID: &partner.ID}
	if req.Status != "" {
		status := models.JobStatus(strings.ToLower(req.Status))
		if !status.IsValid() {
			return nil, 0, fmt.Errorf("%w: unknown job status %q", ErrInvalidArgument, req.Status)
		}
		filter.Status = &status
	}

	jobs, err := s.jobs.List(ctx, filter)
	if err != nil {
		return nil, 0, mapRepoError(err, "listing partner jobs")
	}
	page := req.Pagination.Normalize(dto.MaxPageSize)
	return paginate(jobs, page), len(jobs), nil
}

// ownedJob loads a job and checks that partnerUID owns it.
func (s *jobService) ownedJob(ctx context.Context, id uuid.UUID, partnerUID string) (*models.JobPosting, error) {
	job, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("fetching job %s", id))
	}
	if job.PartnerUID != partnerUID {
		return nil, fmt.Errorf("%w: job belongs to another partner", ErrForbidden)
	}
	return job, nil
}

var allowedJobTransitions = map[models.JobStatus][]models.JobStatus{
	models.JobStatusDraft:  {models.JobStatusActive},
	models.JobStatusActive: {models.JobStatusClosed, models.JobStatusFilled},
}

func isAllowedJobTransition(from, to models.JobStatus) bool {
	for _, next := range allowedJobTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func jobMatchesText(j *models.JobPosting, q string) bool {
	if containsFold(j.Title, q) || containsFold(j.Description, q) || containsFold(j.CompanyName, q) {
		return true
	}
	for _, skill := range j.Skills {
		if containsFold(skill, q) {
			return true
		}
	}
	return false
}

func checkSalaryRange(lo, hi *int) error {
	if lo != nil && hi != nil && *lo > *hi {
		return fmt.Errorf("%w: salaryMin cannot exceed salaryMax", ErrInvalidArgument)
	}
	return nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
