package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"internhub-api/internal/logger"
	"internhub-api/internal/metrics"
	"internhub-api/internal/models"
	"internhub-api/internal/notify"
	"internhub-api/internal/storage"
	"internhub-api/internal/transport/dto"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const bulkUpdateConcurrency = 8

// bulkTargets are the only statuses a bulk update may set.
var bulkTargets = map[models.ApplicationStatus]bool{
	models.ApplicationReviewed:    true,
	models.ApplicationShortlisted: true,
	models.ApplicationRejected:    true,
}

type applicationService struct {
	apps       storage.ApplicationRepository
	jobs       storage.JobRepository
	candidates storage.CandidateRepository
	partners   PartnerService
	stats      StatsAggregator
	notifier   notify.Publisher
	log        logger.Logger
}

// NewApplicationService creates a new instance of ApplicationService.
func NewApplicationService(store *storage.Store, partners PartnerService, stats StatsAggregator, notifier notify.Publisher, log logger.Logger) ApplicationService {
	return &applicationService{
		apps:       store.Applications,
		jobs:       store.Jobs,
		candidates: store.Candidates,
		partners:   partners,
		stats:      stats,
		notifier:   notifier,
		log:        log.WithFields(map[string]interface{}{"component": "applications"}),
	}
}

var _ ApplicationService = (*applicationService)(nil)

func (s *applicationService) Submit(ctx context.Context, req *dto.SubmitApplicationRequest) (*models.JobApplication, error) {
	if req.Student.Role != models.RoleStudent {
		return nil, fmt.Errorf("%w: only students can apply", ErrForbidden)
	}

	job, err := s.jobs.GetByID(ctx, req.JobID)
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("fetching job %s", req.JobID))
	}
	ts := now()
	if !job.AcceptsApplications(ts) {
		return nil, fmt.Errorf("%w: job is not accepting applications", ErrInvalidState)
	}

	exists, err := s.apps.Exists(ctx, req.Student.UID, job.ID)
	if err != nil {
		return nil, mapRepoError(err, "checking existing application")
	}
	if exists {
		return nil, fmt.Errorf("%w: already applied to this job", ErrConflict)
	}

	snapshot, err := s.profileSnapshot(ctx, req.Student)
	if err != nil {
		return nil, err
	}

	app := &models.JobApplication{
		ID:          models.ApplicationID(req.Student.UID, job.ID),
		JobID:       job.ID,
		PartnerID:   job.PartnerID,
		StudentUID:  req.Student.UID,
		CoverLetter: req.CoverLetter,
		Profile:     snapshot,
		Status:      models.ApplicationApplied,
		StatusHistory: []models.StatusEntry{{
			Status:    models.ApplicationApplied,
			ChangedBy: req.Student.UID,
			ChangedAt: ts,
		}},
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	// The deterministic key makes a concurrent duplicate fail here.
	if err := s.apps.Create(ctx, app); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return nil, fmt.Errorf("%w: already applied to this job", ErrConflict)
		}
		return nil, mapRepoError(err, "creating application")
	}

	s.stats.ApplicationReceived(ctx, job.ID, job.PartnerID)
	metrics.RecordTransition("application", string(models.ApplicationApplied))
	publish(ctx, s.notifier, s.log, notify.Event{
		Type:    notify.EventApplicationSubmitted,
		Subject: app.ID.String(),
		Attributes: map[string]string{
			"jobId":      job.ID.String(),
			"partnerId":  job.PartnerID.String(),
			"studentUid": app.StudentUID,
		},
	})
	return app, nil
}

// profileSnapshot freezes the applicant profile. Students without a stored
// profile get a snapshot built from their identity.
func (s *applicationService) profileSnapshot(ctx context.Context, student models.Identity) (models.ProfileSnapshot, error) {
	profile, err := s.candidates.GetByUID(ctx, student.UID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.ProfileSnapshot{Email: student.Email, Skills: []string{}}, nil
		}
		return models.ProfileSnapshot{}, mapRepoError(err, "fetching student profile")
	}
	snap := profile.Snapshot()
	if snap.Email == "" {
		snap.Email = student.Email
	}
	return snap, nil
}

func (s *applicationService) GetApplication(ctx context.Context, req *dto.GetApplicationRequest) (*models.JobApplication, error) {
	app, err := s.apps.GetByID(ctx, req.ApplicationID)
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("fetching application %s", req.ApplicationID))
	}
	if err := s.checkReadAccess(ctx, app, req.Caller); err != nil {
		return nil, err
	}
	return app, nil
}

func (s *applicationService) Timeline(ctx context.Context, req *dto.GetApplicationRequest) ([]models.StatusEntry, error) {
	app, err := s.GetApplication(ctx, req)
	if err != nil {
		return nil, err
	}
	return app.StatusHistory, nil
}

func (s *applicationService) ListApplications(ctx context.Context, req *dto.ListApplicationsRequest) ([]models.ApplicationWithJob, int, error) {
	var filter storage.ApplicationFilter
	switch req.Caller.Role {
	case models.RolePartner:
		partner, err := s.callerPartner(ctx, req.Caller)
		if err != nil {
			return nil, 0, err
		}
		filter.PartnerID = &partner.ID
	case models.RoleStudent:
		filter.StudentUID = req.Caller.UID
	default:
		return nil, 0, fmt.Errorf("%w: role %s cannot list applications", ErrForbidden, req.Caller.Role)
	}

	if req.JobID != "" {
		jobID, err := uuid.Parse(req.JobID)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: invalid jobId", ErrInvalidArgument)
		}
		filter.JobID = &jobID
	}
	if req.Status != "" {
		status, ok := models.ParseApplicationStatus(req.Status)
		if !ok {
			return nil, 0, fmt.Errorf("%w: unknown application status %q", ErrInvalidArgument, req.Status)
		}
		filter.Status = &status
	}

	apps, err := s.apps.List(ctx, filter)
	if err != nil {
		return nil, 0, mapRepoError(err, "listing applications")
	}
	page := paginate(apps, req.Pagination.Normalize(dto.MaxPageSize))

	ids := make([]uuid.UUID, 0, len(page))
	for _, a := range page {
		ids = append(ids, a.JobID)
	}
	jobs, err := s.jobs.GetMany(ctx, ids)
	if err != nil {
		return nil, 0, mapRepoError(err, "loading jobs for applications")
	}

	out := make([]models.ApplicationWithJob, 0, len(page))
	for _, a := range page {
		item := models.ApplicationWithJob{JobApplication: a}
		if j, ok := jobs[a.JobID]; ok {
			summary := j.Summary()
			item.Job = &summary
		}
		out = append(out, item)
	}
	return out, len(apps), nil
}

func (s *applicationService) SetStatus(ctx context.Context, req *dto.UpdateApplicationStatusRequest) (*models.JobApplication, error) {
	app, err := s.actorApplication(ctx, req.Actor, req.ApplicationID)
	if err != nil {
		return nil, err
	}
	target, ok := models.ParseApplicationStatus(req.Status)
	if !ok {
		return nil, fmt.Errorf("%w: unknown application status %q", ErrInvalidArgument, req.Status)
	}
	return s.transition(ctx, app, target, req.Actor.UID, req.Note)
}

// BulkSetStatus applies one status to many applications. Each id succeeds or
// is skipped on its own; repeated ids are applied once and the result keeps
// the order of first appearance.
func (s *applicationService) BulkSetStatus(ctx context.Context, req *dto.BulkUpdateStatusRequest) (*dto.BulkUpdateResult, error) {
	target, ok := models.ParseApplicationStatus(req.Status)
	if !ok || !bulkTargets[target] {
		return nil, fmt.Errorf("%w: bulk status must be reviewed, shortlisted or rejected", ErrInvalidArgument)
	}
	partner, err := s.callerPartner(ctx, req.Actor)
	if err != nil {
		return nil, err
	}

	ids := uniqueIDs(req.ApplicationIDs)
	outcomes := make([]error, len(ids))
	var g errgroup.Group
	g.SetLimit(bulkUpdateConcurrency)
	for i, id := range ids {
		g.Go(func() error {
			app, err := s.ownedApplication(ctx, partner, id)
			if err == nil {
				_, err = s.transition(ctx, app, target, req.Actor.UID, req.Note)
			}
			outcomes[i] = err
			return nil
		})
	}
	_ = g.Wait()

	result := &dto.BulkUpdateResult{Updated: []uuid.UUID{}, Skipped: []dto.BulkSkip{}}
	for i, id := range ids {
		if outcomes[i] == nil {
			result.Updated = append(result.Updated, id)
			continue
		}
		result.Skipped = append(result.Skipped, dto.BulkSkip{ID: id, Reason: skipReason(outcomes[i])})
	}

	s.log.Info("BulkSetStatus: completed", map[string]interface{}{
		"status": string(target), "updated": len(result.Updated), "skipped": len(result.Skipped),
	})
	return result, nil
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func skipReason(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "not found"
	case errors.Is(err, ErrForbidden):
		return "not owned by this partner"
	case errors.Is(err, ErrInvalidState):
		return err.Error()
	default:
		return "update failed"
	}
}

// transition checks the status graph against app as read, then appends to
// the history only if the stored status is still the one checked. Counters
// move only after that write succeeds.
func (s *applicationService) transition(ctx context.Context, app *models.JobApplication, target models.ApplicationStatus, actorUID, note string) (*models.JobApplication, error) {
	if !app.Status.CanTransitionTo(target) {
		return nil, fmt.Errorf("%w: cannot move application from %s to %s", ErrInvalidState, app.Status, target)
	}

	updated, err := s.apps.AppendStatus(ctx, app.ID, app.Status, models.StatusEntry{
		Status:    target,
		ChangedBy: actorUID,
		ChangedAt: now(),
		Note:      note,
	})
	if err != nil {
		return nil, mapRepoError(err, "updating application status")
	}

	switch target {
	case models.ApplicationShortlisted:
		s.stats.CandidateShortlisted(ctx, app.JobID)
	case models.ApplicationSelected:
		s.stats.CandidateSelected(ctx, app.JobID, app.PartnerID)
	}
	metrics.RecordTransition("application", string(target))
	publish(ctx, s.notifier, s.log, notify.Event{
		Type:    notify.EventApplicationStatus,
		Subject: app.ID.String(),
		Attributes: map[string]string{
			"from":       string(app.Status),
			"to":         string(target),
			"studentUid": app.StudentUID,
		},
	})
	return updated, nil
}

// AddNote replaces the partner's private note on the application.
func (s *applicationService) AddNote(ctx context.Context, req *dto.AddNoteRequest) (*models.JobApplication, error) {
	app, err := s.actorApplication(ctx, req.Actor, req.ApplicationID)
	if err != nil {
		return nil, err
	}
	updated, err := s.apps.SetNotes(ctx, app.ID, req.Note)
	if err != nil {
		return nil, mapRepoError(err, "saving application note")
	}
	return updated, nil
}

func (s *applicationService) Rate(ctx context.Context, req *dto.RateApplicationRequest) (*models.JobApplication, error) {
	app, err := s.actorApplication(ctx, req.Actor, req.ApplicationID)
	if err != nil {
		return nil, err
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrInvalidArgument)
	}
	updated, err := s.apps.SetRating(ctx, app.ID, req.Rating)
	if err != nil {
		return nil, mapRepoError(err, "saving application rating")
	}
	return updated, nil
}

// ScheduleInterview stores the interview details. The status is left as is;
// moving to interview-scheduled is a separate SetStatus call.
func (s *applicationService) ScheduleInterview(ctx context.Context, req *dto.ScheduleInterviewRequest) (*models.JobApplication, error) {
	app, err := s.actorApplication(ctx, req.Actor, req.ApplicationID)
	if err != nil {
		return nil, err
	}
	if app.Status.IsFinal() {
		return nil, fmt.Errorf("%w: application is already %s", ErrInvalidState, app.Status)
	}

	interview := models.Interview{
		ScheduledAt: req.ScheduledAt.UTC(),
		Mode:        req.Mode,
		MeetingLink: req.MeetingLink,
		Notes:       req.Notes,
	}
	entry := models.StatusEntry{
		Status:    app.Status,
		ChangedBy: req.Actor.UID,
		ChangedAt: now(),
		Note:      fmt.Sprintf("Interview scheduled for %s (%s)", interview.ScheduledAt.Format("2006-01-02 15:04 MST"), interview.Mode),
	}
	updated, err := s.apps.SetInterview(ctx, app.ID, app.Status, interview, entry)
	if err != nil {
		return nil, mapRepoError(err, "scheduling interview")
	}

	publish(ctx, s.notifier, s.log, notify.Event{
		Type:    notify.EventApplicationInterviewSet,
		Subject: app.ID.String(),
		Attributes: map[string]string{
			"studentUid":  app.StudentUID,
			"scheduledAt": interview.ScheduledAt.Format(time.RFC3339),
			"mode":        interview.Mode,
		},
	})
	return updated, nil
}

// callerPartner resolves the partner record behind a partner identity.
func (s *applicationService) callerPartner(ctx context.Context, actor models.Identity) (*models.Partner, error) {
	if actor.Role != models.RolePartner {
		return nil, fmt.Errorf("%w: partner role required", ErrForbidden)
	}
	partner, err := s.partners.GetProfile(ctx, actor.UID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: no partner profile for this account", ErrForbidden)
		}
		return nil, err
	}
	return partner, nil
}

func (s *applicationService) actorApplication(ctx context.Context, actor models.Identity, id uuid.UUID) (*models.JobApplication, error) {
	partner, err := s.callerPartner(ctx, actor)
	if err != nil {
		return nil, err
	}
	return s.ownedApplication(ctx, partner, id)
}

func (s *applicationService) ownedApplication(ctx context.Context, partner *models.Partner, id uuid.UUID) (*models.JobApplication, error) {
	app, err := s.apps.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("fetching application %s", id))
	}
	if app.PartnerID != partner.ID {
		return nil, fmt.Errorf("%w: application belongs to another partner", ErrForbidden)
	}
	return app, nil
}

// checkReadAccess allows the applicant and the owning partner.
func (s *applicationService) checkReadAccess(ctx context.Context, app *models.JobApplication, caller models.Identity) error {
	switch caller.Role {
	case models.RoleStudent:
		if app.StudentUID == caller.UID {
			return nil
		}
	case models.RolePartner:
		partner, err := s.callerPartner(ctx, caller)
		if err != nil {
			return err
		}
		if app.PartnerID == partner.ID {
			return nil
		}
	}
	return fmt.Errorf("%w: no access to this application", ErrForbidden)
}
