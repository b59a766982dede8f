package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"internhub-api/internal/models"
	"internhub-api/internal/storage"

	"github.com/google/uuid"
)

type JobRepo struct {
	mu   sync.RWMutex
	jobs map[uuid.UUID]*models.JobPosting
}

func NewJobRepo() *JobRepo {
	return &JobRepo{jobs: make(map[uuid.UUID]*models.JobPosting)}
}

var _ storage.JobRepository = (*JobRepo)(nil)

func (r *JobRepo) Create(_ context.Context, job *models.JobPosting) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.jobs[job.ID]; exists {
		return fmt.Errorf("job %s: %w", job.ID, storage.ErrConflict)
	}
	r.jobs[job.ID] = cloneJob(job)
	return nil
}

func (r *JobRepo) GetByID(_ context.Context, id uuid.UUID) (*models.JobPosting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	j, ok := r.jobs[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return cloneJob(j), nil
}

func (r *JobRepo) GetMany(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]*models.JobPosting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[uuid.UUID]*models.JobPosting, len(ids))
	for _, id := range ids {
		if j, ok := r.jobs[id]; ok {
			out[id] = cloneJob(j)
		}
	}
	return out, nil
}

func (r *JobRepo) List(_ context.Context, f storage.JobFilter) ([]models.JobPosting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.JobPosting, 0)
	for _, j := range r.jobs {
		if f.PartnerID != nil && j.PartnerID != *f.PartnerID {
			continue
		}
		if f.Status != nil && j.Status != *f.Status {
			continue
		}
		if f.Visibility != nil && j.Visibility != *f.Visibility {
			continue
		}
		if f.JobType != "" && j.JobType != f.JobType {
			continue
		}
		if f.ExperienceLevel != "" && j.ExperienceLevel != f.ExperienceLevel {
			continue
		}
		if f.WorkMode != "" && j.WorkMode != f.WorkMode {
			continue
		}
		out = append(out, *cloneJob(j))
	}
	newestFirst(out, func(j *models.JobPosting) time.Time { return j.CreatedAt })
	return out, nil
}

func (r *JobRepo) UpdateContent(_ context.Context, id uuid.UUID, content models.JobContent, visibility models.Visibility, at time.Time) (*models.JobPosting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	j.JobContent = cloneJob(&models.JobPosting{JobContent: content}).JobContent
	j.Visibility = visibility
	j.UpdatedAt = at
	return cloneJob(j), nil
}

func (r *JobRepo) TransitionStatus(_ context.Context, id uuid.UUID, from, to models.JobStatus, at time.Time) (*models.JobPosting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	if j.Status != from {
		return nil, fmt.Errorf("job %s is %s, expected %s: %w", id, j.Status, from, storage.ErrStaleState)
	}
	j.Status = to
	j.UpdatedAt = at
	switch to {
	case models.JobStatusActive:
		j.PublishedAt = cloneTime(&at)
	case models.JobStatusClosed, models.JobStatusFilled:
		j.ClosedAt = cloneTime(&at)
	}
	return cloneJob(j), nil
}

func (r *JobRepo) Delete(_ context.Context, id uuid.UUID, status models.JobStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok {
		return storage.ErrNotFound
	}
	if j.Status != status {
		return fmt.Errorf("job %s is %s: %w", id, j.Status, storage.ErrStaleState)
	}
	delete(r.jobs, id)
	return nil
}

func (r *JobRepo) IncrementStat(_ context.Context, id uuid.UUID, stat storage.JobStat, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok {
		return storage.ErrNotFound
	}
	switch stat {
	case storage.JobStatViews:
		j.Stats.Views += delta
	case storage.JobStatApplications:
		j.Stats.Applications += delta
	case storage.JobStatShortlisted:
		j.Stats.Shortlisted += delta
	case storage.JobStatSelected:
		j.Stats.Selected += delta
	default:
		return fmt.Errorf("%w: %s", storage.ErrUnknownStat, stat)
	}
	return nil
}
