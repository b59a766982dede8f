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

type ApplicationRepo struct {
	mu   sync.RWMutex
	apps map[uuid.UUID]*models.JobApplication
}

func NewApplicationRepo() *ApplicationRepo {
	return &ApplicationRepo{apps: make(map[uuid.UUID]*models.JobApplication)}
}

var _ storage.ApplicationRepository = (*ApplicationRepo)(nil)

func (r *ApplicationRepo) Create(_ context.Context, app *models.JobApplication) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.apps[app.ID]; exists {
		return fmt.Errorf("application %s: %w", app.ID, storage.ErrConflict)
	}
	for _, a := range r.apps {
		if a.StudentUID == app.StudentUID && a.JobID == app.JobID {
			return fmt.Errorf("application for student %s on job %s: %w", app.StudentUID, app.JobID, storage.ErrConflict)
		}
	}
	r.apps[app.ID] = cloneApplication(app)
	return nil
}

func (r *ApplicationRepo) GetByID(_ context.Context, id uuid.UUID) (*models.JobApplication, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.apps[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return cloneApplication(a), nil
}

func (r *ApplicationRepo) Exists(_ context.Context, studentUID string, jobID uuid.UUID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.apps {
		if a.StudentUID == studentUID && a.JobID == jobID {
			return true, nil
		}
	}
	return false, nil
}

func (r *ApplicationRepo) List(_ context.Context, f storage.ApplicationFilter) ([]models.JobApplication, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.JobApplication, 0)
	for _, a := range r.apps {
		if f.PartnerID != nil && a.PartnerID != *f.PartnerID {
			continue
		}
		if f.StudentUID != "" && a.StudentUID != f.StudentUID {
			continue
		}
		if f.JobID != nil && a.JobID != *f.JobID {
			continue
		}
		if f.Status != nil && a.Status != *f.Status {
			continue
		}
		out = append(out, *cloneApplication(a))
	}
	newestFirst(out, func(a *models.JobApplication) time.Time { return a.CreatedAt })
	return out, nil
}

// mutate applies fn to the stored application under the write lock. fn may
// refuse the write by returning an error.
func (r *ApplicationRepo) mutate(id uuid.UUID, fn func(a *models.JobApplication) error) (*models.JobApplication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.apps[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	if err := fn(a); err != nil {
		return nil, err
	}
	a.UpdatedAt = time.Now().UTC()
	return cloneApplication(a), nil
}

func expectStatus(a *models.JobApplication, from models.ApplicationStatus) error {
	if a.Status != from {
		return fmt.Errorf("application %s is %s, expected %s: %w", a.ID, a.Status, from, storage.ErrStaleState)
	}
	return nil
}

func (r *ApplicationRepo) AppendStatus(_ context.Context, id uuid.UUID, from models.ApplicationStatus, entry models.StatusEntry) (*models.JobApplication, error) {
	return r.mutate(id, func(a *models.JobApplication) error {
		if err := expectStatus(a, from); err != nil {
			return err
		}
		a.Status = entry.Status
		a.StatusHistory = append(a.StatusHistory, entry)
		return nil
	})
}

func (r *ApplicationRepo) SetNotes(_ context.Context, id uuid.UUID, notes string) (*models.JobApplication, error) {
	return r.mutate(id, func(a *models.JobApplication) error {
		a.Notes = &notes
		return nil
	})
}

func (r *ApplicationRepo) SetRating(_ context.Context, id uuid.UUID, rating int) (*models.JobApplication, error) {
	return r.mutate(id, func(a *models.JobApplication) error {
		a.PartnerRating = &rating
		return nil
	})
}

func (r *ApplicationRepo) SetInterview(_ context.Context, id uuid.UUID, from models.ApplicationStatus, interview models.Interview, entry models.StatusEntry) (*models.JobApplication, error) {
	return r.mutate(id, func(a *models.JobApplication) error {
		if err := expectStatus(a, from); err != nil {
			return err
		}
		a.Interview = &interview
		a.StatusHistory = append(a.StatusHistory, entry)
		return nil
	})
}
