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

type PartnerRepo struct {
	mu    sync.RWMutex
	byID  map[uuid.UUID]*models.Partner
	byUID map[string]uuid.UUID
}

func NewPartnerRepo() *PartnerRepo {
	return &PartnerRepo{
		byID:  make(map[uuid.UUID]*models.Partner),
		byUID: make(map[string]uuid.UUID),
	}
}

var _ storage.PartnerRepository = (*PartnerRepo)(nil)

func (r *PartnerRepo) Create(_ context.Context, p *models.Partner) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byUID[p.UID]; exists {
		return fmt.Errorf("partner for uid %s: %w", p.UID, storage.ErrConflict)
	}
	if _, exists := r.byID[p.ID]; exists {
		return fmt.Errorf("partner id %s: %w", p.ID, storage.ErrConflict)
	}
	r.byID[p.ID] = clonePartner(p)
	r.byUID[p.UID] = p.ID
	return nil
}

func (r *PartnerRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Partner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byID[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return clonePartner(p), nil
}

func (r *PartnerRepo) GetByUID(_ context.Context, uid string) (*models.Partner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byUID[uid]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return clonePartner(r.byID[id]), nil
}

func (r *PartnerRepo) List(_ context.Context, filter storage.PartnerFilter) ([]models.Partner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Partner, 0, len(r.byID))
	for _, p := range r.byID {
		if filter.Status != nil && p.VerificationStatus != *filter.Status {
			continue
		}
		out = append(out, *clonePartner(p))
	}
	newestFirst(out, func(p *models.Partner) time.Time { return p.CreatedAt })
	return out, nil
}

func (r *PartnerRepo) UpdateProfile(_ context.Context, id uuid.UUID, profile models.PartnerProfile, at time.Time) (*models.Partner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	p.PartnerProfile = profile
	p.UpdatedAt = at
	return clonePartner(p), nil
}

func (r *PartnerRepo) TransitionVerification(_ context.Context, id uuid.UUID, c storage.VerificationChange) (*models.Partner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	if p.VerificationStatus != c.From {
		return nil, fmt.Errorf("partner %s is %s, expected %s: %w", id, p.VerificationStatus, c.From, storage.ErrStaleState)
	}
	p.VerificationStatus = c.To
	p.IsActive = c.IsActive
	if c.ApprovedBy != nil {
		p.ApprovedBy = cloneString(c.ApprovedBy)
	}
	if c.ApprovedAt != nil {
		p.ApprovedAt = cloneTime(c.ApprovedAt)
	}
	p.UpdatedAt = c.At
	return clonePartner(p), nil
}

func (r *PartnerRepo) IncrementStat(_ context.Context, id uuid.UUID, stat storage.PartnerStat, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok {
		return storage.ErrNotFound
	}
	switch stat {
	case storage.PartnerStatTotalJobsPosted:
		p.Stats.TotalJobsPosted += delta
	case storage.PartnerStatActiveJobs:
		p.Stats.ActiveJobs += delta
	case storage.PartnerStatTotalApplications:
		p.Stats.TotalApplications += delta
	case storage.PartnerStatTotalHires:
		p.Stats.TotalHires += delta
	default:
		return fmt.Errorf("%w: %s", storage.ErrUnknownStat, stat)
	}
	return nil
}

type RoleRepo struct {
	mu      sync.RWMutex
	records map[string]*models.RoleRecord
}

func NewRoleRepo() *RoleRepo {
	return &RoleRepo{records: make(map[string]*models.RoleRecord)}
}

var _ storage.RoleRepository = (*RoleRepo)(nil)

func (r *RoleRepo) Upsert(_ context.Context, rec *models.RoleRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *rec
	if rec.PartnerID != nil {
		id := *rec.PartnerID
		c.PartnerID = &id
	}
	if rec.VerificationStatus != nil {
		s := *rec.VerificationStatus
		c.VerificationStatus = &s
	}
	r.records[rec.UID] = &c
	return nil
}

func (r *RoleRepo) GetByUID(_ context.Context, uid string) (*models.RoleRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[uid]
	if !ok {
		return nil, storage.ErrNotFound
	}
	c := *rec
	return &c, nil
}
