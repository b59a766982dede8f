package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"internhub-api/internal/models"
	"internhub-api/internal/storage"

	"github.com/google/uuid"
)

// CandidateRepo holds the candidate read model. Put stands in for the
// student-facing writer that owns the profiles.
type CandidateRepo struct {
	mu       sync.RWMutex
	profiles map[string]*models.CandidateProfile
}

func NewCandidateRepo() *CandidateRepo {
	return &CandidateRepo{profiles: make(map[string]*models.CandidateProfile)}
}

var _ storage.CandidateRepository = (*CandidateRepo)(nil)

func (r *CandidateRepo) Put(p models.CandidateProfile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[p.UID] = cloneCandidate(&p)
}

func (r *CandidateRepo) ListVisible(_ context.Context) ([]models.CandidateProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.CandidateProfile, 0, len(r.profiles))
	for _, p := range r.profiles {
		if p.VisibleToPartners {
			out = append(out, *cloneCandidate(p))
		}
	}
	// Map iteration order is random; keep reads stable.
	sort.Slice(out, func(i, j int) bool { return out[i].UID < out[j].UID })
	return out, nil
}

func (r *CandidateRepo) GetByUID(_ context.Context, uid string) (*models.CandidateProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.profiles[uid]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return cloneCandidate(p), nil
}

type shortlistKey struct {
	partnerUID string
	studentUID string
}

type ShortlistRepo struct {
	mu      sync.RWMutex
	entries map[shortlistKey]*models.ShortlistEntry
}

func NewShortlistRepo() *ShortlistRepo {
	return &ShortlistRepo{entries: make(map[shortlistKey]*models.ShortlistEntry)}
}

var _ storage.ShortlistRepository = (*ShortlistRepo)(nil)

func (r *ShortlistRepo) Upsert(_ context.Context, entry *models.ShortlistEntry) (*models.ShortlistEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := shortlistKey{entry.PartnerUID, entry.StudentUID}
	stored := *entry
	if existing, ok := r.entries[key]; ok {
		stored.CreatedAt = existing.CreatedAt
	}
	r.entries[key] = &stored
	out := stored
	return &out, nil
}

func (r *ShortlistRepo) Delete(_ context.Context, partnerUID, studentUID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := shortlistKey{partnerUID, studentUID}
	if _, ok := r.entries[key]; !ok {
		return storage.ErrNotFound
	}
	delete(r.entries, key)
	return nil
}

func (r *ShortlistRepo) ListByPartner(_ context.Context, partnerUID string) ([]models.ShortlistEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.ShortlistEntry, 0)
	for k, e := range r.entries {
		if k.partnerUID == partnerUID {
			out = append(out, *e)
		}
	}
	newestFirst(out, func(e *models.ShortlistEntry) time.Time { return e.UpdatedAt })
	return out, nil
}

type ResumeAccessRepo struct {
	mu   sync.Mutex
	logs []models.ResumeAccessLog
}

func NewResumeAccessRepo() *ResumeAccessRepo {
	return &ResumeAccessRepo{}
}

var _ storage.ResumeAccessRepository = (*ResumeAccessRepo)(nil)

func (r *ResumeAccessRepo) Append(_ context.Context, rec *models.ResumeAccessLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *rec
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	rec.ID = c.ID
	r.logs = append(r.logs, c)
	return nil
}

func (r *ResumeAccessRepo) ListByStudent(_ context.Context, studentUID string) ([]models.ResumeAccessLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.ResumeAccessLog, 0)
	for _, l := range r.logs {
		if l.StudentUID == studentUID {
			out = append(out, l)
		}
	}
	return out, nil
}
