package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"internhub-api/internal/logger"
	"internhub-api/internal/models"
	"internhub-api/internal/notify"
	"internhub-api/internal/services"
	"internhub-api/internal/storage"
	"internhub-api/internal/storage/memory"
	"internhub-api/internal/transport/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []notify.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e notify.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) types() []notify.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]notify.EventType, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type fixture struct {
	ctx        context.Context
	store      *storage.Store
	candidates *memory.CandidateRepo
	events     *recordingPublisher
	partners   services.PartnerService
	jobs       services.JobService
	apps       services.ApplicationService
	discovery  services.DiscoveryService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWith(t, nil)
}

// newFixtureWith lets a test swap repositories (for example with gated
// wrappers) before the services are built.
func newFixtureWith(t *testing.T, wrap func(*storage.Store)) *fixture {
	t.Helper()
	store, candidates := memory.NewStore()
	if wrap != nil {
		wrap(store)
	}
	log := logger.NewTestLogger(t)
	events := &recordingPublisher{}

	stats := services.NewStatsAggregator(store.Partners, store.Jobs, log)
	partners := services.NewPartnerService(store, events, log)
	return &fixture{
		ctx:        context.Background(),
		store:      store,
		candidates: candidates,
		events:     events,
		partners:   partners,
		jobs:       services.NewJobService(store, partners, stats, log),
		apps:       services.NewApplicationService(store, partners, stats, events, log),
		discovery:  services.NewDiscoveryService(store, partners, 0, log),
	}
}

func partnerIdentity(uid string) models.Identity {
	return models.Identity{UID: uid, Email: uid + "@corp.example", Role: models.RolePartner}
}

func studentIdentity(uid string) models.Identity {
	return models.Identity{UID: uid, Email: uid + "@uni.example", Role: models.RoleStudent}
}

func boolPtr(b bool) *bool { return &b }

func strPtr(s string) *string { return &s }

// registerPartner creates a partner and, when approve is set, approves it.
func (f *fixture) registerPartner(t *testing.T, uid, company string, approve bool) *models.Partner {
	t.Helper()
	p, err := f.partners.Register(f.ctx, &dto.RegisterPartnerRequest{
		UID: uid, Email: uid + "@corp.example", CompanyName: company,
	})
	require.NoError(t, err)
	if !approve {
		return p
	}
	p, err = f.partners.Verify(f.ctx, &dto.VerifyPartnerRequest{
		PartnerID: p.ID, ReviewerUID: "admin-1", Decision: "approved",
	})
	require.NoError(t, err)
	return p
}

func (f *fixture) createJob(t *testing.T, partnerUID, status string) *models.JobPosting {
	t.Helper()
	job, err := f.jobs.CreateJob(f.ctx, &dto.CreateJobRequest{
		PartnerUID:  partnerUID,
		Title:       "Backend Intern",
		Description: "Build APIs",
		Skills:      []string{"Go", "SQL"},
		JobType:     "internship",
		WorkMode:    "remote",
		Status:      status,
	})
	require.NoError(t, err)
	return job
}

func (f *fixture) putCandidate(uid string, visible bool, mutate func(*models.CandidateProfile)) {
	p := models.CandidateProfile{
		UID:               uid,
		Name:              "Student " + uid,
		Email:             uid + "@uni.example",
		Phone:             "+100000",
		Skills:            []string{"go"},
		VisibleToPartners: visible,
		CreatedAt:         time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	if mutate != nil {
		mutate(&p)
	}
	f.candidates.Put(p)
}

func (f *fixture) newStats(t *testing.T) services.StatsAggregator {
	return services.NewStatsAggregator(f.store.Partners, f.store.Jobs, logger.NewTestLogger(t))
}

func (f *fixture) partnerByID(t *testing.T, id uuid.UUID) *models.Partner {
	t.Helper()
	p, err := f.store.Partners.GetByID(f.ctx, id)
	require.NoError(t, err)
	return p
}

func (f *fixture) jobByID(t *testing.T, id uuid.UUID) *models.JobPosting {
	t.Helper()
	j, err := f.store.Jobs.GetByID(f.ctx, id)
	require.NoError(t, err)
	return j
}

// readGate, once armed with n, holds the first n reads until all n have
// arrived, so concurrent requests act on the same snapshot before any of them
// writes. The zero value lets every read straight through.
type readGate struct {
	mu      sync.Mutex
	waiting int
	release chan struct{}
}

func (g *readGate) pass() {
	g.mu.Lock()
	if g.waiting == 0 {
		g.mu.Unlock()
		return
	}
	g.waiting--
	release := g.release
	if g.waiting == 0 {
		close(release)
	}
	g.mu.Unlock()
	<-release
}

// arm makes the next n reads wait for each other.
func (g *readGate) arm(n int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.waiting = n
	g.release = make(chan struct{})
}

type gatedApplications struct {
	storage.ApplicationRepository
	gate *readGate
}

func (r gatedApplications) GetByID(ctx context.Context, id uuid.UUID) (*models.JobApplication, error) {
	r.gate.pass()
	return r.ApplicationRepository.GetByID(ctx, id)
}

type gatedJobs struct {
	storage.JobRepository
	gate *readGate
}

func (r gatedJobs) GetByID(ctx context.Context, id uuid.UUID) (*models.JobPosting, error) {
	r.gate.pass()
	return r.JobRepository.GetByID(ctx, id)
}

type gatedPartners struct {
	storage.PartnerRepository
	gate *readGate
}

func (r gatedPartners) GetByID(ctx context.Context, id uuid.UUID) (*models.Partner, error) {
	r.gate.pass()
	return r.PartnerRepository.GetByID(ctx, id)
}

func (r gatedPartners) GetByUID(ctx context.Context, uid string) (*models.Partner, error) {
	r.gate.pass()
	return r.PartnerRepository.GetByUID(ctx, uid)
}

// runTogether starts every fn at once and returns their errors in order.
func runTogether(fns ...func() error) []error {
	errs := make([]error, len(fns))
	var wg sync.WaitGroup
	for i, fn := range fns {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = fn()
		}()
	}
	wg.Wait()
	return errs
}
