package services_test

import (
	"testing"
	"time"

	"internhub-api/internal/models"
	"internhub-api/internal/services"
	"internhub-api/internal/storage"
	"internhub-api/internal/transport/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobService_CreateJob_RequiresApprovedPartner(t *testing.T) {
	f := newFixture(t)
	f.registerPartner(t, "pending", "Acme", false)

	for _, uid := range []string{"pending", "unknown"} {
		_, err := f.jobs.CreateJob(f.ctx, &dto.CreateJobRequest{PartnerUID: uid, Title: "Intern", Description: "x"})
		assert.ErrorIs(t, err, services.ErrForbidden, uid)
	}
}

func TestJobService_CreateJob_Active(t *testing.T) {
	f := newFixture(t)
	p := f.registerPartner(t, "p-1", "Acme", true)

	job := f.createJob(t, "p-1", "active")
	assert.Equal(t, models.JobStatusActive, job.Status)
	assert.Equal(t, "Acme", job.CompanyName)
	assert.Equal(t, p.ID, job.PartnerID)
	assert.Equal(t, models.VisibilityPublic, job.Visibility)
	assert.Equal(t, 1, job.Openings)
	assert.NotNil(t, job.PublishedAt)

	stats := f.partnerByID(t, p.ID).Stats
	assert.Equal(t, 1, stats.TotalJobsPosted)
	assert.Equal(t, 1, stats.ActiveJobs)
}

func TestJobService_CreateJob_Validation(t *testing.T) {
	f := newFixture(t)
	f.registerPartner(t, "p-1", "Acme", true)

	_, err := f.jobs.CreateJob(f.ctx, &dto.CreateJobRequest{PartnerUID: "p-1", Title: "Intern", Status: "closed"})
	assert.ErrorIs(t, err, services.ErrInvalidArgument)

	lo, hi := 5000, 1000
	_, err = f.jobs.CreateJob(f.ctx, &dto.CreateJobRequest{PartnerUID: "p-1", Title: "Intern", SalaryMin: &lo, SalaryMax: &hi})
	assert.ErrorIs(t, err, services.ErrInvalidArgument)
}

func TestJobService_SetJobStatus(t *testing.T) {
	f := newFixture(t)
	p := f.registerPartner(t, "p-1", "Acme", true)
	job := f.createJob(t, "p-1", "")
	assert.Equal(t, models.JobStatusDraft, job.Status)

	_, err := f.jobs.SetJobStatus(f.ctx, &dto.UpdateJobStatusRequest{JobID: job.ID, PartnerUID: "p-1", Status: "archived"})
	assert.ErrorIs(t, err, services.ErrInvalidArgument)

	_, err = f.jobs.SetJobStatus(f.ctx, &dto.UpdateJobStatusRequest{JobID: job.ID, PartnerUID: "p-1", Status: "closed"})
	assert.ErrorIs(t, err, services.ErrInvalidState)

	active, err := f.jobs.SetJobStatus(f.ctx, &dto.UpdateJobStatusRequest{JobID: job.ID, PartnerUID: "p-1", Status: "active"})
	require.NoError(t, err)
	assert.NotNil(t, active.PublishedAt)
	assert.Equal(t, 1, f.partnerByID(t, p.ID).Stats.ActiveJobs)

	closed, err := f.jobs.SetJobStatus(f.ctx, &dto.UpdateJobStatusRequest{JobID: job.ID, PartnerUID: "p-1", Status: "closed"})
	require.NoError(t, err)
	assert.NotNil(t, closed.ClosedAt)
	assert.Equal(t, 0, f.partnerByID(t, p.ID).Stats.ActiveJobs)

	_, err = f.jobs.SetJobStatus(f.ctx, &dto.UpdateJobStatusRequest{JobID: job.ID, PartnerUID: "p-1", Status: "active"})
	assert.ErrorIs(t, err, services.ErrInvalidState)
}

func TestJobService_PublishRechecksApproval(t *testing.T) {
	f := newFixture(t)
	p := f.registerPartner(t, "p-1", "Acme", true)
	job := f.createJob(t, "p-1", "draft")

	_, err := f.partners.Suspend(f.ctx, &dto.SuspendPartnerRequest{PartnerID: p.ID, Suspend: boolPtr(true)})
	require.NoError(t, err)

	_, err = f.jobs.SetJobStatus(f.ctx, &dto.UpdateJobStatusRequest{JobID: job.ID, PartnerUID: "p-1", Status: "active"})
	assert.ErrorIs(t, err, services.ErrForbidden)
	assert.Equal(t, models.JobStatusDraft, f.jobByID(t, job.ID).Status)
}

func TestJobService_FilledKeepsActiveCounter(t *testing.T) {
	f := newFixture(t)
	p := f.registerPartner(t, "p-1", "Acme", true)
	job := f.createJob(t, "p-1", "active")

	_, err := f.jobs.SetJobStatus(f.ctx, &dto.UpdateJobStatusRequest{JobID: job.ID, PartnerUID: "p-1", Status: "filled"})
	require.NoError(t, err)
	assert.Equal(t, 1, f.partnerByID(t, p.ID).Stats.ActiveJobs)
}

func TestJobService_OwnershipIsolation(t *testing.T) {
	f := newFixture(t)
	f.registerPartner(t, "p-1", "Acme", true)
	f.registerPartner(t, "p-2", "Globex", true)
	job := f.createJob(t, "p-1", "draft")

	_, err := f.jobs.UpdateJob(f.ctx, &dto.UpdateJobRequest{JobID: job.ID, PartnerUID: "p-2", Fields: []string{"title"}, Title: strPtr("Hijacked")})
	assert.ErrorIs(t, err, services.ErrForbidden)

	_, err = f.jobs.SetJobStatus(f.ctx, &dto.UpdateJobStatusRequest{JobID: job.ID, PartnerUID: "p-2", Status: "active"})
	assert.ErrorIs(t, err, services.ErrForbidden)

	err = f.jobs.DeleteJob(f.ctx, &dto.DeleteJobRequest{JobID: job.ID, PartnerUID: "p-2"})
	assert.ErrorIs(t, err, services.ErrForbidden)

	assert.Equal(t, "Backend Intern", f.jobByID(t, job.ID).Title)
}

func TestJobService_UpdateJob(t *testing.T) {
	f := newFixture(t)
	f.registerPartner(t, "p-1", "Acme", true)
	job := f.createJob(t, "p-1", "draft")

	_, err := f.jobs.UpdateJob(f.ctx, &dto.UpdateJobRequest{JobID: job.ID, PartnerUID: "p-1", Fields: []string{"title", "status"}})
	require.ErrorIs(t, err, services.ErrInvalidArgument)
	assert.Contains(t, err.Error(), "status")

	deadline := time.Now().Add(48 * time.Hour).UTC()
	updated, err := f.jobs.UpdateJob(f.ctx, &dto.UpdateJobRequest{
		JobID:      job.ID,
		PartnerUID: "p-1",
		Fields:     []string{"title", "skills", "deadline", "visibility"},
		Title:      strPtr("Platform Intern"),
		Skills:     []string{"Kubernetes"},
		Deadline:   &deadline,
		Visibility: strPtr("private"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Platform Intern", updated.Title)
	assert.Equal(t, []string{"Kubernetes"}, updated.Skills)
	assert.Equal(t, models.VisibilityPrivate, updated.Visibility)
	assert.Equal(t, "Build APIs", updated.Description)
	assert.Equal(t, models.JobStatusDraft, updated.Status)
}

func TestJobService_DeleteJob_OnlyDrafts(t *testing.T) {
	f := newFixture(t)
	f.registerPartner(t, "p-1", "Acme", true)
	active := f.createJob(t, "p-1", "active")
	draft := f.createJob(t, "p-1", "draft")

	err := f.jobs.DeleteJob(f.ctx, &dto.DeleteJobRequest{JobID: active.ID, PartnerUID: "p-1"})
	assert.ErrorIs(t, err, services.ErrInvalidState)
	f.jobByID(t, active.ID)

	require.NoError(t, f.jobs.DeleteJob(f.ctx, &dto.DeleteJobRequest{JobID: draft.ID, PartnerUID: "p-1"}))
	_, err = f.store.Jobs.GetByID(f.ctx, draft.ID)
	assert.Error(t, err)
}

func TestJobService_ViewJob(t *testing.T) {
	f := newFixture(t)
	f.registerPartner(t, "p-1", "Acme", true)
	draft := f.createJob(t, "p-1", "draft")
	active := f.createJob(t, "p-1", "active")

	_, err := f.jobs.ViewJob(f.ctx, &dto.ViewJobRequest{JobID: draft.ID})
	assert.ErrorIs(t, err, services.ErrNotFound)

	stranger := studentIdentity("s-1")
	_, err = f.jobs.ViewJob(f.ctx, &dto.ViewJobRequest{JobID: draft.ID, Viewer: &stranger})
	assert.ErrorIs(t, err, services.ErrNotFound)

	owner := partnerIdentity("p-1")
	got, err := f.jobs.ViewJob(f.ctx, &dto.ViewJobRequest{JobID: draft.ID, Viewer: &owner})
	require.NoError(t, err)
	assert.Equal(t, draft.ID, got.ID)

	for i := 0; i < 3; i++ {
		_, err = f.jobs.ViewJob(f.ctx, &dto.ViewJobRequest{JobID: active.ID})
		require.NoError(t, err)
	}
	assert.Equal(t, 3, f.jobByID(t, active.ID).Stats.Views)

	_, err = f.jobs.ViewJob(f.ctx, &dto.ViewJobRequest{JobID: uuid.New()})
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestJobService_ListPublicJobs(t *testing.T) {
	f := newFixture(t)
	f.registerPartner(t, "p-1", "Acme", true)
	f.createJob(t, "p-1", "draft")
	first := f.createJob(t, "p-1", "active")
	second, err := f.jobs.CreateJob(f.ctx, &dto.CreateJobRequest{
		PartnerUID: "p-1", Title: "Data Intern", Description: "Dashboards",
		Skills: []string{"python"}, JobType: "internship", WorkMode: "onsite", Status: "active",
	})
	require.NoError(t, err)
	_, err = f.jobs.CreateJob(f.ctx, &dto.CreateJobRequest{
		PartnerUID: "p-1", Title: "Hidden", Description: "x", Visibility: "private", Status: "active",
	})
	require.NoError(t, err)

	all, total, err := f.jobs.ListPublicJobs(f.ctx, &dto.ListPublicJobsRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID, "most recently published first")
	assert.Equal(t, first.ID, all[1].ID)

	bySkill, _, err := f.jobs.ListPublicJobs(f.ctx, &dto.ListPublicJobsRequest{Skills: "PYTHON, rust"})
	require.NoError(t, err)
	require.Len(t, bySkill, 1)
	assert.Equal(t, second.ID, bySkill[0].ID)

	byMode, _, err := f.jobs.ListPublicJobs(f.ctx, &dto.ListPublicJobsRequest{WorkMode: "remote"})
	require.NoError(t, err)
	require.Len(t, byMode, 1)
	assert.Equal(t, first.ID, byMode[0].ID)

	byText, _, err := f.jobs.ListPublicJobs(f.ctx, &dto.ListPublicJobsRequest{Search: "acme"})
	require.NoError(t, err)
	assert.Len(t, byText, 2)
}

func TestJobService_ListMyJobs(t *testing.T) {
	f := newFixture(t)
	f.registerPartner(t, "p-1", "Acme", true)
	f.registerPartner(t, "p-2", "Globex", true)
	f.createJob(t, "p-1", "draft")
	f.createJob(t, "p-1", "active")
	f.createJob(t, "p-2", "active")

	mine, total, err := f.jobs.ListMyJobs(f.ctx, &dto.ListMyJobsRequest{PartnerUID: "p-1"})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	for _, j := range mine {
		assert.Equal(t, "p-1", j.PartnerUID)
	}

	drafts, total, err := f.jobs.ListMyJobs(f.ctx, &dto.ListMyJobsRequest{PartnerUID: "p-1", Status: "draft"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, models.JobStatusDraft, drafts[0].Status)

	_, _, err = f.jobs.ListMyJobs(f.ctx, &dto.ListMyJobsRequest{PartnerUID: "nobody"})
	assert.ErrorIs(t, err, services.ErrForbidden)
}

func TestJobService_CompanyNameSnapshot(t *testing.T) {
	f := newFixture(t)
	f.registerPartner(t, "p-1", "Acme", true)
	job := f.createJob(t, "p-1", "active")

	_, err := f.partners.UpdateProfile(f.ctx, &dto.UpdatePartnerProfileRequest{
		UID: "p-1", Fields: []string{"companyName"}, CompanyName: strPtr("Acme Renamed"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Acme", f.jobByID(t, job.ID).CompanyName)
}

func TestJobService_ListPublicJobs_FarPage(t *testing.T) {
	f := newFixture(t)
	f.registerPartner(t, "p-1", "Acme", true)
	f.createJob(t, "p-1", "active")

	jobs, total, err := f.jobs.ListPublicJobs(f.ctx, &dto.ListPublicJobsRequest{
		Pagination: dto.Pagination{Page: 92233720368547760, Limit: 100},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Empty(t, jobs)
}

func gatedJobFixture(t *testing.T) (*fixture, *readGate) {
	t.Helper()
	gate := &readGate{}
	f := newFixtureWith(t, func(s *storage.Store) {
		s.Jobs = gatedJobs{JobRepository: s.Jobs, gate: gate}
	})
	return f, gate
}

func TestJobService_ConcurrentPublish(t *testing.T) {
	f, gate := gatedJobFixture(t)
	p := f.registerPartner(t, "p-1", "Acme", true)
	job := f.createJob(t, "p-1", "draft")

	publish := func() error {
		_, err := f.jobs.SetJobStatus(f.ctx, &dto.UpdateJobStatusRequest{JobID: job.ID, PartnerUID: "p-1", Status: "active"})
		return err
	}
	gate.arm(2)
	errs := runTogether(publish, publish)

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, services.ErrInvalidState)
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, f.partnerByID(t, p.ID).Stats.ActiveJobs)
}

func TestJobService_EditDuringClose(t *testing.T) {
	f, gate := gatedJobFixture(t)
	p := f.registerPartner(t, "p-1", "Acme", true)
	job := f.createJob(t, "p-1", "active")

	gate.arm(2)
	errs := runTogether(
		func() error {
			_, err := f.jobs.UpdateJob(f.ctx, &dto.UpdateJobRequest{
				JobID: job.ID, PartnerUID: "p-1", Fields: []string{"title"}, Title: strPtr("Platform Intern"),
			})
			return err
		},
		func() error {
			_, err := f.jobs.SetJobStatus(f.ctx, &dto.UpdateJobStatusRequest{JobID: job.ID, PartnerUID: "p-1", Status: "closed"})
			return err
		},
	)
	require.NoError(t, errs[0])
	require.NoError(t, errs[1])

	stored := f.jobByID(t, job.ID)
	assert.Equal(t, models.JobStatusClosed, stored.Status)
	assert.NotNil(t, stored.ClosedAt)
	assert.Equal(t, "Platform Intern", stored.Title)
	assert.Zero(t, f.partnerByID(t, p.ID).Stats.ActiveJobs)

	_, err := f.apps.Submit(f.ctx, &dto.SubmitApplicationRequest{Student: studentIdentity("s-1"), JobID: job.ID})
	assert.ErrorIs(t, err, services.ErrInvalidState)
}

func TestJobService_DeleteDuringPublish(t *testing.T) {
	f, gate := gatedJobFixture(t)
	p := f.registerPartner(t, "p-1", "Acme", true)
	job := f.createJob(t, "p-1", "draft")

	gate.arm(2)
	errs := runTogether(
		func() error { return f.jobs.DeleteJob(f.ctx, &dto.DeleteJobRequest{JobID: job.ID, PartnerUID: "p-1"}) },
		func() error {
			_, err := f.jobs.SetJobStatus(f.ctx, &dto.UpdateJobStatusRequest{JobID: job.ID, PartnerUID: "p-1", Status: "active"})
			return err
		},
	)

	// Either the draft is gone and the publish lost, or the publish won and
	// the job survives as active.
	if errs[0] == nil {
		assert.Error(t, errs[1])
		_, err := f.store.Jobs.GetByID(f.ctx, job.ID)
		assert.ErrorIs(t, err, storage.ErrNotFound)
		assert.Zero(t, f.partnerByID(t, p.ID).Stats.ActiveJobs)
	} else {
		assert.ErrorIs(t, errs[0], services.ErrInvalidState)
		require.NoError(t, errs[1])
		assert.Equal(t, models.JobStatusActive, f.jobByID(t, job.ID).Status)
		assert.Equal(t, 1, f.partnerByID(t, p.ID).Stats.ActiveJobs)
	}
}
