// Package memory provides mutex-guarded in-process repositories. They back the
// "memory" storage driver for local runs and serve as the fake in tests.
package memory

import (
	"sort"
	"time"

	"internhub-api/internal/models"
	"internhub-api/internal/storage"
)

// NewStore wires every in-memory repository into a storage.Store.
func NewStore() (*storage.Store, *CandidateRepo) {
	candidates := NewCandidateRepo()
	return &storage.Store{
		Partners:     NewPartnerRepo(),
		Jobs:         NewJobRepo(),
		Applications: NewApplicationRepo(),
		Candidates:   candidates,
		Shortlists:   NewShortlistRepo(),
		ResumeAccess: NewResumeAccessRepo(),
		Roles:        NewRoleRepo(),
	}, candidates
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneInt(i *int) *int {
	if i == nil {
		return nil
	}
	v := *i
	return &v
}

func newestFirst[T any](items []T, createdAt func(*T) time.Time) {
	sort.SliceStable(items, func(i, j int) bool {
		return createdAt(&items[i]).After(createdAt(&items[j]))
	})
}

func clonePartner(p *models.Partner) *models.Partner {
	c := *p
	c.ApprovedBy = cloneString(p.ApprovedBy)
	c.ApprovedAt = cloneTime(p.ApprovedAt)
	return &c
}

func cloneJob(j *models.JobPosting) *models.JobPosting {
	c := *j
	c.Skills = cloneStrings(j.Skills)
	c.Responsibilities = cloneStrings(j.Responsibilities)
	c.Benefits = cloneStrings(j.Benefits)
	c.SalaryMin = cloneInt(j.SalaryMin)
	c.SalaryMax = cloneInt(j.SalaryMax)
	c.Deadline = cloneTime(j.Deadline)
	c.PublishedAt = cloneTime(j.PublishedAt)
	c.ClosedAt = cloneTime(j.ClosedAt)
	return &c
}

func cloneApplication(a *models.JobApplication) *models.JobApplication {
	c := *a
	c.StatusHistory = append([]models.StatusEntry(nil), a.StatusHistory...)
	c.Profile.Skills = cloneStrings(a.Profile.Skills)
	c.Profile.Education = cloneStrings(a.Profile.Education)
	c.Profile.Experience = cloneStrings(a.Profile.Experience)
	c.Profile.Projects = cloneStrings(a.Profile.Projects)
	c.Profile.Certificates = cloneStrings(a.Profile.Certificates)
	if a.Interview != nil {
		iv := *a.Interview
		c.Interview = &iv
	}
	c.PartnerRating = cloneInt(a.PartnerRating)
	c.Notes = cloneString(a.Notes)
	return &c
}

func cloneCandidate(p *models.CandidateProfile) *models.CandidateProfile {
	c := *p
	c.Skills = cloneStrings(p.Skills)
	c.CompletedCourses = cloneStrings(p.CompletedCourses)
	c.EnrolledCourses = cloneStrings(p.EnrolledCourses)
	c.Education = cloneStrings(p.Education)
	c.Experience = cloneStrings(p.Experience)
	c.Projects = cloneStrings(p.Projects)
	c.Certificates = cloneStrings(p.Certificates)
	return &c
}
