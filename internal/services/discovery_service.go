package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"internhub-api/internal/logger"
	"internhub-api/internal/metrics"
	"internhub-api/internal/models"
	"internhub-api/internal/storage"
	"internhub-api/internal/transport/dto"
)

type discoveryService struct {
	candidates  storage.CandidateRepository
	shortlists  storage.ShortlistRepository
	audit       storage.ResumeAccessRepository
	partners    PartnerService
	maxPageSize int
	log         logger.Logger
}

// NewDiscoveryService creates the candidate discovery service. maxPageSize
// caps the discovery page size; zero uses dto.MaxPageSize.
func NewDiscoveryService(store *storage.Store, partners PartnerService, maxPageSize int, log logger.Logger) DiscoveryService {
	return &discoveryService{
		candidates:  store.Candidates,
		shortlists:  store.Shortlists,
		audit:       store.ResumeAccess,
		partners:    partners,
		maxPageSize: maxPageSize,
		log:         log.WithFields(map[string]interface{}{"component": "discovery"}),
	}
}

var _ DiscoveryService = (*discoveryService)(nil)

// Discover scans the whole visible pool, filters and ranks it in memory.
func (s *discoveryService) Discover(ctx context.Context, req *dto.DiscoverCandidatesRequest) ([]models.CandidateSummary, int, error) {
	if _, err := s.partners.RequireApproved(ctx, req.PartnerUID); err != nil {
		return nil, 0, err
	}
	query, err := ParseCandidateQuery(req)
	if err != nil {
		return nil, 0, err
	}

	start := time.Now()
	pool, err := s.candidates.ListVisible(ctx)
	if err != nil {
		return nil, 0, mapRepoError(err, "loading candidate pool")
	}
	matched := MatchCandidates(pool, query)
	metrics.DiscoveryPoolSize.Set(float64(len(pool)))
	metrics.DiscoveryDuration.Observe(time.Since(start).Seconds())

	page := paginate(matched, req.Pagination.Normalize(s.maxPageSize))
	out := make([]models.CandidateSummary, 0, len(page))
	for i := range page {
		out = append(out, page[i].Summary())
	}

	s.log.Debug("Discover: candidates matched", map[string]interface{}{
		"partner_uid": req.PartnerUID, "pool": len(pool), "matched": len(matched),
	})
	return out, len(matched), nil
}

func (s *discoveryService) GetCandidate(ctx context.Context, partnerUID, studentUID string) (*models.CandidateSummary, error) {
	if _, err := s.partners.RequireApproved(ctx, partnerUID); err != nil {
		return nil, err
	}
	profile, err := s.visibleCandidate(ctx, studentUID)
	if err != nil {
		return nil, err
	}
	summary := profile.Summary()
	return &summary, nil
}

// ResumeAccess records the attempt in the audit log before disclosing
// anything. The URL is returned only for visible candidates with a resume.
func (s *discoveryService) ResumeAccess(ctx context.Context, partnerUID, studentUID string) (string, error) {
	if _, err := s.partners.RequireApproved(ctx, partnerUID); err != nil {
		return "", err
	}

	profile, err := s.candidates.GetByUID(ctx, studentUID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return "", mapRepoError(err, "fetching candidate")
	}
	granted := err == nil && profile.VisibleToPartners && profile.ResumeURL != ""

	rec := &models.ResumeAccessLog{
		PartnerUID: partnerUID,
		StudentUID: studentUID,
		Granted:    granted,
		AccessedAt: now(),
	}
	if err := s.audit.Append(ctx, rec); err != nil {
		s.log.Error("ResumeAccess: audit write failed", map[string]interface{}{
			"partner_uid": partnerUID, "student_uid": studentUID, "error": err,
		})
		return "", mapRepoError(err, "recording resume access")
	}
	metrics.ResumeAccesses.WithLabelValues(strconv.FormatBool(granted)).Inc()

	if !granted {
		return "", fmt.Errorf("%w: resume not available", ErrNotFound)
	}
	return profile.ResumeURL, nil
}

// Shortlist is idempotent: repeating it only refreshes the notes.
func (s *discoveryService) Shortlist(ctx context.Context, req *dto.ShortlistRequest) (*models.ShortlistEntry, error) {
	if _, err := s.partners.RequireApproved(ctx, req.PartnerUID); err != nil {
		return nil, err
	}
	if _, err := s.visibleCandidate(ctx, req.StudentUID); err != nil {
		return nil, err
	}

	ts := now()
	entry, err := s.shortlists.Upsert(ctx, &models.ShortlistEntry{
		PartnerUID: req.PartnerUID,
		StudentUID: req.StudentUID,
		Notes:      req.Notes,
		CreatedAt:  ts,
		UpdatedAt:  ts,
	})
	if err != nil {
		return nil, mapRepoError(err, "saving shortlist entry")
	}
	return entry, nil
}

func (s *discoveryService) Unshortlist(ctx context.Context, partnerUID, studentUID string) error {
	if _, err := s.partners.RequireApproved(ctx, partnerUID); err != nil {
		return err
	}
	if err := s.shortlists.Delete(ctx, partnerUID, studentUID); err != nil {
		return mapRepoError(err, "removing shortlist entry")
	}
	return nil
}

// ListShortlist joins each entry with the candidate's current summary.
// Candidates who are no longer visible come back with Available false.
func (s *discoveryService) ListShortlist(ctx context.Context, partnerUID string) ([]models.ShortlistedCandidate, error) {
	if _, err := s.partners.RequireApproved(ctx, partnerUID); err != nil {
		return nil, err
	}
	entries, err := s.shortlists.ListByPartner(ctx, partnerUID)
	if err != nil {
		return nil, mapRepoError(err, "listing shortlist")
	}

	out := make([]models.ShortlistedCandidate, 0, len(entries))
	for _, e := range entries {
		item := models.ShortlistedCandidate{ShortlistEntry: e}
		profile, err := s.candidates.GetByUID(ctx, e.StudentUID)
		switch {
		case err == nil && profile.VisibleToPartners:
			summary := profile.Summary()
			item.Available = true
			item.Candidate = &summary
		case err != nil && !errors.Is(err, storage.ErrNotFound):
			return nil, mapRepoError(err, "fetching shortlisted candidate")
		}
		out = append(out, item)
	}
	return out, nil
}

func (s *discoveryService) visibleCandidate(ctx context.Context, uid string) (*models.CandidateProfile, error) {
	profile, err := s.candidates.GetByUID(ctx, uid)
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("fetching candidate %s", uid))
	}
	if !profile.VisibleToPartners {
		return nil, fmt.Errorf("%w: candidate %s", ErrNotFound, uid)
	}
	return profile, nil
}
