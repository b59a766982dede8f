package services

import (
	"context"

	"internhub-api/internal/logger"
	"internhub-api/internal/metrics"
	"internhub-api/internal/storage"

	"github.com/google/uuid"
)

type statsAggregator struct {
	partners storage.PartnerRepository
	jobs     storage.JobRepository
	log      logger.Logger
}

// NewStatsAggregator builds the counter maintainer over the partner and job repositories.
func NewStatsAggregator(partners storage.PartnerRepository, jobs storage.JobRepository, log logger.Logger) StatsAggregator {
	return &statsAggregator{
		partners: partners,
		jobs:     jobs,
		log:      log.WithFields(map[string]interface{}{"component": "stats"}),
	}
}

var _ StatsAggregator = (*statsAggregator)(nil)

func (s *statsAggregator) partnerInc(ctx context.Context, id uuid.UUID, stat storage.PartnerStat, delta int) {
	if err := s.partners.IncrementStat(ctx, id, stat, delta); err != nil {
		metrics.StatsIncrementFailures.WithLabelValues("partner." + string(stat)).Inc()
		s.log.Warn("partner counter increment failed", map[string]interface{}{
			"partner_id": id.String(), "stat": string(stat), "delta": delta, "error": err.Error(),
		})
	}
}

func (s *statsAggregator) jobInc(ctx context.Context, id uuid.UUID, stat storage.JobStat, delta int) {
	if err := s.jobs.IncrementStat(ctx, id, stat, delta); err != nil {
		metrics.StatsIncrementFailures.WithLabelValues("job." + string(stat)).Inc()
		s.log.Warn("job counter increment failed", map[string]interface{}{
			"job_id": id.String(), "stat": string(stat), "delta": delta, "error": err.Error(),
		})
	}
}

func (s *statsAggregator) JobCreated(ctx context.Context, partnerID uuid.UUID) {
	s.partnerInc(ctx, partnerID, storage.PartnerStatTotalJobsPosted, 1)
}

func (s *statsAggregator) JobPublished(ctx context.Context, partnerID uuid.UUID) {
	s.partnerInc(ctx, partnerID, storage.PartnerStatActiveJobs, 1)
}

func (s *statsAggregator) JobClosed(ctx context.Context, partnerID uuid.UUID) {
	s.partnerInc(ctx, partnerID, storage.PartnerStatActiveJobs, -1)
}

func (s *statsAggregator) JobViewed(ctx context.Context, jobID uuid.UUID) {
	s.jobInc(ctx, jobID, storage.JobStatViews, 1)
}

func (s *statsAggregator) ApplicationReceived(ctx context.Context, jobID, partnerID uuid.UUID) {
	s.jobInc(ctx, jobID, storage.JobStatApplications, 1)
	s.partnerInc(ctx, partnerID, storage.PartnerStatTotalApplications, 1)
}

func (s *statsAggregator) CandidateShortlisted(ctx context.Context, jobID uuid.UUID) {
	s.jobInc(ctx, jobID, storage.JobStatShortlisted, 1)
}

func (s *statsAggregator) CandidateSelected(ctx context.Context, jobID, partnerID uuid.UUID) {
	s.jobInc(ctx, jobID, storage.JobStatSelected, 1)
	s.partnerInc(ctx, partnerID, storage.PartnerStatTotalHires, 1)
}
