package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"internhub-api/internal/logger"
	"internhub-api/internal/metrics"
	"internhub-api/internal/models"
	"internhub-api/internal/notify"
	"internhub-api/internal/storage"
	"internhub-api/internal/transport/dto"

	"github.com/google/uuid"
)

// systemOwnedPartnerFields may never be written through a profile update.
var systemOwnedPartnerFields = fieldSet(
	"id", "uid", "email", "verificationStatus", "stats", "createdAt", "updatedAt",
	"approvedBy", "approvedAt", "isActive", "subscriptionPlan",
)

type partnerService struct {
	partners storage.PartnerRepository
	roles    storage.RoleRepository
	notifier notify.Publisher
	log      logger.Logger
}

// NewPartnerService creates a new instance of PartnerService.
func NewPartnerService(store *storage.Store, notifier notify.Publisher, log logger.Logger) PartnerService {
	return &partnerService{
		partners: store.Partners,
		roles:    store.Roles,
		notifier: notifier,
		log:      log.WithFields(map[string]interface{}{"component": "partners"}),
	}
}

var _ PartnerService = (*partnerService)(nil)

// Register creates a pending partner for the calling identity.
func (s *partnerService) Register(ctx context.Context, req *dto.RegisterPartnerRequest) (*models.Partner, error) {
	if req.UID == "" {
		return nil, ErrUnauthorized
	}

	_, err := s.partners.GetByUID(ctx, req.UID)
	if err == nil {
		return nil, fmt.Errorf("%w: partner already registered for this account", ErrConflict)
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, mapRepoError(err, "checking existing partner")
	}

	ts := now()
	partner := &models.Partner{
		ID:    uuid.New(),
		UID:   req.UID,
		Email: req.Email,
		PartnerProfile: models.PartnerProfile{
			CompanyName:   strings.TrimSpace(req.CompanyName),
			Website:       req.Website,
			Industry:      req.Industry,
			CompanySize:   req.CompanySize,
			Location:      req.Location,
			Description:   req.Description,
			ContactPerson: req.ContactPerson,
			ContactPhone:  req.ContactPhone,
		},
		VerificationStatus: models.VerificationPending,
		SubscriptionPlan:   models.DefaultSubscriptionPlan,
		IsActive:           true,
		CreatedAt:          ts,
		UpdatedAt:          ts,
	}
	// A concurrent register for the same uid loses on the store's uniqueness.
	if err := s.partners.Create(ctx, partner); err != nil {
		return nil, mapRepoError(err, "creating partner")
	}

	s.syncRoleRecord(ctx, partner)
	metrics.RecordTransition("partner", string(models.VerificationPending))
	publish(ctx, s.notifier, s.log, notify.Event{
		Type:    notify.EventPartnerRegistered,
		Subject: partner.ID.String(),
		Attributes: map[string]string{
			"companyName": partner.CompanyName,
			"email":       partner.Email,
		},
	})

	s.log.Info("Register: partner registered", map[string]interface{}{"partner_id": partner.ID.String(), "uid": partner.UID})
	return partner, nil
}

// Verify applies a reviewer decision to a pending partner.
func (s *partnerService) Verify(ctx context.Context, req *dto.VerifyPartnerRequest) (*models.Partner, error) {
	decision := models.VerificationStatus(strings.ToLower(strings.TrimSpace(req.Decision)))
	if decision != models.VerificationApproved && decision != models.VerificationRejected {
		return nil, fmt.Errorf("%w: decision must be approved or rejected", ErrInvalidArgument)
	}

	partner, err := s.partners.GetByID(ctx, req.PartnerID)
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("fetching partner %s", req.PartnerID))
	}
	if partner.VerificationStatus != models.VerificationPending {
		return nil, fmt.Errorf("%w: partner is %s, only pending partners can be verified", ErrInvalidState, partner.VerificationStatus)
	}

	ts := now()
	reviewer := req.ReviewerUID
	partner, err = s.partners.TransitionVerification(ctx, partner.ID, storage.VerificationChange{
		From:       models.VerificationPending,
		To:         decision,
		IsActive:   partner.IsActive,
		ApprovedBy: &reviewer,
		ApprovedAt: &ts,
		At:         ts,
	})
	if err != nil {
		return nil, mapRepoError(err, "updating partner verification")
	}

	s.syncRoleRecord(ctx, partner)
	metrics.RecordTransition("partner", string(decision))
	publish(ctx, s.notifier, s.log, notify.Event{
		Type:       notify.EventPartnerVerified,
		Subject:    partner.ID.String(),
		Attributes: map[string]string{"decision": string(decision), "reviewer": reviewer, "note": req.Note},
	})

	s.log.Info("Verify: partner reviewed", map[string]interface{}{
		"partner_id": partner.ID.String(), "decision": string(decision), "reviewer": reviewer,
	})
	return partner, nil
}

// Suspend toggles an approved partner to suspended and back.
func (s *partnerService) Suspend(ctx context.Context, req *dto.SuspendPartnerRequest) (*models.Partner, error) {
	if req.Suspend == nil {
		return nil, fmt.Errorf("%w: suspend flag is required", ErrInvalidArgument)
	}
	suspend := *req.Suspend

	partner, err := s.partners.GetByID(ctx, req.PartnerID)
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("fetching partner %s", req.PartnerID))
	}

	var target models.VerificationStatus
	switch {
	case suspend && partner.VerificationStatus == models.VerificationApproved:
		target = models.VerificationSuspended
	case !suspend && partner.VerificationStatus == models.VerificationSuspended:
		target = models.VerificationApproved
	default:
		return nil, fmt.Errorf("%w: cannot set suspend=%t on a %s partner", ErrInvalidState, suspend, partner.VerificationStatus)
	}

	partner, err = s.partners.TransitionVerification(ctx, partner.ID, storage.VerificationChange{
		From:     partner.VerificationStatus,
		To:       target,
		IsActive: !suspend,
		At:       now(),
	})
	if err != nil {
		return nil, mapRepoError(err, "updating partner suspension")
	}

	s.syncRoleRecord(ctx, partner)
	metrics.RecordTransition("partner", string(target))
	eventType := notify.EventPartnerReactivated
	if suspend {
		eventType = notify.EventPartnerSuspended
	}
	publish(ctx, s.notifier, s.log, notify.Event{
		Type:       eventType,
		Subject:    partner.ID.String(),
		Attributes: map[string]string{"reviewer": req.ReviewerUID, "reason": req.Reason},
	})
	return partner, nil
}

func (s *partnerService) GetProfile(ctx context.Context, uid string) (*models.Partner, error) {
	partner, err := s.partners.GetByUID(ctx, uid)
	if err != nil {
		return nil, mapRepoError(err, "fetching partner profile")
	}
	return partner, nil
}

func (s *partnerService) GetStatus(ctx context.Context, uid string) (*dto.VerificationStatusResponse, error) {
	partner, err := s.GetProfile(ctx, uid)
	if err != nil {
		return nil, err
	}
	return &dto.VerificationStatusResponse{
		VerificationStatus: partner.VerificationStatus,
		CanPostJobs:        partner.CanPostJobs(),
		IsActive:           partner.IsActive,
	}, nil
}

func (s *partnerService) GetStats(ctx context.Context, uid string) (*models.PartnerStats, error) {
	partner, err := s.GetProfile(ctx, uid)
	if err != nil {
		return nil, err
	}
	stats := partner.Stats
	return &stats, nil
}

// UpdateProfile applies a partial profile patch. Job postings keep the
// company name they were created with.
func (s *partnerService) UpdateProfile(ctx context.Context, req *dto.UpdatePartnerProfileRequest) (*models.Partner, error) {
	var owned []string
	for _, f := range req.Fields {
		if _, ok := systemOwnedPartnerFields[f]; ok {
			owned = append(owned, f)
		}
	}
	if len(owned) > 0 {
		return nil, fmt.Errorf("%w: fields cannot be updated: %s", ErrInvalidArgument, strings.Join(owned, ", "))
	}

	partner, err := s.partners.GetByUID(ctx, req.UID)
	if err != nil {
		return nil, mapRepoError(err, "fetching partner for update")
	}

	profile := partner.PartnerProfile
	setString(&profile.CompanyName, req.CompanyName)
	setString(&profile.Website, req.Website)
	setString(&profile.Industry, req.Industry)
	setString(&profile.CompanySize, req.CompanySize)
	setString(&profile.Location, req.Location)
	setString(&profile.Description, req.Description)
	setString(&profile.ContactPerson, req.ContactPerson)
	setString(&profile.ContactPhone, req.ContactPhone)

	// Verification state is not part of this write, so a concurrent
	// suspension cannot be undone by a profile edit.
	updated, err := s.partners.UpdateProfile(ctx, partner.ID, profile, now())
	if err != nil {
		return nil, mapRepoError(err, "updating partner profile")
	}
	return updated, nil
}

func (s *partnerService) ListPartners(ctx context.Context, req *dto.ListPartnersRequest) ([]models.Partner, int, error) {
	var filter storage.PartnerFilter
	if req.Status != "" {
		status := models.VerificationStatus(strings.ToLower(req.Status))
		if !status.IsValid() {
			return nil, 0, fmt.Errorf("%w: unknown verification status %q", ErrInvalidArgument, req.Status)
		}
		filter.Status = &status
	}

	partners, err := s.partners.List(ctx, filter)
	if err != nil {
		return nil, 0, mapRepoError(err, "listing partners")
	}
	page := req.Pagination.Normalize(dto.MaxPageSize)
	return paginate(partners, page), len(partners), nil
}

func (s *partnerService) RequireApproved(ctx context.Context, uid string) (*models.Partner, error) {
	partner, err := s.partners.GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w: no partner profile for this account", ErrForbidden)
		}
		return nil, mapRepoError(err, "fetching partner")
	}
	if !partner.CanPostJobs() {
		return nil, fmt.Errorf("%w: partner is %s, approval required", ErrForbidden, partner.VerificationStatus)
	}
	return partner, nil
}

// syncRoleRecord mirrors the partner status onto the identity's role record.
// The partner row is authoritative, so a failure here is only logged.
func (s *partnerService) syncRoleRecord(ctx context.Context, p *models.Partner) {
	id := p.ID
	status := p.VerificationStatus
	rec := &models.RoleRecord{
		UID:                p.UID,
		Email:              p.Email,
		Role:               models.RolePartner,
		PartnerID:          &id,
		VerificationStatus: &status,
		UpdatedAt:          now(),
	}
	if err := s.roles.Upsert(ctx, rec); err != nil {
		s.log.Warn("syncRoleRecord: role record update failed", map[string]interface{}{
			"uid": p.UID, "error": err.Error(),
		})
	}
}
