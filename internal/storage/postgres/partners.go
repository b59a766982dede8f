// internal/storage/postgres/partners.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"internhub-api/internal/models"
	"internhub-api/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PartnerRepo implements the storage.PartnerRepository interface using PostgreSQL.
type PartnerRepo struct {
	db Querier
}

func NewPartnerRepo(db *pgxpool.Pool) *PartnerRepo {
	return &PartnerRepo{db: db}
}

var _ storage.PartnerRepository = (*PartnerRepo)(nil)

const partnerColumns = `id, uid, email, company_name, website, industry, company_size, location, description,
	contact_person, contact_phone, verification_status, subscription_plan, is_active,
	total_jobs_posted, active_jobs, total_applications, total_hires, approved_by, approved_at, created_at, updated_at`

var partnerStatColumns = map[storage.PartnerStat]string{
	storage.PartnerStatTotalJobsPosted:   "total_jobs_posted",
	storage.PartnerStatActiveJobs:        "active_jobs",
	storage.PartnerStatTotalApplications: "total_applications",
	storage.PartnerStatTotalHires:        "total_hires",
}

func scanPartner(row pgx.Row) (*models.Partner, error) {
	var p models.Partner
	err := row.Scan(
		&p.ID, &p.UID, &p.Email, &p.CompanyName, &p.Website, &p.Industry, &p.CompanySize, &p.Location,
		&p.Description, &p.ContactPerson, &p.ContactPhone, &p.VerificationStatus, &p.SubscriptionPlan,
		&p.IsActive, &p.Stats.TotalJobsPosted, &p.Stats.ActiveJobs, &p.Stats.TotalApplications,
		&p.Stats.TotalHires, &p.ApprovedBy, &p.ApprovedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PartnerRepo) Create(ctx context.Context, p *models.Partner) error {
	query := `
		INSERT INTO partners (id, uid, email, company_name, website, industry, company_size, location, description,
			contact_person, contact_phone, verification_status, subscription_plan, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.db.Exec(ctx, query,
		p.ID, p.UID, p.Email, p.CompanyName, p.Website, p.Industry, p.CompanySize, p.Location, p.Description,
		p.ContactPerson, p.ContactPhone, p.VerificationStatus, p.SubscriptionPlan, p.IsActive, p.CreatedAt, p.UpdatedAt,
	)
	return translateError(err, "creating partner")
}

func (r *PartnerRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Partner, error) {
	p, err := scanPartner(r.db.QueryRow(ctx, `SELECT `+partnerColumns+` FROM partners WHERE id = $1`, id))
	if err != nil {
		return nil, translateError(err, "fetching partner by id")
	}
	return p, nil
}

func (r *PartnerRepo) GetByUID(ctx context.Context, uid string) (*models.Partner, error) {
	p, err := scanPartner(r.db.QueryRow(ctx, `SELECT `+partnerColumns+` FROM partners WHERE uid = $1`, uid))
	if err != nil {
		return nil, translateError(err, "fetching partner by uid")
	}
	return p, nil
}

func (r *PartnerRepo) List(ctx context.Context, filter storage.PartnerFilter) ([]models.Partner, error) {
	var where whereBuilder
	if filter.Status != nil {
		where.add("verification_status", *filter.Status)
	}
	rows, err := r.db.Query(ctx, where.build(`SELECT `+partnerColumns+` FROM partners`, "created_at DESC"), where.args...)
	if err != nil {
		return nil, translateError(err, "listing partners")
	}
	defer rows.Close()

	partners := make([]models.Partner, 0)
	for rows.Next() {
		p, err := scanPartner(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning partner row: %w", err)
		}
		partners = append(partners, *p)
	}
	return partners, rows.Err()
}

// UpdateProfile rewrites profile columns only, so a concurrent verification
// change is never overwritten.
func (r *PartnerRepo) UpdateProfile(ctx context.Context, id uuid.UUID, pp models.PartnerProfile, at time.Time) (*models.Partner, error) {
	query := `
		UPDATE partners SET
			company_name = $2, website = $3, industry = $4, company_size = $5, location = $6, description = $7,
			contact_person = $8, contact_phone = $9, updated_at = $10
		WHERE id = $1
		RETURNING ` + partnerColumns
	p, err := scanPartner(r.db.QueryRow(ctx, query,
		id, pp.CompanyName, pp.Website, pp.Industry, pp.CompanySize, pp.Location, pp.Description,
		pp.ContactPerson, pp.ContactPhone, at,
	))
	if err != nil {
		return nil, translateError(err, "updating partner profile")
	}
	return p, nil
}

func (r *PartnerRepo) TransitionVerification(ctx context.Context, id uuid.UUID, c storage.VerificationChange) (*models.Partner, error) {
	query := `
		UPDATE partners SET
			verification_status = $3, is_active = $4,
			approved_by = COALESCE($5, approved_by), approved_at = COALESCE($6, approved_at), updated_at = $7
		WHERE id = $1 AND verification_status = $2
		RETURNING ` + partnerColumns
	p, err := scanPartner(r.db.QueryRow(ctx, query, id, c.From, c.To, c.IsActive, c.ApprovedBy, c.ApprovedAt, c.At))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, staleOrMissing(ctx, r.db, "partners", id, "changing partner verification")
		}
		return nil, translateError(err, "changing partner verification")
	}
	return p, nil
}

func (r *PartnerRepo) IncrementStat(ctx context.Context, id uuid.UUID, stat storage.PartnerStat, delta int) error {
	column, ok := partnerStatColumns[stat]
	if !ok {
		return fmt.Errorf("%w: %s", storage.ErrUnknownStat, stat)
	}
	// Column name comes from the fixed map above, never from input.
	query := fmt.Sprintf(`UPDATE partners SET %[1]s = %[1]s + $2 WHERE id = $1`, column)
	tag, err := r.db.Exec(ctx, query, id, delta)
	if err != nil {
		return translateError(err, "incrementing partner stat")
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// RoleRepo implements storage.RoleRepository.
type RoleRepo struct {
	db Querier
}

func NewRoleRepo(db *pgxpool.Pool) *RoleRepo {
	return &RoleRepo{db: db}
}

var _ storage.RoleRepository = (*RoleRepo)(nil)

func (r *RoleRepo) Upsert(ctx context.Context, rec *models.RoleRecord) error {
	query := `
		INSERT INTO user_roles (uid, email, role, partner_id, verification_status, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (uid) DO UPDATE SET
			email = EXCLUDED.email,
			role = EXCLUDED.role,
			partner_id = EXCLUDED.partner_id,
			verification_status = EXCLUDED.verification_status,
			updated_at = EXCLUDED.updated_at`
	_, err := r.db.Exec(ctx, query, rec.UID, rec.Email, rec.Role, rec.PartnerID, rec.VerificationStatus, rec.UpdatedAt)
	return translateError(err, "upserting role record")
}

func (r *RoleRepo) GetByUID(ctx context.Context, uid string) (*models.RoleRecord, error) {
	var rec models.RoleRecord
	err := r.db.QueryRow(ctx,
		`SELECT uid, email, role, partner_id, verification_status, updated_at FROM user_roles WHERE uid = $1`, uid,
	).Scan(&rec.UID, &rec.Email, &rec.Role, &rec.PartnerID, &rec.VerificationStatus, &rec.UpdatedAt)
	if err != nil {
		return nil, translateError(err, "fetching role record")
	}
	return &rec, nil
}
