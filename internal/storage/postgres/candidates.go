package postgres

import (
	"context"
	"fmt"

	"internhub-api/internal/models"
	"internhub-api/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CandidateRepo reads the candidate_profiles read model.
type CandidateRepo struct {
	db Querier
}

func NewCandidateRepo(db *pgxpool.Pool) *CandidateRepo {
	return &CandidateRepo{db: db}
}

var _ storage.CandidateRepository = (*CandidateRepo)(nil)

const candidateColumns = `uid, name, email, phone, headline, location, skills, domain, experience_years,
	completed_courses, enrolled_courses, education, experience, projects, certificates, skill_score,
	aggregate_score, resume_url, visible_to_partners, created_at`

func scanCandidate(row pgx.Row) (*models.CandidateProfile, error) {
	var c models.CandidateProfile
	err := row.Scan(
		&c.UID, &c.Name, &c.Email, &c.Phone, &c.Headline, &c.Location, &c.Skills, &c.Domain, &c.ExperienceYears,
		&c.CompletedCourses, &c.EnrolledCourses, &c.Education, &c.Experience, &c.Projects, &c.Certificates,
		&c.SkillScore, &c.AggregateScore, &c.ResumeURL, &c.VisibleToPartners, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListVisible reads the whole opted-in pool. Discovery filters it in memory.
func (r *CandidateRepo) ListVisible(ctx context.Context) ([]models.CandidateProfile, error) {
	rows, err := r.db.Query(ctx, `SELECT `+candidateColumns+` FROM candidate_profiles WHERE visible_to_partners ORDER BY uid`)
	if err != nil {
		return nil, translateError(err, "listing visible candidates")
	}
	defer rows.Close()

	pool := make([]models.CandidateProfile, 0)
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning candidate row: %w", err)
		}
		pool = append(pool, *c)
	}
	return pool, rows.Err()
}

func (r *CandidateRepo) GetByUID(ctx context.Context, uid string) (*models.CandidateProfile, error) {
	c, err := scanCandidate(r.db.QueryRow(ctx, `SELECT `+candidateColumns+` FROM candidate_profiles WHERE uid = $1`, uid))
	if err != nil {
		return nil, translateError(err, "fetching candidate")
	}
	return c, nil
}

// ShortlistRepo implements storage.ShortlistRepository.
type ShortlistRepo struct {
	db Querier
}

func NewShortlistRepo(db *pgxpool.Pool) *ShortlistRepo {
	return &ShortlistRepo{db: db}
}

var _ storage.ShortlistRepository = (*ShortlistRepo)(nil)

func (r *ShortlistRepo) Upsert(ctx context.Context, e *models.ShortlistEntry) (*models.ShortlistEntry, error) {
	query := `
		INSERT INTO shortlists (partner_uid, student_uid, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (partner_uid, student_uid) DO UPDATE SET notes = EXCLUDED.notes, updated_at = EXCLUDED.updated_at
		RETURNING partner_uid, student_uid, notes, created_at, updated_at`
	var out models.ShortlistEntry
	err := r.db.QueryRow(ctx, query, e.PartnerUID, e.StudentUID, e.Notes, e.CreatedAt, e.UpdatedAt).
		Scan(&out.PartnerUID, &out.StudentUID, &out.Notes, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		return nil, translateError(err, "upserting shortlist entry")
	}
	return &out, nil
}

func (r *ShortlistRepo) Delete(ctx context.Context, partnerUID, studentUID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM shortlists WHERE partner_uid = $1 AND student_uid = $2`, partnerUID, studentUID)
	if err != nil {
		return translateError(err, "deleting shortlist entry")
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (r *ShortlistRepo) ListByPartner(ctx context.Context, partnerUID string) ([]models.ShortlistEntry, error) {
	rows, err := r.db.Query(ctx,
		`SELECT partner_uid, student_uid, notes, created_at, updated_at FROM shortlists
		 WHERE partner_uid = $1 ORDER BY updated_at DESC`, partnerUID)
	if err != nil {
		return nil, translateError(err, "listing shortlist")
	}
	defer rows.Close()

	entries := make([]models.ShortlistEntry, 0)
	for rows.Next() {
		var e models.ShortlistEntry
		if err := rows.Scan(&e.PartnerUID, &e.StudentUID, &e.Notes, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning shortlist row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ResumeAccessRepo implements the append-only resume access audit log.
type ResumeAccessRepo struct {
	db Querier
}

func NewResumeAccessRepo(db *pgxpool.Pool) *ResumeAccessRepo {
	return &ResumeAccessRepo{db: db}
}

var _ storage.ResumeAccessRepository = (*ResumeAccessRepo)(nil)

func (r *ResumeAccessRepo) Append(ctx context.Context, rec *models.ResumeAccessLog) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO resume_access_logs (id, partner_uid, student_uid, granted, accessed_at) VALUES ($1, $2, $3, $4, $5)`,
		rec.ID, rec.PartnerUID, rec.StudentUID, rec.Granted, rec.AccessedAt)
	return translateError(err, "appending resume access log")
}

func (r *ResumeAccessRepo) ListByStudent(ctx context.Context, studentUID string) ([]models.ResumeAccessLog, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id::text, partner_uid, student_uid, granted, accessed_at FROM resume_access_logs
		 WHERE student_uid = $1 ORDER BY accessed_at DESC`, studentUID)
	if err != nil {
		return nil, translateError(err, "listing resume access logs")
	}
	defer rows.Close()

	logs := make([]models.ResumeAccessLog, 0)
	for rows.Next() {
		var l models.ResumeAccessLog
		if err := rows.Scan(&l.ID, &l.PartnerUID, &l.StudentUID, &l.Granted, &l.AccessedAt); err != nil {
			return nil, fmt.Errorf("scanning resume access row: %w", err)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
