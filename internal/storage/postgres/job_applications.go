// internal/storage/postgres/job_applications.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"internhub-api/internal/models"
	"internhub-api/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ApplicationRepo implements storage.ApplicationRepository using PostgreSQL.
// profile, status_history and interview are JSONB documents.
type ApplicationRepo struct {
	db Querier
}

func NewApplicationRepo(db *pgxpool.Pool) *ApplicationRepo {
	return &ApplicationRepo{db: db}
}

var _ storage.ApplicationRepository = (*ApplicationRepo)(nil)

const applicationColumns = `id, job_id, partner_id, student_uid, cover_letter, profile, status, status_history,
	interview, partner_rating, notes, created_at, updated_at`

func scanApplication(row pgx.Row) (*models.JobApplication, error) {
	var a models.JobApplication
	err := row.Scan(
		&a.ID, &a.JobID, &a.PartnerID, &a.StudentUID, &a.CoverLetter, &a.Profile, &a.Status,
		&a.StatusHistory, &a.Interview, &a.PartnerRating, &a.Notes, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts the application. The deterministic id and the
// (student_uid, job_id) unique constraint both surface as storage.ErrConflict.
func (r *ApplicationRepo) Create(ctx context.Context, a *models.JobApplication) error {
	query := `
		INSERT INTO job_applications (id, job_id, partner_id, student_uid, cover_letter, profile, status,
			status_history, interview, partner_rating, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.db.Exec(ctx, query,
		a.ID, a.JobID, a.PartnerID, a.StudentUID, a.CoverLetter, a.Profile, a.Status,
		a.StatusHistory, a.Interview, a.PartnerRating, a.Notes, a.CreatedAt, a.UpdatedAt,
	)
	return translateError(err, "creating job application")
}

func (r *ApplicationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.JobApplication, error) {
	a, err := scanApplication(r.db.QueryRow(ctx, `SELECT `+applicationColumns+` FROM job_applications WHERE id = $1`, id))
	if err != nil {
		return nil, translateError(err, "fetching job application")
	}
	return a, nil
}

func (r *ApplicationRepo) Exists(ctx context.Context, studentUID string, jobID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM job_applications WHERE student_uid = $1 AND job_id = $2)`,
		studentUID, jobID,
	).Scan(&exists)
	if err != nil {
		return false, translateError(err, "checking existing application")
	}
	return exists, nil
}

func (r *ApplicationRepo) List(ctx context.Context, f storage.ApplicationFilter) ([]models.JobApplication, error) {
	var where whereBuilder
	if f.PartnerID != nil {
		where.add("partner_id", *f.PartnerID)
	}
	if f.StudentUID != "" {
		where.add("student_uid", f.StudentUID)
	}
	if f.JobID != nil {
		where.add("job_id", *f.JobID)
	}
	if f.Status != nil {
		where.add("status", *f.Status)
	}

	rows, err := r.db.Query(ctx, where.build(`SELECT `+applicationColumns+` FROM job_applications`, "created_at DESC"), where.args...)
	if err != nil {
		return nil, translateError(err, "listing job applications")
	}
	defer rows.Close()

	apps := make([]models.JobApplication, 0)
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning application row: %w", err)
		}
		apps = append(apps, *a)
	}
	return apps, rows.Err()
}

// AppendStatus sets status and appends to status_history in a single statement
// guarded by the expected current status.
func (r *ApplicationRepo) AppendStatus(ctx context.Context, id uuid.UUID, from models.ApplicationStatus, entry models.StatusEntry) (*models.JobApplication, error) {
	query := `
		UPDATE job_applications
		SET status = $2, status_history = status_history || $3::jsonb, updated_at = NOW()
		WHERE id = $1 AND status = $4
		RETURNING ` + applicationColumns
	a, err := scanApplication(r.db.QueryRow(ctx, query, id, entry.Status, []models.StatusEntry{entry}, from))
	if err != nil {
		return nil, r.conditionalError(ctx, err, id, "appending application status")
	}
	return a, nil
}

func (r *ApplicationRepo) conditionalError(ctx context.Context, err error, id uuid.UUID, what string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return staleOrMissing(ctx, r.db, "job_applications", id, what)
	}
	return translateError(err, what)
}

func (r *ApplicationRepo) SetNotes(ctx context.Context, id uuid.UUID, notes string) (*models.JobApplication, error) {
	query := `UPDATE job_applications SET notes = $2, updated_at = NOW() WHERE id = $1 RETURNING ` + applicationColumns
	a, err := scanApplication(r.db.QueryRow(ctx, query, id, notes))
	if err != nil {
		return nil, translateError(err, "setting application notes")
	}
	return a, nil
}

func (r *ApplicationRepo) SetRating(ctx context.Context, id uuid.UUID, rating int) (*models.JobApplication, error) {
	query := `UPDATE job_applications SET partner_rating = $2, updated_at = NOW() WHERE id = $1 RETURNING ` + applicationColumns
	a, err := scanApplication(r.db.QueryRow(ctx, query, id, rating))
	if err != nil {
		return nil, translateError(err, "setting application rating")
	}
	return a, nil
}

func (r *ApplicationRepo) SetInterview(ctx context.Context, id uuid.UUID, from models.ApplicationStatus, interview models.Interview, entry models.StatusEntry) (*models.JobApplication, error) {
	query := `
		UPDATE job_applications
		SET interview = $2, status_history = status_history || $3::jsonb, updated_at = NOW()
		WHERE id = $1 AND status = $4
		RETURNING ` + applicationColumns
	a, err := scanApplication(r.db.QueryRow(ctx, query, id, interview, []models.StatusEntry{entry}, from))
	if err != nil {
		return nil, r.conditionalError(ctx, err, id, "scheduling interview")
	}
	return a, nil
}
