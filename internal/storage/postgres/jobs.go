// internal/storage/postgres/jobs.go
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

// JobRepo implements the storage.JobRepository interface using PostgreSQL.
type JobRepo struct {
	db Querier
}

// NewJobRepo creates a new JobRepo.
func NewJobRepo(db *pgxpool.Pool) *JobRepo {
	return &JobRepo{db: db}
}

// Compile-time check to ensure JobRepo implements JobRepository
var _ storage.JobRepository = (*JobRepo)(nil)

const jobColumns = `id, partner_id, partner_uid, company_name, title, description, skills, experience_level, education,
	job_type, salary_min, salary_max, currency, location, work_mode, deadline, openings, responsibilities, benefits,
	status, visibility, views, applications, shortlisted, selected, published_at, closed_at, created_at, updated_at`

var jobStatColumns = map[storage.JobStat]string{
	storage.JobStatViews:        "views",
	storage.JobStatApplications: "applications",
	storage.JobStatShortlisted:  "shortlisted",
	storage.JobStatSelected:     "selected",
}

func scanJob(row pgx.Row) (*models.JobPosting, error) {
	var j models.JobPosting
	err := row.Scan(
		&j.ID, &j.PartnerID, &j.PartnerUID, &j.CompanyName, &j.Title, &j.Description, &j.Skills,
		&j.ExperienceLevel, &j.Education, &j.JobType, &j.SalaryMin, &j.SalaryMax, &j.Currency, &j.Location,
		&j.WorkMode, &j.Deadline, &j.Openings, &j.Responsibilities, &j.Benefits, &j.Status, &j.Visibility,
		&j.Stats.Views, &j.Stats.Applications, &j.Stats.Shortlisted, &j.Stats.Selected,
		&j.PublishedAt, &j.ClosedAt, &j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &j, nil
}

// Create saves a new job posting.
func (r *JobRepo) Create(ctx context.Context, j *models.JobPosting) error {
	query := `
		INSERT INTO job_postings (id, partner_id, partner_uid, company_name, title, description, skills,
			experience_level, education, job_type, salary_min, salary_max, currency, location, work_mode, deadline,
			openings, responsibilities, benefits, status, visibility, published_at, closed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21,
			$22, $23, $24, $25)`
	_, err := r.db.Exec(ctx, query,
		j.ID, j.PartnerID, j.PartnerUID, j.CompanyName, j.Title, j.Description, nonNil(j.Skills),
		j.ExperienceLevel, j.Education, j.JobType, j.SalaryMin, j.SalaryMax, j.Currency, j.Location, j.WorkMode,
		j.Deadline, j.Openings, nonNil(j.Responsibilities), nonNil(j.Benefits), j.Status, j.Visibility,
		j.PublishedAt, j.ClosedAt, j.CreatedAt, j.UpdatedAt,
	)
	return translateError(err, "creating job posting")
}

// GetByID retrieves a specific job by its ID.
func (r *JobRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.JobPosting, error) {
	j, err := scanJob(r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM job_postings WHERE id = $1`, id))
	if err != nil {
		return nil, translateError(err, "fetching job posting")
	}
	return j, nil
}

func (r *JobRepo) GetMany(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*models.JobPosting, error) {
	out := make(map[uuid.UUID]*models.JobPosting, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := r.db.Query(ctx, `SELECT `+jobColumns+` FROM job_postings WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, translateError(err, "fetching job postings")
	}
	defer rows.Close()
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning job row: %w", err)
		}
		out[j.ID] = j
	}
	return out, rows.Err()
}

// List returns postings matching the equality filter, newest first.
func (r *JobRepo) List(ctx context.Context, f storage.JobFilter) ([]models.JobPosting, error) {
	var where whereBuilder
	if f.PartnerID != nil {
		where.add("partner_id", *f.PartnerID)
	}
	if f.Status != nil {
		where.add("status", *f.Status)
	}
	if f.Visibility != nil {
		where.add("visibility", *f.Visibility)
	}
	if f.JobType != "" {
		where.add("job_type", f.JobType)
	}
	if f.ExperienceLevel != "" {
		where.add("experience_level", f.ExperienceLevel)
	}
	if f.WorkMode != "" {
		where.add("work_mode", f.WorkMode)
	}

	rows, err := r.db.Query(ctx, where.build(`SELECT `+jobColumns+` FROM job_postings`, "created_at DESC"), where.args...)
	if err != nil {
		return nil, translateError(err, "listing job postings")
	}
	defer rows.Close()

	jobs := make([]models.JobPosting, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning job row: %w", err)
		}
		jobs = append(jobs, *j)
	}
	return jobs, rows.Err()
}

// UpdateContent writes the editable content columns. Status, lifecycle
// timestamps, identity snapshot columns and counters are left alone.
func (r *JobRepo) UpdateContent(ctx context.Context, id uuid.UUID, c models.JobContent, visibility models.Visibility, at time.Time) (*models.JobPosting, error) {
	query := `
		UPDATE job_postings SET
			title = $2, description = $3, skills = $4, experience_level = $5, education = $6, job_type = $7,
			salary_min = $8, salary_max = $9, currency = $10, location = $11, work_mode = $12, deadline = $13,
			openings = $14, responsibilities = $15, benefits = $16, visibility = $17, updated_at = $18
		WHERE id = $1
		RETURNING ` + jobColumns
	j, err := scanJob(r.db.QueryRow(ctx, query,
		id, c.Title, c.Description, nonNil(c.Skills), c.ExperienceLevel, c.Education, c.JobType,
		c.SalaryMin, c.SalaryMax, c.Currency, c.Location, c.WorkMode, c.Deadline,
		c.Openings, nonNil(c.Responsibilities), nonNil(c.Benefits), visibility, at,
	))
	if err != nil {
		return nil, translateError(err, "updating job posting")
	}
	return j, nil
}

// TransitionStatus is a compare-and-set on status. Activation stamps
// published_at, closing or filling stamps closed_at.
func (r *JobRepo) TransitionStatus(ctx context.Context, id uuid.UUID, from, to models.JobStatus, at time.Time) (*models.JobPosting, error) {
	query := `
		UPDATE job_postings SET
			status = $3,
			published_at = CASE WHEN $3 = 'active' THEN $4 ELSE published_at END,
			closed_at = CASE WHEN $3 IN ('closed', 'filled') THEN $4 ELSE closed_at END,
			updated_at = $4
		WHERE id = $1 AND status = $2
		RETURNING ` + jobColumns
	j, err := scanJob(r.db.QueryRow(ctx, query, id, from, to, at))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, staleOrMissing(ctx, r.db, "job_postings", id, "changing job status")
		}
		return nil, translateError(err, "changing job status")
	}
	return j, nil
}

// Delete removes a job posting while it is still in status.
func (r *JobRepo) Delete(ctx context.Context, id uuid.UUID, status models.JobStatus) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM job_postings WHERE id = $1 AND status = $2`, id, status)
	if err != nil {
		return translateError(err, "deleting job posting")
	}
	if tag.RowsAffected() == 0 {
		return staleOrMissing(ctx, r.db, "job_postings", id, "deleting job posting")
	}
	return nil
}

func (r *JobRepo) IncrementStat(ctx context.Context, id uuid.UUID, stat storage.JobStat, delta int) error {
	column, ok := jobStatColumns[stat]
	if !ok {
		return fmt.Errorf("%w: %s", storage.ErrUnknownStat, stat)
	}
	query := fmt.Sprintf(`UPDATE job_postings SET %[1]s = %[1]s + $2 WHERE id = $1`, column)
	tag, err := r.db.Exec(ctx, query, id, delta)
	if err != nil {
		return translateError(err, "incrementing job stat")
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
