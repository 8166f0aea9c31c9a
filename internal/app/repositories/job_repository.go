package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emrekoc/campushire/internal/app/models"
	"github.com/emrekoc/campushire/internal/pkg/apperrors"
)

// JobRepository handles database operations for job postings
type JobRepository struct {
	db      *pgxpool.Pool
	builder squirrel.StatementBuilderType
}

// NewJobRepository creates a new job posting repository
func NewJobRepository(db *pgxpool.Pool) *JobRepository {
	return &JobRepository{
		db:      db,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const jobColumns = `id, college_id, title, description, type, location, salary_min, salary_max, experience_required, is_active, application_deadline, created_at`

func scanJob(row pgx.Row) (*models.JobPosting, error) {
	job := &models.JobPosting{}
	err := row.Scan(
		&job.ID, &job.CollegeID, &job.Title, &job.Description, &job.Type,
		&job.Location, &job.SalaryMin, &job.SalaryMax, &job.ExperienceRequired,
		&job.IsActive, &job.ApplicationDeadline, &job.CreatedAt)
	if err != nil {
		return nil, err
	}
	return job, nil
}

// Create creates a new job posting
func (r *JobRepository) Create(ctx context.Context, job *models.JobPosting) error {
	query := `
		INSERT INTO job_postings
			(college_id, title, description, type, location, salary_min, salary_max,
			 experience_required, is_active, application_deadline)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		job.CollegeID, job.Title, job.Description, job.Type, job.Location,
		job.SalaryMin, job.SalaryMax, job.ExperienceRequired, job.IsActive,
		job.ApplicationDeadline).
		Scan(&job.ID, &job.CreatedAt)
	if err != nil {
		return wrapInfraError("creating job posting", err)
	}

	return nil
}

// GetByID retrieves a job posting by ID
func (r *JobRepository) GetByID(ctx context.Context, id int64) (*models.JobPosting, error) {
	row := r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM job_postings WHERE id = $1`, id)
	job, err := scanJob(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, wrapInfraError("retrieving job posting", err)
	}
	return job, nil
}

// Update updates an existing job posting
func (r *JobRepository) Update(ctx context.Context, job *models.JobPosting) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE job_postings
		SET title = $1, description = $2, type = $3, location = $4, salary_min = $5,
		    salary_max = $6, experience_required = $7, is_active = $8, application_deadline = $9
		WHERE id = $10`,
		job.Title, job.Description, job.Type, job.Location, job.SalaryMin,
		job.SalaryMax, job.ExperienceRequired, job.IsActive, job.ApplicationDeadline, job.ID)
	if err != nil {
		return wrapInfraError("updating job posting", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrJobNotFound
	}
	return nil
}

// Close marks a job posting inactive
func (r *JobRepository) Close(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `UPDATE job_postings SET is_active = false WHERE id = $1`, id)
	if err != nil {
		return wrapInfraError("closing job posting", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrJobNotFound
	}
	return nil
}

// JobFilter carries the optional filters for listing postings
type JobFilter struct {
	CollegeID  *int64
	Type       *string
	ActiveOnly bool
	Page       int
	PageSize   int
}

// List retrieves job postings matching the filter, newest first
func (r *JobRepository) List(ctx context.Context, filter JobFilter) ([]*models.JobPosting, int64, error) {
	sb := r.builder.
		Select("id", "college_id", "title", "description", "type", "location",
			"salary_min", "salary_max", "experience_required", "is_active",
			"application_deadline", "created_at").
		From("job_postings")

	countSb := r.builder.Select("COUNT(*)").From("job_postings")

	if filter.CollegeID != nil {
		sb = sb.Where(squirrel.Eq{"college_id": *filter.CollegeID})
		countSb = countSb.Where(squirrel.Eq{"college_id": *filter.CollegeID})
	}
	if filter.Type != nil {
		sb = sb.Where(squirrel.Eq{"type": *filter.Type})
		countSb = countSb.Where(squirrel.Eq{"type": *filter.Type})
	}
	if filter.ActiveOnly {
		sb = sb.Where(squirrel.Eq{"is_active": true})
		countSb = countSb.Where(squirrel.Eq{"is_active": true})
	}

	countQuery, countArgs, err := countSb.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, wrapInfraError("counting job postings", err)
	}

	sb = sb.OrderBy("created_at DESC")
	if filter.PageSize > 0 {
		offset := 0
		if filter.Page > 1 {
			offset = (filter.Page - 1) * filter.PageSize
		}
		sb = sb.Limit(uint64(filter.PageSize)).Offset(uint64(offset))
	}

	query, args, err := sb.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building list query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, wrapInfraError("listing job postings", err)
	}
	defer rows.Close()

	jobs, err := collectJobs(rows)
	if err != nil {
		return nil, 0, err
	}

	return jobs, total, nil
}

// ListOpenForStudent retrieves the postings a student may still apply to:
// the student's own college, active, deadline not passed, and not already
// applied to. Oldest first, so long-standing openings surface before new ones.
func (r *JobRepository) ListOpenForStudent(ctx context.Context, studentID, collegeID int64, now time.Time) ([]*models.JobPosting, error) {
	query := `
		SELECT ` + prefixedJobColumns("j") + `
		FROM job_postings j
		WHERE j.college_id = $1
		  AND j.is_active
		  AND j.application_deadline >= $2
		  AND NOT EXISTS (
		      SELECT 1 FROM applications a
		      WHERE a.job_id = j.id AND a.student_id = $3
		  )
		ORDER BY j.created_at ASC
	`

	rows, err := r.db.Query(ctx, query, collegeID, truncateToDay(now), studentID)
	if err != nil {
		return nil, wrapInfraError("listing open job postings", err)
	}
	defer rows.Close()

	return collectJobs(rows)
}

func collectJobs(rows pgx.Rows) ([]*models.JobPosting, error) {
	var jobs []*models.JobPosting
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return jobs, nil
}

func prefixedJobColumns(alias string) string {
	return alias + `.id, ` + alias + `.college_id, ` + alias + `.title, ` + alias + `.description, ` +
		alias + `.type, ` + alias + `.location, ` + alias + `.salary_min, ` + alias + `.salary_max, ` +
		alias + `.experience_required, ` + alias + `.is_active, ` + alias + `.application_deadline, ` +
		alias + `.created_at`
}

// truncateToDay drops the time-of-day so the deadline comparison stays
// inclusive of the deadline date itself.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
