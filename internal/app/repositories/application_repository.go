package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emrekoc/campushire/internal/app/models"
	"github.com/emrekoc/campushire/internal/pkg/apperrors"
	"github.com/emrekoc/campushire/internal/pkg/dberrors"
)

// ApplicationRepository handles database operations for applications
type ApplicationRepository struct {
	db *pgxpool.Pool
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

const applicationColumns = `id, student_id, job_id, status, applied_at, updated_at`

func scanApplication(row pgx.Row) (*models.Application, error) {
	app := &models.Application{}
	err := row.Scan(&app.ID, &app.StudentID, &app.JobID, &app.Status, &app.AppliedAt, &app.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return app, nil
}

// Create inserts a new application in the Applied state. The unique
// (student_id, job_id) constraint makes concurrent duplicate submissions
// collapse to a single row.
func (r *ApplicationRepository) Create(ctx context.Context, app *models.Application) error {
	query := `
		INSERT INTO applications (student_id, job_id, status)
		VALUES ($1, $2, $3)
		RETURNING id, applied_at, updated_at
	`

	app.Status = models.StatusApplied
	err := r.db.QueryRow(ctx, query, app.StudentID, app.JobID, app.Status).
		Scan(&app.ID, &app.AppliedAt, &app.UpdatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrDuplicateApplication
		}
		return wrapInfraError("creating application", err)
	}

	return nil
}

// GetByID retrieves an application by ID
func (r *ApplicationRepository) GetByID(ctx context.Context, id int64) (*models.Application, error) {
	row := r.db.QueryRow(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id)
	app, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, wrapInfraError("retrieving application", err)
	}
	return app, nil
}

// UpdateStatusIf moves an application from an expected status to a new one
// with a compare-and-set. When two staff act on the same application at once,
// exactly one update matches the expected status; the loser gets
// ErrInvalidTransition.
func (r *ApplicationRepository) UpdateStatusIf(ctx context.Context, id int64, expected, next models.ApplicationStatus) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE applications
		SET status = $1, updated_at = now()
		WHERE id = $2 AND status = $3`,
		next, id, expected)
	if err != nil {
		return wrapInfraError("updating application status", err)
	}
	if cmdTag.RowsAffected() == 0 {
		// Either the row is gone or another actor moved it first.
		var exists bool
		if checkErr := r.db.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM applications WHERE id = $1)`, id).Scan(&exists); checkErr != nil {
			return wrapInfraError("checking application", checkErr)
		}
		if !exists {
			return apperrors.ErrApplicationNotFound
		}
		return apperrors.ErrInvalidTransition
	}
	return nil
}

// ScheduleInterview moves the application to InterviewScheduled and inserts
// the interview round in one transaction. The status compare-and-set and the
// round insert commit together, so a scheduled round always has a matching
// application state.
func (r *ApplicationRepository) ScheduleInterview(ctx context.Context, interview *models.InterviewSchedule, expected models.ApplicationStatus) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return wrapInfraError("beginning transaction", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	cmdTag, err := tx.Exec(ctx, `
		UPDATE applications
		SET status = $1, updated_at = now()
		WHERE id = $2 AND status = $3`,
		models.StatusInterviewScheduled, interview.ApplicationID, expected)
	if err != nil {
		return wrapInfraError("updating application status", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrInvalidTransition
	}

	interview.Status = models.InterviewScheduled
	err = tx.QueryRow(ctx, `
		INSERT INTO interview_schedules (application_id, scheduled_at, mode, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		interview.ApplicationID, interview.ScheduledAt, interview.Mode, interview.Status).
		Scan(&interview.ID, &interview.CreatedAt)
	if err != nil {
		return wrapInfraError("creating interview schedule", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return wrapInfraError("committing interview schedule", err)
	}

	return nil
}

// ListByStudent retrieves a student's applications with job details, newest first
func (r *ApplicationRepository) ListByStudent(ctx context.Context, studentID int64) ([]*models.ApplicationWithJob, error) {
	query := `
		SELECT a.id, a.student_id, a.job_id, a.status, a.applied_at, a.updated_at,
		       j.title, j.type, j.location, j.application_deadline
		FROM applications a
		JOIN job_postings j ON a.job_id = j.id
		WHERE a.student_id = $1
		ORDER BY a.applied_at DESC
	`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, wrapInfraError("listing applications", err)
	}
	defer rows.Close()

	return collectApplicationsWithJob(rows)
}

// ListByJob retrieves all applications for a job posting with the applicant's
// details, oldest first so staff review arrivals in order.
func (r *ApplicationRepository) ListByJob(ctx context.Context, jobID int64) ([]*models.ApplicationWithStudent, error) {
	query := `
		SELECT a.id, a.student_id, a.job_id, a.status, a.applied_at, a.updated_at,
		       u.full_name, u.email, s.roll_no, s.department, s.cgpa
		FROM applications a
		JOIN students s ON a.student_id = s.id
		JOIN users u ON s.user_id = u.id
		WHERE a.job_id = $1
		ORDER BY a.applied_at ASC
	`

	rows, err := r.db.Query(ctx, query, jobID)
	if err != nil {
		return nil, wrapInfraError("listing applications", err)
	}
	defer rows.Close()

	var apps []*models.ApplicationWithStudent
	for rows.Next() {
		item := &models.ApplicationWithStudent{}
		if err := rows.Scan(
			&item.ID, &item.StudentID, &item.JobID, &item.Status, &item.AppliedAt, &item.UpdatedAt,
			&item.StudentName, &item.StudentEmail, &item.RollNo, &item.Department, &item.CGPA,
		); err != nil {
			return nil, err
		}
		apps = append(apps, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return apps, nil
}

// ListByCollege retrieves all applications for a college's postings, newest first
func (r *ApplicationRepository) ListByCollege(ctx context.Context, collegeID int64) ([]*models.ApplicationWithJob, error) {
	query := `
		SELECT a.id, a.student_id, a.job_id, a.status, a.applied_at, a.updated_at,
		       j.title, j.type, j.location, j.application_deadline
		FROM applications a
		JOIN job_postings j ON a.job_id = j.id
		WHERE j.college_id = $1
		ORDER BY a.applied_at DESC
	`

	rows, err := r.db.Query(ctx, query, collegeID)
	if err != nil {
		return nil, wrapInfraError("listing applications", err)
	}
	defer rows.Close()

	return collectApplicationsWithJob(rows)
}

func collectApplicationsWithJob(rows pgx.Rows) ([]*models.ApplicationWithJob, error) {
	var apps []*models.ApplicationWithJob
	for rows.Next() {
		item := &models.ApplicationWithJob{}
		if err := rows.Scan(
			&item.ID, &item.StudentID, &item.JobID, &item.Status, &item.AppliedAt, &item.UpdatedAt,
			&item.JobTitle, &item.JobType, &item.JobLocation, &item.JobDeadline,
		); err != nil {
			return nil, err
		}
		apps = append(apps, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return apps, nil
}
