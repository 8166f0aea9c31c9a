package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emrekoc/campushire/internal/app/models"
	"github.com/emrekoc/campushire/internal/pkg/apperrors"
)

// InterviewRepository handles database operations for interview schedules
type InterviewRepository struct {
	db *pgxpool.Pool
}

// NewInterviewRepository creates a new interview schedule repository
func NewInterviewRepository(db *pgxpool.Pool) *InterviewRepository {
	return &InterviewRepository{db: db}
}

const interviewColumns = `id, application_id, scheduled_at, mode, status, created_at`

func scanInterview(row pgx.Row) (*models.InterviewSchedule, error) {
	iv := &models.InterviewSchedule{}
	err := row.Scan(&iv.ID, &iv.ApplicationID, &iv.ScheduledAt, &iv.Mode, &iv.Status, &iv.CreatedAt)
	if err != nil {
		return nil, err
	}
	return iv, nil
}

// GetByID retrieves an interview schedule by ID
func (r *InterviewRepository) GetByID(ctx context.Context, id int64) (*models.InterviewSchedule, error) {
	row := r.db.QueryRow(ctx, `SELECT `+interviewColumns+` FROM interview_schedules WHERE id = $1`, id)
	iv, err := scanInterview(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInterviewNotFound
		}
		return nil, wrapInfraError("retrieving interview schedule", err)
	}
	return iv, nil
}

// UpdateStatusIf moves an interview round from Scheduled to a final state with
// a compare-and-set. A round already completed or cancelled stays untouched.
func (r *InterviewRepository) UpdateStatusIf(ctx context.Context, id int64, expected, next models.InterviewStatus) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE interview_schedules
		SET status = $1
		WHERE id = $2 AND status = $3`,
		next, id, expected)
	if err != nil {
		return wrapInfraError("updating interview status", err)
	}
	if cmdTag.RowsAffected() == 0 {
		var exists bool
		if checkErr := r.db.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM interview_schedules WHERE id = $1)`, id).Scan(&exists); checkErr != nil {
			return wrapInfraError("checking interview schedule", checkErr)
		}
		if !exists {
			return apperrors.ErrInterviewNotFound
		}
		return apperrors.ErrInvalidTransition
	}
	return nil
}

// ListByApplication retrieves all interview rounds of an application in
// scheduling order
func (r *InterviewRepository) ListByApplication(ctx context.Context, applicationID int64) ([]*models.InterviewSchedule, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+interviewColumns+` FROM interview_schedules WHERE application_id = $1 ORDER BY scheduled_at ASC`,
		applicationID)
	if err != nil {
		return nil, wrapInfraError("listing interview schedules", err)
	}
	defer rows.Close()

	var interviews []*models.InterviewSchedule
	for rows.Next() {
		iv, err := scanInterview(rows)
		if err != nil {
			return nil, err
		}
		interviews = append(interviews, iv)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return interviews, nil
}
