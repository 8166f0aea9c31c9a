//go:build integration

package repositories

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emrekoc/campushire/internal/app/migrations"
	"github.com/emrekoc/campushire/internal/app/models"
	"github.com/emrekoc/campushire/internal/pkg/apperrors"
)

var testPool *pgxpool.Pool

// TestMain connects to the database named by CAMPUSHIRE_TEST_DSN and applies
// the migrations. Run with: go test -tags integration ./internal/app/repositories/
func TestMain(m *testing.M) {
	dsn := os.Getenv("CAMPUSHIRE_TEST_DSN")
	if dsn == "" {
		fmt.Println("CAMPUSHIRE_TEST_DSN not set, skipping integration tests")
		os.Exit(0)
	}

	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		fmt.Printf("failed to connect to test database: %v\n", err)
		os.Exit(1)
	}
	testPool = pool

	if err := migrations.NewMigrator(pool).MigrateFromDirectory("../../../migrations"); err != nil {
		fmt.Printf("failed to migrate test database: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()
	pool.Close()
	os.Exit(code)
}

// seedApplicationFixture inserts a college, a student and an open posting and
// returns the student and job IDs. Rows are cleaned up via t.Cleanup.
func seedApplicationFixture(t *testing.T) (studentID, jobID int64) {
	t.Helper()
	ctx := context.Background()
	suffix := time.Now().UnixNano()

	var collegeID int64
	err := testPool.QueryRow(ctx, `
		INSERT INTO colleges (name, address, contact_email, contact_phone)
		VALUES ($1, 'Test Street', $2, '+919876543210')
		RETURNING id`,
		fmt.Sprintf("Test College %d", suffix),
		fmt.Sprintf("college%d@test.edu", suffix)).Scan(&collegeID)
	require.NoError(t, err)

	var userID int64
	err = testPool.QueryRow(ctx, `
		INSERT INTO users (email, password, full_name, role_type, college_id, is_active)
		VALUES ($1, 'x', 'Test Student', 'STUDENT', $2, TRUE)
		RETURNING id`,
		fmt.Sprintf("student%d@test.edu", suffix), collegeID).Scan(&userID)
	require.NoError(t, err)

	err = testPool.QueryRow(ctx, `
		INSERT INTO students (user_id, college_id, roll_no, department, course, passing_year, cgpa)
		VALUES ($1, $2, $3, 'CSE', 'B.Tech', 2026, 8.5)
		RETURNING id`,
		userID, collegeID, fmt.Sprintf("R%d", suffix)).Scan(&studentID)
	require.NoError(t, err)

	err = testPool.QueryRow(ctx, `
		INSERT INTO job_postings (college_id, title, description, type, location, salary_min, salary_max, application_deadline, is_active)
		VALUES ($1, 'Backend Engineer', 'desc', 'FULL_TIME', 'Remote', 800000, 1200000, CURRENT_DATE + 30, TRUE)
		RETURNING id`,
		collegeID).Scan(&jobID)
	require.NoError(t, err)

	t.Cleanup(func() {
		_, _ = testPool.Exec(ctx, `DELETE FROM applications WHERE student_id = $1`, studentID)
		_, _ = testPool.Exec(ctx, `DELETE FROM job_postings WHERE id = $1`, jobID)
		_, _ = testPool.Exec(ctx, `DELETE FROM students WHERE id = $1`, studentID)
		_, _ = testPool.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
		_, _ = testPool.Exec(ctx, `DELETE FROM colleges WHERE id = $1`, collegeID)
	})

	return studentID, jobID
}

func TestIntegrationDuplicateApplication(t *testing.T) {
	repo := NewApplicationRepository(testPool)
	ctx := context.Background()
	studentID, jobID := seedApplicationFixture(t)

	first := &models.Application{StudentID: studentID, JobID: jobID}
	require.NoError(t, repo.Create(ctx, first))
	assert.Equal(t, models.StatusApplied, first.Status)

	second := &models.Application{StudentID: studentID, JobID: jobID}
	err := repo.Create(ctx, second)
	assert.ErrorIs(t, err, apperrors.ErrDuplicateApplication)
}

func TestIntegrationStatusCompareAndSet(t *testing.T) {
	repo := NewApplicationRepository(testPool)
	ctx := context.Background()
	studentID, jobID := seedApplicationFixture(t)

	app := &models.Application{StudentID: studentID, JobID: jobID}
	require.NoError(t, repo.Create(ctx, app))

	require.NoError(t, repo.UpdateStatusIf(ctx, app.ID, models.StatusApplied, models.StatusShortlisted))

	// A second actor working from the stale status loses the race.
	err := repo.UpdateStatusIf(ctx, app.ID, models.StatusApplied, models.StatusShortlisted)
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)

	err = repo.UpdateStatusIf(ctx, app.ID+100000, models.StatusApplied, models.StatusShortlisted)
	assert.ErrorIs(t, err, apperrors.ErrApplicationNotFound)
}

func TestIntegrationConcurrentShortlist(t *testing.T) {
	repo := NewApplicationRepository(testPool)
	ctx := context.Background()
	studentID, jobID := seedApplicationFixture(t)

	app := &models.Application{StudentID: studentID, JobID: jobID}
	require.NoError(t, repo.Create(ctx, app))

	const actors = 8
	var wg sync.WaitGroup
	errs := make([]error, actors)
	for i := 0; i < actors; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repo.UpdateStatusIf(ctx, app.ID, models.StatusApplied, models.StatusShortlisted)
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
		}
	}
	assert.Equal(t, 1, winners)

	got, err := repo.GetByID(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusShortlisted, got.Status)
}

func TestIntegrationScheduleInterviewAtomic(t *testing.T) {
	repo := NewApplicationRepository(testPool)
	ctx := context.Background()
	studentID, jobID := seedApplicationFixture(t)

	app := &models.Application{StudentID: studentID, JobID: jobID}
	require.NoError(t, repo.Create(ctx, app))

	interview := &models.InterviewSchedule{
		ApplicationID: app.ID,
		ScheduledAt:   time.Now().Add(48 * time.Hour),
		Mode:          models.ModeOnline,
	}

	// Application is still Applied; the schedule must fail without inserting.
	err := repo.ScheduleInterview(ctx, interview, models.StatusShortlisted)
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)

	var count int
	require.NoError(t, testPool.QueryRow(ctx,
		`SELECT COUNT(*) FROM interview_schedules WHERE application_id = $1`, app.ID).Scan(&count))
	assert.Equal(t, 0, count)

	require.NoError(t, repo.UpdateStatusIf(ctx, app.ID, models.StatusApplied, models.StatusShortlisted))
	require.NoError(t, repo.ScheduleInterview(ctx, interview, models.StatusShortlisted))
	assert.NotZero(t, interview.ID)

	got, err := repo.GetByID(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInterviewScheduled, got.Status)

	t.Cleanup(func() {
		_, _ = testPool.Exec(ctx, `DELETE FROM interview_schedules WHERE application_id = $1`, app.ID)
	})
}
