//go:build integration

package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emrekoc/campushire/internal/app/models"
)

// seedPosting inserts a posting with an explicit age so creation-time
// ordering is deterministic across fast consecutive inserts.
func seedPosting(t *testing.T, collegeID int64, title string, active bool, deadlineOffsetDays, ageHours int) int64 {
	t.Helper()
	ctx := context.Background()

	var id int64
	err := testPool.QueryRow(ctx, `
		INSERT INTO job_postings
			(college_id, title, description, type, location, salary_min, salary_max,
			 application_deadline, is_active, created_at)
		VALUES ($1, $2, 'desc', 'FULL_TIME', 'Remote', 800000, 1200000,
			CURRENT_DATE + $3::int, $4, now() - ($5::int * interval '1 hour'))
		RETURNING id`,
		collegeID, title, deadlineOffsetDays, active, ageHours).Scan(&id)
	require.NoError(t, err)

	t.Cleanup(func() {
		_, _ = testPool.Exec(ctx, `DELETE FROM job_postings WHERE id = $1`, id)
	})
	return id
}

func TestIntegrationListOpenForStudent(t *testing.T) {
	jobRepo := NewJobRepository(testPool)
	appRepo := NewApplicationRepository(testPool)
	ctx := context.Background()

	studentID, appliedJobID := seedApplicationFixture(t)

	var collegeID int64
	require.NoError(t, testPool.QueryRow(ctx,
		`SELECT college_id FROM students WHERE id = $1`, studentID).Scan(&collegeID))

	var otherCollegeID int64
	suffix := time.Now().UnixNano()
	require.NoError(t, testPool.QueryRow(ctx, `
		INSERT INTO colleges (name, address, contact_email, contact_phone)
		VALUES ($1, 'Other Street', $2, '+919812345678')
		RETURNING id`,
		fmt.Sprintf("Other College %d", suffix),
		fmt.Sprintf("other%d@test.edu", suffix)).Scan(&otherCollegeID))
	t.Cleanup(func() {
		_, _ = testPool.Exec(ctx, `DELETE FROM colleges WHERE id = $1`, otherCollegeID)
	})

	// One posting per exclusion, plus two eligible ones to pin the ordering.
	olderEligibleID := seedPosting(t, collegeID, "Older Opening", true, 10, 5)
	newerEligibleID := seedPosting(t, collegeID, "Newer Opening", true, 10, 1)
	deadlineTodayID := seedPosting(t, collegeID, "Closes Today", true, 0, 3)
	seedPosting(t, otherCollegeID, "Other College Opening", true, 10, 4)
	seedPosting(t, collegeID, "Withdrawn Opening", false, 10, 4)
	seedPosting(t, collegeID, "Expired Opening", true, -1, 4)

	// The fixture posting is eligible until the student applies to it.
	require.NoError(t, appRepo.Create(ctx, &models.Application{StudentID: studentID, JobID: appliedJobID}))

	got, err := jobRepo.ListOpenForStudent(ctx, studentID, collegeID, time.Now())
	require.NoError(t, err)

	ids := make([]int64, len(got))
	for i, job := range got {
		ids[i] = job.ID
	}

	// Own college, active, deadline today or later, not yet applied to.
	// Oldest first: long-standing openings surface before new ones, and the
	// deadline-day posting still counts as open.
	assert.Equal(t, []int64{olderEligibleID, deadlineTodayID, newerEligibleID}, ids)
}
