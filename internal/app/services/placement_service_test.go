package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emrekoc/campushire/internal/app/auth"
	"github.com/emrekoc/campushire/internal/app/models"
	"github.com/emrekoc/campushire/internal/app/models/dto"
	"github.com/emrekoc/campushire/internal/pkg/apperrors"
)

// In-memory stores backing the lifecycle tests. The application store mirrors
// the database's compare-and-set semantics under a mutex, so concurrent
// transition tests exercise the same single-winner behavior.

type fakeJobStore struct {
	jobs map[int64]*models.JobPosting
	open []*models.JobPosting
}

func (f *fakeJobStore) GetByID(_ context.Context, id int64) (*models.JobPosting, error) {
	job, ok := f.jobs[id]
	if !ok {
		return nil, apperrors.ErrJobNotFound
	}
	return job, nil
}

func (f *fakeJobStore) ListOpenForStudent(_ context.Context, _, _ int64, _ time.Time) ([]*models.JobPosting, error) {
	return f.open, nil
}

type fakeAppStore struct {
	mu         sync.Mutex
	nextID     int64
	apps       map[int64]*models.Application
	interviews []*models.InterviewSchedule
}

func newFakeAppStore() *fakeAppStore {
	return &fakeAppStore{nextID: 1, apps: map[int64]*models.Application{}}
}

func (f *fakeAppStore) add(app *models.Application) *models.Application {
	f.mu.Lock()
	defer f.mu.Unlock()
	app.ID = f.nextID
	f.nextID++
	f.apps[app.ID] = app
	return app
}

func (f *fakeAppStore) Create(_ context.Context, app *models.Application) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.apps {
		if existing.StudentID == app.StudentID && existing.JobID == app.JobID {
			return apperrors.ErrDuplicateApplication
		}
	}
	app.ID = f.nextID
	f.nextID++
	app.Status = models.StatusApplied
	app.AppliedAt = time.Now()
	f.apps[app.ID] = app
	return nil
}

func (f *fakeAppStore) GetByID(_ context.Context, id int64) (*models.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	app, ok := f.apps[id]
	if !ok {
		return nil, apperrors.ErrApplicationNotFound
	}
	copied := *app
	return &copied, nil
}

func (f *fakeAppStore) UpdateStatusIf(_ context.Context, id int64, expected, next models.ApplicationStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	app, ok := f.apps[id]
	if !ok {
		return apperrors.ErrApplicationNotFound
	}
	if app.Status != expected {
		return apperrors.ErrInvalidTransition
	}
	app.Status = next
	app.UpdatedAt = time.Now()
	return nil
}

func (f *fakeAppStore) ScheduleInterview(_ context.Context, interview *models.InterviewSchedule, expected models.ApplicationStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	app, ok := f.apps[interview.ApplicationID]
	if !ok {
		return apperrors.ErrApplicationNotFound
	}
	if app.Status != expected {
		return apperrors.ErrInvalidTransition
	}
	app.Status = models.StatusInterviewScheduled
	interview.ID = int64(len(f.interviews) + 1)
	interview.Status = models.InterviewScheduled
	f.interviews = append(f.interviews, interview)
	return nil
}

func (f *fakeAppStore) ListByStudent(_ context.Context, studentID int64) ([]*models.ApplicationWithJob, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.ApplicationWithJob
	for _, app := range f.apps {
		if app.StudentID == studentID {
			out = append(out, &models.ApplicationWithJob{Application: *app})
		}
	}
	return out, nil
}

func (f *fakeAppStore) ListByJob(_ context.Context, jobID int64) ([]*models.ApplicationWithStudent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.ApplicationWithStudent
	for _, app := range f.apps {
		if app.JobID == jobID {
			out = append(out, &models.ApplicationWithStudent{Application: *app})
		}
	}
	return out, nil
}

func (f *fakeAppStore) ListByCollege(_ context.Context, _ int64) ([]*models.ApplicationWithJob, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.ApplicationWithJob
	for _, app := range f.apps {
		out = append(out, &models.ApplicationWithJob{Application: *app})
	}
	return out, nil
}

type fakeInterviewStore struct {
	mu         sync.Mutex
	interviews map[int64]*models.InterviewSchedule
}

func (f *fakeInterviewStore) GetByID(_ context.Context, id int64) (*models.InterviewSchedule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	iv, ok := f.interviews[id]
	if !ok {
		return nil, apperrors.ErrInterviewNotFound
	}
	copied := *iv
	return &copied, nil
}

func (f *fakeInterviewStore) UpdateStatusIf(_ context.Context, id int64, expected, next models.InterviewStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	iv, ok := f.interviews[id]
	if !ok {
		return apperrors.ErrInterviewNotFound
	}
	if iv.Status != expected {
		return apperrors.ErrInvalidTransition
	}
	iv.Status = next
	return nil
}

func (f *fakeInterviewStore) ListByApplication(_ context.Context, applicationID int64) ([]*models.InterviewSchedule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.InterviewSchedule
	for _, iv := range f.interviews {
		if iv.ApplicationID == applicationID {
			out = append(out, iv)
		}
	}
	return out, nil
}

type fakeStudentStore struct {
	byUser map[int64]*models.Student
	byID   map[int64]*models.Student
}

func (f *fakeStudentStore) GetByUserID(_ context.Context, userID int64) (*models.Student, error) {
	st, ok := f.byUser[userID]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	return st, nil
}

func (f *fakeStudentStore) GetByID(_ context.Context, id int64) (*models.Student, error) {
	st, ok := f.byID[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	return st, nil
}

// Fixture: one college (ID 1) with an open posting, one student, one admin.

const (
	collegeID = int64(1)
	jobID     = int64(10)
	studentID = int64(100)
)

func openJob() *models.JobPosting {
	return &models.JobPosting{
		ID:                  jobID,
		CollegeID:           collegeID,
		Title:               "Backend Engineer",
		IsActive:            true,
		ApplicationDeadline: time.Now().AddDate(0, 1, 0),
	}
}

func newFixture(t *testing.T) (*PlacementService, *fakeJobStore, *fakeAppStore, *fakeInterviewStore) {
	t.Helper()
	jobs := &fakeJobStore{jobs: map[int64]*models.JobPosting{jobID: openJob()}}
	apps := newFakeAppStore()
	interviews := &fakeInterviewStore{interviews: map[int64]*models.InterviewSchedule{}}
	students := &fakeStudentStore{
		byUser: map[int64]*models.Student{5: {ID: studentID, UserID: 5, CollegeID: collegeID}},
		byID:   map[int64]*models.Student{studentID: {ID: studentID, UserID: 5, CollegeID: collegeID}},
	}
	svc := NewPlacementService(jobs, apps, interviews, students, zerolog.Nop())
	return svc, jobs, apps, interviews
}

func studentIdentity() *auth.Identity {
	scope := collegeID
	return &auth.Identity{UserID: 5, Role: models.RoleStudent, ScopeID: &scope}
}

func adminIdentity(scope int64) *auth.Identity {
	return &auth.Identity{UserID: 6, Role: models.RoleAdmin, ScopeID: &scope}
}

func seedApplication(apps *fakeAppStore, status models.ApplicationStatus) *models.Application {
	return apps.add(&models.Application{StudentID: studentID, JobID: jobID, Status: status})
}

func TestApply(t *testing.T) {
	svc, _, _, _ := newFixture(t)

	app, err := svc.Apply(context.Background(), studentIdentity(), jobID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApplied, app.Status)
	assert.Equal(t, studentID, app.StudentID)
}

func TestApplyDuplicate(t *testing.T) {
	svc, _, _, _ := newFixture(t)
	ctx := context.Background()

	_, err := svc.Apply(ctx, studentIdentity(), jobID)
	require.NoError(t, err)

	_, err = svc.Apply(ctx, studentIdentity(), jobID)
	assert.ErrorIs(t, err, apperrors.ErrDuplicateApplication)
}

func TestApplyClosedJob(t *testing.T) {
	svc, jobs, _, _ := newFixture(t)

	jobs.jobs[jobID].IsActive = false
	_, err := svc.Apply(context.Background(), studentIdentity(), jobID)
	assert.ErrorIs(t, err, apperrors.ErrJobClosed)

	jobs.jobs[jobID].IsActive = true
	jobs.jobs[jobID].ApplicationDeadline = time.Now().AddDate(0, 0, -1)
	_, err = svc.Apply(context.Background(), studentIdentity(), jobID)
	assert.ErrorIs(t, err, apperrors.ErrJobClosed)
}

func TestApplyDeadlineDayStillOpen(t *testing.T) {
	svc, jobs, _, _ := newFixture(t)

	// Applications close at the end of the deadline day, not its start.
	jobs.jobs[jobID].ApplicationDeadline = time.Now()
	_, err := svc.Apply(context.Background(), studentIdentity(), jobID)
	assert.NoError(t, err)
}

func TestApplyOtherCollege(t *testing.T) {
	svc, _, _, _ := newFixture(t)

	// A student confined to college 2 applying to a college-1 posting is a
	// scope failure, not a role failure.
	otherScope := int64(2)
	other := &auth.Identity{UserID: 9, Role: models.RoleStudent, ScopeID: &otherScope}
	_, err := svc.Apply(context.Background(), other, jobID)
	assert.ErrorIs(t, err, apperrors.ErrScopeMismatch)
	assert.False(t, errors.Is(err, apperrors.ErrPermissionDenied))
}

func TestApplyAsStaffDenied(t *testing.T) {
	svc, _, _, _ := newFixture(t)

	_, err := svc.Apply(context.Background(), adminIdentity(collegeID), jobID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestLifecycleHappyPath(t *testing.T) {
	svc, _, apps, _ := newFixture(t)
	ctx := context.Background()
	admin := adminIdentity(collegeID)

	app := seedApplication(apps, models.StatusApplied)

	require.NoError(t, svc.Shortlist(ctx, admin, app.ID))

	interview, err := svc.ScheduleInterview(ctx, admin, &dto.ScheduleInterviewRequest{
		ApplicationID: app.ID,
		ScheduledAt:   time.Now().Add(48 * time.Hour).Format(time.RFC3339),
		Mode:          "ONLINE",
	})
	require.NoError(t, err)
	assert.Equal(t, models.InterviewScheduled, interview.Status)

	require.NoError(t, svc.RecordResult(ctx, admin, &dto.RecordResultRequest{
		ApplicationID: app.ID,
		Result:        "SELECTED",
	}))

	final, err := apps.GetByID(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusSelected, final.Status)
	require.NotNil(t, final.FinalResult())
	assert.Equal(t, models.StatusSelected, *final.FinalResult())
}

func TestInvalidTransitions(t *testing.T) {
	tests := []struct {
		name string
		from models.ApplicationStatus
		act  func(svc *PlacementService, admin *auth.Identity, appID int64) error
	}{
		{"shortlist twice", models.StatusShortlisted, func(svc *PlacementService, admin *auth.Identity, appID int64) error {
			return svc.Shortlist(context.Background(), admin, appID)
		}},
		{"schedule while applied", models.StatusApplied, func(svc *PlacementService, admin *auth.Identity, appID int64) error {
			_, err := svc.ScheduleInterview(context.Background(), admin, &dto.ScheduleInterviewRequest{
				ApplicationID: appID,
				ScheduledAt:   time.Now().Add(time.Hour).Format(time.RFC3339),
				Mode:          "ONLINE",
			})
			return err
		}},
		{"record result while applied", models.StatusApplied, func(svc *PlacementService, admin *auth.Identity, appID int64) error {
			return svc.RecordResult(context.Background(), admin, &dto.RecordResultRequest{ApplicationID: appID, Result: "SELECTED"})
		}},
		{"reject from applied", models.StatusApplied, func(svc *PlacementService, admin *auth.Identity, appID int64) error {
			return svc.Reject(context.Background(), admin, appID)
		}},
		{"select from shortlisted skips interview", models.StatusShortlisted, func(svc *PlacementService, admin *auth.Identity, appID int64) error {
			return svc.RecordResult(context.Background(), admin, &dto.RecordResultRequest{ApplicationID: appID, Result: "SELECTED"})
		}},
		{"shortlist terminal", models.StatusRejected, func(svc *PlacementService, admin *auth.Identity, appID int64) error {
			return svc.Shortlist(context.Background(), admin, appID)
		}},
		{"reject terminal", models.StatusSelected, func(svc *PlacementService, admin *auth.Identity, appID int64) error {
			return svc.Reject(context.Background(), admin, appID)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, apps, _ := newFixture(t)
			app := seedApplication(apps, tt.from)
			err := tt.act(svc, adminIdentity(collegeID), app.ID)
			assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
		})
	}
}

func TestRejectFromShortlistedAndInterview(t *testing.T) {
	for _, from := range []models.ApplicationStatus{models.StatusShortlisted, models.StatusInterviewScheduled} {
		t.Run(string(from), func(t *testing.T) {
			svc, _, apps, _ := newFixture(t)
			app := seedApplication(apps, from)
			require.NoError(t, svc.Reject(context.Background(), adminIdentity(collegeID), app.ID))

			got, err := apps.GetByID(context.Background(), app.ID)
			require.NoError(t, err)
			assert.Equal(t, models.StatusRejected, got.Status)
		})
	}
}

func TestTransitionCrossScopeDenied(t *testing.T) {
	svc, _, apps, _ := newFixture(t)
	app := seedApplication(apps, models.StatusApplied)

	err := svc.Shortlist(context.Background(), adminIdentity(2), app.ID)
	assert.ErrorIs(t, err, apperrors.ErrScopeMismatch)

	// The denied action must not have moved the application.
	got, err := apps.GetByID(context.Background(), app.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApplied, got.Status)
}

func TestTransitionStudentDenied(t *testing.T) {
	svc, _, apps, _ := newFixture(t)
	app := seedApplication(apps, models.StatusApplied)

	err := svc.Shortlist(context.Background(), studentIdentity(), app.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestConcurrentShortlistSingleWinner(t *testing.T) {
	svc, _, apps, _ := newFixture(t)
	app := seedApplication(apps, models.StatusApplied)
	admin := adminIdentity(collegeID)

	const workers = 8
	errs := make(chan error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- svc.Shortlist(context.Background(), admin, app.ID)
		}()
	}
	wg.Wait()
	close(errs)

	var won, lost int
	for err := range errs {
		if err == nil {
			won++
		} else {
			require.ErrorIs(t, err, apperrors.ErrInvalidTransition)
			lost++
		}
	}
	assert.Equal(t, 1, won)
	assert.Equal(t, workers-1, lost)

	got, err := apps.GetByID(context.Background(), app.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusShortlisted, got.Status)
}

func TestScheduleInterviewValidation(t *testing.T) {
	svc, _, apps, _ := newFixture(t)
	admin := adminIdentity(collegeID)
	app := seedApplication(apps, models.StatusShortlisted)

	_, err := svc.ScheduleInterview(context.Background(), admin, &dto.ScheduleInterviewRequest{
		ApplicationID: app.ID,
		ScheduledAt:   "next tuesday",
		Mode:          "ONLINE",
	})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	_, err = svc.ScheduleInterview(context.Background(), admin, &dto.ScheduleInterviewRequest{
		ApplicationID: app.ID,
		ScheduledAt:   time.Now().Add(-time.Hour).Format(time.RFC3339),
		Mode:          "ONLINE",
	})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	_, err = svc.ScheduleInterview(context.Background(), admin, &dto.ScheduleInterviewRequest{
		ApplicationID: app.ID,
		ScheduledAt:   time.Now().Add(time.Hour).Format(time.RFC3339),
		Mode:          "CARRIER_PIGEON",
	})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestCompleteInterviewKeepsApplicationStatus(t *testing.T) {
	svc, _, apps, interviews := newFixture(t)
	admin := adminIdentity(collegeID)
	app := seedApplication(apps, models.StatusInterviewScheduled)
	interviews.interviews[1] = &models.InterviewSchedule{
		ID: 1, ApplicationID: app.ID, Status: models.InterviewScheduled,
	}

	require.NoError(t, svc.CompleteInterview(context.Background(), admin, 1))

	iv, err := interviews.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, models.InterviewCompleted, iv.Status)

	got, err := apps.GetByID(context.Background(), app.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInterviewScheduled, got.Status)
}

func TestCancelCompletedInterviewFails(t *testing.T) {
	svc, _, apps, interviews := newFixture(t)
	admin := adminIdentity(collegeID)
	app := seedApplication(apps, models.StatusInterviewScheduled)
	interviews.interviews[1] = &models.InterviewSchedule{
		ID: 1, ApplicationID: app.ID, Status: models.InterviewCompleted,
	}

	err := svc.CancelInterview(context.Background(), admin, 1)
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
}

func TestListOpenJobsRequiresStudent(t *testing.T) {
	svc, jobs, _, _ := newFixture(t)
	jobs.open = []*models.JobPosting{openJob()}

	got, err := svc.ListOpenJobs(context.Background(), studentIdentity())
	require.NoError(t, err)
	assert.Len(t, got, 1)

	_, err = svc.ListOpenJobs(context.Background(), adminIdentity(collegeID))
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestListInterviewsOwnershipCheck(t *testing.T) {
	svc, _, apps, interviews := newFixture(t)
	app := seedApplication(apps, models.StatusInterviewScheduled)
	interviews.interviews[1] = &models.InterviewSchedule{
		ID: 1, ApplicationID: app.ID, Status: models.InterviewScheduled,
	}

	got, err := svc.ListInterviews(context.Background(), studentIdentity(), app.ID)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	// Another student of the same college must not see the rounds.
	otherApp := apps.add(&models.Application{StudentID: 999, JobID: jobID, Status: models.StatusInterviewScheduled})
	_, err = svc.ListInterviews(context.Background(), studentIdentity(), otherApp.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestRecordResultRejectsUnknownOutcome(t *testing.T) {
	svc, _, apps, _ := newFixture(t)
	app := seedApplication(apps, models.StatusInterviewScheduled)

	err := svc.RecordResult(context.Background(), adminIdentity(collegeID), &dto.RecordResultRequest{
		ApplicationID: app.ID,
		Result:        "MAYBE",
	})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestListJobApplicants(t *testing.T) {
	svc, _, apps, _ := newFixture(t)
	for i := 0; i < 3; i++ {
		apps.add(&models.Application{StudentID: int64(200 + i), JobID: jobID, Status: models.StatusApplied})
	}

	got, err := svc.ListJobApplicants(context.Background(), adminIdentity(collegeID), jobID)
	require.NoError(t, err)
	assert.Len(t, got, 3)

	_, err = svc.ListJobApplicants(context.Background(), studentIdentity(), jobID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = svc.ListJobApplicants(context.Background(), adminIdentity(2), jobID)
	assert.ErrorIs(t, err, apperrors.ErrScopeMismatch)
}

func TestApplicationMissingJobIsConsistencyError(t *testing.T) {
	svc, _, apps, _ := newFixture(t)
	orphan := apps.add(&models.Application{StudentID: studentID, JobID: 404, Status: models.StatusApplied})

	err := svc.Shortlist(context.Background(), adminIdentity(collegeID), orphan.ID)
	assert.ErrorIs(t, err, apperrors.ErrConsistency)
}
