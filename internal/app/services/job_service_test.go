package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emrekoc/campushire/internal/app/auth"
	"github.com/emrekoc/campushire/internal/app/models"
	"github.com/emrekoc/campushire/internal/app/models/dto"
	"github.com/emrekoc/campushire/internal/app/repositories"
	"github.com/emrekoc/campushire/internal/pkg/apperrors"
)

type fakeJobCRUDStore struct {
	nextID int64
	jobs   map[int64]*models.JobPosting
}

func (f *fakeJobCRUDStore) Create(_ context.Context, job *models.JobPosting) error {
	f.nextID++
	job.ID = f.nextID
	job.CreatedAt = time.Now()
	f.jobs[job.ID] = job
	return nil
}

func (f *fakeJobCRUDStore) GetByID(_ context.Context, id int64) (*models.JobPosting, error) {
	job, ok := f.jobs[id]
	if !ok {
		return nil, apperrors.ErrJobNotFound
	}
	copied := *job
	return &copied, nil
}

func (f *fakeJobCRUDStore) Update(_ context.Context, job *models.JobPosting) error {
	if _, ok := f.jobs[job.ID]; !ok {
		return apperrors.ErrJobNotFound
	}
	f.jobs[job.ID] = job
	return nil
}

func (f *fakeJobCRUDStore) Close(_ context.Context, id int64) error {
	job, ok := f.jobs[id]
	if !ok {
		return apperrors.ErrJobNotFound
	}
	job.IsActive = false
	return nil
}

func (f *fakeJobCRUDStore) List(_ context.Context, filter repositories.JobFilter) ([]*models.JobPosting, int64, error) {
	var out []*models.JobPosting
	for _, job := range f.jobs {
		if filter.CollegeID != nil && job.CollegeID != *filter.CollegeID {
			continue
		}
		if filter.Type != nil && job.Type != *filter.Type {
			continue
		}
		out = append(out, job)
	}
	return out, int64(len(out)), nil
}

func newJobFixture() (*JobService, *fakeJobCRUDStore) {
	store := &fakeJobCRUDStore{jobs: map[int64]*models.JobPosting{}}
	return NewJobService(store, zerolog.Nop()), store
}

func createJobRequest() *dto.CreateJobPostingRequest {
	return &dto.CreateJobPostingRequest{
		Title:               "Backend Engineer",
		Description:         "Go services",
		Type:                "FULL_TIME",
		Location:            "Remote",
		ApplicationDeadline: time.Now().AddDate(0, 1, 0).Format("2006-01-02"),
	}
}

func TestCreateJob(t *testing.T) {
	svc, store := newJobFixture()

	job, err := svc.CreateJob(context.Background(), adminIdentity(7), createJobRequest())
	require.NoError(t, err)
	assert.True(t, job.IsActive)
	assert.Equal(t, int64(7), job.CollegeID)
	assert.Len(t, store.jobs, 1)
}

func TestCreateJobValidation(t *testing.T) {
	svc, _ := newJobFixture()
	ctx := context.Background()
	admin := adminIdentity(7)

	req := createJobRequest()
	req.ApplicationDeadline = "31-12-2026"
	_, err := svc.CreateJob(ctx, admin, req)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	req = createJobRequest()
	req.ApplicationDeadline = time.Now().AddDate(0, 0, -2).Format("2006-01-02")
	_, err = svc.CreateJob(ctx, admin, req)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestCreateJobRequiresStaffWithScope(t *testing.T) {
	svc, _ := newJobFixture()
	ctx := context.Background()

	_, err := svc.CreateJob(ctx, studentIdentity(), createJobRequest())
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	// Staff role with no college link cannot publish anywhere.
	unlinked := &auth.Identity{UserID: 9, Role: models.RoleSuperAdmin}
	_, err = svc.CreateJob(ctx, unlinked, createJobRequest())
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestUpdateJobCrossCollegeDenied(t *testing.T) {
	svc, _ := newJobFixture()
	ctx := context.Background()

	job, err := svc.CreateJob(ctx, adminIdentity(7), createJobRequest())
	require.NoError(t, err)

	_, err = svc.UpdateJob(ctx, adminIdentity(8), job.ID, createJobRequest())
	assert.ErrorIs(t, err, apperrors.ErrScopeMismatch)
}

func TestCloseJob(t *testing.T) {
	svc, store := newJobFixture()
	ctx := context.Background()

	job, err := svc.CreateJob(ctx, adminIdentity(7), createJobRequest())
	require.NoError(t, err)

	require.NoError(t, svc.CloseJob(ctx, adminIdentity(7), job.ID))
	assert.False(t, store.jobs[job.ID].IsActive)

	assert.ErrorIs(t, svc.CloseJob(ctx, adminIdentity(8), job.ID), apperrors.ErrScopeMismatch)
}

func TestListJobsScopedToOwnCollege(t *testing.T) {
	svc, _ := newJobFixture()
	ctx := context.Background()

	_, err := svc.CreateJob(ctx, adminIdentity(7), createJobRequest())
	require.NoError(t, err)
	_, err = svc.CreateJob(ctx, adminIdentity(8), createJobRequest())
	require.NoError(t, err)

	jobs, total, err := svc.ListJobs(ctx, adminIdentity(7), nil, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, jobs, 1)
	assert.Equal(t, int64(7), jobs[0].CollegeID)
}
