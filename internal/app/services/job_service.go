package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/emrekoc/campushire/internal/app/auth"
	"github.com/emrekoc/campushire/internal/app/models"
	"github.com/emrekoc/campushire/internal/app/models/dto"
	"github.com/emrekoc/campushire/internal/app/repositories"
	"github.com/emrekoc/campushire/internal/pkg/apperrors"
)

// jobStore is the part of the job repository the service needs
type jobStore interface {
	Create(ctx context.Context, job *models.JobPosting) error
	GetByID(ctx context.Context, id int64) (*models.JobPosting, error)
	Update(ctx context.Context, job *models.JobPosting) error
	Close(ctx context.Context, id int64) error
	List(ctx context.Context, filter repositories.JobFilter) ([]*models.JobPosting, int64, error)
}

// JobService handles job posting management by college staff
type JobService struct {
	jobRepo jobStore
	logger  zerolog.Logger
}

// NewJobService creates a new JobService
func NewJobService(jobRepo jobStore, logger zerolog.Logger) *JobService {
	return &JobService{jobRepo: jobRepo, logger: logger}
}

// CreateJob publishes a job posting in the caller's college
func (s *JobService) CreateJob(ctx context.Context, identity *auth.Identity, req *dto.CreateJobPostingRequest) (*models.JobPosting, error) {
	if err := auth.Authorize(identity, auth.ActionManageJobs, nil); err != nil {
		return nil, err
	}
	if identity.ScopeID == nil {
		return nil, apperrors.NewForbiddenError("account is not linked to a college")
	}

	deadline, err := time.Parse("2006-01-02", req.ApplicationDeadline)
	if err != nil {
		return nil, apperrors.NewBadRequestError("application deadline must be a YYYY-MM-DD date")
	}
	if deadline.Before(truncateToDay(time.Now())) {
		return nil, apperrors.NewBadRequestError("application deadline is in the past")
	}

	job := &models.JobPosting{
		CollegeID:           *identity.ScopeID,
		Title:               req.Title,
		Description:         req.Description,
		Type:                req.Type,
		Location:            req.Location,
		SalaryMin:           req.SalaryMin,
		SalaryMax:           req.SalaryMax,
		IsActive:            true,
		ApplicationDeadline: deadline,
	}
	if req.ExperienceRequired != "" {
		job.ExperienceRequired = &req.ExperienceRequired
	}

	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("jobID", job.ID).Int64("collegeID", job.CollegeID).Msg("Job posting published")
	return job, nil
}

// GetJob retrieves a single posting, confined to the caller's college
func (s *JobService) GetJob(ctx context.Context, identity *auth.Identity, jobID int64) (*models.JobPosting, error) {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if err := auth.Authorize(identity, auth.ActionViewJobs, &job.CollegeID); err != nil {
		return nil, err
	}
	return job, nil
}

// UpdateJob edits a posting the caller's college owns
func (s *JobService) UpdateJob(ctx context.Context, identity *auth.Identity, jobID int64, req *dto.CreateJobPostingRequest) (*models.JobPosting, error) {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if err := auth.Authorize(identity, auth.ActionManageJobs, &job.CollegeID); err != nil {
		return nil, err
	}

	deadline, err := time.Parse("2006-01-02", req.ApplicationDeadline)
	if err != nil {
		return nil, apperrors.NewBadRequestError("application deadline must be a YYYY-MM-DD date")
	}

	job.Title = req.Title
	job.Description = req.Description
	job.Type = req.Type
	job.Location = req.Location
	job.SalaryMin = req.SalaryMin
	job.SalaryMax = req.SalaryMax
	job.ApplicationDeadline = deadline
	if req.ExperienceRequired != "" {
		job.ExperienceRequired = &req.ExperienceRequired
	} else {
		job.ExperienceRequired = nil
	}

	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

// CloseJob deactivates a posting so it stops accepting applications.
// Existing applications continue through the lifecycle untouched.
func (s *JobService) CloseJob(ctx context.Context, identity *auth.Identity, jobID int64) error {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return err
	}
	if err := auth.Authorize(identity, auth.ActionManageJobs, &job.CollegeID); err != nil {
		return err
	}

	if err := s.jobRepo.Close(ctx, jobID); err != nil {
		return err
	}

	s.logger.Info().Int64("jobID", jobID).Msg("Job posting closed")
	return nil
}

// ListJobs returns the postings of the caller's college, paginated
func (s *JobService) ListJobs(ctx context.Context, identity *auth.Identity, jobType *string, page, pageSize int) ([]*models.JobPosting, int64, error) {
	if err := auth.Authorize(identity, auth.ActionViewJobs, nil); err != nil {
		return nil, 0, err
	}
	if identity.ScopeID == nil {
		return nil, 0, apperrors.NewForbiddenError("account is not linked to a college")
	}

	filter := repositories.JobFilter{
		CollegeID: identity.ScopeID,
		Type:      jobType,
		Page:      page,
		PageSize:  pageSize,
	}
	return s.jobRepo.List(ctx, filter)
}

// truncateToDay drops the time-of-day for date-level comparisons
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
