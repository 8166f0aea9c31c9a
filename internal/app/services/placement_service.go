package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/emrekoc/campushire/internal/app/auth"
	"github.com/emrekoc/campushire/internal/app/models"
	"github.com/emrekoc/campushire/internal/app/models/dto"
	"github.com/emrekoc/campushire/internal/pkg/apperrors"
)

// placementJobStore is the part of the job repository the lifecycle needs
type placementJobStore interface {
	GetByID(ctx context.Context, id int64) (*models.JobPosting, error)
	ListOpenForStudent(ctx context.Context, studentID, collegeID int64, now time.Time) ([]*models.JobPosting, error)
}

// applicationStore is the part of the application repository the lifecycle needs
type applicationStore interface {
	Create(ctx context.Context, app *models.Application) error
	GetByID(ctx context.Context, id int64) (*models.Application, error)
	UpdateStatusIf(ctx context.Context, id int64, expected, next models.ApplicationStatus) error
	ScheduleInterview(ctx context.Context, interview *models.InterviewSchedule, expected models.ApplicationStatus) error
	ListByStudent(ctx context.Context, studentID int64) ([]*models.ApplicationWithJob, error)
	ListByJob(ctx context.Context, jobID int64) ([]*models.ApplicationWithStudent, error)
	ListByCollege(ctx context.Context, collegeID int64) ([]*models.ApplicationWithJob, error)
}

// interviewStore is the part of the interview repository the lifecycle needs
type interviewStore interface {
	GetByID(ctx context.Context, id int64) (*models.InterviewSchedule, error)
	UpdateStatusIf(ctx context.Context, id int64, expected, next models.InterviewStatus) error
	ListByApplication(ctx context.Context, applicationID int64) ([]*models.InterviewSchedule, error)
}

// placementStudentStore resolves student records for applications
type placementStudentStore interface {
	GetByUserID(ctx context.Context, userID int64) (*models.Student, error)
	GetByID(ctx context.Context, id int64) (*models.Student, error)
}

// PlacementService drives the application lifecycle from submission to final
// result. Every status change goes through a compare-and-set against the
// expected current status, so concurrent staff actions resolve to exactly one
// winner instead of silently overwriting each other.
type PlacementService struct {
	jobRepo       placementJobStore
	appRepo       applicationStore
	interviewRepo interviewStore
	studentRepo   placementStudentStore
	logger        zerolog.Logger
}

// NewPlacementService creates a new PlacementService
func NewPlacementService(
	jobRepo placementJobStore,
	appRepo applicationStore,
	interviewRepo interviewStore,
	studentRepo placementStudentStore,
	logger zerolog.Logger,
) *PlacementService {
	return &PlacementService{
		jobRepo:       jobRepo,
		appRepo:       appRepo,
		interviewRepo: interviewRepo,
		studentRepo:   studentRepo,
		logger:        logger,
	}
}

// Apply submits the caller's application to a job posting. The posting must
// belong to the student's college and still be open; a second application to
// the same posting fails with ErrDuplicateApplication.
func (s *PlacementService) Apply(ctx context.Context, identity *auth.Identity, jobID int64) (*models.Application, error) {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if err := auth.Authorize(identity, auth.ActionApplyToJob, &job.CollegeID); err != nil {
		return nil, err
	}

	if !job.IsOpen(time.Now()) {
		return nil, apperrors.ErrJobClosed
	}

	student, err := s.studentRepo.GetByUserID(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}

	app := &models.Application{
		StudentID: student.ID,
		JobID:     job.ID,
	}
	if err := s.appRepo.Create(ctx, app); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("applicationID", app.ID).Int64("jobID", job.ID).Int64("studentID", student.ID).Msg("Application submitted")
	return app, nil
}

// Shortlist moves an application from Applied to Shortlisted
func (s *PlacementService) Shortlist(ctx context.Context, identity *auth.Identity, applicationID int64) error {
	return s.transition(ctx, identity, auth.ActionShortlist, applicationID, models.StatusShortlisted)
}

// Reject moves an application to Rejected. Permitted from Shortlisted and
// InterviewScheduled; an application still in Applied must be shortlisted or
// left alone, and a terminal application never moves again.
func (s *PlacementService) Reject(ctx context.Context, identity *auth.Identity, applicationID int64) error {
	return s.transition(ctx, identity, auth.ActionRecordResult, applicationID, models.StatusRejected)
}

// RecordResult records the final outcome of an interviewed application
func (s *PlacementService) RecordResult(ctx context.Context, identity *auth.Identity, req *dto.RecordResultRequest) error {
	result := models.ApplicationStatus(req.Result)
	if result != models.StatusSelected && result != models.StatusRejected {
		return apperrors.NewBadRequestError("result must be SELECTED or REJECTED")
	}
	return s.transition(ctx, identity, auth.ActionRecordResult, req.ApplicationID, result)
}

// transition authorizes and performs one lifecycle step. The transition table
// is checked against the status read first for a precise error; the
// compare-and-set then guarantees the step only commits if the status is
// still what was read.
func (s *PlacementService) transition(ctx context.Context, identity *auth.Identity, action auth.Action, applicationID int64, next models.ApplicationStatus) error {
	app, job, err := s.loadScoped(ctx, identity, action, applicationID)
	if err != nil {
		return err
	}

	if !models.CanTransition(app.Status, next) {
		return apperrors.NewCustomError(apperrors.ErrInvalidTransition,
			"cannot move application from "+string(app.Status)+" to "+string(next))
	}

	if err := s.appRepo.UpdateStatusIf(ctx, applicationID, app.Status, next); err != nil {
		return err
	}

	s.logger.Info().
		Int64("applicationID", applicationID).
		Int64("jobID", job.ID).
		Str("from", string(app.Status)).
		Str("to", string(next)).
		Msg("Application status changed")
	return nil
}

// ScheduleInterview schedules an interview round for a shortlisted
// application. The status change and the round insert commit atomically.
func (s *PlacementService) ScheduleInterview(ctx context.Context, identity *auth.Identity, req *dto.ScheduleInterviewRequest) (*models.InterviewSchedule, error) {
	app, _, err := s.loadScoped(ctx, identity, auth.ActionScheduleRound, req.ApplicationID)
	if err != nil {
		return nil, err
	}

	when, err := time.Parse(time.RFC3339, req.ScheduledAt)
	if err != nil {
		return nil, apperrors.NewBadRequestError("interview time must be an RFC 3339 timestamp")
	}
	if when.Before(time.Now()) {
		return nil, apperrors.NewBadRequestError("interview time is in the past")
	}

	mode := models.InterviewMode(req.Mode)
	if !models.ValidInterviewMode(mode) {
		return nil, apperrors.NewBadRequestError("unknown interview mode")
	}

	if !models.CanTransition(app.Status, models.StatusInterviewScheduled) {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidTransition,
			"cannot schedule an interview for an application in "+string(app.Status))
	}

	interview := &models.InterviewSchedule{
		ApplicationID: app.ID,
		ScheduledAt:   when,
		Mode:          mode,
	}
	if err := s.appRepo.ScheduleInterview(ctx, interview, app.Status); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("applicationID", app.ID).
		Int64("interviewID", interview.ID).
		Time("scheduledAt", when).
		Msg("Interview scheduled")
	return interview, nil
}

// CompleteInterview marks an interview round completed. The owning
// application stays in InterviewScheduled until a result is recorded.
func (s *PlacementService) CompleteInterview(ctx context.Context, identity *auth.Identity, interviewID int64) error {
	return s.closeInterview(ctx, identity, interviewID, models.InterviewCompleted)
}

// CancelInterview marks an interview round cancelled. The application stays
// in InterviewScheduled; staff may schedule a replacement round or reject.
func (s *PlacementService) CancelInterview(ctx context.Context, identity *auth.Identity, interviewID int64) error {
	return s.closeInterview(ctx, identity, interviewID, models.InterviewCancelled)
}

func (s *PlacementService) closeInterview(ctx context.Context, identity *auth.Identity, interviewID int64, next models.InterviewStatus) error {
	interview, err := s.interviewRepo.GetByID(ctx, interviewID)
	if err != nil {
		return err
	}

	if _, _, err := s.loadScoped(ctx, identity, auth.ActionScheduleRound, interview.ApplicationID); err != nil {
		return err
	}

	if err := s.interviewRepo.UpdateStatusIf(ctx, interviewID, models.InterviewScheduled, next); err != nil {
		return err
	}

	s.logger.Info().Int64("interviewID", interviewID).Str("status", string(next)).Msg("Interview round closed")
	return nil
}

// ListOpenJobs returns the postings the calling student can still apply to:
// own college, open, and not already applied to. Oldest postings first.
func (s *PlacementService) ListOpenJobs(ctx context.Context, identity *auth.Identity) ([]*models.JobPosting, error) {
	if err := auth.Authorize(identity, auth.ActionApplyToJob, nil); err != nil {
		return nil, err
	}

	student, err := s.studentRepo.GetByUserID(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}

	return s.jobRepo.ListOpenForStudent(ctx, student.ID, student.CollegeID, time.Now())
}

// ListOwnApplications returns the calling student's applications with job details
func (s *PlacementService) ListOwnApplications(ctx context.Context, identity *auth.Identity) ([]*models.ApplicationWithJob, error) {
	if err := auth.Authorize(identity, auth.ActionViewApps, nil); err != nil {
		return nil, err
	}
	if identity.Role != models.RoleStudent {
		return nil, apperrors.ErrPermissionDenied
	}

	student, err := s.studentRepo.GetByUserID(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}
	return s.appRepo.ListByStudent(ctx, student.ID)
}

// ListCollegeApplications returns every application in the caller's college
func (s *PlacementService) ListCollegeApplications(ctx context.Context, identity *auth.Identity) ([]*models.ApplicationWithJob, error) {
	if err := auth.Authorize(identity, auth.ActionViewApps, nil); err != nil {
		return nil, err
	}
	if identity.Role == models.RoleStudent {
		return nil, apperrors.ErrPermissionDenied
	}
	if identity.ScopeID == nil {
		return nil, apperrors.NewForbiddenError("account is not linked to a college")
	}
	return s.appRepo.ListByCollege(ctx, *identity.ScopeID)
}

// ListJobApplicants returns a posting's applications with applicant details,
// in arrival order
func (s *PlacementService) ListJobApplicants(ctx context.Context, identity *auth.Identity, jobID int64) ([]*models.ApplicationWithStudent, error) {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if err := auth.Authorize(identity, auth.ActionViewApps, &job.CollegeID); err != nil {
		return nil, err
	}
	if identity.Role == models.RoleStudent {
		return nil, apperrors.ErrPermissionDenied
	}
	return s.appRepo.ListByJob(ctx, jobID)
}

// ListInterviews returns the interview rounds of an application. A student
// may only see rounds of their own application.
func (s *PlacementService) ListInterviews(ctx context.Context, identity *auth.Identity, applicationID int64) ([]*models.InterviewSchedule, error) {
	app, _, err := s.loadScoped(ctx, identity, auth.ActionViewApps, applicationID)
	if err != nil {
		return nil, err
	}

	if identity.Role == models.RoleStudent {
		student, err := s.studentRepo.GetByUserID(ctx, identity.UserID)
		if err != nil {
			return nil, err
		}
		if student.ID != app.StudentID {
			return nil, apperrors.ErrPermissionDenied
		}
	}

	return s.interviewRepo.ListByApplication(ctx, applicationID)
}

// loadScoped loads an application with its posting and authorizes the action
// against the posting's college. An application referencing a missing posting
// is an internal consistency violation, never a user error.
func (s *PlacementService) loadScoped(ctx context.Context, identity *auth.Identity, action auth.Action, applicationID int64) (*models.Application, *models.JobPosting, error) {
	app, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, nil, err
	}

	job, err := s.jobRepo.GetByID(ctx, app.JobID)
	if err != nil {
		if errors.Is(err, apperrors.ErrJobNotFound) {
			s.logger.Error().Int64("applicationID", app.ID).Int64("jobID", app.JobID).Msg("Application references missing job posting")
			return nil, nil, apperrors.ErrConsistency
		}
		return nil, nil, err
	}

	if err := auth.Authorize(identity, action, &job.CollegeID); err != nil {
		return nil, nil, err
	}

	return app, job, nil
}
