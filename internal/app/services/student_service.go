package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/emrekoc/campushire/internal/app/auth"
	"github.com/emrekoc/campushire/internal/app/models"
	"github.com/emrekoc/campushire/internal/app/models/dto"
	"github.com/emrekoc/campushire/internal/pkg/apperrors"
)

// studentStore is the part of the student repository the service needs
type studentStore interface {
	GetByUserID(ctx context.Context, userID int64) (*models.Student, error)
	UpdateProfile(ctx context.Context, student *models.Student) error
	ListByCollege(ctx context.Context, collegeID int64) ([]*models.Student, error)
}

// StudentService handles student profile reads and edits
type StudentService struct {
	studentRepo studentStore
	logger      zerolog.Logger
}

// NewStudentService creates a new StudentService
func NewStudentService(studentRepo studentStore, logger zerolog.Logger) *StudentService {
	return &StudentService{studentRepo: studentRepo, logger: logger}
}

// GetOwnProfile returns the calling student's profile
func (s *StudentService) GetOwnProfile(ctx context.Context, identity *auth.Identity) (*models.Student, error) {
	if err := auth.Authorize(identity, auth.ActionEditOwnProfile, nil); err != nil {
		return nil, err
	}
	return s.studentRepo.GetByUserID(ctx, identity.UserID)
}

// UpdateOwnProfile updates the calling student's profile. College and roll
// number are staff-managed and cannot be edited here.
func (s *StudentService) UpdateOwnProfile(ctx context.Context, identity *auth.Identity, req *dto.UpdateStudentProfileRequest) (*models.Student, error) {
	if err := auth.Authorize(identity, auth.ActionEditOwnProfile, nil); err != nil {
		return nil, err
	}

	student, err := s.studentRepo.GetByUserID(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}

	student.Department = req.Department
	student.Course = req.Course
	student.PassingYear = req.PassingYear
	student.CGPA = req.CGPA
	student.Links = req.Links
	student.Skills = req.Skills

	if err := s.studentRepo.UpdateProfile(ctx, student); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("studentID", student.ID).Msg("Student profile updated")
	return student, nil
}

// ListStudents returns the active students of the caller's college
func (s *StudentService) ListStudents(ctx context.Context, identity *auth.Identity) ([]*models.Student, error) {
	if err := auth.Authorize(identity, auth.ActionViewStudents, nil); err != nil {
		return nil, err
	}
	if identity.ScopeID == nil {
		return nil, apperrors.NewForbiddenError("account is not linked to a college")
	}
	return s.studentRepo.ListByCollege(ctx, *identity.ScopeID)
}
