package services

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/emrekoc/campushire/internal/app/auth"
	"github.com/emrekoc/campushire/internal/app/models"
	"github.com/emrekoc/campushire/internal/app/models/dto"
	"github.com/emrekoc/campushire/internal/db"
	"github.com/emrekoc/campushire/internal/pkg/apperrors"
	pkgauth "github.com/emrekoc/campushire/internal/pkg/auth"
	"github.com/emrekoc/campushire/internal/pkg/validation"
)

// collegeStore is the part of the college repository the service needs
type collegeStore interface {
	Create(ctx context.Context, college *models.College) error
	GetByID(ctx context.Context, id int64) (*models.College, error)
	ExistsByNameOrEmail(ctx context.Context, name, contactEmail string) (bool, error)
	ListWithSuperAdmin(ctx context.Context) ([]*models.College, error)
	AssignSuperAdminTx(ctx context.Context, tx pgx.Tx, collegeID, userID int64) error
}

// collegeUserStore is the part of the user repository the service needs
type collegeUserStore interface {
	EmailExists(ctx context.Context, email string) (bool, error)
	CreateUserTx(ctx context.Context, tx pgx.Tx, user *models.User) (int64, error)
}

// txRunner runs a function inside a database transaction
type txRunner interface {
	WithTransaction(ctx context.Context, fn db.TransactionFn) error
}

// CollegeService handles college onboarding, a Developer-only surface
type CollegeService struct {
	collegeRepo collegeStore
	userRepo    collegeUserStore
	tx          txRunner
	logger      zerolog.Logger
}

// NewCollegeService creates a new CollegeService
func NewCollegeService(collegeRepo collegeStore, userRepo collegeUserStore, tx txRunner, logger zerolog.Logger) *CollegeService {
	return &CollegeService{
		collegeRepo: collegeRepo,
		userRepo:    userRepo,
		tx:          tx,
		logger:      logger,
	}
}

// AddCollege registers a new college. Name and contact email must both be
// unused: the legacy system treated either collision as a duplicate.
func (s *CollegeService) AddCollege(ctx context.Context, identity *auth.Identity, req *dto.AddCollegeRequest) (*models.College, error) {
	if err := auth.Authorize(identity, auth.ActionAddCollege, nil); err != nil {
		return nil, err
	}

	if !validation.IsValidPhone(req.ContactPhone) {
		return nil, apperrors.NewBadRequestError("contact phone must be a valid phone number")
	}
	if !validation.NewStringValidation(req.Website).WithRequired(false).WithMaxLength(255).Validate() {
		return nil, apperrors.NewBadRequestError("website must be at most 255 characters")
	}

	exists, err := s.collegeRepo.ExistsByNameOrEmail(ctx, req.CollegeName, req.ContactEmail)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrCollegeAlreadyExists
	}

	college := &models.College{
		Name:         req.CollegeName,
		Address:      req.Address,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
	}
	if req.Website != "" {
		college.Website = &req.Website
	}

	if err := s.collegeRepo.Create(ctx, college); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("collegeID", college.ID).Str("name", college.Name).Msg("College registered")
	return college, nil
}

// AddSuperAdmin creates a SuperAdmin account and links it to its college in
// one transaction. A college never ends up referencing a user that was not
// persisted, and vice versa.
func (s *CollegeService) AddSuperAdmin(ctx context.Context, identity *auth.Identity, req *dto.AddSuperAdminRequest) (int64, error) {
	if err := auth.Authorize(identity, auth.ActionAddSuperAdmin, nil); err != nil {
		return 0, err
	}

	if !validation.IsValidPhone(req.Phone) {
		return 0, apperrors.NewBadRequestError("phone must be a valid phone number")
	}

	college, err := s.collegeRepo.GetByID(ctx, req.CollegeID)
	if err != nil {
		return 0, err
	}
	if college.SuperAdminID != nil {
		return 0, apperrors.NewConflictError("college already has a superadmin")
	}

	exists, err := s.userRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, apperrors.ErrEmailAlreadyExists
	}

	hashed, err := pkgauth.HashPassword(req.Password)
	if err != nil {
		return 0, err
	}

	user := &models.User{
		Email:    req.Email,
		Password: hashed,
		FullName: req.FullName,
		Phone:    req.Phone,
		RoleType: models.RoleSuperAdmin,
		IsActive: true,
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := s.userRepo.CreateUserTx(ctx, tx, user); err != nil {
			return err
		}
		return s.collegeRepo.AssignSuperAdminTx(ctx, tx, req.CollegeID, user.ID)
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info().Int64("userID", user.ID).Int64("collegeID", req.CollegeID).Msg("SuperAdmin created")
	return user.ID, nil
}

// ListColleges returns every college with its SuperAdmin's name
func (s *CollegeService) ListColleges(ctx context.Context, identity *auth.Identity) ([]*models.College, error) {
	if err := auth.Authorize(identity, auth.ActionListColleges, nil); err != nil {
		return nil, err
	}
	return s.collegeRepo.ListWithSuperAdmin(ctx)
}
