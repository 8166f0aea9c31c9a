package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/emrekoc/campushire/internal/app/auth"
	"github.com/emrekoc/campushire/internal/app/models"
	"github.com/emrekoc/campushire/internal/app/models/dto"
	"github.com/emrekoc/campushire/internal/pkg/apperrors"
	pkgauth "github.com/emrekoc/campushire/internal/pkg/auth"
)

// userStore is the part of the user repository the auth service needs
type userStore interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	UpdateLastLogin(ctx context.Context, userID int64) error
	GetAdministeredCollegeID(ctx context.Context, userID int64) (int64, error)
	Deactivate(ctx context.Context, userID int64) error
}

// studentScopeStore resolves a student's college for scope binding
type studentScopeStore interface {
	GetByUserID(ctx context.Context, userID int64) (*models.Student, error)
}

// sessionStore is the server-side session table
type sessionStore interface {
	Create(ctx context.Context, session *models.Session) error
	Get(ctx context.Context, id string) (*models.Session, error)
	Touch(ctx context.Context, id string, seenAt time.Time) error
	Revoke(ctx context.Context, id string) error
	RevokeAllUserSessions(ctx context.Context, userID int64) error
}

// AuthService handles login, logout and per-request session validation
type AuthService struct {
	userRepo    userStore
	studentRepo studentScopeStore
	sessionRepo sessionStore
	jwtService  *pkgauth.JWTService
	idleTimeout time.Duration
	logger      zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo userStore,
	studentRepo studentScopeStore,
	sessionRepo sessionStore,
	jwtService *pkgauth.JWTService,
	idleTimeout time.Duration,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		studentRepo: studentRepo,
		sessionRepo: sessionRepo,
		jwtService:  jwtService,
		idleTimeout: idleTimeout,
		logger:      logger,
	}
}

// Login verifies credentials and opens a session. Unknown email, wrong
// password and disabled account all produce ErrInvalidCredentials: the
// response never reveals which check failed.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive {
		s.logger.Warn().Int64("userID", user.ID).Msg("Login attempt on disabled account")
		return nil, apperrors.ErrInvalidCredentials
	}

	if !pkgauth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	now := time.Now()
	session := &models.Session{
		ID:         pkgauth.NewSessionID(),
		UserID:     user.ID,
		ExpiresAt:  s.jwtService.SessionExpiry(),
		LastSeenAt: now,
		CreatedAt:  now,
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	token, err := s.jwtService.GenerateSessionToken(user.ID, session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		// Login already succeeded; losing the timestamp is not worth failing it.
		s.logger.Warn().Err(err).Int64("userID", user.ID).Msg("Failed to update last login time")
	}

	s.logger.Info().Int64("userID", user.ID).Str("role", string(user.RoleType)).Msg("User logged in")

	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(time.Until(session.ExpiresAt).Seconds()),
		Redirect:    user.RoleType.DashboardPath(),
	}, nil
}

// Logout revokes the session immediately. The access token stops working on
// the next request even though its JWT expiry lies in the future.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessionRepo.Revoke(ctx, sessionID); err != nil {
		return err
	}
	s.logger.Info().Str("sessionID", sessionID).Msg("Session revoked")
	return nil
}

// DeactivateUser disables an account and revokes all of its live sessions.
// Accounts are never deleted; the user's history stays intact.
func (s *AuthService) DeactivateUser(ctx context.Context, identity *auth.Identity, userID int64) error {
	if err := auth.Authorize(identity, auth.ActionManageUsers, nil); err != nil {
		return err
	}

	if err := s.userRepo.Deactivate(ctx, userID); err != nil {
		return err
	}
	if err := s.sessionRepo.RevokeAllUserSessions(ctx, userID); err != nil {
		return err
	}

	s.logger.Info().Int64("userID", userID).Msg("User deactivated")
	return nil
}

// Authenticate turns a bearer token into a live identity. The JWT signature
// only gets the request as far as the session lookup: the session row must
// exist, be unrevoked, be within its absolute lifetime and not idle-expired.
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (*auth.Identity, string, error) {
	claims, err := s.jwtService.ValidateAndExtractClaims(tokenString)
	if err != nil {
		return nil, "", apperrors.ErrUnauthenticated
	}

	session, err := s.sessionRepo.Get(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, apperrors.ErrSessionNotFound) {
			return nil, "", apperrors.ErrUnauthenticated
		}
		return nil, "", err
	}

	now := time.Now()
	if session.IsRevoked || now.After(session.ExpiresAt) {
		return nil, "", apperrors.ErrUnauthenticated
	}
	if s.idleTimeout > 0 && now.Sub(session.LastSeenAt) > s.idleTimeout {
		// Expired by inactivity; revoke so later requests fail fast.
		if err := s.sessionRepo.Revoke(ctx, session.ID); err != nil {
			s.logger.Warn().Err(err).Str("sessionID", session.ID).Msg("Failed to revoke idle session")
		}
		return nil, "", apperrors.ErrUnauthenticated
	}

	user, err := s.userRepo.GetUserByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, "", apperrors.ErrUnauthenticated
		}
		return nil, "", err
	}
	if !user.IsActive {
		return nil, "", apperrors.ErrAccountDisabled
	}

	if err := s.sessionRepo.Touch(ctx, session.ID, now); err != nil {
		s.logger.Warn().Err(err).Str("sessionID", session.ID).Msg("Failed to touch session")
	}

	// Scope is resolved fresh on every request, not trusted from the token:
	// a student moved between colleges is confined correctly immediately.
	scopeID, err := s.resolveScope(ctx, user)
	if err != nil {
		return nil, "", err
	}

	identity := &auth.Identity{
		UserID:   user.ID,
		Email:    user.Email,
		FullName: user.FullName,
		Role:     user.RoleType,
		ScopeID:  scopeID,
	}
	return identity, session.ID, nil
}

// resolveScope binds a user to the college their role confines them to.
// Developer is the only unscoped role.
func (s *AuthService) resolveScope(ctx context.Context, user *models.User) (*int64, error) {
	switch user.RoleType {
	case models.RoleDeveloper:
		return nil, nil
	case models.RoleStudent:
		student, err := s.studentRepo.GetByUserID(ctx, user.ID)
		if err != nil {
			if errors.Is(err, apperrors.ErrStudentNotFound) {
				s.logger.Error().Int64("userID", user.ID).Msg("Student account without student record")
				return nil, fmt.Errorf("%w: student account %d has no student record", apperrors.ErrConsistency, user.ID)
			}
			return nil, err
		}
		return &student.CollegeID, nil
	case models.RoleSuperAdmin:
		collegeID, err := s.userRepo.GetAdministeredCollegeID(ctx, user.ID)
		if err != nil {
			if errors.Is(err, apperrors.ErrCollegeNotFound) {
				// SuperAdmin not yet linked to a college: scoped actions will
				// be denied until the link exists.
				return nil, nil
			}
			return nil, err
		}
		return &collegeID, nil
	default:
		// Admin and Company carry their college directly on the account.
		return user.CollegeID, nil
	}
}
