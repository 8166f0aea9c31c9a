package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emrekoc/campushire/internal/app/models"
	"github.com/emrekoc/campushire/internal/app/models/dto"
	"github.com/emrekoc/campushire/internal/pkg/apperrors"
	pkgauth "github.com/emrekoc/campushire/internal/pkg/auth"
)

type fakeUserStore struct {
	users     map[string]*models.User
	colleges  map[int64]int64 // superadmin user ID -> college ID
	lastLogin map[int64]bool
}

func (f *fakeUserStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	user, ok := f.users[email]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserStore) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	for _, user := range f.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserStore) UpdateLastLogin(_ context.Context, userID int64) error {
	if f.lastLogin == nil {
		f.lastLogin = map[int64]bool{}
	}
	f.lastLogin[userID] = true
	return nil
}

func (f *fakeUserStore) GetAdministeredCollegeID(_ context.Context, userID int64) (int64, error) {
	collegeID, ok := f.colleges[userID]
	if !ok {
		return 0, apperrors.ErrCollegeNotFound
	}
	return collegeID, nil
}

func (f *fakeUserStore) Deactivate(_ context.Context, userID int64) error {
	for _, user := range f.users {
		if user.ID == userID {
			user.IsActive = false
			return nil
		}
	}
	return apperrors.ErrUserNotFound
}

type fakeSessionStore struct {
	sessions map[string]*models.Session
}

func (f *fakeSessionStore) Create(_ context.Context, session *models.Session) error {
	copied := *session
	f.sessions[session.ID] = &copied
	return nil
}

func (f *fakeSessionStore) Get(_ context.Context, id string) (*models.Session, error) {
	session, ok := f.sessions[id]
	if !ok {
		return nil, apperrors.ErrSessionNotFound
	}
	copied := *session
	return &copied, nil
}

func (f *fakeSessionStore) Touch(_ context.Context, id string, seenAt time.Time) error {
	if session, ok := f.sessions[id]; ok {
		session.LastSeenAt = seenAt
	}
	return nil
}

func (f *fakeSessionStore) Revoke(_ context.Context, id string) error {
	if session, ok := f.sessions[id]; ok {
		session.IsRevoked = true
	}
	return nil
}

func (f *fakeSessionStore) RevokeAllUserSessions(_ context.Context, userID int64) error {
	for _, session := range f.sessions {
		if session.UserID == userID {
			session.IsRevoked = true
		}
	}
	return nil
}

const testPassword = "secret1"

func newAuthFixture(t *testing.T) (*AuthService, *fakeUserStore, *fakeSessionStore) {
	t.Helper()

	hashed, err := pkgauth.HashPassword(testPassword)
	require.NoError(t, err)

	users := &fakeUserStore{
		users: map[string]*models.User{
			"dev@campushire.app": {ID: 1, Email: "dev@campushire.app", Password: hashed, RoleType: models.RoleDeveloper, IsActive: true},
			"rita@techu.edu":     {ID: 2, Email: "rita@techu.edu", Password: hashed, RoleType: models.RoleStudent, IsActive: true},
			"sa@techu.edu":       {ID: 3, Email: "sa@techu.edu", Password: hashed, RoleType: models.RoleSuperAdmin, IsActive: true},
			"gone@techu.edu":     {ID: 4, Email: "gone@techu.edu", Password: hashed, RoleType: models.RoleStudent, IsActive: false},
		},
		colleges: map[int64]int64{3: 7},
	}
	students := &fakeStudentStore{
		byUser: map[int64]*models.Student{2: {ID: 20, UserID: 2, CollegeID: 7}},
	}
	sessions := &fakeSessionStore{sessions: map[string]*models.Session{}}
	jwtService := pkgauth.NewJWTService(pkgauth.JWTConfig{
		SecretKey:   "test-secret",
		SessionTTL:  12 * time.Hour,
		TokenIssuer: "campushire.test",
	})

	svc := NewAuthService(users, students, sessions, jwtService, 30*time.Minute, zerolog.Nop())
	return svc, users, sessions
}

func login(t *testing.T, svc *AuthService, email string) *dto.LoginResponse {
	t.Helper()
	resp, err := svc.Login(context.Background(), &dto.LoginRequest{Email: email, Password: testPassword})
	require.NoError(t, err)
	return resp
}

func TestLoginUniformFailures(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"unknown email", "nobody@techu.edu", testPassword},
		{"wrong password", "rita@techu.edu", "wrong-password"},
		{"disabled account", "gone@techu.edu", testPassword},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(ctx, &dto.LoginRequest{Email: tt.email, Password: tt.password})
			assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
		})
	}
}

func TestLoginIssuesSessionAndRedirect(t *testing.T) {
	svc, users, sessions := newAuthFixture(t)

	resp := login(t, svc, "rita@techu.edu")
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, "/student/dashboard", resp.Redirect)
	assert.Greater(t, resp.ExpiresIn, int64(0))
	assert.Len(t, sessions.sessions, 1)
	assert.True(t, users.lastLogin[2])
}

func TestLoginRedirectPerRole(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	assert.Equal(t, "/developer/dashboard", login(t, svc, "dev@campushire.app").Redirect)
	assert.Equal(t, "/superadmin/dashboard", login(t, svc, "sa@techu.edu").Redirect)
}

func TestAuthenticateResolvesScope(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		email string
		role  models.RoleType
		scope *int64
	}{
		{"developer unscoped", "dev@campushire.app", models.RoleDeveloper, nil},
		{"student scoped to college", "rita@techu.edu", models.RoleStudent, scopeOf(7)},
		{"superadmin scoped to owned college", "sa@techu.edu", models.RoleSuperAdmin, scopeOf(7)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := login(t, svc, tt.email)
			identity, sessionID, err := svc.Authenticate(ctx, resp.AccessToken)
			require.NoError(t, err)
			assert.NotEmpty(t, sessionID)
			assert.Equal(t, tt.role, identity.Role)
			if tt.scope == nil {
				assert.Nil(t, identity.ScopeID)
			} else {
				require.NotNil(t, identity.ScopeID)
				assert.Equal(t, *tt.scope, *identity.ScopeID)
			}
		})
	}
}

func scopeOf(v int64) *int64 { return &v }

func TestLogoutRevokesImmediately(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	resp := login(t, svc, "rita@techu.edu")
	_, sessionID, err := svc.Authenticate(ctx, resp.AccessToken)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, sessionID))

	// The token's JWT expiry is hours away, but the session row is gone.
	_, _, err = svc.Authenticate(ctx, resp.AccessToken)
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}

func TestAuthenticateRejectsGarbageToken(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, _, err := svc.Authenticate(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}

func TestAuthenticateExpiredSession(t *testing.T) {
	svc, _, sessions := newAuthFixture(t)
	ctx := context.Background()

	resp := login(t, svc, "rita@techu.edu")
	for _, session := range sessions.sessions {
		session.ExpiresAt = time.Now().Add(-time.Minute)
	}

	_, _, err := svc.Authenticate(ctx, resp.AccessToken)
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}

func TestAuthenticateIdleTimeout(t *testing.T) {
	svc, _, sessions := newAuthFixture(t)
	ctx := context.Background()

	resp := login(t, svc, "rita@techu.edu")
	for _, session := range sessions.sessions {
		session.LastSeenAt = time.Now().Add(-time.Hour)
	}

	_, _, err := svc.Authenticate(ctx, resp.AccessToken)
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)

	// Idle expiry revokes the session for good.
	for _, session := range sessions.sessions {
		assert.True(t, session.IsRevoked)
	}
}

func TestAuthenticateTouchExtendsIdleWindow(t *testing.T) {
	svc, _, sessions := newAuthFixture(t)
	ctx := context.Background()

	resp := login(t, svc, "rita@techu.edu")
	for _, session := range sessions.sessions {
		session.LastSeenAt = time.Now().Add(-20 * time.Minute)
	}

	_, _, err := svc.Authenticate(ctx, resp.AccessToken)
	require.NoError(t, err)

	// Activity reset the idle clock.
	for _, session := range sessions.sessions {
		assert.WithinDuration(t, time.Now(), session.LastSeenAt, time.Minute)
	}
}

func TestDeactivateUserRevokesSessions(t *testing.T) {
	svc, users, sessions := newAuthFixture(t)
	ctx := context.Background()

	resp := login(t, svc, "rita@techu.edu")

	require.NoError(t, svc.DeactivateUser(ctx, developerIdentity(), 2))

	assert.False(t, users.users["rita@techu.edu"].IsActive)
	for _, session := range sessions.sessions {
		assert.True(t, session.IsRevoked)
	}

	_, _, err := svc.Authenticate(ctx, resp.AccessToken)
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}

func TestDeactivateUserDeveloperOnly(t *testing.T) {
	svc, users, _ := newAuthFixture(t)
	ctx := context.Background()

	err := svc.DeactivateUser(ctx, adminIdentity(7), 2)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	assert.True(t, users.users["rita@techu.edu"].IsActive)

	err = svc.DeactivateUser(ctx, developerIdentity(), 999)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestAuthenticateDeactivatedUser(t *testing.T) {
	svc, users, _ := newAuthFixture(t)
	ctx := context.Background()

	resp := login(t, svc, "rita@techu.edu")
	users.users["rita@techu.edu"].IsActive = false

	_, _, err := svc.Authenticate(ctx, resp.AccessToken)
	assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
}
