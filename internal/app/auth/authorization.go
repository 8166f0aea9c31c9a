// Package auth implements role-scoped authorization: every protected action
// declares the exact set of roles allowed to perform it, and scoped roles are
// additionally confined to resources of their own college.
package auth

import (
	"github.com/emrekoc/campushire/internal/app/models"
	"github.com/emrekoc/campushire/internal/pkg/apperrors"
)

// Identity is the authenticated principal derived from a session. It is the
// sole artifact the rest of the system trusts; it is rebuilt per request and
// never cached across requests.
type Identity struct {
	UserID   int64
	Email    string
	FullName string
	Role     models.RoleType
	ScopeID  *int64 // college the identity is confined to; nil for Developer
}

// Action identifies a protected operation
type Action string

const (
	ActionAddCollege     Action = "college:add"
	ActionListColleges   Action = "college:list"
	ActionAddSuperAdmin  Action = "superadmin:add"
	ActionManageUsers    Action = "user:manage"
	ActionManageJobs     Action = "job:manage"
	ActionViewJobs       Action = "job:view"
	ActionApplyToJob     Action = "application:apply"
	ActionShortlist      Action = "application:shortlist"
	ActionScheduleRound  Action = "application:schedule"
	ActionRecordResult   Action = "application:record"
	ActionViewApps       Action = "application:view"
	ActionEditOwnProfile Action = "student:edit"
	ActionViewStudents   Action = "student:view"
)

// permissions maps each action to the exact roles allowed to perform it.
// Membership is literal: roles never inherit each other's permissions, so a
// Developer does not pass a SuperAdmin-only check. Widening an action is a
// matter of adding a role to its set.
var permissions = map[Action][]models.RoleType{
	ActionAddCollege:     {models.RoleDeveloper},
	ActionListColleges:   {models.RoleDeveloper},
	ActionAddSuperAdmin:  {models.RoleDeveloper},
	ActionManageUsers:    {models.RoleDeveloper},
	ActionManageJobs:     {models.RoleAdmin, models.RoleSuperAdmin},
	ActionViewJobs:       {models.RoleStudent, models.RoleAdmin, models.RoleSuperAdmin},
	ActionApplyToJob:     {models.RoleStudent},
	ActionShortlist:      {models.RoleAdmin, models.RoleSuperAdmin},
	ActionScheduleRound:  {models.RoleAdmin, models.RoleSuperAdmin},
	ActionRecordResult:   {models.RoleAdmin, models.RoleSuperAdmin},
	ActionViewApps:       {models.RoleStudent, models.RoleAdmin, models.RoleSuperAdmin},
	ActionEditOwnProfile: {models.RoleStudent},
	ActionViewStudents:   {models.RoleAdmin, models.RoleSuperAdmin},
}

// AllowedRoles returns the roles permitted to perform an action
func AllowedRoles(action Action) []models.RoleType {
	return permissions[action]
}

// Authorize decides whether the identity may perform the action on a resource
// belonging to resourceScope (a college ID, or nil for unscoped resources).
// Returns nil on success, ErrUnauthenticated when no identity is present,
// ErrPermissionDenied when the role is not in the action's set, and
// ErrScopeMismatch when a scoped role reaches for another college's resource.
// A cross-scope resource is rejected outright, never silently filtered down
// to the caller's scope.
func Authorize(identity *Identity, action Action, resourceScope *int64) error {
	if identity == nil {
		return apperrors.ErrUnauthenticated
	}

	allowed := false
	for _, role := range permissions[action] {
		if identity.Role == role {
			allowed = true
			break
		}
	}
	if !allowed {
		return apperrors.ErrPermissionDenied
	}

	if !identity.Role.IsScoped() || resourceScope == nil {
		return nil
	}

	if identity.ScopeID == nil || *identity.ScopeID != *resourceScope {
		return apperrors.ErrScopeMismatch
	}

	return nil
}
