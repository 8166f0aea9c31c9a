package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emrekoc/campushire/internal/app/auth"
	"github.com/emrekoc/campushire/internal/app/models"
	"github.com/emrekoc/campushire/internal/app/models/dto"
	pkgauth "github.com/emrekoc/campushire/internal/pkg/auth"
)

// Context keys for the authenticated request
const (
	ContextIdentity  = "identity"
	ContextSessionID = "sessionID"
)

// Authenticator validates a bearer token into a live identity
type Authenticator interface {
	Authenticate(ctx context.Context, tokenString string) (*auth.Identity, string, error)
}

// SessionAuth validates the bearer token and its backing session row on every
// request. A valid JWT whose session was revoked, expired or idled out is
// rejected; the token alone never grants access.
func SessionAuth(authenticator Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := pkgauth.ExtractBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			abortUnauthorized(c)
			return
		}

		identity, sessionID, err := authenticator.Authenticate(c.Request.Context(), tokenString)
		if err != nil {
			HandleAPIError(c, err)
			c.Abort()
			return
		}

		c.Set(ContextIdentity, identity)
		c.Set(ContextSessionID, sessionID)
		c.Next()
	}
}

// RoleRequired rejects requests whose identity is not one of the given roles.
// Exact membership, no hierarchy: a Developer does not pass a staff check.
func RoleRequired(roles ...models.RoleType) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := IdentityFromContext(c)
		if identity == nil {
			abortUnauthorized(c)
			return
		}

		for _, role := range roles {
			if identity.Role == role {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeForbidden, "Permission denied")))
		c.Abort()
	}
}

// IdentityFromContext returns the authenticated identity, or nil when the
// request did not pass SessionAuth
func IdentityFromContext(c *gin.Context) *auth.Identity {
	value, exists := c.Get(ContextIdentity)
	if !exists {
		return nil
	}
	identity, ok := value.(*auth.Identity)
	if !ok {
		return nil
	}
	return identity
}

// SessionIDFromContext returns the session ID behind the request's token
func SessionIDFromContext(c *gin.Context) string {
	value, exists := c.Get(ContextSessionID)
	if !exists {
		return ""
	}
	sessionID, _ := value.(string)
	return sessionID
}

func abortUnauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
		dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
	c.Abort()
}
