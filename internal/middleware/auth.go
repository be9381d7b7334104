package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/appointment-services/internal/domain/identity"
	"github.com/BruksfildServices01/appointment-services/internal/httperr"
)

const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
)

// Authenticator turns a bearer token into the caller identity, role included.
// A rejected token is reported with an unauthorized business error.
type Authenticator interface {
	Authenticate(ctx context.Context, raw string) (identity.Actor, error)
}

func AuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, "missing_authorization_header", "authorization header is required")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthorized(c, "invalid_authorization_header", "expected a bearer token")
			c.Abort()
			return
		}

		actor, err := auth.Authenticate(c.Request.Context(), strings.TrimSpace(parts[1]))
		if err != nil {
			if !httperr.IsKind(err, httperr.KindUnauthorized) {
				httperr.Respond(c, err)
				return
			}
			httperr.Unauthorized(c, "invalid_token", "token is invalid or expired")
			c.Abort()
			return
		}

		c.Set(ContextUserID, actor.UserID)
		c.Set(ContextUserRole, actor.Role)

		c.Next()
	}
}

// RequireRole lets through only callers holding one of roles. It must run
// after AuthMiddleware.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextUserRole)
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}
		httperr.Forbidden(c, "forbidden", "insufficient permissions")
		c.Abort()
	}
}
