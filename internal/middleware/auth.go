package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-admin/internal/auth"
	"github.com/BruksfildServices01/barber-admin/internal/httperr"
)

const ContextPrincipal = "principal"

// Authenticator resolves the principal behind an Authorization header.
type Authenticator interface {
	Authenticate(ctx context.Context, authorization string) (auth.Principal, error)
}

// AuthMiddleware rejects the request unless it carries a bearer token for a user
// that still exists. The resolved principal is stored under ContextPrincipal.
func AuthMiddleware(authn Authenticator, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := authn.Authenticate(c.Request.Context(), c.GetHeader("Authorization"))
		if err != nil {
			if auth.IsUnauthenticated(err) {
				log.Debug("request rejected", zap.String("path", c.FullPath()), zap.Error(err))
				httperr.Unauthorized(c, "unauthorized", "Unauthorized")
				return
			}

			log.Error("authenticate request", zap.String("path", c.FullPath()), zap.Error(err))
			httperr.Internal(c, "internal_error", "Internal server error")
			return
		}

		c.Set(ContextPrincipal, p)
		c.Next()
	}
}

// RequireRoles admits the request only if the authenticated principal's role is in
// allowed. It must run after AuthMiddleware.
func RequireRoles(allowed auth.AllowList) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := PrincipalFrom(c)
		if !ok || !allowed.Permits(p) {
			httperr.Forbidden(c, "forbidden", "Forbidden resource")
			return
		}
		c.Next()
	}
}

func PrincipalFrom(c *gin.Context) (auth.Principal, bool) {
	v, exists := c.Get(ContextPrincipal)
	if !exists {
		return auth.Principal{}, false
	}
	p, ok := v.(auth.Principal)
	return p, ok
}
