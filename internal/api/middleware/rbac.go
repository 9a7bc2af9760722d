package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/blog-api/internal/core/domain"
)

// RequireRole enforces role-based access control on routes that already ran
// Authenticate. The caller is known at this point, so a mismatch is 403, not
// 401. With no roles given, any authenticated identity passes.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, _ := c.Get(IdentityKey).(*domain.Identity)
			if identity == nil || identity.User == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "could not validate credentials")
			}
			if len(roles) == 0 {
				return next(c)
			}
			for _, role := range roles {
				if domain.Authorize(identity, role) == nil {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, "access forbidden")
		}
	}
}
