package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/blog-api/internal/api/middleware"
	"github.com/inkwell/blog-api/internal/core/domain"
)

// ctxIdentity extracts the identity injected by the Authenticate middleware.
// Its presence proves the middleware ran; a nil identity on a guarded route
// means the route was wired without the gate, which is a bug, but we answer
// 401 rather than proceed.
func ctxIdentity(c echo.Context) (*domain.Identity, error) {
	identity, _ := c.Get(middleware.IdentityKey).(*domain.Identity)
	if identity == nil || identity.User == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return identity, nil
}

// ctxIdentityOptional returns the identity when one was resolved and nil for
// anonymous requests. Used by public read endpoints that widen results for
// authenticated callers.
func ctxIdentityOptional(c echo.Context) *domain.Identity {
	identity, _ := c.Get(middleware.IdentityKey).(*domain.Identity)
	return identity
}
