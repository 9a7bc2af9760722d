package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/blog-api/internal/api/metrics"
	"github.com/inkwell/blog-api/internal/auth"
	"github.com/inkwell/blog-api/internal/core/domain"
	"github.com/inkwell/blog-api/internal/core/ports"
)

// IdentityKey is the echo context key under which the resolved identity is
// stored for the remainder of the request.
const IdentityKey = "identity"

// Authenticate verifies the bearer token and resolves it to an identity
// before any handler runs. A missing or bad token ends the request with 401;
// expired tokens get their own message so clients know to refresh.
func Authenticate(authService ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := bearerToken(c)
			if err != nil {
				return err
			}
			identity, err := resolve(c, authService, token)
			if err != nil {
				return err
			}
			c.Set(IdentityKey, identity)
			return next(c)
		}
	}
}

// AuthenticateOptional resolves an identity when a bearer token is presented
// and passes the request through anonymously when none is. A token that is
// present but fails verification is still a hard 401: a client that sends
// credentials deserves to know they were rejected, not a silently degraded
// response.
func AuthenticateOptional(authService ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Header.Get("Authorization") == "" {
				return next(c)
			}
			token, err := bearerToken(c)
			if err != nil {
				return err
			}
			identity, err := resolve(c, authService, token)
			if err != nil {
				return err
			}
			c.Set(IdentityKey, identity)
			return next(c)
		}
	}
}

func bearerToken(c echo.Context) (string, error) {
	header := c.Request().Header.Get("Authorization")
	if header == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
	}
	return parts[1], nil
}

func resolve(c echo.Context, authService ports.AuthService, token string) (*domain.Identity, error) {
	identity, err := authService.Authenticate(c.Request().Context(), token)
	if err == nil {
		metrics.TokenVerificationsTotal.WithLabelValues("ok").Inc()
		return identity, nil
	}

	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		metrics.TokenVerificationsTotal.WithLabelValues("expired").Inc()
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "token has expired")
	case errors.Is(err, auth.ErrInvalidToken):
		metrics.TokenVerificationsTotal.WithLabelValues("invalid").Inc()
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	case errors.Is(err, domain.ErrUnauthorized):
		metrics.TokenVerificationsTotal.WithLabelValues("unknown_user").Inc()
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "could not validate credentials")
	}
	// Storage trouble is a 5xx, never a 401.
	return nil, err
}
