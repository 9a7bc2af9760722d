package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/blog-api/internal/auth"
	"github.com/inkwell/blog-api/internal/core/domain"
	"github.com/inkwell/blog-api/internal/core/ports"
)

type stubAuthService struct {
	authenticateFn func(ctx context.Context, token string) (*domain.Identity, error)
}

func (s *stubAuthService) Signup(context.Context, ports.SignupInput) (*domain.User, string, error) {
	panic("not used")
}

func (s *stubAuthService) Login(context.Context, string, string) (string, error) {
	panic("not used")
}

func (s *stubAuthService) Authenticate(ctx context.Context, token string) (*domain.Identity, error) {
	return s.authenticateFn(ctx, token)
}

func testIdentity() *domain.Identity {
	return &domain.Identity{
		User: &domain.User{ID: "1", Email: "alice@x.com", Role: domain.RoleAdmin},
		Role: domain.RoleAdmin,
	}
}

func TestAuthenticate_ValidToken(t *testing.T) {
	e := echo.New()
	svc := &stubAuthService{
		authenticateFn: func(_ context.Context, token string) (*domain.Identity, error) {
			if token != "good-token" {
				t.Fatalf("unexpected token: %s", token)
			}
			return testIdentity(), nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Authenticate(svc)(func(c echo.Context) error {
		called = true
		identity, _ := c.Get(IdentityKey).(*domain.Identity)
		if identity == nil || identity.User.Email != "alice@x.com" {
			t.Fatalf("identity not injected: %+v", identity)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestAuthenticate_Failures(t *testing.T) {
	cases := []struct {
		name    string
		header  string
		authErr error
		wantMsg string
	}{
		{"missing header", "", nil, "missing authorization header"},
		{"wrong scheme", "Token abc", nil, "invalid authorization header"},
		{"empty token", "Bearer ", nil, "invalid authorization header"},
		{"invalid token", "Bearer bad", auth.ErrInvalidToken, "invalid token"},
		{"expired token", "Bearer old", auth.ErrExpiredToken, "token has expired"},
		{"unknown user", "Bearer ghost", domain.ErrUnauthorized, "could not validate credentials"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			svc := &stubAuthService{
				authenticateFn: func(context.Context, string) (*domain.Identity, error) {
					return nil, tc.authErr
				},
			}

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			handler := Authenticate(svc)(func(c echo.Context) error {
				t.Fatalf("should not reach next")
				return nil
			})

			err := handler(c)
			he, ok := err.(*echo.HTTPError)
			if !ok {
				t.Fatalf("expected HTTPError, got %v", err)
			}
			if he.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", he.Code)
			}
			if he.Message != tc.wantMsg {
				t.Fatalf("expected message %q, got %v", tc.wantMsg, he.Message)
			}
		})
	}
}

func TestAuthenticate_StorageFaultIsNot401(t *testing.T) {
	e := echo.New()
	storageErr := context.DeadlineExceeded
	svc := &stubAuthService{
		authenticateFn: func(context.Context, string) (*domain.Identity, error) {
			return nil, storageErr
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer t")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Authenticate(svc)(func(c echo.Context) error { return nil })
	err := handler(c)
	if _, ok := err.(*echo.HTTPError); ok {
		t.Fatalf("storage fault must not be converted to an HTTP auth error")
	}
	if err != storageErr {
		t.Fatalf("expected storage error to propagate, got %v", err)
	}
}

func TestAuthenticateOptional_Anonymous(t *testing.T) {
	e := echo.New()
	svc := &stubAuthService{
		authenticateFn: func(context.Context, string) (*domain.Identity, error) {
			t.Fatalf("should not be called without a header")
			return nil, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := AuthenticateOptional(svc)(func(c echo.Context) error {
		called = true
		if c.Get(IdentityKey) != nil {
			t.Fatalf("no identity expected for anonymous request")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestAuthenticateOptional_BadTokenStillRejected(t *testing.T) {
	e := echo.New()
	svc := &stubAuthService{
		authenticateFn: func(context.Context, string) (*domain.Identity, error) {
			return nil, auth.ErrInvalidToken
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer bad")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := AuthenticateOptional(svc)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err := handler(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}
