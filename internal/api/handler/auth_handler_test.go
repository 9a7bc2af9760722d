package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/inkwell/blog-api/internal/api"
	"github.com/inkwell/blog-api/internal/api/handler"
	"github.com/inkwell/blog-api/internal/api/middleware"
	"github.com/inkwell/blog-api/internal/core/domain"
	"github.com/inkwell/blog-api/internal/core/ports"
)

type stubAuthService struct {
	signupFn func(ctx context.Context, input ports.SignupInput) (*domain.User, string, error)
	loginFn  func(ctx context.Context, email, password string) (string, error)
}

func (s *stubAuthService) Signup(ctx context.Context, input ports.SignupInput) (*domain.User, string, error) {
	return s.signupFn(ctx, input)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Authenticate(context.Context, string) (*domain.Identity, error) {
	panic("not used")
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(zerolog.Nop())
	return e
}

func doJSON(e *echo.Echo, method, path, body string, h echo.HandlerFunc) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestAuthHandler_Signup_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		signupFn: func(_ context.Context, input ports.SignupInput) (*domain.User, string, error) {
			if input.Email != "a@x.com" || input.FirstName != "Ada" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.User{FirstName: input.FirstName, LastName: input.LastName, Email: input.Email, Role: domain.RoleUser}, "token123", nil
		},
	}
	h := handler.NewAuthHandler(stub)

	rec := doJSON(e, http.MethodPost, "/signup",
		`{"first_name":"Ada","last_name":"Lovelace","email":"a@x.com","password":"Secret1"}`, h.Signup)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["access_token"] != "token123" || resp["email"] != "a@x.com" {
		t.Fatalf("unexpected response: %v", resp)
	}
	if _, leaked := resp["password"]; leaked {
		t.Fatalf("password leaked in response")
	}
}

func TestAuthHandler_Signup_DuplicateEmail(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		signupFn: func(context.Context, ports.SignupInput) (*domain.User, string, error) {
			return nil, "", domain.ErrDuplicateEmail
		},
	}
	h := handler.NewAuthHandler(stub)

	rec := doJSON(e, http.MethodPost, "/signup",
		`{"first_name":"Ada","last_name":"Lovelace","email":"a@x.com","password":"Secret1"}`, h.Signup)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestAuthHandler_Signup_Validation(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		signupFn: func(context.Context, ports.SignupInput) (*domain.User, string, error) {
			t.Fatalf("service should not be called")
			return nil, "", nil
		},
	}
	h := handler.NewAuthHandler(stub)

	cases := []string{
		`not-json`,
		`{"first_name":"Ada","last_name":"L","email":"not-an-email","password":"Secret1"}`,
		`{"first_name":"Ada","last_name":"L","email":"a@x.com","password":"short"}`,
		`{"last_name":"L","email":"a@x.com","password":"Secret1"}`,
	}
	for _, body := range cases {
		rec := doJSON(e, http.MethodPost, "/signup", body, h.Signup)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for %q, got %d", body, rec.Code)
		}
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(_ context.Context, email, password string) (string, error) {
			if email != "a@x.com" || password != "Secret1" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return "token456", nil
		},
	}
	h := handler.NewAuthHandler(stub)

	rec := doJSON(e, http.MethodPost, "/login", `{"email":"a@x.com","password":"Secret1"}`, h.Login)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["access_token"] != "token456" {
		t.Fatalf("unexpected response: %v", resp)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (string, error) {
			return "", domain.ErrInvalidCredentials
		},
	}
	h := handler.NewAuthHandler(stub)

	rec := doJSON(e, http.MethodPost, "/login", `{"email":"a@x.com","password":"Wrong"}`, h.Login)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "invalid credentials") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestAuthHandler_Me(t *testing.T) {
	e := newTestEcho()
	h := handler.NewAuthHandler(&stubAuthService{})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.IdentityKey, &domain.Identity{
		User: &domain.User{ID: "1", FirstName: "Ada", Email: "a@x.com", Role: domain.RoleUser, PasswordHash: "hash"},
		Role: domain.RoleUser,
	})

	if err := h.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "hash") {
		t.Fatalf("password hash leaked in response: %s", rec.Body.String())
	}
}

func TestAuthHandler_Me_NoIdentity(t *testing.T) {
	e := newTestEcho()
	h := handler.NewAuthHandler(&stubAuthService{})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Me(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}
