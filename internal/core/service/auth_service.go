package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/inkwell/blog-api/internal/api/metrics"
	"github.com/inkwell/blog-api/internal/auth"
	"github.com/inkwell/blog-api/internal/core/domain"
	"github.com/inkwell/blog-api/internal/core/ports"
)

// AuthService implements signup, login and token-to-identity resolution.
type AuthService struct {
	users  ports.UserRepository
	roles  ports.RoleRepository
	hasher *auth.Hasher
	tokens *auth.TokenService
	logger zerolog.Logger
}

func NewAuthService(users ports.UserRepository, roles ports.RoleRepository, hasher *auth.Hasher, tokens *auth.TokenService, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, roles: roles, hasher: hasher, tokens: tokens, logger: logger}
}

// Signup registers a new account under the default user role and returns the
// created user together with a fresh token. Uniqueness of the email is
// enforced by the repository, not by a read-then-write check.
func (s *AuthService) Signup(ctx context.Context, input ports.SignupInput) (*domain.User, string, error) {
	role, err := s.roles.FindByName(ctx, domain.RoleUser)
	if err != nil {
		metrics.SignupsTotal.WithLabelValues("error").Inc()
		return nil, "", err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		metrics.SignupsTotal.WithLabelValues("error").Inc()
		return nil, "", err
	}

	now := time.Now().UTC()
	user := &domain.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         role.Name,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			metrics.SignupsTotal.WithLabelValues("duplicate_email").Inc()
		} else {
			metrics.SignupsTotal.WithLabelValues("error").Inc()
		}
		return nil, "", err
	}

	token, err := s.tokens.Issue(created.Email, created.Role, 0)
	if err != nil {
		metrics.SignupsTotal.WithLabelValues("error").Inc()
		return nil, "", err
	}

	metrics.SignupsTotal.WithLabelValues("created").Inc()
	s.logger.Info().Str("email", created.Email).Msg("user registered")
	return created, token, nil
}

// Login verifies credentials and issues a token carrying the user's role.
// Unknown email and wrong password both come back as ErrInvalidCredentials so
// the response never reveals which half was wrong.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
			return "", domain.ErrInvalidCredentials
		}
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return "", err
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		// Corrupt stored hash. The client sees a plain credential failure,
		// but this needs operator attention.
		s.logger.Error().Err(err).Str("email", email).Msg("stored password hash is malformed")
	}
	if !ok {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.Email, user.Role, 0)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return "", err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return token, nil
}

// Authenticate verifies a bearer token and resolves it to a live identity.
// Token failures keep their distinct errors (expired vs invalid) for logging
// and response messages; a verified token whose subject no longer exists is
// collapsed into ErrUnauthorized so nothing leaks about account existence.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.Identity, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}

	return &domain.Identity{User: user, Role: user.Role}, nil
}
