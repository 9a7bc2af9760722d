package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/inkwell/blog-api/internal/core/domain"
)

// DefaultTokenTTL bounds a token's lifetime when the caller does not pick one.
// Expiry is the only invalidation mechanism; there is no revocation list.
const DefaultTokenTTL = 15 * time.Minute

var (
	// ErrExpiredToken is returned for a structurally valid, correctly signed
	// token whose exp claim has passed.
	ErrExpiredToken = errors.New("token has expired")
	// ErrInvalidToken covers everything else: bad signature, malformed
	// structure, wrong algorithm, or an out-of-range role claim.
	ErrInvalidToken = errors.New("invalid token")
)

// Claims is the verified payload of a bearer token.
type Claims struct {
	// Subject is the user's unique email.
	Subject string
	// Role is the role claim as issued, empty when the token carries none.
	Role string
	// ExpiresAt is the absolute expiry embedded in the token.
	ExpiresAt time.Time
}

type tokenClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role,omitempty"`
}

// TokenService issues and verifies HS256-signed bearer tokens. The secret is
// injected at construction; there is deliberately no default.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService builds a TokenService signing with secret. ttl <= 0 falls
// back to DefaultTokenTTL.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token for subject with an absolute expiry of now + ttl.
// role may be empty; ttl <= 0 uses the service default.
func (s *TokenService) Issue(subject, role string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = s.ttl
	}
	now := s.now()
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Role: role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks signature, structure and expiry of a token string and returns
// its claims. Expiry is reported as ErrExpiredToken, every other failure as
// ErrInvalidToken. Tokens signed with any algorithm other than HS256 are
// rejected outright, as are role claims outside the known role set.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	var claims tokenClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	if claims.Role != "" && !domain.ValidRole(claims.Role) {
		return nil, ErrInvalidToken
	}

	out := &Claims{Subject: claims.Subject, Role: claims.Role}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}
