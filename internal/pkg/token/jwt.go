// Package token issues and verifies the HS256 bearer tokens handed out by
// the login endpoint. The subject claim is the decimal user id.
package token

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/locustfarm/farm-accounts/internal/core/domain"
)

const (
	DefaultTTL    = 30 * time.Minute
	DefaultIssuer = "locust-farm"
)

// Service signs and validates access tokens with a shared secret.
type Service struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// Option customises a Service.
type Option func(*Service)

// WithClock overrides the time source, used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService builds a token service. An empty secret is rejected; a
// non-positive ttl or empty issuer falls back to the defaults.
func NewService(secret, issuer string, ttl time.Duration, opts ...Option) (*Service, error) {
	trimmed := strings.TrimSpace(secret)
	if trimmed == "" {
		return nil, errors.New("jwt secret must not be empty")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if strings.TrimSpace(issuer) == "" {
		issuer = DefaultIssuer
	}
	s := &Service{
		secret: []byte(trimmed),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// TTL is the configured lifetime of access tokens.
func (s *Service) TTL() time.Duration { return s.ttl }

// Issue signs a token for subjectID that expires at now+ttl. The ttl is
// taken as given: zero or negative produces a token that is already expired.
func (s *Service) Issue(subjectID int64, ttl time.Duration) (string, time.Time, error) {
	if subjectID <= 0 {
		return "", time.Time{}, errors.New("invalid subject for token")
	}
	now := s.now().UTC()
	exp := now.Add(ttl)

	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(subjectID, 10),
		Issuer:    s.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// Verify returns the subject id of a valid token. Failures are always one of
// domain.ErrTokenExpired, domain.ErrTokenInvalidSignature or
// domain.ErrTokenMalformed.
func (s *Service) Verify(raw string) (int64, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)

	claims := &jwt.RegisteredClaims{}
	tkn, err := parser.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return 0, classify(err)
	}
	if !tkn.Valid {
		return 0, domain.ErrTokenMalformed
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrTokenMalformed
	}
	return id, nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return domain.ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return domain.ErrTokenInvalidSignature
	default:
		return domain.ErrTokenMalformed
	}
}
