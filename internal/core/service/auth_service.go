package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/locustfarm/farm-accounts/internal/api/metrics"
	"github.com/locustfarm/farm-accounts/internal/core/domain"
	"github.com/locustfarm/farm-accounts/internal/core/ports"
)

const tokenTypeBearer = "bearer"

// AuthService implements registration, login and bearer token resolution.
type AuthService struct {
	repo   ports.UserRepository
	users  ports.UserService
	hasher ports.PasswordHasher
	tokens ports.TokenService
	log    zerolog.Logger

	// timingHash is compared against when the email is unknown, so a miss
	// costs the same bcrypt work as a wrong password.
	timingHash string
}

func NewAuthService(
	repo ports.UserRepository,
	users ports.UserService,
	hasher ports.PasswordHasher,
	tokens ports.TokenService,
	log zerolog.Logger,
) *AuthService {
	timingHash, err := hasher.Hash("locust-farm-timing-guard")
	if err != nil {
		log.Warn().Err(err).Msg("could not prepare timing guard hash")
	}
	return &AuthService{
		repo:       repo,
		users:      users,
		hasher:     hasher,
		tokens:     tokens,
		log:        log,
		timingHash: timingHash,
	}
}

// Register creates a self-service account. The role defaults to FARMER.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	return s.users.CreateUser(ctx, ports.CreateUserInput{
		Email:    input.Email,
		FullName: input.FullName,
		Password: input.Password,
		Role:     input.Role,
	})
}

// Authenticate checks credentials. Unknown email and wrong password both
// yield ErrInvalidCredentials; inactive accounts are reported only after the
// password has been verified.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			s.hasher.Verify(password, s.timingHash)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, domain.ErrAccountInactive
	}
	return user, nil
}

// Login authenticates and issues an access token. It writes nothing.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	user, err := s.Authenticate(ctx, email, password)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues(loginResult(err)).Inc()
		return nil, err
	}

	signed, exp, err := s.tokens.Issue(user.ID, s.tokens.TTL())
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("issue token: %w", err)
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	s.log.Debug().Int64("user_id", user.ID).Msg("access token issued")

	return &ports.LoginResult{
		AccessToken: signed,
		TokenType:   tokenTypeBearer,
		ExpiresAt:   exp,
		User:        user,
	}, nil
}

// ResolveCurrentUser maps a bearer token to a live, active user record.
func (s *AuthService) ResolveCurrentUser(ctx context.Context, token string) (*domain.User, error) {
	id, err := s.tokens.Verify(token)
	if err != nil {
		metrics.TokenVerificationsTotal.WithLabelValues(tokenResult(err)).Inc()
		return nil, fmt.Errorf("%w: %w", domain.ErrUnauthorized, err)
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			metrics.TokenVerificationsTotal.WithLabelValues("unknown_subject").Inc()
			return nil, fmt.Errorf("%w: subject no longer exists", domain.ErrUnauthorized)
		}
		return nil, fmt.Errorf("resolve current user: %w", err)
	}

	if !user.IsActive {
		metrics.TokenVerificationsTotal.WithLabelValues("inactive").Inc()
		return nil, domain.ErrAccountInactive
	}

	metrics.TokenVerificationsTotal.WithLabelValues("valid").Inc()
	return user, nil
}

// RequireRole fails with ErrForbidden unless user holds one of roles.
func (s *AuthService) RequireRole(user *domain.User, roles ...domain.Role) error {
	if user == nil {
		return domain.ErrUnauthorized
	}
	for _, r := range roles {
		if user.Role == r {
			return nil
		}
	}
	return domain.ErrForbidden
}

func loginResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrAccountInactive):
		return "inactive"
	default:
		return "error"
	}
}

func tokenResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrTokenExpired):
		return "expired"
	case errors.Is(err, domain.ErrTokenInvalidSignature):
		return "invalid_signature"
	default:
		return "malformed"
	}
}
