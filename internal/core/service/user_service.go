package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/locustfarm/farm-accounts/internal/api/metrics"
	"github.com/locustfarm/farm-accounts/internal/core/domain"
	"github.com/locustfarm/farm-accounts/internal/core/ports"
)

// bcrypt only reads the first 72 bytes of a password.
const maxPasswordBytes = 72

// UserService implements user creation and administration.
type UserService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	log    zerolog.Logger
}

func NewUserService(repo ports.UserRepository, hasher ports.PasswordHasher, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, hasher: hasher, log: log}
}

// CreateUser hashes the password and persists a new active user.
func (s *UserService) CreateUser(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" || input.Password == "" || strings.TrimSpace(input.FullName) == "" {
		return nil, domain.NewValidationError("email, full_name and password are required")
	}
	if len(input.Password) > maxPasswordBytes {
		return nil, domain.NewValidationError("password must be at most 72 bytes")
	}
	role := input.Role
	if role == "" {
		role = domain.DefaultRole
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, domain.ErrInvalidRole)
	}

	start := time.Now()
	hash, err := s.hasher.Hash(input.Password)
	metrics.PasswordHashDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.User{
		Email:        email,
		FullName:     input.FullName,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	metrics.UsersCreatedTotal.WithLabelValues(created.Role.String()).Inc()
	s.log.Info().Int64("user_id", created.ID).Str("role", created.Role.String()).Msg("user created")
	return created, nil
}

// UpdateSelf changes the actor's own full name. No other field is reachable
// through this path.
func (s *UserService) UpdateSelf(ctx context.Context, actor *domain.User, fullName domain.Optional[string]) (*domain.User, error) {
	if actor == nil {
		return nil, domain.ErrUnauthorized
	}
	patch := domain.UserPatch{FullName: fullName}
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return s.repo.FindByID(ctx, actor.ID)
	}
	return s.repo.Update(ctx, actor.ID, patch)
}

// ListUsers returns users in id order. A zero limit yields an empty page and
// limits above ports.MaxPageLimit are clamped to it.
func (s *UserService) ListUsers(ctx context.Context, input ports.ListUsersInput) (*ports.UserPage, error) {
	if input.Skip < 0 {
		return nil, domain.NewValidationError("skip must not be negative")
	}
	if input.Limit < 0 {
		return nil, domain.NewValidationError("limit must not be negative")
	}
	if input.Limit > ports.MaxPageLimit {
		input.Limit = ports.MaxPageLimit
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	items := []*domain.User{}
	if input.Limit > 0 {
		items, err = s.repo.List(ctx, input.Skip, input.Limit)
		if err != nil {
			return nil, fmt.Errorf("list users: %w", err)
		}
	}

	return &ports.UserPage{
		Items: items,
		Total: total,
		Skip:  input.Skip,
		Limit: input.Limit,
	}, nil
}

func (s *UserService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateUser applies an admin patch. An admin cannot deactivate themselves.
func (s *UserService) UpdateUser(ctx context.Context, actor *domain.User, id int64, patch domain.UserPatch) (*domain.User, error) {
	if actor == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if active, ok := patch.IsActive.Get(); ok && !active && id == actor.ID {
		return nil, domain.ErrCannotDeactivateSelf
	}

	if patch.IsEmpty() {
		return existing, nil
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.log.Info().Int64("user_id", id).Int64("actor_id", actor.ID).Msg("user updated")
	return updated, nil
}

// DeleteUser removes a user. An admin cannot delete themselves.
func (s *UserService) DeleteUser(ctx context.Context, actor *domain.User, id int64) error {
	if actor == nil {
		return domain.ErrUnauthorized
	}
	if id == actor.ID {
		return domain.ErrCannotDeleteSelf
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if !deleted {
		return domain.ErrUserNotFound
	}

	metrics.UsersDeletedTotal.Inc()
	s.log.Info().Int64("user_id", id).Int64("actor_id", actor.ID).Msg("user deleted")
	return nil
}

// isNotFound is shared by the auth flow, which folds a missing subject into
// an authentication failure.
func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrUserNotFound)
}
