package ports

import (
	"context"
	"time"

	"github.com/locustfarm/farm-accounts/internal/core/domain"
)

// RegisterInput carries a self-registration request. An empty Role means
// domain.DefaultRole.
type RegisterInput struct {
	Email    string
	FullName string
	Password string
	Role     domain.Role
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	AccessToken string
	TokenType   string
	ExpiresAt   time.Time
	User        *domain.User
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	ResolveCurrentUser(ctx context.Context, token string) (*domain.User, error)
	RequireRole(user *domain.User, roles ...domain.Role) error
}
