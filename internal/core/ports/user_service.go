package ports

import (
	"context"

	"github.com/locustfarm/farm-accounts/internal/core/domain"
)

// CreateUserInput carries everything needed to create a user record.
type CreateUserInput struct {
	Email    string
	FullName string
	Password string
	Role     domain.Role
}

const (
	// DefaultPageLimit is used when a list request does not specify a limit.
	DefaultPageLimit = 100
	// MaxPageLimit caps the page size of a list request.
	MaxPageLimit = 1000
)

// ListUsersInput is an offset/limit page request.
type ListUsersInput struct {
	Skip  int
	Limit int
}

// UserPage is one page of users plus the total number of records.
type UserPage struct {
	Items []*domain.User
	Total int64
	Skip  int
	Limit int
}

// UserService defines the user management use cases. Methods taking an
// actor apply the self-protection rules against that actor.
type UserService interface {
	CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error)
	UpdateSelf(ctx context.Context, actor *domain.User, fullName domain.Optional[string]) (*domain.User, error)
	ListUsers(ctx context.Context, input ListUsersInput) (*UserPage, error)
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	UpdateUser(ctx context.Context, actor *domain.User, id int64, patch domain.UserPatch) (*domain.User, error)
	DeleteUser(ctx context.Context, actor *domain.User, id int64) error
}
