package ports

import (
	"context"

	"github.com/locustfarm/farm-accounts/internal/core/domain"
)

// UserRepository defines the persistence contract for user records.
// Implementations must enforce email uniqueness themselves so that
// concurrent creates for one email cannot both succeed.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context, offset, limit int) ([]*domain.User, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, id int64, patch domain.UserPatch) (*domain.User, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// UserStore is a UserRepository with a lifecycle, owned by main.
type UserStore interface {
	UserRepository
	HealthChecker
	// Migrate creates the schema or indexes the repository relies on.
	Migrate(ctx context.Context) error
	// Reset drops all user data and recreates the schema.
	Reset(ctx context.Context) error
	Close(ctx context.Context) error
}

// HealthChecker is a dependency the readiness probe can ping.
type HealthChecker interface {
	Name() string
	Ping(ctx context.Context) error
}
