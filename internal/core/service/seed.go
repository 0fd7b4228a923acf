package service

import (
	"context"
	"errors"

	"github.com/locustfarm/farm-accounts/internal/core/domain"
	"github.com/locustfarm/farm-accounts/internal/core/ports"
)

// DemoUsers are the accounts created by `usertool seed`.
var DemoUsers = []ports.CreateUserInput{
	{Email: "admin@locust.farm", FullName: "Admin User", Password: "Admin123", Role: domain.RoleAdmin},
	{Email: "farmer@locust.farm", FullName: "Farmer User", Password: "Farmer123", Role: domain.RoleFarmer},
}

// SeedResult reports what Seed did for one input.
type SeedResult struct {
	Email   string
	Created bool
}

// Seed creates each user that does not exist yet. Existing emails are
// skipped, so running it twice is harmless.
func Seed(ctx context.Context, users ports.UserService, inputs []ports.CreateUserInput) ([]SeedResult, error) {
	results := make([]SeedResult, 0, len(inputs))
	for _, in := range inputs {
		_, err := users.CreateUser(ctx, in)
		switch {
		case err == nil:
			results = append(results, SeedResult{Email: in.Email, Created: true})
		case errors.Is(err, domain.ErrDuplicateEmail):
			results = append(results, SeedResult{Email: in.Email})
		default:
			return results, err
		}
	}
	return results, nil
}
