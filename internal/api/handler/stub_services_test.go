package handler

import (
	"context"
	"errors"

	"github.com/locustfarm/farm-accounts/internal/core/domain"
	"github.com/locustfarm/farm-accounts/internal/core/ports"
)

var errNotStubbed = errors.New("not stubbed")

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*domain.User, error)
	loginFn    func(ctx context.Context, email, password string) (*ports.LoginResult, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if s.registerFn == nil {
		return nil, errNotStubbed
	}
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Authenticate(context.Context, string, string) (*domain.User, error) {
	return nil, errNotStubbed
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	if s.loginFn == nil {
		return nil, errNotStubbed
	}
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) ResolveCurrentUser(context.Context, string) (*domain.User, error) {
	return nil, errNotStubbed
}

func (s *stubAuthService) RequireRole(*domain.User, ...domain.Role) error {
	return errNotStubbed
}

type stubUserService struct {
	createFn     func(ctx context.Context, in ports.CreateUserInput) (*domain.User, error)
	updateSelfFn func(ctx context.Context, actor *domain.User, fullName domain.Optional[string]) (*domain.User, error)
	listFn       func(ctx context.Context, in ports.ListUsersInput) (*ports.UserPage, error)
	getFn        func(ctx context.Context, id int64) (*domain.User, error)
	updateFn     func(ctx context.Context, actor *domain.User, id int64, patch domain.UserPatch) (*domain.User, error)
	deleteFn     func(ctx context.Context, actor *domain.User, id int64) error
}

func (s *stubUserService) CreateUser(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	if s.createFn == nil {
		return nil, errNotStubbed
	}
	return s.createFn(ctx, in)
}

func (s *stubUserService) UpdateSelf(ctx context.Context, actor *domain.User, fullName domain.Optional[string]) (*domain.User, error) {
	if s.updateSelfFn == nil {
		return nil, errNotStubbed
	}
	return s.updateSelfFn(ctx, actor, fullName)
}

func (s *stubUserService) ListUsers(ctx context.Context, in ports.ListUsersInput) (*ports.UserPage, error) {
	if s.listFn == nil {
		return nil, errNotStubbed
	}
	return s.listFn(ctx, in)
}

func (s *stubUserService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	if s.getFn == nil {
		return nil, errNotStubbed
	}
	return s.getFn(ctx, id)
}

func (s *stubUserService) UpdateUser(ctx context.Context, actor *domain.User, id int64, patch domain.UserPatch) (*domain.User, error) {
	if s.updateFn == nil {
		return nil, errNotStubbed
	}
	return s.updateFn(ctx, actor, id, patch)
}

func (s *stubUserService) DeleteUser(ctx context.Context, actor *domain.User, id int64) error {
	if s.deleteFn == nil {
		return errNotStubbed
	}
	return s.deleteFn(ctx, actor, id)
}
