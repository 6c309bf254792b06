package mock

import (
	"context"

	"github.com/fwojciec/sitechat"
)

var _ sitechat.UserService = (*UserService)(nil)

// UserService is a mock implementation of sitechat.UserService.
type UserService struct {
	CreateUserFn   func(ctx context.Context, email, password string) (*sitechat.User, error)
	AuthenticateFn func(ctx context.Context, email, password string) (*sitechat.User, error)
	FindUserByIDFn func(ctx context.Context, id string) (*sitechat.User, error)
}

func (s *UserService) CreateUser(ctx context.Context, email, password string) (*sitechat.User, error) {
	return s.CreateUserFn(ctx, email, password)
}

func (s *UserService) Authenticate(ctx context.Context, email, password string) (*sitechat.User, error) {
	return s.AuthenticateFn(ctx, email, password)
}

func (s *UserService) FindUserByID(ctx context.Context, id string) (*sitechat.User, error) {
	return s.FindUserByIDFn(ctx, id)
}
