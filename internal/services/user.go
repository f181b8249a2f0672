package services

import (
	"context"

	"github.com/campushire/apiserver/types"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id int) (types.User, error)
	GetByEmail(ctx context.Context, email string) (types.User, error)
	List(ctx context.Context) ([]types.User, error)
	Create(ctx context.Context, user types.User) (types.User, error)
	Update(ctx context.Context, user types.User) (types.User, error)
	Delete(ctx context.Context, id int) error
}

// UserService encapsulates user account use-cases. Role gating for the
// admin-only operations happens at the router; the service itself is
// also used by the auth handlers and the role middleware.
type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) GetByID(ctx context.Context, id int) (types.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (types.User, error) {
	return s.repo.GetByEmail(ctx, email)
}

func (s *UserService) List(ctx context.Context) ([]types.User, error) {
	return s.repo.List(ctx)
}

// Register creates the account together with its empty profile as one
// unit (the repository runs both inserts in a transaction).
func (s *UserService) Register(ctx context.Context, user types.User) (types.User, error) {
	return s.repo.Create(ctx, user)
}

// Update applies admin edits to an account. Only non-zero fields of
// changes are applied; the password hash is never changed here.
func (s *UserService) Update(ctx context.Context, id int, changes types.User) (types.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return types.User{}, err
	}
	if changes.Email != "" {
		user.Email = changes.Email
	}
	if changes.FullName != "" {
		user.FullName = changes.FullName
	}
	if changes.Role != "" {
		user.Role = changes.Role
	}
	return s.repo.Update(ctx, user)
}

func (s *UserService) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
