package service

import (
	"context"
	"fmt"

	"food-order-service/internal/entity"
)

// UserStore is the account collection surface the service consumes.
type UserStore interface {
	CreateUser(ctx context.Context, user *entity.User) (*entity.User, error)
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	GetUsers(ctx context.Context) ([]entity.User, error)
	SetUserRole(ctx context.Context, id int64, role string) (bool, error)
	DeleteUser(ctx context.Context, id int64) (*entity.User, error)
}

type UserService struct {
	repo UserStore
}

// NewUserService creates a new instance of UserService.
func NewUserService(repo UserStore) *UserService {
	return &UserService{repo: repo}
}

// CreateUser stores a new account. The role is always customer here; the only
// path to admin is PromoteToAdmin behind the authorization gate.
func (s *UserService) CreateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	if user.Email == "" {
		return nil, fmt.Errorf("%w: email is required", entity.ErrInvalidRequest)
	}

	user.Role = entity.RoleCustomer

	createdUser, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		if isDuplicateKey(err) {
			return nil, fmt.Errorf("%w: email already registered", entity.ErrConflict)
		}
		logger.Error().Err(err).Msg("Error creating user")
		return nil, fmt.Errorf("%w: %v", entity.ErrUpstream, err)
	}

	return createdUser, nil
}

// GetUserByEmail resolves an email to an account, for the authorization gate
// and the admin self-check.
func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("%w: user %s", entity.ErrNotFound, email)
		}
		logger.Error().Err(err).Msgf("Error getting user by email %s", email)
		return nil, fmt.Errorf("%w: %v", entity.ErrUpstream, err)
	}

	return user, nil
}

// ListUsers returns every account.
func (s *UserService) ListUsers(ctx context.Context) ([]entity.User, error) {
	users, err := s.repo.GetUsers(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing users")
		return nil, fmt.Errorf("%w: %v", entity.ErrUpstream, err)
	}

	return users, nil
}

// IsAdmin reports whether the account behind email carries the admin role.
// An unknown email is simply not an admin.
func (s *UserService) IsAdmin(ctx context.Context, email string) (bool, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if notFound(err) {
			return false, nil
		}
		logger.Error().Err(err).Msgf("Error checking admin role for %s", email)
		return false, fmt.Errorf("%w: %v", entity.ErrUpstream, err)
	}

	return user.Role == entity.RoleAdmin, nil
}

// PromoteToAdmin elevates the account's role.
func (s *UserService) PromoteToAdmin(ctx context.Context, id int64) error {
	updated, err := s.repo.SetUserRole(ctx, id, entity.RoleAdmin)
	if err != nil {
		logger.Error().Err(err).Msgf("Error promoting user %d", id)
		return fmt.Errorf("%w: %v", entity.ErrUpstream, err)
	}
	if !updated {
		return fmt.Errorf("%w: user %d", entity.ErrNotFound, id)
	}

	return nil
}

// DeleteUser removes an account and returns the removed entity.
func (s *UserService) DeleteUser(ctx context.Context, id int64) (*entity.User, error) {
	user, err := s.repo.DeleteUser(ctx, id)
	if err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("%w: user %d", entity.ErrNotFound, id)
		}
		logger.Error().Err(err).Msgf("Error deleting user %d", id)
		return nil, fmt.Errorf("%w: %v", entity.ErrUpstream, err)
	}

	return user, nil
}
