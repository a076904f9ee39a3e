package service

import (
	"context"

	"github.com/praxislab/comptrack/internal/logger"
	"github.com/praxislab/comptrack/internal/model"
	"github.com/praxislab/comptrack/internal/pagination"
	"github.com/praxislab/comptrack/internal/repository"
)

// Users is the thin registration and lookup layer over the users table.
type Users struct {
	users  *repository.Users
	logger *logger.Logger
}

// NewUsers creates a Users service.
func NewUsers(users *repository.Users, l *logger.Logger) *Users {
	return &Users{users: users, logger: l}
}

// Register stores a new user. Users are never updated in place.
func (s *Users) Register(ctx context.Context, user *model.User) error {
	if user.UserID == "" {
		return &model.InputError{Field: "UserId", Reason: "must not be empty"}
	}
	if user.UserInfo.Name == "" {
		return &model.InputError{Field: "UserInfo", Reason: "name must not be empty"}
	}
	if !user.Role.Valid() {
		return &model.InputError{Field: "Role", Reason: "unknown role"}
	}

	if err := s.users.Put(ctx, user); err != nil {
		return err
	}
	s.logger.Info("user registered", "userId", user.UserID, "role", user.Role)
	return nil
}

// Get fetches one user by id.
func (s *Users) Get(ctx context.Context, id string) (*model.User, error) {
	return s.users.Get(ctx, id)
}

// Delete removes one user by id.
func (s *Users) Delete(ctx context.Context, id string) error {
	return s.users.Delete(ctx, id)
}

// List returns one page of users, validating the wire cursor and limit.
func (s *Users) List(ctx context.Context, cursor, rawLimit string) (pagination.Page[model.User], error) {
	startKey, err := pagination.DecodeCursor(cursor)
	if err != nil {
		return pagination.Page[model.User]{}, err
	}
	limit, err := pagination.ParseLimit(rawLimit)
	if err != nil {
		return pagination.Page[model.User]{}, err
	}

	users, lastKey, err := s.users.List(ctx, startKey, limit)
	if err != nil {
		return pagination.Page[model.User]{}, err
	}
	return pagination.NewPage(users, lastKey)
}
