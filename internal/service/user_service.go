package service

import (
	"context"

	apperrors "jobboard-api/internal/common/errors"
	"jobboard-api/internal/models"
	"jobboard-api/internal/repository"
)

type UserService struct {
	users *repository.UserRepository
}

func NewUserService(users *repository.UserRepository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) Get(ctx context.Context, id int) (*models.User, error) {
	return s.users.FindByID(ctx, id)
}

// Update lets a user change their own contact fields.
func (s *UserService) Update(ctx context.Context, id int, email, fullName string, callerID int) (*models.User, error) {
	if id != callerID {
		return nil, apperrors.NewForbiddenError("users can only update their own profile")
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if email != "" {
		user.Email = email
	}
	if fullName != "" {
		user.FullName = fullName
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
