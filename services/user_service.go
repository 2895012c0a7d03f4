package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/mateus/app-pelada/models"
	"github.com/mateus/app-pelada/repositories"
)

type UserService interface {
	// GetProfile returns the user together with the peladas they own.
	GetProfile(ctx context.Context, id int) (*models.User, error)
}

type userService struct {
	userRepo   repositories.UserRepository
	peladaRepo repositories.PeladaRepository
}

func NewUserService(userRepo repositories.UserRepository, peladaRepo repositories.PeladaRepository) UserService {
	return &userService{
		userRepo:   userRepo,
		peladaRepo: peladaRepo,
	}
}

func (s *userService) GetProfile(ctx context.Context, id int) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	user.PasswordHash = ""

	peladas, err := s.peladaRepo.ListByOwner(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list peladas of user %d: %w", id, err)
	}
	user.Peladas = peladas
	return user, nil
}
