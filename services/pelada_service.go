package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mateus/app-pelada/models"
	"github.com/mateus/app-pelada/repositories"
)

type PeladaService interface {
	CreatePelada(ctx context.Context, ownerID int, input CreatePeladaInput) (*models.Pelada, error)
	ListPeladas(ctx context.Context, ownerID int) ([]models.Pelada, error)
	// GetPelada returns the pelada with its players.
	GetPelada(ctx context.Context, userID, peladaID int) (*models.Pelada, error)
}

type CreatePeladaInput struct {
	Name string `json:"name"`
}

type peladaService struct {
	peladaRepo repositories.PeladaRepository
	playerRepo repositories.PlayerRepository
}

func NewPeladaService(peladaRepo repositories.PeladaRepository, playerRepo repositories.PlayerRepository) PeladaService {
	return &peladaService{
		peladaRepo: peladaRepo,
		playerRepo: playerRepo,
	}
}

func (s *peladaService) CreatePelada(ctx context.Context, ownerID int, input CreatePeladaInput) (*models.Pelada, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrPeladaNameRequired
	}

	pelada := &models.Pelada{Name: name, OwnerID: ownerID}
	if err := s.peladaRepo.Create(ctx, pelada); err != nil {
		if errors.Is(err, repositories.ErrPeladaOwnerInvalid) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to create pelada: %w", err)
	}
	pelada.Players = []models.Player{}
	return pelada, nil
}

func (s *peladaService) ListPeladas(ctx context.Context, ownerID int) ([]models.Pelada, error) {
	peladas, err := s.peladaRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list peladas of user %d: %w", ownerID, err)
	}
	if peladas == nil {
		return []models.Pelada{}, nil
	}
	return peladas, nil
}

func (s *peladaService) GetPelada(ctx context.Context, userID, peladaID int) (*models.Pelada, error) {
	pelada, err := authorizePelada(ctx, s.peladaRepo, userID, peladaID)
	if err != nil {
		return nil, err
	}

	players, err := s.playerRepo.ListByPelada(ctx, peladaID)
	if err != nil {
		return nil, fmt.Errorf("failed to list players of pelada %d: %w", peladaID, err)
	}
	pelada.Players = players
	return pelada, nil
}
