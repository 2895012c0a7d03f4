package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/mateus/app-pelada/models"
	"github.com/mateus/app-pelada/repositories"
)

type PlayerService interface {
	CreatePlayer(ctx context.Context, userID, peladaID int, input PlayerInput) (*models.Player, error)
	ListPlayers(ctx context.Context, userID, peladaID int) ([]models.Player, error)
	GetPlayer(ctx context.Context, userID, peladaID, playerID int) (*models.Player, error)
	UpdatePlayer(ctx context.Context, userID, peladaID, playerID int, input PlayerInput) (*models.Player, error)
	DeletePlayer(ctx context.Context, userID, peladaID, playerID int) error
}

type PlayerInput struct {
	Name     string  `json:"name"`
	Position string  `json:"position"`
	Rating   float64 `json:"rating"`
}

type playerService struct {
	peladaRepo repositories.PeladaRepository
	playerRepo repositories.PlayerRepository
}

func NewPlayerService(peladaRepo repositories.PeladaRepository, playerRepo repositories.PlayerRepository) PlayerService {
	return &playerService{
		peladaRepo: peladaRepo,
		playerRepo: playerRepo,
	}
}

func (s *playerService) CreatePlayer(ctx context.Context, userID, peladaID int, input PlayerInput) (*models.Player, error) {
	if _, err := authorizePelada(ctx, s.peladaRepo, userID, peladaID); err != nil {
		return nil, err
	}
	name, err := validatePlayerInput(input.Name, input.Rating)
	if err != nil {
		return nil, err
	}

	player := &models.Player{
		Name:     name,
		Position: input.Position,
		Rating:   input.Rating,
		PeladaID: peladaID,
	}
	if err := s.playerRepo.Create(ctx, player); err != nil {
		if errors.Is(err, repositories.ErrPlayerPeladaInvalid) {
			return nil, ErrPeladaNotFound
		}
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	return player, nil
}

func (s *playerService) ListPlayers(ctx context.Context, userID, peladaID int) ([]models.Player, error) {
	if _, err := authorizePelada(ctx, s.peladaRepo, userID, peladaID); err != nil {
		return nil, err
	}
	players, err := s.playerRepo.ListByPelada(ctx, peladaID)
	if err != nil {
		return nil, fmt.Errorf("failed to list players of pelada %d: %w", peladaID, err)
	}
	return players, nil
}

func (s *playerService) GetPlayer(ctx context.Context, userID, peladaID, playerID int) (*models.Player, error) {
	if _, err := authorizePelada(ctx, s.peladaRepo, userID, peladaID); err != nil {
		return nil, err
	}
	player, err := s.playerRepo.GetByID(ctx, peladaID, playerID)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player %d: %w", playerID, err)
	}
	return player, nil
}

func (s *playerService) UpdatePlayer(ctx context.Context, userID, peladaID, playerID int, input PlayerInput) (*models.Player, error) {
	if _, err := authorizePelada(ctx, s.peladaRepo, userID, peladaID); err != nil {
		return nil, err
	}
	name, err := validatePlayerInput(input.Name, input.Rating)
	if err != nil {
		return nil, err
	}

	player := &models.Player{
		ID:       playerID,
		Name:     name,
		Position: input.Position,
		Rating:   input.Rating,
		PeladaID: peladaID,
	}
	if err := s.playerRepo.Update(ctx, player); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to update player %d: %w", playerID, err)
	}
	return player, nil
}

func (s *playerService) DeletePlayer(ctx context.Context, userID, peladaID, playerID int) error {
	if _, err := authorizePelada(ctx, s.peladaRepo, userID, peladaID); err != nil {
		return err
	}
	if err := s.playerRepo.Delete(ctx, peladaID, playerID); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return ErrPlayerNotFound
		}
		return fmt.Errorf("failed to delete player %d: %w", playerID, err)
	}
	return nil
}
