package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mateus/app-pelada/draw"
	"github.com/mateus/app-pelada/models"
	"github.com/mateus/app-pelada/repositories"
)

// Reasons reported to DrawObserver.DrawRejected.
const (
	DrawRejectInvalidSize = "invalid_size"
	DrawRejectDuplicates  = "duplicate_players"
	DrawRejectNotFound    = "players_not_found"
)

type DrawService interface {
	// DrawTeams validates playerIDs against the pelada and splits them into four teams.
	DrawTeams(ctx context.Context, userID, peladaID int, input DrawInput) (*models.Teams, error)
}

type DrawInput struct {
	PlayerIDs []int `json:"player_ids"`
}

// DrawObserver receives draw outcomes, typically for metrics.
type DrawObserver interface {
	DrawCompleted(duration time.Duration)
	DrawRejected(reason string)
}

type noopDrawObserver struct{}

func (noopDrawObserver) DrawCompleted(time.Duration) {}
func (noopDrawObserver) DrawRejected(string)         {}

type drawService struct {
	peladaRepo repositories.PeladaRepository
	playerRepo repositories.PlayerRepository
	drawer     draw.TeamDrawer
	publisher  draw.Publisher
	observer   DrawObserver
	logger     *slog.Logger
}

func NewDrawService(
	peladaRepo repositories.PeladaRepository,
	playerRepo repositories.PlayerRepository,
	drawer draw.TeamDrawer,
	publisher draw.Publisher,
	observer DrawObserver,
	logger *slog.Logger,
) DrawService {
	if observer == nil {
		observer = noopDrawObserver{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &drawService{
		peladaRepo: peladaRepo,
		playerRepo: playerRepo,
		drawer:     drawer,
		publisher:  publisher,
		observer:   observer,
		logger:     logger,
	}
}

func (s *drawService) DrawTeams(ctx context.Context, userID, peladaID int, input DrawInput) (*models.Teams, error) {
	if _, err := authorizePelada(ctx, s.peladaRepo, userID, peladaID); err != nil {
		return nil, err
	}

	ids := input.PlayerIDs
	if len(ids) != models.DrawPoolSize {
		s.observer.DrawRejected(DrawRejectInvalidSize)
		return nil, fmt.Errorf("%w: got %d", ErrDrawInvalidSize, len(ids))
	}
	if !distinctIDs(ids) {
		s.observer.DrawRejected(DrawRejectDuplicates)
		return nil, ErrDrawDuplicatePlayers
	}

	players, err := s.playerRepo.ListByIDs(ctx, peladaID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load players for draw: %w", err)
	}
	if len(players) != models.DrawPoolSize {
		s.observer.DrawRejected(DrawRejectNotFound)
		return nil, fmt.Errorf("%w: found %d of %d", ErrDrawPlayersNotFound, len(players), models.DrawPoolSize)
	}

	started := time.Now()
	teams, err := s.drawer.Draw(players)
	if err != nil {
		// Input was validated above, so this is an integration bug.
		return nil, fmt.Errorf("draw failed for pelada %d: %w", peladaID, err)
	}
	s.observer.DrawCompleted(time.Since(started))

	s.logger.InfoContext(ctx, "teams drawn", slog.Int("pelada_id", peladaID), slog.Int("user_id", userID))
	if s.publisher != nil {
		s.publisher.Publish(peladaID, draw.EventDrawCompleted, teams)
	}
	return teams, nil
}
