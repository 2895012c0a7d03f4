package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mateus/app-pelada/draw"
	"github.com/mateus/app-pelada/models"
	"github.com/mateus/app-pelada/repositories"
)

const matchDateLayout = "2006-01-02"

type MatchService interface {
	RegisterMatch(ctx context.Context, userID, peladaID int, input RegisterMatchInput) (*models.Match, error)
	ListMatches(ctx context.Context, userID, peladaID int) ([]models.Match, error)
}

type RegisterMatchInput struct {
	Date  string           `json:"date"`
	Stats []MatchStatInput `json:"stats"`
}

type MatchStatInput struct {
	PlayerID int `json:"player_id"`
	Goals    int `json:"goals"`
	Assists  int `json:"assists"`
}

type matchService struct {
	tx         repositories.Transactor
	peladaRepo repositories.PeladaRepository
	playerRepo repositories.PlayerRepository
	matchRepo  repositories.MatchRepository
	publisher  draw.Publisher
	logger     *slog.Logger
}

func NewMatchService(
	tx repositories.Transactor,
	peladaRepo repositories.PeladaRepository,
	playerRepo repositories.PlayerRepository,
	matchRepo repositories.MatchRepository,
	publisher draw.Publisher,
	logger *slog.Logger,
) MatchService {
	if logger == nil {
		logger = slog.Default()
	}
	return &matchService{
		tx:         tx,
		peladaRepo: peladaRepo,
		playerRepo: playerRepo,
		matchRepo:  matchRepo,
		publisher:  publisher,
		logger:     logger,
	}
}

func (s *matchService) RegisterMatch(ctx context.Context, userID, peladaID int, input RegisterMatchInput) (*models.Match, error) {
	if _, err := authorizePelada(ctx, s.peladaRepo, userID, peladaID); err != nil {
		return nil, err
	}

	match, err := s.buildMatch(ctx, peladaID, input)
	if err != nil {
		return nil, err
	}

	err = s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		// Serialises concurrent registrations so the limit below holds.
		if err := s.peladaRepo.LockByID(ctx, exec, peladaID); err != nil {
			return err
		}
		count, err := s.matchRepo.CountByPelada(ctx, exec, peladaID)
		if err != nil {
			return err
		}
		if count >= models.MaxMatchesPerPelada {
			return ErrMatchLimitReached
		}
		return s.matchRepo.Create(ctx, exec, match)
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrMatchLimitReached):
			return nil, ErrMatchLimitReached
		case errors.Is(err, repositories.ErrPeladaNotFound):
			return nil, ErrPeladaNotFound
		case errors.Is(err, repositories.ErrMatchStatConflict):
			return nil, ErrMatchDuplicatePlayer
		case errors.Is(err, repositories.ErrMatchStatPlayerInvalid):
			return nil, ErrMatchUnknownPlayer
		default:
			return nil, fmt.Errorf("failed to register match for pelada %d: %w", peladaID, err)
		}
	}

	s.logger.InfoContext(ctx, "match registered",
		slog.Int("pelada_id", peladaID), slog.Int("match_id", match.ID), slog.Int("stats", len(match.Stats)))
	if s.publisher != nil {
		s.publisher.Publish(peladaID, draw.EventMatchRegistered, match)
	}
	return match, nil
}

// buildMatch validates the input and checks that every player belongs to the pelada.
func (s *matchService) buildMatch(ctx context.Context, peladaID int, input RegisterMatchInput) (*models.Match, error) {
	if _, err := time.Parse(matchDateLayout, input.Date); err != nil {
		return nil, ErrMatchDateInvalid
	}

	stats := make([]models.MatchStat, 0, len(input.Stats))
	ids := make([]int, 0, len(input.Stats))
	for _, st := range input.Stats {
		if st.Goals < 0 || st.Assists < 0 {
			return nil, fmt.Errorf("%w (player %d)", ErrMatchStatInvalid, st.PlayerID)
		}
		stats = append(stats, models.MatchStat{PlayerID: st.PlayerID, Goals: st.Goals, Assists: st.Assists})
		ids = append(ids, st.PlayerID)
	}
	if !distinctIDs(ids) {
		return nil, ErrMatchDuplicatePlayer
	}

	if len(ids) > 0 {
		players, err := s.playerRepo.ListByIDs(ctx, peladaID, ids)
		if err != nil {
			return nil, fmt.Errorf("failed to load match players: %w", err)
		}
		if len(players) != len(ids) {
			return nil, ErrMatchUnknownPlayer
		}
	}

	return &models.Match{PeladaID: peladaID, Date: input.Date, Stats: stats}, nil
}

func (s *matchService) ListMatches(ctx context.Context, userID, peladaID int) ([]models.Match, error) {
	if _, err := authorizePelada(ctx, s.peladaRepo, userID, peladaID); err != nil {
		return nil, err
	}
	matches, err := s.matchRepo.ListByPelada(ctx, peladaID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches of pelada %d: %w", peladaID, err)
	}
	return matches, nil
}
