package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/mateus/app-pelada/models"
	"github.com/mateus/app-pelada/report"
	"github.com/mateus/app-pelada/repositories"
	"github.com/mateus/app-pelada/storage"
)

type RankingService interface {
	GetRanking(ctx context.Context, userID, peladaID int) ([]models.RankingEntry, error)
	// ExportPDF returns the rendered ranking and its download file name.
	ExportPDF(ctx context.Context, userID, peladaID int) ([]byte, string, error)
	// PublishPDF uploads the rendered ranking and returns its public URL.
	PublishPDF(ctx context.Context, userID, peladaID int) (string, error)
}

// RankingRenderer turns a ranking report into a document.
type RankingRenderer interface {
	Render(rep *models.RankingReport) ([]byte, error)
}

type rankingService struct {
	peladaRepo  repositories.PeladaRepository
	rankingRepo repositories.RankingRepository
	renderer    RankingRenderer
	uploader    storage.FileUploader
	logger      *slog.Logger
}

// NewRankingService builds the service; uploader may be nil when object storage is not configured.
func NewRankingService(
	peladaRepo repositories.PeladaRepository,
	rankingRepo repositories.RankingRepository,
	renderer RankingRenderer,
	uploader storage.FileUploader,
	logger *slog.Logger,
) RankingService {
	if renderer == nil {
		renderer = report.NewPDFRenderer()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &rankingService{
		peladaRepo:  peladaRepo,
		rankingRepo: rankingRepo,
		renderer:    renderer,
		uploader:    uploader,
		logger:      logger,
	}
}

func (s *rankingService) GetRanking(ctx context.Context, userID, peladaID int) ([]models.RankingEntry, error) {
	rep, err := s.buildReport(ctx, userID, peladaID)
	if err != nil {
		return nil, err
	}
	return rep.Entries, nil
}

// buildReport loads the pelada and its ranking concurrently, then checks ownership.
func (s *rankingService) buildReport(ctx context.Context, userID, peladaID int) (*models.RankingReport, error) {
	var (
		pelada  *models.Pelada
		entries []models.RankingEntry
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := s.peladaRepo.GetByID(gctx, peladaID)
		if err != nil {
			return err
		}
		pelada = p
		return nil
	})
	g.Go(func() error {
		e, err := s.rankingRepo.ByPelada(gctx, peladaID)
		if err != nil {
			return err
		}
		entries = e
		return nil
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, repositories.ErrPeladaNotFound) {
			return nil, ErrPeladaNotFound
		}
		return nil, fmt.Errorf("failed to load ranking of pelada %d: %w", peladaID, err)
	}

	if pelada.OwnerID != userID {
		return nil, ErrForbiddenOperation
	}
	if entries == nil {
		entries = []models.RankingEntry{}
	}
	return &models.RankingReport{Pelada: pelada, Entries: entries}, nil
}

func (s *rankingService) ExportPDF(ctx context.Context, userID, peladaID int) ([]byte, string, error) {
	rep, err := s.buildReport(ctx, userID, peladaID)
	if err != nil {
		return nil, "", err
	}
	doc, err := s.renderer.Render(rep)
	if err != nil {
		return nil, "", fmt.Errorf("failed to render ranking of pelada %d: %w", peladaID, err)
	}
	return doc, report.FileName(peladaID), nil
}

func (s *rankingService) PublishPDF(ctx context.Context, userID, peladaID int) (string, error) {
	if s.uploader == nil {
		return "", ErrStorageUnavailable
	}

	doc, _, err := s.ExportPDF(ctx, userID, peladaID)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("rankings/%d/%s.pdf", peladaID, uuid.NewString())
	res, err := s.uploader.Upload(ctx, key, report.ContentType, bytes.NewReader(doc))
	if err != nil {
		return "", fmt.Errorf("failed to publish ranking of pelada %d: %w", peladaID, err)
	}

	s.logger.InfoContext(ctx, "ranking published",
		slog.Int("pelada_id", peladaID), slog.String("key", res.Key), slog.String("etag", res.ETag))
	return res.Location, nil
}
