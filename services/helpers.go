package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/mateus/app-pelada/models"
	"github.com/mateus/app-pelada/repositories"
)

// authorizePelada loads the pelada and checks that userID owns it.
// Missing peladas win over foreign ones: ErrPeladaNotFound before ErrForbiddenOperation.
func authorizePelada(ctx context.Context, repo repositories.PeladaRepository, userID, peladaID int) (*models.Pelada, error) {
	pelada, err := repo.GetByID(ctx, peladaID)
	if err != nil {
		if errors.Is(err, repositories.ErrPeladaNotFound) {
			return nil, ErrPeladaNotFound
		}
		return nil, fmt.Errorf("failed to get pelada %d: %w", peladaID, err)
	}
	if pelada.OwnerID != userID {
		return nil, ErrForbiddenOperation
	}
	return pelada, nil
}

func validatePlayerInput(name string, rating float64) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrPlayerNameRequired
	}
	if math.IsNaN(rating) || math.IsInf(rating, 0) {
		return "", ErrPlayerRatingInvalid
	}
	return name, nil
}

// distinctIDs reports whether ids holds no repeated value.
func distinctIDs(ids []int) bool {
	seen := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return false
		}
		seen[id] = struct{}{}
	}
	return true
}
