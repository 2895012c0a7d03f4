package repositories

import (
	"context"
	"database/sql"

	"github.com/mateus/app-pelada/models"
)

type RankingRepository interface {
	// ByPelada sums goals and assists per player, best scorers first.
	// Players without any recorded stat are left out.
	ByPelada(ctx context.Context, peladaID int) ([]models.RankingEntry, error)
}

type postgresRankingRepository struct {
	db *sql.DB
}

func NewPostgresRankingRepository(db *sql.DB) RankingRepository {
	return &postgresRankingRepository{db: db}
}

func (r *postgresRankingRepository) ByPelada(ctx context.Context, peladaID int) ([]models.RankingEntry, error) {
	query := `
		SELECT p.id, p.name, SUM(s.goals) AS total_goals, SUM(s.assists) AS total_assists
		FROM players p
		JOIN match_stats s ON s.player_id = p.id
		WHERE p.pelada_id = $1
		GROUP BY p.id, p.name
		ORDER BY total_goals DESC, total_assists DESC, p.name ASC, p.id ASC`

	rows, err := r.db.QueryContext(ctx, query, peladaID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]models.RankingEntry, 0)
	for rows.Next() {
		var e models.RankingEntry
		if err := rows.Scan(&e.PlayerID, &e.Name, &e.TotalGoals, &e.TotalAssists); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
