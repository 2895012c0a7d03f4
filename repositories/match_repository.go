package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mateus/app-pelada/models"
)

var (
	ErrMatchStatConflict      = errors.New("player listed twice in the same match")
	ErrMatchStatPlayerInvalid = errors.New("match stat references an unknown player")
)

type MatchRepository interface {
	CountByPelada(ctx context.Context, exec SQLExecutor, peladaID int) (int, error)
	// Create inserts the match and all of its stats, filling in generated ids.
	Create(ctx context.Context, exec SQLExecutor, match *models.Match) error
	ListByPelada(ctx context.Context, peladaID int) ([]models.Match, error)
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) CountByPelada(ctx context.Context, exec SQLExecutor, peladaID int) (int, error) {
	if exec == nil {
		exec = r.db
	}
	var count int
	err := exec.QueryRowContext(ctx, `SELECT COUNT(*) FROM matches WHERE pelada_id = $1`, peladaID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count matches of pelada %d: %w", peladaID, err)
	}
	return count, nil
}

func (r *postgresMatchRepository) Create(ctx context.Context, exec SQLExecutor, match *models.Match) error {
	if exec == nil {
		exec = r.db
	}

	query := `
		INSERT INTO matches (pelada_id, match_date)
		VALUES ($1, $2::date)
		RETURNING id, created_at`
	if err := exec.QueryRowContext(ctx, query, match.PeladaID, match.Date).Scan(&match.ID, &match.CreatedAt); err != nil {
		if _, ok := pqConstraintError(err, pqForeignKeyViolation); ok {
			return ErrPeladaNotFound
		}
		return fmt.Errorf("failed to insert match: %w", err)
	}

	statQuery := `
		INSERT INTO match_stats (match_id, player_id, goals, assists)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	for i := range match.Stats {
		st := &match.Stats[i]
		st.MatchID = match.ID
		err := exec.QueryRowContext(ctx, statQuery, st.MatchID, st.PlayerID, st.Goals, st.Assists).Scan(&st.ID)
		if err != nil {
			if _, ok := pqConstraintError(err, pqUniqueViolation); ok {
				return ErrMatchStatConflict
			}
			if _, ok := pqConstraintError(err, pqForeignKeyViolation); ok {
				return ErrMatchStatPlayerInvalid
			}
			return fmt.Errorf("failed to insert stat for player %d: %w", st.PlayerID, err)
		}
	}
	return nil
}

func (r *postgresMatchRepository) ListByPelada(ctx context.Context, peladaID int) ([]models.Match, error) {
	query := `
		SELECT m.id, m.pelada_id, to_char(m.match_date, 'YYYY-MM-DD'), m.created_at,
			s.id, s.player_id, s.goals, s.assists
		FROM matches m
		LEFT JOIN match_stats s ON s.match_id = m.id
		WHERE m.pelada_id = $1
		ORDER BY m.match_date ASC, m.id ASC, s.id ASC`

	rows, err := r.db.QueryContext(ctx, query, peladaID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]models.Match, 0)
	index := make(map[int]int)
	for rows.Next() {
		var m models.Match
		var statID, playerID, goals, assists sql.NullInt64
		if err := rows.Scan(&m.ID, &m.PeladaID, &m.Date, &m.CreatedAt, &statID, &playerID, &goals, &assists); err != nil {
			return nil, err
		}

		pos, ok := index[m.ID]
		if !ok {
			m.Stats = make([]models.MatchStat, 0)
			matches = append(matches, m)
			pos = len(matches) - 1
			index[m.ID] = pos
		}
		if statID.Valid {
			matches[pos].Stats = append(matches[pos].Stats, models.MatchStat{
				ID:       int(statID.Int64),
				MatchID:  m.ID,
				PlayerID: int(playerID.Int64),
				Goals:    int(goals.Int64),
				Assists:  int(assists.Int64),
			})
		}
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return matches, nil
}
