package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/mateus/app-pelada/models"
)

var (
	ErrPlayerNotFound      = errors.New("player not found")
	ErrPlayerPeladaInvalid = errors.New("player pelada does not exist")
)

type PlayerRepository interface {
	Create(ctx context.Context, player *models.Player) error
	GetByID(ctx context.Context, peladaID, id int) (*models.Player, error)
	ListByPelada(ctx context.Context, peladaID int) ([]models.Player, error)
	// ListByIDs returns the players of the pelada whose ids are in ids.
	// Unknown ids, or ids of another pelada, are silently absent.
	ListByIDs(ctx context.Context, peladaID int, ids []int) ([]models.Player, error)
	Update(ctx context.Context, player *models.Player) error
	Delete(ctx context.Context, peladaID, id int) error
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

const playerColumns = `id, name, position, rating, pelada_id, created_at`

func (r *postgresPlayerRepository) Create(ctx context.Context, player *models.Player) error {
	query := `
		INSERT INTO players (name, position, rating, pelada_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		player.Name,
		player.Position,
		player.Rating,
		player.PeladaID,
	).Scan(&player.ID, &player.CreatedAt)
	if err != nil {
		if _, ok := pqConstraintError(err, pqForeignKeyViolation); ok {
			return ErrPlayerPeladaInvalid
		}
		return fmt.Errorf("failed to insert player: %w", err)
	}
	return nil
}

func (r *postgresPlayerRepository) GetByID(ctx context.Context, peladaID, id int) (*models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE id = $1 AND pelada_id = $2`

	var p models.Player
	err := r.db.QueryRowContext(ctx, query, id, peladaID).Scan(
		&p.ID, &p.Name, &p.Position, &p.Rating, &p.PeladaID, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *postgresPlayerRepository) ListByPelada(ctx context.Context, peladaID int) ([]models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE pelada_id = $1 ORDER BY name ASC, id ASC`
	return r.list(ctx, query, peladaID)
}

func (r *postgresPlayerRepository) ListByIDs(ctx context.Context, peladaID int, ids []int) ([]models.Player, error) {
	if len(ids) == 0 {
		return []models.Player{}, nil
	}
	query := `SELECT ` + playerColumns + ` FROM players WHERE pelada_id = $1 AND id = ANY($2) ORDER BY id ASC`
	return r.list(ctx, query, peladaID, pq.Int64Array(toInt64s(ids)))
}

func (r *postgresPlayerRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.Player, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := make([]models.Player, 0)
	for rows.Next() {
		var p models.Player
		if err := rows.Scan(&p.ID, &p.Name, &p.Position, &p.Rating, &p.PeladaID, &p.CreatedAt); err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return players, nil
}

func (r *postgresPlayerRepository) Update(ctx context.Context, player *models.Player) error {
	query := `
		UPDATE players SET
			name = $1,
			position = $2,
			rating = $3
		WHERE id = $4 AND pelada_id = $5
		RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query,
		player.Name,
		player.Position,
		player.Rating,
		player.ID,
		player.PeladaID,
	).Scan(&player.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrPlayerNotFound
		}
		return fmt.Errorf("failed to update player %d: %w", player.ID, err)
	}
	return nil
}

func (r *postgresPlayerRepository) Delete(ctx context.Context, peladaID, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM players WHERE id = $1 AND pelada_id = $2`, id, peladaID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}
