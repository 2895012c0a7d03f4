package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mateus/app-pelada/models"
)

var (
	ErrPeladaNotFound     = errors.New("pelada not found")
	ErrPeladaOwnerInvalid = errors.New("pelada owner does not exist")
)

type PeladaRepository interface {
	Create(ctx context.Context, pelada *models.Pelada) error
	GetByID(ctx context.Context, id int) (*models.Pelada, error)
	ListByOwner(ctx context.Context, ownerID int) ([]models.Pelada, error)
	// LockByID takes a row lock on the pelada for the rest of the transaction.
	LockByID(ctx context.Context, exec SQLExecutor, id int) error
}

type postgresPeladaRepository struct {
	db *sql.DB
}

func NewPostgresPeladaRepository(db *sql.DB) PeladaRepository {
	return &postgresPeladaRepository{db: db}
}

func (r *postgresPeladaRepository) Create(ctx context.Context, pelada *models.Pelada) error {
	query := `INSERT INTO peladas (name, owner_id) VALUES ($1, $2) RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, pelada.Name, pelada.OwnerID).Scan(&pelada.ID, &pelada.CreatedAt)
	if err != nil {
		if _, ok := pqConstraintError(err, pqForeignKeyViolation); ok {
			return ErrPeladaOwnerInvalid
		}
		return fmt.Errorf("failed to insert pelada: %w", err)
	}
	return nil
}

func (r *postgresPeladaRepository) GetByID(ctx context.Context, id int) (*models.Pelada, error) {
	query := `SELECT id, name, owner_id, created_at FROM peladas WHERE id = $1`

	var p models.Pelada
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Name, &p.OwnerID, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPeladaNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *postgresPeladaRepository) ListByOwner(ctx context.Context, ownerID int) ([]models.Pelada, error) {
	query := `
		SELECT id, name, owner_id, created_at
		FROM peladas
		WHERE owner_id = $1
		ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	peladas := make([]models.Pelada, 0)
	for rows.Next() {
		var p models.Pelada
		if err := rows.Scan(&p.ID, &p.Name, &p.OwnerID, &p.CreatedAt); err != nil {
			return nil, err
		}
		peladas = append(peladas, p)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return peladas, nil
}

func (r *postgresPeladaRepository) LockByID(ctx context.Context, exec SQLExecutor, id int) error {
	var locked int
	err := exec.QueryRowContext(ctx, `SELECT id FROM peladas WHERE id = $1 FOR UPDATE`, id).Scan(&locked)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrPeladaNotFound
		}
		return fmt.Errorf("failed to lock pelada %d: %w", id, err)
	}
	return nil
}
