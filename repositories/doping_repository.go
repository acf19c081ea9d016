package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/robinhio12/rockbrakel/models"
)

var ErrDopingEntryNotFound = errors.New("doping entry not found")

// DopingRepository persists the single-use doping ledger, one row per player.
// The player_id primary key enforces the at-most-one-game invariant at the
// storage level as well.
type DopingRepository interface {
	GetAll(ctx context.Context, exec SQLExecutor) (models.DopingLedger, error)
	Set(ctx context.Context, exec SQLExecutor, playerID int, game models.Game) error
	Delete(ctx context.Context, exec SQLExecutor, playerID int) error
}

type postgresDopingRepository struct {
	db *sql.DB
}

func NewPostgresDopingRepository(db *sql.DB) DopingRepository {
	return &postgresDopingRepository{db: db}
}

func (r *postgresDopingRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresDopingRepository) GetAll(ctx context.Context, exec SQLExecutor) (models.DopingLedger, error) {
	executor := r.getExecutor(exec)
	rows, err := executor.QueryContext(ctx, `SELECT player_id, game FROM doping_usage`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ledger := models.DopingLedger{}
	for rows.Next() {
		var playerID int
		var game string
		if err := rows.Scan(&playerID, &game); err != nil {
			return nil, err
		}
		ledger[playerID] = models.Game(game)
	}
	return ledger, rows.Err()
}

func (r *postgresDopingRepository) Set(ctx context.Context, exec SQLExecutor, playerID int, game models.Game) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO doping_usage (player_id, game)
		VALUES ($1, $2)
		ON CONFLICT (player_id) DO UPDATE SET game = EXCLUDED.game`

	_, err := executor.ExecContext(ctx, query, playerID, string(game))
	return err
}

func (r *postgresDopingRepository) Delete(ctx context.Context, exec SQLExecutor, playerID int) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx, `DELETE FROM doping_usage WHERE player_id = $1`, playerID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrDopingEntryNotFound)
}
