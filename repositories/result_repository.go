package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/robinhio12/rockbrakel/models"
)

var ErrResultNotFound = errors.New("game result not found")

// ResultRepository persists one raw result payload per game as JSONB.
type ResultRepository interface {
	Get(ctx context.Context, exec SQLExecutor, game models.Game) (*models.GameResult, error)
	GetAll(ctx context.Context) (map[models.Game]*models.GameResult, error)
	Upsert(ctx context.Context, exec SQLExecutor, game models.Game, result *models.GameResult) error
	DeleteAll(ctx context.Context) error
}

type postgresResultRepository struct {
	db *sql.DB
}

func NewPostgresResultRepository(db *sql.DB) ResultRepository {
	return &postgresResultRepository{db: db}
}

func (r *postgresResultRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresResultRepository) Get(ctx context.Context, exec SQLExecutor, game models.Game) (*models.GameResult, error) {
	executor := r.getExecutor(exec)
	query := `SELECT payload FROM game_results WHERE game = $1`

	var payload []byte
	if err := executor.QueryRowContext(ctx, query, string(game)).Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrResultNotFound
		}
		return nil, err
	}
	result := &models.GameResult{}
	if err := json.Unmarshal(payload, result); err != nil {
		return nil, fmt.Errorf("failed to decode result payload for %s: %w", game, err)
	}
	return result, nil
}

func (r *postgresResultRepository) GetAll(ctx context.Context) (map[models.Game]*models.GameResult, error) {
	query := `SELECT game, payload FROM game_results`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make(map[models.Game]*models.GameResult)
	for rows.Next() {
		var game string
		var payload []byte
		if err := rows.Scan(&game, &payload); err != nil {
			return nil, err
		}
		result := &models.GameResult{}
		if err := json.Unmarshal(payload, result); err != nil {
			return nil, fmt.Errorf("failed to decode result payload for %s: %w", game, err)
		}
		results[models.Game(game)] = result
	}
	return results, rows.Err()
}

func (r *postgresResultRepository) Upsert(ctx context.Context, exec SQLExecutor, game models.Game, result *models.GameResult) error {
	executor := r.getExecutor(exec)
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode result payload for %s: %w", game, err)
	}

	query := `
		INSERT INTO game_results (game, payload, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (game) DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at`

	_, err = executor.ExecContext(ctx, query, string(game), payload, time.Now())
	return err
}

func (r *postgresResultRepository) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM game_results`)
	return err
}
