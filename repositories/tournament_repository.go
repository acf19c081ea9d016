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

var ErrTournamentNotFound = errors.New("tournament not found")

// TournamentRepository persists the full knock-out state per tournament game
// as one JSONB snapshot. Save replaces whatever was there, which is exactly
// the destructive-regenerate contract of bracket generation.
type TournamentRepository interface {
	Get(ctx context.Context, exec SQLExecutor, game models.Game) (*models.Tournament, error)
	GetAll(ctx context.Context) (map[models.Game]*models.Tournament, error)
	Save(ctx context.Context, exec SQLExecutor, tournament *models.Tournament) error
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

func (r *postgresTournamentRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresTournamentRepository) Get(ctx context.Context, exec SQLExecutor, game models.Game) (*models.Tournament, error) {
	executor := r.getExecutor(exec)
	query := `SELECT state FROM tournaments WHERE game = $1`

	var state []byte
	if err := executor.QueryRowContext(ctx, query, string(game)).Scan(&state); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	t := &models.Tournament{}
	if err := json.Unmarshal(state, t); err != nil {
		return nil, fmt.Errorf("failed to decode tournament state for %s: %w", game, err)
	}
	return t, nil
}

func (r *postgresTournamentRepository) GetAll(ctx context.Context) (map[models.Game]*models.Tournament, error) {
	query := `SELECT game, state FROM tournaments`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tournaments := make(map[models.Game]*models.Tournament)
	for rows.Next() {
		var game string
		var state []byte
		if err := rows.Scan(&game, &state); err != nil {
			return nil, err
		}
		t := &models.Tournament{}
		if err := json.Unmarshal(state, t); err != nil {
			return nil, fmt.Errorf("failed to decode tournament state for %s: %w", game, err)
		}
		tournaments[models.Game(game)] = t
	}
	return tournaments, rows.Err()
}

func (r *postgresTournamentRepository) Save(ctx context.Context, exec SQLExecutor, t *models.Tournament) error {
	executor := r.getExecutor(exec)
	state, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to encode tournament state for %s: %w", t.Game, err)
	}

	query := `
		INSERT INTO tournaments (game, state, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (game) DO UPDATE SET state = EXCLUDED.state, updated_at = EXCLUDED.updated_at`

	_, err = executor.ExecContext(ctx, query, string(t.Game), state, time.Now())
	return err
}
