package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/robinhio12/rockbrakel/models"
)

var ErrAnswerKeyNotFound = errors.New("answer key not found")

type AnswerKeyRepository interface {
	Get(ctx context.Context, game models.Game) (models.AnswerKey, error)
	GetAll(ctx context.Context) (map[models.Game]models.AnswerKey, error)
	Set(ctx context.Context, game models.Game, key models.AnswerKey) error
}

type postgresAnswerKeyRepository struct {
	db *sql.DB
}

func NewPostgresAnswerKeyRepository(db *sql.DB) AnswerKeyRepository {
	return &postgresAnswerKeyRepository{db: db}
}

func (r *postgresAnswerKeyRepository) Get(ctx context.Context, game models.Game) (models.AnswerKey, error) {
	var answers []byte
	err := r.db.QueryRowContext(ctx, `SELECT answers FROM answer_keys WHERE game = $1`, string(game)).Scan(&answers)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAnswerKeyNotFound
		}
		return nil, err
	}
	var key models.AnswerKey
	if err := json.Unmarshal(answers, &key); err != nil {
		return nil, fmt.Errorf("failed to decode answer key for %s: %w", game, err)
	}
	return key, nil
}

func (r *postgresAnswerKeyRepository) GetAll(ctx context.Context) (map[models.Game]models.AnswerKey, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT game, answers FROM answer_keys`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	keys := make(map[models.Game]models.AnswerKey)
	for rows.Next() {
		var game string
		var answers []byte
		if err := rows.Scan(&game, &answers); err != nil {
			return nil, err
		}
		var key models.AnswerKey
		if err := json.Unmarshal(answers, &key); err != nil {
			return nil, fmt.Errorf("failed to decode answer key for %s: %w", game, err)
		}
		keys[models.Game(game)] = key
	}
	return keys, rows.Err()
}

func (r *postgresAnswerKeyRepository) Set(ctx context.Context, game models.Game, key models.AnswerKey) error {
	answers, err := json.Marshal(key)
	if err != nil {
		return fmt.Errorf("failed to encode answer key for %s: %w", game, err)
	}

	query := `
		INSERT INTO answer_keys (game, answers)
		VALUES ($1, $2)
		ON CONFLICT (game) DO UPDATE SET answers = EXCLUDED.answers`

	_, err = r.db.ExecContext(ctx, query, string(game), answers)
	return err
}
