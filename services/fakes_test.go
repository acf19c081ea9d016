package services

import (
	"context"

	"github.com/robinhio12/rockbrakel/models"
	"github.com/robinhio12/rockbrakel/repositories"
)

// In-memory repository fakes. They ignore the SQLExecutor argument; the
// transactional paths that need a real *sql.DB are exercised against
// Postgres, not here.

type fakePlayerRepo struct {
	players []models.Player
	nextID  int
}

func newFakePlayerRepo(players ...models.Player) *fakePlayerRepo {
	repo := &fakePlayerRepo{players: players, nextID: 1}
	for _, p := range players {
		if p.ID >= repo.nextID {
			repo.nextID = p.ID + 1
		}
	}
	return repo
}

func (r *fakePlayerRepo) Create(_ context.Context, player *models.Player) error {
	for _, p := range r.players {
		if p.Number == player.Number {
			return repositories.ErrPlayerNumberConflict
		}
	}
	player.ID = r.nextID
	r.nextID++
	r.players = append(r.players, *player)
	return nil
}

func (r *fakePlayerRepo) GetByID(_ context.Context, id int) (*models.Player, error) {
	for _, p := range r.players {
		if p.ID == id {
			player := p
			return &player, nil
		}
	}
	return nil, repositories.ErrPlayerNotFound
}

func (r *fakePlayerRepo) List(_ context.Context) ([]models.Player, error) {
	out := make([]models.Player, len(r.players))
	copy(out, r.players)
	return out, nil
}

func (r *fakePlayerRepo) UpdatePictureKey(_ context.Context, playerID int, pictureKey *string) error {
	for i := range r.players {
		if r.players[i].ID == playerID {
			r.players[i].PictureKey = pictureKey
			return nil
		}
	}
	return repositories.ErrPlayerNotFound
}

type fakeResultRepo struct {
	results map[models.Game]*models.GameResult
}

func newFakeResultRepo() *fakeResultRepo {
	return &fakeResultRepo{results: make(map[models.Game]*models.GameResult)}
}

func (r *fakeResultRepo) Get(_ context.Context, _ repositories.SQLExecutor, game models.Game) (*models.GameResult, error) {
	result, ok := r.results[game]
	if !ok {
		return nil, repositories.ErrResultNotFound
	}
	return result, nil
}

func (r *fakeResultRepo) GetAll(_ context.Context) (map[models.Game]*models.GameResult, error) {
	out := make(map[models.Game]*models.GameResult, len(r.results))
	for g, res := range r.results {
		out[g] = res
	}
	return out, nil
}

func (r *fakeResultRepo) Upsert(_ context.Context, _ repositories.SQLExecutor, game models.Game, result *models.GameResult) error {
	r.results[game] = result
	return nil
}

func (r *fakeResultRepo) DeleteAll(_ context.Context) error {
	r.results = make(map[models.Game]*models.GameResult)
	return nil
}

type fakeAnswerKeyRepo struct {
	keys map[models.Game]models.AnswerKey
}

func newFakeAnswerKeyRepo() *fakeAnswerKeyRepo {
	return &fakeAnswerKeyRepo{keys: make(map[models.Game]models.AnswerKey)}
}

func (r *fakeAnswerKeyRepo) Get(_ context.Context, game models.Game) (models.AnswerKey, error) {
	key, ok := r.keys[game]
	if !ok {
		return nil, repositories.ErrAnswerKeyNotFound
	}
	return key, nil
}

func (r *fakeAnswerKeyRepo) GetAll(_ context.Context) (map[models.Game]models.AnswerKey, error) {
	out := make(map[models.Game]models.AnswerKey, len(r.keys))
	for g, k := range r.keys {
		out[g] = k
	}
	return out, nil
}

func (r *fakeAnswerKeyRepo) Set(_ context.Context, game models.Game, key models.AnswerKey) error {
	r.keys[game] = key
	return nil
}

type fakeTournamentRepo struct {
	tournaments map[models.Game]*models.Tournament
}

func newFakeTournamentRepo() *fakeTournamentRepo {
	return &fakeTournamentRepo{tournaments: make(map[models.Game]*models.Tournament)}
}

func (r *fakeTournamentRepo) Get(_ context.Context, _ repositories.SQLExecutor, game models.Game) (*models.Tournament, error) {
	t, ok := r.tournaments[game]
	if !ok {
		return nil, repositories.ErrTournamentNotFound
	}
	return t, nil
}

func (r *fakeTournamentRepo) GetAll(_ context.Context) (map[models.Game]*models.Tournament, error) {
	out := make(map[models.Game]*models.Tournament, len(r.tournaments))
	for g, t := range r.tournaments {
		out[g] = t
	}
	return out, nil
}

func (r *fakeTournamentRepo) Save(_ context.Context, _ repositories.SQLExecutor, t *models.Tournament) error {
	r.tournaments[t.Game] = t
	return nil
}

type fakeDopingRepo struct {
	ledger models.DopingLedger
}

func newFakeDopingRepo() *fakeDopingRepo {
	return &fakeDopingRepo{ledger: models.DopingLedger{}}
}

func (r *fakeDopingRepo) GetAll(_ context.Context, _ repositories.SQLExecutor) (models.DopingLedger, error) {
	return r.ledger.Clone(), nil
}

func (r *fakeDopingRepo) Set(_ context.Context, _ repositories.SQLExecutor, playerID int, game models.Game) error {
	r.ledger[playerID] = game
	return nil
}

func (r *fakeDopingRepo) Delete(_ context.Context, _ repositories.SQLExecutor, playerID int) error {
	delete(r.ledger, playerID)
	return nil
}
