package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/robinhio12/rockbrakel/brackets"
	"github.com/robinhio12/rockbrakel/models"
	"github.com/robinhio12/rockbrakel/repositories"
)

type SubmitMatchInput struct {
	MatchID  string `json:"match_id"`
	WinnerID int    `json:"winner_id"`
	LoserID  int    `json:"loser_id"`
	Doping1  bool   `json:"doping1"`
	Doping2  bool   `json:"doping2"`
}

// MatchView is one match enriched with its one-based round number, as the
// scoreboard displays it.
type MatchView struct {
	Round        int           `json:"round"`
	Match        *models.Match `json:"match"`
	CurrentRound int           `json:"current_round"`
	TotalRounds  int           `json:"total_rounds"`
}

type TournamentService interface {
	GenerateBracket(ctx context.Context, game models.Game) (*models.Tournament, error)
	GetTournament(ctx context.Context, game models.Game) (*models.Tournament, error)
	SubmitMatchResult(ctx context.Context, game models.Game, input SubmitMatchInput) (*models.Tournament, error)
	ListMatches(ctx context.Context, game models.Game) ([]MatchView, error)
	// HasResults reports per tournament game whether at least one completed
	// non-bye match exists. Missing brackets read as false.
	HasResults(ctx context.Context) (map[models.Game]bool, error)
}

type tournamentService struct {
	db             *sql.DB
	tournamentRepo repositories.TournamentRepository
	dopingRepo     repositories.DopingRepository
	playerRepo     repositories.PlayerRepository
	hub            *brackets.Hub
	logger         *slog.Logger

	// newSource provides the shuffle source for bracket generation;
	// injectable so tests get reproducible brackets.
	newSource func() rand.Source

	mu    sync.Mutex
	locks map[models.Game]*sync.Mutex
}

func NewTournamentService(
	db *sql.DB,
	tournamentRepo repositories.TournamentRepository,
	dopingRepo repositories.DopingRepository,
	playerRepo repositories.PlayerRepository,
	hub *brackets.Hub,
	logger *slog.Logger,
) TournamentService {
	return &tournamentService{
		db:             db,
		tournamentRepo: tournamentRepo,
		dopingRepo:     dopingRepo,
		playerRepo:     playerRepo,
		hub:            hub,
		logger:         logger,
		newSource:      func() rand.Source { return rand.NewSource(time.Now().UnixNano()) },
		locks:          make(map[models.Game]*sync.Mutex),
	}
}

// gameLock serializes all mutations of one tournament game.
func (s *tournamentService) gameLock(game models.Game) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[game]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[game] = lock
	}
	return lock
}

// GenerateBracket builds a fresh knock-out bracket for the game, replacing
// any previous tournament. This is a destructive regenerate, not a merge.
func (s *tournamentService) GenerateBracket(ctx context.Context, game models.Game) (*models.Tournament, error) {
	if !game.IsTournamentGame() {
		return nil, ErrNotATournamentGame
	}

	lock := s.gameLock(game)
	lock.Lock()
	defer lock.Unlock()

	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list players for bracket generation: %w", err)
	}

	tournament, err := brackets.Generate(game, players, s.newSource())
	if err != nil {
		if errors.Is(err, brackets.ErrNotEnoughPlayers) {
			return nil, ErrNotEnoughPlayers
		}
		return nil, fmt.Errorf("failed to generate bracket for %s: %w", game, err)
	}

	if err := s.tournamentRepo.Save(ctx, nil, tournament); err != nil {
		return nil, fmt.Errorf("failed to save tournament for %s: %w", game, err)
	}

	s.logger.Info("bracket generated",
		slog.String("game", string(game)),
		slog.Int("players", len(players)),
		slog.Int("rounds", tournament.NumRounds))
	s.broadcast(game, "BRACKET_GENERATED", tournament)
	return tournament, nil
}

func (s *tournamentService) GetTournament(ctx context.Context, game models.Game) (*models.Tournament, error) {
	if !game.IsTournamentGame() {
		return nil, ErrNotATournamentGame
	}
	tournament, err := s.tournamentRepo.Get(ctx, nil, game)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return tournament, nil
}

// SubmitMatchResult records one match outcome and advances the bracket. The
// whole load-mutate-commit cycle runs under the game's lock; the tournament
// snapshot and any doping ledger changes are committed in one transaction,
// so a failed submission leaves no partial state. Overwriting a completed
// match first releases the doping entries the previous result created.
func (s *tournamentService) SubmitMatchResult(ctx context.Context, game models.Game, input SubmitMatchInput) (*models.Tournament, error) {
	if !game.IsTournamentGame() {
		return nil, ErrNotATournamentGame
	}

	lock := s.gameLock(game)
	lock.Lock()
	defer lock.Unlock()

	tournament, err := s.tournamentRepo.Get(ctx, nil, game)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}

	ledger, err := s.dopingRepo.GetAll(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load doping ledger: %w", err)
	}
	before := ledger.Clone()

	// Overwrite: forget the doping the previous result of this match spent,
	// so the resubmission is judged against a clean ledger.
	if prev := tournament.FindMatch(input.MatchID); prev != nil && prev.Completed && !prev.IsBye() {
		if prev.Doping1 && prev.Winner != nil && ledger[*prev.Winner] == game {
			delete(ledger, *prev.Winner)
		}
		if prev.Doping2 && prev.Loser != nil && ledger[*prev.Loser] == game {
			delete(ledger, *prev.Loser)
		}
	}

	err = brackets.SubmitResult(tournament, ledger, brackets.SubmitInput{
		MatchID:  input.MatchID,
		WinnerID: input.WinnerID,
		LoserID:  input.LoserID,
		Doping1:  input.Doping1,
		Doping2:  input.Doping2,
	})
	if err != nil {
		var conflict *models.DopingConflictError
		switch {
		case errors.Is(err, brackets.ErrMatchNotFound):
			return nil, ErrMatchNotFound
		case errors.Is(err, brackets.ErrDopingRoundClosed):
			return nil, ErrDopingRoundClosed
		case errors.Is(err, brackets.ErrTournamentFinished):
			return nil, ErrTournamentFinished
		case errors.As(err, &conflict):
			return nil, err
		default:
			return nil, fmt.Errorf("failed to submit match result: %w", err)
		}
	}

	if err := s.commit(ctx, tournament, before, ledger); err != nil {
		return nil, err
	}

	s.logger.Info("match result submitted",
		slog.String("game", string(game)),
		slog.String("match_id", input.MatchID),
		slog.Int("winner_id", input.WinnerID),
		slog.Bool("finished", tournament.Finished()))
	s.broadcast(game, "BRACKET_UPDATED", tournament)
	return tournament, nil
}

// commit writes the mutated tournament plus the ledger delta atomically.
func (s *tournamentService) commit(ctx context.Context, tournament *models.Tournament, before, after models.DopingLedger) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = s.tournamentRepo.Save(ctx, tx, tournament); err != nil {
		return fmt.Errorf("failed to save tournament for %s: %w", tournament.Game, err)
	}
	for playerID := range before {
		if _, ok := after[playerID]; !ok {
			if err = s.dopingRepo.Delete(ctx, tx, playerID); err != nil {
				return fmt.Errorf("failed to release doping entry for player %d: %w", playerID, err)
			}
		}
	}
	for playerID, g := range after {
		if before[playerID] != g {
			if err = s.dopingRepo.Set(ctx, tx, playerID, g); err != nil {
				return fmt.Errorf("failed to record doping entry for player %d: %w", playerID, err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *tournamentService) ListMatches(ctx context.Context, game models.Game) ([]MatchView, error) {
	tournament, err := s.GetTournament(ctx, game)
	if err != nil {
		return nil, err
	}
	var views []MatchView
	for roundIdx, round := range tournament.Rounds {
		for _, m := range round {
			views = append(views, MatchView{
				Round:        roundIdx + 1,
				Match:        m,
				CurrentRound: tournament.CurrentRound + 1,
				TotalRounds:  tournament.NumRounds,
			})
		}
	}
	return views, nil
}

func (s *tournamentService) HasResults(ctx context.Context) (map[models.Game]bool, error) {
	results := make(map[models.Game]bool)
	for _, game := range models.AllGames {
		if !game.IsTournamentGame() {
			continue
		}
		results[game] = false

		tournament, err := s.tournamentRepo.Get(ctx, nil, game)
		if err != nil {
			if errors.Is(err, repositories.ErrTournamentNotFound) {
				continue
			}
			return nil, err
		}
		for _, m := range tournament.AllMatches() {
			if m.Completed && !m.IsBye() {
				results[game] = true
				break
			}
		}
	}
	return results, nil
}

func (s *tournamentService) broadcast(game models.Game, messageType string, payload interface{}) {
	if s.hub == nil {
		return
	}
	s.hub.BroadcastToRoom(string(game), brackets.WebSocketMessage{
		Type:    messageType,
		Payload: payload,
		RoomID:  string(game),
	})
}
