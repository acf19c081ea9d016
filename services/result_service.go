package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/robinhio12/rockbrakel/brackets"
	"github.com/robinhio12/rockbrakel/models"
	"github.com/robinhio12/rockbrakel/repositories"
	"github.com/robinhio12/rockbrakel/scoring"
)

type SubmitJumpsInput struct {
	PlayerID  int
	Jumps     int
	Doping    bool
	Overwrite bool
}

type SubmitOrderingInput struct {
	Ordering      []int // winner to loser
	DopingPlayers []int
	Overwrite     bool
}

type SubmitQuizInput struct {
	PlayerID    int
	Answers     []string
	TimeSeconds float64
	Doping      bool
	Overwrite   bool
}

// QuizOutcome echoes the graded submission back to the caller.
type QuizOutcome struct {
	CorrectAnswers int     `json:"correct_answers"`
	TimeSeconds    float64 `json:"time"`
}

type ResultService interface {
	SubmitJumps(ctx context.Context, input SubmitJumpsInput) error
	SubmitOrdering(ctx context.Context, input SubmitOrderingInput) error
	SubmitQuiz(ctx context.Context, game models.Game, input SubmitQuizInput) (*QuizOutcome, error)
	GetAll(ctx context.Context) (map[models.Game]*models.GameResult, error)
	HasExistingScore(ctx context.Context, game models.Game, playerID int) (bool, error)
}

type resultService struct {
	db             *sql.DB
	resultRepo     repositories.ResultRepository
	answerKeyRepo  repositories.AnswerKeyRepository
	dopingRepo     repositories.DopingRepository
	playerRepo     repositories.PlayerRepository
	tournamentRepo repositories.TournamentRepository
	hub            *brackets.Hub
	logger         *slog.Logger

	mu    sync.Mutex
	locks map[models.Game]*sync.Mutex
}

func NewResultService(
	db *sql.DB,
	resultRepo repositories.ResultRepository,
	answerKeyRepo repositories.AnswerKeyRepository,
	dopingRepo repositories.DopingRepository,
	playerRepo repositories.PlayerRepository,
	tournamentRepo repositories.TournamentRepository,
	hub *brackets.Hub,
	logger *slog.Logger,
) ResultService {
	return &resultService{
		db:             db,
		resultRepo:     resultRepo,
		answerKeyRepo:  answerKeyRepo,
		dopingRepo:     dopingRepo,
		playerRepo:     playerRepo,
		tournamentRepo: tournamentRepo,
		hub:            hub,
		logger:         logger,
		locks:          make(map[models.Game]*sync.Mutex),
	}
}

func (s *resultService) gameLock(game models.Game) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[game]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[game] = lock
	}
	return lock
}

// loadResult returns the stored payload for the game, or a fresh empty one.
func (s *resultService) loadResult(ctx context.Context, game models.Game) (*models.GameResult, error) {
	result, err := s.resultRepo.Get(ctx, nil, game)
	if err != nil {
		if errors.Is(err, repositories.ErrResultNotFound) {
			return models.NewGameResult(game), nil
		}
		return nil, fmt.Errorf("failed to load results for %s: %w", game, err)
	}
	return result, nil
}

func (s *resultService) SubmitJumps(ctx context.Context, input SubmitJumpsInput) error {
	game := models.GameTouwspringen
	if input.Jumps < 0 {
		return ErrValidationFailed
	}
	if _, err := s.playerRepo.GetByID(ctx, input.PlayerID); err != nil {
		return ErrPlayerNotFound
	}

	lock := s.gameLock(game)
	lock.Lock()
	defer lock.Unlock()

	result, err := s.loadResult(ctx, game)
	if err != nil {
		return err
	}
	if result.HasResultFor(input.PlayerID) && !input.Overwrite {
		return ErrResultExists
	}

	ledger, err := s.dopingRepo.GetAll(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to load doping ledger: %w", err)
	}
	var dopingPlayers []int
	if input.Doping {
		if err := ledger.Record(input.PlayerID, game); err != nil {
			return err
		}
		dopingPlayers = append(dopingPlayers, input.PlayerID)
	}

	result.Jumps[input.PlayerID] = input.Jumps
	if err := s.commit(ctx, game, result, ledger, dopingPlayers); err != nil {
		return err
	}

	s.logger.Info("result submitted",
		slog.String("game", string(game)),
		slog.Int("player_id", input.PlayerID),
		slog.Int("jumps", input.Jumps))
	s.broadcast(game)
	return nil
}

func (s *resultService) SubmitOrdering(ctx context.Context, input SubmitOrderingInput) error {
	game := models.GameStoelendans

	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list players: %w", err)
	}
	if !isPermutationOf(input.Ordering, players) {
		return ErrOrderingInvalid
	}

	lock := s.gameLock(game)
	lock.Lock()
	defer lock.Unlock()

	result, err := s.loadResult(ctx, game)
	if err != nil {
		return err
	}
	if len(result.Ordering) > 0 && !input.Overwrite {
		return ErrResultExists
	}

	ledger, err := s.dopingRepo.GetAll(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to load doping ledger: %w", err)
	}
	for _, playerID := range input.DopingPlayers {
		if err := ledger.Record(playerID, game); err != nil {
			return err
		}
	}

	result.Ordering = input.Ordering
	if err := s.commit(ctx, game, result, ledger, input.DopingPlayers); err != nil {
		return err
	}

	s.logger.Info("result submitted",
		slog.String("game", string(game)),
		slog.Int("players", len(input.Ordering)))
	s.broadcast(game)
	return nil
}

func (s *resultService) SubmitQuiz(ctx context.Context, game models.Game, input SubmitQuizInput) (*QuizOutcome, error) {
	if !game.IsBrainGame() {
		if game.IsTournamentGame() {
			return nil, ErrTournamentGameDirect
		}
		return nil, ErrGameNotFound
	}
	if len(input.Answers) != models.AnswerKeyLength || input.TimeSeconds < 0 {
		return nil, ErrQuizAnswersInvalid
	}
	if _, err := s.playerRepo.GetByID(ctx, input.PlayerID); err != nil {
		return nil, ErrPlayerNotFound
	}

	lock := s.gameLock(game)
	lock.Lock()
	defer lock.Unlock()

	result, err := s.loadResult(ctx, game)
	if err != nil {
		return nil, err
	}
	if result.HasResultFor(input.PlayerID) && !input.Overwrite {
		return nil, ErrResultExists
	}

	ledger, err := s.dopingRepo.GetAll(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load doping ledger: %w", err)
	}
	var dopingPlayers []int
	if input.Doping {
		if err := ledger.Record(input.PlayerID, game); err != nil {
			return nil, err
		}
		dopingPlayers = append(dopingPlayers, input.PlayerID)
	}

	result.Quiz[input.PlayerID] = models.QuizEntry{
		Answers:     input.Answers,
		TimeSeconds: input.TimeSeconds,
	}
	if err := s.commit(ctx, game, result, ledger, dopingPlayers); err != nil {
		return nil, err
	}

	// Grade against the answer key for the submission popup. An unset key
	// simply grades to zero.
	key, err := s.answerKeyRepo.Get(ctx, game)
	if err != nil && !errors.Is(err, repositories.ErrAnswerKeyNotFound) {
		return nil, fmt.Errorf("failed to load answer key for %s: %w", game, err)
	}

	outcome := &QuizOutcome{
		CorrectAnswers: scoring.CorrectAnswers(game, input.Answers, key),
		TimeSeconds:    input.TimeSeconds,
	}
	s.logger.Info("result submitted",
		slog.String("game", string(game)),
		slog.Int("player_id", input.PlayerID),
		slog.Int("correct", outcome.CorrectAnswers))
	s.broadcast(game)
	return outcome, nil
}

// commit writes the result payload and any new doping entries atomically.
func (s *resultService) commit(ctx context.Context, game models.Game, result *models.GameResult, ledger models.DopingLedger, dopingPlayers []int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = s.resultRepo.Upsert(ctx, tx, game, result); err != nil {
		return fmt.Errorf("failed to save results for %s: %w", game, err)
	}
	for _, playerID := range dopingPlayers {
		if err = s.dopingRepo.Set(ctx, tx, playerID, ledger[playerID]); err != nil {
			return fmt.Errorf("failed to record doping entry for player %d: %w", playerID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *resultService) GetAll(ctx context.Context) (map[models.Game]*models.GameResult, error) {
	return s.resultRepo.GetAll(ctx)
}

// HasExistingScore reports whether a submission already exists for the
// player and game. For tournament games this means the player appears in a
// completed non-bye match.
func (s *resultService) HasExistingScore(ctx context.Context, game models.Game, playerID int) (bool, error) {
	if game.IsTournamentGame() {
		tournament, err := s.tournamentRepo.Get(ctx, nil, game)
		if err != nil {
			if errors.Is(err, repositories.ErrTournamentNotFound) {
				return false, nil
			}
			return false, err
		}
		for _, m := range tournament.AllMatches() {
			if !m.Completed || m.IsBye() {
				continue
			}
			if m.Player1 == playerID || (m.Player2 != nil && *m.Player2 == playerID) {
				return true, nil
			}
		}
		return false, nil
	}

	result, err := s.loadResult(ctx, game)
	if err != nil {
		return false, err
	}
	return result.HasResultFor(playerID), nil
}

func (s *resultService) broadcast(game models.Game) {
	if s.hub == nil {
		return
	}
	s.hub.BroadcastToRoom(brackets.RoomRankings, brackets.WebSocketMessage{
		Type:    "RESULT_SUBMITTED",
		Payload: map[string]string{"game": string(game)},
		RoomID:  brackets.RoomRankings,
	})
}

func isPermutationOf(ordering []int, players []models.Player) bool {
	if len(ordering) != len(players) {
		return false
	}
	known := make(map[int]bool, len(players))
	for _, p := range players {
		known[p.ID] = true
	}
	seen := make(map[int]bool, len(ordering))
	for _, id := range ordering {
		if !known[id] || seen[id] {
			return false
		}
		seen[id] = true
	}
	return true
}
