package services

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/robinhio12/rockbrakel/models"
	"github.com/robinhio12/rockbrakel/repositories"
	"github.com/robinhio12/rockbrakel/scoring"
)

// Rankings bundles all four jersey classifications.
type Rankings struct {
	GeleTrui      []scoring.RankedPlayer `json:"gele_trui"`
	GroeneTrui    []scoring.RankedPlayer `json:"groene_trui"`
	BolletjesTrui []scoring.RankedPlayer `json:"bolletjes_trui"`
	WitteTrui     []scoring.RankedPlayer `json:"witte_trui"`
}

// Winner is a decided jersey, surfaced once per category.
type Winner struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Number   int     `json:"number"`
	Points   int     `json:"points"`
	Picture  *string `json:"picture,omitempty"`
	Category string  `json:"category"`
}

type RankingService interface {
	Rankings(ctx context.Context) (*Rankings, error)
	// CheckWinners returns every jersey whose category is fully scored and
	// whose popup has not been dismissed yet, keyed by jersey name.
	CheckWinners(ctx context.Context) (map[models.Jersey]*Winner, error)
	DismissWinner(jersey models.Jersey)
}

type rankingService struct {
	playerRepo     repositories.PlayerRepository
	resultRepo     repositories.ResultRepository
	answerKeyRepo  repositories.AnswerKeyRepository
	tournamentRepo repositories.TournamentRepository
	dopingRepo     repositories.DopingRepository
	playerService  PlayerService

	mu        sync.Mutex
	dismissed map[models.Jersey]bool
}

func NewRankingService(
	playerRepo repositories.PlayerRepository,
	resultRepo repositories.ResultRepository,
	answerKeyRepo repositories.AnswerKeyRepository,
	tournamentRepo repositories.TournamentRepository,
	dopingRepo repositories.DopingRepository,
	playerService PlayerService,
) RankingService {
	return &rankingService{
		playerRepo:     playerRepo,
		resultRepo:     resultRepo,
		answerKeyRepo:  answerKeyRepo,
		tournamentRepo: tournamentRepo,
		dopingRepo:     dopingRepo,
		playerService:  playerService,
		dismissed:      make(map[models.Jersey]bool),
	}
}

// loadSnapshot reads one consistent view of all scoring state. The five
// parts are independent tables, loaded concurrently.
func (s *rankingService) loadSnapshot(ctx context.Context) (*scoring.Snapshot, error) {
	snap := &scoring.Snapshot{}
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		players, err := s.playerRepo.List(gCtx)
		if err != nil {
			return fmt.Errorf("failed to load players: %w", err)
		}
		snap.Players = players
		return nil
	})
	g.Go(func() error {
		results, err := s.resultRepo.GetAll(gCtx)
		if err != nil {
			return fmt.Errorf("failed to load results: %w", err)
		}
		snap.Results = results
		return nil
	})
	g.Go(func() error {
		keys, err := s.answerKeyRepo.GetAll(gCtx)
		if err != nil {
			return fmt.Errorf("failed to load answer keys: %w", err)
		}
		snap.AnswerKeys = keys
		return nil
	})
	g.Go(func() error {
		tournaments, err := s.tournamentRepo.GetAll(gCtx)
		if err != nil {
			return fmt.Errorf("failed to load tournaments: %w", err)
		}
		snap.Tournaments = tournaments
		return nil
	})
	g.Go(func() error {
		ledger, err := s.dopingRepo.GetAll(gCtx, nil)
		if err != nil {
			return fmt.Errorf("failed to load doping ledger: %w", err)
		}
		snap.Doping = ledger
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}

func (s *rankingService) Rankings(ctx context.Context) (*Rankings, error) {
	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	return &Rankings{
		GeleTrui:      scoring.OverallRanking(snap),
		GroeneTrui:    scoring.CategoryRanking(snap, models.CategorySpeedGames),
		BolletjesTrui: scoring.CategoryRanking(snap, models.CategoryBallGames),
		WitteTrui:     scoring.CategoryRanking(snap, models.CategoryBrainGames),
	}, nil
}

func (s *rankingService) CheckWinners(ctx context.Context) (map[models.Jersey]*Winner, error) {
	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	winners := make(map[models.Jersey]*Winner)

	if scoring.AllScoresInOverall(snap) && !s.isDismissed(models.JerseyGeleTrui) {
		if w := s.winnerFrom(ctx, scoring.OverallRanking(snap), "overall"); w != nil {
			winners[models.JerseyGeleTrui] = w
		}
	}
	for _, category := range models.AllCategories {
		jersey := models.CategoryJerseys[category]
		if !scoring.AllScoresIn(snap, category) || s.isDismissed(jersey) {
			continue
		}
		if w := s.winnerFrom(ctx, scoring.CategoryRanking(snap, category), string(category)); w != nil {
			winners[jersey] = w
		}
	}
	return winners, nil
}

func (s *rankingService) winnerFrom(ctx context.Context, ranking []scoring.RankedPlayer, category string) *Winner {
	if len(ranking) == 0 {
		return nil
	}
	top := ranking[0]
	winner := &Winner{
		ID:       top.PlayerID,
		Name:     top.Name,
		Number:   top.Number,
		Points:   top.Points,
		Category: category,
	}
	if player, err := s.playerService.GetByID(ctx, top.PlayerID); err == nil {
		winner.Picture = player.PictureURL
	}
	return winner
}

func (s *rankingService) DismissWinner(jersey models.Jersey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dismissed[jersey] = true
}

func (s *rankingService) isDismissed(jersey models.Jersey) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dismissed[jersey]
}
