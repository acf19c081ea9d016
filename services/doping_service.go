package services

import (
	"context"
	"fmt"

	"github.com/robinhio12/rockbrakel/models"
	"github.com/robinhio12/rockbrakel/repositories"
)

type DopingService interface {
	// CheckEligibility returns nil when the player may still dope for the
	// game, and a *models.DopingConflictError naming the conflicting game
	// otherwise. A prior entry for the same game is not a conflict.
	CheckEligibility(ctx context.Context, playerID int, game models.Game) error
	Usage(ctx context.Context) (models.DopingLedger, error)
}

type dopingService struct {
	dopingRepo repositories.DopingRepository
}

func NewDopingService(dopingRepo repositories.DopingRepository) DopingService {
	return &dopingService{dopingRepo: dopingRepo}
}

func (s *dopingService) CheckEligibility(ctx context.Context, playerID int, game models.Game) error {
	ledger, err := s.dopingRepo.GetAll(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to load doping ledger: %w", err)
	}
	if used, ok := ledger.UsedFor(playerID); ok && used != game {
		return &models.DopingConflictError{PlayerID: playerID, Game: used}
	}
	return nil
}

func (s *dopingService) Usage(ctx context.Context) (models.DopingLedger, error) {
	ledger, err := s.dopingRepo.GetAll(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load doping ledger: %w", err)
	}
	return ledger, nil
}
