package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/robinhio12/rockbrakel/models"
	"github.com/robinhio12/rockbrakel/repositories"
)

// AdminService covers the organizer-only operations: answer-key management
// and wiping all submitted results.
type AdminService interface {
	SetAnswerKey(ctx context.Context, game models.Game, key models.AnswerKey) error
	GetAnswerKey(ctx context.Context, game models.Game) (models.AnswerKey, error)
	ClearResults(ctx context.Context) error
}

type adminService struct {
	answerKeyRepo repositories.AnswerKeyRepository
	resultRepo    repositories.ResultRepository
	logger        *slog.Logger
}

func NewAdminService(
	answerKeyRepo repositories.AnswerKeyRepository,
	resultRepo repositories.ResultRepository,
	logger *slog.Logger,
) AdminService {
	return &adminService{
		answerKeyRepo: answerKeyRepo,
		resultRepo:    resultRepo,
		logger:        logger,
	}
}

func (s *adminService) SetAnswerKey(ctx context.Context, game models.Game, key models.AnswerKey) error {
	if !game.IsBrainGame() {
		return ErrGameNotFound
	}
	if len(key) != models.AnswerKeyLength {
		return ErrAnswerKeyInvalid
	}
	if err := s.answerKeyRepo.Set(ctx, game, key); err != nil {
		return fmt.Errorf("failed to save answer key for %s: %w", game, err)
	}
	s.logger.Info("answer key updated", slog.String("game", string(game)))
	return nil
}

func (s *adminService) GetAnswerKey(ctx context.Context, game models.Game) (models.AnswerKey, error) {
	if !game.IsBrainGame() {
		return nil, ErrGameNotFound
	}
	key, err := s.answerKeyRepo.Get(ctx, game)
	if err != nil {
		if errors.Is(err, repositories.ErrAnswerKeyNotFound) {
			// An unset key reads as empty, the admin UI fills it in later.
			return models.AnswerKey{}, nil
		}
		return nil, err
	}
	return key, nil
}

func (s *adminService) ClearResults(ctx context.Context) error {
	if err := s.resultRepo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("failed to clear results: %w", err)
	}
	s.logger.Info("all game results cleared")
	return nil
}
