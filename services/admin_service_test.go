package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robinhio12/rockbrakel/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func tenAnswers() models.AnswerKey {
	return models.AnswerKey{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}
}

func TestSetAnswerKeyValidation(t *testing.T) {
	service := NewAdminService(newFakeAnswerKeyRepo(), newFakeResultRepo(), testLogger())
	ctx := context.Background()

	err := service.SetAnswerKey(ctx, models.GameTouwspringen, tenAnswers())
	require.ErrorIs(t, err, ErrGameNotFound)

	err = service.SetAnswerKey(ctx, models.GameRebus, models.AnswerKey{"a", "b"})
	require.ErrorIs(t, err, ErrAnswerKeyInvalid)
}

func TestSetAndGetAnswerKey(t *testing.T) {
	service := NewAdminService(newFakeAnswerKeyRepo(), newFakeResultRepo(), testLogger())
	ctx := context.Background()

	require.NoError(t, service.SetAnswerKey(ctx, models.GameWiskunde, tenAnswers()))

	key, err := service.GetAnswerKey(ctx, models.GameWiskunde)
	require.NoError(t, err)
	assert.Equal(t, tenAnswers(), key)
}

func TestGetAnswerKeyUnsetReadsEmpty(t *testing.T) {
	service := NewAdminService(newFakeAnswerKeyRepo(), newFakeResultRepo(), testLogger())

	key, err := service.GetAnswerKey(context.Background(), models.GameRebus)
	require.NoError(t, err)
	assert.Empty(t, key)
}

func TestClearResults(t *testing.T) {
	resultRepo := newFakeResultRepo()
	resultRepo.results[models.GameTouwspringen] = &models.GameResult{
		Kind:  models.ResultKindJumps,
		Jumps: map[int]int{1: 10},
	}
	service := NewAdminService(newFakeAnswerKeyRepo(), resultRepo, testLogger())

	require.NoError(t, service.ClearResults(context.Background()))
	assert.Empty(t, resultRepo.results)
}
