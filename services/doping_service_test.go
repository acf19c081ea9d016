package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robinhio12/rockbrakel/models"
)

func TestCheckEligibility(t *testing.T) {
	dopingRepo := newFakeDopingRepo()
	dopingRepo.ledger[1] = models.GamePetanque
	service := NewDopingService(dopingRepo)
	ctx := context.Background()

	// Never doped: eligible anywhere.
	assert.NoError(t, service.CheckEligibility(ctx, 2, models.GameRebus))

	// Doped for the same game: not a conflict.
	assert.NoError(t, service.CheckEligibility(ctx, 1, models.GamePetanque))

	// Doped elsewhere: conflict naming the spent game.
	err := service.CheckEligibility(ctx, 1, models.GameRebus)
	var conflict *models.DopingConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, 1, conflict.PlayerID)
	assert.Equal(t, models.GamePetanque, conflict.Game)
}

func TestDopingUsage(t *testing.T) {
	dopingRepo := newFakeDopingRepo()
	dopingRepo.ledger[1] = models.GameKubb
	dopingRepo.ledger[4] = models.GameWiskunde
	service := NewDopingService(dopingRepo)

	ledger, err := service.Usage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.DopingLedger{1: models.GameKubb, 4: models.GameWiskunde}, ledger)
}
