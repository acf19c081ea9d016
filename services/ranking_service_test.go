package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robinhio12/rockbrakel/models"
)

type rankingFixture struct {
	playerRepo     *fakePlayerRepo
	resultRepo     *fakeResultRepo
	answerKeyRepo  *fakeAnswerKeyRepo
	tournamentRepo *fakeTournamentRepo
	dopingRepo     *fakeDopingRepo
	service        RankingService
}

func newRankingFixture(players ...models.Player) *rankingFixture {
	f := &rankingFixture{
		playerRepo:     newFakePlayerRepo(players...),
		resultRepo:     newFakeResultRepo(),
		answerKeyRepo:  newFakeAnswerKeyRepo(),
		tournamentRepo: newFakeTournamentRepo(),
		dopingRepo:     newFakeDopingRepo(),
	}
	f.service = NewRankingService(
		f.playerRepo,
		f.resultRepo,
		f.answerKeyRepo,
		f.tournamentRepo,
		f.dopingRepo,
		NewPlayerService(f.playerRepo, nil),
	)
	return f
}

func TestRankingsReturnsAllFourJerseys(t *testing.T) {
	f := newRankingFixture(
		models.Player{ID: 1, Name: "Ann", Number: 1},
		models.Player{ID: 2, Name: "Bert", Number: 2},
	)
	f.resultRepo.results[models.GameTouwspringen] = &models.GameResult{
		Kind:  models.ResultKindJumps,
		Jumps: map[int]int{1: 12, 2: 30},
	}

	rankings, err := f.service.Rankings(context.Background())
	require.NoError(t, err)

	require.Len(t, rankings.GeleTrui, 2)
	require.Len(t, rankings.GroeneTrui, 2)
	require.Len(t, rankings.BolletjesTrui, 2)
	require.Len(t, rankings.WitteTrui, 2)

	assert.Equal(t, 2, rankings.GroeneTrui[0].PlayerID)
	assert.Equal(t, 25, rankings.GroeneTrui[0].Points)
	assert.Equal(t, 2, rankings.GeleTrui[0].PlayerID)
	assert.Equal(t, 0, rankings.BolletjesTrui[0].Points)
}

func TestCheckWinnersGatedOnCategoryCompletion(t *testing.T) {
	f := newRankingFixture(
		models.Player{ID: 1, Name: "Ann", Number: 1},
		models.Player{ID: 2, Name: "Bert", Number: 2},
	)
	ctx := context.Background()

	// Half the speed category scored: no winner yet.
	f.resultRepo.results[models.GameTouwspringen] = &models.GameResult{
		Kind:  models.ResultKindJumps,
		Jumps: map[int]int{1: 12, 2: 30},
	}
	winners, err := f.service.CheckWinners(ctx)
	require.NoError(t, err)
	assert.Empty(t, winners)

	f.resultRepo.results[models.GameStoelendans] = &models.GameResult{
		Kind:     models.ResultKindOrdering,
		Ordering: []int{2, 1},
	}
	winners, err = f.service.CheckWinners(ctx)
	require.NoError(t, err)
	require.Contains(t, winners, models.JerseyGroeneTrui)
	assert.Equal(t, 2, winners[models.JerseyGroeneTrui].ID)
	assert.Equal(t, "Bert", winners[models.JerseyGroeneTrui].Name)
	assert.Equal(t, 50, winners[models.JerseyGroeneTrui].Points)
	assert.NotContains(t, winners, models.JerseyGeleTrui)
}

func TestDismissWinnerHidesJersey(t *testing.T) {
	f := newRankingFixture(models.Player{ID: 1, Name: "Ann", Number: 1})
	ctx := context.Background()

	f.resultRepo.results[models.GameTouwspringen] = &models.GameResult{
		Kind:  models.ResultKindJumps,
		Jumps: map[int]int{1: 12},
	}
	f.resultRepo.results[models.GameStoelendans] = &models.GameResult{
		Kind:     models.ResultKindOrdering,
		Ordering: []int{1},
	}

	winners, err := f.service.CheckWinners(ctx)
	require.NoError(t, err)
	require.Contains(t, winners, models.JerseyGroeneTrui)

	f.service.DismissWinner(models.JerseyGroeneTrui)

	winners, err = f.service.CheckWinners(ctx)
	require.NoError(t, err)
	assert.NotContains(t, winners, models.JerseyGroeneTrui)
}
