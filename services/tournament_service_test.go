package services

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robinhio12/rockbrakel/models"
)

type tournamentFixture struct {
	playerRepo     *fakePlayerRepo
	tournamentRepo *fakeTournamentRepo
	dopingRepo     *fakeDopingRepo
	service        *tournamentService
}

// The db handle stays nil: these tests stop before the transactional commit,
// or only exercise paths that write through the repository directly.
func newTournamentFixture(players ...models.Player) *tournamentFixture {
	f := &tournamentFixture{
		playerRepo:     newFakePlayerRepo(players...),
		tournamentRepo: newFakeTournamentRepo(),
		dopingRepo:     newFakeDopingRepo(),
	}
	svc := NewTournamentService(nil, f.tournamentRepo, f.dopingRepo, f.playerRepo, nil, testLogger())
	f.service = svc.(*tournamentService)
	f.service.newSource = func() rand.Source { return rand.NewSource(1) }
	return f
}

func fourPlayers() []models.Player {
	return []models.Player{
		{ID: 1, Name: "Ann", Number: 1},
		{ID: 2, Name: "Bert", Number: 2},
		{ID: 3, Name: "Chris", Number: 3},
		{ID: 4, Name: "Dirk", Number: 4},
	}
}

func TestGenerateBracket(t *testing.T) {
	f := newTournamentFixture(fourPlayers()...)
	ctx := context.Background()

	tournament, err := f.service.GenerateBracket(ctx, models.GamePetanque)
	require.NoError(t, err)
	assert.Equal(t, 2, tournament.NumRounds)
	require.Len(t, tournament.Rounds, 1)
	require.Len(t, tournament.Rounds[0], 2)

	stored, err := f.service.GetTournament(ctx, models.GamePetanque)
	require.NoError(t, err)
	assert.Equal(t, tournament, stored)
}

func TestGenerateBracketReplacesPrevious(t *testing.T) {
	f := newTournamentFixture(fourPlayers()...)
	ctx := context.Background()

	first, err := f.service.GenerateBracket(ctx, models.GameKubb)
	require.NoError(t, err)
	second, err := f.service.GenerateBracket(ctx, models.GameKubb)
	require.NoError(t, err)

	stored, err := f.service.GetTournament(ctx, models.GameKubb)
	require.NoError(t, err)
	assert.Same(t, second, stored)
	assert.NotSame(t, first, stored)
}

func TestGenerateBracketRejectsNonTournamentGame(t *testing.T) {
	f := newTournamentFixture(fourPlayers()...)

	_, err := f.service.GenerateBracket(context.Background(), models.GameRebus)
	require.ErrorIs(t, err, ErrNotATournamentGame)
}

func TestGenerateBracketNotEnoughPlayers(t *testing.T) {
	f := newTournamentFixture(models.Player{ID: 1, Name: "Ann", Number: 1})

	_, err := f.service.GenerateBracket(context.Background(), models.GamePetanque)
	require.ErrorIs(t, err, ErrNotEnoughPlayers)
}

func TestGetTournamentNotGenerated(t *testing.T) {
	f := newTournamentFixture(fourPlayers()...)

	_, err := f.service.GetTournament(context.Background(), models.GamePetanque)
	require.ErrorIs(t, err, ErrTournamentNotFound)
}

func TestListMatchesNumbersRoundsFromOne(t *testing.T) {
	f := newTournamentFixture(fourPlayers()...)
	ctx := context.Background()

	_, err := f.service.GenerateBracket(ctx, models.GamePetanque)
	require.NoError(t, err)

	matches, err := f.service.ListMatches(ctx, models.GamePetanque)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	for _, view := range matches {
		assert.Equal(t, 1, view.Round)
		assert.Equal(t, 1, view.CurrentRound)
		assert.Equal(t, 2, view.TotalRounds)
	}
}

func TestHasResults(t *testing.T) {
	f := newTournamentFixture(fourPlayers()...)
	ctx := context.Background()

	results, err := f.service.HasResults(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[models.Game]bool{
		models.GameKubb:     false,
		models.GamePetanque: false,
	}, results)

	tournament, err := f.service.GenerateBracket(ctx, models.GamePetanque)
	require.NoError(t, err)

	// Open matches do not count.
	results, err = f.service.HasResults(ctx)
	require.NoError(t, err)
	assert.False(t, results[models.GamePetanque])

	m := tournament.Rounds[0][0]
	winner := m.Player1
	m.Winner = &winner
	m.Completed = true

	results, err = f.service.HasResults(ctx)
	require.NoError(t, err)
	assert.True(t, results[models.GamePetanque])
	assert.False(t, results[models.GameKubb])
}

func TestHasResultsIgnoresByes(t *testing.T) {
	byeWinner := 3
	f := newTournamentFixture(fourPlayers()...)
	f.tournamentRepo.tournaments[models.GameKubb] = &models.Tournament{
		Game:      models.GameKubb,
		NumRounds: 2,
		Rounds: []models.Round{{
			&models.Match{MatchID: "kubb_r1_bye", Player1: byeWinner, Winner: &byeWinner, Completed: true},
		}},
		ByePlayers: []int{byeWinner},
	}

	results, err := f.service.HasResults(context.Background())
	require.NoError(t, err)
	assert.False(t, results[models.GameKubb])
}

func TestSubmitMatchResultUnknownTournament(t *testing.T) {
	f := newTournamentFixture(fourPlayers()...)

	_, err := f.service.SubmitMatchResult(context.Background(), models.GamePetanque, SubmitMatchInput{
		MatchID:  "petanque_r1_m0",
		WinnerID: 1,
		LoserID:  2,
	})
	require.ErrorIs(t, err, ErrTournamentNotFound)
}

func TestSubmitMatchResultUnknownMatch(t *testing.T) {
	f := newTournamentFixture(fourPlayers()...)
	ctx := context.Background()

	_, err := f.service.GenerateBracket(ctx, models.GamePetanque)
	require.NoError(t, err)

	_, err = f.service.SubmitMatchResult(ctx, models.GamePetanque, SubmitMatchInput{
		MatchID:  "petanque_r9_m9",
		WinnerID: 1,
		LoserID:  2,
	})
	require.ErrorIs(t, err, ErrMatchNotFound)
}

func TestSubmitMatchResultDopingConflictPassesThrough(t *testing.T) {
	f := newTournamentFixture(fourPlayers()...)
	ctx := context.Background()

	tournament, err := f.service.GenerateBracket(ctx, models.GamePetanque)
	require.NoError(t, err)
	m := tournament.Rounds[0][0]
	f.dopingRepo.ledger[m.Player1] = models.GameRebus

	_, err = f.service.SubmitMatchResult(ctx, models.GamePetanque, SubmitMatchInput{
		MatchID:  m.MatchID,
		WinnerID: m.Player1,
		LoserID:  *m.Player2,
		Doping1:  true,
	})

	var conflict *models.DopingConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, models.GameRebus, conflict.Game)
	assert.False(t, m.Completed)
}
