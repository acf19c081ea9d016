package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robinhio12/rockbrakel/models"
)

func snapshotPlayers(n int) []models.Player {
	players := make([]models.Player, n)
	for i := range players {
		players[i] = models.Player{ID: i + 1, Name: "Player", Number: i + 1}
	}
	return players
}

func TestJumpPositions(t *testing.T) {
	snap := &Snapshot{
		Players: snapshotPlayers(3),
		Results: map[models.Game]*models.GameResult{
			models.GameTouwspringen: {
				Kind:  models.ResultKindJumps,
				Jumps: map[int]int{1: 10, 2: 15, 3: 7},
			},
		},
	}

	positions := ResolveGamePositions(snap, models.GameTouwspringen)
	assert.Equal(t, map[int]int{2: 1, 1: 2, 3: 3}, positions)
}

func TestJumpPositionsTieKeepsAscendingIDOrder(t *testing.T) {
	snap := &Snapshot{
		Results: map[models.Game]*models.GameResult{
			models.GameTouwspringen: {
				Kind:  models.ResultKindJumps,
				Jumps: map[int]int{3: 12, 1: 12, 2: 20},
			},
		},
	}

	positions := ResolveGamePositions(snap, models.GameTouwspringen)
	assert.Equal(t, map[int]int{2: 1, 1: 2, 3: 3}, positions)
}

func TestOrderingPositions(t *testing.T) {
	snap := &Snapshot{
		Results: map[models.Game]*models.GameResult{
			models.GameStoelendans: {
				Kind:     models.ResultKindOrdering,
				Ordering: []int{4, 2, 1, 3},
			},
		},
	}

	positions := ResolveGamePositions(snap, models.GameStoelendans)
	assert.Equal(t, map[int]int{4: 1, 2: 2, 1: 3, 3: 4}, positions)
}

func TestTournamentPositionsFromFinalStandings(t *testing.T) {
	snap := &Snapshot{
		Tournaments: map[models.Game]*models.Tournament{
			models.GamePetanque: {
				Game: models.GamePetanque,
				FinalStandings: []models.Standing{
					{PlayerID: 3, Position: 1, Points: 25},
					{PlayerID: 1, Position: 2, Points: 22},
					{PlayerID: 2, Position: 3, Points: 15},
				},
			},
		},
	}

	positions := ResolveGamePositions(snap, models.GamePetanque)
	assert.Equal(t, map[int]int{3: 1, 1: 2, 2: 3}, positions)
}

func TestTournamentPositionsLegacyWinCountFallback(t *testing.T) {
	// No bracket stored; loose match outcomes rank by win count with the
	// start number as tie-break.
	snap := &Snapshot{
		Players: []models.Player{
			{ID: 1, Number: 7},
			{ID: 2, Number: 3},
			{ID: 3, Number: 5},
		},
		Results: map[models.Game]*models.GameResult{
			models.GameKubb: {
				Kind: models.ResultKindMatches,
				Matches: []models.MatchOutcome{
					{Winner: 1, Loser: 3},
					{Winner: 2, Loser: 3},
				},
			},
		},
	}

	positions := ResolveGamePositions(snap, models.GameKubb)
	// Players 1 and 2 both have one win; player 2 has the lower start number.
	assert.Equal(t, map[int]int{2: 1, 1: 2, 3: 3}, positions)
}

func TestResolvePositionsSkipsGamesWithoutResults(t *testing.T) {
	snap := &Snapshot{
		Players: snapshotPlayers(2),
		Results: map[models.Game]*models.GameResult{
			models.GameTouwspringen: {
				Kind:  models.ResultKindJumps,
				Jumps: map[int]int{1: 5, 2: 3},
			},
		},
	}

	positions := ResolvePositions(snap)
	require.Len(t, positions, 1)
	assert.Contains(t, positions, models.GameTouwspringen)
}

func TestQuizPositionsRankByCorrectThenTime(t *testing.T) {
	key := models.AnswerKey{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}
	perfect := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}
	eight := []string{"a", "b", "c", "d", "e", "f", "g", "h", "x", "x"}

	snap := &Snapshot{
		AnswerKeys: map[models.Game]models.AnswerKey{models.GameRebus: key},
		Results: map[models.Game]*models.GameResult{
			models.GameRebus: {
				Kind: models.ResultKindQuiz,
				Quiz: map[int]models.QuizEntry{
					1: {Answers: perfect, TimeSeconds: 120},
					2: {Answers: perfect, TimeSeconds: 90},
					3: {Answers: eight, TimeSeconds: 30},
				},
			},
		},
	}

	positions := ResolveGamePositions(snap, models.GameRebus)
	assert.Equal(t, map[int]int{2: 1, 1: 2, 3: 3}, positions)
}

func TestCorrectAnswersPlainComparison(t *testing.T) {
	key := models.AnswerKey{"Rock Brakel", "b", "c", "d", "e", "f", "g", "h", "i", "j"}
	answers := []string{" rock brakel ", "B", "wrong", "d", "e", "f", "g", "h", "i", "j"}

	assert.Equal(t, 9, CorrectAnswers(models.GameRebus, answers, key))
}

func TestCorrectAnswersWithoutKeyGradesZero(t *testing.T) {
	answers := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}
	assert.Equal(t, 0, CorrectAnswers(models.GameRebus, answers, nil))
	assert.Equal(t, 0, CorrectAnswers(models.GameRebus, answers, models.AnswerKey{"a"}))
}

func TestCorrectAnswersWiskundeOrderedPairs(t *testing.T) {
	key := models.AnswerKey{"3,7", "12, 4", "c", "d", "e", "f", "g", "h", "i", "j"}
	base := []string{"", "", "c", "d", "e", "f", "g", "h", "i", "j"}

	match := append([]string{}, base...)
	match[0] = "3, 7"
	match[1] = "12,4"
	assert.Equal(t, 10, CorrectAnswers(models.GameWiskunde, match, key))

	// The pair is ordered: swapping the parts fails the question.
	swapped := append([]string{}, base...)
	swapped[0] = "7,3"
	swapped[1] = "12,4"
	assert.Equal(t, 9, CorrectAnswers(models.GameWiskunde, swapped, key))
}

func TestCorrectAnswersRebusLastQuestionUnorderedSet(t *testing.T) {
	key := models.AnswerKey{"a", "b", "c", "d", "e", "f", "g", "h", "i", "noord,oost,zuid,west"}
	base := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", ""}

	shuffled := append([]string{}, base...)
	shuffled[9] = "west, zuid, Noord, oost"
	assert.Equal(t, 10, CorrectAnswers(models.GameRebus, shuffled, key))

	incomplete := append([]string{}, base...)
	incomplete[9] = "noord,oost,zuid"
	assert.Equal(t, 9, CorrectAnswers(models.GameRebus, incomplete, key))

	wrong := append([]string{}, base...)
	wrong[9] = "noord,oost,zuid,fout"
	assert.Equal(t, 9, CorrectAnswers(models.GameRebus, wrong, key))
}
