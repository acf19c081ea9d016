package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasResultFor(t *testing.T) {
	jumps := NewGameResult(GameTouwspringen)
	jumps.Jumps[1] = 12
	assert.True(t, jumps.HasResultFor(1))
	assert.False(t, jumps.HasResultFor(2))

	// The chairs ordering is one shared submission: once it exists, every
	// player counts as scored.
	ordering := NewGameResult(GameStoelendans)
	assert.False(t, ordering.HasResultFor(1))
	ordering.Ordering = []int{2, 3}
	assert.True(t, ordering.HasResultFor(1))

	var nilResult *GameResult
	assert.False(t, nilResult.HasResultFor(1))
	assert.Equal(t, 0, nilResult.SubmittedCount())
}

func TestResultKindOf(t *testing.T) {
	assert.Equal(t, ResultKindJumps, ResultKindOf(GameTouwspringen))
	assert.Equal(t, ResultKindOrdering, ResultKindOf(GameStoelendans))
	assert.Equal(t, ResultKindQuiz, ResultKindOf(GameRebus))
	assert.Equal(t, ResultKindQuiz, ResultKindOf(GameWiskunde))
	assert.Equal(t, ResultKindMatches, ResultKindOf(GamePetanque))
	assert.Equal(t, ResultKindMatches, ResultKindOf(GameKubb))
}
