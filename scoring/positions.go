package scoring

import (
	"sort"
	"strings"

	"github.com/robinhio12/rockbrakel/models"
)

// ResolvePositions converts every game's raw results into a 1-based position
// per player. Games without any submitted result are absent from the map.
func ResolvePositions(snap *Snapshot) map[models.Game]map[int]int {
	positions := make(map[models.Game]map[int]int)
	for _, game := range models.AllGames {
		if p := ResolveGamePositions(snap, game); len(p) > 0 {
			positions[game] = p
		}
	}
	return positions
}

// ResolveGamePositions resolves a single game's positions with that game's
// ordering rule.
func ResolveGamePositions(snap *Snapshot, game models.Game) map[int]int {
	switch models.ResultKindOf(game) {
	case models.ResultKindJumps:
		return jumpPositions(snap.result(game))
	case models.ResultKindOrdering:
		return orderingPositions(snap.result(game))
	case models.ResultKindQuiz:
		key := models.AnswerKey(nil)
		if snap.AnswerKeys != nil {
			key = snap.AnswerKeys[game]
		}
		return quizPositions(game, snap.result(game), key)
	default:
		return tournamentPositions(snap, game)
	}
}

// jumpPositions ranks by jump count descending; equal counts keep ascending
// player id order.
func jumpPositions(res *models.GameResult) map[int]int {
	if res == nil || len(res.Jumps) == 0 {
		return nil
	}
	ids := make([]int, 0, len(res.Jumps))
	for id := range res.Jumps {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if res.Jumps[ids[i]] != res.Jumps[ids[j]] {
			return res.Jumps[ids[i]] > res.Jumps[ids[j]]
		}
		return ids[i] < ids[j]
	})
	positions := make(map[int]int, len(ids))
	for idx, id := range ids {
		positions[id] = idx + 1
	}
	return positions
}

// orderingPositions takes the explicit winner-to-loser sequence as-is.
func orderingPositions(res *models.GameResult) map[int]int {
	if res == nil || len(res.Ordering) == 0 {
		return nil
	}
	positions := make(map[int]int, len(res.Ordering))
	for idx, id := range res.Ordering {
		positions[id] = idx + 1
	}
	return positions
}

// tournamentPositions prefers final standings of a finished tournament and
// falls back to the legacy win-count ranking for partially-played data.
func tournamentPositions(snap *Snapshot, game models.Game) map[int]int {
	if t := snap.tournament(game); t != nil && t.Finished() {
		positions := make(map[int]int, len(t.FinalStandings))
		for _, s := range t.FinalStandings {
			positions[s.PlayerID] = s.Position
		}
		return positions
	}

	res := snap.result(game)
	if res == nil || len(res.Matches) == 0 {
		return nil
	}
	wins := make(map[int]int)
	for _, m := range res.Matches {
		wins[m.Winner]++
		if _, ok := wins[m.Loser]; !ok {
			wins[m.Loser] = 0
		}
	}
	numbers := snap.startNumbers()
	ids := make([]int, 0, len(wins))
	for id := range wins {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if wins[ids[i]] != wins[ids[j]] {
			return wins[ids[i]] > wins[ids[j]]
		}
		return numbers[ids[i]] < numbers[ids[j]]
	})
	positions := make(map[int]int, len(ids))
	for idx, id := range ids {
		positions[id] = idx + 1
	}
	return positions
}

// quizPositions ranks by correct answers descending, total time ascending.
func quizPositions(game models.Game, res *models.GameResult, key models.AnswerKey) map[int]int {
	if res == nil || len(res.Quiz) == 0 {
		return nil
	}
	type score struct {
		playerID int
		correct  int
		time     float64
	}
	scores := make([]score, 0, len(res.Quiz))
	for id, entry := range res.Quiz {
		scores = append(scores, score{
			playerID: id,
			correct:  CorrectAnswers(game, entry.Answers, key),
			time:     entry.TimeSeconds,
		})
	}
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].correct != scores[j].correct {
			return scores[i].correct > scores[j].correct
		}
		if scores[i].time != scores[j].time {
			return scores[i].time < scores[j].time
		}
		return scores[i].playerID < scores[j].playerID
	})
	positions := make(map[int]int, len(scores))
	for idx, s := range scores {
		positions[s.playerID] = idx + 1
	}
	return positions
}

// CorrectAnswers counts a quiz submission against the answer key. Answers
// compare case-insensitively after trimming. Two question shapes are
// special: wiskunde questions 1 and 2 are ordered comma pairs where both
// parts must match, and rebus question 10 holds four comma-separated
// sub-answers compared as unordered sets.
func CorrectAnswers(game models.Game, answers []string, key models.AnswerKey) int {
	if len(key) != models.AnswerKeyLength || len(answers) != models.AnswerKeyLength {
		return 0
	}
	correct := 0
	for i := range answers {
		switch {
		case game == models.GameWiskunde && (i == 0 || i == 1):
			if orderedPairMatches(answers[i], key[i]) {
				correct++
			}
		case game == models.GameRebus && i == 9:
			if unorderedSetMatches(answers[i], key[i], 4) {
				correct++
			}
		default:
			if normalize(answers[i]) == normalize(key[i]) {
				correct++
			}
		}
	}
	return correct
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func orderedPairMatches(answer, key string) bool {
	if strings.TrimSpace(answer) == "" || strings.TrimSpace(key) == "" {
		return false
	}
	answerParts := strings.Split(answer, ",")
	keyParts := strings.Split(key, ",")
	if len(answerParts) != 2 || len(keyParts) != 2 {
		return false
	}
	return normalize(answerParts[0]) == normalize(keyParts[0]) &&
		normalize(answerParts[1]) == normalize(keyParts[1])
}

func unorderedSetMatches(answer, key string, parts int) bool {
	if strings.TrimSpace(answer) == "" || strings.TrimSpace(key) == "" {
		return false
	}
	answerParts := strings.Split(answer, ",")
	keyParts := strings.Split(key, ",")
	if len(answerParts) != parts || len(keyParts) != parts {
		return false
	}
	answerSet := make(map[string]bool, parts)
	for _, p := range answerParts {
		answerSet[normalize(p)] = true
	}
	keySet := make(map[string]bool, parts)
	for _, p := range keyParts {
		keySet[normalize(p)] = true
	}
	if len(answerSet) != len(keySet) {
		return false
	}
	for p := range keySet {
		if !answerSet[p] {
			return false
		}
	}
	return true
}
