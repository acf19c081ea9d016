package models

// ResultKind tags the shape of a game's raw result payload.
type ResultKind string

const (
	// ResultKindJumps stores one numeric jump count per player.
	ResultKindJumps ResultKind = "jumps"
	// ResultKindOrdering stores a single winner-to-loser finish order.
	ResultKindOrdering ResultKind = "ordering"
	// ResultKindQuiz stores ten answers plus a total time per player.
	ResultKindQuiz ResultKind = "quiz"
	// ResultKindMatches stores loose winner/loser pairs. Only used as the
	// legacy fallback for tournament games recorded before the knock-out
	// bracket existed.
	ResultKindMatches ResultKind = "matches"
)

// ResultKindOf returns the payload shape a game's results use.
func ResultKindOf(g Game) ResultKind {
	switch g {
	case GameTouwspringen:
		return ResultKindJumps
	case GameStoelendans:
		return ResultKindOrdering
	case GameRebus, GameWiskunde:
		return ResultKindQuiz
	default:
		return ResultKindMatches
	}
}

// QuizEntry is one player's submission for a brain game.
type QuizEntry struct {
	Answers     []string `json:"answers"`
	TimeSeconds float64  `json:"time_seconds_total"`
}

// MatchOutcome is a loose winner/loser pair from the pre-bracket era.
type MatchOutcome struct {
	Winner int `json:"winner"`
	Loser  int `json:"loser"`
}

// GameResult is the tagged union of raw result payloads for a single game.
// Exactly one of the payload fields is populated, selected by Kind.
type GameResult struct {
	Kind     ResultKind        `json:"kind"`
	Jumps    map[int]int       `json:"jumps,omitempty"`
	Ordering []int             `json:"ordering,omitempty"`
	Quiz     map[int]QuizEntry `json:"quiz,omitempty"`
	Matches  []MatchOutcome    `json:"matches,omitempty"`
}

// NewGameResult returns an empty result of the right shape for the game.
func NewGameResult(g Game) *GameResult {
	r := &GameResult{Kind: ResultKindOf(g)}
	switch r.Kind {
	case ResultKindJumps:
		r.Jumps = make(map[int]int)
	case ResultKindQuiz:
		r.Quiz = make(map[int]QuizEntry)
	}
	return r
}

// SubmittedCount is the number of individual player results the payload
// holds. Category completion compares the sum of these counts against
// playerCount x gameCount.
func (r *GameResult) SubmittedCount() int {
	if r == nil {
		return 0
	}
	switch r.Kind {
	case ResultKindJumps:
		return len(r.Jumps)
	case ResultKindOrdering:
		return len(r.Ordering)
	case ResultKindQuiz:
		return len(r.Quiz)
	case ResultKindMatches:
		return len(r.Matches)
	}
	return 0
}

// HasResultFor reports whether the player already has a submission in this
// payload. The stoelendans ordering is one shared submission, so any
// non-empty ordering counts for every player.
func (r *GameResult) HasResultFor(playerID int) bool {
	if r == nil {
		return false
	}
	switch r.Kind {
	case ResultKindJumps:
		_, ok := r.Jumps[playerID]
		return ok
	case ResultKindOrdering:
		return len(r.Ordering) > 0
	case ResultKindQuiz:
		_, ok := r.Quiz[playerID]
		return ok
	case ResultKindMatches:
		for _, m := range r.Matches {
			if m.Winner == playerID || m.Loser == playerID {
				return true
			}
		}
	}
	return false
}

// AnswerKey holds the ten canonical answers of a brain game.
type AnswerKey []string

// AnswerKeyLength is the required number of answers per brain game.
const AnswerKeyLength = 10
