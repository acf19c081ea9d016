package scoring

import "github.com/robinhio12/rockbrakel/models"

// Snapshot is one consistent read of all sportdag state. Ranking and
// position computations are pure functions of a snapshot, so they may run
// concurrently with each other as long as no mutation touches the same data.
type Snapshot struct {
	Players     []models.Player
	Results     map[models.Game]*models.GameResult
	AnswerKeys  map[models.Game]models.AnswerKey
	Tournaments map[models.Game]*models.Tournament
	Doping      models.DopingLedger
}

func (s *Snapshot) result(g models.Game) *models.GameResult {
	if s.Results == nil {
		return nil
	}
	return s.Results[g]
}

func (s *Snapshot) tournament(g models.Game) *models.Tournament {
	if s.Tournaments == nil {
		return nil
	}
	return s.Tournaments[g]
}

// startNumbers maps player id to start number, used as a deterministic
// tie-break in the legacy win-count fallback.
func (s *Snapshot) startNumbers() map[int]int {
	numbers := make(map[int]int, len(s.Players))
	for _, p := range s.Players {
		numbers[p.ID] = p.Number
	}
	return numbers
}
