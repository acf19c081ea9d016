package brackets

import (
	"sort"

	"github.com/robinhio12/rockbrakel/models"
)

// Tournament points by finishing depth. The final decides positions 1 and 2;
// everyone else is scored by the round they were eliminated in.
const (
	PointsFinalWinner       = 25
	PointsFinalLoser        = 22
	PointsSemiFinalLoser    = 15
	PointsQuarterFinalLoser = 8
	PointsRoundOf16Loser    = 4
)

// DeriveStandings converts a completed tournament's round history into
// point-ranked standings. It is a pure function of the rounds: re-running it
// on the same tournament yields the identical list.
func DeriveStandings(t *models.Tournament) []models.Standing {
	if len(t.Rounds) == 0 {
		return []models.Standing{}
	}

	var standings []models.Standing

	finalRound := t.Rounds[len(t.Rounds)-1]
	if len(finalRound) == 0 {
		return []models.Standing{}
	}
	finalMatch := finalRound[0]

	var finalWinner, finalLoser int
	if finalMatch.Winner != nil {
		finalWinner = *finalMatch.Winner
		standings = append(standings, models.Standing{
			PlayerID: finalWinner,
			Position: 1,
			Points:   PointsFinalWinner,
		})
	}
	if finalMatch.Loser != nil {
		finalLoser = *finalMatch.Loser
		standings = append(standings, models.Standing{
			PlayerID: finalLoser,
			Position: 2,
			Points:   PointsFinalLoser,
		})
	}

	// Round index at which each remaining player was eliminated, in order of
	// discovery while scanning rounds. That scan order is the tie-break for
	// equal points.
	type elimination struct {
		playerID int
		round    int
	}
	var eliminated []elimination
	seen := map[int]bool{finalWinner: true, finalLoser: true}
	for roundIdx, round := range t.Rounds {
		for _, m := range round {
			if !m.Completed || m.Loser == nil {
				continue
			}
			if seen[*m.Loser] {
				continue
			}
			seen[*m.Loser] = true
			eliminated = append(eliminated, elimination{playerID: *m.Loser, round: roundIdx})
		}
	}

	lastRound := len(t.Rounds) - 1
	for _, e := range eliminated {
		var points int
		switch e.round {
		case lastRound - 1:
			points = PointsSemiFinalLoser
		case lastRound - 2:
			points = PointsQuarterFinalLoser
		case lastRound - 3:
			points = PointsRoundOf16Loser
		default:
			points = 0
		}
		standings = append(standings, models.Standing{
			PlayerID: e.playerID,
			Position: len(standings) + 1,
			Points:   points,
		})
	}

	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].Points > standings[j].Points
	})
	for i := range standings {
		standings[i].Position = i + 1
	}
	return standings
}
