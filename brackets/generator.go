package brackets

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/robinhio12/rockbrakel/models"
)

var (
	ErrNotEnoughPlayers = errors.New("not enough players to generate a knock-out bracket (minimum 2)")
	ErrNotTournament    = errors.New("game is not played as a knock-out tournament")
)

// Generate builds a fresh single-elimination tournament for the given game.
// The player list is shuffled with the supplied source so that brackets are
// reproducible in tests; pass a time-seeded source in production. The result
// replaces any previous tournament for the game.
func Generate(game models.Game, players []models.Player, src rand.Source) (*models.Tournament, error) {
	if !game.IsTournamentGame() {
		return nil, fmt.Errorf("%w: %s", ErrNotTournament, game)
	}
	if len(players) < 2 {
		return nil, ErrNotEnoughPlayers
	}

	seeded := make([]models.Player, len(players))
	copy(seeded, players)
	rand.New(src).Shuffle(len(seeded), func(i, j int) {
		seeded[i], seeded[j] = seeded[j], seeded[i]
	})

	t := &models.Tournament{
		Game:           game,
		Rounds:         []models.Round{},
		CurrentRound:   0,
		FinalStandings: []models.Standing{},
		NumRounds:      int(math.Ceil(math.Log2(float64(len(seeded))))),
		ByePlayers:     []int{},
	}

	var first models.Round
	for i := 0; i < len(seeded); i += 2 {
		if i+1 < len(seeded) {
			p2 := seeded[i+1].ID
			first = append(first, &models.Match{
				MatchID: matchID(game, 0, i/2),
				Round:   0,
				Player1: seeded[i].ID,
				Player2: &p2,
			})
			continue
		}
		// Odd player count: the last unpaired player advances on a bye.
		winner := seeded[i].ID
		first = append(first, &models.Match{
			MatchID:   matchID(game, 0, i/2),
			Round:     0,
			Player1:   winner,
			Winner:    &winner,
			Completed: true,
		})
		t.ByePlayers = append(t.ByePlayers, winner)
	}

	t.Rounds = append(t.Rounds, first)
	return t, nil
}

func matchID(game models.Game, round, order int) string {
	return fmt.Sprintf("%s_r%d_m%d", game, round+1, order)
}

func byeMatchID(game models.Game, round int) string {
	return fmt.Sprintf("%s_r%d_bye", game, round+1)
}
