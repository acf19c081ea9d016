package models

// Match is a single pairing inside a tournament round. Player2 == nil means
// the match is a bye: Player1 advances automatically and the match is created
// already completed.
type Match struct {
	MatchID   string `json:"match_id"`
	Round     int    `json:"round"` // zero-based round index
	Player1   int    `json:"player1"`
	Player2   *int   `json:"player2"`
	Winner    *int   `json:"winner"`
	Loser     *int   `json:"loser"`
	Doping1   bool   `json:"doping1"` // winner slot used doping
	Doping2   bool   `json:"doping2"` // loser slot used doping
	Completed bool   `json:"completed"`
}

// IsBye reports whether the match is an auto-completed bye.
func (m *Match) IsBye() bool {
	return m.Player2 == nil
}

// Round is the ordered set of matches at one elimination depth.
type Round []*Match

// Standing is a player's final tournament position with awarded points.
type Standing struct {
	PlayerID int `json:"player_id"`
	Position int `json:"position"`
	Points   int `json:"points"`
}

// Tournament holds the full knock-out state for one tournament game.
// It is created by the bracket generator and mutated only through match
// submission until the final round completes, after which FinalStandings is
// filled exactly once and the tournament no longer accepts mutations.
type Tournament struct {
	Game           Game       `json:"game"`
	Rounds         []Round    `json:"rounds"`
	CurrentRound   int        `json:"current_round"`
	FinalStandings []Standing `json:"final_standings"`
	NumRounds      int        `json:"num_rounds"`
	ByePlayers     []int      `json:"bye_players"` // every player that ever received a bye
}

// Finished reports whether final standings have been derived.
func (t *Tournament) Finished() bool {
	return len(t.FinalStandings) > 0
}

// HadBye reports whether the player has ever received a bye in this
// tournament. ByePlayers only grows, so a bye is a permanent exclusion.
func (t *Tournament) HadBye(playerID int) bool {
	for _, id := range t.ByePlayers {
		if id == playerID {
			return true
		}
	}
	return false
}

// AllMatches returns every match of every round in round order.
func (t *Tournament) AllMatches() []*Match {
	var all []*Match
	for _, round := range t.Rounds {
		all = append(all, round...)
	}
	return all
}

// FindMatch looks a match up by id across all rounds.
func (t *Tournament) FindMatch(matchID string) *Match {
	for _, round := range t.Rounds {
		for _, m := range round {
			if m.MatchID == matchID {
				return m
			}
		}
	}
	return nil
}
