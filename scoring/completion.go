package scoring

import "github.com/robinhio12/rockbrakel/models"

// submittedCount is how many individual results a game has. Tournament games
// count the players with a final standing once the knock-out is finished;
// before that, the distinct players with a completed non-bye match.
func submittedCount(snap *Snapshot, game models.Game) int {
	if !game.IsTournamentGame() {
		return snap.result(game).SubmittedCount()
	}
	t := snap.tournament(game)
	if t == nil {
		return snap.result(game).SubmittedCount()
	}
	if t.Finished() {
		return len(t.FinalStandings)
	}
	seen := make(map[int]bool)
	for _, m := range t.AllMatches() {
		if !m.Completed || m.IsBye() {
			continue
		}
		seen[m.Player1] = true
		if m.Player2 != nil {
			seen[*m.Player2] = true
		}
	}
	return len(seen)
}

// AllScoresIn reports whether the submitted result count across a category's
// games equals playerCount x gameCount exactly. Surfacing of the category
// winner is gated on this.
func AllScoresIn(snap *Snapshot, category models.Category) bool {
	games := models.CategoryGames[category]
	if len(snap.Players) == 0 || len(games) == 0 {
		return false
	}
	scored := 0
	for _, game := range games {
		scored += submittedCount(snap, game)
	}
	return scored == len(snap.Players)*len(games)
}

// AllScoresInOverall is AllScoresIn over all six games.
func AllScoresInOverall(snap *Snapshot) bool {
	if len(snap.Players) == 0 {
		return false
	}
	scored := 0
	for _, game := range models.AllGames {
		scored += submittedCount(snap, game)
	}
	return scored == len(snap.Players)*len(models.AllGames)
}
