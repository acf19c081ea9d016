package scoring

import (
	"math"
	"sort"

	"github.com/robinhio12/rockbrakel/models"
)

// RankedPlayer is one row of a category or overall ranking.
type RankedPlayer struct {
	PlayerID int    `json:"player_id"`
	Name     string `json:"name"`
	Number   int    `json:"number"`
	Points   int    `json:"points"`
}

// GamePoints returns one player's awarded points for one game given the
// resolved positions. Tournament games take their points straight from the
// final standings; every other game uses the points table. A doping entry
// for exactly this game doubles the award.
func GamePoints(snap *Snapshot, game models.Game, playerID int, positions map[models.Game]map[int]int) int {
	gamePositions, ok := positions[game]
	if !ok {
		return 0
	}
	if _, ok := gamePositions[playerID]; !ok {
		return 0
	}

	var points int
	if game.IsTournamentGame() {
		t := snap.tournament(game)
		if t == nil || !t.Finished() {
			return 0
		}
		for _, s := range t.FinalStandings {
			if s.PlayerID == playerID {
				points = s.Points
				break
			}
		}
	} else {
		points = PointsForPosition(gamePositions[playerID])
	}

	if snap.Doping.Doubles(playerID, game) {
		points *= 2
	}
	return points
}

// CategoryRanking sums every player's (possibly doubled) points across the
// category's games, descending. The ball games category breaks point ties by
// ascending petanque position.
func CategoryRanking(snap *Snapshot, category models.Category) []RankedPlayer {
	positions := ResolvePositions(snap)
	return categoryRanking(snap, category, positions)
}

func categoryRanking(snap *Snapshot, category models.Category, positions map[models.Game]map[int]int) []RankedPlayer {
	ranking := make([]RankedPlayer, 0, len(snap.Players))
	for _, player := range snap.Players {
		total := 0
		for _, game := range models.CategoryGames[category] {
			total += GamePoints(snap, game, player.ID, positions)
		}
		ranking = append(ranking, RankedPlayer{
			PlayerID: player.ID,
			Name:     player.Name,
			Number:   player.Number,
			Points:   total,
		})
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Points > ranking[j].Points
	})

	if category == models.CategoryBallGames {
		applyBallGamesTiebreaker(ranking, positions[models.GamePetanque])
	}
	return ranking
}

// applyBallGamesTiebreaker sub-sorts every group of equal category points by
// ascending petanque position. Players without a petanque position sort last
// within their group.
func applyBallGamesTiebreaker(ranking []RankedPlayer, petanque map[int]int) {
	position := func(playerID int) float64 {
		if p, ok := petanque[playerID]; ok {
			return float64(p)
		}
		return math.Inf(1)
	}
	start := 0
	for start < len(ranking) {
		end := start + 1
		for end < len(ranking) && ranking[end].Points == ranking[start].Points {
			end++
		}
		group := ranking[start:end]
		sort.SliceStable(group, func(i, j int) bool {
			return position(group[i].PlayerID) < position(group[j].PlayerID)
		})
		start = end
	}
}

// OverallRanking sums each player's points across all category rankings.
// Every game belongs to exactly one category, so this equals the sum of all
// game points per player, sorted descending.
func OverallRanking(snap *Snapshot) []RankedPlayer {
	positions := ResolvePositions(snap)

	totals := make(map[int]int, len(snap.Players))
	for _, category := range models.AllCategories {
		for _, row := range categoryRanking(snap, category, positions) {
			totals[row.PlayerID] += row.Points
		}
	}

	ranking := make([]RankedPlayer, 0, len(snap.Players))
	for _, player := range snap.Players {
		ranking = append(ranking, RankedPlayer{
			PlayerID: player.ID,
			Name:     player.Name,
			Number:   player.Number,
			Points:   totals[player.ID],
		})
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Points > ranking[j].Points
	})
	return ranking
}
