package models

// Game identifies one of the six sportdag games.
type Game string

const (
	GameTouwspringen Game = "touwspringen"
	GameStoelendans  Game = "stoelendans"
	GamePetanque     Game = "petanque"
	GameKubb         Game = "kubb"
	GameRebus        Game = "rebus"
	GameWiskunde     Game = "wiskunde"
)

// Category groups games whose points are summed into one classification.
type Category string

const (
	CategorySpeedGames Category = "speed_games"
	CategoryBallGames  Category = "ball_games"
	CategoryBrainGames Category = "brain_games"
)

// Jersey is the presentational label for a classification leader.
type Jersey string

const (
	JerseyGeleTrui      Jersey = "gele_trui"      // overall
	JerseyGroeneTrui    Jersey = "groene_trui"    // speed games
	JerseyBolletjesTrui Jersey = "bolletjes_trui" // ball games
	JerseyWitteTrui     Jersey = "witte_trui"     // brain games
)

var AllGames = []Game{
	GameTouwspringen,
	GameStoelendans,
	GamePetanque,
	GameKubb,
	GameRebus,
	GameWiskunde,
}

var AllCategories = []Category{
	CategorySpeedGames,
	CategoryBallGames,
	CategoryBrainGames,
}

// CategoryGames maps every category to its games, in fixed order.
var CategoryGames = map[Category][]Game{
	CategorySpeedGames: {GameTouwspringen, GameStoelendans},
	CategoryBallGames:  {GamePetanque, GameKubb},
	CategoryBrainGames: {GameRebus, GameWiskunde},
}

// CategoryJerseys maps a category to its jersey label.
var CategoryJerseys = map[Category]Jersey{
	CategorySpeedGames: JerseyGroeneTrui,
	CategoryBallGames:  JerseyBolletjesTrui,
	CategoryBrainGames: JerseyWitteTrui,
}

func ParseGame(s string) (Game, bool) {
	g := Game(s)
	for _, known := range AllGames {
		if g == known {
			return g, true
		}
	}
	return "", false
}

func ParseCategory(s string) (Category, bool) {
	c := Category(s)
	for _, known := range AllCategories {
		if c == known {
			return c, true
		}
	}
	return "", false
}

// IsTournamentGame reports whether the game is played as a knock-out
// tournament instead of a single result submission.
func (g Game) IsTournamentGame() bool {
	return g == GamePetanque || g == GameKubb
}

// IsBrainGame reports whether the game is scored against an answer key.
func (g Game) IsBrainGame() bool {
	return g == GameRebus || g == GameWiskunde
}

func (g Game) Category() Category {
	for cat, games := range CategoryGames {
		for _, game := range games {
			if game == g {
				return cat
			}
		}
	}
	return ""
}
