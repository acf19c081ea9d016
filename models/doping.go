package models

import "fmt"

// DopingConflictError reports that a player already spent the one-time
// doping on a different game.
type DopingConflictError struct {
	PlayerID int
	Game     Game // the game the doping was already spent on
}

func (e *DopingConflictError) Error() string {
	return fmt.Sprintf("player %d already used doping for %s", e.PlayerID, e.Game)
}

// DopingLedger maps a player id to the single game in which that player spent
// the one-time score doubling. A player appears at most once, ever, across
// all games; the entry is only replaced by an explicit release.
type DopingLedger map[int]Game

// UsedFor returns the game the player doped in, if any.
func (l DopingLedger) UsedFor(playerID int) (Game, bool) {
	g, ok := l[playerID]
	return g, ok
}

// Doubles reports whether the player's points for the given game are doubled.
func (l DopingLedger) Doubles(playerID int, game Game) bool {
	g, ok := l[playerID]
	return ok && g == game
}

// Record writes the player's doping entry for the game. Re-recording the
// same game is idempotent; any other existing entry is a conflict and the
// ledger is left untouched.
func (l DopingLedger) Record(playerID int, game Game) error {
	if used, ok := l[playerID]; ok && used != game {
		return &DopingConflictError{PlayerID: playerID, Game: used}
	}
	l[playerID] = game
	return nil
}

// Clone returns a copy of the ledger.
func (l DopingLedger) Clone() DopingLedger {
	c := make(DopingLedger, len(l))
	for id, g := range l {
		c[id] = g
	}
	return c
}
