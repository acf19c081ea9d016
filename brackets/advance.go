package brackets

import (
	"errors"

	"github.com/robinhio12/rockbrakel/models"
)

var (
	ErrMatchNotFound      = errors.New("match not found in the active round")
	ErrTournamentFinished = errors.New("tournament is finished and no longer accepts results")
	ErrDopingRoundClosed  = errors.New("doping can only be used in round 1")
)

// SubmitInput carries one match outcome.
type SubmitInput struct {
	MatchID  string
	WinnerID int
	LoserID  int
	Doping1  bool // winner used doping
	Doping2  bool // loser used doping
}

// SubmitResult records a match outcome in the tournament's current round and
// advances the bracket when the round completes. All validation happens
// before any state is touched: on error the tournament and ledger are
// unchanged. Doping is only accepted in round 1 and only for players with no
// ledger entry for a different game; accepted doping is written into the
// ledger under the tournament's game.
//
// Resubmitting an already-completed match overwrites it. The caller is
// responsible for releasing ledger entries the previous result created
// before resubmitting (the tournament service does this under its lock).
func SubmitResult(t *models.Tournament, ledger models.DopingLedger, in SubmitInput) error {
	if t.Finished() {
		return ErrTournamentFinished
	}

	var match *models.Match
	for _, m := range t.Rounds[t.CurrentRound] {
		if m.MatchID == in.MatchID {
			match = m
			break
		}
	}
	if match == nil || match.IsBye() {
		// Bye matches are immutable.
		return ErrMatchNotFound
	}

	if in.Doping1 || in.Doping2 {
		if in.Doping1 {
			if used, ok := ledger.UsedFor(in.WinnerID); ok && used != t.Game {
				return &models.DopingConflictError{PlayerID: in.WinnerID, Game: used}
			}
		}
		if in.Doping2 {
			if used, ok := ledger.UsedFor(in.LoserID); ok && used != t.Game {
				return &models.DopingConflictError{PlayerID: in.LoserID, Game: used}
			}
		}
		if t.CurrentRound > 0 {
			return ErrDopingRoundClosed
		}
	}

	winner, loser := in.WinnerID, in.LoserID
	match.Winner = &winner
	match.Loser = &loser
	match.Doping1 = in.Doping1
	match.Doping2 = in.Doping2
	match.Completed = true

	if in.Doping1 {
		ledger[in.WinnerID] = t.Game
	}
	if in.Doping2 {
		ledger[in.LoserID] = t.Game
	}

	if !roundComplete(t.Rounds[t.CurrentRound]) {
		return nil
	}

	if t.CurrentRound < t.NumRounds-1 {
		t.Rounds = append(t.Rounds, nextRound(t))
		t.CurrentRound++
		return nil
	}

	t.FinalStandings = DeriveStandings(t)
	return nil
}

func roundComplete(round models.Round) bool {
	for _, m := range round {
		if !m.Completed {
			return false
		}
	}
	return true
}

// nextRound pairs the current round's winners in round order. With an odd
// winner count, the first winner that never had a bye gets one; when every
// winner already had a bye the first winner gets a repeat bye, so the
// bracket never stalls.
func nextRound(t *models.Tournament) models.Round {
	var winners []int
	for _, m := range t.Rounds[t.CurrentRound] {
		if m.Winner != nil {
			winners = append(winners, *m.Winner)
		}
	}

	var round models.Round
	if len(winners)%2 == 1 {
		byeIdx := 0
		for i, w := range winners {
			if !t.HadBye(w) {
				byeIdx = i
				break
			}
		}
		byePlayer := winners[byeIdx]
		winners = append(winners[:byeIdx], winners[byeIdx+1:]...)
		if !t.HadBye(byePlayer) {
			t.ByePlayers = append(t.ByePlayers, byePlayer)
		}
		round = append(round, &models.Match{
			MatchID:   byeMatchID(t.Game, t.CurrentRound+1),
			Round:     t.CurrentRound + 1,
			Player1:   byePlayer,
			Winner:    &byePlayer,
			Completed: true,
		})
	}

	for i := 0; i+1 < len(winners); i += 2 {
		p2 := winners[i+1]
		round = append(round, &models.Match{
			MatchID: matchID(t.Game, t.CurrentRound+1, i/2),
			Round:   t.CurrentRound + 1,
			Player1: winners[i],
			Player2: &p2,
		})
	}
	return round
}
