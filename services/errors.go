package services

import "errors"

// Common errors shared across services and the HTTP error mapping.
var (
	// Not found
	ErrNotFound           = errors.New("requested resource not found")
	ErrGameNotFound       = errors.New("unknown game")
	ErrPlayerNotFound     = errors.New("player not found")
	ErrTournamentNotFound = errors.New("no tournament found for this game")
	ErrMatchNotFound      = errors.New("match not found in the active round")
	ErrAnswerKeyNotFound  = errors.New("no answer key set for this game")

	// Validation and business rules
	ErrValidationFailed     = errors.New("validation failed")
	ErrPlayerNameRequired   = errors.New("player name and start number are required")
	ErrNotATournamentGame   = errors.New("game is not played as a knock-out tournament")
	ErrTournamentGameDirect = errors.New("tournament games take results through match submission")
	ErrAnswerKeyInvalid     = errors.New("answer key must contain exactly 10 answers")
	ErrOrderingInvalid      = errors.New("finish order must list every player id exactly once")
	ErrTournamentFinished   = errors.New("tournament is finished and no longer accepts results")
	ErrDopingRoundClosed    = errors.New("doping can only be used in round 1 of a tournament")
	ErrNotEnoughPlayers     = errors.New("not enough players to generate a bracket (minimum 2)")
	ErrQuizAnswersInvalid   = errors.New("quiz submission must contain exactly 10 answers and a total time")

	// Conflicts
	ErrStartNumberConflict = errors.New("start number is already in use")
	ErrResultExists        = errors.New("a result already exists for this player and game")

	// Authentication
	ErrInvalidCredentials = errors.New("invalid admin credentials")
)
