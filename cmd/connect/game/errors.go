package game

import "errors"

// Set of errors returned by the board and the game. They all describe a caller
// precondition that was not met. Nothing is mutated when one is returned.
var (
	ErrOutOfRangeColumn = errors.New("column out of range")
	ErrColumnFull       = errors.New("column is full")
	ErrInvalidPlayer    = errors.New("invalid player")
	ErrGameOver         = errors.New("game is over")
)
