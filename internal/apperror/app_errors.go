package apperror

import "errors"

var (
	ErrSessionNotFound  = errors.New("game session not found")
	ErrGameFinished     = errors.New("game is already finished")
	ErrInvalidMove      = errors.New("invalid move")
	ErrNotYourTurn      = errors.New("it's not your turn")
	ErrNothingToUndo    = errors.New("nothing to undo")
	ErrNoAvailableMoves = errors.New("no available moves")
)
