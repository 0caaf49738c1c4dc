package errors

import "errors"

var (
	ErrInvalidMove      = errors.New("move applied to a full column")
	ErrNoLegalMove      = errors.New("board is full, no legal move")
	ErrMalformedBoard   = errors.New("malformed board observation")
	ErrGameNotFound     = errors.New("game not found")
	ErrGameFinished     = errors.New("game is already finished")
	ErrNotYourTurn      = errors.New("not your turn")
	ErrCreateGameFailed = errors.New("create game failed")
	ErrInternal         = errors.New("internal error")
)
