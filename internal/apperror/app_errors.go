package apperror

import "errors"

// precondition violations.
var (
	ErrNoActiveGame     = errors.New("no active game")
	ErrPlayer1NotJoined = errors.New("player 1 has not joined")
	ErrPlayer2NotJoined = errors.New("player 2 has not joined")
	ErrMarkTaken        = errors.New("mark is already taken by the other player")
)

// validation errors.
var (
	ErrMalformedRequest  = errors.New("malformed request body")
	ErrInvalidPlayerID   = errors.New("invalid player id")
	ErrInvalidMark       = errors.New("invalid mark")
	ErrInvalidCoordinate = errors.New("invalid move coordinate")
	ErrUnknownCode       = errors.New("unknown result code")
)
