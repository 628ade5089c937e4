package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-board/internal/apperror"
)

const (
	PlayerOne = 1
	PlayerTwo = 2
)

type Mark string

const (
	MarkX     Mark = "X"
	MarkO     Mark = "O"
	EmptyCell Mark = ""
)

func (that Mark) IsValid() bool {
	return that == MarkX || that == MarkO
}

// Opposite - returns the mark the other player must hold.
func (that Mark) Opposite() Mark {
	if that == MarkX {
		return MarkO
	}
	return MarkX
}

type Player struct {
	ID   int  `json:"id"`
	Mark Mark `json:"type"`
}

// NewPlayer - builds a player, rejecting ids other than 1 or 2 and marks other than X or O.
func NewPlayer(id int, mark Mark) (*Player, error) {
	if id != PlayerOne && id != PlayerTwo {
		return nil, fmt.Errorf("%w: %d", apperror.ErrInvalidPlayerID, id)
	}

	if !mark.IsValid() {
		return nil, fmt.Errorf("%w: %q", apperror.ErrInvalidMark, mark)
	}

	return &Player{ID: id, Mark: mark}, nil
}
