package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-board/internal/apperror"
)

type Move struct {
	Player *Player
	Row    int
	Col    int
}

// NewMove - builds a move, rejecting coordinates outside the board.
func NewMove(player *Player, row, col int) (*Move, error) {
	if player == nil {
		return nil, fmt.Errorf("%w: move without a player", apperror.ErrInvalidPlayerID)
	}

	if !onBoard(row) || !onBoard(col) {
		return nil, fmt.Errorf("%w: (%d, %d)", apperror.ErrInvalidCoordinate, row, col)
	}

	return &Move{Player: player, Row: row, Col: col}, nil
}

func onBoard(index int) bool {
	return index >= 0 && index < BoardSize
}
