package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-board/internal/apperror"
)

const (
	BoardSize = 3

	NoWinner = 0
)

type Grid [BoardSize][BoardSize]Mark

// winLines - every row, column and diagonal as (row, col) pairs.
var winLines = [8][3][2]int{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{2, 0}, {1, 1}, {0, 2}},
}

// Board is the state of a single game. It is not safe for concurrent use.
type Board struct {
	p1      *Player
	p2      *Player
	started bool
	turn    int
	grid    Grid
	winner  int
	draw    bool
}

func NewBoard() *Board {
	return &Board{
		turn:   PlayerOne,
		winner: NoWinner,
	}
}

// AssignPlayer1 - sets the first player unless player 2 already holds the same mark.
func (that *Board) AssignPlayer1(player *Player) error {
	if player == nil || player.ID != PlayerOne {
		return fmt.Errorf("%w: player 1 slot", apperror.ErrInvalidPlayerID)
	}

	if that.p2 != nil && that.p2.Mark == player.Mark {
		return fmt.Errorf("%w: player 2 holds %s", apperror.ErrMarkTaken, player.Mark)
	}

	that.p1 = player

	return nil
}

// AssignPlayer2 - sets the second player and starts the game.
func (that *Board) AssignPlayer2(player *Player) error {
	if player == nil || player.ID != PlayerTwo {
		return fmt.Errorf("%w: player 2 slot", apperror.ErrInvalidPlayerID)
	}

	if that.p1 != nil && that.p1.Mark == player.Mark {
		return fmt.Errorf("%w: player 1 holds %s", apperror.ErrMarkTaken, player.Mark)
	}

	that.p2 = player
	that.started = true

	return nil
}

func (that *Board) PlayerByID(id int) (*Player, error) {
	switch id {
	case PlayerOne:
		return that.p1, nil
	case PlayerTwo:
		return that.p2, nil
	default:
		return nil, fmt.Errorf("%w: %d", apperror.ErrInvalidPlayerID, id)
	}
}

// AttemptMove - applies the move if the rules allow it and reports the outcome.
func (that *Board) AttemptMove(move *Move) Message {
	switch {
	case !that.started:
		return result(CodeNotBegun)
	case that.IsOver():
		return result(CodeAlreadyOver)
	case move.Player.ID != that.turn:
		return result(CodeNotYourTurn)
	case that.grid[move.Row][move.Col] != EmptyCell:
		return result(CodeAlreadyOccupied)
	}

	that.grid[move.Row][move.Col] = move.Player.Mark

	switch {
	case that.inWinState():
		that.winner = that.turn
	case that.isFull():
		that.draw = true
	default:
		that.turn = otherPlayer(that.turn)
	}

	return result(CodeValid)
}

func (that *Board) P1() *Player { return that.p1 }

func (that *Board) P2() *Player { return that.p2 }

func (that *Board) Started() bool { return that.started }

func (that *Board) Turn() int { return that.turn }

func (that *Board) Winner() int { return that.winner }

func (that *Board) IsDraw() bool { return that.draw }

func (that *Board) IsOver() bool {
	return that.winner != NoWinner || that.draw
}

func (that *Board) Cell(row, col int) Mark {
	return that.grid[row][col]
}

func (that *Board) inWinState() bool {
	for _, line := range winLines {
		a := that.grid[line[0][0]][line[0][1]]
		b := that.grid[line[1][0]][line[1][1]]
		c := that.grid[line[2][0]][line[2][1]]
		if a.IsValid() && a == b && b == c {
			return true
		}
	}

	return false
}

func (that *Board) isFull() bool {
	for _, row := range that.grid {
		for _, cell := range row {
			if cell == EmptyCell {
				return false
			}
		}
	}

	return true
}

func otherPlayer(id int) int {
	if id == PlayerOne {
		return PlayerTwo
	}
	return PlayerOne
}
