package entity

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-board/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStartedBoard(t *testing.T) *Board {
	t.Helper()

	board := NewBoard()

	p1, err := NewPlayer(PlayerOne, MarkX)
	require.NoError(t, err)
	require.NoError(t, board.AssignPlayer1(p1))

	p2, err := NewPlayer(PlayerTwo, MarkO)
	require.NoError(t, err)
	require.NoError(t, board.AssignPlayer2(p2))

	return board
}

func play(t *testing.T, board *Board, playerID, row, col int) Message {
	t.Helper()

	player, err := board.PlayerByID(playerID)
	require.NoError(t, err)

	move, err := NewMove(player, row, col)
	require.NoError(t, err)

	return board.AttemptMove(move)
}

func TestNewBoard(t *testing.T) {
	// When: a new board is created
	board := NewBoard()

	// Then: it is empty, unstarted and waiting on player 1
	expected := Snapshot{
		Turn:   PlayerOne,
		Winner: NoWinner,
	}
	assert.Equal(t, expected, board.Snapshot())
}

func TestNewBoard_OwnsItsGrid(t *testing.T) {
	// Given: a game with a mark on the board
	first := newStartedBoard(t)
	require.True(t, play(t, first, PlayerOne, 1, 1).IsValid())

	// When: another game is created
	second := NewBoard()

	// Then: the new game does not see the old mark
	assert.Equal(t, EmptyCell, second.Cell(1, 1))
	assert.Equal(t, MarkX, first.Cell(1, 1))
}

func TestBoard_AssignPlayers(t *testing.T) {
	t.Run("Player 2 cannot take player 1's mark", func(t *testing.T) {
		// Given: player 1 holds X
		board := NewBoard()
		require.NoError(t, board.AssignPlayer1(&Player{ID: PlayerOne, Mark: MarkX}))

		// When: player 2 also asks for X
		err := board.AssignPlayer2(&Player{ID: PlayerTwo, Mark: MarkX})

		// Then: the assignment fails and nothing changes
		require.ErrorIs(t, err, apperror.ErrMarkTaken)
		assert.Nil(t, board.P2())
		assert.False(t, board.Started())
	})

	t.Run("Player 1 cannot take player 2's mark", func(t *testing.T) {
		// Given: player 2 holds O
		board := NewBoard()
		require.NoError(t, board.AssignPlayer2(&Player{ID: PlayerTwo, Mark: MarkO}))

		// When: player 1 asks for O
		err := board.AssignPlayer1(&Player{ID: PlayerOne, Mark: MarkO})

		// Then: the assignment fails
		require.ErrorIs(t, err, apperror.ErrMarkTaken)
		assert.Nil(t, board.P1())
	})

	t.Run("Slots only accept their own id", func(t *testing.T) {
		board := NewBoard()

		err := board.AssignPlayer1(&Player{ID: PlayerTwo, Mark: MarkX})
		require.ErrorIs(t, err, apperror.ErrInvalidPlayerID)

		err = board.AssignPlayer2(&Player{ID: PlayerOne, Mark: MarkO})
		require.ErrorIs(t, err, apperror.ErrInvalidPlayerID)

		err = board.AssignPlayer1(nil)
		require.ErrorIs(t, err, apperror.ErrInvalidPlayerID)
	})

	t.Run("Assigning player 2 starts the game", func(t *testing.T) {
		// When: both players are assigned
		board := newStartedBoard(t)

		// Then: the game has started with player 1 to move
		assert.True(t, board.Started())
		assert.Equal(t, PlayerOne, board.Turn())
	})
}

func TestBoard_PlayerByID(t *testing.T) {
	board := newStartedBoard(t)

	p1, err := board.PlayerByID(PlayerOne)
	require.NoError(t, err)
	assert.Equal(t, MarkX, p1.Mark)

	p2, err := board.PlayerByID(PlayerTwo)
	require.NoError(t, err)
	assert.Equal(t, MarkO, p2.Mark)

	_, err = board.PlayerByID(3)
	require.ErrorIs(t, err, apperror.ErrInvalidPlayerID)
}

func TestBoard_AttemptMove(t *testing.T) {
	t.Run("Not begun", func(t *testing.T) {
		// Given: player 1 has joined but player 2 has not
		board := NewBoard()
		p1 := &Player{ID: PlayerOne, Mark: MarkX}
		require.NoError(t, board.AssignPlayer1(p1))

		// When: player 1 tries to move
		move, err := NewMove(p1, 0, 0)
		require.NoError(t, err)
		msg := board.AttemptMove(move)

		// Then: the move is rejected and the grid is untouched
		assert.Equal(t, CodeNotBegun, msg.Code)
		assert.False(t, msg.MoveValidity)
		assert.Equal(t, Grid{}, board.Snapshot().BoardState)
	})

	t.Run("First move", func(t *testing.T) {
		// Given: a started game
		board := newStartedBoard(t)

		// When: player 1 moves to (0, 0)
		msg := play(t, board, PlayerOne, 0, 0)

		// Then: the move is valid and it is player 2's turn
		assert.Equal(t, Message{MoveValidity: true, Code: CodeValid, Message: ""}, msg)
		assert.Equal(t, PlayerTwo, board.Turn())
		assert.Equal(t, MarkX, board.Cell(0, 0))
	})

	t.Run("Not your turn", func(t *testing.T) {
		// Given: a started game where it is player 1's turn
		board := newStartedBoard(t)
		before := board.Snapshot()

		// When: player 2 tries to move
		msg := play(t, board, PlayerTwo, 1, 1)

		// Then: NOT_YOUR_TURN and nothing changes
		assert.Equal(t, CodeNotYourTurn, msg.Code)
		assert.Equal(t, "It is not your turn", msg.Message)
		assert.Equal(t, before, board.Snapshot())
	})

	t.Run("Already occupied", func(t *testing.T) {
		// Given: player 1 holds (0, 0)
		board := newStartedBoard(t)
		require.True(t, play(t, board, PlayerOne, 0, 0).IsValid())
		before := board.Snapshot()

		// When: player 2 moves to the same cell
		msg := play(t, board, PlayerTwo, 0, 0)

		// Then: ALREADY_OCCUPIED and nothing changes
		assert.Equal(t, CodeAlreadyOccupied, msg.Code)
		assert.Equal(t, before, board.Snapshot())
	})

	t.Run("Turn is checked before occupancy", func(t *testing.T) {
		// Given: player 1 holds (0, 0) and it is player 2's turn
		board := newStartedBoard(t)
		require.True(t, play(t, board, PlayerOne, 0, 0).IsValid())

		// When: player 1 plays the occupied cell again
		msg := play(t, board, PlayerOne, 0, 0)

		// Then: the turn error wins
		assert.Equal(t, CodeNotYourTurn, msg.Code)
	})

	t.Run("Row win", func(t *testing.T) {
		// Given: a started game
		board := newStartedBoard(t)

		// When: X fills the top row while O plays the middle row
		require.True(t, play(t, board, PlayerOne, 0, 0).IsValid())
		require.True(t, play(t, board, PlayerTwo, 1, 0).IsValid())
		require.True(t, play(t, board, PlayerOne, 0, 1).IsValid())
		require.True(t, play(t, board, PlayerTwo, 1, 1).IsValid())
		msg := play(t, board, PlayerOne, 0, 2)

		// Then: the final move is valid, player 1 wins and the turn stays put
		assert.Equal(t, CodeValid, msg.Code)
		assert.Equal(t, PlayerOne, board.Winner())
		assert.False(t, board.IsDraw())
		assert.Equal(t, PlayerOne, board.Turn())

		// Then: no further move is accepted
		before := board.Snapshot()
		assert.Equal(t, CodeAlreadyOver, play(t, board, PlayerTwo, 2, 2).Code)
		assert.Equal(t, CodeAlreadyOver, play(t, board, PlayerOne, 2, 2).Code)
		assert.Equal(t, before, board.Snapshot())
	})

	t.Run("Draw", func(t *testing.T) {
		// Given: a started game
		board := newStartedBoard(t)

		// When: the board fills up without a line
		moves := [][3]int{
			{PlayerOne, 0, 0}, {PlayerTwo, 0, 1}, {PlayerOne, 0, 2},
			{PlayerTwo, 1, 1}, {PlayerOne, 1, 0}, {PlayerTwo, 1, 2},
			{PlayerOne, 2, 1}, {PlayerTwo, 2, 0}, {PlayerOne, 2, 2},
		}
		for _, m := range moves {
			require.True(t, play(t, board, m[0], m[1], m[2]).IsValid())
		}

		// Then: the game is a draw without a winner
		snapshot := board.Snapshot()
		assert.True(t, snapshot.IsDraw)
		assert.Equal(t, NoWinner, snapshot.Winner)
		assert.Equal(t, PlayerOne, snapshot.Turn)

		// Then: further moves report the game is over
		assert.Equal(t, CodeAlreadyOver, play(t, board, PlayerTwo, 0, 0).Code)
	})
}

func TestBoard_TurnAlternates(t *testing.T) {
	// Given: a started game
	board := newStartedBoard(t)

	// When: players take turns without finishing the game
	cells := [][2]int{{1, 1}, {0, 0}, {2, 2}, {0, 2}}
	expectedTurn := PlayerOne
	for _, cell := range cells {
		require.Equal(t, expectedTurn, board.Turn())
		require.True(t, play(t, board, expectedTurn, cell[0], cell[1]).IsValid())
		expectedTurn = otherPlayer(expectedTurn)
	}

	// Then: the turn alternated on every valid move
	assert.Equal(t, PlayerOne, board.Turn())
	assert.False(t, board.IsOver())
}

func TestBoard_inWinState(t *testing.T) {
	for i, line := range winLines {
		// Given: a board with only this line filled with O
		board := NewBoard()
		for _, cell := range line {
			board.grid[cell[0]][cell[1]] = MarkO
		}

		// Then: it is a win
		assert.True(t, board.inWinState(), "line %d", i)
	}

	// Given: a line of mixed marks
	board := NewBoard()
	board.grid[0] = [BoardSize]Mark{MarkX, MarkO, MarkX}

	// Then: it is not a win
	assert.False(t, board.inWinState())
}

func TestBoard_SnapshotIsDetached(t *testing.T) {
	// Given: a snapshot of a started game
	board := newStartedBoard(t)
	snapshot := board.Snapshot()

	// When: the snapshot is modified
	snapshot.P1.Mark = MarkO
	snapshot.BoardState[0][0] = MarkX

	// Then: the board is not affected
	assert.Equal(t, MarkX, board.P1().Mark)
	assert.Equal(t, EmptyCell, board.Cell(0, 0))
}
