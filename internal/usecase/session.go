package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/tictactoe-board/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-board/internal/entity"
)

// Notifier delivers a serialized board to every viewer. Delivery is best-effort.
type Notifier interface {
	Broadcast(ctx context.Context, payload []byte)
}

// Session owns the single active board and serializes every mutation on it.
type Session struct {
	logger   *slog.Logger
	notifier Notifier

	mu    sync.Mutex
	board *entity.Board
}

func NewSession(logger *slog.Logger, notifier Notifier) *Session {
	return &Session{
		logger:   logger.With("component", "session"),
		notifier: notifier,
	}
}

// NewGame - replaces the active board with a fresh, unstarted one.
func (that *Session) NewGame(_ context.Context) entity.Snapshot {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.board = entity.NewBoard()
	that.logger.Info("new game created")

	return that.board.Snapshot()
}

// StartGame - player 1 claims the given mark.
func (that *Session) StartGame(_ context.Context, mark entity.Mark) (entity.Snapshot, error) {
	player, err := entity.NewPlayer(entity.PlayerOne, mark)
	if err != nil {
		return entity.Snapshot{}, fmt.Errorf("failed to create player 1: %w", err)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	if that.board == nil {
		return entity.Snapshot{}, apperror.ErrNoActiveGame
	}

	if err = that.board.AssignPlayer1(player); err != nil {
		return entity.Snapshot{}, fmt.Errorf("failed to assign player 1: %w", err)
	}

	that.logger.Info("player 1 joined", "mark", mark)

	return that.board.Snapshot(), nil
}

// JoinGame - player 2 takes the mark player 1 left and the game starts.
func (that *Session) JoinGame(ctx context.Context) (entity.Snapshot, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.requirePlayer1(); err != nil {
		return entity.Snapshot{}, err
	}

	player, err := entity.NewPlayer(entity.PlayerTwo, that.board.P1().Mark.Opposite())
	if err != nil {
		return entity.Snapshot{}, fmt.Errorf("failed to create player 2: %w", err)
	}

	if err = that.board.AssignPlayer2(player); err != nil {
		return entity.Snapshot{}, fmt.Errorf("failed to assign player 2: %w", err)
	}

	that.logger.Info("player 2 joined, game started", "mark", player.Mark)

	snapshot := that.board.Snapshot()
	that.broadcast(ctx, snapshot)

	return snapshot, nil
}

// MakeMove - applies a move for the given player. Rule violations come back as a
// non-valid message, not as an error.
func (that *Session) MakeMove(ctx context.Context, playerID, row, col int) (entity.Message, entity.Snapshot, error) {
	log := that.logger.With("method", "MakeMove", "playerID", playerID)

	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.requirePlayer1(); err != nil {
		return entity.Message{}, entity.Snapshot{}, err
	}

	if that.board.P2() == nil {
		return entity.Message{}, entity.Snapshot{}, apperror.ErrPlayer2NotJoined
	}

	player, err := that.board.PlayerByID(playerID)
	if err != nil {
		return entity.Message{}, entity.Snapshot{}, fmt.Errorf("failed to get player: %w", err)
	}

	move, err := entity.NewMove(player, row, col)
	if err != nil {
		return entity.Message{}, entity.Snapshot{}, fmt.Errorf("failed to create move: %w", err)
	}

	msg := that.board.AttemptMove(move)
	snapshot := that.board.Snapshot()

	log.Info("move attempted", "row", row, "col", col, "code", msg.Code)

	switch {
	case !msg.IsValid():
	case snapshot.Winner != entity.NoWinner:
		log.Info("game won", "winner", snapshot.Winner)
	case snapshot.IsDraw:
		log.Info("game ended in a draw")
	}

	that.broadcast(ctx, snapshot)

	return msg, snapshot, nil
}

// Board - returns the latest committed state of the active board.
func (that *Session) Board(_ context.Context) (entity.Snapshot, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.board == nil {
		return entity.Snapshot{}, apperror.ErrNoActiveGame
	}

	return that.board.Snapshot(), nil
}

func (that *Session) requirePlayer1() error {
	if that.board == nil {
		return apperror.ErrNoActiveGame
	}

	if that.board.P1() == nil {
		return apperror.ErrPlayer1NotJoined
	}

	return nil
}

// broadcast - called with the lock held so viewers get snapshots in commit order.
func (that *Session) broadcast(ctx context.Context, snapshot entity.Snapshot) {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		that.logger.Error("failed to marshal board", "error", err)
		return
	}

	that.notifier.Broadcast(ctx, payload)
}
