package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"

	"github.com/rocketscienceinc/tictactoe-board/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-board/internal/entity"
)

const (
	maxBodyBytes = 1 << 10

	boardPage        = "/tictactoe.html"
	boardPagePlayer2 = "/tictactoe.html?p=2"
)

var (
	startGameBody = regexp.MustCompile(`^type=([XO])$`)
	moveBody      = regexp.MustCompile(`^x=([012])&y=([012])$`)
)

type sessionUseCase interface {
	NewGame(ctx context.Context) entity.Snapshot
	StartGame(ctx context.Context, mark entity.Mark) (entity.Snapshot, error)
	JoinGame(ctx context.Context) (entity.Snapshot, error)
	MakeMove(ctx context.Context, playerID, row, col int) (entity.Message, entity.Snapshot, error)
	Board(ctx context.Context) (entity.Snapshot, error)
}

type Handlers struct {
	logger  *slog.Logger
	session sessionUseCase
}

func NewHandlers(logger *slog.Logger, session sessionUseCase) *Handlers {
	return &Handlers{
		logger:  logger.With("component", "rest"),
		session: session,
	}
}

func (that *Handlers) Ping(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		that.logger.Error("failed to write pong", "error", err)
	}
}

// Echo - returns the request body unchanged.
func (that *Handlers) Echo(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		that.writeError(w, "Echo", err)
		return
	}

	if _, err = w.Write(body); err != nil {
		that.logger.Error("failed to write echo", "error", err)
	}
}

func (that *Handlers) NewGame(w http.ResponseWriter, r *http.Request) {
	that.session.NewGame(r.Context())
	http.Redirect(w, r, boardPage, http.StatusFound)
}

// StartGame - player 1 picks a mark with the body "type=X" or "type=O".
func (that *Handlers) StartGame(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		that.writeError(w, "StartGame", err)
		return
	}

	match := startGameBody.FindStringSubmatch(string(body))
	if match == nil {
		that.writeError(w, "StartGame", fmt.Errorf("%w: startgame expects type=X or type=O", apperror.ErrMalformedRequest))
		return
	}

	snapshot, err := that.session.StartGame(r.Context(), entity.Mark(match[1]))
	if err != nil {
		that.writeError(w, "StartGame", err)
		return
	}

	that.writeJSON(w, snapshot)
}

func (that *Handlers) JoinGame(w http.ResponseWriter, r *http.Request) {
	if _, err := that.session.JoinGame(r.Context()); err != nil {
		that.writeError(w, "JoinGame", err)
		return
	}

	http.Redirect(w, r, boardPagePlayer2, http.StatusFound)
}

// Move - applies "x=<row>&y=<col>" for the player in the path.
func (that *Handlers) Move(w http.ResponseWriter, r *http.Request) {
	playerID, err := strconv.Atoi(r.PathValue("playerId"))
	if err != nil {
		that.writeError(w, "Move", fmt.Errorf("%w: %q", apperror.ErrInvalidPlayerID, r.PathValue("playerId")))
		return
	}

	body, err := readBody(w, r)
	if err != nil {
		that.writeError(w, "Move", err)
		return
	}

	match := moveBody.FindStringSubmatch(string(body))
	if match == nil {
		that.writeError(w, "Move", fmt.Errorf("%w: move expects x=[012]&y=[012]", apperror.ErrMalformedRequest))
		return
	}

	// the pattern guarantees single digits
	row, _ := strconv.Atoi(match[1])
	col, _ := strconv.Atoi(match[2])

	msg, _, err := that.session.MakeMove(r.Context(), playerID, row, col)
	if err != nil {
		that.writeError(w, "Move", err)
		return
	}

	that.writeJSON(w, msg)
}

// Board - the latest state of the active game.
func (that *Handlers) Board(w http.ResponseWriter, r *http.Request) {
	snapshot, err := that.session.Board(r.Context())
	if err != nil {
		that.writeError(w, "Board", err)
		return
	}

	that.writeJSON(w, snapshot)
}

func (that *Handlers) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		that.logger.Error("failed to encode response", "error", err)
	}
}

func (that *Handlers) writeError(w http.ResponseWriter, method string, err error) {
	status := statusFor(err)
	log := that.logger.With("method", method, "status", status, "error", err)

	if status >= http.StatusInternalServerError {
		log.Error("request failed")
		http.Error(w, http.StatusText(status), status)
		return
	}

	log.Warn("request rejected")
	http.Error(w, err.Error(), status)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrMalformedRequest),
		errors.Is(err, apperror.ErrInvalidPlayerID),
		errors.Is(err, apperror.ErrInvalidMark),
		errors.Is(err, apperror.ErrInvalidCoordinate):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrNoActiveGame),
		errors.Is(err, apperror.ErrPlayer1NotJoined),
		errors.Is(err, apperror.ErrPlayer2NotJoined),
		errors.Is(err, apperror.ErrMarkTaken):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrMalformedRequest, err)
	}

	return body, nil
}
