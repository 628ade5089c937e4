package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-board/internal/apperror"
)

type Code int

const (
	CodeValid Code = 100 + iota
	CodeNotYourTurn
	CodeAlreadyOccupied
	CodeNotBegun
	CodeAlreadyOver
)

var codeText = map[Code]string{
	CodeValid:           "",
	CodeNotYourTurn:     "It is not your turn",
	CodeAlreadyOccupied: "Space is already occupied",
	CodeNotBegun:        "The game has not begun",
	CodeAlreadyOver:     "The game has already finished",
}

// Message is the outcome of a move attempt.
type Message struct {
	MoveValidity bool   `json:"moveValidity"`
	Code         Code   `json:"code"`
	Message      string `json:"message"`
}

func NewMessage(code Code) (Message, error) {
	text, ok := codeText[code]
	if !ok {
		return Message{}, fmt.Errorf("%w: %d", apperror.ErrUnknownCode, code)
	}

	return Message{
		MoveValidity: code == CodeValid,
		Code:         code,
		Message:      text,
	}, nil
}

func (that Message) IsValid() bool {
	return that.MoveValidity
}

// result - only called with the declared codes.
func result(code Code) Message {
	return Message{
		MoveValidity: code == CodeValid,
		Code:         code,
		Message:      codeText[code],
	}
}
