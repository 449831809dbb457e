// Package game drives a tic-tac-toe match between a human and the engine.
package game

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/hailam/tictacplay/internal/board"
)

// Opponent says who controls a player.
type Opponent uint8

const (
	Human Opponent = iota
	Computer
)

// String returns the opponent name.
func (o Opponent) String() string {
	if o == Computer {
		return "Computer"
	}
	return "Human"
}

// Player is one side of a game.
type Player struct {
	Opponent Opponent
	Piece    board.Piece
}

// NewPlayer creates a player. Blank is not a valid piece.
func NewPlayer(o Opponent, p board.Piece) (Player, error) {
	if p != board.Cross && p != board.Circle {
		return Player{}, errors.Wrap(board.ErrBlankPiece, "can't create a player with a blank piece")
	}
	return Player{Opponent: o, Piece: p}, nil
}

// String renders the player as "(Opponent, Piece)".
func (p Player) String() string {
	return fmt.Sprintf("(%v, %v)", p.Opponent, p.Piece)
}
