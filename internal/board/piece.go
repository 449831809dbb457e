// Package board implements the 3x3 tic-tac-toe board and its rotational symmetry.
package board

import (
	"strings"

	"github.com/pkg/errors"
)

// Piece is the content of a single cell.
type Piece uint8

const (
	Blank Piece = iota
	Circle
	Cross
)

// Opposite returns the other mark. Blank stays Blank.
func (p Piece) Opposite() Piece {
	switch p {
	case Circle:
		return Cross
	case Cross:
		return Circle
	default:
		return Blank
	}
}

// Code returns the 2-bit packing code of the piece (Blank=0, Circle=1, Cross=2).
func (p Piece) Code() uint32 {
	switch p {
	case Circle:
		return 1
	case Cross:
		return 2
	default:
		return 0
	}
}

// pieceFromCode is the inverse of Code. Code 3 is unused and maps to Blank.
func pieceFromCode(code uint32) Piece {
	switch code {
	case 1:
		return Circle
	case 2:
		return Cross
	default:
		return Blank
	}
}

// String returns the board symbol for the piece.
func (p Piece) String() string {
	switch p {
	case Circle:
		return "O"
	case Cross:
		return "X"
	default:
		return " "
	}
}

// Name returns a human readable name ("Cross", "Circle" or "Blank").
func (p Piece) Name() string {
	switch p {
	case Circle:
		return "Circle"
	case Cross:
		return "Cross"
	default:
		return "Blank"
	}
}

// ParsePiece converts a symbol into a Piece.
// X and O are accepted in either case; " ", ".", "_" and "-" mean Blank.
func ParsePiece(s string) (Piece, error) {
	switch strings.ToUpper(s) {
	case "X", "CROSS":
		return Cross, nil
	case "O", "CIRCLE":
		return Circle, nil
	case " ", ".", "_", "-", "", "BLANK":
		return Blank, nil
	}
	return Blank, errors.Errorf("invalid piece: %q", s)
}

// pieceFromByte is ParsePiece for a single character.
func pieceFromByte(c byte) (Piece, bool) {
	switch c {
	case 'X', 'x':
		return Cross, true
	case 'O', 'o':
		return Circle, true
	case ' ', '.', '_', '-':
		return Blank, true
	}
	return Blank, false
}
