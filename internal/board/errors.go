package board

import "github.com/pkg/errors"

var (
	// ErrOutOfBounds is returned when a coordinate lies outside the 3x3 grid.
	ErrOutOfBounds = errors.New("coordinate out of bounds")
	// ErrCellOccupied is returned when placing onto a non-empty cell.
	ErrCellOccupied = errors.New("cell already occupied")
	// ErrBlankPiece is returned when Blank is used where a mark is required.
	ErrBlankPiece = errors.New("blank is not a mark")
)

func checkBounds(c Coord) error {
	if !c.Valid() {
		return errors.Wrapf(ErrOutOfBounds, "the following coordinates are out of bounds: %d %d", c.Row, c.Col)
	}
	return nil
}
