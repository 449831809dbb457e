package board

import (
	"strings"

	"github.com/pkg/errors"
)

// lines holds the 8 winning triples: 3 columns, 3 rows, 2 diagonals.
var lines = [8][3]Coord{
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

// Board is a 3x3 grid. The zero value is the empty board.
// Boards are values: copying a Board copies its cells.
type Board struct {
	cells [NumCells]Piece
}

// New returns an empty board.
func New() Board {
	return Board{}
}

// FromCells builds a board from row-major cell contents.
func FromCells(cells [NumCells]Piece) Board {
	return Board{cells: cells}
}

// Cells returns the row-major cell contents.
func (b Board) Cells() [NumCells]Piece {
	return b.cells
}

// Get returns the piece at c.
func (b Board) Get(c Coord) (Piece, error) {
	if err := checkBounds(c); err != nil {
		return Blank, err
	}
	return b.cells[c.Index()], nil
}

// At returns the piece at c, or Blank if c is off the board.
func (b Board) At(c Coord) Piece {
	if !c.Valid() {
		return Blank
	}
	return b.cells[c.Index()]
}

// IsEmpty returns true if c is on the board and holds no mark.
func (b Board) IsEmpty(c Coord) bool {
	return c.Valid() && b.cells[c.Index()] == Blank
}

// Place puts p on the empty cell c.
func (b *Board) Place(c Coord, p Piece) error {
	if err := checkBounds(c); err != nil {
		return err
	}
	if p == Blank {
		return errors.Wrapf(ErrBlankPiece, "place at %d %d", c.Row, c.Col)
	}
	if b.cells[c.Index()] != Blank {
		return errors.Wrapf(ErrCellOccupied, "there's already a piece at %d %d", c.Row, c.Col)
	}
	b.cells[c.Index()] = p
	return nil
}

// Clear empties the cell c.
func (b *Board) Clear(c Coord) error {
	if err := checkBounds(c); err != nil {
		return err
	}
	b.cells[c.Index()] = Blank
	return nil
}

// Count returns the number of occupied cells.
func (b Board) Count() int {
	n := 0
	for _, p := range b.cells {
		if p != Blank {
			n++
		}
	}
	return n
}

// Full returns true if no cell is empty.
func (b Board) Full() bool {
	return b.Count() == NumCells
}

// Empty returns the empty cells in row-major order.
func (b Board) Empty() []Coord {
	empty := make([]Coord, 0, NumCells)
	for i, p := range b.cells {
		if p == Blank {
			empty = append(empty, CoordFromIndex(i))
		}
	}
	return empty
}

// Wins returns true if p fills any row, column or diagonal.
func (b Board) Wins(p Piece) bool {
	if p == Blank {
		return false
	}
	for _, line := range lines {
		if b.cells[line[0].Index()] == p &&
			b.cells[line[1].Index()] == p &&
			b.cells[line[2].Index()] == p {
			return true
		}
	}
	return false
}

// Winner returns the mark that completed a line, if any.
func (b Board) Winner() (Piece, bool) {
	for _, line := range lines {
		p := b.cells[line[0].Index()]
		if p != Blank && b.cells[line[1].Index()] == p && b.cells[line[2].Index()] == p {
			return p, true
		}
	}
	return Blank, false
}

// WinningLine returns the first completed line, if any.
func (b Board) WinningLine() ([3]Coord, bool) {
	for _, line := range lines {
		p := b.cells[line[0].Index()]
		if p != Blank && b.cells[line[1].Index()] == p && b.cells[line[2].Index()] == p {
			return line, true
		}
	}
	return [3]Coord{}, false
}

// SideToMove returns the mark whose turn it is. Cross always moves first.
func (b Board) SideToMove() Piece {
	if b.Count()%2 == 0 {
		return Cross
	}
	return Circle
}

// String renders the board as three "a|b|c" rows separated by newlines.
func (b Board) String() string {
	var sb strings.Builder
	for row := 0; row < Size; row++ {
		if row > 0 {
			sb.WriteByte('\n')
		}
		for col := 0; col < Size; col++ {
			if col > 0 {
				sb.WriteByte('|')
			}
			sb.WriteString(b.cells[row*Size+col].String())
		}
	}
	return sb.String()
}

// Parse reads a board in the format produced by String.
// A compact 9-character form ("XO..O.X.X") is also accepted.
func Parse(s string) (Board, error) {
	var b Board

	if compact := strings.TrimSpace(s); len(compact) == NumCells && !strings.ContainsAny(compact, "|\n") {
		for i := 0; i < NumCells; i++ {
			p, ok := pieceFromByte(compact[i])
			if !ok {
				return Board{}, errors.Errorf("invalid cell %q in board %q", compact[i], s)
			}
			b.cells[i] = p
		}
		return b, nil
	}

	rows := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(rows) != Size {
		return Board{}, errors.Errorf("board must have %d rows, got %d", Size, len(rows))
	}
	for r, row := range rows {
		cols := strings.Split(row, "|")
		if len(cols) != Size {
			return Board{}, errors.Errorf("row %d must have %d cells, got %d", r, Size, len(cols))
		}
		for c, cell := range cols {
			if len(cell) > 1 {
				return Board{}, errors.Errorf("invalid cell %q at %d %d", cell, r, c)
			}
			p := Blank
			if len(cell) == 1 {
				var ok bool
				if p, ok = pieceFromByte(cell[0]); !ok {
					return Board{}, errors.Errorf("invalid cell %q at %d %d", cell, r, c)
				}
			}
			b.cells[r*Size+c] = p
		}
	}
	return b, nil
}

// MustParse is Parse for literals in tests and tables. It panics on error.
func MustParse(s string) Board {
	b, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return b
}
