package board

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Size is the side length of the board.
const Size = 3

// NumCells is the number of cells on the board.
const NumCells = Size * Size

// Coord identifies a cell by row and column, both in [0,2].
type Coord struct {
	Row int
	Col int
}

// NoCoord is returned where no cell applies.
var NoCoord = Coord{Row: -1, Col: -1}

// Cells lists every coordinate in row-major order.
var Cells = [NumCells]Coord{
	{0, 0}, {0, 1}, {0, 2},
	{1, 0}, {1, 1}, {1, 2},
	{2, 0}, {2, 1}, {2, 2},
}

// Valid returns true if the coordinate lies on the board.
func (c Coord) Valid() bool {
	return c.Row >= 0 && c.Row < Size && c.Col >= 0 && c.Col < Size
}

// Index returns the flattened row-major index (row*3+col).
// The result is only meaningful for valid coordinates.
func (c Coord) Index() int {
	return c.Row*Size + c.Col
}

// CoordFromIndex converts a flattened index back into a coordinate.
func CoordFromIndex(i int) Coord {
	return Coord{Row: i / Size, Col: i % Size}
}

// String returns the coordinate as "row col".
func (c Coord) String() string {
	return fmt.Sprintf("%d %d", c.Row, c.Col)
}

// ParseCoord parses two integers separated by whitespace (e.g. "1 2").
// The result is not bounds checked; board accessors report ErrOutOfBounds.
func ParseCoord(s string) (Coord, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return NoCoord, errors.Errorf("invalid coordinate: %q", s)
	}
	row, err := strconv.Atoi(fields[0])
	if err != nil {
		return NoCoord, errors.Errorf("invalid coordinate: %q", s)
	}
	col, err := strconv.Atoi(fields[1])
	if err != nil {
		return NoCoord, errors.Errorf("invalid coordinate: %q", s)
	}
	return Coord{Row: row, Col: col}, nil
}
