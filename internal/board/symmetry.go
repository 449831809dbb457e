package board

// Rotations is the number of distinct quarter turns of the square.
const Rotations = 4

const codeMask = 3

// rotateIndex maps a flattened index one quarter turn clockwise: (r,c) -> (c, 2-r).
var rotateIndex = [NumCells]int{2, 5, 8, 1, 4, 7, 0, 3, 6}

// Encode packs the board into an integer, 2 bits per cell in row-major order.
// Cell i occupies bits [2i, 2i+1]. Code 3 never occurs.
func Encode(b Board) uint32 {
	var key uint32
	for i, p := range b.cells {
		key |= p.Code() << (2 * i)
	}
	return key
}

// Decode is the inverse of Encode.
func Decode(key uint32) Board {
	var b Board
	for i := range b.cells {
		b.cells[i] = pieceFromCode((key >> (2 * i)) & codeMask)
	}
	return b
}

func normalizeTimes(times int) int {
	return ((times % Rotations) + Rotations) % Rotations
}

// RotateCoord turns c clockwise by times quarter turns.
// Negative values turn anticlockwise. Four turns are the identity.
func RotateCoord(c Coord, times int) Coord {
	if !c.Valid() {
		return c
	}
	i := c.Index()
	for n := normalizeTimes(times); n > 0; n-- {
		i = rotateIndex[i]
	}
	return CoordFromIndex(i)
}

// Rotate returns b turned clockwise by times quarter turns: the piece at c
// moves to RotateCoord(c, times).
func Rotate(b Board, times int) Board {
	var out Board
	for _, c := range Cells {
		out.cells[RotateCoord(c, times).Index()] = b.cells[c.Index()]
	}
	return out
}

// RotateKey applies Rotate directly to a packed encoding.
func RotateKey(key uint32, times int) uint32 {
	for n := normalizeTimes(times); n > 0; n-- {
		var out uint32
		for i := 0; i < NumCells; i++ {
			out |= ((key >> (2 * i)) & codeMask) << (2 * rotateIndex[i])
		}
		key = out
	}
	return key
}

// Canonicalize returns the encoding of the rotation of b with the smallest
// packed value, and how many clockwise quarter turns reach it from b.
// Ties go to the fewest turns.
func Canonicalize(b Board) (rotations int, key uint32) {
	key = Encode(b)
	current := key
	for k := 1; k < Rotations; k++ {
		current = RotateKey(current, 1)
		if current < key {
			rotations, key = k, current
		}
	}
	return rotations, key
}
