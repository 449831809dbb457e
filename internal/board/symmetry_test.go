package board

import (
	"math/rand"
	"testing"
)

// randomBoard fills cells with random pieces. Boards need not be reachable.
func randomBoard(rng *rand.Rand) Board {
	var b Board
	for i := range b.cells {
		b.cells[i] = Piece(rng.Intn(3))
	}
	return b
}

func TestRotateCoordOrderFour(t *testing.T) {
	for _, c := range Cells {
		if got := RotateCoord(c, 4); got != c {
			t.Errorf("RotateCoord(%v, 4) = %v", c, got)
		}
		for k := 0; k < Rotations; k++ {
			if got := RotateCoord(RotateCoord(c, k), 4-k); got != c {
				t.Errorf("RotateCoord(RotateCoord(%v, %d), %d) = %v", c, k, 4-k, got)
			}
			if got := RotateCoord(RotateCoord(c, k), -k); got != c {
				t.Errorf("RotateCoord(RotateCoord(%v, %d), %d) = %v", c, k, -k, got)
			}
		}
	}
}

func TestRotateCoordDirection(t *testing.T) {
	// One quarter turn maps (r,c) to (c, 2-r).
	for _, c := range Cells {
		want := Coord{Row: c.Col, Col: 2 - c.Row}
		if got := RotateCoord(c, 1); got != want {
			t.Errorf("RotateCoord(%v, 1) = %v, want %v", c, got, want)
		}
	}
}

func TestEncode(t *testing.T) {
	b := New()
	if Encode(b) != 0 {
		t.Errorf("Empty board should encode to 0, got %d", Encode(b))
	}

	b.Place(Coord{0, 0}, Cross)
	b.Place(Coord{0, 1}, Circle)
	want := uint32(2 | 1<<2)
	if got := Encode(b); got != want {
		t.Errorf("Encode = %d, want %d", got, want)
	}

	if Decode(Encode(b)) != b {
		t.Error("Decode(Encode(b)) != b")
	}
}

func TestRotateKeyMatchesRotate(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for n := 0; n < 500; n++ {
		b := randomBoard(rng)
		for k := 0; k < Rotations; k++ {
			if got, want := RotateKey(Encode(b), k), Encode(Rotate(b, k)); got != want {
				t.Fatalf("RotateKey(%d) = %d, Encode(Rotate) = %d for\n%s", k, got, want, b.String())
			}
		}
	}
}

func TestCanonicalize(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		k, key := Canonicalize(New())
		if k != 0 || key != 0 {
			t.Errorf("Canonicalize(empty) = (%d, %d), want (0, 0)", k, key)
		}
	})

	t.Run("CornerCross", func(t *testing.T) {
		b := New()
		b.Place(Coord{0, 0}, Cross)
		k, key := Canonicalize(b)
		if k != 0 || key != 2 {
			t.Errorf("Canonicalize = (%d, %d), want (0, 2)", k, key)
		}
	})

	t.Run("ReachesMinimum", func(t *testing.T) {
		rng := rand.New(rand.NewSource(2))
		for n := 0; n < 500; n++ {
			b := randomBoard(rng)
			k, key := Canonicalize(b)
			if Encode(Rotate(b, k)) != key {
				t.Fatalf("Rotating by %d does not reach key %d", k, key)
			}
			for r := 0; r < Rotations; r++ {
				e := Encode(Rotate(b, r))
				if e < key || (e == key && r < k) {
					t.Fatalf("Rotation %d (%d) beats canonical (%d, %d)", r, e, k, key)
				}
			}
		}
	})

	t.Run("Deterministic", func(t *testing.T) {
		b := MustParse("X|O| \n |X| \n | |O")
		k1, key1 := Canonicalize(b)
		k2, key2 := Canonicalize(b)
		if k1 != k2 || key1 != key2 {
			t.Errorf("Canonicalize not deterministic: (%d, %d) vs (%d, %d)", k1, key1, k2, key2)
		}
	})

	t.Run("InvariantUnderRotation", func(t *testing.T) {
		rng := rand.New(rand.NewSource(3))
		for n := 0; n < 500; n++ {
			b := randomBoard(rng)
			_, key := Canonicalize(b)
			for r := 0; r < Rotations; r++ {
				if _, rk := Canonicalize(Rotate(b, r)); rk != key {
					t.Fatalf("Canonical key changed under rotation %d: %d != %d", r, rk, key)
				}
			}
		}
	})
}
