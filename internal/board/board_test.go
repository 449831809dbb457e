package board

import (
	"errors"
	"fmt"
	"testing"
)

func TestPlaceAndClear(t *testing.T) {
	b := New()

	if err := b.Place(Coord{1, 1}, Cross); err != nil {
		t.Fatalf("Place on empty cell failed: %v", err)
	}
	if p, _ := b.Get(Coord{1, 1}); p != Cross {
		t.Errorf("Expected Cross at 1 1, got %v", p.Name())
	}
	if b.Count() != 1 {
		t.Errorf("Expected 1 occupied cell, got %d", b.Count())
	}

	err := b.Place(Coord{1, 1}, Circle)
	if !errors.Is(err, ErrCellOccupied) {
		t.Errorf("Expected ErrCellOccupied, got %v", err)
	}
	if p, _ := b.Get(Coord{1, 1}); p != Cross {
		t.Error("Occupied cell was overwritten")
	}

	if err := b.Clear(Coord{1, 1}); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if b.Count() != 0 {
		t.Errorf("Expected empty board after clear, got %d occupied", b.Count())
	}
}

func TestOutOfBounds(t *testing.T) {
	b := New()
	bad := []Coord{{-1, 0}, {0, -1}, {3, 0}, {0, 3}, {5, 5}}

	for _, c := range bad {
		if _, err := b.Get(c); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("Get(%v): expected ErrOutOfBounds, got %v", c, err)
		}
		if err := b.Place(c, Cross); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("Place(%v): expected ErrOutOfBounds, got %v", c, err)
		}
		if err := b.Clear(c); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("Clear(%v): expected ErrOutOfBounds, got %v", c, err)
		}
	}
}

func TestPlaceBlank(t *testing.T) {
	b := New()
	if err := b.Place(Coord{0, 0}, Blank); !errors.Is(err, ErrBlankPiece) {
		t.Errorf("Expected ErrBlankPiece, got %v", err)
	}
}

func TestWinner(t *testing.T) {
	tests := []struct {
		name   string
		board  string
		winner Piece
		found  bool
	}{
		{"empty", " | | \n | | \n | | ", Blank, false},
		{"column", "X|O| \n |O| \nX|O|X", Circle, true},
		{"row", "X|X|X\nO|O| \n | | ", Cross, true},
		{"diagonal", "X|O| \nO|X| \n | |X", Cross, true},
		{"anti-diagonal", "X|X|O\n |O| \nO| |X", Circle, true},
		{"full tie", "X|O|X\nX|O|O\nO|X|X", Blank, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := MustParse(tc.board)
			winner, found := b.Winner()
			if found != tc.found || winner != tc.winner {
				t.Errorf("Winner() = %v, %v; want %v, %v", winner.Name(), found, tc.winner.Name(), tc.found)
			}
			if tc.found && !b.Wins(tc.winner) {
				t.Errorf("Wins(%v) should be true", tc.winner.Name())
			}
			if tc.found && b.Wins(tc.winner.Opposite()) {
				t.Errorf("Wins(%v) should be false", tc.winner.Opposite().Name())
			}
		})
	}
}

func TestSideToMove(t *testing.T) {
	b := New()
	if b.SideToMove() != Cross {
		t.Error("Cross should move first")
	}
	b.Place(Coord{0, 0}, Cross)
	if b.SideToMove() != Circle {
		t.Error("Circle should move second")
	}
}

func TestStringRoundTrip(t *testing.T) {
	b := New()
	b.Place(Coord{0, 0}, Cross)
	b.Place(Coord{0, 1}, Circle)
	b.Place(Coord{2, 2}, Cross)

	want := "X|O| \n | | \n | |X"
	if got := b.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	parsed, err := Parse(b.String())
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if parsed != b {
		t.Errorf("Parse(String()) = %q, want %q", parsed.String(), b.String())
	}

	compact, err := Parse("XO......X")
	if err != nil {
		t.Fatalf("Parse compact failed: %v", err)
	}
	if compact != b {
		t.Errorf("compact parse = %q, want %q", compact.String(), b.String())
	}
}

func TestParseErrors(t *testing.T) {
	bad := []string{
		"X|O",
		"X|O|X\nO|O\nX|X|X",
		"Z|O|X\nO|O|X\nX|X|X",
		"XO.......Z",
	}
	for _, s := range bad {
		if _, err := Parse(s); err == nil {
			t.Errorf("Parse(%q) should fail", s)
		}
	}
}

func TestParseCoord(t *testing.T) {
	c, err := ParseCoord(" 2  1 ")
	if err != nil {
		t.Fatalf("ParseCoord failed: %v", err)
	}
	if c != (Coord{2, 1}) {
		t.Errorf("ParseCoord = %v, want 2 1", c)
	}

	for _, s := range []string{"", "1", "1 2 3", "a b"} {
		if _, err := ParseCoord(s); err == nil {
			t.Errorf("ParseCoord(%q) should fail", s)
		}
	}
}

func TestCoordIndexConversion(t *testing.T) {
	for i, c := range Cells {
		if c.Index() != i {
			t.Errorf("%v.Index() = %d, want %d", c, c.Index(), i)
		}
		if CoordFromIndex(i) != c {
			t.Errorf("CoordFromIndex(%d) = %v, want %v", i, CoordFromIndex(i), c)
		}
	}
}

func TestPieceOpposite(t *testing.T) {
	if Cross.Opposite() != Circle || Circle.Opposite() != Cross {
		t.Error("Cross and Circle should be opposites")
	}
	if Blank.Opposite() != Blank {
		t.Error("Blank should be its own opposite")
	}
}

// Read-only methods work on Board values, including values returned by functions.
func TestValueReceivers(t *testing.T) {
	build := func() Board { return MustParse("X|O| \n |X| \n | |X") }

	if got := fmt.Sprintf("%v", build()); got != "X|O| \n |X| \n | |X" {
		t.Errorf("fmt on a Board value = %q", got)
	}
	if build().String() != fmt.Sprint(build()) {
		t.Error("String and fmt disagree")
	}
	if w, ok := build().Winner(); !ok || w != Cross {
		t.Errorf("Winner = %v %v, want X true", w, ok)
	}
	if build().Count() != 4 || build().SideToMove() != Cross || len(build().Empty()) != 5 {
		t.Error("Unexpected Count, SideToMove or Empty on a Board value")
	}
	if line, ok := build().WinningLine(); !ok || line[0] != (Coord{0, 0}) || line[2] != (Coord{2, 2}) {
		t.Errorf("WinningLine = %v %v", line, ok)
	}
}
