package engine

import (
	"sync"
	"testing"

	"github.com/hailam/tictacplay/internal/board"
)

// selfSymmetric reports whether some non-trivial rotation leaves b unchanged.
func selfSymmetric(b board.Board) bool {
	for r := 1; r < board.Rotations; r++ {
		if board.Rotate(b, r) == b {
			return true
		}
	}
	return false
}

func TestCacheProbeMiss(t *testing.T) {
	cache := NewCache()

	if _, ok := cache.Check(board.New(), board.Cross); ok {
		t.Error("Expected cache miss on first probe")
	}
	if cache.HitRate() != 0 {
		t.Errorf("Expected 0 hit rate, got %.2f", cache.HitRate())
	}
}

func TestCacheCoordinateCorrectness(t *testing.T) {
	cache := NewCache()
	checked := 0

	for _, b := range reachable() {
		if b.Count() == 0 || selfSymmetric(b) {
			continue
		}
		mover := b.SideToMove().Opposite()
		var move board.Coord
		for _, c := range board.Cells {
			if b.At(c) == mover {
				move = c
				break
			}
		}
		cache.Add(b, mover, Entry{Move: move, Outcome: Loss})

		for r := 0; r < board.Rotations; r++ {
			got, ok := cache.Check(board.Rotate(b, r), mover)
			if !ok {
				t.Fatalf("Rotation %d of\n%s\nnot found", r, b.String())
			}
			want := board.RotateCoord(move, r)
			if got.Move != want || got.Outcome != Loss {
				t.Fatalf("Check(rotate %d) = %v (%v), want %v (Loss) for\n%s",
					r, got.Move, got.Outcome, want, b.String())
			}
		}
		cache.Clear()
		checked++
	}
	t.Logf("Checked %d asymmetric positions", checked)
}

func TestCacheSymmetricBoard(t *testing.T) {
	// Crosses on opposite corners are fixed by a half turn, so a lookup can
	// only recover the move up to that symmetry.
	cache := NewCache()
	b := board.MustParse("X| | \n |O| \n | |X")
	move := board.Coord{Row: 0, Col: 0}
	cache.Add(b, board.Cross, Entry{Move: move, Outcome: Tie})

	for r := 0; r < board.Rotations; r++ {
		rotated := board.Rotate(b, r)
		got, ok := cache.Check(rotated, board.Cross)
		if !ok {
			t.Fatalf("Rotation %d not found", r)
		}
		if rotated.At(got.Move) != board.Cross {
			t.Errorf("Rotation %d: move %v does not hold the mover's piece", r, got.Move)
		}
		want := board.RotateCoord(move, r)
		if got.Move != want && got.Move != board.RotateCoord(want, 2) {
			t.Errorf("Rotation %d: move %v is not equivalent to %v", r, got.Move, want)
		}
	}
}

func TestCacheSeparatesMovers(t *testing.T) {
	cache := NewCache()
	b := board.MustParse("X|O| \n | | \n | | ")

	cache.Add(b, board.Circle, Entry{Move: board.Coord{Row: 0, Col: 1}, Outcome: Loss})
	if _, ok := cache.Check(b, board.Cross); ok {
		t.Error("Entry for Circle should not be visible to Cross")
	}
	if e, ok := cache.Check(b, board.Circle); !ok || e.Outcome != Loss {
		t.Errorf("Expected Circle entry, got %+v %v", e, ok)
	}
	if cache.Len() != 1 {
		t.Errorf("Expected 1 entry, got %d", cache.Len())
	}
}

func TestCacheOneEntryPerRotationClass(t *testing.T) {
	cache := NewCache()
	for _, c := range board.Cells {
		b := board.New()
		b.Place(c, board.Cross)
		cache.Add(b, board.Cross, Entry{Move: c, Outcome: Tie})
	}
	// Corner, edge and centre.
	if cache.Len() != 3 {
		t.Errorf("Expected 3 canonical entries, got %d", cache.Len())
	}

	snap := cache.Snapshot()
	for i := 1; i < len(snap); i++ {
		if snap[i-1].Key > snap[i].Key {
			t.Error("Snapshot not ordered by key")
		}
	}
}

func TestCacheConcurrentWriters(t *testing.T) {
	cache := NewCache()
	b := board.MustParse("X| | \n | | \n | | ")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for r := 0; r < board.Rotations; r++ {
				rotated := board.Rotate(b, r)
				cache.Add(rotated, board.Cross, Entry{Move: board.RotateCoord(board.Coord{Row: 0, Col: 0}, r), Outcome: Tie})
				cache.Check(rotated, board.Cross)
			}
		}()
	}
	wg.Wait()

	if cache.Len() != 1 {
		t.Errorf("Expected a single entry, got %d", cache.Len())
	}
	if e, ok := cache.Check(b, board.Cross); !ok || e.Move != (board.Coord{Row: 0, Col: 0}) {
		t.Errorf("Unexpected entry %+v %v", e, ok)
	}
	if cache.HitRate() <= 0 {
		t.Error("Expected hits to be counted")
	}
}
