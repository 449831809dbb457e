package game

import (
	"errors"
	"testing"

	"github.com/hailam/tictacplay/internal/board"
	"github.com/hailam/tictacplay/internal/engine"
)

func TestNewPlayer(t *testing.T) {
	if _, err := NewPlayer(Human, board.Blank); !errors.Is(err, board.ErrBlankPiece) {
		t.Errorf("Expected ErrBlankPiece, got %v", err)
	}
	p, err := NewPlayer(Computer, board.Circle)
	if err != nil {
		t.Fatalf("NewPlayer failed: %v", err)
	}
	if p.String() != "(Computer, O)" {
		t.Errorf("Unexpected player string %q", p.String())
	}
}

func TestCurrentPlayer(t *testing.T) {
	g, err := New(board.Circle, engine.NewEngine())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if g.CurrentPlayer() != g.Computer() {
		t.Error("Cross (computer) should move first")
	}
	if err := g.PlayHuman(board.Coord{Row: 0, Col: 0}); !errors.Is(err, ErrNotYourTurn) {
		t.Errorf("Expected ErrNotYourTurn, got %v", err)
	}

	if _, err := g.PlayComputer(); err != nil {
		t.Fatalf("PlayComputer failed: %v", err)
	}
	if g.CurrentPlayer() != g.Human() {
		t.Error("Human should move after the computer")
	}
	if _, err := g.PlayComputer(); !errors.Is(err, ErrNotYourTurn) {
		t.Errorf("Expected ErrNotYourTurn, got %v", err)
	}
}

func TestPlayHumanValidation(t *testing.T) {
	g, _ := New(board.Cross, nil)

	if err := g.PlayHuman(board.Coord{Row: 3, Col: 0}); !errors.Is(err, board.ErrOutOfBounds) {
		t.Errorf("Expected ErrOutOfBounds, got %v", err)
	}
	if err := g.PlayHuman(board.Coord{Row: 1, Col: 1}); err != nil {
		t.Fatalf("PlayHuman failed: %v", err)
	}
	if _, err := g.PlayComputer(); err != nil {
		t.Fatalf("PlayComputer failed: %v", err)
	}
	if err := g.PlayHuman(board.Coord{Row: 1, Col: 1}); !errors.Is(err, board.ErrCellOccupied) {
		t.Errorf("Expected ErrCellOccupied, got %v", err)
	}
	if len(g.History()) != 2 {
		t.Errorf("Expected 2 moves in history, got %d", len(g.History()))
	}
}

// Two engines playing each other must always tie.
func TestComputerNeverLoses(t *testing.T) {
	eng := engine.NewEngine()
	for _, humanPiece := range []board.Piece{board.Cross, board.Circle} {
		g, _ := New(humanPiece, eng)
		for !g.Over() {
			if g.CurrentPlayer().Opponent == Computer {
				if _, err := g.PlayComputer(); err != nil {
					t.Fatalf("PlayComputer failed: %v", err)
				}
				continue
			}
			hint, ok := g.Hint()
			if !ok {
				t.Fatal("Expected a hint")
			}
			if err := g.PlayHuman(hint.Move); err != nil {
				t.Fatalf("PlayHuman(%v) failed: %v", hint.Move, err)
			}
		}
		if !g.Tied() {
			w, _ := g.Winner()
			t.Errorf("Perfect play should tie, but %v won:\n%s", w, g.Board().String())
		}
	}
}

// A human who always takes the last empty cell never beats the computer.
func TestComputerBeatsNaiveOpponent(t *testing.T) {
	eng := engine.NewEngine()
	g, _ := New(board.Cross, eng)

	for !g.Over() {
		if g.CurrentPlayer().Opponent == Computer {
			if _, err := g.PlayComputer(); err != nil {
				t.Fatalf("PlayComputer failed: %v", err)
			}
			continue
		}
		b := g.Board()
		empty := b.Empty()
		if err := g.PlayHuman(empty[len(empty)-1]); err != nil {
			t.Fatalf("PlayHuman failed: %v", err)
		}
	}

	w, won := g.Winner()
	if won && w.Opponent == Human {
		t.Errorf("Computer lost to naive play:\n%s", g.Board().String())
	}
}

func TestGameOverRejectsMoves(t *testing.T) {
	g, _ := New(board.Cross, nil)
	moves := []board.Coord{{Row: 0, Col: 0}, {Row: 1, Col: 0}, {Row: 0, Col: 1}, {Row: 1, Col: 1}, {Row: 0, Col: 2}}
	for i, c := range moves {
		piece := board.Cross
		if i%2 == 1 {
			piece = board.Circle
		}
		if err := g.place(c, piece); err != nil {
			t.Fatalf("place(%v) failed: %v", c, err)
		}
	}

	w, ok := g.Winner()
	if !ok || w != g.Human() {
		t.Fatalf("Expected human win, got %v %v", w, ok)
	}
	if err := g.PlayHuman(board.Coord{Row: 2, Col: 2}); !errors.Is(err, ErrGameOver) {
		t.Errorf("Expected ErrGameOver, got %v", err)
	}
	if _, err := g.PlayComputer(); !errors.Is(err, ErrGameOver) {
		t.Errorf("Expected ErrGameOver, got %v", err)
	}
	if _, ok := g.Hint(); ok {
		t.Error("Expected no hint after game over")
	}
}

func TestResetAndSwap(t *testing.T) {
	g := NewRandom(nil)
	if g.Human().Piece == g.Computer().Piece {
		t.Fatal("Players must hold different pieces")
	}

	if err := g.SetHumanPiece(board.Circle); err != nil {
		t.Fatalf("SetHumanPiece failed: %v", err)
	}
	if g.Human().Piece != board.Circle || g.Computer().Piece != board.Cross {
		t.Error("SetHumanPiece did not swap sides")
	}
	if err := g.SetHumanPiece(board.Blank); err == nil {
		t.Error("Expected error for blank piece")
	}
	b := g.Board()
	if b.Count() != 0 {
		t.Error("Board should be empty after reset")
	}
}

func TestPlayComputerAt(t *testing.T) {
	eng := engine.NewEngine()
	g, _ := New(board.Circle, eng)

	res, ok := eng.BestMove(g.Board(), g.Computer().Piece)
	if !ok {
		t.Fatal("Expected a move on the empty board")
	}
	if err := g.PlayComputerAt(res.Move); err != nil {
		t.Fatalf("PlayComputerAt failed: %v", err)
	}
	b := g.Board()
	if b.At(res.Move) != board.Cross {
		t.Errorf("Expected X at %v", res.Move)
	}
	if err := g.PlayComputerAt(board.Coord{Row: 2, Col: 2}); !errors.Is(err, ErrNotYourTurn) {
		t.Errorf("Expected ErrNotYourTurn, got %v", err)
	}
	if len(g.History()) != 1 {
		t.Errorf("Expected one move in history, got %d", len(g.History()))
	}
}
