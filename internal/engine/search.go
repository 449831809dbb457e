package engine

import (
	"sync/atomic"

	"github.com/pkg/errors"

	"github.com/hailam/tictacplay/internal/board"
)

// Result is a move together with the outcome it secures for the mover.
type Result struct {
	Move    board.Coord
	Outcome Outcome
}

// NoResult is returned alongside false when no legal move exists.
var NoResult = Result{Move: board.NoCoord, Outcome: Tie}

// Searcher performs exhaustive backward induction over a board.
// It holds no board state; the board is passed in and restored before return.
type Searcher struct {
	cache      *Cache
	tieBreaker TieBreaker
	nodes      atomic.Uint64
}

// NewSearcher creates a searcher that memoizes into cache.
func NewSearcher(cache *Cache, tb TieBreaker) *Searcher {
	if tb == nil {
		tb = FirstTieBreaker{}
	}
	return &Searcher{
		cache:      cache,
		tieBreaker: tb,
	}
}

// Nodes returns the number of placements tried since the last Reset.
func (s *Searcher) Nodes() uint64 {
	return s.nodes.Load()
}

// Reset clears the node counter. The cache is kept.
func (s *Searcher) Reset() {
	s.nodes.Store(0)
}

// BestMove returns the best move for piece on b and the outcome it secures.
// It returns false only when b has no empty cell. b is unchanged on return.
func (s *Searcher) BestMove(b *board.Board, piece board.Piece) (Result, bool) {
	mustBeMark(piece)

	results, won := s.expand(b, piece)
	if len(results) == 0 {
		return NoResult, false
	}
	if won {
		return results[len(results)-1], true
	}
	return pick(results, s.tieBreaker), true
}

// bestOutcome is BestMove without the move choice, used below the root.
func (s *Searcher) bestOutcome(b *board.Board, piece board.Piece) (Outcome, bool) {
	results, won := s.expand(b, piece)
	if len(results) == 0 {
		return Tie, false
	}
	if won {
		return Win, true
	}
	best := Loss
	for _, r := range results {
		if r.Outcome < best {
			best = r.Outcome
		}
	}
	return best, true
}

// expand evaluates every empty cell in row-major order. It stops at the first
// winning cell, which is then the last element and won is true.
func (s *Searcher) expand(b *board.Board, piece board.Piece) (results []Result, won bool) {
	results = make([]Result, 0, board.NumCells)
	for _, c := range board.Cells {
		if !b.IsEmpty(c) {
			continue
		}
		outcome := s.evaluate(b, c, piece)
		results = append(results, Result{Move: c, Outcome: outcome})
		if outcome == Win {
			return results, true
		}
	}
	return results, false
}

// evaluate plays piece at c, scores the resulting position and takes it back.
func (s *Searcher) evaluate(b *board.Board, c board.Coord, piece board.Piece) Outcome {
	s.nodes.Add(1)

	mustPlace(b, c, piece)
	defer mustClear(b, c)

	rotations, key := board.Canonicalize(*b)
	if entry, ok := s.cache.probe(key, rotations, piece); ok {
		return entry.Outcome
	}

	var outcome Outcome
	if b.Wins(piece) {
		outcome = Win
	} else if reply, ok := s.bestOutcome(b, piece.Opposite()); ok {
		outcome = reply.Opposite()
	} else {
		outcome = Tie
	}

	s.cache.store(key, rotations, piece, Entry{Move: c, Outcome: outcome})
	return outcome
}

// pick returns the candidate with the lowest outcome, breaking ties with tb.
func pick(results []Result, tb TieBreaker) Result {
	best := Loss
	for _, r := range results {
		if r.Outcome < best {
			best = r.Outcome
		}
	}

	var tied [board.NumCells]Result
	n := 0
	for _, r := range results {
		if r.Outcome == best {
			tied[n] = r
			n++
		}
	}

	i := tb.Pick(n)
	if i < 0 || i >= n {
		panic(errors.Errorf("engine: tie breaker picked %d of %d candidates", i, n))
	}
	return tied[i]
}

func mustBeMark(piece board.Piece) {
	if piece != board.Cross && piece != board.Circle {
		panic(errors.Wrapf(board.ErrBlankPiece, "engine: cannot search for %v", piece.Name()))
	}
}

func mustPlace(b *board.Board, c board.Coord, piece board.Piece) {
	if err := b.Place(c, piece); err != nil {
		panic(errors.Wrap(err, "engine: trial placement"))
	}
}

func mustClear(b *board.Board, c board.Coord) {
	if err := b.Clear(c); err != nil {
		panic(errors.Wrap(err, "engine: undo placement"))
	}
}
