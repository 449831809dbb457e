// Package engine computes optimal tic-tac-toe moves by exhaustive backward
// induction with a rotation-aware transposition cache.
package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/hailam/tictacplay/internal/board"
)

// SearchInfo describes the last completed search.
type SearchInfo struct {
	Move      board.Coord
	Outcome   Outcome
	Nodes     uint64
	Time      time.Duration
	CacheSize int
	HitRate   float64
}

// Engine is the tic-tac-toe AI. It owns a cache that persists across searches.
type Engine struct {
	mu       sync.Mutex
	searcher *Searcher
	cache    *Cache
	threads  int
	last     SearchInfo

	// Callbacks
	OnInfo func(SearchInfo)
}

// NewEngine creates an engine with a fresh cache and deterministic tie-breaking.
func NewEngine() *Engine {
	return NewEngineWithCache(NewCache())
}

// NewEngineWithCache creates an engine that memoizes into cache.
func NewEngineWithCache(cache *Cache) *Engine {
	return &Engine{
		searcher: NewSearcher(cache, FirstTieBreaker{}),
		cache:    cache,
		threads:  1,
	}
}

// SetTieBreaker sets how equally good root moves are chosen.
// A nil tie breaker restores deterministic first-in-order choice.
func (e *Engine) SetTieBreaker(tb TieBreaker) {
	if tb == nil {
		tb = FirstTieBreaker{}
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.searcher.tieBreaker = tb
}

// SetThreads sets how many root moves are evaluated concurrently.
func (e *Engine) SetThreads(n int) {
	if n < 1 {
		n = 1
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.threads = n
}

// Threads returns the configured root parallelism.
func (e *Engine) Threads() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.threads
}

// Cache returns the engine's transposition cache.
func (e *Engine) Cache() *Cache {
	return e.cache
}

// BestMove finds the best move for piece on b. It returns false when the
// board is full. b is passed by value and never modified.
// OnInfo runs after the engine lock is released, so it may call back into e.
func (e *Engine) BestMove(b board.Board, piece board.Piece) (Result, bool) {
	result, ok, info, onInfo := e.search(b, piece)
	if ok && onInfo != nil {
		onInfo(info)
	}
	return result, ok
}

func (e *Engine) search(b board.Board, piece board.Piece) (Result, bool, SearchInfo, func(SearchInfo)) {
	e.mu.Lock()
	defer e.mu.Unlock()

	mustBeMark(piece)
	e.searcher.Reset()
	start := time.Now()

	var (
		result Result
		ok     bool
	)
	if e.threads > 1 {
		result, ok = e.searchParallel(b, piece)
	} else {
		result, ok = e.searcher.BestMove(&b, piece)
	}

	e.last = SearchInfo{
		Move:      result.Move,
		Outcome:   result.Outcome,
		Nodes:     e.searcher.Nodes(),
		Time:      time.Since(start),
		CacheSize: e.cache.Len(),
		HitRate:   e.cache.HitRate(),
	}

	log.Debug().
		Str("component", "engine").
		Str("piece", piece.Name()).
		Bool("found", ok).
		Stringer("move", result.Move).
		Stringer("outcome", result.Outcome).
		Uint64("nodes", e.last.Nodes).
		Int("cache", e.last.CacheSize).
		Float64("hit_rate", e.last.HitRate).
		Dur("elapsed", e.last.Time).
		Msg("search finished")

	return result, ok, e.last, e.OnInfo
}

// searchParallel scores every root move concurrently, each worker on its own
// copy of the board. The choice matches the sequential search: the first
// winning cell in board order, otherwise the tie breaker over the best.
func (e *Engine) searchParallel(b board.Board, piece board.Piece) (Result, bool) {
	empty := b.Empty()
	if len(empty) == 0 {
		return NoResult, false
	}

	results := make([]Result, len(empty))
	var g errgroup.Group
	g.SetLimit(e.threads)
	for i, c := range empty {
		i, c := i, c
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = errors.Errorf("engine: root move %v: %v", c, r)
				}
			}()
			local := b
			results[i] = Result{Move: c, Outcome: e.searcher.evaluate(&local, c, piece)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		panic(err)
	}

	for _, r := range results {
		if r.Outcome == Win {
			return r, true
		}
	}
	return pick(results, e.searcher.tieBreaker), true
}

// Analyze returns the outcome of every legal move for piece, in board order.
func (e *Engine) Analyze(b board.Board, piece board.Piece) []Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	mustBeMark(piece)
	results := make([]Result, 0, board.NumCells)
	for _, c := range b.Empty() {
		results = append(results, Result{Move: c, Outcome: e.searcher.evaluate(&b, c, piece)})
	}
	return results
}

// LastSearch returns statistics for the most recent BestMove call.
func (e *Engine) LastSearch() SearchInfo {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.last
}

// Clear empties the cache.
func (e *Engine) Clear() {
	e.cache.Clear()
}

// Describe renders a result as "row col (Outcome)".
func Describe(r Result) string {
	return fmt.Sprintf("%v (%v)", r.Move, r.Outcome)
}
