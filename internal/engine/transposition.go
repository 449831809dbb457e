package engine

import (
	"sort"
	"sync"
	"sync/atomic"

	"github.com/hailam/tictacplay/internal/board"
)

// Entry is a cached search result: the move that produced the board and the
// outcome for the mark that played it.
type Entry struct {
	Move    board.Coord
	Outcome Outcome
}

// cacheKey identifies a board up to rotation together with the mark that
// produced it. Outcomes are stored from that mark's perspective.
type cacheKey struct {
	canonical uint32
	mover     board.Piece
}

// Cache is a transposition table keyed on the canonical rotation of a board.
// Moves are stored in the canonical frame and mapped back on lookup.
// It is safe for concurrent use; concurrent writers of the same key
// overwrite each other with identical results.
type Cache struct {
	mu      sync.RWMutex
	entries map[cacheKey]Entry

	// Statistics
	hits   atomic.Uint64
	probes atomic.Uint64
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{
		entries: make(map[cacheKey]Entry),
	}
}

// Check looks up b as produced by mover. The returned move is expressed in
// b's own orientation.
func (c *Cache) Check(b board.Board, mover board.Piece) (Entry, bool) {
	rotations, key := board.Canonicalize(b)
	return c.probe(key, rotations, mover)
}

func (c *Cache) probe(key uint32, rotations int, mover board.Piece) (Entry, bool) {
	c.probes.Add(1)

	c.mu.RLock()
	entry, ok := c.entries[cacheKey{canonical: key, mover: mover}]
	c.mu.RUnlock()
	if !ok {
		return Entry{}, false
	}

	c.hits.Add(1)
	backRotations := (board.Rotations - rotations) % board.Rotations
	entry.Move = board.RotateCoord(entry.Move, backRotations)
	return entry, true
}

// Add stores e for b as produced by mover. e.Move is given in b's orientation.
func (c *Cache) Add(b board.Board, mover board.Piece, e Entry) {
	rotations, key := board.Canonicalize(b)
	c.store(key, rotations, mover, e)
}

func (c *Cache) store(key uint32, rotations int, mover board.Piece, e Entry) {
	e.Move = board.RotateCoord(e.Move, rotations)

	c.mu.Lock()
	c.entries[cacheKey{canonical: key, mover: mover}] = e
	c.mu.Unlock()
}

// Len returns the number of stored positions.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Clear removes all entries and resets statistics.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.entries = make(map[cacheKey]Entry)
	c.mu.Unlock()
	c.hits.Store(0)
	c.probes.Store(0)
}

// HitRate returns the cache hit rate as a percentage.
func (c *Cache) HitRate() float64 {
	probes := c.probes.Load()
	if probes == 0 {
		return 0
	}
	return float64(c.hits.Load()) / float64(probes) * 100
}

// CachedPosition is an exported view of one entry, in the canonical frame.
type CachedPosition struct {
	Key     uint32
	Mover   board.Piece
	Move    board.Coord
	Outcome Outcome
}

// Snapshot returns all entries ordered by key and mover.
func (c *Cache) Snapshot() []CachedPosition {
	c.mu.RLock()
	out := make([]CachedPosition, 0, len(c.entries))
	for k, e := range c.entries {
		out = append(out, CachedPosition{Key: k.canonical, Mover: k.mover, Move: e.Move, Outcome: e.Outcome})
	}
	c.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Key != out[j].Key {
			return out[i].Key < out[j].Key
		}
		return out[i].Mover < out[j].Mover
	})
	return out
}
