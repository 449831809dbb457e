package engine

import (
	"encoding/binary"
	"sync"

	"lukechampine.com/frand"
)

// TieBreaker chooses among n equally good moves, given in board order.
// Pick must return an index in [0, n).
type TieBreaker interface {
	Pick(n int) int
}

// FirstTieBreaker always picks the first candidate in board order.
type FirstTieBreaker struct{}

// Pick implements TieBreaker.
func (FirstTieBreaker) Pick(n int) int {
	return 0
}

// RandomTieBreaker picks uniformly among tied candidates.
type RandomTieBreaker struct {
	mu  sync.Mutex
	rng *frand.RNG
}

// NewRandomTieBreaker returns a tie breaker drawing from a fresh random seed.
func NewRandomTieBreaker() *RandomTieBreaker {
	return &RandomTieBreaker{rng: frand.New()}
}

// NewSeededTieBreaker returns a reproducible random tie breaker.
func NewSeededTieBreaker(seed uint64) *RandomTieBreaker {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:8], seed)
	return &RandomTieBreaker{rng: frand.NewCustom(key[:], 1024, 12)}
}

// Pick implements TieBreaker.
func (t *RandomTieBreaker) Pick(n int) int {
	if n <= 1 {
		return 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.rng.Intn(n)
}
