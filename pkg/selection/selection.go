package selection

import (
	"math/rand/v2"

	"github.com/menta2k/photo-merge/pkg/types"
)

// RandomPairer draws disjoint pairs from a pool without replacement.
// It is local to one batch run and not safe for concurrent use.
type RandomPairer struct {
	remaining []string
	rng       *rand.Rand
}

// NewRandomPairer creates a pairer over pool. A seed of 0 picks a random seed.
// The pool slice is copied.
func NewRandomPairer(pool []string, seed uint64) *RandomPairer {
	if seed == 0 {
		seed = rand.Uint64()
	}
	remaining := make([]string, len(pool))
	copy(remaining, pool)

	return &RandomPairer{
		remaining: remaining,
		rng:       rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Next draws two distinct images uniformly at random and removes them from the pool.
// It reports false once fewer than two images remain.
func (p *RandomPairer) Next() (types.Pair, bool) {
	if len(p.remaining) < 2 {
		return types.Pair{}, false
	}
	first := p.take()
	second := p.take()
	return types.Pair{First: first, Second: second}, true
}

// Remaining returns the number of images not drawn yet
func (p *RandomPairer) Remaining() int {
	return len(p.remaining)
}

func (p *RandomPairer) take() string {
	i := p.rng.IntN(len(p.remaining))
	name := p.remaining[i]

	last := len(p.remaining) - 1
	p.remaining[i] = p.remaining[last]
	p.remaining = p.remaining[:last]
	return name
}

// ExplicitPair pairs two caller-chosen images in the given order
func ExplicitPair(first, second string) types.Pair {
	return types.Pair{First: first, Second: second}
}
