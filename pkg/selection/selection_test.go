package selection

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/menta2k/photo-merge/pkg/types"
)

func pool(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("img%02d.jpg", i)
	}
	return names
}

func drain(p *RandomPairer) []types.Pair {
	var pairs []types.Pair
	for {
		pair, ok := p.Next()
		if !ok {
			return pairs
		}
		pairs = append(pairs, pair)
	}
}

func TestRandomPairerDisjointPairs(t *testing.T) {
	p := NewRandomPairer(pool(11), 42)
	pairs := drain(p)

	require.Len(t, pairs, 5)
	assert.Equal(t, 1, p.Remaining())

	seen := map[string]bool{}
	for _, pair := range pairs {
		assert.NotEqual(t, pair.First, pair.Second)
		for _, name := range []string{pair.First, pair.Second} {
			assert.False(t, seen[name], "%s drawn twice", name)
			seen[name] = true
		}
	}
}

func TestRandomPairerThreeImages(t *testing.T) {
	p := NewRandomPairer(pool(3), 7)

	_, ok := p.Next()
	assert.True(t, ok)
	_, ok = p.Next()
	assert.False(t, ok)
}

func TestRandomPairerTooSmall(t *testing.T) {
	for _, n := range []int{0, 1} {
		_, ok := NewRandomPairer(pool(n), 1).Next()
		assert.False(t, ok, "pool of %d", n)
	}
}

func TestRandomPairerSeedIsReproducible(t *testing.T) {
	a := drain(NewRandomPairer(pool(10), 1234))
	b := drain(NewRandomPairer(pool(10), 1234))
	assert.Equal(t, a, b)
}

func TestRandomPairerDoesNotMutatePool(t *testing.T) {
	names := pool(6)
	original := append([]string(nil), names...)

	drain(NewRandomPairer(names, 3))
	assert.Equal(t, original, names)
}

func TestRandomPairerCoversPool(t *testing.T) {
	// Every member should eventually be drawn first across seeds.
	names := pool(4)
	firsts := map[string]bool{}
	for seed := uint64(1); seed <= 200; seed++ {
		pair, ok := NewRandomPairer(names, seed).Next()
		require.True(t, ok)
		firsts[pair.First] = true
	}
	assert.Len(t, firsts, len(names))
}

func TestExplicitPair(t *testing.T) {
	assert.Equal(t, types.Pair{First: "a.jpg", Second: "b.jpg"}, ExplicitPair("a.jpg", "b.jpg"))
}
