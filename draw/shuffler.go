package draw

import "math/rand/v2"

// Shuffler permutes n elements through swap. *rand.Rand from math/rand/v2
// satisfies it, which lets tests plug in a seeded source.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

type globalShuffler struct{}

func (globalShuffler) Shuffle(n int, swap func(i, j int)) {
	rand.Shuffle(n, swap)
}

// DefaultShuffler uses the process-wide math/rand/v2 source, which is safe
// for concurrent use.
func DefaultShuffler() Shuffler {
	return globalShuffler{}
}

// NewSeededShuffler returns a deterministic shuffler for reproducible draws.
// The returned value must not be shared between goroutines.
func NewSeededShuffler(seed1, seed2 uint64) Shuffler {
	return rand.New(rand.NewPCG(seed1, seed2))
}
