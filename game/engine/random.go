package engine

import (
	"math/rand"
	"time"
)

// RandomSource supplies uniform integers in [0, n). It is the only source of
// nondeterminism in the engine; *rand.Rand satisfies it.
type RandomSource interface {
	Intn(n int) int
}

// NewRandomSource returns a seeded source. A zero seed is replaced by the
// current time.
func NewRandomSource(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// RandomPoint draws a uniformly random point within grid's inclusive bounds.
func RandomPoint(grid Grid, rng RandomSource) Point {
	return Point{
		X: rng.Intn(grid.Width + 1),
		Y: rng.Intn(grid.Height + 1),
	}
}
