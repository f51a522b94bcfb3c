package infrastructure

import (
	"math/rand"
)

// DefaultRand is the production randomness source for box draws and
// redemption outcomes, backed by math/rand's globally seeded generator.
type DefaultRand struct{}

// NewRand creates the default randomness source
func NewRand() DefaultRand {
	return DefaultRand{}
}

// Float64 returns a sample in [0, 1)
func (DefaultRand) Float64() float64 {
	return rand.Float64()
}
