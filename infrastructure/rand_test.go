package infrastructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultRand_Float64(t *testing.T) {
	r := NewRand()
	for i := 0; i < 100; i++ {
		sample := r.Float64()
		assert.GreaterOrEqual(t, sample, 0.0)
		assert.Less(t, sample, 1.0)
	}
}
