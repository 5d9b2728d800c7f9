package rng_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cory-johannsen/nightfall/internal/game/rng"
)

// TestCryptoSource_Intn_InRange verifies the postcondition:
// every value returned by Intn(6) is in [0, 6).
func TestCryptoSource_Intn_InRange(t *testing.T) {
	src := rng.NewCryptoSource()
	for i := 0; i < 1000; i++ {
		v := src.Intn(6)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 6)
	}
}

// TestCryptoSource_Intn_PanicsOnZero verifies the precondition:
// Intn panics when called with n <= 0.
func TestCryptoSource_Intn_PanicsOnZero(t *testing.T) {
	src := rng.NewCryptoSource()
	assert.Panics(t, func() { src.Intn(0) })
}

// TestCryptoSource_Float64_InRange verifies every value returned by Float64
// is in [0, 1).
func TestCryptoSource_Float64_InRange(t *testing.T) {
	src := rng.NewCryptoSource()
	for i := 0; i < 1000; i++ {
		v := src.Float64()
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
}

// TestSequence_ConsumesQueuesInOrder verifies scripted values are returned
// in order and that exhausted queues degrade to zero values.
func TestSequence_ConsumesQueuesInOrder(t *testing.T) {
	src := &rng.Sequence{Ints: []int{7, 3}, Floats: []float64{0.5}}

	assert.Equal(t, 2, src.Intn(5), "first queued int is taken modulo n")
	assert.Equal(t, 3, src.Intn(10))
	assert.Equal(t, 0, src.Intn(10), "exhausted int queue returns 0")

	assert.Equal(t, 0.5, src.Float64())
	assert.Equal(t, 0.0, src.Float64(), "exhausted float queue returns 0")
}

// TestSequence_Intn_PanicsOnZero verifies Sequence enforces the same
// precondition as the crypto source.
func TestSequence_Intn_PanicsOnZero(t *testing.T) {
	src := &rng.Sequence{}
	assert.Panics(t, func() { src.Intn(0) })
}
