// Package rng provides the injectable random source used by character
// generation, the consequence engine, and the fallback narrative generator.
// Isolating randomness behind Source keeps those components deterministic
// under test.
package rng

import (
	"crypto/rand"
	"math/big"
)

// Source produces uniformly distributed random values.
type Source interface {
	// Intn returns a random int in [0, n). Panics if n <= 0.
	Intn(n int) int
	// Float64 returns a random float64 in [0.0, 1.0).
	Float64() float64
}

// cryptoSource implements Source using crypto/rand.
//
// Invariant: All values produced are uniformly distributed in [0, n) for
// any n > 0, and in [0, 1) for Float64.
type cryptoSource struct{}

// NewCryptoSource returns a Source backed by crypto/rand.
func NewCryptoSource() Source {
	return &cryptoSource{}
}

// float64Resolution is the number of distinct values Float64 can produce.
// 1<<53 matches the precision of a float64 mantissa.
const float64Resolution = 1 << 53

// Intn returns a cryptographically secure random int in [0, n).
//
// Precondition: n > 0. Panics with "rng: Intn called with n <= 0" if n <= 0.
// Panics with "rng: crypto/rand failure: <err>" if crypto/rand fails.
func (c *cryptoSource) Intn(n int) int {
	if n <= 0 {
		panic("rng: Intn called with n <= 0")
	}
	val, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic("rng: crypto/rand failure: " + err.Error())
	}
	return int(val.Int64())
}

// Float64 returns a cryptographically secure random float64 in [0.0, 1.0).
func (c *cryptoSource) Float64() float64 {
	return float64(c.Intn(float64Resolution)) / float64Resolution
}
