// Package entropy isolates the engine's randomness behind an injectable
// source, so a seeded source reproduces a simulation tick exactly.
package entropy

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"sync"
)

// Source yields uniform floats in [0, 1). Implementations must be safe for
// use from the single simulation goroutine; they need not be thread-safe.
type Source interface {
	Float() float64
}

// Seeded is a deterministic Source backed by math/rand.
type Seeded struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeeded creates a deterministic source from seed.
func NewSeeded(seed int64) *Seeded {
	return &Seeded{rng: rand.New(rand.NewSource(seed))}
}

// Float returns the next deterministic float in [0, 1).
func (s *Seeded) Float() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

// Crypto is a non-deterministic Source backed by crypto/rand, for
// deployments where reproducibility doesn't matter.
type Crypto struct{}

// Float returns a uniform float in [0, 1) from the OS entropy pool.
func (Crypto) Float() float64 {
	return cryptoRandFloat()
}

func cryptoRandFloat() float64 {
	var buf [8]byte
	if _, err := crand.Read(buf[:]); err != nil {
		// Should never happen; 0.5 is a safe neutral default.
		return 0.5
	}
	// Use only 53 bits for a uniform float64 in [0, 1).
	n := binary.LittleEndian.Uint64(buf[:]) >> 11
	return float64(n) / float64(1<<53)
}

// Fixed always returns the same value. Test helper for pinning volatility.
type Fixed float64

// Float returns the fixed value.
func (f Fixed) Float() float64 { return float64(f) }
