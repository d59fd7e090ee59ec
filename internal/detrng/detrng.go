// Package detrng provides a deterministic per-subsystem random source,
// seeded from the engine's tick counter rather than the process-wide
// math/rand source, so that two ticks with identical inputs draw
// identical tie-break sequences (spec §9's "Globals" design note).
//
// Grounded directly on dshills-dungo/pkg/rng: a SHA-256 digest over
// (master seed, subsystem name, config hash) seeds a math/rand.Rand per
// subsystem, so unrelated subsystems never perturb each other's draw
// sequence even when reseeded on the same tick.
package detrng

import (
	"crypto/sha256"
	"encoding/binary"
	"math/rand"
)

// Source is a deterministic, subsystem-scoped random source.
type Source struct {
	rnd *rand.Rand
}

// New derives a Source for (tick, subsystem, player) via SHA-256,
// matching dshills-dungo/pkg/rng's NewRNG derivation shape.
func New(tick uint64, subsystem string, player int) *Source {
	h := sha256.New()
	var tickBuf [8]byte
	binary.LittleEndian.PutUint64(tickBuf[:], tick)
	h.Write(tickBuf[:])
	h.Write([]byte(subsystem))
	var playerBuf [8]byte
	binary.LittleEndian.PutUint64(playerBuf[:], uint64(player))
	h.Write(playerBuf[:])
	sum := h.Sum(nil)
	seed := int64(binary.LittleEndian.Uint64(sum[:8]))
	return &Source{rnd: rand.New(rand.NewSource(seed))}
}

// IntRange returns a pseudo-random int in [lo, hi).
func (s *Source) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.rnd.Intn(hi-lo)
}

// Float64Range returns a pseudo-random float64 in [lo, hi).
func (s *Source) Float64Range(lo, hi float64) float64 {
	return lo + s.rnd.Float64()*(hi-lo)
}

// Bool returns true with probability p.
func (s *Source) Bool(p float64) bool {
	return s.rnd.Float64() < p
}

// Shuffle permutes a slice of length n in place using swap.
func (s *Source) Shuffle(n int, swap func(i, j int)) {
	s.rnd.Shuffle(n, swap)
}

// Intn returns a pseudo-random int in [0, n).
func (s *Source) Intn(n int) int {
	return s.rnd.Intn(n)
}
