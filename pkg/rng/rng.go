// Package rng derives independent, deterministic pseudo-random streams from
// a single master seed, so that concurrent Glide workers never need to
// share or lock a generator. The derivation (SHA-256 of the seed, a label
// and an index) is adapted from a dungeon generator's per-stage RNG split.
package rng

import (
	"crypto/sha256"
	"encoding/binary"
	"math/rand"
)

// RNG is an independent pseudo-random stream derived from a master seed, a
// label naming what it's used for, and an index distinguishing it from
// sibling streams sharing the same label.
type RNG struct {
	seed   uint64
	source *rand.Rand
}

// New derives a stream deterministically: the same (masterSeed, label,
// index) triple always yields the same sequence of draws, regardless of
// which goroutine calls New or when.
func New(masterSeed uint64, label string, index int) *RNG {
	h := sha256.New()
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], masterSeed)
	h.Write(buf[:])
	h.Write([]byte(label))
	binary.BigEndian.PutUint64(buf[:], uint64(index))
	h.Write(buf[:])

	sum := h.Sum(nil)
	derived := binary.BigEndian.Uint64(sum[:8])
	return &RNG{seed: derived, source: rand.New(rand.NewSource(int64(derived)))}
}

// Seed returns the derived seed backing this stream.
func (r *RNG) Seed() uint64 { return r.seed }

// Float64Range returns a uniform draw in [min, max).
func (r *RNG) Float64Range(min, max float64) float64 {
	return min + r.source.Float64()*(max-min)
}
