// Package rng provides the deterministic random source used by every
// handler. Position tracking lets a session save and restore the exact
// stream.
package rng

import "math/rand"

// RNG wraps math/rand.Rand with deterministic position tracking.
// Position increments with every call, enabling save/restore.
type RNG struct {
	seed int64
	src  *rand.Rand
	pos  int64
}

// New creates a new deterministic RNG from a seed.
func New(seed int64) *RNG {
	return &RNG{
		seed: seed,
		src:  rand.New(rand.NewSource(seed)),
	}
}

// Rnd returns a random integer in [0, n). n <= 0 yields 0 without
// consuming the stream.
func (r *RNG) Rnd(n int) int {
	if n <= 0 {
		return 0
	}
	r.pos++
	return r.src.Intn(n)
}

// Roll returns a random integer in [1, sides].
func (r *RNG) Roll(sides int) int {
	return r.Rnd(sides) + 1
}

// WeightedSelect returns an index chosen by weighted random selection.
// weights must be non-empty with all positive values.
func (r *RNG) WeightedSelect(weights []int) int {
	total := 0
	for _, w := range weights {
		total += w
	}
	roll := r.Rnd(total)
	cumulative := 0
	for i, w := range weights {
		cumulative += w
		if roll < cumulative {
			return i
		}
	}
	return len(weights) - 1
}

// Seed returns the seed the stream was created from.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Position returns the number of draws made since creation.
func (r *RNG) Position() int64 {
	return r.pos
}

// Restore creates an RNG and advances it to the given position.
// This reproduces the exact RNG state for save/load.
func Restore(seed int64, position int64) *RNG {
	r := New(seed)
	for i := int64(0); i < position; i++ {
		r.src.Int63()
	}
	r.pos = position
	return r
}

// Source is the dice handlers roll. *RNG satisfies it.
type Source interface {
	Rnd(n int) int
}

// Fixed replays preset draws, clamped into [0, n). Once exhausted every
// draw returns 0. It makes handler branches reachable in tests and replays.
type Fixed struct {
	Draws []int
	Calls []int
}

// NewFixed returns a Fixed source yielding draws in order.
func NewFixed(draws ...int) *Fixed {
	return &Fixed{Draws: draws}
}

// Rnd implements Source.
func (f *Fixed) Rnd(n int) int {
	f.Calls = append(f.Calls, n)
	if n <= 0 {
		return 0
	}
	if len(f.Draws) == 0 {
		return 0
	}
	v := f.Draws[0]
	f.Draws = f.Draws[1:]
	return max(0, min(v, n-1))
}
