// Package rng provides the random draws every game engine consumes.
package rng

import (
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"math/rand/v2"
)

// Provider provides random number generation that can be mocked for testing
type Provider interface {
	// UniformInt returns a random int in [low, high], both inclusive
	UniformInt(low, high int) int

	// Float64 returns a random float in [0, 1)
	Float64() float64
}

var (
	ErrNoItems         = errors.New("weighted choice needs at least one item")
	ErrWeightsMismatch = errors.New("items and weights differ in length")
	ErrBadWeights      = errors.New("weights must be non-negative with a positive sum")
)

// Source is a PCG-backed Provider. It is seeded once at construction.
// A Source is not safe for concurrent use.
type Source struct {
	r *rand.Rand
}

// New creates a Source with a fixed seed, useful for reproducible runs
func New(seed uint64) *Source {
	return &Source{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NewSeeded creates a Source seeded from crypto/rand
func NewSeeded() (*Source, error) {
	var buf [16]byte
	if _, err := crand.Read(buf[:]); err != nil {
		return nil, fmt.Errorf("failed to read seed: %w", err)
	}
	return &Source{
		r: rand.New(rand.NewPCG(binary.LittleEndian.Uint64(buf[:8]), binary.LittleEndian.Uint64(buf[8:]))),
	}, nil
}

// UniformInt returns a random int in [low, high]; the bounds are swapped if reversed
func (s *Source) UniformInt(low, high int) int {
	if high < low {
		low, high = high, low
	}
	return low + s.r.IntN(high-low+1)
}

// Float64 returns a random float in [0, 1)
func (s *Source) Float64() float64 {
	return s.r.Float64()
}

// WeightedChoice draws one item with probability proportional to its weight
func WeightedChoice[T any](p Provider, items []T, weights []float64) (T, error) {
	var zero T
	if len(items) == 0 {
		return zero, ErrNoItems
	}
	if len(items) != len(weights) {
		return zero, ErrWeightsMismatch
	}

	total := 0.0
	for _, w := range weights {
		if w < 0 {
			return zero, ErrBadWeights
		}
		total += w
	}
	if total <= 0 {
		return zero, ErrBadWeights
	}

	target := p.Float64() * total
	cumulative := 0.0
	for i, w := range weights {
		cumulative += w
		if target < cumulative {
			return items[i], nil
		}
	}

	// Float rounding can leave target just past the last boundary
	for i := len(items) - 1; i >= 0; i-- {
		if weights[i] > 0 {
			return items[i], nil
		}
	}
	return zero, ErrBadWeights
}

// Pick draws one item uniformly
func Pick[T any](p Provider, items []T) (T, error) {
	var zero T
	if len(items) == 0 {
		return zero, ErrNoItems
	}
	return items[p.UniformInt(0, len(items)-1)], nil
}
