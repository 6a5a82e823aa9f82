// Package mock provides a scripted rng.Provider for tests.
package mock

import (
	"fmt"
	"sync"
)

// Provider replays queued values. Draws past the end of a queue panic so a
// test notices when an engine consumes more randomness than expected.
type Provider struct {
	mu     sync.Mutex
	ints   []int
	floats []float64
}

// NewProvider creates an empty Provider
func NewProvider() *Provider {
	return &Provider{}
}

// QueueInts appends values returned by UniformInt, in order
func (p *Provider) QueueInts(values ...int) *Provider {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ints = append(p.ints, values...)
	return p
}

// QueueFloats appends values returned by Float64, in order
func (p *Provider) QueueFloats(values ...float64) *Provider {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.floats = append(p.floats, values...)
	return p
}

// UniformInt returns the next queued int, clamped into [low, high]
func (p *Provider) UniformInt(low, high int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.ints) == 0 {
		panic(fmt.Sprintf("mock rng: no int queued for UniformInt(%d, %d)", low, high))
	}
	v := p.ints[0]
	p.ints = p.ints[1:]
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}

// Float64 returns the next queued float
func (p *Provider) Float64() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.floats) == 0 {
		panic("mock rng: no float queued for Float64")
	}
	v := p.floats[0]
	p.floats = p.floats[1:]
	return v
}

// Remaining reports how many queued values were not consumed
func (p *Provider) Remaining() (ints, floats int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.ints), len(p.floats)
}
