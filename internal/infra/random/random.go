// Package random provides the domain.RandomSource used by personas and the
// orchestrator.
package random

import (
	"math/rand/v2"
	"sync"

	"debate-bot/internal/domain"
)

// New returns a concurrency-safe source. A zero seed uses the runtime's
// randomly seeded global generator; any other seed yields a reproducible
// sequence.
func New(seed uint64) domain.RandomSource {
	if seed == 0 {
		return global{}
	}
	return &seeded{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

type global struct{}

func (global) IntN(n int) int { return rand.IntN(n) }

type seeded struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (s *seeded) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.IntN(n)
}

// Fixed always returns the same index, clamped to n-1. Tests use it to pin
// random choices.
type Fixed int

// IntN implements domain.RandomSource.
func (f Fixed) IntN(n int) int {
	if int(f) >= n {
		return n - 1
	}
	if f < 0 {
		return 0
	}
	return int(f)
}
