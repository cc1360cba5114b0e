package kmc

import (
	"math"
	"math/rand"

	"github.com/google/uuid"
)

// Stream is an independent pseudo-random source. Each Lattice owns exactly
// one Stream; molecules derive their own child streams from it at
// construction, so each molecule's energy sampling takes a single seed draw
// from the lattice's stream rather than all of its Gaussian draws, while
// keeping a single deterministic seed per lattice instance.
type Stream struct {
	id  uuid.UUID
	src *rand.Rand
}

// NewStream creates a Stream seeded deterministically from seed.
func NewStream(seed int64) *Stream {
	return &Stream{id: uuid.New(), src: rand.New(rand.NewSource(seed))}
}

// ID returns the stream's run-correlation identifier.
func (s *Stream) ID() uuid.UUID { return s.id }

// Uniform01 returns a uniform real in (0, 1], never exactly 0 so that
// -log(u) is always finite.
func (s *Stream) Uniform01() float64 {
	u := s.src.Float64()
	if u == 0 {
		return s.Uniform01()
	}
	return u
}

// Gaussian returns a sample from N(mean, sigma^2).
func (s *Stream) Gaussian(mean, sigma float64) float64 {
	return mean + sigma*s.src.NormFloat64()
}

// ExponentialWaitTime draws tau = -ln(u)/rate. rate must be strictly
// positive; the caller is responsible for excluding forbidden (rate <= 0)
// candidates before calling this. An instantaneous rate (+Inf) yields
// tau = 0.
func (s *Stream) ExponentialWaitTime(rate float64) float64 {
	return -math.Log(s.Uniform01()) / rate
}

// SpinDraw returns Singlet with probability 1/4, Triplet otherwise,
// matching the bound-pair formation rule.
func (s *Stream) SpinDraw() ExcitonSpin {
	if s.src.Float64() < 0.25 {
		return Singlet
	}
	return Triplet
}

// ChooseDistinctColumns draws k distinct (x, y) pairs from an X*Y grid by
// sampling without replacement, used to place injected charges at distinct
// electrode columns.
func (s *Stream) ChooseDistinctColumns(xDim, yDim, k int) []Point {
	total := xDim * yDim
	chosen := make([]Point, 0, k)
	seen := make(map[int]struct{}, k)
	for len(chosen) < k {
		idx := s.src.Intn(total)
		if _, dup := seen[idx]; dup {
			continue
		}
		seen[idx] = struct{}{}
		chosen = append(chosen, Point{X: idx % xDim, Y: idx / xDim})
	}
	return chosen
}

// Permutation returns a uniformly random permutation of [0, n).
func (s *Stream) Permutation(n int) []int {
	return s.src.Perm(n)
}

// child derives a new, independently seeded Stream, consuming one draw
// from s for the seed. Used to give each molecule its own energy-sampling
// source.
func (s *Stream) child() *Stream {
	return NewStream(s.src.Int63())
}
