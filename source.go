package pogen

import (
	"math"
	"math/rand/v2"
)

// Source is a reseedable random number source. Every parameter object owns
// one, so that Reset can replay the exact same random stream and independent
// objects never share state.
type Source struct {
	seed uint64
	rng  *rand.Rand
}

func NewSource(seed uint64) *Source {
	s := &Source{seed: seed}
	s.Reset()
	return s
}

// Reset rewinds the source to the start of its stream.
func (s *Source) Reset() {
	s.rng = rand.New(rand.NewPCG(s.seed, s.seed^0x9e3779b97f4a7c15))
}

func (s *Source) Seed() uint64 { return s.seed }

// Float64 returns a number in [0, 1).
func (s *Source) Float64() float64 { return s.rng.Float64() }

// IntN returns a number in [0, n). n must be positive.
func (s *Source) IntN(n int) int { return s.rng.IntN(n) }

func (s *Source) NormFloat64() float64 { return s.rng.NormFloat64() }

func (s *Source) ExpFloat64() float64 { return s.rng.ExpFloat64() }

// Coin returns true with probability 0.5.
func (s *Source) Coin() bool { return s.rng.IntN(2) == 1 }

// Uniform returns a number in [a, b).
func (s *Source) Uniform(a, b float64) float64 { return a + (b-a)*s.rng.Float64() }

// RoundWeighted rounds f to one of its two neighbouring integers, choosing the
// upper one with probability equal to the fractional part. Integral values are
// returned as they are without drawing.
func (s *Source) RoundWeighted(f float64) int {
	lo := math.Floor(f)
	if lo == f {
		return int(f)
	}
	if s.rng.Float64() < f-lo {
		return int(lo) + 1
	}
	return int(lo)
}

// Split derives the seed of a child source from a parent seed and an index,
// using the splitmix64 finalizer.
func Split(seed uint64, i uint64) uint64 {
	z := seed + (i+1)*0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
