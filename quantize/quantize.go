// Package quantize attracts values towards an infinitely repeated grid of
// steps, and funnels values to one of two boundaries around a threshold.
package quantize

import (
	"errors"
	"math"
)

type (
	// Quantizer holds a grid: a finite list of step sizes that is repeated
	// in both directions from a reference value.
	Quantizer struct {
		grid      []float64
		LoopLimit int
	}

	// Match tells what FunnelBinary does with a value equal to the threshold.
	Match int
)

const (
	Lower Match = iota
	Upper
	Exact
)

const DefaultLoopLimit = 999

var (
	ErrLoopLimit = errors.New("failed to find boundary neighbors within the loop limit")
	ErrEmptyGrid = errors.New("grid must have at least one value")
)

// New returns a Quantizer with an empty grid. A loopLimit of zero or less
// means DefaultLoopLimit.
func New(loopLimit int) *Quantizer {
	if loopLimit <= 0 {
		loopLimit = DefaultLoopLimit
	}
	return &Quantizer{LoopLimit: loopLimit}
}

// UpdateGrid sets the grid steps. It can be called before every Attract for a
// dynamic grid.
func (q *Quantizer) UpdateGrid(grid []float64) error {
	if len(grid) == 0 {
		return ErrEmptyGrid
	}
	q.grid = append(q.grid[:0], grid...)
	return nil
}

func (q *Quantizer) Grid() []float64 {
	return append([]float64(nil), q.grid...)
}

// neighbors walks the grid from ref towards value until two consecutive grid
// points enclose it. Walking up starts from the second step of the grid,
// walking down from the last one.
func (q *Quantizer) neighbors(value, ref float64) (lo, hi float64, err error) {
	n := len(q.grid)
	if n == 0 {
		return 0, 0, ErrEmptyGrid
	}
	down := ref >= value
	last := ref
	for k := 1; k < q.LoopLimit; k++ {
		var next float64
		if down {
			next = last - q.grid[(n-1-(k-1)%n+n)%n]
		} else {
			next = last + q.grid[k%n]
		}
		lo, hi = math.Min(last, next), math.Max(last, next)
		if value >= lo && value <= hi {
			return lo, hi, nil
		}
		last = next
	}
	return 0, 0, ErrLoopLimit
}

// Attract moves value towards the nearest grid point shifted to ref. pull 1
// snaps to the grid point, pull 0 leaves the value as it is, and values in
// between move part of the way. Equal distance rounds up.
func (q *Quantizer) Attract(value, pull, ref float64) (float64, error) {
	lo, hi, err := q.neighbors(value, ref)
	if err != nil {
		return value, err
	}
	if lo == hi {
		return lo, nil
	}
	difLo, difHi := math.Abs(lo-value), math.Abs(hi-value)
	if difLo >= difHi {
		if pull == 1 {
			return hi, nil
		}
		return hi - difHi*(1-pull), nil
	}
	if pull == 1 {
		return lo, nil
	}
	return lo + difLo*(1-pull), nil
}

// FunnelBinary returns the larger of a and b if f is above the threshold h and
// the smaller if it is below. At the threshold, m decides.
func FunnelBinary(h, a, b, f float64, m Match) float64 {
	lo, hi := math.Min(a, b), math.Max(a, b)
	switch {
	case f > h:
		return hi
	case f < h:
		return lo
	}
	switch m {
	case Upper:
		return hi
	case Lower:
		return lo
	}
	return h
}
