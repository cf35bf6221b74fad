// Package bpf implements break-point functions: piecewise curves through a list
// of (x, y) points with linear, power, half-cosine or stepwise interpolation,
// evaluated either aperiodically (clamped to the end values) or periodically.
package bpf

import (
	"errors"
	"math"
	"sort"
)

type (
	// Kind is the interpolation used between two break points.
	Kind int

	Point struct {
		X, Y float64
	}

	BPF struct {
		points   []Point
		kind     Kind
		exponent float64
		periodic bool
	}
)

const (
	Linear Kind = iota
	Power
	HalfCosine
	Flat
)

var ErrNoPoints = errors.New("add points to create a break point")

func (k Kind) String() string {
	switch k {
	case Linear:
		return "linear"
	case Power:
		return "power"
	case HalfCosine:
		return "halfCosine"
	case Flat:
		return "flat"
	}
	return "unknown"
}

// New returns a break-point function through points. The points are copied and
// sorted by x; when several points share an x, the first one given is kept. A
// single point is extended to a constant segment of length one. The exponent
// is only used by Power.
func New(points []Point, kind Kind, exponent float64, periodic bool) (*BPF, error) {
	if len(points) == 0 {
		return nil, ErrNoPoints
	}
	seen := make(map[float64]bool, len(points))
	ps := make([]Point, 0, len(points))
	for _, p := range points {
		if seen[p.X] {
			continue
		}
		seen[p.X] = true
		ps = append(ps, p)
	}
	sort.SliceStable(ps, func(i, j int) bool { return ps[i].X < ps[j].X })
	if len(ps) == 1 {
		ps = append(ps, Point{ps[0].X + 1, ps[0].Y})
	}
	return &BPF{points: ps, kind: kind, exponent: exponent, periodic: periodic}, nil
}

// Points returns a copy of the sorted points.
func (b *BPF) Points() []Point {
	return append([]Point(nil), b.points...)
}

func (b *BPF) Kind() Kind        { return b.kind }
func (b *BPF) Exponent() float64 { return b.exponent }
func (b *BPF) Periodic() bool    { return b.periodic }

// Span returns the x values of the first and last point.
func (b *BPF) Span() (start, end float64) {
	return b.points[0].X, b.points[len(b.points)-1].X
}

// At evaluates the function at t.
func (b *BPF) At(t float64) float64 {
	start, end := b.Span()
	if b.periodic {
		period := end - start
		t = start + math.Mod(t-start, period)
		if t < start {
			t += period
		}
		if t >= end { // rounding
			t = start
		}
	} else {
		if t < start {
			return b.points[0].Y
		}
		if t >= end {
			return b.points[len(b.points)-1].Y
		}
	}
	// first point with x > t; t is in [start, end) so 0 < i < len
	i := sort.Search(len(b.points), func(i int) bool { return b.points[i].X > t })
	return b.interpolate(t, b.points[i-1], b.points[i])
}

func (b *BPF) interpolate(t float64, p0, p1 Point) float64 {
	r := (t - p0.X) / (p1.X - p0.X)
	v0, v1 := p0.Y, p1.Y
	switch b.kind {
	case Flat:
		return v0
	case HalfCosine:
		return v0 + (v1-v0)*(1+math.Cos(r*math.Pi+math.Pi))/2
	case Power:
		e := b.exponent
		switch {
		case v1 == v0:
			return v0
		case e == 0:
			return v0 + r*(v1-v0)
		case e > 0:
			if v1 >= v0 {
				return v0 + math.Pow(r, 1+e)*(v1-v0)
			}
			return v1 + math.Pow(1-r, 1+e)*(v0-v1)
		default:
			if v1 >= v0 {
				return v1 + math.Pow(1-r, 1-e)*(v0-v1)
			}
			return v0 + math.Pow(r, 1-e)*(v1-v0)
		}
	default:
		return v0 + r*(v1-v0)
	}
}
