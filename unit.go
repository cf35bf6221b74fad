package pogen

import (
	"math"

	"github.com/viterin/vek"
)

// Boundary is the method used to bring a value inside (or outside) of a pair of
// boundaries.
type Boundary int

const (
	Limit Boundary = iota
	Wrap
	Reflect
)

var Boundaries = Options{
	{Name: "limit", Aliases: []string{"l"}},
	{Name: "wrap", Aliases: []string{"w"}},
	{Name: "reflect", Aliases: []string{"r"}},
}

func (b Boundary) String() string { return Boundaries.Name(int(b)) }

// Denorm scales a unit interval value between a and b, in whichever order they
// are given. The value is clamped to the unit interval first; a == b returns a.
func Denorm(u, a, b float64) float64 {
	if a == b {
		return a
	}
	lo, hi := math.Min(a, b), math.Max(a, b)
	return LimitUnit(u)*(hi-lo) + lo
}

// Interpolate mixes a and b: 0 gives a, 1 gives b.
func Interpolate(u, a, b float64) float64 {
	u = LimitUnit(u)
	if u == 0 {
		return a
	}
	if u == 1 {
		return b
	}
	return a*(1-u) + b*u
}

// LimitUnit clamps u to the unit interval.
func LimitUnit(u float64) float64 {
	if u > 1 {
		return 1
	}
	if u < 0 {
		return 0
	}
	return u
}

// UnitNorm normalizes value within the range of the given values; a zero span
// gives 0.
func UnitNorm(value float64, rng []float64) float64 {
	if len(rng) == 0 {
		return 0
	}
	lo, hi := vek.Min(rng), vek.Max(rng)
	if hi == lo {
		return 0
	}
	return (value - lo) / (hi - lo)
}

// UnitNormRange normalizes every value between the minimum and maximum of the
// series. A series of less than two values, or of zero span, maps to zeros.
func UnitNormRange(series []float64) []float64 {
	ret := make([]float64, len(series))
	if len(series) < 2 {
		return ret
	}
	lo, hi := vek.Min(series), vek.Max(series)
	if hi == lo {
		return ret
	}
	for i, v := range series {
		ret[i] = (v - lo) / (hi - lo)
	}
	return ret
}

// UnitNormEqual returns parts equally spaced values from 0 to 1 inclusive.
func UnitNormEqual(parts int) []float64 {
	switch {
	case parts <= 1:
		return []float64{0}
	case parts == 2:
		return []float64{0, 1}
	}
	ret := make([]float64, parts)
	step := 1 / float64(parts-1)
	for i := 0; i < parts-1; i++ {
		ret[i] = float64(i) * step
	}
	ret[parts-1] = 1
	return ret
}

// UnitNormProportion scales a series of non-negative values so that they sum
// to one. ok is false if a value is negative or the sum is zero.
func UnitNormProportion(series []float64) (ret []float64, ok bool) {
	if len(series) == 0 {
		return nil, false
	}
	for _, v := range series {
		if v < 0 {
			return nil, false
		}
	}
	sum := vek.Sum(series)
	if sum == 0 {
		return nil, false
	}
	return vek.DivNumber(series, sum), true
}

// Bound is a (low, mid, high) section of the unit interval.
type Bound struct{ Lo, Mid, Hi float64 }

// UnitBoundaryEqual divides the unit interval into parts equal sections.
func UnitBoundaryEqual(parts int) []Bound {
	if parts <= 0 {
		return nil
	}
	ret := make([]Bound, parts)
	step := 1 / float64(parts)
	lo := 0.0
	for i := range ret {
		hi := step * float64(i+1)
		if i == parts-1 {
			hi = 1
		}
		ret[i] = Bound{lo, lo + step*0.5, hi}
		lo = hi
	}
	return ret
}

// UnitBoundaryProportion divides the unit interval in proportion to the series
// of positive weights.
func UnitBoundaryProportion(series []float64) ([]Bound, bool) {
	for _, v := range series {
		if v == 0 {
			return nil, false
		}
	}
	unit, ok := UnitNormProportion(series)
	if !ok {
		return nil, false
	}
	ret := make([]Bound, len(unit))
	sum := 0.0
	for i, u := range unit {
		hi := sum + u
		if i == len(unit)-1 {
			hi = 1
		}
		ret[i] = Bound{sum, (sum + hi) * 0.5, hi}
		sum = hi
	}
	return ret, true
}

// UnitBoundaryPos returns the index of the section containing u. One belongs to
// the last section.
func UnitBoundaryPos(u float64, bounds []Bound) int {
	u = LimitUnit(u)
	if u == 1 {
		return len(bounds) - 1
	}
	for i, b := range bounds {
		if u >= b.Lo && u < b.Hi {
			return i
		}
	}
	return len(bounds) - 1
}

// BoundaryFit brings f within the boundaries a and b using method m.
func BoundaryFit(a, b, f float64, m Boundary) float64 {
	lo, hi := math.Min(a, b), math.Max(a, b)
	if f >= lo && f <= hi {
		return f
	}
	if lo == hi {
		return lo
	}
	period := hi - lo
	switch m {
	case Wrap:
		if f > hi {
			return f - math.Ceil((f-hi)/period)*period
		}
		return f + math.Ceil((lo-f)/period)*period
	case Reflect:
		x := math.Mod(f-lo, 2*period)
		if x < 0 {
			x += 2 * period
		}
		if x > period {
			x = 2*period - x
		}
		return lo + x
	default:
		if f > hi {
			return hi
		}
		return lo
	}
}

// BoundaryReject moves f outside of the open interval between a and b using
// method m. Values in the lower half go down, values in the upper half go up.
func BoundaryReject(a, b, f float64, m Boundary) float64 {
	lo, hi := math.Min(a, b), math.Max(a, b)
	if f <= lo || f >= hi {
		return f
	}
	period := hi - lo
	center := lo + period*0.5
	upper := f >= center
	switch m {
	case Wrap:
		if upper {
			return f + math.Ceil((hi-f)/period)*period
		}
		return f - math.Ceil((f-lo)/period)*period
	case Reflect:
		if upper {
			return hi + (hi - f)
		}
		return lo - (f - lo)
	default:
		if upper {
			return hi
		}
		return lo
	}
}
