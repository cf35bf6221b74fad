// Package random implements unit interval random distributions with musical
// rather than statistical intent: distributions with tails outside of [0, 1]
// are redrawn until they fall inside.
package random

import (
	"math"

	"github.com/vsariola/pogen"
)

type (
	// Kind selects a distribution.
	Kind int

	// Dist is a distribution with up to two parameters. A is lambda, mu or
	// alpha and B is sigma or beta, depending on the kind.
	Dist struct {
		Kind Kind
		A, B float64
	}
)

const (
	Uniform Kind = iota
	Linear
	InverseLinear
	Triangular
	InverseTriangular
	Exponential
	InverseExponential
	BilateralExponential
	Gauss
	Cauchy
	Beta
	Weibull
)

// MaxDraws bounds the rejection loops; after that many draws the last value
// is clamped to the unit interval.
const MaxDraws = 999

var names = [...]string{"uniform", "linear", "inverseLinear", "triangular",
	"inverseTriangular", "exponential", "inverseExponential", "bilateralExponential",
	"gauss", "cauchy", "beta", "weibull"}

func (k Kind) String() string {
	if int(k) < 0 || int(k) >= len(names) {
		return "unknown"
	}
	return names[k]
}

// Params returns the number of parameters the kind uses.
func (k Kind) Params() int {
	switch {
	case k >= Gauss:
		return 2
	case k >= Exponential:
		return 1
	}
	return 0
}

// Draw returns a value in [0, 1] drawn from the distribution.
func (d Dist) Draw(r *pogen.Source) float64 {
	switch d.Kind {
	case Linear:
		return math.Min(r.Float64(), r.Float64())
	case InverseLinear:
		return math.Max(r.Float64(), r.Float64())
	case Triangular:
		return reject(func() (float64, bool) {
			a, b := r.Float64(), r.Float64()/2
			return a, (a < 0.5 && a > b) || (a >= 0.5 && a-0.5 < b)
		})
	case InverseTriangular:
		return reject(func() (float64, bool) {
			a, b := r.Float64(), r.Float64()/2
			return a, (a < 0.5 && a < b) || (a >= 0.5 && a-0.5 > b)
		})
	case Exponential:
		return reject(func() (float64, bool) {
			v := expo(r, d.A)
			return v, v < 1
		})
	case InverseExponential:
		return reject(func() (float64, bool) {
			v := 1 - expo(r, d.A)
			return v, v > 0
		})
	case BilateralExponential:
		v := reject(func() (float64, bool) {
			v := expo(r, d.A)
			return v, v < 1
		})
		if r.Float64() > 0.5 {
			return 0.5 + v/2
		}
		return 0.5 - v/2
	case Gauss:
		return reject(func() (float64, bool) {
			v := d.A + r.NormFloat64()*d.B
			return v, v >= 0 && v <= 1
		})
	case Cauchy:
		return reject(func() (float64, bool) {
			x := r.Float64()
			for x == 0.5 {
				x = r.Float64()
			}
			v := d.A*math.Tan(x*math.Pi) + d.B
			return v, v >= 0 && v <= 1
		})
	case Beta:
		y, z := expo(r, d.A), expo(r, 1/d.B)
		v := 0.5
		if y+z != 0 {
			v = z / (y + z)
		}
		if r.Float64() > 0.5 {
			return 1 - v
		}
		return v
	case Weibull:
		return reject(func() (float64, bool) {
			u := r.Float64()
			for u == 0 {
				u = r.Float64()
			}
			v := d.A * math.Pow(-math.Log(u), 1/d.B)
			return v, v >= 0 && v <= 1
		})
	default:
		return r.Float64()
	}
}

func expo(r *pogen.Source, lambda float64) float64 {
	u := r.Float64()
	for u <= 1e-7 {
		u = r.Float64()
	}
	return -math.Log(u) / lambda
}

func reject(draw func() (float64, bool)) float64 {
	var v float64
	for i := 0; i < MaxDraws; i++ {
		var ok bool
		if v, ok = draw(); ok {
			return v
		}
	}
	return pogen.LimitUnit(v)
}
