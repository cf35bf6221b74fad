// Package wave implements unit interval oscillators. Every oscillator is a
// function of time t in seconds, frequency f in Hz and a phase offset in
// cycles, returning a value in [0, 1].
package wave

import "math"

type (
	// Shape selects an oscillator.
	Shape int

	// Oscillator is a configured waveform.
	Oscillator struct {
		Shape    Shape
		Exponent float64 // used by PowerUp and PowerDown
	}
)

const (
	Sine Shape = iota
	Cosine
	SawUp
	SawDown
	Pulse
	Triangle
	PowerUp
	PowerDown
)

func (s Shape) String() string {
	switch s {
	case Sine:
		return "sine"
	case Cosine:
		return "cosine"
	case SawUp:
		return "sawUp"
	case SawDown:
		return "sawDown"
	case Pulse:
		return "pulse"
	case Triangle:
		return "triangle"
	case PowerUp:
		return "powerUp"
	case PowerDown:
		return "powerDown"
	}
	return "unknown"
}

// At evaluates the oscillator. A frequency of zero is treated as one.
func (o Oscillator) At(t, f, phase float64) float64 {
	if f == 0 {
		f = 1
	}
	switch o.Shape {
	case Sine:
		return (1 + math.Sin(2*math.Pi*(phase+t*f))) / 2
	case Cosine:
		return (1 + math.Cos(2*math.Pi*(phase+t*f))) / 2
	}
	period := 1 / f
	t = math.Mod(t+period*phase, period)
	if t < 0 {
		t += period
	}
	switch o.Shape {
	case SawUp:
		return t / period
	case SawDown:
		return 1 - t/period
	case Pulse:
		if t < period/2 {
			return 1
		}
		return 0
	case Triangle:
		half := period / 2
		if t < half {
			return t / half
		}
		return 1 - (t-half)/half
	case PowerUp:
		return math.Pow(t/period, math.Pow(2, o.Exponent))
	case PowerDown:
		return math.Pow(1-t/period, math.Pow(2, o.Exponent))
	}
	return 0
}
