package wave_test

import (
	"math"
	"testing"

	"github.com/vsariola/pogen/wave"
)

func TestOscillators(t *testing.T) {
	cases := []struct {
		osc      wave.Oscillator
		t, f, ph float64
		expected float64
	}{
		{wave.Oscillator{Shape: wave.Sine}, 0, 1, 0, 0.5},
		{wave.Oscillator{Shape: wave.Sine}, 0.25, 1, 0, 1},
		{wave.Oscillator{Shape: wave.Cosine}, 0, 1, 0, 1},
		{wave.Oscillator{Shape: wave.Cosine}, 15, 1.0 / 30, 0, 0},
		{wave.Oscillator{Shape: wave.SawUp}, 2.5, 0.1, 0, 0.25},
		{wave.Oscillator{Shape: wave.SawUp}, 0, 1, 0.5, 0.5},
		{wave.Oscillator{Shape: wave.SawDown}, 2.5, 0.1, 0, 0.75},
		{wave.Oscillator{Shape: wave.Pulse}, 4, 0.1, 0, 1},
		{wave.Oscillator{Shape: wave.Pulse}, 6, 0.1, 0, 0},
		{wave.Oscillator{Shape: wave.Triangle}, 2.5, 0.1, 0, 0.5},
		{wave.Oscillator{Shape: wave.Triangle}, 7.5, 0.1, 0, 0.5},
		{wave.Oscillator{Shape: wave.PowerUp, Exponent: 1}, 5, 0.1, 0, 0.25},
		{wave.Oscillator{Shape: wave.PowerDown, Exponent: 1}, 5, 0.1, 0, 0.25},
		{wave.Oscillator{Shape: wave.SawUp}, -2.5, 0.1, 0, 0.75},
		{wave.Oscillator{Shape: wave.SawUp}, 0.5, 0, 0, 0.5},
	}
	for _, c := range cases {
		if got := c.osc.At(c.t, c.f, c.ph); math.Abs(got-c.expected) > 1e-9 {
			t.Fatalf("%v.At(%v, %v, %v) = %v, expected %v", c.osc.Shape, c.t, c.f, c.ph, got, c.expected)
		}
	}
}

func TestRange(t *testing.T) {
	for s := wave.Sine; s <= wave.PowerDown; s++ {
		o := wave.Oscillator{Shape: s, Exponent: -1.5}
		for i := 0; i < 200; i++ {
			v := o.At(float64(i)*0.37, 0.13, 0.2)
			if v < 0 || v > 1 {
				t.Fatalf("%v gave %v, outside the unit interval", s, v)
			}
		}
	}
}
