package pogen_test

import (
	"math"
	"testing"

	"github.com/vsariola/pogen"
)

func TestDenorm(t *testing.T) {
	cases := []struct{ u, a, b, expected float64 }{
		{0.5, 10, 20, 15},
		{0, 10, 20, 10},
		{0.5, 20, 10, 15},
		{0.3, 4, 4, 4},
		{1.5, 0, 2, 2},
		{-1, 0, 2, 0},
	}
	for _, c := range cases {
		if got := pogen.Denorm(c.u, c.a, c.b); got != c.expected {
			t.Fatalf("Denorm(%v, %v, %v) = %v, expected %v", c.u, c.a, c.b, got, c.expected)
		}
	}
}

func TestUnitNormRange(t *testing.T) {
	got := pogen.UnitNormRange([]float64{3, 6, 7})
	expected := []float64{0, 0.75, 1}
	for i := range expected {
		if got[i] != expected[i] {
			t.Fatalf("UnitNormRange = %v, expected %v", got, expected)
		}
	}
	if got := pogen.UnitNormRange([]float64{5}); got[0] != 0 {
		t.Fatalf("single value should normalize to 0, got %v", got)
	}
}

func TestBoundaries(t *testing.T) {
	cases := []struct {
		name         string
		m            pogen.Boundary
		f, fit, rjct float64
	}{
		{"limit above", pogen.Limit, 12, 10, 12},
		{"wrap above", pogen.Wrap, 12, 7, 12},
		{"reflect above", pogen.Reflect, 12, 8, 12},
		{"limit below", pogen.Limit, 3, 5, 3},
		{"wrap below", pogen.Wrap, 3, 8, 3},
		{"reflect below", pogen.Reflect, 3, 7, 3},
		{"limit inside upper", pogen.Limit, 9, 9, 10},
		{"reflect inside upper", pogen.Reflect, 9, 9, 11},
		{"wrap inside lower", pogen.Wrap, 6, 6, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := pogen.BoundaryFit(5, 10, c.f, c.m); math.Abs(got-c.fit) > 1e-12 {
				t.Fatalf("BoundaryFit got %v, expected %v", got, c.fit)
			}
			if got := pogen.BoundaryReject(10, 5, c.f, c.m); math.Abs(got-c.rjct) > 1e-12 {
				t.Fatalf("BoundaryReject got %v, expected %v", got, c.rjct)
			}
		})
	}
}

func TestUnitBoundaryPos(t *testing.T) {
	b := pogen.UnitBoundaryEqual(4)
	for _, c := range []struct {
		u        float64
		expected int
	}{{0, 0}, {0.3, 1}, {0.5, 2}, {0.99, 3}, {1, 3}} {
		if got := pogen.UnitBoundaryPos(c.u, b); got != c.expected {
			t.Fatalf("UnitBoundaryPos(%v) = %v, expected %v", c.u, got, c.expected)
		}
	}
}

func TestRoundWeighted(t *testing.T) {
	s := pogen.NewSource(7)
	ups := 0
	for i := 0; i < 1000; i++ {
		switch s.RoundWeighted(2.25) {
		case 3:
			ups++
		case 2:
		default:
			t.Fatalf("RoundWeighted should only give neighbouring integers")
		}
	}
	if ups < 150 || ups > 350 {
		t.Fatalf("rounded up %v times out of 1000, expected about 250", ups)
	}
}
