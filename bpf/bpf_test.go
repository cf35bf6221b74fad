package bpf_test

import (
	"math"
	"testing"

	"github.com/vsariola/pogen/bpf"
)

func TestLinear(t *testing.T) {
	b, err := bpf.New([]bpf.Point{{10, 1}, {0, 0}}, bpf.Linear, 0, false)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	cases := []struct{ t, expected float64 }{
		{-5, 0}, {0, 0}, {5, 0.5}, {10, 1}, {25, 1},
	}
	for _, c := range cases {
		if got := b.At(c.t); got != c.expected {
			t.Fatalf("At(%v) = %v, expected %v", c.t, got, c.expected)
		}
	}
}

func TestPeriodic(t *testing.T) {
	b, err := bpf.New([]bpf.Point{{0, 0}, {4, 1}}, bpf.Linear, 0, true)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	for _, x := range []float64{0, 1, 2.5, 3.9} {
		for _, k := range []float64{-2, -1, 1, 3} {
			if got, expected := b.At(x+4*k), b.At(x); math.Abs(got-expected) > 1e-9 {
				t.Fatalf("At(%v) = %v, expected %v (periodicity)", x+4*k, got, expected)
			}
		}
	}
	if got := b.At(4); got != 0 {
		t.Fatalf("end of period should wrap to start, got %v", got)
	}
}

func TestDuplicateAndSinglePoint(t *testing.T) {
	b, err := bpf.New([]bpf.Point{{0, 3}, {0, 7}, {2, 5}}, bpf.Flat, 0, false)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if got := len(b.Points()); got != 2 {
		t.Fatalf("duplicate x should be dropped, got %v points", got)
	}
	if got := b.At(1); got != 3 {
		t.Fatalf("first duplicate should win, got %v", got)
	}
	s, err := bpf.New([]bpf.Point{{2, 4}}, bpf.Linear, 0, true)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if start, end := s.Span(); start != 2 || end != 3 {
		t.Fatalf("single point should extend one unit, got span %v-%v", start, end)
	}
	if got := s.At(100.3); got != 4 {
		t.Fatalf("single point function should be constant, got %v", got)
	}
	if _, err := bpf.New(nil, bpf.Linear, 0, false); err == nil {
		t.Fatalf("no points should fail")
	}
}

func TestInterpolations(t *testing.T) {
	points := []bpf.Point{{0, 0}, {4, 10}, {7, 5}}
	cases := []struct {
		kind     bpf.Kind
		exp      float64
		t        float64
		expected float64
	}{
		{bpf.HalfCosine, 0, 2, 5},
		{bpf.Flat, 0, 3.9, 0},
		{bpf.Power, 1, 2, 2.5},
		{bpf.Power, -1, 2, 7.5},
		{bpf.Power, 0, 2, 5},
		{bpf.Power, 1, 5.5, 6.25},
	}
	for _, c := range cases {
		b, err := bpf.New(points, c.kind, c.exp, false)
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		if got := b.At(c.t); math.Abs(got-c.expected) > 1e-9 {
			t.Fatalf("%v exp %v At(%v) = %v, expected %v", c.kind, c.exp, c.t, got, c.expected)
		}
	}
}
