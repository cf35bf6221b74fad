package quantize_test

import (
	"errors"
	"math"
	"testing"

	"github.com/vsariola/pogen/quantize"
)

func TestAttract(t *testing.T) {
	cases := []struct {
		name                   string
		grid                   []float64
		value, pull, ref, want float64
	}{
		{"snap down", []float64{1}, 2.3, 1, 0, 2},
		{"tie rounds up", []float64{1}, 2.5, 1, 0, 3},
		{"quarter grid", []float64{0.25}, 0.6, 1, 0, 0.5},
		{"half pull", []float64{0.25}, 0.6, 0.5, 0, 0.55},
		{"no pull", []float64{0.25}, 0.6, 0, 0, 0.6},
		{"below reference", []float64{1}, -0.3, 1, 0, 0},
		{"shifted reference", []float64{1}, 2.3, 1, 0.5, 2.5},
		{"on the grid", []float64{2}, 4, 1, 0, 4},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			q := quantize.New(0)
			if err := q.UpdateGrid(c.grid); err != nil {
				t.Fatalf("UpdateGrid failed: %v", err)
			}
			got, err := q.Attract(c.value, c.pull, c.ref)
			if err != nil {
				t.Fatalf("Attract failed: %v", err)
			}
			if math.Abs(got-c.want) > 1e-9 {
				t.Fatalf("Attract(%v, %v, %v) = %v, expected %v", c.value, c.pull, c.ref, got, c.want)
			}
		})
	}
}

func TestLoopLimit(t *testing.T) {
	q := quantize.New(50)
	q.UpdateGrid([]float64{0})
	v, err := q.Attract(3, 1, 0)
	if !errors.Is(err, quantize.ErrLoopLimit) {
		t.Fatalf("expected ErrLoopLimit, got %v", err)
	}
	if v != 3 {
		t.Fatalf("failed attraction should return the value unchanged, got %v", v)
	}
	if err := q.UpdateGrid(nil); err == nil {
		t.Fatalf("empty grid should fail")
	}
}

func TestFunnelBinary(t *testing.T) {
	cases := []struct {
		f    float64
		m    quantize.Match
		want float64
	}{
		{0.7, quantize.Exact, 10},
		{0.2, quantize.Exact, 2},
		{0.5, quantize.Exact, 0.5},
		{0.5, quantize.Upper, 10},
		{0.5, quantize.Lower, 2},
	}
	for _, c := range cases {
		if got := quantize.FunnelBinary(0.5, 10, 2, c.f, c.m); got != c.want {
			t.Fatalf("FunnelBinary(%v, %v) = %v, expected %v", c.f, c.m, got, c.want)
		}
	}
}
