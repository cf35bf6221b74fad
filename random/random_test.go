package random_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vsariola/pogen"
	"github.com/vsariola/pogen/random"
)

func TestDistributionsStayInUnitInterval(t *testing.T) {
	dists := []random.Dist{
		{Kind: random.Uniform},
		{Kind: random.Linear},
		{Kind: random.InverseLinear},
		{Kind: random.Triangular},
		{Kind: random.InverseTriangular},
		{Kind: random.Exponential, A: 0.5},
		{Kind: random.InverseExponential, A: 0.5},
		{Kind: random.BilateralExponential, A: 0.5},
		{Kind: random.Gauss, A: 0.5, B: 0.1},
		{Kind: random.Cauchy, A: 0.1, B: 0.5},
		{Kind: random.Beta, A: 0.5, B: 0.5},
		{Kind: random.Weibull, A: 0.5, B: 2},
	}
	for _, d := range dists {
		t.Run(d.Kind.String(), func(t *testing.T) {
			r := pogen.NewSource(11)
			for i := 0; i < 2000; i++ {
				v := d.Draw(r)
				assert.True(t, v >= 0 && v <= 1, "draw %v out of range: %v", i, v)
			}
		})
	}
}

func TestLinearSkew(t *testing.T) {
	r := pogen.NewSource(2)
	lin, inv := 0.0, 0.0
	const n = 5000
	for i := 0; i < n; i++ {
		lin += random.Dist{Kind: random.Linear}.Draw(r)
		inv += random.Dist{Kind: random.InverseLinear}.Draw(r)
	}
	assert.InDelta(t, 1.0/3, lin/n, 0.03)
	assert.InDelta(t, 2.0/3, inv/n, 0.03)
}

func TestGaussMean(t *testing.T) {
	r := pogen.NewSource(3)
	sum := 0.0
	const n = 5000
	for i := 0; i < n; i++ {
		sum += random.Dist{Kind: random.Gauss, A: 0.3, B: 0.05}.Draw(r)
	}
	assert.InDelta(t, 0.3, sum/n, 0.01)
}

func TestNoiseWeights(t *testing.T) {
	w := random.Weights(4, 1)
	for _, x := range w {
		assert.InDelta(t, 0.25, x, 1e-9, "pink noise weighs all dice equally")
	}
	w = random.Weights(4, 3)
	sum := 0.0
	for i, x := range w {
		sum += x
		if i > 0 {
			assert.True(t, w[i-1] > x, "black noise weighs slow dice more: %v", w)
		}
	}
	assert.InDelta(t, 1, sum, 1e-9)
}

func TestGameNoiseReplay(t *testing.T) {
	r := pogen.NewSource(8)
	g := random.NewGameNoise(100, r)
	assert.Equal(t, 7, g.Dice())
	first := make([]float64, 50)
	for i := range first {
		first[i] = g.Step(random.Brown)
		assert.False(t, math.IsNaN(first[i]))
		assert.True(t, first[i] >= 0 && first[i] <= 1)
	}
	r.Reset()
	g.Reset()
	for i := range first {
		assert.Equal(t, first[i], g.Step(random.Brown))
	}
}
