package pogen_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vsariola/pogen"
)

func drain(s *pogen.Selector[int], n int) []int {
	ret := make([]int, n)
	for i := range ret {
		ret[i] = s.MustNext()
	}
	return ret
}

func TestSelectorOrdered(t *testing.T) {
	src := []int{0, 1, 2, 3}
	cases := []struct {
		mode     pogen.SelectMode
		expected []int
	}{
		{pogen.OrderedCyclic, []int{0, 1, 2, 3, 0, 1, 2, 3}},
		{pogen.OrderedCyclicRetrograde, []int{3, 2, 1, 0, 3, 2, 1, 0}},
		{pogen.OrderedOscillate, []int{0, 1, 2, 3, 2, 1, 0, 1}},
	}
	for _, c := range cases {
		t.Run(c.mode.String(), func(t *testing.T) {
			s := pogen.NewSelector(src, c.mode, pogen.NewSource(1))
			assert.Equal(t, c.expected, drain(s, len(c.expected)))
			s.Reset()
			assert.Equal(t, c.expected[:3], drain(s, 3), "Reset should rewind the cursor")
		})
	}
}

func TestSelectorOscillateShort(t *testing.T) {
	s := pogen.NewSelector([]int{0, 1, 2}, pogen.OrderedOscillate, nil)
	assert.Equal(t, []int{0, 1, 2, 1, 0, 1, 2, 1}, drain(s, 8))
	s = pogen.NewSelector([]int{5, 6}, pogen.OrderedOscillate, nil)
	assert.Equal(t, []int{5, 6, 5, 6}, drain(s, 4))
}

func TestSelectorSingleElement(t *testing.T) {
	for m := pogen.RandomChoice; m <= pogen.OrderedOscillate; m++ {
		s := pogen.NewSelector([]int{7}, m, pogen.NewSource(3))
		for i := 0; i < 5; i++ {
			v, err := s.Next()
			require.NoError(t, err)
			assert.Equal(t, 7, v, "mode %v", m)
		}
	}
}

func TestSelectorEmpty(t *testing.T) {
	s := pogen.NewSelector([]int{}, pogen.RandomChoice, pogen.NewSource(1))
	_, err := s.Next()
	assert.ErrorIs(t, err, pogen.ErrEmptySelector)
}

func TestSelectorPermutateCoverage(t *testing.T) {
	src := []int{1, 2, 3, 4, 5}
	s := pogen.NewSelector(src, pogen.RandomPermutate, pogen.NewSource(42))
	for round := 0; round < 4; round++ {
		got := drain(s, len(src))
		sort.Ints(got)
		assert.Equal(t, src, got, "every permutation round should contain each element once")
	}
}

func TestSelectorRandomReplay(t *testing.T) {
	for _, m := range []pogen.SelectMode{pogen.RandomChoice, pogen.RandomWalk, pogen.RandomPermutate} {
		rng := pogen.NewSource(9)
		s := pogen.NewSelector([]int{1, 2, 3, 4, 5, 6}, m, rng)
		first := drain(s, 20)
		rng.Reset()
		s.Reset()
		assert.Equal(t, first, drain(s, 20), "mode %v should replay after reset", m)
	}
}

func TestSelectorRandomWalkSteps(t *testing.T) {
	s := pogen.NewSelector([]int{0, 1, 2, 3, 4, 5, 6, 7}, pogen.RandomWalk, pogen.NewSource(5))
	prev := 0
	for _, v := range drain(s, 50) {
		d := (v - prev + 8) % 8
		assert.True(t, d == 1 || d == 7, "random walk moved from %v to %v", prev, v)
		prev = v
	}
}

func TestSelectorUpdate(t *testing.T) {
	s := pogen.NewSelector([]int{0, 1, 2}, pogen.OrderedCyclic, nil)
	drain(s, 2)
	s.Update([]int{10, 11, 12})
	assert.Equal(t, 12, s.MustNext(), "same length update keeps the cursor")
	s.Update([]int{20, 21})
	assert.Equal(t, 20, s.MustNext(), "length change resets the cursor")
}
