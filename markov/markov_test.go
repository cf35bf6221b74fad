package markov_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vsariola/pogen"
	"github.com/vsariola/pogen/markov"
)

func TestZeroOrder(t *testing.T) {
	var tr markov.Transition
	require.NoError(t, tr.LoadTransition("a{x}b{y}:{a=3|b=1}"))
	assert.Equal(t, "x", tr.Next(0.1, nil, 0, true, nil).Str())
	assert.Equal(t, "y", tr.Next(0.9, nil, 0, true, nil).Str())
	assert.Equal(t, "x", tr.Next(0.74, nil, 0, true, nil).Str())
	assert.Equal(t, "y", tr.Next(1, nil, 0, true, nil).Str())
	assert.Equal(t, "a{x}b{y}:{a=3|b=1}", tr.String())
}

func TestSymbolValues(t *testing.T) {
	var tr markov.Transition
	require.NoError(t, tr.LoadTransition("a{(9,3,1)} b{12} c{z} :{a=3|b=1|c=7|g}"))
	values := tr.Values()
	require.Len(t, values, 3)
	assert.True(t, values[0].IsList())
	assert.Equal(t, 12, values[1].Int())
	assert.Equal(t, "z", values[2].Str())
}

func TestHigherOrders(t *testing.T) {
	var tr markov.Transition
	require.NoError(t, tr.LoadTransition("a{a} b{b} c{c} :{a=1} a:{b=1} a:b:{c=1} *:c:{a=1}"))
	assert.Equal(t, []int{0, 1, 2}, tr.Orders())
	a, b, c := pogen.NewString("a"), pogen.NewString("b"), pogen.NewString("c")
	h := []pogen.Value{b, a, b}
	assert.Equal(t, c, tr.Next(0.5, h, 2, true, nil))
	assert.Equal(t, a, tr.Next(0.5, h, 0, true, nil))
	// a single value of history slides down to first order
	assert.Equal(t, b, tr.Next(0.5, []pogen.Value{a}, 2, true, nil))
	// without sliding the zero order table is used
	assert.Equal(t, a, tr.Next(0.5, []pogen.Value{a}, 2, false, nil))
	// the wildcard matches anything before c
	assert.Equal(t, a, tr.Next(0.5, []pogen.Value{b, c}, 2, true, nil))
	// orders above the maximum use the maximum
	assert.Equal(t, c, tr.Next(0.5, h, 7, true, nil))
}

func TestExpressions(t *testing.T) {
	cases := []struct {
		key  string
		seq  []string
		want bool
	}{
		{"*:", []string{"a"}, true},
		{"-a:", []string{"a"}, false},
		{"-a:", []string{"b"}, true},
		{"a|b:c:", []string{"b", "c"}, true},
		{"a|b:c:", []string{"c", "c"}, false},
		{"a:*:-c:", []string{"a", "b", "c"}, false},
		{"a:*:-c:", []string{"a", "c", "b"}, true},
	}
	for _, c := range cases {
		t.Run(c.key, func(t *testing.T) {
			var tr markov.Transition
			require.NoError(t, tr.LoadTransition("a{1}b{2}c{3}"+c.key+"{a=1}"))
			entries := tr.Entries()
			require.Len(t, entries, 1)
			assert.Equal(t, c.key, entries[0].Key.String())
			assert.Equal(t, c.want, entries[0].Key.Match(c.seq))
		})
	}
}

func TestFallback(t *testing.T) {
	var tr markov.Transition
	require.NoError(t, tr.LoadTransition("a{a}b{b}c{c}d{d} a:{b=1}"))
	rng := pogen.NewSource(7)
	counts := map[string]int{}
	history := []pogen.Value{pogen.NewString("d")}
	for i := 0; i < 4000; i++ {
		counts[tr.Next(rng.Float64(), history, 1, true, nil).Str()]++
	}
	for _, s := range []string{"a", "b", "c", "d"} {
		assert.InDelta(t, 1000, counts[s], 150, "symbol %v", s)
	}
}

func TestLoadErrors(t *testing.T) {
	cases := []string{
		"a{x}b{y}:{a=3|b=1",
		"a{x}",
		":{a=1}",
		"a{x}:{b=1}",
		"a{x}:{a=0}",
		"a{x}:{a=1=2}",
		"a{x}*-:{a=1}",
		"a{x}b{{y}}:{a=1}",
		"a!{x}:{a=1}",
	}
	for _, c := range cases {
		var tr markov.Transition
		err := tr.LoadTransition(c)
		var se *pogen.SyntaxError
		if assert.ErrorAs(t, err, &se, c) {
			assert.Equal(t, c, se.Input)
		}
	}
}

func TestAnalysis(t *testing.T) {
	var tr markov.Transition
	require.NoError(t, tr.LoadString("x y x x z", 1))
	assert.Equal(t, "a{x}b{y}c{z}:{a=3|b=1|c=1}a:{a=1|b=1|c=1}b:{a=1}c:{a=1}", tr.String())
	var again markov.Transition
	require.NoError(t, again.LoadTransition(tr.String()))
	assert.Equal(t, tr.String(), again.String())

	values := []pogen.Value{pogen.NewInt(1), pogen.NewInt(2), pogen.NewInt(1), pogen.NewInt(2)}
	require.NoError(t, tr.LoadList(values, 5))
	assert.Equal(t, 3, tr.MaxOrder())
	one, two := pogen.NewInt(1), pogen.NewInt(2)
	for i := 0; i < 10; i++ {
		assert.Equal(t, two, tr.Next(float64(i)/10, []pogen.Value{two, one}, 1, true, nil))
	}
	assert.Error(t, tr.LoadList(values[:1], markov.Limit+1))
}

func TestAlphaLabel(t *testing.T) {
	assert.Equal(t, "a", markov.AlphaLabel(0))
	assert.Equal(t, "z", markov.AlphaLabel(25))
	assert.Equal(t, "aa", markov.AlphaLabel(26))
	assert.Equal(t, "az", markov.AlphaLabel(51))
	assert.Equal(t, "ba", markov.AlphaLabel(52))
	assert.Equal(t, "aaa", markov.AlphaLabel(702))
}

func TestFractionalOrder(t *testing.T) {
	var tr markov.Transition
	require.NoError(t, tr.LoadTransition("a{a}b{b} :{a=1} a:{b=1}"))
	rng := pogen.NewSource(3)
	h := []pogen.Value{pogen.NewString("a")}
	bs := 0
	for i := 0; i < 1000; i++ {
		if tr.Next(0.5, h, 0.5, true, rng).Str() == "b" {
			bs++
		}
	}
	assert.InDelta(t, 500, bs, 80)
}
