package automata_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vsariola/pogen"
	"github.com/vsariola/pogen/automata"
)

func TestParseSpec(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"", "f{s}k{2}r{1}i{center}x{91}y{135}w{91}c{0}s{0}"},
		{"f{t}k{3}x{21}y{10}", "f{t}k{3}r{1}i{center}x{21}y{10}w{21}c{0}s{0}"},
		{"k{99}x{0}y{-4}", "f{s}k{2}r{1}i{center}x{91}y{135}w{91}c{0}s{0}"},
		{"r{1.3}", "f{s}k{2}r{1.5}i{center}x{91}y{135}w{91}c{0}s{0}"},
		{"f{c}k{4}", "f{c}k{0}r{1}i{center}x{91}y{135}w{91}c{0}s{0}"},
		{"k{0}", "f{f}k{0}r{1}i{center}x{91}y{135}w{91}c{0}s{0}"},
		{"i{r}w{5}c{-3}s{2}", "f{s}k{2}r{1}i{random}x{91}y{135}w{5}c{-3}s{2}"},
		{"i{0110}q{12}", "f{s}k{2}r{1}i{0110}x{91}y{135}w{91}c{0}s{0}"},
		{"format{totalistic}size{11}", "f{t}k{2}r{1}i{center}x{11}y{135}w{11}c{0}s{0}"},
	}
	for _, c := range cases {
		t.Run(c.input, func(t *testing.T) {
			s, err := automata.ParseSpec(c.input)
			require.NoError(t, err)
			assert.Equal(t, c.want, s.String())
			again, err := automata.ParseSpec(s.String())
			require.NoError(t, err)
			assert.Equal(t, s, again)
		})
	}
	_, err := automata.ParseSpec("f{s")
	assert.Error(t, err)
}

func TestRule90(t *testing.T) {
	a, err := automata.New("f{s}k{2}r{1}x{11}y{6}", 90, 0, pogen.NewSource(1))
	require.NoError(t, err)
	a.Gen(1, 90, 0)
	assert.Equal(t, []float64{0, 0, 0, 0, 1, 0, 1, 0, 0, 0, 0}, a.Cells())
	a.Gen(4, 90, 0)
	for i, row := range a.History() {
		for j := range row {
			if row[j] != row[len(row)-1-j] {
				t.Fatalf("generation %d is not symmetric: %v", i, row)
			}
		}
	}
	lines := strings.Split(strings.TrimRight(a.String(), "\n"), "\n")
	assert.Equal(t, "     +     ", lines[0])
	assert.Equal(t, "    + +    ", lines[1])
}

func TestRuleFolding(t *testing.T) {
	a, err := automata.New("x{31}", 90+256, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, "90", a.Rule())
	assert.Equal(t, "256", a.RuleMax().String())
	b, err := automata.New("x{31}", 90, 0, nil)
	require.NoError(t, err)
	a.Gen(10, 90+512, 0)
	b.Gen(10, 90, 0)
	assert.Equal(t, b.History(), a.History())
	c, err := automata.New("x{31}", -166, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, "90", c.Rule())
}

func TestTotalistic(t *testing.T) {
	_, err := automata.New("f{t}k{1}", 3, 0, nil)
	assert.True(t, errors.Is(err, automata.ErrTotalistic))
	_, err = automata.New("f{t}r{.5}", 3, 0, nil)
	assert.True(t, errors.Is(err, automata.ErrTotalistic))
	a, err := automata.New("f{t}k{3}x{9}", 777, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, "2187", a.RuleMax().String())
	assert.Equal(t, 1.0, a.Cells()[4])
	a.Gen(1, 777, 0)
	// 777 in base 3 is 1001210: sums 0..6 map to 0,1,2,1,0,0,1
	assert.Equal(t, []float64{0, 0, 0, 1, 1, 1, 0, 0, 0}, a.Cells())
}

func TestHugeRuleSpace(t *testing.T) {
	a, err := automata.New("k{5}r{4}x{40}y{10}", 1e300, 0, pogen.NewSource(3))
	require.NoError(t, err)
	assert.Nil(t, a.RuleMax())
	a.Gen(9, 1e300, 0)
	assert.Len(t, a.History(), 10)
	for _, row := range a.History() {
		for _, v := range row {
			require.True(t, v >= 0 && v <= 4, "cell out of range: %v", v)
		}
	}
}

func TestContinuous(t *testing.T) {
	for _, f := range []string{"c", "f"} {
		t.Run(f, func(t *testing.T) {
			a, err := automata.New("f{"+f+"}x{20}", 0.25, 0, nil)
			require.NoError(t, err)
			a.Gen(30, 1.25, 0)
			assert.Equal(t, "0.25", a.Rule())
			for _, row := range a.History()[1:] {
				for _, v := range row {
					require.True(t, v >= 0 && v < 1, "cell out of range: %v", v)
				}
			}
			a.Gen(1, 0.5, 0)
			assert.Equal(t, "0.5", a.Rule())
		})
	}
	// equal cells stay equal, alternating between 0 and 0.5
	a, err := automata.New("f{c}x{6}i{0.5}", 0.5, 0, nil)
	require.NoError(t, err)
	a.Gen(100, 0.5, 0)
	assert.Equal(t, 0.5, a.Cells()[0])
}

func TestMutationReplay(t *testing.T) {
	run := func() [][]float64 {
		a, err := automata.New("k{3}x{30}i{r}", 1234, 0.1, pogen.NewSource(42))
		require.NoError(t, err)
		a.Gen(20, 1234, 0.1)
		return a.History()
	}
	assert.Equal(t, run(), run())
}

func TestExtract(t *testing.T) {
	a, err := automata.New("x{11}y{4}w{3}s{1}", 90, 0, nil)
	require.NoError(t, err)
	a.Gen(4, 90, 0)
	sum, err := automata.ParseTableFormat(pogen.NewString("sr"))
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{2, 0, 2, 0}}, a.Extract(sum, false))
	assert.Equal(t, [][]float64{{1, 0, 1, 0}}, a.Extract(sum, true))
	idx, err := automata.ParseTableFormat(pogen.NewString("flatRowIndexActive"))
	require.NoError(t, err)
	assert.Equal(t, "flatRowIndexActive", idx.String())
	assert.Equal(t, []float64{4, 6, 4, 6}, a.Table().ExtractFlat(idx, false, 0, -1, 0, 3))
	_, err = automata.ParseTableFormat(pogen.NewString("diagonal"))
	assert.Error(t, err)
}
