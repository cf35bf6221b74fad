package pogen_test

import (
	"errors"
	"testing"

	"github.com/vsariola/pogen"
)

func TestParse(t *testing.T) {
	cases := []struct {
		input    string
		expected string
	}{
		{"c,42", "(c,42)"},
		{"ru, 10, 20", "(ru,10,20)"},
		{"bpl,e,l,[(0,0),(10,1)]", "(bpl,e,l,((0,0),(10,1)))"},
		{"ws,e,30,0,(c,1.5),1", "(ws,e,30,0,(c,1.5),1)"},
		{"mv,a{x}b{y}:{a=3|b=1},(c,0)", "(mv,a{x}b{y}:{a=3|b=1},(c,0))"},
		{"cl, f{s}k{2}r{1}, 90, 0", "(cl,f{s}k{2}r{1},90,0)"},
		{"tf,'1,2',\"x\"", "(tf,\"1,2\",x)"},
		{"c, \"3\"", "(c,\"3\")"},
		{"c,1e3", "(c,1000)"},
		{"c,-0.25", "(c,-0.25)"},
		{"bg,rc,()", "(bg,rc,())"},
		{"", "()"},
	}
	for _, c := range cases {
		t.Run(c.input, func(t *testing.T) {
			v, err := pogen.Parse(c.input)
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if got := v.String(); got != c.expected {
				t.Fatalf("Parse(%q).String() = %v, expected %v", c.input, got, c.expected)
			}
			back, err := pogen.Parse(v.String()[1 : len(v.String())-1])
			if err != nil {
				t.Fatalf("could not parse canonical form: %v", err)
			}
			if !back.Equal(v) {
				t.Fatalf("canonical form %v did not parse back into the same value, got %v", v, back)
			}
		})
	}
}

func TestParseKinds(t *testing.T) {
	v, err := pogen.Parse("1, 1.5, abc, (2)")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	kinds := []pogen.Kind{pogen.Int, pogen.Float, pogen.String, pogen.List}
	for i, k := range kinds {
		if v.Index(i).Kind() != k {
			t.Fatalf("item %d was %v, expected %v", i, v.Index(i).Kind(), k)
		}
	}
}

func TestParseErrors(t *testing.T) {
	for _, input := range []string{"c,(1,2", "c,1)", "c,,1", "c,a{x", "c,a}x", "c,'abc", "c,(1](2)", "c,a(1)"} {
		t.Run(input, func(t *testing.T) {
			_, err := pogen.Parse(input)
			var se *pogen.SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("expected a SyntaxError, got %v", err)
			}
		})
	}
}

func TestParseBraces(t *testing.T) {
	pairs, err := pogen.ParseBraces("a{x}b{y}:{a=3|b=1}")
	if err != nil {
		t.Fatalf("ParseBraces failed: %v", err)
	}
	expected := []pogen.Pair{{"a", "x"}, {"b", "y"}, {":", "a=3|b=1"}}
	if len(pairs) != len(expected) {
		t.Fatalf("got %v pairs, expected %v", len(pairs), len(expected))
	}
	for i := range expected {
		if pairs[i] != expected[i] {
			t.Fatalf("pair %d was %v, expected %v", i, pairs[i], expected[i])
		}
	}
	for _, bad := range []string{"a{x", "a{x}}b{", "a{b{c}}", "a{x}tail"} {
		if _, err := pogen.ParseBraces(bad); err == nil {
			t.Fatalf("ParseBraces(%q) should have failed", bad)
		}
	}
}

func TestCheckArgs(t *testing.T) {
	params := []pogen.Arg{
		{Name: "stepString", Type: pogen.ArgStr, Default: pogen.NewString("e")},
		{Name: "count", Type: pogen.ArgInt, Default: pogen.NewInt(10)},
		{Name: "min", Type: pogen.ArgNum | pogen.ArgList, Default: pogen.NewInt(0)},
	}
	args, err := pogen.CheckArgs([]pogen.Value{pogen.NewString("t"), pogen.NewFloat(3)}, params)
	if err != nil {
		t.Fatalf("CheckArgs failed: %v", err)
	}
	if len(args) != 3 || args[2].Float() != 0 || args[1].Int() != 3 {
		t.Fatalf("defaults were not filled correctly: %v", args)
	}
	if _, err := pogen.CheckArgs([]pogen.Value{pogen.NewString("t"), pogen.NewFloat(3.5)}, params); err == nil {
		t.Fatalf("a non-integral float should not be accepted as an int")
	}
	if _, err := pogen.CheckArgs(make([]pogen.Value, 4), params); err == nil {
		t.Fatalf("too many arguments should fail")
	}
	required := []pogen.Arg{{Name: "x", Type: pogen.ArgNum}}
	if _, err := pogen.CheckArgs(nil, required); err == nil {
		t.Fatalf("missing argument without default should fail")
	}
}

func TestOptions(t *testing.T) {
	cases := []struct {
		input    pogen.Value
		expected pogen.SelectMode
	}{
		{pogen.NewString("rc"), pogen.RandomChoice},
		{pogen.NewInt(1), pogen.OrderedCyclic},
		{pogen.NewString("ORDEREDOSCILLATE"), pogen.OrderedOscillate},
		{pogen.NewString("ocr"), pogen.OrderedCyclicRetrograde},
	}
	for _, c := range cases {
		m, err := pogen.ParseSelectMode(c.input)
		if err != nil {
			t.Fatalf("ParseSelectMode(%v) failed: %v", c.input, err)
		}
		if m != c.expected {
			t.Fatalf("ParseSelectMode(%v) = %v, expected %v", c.input, m, c.expected)
		}
	}
	if _, err := pogen.ParseSelectMode(pogen.NewString("xyz")); err == nil {
		t.Fatalf("unknown select mode should fail")
	}
	// unique first letters enable acronym matching
	i, err := pogen.Boundaries.Parse(pogen.NewString("Reflect"), "boundary")
	if err != nil || pogen.Boundary(i) != pogen.Reflect {
		t.Fatalf("got %v %v, expected reflect", i, err)
	}
	if got := pogen.Boundaries.Label(); got != "limit, reflect, or wrap" {
		t.Fatalf("Label() = %v", got)
	}
}
