package po_test

import (
	"errors"
	"os"
	"path"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vsariola/pogen"
	"github.com/vsariola/pogen/po"
	"gopkg.in/yaml.v2"
)

type generatorCase struct {
	Name   string    `yaml:"name"`
	Spec   string    `yaml:"spec"`
	Values []float64 `yaml:"values"`
}

func TestGeneratorFixtures(t *testing.T) {
	_, myname, _, _ := runtime.Caller(0)
	data, err := os.ReadFile(path.Join(path.Dir(myname), "testdata", "generators.yml"))
	if err != nil {
		t.Fatalf("cannot read the test cases: %v", err)
	}
	var cases []generatorCase
	if err := yaml.UnmarshalStrict(data, &cases); err != nil {
		t.Fatalf("could not parse the .yml file: %v", err)
	}
	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			g, err := po.NewFactory(1).NewGenerator(c.Spec)
			require.NoError(t, err)
			got := pogen.RenderFloats(g, len(c.Values), nil)
			assert.InDeltaSlice(t, c.Values, got, 1e-9)
			g.Reset()
			again := pogen.RenderFloats(g, len(c.Values), nil)
			assert.InDeltaSlice(t, got, again, 1e-12, "values after Reset differ")
		})
	}
}

func TestRandomUniformRange(t *testing.T) {
	g, err := po.NewFactory(7).NewGenerator("ru,10,20")
	require.NoError(t, err)
	for i, v := range pogen.RenderFloats(g, 500, nil) {
		if v < 10 || v > 20 {
			t.Fatalf("value %d out of range: %v", i, v)
		}
	}
}

func TestSeedDeterminism(t *testing.T) {
	specs := []string{"ru,0,1", "rb,0.5,0.5,0,1", "n,100,pink,0,1", "bg,rp,(1,2,3,4)", "lm,0.3,bi,0,1"}
	for _, spec := range specs {
		t.Run(spec, func(t *testing.T) {
			a, err := po.NewFactory(42).NewGenerator(spec)
			require.NoError(t, err)
			b, err := po.NewFactory(42).NewGenerator(spec)
			require.NoError(t, err)
			first := pogen.RenderFloats(a, 50, nil)
			assert.Equal(t, first, pogen.RenderFloats(b, 50, nil))
			a.Reset()
			assert.Equal(t, first, pogen.RenderFloats(a, 50, nil))
		})
	}
}

func TestDefaultsRoundTrip(t *testing.T) {
	for _, lib := range []po.Library{po.GeneratorLib, po.RhythmLib, po.TextureLib, po.CloneLib, po.FilterLib} {
		for _, info := range po.Registered(lib) {
			t.Run(lib.String()+"/"+info.Name, func(t *testing.T) {
				f := po.NewFactory(3)
				p, err := f.New(info.Defaults(), lib)
				require.NoError(t, err, "defaults %v", info.Defaults())
				assert.Equal(t, info.Name, p.Type())
				q, err := f.New(p.Repr(), lib)
				require.NoError(t, err, "could not recreate from %q", p.Repr())
				assert.Equal(t, p.Repr(), q.Repr())
			})
		}
	}
}

func TestLookup(t *testing.T) {
	info, ok := po.Lookup("WS")
	require.True(t, ok)
	assert.Equal(t, "waveSine", info.Name)
	info, ok = po.Lookup("waveSine", po.GeneratorLib)
	require.True(t, ok)
	assert.Equal(t, "ws", info.Acronym)
	info, ok = po.Lookup("mp", po.RhythmLib)
	require.True(t, ok)
	assert.Equal(t, "markovPulse", info.Name)
	_, ok = po.Lookup("ws", po.FilterLib)
	assert.False(t, ok)
}

func TestNoSuchParameter(t *testing.T) {
	_, err := po.NewFactory(0).New("zzz,1,2", po.GeneratorLib)
	var nsp *po.NoSuchParameterError
	require.True(t, errors.As(err, &nsp))
	assert.Equal(t, "zzz", nsp.Name)
	assert.Contains(t, err.Error(), "Generator ParameterObject")
}

func TestSubParameterError(t *testing.T) {
	_, err := po.NewFactory(0).NewGenerator("a,0,(zzz)")
	require.Error(t, err)
	var se *pogen.SyntaxError
	require.True(t, errors.As(err, &se))
	assert.True(t, strings.HasPrefix(se.Msg, "failed"), se.Msg)
	var nsp *po.NoSuchParameterError
	assert.True(t, errors.As(err, &nsp))
}

func TestArgumentErrors(t *testing.T) {
	cases := []struct {
		spec string
		msg  string
	}{
		{"sr,(5,1)", "start time must be before end time"},
		{"cg,ud,0,1,2", "increment error"},
		{"bg,oc,()", "more than 0 items"},
		{"or,0", "rotation steps"},
		{"tec,0", "eventCount must be greater than zero"},
		{"omd,1.5", "between 0 and 1"},
		{"mga,(c,1),0,2,(c,0)", "valueCount error"},
		{"mv,a{1}:{b=1},(c,0)", "Markov transition creation failed"},
		{"l,()", "rhythms"},
		{"pl,((c,1))", "must be a filter"},
	}
	for _, c := range cases {
		t.Run(c.spec, func(t *testing.T) {
			_, err := po.NewFactory(0).New(c.spec)
			require.Error(t, err)
			assert.Contains(t, err.Error(), c.msg)
		})
	}
}

func TestMissingArgumentsUseDefaults(t *testing.T) {
	g, err := po.NewFactory(0).NewGenerator("ws")
	require.NoError(t, err)
	assert.Equal(t, "waveSine, event, (constant, 30), 0, (constant, 0), (constant, 1)", g.Repr())
}

func TestMarkovValue(t *testing.T) {
	g, err := po.NewFactory(5).NewGenerator("mv,a{x}b{y}:{a=3|b=1},(c,0)")
	require.NoError(t, err)
	assert.Equal(t, po.Str, g.Output())
	counts := map[string]int{}
	for _, v := range pogen.Render(g, 400, nil) {
		counts[v.Str()]++
	}
	assert.Len(t, counts, 2)
	assert.Greater(t, counts["x"], counts["y"])
}

func TestCellularAutomatonValues(t *testing.T) {
	g, err := po.NewFactory(0).NewGenerator("cv,f{s}k{2}r{1}x{11}y{6},(c,90),(c,0),sr,0,1,oc")
	require.NoError(t, err)
	for _, v := range pogen.RenderFloats(g, 30, nil) {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
	}
}

func TestRhythmLoop(t *testing.T) {
	r, err := po.NewFactory(0).NewRhythm("l,((4,1,1),(2,1,0.5)),oc")
	require.NoError(t, err)
	ctx := &pogen.Context{BPM: 120}
	p := r.Pulse(0, ctx)
	assert.InDelta(t, 0.125, p.Dur, 1e-12)
	assert.InDelta(t, 0.125, p.Sus, 1e-12)
	assert.Equal(t, 1.0, p.Acc)
	p = r.Pulse(1, ctx)
	assert.InDelta(t, 0.25, p.Dur, 1e-12)
	assert.Equal(t, 0.5, p.Acc)
	assert.Equal(t, p, r.Current())
}

func TestParseTriple(t *testing.T) {
	cases := []struct {
		input    string
		expected po.Triple
	}{
		{"(3,1,1)", po.Triple{Div: 3, Mult: 1, Acc: 1, Sus: 1}},
		{"(4,-2)", po.Triple{Div: 4, Mult: 2, Acc: 1, Sus: 1}},
		{"(2,1,mf)", po.Triple{Div: 2, Mult: 1, Acc: 0.7, Sus: 1}},
		{"dq", po.Triple{Div: 2, Mult: 3, Acc: 1, Sus: 1}},
		{"pp", po.Triple{Div: 1, Mult: 1, Acc: 0.225, Sus: 1}},
		{"0.5", po.Triple{Div: 1, Mult: 1, Acc: 0.5, Sus: 1}},
	}
	for _, c := range cases {
		t.Run(c.input, func(t *testing.T) {
			v, err := pogen.Parse(c.input)
			require.NoError(t, err)
			got, err := po.ParseTriple(v.Index(0))
			require.NoError(t, err)
			assert.Equal(t, c.expected, got)
		})
	}
	_, err := po.ParseTriple(pogen.NewList(pogen.NewInt(0), pogen.NewInt(1)))
	assert.Error(t, err)
}

func TestConvertSecond(t *testing.T) {
	r, err := po.NewFactory(0).NewRhythm("cs,(c,0.5)")
	require.NoError(t, err)
	p := r.Pulse(0, nil)
	assert.Equal(t, 0.5, p.Dur)
	assert.InDelta(t, 0.4995, p.Sus, 1e-12)
	assert.Equal(t, 1.0, p.Acc)
}

func TestBinaryAccent(t *testing.T) {
	r, err := po.NewFactory(0).NewRhythm("ba,((4,1,1),(2,1,1))")
	require.NoError(t, err)
	ctx := &pogen.Context{BPM: 60, Chord: []float64{0, 4, 7}}
	assert.InDelta(t, 0.5, r.Pulse(0, ctx.WithPitch(0, ctx.Chord)).Dur, 1e-12)
	assert.InDelta(t, 0.25, r.Pulse(1, ctx.WithPitch(4, ctx.Chord)).Dur, 1e-12)
}

func TestRenderRhythm(t *testing.T) {
	f := po.NewFactory(0)
	r, err := f.NewRhythm("l,((1,1,1))")
	require.NoError(t, err)
	pitch, err := f.NewGenerator("bg,oc,(0,2,4)")
	require.NoError(t, err)
	notes := pogen.RenderRhythm(r, pitch, 3, &pogen.Context{BPM: 60})
	require.Len(t, notes, 3)
	for i, n := range notes {
		assert.InDelta(t, float64(i), n.Start, 1e-12)
		assert.Equal(t, float64(2*i), n.Pitch)
	}
}

func TestStatics(t *testing.T) {
	f := po.NewFactory(0)
	p, err := f.New("psc,rw", po.TextureLib)
	require.NoError(t, err)
	s := p.(po.Static)
	assert.Equal(t, "randomWalk", s.Switch("selectionString").Str())
	assert.False(t, s.Switch("noSuchSwitch").IsValid())
	p, err = f.New("tec,30", po.TextureLib)
	require.NoError(t, err)
	assert.Equal(t, 30.0, p.(po.Static).Switch("count").Float())
	p, err = f.New("trs", po.CloneLib)
	require.NoError(t, err)
	assert.Equal(t, "timeReferenceSource, textureTime", p.Repr())
	_, err = f.New("lws,maybe", po.TextureLib)
	assert.Error(t, err)
}

func filterValues(t *testing.T, spec string, in ...float64) []float64 {
	t.Helper()
	fl, err := po.NewFactory(0).NewFilter(spec)
	require.NoError(t, err)
	values := make([]pogen.Value, len(in))
	times := make([]float64, len(in))
	for i, f := range in {
		values[i] = pogen.NewNumber(f)
		times[i] = float64(i)
	}
	ctxs := make([]*pogen.Context, len(in))
	out, err := fl.Filter(values, times, ctxs)
	require.NoError(t, err)
	for i, f := range in {
		require.Equal(t, f, values[i].Float(), "filter modified its input")
	}
	ret := make([]float64, len(out))
	for i, v := range out {
		ret[i] = v.Float()
	}
	return ret
}

func TestFilters(t *testing.T) {
	cases := []struct {
		spec     string
		input    []float64
		expected []float64
	}{
		{"b", []float64{1, 2, 3}, []float64{1, 2, 3}},
		{"ob", []float64{1, 2, 3}, []float64{3, 2, 1}},
		{"or,2", []float64{1, 2, 3, 4, 5}, []float64{3, 4, 5, 1, 2}},
		{"or,7", []float64{1, 2, 3, 4, 5}, []float64{3, 4, 5, 1, 2}},
		{"pl,((or,1),(ob))", []float64{1, 2, 3}, []float64{1, 3, 2}},
		{"r,(bg,oc,(9,8))", []float64{1, 2, 3}, []float64{9, 8, 9}},
		{"fa,(c,10)", []float64{1, 2}, []float64{11, 12}},
		{"fm,(c,3)", []float64{1, 2}, []float64{3, 6}},
		{"fd,(c,0)", []float64{1, 2}, []float64{1, 2}},
		{"fp,(c,0.5)", []float64{-4, 9}, []float64{-4, 3}},
		{"fma,l,(c,2)", []float64{3, 1, 2}, []float64{5, 1, 3}},
		{"fma,u,(c,2)", []float64{3, 1, 2}, []float64{3, -1, 1}},
		{"fma,a,(c,0)", []float64{1, 2, 6}, []float64{3, 3, 3}},
		{"fma,m,(c,0)", []float64{9, 1, 2}, []float64{2, 2, 2}},
		{"fq,(c,0),(c,1),1,(c,1)", []float64{0.2, 1.7, -0.6}, []float64{0, 2, -1}},
		{"mf,l,(c,0),(c,1)", []float64{-1, 0.5, 2}, []float64{0, 0.5, 1}},
		{"ffb,u,(c,0.5),(c,0),(c,1)", []float64{0.2, 0.8}, []float64{0, 1}},
		{"b", []float64{}, []float64{}},
	}
	for _, c := range cases {
		t.Run(c.spec, func(t *testing.T) {
			assert.InDeltaSlice(t, c.expected, filterValues(t, c.spec, c.input...), 1e-9)
		})
	}
}

func TestFilterArrayLength(t *testing.T) {
	for _, spec := range []string{"b", "ob", "or,1", "fa,(c,1)", "faa,l,(c,1)", "msf"} {
		t.Run(spec, func(t *testing.T) {
			fl, err := po.NewFactory(0).NewFilter(spec)
			require.NoError(t, err)
			_, err = fl.Filter([]pogen.Value{pogen.NewInt(1)}, []float64{0, 1}, []*pogen.Context{nil})
			assert.True(t, errors.Is(err, pogen.ErrArrayLength), "got %v", err)
		})
	}
}

func TestMaskScaleFilterRange(t *testing.T) {
	got := filterValues(t, "msf,(c,10),(c,20),rp", 1, 5, 3, 2)
	require.Len(t, got, 4)
	for _, v := range got {
		assert.GreaterOrEqual(t, v, 10.0)
		assert.LessOrEqual(t, v, 20.0)
	}
}
