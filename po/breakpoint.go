package po

import (
	"log"
	"math"

	"github.com/vsariola/pogen"
	"github.com/vsariola/pogen/bpf"
)

type (
	breakPoint struct {
		genBase
		step     stepper
		loop     int
		kind     bpf.Kind
		exponent float64
		fn       *bpf.BPF
	}

	breakGraph struct {
		genBase
		step     stepper
		loop     int
		kind     bpf.Kind
		exponent float64
		x, y     Generator
		count    int
		fn       *bpf.BPF
	}

	lineSegment struct {
		genBase
		step     stepper
		spc      Generator
		min, max Generator
		fn       *bpf.BPF
		lo, hi   float64
	}
)

func init() {
	register(GeneratorLib,
		breakPointInfo("breakPointLinear", "bpl", bpf.Linear, "linear"),
		breakPointInfo("breakPointPower", "bpp", bpf.Power, "exponential"),
		breakPointInfo("breakPointHalfCosine", "bphc", bpf.HalfCosine, "half cosine"),
		breakPointInfo("breakPointFlat", "bpf", bpf.Flat, "flat"),
		breakGraphInfo("breakGraphLinear", "bgl", bpf.Linear, "linear"),
		breakGraphInfo("breakGraphPower", "bgp", bpf.Power, "exponential"),
		breakGraphInfo("breakGraphHalfCosine", "bghc", bpf.HalfCosine, "half cosine"),
		breakGraphInfo("breakGraphFlat", "bgf", bpf.Flat, "flat"),
		&Info{Name: "lineSegment", Acronym: "ls",
			Args: append([]pogen.Arg{
				stepArg(),
				arg("secPerCycle", genType, mustParse("10"), "length of each segment"),
			}, minMaxArgs("0", "5")...),
			Doc: "Draws line segments from min to max, each secPerCycle long; the generators are read at the start of each segment.",
			New: newLineSegment},
	)
}

func edgeArg() pogen.Arg {
	return arg("edgeString", pogen.ArgStr|pogen.ArgInt, mustParse("l"), "loop or single")
}

func exponentArg() pogen.Arg {
	return arg("exponent", pogen.ArgNum, mustParse("-1.5"), "curve exponent")
}

func breakPointInfo(name, acronym string, kind bpf.Kind, desc string) *Info {
	args := []pogen.Arg{
		stepArg(),
		edgeArg(),
		arg("pointList", pogen.ArgList, mustParse("((0,1),(6,0.3),(12,0.3),(18,0),(24,0.6))"), "(x,y) pairs"),
	}
	if kind == bpf.Power {
		args = append(args, exponentArg())
	}
	return &Info{Name: name, Acronym: acronym, Args: args,
		Doc: "Interpolates " + desc + "ly between break points, looping or holding the last value.",
		New: func(b *builder, args []pogen.Value) (PO, error) {
			g := &breakPoint{
				genBase: b.genBase(),
				step:    stepper{mode: b.option(args[0], Steps, "step control")},
				loop:    b.option(args[1], Loops, "edge control"),
				kind:    kind,
			}
			if kind == bpf.Power {
				g.exponent = args[3].Float()
			}
			points, err := parsePoints(args[2])
			if err != nil {
				b.fail(err)
				return b.done(nil)
			}
			g.fn = b.bpf(points, kind, g.exponent, g.loop == 0)
			return b.done(g)
		},
	}
}

func parsePoints(v pogen.Value) ([]bpf.Point, error) {
	ret := make([]bpf.Point, 0, v.Len())
	for _, p := range v.List() {
		xy, ok := p.FloatSlice()
		if !ok || len(xy) != 2 {
			return nil, pogen.Errorf("points must be pairs of numbers, got '%s'.", p)
		}
		ret = append(ret, bpf.Point{X: xy[0], Y: xy[1]})
	}
	return ret, nil
}

func formatPoints(points []bpf.Point) string {
	items := make([]pogen.Value, len(points))
	for i, p := range points {
		items[i] = pogen.NewList(pogen.NewNumber(p.X), pogen.NewNumber(p.Y))
	}
	return pogen.NewList(items...).String()
}

func (b *builder) bpf(points []bpf.Point, kind bpf.Kind, exponent float64, periodic bool) *bpf.BPF {
	fn, err := bpf.New(points, kind, exponent, periodic)
	if err != nil {
		b.failf("%v.", err)
		return nil
	}
	return fn
}

func (g *breakPoint) Call(t float64, ctx *pogen.Context) pogen.Value {
	v := g.fn.At(g.step.local(t))
	g.step.advance()
	return g.setFloat(v)
}

func (g *breakPoint) Repr() string {
	parts := []string{g.Type(), g.step.String(), Loops.Name(g.loop), formatPoints(g.fn.Points())}
	if g.kind == bpf.Power {
		parts = append(parts, fmtNum(g.exponent))
	}
	return repr(parts...)
}

func (g *breakPoint) Reset() { g.step.reset() }

func breakGraphInfo(name, acronym string, kind bpf.Kind, desc string) *Info {
	args := []pogen.Arg{
		stepArg(),
		edgeArg(),
		arg("parameterObject", genType, mustParse("(a,0,(bg,rp,(1,3,9)))"), "x value generator"),
		arg("parameterObject", genType, mustParse("(bg,rc,(0,0.25,0.5,0.75,1))"), "y value generator"),
		arg("pointCount", pogen.ArgInt, mustParse("60"), "number of break points"),
	}
	if kind == bpf.Power {
		args = append(args, exponentArg())
	}
	return &Info{Name: name, Acronym: acronym, Args: args,
		Doc: "Interpolates " + desc + "ly between break points drawn from x and y generators at creation.",
		New: func(b *builder, args []pogen.Value) (PO, error) {
			g := &breakGraph{
				genBase: b.genBase(),
				step:    stepper{mode: b.option(args[0], Steps, "step control")},
				loop:    b.option(args[1], Loops, "edge control"),
				kind:    kind,
				x:       b.gen(args[2], "x"),
				y:       b.gen(args[3], "y"),
				count:   args[4].Int(),
			}
			if kind == bpf.Power {
				g.exponent = args[5].Float()
			}
			if b.err != nil || g.count <= 0 {
				return b.done(g)
			}
			points := make([]bpf.Point, g.count)
			for i := range points {
				points[i] = bpf.Point{X: g.x.Call(float64(i), nil).Float(), Y: g.y.Call(float64(i), nil).Float()}
			}
			g.fn = b.bpf(points, kind, g.exponent, g.loop == 0)
			return b.done(g)
		},
	}
}

func (g *breakGraph) CheckArgs() error {
	if g.count <= 0 {
		return pogen.Errorf("pointCount error: must be greater than zero.")
	}
	return checkAll(g.x, g.y)
}

func (g *breakGraph) Call(t float64, ctx *pogen.Context) pogen.Value {
	v := g.fn.At(g.step.local(t))
	g.step.advance()
	return g.setFloat(v)
}

func (g *breakGraph) Repr() string {
	parts := []string{g.Type(), g.step.String(), Loops.Name(g.loop), sub(g.x), sub(g.y), fmtNum(float64(g.count))}
	if g.kind == bpf.Power {
		parts = append(parts, fmtNum(g.exponent))
	}
	return repr(parts...)
}

func (g *breakGraph) Reset() { g.step.reset() }

func newLineSegment(b *builder, args []pogen.Value) (PO, error) {
	return b.done(&lineSegment{
		genBase: b.genBase(),
		step:    stepper{mode: b.option(args[0], Steps, "step control")},
		spc:     b.gen(args[1], "secPerCycle"),
		min:     b.gen(args[2], "min"),
		max:     b.gen(args[3], "max"),
	})
}

func (g *lineSegment) CheckArgs() error { return checkAll(g.spc, g.min, g.max) }

func (g *lineSegment) Call(t float64, ctx *pogen.Context) pogen.Value {
	tl := g.step.local(t)
	if g.fn == nil || tl < g.lo || tl >= g.hi {
		span := math.Abs(g.spc.Call(tl, ctx).Float())
		if span == 0 {
			span = math.Abs(g.spc.Call(tl, ctx).Float())
		}
		if span == 0 {
			log.Printf("lineSegment: zero segment length, using 1")
			span = 1
		}
		g.lo, g.hi = tl, tl+span
		points := []bpf.Point{{X: g.lo, Y: g.min.Call(tl, ctx).Float()}, {X: g.hi, Y: g.max.Call(tl, ctx).Float()}}
		g.fn, _ = bpf.New(points, bpf.Linear, 0, true)
	}
	v := g.fn.At(tl)
	g.step.advance()
	return g.setFloat(v)
}

func (g *lineSegment) Repr() string {
	return repr(g.Type(), g.step.String(), sub(g.spc), sub(g.min), sub(g.max))
}

func (g *lineSegment) Reset() {
	g.step.reset()
	g.fn = nil
	resetAll(g.spc, g.min, g.max)
}
