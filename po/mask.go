package po

import (
	"log"
	"math"

	"github.com/vsariola/pogen"
	"github.com/vsariola/pogen/quantize"
)

type (
	mask struct {
		genBase
		boundary pogen.Boundary
		reject   bool
		a, b     Generator
		fill     Generator
	}

	maskScale struct {
		genBase
		src      Generator
		count    int
		min, max Generator
		mode     pogen.SelectMode
		selector *pogen.Selector[float64]
	}

	funnelBinary struct {
		genBase
		match     quantize.Match
		threshold Generator
		a, b      Generator
		fill      Generator
	}

	quantizeGen struct {
		genBase
		ref       Generator
		step      Generator
		stepCount int
		pull      Generator
		src       Generator
		q         *quantize.Quantizer
	}
)

func init() {
	register(GeneratorLib,
		maskInfo("mask", "m", false, "Keeps the values of a fill generator within the boundaries of two generators."),
		maskInfo("maskReject", "mr", true, "Keeps the values of a fill generator outside of the boundaries of two generators."),
		&Info{Name: "maskScale", Acronym: "ms",
			Args: append([]pogen.Arg{
				arg("parameterObject", genType, mustParse("(ws,e,30,0,0,1)"), "source generator"),
				arg("valueCount", pogen.ArgInt, mustParse("120"), "number of values drawn from the source"),
			}, append(minMaxArgs("(bphc,e,l,((0,0),(120,-3)))", "3"),
				arg("selectionString", pogen.ArgStr|pogen.ArgInt, mustParse("oc"), "how values are selected"))...),
			Doc: "Draws values from a generator at creation, normalizes them and selects from them, scaled between min and max.",
			New: newMaskScale},
		&Info{Name: "funnelBinary", Acronym: "fb",
			Args: []pogen.Arg{
				arg("thresholdMatchString", pogen.ArgStr, mustParse("u"), "upper, lower or match"),
				arg("parameterObject", genType, mustParse("(bpl,e,s,((0,0),(120,1)))"), "threshold"),
				arg("parameterObject", genType, mustParse("(ws,e,60,0,0.5,0)"), "first boundary"),
				arg("parameterObject", genType, mustParse("(wc,e,90,0,0.5,1)"), "second boundary"),
				arg("parameterObject", genType, mustParse("(ru,0,1)"), "fill"),
			},
			Doc: "Funnels the fill values to the upper boundary when above the threshold and to the lower one when below.",
			New: newFunnelBinary},
		&Info{Name: "quantize", Acronym: "q",
			Args: []pogen.Arg{
				arg("parameterObject", genType, mustParse("(c,0)"), "grid reference value"),
				arg("parameterObject", genType, mustParse("(c,0.25)"), "grid step sizes"),
				arg("stepCount", pogen.ArgInt, mustParse("1"), "number of step sizes drawn for each value"),
				arg("parameterObject", genType, mustParse("(c,1)"), "unit interval pull towards the grid"),
				arg("parameterObject", genType, mustParse("(ru,0,1)"), "source"),
			},
			Doc: "Attracts the values of a generator towards a grid of variable step sizes.",
			New: newQuantize},
	)
}

func maskInfo(name, acronym string, reject bool, doc string) *Info {
	return &Info{Name: name, Acronym: acronym, Doc: doc,
		Args: []pogen.Arg{
			arg("boundaryString", pogen.ArgStr, mustParse("l"), "limit, wrap or reflect"),
			arg("parameterObject", genType, mustParse("(ws,e,60,0,0.5,0)"), "first boundary"),
			arg("parameterObject", genType, mustParse("(wc,e,90,0,0.5,1)"), "second boundary"),
			arg("parameterObject", genType, mustParse("(ru,0,1)"), "fill"),
		},
		New: func(b *builder, args []pogen.Value) (PO, error) {
			return b.done(&mask{
				genBase:  b.genBase(),
				boundary: pogen.Boundary(b.option(args[0], pogen.Boundaries, "boundary")),
				reject:   reject,
				a:        b.gen(args[1], "first boundary"),
				b:        b.gen(args[2], "second boundary"),
				fill:     b.gen(args[3], "fill"),
			})
		},
	}
}

func (g *mask) CheckArgs() error { return checkAll(g.a, g.b, g.fill) }

func (g *mask) Call(t float64, ctx *pogen.Context) pogen.Value {
	a, b, f := g.a.Call(t, ctx).Float(), g.b.Call(t, ctx).Float(), g.fill.Call(t, ctx).Float()
	if g.reject {
		return g.setFloat(pogen.BoundaryReject(a, b, f, g.boundary))
	}
	return g.setFloat(pogen.BoundaryFit(a, b, f, g.boundary))
}

func (g *mask) Repr() string {
	return repr(g.Type(), g.boundary.String(), sub(g.a), sub(g.b), sub(g.fill))
}

func (g *mask) Reset() { resetAll(g.a, g.b, g.fill) }

func newMaskScale(b *builder, args []pogen.Value) (PO, error) {
	g := &maskScale{
		genBase: b.genBase(),
		src:     b.gen(args[0], "source"),
		count:   args[1].Int(),
		min:     b.gen(args[2], "min"),
		max:     b.gen(args[3], "max"),
		mode:    b.selectMode(args[4]),
	}
	if b.err != nil {
		return b.done(nil)
	}
	series := make([]float64, max(g.count, 0))
	for i := range series {
		series[i] = g.src.Call(float64(i), nil).Float()
	}
	g.selector = pogen.NewSelector(pogen.UnitNormRange(series), g.mode, g.rng)
	return b.done(g)
}

func (g *maskScale) CheckArgs() error {
	if g.count < 1 {
		return pogen.Errorf("argument error: length must be 1 or greater.")
	}
	return checkAll(g.src, g.min, g.max)
}

func (g *maskScale) Call(t float64, ctx *pogen.Context) pogen.Value {
	u, _ := g.selector.Next()
	return g.setFloat(pogen.Denorm(u, g.min.Call(t, ctx).Float(), g.max.Call(t, ctx).Float()))
}

func (g *maskScale) Repr() string {
	return repr(g.Type(), sub(g.src), fmtNum(float64(g.count)), sub(g.min), sub(g.max), g.mode.String())
}

func (g *maskScale) Reset() {
	g.rng.Reset()
	g.selector.Reset()
	resetAll(g.min, g.max)
}

func newFunnelBinary(b *builder, args []pogen.Value) (PO, error) {
	return b.done(&funnelBinary{
		genBase:   b.genBase(),
		match:     quantize.Match(b.option(args[0], Thresholds, "threshold match")),
		threshold: b.gen(args[1], "threshold"),
		a:         b.gen(args[2], "first boundary"),
		b:         b.gen(args[3], "second boundary"),
		fill:      b.gen(args[4], "fill"),
	})
}

func (g *funnelBinary) CheckArgs() error { return checkAll(g.threshold, g.a, g.b, g.fill) }

func (g *funnelBinary) Call(t float64, ctx *pogen.Context) pogen.Value {
	h := g.threshold.Call(t, ctx).Float()
	a, b, f := g.a.Call(t, ctx).Float(), g.b.Call(t, ctx).Float(), g.fill.Call(t, ctx).Float()
	return g.setFloat(quantize.FunnelBinary(h, a, b, f, g.match))
}

func (g *funnelBinary) Repr() string {
	return repr(g.Type(), Thresholds.Name(int(g.match)), sub(g.threshold), sub(g.a), sub(g.b), sub(g.fill))
}

func (g *funnelBinary) Reset() { resetAll(g.threshold, g.a, g.b, g.fill) }

func newQuantize(b *builder, args []pogen.Value) (PO, error) {
	return b.done(&quantizeGen{
		genBase:   b.genBase(),
		ref:       b.gen(args[0], "grid reference"),
		step:      b.gen(args[1], "step"),
		stepCount: args[2].Int(),
		pull:      b.gen(args[3], "pull"),
		src:       b.gen(args[4], "source"),
		q:         quantize.New(b.f.loopLimit()),
	})
}

func (g *quantizeGen) CheckArgs() error {
	if g.stepCount <= 0 {
		return pogen.Errorf("stepCount error: must be greater than zero.")
	}
	return checkAll(g.ref, g.step, g.pull, g.src)
}

// gridSteps draws count step sizes, leaving out zeros. An empty grid falls
// back to a step of one.
func gridSteps(step Generator, count int, t float64, ctx *pogen.Context) []float64 {
	grid := make([]float64, 0, count)
	for i := 0; i < count; i++ {
		if v := math.Abs(step.Call(t, ctx).Float()); v != 0 {
			grid = append(grid, v)
		}
	}
	if len(grid) == 0 {
		log.Printf("quantize: no usable grid steps, using 1")
		grid = append(grid, 1)
	}
	return grid
}

// attract quantizes value, keeping it as it is if the grid search fails.
func attract(q *quantize.Quantizer, grid []float64, value, pull, ref float64) float64 {
	if err := q.UpdateGrid(grid); err != nil {
		log.Printf("quantize: %v", err)
		return value
	}
	ret, err := q.Attract(value, pull, ref)
	if err != nil {
		log.Printf("quantize: %v", err)
		return value
	}
	return ret
}

func (g *quantizeGen) Call(t float64, ctx *pogen.Context) pogen.Value {
	ref := g.ref.Call(t, ctx).Float()
	grid := gridSteps(g.step, g.stepCount, t, ctx)
	pull := g.pull.Call(t, ctx).Float()
	return g.setFloat(attract(g.q, grid, g.src.Call(t, ctx).Float(), pull, ref))
}

func (g *quantizeGen) Repr() string {
	return repr(g.Type(), sub(g.ref), sub(g.step), fmtNum(float64(g.stepCount)), sub(g.pull), sub(g.src))
}

func (g *quantizeGen) Reset() { resetAll(g.ref, g.step, g.pull, g.src) }
