package po

import (
	"log"
	"math"

	"github.com/vsariola/pogen"
)

type (
	// holder keeps a buffer of source values, refilled whenever the number of
	// events drawn from the refresh generator has passed. The buffer size is
	// drawn from the size generator at each refill.
	holder[T any] struct {
		size, refresh Generator
		failLimit     int
		buffer        []T
		count, total  int
		refreshValue  int
	}

	iterateWindow struct {
		genBase
		srcs     []Generator
		count    Generator
		mode     pogen.SelectMode
		selector *pogen.Selector[int]
		buffer   []pogen.Value
		limit    int
	}

	iterateGroup struct {
		genBase
		src     Generator
		control Generator
		buffer  []pogen.Value
		limit   int
	}

	iterateHold struct {
		genBase
		src      Generator
		hold     holder[pogen.Value]
		mode     pogen.SelectMode
		selector *pogen.Selector[pogen.Value]
	}

	iterateSelect struct {
		genBase
		src    Generator
		hold   holder[pogen.Value]
		sel    Generator
		bounds []pogen.Bound
	}

	iterateCross struct {
		genBase
		a, b    Generator
		control Generator
	}

	sampleAndHold struct {
		genBase
		comparison int
		src        Generator
		trigger    Generator
		threshold  Generator
		held       pogen.Value
		gate       int // 1 above, -1 below the threshold, 0 unknown
	}
)

const (
	cmpEqual = iota
	cmpGreater
	cmpGreaterOrEqual
	cmpLess
	cmpLessOrEqual
)

func init() {
	register(GeneratorLib,
		&Info{Name: "iterateWindow", Acronym: "iw",
			Args: []pogen.Arg{
				arg("parameterObjectList", pogen.ArgList, mustParse("((ru,0,1),(wt,e,30,0,0,1))"), "generators to take values from"),
				arg("parameterObject", genType, mustParse("(bg,oc,(8,4,-2))"), "number of values to take, or to skip if negative"),
				arg("selectionString", pogen.ArgStr|pogen.ArgInt, mustParse("oc"), "how generators are selected"),
			},
			Doc: "Takes or skips a number of values from one of several generators, selecting a new generator when the values run out.",
			New: newIterateWindow},
		&Info{Name: "iterateGroup", Acronym: "ig",
			Args: []pogen.Arg{
				arg("parameterObject", genType, mustParse("(ws,e,30,0,0,1)"), "source"),
				arg("parameterObject", genType, mustParse("(bg,rc,(-3,1,-1,5))"), "number of repeats of a value, or skipped values if negative"),
			},
			Doc: "Repeats or skips values of a generator.",
			New: newIterateGroup},
		&Info{Name: "iterateHold", Acronym: "ih",
			Args: []pogen.Arg{
				arg("parameterObject", genType, mustParse("(ru,0,1)"), "source"),
				arg("parameterObject", genType, mustParse("(bg,rc,(2,3,4))"), "number of values held"),
				arg("parameterObject", genType, mustParse("(bg,oc,(12,24))"), "number of events before the held values are refreshed"),
				arg("selectionString", pogen.ArgStr|pogen.ArgInt, mustParse("oc"), "how held values are selected"),
			},
			Doc: "Holds a number of values of a generator and selects from them until refreshed.",
			New: newIterateHold},
		&Info{Name: "iterateSelect", Acronym: "is",
			Args: []pogen.Arg{
				arg("parameterObject", genType, mustParse("(ru,0,1)"), "source"),
				arg("parameterObject", genType, mustParse("(bg,rc,(10,11,12))"), "number of values held"),
				arg("parameterObject", genType, mustParse("(bg,oc,(12,24))"), "number of events before the held values are refreshed"),
				arg("parameterObject", genType, mustParse("(rb,0.15,0.15,0,1)"), "unit interval selection generator"),
			},
			Doc: "Holds a number of values of a generator and selects from them with a unit interval generator until refreshed.",
			New: newIterateSelect},
		&Info{Name: "iterateCross", Acronym: "ic",
			Args: []pogen.Arg{
				arg("parameterObject", genType, mustParse("(ws,e,30,0,0,1)"), "first source"),
				arg("parameterObject", genType, mustParse("(wp,e,30,0,0,1)"), "second source"),
				arg("parameterObject", genType, mustParse("(bpl,e,l,((0,0),(120,1)))"), "unit interval mix"),
			},
			Doc: "Interpolates between the values of two generators.",
			New: newIterateCross},
		&Info{Name: "sampleAndHold", Acronym: "sah",
			Args: []pogen.Arg{
				arg("comparisonString", pogen.ArgStr, mustParse("gt"), "equal, greaterThan, greaterThanOrEqual, lessThan or lessThanOrEqual"),
				arg("parameterObject", genType, mustParse("(ru,0,1)"), "source"),
				arg("parameterObject", genType, mustParse("(wsd,e,10,0,0,1)"), "trigger"),
				arg("parameterObject", genType, mustParse("(c,0.5)"), "threshold"),
			},
			Doc: "Samples a new value of the source when the trigger crosses the threshold, holding it otherwise.",
			New: newSampleAndHold},
	)
}

// refill calls attempt until it yields values. attempt returns a count and a
// value function: a negative count discards that many values, a positive one
// keeps them. After failLimit attempts without values a single value is taken.
func refill[T any](name string, failLimit int, attempt func() (int, func() T)) []T {
	var buf []T
	for fails := 1; ; fails++ {
		q, next := attempt()
		for i := 0; i < -q; i++ {
			next()
		}
		for i := 0; i < q; i++ {
			buf = append(buf, next())
		}
		if len(buf) > 0 {
			return buf
		}
		if fails > failLimit {
			log.Printf("%s: no values obtained; supplying value", name)
			return append(buf, next())
		}
	}
}

func round(f float64) int {
	return int(math.Round(f))
}

// update advances the event counters and refills the buffer from fill, called
// with the total event count, when due. It reports if the buffer was refilled.
func (h *holder[T]) update(t float64, ctx *pogen.Context, fill func(t float64) T) bool {
	refilled := false
	if (h.count >= h.refreshValue && h.refreshValue != 0) || h.total == 0 {
		n := abs(round(h.size.Call(t, ctx).Float()))
		if n > 0 || len(h.buffer) == 0 {
			if n == 0 {
				n = h.failLimit
			}
			h.buffer = make([]T, n)
			for i := range h.buffer {
				h.buffer[i] = fill(float64(h.total + i))
			}
			h.count = 0
			refilled = true
		}
	}
	if h.count == 0 || h.total == 0 {
		h.refreshValue = abs(round(h.refresh.Call(t, ctx).Float()))
	}
	h.count++
	h.total++
	return refilled
}

func (h *holder[T]) reset() {
	h.total, h.count, h.buffer = 0, 0, nil
	resetAll(h.size, h.refresh)
}

func (h *holder[T]) reprs() []string {
	return []string{sub(h.size), sub(h.refresh)}
}

func newIterateWindow(b *builder, args []pogen.Value) (PO, error) {
	g := &iterateWindow{
		genBase: b.genBase(),
		srcs:    b.gens(args[0], "source"),
		count:   b.gen(args[1], "count"),
		mode:    b.selectMode(args[2]),
		limit:   b.f.failLimit(),
	}
	g.selector = pogen.NewSelector(indexes(len(g.srcs)), g.mode, g.rng)
	return b.done(g)
}

func indexes(n int) []int {
	ret := make([]int, n)
	for i := range ret {
		ret[i] = i
	}
	return ret
}

func (g *iterateWindow) CheckArgs() error { return checkAll(append(asPOs(g.srcs), g.count)...) }

func (g *iterateWindow) Call(t float64, ctx *pogen.Context) pogen.Value {
	if len(g.buffer) == 0 {
		g.buffer = refill(g.Type(), g.limit, func() (int, func() pogen.Value) {
			src := g.srcs[g.selector.MustNext()]
			q := round(g.count.Call(t, ctx).Float())
			return q, func() pogen.Value { return src.Call(t, ctx) }
		})
	}
	v := g.buffer[0]
	g.buffer = g.buffer[1:]
	return g.set(v)
}

func (g *iterateWindow) Output() OutputFormat { return g.srcs[0].Output() }

func (g *iterateWindow) Repr() string {
	return repr(g.Type(), subList(g.srcs), sub(g.count), g.mode.String())
}

func (g *iterateWindow) Reset() {
	g.rng.Reset()
	g.selector.Reset()
	g.buffer = nil
	resetAll(append(asPOs(g.srcs), g.count)...)
}

func newIterateGroup(b *builder, args []pogen.Value) (PO, error) {
	return b.done(&iterateGroup{
		genBase: b.genBase(),
		src:     b.gen(args[0], "source"),
		control: b.gen(args[1], "control"),
		limit:   b.f.failLimit(),
	})
}

func (g *iterateGroup) CheckArgs() error { return checkAll(g.src, g.control) }

func (g *iterateGroup) Call(t float64, ctx *pogen.Context) pogen.Value {
	if len(g.buffer) == 0 {
		g.buffer = refill(g.Type(), g.limit, func() (int, func() pogen.Value) {
			q := round(g.control.Call(t, ctx).Float())
			if q > 0 {
				v := g.src.Call(t, ctx)
				return q, func() pogen.Value { return v }
			}
			return q, func() pogen.Value { return g.src.Call(t, ctx) }
		})
	}
	v := g.buffer[0]
	g.buffer = g.buffer[1:]
	return g.set(v)
}

func (g *iterateGroup) Output() OutputFormat { return g.src.Output() }

func (g *iterateGroup) Repr() string { return repr(g.Type(), sub(g.src), sub(g.control)) }

func (g *iterateGroup) Reset() {
	g.buffer = nil
	resetAll(g.src, g.control)
}

func newIterateHold(b *builder, args []pogen.Value) (PO, error) {
	return b.done(&iterateHold{
		genBase: b.genBase(),
		src:     b.gen(args[0], "source"),
		hold:    holder[pogen.Value]{size: b.gen(args[1], "size"), refresh: b.gen(args[2], "refresh"), failLimit: b.f.failLimit()},
		mode:    b.selectMode(args[3]),
	})
}

func (g *iterateHold) CheckArgs() error { return checkAll(g.src, g.hold.size, g.hold.refresh) }

func (g *iterateHold) Call(t float64, ctx *pogen.Context) pogen.Value {
	fill := func(t float64) pogen.Value { return g.src.Call(t, ctx) }
	if g.hold.update(t, ctx, fill) {
		g.selector = pogen.NewSelector(g.hold.buffer, g.mode, g.rng)
	}
	return g.set(g.selector.MustNext())
}

func (g *iterateHold) Output() OutputFormat { return g.src.Output() }

func (g *iterateHold) Repr() string {
	return repr(append(append([]string{g.Type(), sub(g.src)}, g.hold.reprs()...), g.mode.String())...)
}

func (g *iterateHold) Reset() {
	g.rng.Reset()
	g.hold.reset()
	g.selector = nil
	resetAll(g.src)
}

func newIterateSelect(b *builder, args []pogen.Value) (PO, error) {
	return b.done(&iterateSelect{
		genBase: b.genBase(),
		src:     b.gen(args[0], "source"),
		hold:    holder[pogen.Value]{size: b.gen(args[1], "size"), refresh: b.gen(args[2], "refresh"), failLimit: b.f.failLimit()},
		sel:     b.gen(args[3], "selection"),
	})
}

func (g *iterateSelect) CheckArgs() error {
	return checkAll(g.src, g.hold.size, g.hold.refresh, g.sel)
}

func (g *iterateSelect) Call(t float64, ctx *pogen.Context) pogen.Value {
	fill := func(t float64) pogen.Value { return g.src.Call(t, ctx) }
	if g.hold.update(t, ctx, fill) {
		g.bounds = pogen.UnitBoundaryEqual(len(g.hold.buffer))
	}
	u := pogen.LimitUnit(g.sel.Call(t, ctx).Float())
	return g.set(g.hold.buffer[pogen.UnitBoundaryPos(u, g.bounds)])
}

func (g *iterateSelect) Output() OutputFormat { return g.src.Output() }

func (g *iterateSelect) Repr() string {
	return repr(append(append([]string{g.Type(), sub(g.src)}, g.hold.reprs()...), sub(g.sel))...)
}

func (g *iterateSelect) Reset() {
	g.hold.reset()
	resetAll(g.src, g.sel)
}

func newIterateCross(b *builder, args []pogen.Value) (PO, error) {
	return b.done(&iterateCross{
		genBase: b.genBase(),
		a:       b.gen(args[0], "first source"),
		b:       b.gen(args[1], "second source"),
		control: b.gen(args[2], "control"),
	})
}

func (g *iterateCross) CheckArgs() error { return checkAll(g.a, g.b, g.control) }

func (g *iterateCross) Call(t float64, ctx *pogen.Context) pogen.Value {
	q := pogen.LimitUnit(g.control.Call(t, ctx).Float())
	a, b := g.a.Call(t, ctx).Float(), g.b.Call(t, ctx).Float()
	return g.setFloat(pogen.Interpolate(q, a, b))
}

func (g *iterateCross) Repr() string { return repr(g.Type(), sub(g.a), sub(g.b), sub(g.control)) }

func (g *iterateCross) Reset() { resetAll(g.a, g.b, g.control) }

func newSampleAndHold(b *builder, args []pogen.Value) (PO, error) {
	return b.done(&sampleAndHold{
		genBase:    b.genBase(),
		comparison: b.option(args[0], Comparisons, "comparison"),
		src:        b.gen(args[1], "source"),
		trigger:    b.gen(args[2], "trigger"),
		threshold:  b.gen(args[3], "threshold"),
	})
}

func (g *sampleAndHold) CheckArgs() error { return checkAll(g.src, g.trigger, g.threshold) }

func round10(f float64) float64 {
	return math.Round(f*1e10) / 1e10
}

func (g *sampleAndHold) Call(t float64, ctx *pogen.Context) pogen.Value {
	trig := round10(g.trigger.Call(t, ctx).Float())
	thr := round10(g.threshold.Call(t, ctx).Float())
	update := !g.held.IsValid()
	switch g.comparison {
	case cmpEqual:
		update = update || trig == thr
	case cmpGreater:
		update = update || trig > thr && g.gate <= 0
	case cmpGreaterOrEqual:
		update = update || trig >= thr && g.gate <= 0
	case cmpLess:
		update = update || trig < thr && g.gate >= 0
	case cmpLessOrEqual:
		update = update || trig <= thr && g.gate >= 0
	}
	switch {
	case trig > thr:
		g.gate = 1
	case trig < thr:
		g.gate = -1
	}
	if update {
		g.held = g.src.Call(t, ctx)
	}
	return g.set(g.held)
}

func (g *sampleAndHold) Output() OutputFormat { return g.src.Output() }

func (g *sampleAndHold) Repr() string {
	return repr(g.Type(), Comparisons.Name(g.comparison), sub(g.src), sub(g.trigger), sub(g.threshold))
}

func (g *sampleAndHold) Reset() {
	g.held, g.gate = pogen.Value{}, 0
	resetAll(g.src, g.trigger, g.threshold)
}
