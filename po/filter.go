package po

import (
	"math"
	"slices"

	"github.com/viterin/vek"
	"github.com/vsariola/pogen"
	"github.com/vsariola/pogen/quantize"
)

type (
	bypass struct{ base }

	orderBackward struct{ base }

	orderRotate struct {
		base
		steps int
	}

	pipeLine struct {
		base
		filters []Filter
	}

	replace struct {
		base
		src PO
	}

	// filterOperator combines each value with the output of a generator or
	// the duration of a rhythm.
	filterOperator struct {
		base
		op  func(v, x float64) float64
		src PO
	}

	// filterAnchor applies its operation to the offsets of the values from
	// an anchor value and adds the anchor back.
	filterAnchor struct {
		base
		anchor int
		op     func(v, x float64) float64
		src    PO
	}

	filterQuantize struct {
		base
		ref       Generator
		step      Generator
		stepCount int
		pull      Generator
		q         *quantize.Quantizer
	}

	filterFunnelBinary struct {
		base
		match     quantize.Match
		threshold Generator
		a, b      Generator
	}

	maskFilter struct {
		base
		boundary pogen.Boundary
		a, b     Generator
	}

	maskScaleFilter struct {
		base
		min, max Generator
		mode     pogen.SelectMode
	}
)

const (
	anchorLower = iota
	anchorUpper
	anchorAverage
	anchorMedian
)

func init() {
	register(FilterLib,
		&Info{Name: "bypass", Acronym: "b",
			Doc: "Returns the values unchanged.",
			New: func(b *builder, args []pogen.Value) (PO, error) { return b.done(&bypass{b.base()}) }},
		&Info{Name: "orderBackward", Acronym: "ob",
			Doc: "Reverses the order of the values.",
			New: func(b *builder, args []pogen.Value) (PO, error) { return b.done(&orderBackward{b.base()}) }},
		&Info{Name: "orderRotate", Acronym: "or",
			Args: []pogen.Arg{arg("rotationSize", pogen.ArgInt, mustParse("40"), "number of steps to rotate")},
			Doc:  "Rotates the values, moving the first steps values to the end.",
			New: func(b *builder, args []pogen.Value) (PO, error) {
				return b.done(&orderRotate{base: b.base(), steps: args[0].Int()})
			}},
		&Info{Name: "pipeLine", Acronym: "pl",
			Args: []pogen.Arg{arg("filterParameterObjectList", pogen.ArgList, mustParse("((or,40),(ob))"), "filters applied in order")},
			Doc:  "Applies filters one after another.",
			New:  newPipeLine},
		&Info{Name: "replace", Acronym: "r",
			Args: []pogen.Arg{arg("parameterObject", genType, mustParse("(ru,0,1)"), "generator or rhythm replacing the values")},
			Doc:  "Replaces the values with the values of a generator, or the durations of a rhythm.",
			New: func(b *builder, args []pogen.Value) (PO, error) {
				return b.done(&replace{base: b.base(), src: b.operand(args[0], "replacement")})
			}},
		operatorFilterInfo("filterAdd", "fa", "Adds", func(v, x float64) float64 { return v + x }),
		operatorFilterInfo("filterMultiply", "fm", "Multiplies", func(v, x float64) float64 { return v * x }),
		operatorFilterInfo("filterDivide", "fd", "Divides", divideOrKeep),
		operatorFilterInfo("filterPower", "fp", "Raises", powerOrKeep),
		anchorFilterInfo("filterAddAnchor", "faa", "Adds", func(v, x float64) float64 { return v + x }),
		anchorFilterInfo("filterMultiplyAnchor", "fma", "Multiplies", func(v, x float64) float64 { return v * x }),
		anchorFilterInfo("filterDivideAnchor", "fda", "Divides", divideOrKeep),
		anchorFilterInfo("filterPowerAnchor", "fpa", "Raises", powerOrKeep),
		&Info{Name: "filterQuantize", Acronym: "fq",
			Args: []pogen.Arg{
				arg("parameterObject", genType, mustParse("(c,0)"), "grid reference value"),
				arg("parameterObject", genType, mustParse("(c,0.25)"), "grid step sizes"),
				arg("stepCount", pogen.ArgInt, mustParse("1"), "number of step sizes drawn for each value"),
				arg("parameterObject", genType, mustParse("(c,1)"), "unit interval pull towards the grid"),
			},
			Doc: "Attracts the values towards a grid of variable step sizes.",
			New: newFilterQuantize},
		&Info{Name: "filterFunnelBinary", Acronym: "ffb",
			Args: []pogen.Arg{
				arg("thresholdMatchString", pogen.ArgStr, mustParse("u"), "upper, lower or match"),
				arg("parameterObject", genType, mustParse("(bpl,e,s,((0,0),(120,1)))"), "threshold"),
				arg("parameterObject", genType, mustParse("(ws,e,60,0,0.5,0)"), "first boundary"),
				arg("parameterObject", genType, mustParse("(wc,e,90,0,0.5,1)"), "second boundary"),
			},
			Doc: "Funnels the values to the upper boundary when above the threshold and to the lower one when below.",
			New: newFilterFunnelBinary},
		&Info{Name: "maskFilter", Acronym: "mf",
			Args: []pogen.Arg{
				arg("boundaryString", pogen.ArgStr, mustParse("l"), "limit, wrap or reflect"),
				arg("parameterObject", genType, mustParse("(ws,e,60,0,0.5,0)"), "first boundary"),
				arg("parameterObject", genType, mustParse("(wc,e,90,0,0.5,1)"), "second boundary"),
			},
			Doc: "Keeps the values within the boundaries of two generators.",
			New: newMaskFilter},
		&Info{Name: "maskScaleFilter", Acronym: "msf",
			Args: append(minMaxArgs("(ws,e,60,0,0.5,0)", "(wc,e,90,0,0.5,1)"),
				arg("selectionString", pogen.ArgStr|pogen.ArgInt, mustParse("rc"), "how normalized values are selected")),
			Doc: "Normalizes the values, selects from them and scales the selection between min and max.",
			New: newMaskScaleFilter},
	)
}

func divideOrKeep(v, x float64) float64 {
	if x == 0 {
		return v
	}
	return v / x
}

func powerOrKeep(v, x float64) float64 {
	if r := math.Pow(v, x); !math.IsNaN(r) && !math.IsInf(r, 0) {
		return r
	}
	return v
}

// checkLengths returns ErrArrayLength unless the arrays of a filter call have
// the same length.
func checkLengths(values []pogen.Value, times []float64, ctxs []*pogen.Context) error {
	if len(values) != len(times) || len(times) != len(ctxs) {
		return pogen.ErrArrayLength
	}
	return nil
}

func floatsOf(values []pogen.Value) []float64 {
	ret := make([]float64, len(values))
	for i, v := range values {
		ret[i] = v.Float()
	}
	return ret
}

func (p *bypass) Filter(values []pogen.Value, times []float64, ctxs []*pogen.Context) ([]pogen.Value, error) {
	if err := checkLengths(values, times, ctxs); err != nil {
		return nil, err
	}
	return slices.Clone(values), nil
}

func (p *bypass) Repr() string { return p.Type() }

func (p *bypass) Reset() {}

func (p *orderBackward) Filter(values []pogen.Value, times []float64, ctxs []*pogen.Context) ([]pogen.Value, error) {
	if err := checkLengths(values, times, ctxs); err != nil {
		return nil, err
	}
	ret := slices.Clone(values)
	slices.Reverse(ret)
	return ret, nil
}

func (p *orderBackward) Repr() string { return p.Type() }

func (p *orderBackward) Reset() {}

func (p *orderRotate) CheckArgs() error {
	if p.steps <= 0 {
		return pogen.Errorf("number of rotation steps must be greater than 0")
	}
	return nil
}

func (p *orderRotate) Filter(values []pogen.Value, times []float64, ctxs []*pogen.Context) ([]pogen.Value, error) {
	if err := checkLengths(values, times, ctxs); err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return []pogen.Value{}, nil
	}
	cut := p.steps % len(values)
	return append(slices.Clone(values[cut:]), values[:cut]...), nil
}

func (p *orderRotate) Repr() string { return repr(p.Type(), fmtNum(float64(p.steps))) }

func (p *orderRotate) Reset() {}

func newPipeLine(b *builder, args []pogen.Value) (PO, error) {
	p := &pipeLine{base: b.base()}
	items := args[0].List()
	if len(items) > 0 && items[0].IsString() {
		items = []pogen.Value{args[0]}
	}
	if len(items) == 0 {
		b.failf("enter a list of filter parameter objects.")
	}
	for _, item := range items {
		s := b.sub(item, "filter", FilterLib, GeneratorLib, RhythmLib)
		if b.err != nil {
			return b.done(nil)
		}
		f, ok := s.(Filter)
		if !ok {
			b.failf("all sub ParameterObjects must be a filter.")
			return b.done(nil)
		}
		p.filters = append(p.filters, f)
	}
	return b.done(p)
}

func (p *pipeLine) CheckArgs() error { return checkAll(asPOs(p.filters)...) }

func (p *pipeLine) Filter(values []pogen.Value, times []float64, ctxs []*pogen.Context) ([]pogen.Value, error) {
	if err := checkLengths(values, times, ctxs); err != nil {
		return nil, err
	}
	ret := slices.Clone(values)
	for _, f := range p.filters {
		var err error
		if ret, err = f.Filter(ret, times, ctxs); err != nil {
			return nil, err
		}
	}
	return ret, nil
}

func (p *pipeLine) Repr() string { return repr(p.Type(), subList(p.filters)) }

func (p *pipeLine) Reset() { resetAll(asPOs(p.filters)...) }

func (p *replace) CheckArgs() error { return checkAll(p.src) }

func (p *replace) Filter(values []pogen.Value, times []float64, ctxs []*pogen.Context) ([]pogen.Value, error) {
	if err := checkLengths(values, times, ctxs); err != nil {
		return nil, err
	}
	ret := make([]pogen.Value, len(values))
	for i := range values {
		if g, ok := p.src.(Generator); ok {
			ret[i] = g.Call(times[i], ctxs[i])
			continue
		}
		ret[i] = pogen.NewFloat(operandValue(p.src, times[i], ctxs[i]))
	}
	return ret, nil
}

func (p *replace) Repr() string { return repr(p.Type(), sub(p.src)) }

func (p *replace) Reset() { resetAll(p.src) }

func operatorFilterInfo(name, acronym, verb string, op func(v, x float64) float64) *Info {
	return &Info{Name: name, Acronym: acronym,
		Args: []pogen.Arg{arg("parameterObject", genType, mustParse("(ws,e,30,0,0,1)"), "operator value generator or rhythm")},
		Doc:  verb + " each value by the value of a generator, or the duration of a rhythm.",
		New: func(b *builder, args []pogen.Value) (PO, error) {
			return b.done(&filterOperator{base: b.base(), op: op, src: b.operand(args[0], "operator")})
		},
	}
}

func (p *filterOperator) CheckArgs() error { return checkAll(p.src) }

func (p *filterOperator) Filter(values []pogen.Value, times []float64, ctxs []*pogen.Context) ([]pogen.Value, error) {
	if err := checkLengths(values, times, ctxs); err != nil {
		return nil, err
	}
	ret := make([]pogen.Value, len(values))
	for i, v := range values {
		ret[i] = pogen.NewFloat(p.op(v.Float(), operandValue(p.src, times[i], ctxs[i])))
	}
	return ret, nil
}

func (p *filterOperator) Repr() string { return repr(p.Type(), sub(p.src)) }

func (p *filterOperator) Reset() { resetAll(p.src) }

func anchorFilterInfo(name, acronym, verb string, op func(v, x float64) float64) *Info {
	return &Info{Name: name, Acronym: acronym,
		Args: []pogen.Arg{
			arg("anchorString", pogen.ArgStr, mustParse("lower"), "lower, upper, average or median"),
			arg("parameterObject", genType, mustParse("(wc,e,30,0,0,1)"), "operator value generator or rhythm"),
		},
		Doc: verb + " the distance of each value from an anchor value by the value of a generator, or the duration of a rhythm.",
		New: func(b *builder, args []pogen.Value) (PO, error) {
			return b.done(&filterAnchor{
				base:   b.base(),
				anchor: b.option(args[0], Anchors, "anchor"),
				op:     op,
				src:    b.operand(args[1], "operator"),
			})
		},
	}
}

// anchorValue returns the anchor of a non-empty series.
func anchorValue(anchor int, series []float64) float64 {
	switch anchor {
	case anchorUpper:
		return vek.Max(series)
	case anchorAverage:
		return vek.Mean(series)
	case anchorMedian:
		sorted := slices.Clone(series)
		slices.Sort(sorted)
		n := len(sorted)
		if n%2 == 0 {
			return (sorted[n/2-1] + sorted[n/2]) / 2
		}
		return sorted[n/2]
	}
	return vek.Min(series)
}

func (p *filterAnchor) CheckArgs() error { return checkAll(p.src) }

func (p *filterAnchor) Filter(values []pogen.Value, times []float64, ctxs []*pogen.Context) ([]pogen.Value, error) {
	if err := checkLengths(values, times, ctxs); err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return []pogen.Value{}, nil
	}
	series := floatsOf(values)
	a := anchorValue(p.anchor, series)
	shifted := vek.AddNumber(series, -a)
	ret := make([]pogen.Value, len(values))
	for i, v := range shifted {
		ret[i] = pogen.NewFloat(p.op(v, operandValue(p.src, times[i], ctxs[i])) + a)
	}
	return ret, nil
}

func (p *filterAnchor) Repr() string { return repr(p.Type(), Anchors.Name(p.anchor), sub(p.src)) }

func (p *filterAnchor) Reset() { resetAll(p.src) }

func newFilterQuantize(b *builder, args []pogen.Value) (PO, error) {
	return b.done(&filterQuantize{
		base:      b.base(),
		ref:       b.gen(args[0], "grid reference"),
		step:      b.gen(args[1], "step"),
		stepCount: args[2].Int(),
		pull:      b.gen(args[3], "pull"),
		q:         quantize.New(b.f.loopLimit()),
	})
}

func (p *filterQuantize) CheckArgs() error {
	if p.stepCount <= 0 {
		return pogen.Errorf("stepCount error: must be greater than zero.")
	}
	return checkAll(p.ref, p.step, p.pull)
}

func (p *filterQuantize) Filter(values []pogen.Value, times []float64, ctxs []*pogen.Context) ([]pogen.Value, error) {
	if err := checkLengths(values, times, ctxs); err != nil {
		return nil, err
	}
	ret := make([]pogen.Value, len(values))
	for i, v := range values {
		t, ctx := times[i], ctxs[i]
		grid := gridSteps(p.step, p.stepCount, t, ctx)
		ref := p.ref.Call(t, ctx).Float()
		pull := p.pull.Call(t, ctx).Float()
		ret[i] = pogen.NewFloat(attract(p.q, grid, v.Float(), pull, ref))
	}
	return ret, nil
}

func (p *filterQuantize) Repr() string {
	return repr(p.Type(), sub(p.ref), sub(p.step), fmtNum(float64(p.stepCount)), sub(p.pull))
}

func (p *filterQuantize) Reset() { resetAll(p.ref, p.step, p.pull) }

func newFilterFunnelBinary(b *builder, args []pogen.Value) (PO, error) {
	return b.done(&filterFunnelBinary{
		base:      b.base(),
		match:     quantize.Match(b.option(args[0], Thresholds, "threshold match")),
		threshold: b.gen(args[1], "threshold"),
		a:         b.gen(args[2], "first boundary"),
		b:         b.gen(args[3], "second boundary"),
	})
}

func (p *filterFunnelBinary) CheckArgs() error { return checkAll(p.threshold, p.a, p.b) }

func (p *filterFunnelBinary) Filter(values []pogen.Value, times []float64, ctxs []*pogen.Context) ([]pogen.Value, error) {
	if err := checkLengths(values, times, ctxs); err != nil {
		return nil, err
	}
	ret := make([]pogen.Value, len(values))
	for i, v := range values {
		t, ctx := times[i], ctxs[i]
		h := p.threshold.Call(t, ctx).Float()
		a, b := p.a.Call(t, ctx).Float(), p.b.Call(t, ctx).Float()
		ret[i] = pogen.NewFloat(quantize.FunnelBinary(h, a, b, v.Float(), p.match))
	}
	return ret, nil
}

func (p *filterFunnelBinary) Repr() string {
	return repr(p.Type(), Thresholds.Name(int(p.match)), sub(p.threshold), sub(p.a), sub(p.b))
}

func (p *filterFunnelBinary) Reset() { resetAll(p.threshold, p.a, p.b) }

func newMaskFilter(b *builder, args []pogen.Value) (PO, error) {
	return b.done(&maskFilter{
		base:     b.base(),
		boundary: pogen.Boundary(b.option(args[0], pogen.Boundaries, "boundary")),
		a:        b.gen(args[1], "first boundary"),
		b:        b.gen(args[2], "second boundary"),
	})
}

func (p *maskFilter) CheckArgs() error { return checkAll(p.a, p.b) }

func (p *maskFilter) Filter(values []pogen.Value, times []float64, ctxs []*pogen.Context) ([]pogen.Value, error) {
	if err := checkLengths(values, times, ctxs); err != nil {
		return nil, err
	}
	ret := make([]pogen.Value, len(values))
	for i, v := range values {
		a, b := p.a.Call(times[i], ctxs[i]).Float(), p.b.Call(times[i], ctxs[i]).Float()
		ret[i] = pogen.NewFloat(pogen.BoundaryFit(a, b, v.Float(), p.boundary))
	}
	return ret, nil
}

func (p *maskFilter) Repr() string {
	return repr(p.Type(), p.boundary.String(), sub(p.a), sub(p.b))
}

func (p *maskFilter) Reset() { resetAll(p.a, p.b) }

func newMaskScaleFilter(b *builder, args []pogen.Value) (PO, error) {
	return b.done(&maskScaleFilter{
		base: b.base(),
		min:  b.gen(args[0], "min"),
		max:  b.gen(args[1], "max"),
		mode: b.selectMode(args[2]),
	})
}

func (p *maskScaleFilter) CheckArgs() error { return checkAll(p.min, p.max) }

func (p *maskScaleFilter) Filter(values []pogen.Value, times []float64, ctxs []*pogen.Context) ([]pogen.Value, error) {
	if err := checkLengths(values, times, ctxs); err != nil {
		return nil, err
	}
	sel := pogen.NewSelector(pogen.UnitNormRange(floatsOf(values)), p.mode, p.rng)
	ret := make([]pogen.Value, len(values))
	for i := range values {
		u := sel.MustNext()
		ret[i] = pogen.NewFloat(pogen.Denorm(u, p.min.Call(times[i], ctxs[i]).Float(), p.max.Call(times[i], ctxs[i]).Float()))
	}
	return ret, nil
}

func (p *maskScaleFilter) Repr() string {
	return repr(p.Type(), sub(p.min), sub(p.max), p.mode.String())
}

func (p *maskScaleFilter) Reset() {
	p.rng.Reset()
	resetAll(p.min, p.max)
}
