package po

import (
	"math"

	"github.com/vsariola/pogen"
)

type (
	constant struct {
		genBase
		value pogen.Value
	}

	staticRange struct {
		genBase
		start, end float64
	}

	cyclicGen struct {
		genBase
		dirSrc, dir   int
		min, max, inc float64
		cycle         float64
	}

	basketGen struct {
		genBase
		mode     pogen.SelectMode
		values   []pogen.Value
		selector *pogen.Selector[pogen.Value]
	}

	basketFill struct {
		genBase
		mode     pogen.SelectMode
		fill     Generator
		count    int
		selector *pogen.Selector[pogen.Value]
	}

	basketFillSelect struct {
		genBase
		fill   Generator
		count  int
		basket []pogen.Value
		sel    Generator
	}

	basketSelect struct {
		genBase
		values []pogen.Value
		sel    Generator
	}

	typeFormat struct {
		genBase
		format int
		src    Generator
	}

	accumulator struct {
		genBase
		init  float64
		src   Generator
		value float64
		first bool
	}

	fibonacciSeries struct {
		genBase
		start, length int
		min, max      Generator
		mode          pogen.SelectMode
		selector      *pogen.Selector[float64]
	}

	operator struct {
		genBase
		a, b Generator
		op   func(a, b float64) float64
	}

	oneOver struct {
		genBase
		src Generator
	}
)

const (
	dirUpDown = iota
	dirDownUp
	dirUp
	dirDown
)

// genType is accepted where a generator sub-parameter is expected; a number
// means a constant.
const genType = pogen.ArgNum | pogen.ArgList

func init() {
	register(GeneratorLib,
		&Info{Name: "constant", Acronym: "c",
			Args: []pogen.Arg{arg("value", pogen.ArgNum|pogen.ArgStr, mustParse("0"), "the value returned on every call")},
			Doc:  "Returns a constant value.",
			New:  newConstant},
		&Info{Name: "staticRange", Acronym: "sr",
			Args: []pogen.Arg{arg("timeRange", pogen.ArgList, mustParse("(0,20)"), "start and end time")},
			Doc:  "Returns a fixed time range as a list of two numbers.",
			New:  newStaticRange},
		&Info{Name: "cyclicGen", Acronym: "cg",
			Args: []pogen.Arg{
				arg("directionString", pogen.ArgStr|pogen.ArgInt, mustParse("ud"), "upDown, downUp, up or down"),
				arg("min", pogen.ArgNum, mustParse("0"), "lower bound"),
				arg("max", pogen.ArgNum, mustParse("1"), "upper bound"),
				arg("increment", pogen.ArgNum, mustParse("0.125"), "step size"),
			},
			Doc: "Cycles between min and max by increment, changing direction or wrapping at the bounds.",
			New: newCyclicGen},
		&Info{Name: "basketGen", Acronym: "bg",
			Args: []pogen.Arg{
				arg("selectionString", pogen.ArgStr|pogen.ArgInt, mustParse("rc"), "how values are selected"),
				arg("valueList", pogen.ArgList|pogen.ArgNum, mustParse("(0,0.25,0.25,1)"), "values to select from"),
			},
			Doc: "Selects values from a user supplied list.",
			New: newBasketGen},
		&Info{Name: "basketFill", Acronym: "bf",
			Args: []pogen.Arg{
				arg("selectionString", pogen.ArgStr|pogen.ArgInt, mustParse("oc"), "how values are selected"),
				arg("parameterObject", pogen.ArgList, mustParse("(ru,0,1)"), "source generator"),
				arg("valueCount", pogen.ArgInt, mustParse("10"), "number of values drawn from the source"),
			},
			Doc: "Fills a basket with values of a generator at creation and selects from it.",
			New: newBasketFill},
		&Info{Name: "basketFillSelect", Acronym: "bfs",
			Args: []pogen.Arg{
				arg("parameterObject", pogen.ArgList, mustParse("(ru,0,1)"), "source generator"),
				arg("valueCount", pogen.ArgInt, mustParse("10"), "number of values drawn from the source"),
				arg("selector", genType, mustParse("(rb,0.2,0.2,0,1)"), "unit interval selection generator"),
			},
			Doc: "Fills a basket with values of a generator at creation and selects from it with a unit interval generator.",
			New: newBasketFillSelect},
		&Info{Name: "basketSelect", Acronym: "bs",
			Args: []pogen.Arg{
				arg("valueList", pogen.ArgList|pogen.ArgNum, mustParse("(1,2,3,4,5,6,7,8,9)"), "values to select from"),
				arg("selector", genType, mustParse("(rb,0.2,0.2,(bpl,e,s,((0,0.4),(120,0))),(bpl,e,s,((0,0.6),(120,1))))"), "unit interval selection generator"),
			},
			Doc: "Selects values from a list with a unit interval generator.",
			New: newBasketSelect},
		&Info{Name: "typeFormat", Acronym: "tf",
			Args: []pogen.Arg{
				arg("typeFormatString", pogen.ArgStr, mustParse("sq"), "stringQuote or string"),
				arg("parameterObject", genType, mustParse("(bg,oc,(0,1))"), "source generator"),
			},
			Doc: "Formats the values of a generator as strings, optionally quoted.",
			New: newTypeFormat},
		&Info{Name: "accumulator", Acronym: "a",
			Args: []pogen.Arg{
				arg("initValue", pogen.ArgNum, mustParse("0"), "first value"),
				arg("parameterObject", genType, mustParse("(bg,rc,(1,3,4,7,-11))"), "generator of increments"),
			},
			Doc: "Returns a running sum of the values of a generator, starting from the initial value.",
			New: newAccumulator},
		&Info{Name: "fibonacciSeries", Acronym: "fs",
			Args: []pogen.Arg{
				arg("start", pogen.ArgInt, mustParse("200"), "index of the first term"),
				arg("length", pogen.ArgInt, mustParse("20"), "number of terms; negative reverses"),
				arg("min", genType, mustParse("0"), "lower bound of the output"),
				arg("max", genType, mustParse("1"), "upper bound of the output"),
				arg("selectionString", pogen.ArgStr|pogen.ArgInt, mustParse("oc"), "how terms are selected"),
			},
			Doc: "Selects from a normalized range of the Fibonacci series, scaled between min and max.",
			New: newFibonacciSeries},
		operatorInfo("operatorAdd", "oa", "Adds the values of two generators.", func(a, b float64) float64 { return a + b }),
		operatorInfo("operatorSubtract", "os", "Subtracts the value of the second generator from the first.", func(a, b float64) float64 { return a - b }),
		operatorInfo("operatorMultiply", "om", "Multiplies the values of two generators.", func(a, b float64) float64 { return a * b }),
		operatorInfo("operatorDivide", "od", "Divides the value of the first generator by the second; a zero divisor returns the first value.", func(a, b float64) float64 {
			if b == 0 {
				return a
			}
			return a / b
		}),
		operatorInfo("operatorPower", "op", "Raises the value of the first generator to the power of the second.", math.Pow),
		operatorInfo("operatorCongruence", "oc", "Returns the value of the first generator modulo the second; a zero divisor returns the first value.", floorMod),
		&Info{Name: "oneOver", Acronym: "oo",
			Args: []pogen.Arg{arg("parameterObject", genType, mustParse("(ws,e,30,0,0.5,2)"), "source generator")},
			Doc:  "Returns one divided by the value of a generator; zero returns one.",
			New:  newOneOver},
	)
}

func floorMod(a, b float64) float64 {
	if b == 0 {
		return a
	}
	r := math.Mod(a, b)
	if r != 0 && (r < 0) != (b < 0) {
		r += b
	}
	return r
}

func newConstant(b *builder, args []pogen.Value) (PO, error) {
	return b.done(&constant{genBase: b.genBase(), value: args[0]})
}

func (c *constant) Call(t float64, ctx *pogen.Context) pogen.Value { return c.set(c.value) }

func (c *constant) Output() OutputFormat {
	if c.value.IsString() {
		return Str
	}
	return Num
}

func (c *constant) Repr() string { return repr(c.Type(), c.value.String()) }

func (c *constant) Reset() {}

func newStaticRange(b *builder, args []pogen.Value) (PO, error) {
	r, ok := args[0].FloatSlice()
	if !ok || len(r) != 2 {
		b.failf("time range values must be numbers.")
		return b.done(nil)
	}
	return b.done(&staticRange{genBase: b.genBase(), start: r[0], end: r[1]})
}

func (s *staticRange) CheckArgs() error {
	switch {
	case s.start == s.end:
		return pogen.Errorf("range error: start and end times cannot be the same value.")
	case s.start > s.end:
		return pogen.Errorf("range error: start time must be before end time.")
	case s.start < 0 || s.end < 0:
		return pogen.Errorf("range error: start and end times cannot be negative.")
	}
	return nil
}

func (s *staticRange) Call(t float64, ctx *pogen.Context) pogen.Value {
	return s.set(pogen.NewList(pogen.NewNumber(s.start), pogen.NewNumber(s.end)))
}

func (s *staticRange) Output() OutputFormat { return List }

func (s *staticRange) Repr() string {
	return repr(s.Type(), "("+fmtNum(s.start)+","+fmtNum(s.end)+")")
}

func (s *staticRange) Reset() {}

func newCyclicGen(b *builder, args []pogen.Value) (PO, error) {
	dir := b.option(args[0], Directions, "direction name")
	g := &cyclicGen{genBase: b.genBase(), dirSrc: dir, min: args[1].Float(), max: args[2].Float(), inc: args[3].Float()}
	g.Reset()
	return b.done(g)
}

func (c *cyclicGen) CheckArgs() error {
	if c.min > c.max {
		return pogen.Errorf("range error: minimum is larger than maximum.")
	}
	if c.inc < 0 || c.inc > math.Abs(c.max-c.min) {
		return pogen.Errorf("increment error: must fit within range.")
	}
	return nil
}

func (c *cyclicGen) Call(t float64, ctx *pogen.Context) pogen.Value {
	switch c.dir {
	case dirUpDown:
		c.cycle += c.inc
		if c.cycle > c.max {
			c.dir, c.cycle = dirDownUp, c.max
		}
	case dirDownUp:
		c.cycle -= c.inc
		if c.cycle < c.min {
			c.dir, c.cycle = dirUpDown, c.min
		}
	case dirUp:
		if c.cycle+c.inc > c.max {
			c.cycle = c.min
		} else {
			c.cycle += c.inc
		}
	case dirDown:
		if c.cycle-c.inc < c.min {
			c.cycle = c.max
		} else {
			c.cycle -= c.inc
		}
	}
	return c.setFloat(c.cycle)
}

func (c *cyclicGen) Repr() string {
	return repr(c.Type(), Directions.Name(c.dirSrc), fmtNum(c.min), fmtNum(c.max), fmtNum(c.inc))
}

func (c *cyclicGen) Reset() {
	c.dir, c.cycle = c.dirSrc, c.min
}

// valueList returns the elements of a list, or a single value as a list.
func valueList(v pogen.Value) []pogen.Value {
	if v.IsList() {
		return v.List()
	}
	return []pogen.Value{v}
}

func newBasketGen(b *builder, args []pogen.Value) (PO, error) {
	g := &basketGen{genBase: b.genBase(), mode: b.selectMode(args[0]), values: valueList(args[1])}
	g.selector = pogen.NewSelector(g.values, g.mode, g.rng)
	return b.done(g)
}

func (g *basketGen) CheckArgs() error {
	if len(g.values) == 0 {
		return pogen.Errorf("list must have more than 0 items.")
	}
	return nil
}

func (g *basketGen) Call(t float64, ctx *pogen.Context) pogen.Value {
	v, _ := g.selector.Next()
	return g.set(v)
}

func (g *basketGen) Output() OutputFormat { return outputOf(g.values) }

// outputOf is Str if all of the values are strings.
func outputOf(values []pogen.Value) OutputFormat {
	for _, v := range values {
		if !v.IsString() {
			return Num
		}
	}
	if len(values) == 0 {
		return Num
	}
	return Str
}

func (g *basketGen) Repr() string {
	return repr(g.Type(), g.mode.String(), pogen.NewList(g.values...).String())
}

func (g *basketGen) Reset() {
	g.rng.Reset()
	g.selector.Reset()
}

// fillBasket calls the generator at event indexes 0 to count-1. A count of
// zero is corrected to one.
func fillBasket(fill Generator, count int) (int, []pogen.Value) {
	count = abs(count)
	if count == 0 {
		count = 1
	}
	basket := make([]pogen.Value, count)
	for i := range basket {
		basket[i] = fill.Call(float64(i), nil)
	}
	return count, basket
}

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}

func newBasketFill(b *builder, args []pogen.Value) (PO, error) {
	g := &basketFill{genBase: b.genBase(), mode: b.selectMode(args[0]), fill: b.gen(args[1], "source")}
	if b.err != nil {
		return b.done(nil)
	}
	var basket []pogen.Value
	g.count, basket = fillBasket(g.fill, args[2].Int())
	g.selector = pogen.NewSelector(basket, g.mode, g.rng)
	return b.done(g)
}

func (g *basketFill) CheckArgs() error { return checkAll(g.fill) }

func (g *basketFill) Call(t float64, ctx *pogen.Context) pogen.Value {
	v, _ := g.selector.Next()
	return g.set(v)
}

func (g *basketFill) Output() OutputFormat { return g.fill.Output() }

func (g *basketFill) Repr() string {
	return repr(g.Type(), g.mode.String(), sub(g.fill), fmtNum(float64(g.count)))
}

func (g *basketFill) Reset() {
	g.rng.Reset()
	g.selector.Reset()
	g.fill.Reset()
}

func newBasketFillSelect(b *builder, args []pogen.Value) (PO, error) {
	g := &basketFillSelect{genBase: b.genBase(), fill: b.gen(args[0], "source")}
	if b.err != nil {
		return b.done(nil)
	}
	g.count, g.basket = fillBasket(g.fill, args[1].Int())
	g.sel = b.gen(args[2], "selection")
	return b.done(g)
}

func (g *basketFillSelect) CheckArgs() error { return checkAll(g.fill, g.sel) }

func (g *basketFillSelect) Call(t float64, ctx *pogen.Context) pogen.Value {
	u := pogen.LimitUnit(g.sel.Call(t, ctx).Float())
	return g.set(g.basket[pogen.UnitBoundaryPos(u, pogen.UnitBoundaryEqual(len(g.basket)))])
}

func (g *basketFillSelect) Output() OutputFormat { return g.fill.Output() }

func (g *basketFillSelect) Repr() string {
	return repr(g.Type(), sub(g.fill), fmtNum(float64(g.count)), sub(g.sel))
}

func (g *basketFillSelect) Reset() { resetAll(g.fill, g.sel) }

func newBasketSelect(b *builder, args []pogen.Value) (PO, error) {
	return b.done(&basketSelect{genBase: b.genBase(), values: valueList(args[0]), sel: b.gen(args[1], "selection")})
}

func (g *basketSelect) CheckArgs() error {
	if len(g.values) == 0 {
		return pogen.Errorf("list must have more than 0 items.")
	}
	return checkAll(g.sel)
}

func (g *basketSelect) Call(t float64, ctx *pogen.Context) pogen.Value {
	u := pogen.LimitUnit(g.sel.Call(t, ctx).Float())
	return g.set(g.values[pogen.UnitBoundaryPos(u, pogen.UnitBoundaryEqual(len(g.values)))])
}

func (g *basketSelect) Output() OutputFormat { return outputOf(g.values) }

func (g *basketSelect) Repr() string {
	return repr(g.Type(), pogen.NewList(g.values...).String(), sub(g.sel))
}

func (g *basketSelect) Reset() { resetAll(g.sel) }

func newTypeFormat(b *builder, args []pogen.Value) (PO, error) {
	return b.done(&typeFormat{
		genBase: b.genBase(),
		format:  b.option(args[0], TypeFormats, "format"),
		src:     b.gen(args[1], "source"),
	})
}

func (g *typeFormat) CheckArgs() error { return checkAll(g.src) }

func (g *typeFormat) Call(t float64, ctx *pogen.Context) pogen.Value {
	s := g.src.Call(t, ctx).Str()
	if g.format == 0 {
		s = `"` + s + `"`
	}
	return g.set(pogen.NewString(s))
}

func (g *typeFormat) Output() OutputFormat { return Str }

func (g *typeFormat) Repr() string {
	return repr(g.Type(), TypeFormats.Name(g.format), sub(g.src))
}

func (g *typeFormat) Reset() { resetAll(g.src) }

func newAccumulator(b *builder, args []pogen.Value) (PO, error) {
	g := &accumulator{genBase: b.genBase(), init: args[0].Float(), src: b.gen(args[1], "source")}
	g.value, g.first = g.init, true
	return b.done(g)
}

func (g *accumulator) CheckArgs() error { return checkAll(g.src) }

func (g *accumulator) Call(t float64, ctx *pogen.Context) pogen.Value {
	if g.first {
		g.first = false
	} else {
		g.value += g.src.Call(t, ctx).Float()
	}
	return g.setFloat(g.value)
}

func (g *accumulator) Repr() string {
	return repr(g.Type(), fmtNum(g.init), sub(g.src))
}

func (g *accumulator) Reset() {
	g.value, g.first = g.init, true
	g.src.Reset()
}

// fibonacci returns the terms i to j-1 of the Fibonacci series, the term 0
// being 1.
func fibonacci(i, j int) []float64 {
	var ret []float64
	a, b := 1.0, 1.0
	for k := 0; k < j; k++ {
		if k >= i {
			ret = append(ret, a)
		}
		a, b = b, a+b
	}
	return ret
}

func newFibonacciSeries(b *builder, args []pogen.Value) (PO, error) {
	g := &fibonacciSeries{
		genBase: b.genBase(),
		start:   args[0].Int(),
		length:  args[1].Int(),
		min:     b.gen(args[2], "min"),
		max:     b.gen(args[3], "max"),
		mode:    b.selectMode(args[4]),
	}
	norm := pogen.UnitNormRange(fibonacci(g.start, g.start+abs(g.length)))
	if g.length < 0 {
		for i, j := 0, len(norm)-1; i < j; i, j = i+1, j-1 {
			norm[i], norm[j] = norm[j], norm[i]
		}
	}
	g.selector = pogen.NewSelector(norm, g.mode, g.rng)
	return b.done(g)
}

func (g *fibonacciSeries) CheckArgs() error {
	if err := checkAll(g.min, g.max); err != nil {
		return err
	}
	if g.start < 1 {
		return pogen.Errorf("argument error: start value must be 1 or greater.")
	}
	if g.length == 0 {
		return pogen.Errorf("argument error: length must be 1 or greater.")
	}
	return nil
}

func (g *fibonacciSeries) Call(t float64, ctx *pogen.Context) pogen.Value {
	u, _ := g.selector.Next()
	return g.setFloat(pogen.Denorm(u, g.min.Call(t, ctx).Float(), g.max.Call(t, ctx).Float()))
}

func (g *fibonacciSeries) Repr() string {
	return repr(g.Type(), fmtNum(float64(g.start)), fmtNum(float64(g.length)), sub(g.min), sub(g.max), g.mode.String())
}

func (g *fibonacciSeries) Reset() {
	g.rng.Reset()
	g.selector.Reset()
	resetAll(g.min, g.max)
}

func operatorInfo(name, acronym, doc string, op func(a, b float64) float64) *Info {
	return &Info{Name: name, Acronym: acronym, Doc: doc,
		Args: []pogen.Arg{
			arg("parameterObject", genType, mustParse("(ws,e,30,0,0,1)"), "first operand"),
			arg("parameterObject", genType, mustParse("(a,0.5,(c,0.025))"), "second operand"),
		},
		New: func(b *builder, args []pogen.Value) (PO, error) {
			return b.done(&operator{genBase: b.genBase(), a: b.gen(args[0], "first"), b: b.gen(args[1], "second"), op: op})
		},
	}
}

func (o *operator) CheckArgs() error { return checkAll(o.a, o.b) }

func (o *operator) Call(t float64, ctx *pogen.Context) pogen.Value {
	return o.setFloat(o.op(o.a.Call(t, ctx).Float(), o.b.Call(t, ctx).Float()))
}

func (o *operator) Repr() string { return repr(o.Type(), sub(o.a), sub(o.b)) }

func (o *operator) Reset() { resetAll(o.a, o.b) }

func newOneOver(b *builder, args []pogen.Value) (PO, error) {
	return b.done(&oneOver{genBase: b.genBase(), src: b.gen(args[0], "source")})
}

func (g *oneOver) CheckArgs() error { return checkAll(g.src) }

func (g *oneOver) Call(t float64, ctx *pogen.Context) pogen.Value {
	x := g.src.Call(t, ctx).Float()
	if x == 0 {
		return g.setFloat(1)
	}
	return g.setFloat(1 / x)
}

func (g *oneOver) Repr() string { return repr(g.Type(), sub(g.src)) }

func (g *oneOver) Reset() { resetAll(g.src) }
