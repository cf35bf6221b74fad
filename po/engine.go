package po

import (
	"log"

	"github.com/vsariola/pogen"
	"github.com/vsariola/pogen/automata"
	"github.com/vsariola/pogen/markov"
)

type (
	caGen struct {
		genBase
		ca       *automata.Automaton
		rule     Generator
		mutation Generator
		format   automata.TableFormat
		norm     bool
		min, max Generator // nil for caList
		mode     pogen.SelectMode
		selector *pogen.Selector[float64]
	}

	// chain is the state shared by the Markov generators: the transition,
	// the order generator and the recent history.
	chain struct {
		tr      markov.Transition
		order   Generator
		history []pogen.Value
		limit   int
	}

	markovValue struct {
		genBase
		chain
	}

	markovAnalysis struct {
		genBase
		chain
		src      Generator
		count    int
		maxOrder int
	}
)

func init() {
	register(GeneratorLib,
		&Info{Name: "caList", Acronym: "cl",
			Args: []pogen.Arg{
				arg("caSpec", pogen.ArgStr, mustParse("f{f}i{c}x{81}y{120}"), "cellular automaton specification"),
				arg("parameterObject", genType, mustParse("0.25"), "rule"),
				arg("parameterObject", genType, mustParse("0.0005"), "mutation probability"),
				arg("tableExtractionString", pogen.ArgStr, mustParse("sc"), "how values are read from the generations"),
				arg("selectionString", pogen.ArgStr|pogen.ArgInt, mustParse("oc"), "how values are selected"),
			},
			Doc: "Runs a cellular automaton at creation and selects from the raw values read from its generations.",
			New: func(b *builder, args []pogen.Value) (PO, error) { return newCA(b, args, false) }},
		&Info{Name: "caValue", Acronym: "cv",
			Args: append(append([]pogen.Arg{
				arg("caSpec", pogen.ArgStr, mustParse("f{s}"), "cellular automaton specification"),
				arg("parameterObject", genType, mustParse("(c,110)"), "rule"),
				arg("parameterObject", genType, mustParse("(c,0)"), "mutation probability"),
				arg("tableExtractionString", pogen.ArgStr, mustParse("sr"), "how values are read from the generations"),
			}, minMaxArgs("0", "1")...),
				arg("selectionString", pogen.ArgStr|pogen.ArgInt, mustParse("oc"), "how values are selected")),
			Doc: "Runs a cellular automaton at creation and selects from the normalized values read from its generations, scaled between min and max.",
			New: func(b *builder, args []pogen.Value) (PO, error) { return newCA(b, args, true) }},
		&Info{Name: "markovValue", Acronym: "mv",
			Args: []pogen.Arg{
				arg("transitionString", pogen.ArgStr, mustParse("a{0.2}b{0.5}c{0.8}d{0}:{a=5|b=4|c=7|d=1}"), "Markov transition specification"),
				arg("parameterObject", genType, mustParse("(c,0)"), "order"),
			},
			Doc: "Generates values with a Markov chain.",
			New: newMarkovValue},
		&Info{Name: "markovGeneratorAnalysis", Acronym: "mga",
			Args: []pogen.Arg{
				arg("parameterObject", genType, mustParse("(ws,e,30,0,0,1)"), "source analysed"),
				arg("valueCount", pogen.ArgInt, mustParse("30"), "number of source values analysed"),
				arg("maxAnalysisOrder", pogen.ArgInt, mustParse("2"), "highest order analysed"),
				arg("parameterObject", genType, mustParse("(mv,a{1}b{0}c{2}:{a=10|b=1|c=2},(c,0))"), "order"),
			},
			Doc: "Generates values with a Markov chain built by analysing the values of a generator.",
			New: newMarkovAnalysis},
	)
}

func newCA(b *builder, args []pogen.Value, norm bool) (PO, error) {
	g := &caGen{
		genBase:  b.genBase(),
		rule:     b.gen(args[1], "rule"),
		mutation: b.gen(args[2], "mutation"),
		norm:     norm,
	}
	format, err := automata.ParseTableFormat(args[3])
	if err != nil {
		b.fail(err)
	} else if format.Reduction == automata.Whole {
		b.failf("table extraction string must name a flat or reduced format.")
	}
	g.format = format
	sel := args[4]
	if norm {
		g.min, g.max, sel = b.gen(args[4], "min"), b.gen(args[5], "max"), args[6]
	}
	g.mode = b.selectMode(sel)
	if b.err != nil {
		return b.done(nil)
	}
	g.ca, err = automata.New(args[0].Str(), g.rule.Call(0, nil).Float(), g.mutation.Call(0, nil).Float(), g.rng)
	if err != nil {
		b.failf("%v.", err)
		return b.done(nil)
	}
	spec := g.ca.Spec()
	for i := 1; i < spec.Generations(); i++ {
		t := float64(i)
		g.ca.Gen(1, g.rule.Call(t, nil).Float(), g.mutation.Call(t, nil).Float())
	}
	values := g.ca.Table().ExtractFlat(g.format, norm, 0, -1, spec.C, spec.W)
	g.selector = pogen.NewSelector(values, g.mode, g.rng)
	return b.done(g)
}

func (g *caGen) CheckArgs() error {
	if g.selector.Len() == 0 {
		return pogen.Errorf("cellular automaton produced no values.")
	}
	return checkAll(g.rule, g.mutation, g.min, g.max)
}

// Automaton returns the automaton the values were read from.
func (g *caGen) Automaton() *automata.Automaton { return g.ca }

func (g *caGen) Call(t float64, ctx *pogen.Context) pogen.Value {
	v := g.selector.MustNext()
	if g.norm {
		v = pogen.Denorm(v, g.min.Call(t, ctx).Float(), g.max.Call(t, ctx).Float())
	}
	return g.setFloat(v)
}

func (g *caGen) Repr() string {
	parts := []string{g.Type(), g.ca.Spec().String(), sub(g.rule), sub(g.mutation), g.format.String()}
	if g.norm {
		parts = append(parts, sub(g.min), sub(g.max))
	}
	return repr(append(parts, g.mode.String())...)
}

func (g *caGen) Reset() {
	g.selector.Reset()
	resetAll(g.min, g.max)
}

func (c *chain) next(t float64, ctx *pogen.Context, rng *pogen.Source) pogen.Value {
	order := c.order.Call(t, ctx).Float()
	v := c.tr.Next(rng.Float64(), c.history, order, true, rng)
	c.history = append(c.history, v)
	if len(c.history) > c.limit {
		c.history = c.history[len(c.history)-c.limit:]
	}
	return v
}

func (c *chain) output() OutputFormat {
	for _, v := range c.tr.Values() {
		if !v.IsNum() {
			return Str
		}
	}
	return Num
}

func (c *chain) reset() {
	c.history = nil
	resetAll(c.order)
}

func newMarkovValue(b *builder, args []pogen.Value) (PO, error) {
	g := &markovValue{genBase: b.genBase(), chain: chain{order: b.gen(args[1], "order"), limit: b.f.markovLimit()}}
	if err := g.tr.LoadTransition(args[0].Str()); err != nil {
		b.failf("Markov transition creation failed: %v", err)
	}
	return b.done(g)
}

func (g *markovValue) CheckArgs() error { return checkAll(g.order) }

func (g *markovValue) Call(t float64, ctx *pogen.Context) pogen.Value {
	return g.set(g.next(t, ctx, g.rng))
}

func (g *markovValue) Output() OutputFormat { return g.output() }

func (g *markovValue) Repr() string {
	return repr(g.Type(), pogen.NewString(g.tr.String()).String(), sub(g.order))
}

func (g *markovValue) Reset() {
	g.rng.Reset()
	g.reset()
}

// Transition returns the transition the values are generated with.
func (g *markovValue) Transition() *markov.Transition { return &g.tr }

func newMarkovAnalysis(b *builder, args []pogen.Value) (PO, error) {
	g := &markovAnalysis{
		genBase:  b.genBase(),
		chain:    chain{order: b.gen(args[3], "order"), limit: b.f.markovLimit()},
		src:      b.gen(args[0], "source"),
		count:    args[1].Int(),
		maxOrder: args[2].Int(),
	}
	if b.err != nil || g.count <= 0 || g.maxOrder <= 0 || g.maxOrder > g.limit {
		// CheckArgs reports the bad counts
		return b.done(g)
	}
	if err := g.analyse(); err != nil {
		b.failf("Markov analysis failed: %v", err)
	}
	return b.done(g)
}

func (g *markovAnalysis) analyse() error {
	values := make([]pogen.Value, g.count)
	for i := range values {
		values[i] = g.src.Call(float64(i), nil)
	}
	return g.tr.LoadList(values, g.maxOrder)
}

func (g *markovAnalysis) CheckArgs() error {
	switch {
	case g.count <= 0:
		return pogen.Errorf("valueCount error: must be greater than zero.")
	case g.maxOrder <= 0:
		return pogen.Errorf("maxAnalysisOrder error: must be greater than zero.")
	case g.maxOrder > g.limit:
		return pogen.Errorf("maxAnalysisOrder error: analysis order cannot exceed %d.", g.limit)
	}
	return checkAll(g.src, g.order)
}

func (g *markovAnalysis) Call(t float64, ctx *pogen.Context) pogen.Value {
	return g.set(g.next(t, ctx, g.rng))
}

func (g *markovAnalysis) Output() OutputFormat { return g.output() }

func (g *markovAnalysis) Repr() string {
	return repr(g.Type(), sub(g.src), fmtNum(float64(g.count)), fmtNum(float64(g.maxOrder)), sub(g.order))
}

func (g *markovAnalysis) Reset() {
	g.rng.Reset()
	g.reset()
	g.src.Reset()
	if err := g.analyse(); err != nil {
		log.Printf("markovGeneratorAnalysis: %v", err)
	}
}

// Transition returns the transition built by the analysis.
func (g *markovAnalysis) Transition() *markov.Transition { return &g.tr }
