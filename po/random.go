package po

import (
	"github.com/vsariola/pogen"
	"github.com/vsariola/pogen/random"
)

type (
	randomGen struct {
		genBase
		dist     random.Dist
		min, max Generator
	}

	logisticMap struct {
		genBase
		init, x  float64
		p        Generator
		min, max Generator
	}

	noise struct {
		genBase
		resolution int
		game       *random.GameNoise
		gamma      Generator
		min, max   Generator
	}
)

func init() {
	register(GeneratorLib,
		randomInfo("randomUniform", "ru", random.Uniform, "a uniform distribution"),
		randomInfo("randomLinear", "rl", random.Linear, "a linearly decreasing distribution"),
		randomInfo("randomInverseLinear", "ril", random.InverseLinear, "a linearly increasing distribution"),
		randomInfo("randomTriangular", "rt", random.Triangular, "a triangular distribution"),
		randomInfo("randomInverseTriangular", "rit", random.InverseTriangular, "an inverse triangular distribution"),
		randomInfo("randomExponential", "re", random.Exponential, "an exponential distribution",
			arg("lambda", pogen.ArgNum, mustParse("0.5"), "rate of decay")),
		randomInfo("randomInverseExponential", "rie", random.InverseExponential, "an inverse exponential distribution",
			arg("lambda", pogen.ArgNum, mustParse("0.5"), "rate of decay")),
		randomInfo("randomBilateralExponential", "rbe", random.BilateralExponential, "a bilateral exponential distribution",
			arg("lambda", pogen.ArgNum, mustParse("0.5"), "rate of decay")),
		randomInfo("randomGauss", "rg", random.Gauss, "a Gaussian distribution",
			arg("mu", pogen.ArgNum, mustParse("0.5"), "center"),
			arg("sigma", pogen.ArgNum, mustParse("0.1"), "deviation")),
		randomInfo("randomCauchy", "rc", random.Cauchy, "a Cauchy distribution",
			arg("alpha", pogen.ArgNum, mustParse("0.1"), "spread"),
			arg("mu", pogen.ArgNum, mustParse("0.5"), "center")),
		randomInfo("randomBeta", "rb", random.Beta, "a beta distribution",
			arg("alpha", pogen.ArgNum, mustParse("0.5"), "weight towards zero"),
			arg("beta", pogen.ArgNum, mustParse("0.5"), "weight towards one")),
		randomInfo("randomWeibull", "rw", random.Weibull, "a Weibull distribution",
			arg("alpha", pogen.ArgNum, mustParse("0.5"), "scale"),
			arg("beta", pogen.ArgNum, mustParse("2"), "shape")),
		&Info{Name: "logisticMap", Acronym: "lm",
			Args: append([]pogen.Arg{
				arg("initValue", pogen.ArgNum, mustParse("0.5"), "starting value in (0, 1]"),
				arg("parameterObject", genType|pogen.ArgStr, mustParse("(wt,e,90,0,2.75,4)"), "growth rate, or bi, quad, chaos or periodic01"),
			}, minMaxArgs("0", "1")...),
			Doc: "Iterates the logistic map x = p*x*(1-x), scaled between min and max.",
			New: newLogisticMap},
		&Info{Name: "noise", Acronym: "n",
			Args: append([]pogen.Arg{
				arg("resolution", pogen.ArgInt, mustParse("100"), "number of distinct moves of the dice game"),
				arg("parameterObject", genType|pogen.ArgStr, mustParse("pink"), "gamma, or white, pink, brown or black"),
			}, minMaxArgs("0", "1")...),
			Doc: "Fractional noise with a 1/f^gamma spectrum, scaled between min and max.",
			New: newNoise},
	)
}

func randomInfo(name, acronym string, kind random.Kind, desc string, params ...pogen.Arg) *Info {
	return &Info{Name: name, Acronym: acronym,
		Args: append(params, minMaxArgs("0", "1")...),
		Doc:  "Draws from " + desc + ", scaled between min and max.",
		New: func(b *builder, args []pogen.Value) (PO, error) {
			g := &randomGen{genBase: b.genBase(), dist: random.Dist{Kind: kind}}
			n := kind.Params()
			if n > 0 {
				g.dist.A = args[0].Float()
			}
			if n > 1 {
				g.dist.B = args[1].Float()
			}
			g.min, g.max = b.gen(args[n], "min"), b.gen(args[n+1], "max")
			return b.done(g)
		},
	}
}

func (g *randomGen) CheckArgs() error {
	switch g.dist.Kind {
	case random.Exponential, random.InverseExponential, random.BilateralExponential:
		if g.dist.A <= 0 {
			return pogen.Errorf("lambda may not be less than or equal to zero.")
		}
	case random.Beta, random.Weibull:
		if g.dist.A <= 0 || g.dist.B <= 0 {
			return pogen.Errorf("alpha and beta may not be less than or equal to zero.")
		}
	}
	return checkAll(g.min, g.max)
}

func (g *randomGen) Call(t float64, ctx *pogen.Context) pogen.Value {
	u := g.dist.Draw(g.rng)
	return g.setFloat(pogen.Denorm(u, g.min.Call(t, ctx).Float(), g.max.Call(t, ctx).Float()))
}

func (g *randomGen) Repr() string {
	parts := []string{g.Type()}
	n := g.dist.Kind.Params()
	if n > 0 {
		parts = append(parts, fmtNum(g.dist.A))
	}
	if n > 1 {
		parts = append(parts, fmtNum(g.dist.B))
	}
	return repr(append(parts, sub(g.min), sub(g.max))...)
}

func (g *randomGen) Reset() {
	g.rng.Reset()
	resetAll(g.min, g.max)
}

// preset creates a generator sub-parameter where a string names a preset
// constant.
func (b *builder) preset(v pogen.Value, opts pogen.Options, values []float64, what string) Generator {
	if v.IsString() {
		i := b.option(v, opts, what)
		if b.err != nil {
			return nil
		}
		return b.gen(pogen.NewFloat(values[i]), what)
	}
	return b.gen(v, what)
}

func newLogisticMap(b *builder, args []pogen.Value) (PO, error) {
	g := &logisticMap{
		genBase: b.genBase(),
		init:    args[0].Float(),
		p:       b.preset(args[1], logisticPresets, logisticRates, "logistic map preset"),
		min:     b.gen(args[2], "min"),
		max:     b.gen(args[3], "max"),
	}
	g.x = g.init
	return b.done(g)
}

func (g *logisticMap) CheckArgs() error {
	if err := checkAll(g.p, g.min, g.max); err != nil {
		return err
	}
	if g.init > 1 || g.init <= 0 {
		return pogen.Errorf("incorrect x init value; value must be between 0 and 1.")
	}
	return nil
}

func (g *logisticMap) Call(t float64, ctx *pogen.Context) pogen.Value {
	p := g.p.Call(t, ctx).Float()
	g.x = p * g.x * (1 - g.x)
	return g.setFloat(pogen.Denorm(g.x, g.min.Call(t, ctx).Float(), g.max.Call(t, ctx).Float()))
}

func (g *logisticMap) Repr() string {
	return repr(g.Type(), fmtNum(g.init), sub(g.p), sub(g.min), sub(g.max))
}

func (g *logisticMap) Reset() {
	g.x = g.init
	resetAll(g.p, g.min, g.max)
}

func newNoise(b *builder, args []pogen.Value) (PO, error) {
	g := &noise{
		genBase:    b.genBase(),
		resolution: abs(args[0].Int()),
		gamma:      b.preset(args[1], noisePresets, []float64{random.White, random.Pink, random.Brown, random.Black}, "noise color"),
		min:        b.gen(args[2], "min"),
		max:        b.gen(args[3], "max"),
	}
	g.game = random.NewGameNoise(g.resolution, g.rng)
	return b.done(g)
}

func (g *noise) CheckArgs() error { return checkAll(g.gamma, g.min, g.max) }

func (g *noise) Call(t float64, ctx *pogen.Context) pogen.Value {
	u := g.game.Step(g.gamma.Call(t, ctx).Float())
	return g.setFloat(pogen.Denorm(u, g.min.Call(t, ctx).Float(), g.max.Call(t, ctx).Float()))
}

func (g *noise) Repr() string {
	return repr(g.Type(), fmtNum(float64(g.resolution)), sub(g.gamma), sub(g.min), sub(g.max))
}

func (g *noise) Reset() {
	g.rng.Reset()
	g.game.Reset()
	resetAll(g.gamma, g.min, g.max)
}
