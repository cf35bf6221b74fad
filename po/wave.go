package po

import (
	"github.com/vsariola/pogen"
	"github.com/vsariola/pogen/wave"
)

type (
	// stepper is the local time base: the event count or the time itself.
	stepper struct {
		mode int
		i    int
	}

	oscillator struct {
		genBase
		step     stepper
		osc      wave.Oscillator
		spc      Generator
		phase    float64
		min, max Generator
	}

	// halfPeriod re-derives its period from secPerCycle only when the local
	// time leaves the current half period window, so the period can change
	// at the zero crossings without discontinuities.
	halfPeriod struct {
		genBase
		step       stepper
		osc        wave.Oscillator
		spc        Generator
		phase      float64
		min, max   Generator
		valid      bool
		lo, hi     float64
		period     float64
		timeShift  float64
		phaseShift float64
	}
)

func init() {
	register(GeneratorLib,
		waveInfo("waveSine", "ws", wave.Sine, "sine"),
		waveInfo("waveCosine", "wc", wave.Cosine, "cosine"),
		waveInfo("waveSawUp", "wsu", wave.SawUp, "upward sawtooth"),
		waveInfo("waveSawDown", "wsd", wave.SawDown, "downward sawtooth"),
		waveInfo("wavePulse", "wp", wave.Pulse, "pulse"),
		waveInfo("waveTriangle", "wt", wave.Triangle, "triangle"),
		waveInfo("wavePowerUp", "wpu", wave.PowerUp, "upward power curve"),
		waveInfo("wavePowerDown", "wpd", wave.PowerDown, "downward power curve"),
		halfPeriodInfo("waveHalfPeriodSine", "whps", wave.Sine, "sine"),
		halfPeriodInfo("waveHalfPeriodCosine", "whpc", wave.Cosine, "cosine"),
		halfPeriodInfo("waveHalfPeriodPulse", "whpp", wave.Pulse, "pulse"),
		halfPeriodInfo("waveHalfPeriodTriangle", "whpt", wave.Triangle, "triangle"),
	)
}

func (s *stepper) local(t float64) float64 {
	if s.mode == 0 {
		return float64(s.i)
	}
	return t
}

func (s *stepper) advance() { s.i++ }

func (s *stepper) reset() { s.i = 0 }

func (s *stepper) String() string { return Steps.Name(s.mode) }

func stepArg() pogen.Arg {
	return arg("stepString", pogen.ArgStr|pogen.ArgInt, mustParse("e"), "event or time")
}

func minMaxArgs(min, max string) []pogen.Arg {
	return []pogen.Arg{
		arg("min", genType, mustParse(min), "lower bound of the output"),
		arg("max", genType, mustParse(max), "upper bound of the output"),
	}
}

func waveInfo(name, acronym string, shape wave.Shape, desc string) *Info {
	args := []pogen.Arg{
		stepArg(),
		arg("secPerCycle", genType, mustParse("30"), "length of a cycle in events or seconds"),
		arg("phase", pogen.ArgNum, mustParse("0"), "phase offset in cycles"),
	}
	power := shape == wave.PowerUp || shape == wave.PowerDown
	if power {
		args = append(args, arg("exponent", pogen.ArgNum, mustParse("2"), "curve exponent"))
	}
	args = append(args, minMaxArgs("0", "1")...)
	return &Info{Name: name, Acronym: acronym, Args: args,
		Doc: "A " + desc + " oscillator scaled between min and max.",
		New: func(b *builder, args []pogen.Value) (PO, error) {
			g := &oscillator{
				genBase: b.genBase(),
				step:    stepper{mode: b.option(args[0], Steps, "step control")},
				osc:     wave.Oscillator{Shape: shape},
				spc:     b.gen(args[1], "secPerCycle"),
				phase:   args[2].Float(),
			}
			if power {
				g.osc.Exponent = args[3].Float()
				args = args[1:]
			}
			g.min, g.max = b.gen(args[3], "min"), b.gen(args[4], "max")
			return b.done(g)
		},
	}
}

func spcFreq(spc float64) float64 {
	if spc == 0 {
		return 0
	}
	return 1 / spc
}

func (g *oscillator) CheckArgs() error { return checkAll(g.spc, g.min, g.max) }

func (g *oscillator) Call(t float64, ctx *pogen.Context) pogen.Value {
	u := g.osc.At(g.step.local(t), spcFreq(g.spc.Call(t, ctx).Float()), g.phase)
	g.step.advance()
	return g.setFloat(pogen.Denorm(u, g.min.Call(t, ctx).Float(), g.max.Call(t, ctx).Float()))
}

func (g *oscillator) Repr() string {
	parts := []string{g.Type(), g.step.String(), sub(g.spc), fmtNum(g.phase)}
	if g.osc.Shape == wave.PowerUp || g.osc.Shape == wave.PowerDown {
		parts = append(parts, fmtNum(g.osc.Exponent))
	}
	return repr(append(parts, sub(g.min), sub(g.max))...)
}

func (g *oscillator) Reset() {
	g.step.reset()
	resetAll(g.spc, g.min, g.max)
}

func halfPeriodInfo(name, acronym string, shape wave.Shape, desc string) *Info {
	args := append([]pogen.Arg{
		stepArg(),
		arg("secPerCycle", genType, mustParse("(bg,rc,(10,20,30))"), "length of a cycle, read at every half period"),
		arg("phase", pogen.ArgNum, mustParse("0"), "phase offset in cycles"),
	}, minMaxArgs("0", "1")...)
	return &Info{Name: name, Acronym: acronym, Args: args,
		Doc: "A " + desc + " oscillator whose period may change every half period, scaled between min and max.",
		New: func(b *builder, args []pogen.Value) (PO, error) {
			return b.done(&halfPeriod{
				genBase: b.genBase(),
				step:    stepper{mode: b.option(args[0], Steps, "step control")},
				osc:     wave.Oscillator{Shape: shape},
				spc:     b.gen(args[1], "secPerCycle"),
				phase:   args[2].Float(),
				min:     b.gen(args[3], "min"),
				max:     b.gen(args[4], "max"),
			})
		},
	}
}

func (g *halfPeriod) CheckArgs() error { return checkAll(g.spc, g.min, g.max) }

func (g *halfPeriod) Call(t float64, ctx *pogen.Context) pogen.Value {
	tl := g.step.local(t)
	if !g.valid || tl < g.lo || tl >= g.hi {
		if g.valid {
			g.phaseShift = 0.5 - g.phaseShift
		}
		g.period = g.spc.Call(t, ctx).Float() * 2
		g.timeShift = -tl
		g.lo, g.hi = tl, tl+g.period*0.5
		g.valid = true
	}
	u := g.osc.At(tl+g.timeShift, spcFreq(g.period), g.phase+g.phaseShift)
	g.step.advance()
	return g.setFloat(pogen.Denorm(u, g.min.Call(t, ctx).Float(), g.max.Call(t, ctx).Float()))
}

func (g *halfPeriod) Repr() string {
	return repr(g.Type(), g.step.String(), sub(g.spc), fmtNum(g.phase), sub(g.min), sub(g.max))
}

func (g *halfPeriod) Reset() {
	g.step.reset()
	g.valid, g.phaseShift = false, 0
	resetAll(g.spc, g.min, g.max)
}
