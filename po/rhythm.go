package po

import (
	"log"
	"math"
	"strings"

	"github.com/vsariola/pogen"
	"github.com/vsariola/pogen/markov"
)

type (
	// Triple is a pulse relative to the beat: Mult beats divided by Div, with
	// an accent and a sustain scalar.
	Triple struct {
		Div, Mult float64
		Acc       float64
		Sus       float64 // sounding time relative to the duration
	}

	rhythmBase struct {
		base
		current   pogen.Pulse
		triple    Triple
		hasTriple bool
	}

	// beat is a buffered rhythm output; pulses with a triple are recomputed
	// with the tempo in effect when they are played.
	beat struct {
		pulse  pogen.Pulse
		triple Triple
		ok     bool
	}

	loop struct {
		rhythmBase
		triples  []Triple
		mode     pogen.SelectMode
		selector *pogen.Selector[Triple]
	}

	binaryAccent struct {
		rhythmBase
		triples []Triple
	}

	convertSecond struct {
		rhythmBase
		dur Generator
	}

	convertSecondTriple struct {
		rhythmBase
		dur, sus, acc Generator
	}

	pulseTriple struct {
		rhythmBase
		div, mult, acc, sus Generator
	}

	markovPulse struct {
		rhythmBase
		chain
		pulses map[string]Triple
	}

	markovRhythm struct {
		rhythmBase
		chain
		src      Rhythm
		count    int
		maxOrder int
		pulses   map[string]Triple
	}

	iterateRhythmGroup struct {
		rhythmBase
		src     Rhythm
		control Generator
		buffer  []beat
		limit   int
	}

	iterateRhythmWindow struct {
		rhythmBase
		srcs     []Rhythm
		count    Generator
		mode     pogen.SelectMode
		selector *pogen.Selector[int]
		buffer   []beat
		limit    int
	}

	iterateRhythmHold struct {
		rhythmBase
		src      Rhythm
		hold     holder[beat]
		mode     pogen.SelectMode
		selector *pogen.Selector[beat]
	}
)

// Durations are the duration letters accepted as pulses, as (div, mult).
var Durations = map[string][2]float64{
	"w": {1, 4}, "h": {1, 2}, "q": {1, 1}, "e": {2, 1}, "s": {4, 1}, "t": {8, 1},
	"tw": {3, 8}, "th": {3, 4}, "tq": {3, 2}, "te": {3, 1}, "ts": {6, 1}, "tt": {12, 1},
	"dw": {1, 6}, "dh": {1, 3}, "dq": {2, 3}, "de": {4, 3}, "ds": {8, 3}, "dt": {16, 3},
}

// Dynamics are the dynamic marks accepted as accents.
var Dynamics = map[string]float64{
	"+": 1, "fff": 0.975, "ff": 0.925, "f": 0.85, "mf": 0.7, "mp": 0.5,
	"p": 0.35, "pp": 0.225, "ppp": 0.075, "o": 0,
}

const defaultPulses = "((4,3,1),(4,3,1),(4,2,0),(8,1,1),(4,2,1),(4,2,1))"

func init() {
	register(RhythmLib,
		&Info{Name: "loop", Acronym: "l",
			Args: []pogen.Arg{
				arg("pulseList", pogen.ArgList, mustParse("((3,1,1),(3,1,1),(8,1,1),(8,1,1),(8,3,1),(3,2,0))"), "pulses as (divisor, multiplier, accent)"),
				arg("selectionString", pogen.ArgStr|pogen.ArgInt, mustParse("oc"), "how pulses are selected"),
			},
			Doc: "Selects pulses from a list.",
			New: newLoop},
		&Info{Name: "binaryAccent", Acronym: "ba",
			Args: []pogen.Arg{
				arg("pulseList", pogen.ArgList, mustParse("((3,1,1),(3,2,1))"), "two pulses"),
			},
			Doc: "Uses the second pulse when the current pitch is the first pitch of the chord, the first pulse otherwise.",
			New: newBinaryAccent},
		&Info{Name: "convertSecond", Acronym: "cs",
			Args: []pogen.Arg{
				arg("parameterObject", genType, mustParse("(ru,0.25,2.5)"), "duration in seconds"),
			},
			Doc: "Uses the values of a generator as durations in seconds.",
			New: newConvertSecond},
		&Info{Name: "convertSecondTriple", Acronym: "cst",
			Args: []pogen.Arg{
				arg("parameterObject", genType, mustParse("(ws,e,30,0,0.25,2.5)"), "duration in seconds"),
				arg("parameterObject", genType, mustParse("(ws,e,60,0.25,0.25,2.5)"), "sustain in seconds"),
				arg("parameterObject", genType, mustParse("(bg,rc,(0,1,1,1))"), "accent between 0 and 1"),
			},
			Doc: "Uses the values of three generators as the duration and sustain in seconds and the accent.",
			New: newConvertSecondTriple},
		&Info{Name: "pulseTriple", Acronym: "pt",
			Args: []pogen.Arg{
				arg("parameterObject", genType, mustParse("(bg,rc,(6,5,4,3))"), "pulse divisor"),
				arg("parameterObject", genType, mustParse("(bg,rc,(1,2,3))"), "pulse multiplier"),
				arg("parameterObject", genType, mustParse("(bg,rc,(1,1,1,0))"), "accent between 0 and 1"),
				arg("parameterObject", genType, mustParse("(ru,0.5,1.5)"), "sustain scalar"),
			},
			Doc: "Builds pulses from divisor, multiplier, accent and sustain generators.",
			New: newPulseTriple},
		&Info{Name: "markovPulse", Acronym: "mp",
			Args: []pogen.Arg{
				arg("transitionString", pogen.ArgStr, mustParse("a{3,1,1}b{2,1,1}c{3,2,0}:{a=3|b=4|c=1}"), "Markov transition of pulses"),
				arg("parameterObject", genType, mustParse("(c,0)"), "order"),
			},
			Doc: "Generates pulses with a Markov chain.",
			New: newMarkovPulse},
		&Info{Name: "markovRhythmAnalysis", Acronym: "mra",
			Args: []pogen.Arg{
				arg("parameterObject", pogen.ArgList, mustParse("(l,"+defaultPulses+",oc)"), "source rhythm analysed"),
				arg("pulseCount", pogen.ArgInt, mustParse("12"), "number of source pulses analysed"),
				arg("maxAnalysisOrder", pogen.ArgInt, mustParse("2"), "highest order analysed"),
				arg("parameterObject", genType, mustParse("(cg,u,0,2,0.25)"), "order"),
			},
			Doc: "Generates pulses with a Markov chain built by analysing the pulses of a rhythm.",
			New: newMarkovRhythm},
		&Info{Name: "iterateRhythmGroup", Acronym: "irg",
			Args: []pogen.Arg{
				arg("parameterObject", pogen.ArgList, mustParse("(l,"+defaultPulses+",oc)"), "source rhythm"),
				arg("parameterObject", genType, mustParse("(bg,rc,(-3,1,-1,5))"), "number of repeats of a pulse, or skipped pulses if negative"),
			},
			Doc: "Repeats or skips pulses of a rhythm.",
			New: newIterateRhythmGroup},
		&Info{Name: "iterateRhythmWindow", Acronym: "irw",
			Args: []pogen.Arg{
				arg("parameterObjectList", pogen.ArgList, mustParse("((l,"+defaultPulses+",oc),(cs,(ru,1.5,4)))"), "rhythms to take pulses from"),
				arg("parameterObject", genType, mustParse("(bg,rc,(-3,6,-1,15))"), "number of pulses to take, or to skip if negative"),
				arg("selectionString", pogen.ArgStr|pogen.ArgInt, mustParse("oc"), "how rhythms are selected"),
			},
			Doc: "Takes or skips a number of pulses from one of several rhythms, selecting a new rhythm when the pulses run out.",
			New: newIterateRhythmWindow},
		&Info{Name: "iterateRhythmHold", Acronym: "irh",
			Args: []pogen.Arg{
				arg("parameterObject", pogen.ArgList, mustParse("(pt,(bg,rc,(4,2)),(bg,oc,(5,4,3,2,1)),(c,1),(ru,0.75,1.25))"), "source rhythm"),
				arg("parameterObject", genType, mustParse("(bg,rc,(2,3,4))"), "number of pulses held"),
				arg("parameterObject", genType, mustParse("(bg,oc,(4,5,6))"), "number of events before the held pulses are refreshed"),
				arg("selectionString", pogen.ArgStr|pogen.ArgInt, mustParse("oc"), "how held pulses are selected"),
			},
			Doc: "Holds a number of pulses of a rhythm and selects from them until refreshed.",
			New: newIterateRhythmHold},
	)
}

// ParseTriple reads a pulse: a number or a dynamic mark is an accent of a
// single beat, a duration letter such as "e" or "dq" a pulse of that length,
// and a list is (divisor, multiplier) or (divisor, multiplier, accent). A
// string holding a list such as "3,1,1" is parsed first.
func ParseTriple(v pogen.Value) (Triple, error) {
	ret := Triple{Div: 1, Mult: 1, Acc: 1, Sus: 1}
	switch {
	case v.IsNum():
		ret.Acc = pogen.LimitUnit(v.Float())
		return ret, nil
	case v.IsString():
		s := strings.ToLower(strings.TrimSpace(v.Str()))
		if d, ok := Durations[s]; ok {
			ret.Div, ret.Mult = d[0], d[1]
			return ret, nil
		}
		if a, ok := Dynamics[s]; ok {
			ret.Acc = a
			return ret, nil
		}
		if s == "" {
			break
		}
		items, err := pogen.Parse(s)
		if err != nil {
			return ret, err
		}
		if items.Len() == 1 && items.Index(0).IsString() {
			break
		}
		if items.Len() == 1 {
			return ParseTriple(items.Index(0))
		}
		return ParseTriple(items)
	case v.IsList():
		items := v.List()
		switch {
		case len(items) == 0:
			break
		case len(items) == 1:
			return ParseTriple(items[0])
		case !items[0].IsNum() || !items[1].IsNum():
			break
		default:
			ret.Div, ret.Mult = math.Abs(items[0].Float()), math.Abs(items[1].Float())
			if ret.Div == 0 || ret.Mult == 0 {
				break
			}
			if len(items) > 2 {
				a, err := ParseTriple(items[2])
				if err != nil || !items[2].IsNum() && !items[2].IsString() {
					break
				}
				ret.Acc = a.Acc
			}
			return ret, nil
		}
	}
	return ret, pogen.Errorf("bad pulse '%s'.", v)
}

func parseTriples(v pogen.Value) ([]Triple, error) {
	ret := make([]Triple, v.Len())
	for i, item := range v.List() {
		tr, err := ParseTriple(item)
		if err != nil {
			return nil, err
		}
		ret[i] = tr
	}
	return ret, nil
}

// Pulse converts the triple to seconds at a tempo.
func (tr Triple) Pulse(bpm float64) pogen.Pulse {
	dur := 60 / bpm / tr.Div * tr.Mult
	return pogen.Pulse{Dur: dur, Sus: dur * tr.Sus, Acc: pogen.LimitUnit(tr.Acc)}
}

// Value returns the triple as a list, leaving out the sustain.
func (tr Triple) Value() pogen.Value {
	return pogen.NewList(pogen.NewNumber(tr.Div), pogen.NewNumber(tr.Mult), pogen.NewNumber(tr.Acc))
}

func (tr Triple) String() string { return tr.Value().String() }

func formatTriples(ts []Triple) string {
	items := make([]pogen.Value, len(ts))
	for i, tr := range ts {
		items[i] = tr.Value()
	}
	return pogen.NewList(items...).String()
}

// tripleOf returns a triple equivalent to a pulse in seconds.
func tripleOf(p pogen.Pulse) Triple {
	sus := 1.0
	if p.Dur != 0 {
		sus = p.Sus / p.Dur
	}
	return Triple{Div: 1, Mult: p.Dur, Acc: p.Acc, Sus: sus}
}

func (b *builder) rhythmBase() rhythmBase {
	return rhythmBase{base: b.base()}
}

// rhythms creates a list of rhythm sub-parameters.
func (b *builder) rhythms(v pogen.Value, what string) []Rhythm {
	if !v.IsList() || v.Len() == 0 {
		b.failf("%s must be a list of parameter objects.", what)
		return nil
	}
	if v.Index(0).IsString() {
		return []Rhythm{b.rhythm(v, what)}
	}
	ret := make([]Rhythm, v.Len())
	for i, item := range v.List() {
		ret[i] = b.rhythm(item, what)
	}
	return ret
}

func (r *rhythmBase) Current() pogen.Pulse { return r.current }

func (r *rhythmBase) setTriple(tr Triple, ctx *pogen.Context) pogen.Pulse {
	r.triple, r.hasTriple = tr, true
	r.current = tr.Pulse(ctx.Tempo())
	return r.current
}

func (r *rhythmBase) setPulse(p pogen.Pulse) pogen.Pulse {
	r.hasTriple = false
	r.current = p
	return p
}

func (r *rhythmBase) setBeat(b beat, ctx *pogen.Context) pogen.Pulse {
	if b.ok {
		return r.setTriple(b.triple, ctx)
	}
	return r.setPulse(b.pulse)
}

func (r *rhythmBase) lastTriple() (Triple, bool) { return r.triple, r.hasTriple }

// nextBeat calls a rhythm and keeps its triple, if it has one.
func nextBeat(r Rhythm, t float64, ctx *pogen.Context) beat {
	b := beat{pulse: r.Pulse(t, ctx)}
	if tr, ok := r.(interface{ lastTriple() (Triple, bool) }); ok {
		b.triple, b.ok = tr.lastTriple()
	}
	return b
}

func newLoop(b *builder, args []pogen.Value) (PO, error) {
	triples, err := parseTriples(args[0])
	if err != nil {
		b.failf("enter a list of pulse objects.")
	}
	r := &loop{rhythmBase: b.rhythmBase(), triples: triples, mode: b.selectMode(args[1])}
	if b.err != nil {
		return b.done(nil)
	}
	r.selector = pogen.NewSelector(triples, r.mode, r.rng)
	return b.done(r)
}

func (r *loop) CheckArgs() error {
	if len(r.triples) < 1 {
		return pogen.Errorf("list error: there must be rhythms in this list.")
	}
	return nil
}

func (r *loop) Pulse(t float64, ctx *pogen.Context) pogen.Pulse {
	return r.setTriple(r.selector.MustNext(), ctx)
}

func (r *loop) Repr() string { return repr(r.Type(), formatTriples(r.triples), r.mode.String()) }

func (r *loop) Reset() {
	r.rng.Reset()
	r.selector.Reset()
}

func newBinaryAccent(b *builder, args []pogen.Value) (PO, error) {
	triples, err := parseTriples(args[0])
	if err != nil || len(triples) != 2 {
		b.failf("enter a list of two pulse objects.")
	}
	return b.done(&binaryAccent{rhythmBase: b.rhythmBase(), triples: triples})
}

func (r *binaryAccent) Pulse(t float64, ctx *pogen.Context) pogen.Pulse {
	pitch, ok := ctx.CurrentPitch()
	if chord := ctx.CurrentChord(); ok && len(chord) > 0 && pitch == chord[0] {
		return r.setTriple(r.triples[1], ctx)
	}
	return r.setTriple(r.triples[0], ctx)
}

func (r *binaryAccent) Repr() string { return repr(r.Type(), formatTriples(r.triples)) }

func (r *binaryAccent) Reset() {}

func newConvertSecond(b *builder, args []pogen.Value) (PO, error) {
	return b.done(&convertSecond{rhythmBase: b.rhythmBase(), dur: b.gen(args[0], "duration")})
}

func (r *convertSecond) CheckArgs() error { return checkAll(r.dur) }

func (r *convertSecond) Pulse(t float64, ctx *pogen.Context) pogen.Pulse {
	dur := r.dur.Call(t, ctx).Float()
	return r.setPulse(pogen.Pulse{Dur: dur, Sus: 0.999 * dur, Acc: 1})
}

func (r *convertSecond) Repr() string { return repr(r.Type(), sub(r.dur)) }

func (r *convertSecond) Reset() { resetAll(r.dur) }

func newConvertSecondTriple(b *builder, args []pogen.Value) (PO, error) {
	return b.done(&convertSecondTriple{
		rhythmBase: b.rhythmBase(),
		dur:        b.gen(args[0], "duration"),
		sus:        b.gen(args[1], "sustain"),
		acc:        b.gen(args[2], "accent"),
	})
}

func (r *convertSecondTriple) CheckArgs() error { return checkAll(r.dur, r.sus, r.acc) }

func (r *convertSecondTriple) Pulse(t float64, ctx *pogen.Context) pogen.Pulse {
	return r.setPulse(pogen.Pulse{
		Dur: math.Abs(r.dur.Call(t, ctx).Float()),
		Sus: math.Abs(r.sus.Call(t, ctx).Float()),
		Acc: pogen.LimitUnit(math.Abs(r.acc.Call(t, ctx).Float())),
	})
}

func (r *convertSecondTriple) Repr() string {
	return repr(r.Type(), sub(r.dur), sub(r.sus), sub(r.acc))
}

func (r *convertSecondTriple) Reset() { resetAll(r.dur, r.sus, r.acc) }

func newPulseTriple(b *builder, args []pogen.Value) (PO, error) {
	return b.done(&pulseTriple{
		rhythmBase: b.rhythmBase(),
		div:        b.gen(args[0], "divisor"),
		mult:       b.gen(args[1], "multiplier"),
		acc:        b.gen(args[2], "accent"),
		sus:        b.gen(args[3], "sustain"),
	})
}

func (r *pulseTriple) CheckArgs() error { return checkAll(r.div, r.mult, r.acc, r.sus) }

func (r *pulseTriple) Pulse(t float64, ctx *pogen.Context) pogen.Pulse {
	weighted := func(g Generator) float64 {
		n := abs(r.rng.RoundWeighted(g.Call(t, ctx).Float()))
		if n == 0 {
			return 1
		}
		return float64(n)
	}
	tr := Triple{Div: weighted(r.div), Mult: weighted(r.mult)}
	tr.Acc = pogen.LimitUnit(math.Abs(r.acc.Call(t, ctx).Float()))
	if tr.Sus = math.Abs(r.sus.Call(t, ctx).Float()); tr.Sus == 0 {
		tr.Sus = 1
	}
	return r.setTriple(tr, ctx)
}

func (r *pulseTriple) Repr() string {
	return repr(r.Type(), sub(r.div), sub(r.mult), sub(r.acc), sub(r.sus))
}

func (r *pulseTriple) Reset() {
	r.rng.Reset()
	resetAll(r.div, r.mult, r.acc, r.sus)
}

// symbolPulses parses the symbol values of a transition as pulses.
func symbolPulses(tr *markov.Transition) (map[string]Triple, error) {
	ret := map[string]Triple{}
	for _, v := range tr.Values() {
		p, err := ParseTriple(v)
		if err != nil {
			return nil, err
		}
		ret[v.String()] = p
	}
	return ret, nil
}

func newMarkovPulse(b *builder, args []pogen.Value) (PO, error) {
	r := &markovPulse{rhythmBase: b.rhythmBase(), chain: chain{order: b.gen(args[1], "order"), limit: b.f.markovLimit()}}
	if b.err != nil {
		return b.done(nil)
	}
	if err := r.tr.LoadTransition(args[0].Str()); err != nil {
		b.failf("Markov transition creation failed: %v", err)
		return b.done(nil)
	}
	var err error
	if r.pulses, err = symbolPulses(&r.tr); err != nil {
		b.failf("failed pulse object definition: %v", err)
	}
	return b.done(r)
}

func (r *markovPulse) CheckArgs() error { return checkAll(r.order) }

func (r *markovPulse) Pulse(t float64, ctx *pogen.Context) pogen.Pulse {
	v := r.next(t, ctx, r.rng)
	return r.setTriple(r.pulses[v.String()], ctx)
}

func (r *markovPulse) Repr() string {
	return repr(r.Type(), pogen.NewString(r.tr.String()).String(), sub(r.order))
}

func (r *markovPulse) Reset() {
	r.rng.Reset()
	r.reset()
}

func newMarkovRhythm(b *builder, args []pogen.Value) (PO, error) {
	r := &markovRhythm{
		rhythmBase: b.rhythmBase(),
		chain:      chain{order: b.gen(args[3], "order"), limit: b.f.markovLimit()},
		src:        b.rhythm(args[0], "source"),
		count:      args[1].Int(),
		maxOrder:   args[2].Int(),
	}
	if b.err != nil || r.count <= 0 || r.maxOrder <= 0 || r.maxOrder > r.limit {
		return b.done(r)
	}
	if err := r.analyse(); err != nil {
		b.failf("Markov analysis failed: %v", err)
	}
	return b.done(r)
}

// analyse reads the source pulses at 60 BPM, so that pulses given in seconds
// become single beats of that many seconds.
func (r *markovRhythm) analyse() error {
	ctx := &pogen.Context{BPM: 60}
	values := make([]pogen.Value, r.count)
	r.pulses = map[string]Triple{}
	for i := range values {
		b := nextBeat(r.src, float64(i), ctx)
		tr := b.triple
		if !b.ok {
			tr = tripleOf(b.pulse)
		}
		tr.Sus = 1
		values[i] = tr.Value()
		r.pulses[values[i].String()] = tr
	}
	return r.tr.LoadList(values, r.maxOrder)
}

func (r *markovRhythm) CheckArgs() error {
	switch {
	case r.count <= 0:
		return pogen.Errorf("valueCount error: must be greater than zero.")
	case r.maxOrder <= 0:
		return pogen.Errorf("maxAnalysisOrder error: must be greater than zero.")
	case r.maxOrder > r.limit:
		return pogen.Errorf("maxAnalysisOrder error: analysis order cannot exceed %d.", r.limit)
	}
	return checkAll(r.src, r.order)
}

func (r *markovRhythm) Pulse(t float64, ctx *pogen.Context) pogen.Pulse {
	v := r.next(t, ctx, r.rng)
	return r.setTriple(r.pulses[v.String()], ctx)
}

func (r *markovRhythm) Repr() string {
	return repr(r.Type(), sub(r.src), fmtNum(float64(r.count)), fmtNum(float64(r.maxOrder)), sub(r.order))
}

func (r *markovRhythm) Reset() {
	r.rng.Reset()
	r.reset()
	r.src.Reset()
	if err := r.analyse(); err != nil {
		log.Printf("markovRhythmAnalysis: %v", err)
	}
}

func newIterateRhythmGroup(b *builder, args []pogen.Value) (PO, error) {
	return b.done(&iterateRhythmGroup{
		rhythmBase: b.rhythmBase(),
		src:        b.rhythm(args[0], "source"),
		control:    b.gen(args[1], "control"),
		limit:      b.f.failLimit(),
	})
}

func (r *iterateRhythmGroup) CheckArgs() error { return checkAll(r.src, r.control) }

func (r *iterateRhythmGroup) Pulse(t float64, ctx *pogen.Context) pogen.Pulse {
	if len(r.buffer) == 0 {
		r.buffer = refill(r.Type(), r.limit, func() (int, func() beat) {
			q := round(r.control.Call(t, ctx).Float())
			if q > 0 {
				b := nextBeat(r.src, t, ctx)
				return q, func() beat { return b }
			}
			return q, func() beat { return nextBeat(r.src, t, ctx) }
		})
	}
	b := r.buffer[0]
	r.buffer = r.buffer[1:]
	return r.setBeat(b, ctx)
}

func (r *iterateRhythmGroup) Repr() string { return repr(r.Type(), sub(r.src), sub(r.control)) }

func (r *iterateRhythmGroup) Reset() {
	r.buffer = nil
	resetAll(r.src, r.control)
}

func newIterateRhythmWindow(b *builder, args []pogen.Value) (PO, error) {
	r := &iterateRhythmWindow{
		rhythmBase: b.rhythmBase(),
		srcs:       b.rhythms(args[0], "source"),
		count:      b.gen(args[1], "count"),
		mode:       b.selectMode(args[2]),
		limit:      b.f.failLimit(),
	}
	r.selector = pogen.NewSelector(indexes(len(r.srcs)), r.mode, r.rng)
	return b.done(r)
}

func (r *iterateRhythmWindow) CheckArgs() error {
	return checkAll(append(asPOs(r.srcs), r.count)...)
}

func (r *iterateRhythmWindow) Pulse(t float64, ctx *pogen.Context) pogen.Pulse {
	if len(r.buffer) == 0 {
		r.buffer = refill(r.Type(), r.limit, func() (int, func() beat) {
			src := r.srcs[r.selector.MustNext()]
			q := round(r.count.Call(t, ctx).Float())
			return q, func() beat { return nextBeat(src, t, ctx) }
		})
	}
	b := r.buffer[0]
	r.buffer = r.buffer[1:]
	return r.setBeat(b, ctx)
}

func (r *iterateRhythmWindow) Repr() string {
	return repr(r.Type(), subList(r.srcs), sub(r.count), r.mode.String())
}

func (r *iterateRhythmWindow) Reset() {
	r.rng.Reset()
	r.selector.Reset()
	r.buffer = nil
	resetAll(append(asPOs(r.srcs), r.count)...)
}

func newIterateRhythmHold(b *builder, args []pogen.Value) (PO, error) {
	return b.done(&iterateRhythmHold{
		rhythmBase: b.rhythmBase(),
		src:        b.rhythm(args[0], "source"),
		hold:       holder[beat]{size: b.gen(args[1], "size"), refresh: b.gen(args[2], "refresh"), failLimit: b.f.failLimit()},
		mode:       b.selectMode(args[3]),
	})
}

func (r *iterateRhythmHold) CheckArgs() error {
	return checkAll(r.src, r.hold.size, r.hold.refresh)
}

func (r *iterateRhythmHold) Pulse(t float64, ctx *pogen.Context) pogen.Pulse {
	fill := func(t float64) beat { return nextBeat(r.src, t, ctx) }
	if r.hold.update(t, ctx, fill) {
		r.selector = pogen.NewSelector(r.hold.buffer, r.mode, r.rng)
	}
	return r.setBeat(r.selector.MustNext(), ctx)
}

func (r *iterateRhythmHold) Repr() string {
	return repr(append(append([]string{r.Type(), sub(r.src)}, r.hold.reprs()...), r.mode.String())...)
}

func (r *iterateRhythmHold) Reset() {
	r.rng.Reset()
	r.hold.reset()
	r.selector = nil
	resetAll(r.src)
}
