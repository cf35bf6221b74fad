package po

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vsariola/pogen"
	"github.com/vsariola/pogen/markov"
	"github.com/vsariola/pogen/quantize"
)

type (
	// Factory creates parameter objects from specifications. Every parameter
	// object created gets its own random source, seeded from Seed and the
	// number of objects created so far, so a Factory with the same Seed
	// creating the same specifications in the same order produces the same
	// values. A Factory is not safe for concurrent use.
	Factory struct {
		Seed        uint64
		FailLimit   int // attempts to fill an empty buffer in the iterators
		LoopLimit   int // grid search steps of the quantizers
		MarkovLimit int // maximum order of Markov analysis
		counter     uint64
	}

	// builder carries the state of constructing one parameter object. Errors
	// are sticky: after the first failure, all helpers return zero values and
	// done reports the first error.
	builder struct {
		f    *Factory
		info *Info
		rng  *pogen.Source
		err  error
	}

	// base is embedded in every parameter object.
	base struct {
		info *Info
		rng  *pogen.Source
	}

	genBase struct {
		base
		current pogen.Value
	}
)

const DefaultFailLimit = 99

// NewFactory returns a Factory with the default limits.
func NewFactory(seed uint64) *Factory {
	return &Factory{
		Seed:        seed,
		FailLimit:   DefaultFailLimit,
		LoopLimit:   quantize.DefaultLoopLimit,
		MarkovLimit: markov.DefaultLimit,
	}
}

// New creates a parameter object. spec is a specification string such as
// "ws,e,30,0,0,1", a list Value or a slice of Values; the first item is the
// name or acronym of the parameter object and the rest are its arguments.
// Missing trailing arguments are filled from the defaults. libs restricts the
// libraries searched; no libraries means all of them.
func (f *Factory) New(spec any, libs ...Library) (PO, error) {
	items, err := specItems(spec)
	if err != nil {
		return nil, err
	}
	if len(libs) == 0 {
		libs = allLibraries
	}
	if !items[0].IsString() {
		return nil, pogen.Errorf("parameter object name must be a string, got '%s'.", items[0])
	}
	info, ok := Lookup(items[0].Str(), libs...)
	if !ok {
		return nil, &NoSuchParameterError{Name: items[0].Str(), Libraries: libs}
	}
	args, err := pogen.CheckArgs(items[1:], info.Args)
	if err != nil {
		var se *pogen.SyntaxError
		if errors.As(err, &se) && se.Input == "" {
			se.Input = strings.Trim(pogen.NewList(items...).String(), "()")
		}
		return nil, err
	}
	f.counter++
	b := &builder{f: f, info: info, rng: pogen.NewSource(pogen.Split(f.Seed, f.counter))}
	p, err := info.New(b, args)
	if err != nil {
		var se *pogen.SyntaxError
		if !errors.As(err, &se) {
			err = &pogen.SyntaxError{Msg: fmt.Sprintf("could not create %s", info.Name), Err: err}
		}
		return nil, err
	}
	if err := p.CheckArgs(); err != nil {
		return nil, err
	}
	return p, nil
}

// NewGenerator is New restricted to the generator library.
func (f *Factory) NewGenerator(spec any) (Generator, error) {
	p, err := f.New(spec, GeneratorLib)
	if err != nil {
		return nil, err
	}
	return p.(Generator), nil
}

// NewRhythm is New restricted to the rhythm library.
func (f *Factory) NewRhythm(spec any) (Rhythm, error) {
	p, err := f.New(spec, RhythmLib)
	if err != nil {
		return nil, err
	}
	return p.(Rhythm), nil
}

// NewFilter is New restricted to the filter library.
func (f *Factory) NewFilter(spec any) (Filter, error) {
	p, err := f.New(spec, FilterLib)
	if err != nil {
		return nil, err
	}
	return p.(Filter), nil
}

func (f *Factory) failLimit() int {
	if f.FailLimit <= 0 {
		return DefaultFailLimit
	}
	return f.FailLimit
}

func (f *Factory) loopLimit() int {
	if f.LoopLimit <= 0 {
		return quantize.DefaultLoopLimit
	}
	return f.LoopLimit
}

func (f *Factory) markovLimit() int {
	if f.MarkovLimit <= 0 {
		return markov.DefaultLimit
	}
	return f.MarkovLimit
}

func specItems(spec any) ([]pogen.Value, error) {
	var items []pogen.Value
	switch s := spec.(type) {
	case string:
		v, err := pogen.Parse(s)
		if err != nil {
			return nil, err
		}
		items = v.List()
	case pogen.Value:
		if s.IsList() {
			items = s.List()
		} else {
			items = []pogen.Value{s}
		}
	case []pogen.Value:
		items = s
	default:
		return nil, pogen.Errorf("unsupported specification type %T.", spec)
	}
	// "((ws,e,30))" is the same as "ws,e,30"
	for len(items) == 1 && items[0].IsList() {
		items = items[0].List()
	}
	if len(items) == 0 {
		return nil, pogen.Errorf("empty parameter object specification.")
	}
	return items, nil
}

func (b *builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

func (b *builder) failf(format string, a ...any) {
	b.fail(pogen.Errorf(format, a...))
}

func (b *builder) done(p PO) (PO, error) {
	if b.err != nil {
		return nil, b.err
	}
	return p, nil
}

func (b *builder) base() base {
	return base{info: b.info, rng: b.rng}
}

func (b *builder) genBase() genBase {
	return genBase{base: b.base()}
}

func (b *builder) sub(v pogen.Value, what string, libs ...Library) PO {
	if b.err != nil {
		return nil
	}
	p, err := b.f.New(v, libs...)
	if err != nil {
		b.fail(pogen.WrapSub(what, err))
		return nil
	}
	return p
}

// gen creates a generator sub-parameter. A bare number becomes a constant.
func (b *builder) gen(v pogen.Value, what string) Generator {
	if v.IsNum() {
		v = pogen.NewList(pogen.NewString("constant"), v)
	}
	p, _ := b.sub(v, what, GeneratorLib).(Generator)
	return p
}

// gens creates a list of generator sub-parameters.
func (b *builder) gens(v pogen.Value, what string) []Generator {
	if !v.IsList() || v.Len() == 0 {
		b.failf("%s must be a list of parameter objects.", what)
		return nil
	}
	if v.Index(0).IsString() {
		return []Generator{b.gen(v, what)}
	}
	ret := make([]Generator, v.Len())
	for i, item := range v.List() {
		ret[i] = b.gen(item, what)
	}
	return ret
}

func (b *builder) rhythm(v pogen.Value, what string) Rhythm {
	p, _ := b.sub(v, what, RhythmLib).(Rhythm)
	return p
}

func (b *builder) filter(v pogen.Value, what string) Filter {
	p, _ := b.sub(v, what, FilterLib).(Filter)
	return p
}

// operand creates a generator or, if no generator has the name, a rhythm
// sub-parameter. Numbers become constants.
func (b *builder) operand(v pogen.Value, what string) PO {
	if v.IsNum() {
		return b.gen(v, what)
	}
	return b.sub(v, what, GeneratorLib, RhythmLib)
}

func (b *builder) option(v pogen.Value, o pogen.Options, what string) int {
	if b.err != nil {
		return 0
	}
	i, err := o.Parse(v, what)
	if err != nil {
		b.fail(err)
		return 0
	}
	return i
}

func (b *builder) selectMode(v pogen.Value) pogen.SelectMode {
	return pogen.SelectMode(b.option(v, pogen.SelectModes, "selectionString"))
}

func (p *base) Type() string { return p.info.Name }

// CheckArgs of a parameter object without semantic constraints.
func (p *base) CheckArgs() error { return nil }

func (g *genBase) Current() pogen.Value { return g.current }

func (g *genBase) Output() OutputFormat { return Num }

func (g *genBase) set(v pogen.Value) pogen.Value {
	g.current = v
	return v
}

func (g *genBase) setFloat(f float64) pogen.Value {
	return g.set(pogen.NewFloat(f))
}

// operandValue evaluates a generator, or the duration of a rhythm.
func operandValue(p PO, t float64, ctx *pogen.Context) float64 {
	switch o := p.(type) {
	case Generator:
		return o.Call(t, ctx).Float()
	case Rhythm:
		return o.Pulse(t, ctx).Dur
	}
	return 0
}

func checkAll(ps ...PO) error {
	for _, p := range ps {
		if p == nil {
			continue
		}
		if err := p.CheckArgs(); err != nil {
			return err
		}
	}
	return nil
}

func resetAll(ps ...PO) {
	for _, p := range ps {
		if p != nil {
			p.Reset()
		}
	}
}

func asPOs[T PO](ps []T) []PO {
	ret := make([]PO, len(ps))
	for i, p := range ps {
		ret[i] = p
	}
	return ret
}

func repr(parts ...string) string {
	return strings.Join(parts, ", ")
}

func sub(p PO) string {
	return "(" + p.Repr() + ")"
}

func subList[T PO](ps []T) string {
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = sub(p)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func fmtNum(f float64) string {
	return pogen.FormatNumber(f)
}

func mustParse(s string) pogen.Value {
	v, err := pogen.Parse(s)
	if err != nil {
		panic(err)
	}
	if v.Len() == 1 {
		return v.Index(0)
	}
	return v
}

func arg(name string, t pogen.ArgType, def pogen.Value, doc string) pogen.Arg {
	return pogen.Arg{Name: name, Type: t, Default: def, Doc: doc}
}
