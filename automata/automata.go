// Package automata implements one dimensional cellular automata with discrete
// (standard and totalistic) or continuous cells, and the extraction of values
// from their history.
package automata

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/vsariola/pogen"
)

type (
	// Automaton is a one dimensional cellular automaton whose cells wrap
	// around. It keeps the whole history of generations.
	Automaton struct {
		spec     Spec
		rng      *pogen.Source
		span     int
		shift    int
		rule     *big.Int // discrete formats
		ruleMax  *big.Int // nil if the rule space is too large to fold into
		digits   []int    // base k digits of rule, least significant first
		ruleF    float64  // continuous formats
		mutation float64
		history  [][]float64
		exact    []*big.Float // last generation of the Continuous format
	}
)

// exactPrec is the mantissa precision of the Continuous format, in bits.
const exactPrec = 96

// maxRuleBits bounds the rule space that is folded with a modulo. Larger
// spaces are never folded: a rule coming from a float64 is always smaller.
const maxRuleBits = 4096

var ErrTotalistic = errors.New("totalistic automata need at least two colors and a radius of at least 1")

var displayChars = map[int]string{2: " +", 3: " .*", 4: " .*%"}

const continuousChars = " .-~^+*%#@"

// New parses the specification string and creates an automaton with the first
// generation initialized. rng is used for random initialization, rounding of
// rules and mutation.
func New(spec string, rule, mutation float64, rng *pogen.Source) (*Automaton, error) {
	s, err := ParseSpec(spec)
	if err != nil {
		return nil, fmt.Errorf("could not parse automaton specification: %v", err)
	}
	return NewFromSpec(s, rule, mutation, rng)
}

// NewFromSpec creates an automaton from an already parsed specification.
func NewFromSpec(s Spec, rule, mutation float64, rng *pogen.Source) (*Automaton, error) {
	if s.Format == Totalistic && (s.K <= 1 || s.R < 1) {
		return nil, ErrTotalistic
	}
	if rng == nil {
		rng = pogen.NewSource(0)
	}
	a := &Automaton{spec: s, rng: rng, span: s.Span(), mutation: mutation}
	a.shift = -(a.span / 2)
	a.ruleMax = a.computeRuleMax()
	a.setRule(rule)
	a.Clear()
	return a, nil
}

func (a *Automaton) Spec() Spec { return a.spec }

func (a *Automaton) computeRuleMax() *big.Int {
	k := big.NewInt(int64(a.spec.K))
	switch a.spec.Format {
	case Standard:
		// k^span neighborhoods of log2(k) bits each
		if math.Pow(float64(a.spec.K), float64(a.span))*math.Log2(float64(a.spec.K)) > maxRuleBits {
			return nil
		}
		n := new(big.Int).Exp(k, big.NewInt(int64(a.span)), nil)
		return n.Exp(k, n, nil)
	case Totalistic:
		return new(big.Int).Exp(k, big.NewInt(int64((a.spec.K-1)*a.span+1)), nil)
	}
	return nil
}

// RuleMax returns the number of distinct rules of a discrete automaton, or nil
// for continuous automata and discrete ones with an astronomic rule space.
func (a *Automaton) RuleMax() *big.Int {
	if a.ruleMax == nil {
		return nil
	}
	return new(big.Int).Set(a.ruleMax)
}

// Rule returns the current rule as a string: an integer for discrete formats
// and a number in [0, 1) for continuous ones.
func (a *Automaton) Rule() string {
	if a.spec.Format.Discrete() {
		return a.rule.String()
	}
	return pogen.FormatNumber(a.ruleF)
}

func (a *Automaton) setRule(rule float64) {
	if !a.spec.Format.Discrete() {
		r := math.Mod(rule, 1)
		if r < 0 {
			r += 1
		}
		if math.IsNaN(r) {
			r = 0
		}
		a.ruleF = r
		return
	}
	var n *big.Int
	switch {
	case math.IsNaN(rule) || math.IsInf(rule, 0):
		n = new(big.Int)
	case math.Abs(rule) < 1<<53:
		n = big.NewInt(int64(a.rng.RoundWeighted(rule)))
	default:
		n, _ = big.NewFloat(rule).Int(nil)
	}
	if a.ruleMax != nil {
		n.Mod(n, a.ruleMax)
	} else {
		n.Abs(n)
	}
	if a.rule != nil && a.rule.Cmp(n) == 0 {
		return
	}
	a.rule = n
	a.digits = a.digits[:0]
	if a.spec.K <= 1 {
		return
	}
	k := big.NewInt(int64(a.spec.K))
	q, m := new(big.Int).Set(n), new(big.Int)
	for q.Sign() > 0 {
		q.DivMod(q, k, m)
		a.digits = append(a.digits, int(m.Int64()))
	}
}

// digit returns the new value for neighborhood index idx.
func (a *Automaton) digit(idx int) int {
	if idx >= len(a.digits) {
		return 0
	}
	return a.digits[idx]
}

// Clear discards the history and initializes the first generation again.
func (a *Automaton) Clear() {
	x := a.spec.X
	row := make([]float64, x)
	discrete := a.spec.Format.Discrete()
	maxVal := 1.0
	if discrete {
		maxVal = float64(a.spec.K - 1)
	}
	tile := func(src []float64) {
		if len(src) == 0 {
			return
		}
		for i := range row {
			row[i] = src[i%len(src)]
		}
	}
	clamp := func(v float64) float64 {
		if discrete {
			v = math.Trunc(v)
		}
		return math.Max(0, math.Min(maxVal, v))
	}
	switch in := a.spec.Init; in.Mode {
	case InitRandom:
		for i := range row {
			if discrete {
				row[i] = float64(a.rng.IntN(a.spec.K))
			} else {
				row[i] = a.rng.Float64()
			}
		}
	case InitDigits:
		src := make([]float64, len(in.Digits))
		for i, c := range in.Digits {
			src[i] = clamp(float64(c - '0'))
		}
		tile(src)
	case InitNumber:
		tile([]float64{clamp(in.Number)})
	case InitList:
		src := make([]float64, len(in.List))
		for i, v := range in.List {
			src[i] = clamp(v)
		}
		tile(src)
	default:
		if a.spec.Format == Standard {
			row[x/2] = maxVal
		} else {
			row[x/2] = 1
		}
	}
	if a.spec.Format == Continuous {
		a.exact = make([]*big.Float, x)
		for i, v := range row {
			a.exact[i] = new(big.Float).SetPrec(exactPrec).SetFloat64(v)
		}
	}
	a.history = [][]float64{row}
}

// Gen computes steps new generations with the given rule and mutation
// probability, which stay in effect for later calls.
func (a *Automaton) Gen(steps int, rule, mutation float64) {
	a.setRule(rule)
	a.mutation = mutation
	for ; steps > 0; steps-- {
		var next []float64
		switch a.spec.Format {
		case Standard, Totalistic:
			next = a.stepDiscrete()
		case Float:
			next = a.stepFloat()
		case Continuous:
			next = a.stepExact()
		}
		a.history = append(a.history, next)
	}
}

func (a *Automaton) neighbor(row []float64, i, j int) float64 {
	n := len(row)
	return row[((i+a.shift+j)%n+n)%n]
}

func (a *Automaton) stepDiscrete() []float64 {
	last := a.history[len(a.history)-1]
	k := a.spec.K
	limit := len(a.digits)
	next := make([]float64, len(last))
	for i := range last {
		idx := 0
		for j := 0; j < a.span; j++ {
			c := int(a.neighbor(last, i, j))
			if a.spec.Format == Totalistic {
				idx += c
			} else {
				idx = idx*k + c
			}
			if idx > limit {
				idx = limit
			}
		}
		v := a.digit(idx)
		if a.rng.Float64() < a.mutation && k >= 2 {
			v = (v + 1 + a.rng.IntN(k-1)) % k
		}
		next[i] = float64(v)
	}
	return next
}

func (a *Automaton) stepFloat() []float64 {
	last := a.history[len(a.history)-1]
	next := make([]float64, len(last))
	for i := range last {
		sum := 0.0
		for j := 0; j < a.span; j++ {
			sum += a.neighbor(last, i, j)
		}
		v := math.Mod(sum/float64(a.span)+a.ruleF, 1)
		if a.rng.Float64() < a.mutation {
			v = a.rng.Float64()
		}
		next[i] = v
	}
	return next
}

func (a *Automaton) stepExact() []float64 {
	n := len(a.exact)
	rule, _, _ := big.ParseFloat(strconv.FormatFloat(a.ruleF, 'g', -1, 64), 10, exactPrec, big.ToNearestEven)
	span := new(big.Float).SetPrec(exactPrec).SetInt64(int64(a.span))
	exact := make([]*big.Float, n)
	next := make([]float64, n)
	for i := range exact {
		sum := new(big.Float).SetPrec(exactPrec)
		for j := 0; j < a.span; j++ {
			sum.Add(sum, a.exact[((i+a.shift+j)%n+n)%n])
		}
		sum.Quo(sum, span).Add(sum, rule)
		whole, _ := sum.Int(nil)
		sum.Sub(sum, new(big.Float).SetPrec(exactPrec).SetInt(whole))
		if a.rng.Float64() < a.mutation {
			sum.SetFloat64(a.rng.Float64())
		}
		exact[i] = sum
		next[i], _ = sum.Float64()
	}
	a.exact = exact
	return next
}

// History returns all generations computed so far, the first one included.
func (a *Automaton) History() [][]float64 {
	return a.history
}

// Cells returns the last generation.
func (a *Automaton) Cells() []float64 {
	return append([]float64(nil), a.history[len(a.history)-1]...)
}

// Table returns the generations after the skipped ones as a table for value
// extraction.
func (a *Automaton) Table() *Table {
	rows := a.history
	if a.spec.S < len(rows) {
		rows = rows[a.spec.S:]
	} else {
		rows = nil
	}
	return NewTable(rows, 0)
}

// Extract is Table().Extract with the window width and center offset of the
// specification.
func (a *Automaton) Extract(f TableFormat, norm bool) [][]float64 {
	return a.Table().Extract(f, norm, 0, -1, a.spec.C, a.spec.W)
}

// FormatRow renders a generation as text, one character per cell.
func (a *Automaton) FormatRow(row []float64) string {
	var b strings.Builder
	for _, v := range row {
		if !a.spec.Format.Discrete() {
			d := int(math.Round(math.Mod(math.Round(v*10)/10, 1)*10)) % 10
			b.WriteByte(continuousChars[d])
			continue
		}
		if chars, ok := displayChars[a.spec.K]; ok {
			b.WriteByte(chars[int(v)])
		} else {
			b.WriteString(strconv.FormatInt(int64(v), 36))
		}
	}
	return b.String()
}

// String renders the generations after the skipped ones, one line each.
func (a *Automaton) String() string {
	var b strings.Builder
	for i, row := range a.history {
		if i < a.spec.S {
			continue
		}
		b.WriteString(a.FormatRow(row))
		b.WriteByte('\n')
	}
	return b.String()
}
