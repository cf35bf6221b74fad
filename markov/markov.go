// Package markov implements weighted transition tables of any order, declared
// with a small string grammar or derived by analysing a sequence, and a
// generation step that maps a unit interval draw to the next symbol.
//
// Declaration strings consist of name{value} pairs. A pair whose key has no
// colon and whose value has no equals sign defines a symbol:
//
//	a{x}b{y}c{(3,2,1)}
//
// Other pairs define weights for a transition key, that is, the preceding
// symbols followed by a colon:
//
//	:{a=3|b=1}         zero order
//	a:{a=1|b=5}        first order, after a
//	a:b:{b=2}          second order, after a then b
//	*:-c:{c=1}         after anything followed by anything but c
//	a|b:{c=1}          after a or b
package markov

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/vsariola/pogen"
)

type (
	// Transition holds a symbol alphabet and a table of weighted successors.
	// The zero value is empty; load it with LoadTransition, LoadList or
	// LoadString before calling Next.
	Transition struct {
		symbols []Symbol
		index   map[string]int // label to position in symbols
		entries []Entry        // sorted by key length, then key
		exact   map[string]int // literal key to position in entries
		orders  []int
	}

	// Symbol is a label of the alphabet and the value it stands for.
	Symbol struct {
		Label string
		Raw   string // value as written
		Value pogen.Value
	}

	// Segment is one position of a transition key: a literal symbol or an
	// expression.
	Segment struct {
		Op       byte // 0 for a literal, otherwise one of '*', '-' or '|'
		Operands []string
	}

	// Key is a sequence of preceding symbols, oldest first.
	Key []Segment

	// Weight is a successor symbol and its relative weight.
	Weight struct {
		Label  string
		Weight float64
	}

	// Entry is a transition key and its successors, in declaration order.
	Entry struct {
		Key     Key
		Weights []Weight
	}
)

const (
	openBrace  = '{'
	closeBrace = '}'
	assign     = '='
	delimit    = '|'
	step       = ':'
	expAll     = '*'
	expNot     = '-'
	expOr      = '|'
	symChars   = "abcdefghijklmnopqrstuvwxyz0123456789"
	expChars   = "*-|"
)

const DefaultLimit = 9

// Limit bounds the order of analysis.
var Limit = DefaultLimit

func syntaxError(input, format string, a ...any) error {
	e := pogen.Errorf(format, a...)
	e.Input = input
	return e
}

// LoadTransition replaces the contents of the table with a declaration string.
func (t *Transition) LoadTransition(src string) error {
	if strings.Count(src, string(openBrace)) != strings.Count(src, string(closeBrace)) {
		return syntaxError(src, "all braces not paired")
	}
	clean := strings.NewReplacer(`"`, "", "'", "").Replace(src)
	var (
		symbols []Symbol
		weights []struct{ key, value string }
	)
	for _, group := range strings.Split(clean, string(closeBrace)) {
		if !strings.ContainsRune(group, openBrace) {
			continue
		}
		parts := strings.Split(group, string(openBrace))
		if len(parts) != 2 {
			return syntaxError(src, "badly placed delimiters")
		}
		key := strings.ToLower(removeSpace(parts[0]))
		value := parts[1]
		if strings.ContainsRune(key, step) || strings.ContainsRune(value, assign) {
			if err := checkChars(key, symChars+string(step)+expChars); err != nil {
				return syntaxError(src, "%v", err)
			}
			weights = append(weights, struct{ key, value string }{key, strings.ToLower(removeSpace(value))})
			continue
		}
		if err := checkChars(key, symChars); err != nil {
			return syntaxError(src, "%v", err)
		}
		symbols = append(symbols, newSymbol(key, removeSpace(value)))
	}
	if len(symbols) == 0 {
		return syntaxError(src, "no symbols defined")
	}
	if len(weights) == 0 {
		return syntaxError(src, "no weights defined")
	}
	n := Transition{}
	n.setSymbols(symbols)
	for _, w := range weights {
		key, err := parseKey(w.key)
		if err != nil {
			return syntaxError(src, "%v", err)
		}
		list, err := parseWeights(w.value)
		if err != nil {
			return syntaxError(src, "%v", err)
		}
		for _, wt := range list {
			if _, ok := n.index[wt.Label]; !ok {
				return syntaxError(src, "weight specified for undefined symbol: %s", wt.Label)
			}
		}
		n.setEntry(key, list)
	}
	n.finish()
	*t = n
	return nil
}

func removeSpace(s string) string {
	return strings.Join(strings.Fields(s), "")
}

func checkChars(s, valid string) error {
	for _, c := range s {
		if !strings.ContainsRune(valid, c) {
			return fmt.Errorf("symbol definition uses illegal characters (%c)", c)
		}
	}
	return nil
}

func newSymbol(label, raw string) Symbol {
	value := pogen.NewString(raw)
	if v, err := pogen.Parse(raw); err == nil && v.Len() == 1 {
		value = v.Index(0)
	}
	return Symbol{Label: label, Raw: raw, Value: value}
}

func parseKey(s string) (Key, error) {
	var key Key
	for _, seg := range strings.Split(s, string(step)) {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		var ops []byte
		for _, op := range []byte(expChars) {
			if strings.IndexByte(seg, op) >= 0 {
				ops = append(ops, op)
			}
		}
		switch {
		case len(ops) == 0:
			key = append(key, Segment{Operands: []string{seg}})
		case len(ops) > 1:
			return nil, fmt.Errorf("only one operator may be used per weight key segment")
		case ops[0] == expOr:
			var operands []string
			for _, o := range strings.Split(seg, string(expOr)) {
				if o != "" {
					operands = append(operands, o)
				}
			}
			key = append(key, Segment{Op: expOr, Operands: operands})
		case ops[0] == expNot:
			key = append(key, Segment{Op: expNot, Operands: []string{strings.ReplaceAll(seg, string(expNot), "")}})
		default:
			key = append(key, Segment{Op: expAll})
		}
	}
	return key, nil
}

func parseWeights(s string) ([]Weight, error) {
	var ret []Weight
	for _, a := range strings.Split(s, string(delimit)) {
		if !strings.ContainsRune(a, assign) {
			continue
		}
		if strings.Count(a, string(assign)) > 1 {
			return nil, fmt.Errorf("incorrect weight specification: %s", a)
		}
		label, num, _ := strings.Cut(a, string(assign))
		w, err := strconv.ParseFloat(num, 64)
		if err != nil || w <= 0 || math.IsInf(w, 0) || math.IsNaN(w) {
			return nil, fmt.Errorf("bad weight value given: %s", a)
		}
		ret = append(ret, Weight{Label: label, Weight: w})
	}
	return ret, nil
}

func (t *Transition) setSymbols(symbols []Symbol) {
	t.index = map[string]int{}
	t.symbols = t.symbols[:0]
	for _, s := range symbols {
		if i, ok := t.index[s.Label]; ok {
			t.symbols[i] = s
			continue
		}
		t.index[s.Label] = len(t.symbols)
		t.symbols = append(t.symbols, s)
	}
	sort.SliceStable(t.symbols, func(i, j int) bool { return labelLess(t.symbols[i].Label, t.symbols[j].Label) })
	for i, s := range t.symbols {
		t.index[s.Label] = i
	}
}

func labelLess(a, b string) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}

// setEntry adds or replaces the weights of a key.
func (t *Transition) setEntry(key Key, weights []Weight) {
	s := key.String()
	for i := range t.entries {
		if t.entries[i].Key.String() == s {
			t.entries[i].Weights = weights
			return
		}
	}
	t.entries = append(t.entries, Entry{Key: key, Weights: weights})
}

// finish sorts the entries and builds the lookup tables.
func (t *Transition) finish() {
	sort.SliceStable(t.entries, func(i, j int) bool {
		a, b := t.entries[i].Key, t.entries[j].Key
		if len(a) != len(b) {
			return len(a) < len(b)
		}
		return a.String() < b.String()
	})
	t.exact = map[string]int{}
	t.orders = t.orders[:0]
	for i, e := range t.entries {
		if e.Key.literal() {
			t.exact[e.Key.String()] = i
		}
		if n := len(e.Key); len(t.orders) == 0 || t.orders[len(t.orders)-1] != n {
			t.orders = append(t.orders, n)
		}
	}
}

// LoadList replaces the contents of the table with an analysis of data for
// orders zero up to order. Symbols are labelled a, b, ..., z, aa, ab, ... in
// the order of their first appearance. Higher orders wrap around the end of the
// data, and keys that are never followed by anything are left out.
func (t *Transition) LoadList(data []pogen.Value, order int) error {
	if len(data) == 0 {
		return fmt.Errorf("no data to analyse")
	}
	if order > Limit {
		return fmt.Errorf("order %d exceeds the limit of %d", order, Limit)
	}
	if order >= len(data) {
		order = len(data) - 1
	}
	if order < 0 {
		order = 0
	}
	n := Transition{}
	var symbols []Symbol
	labels := make([]string, len(data))
	for i, v := range data {
		found := false
		for _, s := range symbols {
			if s.Value.Equal(v) {
				labels[i], found = s.Label, true
				break
			}
		}
		if !found {
			s := Symbol{Label: AlphaLabel(len(symbols)), Raw: v.String(), Value: v}
			symbols = append(symbols, s)
			labels[i] = s.Label
		}
	}
	n.setSymbols(symbols)
	counts := make([]Weight, len(symbols))
	for i, s := range symbols {
		counts[i] = Weight{Label: s.Label}
		for _, l := range labels {
			if l == s.Label {
				counts[i].Weight++
			}
		}
	}
	n.setEntry(Key{}, counts)
	for o := 1; o <= order; o++ {
		wrapped := append(append([]string(nil), labels...), labels[:o]...)
		var found []Entry
		pos := map[string]int{}
		for i := 0; i+o < len(wrapped); i++ {
			key := make(Key, o)
			for j := range key {
				key[j] = Segment{Operands: []string{wrapped[i+j]}}
			}
			s := key.String()
			k, ok := pos[s]
			if !ok {
				k = len(found)
				pos[s] = k
				found = append(found, Entry{Key: key})
			}
			found[k].Weights = addWeight(found[k].Weights, wrapped[i+o])
		}
		n.entries = append(n.entries, found...)
	}
	n.finish()
	*t = n
	return nil
}

func addWeight(list []Weight, label string) []Weight {
	for i := range list {
		if list[i].Label == label {
			list[i].Weight++
			return list
		}
	}
	return append(list, Weight{Label: label, Weight: 1})
}

// LoadString analyses a text of space separated words. Line breaks, hyphens and
// braces separate words too.
func (t *Transition) LoadString(data string, order int) error {
	data = strings.NewReplacer("\n", " ", "-", " ", "{", " ", "}", " ").Replace(data)
	words := strings.Fields(data)
	values := make([]pogen.Value, len(words))
	for i, w := range words {
		values[i] = pogen.NewString(w)
	}
	return t.LoadList(values, order)
}

// AlphaLabel returns the ith label of the sequence a, ..., z, aa, ab, ...
func AlphaLabel(i int) string {
	if i < 26 {
		return string(rune('a' + i))
	}
	return AlphaLabel(i/26-1) + string(rune('a'+i%26))
}

// Symbols returns the alphabet sorted by label.
func (t *Transition) Symbols() []Symbol {
	return append([]Symbol(nil), t.symbols...)
}

// Values returns the values of the alphabet, sorted by label.
func (t *Transition) Values() []pogen.Value {
	ret := make([]pogen.Value, len(t.symbols))
	for i, s := range t.symbols {
		ret[i] = s.Value
	}
	return ret
}

func (t *Transition) Entries() []Entry {
	return append([]Entry(nil), t.entries...)
}

// Orders returns the sorted distinct orders present in the table.
func (t *Transition) Orders() []int {
	return append([]int(nil), t.orders...)
}

// MaxOrder returns the highest order present, or zero for an empty table.
func (t *Transition) MaxOrder() int {
	if len(t.orders) == 0 {
		return 0
	}
	return t.orders[len(t.orders)-1]
}

// labels converts values to symbol labels. ok is false if a value is not in
// the alphabet.
func (t *Transition) labels(values []pogen.Value) (ret []string, ok bool) {
	ret = make([]string, len(values))
outer:
	for i, v := range values {
		for _, s := range t.symbols {
			if s.Value.Equal(v) {
				ret[i] = s.Label
				continue outer
			}
		}
		return nil, false
	}
	return ret, true
}

// Weights returns the successors for a sequence of preceding symbol labels: an
// exact entry if there is one, otherwise the first expression entry that
// matches, in sorted key order. nil means no entry applies.
func (t *Transition) Weights(seq []string) []Weight {
	if i, ok := t.exact[strings.Join(seq, string(step))+string(step)]; ok {
		return t.entries[i].Weights
	}
	for _, e := range t.entries {
		if e.Key.Match(seq) {
			return e.Weights
		}
	}
	return nil
}

// Next returns the value of the symbol selected by draw, a number in [0, 1],
// given the history of values generated so far, most recent last. order may
// be fractional; it is rounded with rng weighting, or to the nearest integer if
// rng is nil. If the history is too short for the order, slide uses all of the
// history, otherwise the zero order table is used. If no entry applies, every
// symbol is equally likely.
func (t *Transition) Next(draw float64, history []pogen.Value, order float64, slide bool, rng *pogen.Source) pogen.Value {
	if len(t.symbols) == 0 {
		return pogen.Value{}
	}
	var ord int
	if rng != nil {
		ord = rng.RoundWeighted(order)
	} else {
		ord = int(math.Round(order))
	}
	if ord < 0 || ord > t.MaxOrder() {
		ord = t.MaxOrder()
	}
	var tail []pogen.Value
	switch {
	case len(history) <= ord:
		if slide {
			tail = history
		}
	case ord > 0:
		tail = history[len(history)-ord:]
	}
	var weights []Weight
	if seq, ok := t.labels(tail); ok {
		weights = t.Weights(seq)
	}
	if weights == nil {
		weights = make([]Weight, len(t.symbols))
		for i, s := range t.symbols {
			weights[i] = Weight{Label: s.Label, Weight: 1}
		}
	}
	series := make([]float64, len(weights))
	for i, w := range weights {
		series[i] = w.Weight
	}
	bounds, ok := pogen.UnitBoundaryProportion(series)
	if !ok {
		bounds = pogen.UnitBoundaryEqual(len(series))
	}
	label := weights[pogen.UnitBoundaryPos(draw, bounds)].Label
	return t.symbols[t.index[label]].Value
}

// Match reports if the key matches a sequence of symbol labels of the same
// length.
func (k Key) Match(seq []string) bool {
	if len(k) != len(seq) {
		return false
	}
	for i, seg := range k {
		if !seg.match(seq[i]) {
			return false
		}
	}
	return true
}

func (s Segment) match(label string) bool {
	switch s.Op {
	case expAll:
		return true
	case expNot:
		return s.Operands[0] != label
	case expOr:
		for _, o := range s.Operands {
			if o == label {
				return true
			}
		}
		return false
	}
	return s.Operands[0] == label
}

func (k Key) literal() bool {
	for _, s := range k {
		if s.Op != 0 {
			return false
		}
	}
	return true
}

func (s Segment) String() string {
	switch s.Op {
	case expAll:
		return string(expAll)
	case expNot:
		return string(expNot) + s.Operands[0]
	case expOr:
		return strings.Join(s.Operands, string(expOr))
	}
	return s.Operands[0]
}

// String returns the key in declaration form, always ending with a colon.
func (k Key) String() string {
	parts := make([]string, len(k))
	for i, s := range k {
		parts[i] = s.String()
	}
	return strings.Join(parts, string(step)) + string(step)
}

// String returns the table in declaration form, which LoadTransition reads
// back into an equal table.
func (t *Transition) String() string {
	var b strings.Builder
	for _, s := range t.symbols {
		fmt.Fprintf(&b, "%s%c%s%c", s.Label, openBrace, s.Raw, closeBrace)
	}
	for _, e := range t.entries {
		weights := append([]Weight(nil), e.Weights...)
		sort.SliceStable(weights, func(i, j int) bool { return labelLess(weights[i].Label, weights[j].Label) })
		parts := make([]string, 0, len(weights))
		for _, w := range weights {
			if w.Weight == 0 {
				continue
			}
			parts = append(parts, fmt.Sprintf("%s%c%s", w.Label, assign, pogen.FormatNumber(w.Weight)))
		}
		fmt.Fprintf(&b, "%s%c%s%c", e.Key, openBrace, strings.Join(parts, string(delimit)), closeBrace)
	}
	return b.String()
}
