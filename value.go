package pogen

import (
	"math"
	"strconv"
	"strings"
)

type (
	// Kind tells what a Value holds. The zero Kind is Invalid, so that the zero
	// Value can be used to mean "no value".
	Kind int

	// Value is the dynamically typed datum used for parameter object arguments,
	// parsed specifications and string valued outputs. Values are immutable by
	// convention: the list of a Value should never be modified after creation.
	Value struct {
		kind Kind
		num  float64
		str  string
		list []Value
	}
)

const (
	Invalid Kind = iota
	Int
	Float
	String
	List
)

func (k Kind) String() string {
	switch k {
	case Int:
		return "int"
	case Float:
		return "float"
	case String:
		return "str"
	case List:
		return "list"
	}
	return "invalid"
}

func NewInt(i int) Value { return Value{kind: Int, num: float64(i)} }

func NewFloat(f float64) Value { return Value{kind: Float, num: f} }

func NewString(s string) Value { return Value{kind: String, str: s} }

func NewList(values ...Value) Value {
	if values == nil {
		values = []Value{}
	}
	return Value{kind: List, list: values}
}

// NewNumber returns an Int Value if f is integral and fits safely in a float64
// mantissa, otherwise a Float Value.
func NewNumber(f float64) Value {
	if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return Value{kind: Int, num: f}
	}
	return NewFloat(f)
}

// Floats converts a slice of float64 into a list Value of Floats.
func Floats(fs []float64) Value {
	ret := make([]Value, len(fs))
	for i, f := range fs {
		ret[i] = NewFloat(f)
	}
	return NewList(ret...)
}

// Strings converts a slice of strings into a list Value.
func Strings(ss []string) Value {
	ret := make([]Value, len(ss))
	for i, s := range ss {
		ret[i] = NewString(s)
	}
	return NewList(ret...)
}

func (v Value) Kind() Kind     { return v.kind }
func (v Value) IsValid() bool  { return v.kind != Invalid }
func (v Value) IsNum() bool    { return v.kind == Int || v.kind == Float }
func (v Value) IsInt() bool    { return v.kind == Int }
func (v Value) IsString() bool { return v.kind == String }
func (v Value) IsList() bool   { return v.kind == List }

// Float returns the numeric value; strings and lists return 0.
func (v Value) Float() float64 {
	if v.IsNum() {
		return v.num
	}
	return 0
}

// Int returns the numeric value truncated towards zero.
func (v Value) Int() int {
	return int(v.Float())
}

// Str returns the raw string of a String Value, or the canonical text of any
// other kind.
func (v Value) Str() string {
	if v.kind == String {
		return v.str
	}
	return v.String()
}

func (v Value) List() []Value {
	return v.list
}

func (v Value) Len() int {
	return len(v.list)
}

// Index returns the ith element of a list Value.
func (v Value) Index(i int) Value {
	return v.list[i]
}

// FloatSlice returns the elements of a list of numbers as float64s. ok is false
// if v is not a list or any of its elements is not a number.
func (v Value) FloatSlice() (ret []float64, ok bool) {
	if v.kind != List {
		return nil, false
	}
	ret = make([]float64, len(v.list))
	for i, e := range v.list {
		if !e.IsNum() {
			return nil, false
		}
		ret[i] = e.num
	}
	return ret, true
}

// Equal reports if the two values are deeply equal. Int and Float values are
// equal when they hold the same number.
func (v Value) Equal(o Value) bool {
	if v.IsNum() && o.IsNum() {
		return v.num == o.num
	}
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case String:
		return v.str == o.str
	case List:
		if len(v.list) != len(o.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(o.list[i]) {
				return false
			}
		}
	}
	return true
}

// String returns the canonical textual form of the value, which Parse reads
// back into an equal value: numbers in their shortest exact form, lists as
// (a,b,c), and strings bare unless they need quoting.
func (v Value) String() string {
	var b strings.Builder
	v.write(&b)
	return b.String()
}

func (v Value) write(b *strings.Builder) {
	switch v.kind {
	case Int, Float:
		b.WriteString(FormatNumber(v.num))
	case String:
		b.WriteString(quoteIfNeeded(v.str))
	case List:
		b.WriteByte('(')
		for i, e := range v.list {
			if i > 0 {
				b.WriteByte(',')
			}
			e.write(b)
		}
		b.WriteByte(')')
	default:
		b.WriteString("none")
	}
}

// FormatNumber formats a number the way Value.String does.
func FormatNumber(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func quoteIfNeeded(s string) string {
	if s == "" {
		return `""`
	}
	if _, ok := parseNumber(s); ok || strings.TrimSpace(s) != s {
		return quote(s)
	}
	depth := 0
	for _, c := range s {
		switch c {
		case '{':
			depth++
		case '}':
			depth--
		case '"', '\'', '(', ')', '[', ']':
			if depth == 0 {
				return quote(s)
			}
		case ',':
			if depth == 0 {
				return quote(s)
			}
		}
	}
	return s
}

func quote(s string) string {
	if strings.ContainsRune(s, '"') {
		return "'" + s + "'"
	}
	return `"` + s + `"`
}
