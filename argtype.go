package pogen

import (
	"math"
	"strings"
)

type (
	// ArgType is a bitmask of the value kinds an argument position accepts.
	ArgType int

	// Arg describes one argument of a parameter object.
	Arg struct {
		Name    string  // name of the argument, used in docs and messages
		Type    ArgType // accepted kinds
		Default Value   // default value; Invalid if the argument is required
		Doc     string  // one line description
	}
)

const (
	ArgInt ArgType = 1 << iota
	ArgFloat
	ArgStr
	ArgList
	ArgNum = ArgInt | ArgFloat
)

// Accepts reports if the value is of an accepted kind. Integral floats are
// accepted where an int is expected.
func (a ArgType) Accepts(v Value) bool {
	switch v.Kind() {
	case Int:
		return a&ArgInt != 0 || a&ArgFloat != 0
	case Float:
		return a&ArgFloat != 0 || a&ArgInt != 0 && v.num == math.Trunc(v.num)
	case String:
		return a&ArgStr != 0
	case List:
		return a&ArgList != 0
	}
	return false
}

func (a ArgType) String() string {
	var names []string
	if a&ArgNum == ArgNum {
		names = append(names, "num")
	} else if a&ArgInt != 0 {
		names = append(names, "int")
	} else if a&ArgFloat != 0 {
		names = append(names, "float")
	}
	if a&ArgStr != 0 {
		names = append(names, "str")
	}
	if a&ArgList != 0 {
		names = append(names, "list")
	}
	return strings.Join(names, " or ")
}

// CheckArgs validates args against the argument descriptions and returns the
// argument list with missing trailing arguments filled from the defaults. The
// defaults are only used if every missing argument has one.
func CheckArgs(args []Value, params []Arg) ([]Value, error) {
	if len(args) > len(params) {
		return nil, Errorf("too many arguments; enter %d arguments.", len(params))
	}
	ret := make([]Value, len(params))
	copy(ret, args)
	for i := len(args); i < len(params); i++ {
		if !params[i].Default.IsValid() {
			return nil, Errorf("incorrect number of arguments; enter %d arguments.", len(params))
		}
		ret[i] = params[i].Default
	}
	for i, p := range params {
		if !p.Type.Accepts(ret[i]) {
			return nil, &SyntaxError{
				Msg: Errorf("wrong type of data used as argument %d (%s). replace '%s' with a %s argument type.",
					i+2, p.Name, ret[i].String(), p.Type).Msg,
			}
		}
	}
	return ret, nil
}
