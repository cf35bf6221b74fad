package automata

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/vsariola/pogen"
)

type (
	// Format selects the kind of automaton.
	Format int

	// InitMode selects how the first generation is filled.
	InitMode int

	// Init is the initialization policy of the first generation.
	Init struct {
		Mode   InitMode
		Digits string    // for InitDigits: cell values, tiled
		Number float64   // for InitNumber: every cell gets this value
		List   []float64 // for InitList: cell values, tiled
	}

	// Spec is a parsed automaton specification string such as
	// "f{t}k{3}r{1}x{81}y{80}". Zero dimension values are never valid, so a
	// Spec should be created with ParseSpec or DefaultSpec.
	Spec struct {
		Format Format
		K      int     // number of cell values; 0 for continuous formats
		R      float64 // neighborhood radius, in halves
		Init   Init
		X      int // number of cells
		Y      int // number of generations after skipping
		W      int // width of extracted window
		C      int // center offset of extracted window
		S      int // number of generations skipped
	}
)

const (
	Standard Format = iota
	Totalistic
	Continuous // exact decimal arithmetic
	Float      // float64 arithmetic
)

const (
	InitCenter InitMode = iota
	InitRandom
	InitDigits
	InitNumber
	InitList
)

const (
	MaxX = 1000
	MaxY = 10000
)

var (
	Formats = pogen.Options{
		{Name: "standard", Aliases: []string{"s"}},
		{Name: "totalistic", Aliases: []string{"t", "tot"}},
		{Name: "continuous", Aliases: []string{"c"}},
		{Name: "float", Aliases: []string{"f"}},
	}
	InitModes = pogen.Options{
		{Name: "center", Aliases: []string{"c"}},
		{Name: "random", Aliases: []string{"r"}},
	}
	specKeys = pogen.Options{
		{Name: "f", Aliases: []string{"format", "form", "type"}},
		{Name: "k", Aliases: []string{"colors"}},
		{Name: "r", Aliases: []string{"radius"}},
		{Name: "i", Aliases: []string{"init", "initial"}},
		{Name: "x", Aliases: []string{"size"}},
		{Name: "y", Aliases: []string{"steps", "gen"}},
		{Name: "w", Aliases: []string{"width"}},
		{Name: "c", Aliases: []string{"center"}},
		{Name: "s", Aliases: []string{"skip"}},
	}
)

func (f Format) String() string { return Formats.Name(int(f)) }

// Letter returns the one letter code used in specification strings.
func (f Format) Letter() string { return Formats.Name(int(f))[:1] }

// Discrete reports if the format has a finite number of cell values.
func (f Format) Discrete() bool { return f == Standard || f == Totalistic }

// DefaultSpec returns the specification used for missing keys.
func DefaultSpec() Spec {
	return Spec{Format: Standard, K: 2, R: 1, Init: Init{Mode: InitCenter}, X: 91, Y: 135, W: 91}
}

// ParseSpec parses a specification string of key{value} pairs. Unknown keys
// are ignored, and values that can not be parsed or are out of range fall
// back to the defaults.
func ParseSpec(s string) (Spec, error) {
	pairs, err := pogen.ParseBraces(s)
	if err != nil {
		return Spec{}, err
	}
	spec := DefaultSpec()
	spec.W = 0
	intIn := func(str string, min, max, def int) int {
		v, err := strconv.Atoi(strings.TrimSpace(str))
		if err != nil || v < min || v > max {
			return def
		}
		return v
	}
	for _, p := range pairs {
		key, ok := specKeys.Lookup(pogen.NewString(p.Key))
		if !ok {
			continue
		}
		switch specKeys.Name(key) {
		case "f":
			if f, ok := Formats.Lookup(pogen.NewString(p.Value)); ok {
				spec.Format = Format(f)
			}
		case "k":
			spec.K = intIn(p.Value, 0, 36, 2)
		case "r":
			if strings.Contains(p.Value, ".") {
				v, err := strconv.ParseFloat(strings.TrimSpace(p.Value), 64)
				if err == nil && v >= 0.5 && v <= 10 {
					spec.R = math.Round(v*2) / 2
				}
			} else {
				spec.R = float64(intIn(p.Value, 1, 10, 1))
			}
		case "i":
			spec.Init = parseInit(p.Value)
		case "x":
			spec.X = intIn(p.Value, 1, MaxX, 91)
		case "y":
			spec.Y = intIn(p.Value, 1, MaxY, 135)
		case "w":
			spec.W = intIn(p.Value, 0, MaxY, 0)
		case "c":
			spec.C = intIn(p.Value, -MaxX, MaxX, 0)
		case "s":
			spec.S = intIn(p.Value, 0, MaxY, 0)
		}
	}
	if spec.K <= 0 && spec.Format.Discrete() {
		spec.Format = Float
	}
	if spec.W <= 0 {
		spec.W = spec.X
	}
	if !spec.Format.Discrete() {
		spec.K = 0
	}
	return spec, nil
}

func parseInit(s string) Init {
	s = strings.TrimSpace(s)
	if s != "" && strings.Trim(s, "0123456789") == "" {
		return Init{Mode: InitDigits, Digits: s}
	}
	if f, ok := pogen.ParseNumber(s); ok {
		return Init{Mode: InitNumber, Number: f}
	}
	if v, err := pogen.Parse(strings.Trim(s, "()[]")); err == nil && v.Len() > 0 {
		if fs, ok := v.FloatSlice(); ok {
			return Init{Mode: InitList, List: fs}
		}
	}
	if m, ok := InitModes.Lookup(pogen.NewString(s)); ok {
		return Init{Mode: InitMode(m)}
	}
	return Init{Mode: InitCenter}
}

func (i Init) String() string {
	switch i.Mode {
	case InitRandom:
		return "random"
	case InitDigits:
		return i.Digits
	case InitNumber:
		return pogen.FormatNumber(i.Number)
	case InitList:
		parts := make([]string, len(i.List))
		for j, v := range i.List {
			parts[j] = pogen.FormatNumber(v)
		}
		return strings.Join(parts, ",")
	}
	return "center"
}

// Span returns the number of cells in a neighborhood.
func (s Spec) Span() int {
	return int(s.R*2 + 1)
}

// Generations returns the number of generations needed, including skipped
// ones.
func (s Spec) Generations() int {
	return s.Y + s.S
}

func (s Spec) String() string {
	return fmt.Sprintf("f{%s}k{%d}r{%s}i{%s}x{%d}y{%d}w{%d}c{%d}s{%d}",
		s.Format.Letter(), s.K, pogen.FormatNumber(s.R), s.Init, s.X, s.Y, s.W, s.C, s.S)
}
