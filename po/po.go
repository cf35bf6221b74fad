// Package po implements the parameter objects: generators, rhythms, texture and
// clone statics, and filters. Parameter objects are created from specification
// strings or Values with a Factory, by looking up their name in a registry of
// five libraries.
package po

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vsariola/pogen"
)

type (
	// PO is the common interface of all parameter objects.
	PO interface {
		// Type returns the canonical name of the parameter object, such as
		// "waveSine".
		Type() string
		// Repr returns a specification string that creates an equivalent
		// parameter object.
		Repr() string
		// CheckArgs validates the arguments of the parameter object and all of
		// its children.
		CheckArgs() error
		// Reset rewinds counters, selectors and random sources, so that the
		// parameter object replays the same values again.
		Reset()
	}

	// Generator is a parameter object producing a value for each time point.
	Generator interface {
		PO
		Call(t float64, ctx *pogen.Context) pogen.Value
		// Current returns the value of the last call.
		Current() pogen.Value
		Output() OutputFormat
	}

	// Rhythm is a parameter object producing a pulse for each event.
	Rhythm interface {
		PO
		Pulse(t float64, ctx *pogen.Context) pogen.Pulse
		// Current returns the pulse of the last call.
		Current() pogen.Pulse
	}

	// Filter transforms whole arrays of values. The values, times and contexts
	// must all have the same length; the inputs are never modified.
	Filter interface {
		PO
		Filter(values []pogen.Value, times []float64, ctxs []*pogen.Context) ([]pogen.Value, error)
	}

	// Static is a parameter object holding named switches for textures and
	// clones.
	Static interface {
		PO
		// Switch returns the value of a named switch, or an invalid Value if
		// there is no switch with that name.
		Switch(name string) pogen.Value
		Args() []pogen.Value
	}

	// OutputFormat tells what kind of values a generator produces.
	OutputFormat int

	// Library is a namespace of parameter objects. The same acronym may mean
	// different parameter objects in different libraries.
	Library int

	// Info describes a registered parameter object.
	Info struct {
		Name    string
		Acronym string
		Library Library
		Args    []pogen.Arg
		Doc     string
		New     func(b *builder, args []pogen.Value) (PO, error)
	}

	// NoSuchParameterError is returned when a name is not found in the
	// requested libraries.
	NoSuchParameterError struct {
		Name      string
		Libraries []Library
	}
)

const (
	Num OutputFormat = iota
	List
	Str
)

const (
	GeneratorLib Library = iota
	RhythmLib
	TextureLib
	CloneLib
	FilterLib
)

// Libraries lists the option strings of the libraries in Library order.
var Libraries = pogen.Options{
	{Name: "generator", Aliases: []string{"g", "gen"}},
	{Name: "rhythm", Aliases: []string{"r"}},
	{Name: "texture", Aliases: []string{"t", "textureStatic"}},
	{Name: "clone", Aliases: []string{"c", "cloneStatic"}},
	{Name: "filter", Aliases: []string{"f"}},
}

var libraryTitles = [...]string{
	"Generator ParameterObject",
	"Rhythm Generator ParameterObject",
	"Texture Static ParameterObject",
	"Clone Static ParameterObject",
	"Filter ParameterObject",
}

var allLibraries = []Library{GeneratorLib, RhythmLib, TextureLib, CloneLib, FilterLib}

var registry = map[Library][]*Info{}

func (f OutputFormat) String() string {
	switch f {
	case List:
		return "list"
	case Str:
		return "str"
	}
	return "num"
}

func (l Library) String() string { return Libraries.Name(int(l)) }

// Title returns the human readable name of the library.
func (l Library) Title() string {
	if int(l) < 0 || int(l) >= len(libraryTitles) {
		return "unknown library"
	}
	return libraryTitles[l]
}

// ParseLibrary resolves a library option string, such as "g" or "rhythm".
func ParseLibrary(s string) (Library, error) {
	i, err := Libraries.Parse(pogen.NewString(s), "library")
	return Library(i), err
}

func (e *NoSuchParameterError) Error() string {
	titles := make([]string, len(e.Libraries))
	for i, l := range e.Libraries {
		titles[i] = l.Title()
	}
	return fmt.Sprintf("no parameter named %q in %s", e.Name, pogen.JoinOr(titles))
}

func register(lib Library, infos ...*Info) {
	for _, info := range infos {
		info.Library = lib
		registry[lib] = append(registry[lib], info)
	}
}

// Lookup finds a parameter object by its acronym or name, case-insensitively,
// trying the libraries in turn. No libraries means all of them.
func Lookup(name string, libs ...Library) (*Info, bool) {
	if len(libs) == 0 {
		libs = allLibraries
	}
	name = strings.TrimSpace(name)
	for _, lib := range libs {
		for _, info := range registry[lib] {
			if strings.EqualFold(info.Acronym, name) || strings.EqualFold(info.Name, name) {
				return info, true
			}
		}
	}
	return nil, false
}

// Registered returns the parameter objects of a library, sorted by name.
func Registered(lib Library) []*Info {
	ret := append([]*Info(nil), registry[lib]...)
	sort.Slice(ret, func(i, j int) bool { return ret[i].Name < ret[j].Name })
	return ret
}

// Defaults returns the specification of the parameter object with every
// argument at its default value.
func (i *Info) Defaults() pogen.Value {
	items := []pogen.Value{pogen.NewString(i.Name)}
	for _, a := range i.Args {
		items = append(items, a.Default)
	}
	return pogen.NewList(items...)
}

// Usage returns a one line synopsis, such as "waveSine, stepString, secPerCycle,
// phase, min, max".
func (i *Info) Usage() string {
	parts := []string{i.Name}
	for _, a := range i.Args {
		parts = append(parts, a.Name)
	}
	return strings.Join(parts, ", ")
}
