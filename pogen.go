// Package pogen contains the building blocks shared by all parameter objects:
// the Value model and argument grammar, argument checking, option tables, the
// Selector sequencing primitive, unit interval helpers and the evaluation
// Context. The parameter objects themselves live in package po.
package pogen

type (
	// Context carries the state of the surrounding composition that some
	// parameter objects read. A nil *Context is valid and means all defaults.
	Context struct {
		BPM      float64   // tempo; zero or negative means DefaultBPM
		Pitch    float64   // raw pitch of the current event, valid if HasPitch
		HasPitch bool      // whether Pitch is set
		Chord    []float64 // raw pitches of the current chord
	}

	// Pulse is the output of a rhythm parameter object, in seconds.
	Pulse struct {
		Dur float64 // time until the next event
		Sus float64 // sounding duration
		Acc float64 // accent, in the unit interval
	}

	// Generator is anything that can be called with a time point; package po
	// generators implement it.
	Generator interface {
		Call(t float64, ctx *Context) Value
	}

	// Pulser is anything that produces rhythm pulses; package po rhythms
	// implement it.
	Pulser interface {
		Pulse(t float64, ctx *Context) Pulse
	}
)

const DefaultBPM = 120.0

// Tempo returns the BPM of the context, or DefaultBPM.
func (c *Context) Tempo() float64 {
	if c == nil || c.BPM <= 0 {
		return DefaultBPM
	}
	return c.BPM
}

// CurrentPitch returns the pitch of the current event, if any.
func (c *Context) CurrentPitch() (float64, bool) {
	if c == nil || !c.HasPitch {
		return 0, false
	}
	return c.Pitch, true
}

// CurrentChord returns the current chord; nil if there is none.
func (c *Context) CurrentChord() []float64 {
	if c == nil {
		return nil
	}
	return c.Chord
}

// WithPitch returns a copy of the context with the current pitch and chord set.
func (c *Context) WithPitch(pitch float64, chord []float64) *Context {
	ret := Context{}
	if c != nil {
		ret = *c
	}
	ret.Pitch, ret.HasPitch, ret.Chord = pitch, true, chord
	return &ret
}
