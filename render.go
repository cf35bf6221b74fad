package pogen

// Render calls the generator at event indexes 0 to n-1 and returns the values.
func Render(g Generator, n int, ctx *Context) []Value {
	ret := make([]Value, n)
	for i := range ret {
		ret[i] = g.Call(float64(i), ctx)
	}
	return ret
}

// RenderFloats is like Render, but returns only the numeric values; strings
// and lists are returned as 0.
func RenderFloats(g Generator, n int, ctx *Context) []float64 {
	ret := make([]float64, n)
	for i := range ret {
		ret[i] = g.Call(float64(i), ctx).Float()
	}
	return ret
}

// RenderRhythm produces n notes: the rhythm is called at the start time of each
// note, and the pitch generator, if not nil, at the event index. The current
// pitch is placed in the context before the rhythm is called, so rhythms that
// depend on the pitch see it.
func RenderRhythm(r Pulser, pitch Generator, n int, ctx *Context) []Note {
	ret := make([]Note, n)
	t := 0.0
	for i := range ret {
		p := 0.0
		if pitch != nil {
			p = pitch.Call(float64(i), ctx).Float()
		}
		pulse := r.Pulse(t, ctx.WithPitch(p, ctx.CurrentChord()))
		ret[i] = Note{Start: t, Pulse: pulse, Pitch: p}
		t += pulse.Dur
	}
	return ret
}
