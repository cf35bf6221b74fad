package po

import (
	"github.com/vsariola/pogen"
)

// static is a parameter object of named switches. Option arguments are kept
// as their canonical names.
type static struct {
	base
	names  []string
	values []pogen.Value
	check  func(values []pogen.Value) error
}

type switchArg struct {
	arg  pogen.Arg
	opts pogen.Options // nil for plain values
}

func init() {
	register(TextureLib,
		staticInfo("parallelMotionList", "pml", "Transposes each event by a value of the list, delayed by timeDelay seconds.",
			func(v []pogen.Value) error {
				if _, ok := v[0].FloatSlice(); !ok {
					return pogen.Errorf("elements in transpositionList must be numbers.")
				}
				if v[1].Float() < 0 {
					return pogen.Errorf("timeDelay must be greater than or equal to zero.")
				}
				return nil
			},
			switchArg{arg: arg("transpositionList", pogen.ArgList, mustParse("()"), "transpositions of the parallel voices")},
			switchArg{arg: arg("timeDelay", pogen.ArgNum, mustParse("0"), "delay of the parallel voices in seconds")}),
		staticInfo("ornamentLibrarySelect", "ols", "Selects the ornament library used by the texture.", nil,
			optionArg("libraryName", Ornaments, "diatonicGroupA")),
		staticInfo("ornamentMaxDensity", "omd", "Sets the fraction of events that may be ornamented.",
			func(v []pogen.Value) error {
				if f := v[0].Float(); f < 0 || f > 1 {
					return pogen.Errorf("ornamentMaxDensity must be between 0 and 1.")
				}
				return nil
			},
			switchArg{arg: arg("percent", pogen.ArgNum, mustParse("1"), "fraction between 0 and 1")}),
		staticInfo("maxTimeOffset", "mto", "Sets the maximum random time offset of events.",
			func(v []pogen.Value) error {
				if v[0].Float() < 0 {
					return pogen.Errorf("time must be greater than or equal to zero.")
				}
				return nil
			},
			switchArg{arg: arg("time", pogen.ArgNum, mustParse("0.025"), "offset in seconds")}),
		staticInfo("totalEventCount", "tec", "Sets the number of events of the texture.", positiveCount,
			switchArg{arg: arg("count", pogen.ArgNum, mustParse("20"), "number of events")}),
		staticInfo("totalSegmentCount", "tsc", "Sets the number of segments of the texture.", positiveCount,
			switchArg{arg: arg("count", pogen.ArgNum, mustParse("10"), "number of segments")}),
		staticInfo("pitchSelectorControl", "psc", "Sets how pitches are selected from a set.", nil,
			optionArg("selectionString", pogen.SelectModes, "randomPermutate")),
		staticInfo("multisetSelectorControl", "msc", "Sets how sets are selected from a path.", nil,
			optionArg("selectionString", pogen.SelectModes, "randomPermutate")),
		onOffInfo("loopWithinSet", "lws", "Sets if pitches loop within a set."),
		onOffInfo("pathDurationFraction", "pdf", "Sets if the duration fractions of the path are used."),
		onOffInfo("snapSustainTime", "sst", "Sets if sustain times snap to the event grid."),
		onOffInfo("snapEventTime", "set", "Sets if event times snap to the event grid."),
		onOffInfo("parameterInterpolationControl", "pic", "Sets if parameters are interpolated."),
		staticInfo("levelFieldMonophonic", "lfm", "Sets the level at which field values change in monophonic textures.", nil,
			optionArg("level", LevelsMono, "event")),
		staticInfo("levelOctaveMonophonic", "lom", "Sets the level at which octave values change in monophonic textures.", nil,
			optionArg("level", LevelsMono, "event")),
		staticInfo("levelFieldPolyphonic", "lfp", "Sets the level at which field values change in polyphonic textures.", nil,
			optionArg("level", LevelsPoly, "event")),
		staticInfo("levelOctavePolyphonic", "lop", "Sets the level at which octave values change in polyphonic textures.", nil,
			optionArg("level", LevelsPoly, "event")),
		staticInfo("levelFrameDuration", "lfd", "Sets the level at which frame durations change.", nil,
			optionArg("level", LevelsFrame, "event")),
		staticInfo("levelEventPartition", "lep", "Sets the level at which events are partitioned.", nil,
			optionArg("level", Partitions, "path")),
		staticInfo("eventDensityPartition", "edp", "Sets how event density is partitioned.", nil,
			optionArg("level", Densities, "duration")),
		staticInfo("levelEventCount", "lec", "Sets if the event count applies to each segment or the whole texture.", nil,
			optionArg("level", EventCounts, "segment")),
		staticInfo("interpolationMethodControl", "imc", "Sets the interpolation method between events.", nil,
			optionArg("method", Interpolations, "linear")),
	)
	register(CloneLib,
		staticInfo("timeReferenceSource", "trs", "Sets if clone filters see the time of the texture or of the clone.", nil,
			optionArg("name", TimeReferences, "textureTime")),
		staticInfo("retrogradeMethodToggle", "rmt", "Sets how the clone is reversed.", nil,
			optionArg("name", Retrogrades, "off")),
	)
}

func optionArg(name string, opts pogen.Options, def string) switchArg {
	return switchArg{arg: arg(name, pogen.ArgStr|pogen.ArgInt, pogen.NewString(def), opts.Label()), opts: opts}
}

func onOffInfo(name, acronym, doc string) *Info {
	return staticInfo(name, acronym, doc, nil, optionArg("onOff", OnOff, "on"))
}

func positiveCount(v []pogen.Value) error {
	if v[0].Float() <= 0 {
		return pogen.Errorf("eventCount must be greater than zero.")
	}
	return nil
}

func staticInfo(name, acronym, doc string, check func([]pogen.Value) error, sargs ...switchArg) *Info {
	info := &Info{Name: name, Acronym: acronym, Doc: doc}
	for _, s := range sargs {
		info.Args = append(info.Args, s.arg)
	}
	info.New = func(b *builder, args []pogen.Value) (PO, error) {
		p := &static{base: b.base(), check: check}
		for i, s := range sargs {
			v := args[i]
			if s.opts != nil {
				v = pogen.NewString(s.opts.Name(b.option(v, s.opts, s.arg.Name)))
			}
			p.names = append(p.names, s.arg.Name)
			p.values = append(p.values, v)
		}
		return b.done(p)
	}
	return info
}

func (p *static) CheckArgs() error {
	if p.check == nil {
		return nil
	}
	return p.check(p.values)
}

func (p *static) Switch(name string) pogen.Value {
	for i, n := range p.names {
		if n == name {
			return p.values[i]
		}
	}
	return pogen.Value{}
}

func (p *static) Args() []pogen.Value {
	return append([]pogen.Value(nil), p.values...)
}

func (p *static) Repr() string {
	parts := []string{p.Type()}
	for _, v := range p.values {
		parts = append(parts, v.String())
	}
	return repr(parts...)
}

func (p *static) Reset() {}
