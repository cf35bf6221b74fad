package po

import "github.com/vsariola/pogen"

// Option tables of the string arguments. The index of an option is its value.
var (
	Steps = pogen.Options{
		{Name: "event", Aliases: []string{"e", "1"}},
		{Name: "time", Aliases: []string{"t", "0"}},
	}
	Loops = pogen.Options{
		{Name: "loop", Aliases: []string{"l", "1"}},
		{Name: "single", Aliases: []string{"s", "0"}},
	}
	Directions = pogen.Options{
		{Name: "upDown", Aliases: []string{"ud", "lud", "linearUpDown", "0"}},
		{Name: "downUp", Aliases: []string{"du", "ldu", "linearDownUp", "1"}},
		{Name: "up", Aliases: []string{"u", "lu", "linearUp", "2"}},
		{Name: "down", Aliases: []string{"d", "ld", "linearDown", "3"}},
	}
	OnOff = pogen.Options{
		{Name: "on", Aliases: []string{"1"}},
		{Name: "off", Aliases: []string{"0"}},
	}
	Anchors = pogen.Options{
		{Name: "lower", Aliases: []string{"l"}},
		{Name: "upper", Aliases: []string{"u"}},
		{Name: "average", Aliases: []string{"a", "avg"}},
		{Name: "median", Aliases: []string{"m", "med"}},
	}
	// Thresholds are in quantize.Match order.
	Thresholds = pogen.Options{
		{Name: "lower", Aliases: []string{"l"}},
		{Name: "upper", Aliases: []string{"u"}},
		{Name: "match", Aliases: []string{"m"}},
	}
	TypeFormats = pogen.Options{
		{Name: "stringQuote", Aliases: []string{"sq"}},
		{Name: "string", Aliases: []string{"str", "s"}},
	}
	Comparisons = pogen.Options{
		{Name: "equal", Aliases: []string{"e", "="}},
		{Name: "greaterThan", Aliases: []string{"gt", "g", ">"}},
		{Name: "greaterThanOrEqual", Aliases: []string{"gtoe", ">="}},
		{Name: "lessThan", Aliases: []string{"lt", "l", "<"}},
		{Name: "lessThanOrEqual", Aliases: []string{"ltoe", "<="}},
	}
	LevelsMono = pogen.Options{
		{Name: "event", Aliases: []string{"e"}},
		{Name: "set", Aliases: []string{"s"}},
	}
	LevelsPoly = pogen.Options{
		{Name: "event", Aliases: []string{"e"}},
		{Name: "set", Aliases: []string{"s"}},
		{Name: "voice", Aliases: []string{"v"}},
	}
	LevelsFrame = pogen.Options{
		{Name: "event", Aliases: []string{"e"}},
		{Name: "frame", Aliases: []string{"f"}},
	}
	Partitions = pogen.Options{
		{Name: "path", Aliases: []string{"p"}},
		{Name: "set", Aliases: []string{"s"}},
	}
	Densities = pogen.Options{
		{Name: "duration", Aliases: []string{"d", "dur"}},
		{Name: "set", Aliases: []string{"s"}},
	}
	EventCounts = pogen.Options{
		{Name: "texture", Aliases: []string{"t", "text"}},
		{Name: "segment", Aliases: []string{"s", "seg"}},
	}
	Interpolations = pogen.Options{
		{Name: "linear", Aliases: []string{"l"}},
		{Name: "halfCosine", Aliases: []string{"h", "c", "hc"}},
		{Name: "power", Aliases: []string{"p", "e", "exp"}},
	}
	Ornaments = pogen.Options{
		{Name: "chromaticGroupC", Aliases: []string{"cgc"}},
		{Name: "diatonicGroupA", Aliases: []string{"dga"}},
		{Name: "diatonicGroupB", Aliases: []string{"dgb"}},
		{Name: "microGroupA", Aliases: []string{"mga"}},
		{Name: "microGroupB", Aliases: []string{"mgb"}},
		{Name: "microGroupC", Aliases: []string{"mgc"}},
		{Name: "trillGroupA", Aliases: []string{"tga"}},
		{Name: "off", Aliases: []string{"0"}},
	}
	TimeReferences = pogen.Options{
		{Name: "textureTime", Aliases: []string{"tt"}},
		{Name: "cloneTime", Aliases: []string{"ct"}},
	}
	Retrogrades = pogen.Options{
		{Name: "off", Aliases: []string{"0"}},
		{Name: "timeInverse", Aliases: []string{"ti"}},
		{Name: "eventInverse", Aliases: []string{"ei"}},
	}
	// presets of the logistic map growth rate
	logisticPresets = pogen.Options{
		{Name: "bi", Aliases: []string{"2"}},
		{Name: "quad", Aliases: []string{"4"}},
		{Name: "chaos"},
		{Name: "periodic01"},
	}
	logisticRates = []float64{3.2, 3.44951, 3.5699461, 3.57}
	noisePresets  = pogen.Options{
		{Name: "white", Aliases: []string{"w"}},
		{Name: "pink", Aliases: []string{"p"}},
		{Name: "brown", Aliases: []string{"b"}},
		{Name: "black"},
	}
)
