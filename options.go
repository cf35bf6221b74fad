package pogen

import (
	"sort"
	"strings"
	"unicode"
)

type (
	// Option is one accepted value of an option string argument, with the
	// alternative spellings that resolve to it.
	Option struct {
		Name    string
		Aliases []string
	}

	// Options is an ordered table of options. The index of an option in the
	// table is the value Parse returns.
	Options []Option
)

// Parse resolves v against the table, case-insensitively matching names and
// aliases. If all option names start with different letters, an acronym of
// the input is also tried against the acronyms of the names, so that "u" or
// "Up" find "up". what names the argument in the error message.
func (o Options) Parse(v Value, what string) (int, error) {
	if i, ok := o.Lookup(v); ok {
		return i, nil
	}
	return -1, Errorf("bad %s: enter %s.", what, o.Label())
}

// Lookup is like Parse but reports failure with a bool.
func (o Options) Lookup(v Value) (int, bool) {
	if !v.IsNum() && !v.IsString() {
		return -1, false
	}
	raw := strings.TrimSpace(v.Str())
	if raw == "" {
		return -1, false
	}
	s := strings.ToLower(raw)
	for i, opt := range o {
		if strings.ToLower(opt.Name) == s {
			return i, true
		}
		for _, a := range opt.Aliases {
			if strings.ToLower(a) == s {
				return i, true
			}
		}
	}
	if o.uniqueLeads() {
		acr := Acronym(raw)
		for i, opt := range o {
			if Acronym(opt.Name) == acr {
				return i, true
			}
		}
	}
	return -1, false
}

func (o Options) uniqueLeads() bool {
	seen := map[rune]bool{}
	for _, opt := range o {
		if opt.Name == "" {
			continue
		}
		c := unicode.ToLower([]rune(opt.Name)[0])
		if seen[c] {
			return false
		}
		seen[c] = true
	}
	return true
}

// Name returns the name of the ith option.
func (o Options) Name(i int) string {
	if i < 0 || i >= len(o) {
		return ""
	}
	return o[i].Name
}

// Label lists the option names alphabetically for help and error messages,
// e.g. "average, lower, median, or upper".
func (o Options) Label() string {
	names := make([]string, len(o))
	for i, opt := range o {
		names[i] = opt.Name
	}
	return JoinOr(names)
}

// JoinOr sorts names and joins them as "a, b, or c".
func JoinOr(names []string) string {
	names = append([]string(nil), names...)
	if len(names) == 1 {
		return names[0]
	}
	sort.Strings(names)
	if len(names) == 0 {
		return ""
	}
	names[len(names)-1] = "or " + names[len(names)-1]
	if len(names) == 2 {
		return strings.Join(names, " ")
	}
	return strings.Join(names, ", ")
}

// Acronym returns the first character and all upper case letters of s in
// lower case: "orderedCyclicRetrograde" becomes "ocr".
func Acronym(s string) string {
	var b strings.Builder
	for i, c := range s {
		if i == 0 || unicode.IsUpper(c) {
			b.WriteRune(unicode.ToLower(c))
		}
	}
	return b.String()
}
