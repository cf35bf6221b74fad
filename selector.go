package pogen

type (
	// SelectMode is the ordering policy of a Selector.
	SelectMode int

	// Selector draws elements from a fixed source list according to a
	// SelectMode. The source is copied on creation and on Update.
	Selector[T any] struct {
		src     []T
		mode    SelectMode
		rng     *Source
		i       int
		scratch []T
		path    []int // oscillation path of indices
	}
)

const (
	RandomChoice SelectMode = iota
	RandomWalk
	RandomPermutate
	OrderedCyclic
	OrderedCyclicRetrograde
	OrderedOscillate
)

// SelectModes lists the option strings of the select modes in SelectMode order.
var SelectModes = Options{
	{Name: "randomChoice", Aliases: []string{"rc", "0"}},
	{Name: "randomWalk", Aliases: []string{"rw"}},
	{Name: "randomPermutate", Aliases: []string{"rp"}},
	{Name: "orderedCyclic", Aliases: []string{"oc", "1"}},
	{Name: "orderedCyclicRetrograde", Aliases: []string{"ocr"}},
	{Name: "orderedOscillate", Aliases: []string{"oo"}},
}

// ParseSelectMode resolves a select mode option string, such as "rp" or
// "orderedCyclic".
func ParseSelectMode(v Value) (SelectMode, error) {
	i, err := SelectModes.Parse(v, "selectionString")
	return SelectMode(i), err
}

func (m SelectMode) String() string {
	if int(m) < 0 || int(m) >= len(SelectModes) {
		return "unknown"
	}
	return SelectModes[m].Name
}

// NewSelector returns a Selector over a copy of src. rng is used by the random
// modes and may be shared with the owner of the Selector.
func NewSelector[T any](src []T, mode SelectMode, rng *Source) *Selector[T] {
	s := &Selector[T]{mode: mode, rng: rng}
	s.setSource(src)
	s.Reset()
	return s
}

func (s *Selector[T]) setSource(src []T) {
	s.src = append([]T(nil), src...)
	n := len(s.src)
	switch {
	case n == 0:
		s.path = nil
	case n == 1:
		s.path = []int{0}
	case n == 2:
		s.path = []int{0, 1}
	default:
		s.path = make([]int, 0, 2*n-2)
		for i := 0; i < n; i++ {
			s.path = append(s.path, i)
		}
		for i := n - 2; i > 0; i-- {
			s.path = append(s.path, i)
		}
	}
}

func (s *Selector[T]) Mode() SelectMode { return s.mode }

func (s *Selector[T]) Len() int { return len(s.src) }

// Source returns a copy of the source list.
func (s *Selector[T]) Source() []T { return append([]T(nil), s.src...) }

// Reset rewinds the cursor and clears the permutation scratch, leaving source
// and mode intact.
func (s *Selector[T]) Reset() {
	s.scratch = nil
	if s.mode == OrderedCyclicRetrograde {
		s.i = len(s.src) - 1
	} else {
		s.i = 0
	}
}

// Update replaces the source. The cursor is only reset if the number of
// elements changed.
func (s *Selector[T]) Update(src []T) {
	changed := len(src) != len(s.src)
	s.setSource(src)
	if changed {
		s.Reset()
	}
}

// Next returns the next element, or ErrEmptySelector if there are no elements.
func (s *Selector[T]) Next() (T, error) {
	var zero T
	n := len(s.src)
	if n == 0 {
		return zero, ErrEmptySelector
	}
	if n == 1 {
		return s.src[0], nil
	}
	switch s.mode {
	case RandomWalk:
		if s.rng.Coin() {
			s.i++
		} else {
			s.i--
		}
		s.i = ((s.i % n) + n) % n
		return s.src[s.i], nil
	case RandomPermutate:
		if len(s.scratch) == 0 {
			s.scratch = append([]T(nil), s.src...)
		}
		j := s.rng.IntN(len(s.scratch))
		ret := s.scratch[j]
		s.scratch = append(s.scratch[:j], s.scratch[j+1:]...)
		s.i++
		return ret, nil
	case OrderedCyclic:
		if s.i >= n {
			s.i = 0
		}
		ret := s.src[s.i]
		s.i++
		return ret, nil
	case OrderedCyclicRetrograde:
		if s.i < 0 || s.i >= n {
			s.i = n - 1
		}
		ret := s.src[s.i]
		s.i--
		return ret, nil
	case OrderedOscillate:
		if s.i >= len(s.path) {
			s.i = 0
		}
		ret := s.src[s.path[s.i]]
		s.i++
		return ret, nil
	default:
		return s.src[s.rng.IntN(n)], nil
	}
}

// MustNext is Next for selectors known to be non-empty.
func (s *Selector[T]) MustNext() T {
	v, err := s.Next()
	if err != nil {
		panic(err)
	}
	return v
}
