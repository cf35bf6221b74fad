package random

import (
	"math"

	"github.com/vsariola/pogen"
)

// GameNoise generates 1/f^gamma noise with the Voss dice algorithm: a set of
// continuous dice is rolled following a binary counter, each die only when its
// counter bit changes, and the weighted sum of the dice is the output. Lower
// bits change often and higher bits rarely, so the weights set by gamma decide
// how much slow movement the noise has.
type GameNoise struct {
	dice     []float64
	lastMove int
	pos      int
	moves    int
	rng      *pogen.Source
	sum      float64
}

// Gamma presets.
const (
	White = 0
	Pink  = 1
	Brown = 2
	Black = 3
)

// NewGameNoise returns a noise game with enough dice for resolution distinct
// moves. resolution must be positive.
func NewGameNoise(resolution int, rng *pogen.Source) *GameNoise {
	if resolution < 1 {
		resolution = 1
	}
	n := 0
	for x := 1; x < resolution; x *= 2 {
		n++
	}
	if n == 0 {
		n = 1
	}
	g := &GameNoise{dice: make([]float64, n), moves: 1 << n, rng: rng}
	g.Reset()
	return g
}

// Dice returns the number of dice.
func (g *GameNoise) Dice() int { return len(g.dice) }

// Reset rewinds the move counter and rolls all dice from the random source,
// so a game reset together with its source replays the same noise.
func (g *GameNoise) Reset() {
	g.pos = 0
	g.lastMove = 0
	for i := range g.dice {
		g.dice[i] = g.rng.Float64()
	}
}

// Weights returns the normalized die weights for gamma, leftmost (slowest)
// die first.
func Weights(dice int, gamma float64) []float64 {
	gamma = -math.Abs(gamma)
	p := math.Exp(-(gamma + 1) * 0.5 * math.Ln2)
	w := make([]float64, dice)
	for i := range w {
		w[dice-1-i] = math.Pow(p, float64(i))
	}
	ret, ok := pogen.UnitNormProportion(w)
	if !ok {
		return w
	}
	return ret
}

// Step plays one move with the given gamma and returns the weighted sum of the
// dice, in the unit interval.
func (g *GameNoise) Step(gamma float64) float64 {
	n := len(g.dice)
	move := g.pos
	for i := 0; i < n; i++ {
		// die i is driven by bit n-1-i of the move: die 0 is the slowest
		bit := uint(n - 1 - i)
		if (move>>bit)&1 != (g.lastMove>>bit)&1 {
			g.dice[i] = g.rng.Float64()
		}
	}
	g.lastMove = move
	g.pos++
	if g.pos >= g.moves {
		g.pos = 0
	}
	w := Weights(n, gamma)
	g.sum = 0
	for i, d := range g.dice {
		g.sum += d * w[i]
	}
	return g.sum
}
