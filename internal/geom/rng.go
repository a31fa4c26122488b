package geom

import (
	"math"
	"math/rand"
)

// RNG is a per-match deterministic random source. Matches never share a
// global math/rand instance: each match is seeded once at creation so
// that two runs with the same seed and the same accepted input stream
// produce bitwise-identical outcomes, independent of what any
// other concurrently running match is doing.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates an RNG seeded with the given 64-bit match seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewSource(seed))}
}

// Float64 returns a pseudo-random number in [0.0, 1.0).
func (g *RNG) Float64() float64 {
	return g.r.Float64()
}

// Intn returns a pseudo-random number in [0, n).
func (g *RNG) Intn(n int) int {
	return g.r.Intn(n)
}

// Vec2In returns a pseudo-random point uniformly distributed within the
// disc of the given radius centered at the origin, used to deterministically
// offset the zone center from the match seed.
func (g *RNG) Vec2In(radius float64) Vec2 {
	angle := g.Float64() * 2 * 3.141592653589793
	r := radius * math.Sqrt(g.Float64()) // sqrt keeps the density uniform over the disc's area
	return FromHeading(angle).Scale(r)
}
