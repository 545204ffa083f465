package sketch

import (
	"math"
	"math/rand/v2"
)

// Source supplies uniform random numbers in [0, 1).
//
// A Source is the only mutable state touched while synthesizing strokes.
// It is not safe for concurrent use; a render pass draws from it strictly
// sequentially. *rand.Rand from math/rand/v2 satisfies Source.
type Source interface {
	Float64() float64
}

// NewSource returns a deterministic Source seeded with seed.
// Two sources created with the same seed produce identical sequences, and
// therefore identical strokes for identical inputs.
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// randomValue returns a uniform value in [0, max).
func randomValue(src Source, max float64) float64 {
	return src.Float64() * max
}

// randomSigned returns a uniform value in [-max, max).
func randomSigned(src Source, max float64) float64 {
	return (src.Float64()*2 - 1) * max
}

// randomOffset returns a vector uniformly distributed over the disk of the
// given radius. The angle is drawn before the radius.
func randomOffset(src Source, radius float64) Point {
	angle := src.Float64() * 2 * math.Pi
	r := radius * math.Sqrt(src.Float64())
	return Point{X: r * math.Cos(angle), Y: r * math.Sin(angle)}
}
