// Package generator produces single synthetic telemetry records.
//
// Every function here is pure apart from the random source it is handed:
// no I/O, no blocking, no state kept between calls. Counters such as the
// epoch index or the x position belong to the caller.
package generator

import (
	"math"
	"math/rand/v2"
)

// NewRand returns an independent random source for one stream.
// Sources are never shared between goroutines.
func NewRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// NewSeededRand returns a deterministic source, used by tests and the CLI --seed flag
func NewSeededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Round rounds v half away from zero to the given number of decimal places
func Round(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}

// Uniform draws a float in [lo, hi)
func Uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + (hi-lo)*rng.Float64()
}

// IntBetween draws an int in [lo, hi], both ends inclusive
func IntBetween(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.IntN(hi-lo+1)
}

// Gauss draws from a normal distribution with the given mean and standard deviation
func Gauss(rng *rand.Rand, mean, stdDev float64) float64 {
	return mean + stdDev*rng.NormFloat64()
}
