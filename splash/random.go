package splash

import "math/rand/v2"

// Random is the source of clip and pitch choices. *rand.Rand satisfies it.
type Random interface {
	Float64() float64
	IntN(n int) int
}

// NewRandom returns a deterministic generator for seed.
func NewRandom(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xda3e39cb94b95bdb))
}

// RangeFloat returns min + (max-min)*u for u in [0,1). With min > max the
// result lies in (max, min].
func RangeFloat(r Random, min, max float64) float64 {
	return min + (max-min)*r.Float64()
}
