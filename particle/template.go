// Package particle describes splash particle effects and generates the
// initial droplet state for a burst.
package particle

import (
	"image/color"
	"math"

	"github.com/jakecoffman/cp"
)

// DefaultColor is a pale water blue.
var DefaultColor = color.RGBA{R: 168, G: 216, B: 255, A: 224}

// Template is the immutable description of a particle effect. An instance
// spawned from it plays for Duration seconds; each droplet lives for up to
// StartLifetime seconds after it is emitted.
type Template struct {
	Name          string
	Duration      float64
	StartLifetime float64
	// Count droplets are emitted per burst.
	Count int
	// Bursts is how many bursts are spread evenly over Duration. Zero or one
	// means a single burst on Play.
	Bursts  int
	Speed   float64
	Spread  float64
	Gravity float64
	Size    float64
	Color   color.RGBA
}

// Lifetime is how long an instance must stay alive so its last droplet can
// finish.
func (t *Template) Lifetime() float64 {
	if t == nil {
		return 0
	}
	return t.Duration + t.StartLifetime
}

// BurstTimes returns the instance-relative times at which bursts fire.
func (t *Template) BurstTimes() []float64 {
	if t == nil {
		return nil
	}
	n := t.Bursts
	if n <= 1 || t.Duration <= 0 {
		return []float64{0}
	}
	out := make([]float64, n)
	step := t.Duration / float64(n)
	for i := range out {
		out[i] = step * float64(i)
	}
	return out
}

// Random is the subset of math/rand/v2 used for bursts.
type Random interface {
	Float64() float64
}

// Droplet is the initial state of one emitted particle.
type Droplet struct {
	Position cp.Vector
	Velocity cp.Vector
	Lifetime float64
	Size     float64
}

// Burst generates Count droplets fanned around straight up (-Y) by Spread
// radians. Speeds and lifetimes vary between 50% and 100% of the template.
func Burst(t *Template, at cp.Vector, rnd Random) []Droplet {
	if t == nil || t.Count <= 0 || rnd == nil {
		return nil
	}
	out := make([]Droplet, 0, t.Count)
	for i := 0; i < t.Count; i++ {
		angle := -math.Pi/2 + (rnd.Float64()*2-1)*t.Spread/2
		speed := t.Speed * (0.5 + 0.5*rnd.Float64())
		out = append(out, Droplet{
			Position: at,
			Velocity: cp.Vector{X: math.Cos(angle) * speed, Y: math.Sin(angle) * speed},
			Lifetime: t.StartLifetime * (0.5 + 0.5*rnd.Float64()),
			Size:     t.Size * (0.75 + 0.5*rnd.Float64()),
		})
	}
	return out
}
