package component

import (
	"image/color"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/splashfx/particle"
)

// ParticleEmitter is one spawned instance of a particle template.
type ParticleEmitter struct {
	Template  *particle.Template
	Playing   bool
	Elapsed   float64
	NextBurst int
}

var ParticleEmitterComponent = NewComponent[ParticleEmitter]()

// Particle is a single droplet.
type Particle struct {
	Velocity cp.Vector
	Gravity  float64
	Age      float64
	Lifetime float64
	Size     float64
	Color    color.RGBA
}

var ParticleComponent = NewComponent[Particle]()
