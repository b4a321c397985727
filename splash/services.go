package splash

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/splashfx/particle"
	"github.com/milk9111/splashfx/sound"
)

// Hit is the result of a surface ray.
type Hit struct {
	Point    cp.Vector
	Normal   cp.Vector
	Distance float64
}

// SurfaceQuery casts rays against the world.
type SurfaceQuery interface {
	Raycast(origin, dir cp.Vector, maxDistance float64) (Hit, bool)
}

// Effect is a spawned particle instance. It owns itself once scheduled for
// destruction.
type Effect interface {
	Play()
	// Lifetime is the configured duration plus the start lifetime multiplier.
	Lifetime() float64
	DestroyAfter(seconds float64)
}

// EffectSpawner instantiates particle templates.
type EffectSpawner interface {
	Spawn(tmpl *particle.Template, at cp.Vector, angle float64) Effect
}

// AudioSource plays clips at its current pitch. PlayOneShot overlays and
// never interrupts earlier sounds.
type AudioSource interface {
	SetPitch(pitch float64)
	PlayOneShot(clip *sound.Clip)
}

// TransientAudio is a short-lived positioned emitter.
type TransientAudio interface {
	AudioSource
	DestroyAfter(seconds float64)
}

// AudioService creates transient emitters. spatialBlend 1 is fully 3D,
// 0 is flat.
type AudioService interface {
	NewTransient(at cp.Vector, spatialBlend float64) TransientAudio
}
