// Package splash decides when and where a moving entity kicks up water and
// parameterises the particle and audio feedback for it.
//
// A Trigger is driven by its host: Enter and Exit come from the host's
// overlap callbacks, Update runs once per frame. Every collaborator is
// optional; a missing one turns its step into a no-op.
package splash

import (
	"math"
	"math/rand/v2"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/splashfx/particle"
	"github.com/milk9111/splashfx/sound"
)

// TransientMargin keeps a transient emitter alive slightly past its clip.
const TransientMargin = 0.1

// Down is the ray direction in screen space.
var Down = cp.Vector{X: 0, Y: 1}

// Config is set by the owner and never validated.
type Config struct {
	WaterTag          string
	MinSpeedForSplash float64
	SplashInterval    float64
	MinPitch          float64
	MaxPitch          float64
	RaycastDistance   float64
	RaycastOffset     cp.Vector
	Clips             []*sound.Clip
	Particle          *particle.Template
	// Output, when set, plays every splash instead of a transient emitter.
	Output AudioSource
	// CountOverlaps keeps the entity in water until every overlapping water
	// zone has been left.
	CountOverlaps bool
}

func DefaultConfig() Config {
	return Config{
		WaterTag:          "Water",
		MinSpeedForSplash: 0.2,
		SplashInterval:    0.4,
		MinPitch:          0.95,
		MaxPitch:          1.05,
		RaycastDistance:   3,
		RaycastOffset:     cp.Vector{X: 0, Y: -0.5},
	}
}

// Env carries the per-call view of the host.
type Env struct {
	Position cp.Vector
	Velocity VelocitySource
	Surface  SurfaceQuery
	Effects  EffectSpawner
	Audio    AudioService
	// Output is the entity's own audio source, used when Config.Output is
	// nil.
	Output AudioSource
	Rand   Random
}

// Splash describes one emission attempt that found a surface.
type Splash struct {
	Origin   cp.Vector
	Anchor   cp.Vector
	Particle bool
	Clip     *sound.Clip
	Pitch    float64
	// Transient is true when a temporary emitter was created for the clip.
	Transient bool
}

// Trigger is the per-entity state machine.
type Trigger struct {
	Config Config

	inWater  bool
	cooldown float64
	overlaps int
}

func NewTrigger(cfg Config) *Trigger {
	return &Trigger{Config: cfg}
}

func (t *Trigger) InWater() bool {
	return t != nil && t.inWater
}

func (t *Trigger) Cooldown() float64 {
	if t == nil {
		return 0
	}
	return t.cooldown
}

// Enter handles the start of an overlap with a volume tagged tag. Entering
// water from outside splashes at once, regardless of speed.
func (t *Trigger) Enter(tag string, env Env) (Splash, bool) {
	if t == nil || tag != t.Config.WaterTag {
		return Splash{}, false
	}
	if t.Config.CountOverlaps {
		t.overlaps++
	}
	if t.inWater {
		return Splash{}, false
	}
	t.inWater = true
	t.cooldown = t.Config.SplashInterval
	return t.Emit(env)
}

// Exit handles the end of an overlap with a volume tagged tag.
func (t *Trigger) Exit(tag string) {
	if t == nil || tag != t.Config.WaterTag {
		return
	}
	if t.Config.CountOverlaps {
		if t.overlaps > 0 {
			t.overlaps--
		}
		if t.overlaps > 0 {
			return
		}
	}
	t.inWater = false
}

// Update advances the cooldown by dt seconds and splashes when it runs out
// while the entity moves fast enough in water.
func (t *Trigger) Update(dt float64, env Env) (Splash, bool) {
	if t == nil {
		return Splash{}, false
	}
	if !t.inWater {
		t.cooldown = 0
		return Splash{}, false
	}

	speed := HorizontalSpeed(ResolveVelocity(env.Velocity))
	if speed < t.Config.MinSpeedForSplash {
		t.cooldown = 0
		return Splash{}, false
	}

	t.cooldown -= dt
	if t.cooldown > 0 {
		return Splash{}, false
	}
	t.cooldown = t.Config.SplashInterval
	return t.Emit(env)
}

// Emit resolves the surface below the entity and fires the particle and
// audio feedback there. It reports false, with no side effects, when the ray
// finds nothing or the entity is not in water.
func (t *Trigger) Emit(env Env) (Splash, bool) {
	if t == nil || !t.inWater || env.Surface == nil {
		return Splash{}, false
	}
	cfg := t.Config
	origin := env.Position.Add(cfg.RaycastOffset)
	hit, ok := env.Surface.Raycast(origin, Down, cfg.RaycastDistance)
	if !ok {
		return Splash{}, false
	}

	s := Splash{Origin: origin, Anchor: hit.Point}

	if cfg.Particle != nil && env.Effects != nil {
		if fx := env.Effects.Spawn(cfg.Particle, hit.Point, 0); fx != nil {
			fx.Play()
			fx.DestroyAfter(fx.Lifetime())
			s.Particle = true
		}
	}

	rnd := env.Rand
	if rnd == nil {
		rnd = globalRandom{}
	}
	clip := pickClip(cfg.Clips, rnd)
	if clip == nil {
		return s, true
	}
	pitch := RangeFloat(rnd, cfg.MinPitch, cfg.MaxPitch)
	s.Clip = clip
	s.Pitch = pitch

	out := cfg.Output
	if out == nil {
		out = env.Output
	}
	if out != nil {
		out.SetPitch(pitch)
		out.PlayOneShot(clip)
		return s, true
	}

	if env.Audio == nil {
		return s, true
	}
	emitter := env.Audio.NewTransient(hit.Point, 1)
	if emitter == nil {
		return s, true
	}
	emitter.SetPitch(pitch)
	emitter.PlayOneShot(clip)
	emitter.DestroyAfter(clip.Length()/math.Max(pitch, sound.MinPitch) + TransientMargin)
	s.Transient = true
	return s, true
}

func pickClip(clips []*sound.Clip, rnd Random) *sound.Clip {
	if len(clips) == 0 {
		return nil
	}
	return clips[rnd.IntN(len(clips))]
}

type globalRandom struct{}

func (globalRandom) Float64() float64 { return rand.Float64() }
func (globalRandom) IntN(n int) int   { return rand.IntN(n) }
