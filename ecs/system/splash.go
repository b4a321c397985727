package system

import (
	"log"

	"github.com/milk9111/splashfx/ecs"
	"github.com/milk9111/splashfx/ecs/component"
	"github.com/milk9111/splashfx/splash"
)

// SplashSystem drives every SplashTrigger: it advances cooldowns with the
// world time step and feeds zone events into the triggers.
type SplashSystem struct {
	Surface func(w *ecs.World) splash.SurfaceQuery
	Effects func(w *ecs.World) splash.EffectSpawner
	Audio   func(w *ecs.World) splash.AudioService
	Rand    splash.Random
	Debug   bool

	frame int
}

func NewSplashSystem(physics *PhysicsSystem, particles *ParticleSystem, audio *AudioSystem, rnd splash.Random) *SplashSystem {
	s := &SplashSystem{Rand: rnd}
	if physics != nil {
		s.Surface = physics.Surface
	}
	if particles != nil {
		s.Effects = particles.Spawner
	}
	if audio != nil {
		s.Audio = audio.Service
	}
	return s
}

func (s *SplashSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	s.frame++
	dt := w.TimeStep()

	ecs.ForEach(w, component.SplashTriggerComponent.Kind(), func(e ecs.Entity, st *component.SplashTrigger) {
		if st.Trigger == nil {
			return
		}
		env, ok := s.env(w, e)
		if !ok {
			return
		}
		if sp, ok := st.Trigger.Update(dt, env); ok {
			s.record(e, st, sp)
		}
	})

	for _, evt := range w.Events().Items() {
		if evt.Type != EventZoneEntered && evt.Type != EventZoneExited {
			continue
		}
		ze, ok := evt.Data.(ZoneEvent)
		if !ok {
			continue
		}
		st, ok := ecs.Get(w, ze.Entity, component.SplashTriggerComponent.Kind())
		if !ok || st.Trigger == nil {
			continue
		}
		if evt.Type == EventZoneExited {
			st.Trigger.Exit(ze.Tag)
			continue
		}
		env, ok := s.env(w, ze.Entity)
		if !ok {
			continue
		}
		if sp, ok := st.Trigger.Enter(ze.Tag, env); ok {
			s.record(ze.Entity, st, sp)
		}
	}
}

func (s *SplashSystem) env(w *ecs.World, e ecs.Entity) (splash.Env, bool) {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return splash.Env{}, false
	}
	env := splash.Env{
		Position: t.Position(),
		Velocity: velocitySource(w, e),
		Rand:     s.Rand,
	}
	if s.Surface != nil {
		env.Surface = s.Surface(w)
	}
	if s.Effects != nil {
		env.Effects = s.Effects(w)
	}
	if s.Audio != nil {
		env.Audio = s.Audio(w)
	}
	if src, ok := ecs.Get(w, e, component.AudioSourceComponent.Kind()); ok && src.Source != nil {
		env.Output = src.Source
	}
	return env, true
}

// velocitySource lists the entity's locomotion capabilities in priority
// order: rigid body first, then character controller.
func velocitySource(w *ecs.World, e ecs.Entity) splash.VelocitySource {
	var sources splash.Sources
	if b, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && !b.Static {
		sources = append(sources, splash.BodyVelocity{Body: b.Body})
	}
	if c, ok := ecs.Get(w, e, component.CharacterControllerComponent.Kind()); ok {
		sources = append(sources, splash.ControllerVelocity{Reported: &c.Velocity})
	}
	return sources
}

func (s *SplashSystem) record(e ecs.Entity, st *component.SplashTrigger, sp splash.Splash) {
	st.Last = sp
	st.LastFrame = s.frame
	st.Count++
	if s.Debug {
		clip := "-"
		if sp.Clip != nil {
			clip = sp.Clip.Name()
		}
		log.Printf("splash: entity=%s anchor=(%.1f,%.1f) clip=%s pitch=%.3f particle=%v transient=%v",
			e, sp.Anchor.X, sp.Anchor.Y, clip, sp.Pitch, sp.Particle, sp.Transient)
	}
}
