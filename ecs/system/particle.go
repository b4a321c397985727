package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/splashfx/ecs"
	"github.com/milk9111/splashfx/ecs/component"
	"github.com/milk9111/splashfx/particle"
	"github.com/milk9111/splashfx/splash"
)

// ParticleSystem plays particle emitters and integrates their droplets.
type ParticleSystem struct {
	rnd particle.Random
}

func NewParticleSystem(rnd particle.Random) *ParticleSystem {
	return &ParticleSystem{rnd: rnd}
}

// Spawner returns the effect spawner for w.
func (s *ParticleSystem) Spawner(w *ecs.World) splash.EffectSpawner {
	return particleSpawner{world: w}
}

type particleSpawner struct {
	world *ecs.World
}

func (p particleSpawner) Spawn(tmpl *particle.Template, at cp.Vector, angle float64) splash.Effect {
	if p.world == nil || tmpl == nil {
		return nil
	}
	e := ecs.CreateEntity(p.world)
	_ = ecs.Add(p.world, e, component.TransformComponent.Kind(), &component.Transform{X: at.X, Y: at.Y, ScaleX: 1, ScaleY: 1, Rotation: angle})
	_ = ecs.Add(p.world, e, component.ParticleEmitterComponent.Kind(), &component.ParticleEmitter{Template: tmpl})
	return &effectHandle{world: p.world, entity: e, tmpl: tmpl}
}

type effectHandle struct {
	world  *ecs.World
	entity ecs.Entity
	tmpl   *particle.Template
}

func (h *effectHandle) Play() {
	if em, ok := ecs.Get(h.world, h.entity, component.ParticleEmitterComponent.Kind()); ok {
		em.Playing = true
	}
}

func (h *effectHandle) Lifetime() float64 {
	return h.tmpl.Lifetime()
}

func (h *effectHandle) DestroyAfter(seconds float64) {
	destroyAfter(h.world, h.entity, seconds)
}

func (s *ParticleSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	dt := w.TimeStep()

	ecs.ForEach2(w, component.ParticleEmitterComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, em *component.ParticleEmitter, t *component.Transform) {
		if !em.Playing || em.Template == nil {
			return
		}
		times := em.Template.BurstTimes()
		for em.NextBurst < len(times) && times[em.NextBurst] <= em.Elapsed {
			s.burst(w, em.Template, t.Position())
			em.NextBurst++
		}
		em.Elapsed += dt
	})

	ecs.ForEach2(w, component.ParticleComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, p *component.Particle, t *component.Transform) {
		p.Age += dt
		if p.Age >= p.Lifetime {
			ecs.DestroyEntity(w, e)
			return
		}
		p.Velocity.Y += p.Gravity * dt
		t.X += p.Velocity.X * dt
		t.Y += p.Velocity.Y * dt
	})
}

func (s *ParticleSystem) burst(w *ecs.World, tmpl *particle.Template, at cp.Vector) {
	if s.rnd == nil {
		return
	}
	for _, d := range particle.Burst(tmpl, at, s.rnd) {
		e := ecs.CreateEntity(w)
		_ = ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: d.Position.X, Y: d.Position.Y, ScaleX: 1, ScaleY: 1})
		_ = ecs.Add(w, e, component.ParticleComponent.Kind(), &component.Particle{
			Velocity: d.Velocity,
			Gravity:  tmpl.Gravity,
			Lifetime: d.Lifetime,
			Size:     d.Size,
			Color:    tmpl.Color,
		})
	}
}
