package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/splashfx/ecs"
	"github.com/milk9111/splashfx/ecs/component"
	"github.com/milk9111/splashfx/particle"
	"github.com/milk9111/splashfx/splash"
)

func TestParticleSystemBurstsOverDuration(t *testing.T) {
	w := ecs.NewWorld()
	ps := NewParticleSystem(splash.NewRandom(3))
	tmpl := &particle.Template{Duration: 0.5, StartLifetime: 2, Count: 4, Bursts: 2, Speed: 50, Size: 1}

	fx := ps.Spawner(w).Spawn(tmpl, cp.Vector{X: 10, Y: 20}, 0)
	if fx == nil {
		t.Fatalf("expected an effect")
	}
	if fx.Lifetime() != 2.5 {
		t.Fatalf("lifetime = %v, want 2.5", fx.Lifetime())
	}

	step(w, []ecs.System{ps}, 1)
	if n := countWith(w, component.ParticleComponent.Kind()); n != 0 {
		t.Fatalf("nothing should emit before Play, got %d", n)
	}

	fx.Play()
	step(w, []ecs.System{ps}, 1)
	if n := countWith(w, component.ParticleComponent.Kind()); n != 4 {
		t.Fatalf("expected first burst of 4, got %d", n)
	}

	step(w, []ecs.System{ps}, 20)
	if n := countWith(w, component.ParticleComponent.Kind()); n != 8 {
		t.Fatalf("expected second burst by 0.25s, got %d", n)
	}
}

func TestParticleSystemDropletsMoveAndExpire(t *testing.T) {
	w := ecs.NewWorld()
	ps := NewParticleSystem(splash.NewRandom(9))
	tmpl := &particle.Template{StartLifetime: 0.5, Count: 3, Speed: 100, Spread: 0.5, Gravity: 900, Size: 2}

	fx := ps.Spawner(w).Spawn(tmpl, cp.Vector{X: 0, Y: 100}, 0)
	fx.Play()
	fx.DestroyAfter(fx.Lifetime())

	systems := []ecs.System{ps, NewTTLSystem()}
	step(w, systems, 2)

	ecs.ForEach2(w, component.ParticleComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, p *component.Particle, tr *component.Transform) {
		if tr.Y >= 100 {
			t.Fatalf("droplet should rise initially, y=%v", tr.Y)
		}
		if p.Color != tmpl.Color {
			t.Fatalf("droplet color not copied")
		}
	})

	step(w, systems, 40)
	if n := countWith(w, component.ParticleComponent.Kind()); n != 0 {
		t.Fatalf("expected every droplet expired, %d left", n)
	}
	if n := countWith(w, component.ParticleEmitterComponent.Kind()); n != 0 {
		t.Fatalf("expected the instance disposed, %d left", n)
	}
}
