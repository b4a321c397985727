package system

import (
	"github.com/milk9111/splashfx/ecs"
	"github.com/milk9111/splashfx/ecs/component"
)

// TTLSystem counts down TTL components by the world time step and destroys
// entities whose time is up.
type TTLSystem struct{}

func NewTTLSystem() *TTLSystem {
	return &TTLSystem{}
}

func (s *TTLSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.TimeStep()
	ecs.ForEach(w, component.TTLComponent.Kind(), func(e ecs.Entity, ttl *component.TTL) {
		ttl.Seconds -= dt
		if ttl.Seconds > 0 {
			return
		}
		ecs.DestroyEntity(w, e)
	})
}

// destroyAfter schedules e for destruction; a later call replaces the
// earlier deadline.
func destroyAfter(w *ecs.World, e ecs.Entity, seconds float64) {
	if w == nil || !w.IsAlive(e) {
		return
	}
	_ = ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{Seconds: seconds})
}
