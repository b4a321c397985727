package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/splashfx/ecs"
	"github.com/milk9111/splashfx/ecs/component"
	"github.com/milk9111/splashfx/splash"
)

const groundSkin = 0.5

// ControllerSystem integrates kinematic character controllers. Vertical
// motion comes from gravity and jumps; controllers stand on solid geometry
// found with a downward ray. The reported Velocity is the displacement
// actually achieved this frame divided by the time step.
type ControllerSystem struct {
	physics *PhysicsSystem
}

func NewControllerSystem(physics *PhysicsSystem) *ControllerSystem {
	return &ControllerSystem{physics: physics}
}

func (s *ControllerSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	dt := w.TimeStep()

	ecs.ForEach2(w, component.CharacterControllerComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, c *component.CharacterController, t *component.Transform) {
		if in, ok := ecs.Get(w, e, component.InputComponent.Kind()); ok {
			speed := c.Speed
			if in.Sprint {
				speed *= component.SprintFactor
			}
			c.Move.X = in.MoveX * speed
			if in.JumpPressed && c.Grounded && c.JumpSpeed > 0 {
				c.SetFallSpeed(-c.JumpSpeed)
				c.Grounded = false
			}
		}

		prev := t.Position()
		fall := c.FallSpeed() + c.Gravity*dt
		next := prev.Add(cp.Vector{X: c.Move.X * dt, Y: (c.Move.Y + fall) * dt})

		c.Grounded = false
		if fall >= 0 {
			halfH := c.Height / 2
			reach := halfH + math.Max(0, next.Y-prev.Y) + groundSkin
			if hit, ok := s.groundBelow(cp.Vector{X: next.X, Y: prev.Y}, reach); ok {
				if foot := hit.Point.Y - halfH; next.Y >= foot {
					next.Y = foot
					fall = 0
					c.Grounded = true
				}
			}
		}
		c.SetFallSpeed(fall)

		t.SetPosition(next)
		c.Velocity = next.Sub(prev).Mult(1 / dt)
	})
}

func (s *ControllerSystem) groundBelow(from cp.Vector, reach float64) (splash.Hit, bool) {
	if s.physics == nil {
		return splash.Hit{}, false
	}
	return s.physics.RaycastSolid(from, splash.Down, reach)
}
