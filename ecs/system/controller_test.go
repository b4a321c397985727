package system

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/splashfx/ecs"
	"github.com/milk9111/splashfx/ecs/component"
	"github.com/milk9111/splashfx/splash"
)

func addFloor(t *testing.T, w *ecs.World, x, y, width, height float64) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	mustAdd(t, w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1})
	mustAdd(t, w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Width: width, Height: height, Static: true, AlignTopLeft: true})
	return e
}

func TestControllerLandsAndWalks(t *testing.T) {
	w := ecs.NewWorld()
	physics := NewPhysicsSystem(0)
	addFloor(t, w, 0, 100, 400, 50)
	e, c := addWalker(t, w, 100, 50)
	c.Speed = 60
	c.Gravity = 600
	c.JumpSpeed = 200
	in := &component.Input{MoveX: 1}
	mustAdd(t, w, e, component.InputComponent.Kind(), in)

	step(w, []ecs.System{physics, NewControllerSystem(physics)}, 120)

	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	if !c.Grounded {
		t.Fatalf("expected controller grounded, y=%v", tr.Y)
	}
	if math.Abs(tr.Y-90) > 1e-6 {
		t.Fatalf("expected feet on the floor at y=90, got %v", tr.Y)
	}
	if math.Abs(c.Velocity.X-60) > 1e-6 || math.Abs(c.Velocity.Y) > 1e-6 {
		t.Fatalf("expected reported velocity (60,0), got %v", c.Velocity)
	}
	if got := splash.HorizontalSpeed(c.Velocity); math.Abs(got-60) > 1e-6 {
		t.Fatalf("horizontal speed %v", got)
	}

	in.JumpPressed = true
	step(w, []ecs.System{physics, NewControllerSystem(physics)}, 1)
	if c.Grounded || c.Velocity.Y >= 0 {
		t.Fatalf("expected to leave the ground moving up, velocity %v", c.Velocity)
	}
}

func TestControllerWithoutGroundFalls(t *testing.T) {
	w := ecs.NewWorld()
	_, c := addWalker(t, w, 0, 0)
	c.Gravity = 600

	step(w, []ecs.System{NewControllerSystem(nil)}, 30)
	if c.Grounded {
		t.Fatalf("nothing to stand on")
	}
	if c.Velocity.Y <= 0 {
		t.Fatalf("expected falling velocity, got %v", c.Velocity)
	}
}

func TestPhysicsSurfacePicksNearest(t *testing.T) {
	w := ecs.NewWorld()
	physics := NewPhysicsSystem(0)
	addFloor(t, w, 0, 100, 400, 50)
	physics.Update(w)

	q := physics.Surface(w)
	hit, ok := q.Raycast(cp.Vector{X: 50, Y: 0}, splash.Down, 200)
	if !ok || math.Abs(hit.Point.Y-100) > 1e-6 {
		t.Fatalf("expected floor hit at 100, got %+v ok=%v", hit, ok)
	}

	addWater(t, w, "Water", 0, 80, 400, 20)
	hit, ok = q.Raycast(cp.Vector{X: 50, Y: 0}, splash.Down, 200)
	if !ok || math.Abs(hit.Point.Y-80) > 1e-6 {
		t.Fatalf("expected water surface at 80, got %+v ok=%v", hit, ok)
	}

	if _, ok := q.Raycast(cp.Vector{X: 50, Y: 0}, splash.Down, 50); ok {
		t.Fatalf("ray too short should miss")
	}
}

func TestControllerSprintScalesSpeed(t *testing.T) {
	w := ecs.NewWorld()
	physics := NewPhysicsSystem(0)
	addFloor(t, w, 0, 100, 400, 50)
	e, c := addWalker(t, w, 100, 50)
	c.Speed = 60
	c.Gravity = 600
	in := &component.Input{MoveX: -1, Sprint: true}
	mustAdd(t, w, e, component.InputComponent.Kind(), in)

	step(w, []ecs.System{physics, NewControllerSystem(physics)}, 90)

	want := -60 * component.SprintFactor
	if math.Abs(c.Velocity.X-want) > 1e-6 {
		t.Fatalf("expected sprint velocity %v, got %v", want, c.Velocity.X)
	}
}
