package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/splashfx/ecs"
	"github.com/milk9111/splashfx/ecs/component"
	"github.com/milk9111/splashfx/splash"
)

const (
	collisionTypeActor cp.CollisionType = iota + 1
	collisionTypeSolid
)

const (
	categorySolid uint = 1 << iota
	categoryActor
)

// DefaultGravity is in world units per second squared, Y down.
const DefaultGravity = 900.0

var solidFilter = cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, categorySolid)

type PhysicsSystem struct {
	space    *cp.Space
	gravity  float64
	entities map[ecs.Entity]*bodyInfo
}

type bodyInfo struct {
	body   *cp.Body
	shapes []*cp.Shape
	static bool
}

func NewPhysicsSystem(gravity float64) *PhysicsSystem {
	ps := &PhysicsSystem{
		gravity:  gravity,
		entities: make(map[ecs.Entity]*bodyInfo),
	}
	ps.space = ps.newSpace()
	return ps
}

func (ps *PhysicsSystem) newSpace() *cp.Space {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: ps.gravity})
	return space
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	if ps.space == nil {
		ps.space = ps.newSpace()
	}

	ps.syncEntities(w)
	ps.space.Step(w.TimeStep())
	ps.syncTransforms(w)
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ps.cleanupEntities(w)

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		if info := ps.entities[e]; info != nil {
			if bodyComp.Body == nil {
				bodyComp.Body = info.body
				if len(info.shapes) > 0 {
					bodyComp.Shape = info.shapes[0]
				}
			}
			return
		}

		info := ps.createBodyInfo(transform, bodyComp)
		if info == nil {
			return
		}
		ps.entities[e] = info
		bodyComp.Body = info.body
		bodyComp.Shape = info.shapes[0]
	})
}

func bodySize(bodyComp *component.PhysicsBody) (float64, float64) {
	if bodyComp.Radius > 0 {
		return bodyComp.Radius * 2, bodyComp.Radius * 2
	}
	width, height := bodyComp.Width, bodyComp.Height
	if width <= 0 || height <= 0 {
		width, height = 32, 32
	}
	return width, height
}

func (ps *PhysicsSystem) createBodyInfo(transform *component.Transform, bodyComp *component.PhysicsBody) *bodyInfo {
	sizeW, sizeH := bodySize(bodyComp)

	topLeftX := transform.X + bodyComp.OffsetX
	topLeftY := transform.Y + bodyComp.OffsetY
	if !bodyComp.AlignTopLeft {
		topLeftX -= sizeW / 2
		topLeftY -= sizeH / 2
	}
	centerX := topLeftX + sizeW/2
	centerY := topLeftY + sizeH/2

	if bodyComp.Static {
		var shape *cp.Shape
		if bodyComp.Radius > 0 {
			shape = cp.NewCircle(ps.space.StaticBody, bodyComp.Radius, cp.Vector{X: centerX, Y: centerY})
		} else {
			bb := cp.BB{L: topLeftX, B: topLeftY, R: topLeftX + sizeW, T: topLeftY + sizeH}
			shape = cp.NewBox2(ps.space.StaticBody, bb, 0)
		}
		shape.SetFriction(bodyComp.Friction)
		shape.SetElasticity(bodyComp.Elasticity)
		shape.SetCollisionType(collisionTypeSolid)
		shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, categorySolid, cp.ALL_CATEGORIES))
		ps.space.AddShape(shape)
		return &bodyInfo{body: ps.space.StaticBody, shapes: []*cp.Shape{shape}, static: true}
	}

	mass := bodyComp.Mass
	if mass <= 0 {
		mass = 1
	}
	var moment float64
	switch {
	case bodyComp.LockRotation:
		moment = cp.INFINITY
	case bodyComp.Radius > 0:
		moment = cp.MomentForCircle(mass, 0, bodyComp.Radius, cp.Vector{})
	default:
		moment = cp.MomentForBox(mass, sizeW, sizeH)
	}

	body := cp.NewBody(mass, moment)
	body.SetPosition(cp.Vector{X: centerX, Y: centerY})
	body.SetAngle(transform.Rotation)

	var shape *cp.Shape
	if bodyComp.Radius > 0 {
		shape = cp.NewCircle(body, bodyComp.Radius, cp.Vector{})
	} else {
		shape = cp.NewBox(body, sizeW, sizeH, 0)
	}
	shape.SetFriction(bodyComp.Friction)
	shape.SetElasticity(bodyComp.Elasticity)
	shape.SetCollisionType(collisionTypeActor)
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, categoryActor, categorySolid))

	ps.space.AddBody(body)
	ps.space.AddShape(shape)
	return &bodyInfo{body: body, shapes: []*cp.Shape{shape}}
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		if bodyComp.Body == nil || bodyComp.Static {
			return
		}
		pos := bodyComp.Body.Position()
		if bodyComp.AlignTopLeft {
			w, h := bodySize(bodyComp)
			transform.X = pos.X - w/2 - bodyComp.OffsetX
			transform.Y = pos.Y - h/2 - bodyComp.OffsetY
		} else {
			transform.X = pos.X - bodyComp.OffsetX
			transform.Y = pos.Y - bodyComp.OffsetY
		}
		transform.Rotation = bodyComp.Body.Angle()
	})
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			continue
		}
		for _, shape := range info.shapes {
			if shape != nil {
				ps.space.RemoveShape(shape)
			}
		}
		if info.body != nil && !info.static {
			ps.space.RemoveBody(info.body)
		}
		delete(ps.entities, e)
	}
}

// RaycastSolid returns the first solid shape hit along dir within
// maxDistance. Actors and trigger volumes are ignored.
func (ps *PhysicsSystem) RaycastSolid(origin, dir cp.Vector, maxDistance float64) (splash.Hit, bool) {
	if ps == nil || ps.space == nil || maxDistance <= 0 {
		return splash.Hit{}, false
	}
	end := origin.Add(dir.Normalize().Mult(maxDistance))
	info := ps.space.SegmentQueryFirst(origin, end, 0, solidFilter)
	if info.Shape == nil {
		return splash.Hit{}, false
	}
	return splash.Hit{Point: info.Point, Normal: info.Normal, Distance: info.Alpha * maxDistance}, true
}

// Surface returns the splash surface query for w: the closest of solid
// geometry and zone volumes.
func (ps *PhysicsSystem) Surface(w *ecs.World) splash.SurfaceQuery {
	return &surfaceQuery{physics: ps, world: w}
}

type surfaceQuery struct {
	physics *PhysicsSystem
	world   *ecs.World
}

func (q *surfaceQuery) Raycast(origin, dir cp.Vector, maxDistance float64) (splash.Hit, bool) {
	best, found := q.physics.RaycastSolid(origin, dir, maxDistance)
	if hit, ok := raycastZones(q.world, origin, dir, maxDistance); ok && (!found || hit.Distance < best.Distance) {
		best, found = hit, true
	}
	return best, found
}
