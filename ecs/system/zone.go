package system

import (
	"math"
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/splashfx/ecs"
	"github.com/milk9111/splashfx/ecs/component"
	"github.com/milk9111/splashfx/splash"
)

const (
	EventZoneEntered = "zone_entered"
	EventZoneExited  = "zone_exited"
)

// ZoneEvent is the payload of zone enter/exit events.
type ZoneEvent struct {
	Entity ecs.Entity
	Zone   ecs.Entity
	Tag    string
}

type aabb struct {
	x, y, w, h float64
}

func (a aabb) overlaps(b aabb) bool {
	return a.x < b.x+b.w && a.x+a.w > b.x && a.y < b.y+b.h && a.y+a.h > b.y
}

type zonePair struct {
	actor ecs.Entity
	zone  ecs.Entity
}

// ZoneSystem is the overlap source for tagged zones. It compares each
// actor's collision volume with every zone and pushes one event per pair
// when an overlap begins or ends.
type ZoneSystem struct {
	active map[zonePair]string
}

func NewZoneSystem() *ZoneSystem {
	return &ZoneSystem{active: make(map[zonePair]string)}
}

func (s *ZoneSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	if s.active == nil {
		s.active = make(map[zonePair]string)
	}

	type zoneBox struct {
		entity ecs.Entity
		tag    string
		box    aabb
	}
	var zones []zoneBox
	ecs.ForEach2(w, component.ZoneComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, z *component.Zone, t *component.Transform) {
		if box, ok := zoneBounds(z, t); ok {
			zones = append(zones, zoneBox{entity: e, tag: z.Tag, box: box})
		}
	})

	current := make(map[zonePair]string)
	for _, actor := range ecs.Query(w, component.TransformComponent.Kind()) {
		box, ok := actorBounds(w, actor)
		if !ok {
			continue
		}
		for _, z := range zones {
			if z.entity == actor || !box.overlaps(z.box) {
				continue
			}
			current[zonePair{actor: actor, zone: z.entity}] = z.tag
		}
	}

	var exited []zonePair
	for pair := range s.active {
		if _, ok := current[pair]; !ok {
			exited = append(exited, pair)
		}
	}
	sortPairs(exited)
	for _, pair := range exited {
		tag := s.active[pair]
		delete(s.active, pair)
		if w.IsAlive(pair.actor) {
			w.Events().Push(ecs.Event{Type: EventZoneExited, Data: ZoneEvent{Entity: pair.actor, Zone: pair.zone, Tag: tag}})
		}
	}

	var entered []zonePair
	for pair := range current {
		if _, ok := s.active[pair]; !ok {
			entered = append(entered, pair)
		}
	}
	sortPairs(entered)
	for _, pair := range entered {
		tag := current[pair]
		s.active[pair] = tag
		w.Events().Push(ecs.Event{Type: EventZoneEntered, Data: ZoneEvent{Entity: pair.actor, Zone: pair.zone, Tag: tag}})
	}
}

// Overlapping reports whether actor currently overlaps zone.
func (s *ZoneSystem) Overlapping(actor, zone ecs.Entity) bool {
	if s == nil {
		return false
	}
	_, ok := s.active[zonePair{actor: actor, zone: zone}]
	return ok
}

func sortPairs(pairs []zonePair) {
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].actor != pairs[j].actor {
			return pairs[i].actor < pairs[j].actor
		}
		return pairs[i].zone < pairs[j].zone
	})
}

func zoneBounds(z *component.Zone, t *component.Transform) (aabb, bool) {
	if z == nil || t == nil || z.Width <= 0 || z.Height <= 0 {
		return aabb{}, false
	}
	return aabb{x: t.X + z.OffsetX, y: t.Y + z.OffsetY, w: z.Width, h: z.Height}, true
}

// actorBounds is the collision volume of a moving entity: its dynamic body
// or, failing that, its character controller.
func actorBounds(w *ecs.World, e ecs.Entity) (aabb, bool) {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return aabb{}, false
	}
	if b, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && !b.Static {
		width, height := bodySize(b)
		x := t.X + b.OffsetX
		y := t.Y + b.OffsetY
		if !b.AlignTopLeft {
			x -= width / 2
			y -= height / 2
		}
		return aabb{x: x, y: y, w: width, h: height}, true
	}
	if c, ok := ecs.Get(w, e, component.CharacterControllerComponent.Kind()); ok && c.Width > 0 && c.Height > 0 {
		return aabb{x: t.X - c.Width/2, y: t.Y - c.Height/2, w: c.Width, h: c.Height}, true
	}
	return aabb{}, false
}

func raycastZones(w *ecs.World, origin, dir cp.Vector, maxDistance float64) (splash.Hit, bool) {
	if w == nil || maxDistance <= 0 {
		return splash.Hit{}, false
	}
	d := dir.Normalize().Mult(maxDistance)
	best := splash.Hit{}
	found := false
	ecs.ForEach2(w, component.ZoneComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, z *component.Zone, t *component.Transform) {
		box, ok := zoneBounds(z, t)
		if !ok {
			return
		}
		hit, tHit, normal := segmentAABBHit(origin.X, origin.Y, d.X, d.Y, box)
		if !hit {
			return
		}
		dist := tHit * maxDistance
		if found && dist >= best.Distance {
			return
		}
		best = splash.Hit{Point: origin.Add(d.Mult(tHit)), Normal: normal, Distance: dist}
		found = true
	})
	return best, found
}

// segmentAABBHit clips the segment (x0,y0)+(dx,dy)*t, t in [0,1], against
// box and returns the entry parameter and the normal of the entered face.
// Segments starting inside the box do not hit it.
func segmentAABBHit(x0, y0, dx, dy float64, box aabb) (bool, float64, cp.Vector) {
	tmin := 0.0
	tmax := 1.0
	normal := cp.Vector{}
	entered := false

	axis := func(p, d, lo, hi float64, neg, pos cp.Vector) bool {
		if d == 0 {
			return p >= lo && p <= hi
		}
		inv := 1.0 / d
		t1 := (lo - p) * inv
		t2 := (hi - p) * inv
		n := neg
		if t1 > t2 {
			t1, t2 = t2, t1
			n = pos
		}
		if t1 > tmin {
			tmin = t1
			normal = n
			entered = true
		}
		tmax = math.Min(tmax, t2)
		return tmax >= tmin
	}

	if !axis(x0, dx, box.x, box.x+box.w, cp.Vector{X: -1}, cp.Vector{X: 1}) {
		return false, 0, cp.Vector{}
	}
	if !axis(y0, dy, box.y, box.y+box.h, cp.Vector{Y: -1}, cp.Vector{Y: 1}) {
		return false, 0, cp.Vector{}
	}
	if !entered {
		return false, 0, cp.Vector{}
	}
	return true, tmin, normal
}
