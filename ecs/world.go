package ecs

import "github.com/milk9111/splashfx/ecs/component"

// DefaultTimeStep is the fixed simulation step used when none is set.
const DefaultTimeStep = 1.0 / 60.0

// System updates a world each frame.
type System interface {
	Update(w *World)
}

// World owns entities, components, and system order.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet
	systems  []System
	events   EventQueue
	timeStep float64
	elapsed  float64
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{
		stores:   make(map[component.ComponentID]*SparseSet),
		timeStep: DefaultTimeStep,
	}
}

// AddSystem appends a system to the update order.
func (w *World) AddSystem(s System) {
	if w == nil || s == nil {
		return
	}
	w.systems = append(w.systems, s)
}

// Update runs all systems once, advances the clock, then drops the frame's
// events.
func (w *World) Update() {
	if w == nil {
		return
	}
	for _, s := range w.systems {
		if s != nil {
			s.Update(w)
		}
	}
	w.elapsed += w.timeStep
	w.events.flush()
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// SetTimeStep sets the seconds simulated per Update. Non-positive values are
// ignored.
func (w *World) SetTimeStep(dt float64) {
	if w == nil || dt <= 0 {
		return
	}
	w.timeStep = dt
}

// TimeStep returns the seconds simulated per Update.
func (w *World) TimeStep() float64 {
	if w == nil || w.timeStep <= 0 {
		return DefaultTimeStep
	}
	return w.timeStep
}

// Elapsed returns the simulated seconds since the world was created.
func (w *World) Elapsed() float64 {
	if w == nil {
		return 0
	}
	return w.elapsed
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

func (w *World) store(id component.ComponentID, create bool) *SparseSet {
	if w.stores == nil {
		w.stores = make(map[component.ComponentID]*SparseSet)
	}
	s := w.stores[id]
	if s == nil && create {
		s = &SparseSet{}
		w.stores[id] = s
	}
	return s
}
