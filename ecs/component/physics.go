package component

import "github.com/jakecoffman/cp"

// PhysicsBody stores Chipmunk2D runtime data and collider configuration.
// Dynamic bodies are centred on the transform; static bodies use it as their
// top-left corner when AlignTopLeft is set.
type PhysicsBody struct {
	Body         *cp.Body
	Shape        *cp.Shape
	Width        float64
	Height       float64
	Radius       float64
	Mass         float64
	Friction     float64
	Elasticity   float64
	OffsetX      float64
	OffsetY      float64
	Static       bool
	AlignTopLeft bool
	// LockRotation keeps dynamic bodies upright.
	LockRotation bool
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
