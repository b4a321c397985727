package component

import "github.com/jakecoffman/cp"

// CharacterController is a kinematic mover. Systems write Move (units per
// second); the controller system integrates it and reports the achieved
// Velocity, like an engine character controller.
type CharacterController struct {
	Width     float64
	Height    float64
	Speed     float64
	JumpSpeed float64
	Gravity   float64

	Move     cp.Vector
	Velocity cp.Vector
	Grounded bool
	fall     float64
}

// FallSpeed is the current vertical speed from gravity and jumps.
func (c *CharacterController) FallSpeed() float64 {
	return c.fall
}

func (c *CharacterController) SetFallSpeed(v float64) {
	c.fall = v
}

var CharacterControllerComponent = NewComponent[CharacterController]()
