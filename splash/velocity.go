package splash

import "github.com/jakecoffman/cp"

// VelocitySource reports a linear velocity when its backing capability is
// present.
type VelocitySource interface {
	Velocity() (cp.Vector, bool)
}

// BodyVelocity reads a Chipmunk rigid body. Static bodies are not a source.
type BodyVelocity struct {
	Body *cp.Body
}

func (b BodyVelocity) Velocity() (cp.Vector, bool) {
	if b.Body == nil || b.Body.GetType() == cp.BODY_STATIC {
		return cp.Vector{}, false
	}
	return b.Body.Velocity(), true
}

// ControllerVelocity reads a kinematic controller's reported velocity.
type ControllerVelocity struct {
	Reported *cp.Vector
}

func (c ControllerVelocity) Velocity() (cp.Vector, bool) {
	if c.Reported == nil {
		return cp.Vector{}, false
	}
	return *c.Reported, true
}

// Stationary is the empty source.
type Stationary struct{}

func (Stationary) Velocity() (cp.Vector, bool) {
	return cp.Vector{}, false
}

// Sources consults its members in order; the first present one wins.
type Sources []VelocitySource

func (s Sources) Velocity() (cp.Vector, bool) {
	for _, src := range s {
		if src == nil {
			continue
		}
		if v, ok := src.Velocity(); ok {
			return v, true
		}
	}
	return cp.Vector{}, false
}

// ResolveVelocity returns the velocity of src, or zero when src is nil or
// reports nothing.
func ResolveVelocity(src VelocitySource) cp.Vector {
	if src == nil {
		return cp.Vector{}
	}
	v, _ := src.Velocity()
	return v
}

// HorizontalSpeed drops the up axis and returns the remaining magnitude.
func HorizontalSpeed(v cp.Vector) float64 {
	if v.X < 0 {
		return -v.X
	}
	return v.X
}
