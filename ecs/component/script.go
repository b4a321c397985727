package component

// ScriptedMotion drives an entity's horizontal movement from a tengo script.
type ScriptedMotion struct {
	ScriptPath string
	Speed      float64
}

var ScriptedMotionComponent = NewComponent[ScriptedMotion]()
