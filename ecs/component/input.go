package component

// Input is the movement intent sampled this frame. MoveX is in [-1, 1].
type Input struct {
	MoveX       float64
	Jump        bool
	JumpPressed bool
	// Sprint scales the controller speed by SprintFactor.
	Sprint bool
}

const SprintFactor = 1.75

var InputComponent = NewComponent[Input]()
