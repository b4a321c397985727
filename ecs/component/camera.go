package component

type Camera struct {
	Zoom       float64
	Smoothness float64
	Width      float64
	Height     float64
}

var CameraComponent = NewComponent[Camera]()
