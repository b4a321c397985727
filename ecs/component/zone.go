package component

// Zone is a tagged trigger volume. Bounds are in world units relative to the
// Transform, which is the zone's top-left corner.
type Zone struct {
	Tag     string
	Width   float64
	Height  float64
	OffsetX float64
	OffsetY float64
}

var ZoneComponent = NewComponent[Zone]()
