package component

import "github.com/milk9111/splashfx/sound"

// AudioSource is a persistent audio handle owned by an entity.
type AudioSource struct {
	Source *sound.Source
}

var AudioSourceComponent = NewComponent[AudioSource]()

// AudioEmitter is a positioned, usually short-lived, sound emitter.
// SpatialBlend 0 is flat, 1 is fully attenuated and panned by distance.
type AudioEmitter struct {
	Pitch        float64
	Volume       float64
	SpatialBlend float64
	Pending      []*sound.Clip
	Played       int
}

var AudioEmitterComponent = NewComponent[AudioEmitter]()

// AudioListener marks where 3D audio is heard from.
type AudioListener struct {
	MaxDistance float64
}

var AudioListenerComponent = NewComponent[AudioListener]()
