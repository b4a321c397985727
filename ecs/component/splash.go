package component

import "github.com/milk9111/splashfx/splash"

// SplashTrigger attaches water splash feedback to a moving entity.
type SplashTrigger struct {
	Trigger *splash.Trigger
	// ConfigPath is the prefab the trigger config was loaded from.
	ConfigPath string
	// Last is the most recent successful splash, kept for debug drawing.
	Last      splash.Splash
	LastFrame int
	Count     int
}

var SplashTriggerComponent = NewComponent[SplashTrigger]()
