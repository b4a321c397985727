package entity

import (
	"fmt"
	"log"
	"time"

	"github.com/gopxl/beep"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/splashfx/assets"
	"github.com/milk9111/splashfx/ecs"
	"github.com/milk9111/splashfx/ecs/component"
	"github.com/milk9111/splashfx/particle"
	"github.com/milk9111/splashfx/prefabs"
	"github.com/milk9111/splashfx/sound"
	"github.com/milk9111/splashfx/splash"
)

// DefaultClipRate is used for synthesized clips when no output is set.
const DefaultClipRate = beep.SampleRate(44100)

// SplashConfig loads and caches the splash config at path.
func (b *Builder) SplashConfig(path string) (splash.Config, error) {
	if cfg, ok := b.configs[path]; ok {
		return cfg, nil
	}
	spec, err := prefabs.LoadSplashSpec(path)
	if err != nil {
		return splash.Config{}, err
	}
	cfg, err := SplashConfigFromSpec(spec, b.clipRate())
	if err != nil {
		return splash.Config{}, fmt.Errorf("splash config %q: %w", path, err)
	}
	b.configs[path] = cfg
	return cfg, nil
}

// ReloadSplashConfig re-reads path and hands the new config to every trigger
// built from it. Trigger state survives the swap. It returns how many
// triggers were updated.
func (b *Builder) ReloadSplashConfig(w *ecs.World, path string) (int, error) {
	delete(b.configs, path)
	cfg, err := b.SplashConfig(path)
	if err != nil {
		return 0, err
	}
	n := 0
	ecs.ForEach(w, component.SplashTriggerComponent.Kind(), func(_ ecs.Entity, st *component.SplashTrigger) {
		if st.Trigger == nil || st.ConfigPath != path {
			return
		}
		st.Trigger.Config = cfg
		n++
	})
	return n, nil
}

func (b *Builder) clipRate() beep.SampleRate {
	if b.Output != nil && b.Output.SampleRate() > 0 {
		return b.Output.SampleRate()
	}
	return DefaultClipRate
}

// SplashConfigFromSpec builds a trigger config, loading or synthesizing each
// clip at rate.
func SplashConfigFromSpec(spec prefabs.SplashSpec, rate beep.SampleRate) (splash.Config, error) {
	cfg := splash.DefaultConfig()
	if spec.WaterTag != nil {
		cfg.WaterTag = *spec.WaterTag
	}
	if spec.MinSpeedForSplash != nil {
		cfg.MinSpeedForSplash = *spec.MinSpeedForSplash
	}
	if spec.SplashInterval != nil {
		cfg.SplashInterval = *spec.SplashInterval
	}
	if spec.MinPitch != nil {
		cfg.MinPitch = *spec.MinPitch
	}
	if spec.MaxPitch != nil {
		cfg.MaxPitch = *spec.MaxPitch
	}
	if spec.RaycastDistance != nil {
		cfg.RaycastDistance = *spec.RaycastDistance
	}
	if spec.RaycastOffset != nil {
		cfg.RaycastOffset = cp.Vector{X: spec.RaycastOffset.X, Y: spec.RaycastOffset.Y}
	}
	cfg.CountOverlaps = spec.CountOverlaps
	cfg.Particle = particleTemplate(spec.Particle)

	for _, cs := range spec.Clips {
		clip, err := loadClip(cs, rate)
		if err != nil {
			return splash.Config{}, err
		}
		cfg.Clips = append(cfg.Clips, clip)
	}
	return cfg, nil
}

func particleTemplate(spec *prefabs.ParticleSpec) *particle.Template {
	if spec == nil {
		return nil
	}
	tmpl := &particle.Template{
		Name:          spec.Name,
		Duration:      spec.Duration,
		StartLifetime: spec.StartLifetime,
		Count:         spec.Count,
		Bursts:        spec.Bursts,
		Speed:         spec.Speed,
		Spread:        spec.Spread,
		Gravity:       spec.Gravity,
		Size:          spec.Size,
		Color:         spec.Color.RGBA,
	}
	if !spec.Color.Set {
		tmpl.Color = particle.DefaultColor
	}
	return tmpl
}

func loadClip(cs prefabs.ClipSpec, rate beep.SampleRate) (*sound.Clip, error) {
	name := cs.Name
	if name == "" {
		name = cs.File
	}
	if cs.File != "" {
		clip, err := assets.LoadClip(name, cs.File)
		if err == nil {
			return clip, nil
		}
		if cs.Synth == nil {
			return nil, fmt.Errorf("clip %q: %w", name, err)
		}
		log.Printf("splash: clip %q: %v, using synth", name, err)
	}
	if cs.Synth == nil {
		return nil, fmt.Errorf("clip %q: no file or synth", name)
	}
	return sound.Synthesize(name, sound.SynthSpec{
		Duration:   time.Duration(cs.Synth.DurationMS) * time.Millisecond,
		Seed:       cs.Synth.Seed,
		Decay:      cs.Synth.Decay,
		Brightness: cs.Synth.Brightness,
		Volume:     cs.Synth.Volume,
	}, rate), nil
}
