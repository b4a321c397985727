package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// SplashSpec is the on-disk form of a splash trigger configuration.
// Pointer fields fall back to the built-in defaults when omitted.
type SplashSpec struct {
	Name              string        `yaml:"name"`
	WaterTag          *string       `yaml:"water_tag"`
	MinSpeedForSplash *float64      `yaml:"min_speed_for_splash"`
	SplashInterval    *float64      `yaml:"splash_interval"`
	MinPitch          *float64      `yaml:"min_pitch"`
	MaxPitch          *float64      `yaml:"max_pitch"`
	RaycastDistance   *float64      `yaml:"raycast_distance"`
	RaycastOffset     *VectorSpec   `yaml:"raycast_offset"`
	CountOverlaps     bool          `yaml:"count_overlaps"`
	Particle          *ParticleSpec `yaml:"particle"`
	Clips             []ClipSpec    `yaml:"clips"`
}

type VectorSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type ParticleSpec struct {
	Name          string    `yaml:"name"`
	Duration      float64   `yaml:"duration"`
	StartLifetime float64   `yaml:"start_lifetime"`
	Count         int       `yaml:"count"`
	Bursts        int       `yaml:"bursts"`
	Speed         float64   `yaml:"speed"`
	Spread        float64   `yaml:"spread"`
	Gravity       float64   `yaml:"gravity"`
	Size          float64   `yaml:"size"`
	Color         YAMLColor `yaml:"color"`
}

// ClipSpec names a clip either by wav file or by synth parameters. A file
// that cannot be read falls back to Synth when present.
type ClipSpec struct {
	Name  string     `yaml:"name"`
	File  string     `yaml:"file"`
	Synth *SynthSpec `yaml:"synth"`
}

type SynthSpec struct {
	DurationMS int     `yaml:"duration_ms"`
	Seed       uint64  `yaml:"seed"`
	Decay      float64 `yaml:"decay"`
	Brightness float64 `yaml:"brightness"`
	Volume     float64 `yaml:"volume"`
}

func LoadSplashSpec(filename string) (SplashSpec, error) {
	return LoadSpec[SplashSpec](filename)
}

// LevelSpec lists the entities of a scene. Each entry either names a prefab
// or carries its components inline; inline components replace the prefab's
// entry of the same name.
type LevelSpec struct {
	Name     string            `yaml:"name"`
	Gravity  float64           `yaml:"gravity"`
	Entities []LevelEntitySpec `yaml:"entities"`
}

type LevelEntitySpec struct {
	Name       string         `yaml:"name"`
	Prefab     string         `yaml:"prefab"`
	Components map[string]any `yaml:"components"`
}

func LoadLevelSpec(filename string) (LevelSpec, error) {
	return LoadSpec[LevelSpec](filename)
}

// YAMLColor decodes "#rrggbb" or "#rrggbbaa".
type YAMLColor struct {
	color.RGBA
	Set bool
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.RGBA = color.RGBA{R: r, G: g, B: b, A: a}
	c.Set = true
	return nil
}
