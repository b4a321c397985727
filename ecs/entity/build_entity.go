package entity

import (
	"errors"
	"fmt"
	"maps"
	"sort"

	"github.com/milk9111/splashfx/ecs"
	"github.com/milk9111/splashfx/ecs/component"
	"github.com/milk9111/splashfx/prefabs"
	"github.com/milk9111/splashfx/sound"
	"github.com/milk9111/splashfx/splash"
)

var ErrNoComponents = errors.New("prefab does not define components")

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

type buildContext struct {
	PrefabPath string
	Builder    *Builder
}

var componentRegistry = map[string]componentBuildFn{
	"player_tag":           addPlayerTag,
	"camera_tag":           addCameraTag,
	"input":                addInput,
	"transform":            addTransform,
	"camera":               addCamera,
	"physics_body":         addPhysicsBody,
	"character_controller": addCharacterController,
	"zone":                 addZone,
	"audio_source":         addAudioSource,
	"audio_listener":       addAudioListener,
	"splash_trigger":       addSplashTrigger,
	"scripted_motion":      addScriptedMotion,
}

// transform first so later builders can read it.
var componentBuildOrder = []string{
	"player_tag",
	"camera_tag",
	"input",
	"transform",
	"camera",
	"physics_body",
	"character_controller",
	"zone",
	"audio_source",
	"audio_listener",
	"splash_trigger",
	"scripted_motion",
}

// Builder turns prefabs into entities. It caches splash configs by path so
// every trigger built from the same file shares clips.
type Builder struct {
	Output  sound.Output
	configs map[string]splash.Config
}

func NewBuilder(out sound.Output) *Builder {
	return &Builder{Output: out, configs: make(map[string]splash.Config)}
}

func (b *Builder) BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	return b.BuildComponents(w, prefabPath, spec.Components)
}

// BuildComponents creates one entity from a components map.
func (b *Builder) BuildComponents(w *ecs.World, name string, components map[string]any) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}
	if len(components) == 0 {
		return 0, fmt.Errorf("build entity: %q: %w", name, ErrNoComponents)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: name, Builder: b}

	remaining := maps.Clone(components)

	build := func(key string) error {
		builder, ok := componentRegistry[key]
		if !ok {
			return fmt.Errorf("build entity: %q: no builder for component %q", name, key)
		}
		if err := builder(w, e, remaining[key], ctx); err != nil {
			return fmt.Errorf("build entity: %q: add %q: %w", name, key, err)
		}
		delete(remaining, key)
		return nil
	}

	for _, key := range componentBuildOrder {
		if _, ok := remaining[key]; !ok {
			continue
		}
		if err := build(key); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, err
		}
	}

	keys := make([]string, 0, len(remaining))
	for key := range remaining {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if err := build(key); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, err
		}
	}

	return e, nil
}

func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{ScaleX: 1, ScaleY: 1}
	}
	t.X = x
	t.Y = y
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addCameraTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.CameraTagComponent.Kind(), &component.CameraTag{})
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
}

type transformSpec = prefabs.TransformComponentSpec

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	if spec.ScaleX == 0 {
		spec.ScaleX = 1
	}
	if spec.ScaleY == 0 {
		spec.ScaleY = 1
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:        spec.X,
		Y:        spec.Y,
		ScaleX:   spec.ScaleX,
		ScaleY:   spec.ScaleY,
		Rotation: spec.Rotation,
	})
}

type cameraSpec = prefabs.CameraComponentSpec

func addCamera(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[cameraSpec](raw)
	if err != nil {
		return fmt.Errorf("decode camera spec: %w", err)
	}
	if spec.Zoom <= 0 {
		spec.Zoom = 1
	}
	if spec.Smoothness <= 0 {
		spec.Smoothness = 0.15
	}
	return ecs.Add(w, e, component.CameraComponent.Kind(), &component.Camera{
		Zoom:       spec.Zoom,
		Smoothness: spec.Smoothness,
		Width:      spec.Width,
		Height:     spec.Height,
	})
}

type physicsBodySpec = prefabs.PhysicsBodyComponentSpec

func addPhysicsBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[physicsBodySpec](raw)
	if err != nil {
		return fmt.Errorf("decode physics body spec: %w", err)
	}
	if spec.DefaultWidth <= 0 {
		spec.DefaultWidth = 32
	}
	if spec.DefaultHeight <= 0 {
		spec.DefaultHeight = 32
	}
	width := spec.Width
	height := spec.Height
	if width == 0 {
		width = spec.DefaultWidth
	}
	if height == 0 {
		height = spec.DefaultHeight
	}
	if !spec.Static && spec.Mass == 0 {
		spec.Mass = 1
	}

	return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:        width,
		Height:       height,
		Radius:       spec.Radius,
		Mass:         spec.Mass,
		Friction:     spec.Friction,
		Elasticity:   spec.Elasticity,
		Static:       spec.Static,
		AlignTopLeft: spec.AlignTopLeft,
		LockRotation: spec.LockRotation,
		OffsetX:      spec.OffsetX,
		OffsetY:      spec.OffsetY,
	})
}

type controllerSpec = prefabs.CharacterControllerComponentSpec

func addCharacterController(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[controllerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode character controller spec: %w", err)
	}
	if spec.Width <= 0 || spec.Height <= 0 {
		return fmt.Errorf("character controller needs a positive size, got %gx%g", spec.Width, spec.Height)
	}
	return ecs.Add(w, e, component.CharacterControllerComponent.Kind(), &component.CharacterController{
		Width:     spec.Width,
		Height:    spec.Height,
		Speed:     spec.Speed,
		JumpSpeed: spec.JumpSpeed,
		Gravity:   spec.Gravity,
	})
}

type zoneSpec = prefabs.ZoneComponentSpec

func addZone(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[zoneSpec](raw)
	if err != nil {
		return fmt.Errorf("decode zone spec: %w", err)
	}
	return ecs.Add(w, e, component.ZoneComponent.Kind(), &component.Zone{
		Tag:     spec.Tag,
		Width:   spec.Width,
		Height:  spec.Height,
		OffsetX: spec.OffsetX,
		OffsetY: spec.OffsetY,
	})
}

type audioSourceSpec = prefabs.AudioSourceComponentSpec

func addAudioSource(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[audioSourceSpec](raw)
	if err != nil {
		return fmt.Errorf("decode audio source spec: %w", err)
	}
	src := sound.NewSource(ctx.Builder.Output)
	if spec.Volume > 0 {
		src.Volume = spec.Volume
	}
	src.Pan = spec.Pan
	return ecs.Add(w, e, component.AudioSourceComponent.Kind(), &component.AudioSource{Source: src})
}

type audioListenerSpec = prefabs.AudioListenerComponentSpec

func addAudioListener(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[audioListenerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode audio listener spec: %w", err)
	}
	return ecs.Add(w, e, component.AudioListenerComponent.Kind(), &component.AudioListener{MaxDistance: spec.MaxDistance})
}

type splashTriggerSpec = prefabs.SplashTriggerComponentSpec

func addSplashTrigger(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[splashTriggerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode splash trigger spec: %w", err)
	}
	cfg := splash.DefaultConfig()
	if spec.Config != "" {
		cfg, err = ctx.Builder.SplashConfig(spec.Config)
		if err != nil {
			return err
		}
	}
	return ecs.Add(w, e, component.SplashTriggerComponent.Kind(), &component.SplashTrigger{
		Trigger:    splash.NewTrigger(cfg),
		ConfigPath: spec.Config,
	})
}

type scriptedMotionSpec = prefabs.ScriptedMotionComponentSpec

func addScriptedMotion(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[scriptedMotionSpec](raw)
	if err != nil {
		return fmt.Errorf("decode scripted motion spec: %w", err)
	}
	if spec.Script == "" {
		return fmt.Errorf("scripted motion needs a script")
	}
	return ecs.Add(w, e, component.ScriptedMotionComponent.Kind(), &component.ScriptedMotion{
		ScriptPath: spec.Script,
		Speed:      spec.Speed,
	})
}
