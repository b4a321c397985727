package system

import (
	"fmt"
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/splashfx/ecs"
	"github.com/milk9111/splashfx/ecs/component"
	"github.com/milk9111/splashfx/prefabs"
)

const motionDispatchScript = `
update(__engine, __state)
`

// ScriptSystem runs a tengo `update(engine, state)` function each frame for
// every ScriptedMotion entity. The script steers through engine.set_move.
type ScriptSystem struct {
	// Load resolves script sources; defaults to prefabs.LoadScript.
	Load    func(path string) ([]byte, error)
	scripts map[ecs.Entity]*motionScript
	failed  map[string]bool
}

type motionScript struct {
	path     string
	compiled *tengo.Compiled
	state    *tengo.Map
}

func NewScriptSystem() *ScriptSystem {
	return &ScriptSystem{
		Load:    prefabs.LoadScript,
		scripts: make(map[ecs.Entity]*motionScript),
		failed:  make(map[string]bool),
	}
}

func (s *ScriptSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	for e := range s.scripts {
		if !ecs.Has(w, e, component.ScriptedMotionComponent.Kind()) {
			delete(s.scripts, e)
		}
	}

	ecs.ForEach2(w, component.ScriptedMotionComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, sm *component.ScriptedMotion, t *component.Transform) {
		rt, err := s.runtime(e, sm)
		if err != nil {
			if !s.failed[sm.ScriptPath] {
				s.failed[sm.ScriptPath] = true
				log.Printf("script: entity=%s load %q: %v", e, sm.ScriptPath, err)
			}
			return
		}
		engine := buildMotionEngine(w, e, sm, t)
		if err := rt.run(engine); err != nil {
			log.Printf("script: entity=%s update: %v", e, err)
		}
	})
}

// Reload drops compiled scripts for path so the next frame recompiles them.
func (s *ScriptSystem) Reload(path string) {
	if s == nil {
		return
	}
	delete(s.failed, path)
	for e, rt := range s.scripts {
		if rt.path == path {
			delete(s.scripts, e)
		}
	}
}

func (s *ScriptSystem) runtime(e ecs.Entity, sm *component.ScriptedMotion) (*motionScript, error) {
	if strings.TrimSpace(sm.ScriptPath) == "" {
		return nil, fmt.Errorf("empty script path")
	}
	if rt, ok := s.scripts[e]; ok && rt.path == sm.ScriptPath {
		return rt, nil
	}
	if s.failed[sm.ScriptPath] {
		return nil, fmt.Errorf("script %q failed to load", sm.ScriptPath)
	}

	src, err := s.Load(sm.ScriptPath)
	if err != nil {
		return nil, err
	}
	script := tengo.NewScript([]byte(string(src) + "\n" + motionDispatchScript))
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, err
	}
	rt := &motionScript{
		path:     sm.ScriptPath,
		compiled: compiled,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
	}
	s.scripts[e] = rt
	return rt, nil
}

func (rt *motionScript) run(engine *tengo.ImmutableMap) error {
	if err := rt.compiled.Set("__engine", engine); err != nil {
		return err
	}
	if err := rt.compiled.Set("__state", rt.state); err != nil {
		return err
	}
	return rt.compiled.Run()
}

func buildMotionEngine(w *ecs.World, e ecs.Entity, sm *component.ScriptedMotion, t *component.Transform) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["time"] = &tengo.UserFunction{Name: "time", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Float{Value: w.Elapsed()}, nil
	}}

	values["speed"] = &tengo.UserFunction{Name: "speed", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Float{Value: sm.Speed}, nil
	}}

	values["position"] = &tengo.UserFunction{Name: "position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Array{Value: []tengo.Object{&tengo.Float{Value: t.X}, &tengo.Float{Value: t.Y}}}, nil
	}}

	values["in_water"] = &tengo.UserFunction{Name: "in_water", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if st, ok := ecs.Get(w, e, component.SplashTriggerComponent.Kind()); ok && st.Trigger.InWater() {
			return tengo.TrueValue, nil
		}
		return tengo.FalseValue, nil
	}}

	values["set_move"] = &tengo.UserFunction{Name: "set_move", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		x, ok := objectAsFloat(args[0])
		if !ok {
			return tengo.FalseValue, nil
		}
		if c, ok := ecs.Get(w, e, component.CharacterControllerComponent.Kind()); ok {
			c.Move.X = x
			return tengo.TrueValue, nil
		}
		if b, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && b.Body != nil && !b.Static {
			v := b.Body.Velocity()
			b.Body.SetVelocity(x, v.Y)
			return tengo.TrueValue, nil
		}
		return tengo.FalseValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func objectAsFloat(obj tengo.Object) (float64, bool) {
	switch v := obj.(type) {
	case *tengo.Float:
		return v.Value, true
	case *tengo.Int:
		return float64(v.Value), true
	default:
		return 0, false
	}
}
