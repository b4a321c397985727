package system

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/milk9111/splashfx/ecs"
	"github.com/milk9111/splashfx/ecs/component"
	"github.com/milk9111/splashfx/sound"
)

const testRate = beep.SampleRate(8000)

type fakeOutput struct {
	plays [][]byte
}

func (f *fakeOutput) Play(pcm []byte) error {
	f.plays = append(f.plays, pcm)
	return nil
}

func (f *fakeOutput) SampleRate() beep.SampleRate { return testRate }

func testClip(name string) *sound.Clip {
	return sound.Synthesize(name, sound.SynthSpec{Duration: 100 * time.Millisecond, Seed: 7}, testRate)
}

func mustAdd[T any](t *testing.T, w *ecs.World, e ecs.Entity, kind component.ComponentKind[T], v *T) {
	t.Helper()
	if err := ecs.Add(w, e, kind, v); err != nil {
		t.Fatalf("add component: %v", err)
	}
}

func step(w *ecs.World, systems []ecs.System, frames int) {
	for i := 0; i < frames; i++ {
		for _, s := range systems {
			s.Update(w)
		}
		w.Events().Drain()
	}
}

func addWater(t *testing.T, w *ecs.World, tag string, x, y, width, height float64) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	mustAdd(t, w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1})
	mustAdd(t, w, e, component.ZoneComponent.Kind(), &component.Zone{Tag: tag, Width: width, Height: height})
	return e
}

func addWalker(t *testing.T, w *ecs.World, x, y float64) (ecs.Entity, *component.CharacterController) {
	t.Helper()
	e := ecs.CreateEntity(w)
	mustAdd(t, w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1})
	c := &component.CharacterController{Width: 20, Height: 20}
	mustAdd(t, w, e, component.CharacterControllerComponent.Kind(), c)
	return e, c
}

func countWith[T any](w *ecs.World, kind component.ComponentKind[T]) int {
	n := 0
	ecs.ForEach(w, kind, func(ecs.Entity, *T) { n++ })
	return n
}
