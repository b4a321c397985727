package system

import (
	"log"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/splashfx/common"
	"github.com/milk9111/splashfx/ecs"
	"github.com/milk9111/splashfx/ecs/component"
	"github.com/milk9111/splashfx/sound"
	"github.com/milk9111/splashfx/splash"
)

const defaultListenerDistance = 800.0

// AudioSystem plays positioned emitters on an output. Emitters are heard
// from the first AudioListener; without one they play flat.
type AudioSystem struct {
	out sound.Output
}

func NewAudioSystem(out sound.Output) *AudioSystem {
	return &AudioSystem{out: out}
}

// Service returns the transient emitter factory for w.
func (a *AudioSystem) Service(w *ecs.World) splash.AudioService {
	return audioService{world: w}
}

type audioService struct {
	world *ecs.World
}

func (s audioService) NewTransient(at cp.Vector, spatialBlend float64) splash.TransientAudio {
	if s.world == nil {
		return nil
	}
	e := ecs.CreateEntity(s.world)
	_ = ecs.Add(s.world, e, component.TransformComponent.Kind(), &component.Transform{X: at.X, Y: at.Y, ScaleX: 1, ScaleY: 1})
	_ = ecs.Add(s.world, e, component.AudioEmitterComponent.Kind(), &component.AudioEmitter{Pitch: 1, Volume: 1, SpatialBlend: spatialBlend})
	return &emitterHandle{world: s.world, entity: e}
}

type emitterHandle struct {
	world  *ecs.World
	entity ecs.Entity
}

func (h *emitterHandle) SetPitch(pitch float64) {
	if em, ok := ecs.Get(h.world, h.entity, component.AudioEmitterComponent.Kind()); ok {
		em.Pitch = pitch
	}
}

func (h *emitterHandle) PlayOneShot(clip *sound.Clip) {
	if clip == nil {
		return
	}
	if em, ok := ecs.Get(h.world, h.entity, component.AudioEmitterComponent.Kind()); ok {
		em.Pending = append(em.Pending, clip)
	}
}

func (h *emitterHandle) DestroyAfter(seconds float64) {
	destroyAfter(h.world, h.entity, seconds)
}

func (a *AudioSystem) Update(w *ecs.World) {
	if a == nil || w == nil {
		return
	}

	listenerPos := cp.Vector{}
	maxDist := 0.0
	if le, ok := ecs.First(w, component.AudioListenerComponent.Kind()); ok {
		if t, ok := ecs.Get(w, le, component.TransformComponent.Kind()); ok {
			listenerPos = t.Position()
			maxDist = defaultListenerDistance
			if l, ok := ecs.Get(w, le, component.AudioListenerComponent.Kind()); ok && l.MaxDistance > 0 {
				maxDist = l.MaxDistance
			}
		}
	}

	ecs.ForEach2(w, component.AudioEmitterComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, em *component.AudioEmitter, t *component.Transform) {
		if len(em.Pending) == 0 {
			return
		}
		voice := spatialVoice(em, t.Position(), listenerPos, maxDist)
		for _, clip := range em.Pending {
			em.Played++
			if a.out == nil {
				continue
			}
			if err := a.out.Play(sound.Render(clip, voice, a.out.SampleRate())); err != nil {
				log.Printf("audio: entity=%s play %q: %v", e, clip.Name(), err)
			}
		}
		em.Pending = em.Pending[:0]
	})
}

// spatialVoice attenuates linearly with distance and pans by horizontal
// offset, both scaled by the emitter's spatial blend. maxDist 0 means no
// listener.
func spatialVoice(em *component.AudioEmitter, at, listener cp.Vector, maxDist float64) sound.Voice {
	v := sound.Voice{Pitch: em.Pitch, Volume: em.Volume}
	blend := common.Clamp(em.SpatialBlend, 0, 1)
	if blend == 0 || maxDist <= 0 {
		return v
	}
	dist := at.Distance(listener)
	atten := math.Max(0, 1-dist/maxDist)
	v.Volume *= 1 - blend + blend*atten
	v.Pan = blend * common.Clamp((at.X-listener.X)/maxDist, -1, 1)
	return v
}
