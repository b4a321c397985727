package splash

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/splashfx/particle"
	"github.com/milk9111/splashfx/sound"
)

type ray struct {
	origin, dir cp.Vector
	max         float64
}

type fakeSurface struct {
	hit  bool
	at   cp.Vector
	rays []ray
}

func (f *fakeSurface) Raycast(origin, dir cp.Vector, maxDistance float64) (Hit, bool) {
	f.rays = append(f.rays, ray{origin: origin, dir: dir, max: maxDistance})
	if !f.hit {
		return Hit{}, false
	}
	return Hit{Point: f.at, Normal: cp.Vector{Y: -1}, Distance: f.at.Distance(origin)}, true
}

type fakeEffect struct {
	tmpl         *particle.Template
	at           cp.Vector
	played       bool
	destroyAfter float64
}

func (f *fakeEffect) Play()                        { f.played = true }
func (f *fakeEffect) Lifetime() float64            { return f.tmpl.Lifetime() }
func (f *fakeEffect) DestroyAfter(seconds float64) { f.destroyAfter = seconds }

type fakeSpawner struct {
	spawned []*fakeEffect
}

func (f *fakeSpawner) Spawn(tmpl *particle.Template, at cp.Vector, angle float64) Effect {
	fx := &fakeEffect{tmpl: tmpl, at: at}
	f.spawned = append(f.spawned, fx)
	return fx
}

type fakeSource struct {
	pitch  float64
	played []*sound.Clip
	pitchs []float64
}

func (f *fakeSource) SetPitch(p float64) { f.pitch = p }
func (f *fakeSource) PlayOneShot(c *sound.Clip) {
	f.played = append(f.played, c)
	f.pitchs = append(f.pitchs, f.pitch)
}

type fakeTransient struct {
	fakeSource
	at           cp.Vector
	blend        float64
	destroyAfter float64
}

func (f *fakeTransient) DestroyAfter(seconds float64) { f.destroyAfter = seconds }

type fakeAudio struct {
	transients []*fakeTransient
}

func (f *fakeAudio) NewTransient(at cp.Vector, spatialBlend float64) TransientAudio {
	tr := &fakeTransient{at: at, blend: spatialBlend}
	f.transients = append(f.transients, tr)
	return tr
}

type fixedVelocity cp.Vector

func (v fixedVelocity) Velocity() (cp.Vector, bool) { return cp.Vector(v), true }

type harness struct {
	surface *fakeSurface
	effects *fakeSpawner
	audio   *fakeAudio
	env     Env
}

func newHarness(speed float64) *harness {
	h := &harness{
		surface: &fakeSurface{hit: true, at: cp.Vector{X: 4, Y: 10}},
		effects: &fakeSpawner{},
		audio:   &fakeAudio{},
	}
	h.env = Env{
		Position: cp.Vector{X: 4, Y: 8},
		Velocity: fixedVelocity{X: speed, Y: 3},
		Surface:  h.surface,
		Effects:  h.effects,
		Audio:    h.audio,
		Rand:     NewRandom(42),
	}
	return h
}

func testClips(n int) []*sound.Clip {
	out := make([]*sound.Clip, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, sound.Synthesize("splash", sound.SynthSpec{Duration: 250 * time.Millisecond, Seed: uint64(i + 1), Decay: 10}, beep.SampleRate(22050)))
	}
	return out
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Clips = testClips(3)
	cfg.Particle = &particle.Template{Name: "splash", Duration: 0.3, StartLifetime: 0.6, Count: 8}
	return cfg
}
