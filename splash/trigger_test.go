package splash

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/splashfx/sound"
)

const eps = 1e-9

func emissions(h *harness) int {
	return len(h.surface.rays)
}

func TestOutOfWaterNeverEmits(t *testing.T) {
	h := newHarness(5)
	tr := NewTrigger(testConfig())
	for i := 0; i < 100; i++ {
		if _, ok := tr.Update(0.1, h.env); ok {
			t.Fatalf("frame %d emitted while out of water", i)
		}
		if tr.Cooldown() != 0 {
			t.Fatalf("frame %d cooldown = %v, want 0", i, tr.Cooldown())
		}
	}
	if emissions(h) != 0 {
		t.Fatalf("expected no surface queries, got %d", emissions(h))
	}
}

func TestEmitRequiresWater(t *testing.T) {
	h := newHarness(5)
	tr := NewTrigger(testConfig())
	if _, ok := tr.Emit(h.env); ok {
		t.Fatalf("emit outside water should fail")
	}
	if emissions(h) != 0 {
		t.Fatalf("emit outside water queried the surface")
	}
}

func TestBelowThresholdNeverSplashes(t *testing.T) {
	h := newHarness(0.05)
	cfg := testConfig()
	cfg.MinSpeedForSplash = 0.2
	tr := NewTrigger(cfg)

	tr.Enter(cfg.WaterTag, h.env)
	entry := emissions(h)
	for i := 0; i < 200; i++ {
		tr.Update(0.1, h.env)
		if tr.Cooldown() != 0 {
			t.Fatalf("frame %d cooldown = %v, want 0", i, tr.Cooldown())
		}
	}
	if emissions(h) != entry {
		t.Fatalf("slow movement emitted %d extra splashes", emissions(h)-entry)
	}
}

func TestEntrySplashIgnoresSpeed(t *testing.T) {
	h := newHarness(0)
	tr := NewTrigger(testConfig())
	s, ok := tr.Enter("Water", h.env)
	if !ok {
		t.Fatalf("expected entry splash")
	}
	if !tr.InWater() {
		t.Fatalf("expected to be in water after enter")
	}
	if s.Anchor != h.surface.at {
		t.Fatalf("anchor = %v, want %v", s.Anchor, h.surface.at)
	}
}

func TestSplashCadence(t *testing.T) {
	const (
		dt       = 0.1
		interval = 0.4
	)
	h := newHarness(2)
	cfg := testConfig()
	cfg.MinSpeedForSplash = 0.2
	cfg.SplashInterval = interval
	tr := NewTrigger(cfg)

	var times []float64
	if _, ok := tr.Enter(cfg.WaterTag, h.env); ok {
		times = append(times, 0)
	}
	for frame := 1; frame <= 40; frame++ {
		if _, ok := tr.Update(dt, h.env); ok {
			times = append(times, float64(frame)*dt)
		}
	}

	if len(times) < 2 || times[0] != 0 {
		t.Fatalf("expected immediate entry splash and more, got %v", times)
	}
	if times[1] < interval-eps {
		t.Fatalf("second splash at %v, before %v", times[1], interval)
	}
	for i := 1; i < len(times); i++ {
		gap := times[i] - times[i-1]
		if gap < interval-eps || gap > interval+dt+eps {
			t.Fatalf("gap %d = %v, want within [%v,%v]", i, gap, interval, interval+dt)
		}
	}
}

func TestExitDiscardsCooldown(t *testing.T) {
	h := newHarness(2)
	cfg := testConfig()
	tr := NewTrigger(cfg)

	tr.Enter(cfg.WaterTag, h.env)
	tr.Update(0.1, h.env)
	if tr.Cooldown() <= 0 {
		t.Fatalf("expected a running cooldown, got %v", tr.Cooldown())
	}

	tr.Exit(cfg.WaterTag)
	if tr.InWater() {
		t.Fatalf("expected out of water after exit")
	}
	tr.Update(0.1, h.env)
	if tr.Cooldown() != 0 {
		t.Fatalf("cooldown = %v after leaving water, want 0", tr.Cooldown())
	}

	before := emissions(h)
	if _, ok := tr.Enter(cfg.WaterTag, h.env); !ok {
		t.Fatalf("re-entry should splash immediately")
	}
	if emissions(h) != before+1 {
		t.Fatalf("expected one emission on re-entry")
	}
}

func TestWrongTagIgnored(t *testing.T) {
	h := newHarness(2)
	tr := NewTrigger(testConfig())
	if _, ok := tr.Enter("Lava", h.env); ok {
		t.Fatalf("non-water tag splashed")
	}
	if tr.InWater() {
		t.Fatalf("non-water tag changed membership")
	}
	tr.Enter("Water", h.env)
	tr.Exit("Lava")
	if !tr.InWater() {
		t.Fatalf("non-water exit changed membership")
	}
}

func TestOverlappingZones(t *testing.T) {
	cases := []struct {
		name          string
		countOverlaps bool
		inAfterFirst  bool
	}{
		{"toggle_on_any_exit", false, false},
		{"counted_overlaps", true, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h := newHarness(2)
			cfg := testConfig()
			cfg.CountOverlaps = c.countOverlaps
			tr := NewTrigger(cfg)

			tr.Enter("Water", h.env)
			if _, ok := tr.Enter("Water", h.env); ok {
				t.Fatalf("second overlapping zone should not splash")
			}
			if emissions(h) != 1 {
				t.Fatalf("expected exactly one entry splash, got %d", emissions(h))
			}
			tr.Exit("Water")
			if tr.InWater() != c.inAfterFirst {
				t.Fatalf("in water after first exit = %v, want %v", tr.InWater(), c.inAfterFirst)
			}
			tr.Exit("Water")
			if tr.InWater() {
				t.Fatalf("expected out of water after both exits")
			}
		})
	}
}

func TestRayFromOffsetDownward(t *testing.T) {
	h := newHarness(2)
	cfg := testConfig()
	cfg.RaycastOffset = cp.Vector{X: 1, Y: -0.5}
	cfg.RaycastDistance = 7
	tr := NewTrigger(cfg)
	tr.Enter(cfg.WaterTag, h.env)

	if len(h.surface.rays) != 1 {
		t.Fatalf("expected one ray, got %d", len(h.surface.rays))
	}
	r := h.surface.rays[0]
	want := h.env.Position.Add(cfg.RaycastOffset)
	if r.origin != want || r.dir != Down || r.max != 7 {
		t.Fatalf("ray = %+v, want origin %v dir %v max 7", r, want, Down)
	}
}

func TestNoSurfaceAbortsEverything(t *testing.T) {
	h := newHarness(2)
	h.surface.hit = false
	tr := NewTrigger(testConfig())

	if _, ok := tr.Enter("Water", h.env); ok {
		t.Fatalf("expected failed emission without a surface")
	}
	for i := 0; i < 20; i++ {
		tr.Update(0.1, h.env)
	}
	if len(h.effects.spawned) != 0 || len(h.audio.transients) != 0 {
		t.Fatalf("expected no effects, got %d particles %d sounds", len(h.effects.spawned), len(h.audio.transients))
	}
	if emissions(h) == 0 {
		t.Fatalf("expected emission attempts")
	}
}

func TestParticleSpawnedAndScheduled(t *testing.T) {
	h := newHarness(2)
	cfg := testConfig()
	tr := NewTrigger(cfg)
	tr.Enter("Water", h.env)

	if len(h.effects.spawned) != 1 {
		t.Fatalf("expected one particle instance, got %d", len(h.effects.spawned))
	}
	fx := h.effects.spawned[0]
	if !fx.played || fx.at != h.surface.at {
		t.Fatalf("effect not played at anchor: %+v", fx)
	}
	if math.Abs(fx.destroyAfter-cfg.Particle.Lifetime()) > eps {
		t.Fatalf("destroy after %v, want %v", fx.destroyAfter, cfg.Particle.Lifetime())
	}
}

func TestMissingPiecesAreIndependent(t *testing.T) {
	t.Run("no_clips_still_particles", func(t *testing.T) {
		h := newHarness(2)
		cfg := testConfig()
		cfg.Clips = nil
		tr := NewTrigger(cfg)
		s, ok := tr.Enter("Water", h.env)
		if !ok || !s.Particle || s.Clip != nil {
			t.Fatalf("unexpected splash %+v ok=%v", s, ok)
		}
		if len(h.audio.transients) != 0 {
			t.Fatalf("expected no audio without clips")
		}
	})
	t.Run("no_template_still_audio", func(t *testing.T) {
		h := newHarness(2)
		cfg := testConfig()
		cfg.Particle = nil
		tr := NewTrigger(cfg)
		s, ok := tr.Enter("Water", h.env)
		if !ok || s.Particle || s.Clip == nil {
			t.Fatalf("unexpected splash %+v ok=%v", s, ok)
		}
		if len(h.effects.spawned) != 0 || len(h.audio.transients) != 1 {
			t.Fatalf("expected audio only")
		}
	})
	t.Run("no_collaborators", func(t *testing.T) {
		h := newHarness(2)
		h.env.Effects = nil
		h.env.Audio = nil
		h.env.Rand = nil
		tr := NewTrigger(testConfig())
		if _, ok := tr.Enter("Water", h.env); !ok {
			t.Fatalf("surface hit should still count as an emission")
		}
	})
}

func TestPitchAndClipChoice(t *testing.T) {
	h := newHarness(2)
	cfg := testConfig()
	cfg.MinPitch = 0.8
	cfg.MaxPitch = 1.2
	tr := NewTrigger(cfg)

	members := make(map[*sound.Clip]bool)
	for _, c := range cfg.Clips {
		members[c] = true
	}
	seen := make(map[*sound.Clip]bool)
	for i := 0; i < 300; i++ {
		tr.Exit("Water")
		s, ok := tr.Enter("Water", h.env)
		if !ok {
			t.Fatalf("emission %d failed", i)
		}
		if s.Pitch < cfg.MinPitch || s.Pitch > cfg.MaxPitch {
			t.Fatalf("pitch %v outside [%v,%v]", s.Pitch, cfg.MinPitch, cfg.MaxPitch)
		}
		if !members[s.Clip] {
			t.Fatalf("clip %p not in configured set", s.Clip)
		}
		seen[s.Clip] = true
	}
	if len(seen) != len(cfg.Clips) {
		t.Fatalf("expected every clip to be chosen eventually, saw %d of %d", len(seen), len(cfg.Clips))
	}
}

func TestTransientEmitterLifetime(t *testing.T) {
	cases := []struct {
		name  string
		pitch float64
	}{
		{"normal", 1},
		{"fast", 2},
		{"near_zero", 0.001},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h := newHarness(2)
			cfg := testConfig()
			cfg.MinPitch, cfg.MaxPitch = c.pitch, c.pitch
			tr := NewTrigger(cfg)
			s, _ := tr.Enter("Water", h.env)

			if len(h.audio.transients) != 1 {
				t.Fatalf("expected a transient emitter")
			}
			em := h.audio.transients[0]
			want := s.Clip.Length()/math.Max(c.pitch, 0.01) + TransientMargin
			if math.Abs(em.destroyAfter-want) > eps {
				t.Fatalf("destroy after %v, want %v", em.destroyAfter, want)
			}
			if em.at != h.surface.at || em.blend != 1 {
				t.Fatalf("emitter at %v blend %v", em.at, em.blend)
			}
			if len(em.played) != 1 || em.pitchs[0] != c.pitch {
				t.Fatalf("emitter played %d clips at %v", len(em.played), em.pitchs)
			}
		})
	}
}

func TestPersistentOutputPreferred(t *testing.T) {
	t.Run("configured", func(t *testing.T) {
		h := newHarness(2)
		own := &fakeSource{}
		h.env.Output = own
		cfgOut := &fakeSource{}
		cfg := testConfig()
		cfg.Output = cfgOut
		tr := NewTrigger(cfg)
		s, _ := tr.Enter("Water", h.env)
		if len(cfgOut.played) != 1 || len(own.played) != 0 || len(h.audio.transients) != 0 {
			t.Fatalf("configured output should play alone")
		}
		if cfgOut.pitch != s.Pitch {
			t.Fatalf("output pitch %v, want %v", cfgOut.pitch, s.Pitch)
		}
	})
	t.Run("entity_fallback", func(t *testing.T) {
		h := newHarness(2)
		own := &fakeSource{}
		h.env.Output = own
		tr := NewTrigger(testConfig())
		s, _ := tr.Enter("Water", h.env)
		if len(own.played) != 1 || len(h.audio.transients) != 0 || s.Transient {
			t.Fatalf("entity output should be used before a transient")
		}
	})
}

func TestDeterministicWithSeed(t *testing.T) {
	run := func() []float64 {
		h := newHarness(2)
		h.env.Rand = NewRandom(99)
		tr := NewTrigger(testConfig())
		var pitches []float64
		for i := 0; i < 10; i++ {
			tr.Exit("Water")
			s, _ := tr.Enter("Water", h.env)
			pitches = append(pitches, s.Pitch)
		}
		return pitches
	}
	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("seeded runs diverged at %d: %v vs %v", i, a[i], b[i])
		}
	}
}
