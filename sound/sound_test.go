package sound

import (
	"bytes"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

const testRate = beep.SampleRate(44100)

type fakeOutput struct {
	rate  beep.SampleRate
	plays [][]byte
	err   error
}

func (f *fakeOutput) Play(pcm []byte) error {
	f.plays = append(f.plays, pcm)
	return f.err
}

func (f *fakeOutput) SampleRate() beep.SampleRate { return f.rate }

func testClip(t *testing.T) *Clip {
	t.Helper()
	clip := Synthesize("splash", SynthSpec{Duration: 200 * time.Millisecond, Seed: 7, Decay: 12}, testRate)
	if clip.Samples() == 0 {
		t.Fatalf("synthesized clip is empty")
	}
	return clip
}

func TestSynthesizeLength(t *testing.T) {
	clip := testClip(t)
	if got := clip.Length(); math.Abs(got-0.2) > 0.001 {
		t.Fatalf("length = %v, want ~0.2", got)
	}
	if clip.Name() != "splash" {
		t.Fatalf("name = %q", clip.Name())
	}
}

func TestSynthesizeDeterministic(t *testing.T) {
	a := Render(testClip(t), Voice{Pitch: 1, Volume: 1}, testRate)
	b := Render(testClip(t), Voice{Pitch: 1, Volume: 1}, testRate)
	if !bytes.Equal(a, b) {
		t.Fatalf("same seed produced different audio")
	}
}

func TestRenderPitchScalesLength(t *testing.T) {
	clip := testClip(t)
	cases := []struct {
		name  string
		pitch float64
	}{
		{"normal", 1},
		{"double", 2},
		{"half", 0.5},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			pcm := Render(clip, Voice{Pitch: c.pitch, Volume: 1}, testRate)
			frames := float64(len(pcm) / 4)
			want := float64(clip.Samples()) / c.pitch
			if math.Abs(frames-want) > want*0.02+16 {
				t.Fatalf("frames = %v, want ~%v", frames, want)
			}
		})
	}
}

func TestPlaybackLengthFloorsPitch(t *testing.T) {
	clip := testClip(t)
	if got := PlaybackLength(clip, 0); math.Abs(got-clip.Length()/MinPitch) > 1e-9 {
		t.Fatalf("zero pitch length = %v", got)
	}
	if got := PlaybackLength(clip, 2); math.Abs(got-clip.Length()/2) > 1e-9 {
		t.Fatalf("double pitch length = %v", got)
	}
}

func TestPanGains(t *testing.T) {
	cases := []struct {
		pan         float64
		left, right float64
	}{
		{0, 1, 1},
		{-1, 1, 0},
		{1, 0, 1},
		{5, 0, 1},
		{0.5, 0.5, 1},
	}
	for _, c := range cases {
		l, r := panGains(c.pan)
		if math.Abs(l-c.left) > 1e-9 || math.Abs(r-c.right) > 1e-9 {
			t.Fatalf("pan %v: got (%v,%v), want (%v,%v)", c.pan, l, r, c.left, c.right)
		}
	}
}

func TestRenderSilentVolume(t *testing.T) {
	pcm := Render(testClip(t), Voice{Pitch: 1, Volume: 0}, testRate)
	for i, b := range pcm {
		if b != 0 {
			t.Fatalf("byte %d = %d, want silence", i, b)
		}
	}
}

func TestSourcePlayOneShotOverlays(t *testing.T) {
	out := &fakeOutput{rate: testRate}
	src := NewSource(out)
	clip := testClip(t)

	src.SetPitch(2)
	src.PlayOneShot(clip)
	src.SetPitch(1)
	src.PlayOneShot(clip)

	if len(out.plays) != 2 {
		t.Fatalf("expected 2 plays, got %d", len(out.plays))
	}
	if len(out.plays[0]) >= len(out.plays[1]) {
		t.Fatalf("higher pitch should render shorter audio: %d vs %d", len(out.plays[0]), len(out.plays[1]))
	}
}

func TestSourceIgnoresNil(t *testing.T) {
	var src *Source
	src.SetPitch(1)
	src.PlayOneShot(nil)

	out := &fakeOutput{rate: testRate, err: errors.New("device gone")}
	NewSource(out).PlayOneShot(nil)
	if len(out.plays) != 0 {
		t.Fatalf("nil clip should not play")
	}
	NewSource(out).PlayOneShot(testClip(t))
	if len(out.plays) != 1 {
		t.Fatalf("output errors should still count the attempt")
	}
}

func TestDecodeWAVRejectsGarbage(t *testing.T) {
	if _, err := DecodeWAV("bad", bytes.NewReader([]byte("not a wav file"))); err == nil {
		t.Fatalf("expected error for garbage input")
	}
}
