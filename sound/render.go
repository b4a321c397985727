package sound

import (
	"math"

	"github.com/gopxl/beep"
)

// MinPitch is the floor applied before resampling; lower pitches would
// stretch a clip without bound.
const MinPitch = 0.01

const resampleQuality = 4

// Voice is how one playback of a clip should sound.
type Voice struct {
	Pitch  float64
	Volume float64
	// Pan in [-1,1], left to right.
	Pan float64
}

// PlaybackLength is how long clip plays at pitch, in seconds.
func PlaybackLength(c *Clip, pitch float64) float64 {
	return c.Length() / math.Max(pitch, MinPitch)
}

// Render resamples clip by the voice pitch to outRate and encodes it as
// 16-bit little endian stereo PCM.
func Render(c *Clip, v Voice, outRate beep.SampleRate) []byte {
	if c.Samples() == 0 || outRate <= 0 {
		return nil
	}
	pitch := math.Max(v.Pitch, MinPitch)
	ratio := pitch * float64(c.SampleRate()) / float64(outRate)

	var s beep.Streamer = c.Streamer()
	if math.Abs(ratio-1) > 1e-9 {
		s = beep.ResampleRatio(resampleQuality, ratio, s)
	}

	leftGain, rightGain := panGains(v.Pan)
	leftGain *= v.Volume
	rightGain *= v.Volume

	expected := int(float64(c.Samples())/ratio) + 1
	out := make([]byte, 0, expected*4)
	chunk := make([][2]float64, 512)
	for {
		n, ok := s.Stream(chunk)
		for _, smp := range chunk[:n] {
			out = appendSample(out, smp[0]*leftGain)
			out = appendSample(out, smp[1]*rightGain)
		}
		if !ok {
			break
		}
	}
	return out
}

func panGains(pan float64) (float64, float64) {
	pan = math.Max(-1, math.Min(1, pan))
	return math.Min(1, 1-pan), math.Min(1, 1+pan)
}

func appendSample(out []byte, v float64) []byte {
	v = math.Max(-1, math.Min(1, v))
	i := int16(v * math.MaxInt16)
	return append(out, byte(i), byte(uint16(i)>>8))
}
