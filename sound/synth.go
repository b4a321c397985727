package sound

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
)

// SynthSpec parameterises a procedural splash: low-passed noise with a short
// attack and exponential decay.
type SynthSpec struct {
	Duration time.Duration
	Seed     uint64
	// Decay is the envelope decay rate per second.
	Decay float64
	// Brightness in (0,1] is the low-pass coefficient; lower is duller.
	Brightness float64
	Volume     float64
}

const synthAttack = 8 * time.Millisecond

// Synthesize renders spec into a mono-as-stereo clip at rate.
func Synthesize(name string, spec SynthSpec, rate beep.SampleRate) *Clip {
	format := beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
	total := rate.N(spec.Duration)
	if total <= 0 {
		return NewClip(name, format, nil)
	}

	alpha := spec.Brightness
	if alpha <= 0 || alpha > 1 {
		alpha = 0.35
	}
	volume := spec.Volume
	if volume <= 0 {
		volume = 0.8
	}
	attack := rate.N(synthAttack)
	rnd := rand.New(rand.NewPCG(spec.Seed, spec.Seed^0x9e3779b97f4a7c15))

	pos := 0
	lp := 0.0
	gen := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= total {
			return 0, false
		}
		n := 0
		for i := range samples {
			if pos >= total {
				break
			}
			lp += alpha * (rnd.Float64()*2 - 1 - lp)
			t := float64(pos) / float64(rate)
			env := math.Exp(-spec.Decay * t)
			if pos < attack {
				env *= float64(pos) / float64(attack)
			}
			v := lp * env * volume
			samples[i][0] = v
			samples[i][1] = v
			pos++
			n++
		}
		return n, true
	})
	return NewClip(name, format, gen)
}
