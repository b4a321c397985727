package sound

import (
	"github.com/gopxl/beep"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

// Output plays rendered PCM. Every Play is independent of the others.
type Output interface {
	Play(pcm []byte) error
	SampleRate() beep.SampleRate
}

// EbitenOutput plays PCM on an ebiten audio context. Each Play gets its own
// player; finished players are closed on later calls.
type EbitenOutput struct {
	ctx     *audio.Context
	players []*audio.Player
}

func NewEbitenOutput(ctx *audio.Context) *EbitenOutput {
	return &EbitenOutput{ctx: ctx}
}

func (o *EbitenOutput) SampleRate() beep.SampleRate {
	if o == nil || o.ctx == nil {
		return 0
	}
	return beep.SampleRate(o.ctx.SampleRate())
}

func (o *EbitenOutput) Play(pcm []byte) error {
	if o == nil || o.ctx == nil || len(pcm) == 0 {
		return nil
	}
	o.prune()
	player := o.ctx.NewPlayerFromBytes(pcm)
	player.Play()
	o.players = append(o.players, player)
	return nil
}

// Active is the number of players still sounding.
func (o *EbitenOutput) Active() int {
	if o == nil {
		return 0
	}
	o.prune()
	return len(o.players)
}

func (o *EbitenOutput) prune() {
	kept := o.players[:0]
	for _, p := range o.players {
		if p.IsPlaying() {
			kept = append(kept, p)
			continue
		}
		_ = p.Close()
	}
	for i := len(kept); i < len(o.players); i++ {
		o.players[i] = nil
	}
	o.players = kept
}
