package sound

import "log"

// Source is a persistent, positionless audio output handle. PlayOneShot
// overlays clips; it never stops what is already playing.
type Source struct {
	Output Output
	Volume float64
	Pan    float64
	pitch  float64
}

func NewSource(out Output) *Source {
	return &Source{Output: out, Volume: 1, pitch: 1}
}

func (s *Source) SetPitch(pitch float64) {
	if s == nil {
		return
	}
	s.pitch = pitch
}

func (s *Source) Pitch() float64 {
	if s == nil {
		return 0
	}
	return s.pitch
}

func (s *Source) PlayOneShot(c *Clip) {
	s.PlayVoice(c, Voice{Pitch: s.Pitch(), Volume: s.Volume, Pan: s.Pan})
}

// PlayVoice renders c with an explicit voice.
func (s *Source) PlayVoice(c *Clip, v Voice) {
	if s == nil || s.Output == nil || c == nil {
		return
	}
	pcm := Render(c, v, s.Output.SampleRate())
	if err := s.Output.Play(pcm); err != nil {
		log.Printf("sound: play %q: %v", c.Name(), err)
	}
}
