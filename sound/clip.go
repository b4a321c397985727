// Package sound holds decoded audio clips and turns them into pitched PCM
// for playback on an ebiten audio context.
package sound

import (
	"errors"
	"fmt"
	"io"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
)

var ErrEmptyClip = errors.New("sound: clip has no samples")

// Clip is an immutable, fully buffered sound.
type Clip struct {
	name   string
	format beep.Format
	buf    *beep.Buffer
}

// NewClip buffers all of s in the given format.
func NewClip(name string, format beep.Format, s beep.Streamer) *Clip {
	buf := beep.NewBuffer(format)
	if s != nil {
		buf.Append(s)
	}
	return &Clip{name: name, format: format, buf: buf}
}

// DecodeWAV reads a whole WAV stream into a clip.
func DecodeWAV(name string, r io.Reader) (*Clip, error) {
	s, format, err := wav.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("sound: decode wav %q: %w", name, err)
	}
	defer s.Close()

	clip := NewClip(name, format, s)
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("sound: read wav %q: %w", name, err)
	}
	if clip.Samples() == 0 {
		return nil, fmt.Errorf("sound: wav %q: %w", name, ErrEmptyClip)
	}
	return clip, nil
}

func (c *Clip) Name() string {
	if c == nil {
		return ""
	}
	return c.name
}

// Samples is the clip length in sample frames.
func (c *Clip) Samples() int {
	if c == nil || c.buf == nil {
		return 0
	}
	return c.buf.Len()
}

// SampleRate is the rate the clip was recorded at.
func (c *Clip) SampleRate() beep.SampleRate {
	if c == nil {
		return 0
	}
	return c.format.SampleRate
}

// Length is the playback length in seconds at pitch 1.
func (c *Clip) Length() float64 {
	if c == nil || c.format.SampleRate <= 0 {
		return 0
	}
	return c.format.SampleRate.D(c.Samples()).Seconds()
}

// Streamer returns a fresh streamer over the whole clip.
func (c *Clip) Streamer() beep.StreamSeeker {
	return c.buf.Streamer(0, c.buf.Len())
}
