// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"strings"
	"sync/atomic"
)

// EndMode decides what a Playback does once it runs past the end of its
// clip.
type EndMode int

const (
	// Loop wraps back to the first frame.
	Loop EndMode = iota
	// Pad plays silence forever.
	Pad
	// Once plays silence and reports Done, so the control side can remove
	// the sound.
	Once
)

func (m EndMode) String() string {
	switch m {
	case Loop:
		return "loop"
	case Pad:
		return "pad"
	case Once:
		return "once"
	}
	return fmt.Sprintf("EndMode(%d)", int(m))
}

// ParseEndMode parses "loop", "pad" or "once". An empty string is Loop.
func ParseEndMode(s string) (EndMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "loop":
		return Loop, nil
	case "pad":
		return Pad, nil
	case "once":
		return Once, nil
	}
	return 0, fmt.Errorf("%q: %w", s, ErrUnknownEndMode)
}

// Clip is a fully decoded block of interleaved samples held in memory, so
// that playing it never touches a decoder or a file.
type Clip struct {
	samples    []float32
	channels   int
	sampleRate int
}

// NewClip wraps samples, which must hold whole frames.
func NewClip(samples []float32, channels, sampleRate int) (*Clip, error) {
	if channels < 1 {
		return nil, ErrInvalidChannels
	}
	if sampleRate < 1 {
		return nil, ErrInvalidSampleRate
	}
	if len(samples) < channels {
		return nil, ErrEmptyClip
	}
	if len(samples)%channels != 0 {
		return nil, ErrInvalidDstSize
	}

	return &Clip{samples: samples, channels: channels, sampleRate: sampleRate}, nil
}

// ReadClip decodes src to the end and closes it. A trailing partial frame is
// dropped.
func ReadClip(src Source) (*Clip, error) {
	defer src.Close()

	channels := src.Channels()
	if channels < 1 {
		return nil, ErrInvalidChannels
	}

	block := make([]float32, 4096*channels)
	var samples []float32
	empty := 0

	for {
		n, err := src.ReadSamples(block)
		samples = append(samples, block[:n]...)

		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode clip: %w", err)
		}

		if n == 0 {
			empty++
			if empty >= maxEmptyReads {
				return nil, fmt.Errorf("decode clip: %w", io.ErrNoProgress)
			}
			continue
		}
		empty = 0
	}

	samples = samples[:len(samples)-len(samples)%channels]

	return NewClip(samples, channels, src.SampleRate())
}

func (c *Clip) Channels() int   { return c.channels }
func (c *Clip) SampleRate() int { return c.sampleRate }
func (c *Clip) Frames() int     { return len(c.samples) / c.channels }

// Samples returns the clip's interleaved samples. They must not be modified
// while the clip is playing.
func (c *Clip) Samples() []float32 { return c.samples }

// Scale multiplies every sample by gain. Call it before playing the clip.
func (c *Clip) Scale(gain float32) {
	if gain == 1 {
		return
	}

	for i := range c.samples {
		c.samples[i] *= gain
	}
}

// Play returns a new cursor over the clip. Several playbacks may share one
// clip.
func (c *Clip) Play(mode EndMode) *Playback {
	return &Playback{clip: c, mode: mode}
}

// Playback is a cursor over a Clip. Its Fill method never blocks and always
// fills its whole destination, so a Playback can be used as the signal of a
// spatial sound.
type Playback struct {
	clip *Clip
	mode EndMode
	pos  int // next sample index

	ended atomic.Bool
}

// Fill writes the next len(dst) samples, applying the end mode once the
// clip runs out. len(dst) should be a multiple of the clip's channel count.
func (p *Playback) Fill(dst []float32) {
	src := p.clip.samples

	for n := 0; n < len(dst); {
		if p.pos >= len(src) {
			if p.mode == Loop {
				p.pos = 0
				continue
			}

			clear(dst[n:])
			p.ended.Store(true)
			return
		}

		c := copy(dst[n:], src[p.pos:])
		n += c
		p.pos += c
	}
}

// Done reports whether a Once playback has reached the end of its clip.
func (p *Playback) Done() bool {
	return p.mode == Once && p.ended.Load()
}

// Mode returns the end mode the playback was started with.
func (p *Playback) Mode() EndMode { return p.mode }
