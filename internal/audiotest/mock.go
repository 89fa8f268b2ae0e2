// SPDX-License-Identifier: EPL-2.0

// Package audiotest holds sources and signals shared by the tests of the
// other packages. Nothing here imports them, so any package may use it.
package audiotest

import (
	"io"
	"math"
	"sync/atomic"
)

// MockSource is a finite decoded stream. It has the method set of
// audio.Source.
type MockSource struct {
	sampleRate int
	channels   int
	frames     int // total frames to generate
	generated  int // frames generated so far
	waveform   func(frame int, channel int) float32

	closed atomic.Bool
}

// NewMockSource creates a source of frames frames whose samples come from
// waveform.
func NewMockSource(sampleRate, channels, frames int, waveform func(frame int, channel int) float32) *MockSource {
	return &MockSource{
		sampleRate: sampleRate,
		channels:   channels,
		frames:     frames,
		waveform:   waveform,
	}
}

// NewConstantSource creates a source where every sample is value.
func NewConstantSource(sampleRate, channels, frames int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(int, int) float32 {
		return value
	})
}

// NewSineSource creates a source of a sine wave on every channel.
func NewSineSource(sampleRate, channels, frames int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(frame int, _ int) float32 {
		t := float64(frame) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

// NewRampSource creates a source whose frame i holds float32(i) on channel
// 0, and -float32(i) on any other channel.
func NewRampSource(sampleRate, channels, frames int) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(frame int, channel int) float32 {
		if channel == 0 {
			return float32(frame)
		}
		return -float32(frame)
	})
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }

func (m *MockSource) Close() error {
	m.closed.Store(true)
	return nil
}

// Closed reports whether Close was called.
func (m *MockSource) Closed() bool { return m.closed.Load() }

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.generated >= m.frames {
		return 0, io.EOF
	}

	frames := min(len(dst)/m.channels, m.frames-m.generated)
	for f := range frames {
		for ch := range m.channels {
			dst[f*m.channels+ch] = m.waveform(m.generated+f, ch)
		}
	}
	m.generated += frames

	if m.generated >= m.frames {
		return frames * m.channels, io.EOF
	}

	return frames * m.channels, nil
}
