// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"github.com/ik5/audspat/utils"
)

// Encoder writes interleaved float samples as a multichannel integer PCM
// WAV file. The header sizes are patched in by Close, so the destination
// must be seekable.
type Encoder struct {
	enc      *gowav.Encoder
	buf      *goaudio.IntBuffer
	channels int
	bitDepth int
	frames   int
}

// NewEncoder starts a WAV file on w. bitDepth is 16, 24 or 32.
func NewEncoder(w io.WriteSeeker, sampleRate, channels, bitDepth int) (*Encoder, error) {
	if channels < 1 || sampleRate < 1 {
		return nil, ErrInvalidFormat
	}

	switch bitDepth {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("encode %d bits: %w", bitDepth, ErrUnsupportedBitDepth)
	}

	format := &goaudio.Format{NumChannels: channels, SampleRate: sampleRate}

	return &Encoder{
		enc:      gowav.NewEncoder(w, sampleRate, bitDepth, channels, formatPCM),
		buf:      &goaudio.IntBuffer{Format: format, SourceBitDepth: bitDepth},
		channels: channels,
		bitDepth: bitDepth,
	}, nil
}

// Write appends whole frames of interleaved samples. Samples outside
// [-1, 1] are clipped.
func (e *Encoder) Write(samples []float32) error {
	if len(samples)%e.channels != 0 {
		return ErrPartialFrame
	}
	if len(samples) == 0 {
		return nil
	}

	if cap(e.buf.Data) < len(samples) {
		e.buf.Data = make([]int, len(samples))
	}
	e.buf.Data = e.buf.Data[:len(samples)]

	for i, v := range samples {
		e.buf.Data[i] = utils.FloatToPCM(v, e.bitDepth)
	}

	if err := e.enc.Write(e.buf); err != nil {
		return fmt.Errorf("write wav frames: %w", err)
	}
	e.frames += len(samples) / e.channels

	return nil
}

// Frames returns how many frames have been written.
func (e *Encoder) Frames() int { return e.frames }

// Close finishes the file header. It does not close the underlying writer.
func (e *Encoder) Close() error {
	if err := e.enc.Close(); err != nil {
		return fmt.Errorf("finish wav: %w", err)
	}

	return nil
}
