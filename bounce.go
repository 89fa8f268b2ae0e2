// SPDX-License-Identifier: EPL-2.0

package audspat

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/audspat/formats/wav"
	"github.com/ik5/audspat/output"
	"github.com/ik5/audspat/spatial"
)

var (
	ErrNoFrames        = errors.New("bounce needs at least one frame")
	ErrInvalidChannels = errors.New("bounce needs at least one channel")
)

// BounceOptions describes the file Bounce writes. Zero values take the
// defaults noted on each field.
type BounceOptions struct {
	// SampleRate only labels the file; the model renders whatever it is
	// given. Default spatial.SampleRate.
	SampleRate int
	// Channels is the number of output channels. Required.
	Channels int
	// FramesPerBuffer is the render block size. Default
	// spatial.FramesPerBuffer.
	FramesPerBuffer int
	// BitDepth is 16, 24 or 32. Default 16.
	BitDepth int
}

// Bounce renders frames frames of r into a WAV file written to w, block by
// block exactly as a sound device would pull them.
//
// Bounce is the audio thread for its duration: nothing else may call r's
// Render while it runs.
func Bounce(r output.Renderer, w io.WriteSeeker, frames int, opts BounceOptions) error {
	if frames < 1 {
		return ErrNoFrames
	}
	if opts.Channels < 1 {
		return ErrInvalidChannels
	}
	if opts.SampleRate == 0 {
		opts.SampleRate = spatial.SampleRate
	}
	if opts.FramesPerBuffer == 0 {
		opts.FramesPerBuffer = spatial.FramesPerBuffer
	}
	if opts.BitDepth == 0 {
		opts.BitDepth = 16
	}

	enc, err := wav.NewEncoder(w, opts.SampleRate, opts.Channels, opts.BitDepth)
	if err != nil {
		return fmt.Errorf("bounce: %w", err)
	}

	stream := output.NewStream(r, opts.Channels, opts.FramesPerBuffer)

	for written := 0; written < frames; {
		block := stream.Next()
		n := min(frames-written, len(block)/opts.Channels)

		if err := enc.Write(block[:n*opts.Channels]); err != nil {
			return fmt.Errorf("bounce frame %d: %w", written, err)
		}
		written += n
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("bounce: %w", err)
	}

	return nil
}
