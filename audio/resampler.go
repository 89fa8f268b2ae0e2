// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/audspat/utils"
)

// maxEmptyReads bounds how many times in a row a source may return no data
// and no error before the Resampler gives up on it.
const maxEmptyReads = 100

// Resampler streams src at another sample rate using cubic interpolation.
// It works on interleaved samples and keeps the channel count. When
// downsampling it runs a one-pole low-pass over the input first.
type Resampler struct {
	src      Source
	channels int
	dstRate  int
	step     float64 // source frames per output frame

	// window holds four consecutive source frames t-1, t, t+1, t+2. Output
	// is interpolated between window[1] and window[2]; real is false for
	// frames repeated past the end of src.
	window [4][]float32
	real   [4]bool
	pos    float64 // fractional position past window[1]
	primed bool
	done   bool

	in     []float32 // block of raw samples read from src
	inPos  int
	inLen  int
	srcEOF bool

	lowpass bool
	warm    bool
	alpha   float32
	state   []float32
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()
	step := float64(src.SampleRate()) / float64(dstRate)

	r := &Resampler{
		src:      src,
		channels: channels,
		dstRate:  dstRate,
		step:     step,
		in:       make([]float32, 4096*channels),
		lowpass:  step > 1,
		alpha:    0.5,
		state:    make([]float32, channels),
	}

	for i := range r.window {
		r.window[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("close resampled source: %w", err)
	}

	return nil
}

// ReadSamples writes resampled frames into dst, whose length must be a
// multiple of the channel count.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if r.done {
		return 0, io.EOF
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			if err == io.EOF {
				r.done = true
			}
			return 0, err
		}
	}

	frames := len(dst) / r.channels
	written := 0

	for written < frames {
		for r.pos >= 1 {
			r.pos--
			if err := r.shift(); err != nil {
				return written * r.channels, err
			}
		}

		// The last real frame is still emitted when we land on it exactly.
		if !r.real[1] || (!r.real[2] && r.pos > 0) {
			r.done = true
			return written * r.channels, io.EOF
		}

		x := float32(r.pos)
		out := dst[written*r.channels : (written+1)*r.channels]
		for c := range out {
			out[c] = utils.CubicInterpolate(r.window[0][c], r.window[1][c], r.window[2][c], r.window[3][c], x)
		}

		written++
		r.pos += r.step
	}

	return written * r.channels, nil
}

func (r *Resampler) prime() error {
	ok, err := r.nextFrame(r.window[1])
	if err != nil {
		return err
	}
	if !ok {
		return io.EOF
	}
	r.real[1] = true

	copy(r.window[0], r.window[1])
	r.real[0] = true

	for i := 2; i < len(r.window); i++ {
		ok, err := r.nextFrame(r.window[i])
		if err != nil {
			return err
		}
		if !ok {
			copy(r.window[i], r.window[i-1])
		}
		r.real[i] = ok
	}

	r.primed = true

	return nil
}

// shift slides the window one source frame forward.
func (r *Resampler) shift() error {
	oldest := r.window[0]
	r.window[0], r.window[1], r.window[2] = r.window[1], r.window[2], r.window[3]
	r.real[0], r.real[1], r.real[2] = r.real[1], r.real[2], r.real[3]
	r.window[3] = oldest

	ok, err := r.nextFrame(oldest)
	if err != nil {
		return err
	}
	if !ok {
		copy(oldest, r.window[2])
	}
	r.real[3] = ok

	return nil
}

// nextFrame copies the next source frame into dst, reporting false once the
// source is exhausted.
func (r *Resampler) nextFrame(dst []float32) (bool, error) {
	empty := 0
	for r.inLen-r.inPos < r.channels {
		if r.srcEOF {
			return false, nil
		}

		// Keep any partial frame at the front of the block.
		rest := copy(r.in, r.in[r.inPos:r.inLen])
		r.inPos, r.inLen = 0, rest

		n, err := r.src.ReadSamples(r.in[rest:])
		r.inLen += n

		switch {
		case err == io.EOF:
			r.srcEOF = true
		case err != nil:
			return false, fmt.Errorf("read source: %w", err)
		case n == 0:
			empty++
			if empty >= maxEmptyReads {
				return false, io.ErrNoProgress
			}
		}
	}

	copy(dst, r.in[r.inPos:r.inPos+r.channels])
	r.inPos += r.channels

	if r.lowpass {
		if !r.warm {
			copy(r.state, dst)
			r.warm = true
		}
		for c := range dst {
			dst[c] = r.alpha*dst[c] + (1-r.alpha)*r.state[c]
			r.state[c] = dst[c]
		}
	}

	return true, nil
}
