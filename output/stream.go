// SPDX-License-Identifier: EPL-2.0

package output

import (
	"encoding/binary"
	"math"
	"sync/atomic"

	"github.com/ik5/audspat/spatial"
	"github.com/ik5/audspat/utils"
)

// BytesPerSample is the size of one encoded float32 sample.
const BytesPerSample = 4

// Renderer mixes sound into an interleaved buffer. *spatial.Model is one.
type Renderer interface {
	Render(buf spatial.Buffer)
}

// Stream renders blocks of framesPerBuffer frames and encodes them as
// interleaved little-endian float32. Bytes left over from a block are
// handed out by the next Read, so callers may read any length.
//
// Read must only be called from one goroutine. SetVolume and SetMuted may
// be called from any.
type Stream struct {
	r        Renderer
	channels int

	block   []float32
	encoded []byte
	pending []byte // unread tail of encoded

	volume atomic.Uint32 // float32 bits
	muted  atomic.Bool
	frames atomic.Uint64
}

func NewStream(r Renderer, channels, framesPerBuffer int) *Stream {
	if framesPerBuffer < 1 {
		framesPerBuffer = spatial.FramesPerBuffer
	}

	s := &Stream{
		r:        r,
		channels: channels,
		block:    make([]float32, framesPerBuffer*channels),
		encoded:  make([]byte, framesPerBuffer*channels*BytesPerSample),
	}
	s.volume.Store(math.Float32bits(1))

	return s
}

func (s *Stream) Channels() int { return s.channels }

// FramesRendered returns how many frames the stream has rendered so far.
func (s *Stream) FramesRendered() uint64 { return s.frames.Load() }

// SetVolume sets the master gain applied after mixing. Negative values are
// treated as 0.
func (s *Stream) SetVolume(v float32) {
	s.volume.Store(math.Float32bits(max(v, 0)))
}

func (s *Stream) Volume() float32 { return math.Float32frombits(s.volume.Load()) }

// SetMuted silences the output without stopping the mix.
func (s *Stream) SetMuted(muted bool) { s.muted.Store(muted) }

func (s *Stream) Muted() bool { return s.muted.Load() }

// Read fills p completely. It never returns an error.
func (s *Stream) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		if len(s.pending) == 0 {
			s.render()
		}

		c := copy(p[n:], s.pending)
		s.pending = s.pending[c:]
		n += c
	}

	return n, nil
}

// Next renders one block and returns it. The slice is reused by the next
// call. Next discards any bytes a previous Read left unread.
func (s *Stream) Next() []float32 {
	s.pending = nil
	s.mix()

	return s.block
}

func (s *Stream) mix() {
	clear(s.block)
	s.r.Render(spatial.Buffer{Channels: s.channels, Samples: s.block})
	s.frames.Add(uint64(len(s.block) / s.channels))

	gain := s.Volume()
	if s.muted.Load() {
		gain = 0
	}
	if gain != 1 {
		for i := range s.block {
			s.block[i] *= gain
		}
	}
}

func (s *Stream) render() {
	s.mix()

	for i, v := range s.block {
		binary.LittleEndian.PutUint32(s.encoded[i*BytesPerSample:], math.Float32bits(utils.Clamp(v)))
	}
	s.pending = s.encoded
}
