// SPDX-License-Identifier: EPL-2.0

// Package intpcm adapts the integer PCM buffers of the go-audio decoders to
// float samples.
package intpcm

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"

	"github.com/ik5/audspat/utils"
)

// ErrUnsupportedBitDepth is returned for depths other than 8, 16, 24 and 32.
var ErrUnsupportedBitDepth = errors.New("unsupported PCM bit depth")

// Reader is the part of the go-audio wav and aiff decoders a Source needs.
type Reader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Source reads integer PCM from a Reader and converts it to float32.
type Source struct {
	r        Reader
	format   *goaudio.Format
	bitDepth int
	offset   int // added to raw samples before scaling; -128 for unsigned 8-bit

	buf *goaudio.IntBuffer
}

// NewSource wraps r. offset is added to every raw sample, for formats that
// store 8-bit audio unsigned.
func NewSource(r Reader, format *goaudio.Format, bitDepth, offset int) (*Source, error) {
	switch bitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%d bits: %w", bitDepth, ErrUnsupportedBitDepth)
	}

	return &Source{
		r:        r,
		format:   format,
		bitDepth: bitDepth,
		offset:   offset,
		buf: &goaudio.IntBuffer{
			Format:         format,
			Data:           make([]int, 4096),
			SourceBitDepth: bitDepth,
		},
	}, nil
}

func (s *Source) SampleRate() int { return s.format.SampleRate }
func (s *Source) Channels() int   { return s.format.NumChannels }
func (s *Source) Close() error    { return nil }

func (s *Source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	if cap(s.buf.Data) < len(dst) {
		s.buf.Data = make([]int, len(dst))
	}
	s.buf.Data = s.buf.Data[:len(dst)]

	n, err := s.r.PCMBuffer(s.buf)
	if err != nil && err != io.EOF {
		return 0, fmt.Errorf("read pcm: %w", err)
	}
	if n == 0 {
		return 0, io.EOF
	}

	for i, v := range s.buf.Data[:n] {
		dst[i] = utils.PCMToFloat(v+s.offset, s.bitDepth)
	}

	return n, nil
}

// Seekable returns r itself when it can seek, and otherwise buffers it in
// memory. The go-audio decoders need to seek between chunks.
func Seekable(r io.Reader) (io.ReadSeeker, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs, nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("buffer input: %w", err)
	}

	return bytes.NewReader(data), nil
}
