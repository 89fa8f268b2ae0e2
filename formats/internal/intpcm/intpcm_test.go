// SPDX-License-Identifier: EPL-2.0

package intpcm

import (
	"errors"
	"io"
	"strings"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

type sliceReader struct {
	data []int
	err  error
}

func (r *sliceReader) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	if r.err != nil {
		return 0, r.err
	}

	n := copy(buf.Data, r.data)
	r.data = r.data[n:]
	return n, nil
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		bitDepth int
		offset   int
		data     []int
		want     []float32
	}{
		{name: "16-bit", bitDepth: 16, data: []int{0, 32767, -32767, 16384}, want: []float32{0, 1, -1, 0.5}},
		{name: "24-bit", bitDepth: 24, data: []int{8388607, -4194304}, want: []float32{1, -0.5}},
		{name: "unsigned 8-bit", bitDepth: 8, offset: -128, data: []int{128, 255, 1}, want: []float32{0, 1, -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			format := &goaudio.Format{NumChannels: 1, SampleRate: 8000}
			src, err := NewSource(&sliceReader{data: tt.data}, format, tt.bitDepth, tt.offset)
			if err != nil {
				t.Fatalf("NewSource() error = %v", err)
			}

			dst := make([]float32, 16)
			n, err := src.ReadSamples(dst)
			if err != nil {
				t.Fatalf("ReadSamples() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, dst[:n], cmpopts.EquateApprox(0, 1e-4)); diff != "" {
				t.Errorf("samples mismatch (-want +got):\n%s", diff)
			}

			if n, err := src.ReadSamples(dst); n != 0 || err != io.EOF {
				t.Errorf("ReadSamples() at end = %d, %v, want 0, io.EOF", n, err)
			}
		})
	}
}

func TestSource_Errors(t *testing.T) {
	t.Parallel()

	format := &goaudio.Format{NumChannels: 2, SampleRate: 8000}
	if _, err := NewSource(&sliceReader{}, format, 12, 0); !errors.Is(err, ErrUnsupportedBitDepth) {
		t.Errorf("NewSource(12 bits) error = %v, want %v", err, ErrUnsupportedBitDepth)
	}

	boom := errors.New("boom")
	src, _ := NewSource(&sliceReader{err: boom}, format, 16, 0)
	if _, err := src.ReadSamples(make([]float32, 4)); !errors.Is(err, boom) {
		t.Errorf("ReadSamples() error = %v, want %v", err, boom)
	}
	if src.Channels() != 2 || src.SampleRate() != 8000 {
		t.Errorf("format = %d ch %d Hz, want 2 ch 8000 Hz", src.Channels(), src.SampleRate())
	}
}

func TestSeekable(t *testing.T) {
	t.Parallel()

	rs, err := Seekable(io.MultiReader(strings.NewReader("abc")))
	if err != nil {
		t.Fatalf("Seekable() error = %v", err)
	}
	if _, err := rs.Seek(1, io.SeekStart); err != nil {
		t.Fatalf("Seek() error = %v", err)
	}
	rest, _ := io.ReadAll(rs)
	if string(rest) != "bc" {
		t.Errorf("read after seek = %q, want %q", rest, "bc")
	}
}
