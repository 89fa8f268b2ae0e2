// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// mockOggReader simulates oggvorbis.Reader, which reads whole frames and
// counts in samples.
type mockOggReader struct {
	sampleRate int
	channels   int
	samples    []float32
	maxFrames  int
	err        error
}

func (m *mockOggReader) SampleRate() int { return m.sampleRate }
func (m *mockOggReader) Channels() int   { return m.channels }

func (m *mockOggReader) Read(p []float32) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	if len(m.samples) == 0 {
		return 0, io.EOF
	}

	if m.maxFrames > 0 && len(p) > m.maxFrames*m.channels {
		p = p[:m.maxFrames*m.channels]
	}
	n := copy(p, m.samples)
	m.samples = m.samples[n:]

	return n, nil
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	for _, data := range [][]byte{nil, []byte("This is not Ogg Vorbis data")} {
		if _, err := (Decoder{}).Decode(bytes.NewReader(data)); err == nil {
			t.Errorf("Decode(%q) error = nil, want error", data)
		}
	}
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	want := []float32{0.1, -0.1, 0.2, -0.2, 0.3, -0.3, 0.4, -0.4, 0.5, -0.5, 0.6, -0.6}

	tests := []struct {
		name      string
		maxFrames int
		size      int
	}{
		{name: "one read", size: 64},
		{name: "frame per read", maxFrames: 1, size: 64},
		{name: "odd destination", size: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := &source{
				dec:        &mockOggReader{sampleRate: 48000, channels: 2, samples: want, maxFrames: tt.maxFrames},
				sampleRate: 48000,
				channels:   2,
			}

			var got []float32
			dst := make([]float32, tt.size)
			for {
				n, err := s.ReadSamples(dst)
				if n%2 != 0 {
					t.Fatalf("ReadSamples() = %d, want whole stereo frames", n)
				}
				got = append(got, dst[:n]...)
				if err == io.EOF {
					break
				}
				if err != nil {
					t.Fatalf("ReadSamples() error = %v", err)
				}
			}

			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("samples mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSource_ShortDestination(t *testing.T) {
	t.Parallel()

	s := &source{dec: &mockOggReader{channels: 4, samples: make([]float32, 8)}, channels: 4}

	if n, err := s.ReadSamples(make([]float32, 3)); n != 0 || err != nil {
		t.Errorf("ReadSamples(3 samples, 4 channels) = %d, %v, want 0, nil", n, err)
	}
}

func TestSource_ReadError(t *testing.T) {
	t.Parallel()

	boom := errors.New("corrupt page")
	s := &source{dec: &mockOggReader{channels: 1, err: boom}, channels: 1}

	if _, err := s.ReadSamples(make([]float32, 4)); !errors.Is(err, boom) {
		t.Errorf("ReadSamples() error = %v, want %v", err, boom)
	}
}
