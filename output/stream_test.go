// SPDX-License-Identifier: EPL-2.0

package output

import (
	"encoding/binary"
	"io"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ik5/audspat/internal/audiotest"
	"github.com/ik5/audspat/spatial"
)

// addRenderer adds a running count to every sample, so a buffer that was
// not cleared shows up as growing values.
type addRenderer struct {
	calls int
	next  float32
}

func (r *addRenderer) Render(buf spatial.Buffer) {
	r.calls++
	for i := range buf.Samples {
		r.next += 0.001
		buf.Samples[i] += r.next
	}
}

func decode(p []byte) []float32 {
	out := make([]float32, len(p)/BytesPerSample)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(p[i*BytesPerSample:]))
	}
	return out
}

func TestStream_ModelOutput(t *testing.T) {
	t.Parallel()

	m := spatial.NewModel()
	c := spatial.NewController(m)

	if _, err := c.AddSpeaker(spatial.SpeakerConfig{Name: "left", Channel: 0}); err != nil {
		t.Fatal(err)
	}
	if _, err := c.AddSpeaker(spatial.SpeakerConfig{Name: "right", Point: spatial.Point{X: 3}, Channel: 1}); err != nil {
		t.Fatal(err)
	}
	if _, err := c.AddSound(spatial.SoundConfig{Channels: 1, Signal: audiotest.ConstantSignal{Value: 0.5}}); err != nil {
		t.Fatal(err)
	}

	s := NewStream(m, 2, 4)
	p := make([]byte, 3*4*2*BytesPerSample) // three blocks

	if n, err := s.Read(p); n != len(p) || err != nil {
		t.Fatalf("Read() = %d, %v, want %d, nil", n, err, len(p))
	}

	// Right speaker is 3 away: 0.5 * (1 - 9/25).
	want := make([]float32, 24)
	for f := range 12 {
		want[2*f], want[2*f+1] = 0.5, 0.32
	}

	if diff := cmp.Diff(want, decode(p), cmpopts.EquateApprox(0, 1e-6)); diff != "" {
		t.Errorf("Read() samples mismatch (-want +got):\n%s", diff)
	}
	if got := s.FramesRendered(); got != 12 {
		t.Errorf("FramesRendered() = %d, want 12", got)
	}
}

func TestStream_ClearsEachBlock(t *testing.T) {
	t.Parallel()

	r := &addRenderer{}
	s := NewStream(r, 1, 2)

	got := decode(mustRead(t, s, 4*BytesPerSample))
	want := []float32{0.001, 0.002, 0.003, 0.004}

	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-6)); diff != "" {
		t.Errorf("samples mismatch (-want +got):\n%s", diff)
	}
	if r.calls != 2 {
		t.Errorf("Render called %d times, want 2", r.calls)
	}
}

func mustRead(t *testing.T, r io.Reader, n int) []byte {
	t.Helper()

	p := make([]byte, n)
	if _, err := io.ReadFull(r, p); err != nil {
		t.Fatalf("ReadFull() error = %v", err)
	}
	return p
}

func TestStream_PartialReads(t *testing.T) {
	t.Parallel()

	whole := mustRead(t, NewStream(&addRenderer{}, 3, 5), 200)

	s := NewStream(&addRenderer{}, 3, 5)
	var pieces []byte
	for _, size := range []int{1, 7, 3, 60, 2, 127} {
		pieces = append(pieces, mustRead(t, s, size)...)
	}

	if diff := cmp.Diff(whole, pieces); diff != "" {
		t.Errorf("split reads differ from one read (-want +got):\n%s", diff)
	}
}

func TestStream_VolumeAndMute(t *testing.T) {
	t.Parallel()

	s := NewStream(renderFunc(func(buf spatial.Buffer) {
		for i := range buf.Samples {
			buf.Samples[i] += 0.8
		}
	}), 1, 1)

	tests := []struct {
		name   string
		volume float32
		muted  bool
		want   float32
	}{
		{name: "unity", volume: 1, want: 0.8},
		{name: "half", volume: 0.5, want: 0.4},
		{name: "negative clamps to silence", volume: -1, want: 0},
		{name: "boost clips", volume: 2, want: 1},
		{name: "muted", volume: 1, muted: true, want: 0},
	}

	for _, tt := range tests {
		s.SetVolume(tt.volume)
		s.SetMuted(tt.muted)

		got := decode(mustRead(t, s, BytesPerSample))[0]
		if math.Abs(float64(got-tt.want)) > 1e-6 {
			t.Errorf("%s: sample = %v, want %v", tt.name, got, tt.want)
		}
	}

	if s.Muted() != true {
		t.Error("Muted() = false, want true")
	}
}

type renderFunc func(spatial.Buffer)

func (f renderFunc) Render(buf spatial.Buffer) { f(buf) }

func TestStream_Next(t *testing.T) {
	t.Parallel()

	s := NewStream(&addRenderer{}, 2, 3)
	mustRead(t, s, 1) // leaves pending bytes behind

	block := s.Next()
	if len(block) != 6 {
		t.Fatalf("Next() returned %d samples, want 6", len(block))
	}
	if got := s.FramesRendered(); got != 6 {
		t.Errorf("FramesRendered() = %d, want 6", got)
	}
}

func TestStream_ZeroAllocs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping allocation test in short mode")
	}

	m := spatial.NewModel()
	c := spatial.NewController(m)
	c.AddSpeaker(spatial.SpeakerConfig{Channel: 0})
	c.AddSound(spatial.SoundConfig{Channels: 2, Spread: 1, Signal: audiotest.ConstantSignal{Value: 0.1}})

	s := NewStream(m, 2, 64)
	p := make([]byte, 1000)
	s.Read(p) // apply queued commands and size scratch buffers

	allocs := testing.AllocsPerRun(100, func() {
		s.Read(p)
	})

	if allocs > 0 {
		t.Errorf("Read allocated %v times, want 0", allocs)
	}
}

func BenchmarkStream_Read(b *testing.B) {
	m := spatial.NewModel()
	c := spatial.NewController(m)
	for ch := range 8 {
		c.AddSpeaker(spatial.SpeakerConfig{Point: spatial.Point{X: float64(ch)}, Channel: ch})
	}
	for range 16 {
		c.AddSound(spatial.SoundConfig{Channels: 2, Spread: 1, Signal: audiotest.ConstantSignal{Value: 0.1}})
	}

	s := NewStream(m, 8, spatial.FramesPerBuffer)
	p := make([]byte, 8*spatial.FramesPerBuffer*BytesPerSample)

	b.ReportAllocs()
	b.SetBytes(int64(len(p)))
	for range b.N {
		s.Read(p)
	}
}
