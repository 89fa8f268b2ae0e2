// SPDX-License-Identifier: EPL-2.0

package scene

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ik5/audspat/audio"
	"github.com/ik5/audspat/formats/wav"
	"github.com/ik5/audspat/internal/config"
	"github.com/ik5/audspat/spatial"
)

// writeWAV writes frames frames of a constant value to dir/name.
func writeWAV(t *testing.T, dir, name string, rate, channels, frames int, value float32) {
	t.Helper()

	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	enc, err := wav.NewEncoder(f, rate, channels, 16)
	if err != nil {
		t.Fatalf("NewEncoder() error = %v", err)
	}

	samples := make([]float32, frames*channels)
	for i := range samples {
		samples[i] = value
	}
	if err := enc.Write(samples); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
}

func intp(v int) *int           { return &v }
func floatp(v float64) *float64 { return &v }

func TestDecoders(t *testing.T) {
	t.Parallel()

	reg := Decoders()
	for _, path := range []string{"a.wav", "a.WAVE", "a.aif", "a.aiff", "a.mp3", "a.ogg", "a.oga"} {
		if _, err := reg.ForPath(path); err != nil {
			t.Errorf("ForPath(%q) error = %v", path, err)
		}
	}
	if _, err := reg.ForPath("a.flac"); !errors.Is(err, audio.ErrUnsupportedFormat) {
		t.Errorf("ForPath(a.flac) error = %v, want %v", err, audio.ErrUnsupportedFormat)
	}
}

func TestBuild(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeWAV(t, dir, "hum.wav", 44100, 2, 1000, 0.5)

	cfg := &config.Config{
		Output: config.OutputConfig{SampleRate: 44100, Channels: 2, FramesPerBuffer: 64},
		Speakers: []config.SpeakerConfig{
			{Name: "far", X: 3}, // takes the channel left free
			{Name: "near", Channel: intp(1)},
		},
		Sounds: []config.SoundConfig{
			{File: "hum.wav", Mono: true, Gain: floatp(0.5)},
		},
	}

	m := spatial.NewModel()
	ctl := spatial.NewController(m)

	sc, err := Build(cfg, NewLoader(44100, dir, nil), ctl)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	speakers := ctl.Speakers()
	if len(speakers) != 2 {
		t.Fatalf("Speakers() = %d speakers, want 2", len(speakers))
	}
	near, _ := sc.SpeakerByName(cfg, "near")
	far, _ := sc.SpeakerByName(cfg, "far")
	for _, s := range speakers {
		switch s.ID {
		case near:
			if s.Channel != 1 {
				t.Errorf("near speaker channel = %d, want 1", s.Channel)
			}
		case far:
			if s.Channel != 0 {
				t.Errorf("far speaker channel = %d, want 0", s.Channel)
			}
		default:
			t.Errorf("unexpected speaker %+v", s)
		}
	}

	sounds := ctl.Sounds()
	if len(sounds) != 1 || sounds[0].Channels != 1 {
		t.Fatalf("Sounds() = %+v, want one mono sound", sounds)
	}

	buf := spatial.Buffer{Channels: 2, Samples: make([]float32, 8)}
	m.Render(buf)

	// 0.5 halved by gain; far speaker is 3 away.
	want := []float32{0.16, 0.25, 0.16, 0.25, 0.16, 0.25, 0.16, 0.25}
	if diff := cmp.Diff(want, buf.Samples, cmpopts.EquateApprox(0, 1e-4)); diff != "" {
		t.Errorf("Render() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoader_Resamples(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeWAV(t, dir, "low.wav", 22050, 1, 100, 0.25)

	clip, err := NewLoader(44100, dir, nil).LoadClip(config.SoundConfig{File: "low.wav"})
	if err != nil {
		t.Fatalf("LoadClip() error = %v", err)
	}

	if clip.SampleRate() != 44100 {
		t.Errorf("SampleRate() = %d, want 44100", clip.SampleRate())
	}
	if clip.Frames() != 199 {
		t.Errorf("Frames() = %d, want 199", clip.Frames())
	}
}

func TestLoader_SharesClips(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeWAV(t, dir, "a.wav", 44100, 2, 10, 0.1)
	l := NewLoader(44100, dir, nil)

	first, err := l.LoadClip(config.SoundConfig{File: "a.wav"})
	if err != nil {
		t.Fatalf("LoadClip() error = %v", err)
	}
	second, _ := l.LoadClip(config.SoundConfig{File: filepath.Join(dir, "a.wav"), Gain: floatp(1)})
	if first != second {
		t.Error("same file and settings decoded twice")
	}

	quieter, _ := l.LoadClip(config.SoundConfig{File: "a.wav", Gain: floatp(0.5)})
	mono, _ := l.LoadClip(config.SoundConfig{File: "a.wav", Mono: true})
	if quieter == first || mono == first || quieter == mono {
		t.Error("different gain or mono shared a clip")
	}
}

func TestLoader_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "junk.wav"), []byte("not audio"), 0o644); err != nil {
		t.Fatal(err)
	}
	l := NewLoader(44100, dir, nil)

	tests := []struct {
		file string
		want error
	}{
		{file: "song.flac", want: audio.ErrUnsupportedFormat},
		{file: "missing.wav", want: os.ErrNotExist},
		{file: "junk.wav", want: wav.ErrNotWavFile},
	}

	for _, tt := range tests {
		if _, err := l.LoadClip(config.SoundConfig{File: tt.file}); !errors.Is(err, tt.want) {
			t.Errorf("LoadClip(%q) error = %v, want %v", tt.file, err, tt.want)
		}
	}
}

func TestBuild_OnceSoundsAreReaped(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeWAV(t, dir, "blip.wav", 44100, 1, 10, 0.5)

	cfg := &config.Config{
		Output:   config.OutputConfig{SampleRate: 44100, Channels: 1, FramesPerBuffer: 64},
		Speakers: []config.SpeakerConfig{{Name: "only"}},
		Sounds:   []config.SoundConfig{{File: "blip.wav", End: "once"}},
	}

	m := spatial.NewModel()
	ctl := spatial.NewController(m)
	sc, err := Build(cfg, NewLoader(44100, dir, nil), ctl)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	m.Render(spatial.Buffer{Channels: 1, Samples: make([]float32, 64)})
	if !sc.Playbacks[0].Done() {
		t.Fatal("Done() = false after rendering past the clip")
	}

	reaped, err := ctl.ReapFinished()
	if err != nil {
		t.Fatalf("ReapFinished() error = %v", err)
	}
	if diff := cmp.Diff(sc.Sounds, reaped); diff != "" {
		t.Errorf("ReapFinished() mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_BadSound(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		Output:   config.OutputConfig{SampleRate: 44100, Channels: 2},
		Speakers: []config.SpeakerConfig{{Name: "a"}},
		Sounds:   []config.SoundConfig{{File: "missing.ogg"}},
	}

	ctl := spatial.NewController(spatial.NewModel())
	sc, err := Build(cfg, NewLoader(44100, t.TempDir(), nil), ctl)
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Build() error = %v, want %v", err, os.ErrNotExist)
	}
	if len(sc.Speakers) != 1 || len(sc.Sounds) != 0 {
		t.Errorf("partial scene = %+v, want the speaker and no sounds", sc)
	}
}
