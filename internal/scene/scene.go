// SPDX-License-Identifier: EPL-2.0

// Package scene turns a loaded config into live speakers and sounds on a
// spatial.Controller. All decoding happens here, on the control side, so
// the audio thread only ever sees in-memory clips.
package scene

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/ik5/audspat/audio"
	"github.com/ik5/audspat/formats/aiff"
	"github.com/ik5/audspat/formats/mp3"
	"github.com/ik5/audspat/formats/vorbis"
	"github.com/ik5/audspat/formats/wav"
	"github.com/ik5/audspat/internal/config"
	"github.com/ik5/audspat/spatial"
)

// Decoders returns a registry of every supported file format.
func Decoders() *audio.Registry {
	reg := audio.NewRegistry()

	for _, ext := range []string{"wav", "wave"} {
		reg.Register(ext, wav.Decoder{})
	}
	for _, ext := range []string{"aiff", "aif"} {
		reg.Register(ext, aiff.Decoder{})
	}
	reg.Register("mp3", mp3.Decoder{})
	for _, ext := range []string{"ogg", "oga"} {
		reg.Register(ext, vorbis.Decoder{})
	}

	return reg
}

// Loader decodes sound files into clips at one sample rate.
type Loader struct {
	Registry   *audio.Registry
	SampleRate int
	// BaseDir resolves relative file names, normally the config's directory.
	BaseDir string
	Logger  *log.Logger

	cache map[clipKey]*audio.Clip
}

type clipKey struct {
	path string
	mono bool
	gain float64
}

func NewLoader(sampleRate int, baseDir string, logger *log.Logger) *Loader {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	return &Loader{
		Registry:   Decoders(),
		SampleRate: sampleRate,
		BaseDir:    baseDir,
		Logger:     logger,
	}
}

func (l *Loader) path(file string) string {
	if filepath.IsAbs(file) || l.BaseDir == "" {
		return file
	}
	return filepath.Join(l.BaseDir, file)
}

// LoadClip decodes the sound's file, converts it to the loader's sample
// rate, downmixes it if the sound is mono and applies its gain. Sounds with
// the same file, mono flag and gain share one clip.
func (l *Loader) LoadClip(sc config.SoundConfig) (*audio.Clip, error) {
	path := l.path(sc.File)
	key := clipKey{path: path, mono: sc.Mono, gain: sc.GainOrDefault()}

	if c, ok := l.cache[key]; ok {
		return c, nil
	}

	dec, err := l.Registry.ForPath(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sound: %w", err)
	}
	defer f.Close()

	src, err := dec.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	fileRate := src.SampleRate()
	if fileRate != l.SampleRate {
		src = audio.NewResampler(src, l.SampleRate)
	}
	if sc.Mono {
		src = audio.NewMonoMixer(src)
	}

	clip, err := audio.ReadClip(src)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	clip.Scale(float32(key.gain))

	l.Logger.Printf("loaded %s: %d channels, %d Hz -> %d Hz, %d frames",
		path, clip.Channels(), fileRate, clip.SampleRate(), clip.Frames())

	if l.cache == nil {
		l.cache = make(map[clipKey]*audio.Clip)
	}
	l.cache[key] = clip

	return clip, nil
}

// Scene records the ids created for a config, in config order.
type Scene struct {
	Speakers []spatial.SpeakerID
	Sounds   []spatial.SoundID
	// Playbacks holds each sound's signal, in the same order as Sounds.
	Playbacks []*audio.Playback
}

// SpeakerByName returns the id of the named speaker.
func (s *Scene) SpeakerByName(cfg *config.Config, name string) (spatial.SpeakerID, bool) {
	for i, sp := range cfg.Speakers {
		if sp.Name == name && i < len(s.Speakers) {
			return s.Speakers[i], true
		}
	}
	return 0, false
}

// Build adds every speaker and sound of cfg to ctl. Speakers with an
// explicit channel are placed first, so automatic assignment only fills the
// channels left over. On error the scene built so far is returned with it.
func Build(cfg *config.Config, l *Loader, ctl *spatial.Controller) (*Scene, error) {
	sc := &Scene{Speakers: make([]spatial.SpeakerID, len(cfg.Speakers))}

	for _, explicit := range []bool{true, false} {
		for i, sp := range cfg.Speakers {
			if (sp.Channel != nil) != explicit {
				continue
			}

			var channel int
			if sp.Channel != nil {
				channel = *sp.Channel
			} else {
				ch, ok := ctl.NextFreeChannel()
				if !ok {
					return sc, fmt.Errorf("speakers[%d] %q: %w", i, sp.Name, spatial.ErrTooManySpeakers)
				}
				channel = ch
			}

			id, err := ctl.AddSpeaker(spatial.SpeakerConfig{
				Name:    sp.Name,
				Point:   spatial.Point{X: sp.X, Y: sp.Y},
				Channel: channel,
			})
			if err != nil {
				return sc, fmt.Errorf("speakers[%d] %q: %w", i, sp.Name, err)
			}
			sc.Speakers[i] = id

			if channel >= cfg.Output.Channels {
				l.Logger.Printf("speaker %q is on channel %d but the output has %d channels; it will be silent",
					sp.Name, channel, cfg.Output.Channels)
			}
		}
	}

	for i, snd := range cfg.Sounds {
		mode, err := audio.ParseEndMode(snd.End)
		if err != nil {
			return sc, fmt.Errorf("sounds[%d]: %w", i, err)
		}

		clip, err := l.LoadClip(snd)
		if err != nil {
			return sc, fmt.Errorf("sounds[%d]: %w", i, err)
		}

		pb := clip.Play(mode)
		id, err := ctl.AddSound(spatial.SoundConfig{
			Point:    spatial.Point{X: snd.X, Y: snd.Y},
			Channels: clip.Channels(),
			Spread:   snd.Spread,
			Radians:  snd.Radians,
			Signal:   pb,
		})
		if err != nil {
			return sc, fmt.Errorf("sounds[%d] %s: %w", i, snd.File, err)
		}

		sc.Sounds = append(sc.Sounds, id)
		sc.Playbacks = append(sc.Playbacks, pb)
	}

	return sc, nil
}
