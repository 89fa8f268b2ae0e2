// SPDX-License-Identifier: EPL-2.0

// Package config loads the YAML description of an installation: the output
// device, the speakers in the room, and the sounds placed among them.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ik5/audspat/audio"
	"github.com/ik5/audspat/spatial"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

type Config struct {
	Output   OutputConfig    `yaml:"output"`
	Speakers []SpeakerConfig `yaml:"speakers"`
	Sounds   []SoundConfig   `yaml:"sounds"`
}

type OutputConfig struct {
	SampleRate      int `yaml:"sample_rate"`
	Channels        int `yaml:"channels"`
	FramesPerBuffer int `yaml:"frames_per_buffer"`
}

type SpeakerConfig struct {
	Name string  `yaml:"name"`
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
	// Channel is the output channel. When absent the lowest free channel is
	// used.
	Channel *int `yaml:"channel"`
}

type SoundConfig struct {
	File    string  `yaml:"file"`
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	Spread  float64 `yaml:"spread"`
	Radians float64 `yaml:"radians"`
	Mono    bool    `yaml:"mono"`
	// End is loop, pad or once. Empty means loop.
	End string `yaml:"end"`
	// Gain scales the decoded samples. Absent means 1.
	Gain *float64 `yaml:"gain"`
}

// GainOrDefault returns the configured gain, or 1.
func (s SoundConfig) GainOrDefault() float64 {
	if s.Gain == nil {
		return 1
	}
	return *s.Gain
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Parse decodes YAML, fills in defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Output.SampleRate == 0 {
		c.Output.SampleRate = spatial.SampleRate
	}
	if c.Output.FramesPerBuffer == 0 {
		c.Output.FramesPerBuffer = spatial.FramesPerBuffer
	}
	if c.Output.Channels == 0 {
		c.Output.Channels = max(len(c.Speakers), 2)
		for _, s := range c.Speakers {
			if s.Channel != nil {
				c.Output.Channels = max(c.Output.Channels, *s.Channel+1)
			}
		}
		c.Output.Channels = min(c.Output.Channels, spatial.MaxChannels)
	}
}

// Validate reports every problem it finds, joined.
func (c *Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...)))
	}

	o := c.Output
	if o.SampleRate < 1 {
		bad("output.sample_rate %d must be positive", o.SampleRate)
	}
	if o.Channels < 1 || o.Channels > spatial.MaxChannels {
		bad("output.channels %d must be between 1 and %d", o.Channels, spatial.MaxChannels)
	}
	if o.FramesPerBuffer < 1 {
		bad("output.frames_per_buffer %d must be positive", o.FramesPerBuffer)
	}

	if len(c.Speakers) > spatial.MaxChannels {
		bad("%d speakers, at most %d are allowed", len(c.Speakers), spatial.MaxChannels)
	}

	names := make(map[string]int)
	channels := make(map[int]int)
	for i, s := range c.Speakers {
		if s.Name != "" {
			if j, ok := names[s.Name]; ok {
				bad("speakers[%d] name %q already used by speakers[%d]", i, s.Name, j)
			}
			names[s.Name] = i
		}

		if s.Channel == nil {
			continue
		}
		ch := *s.Channel
		if ch < 0 || ch >= spatial.MaxChannels {
			bad("speakers[%d] channel %d must be between 0 and %d", i, ch, spatial.MaxChannels-1)
			continue
		}
		if j, ok := channels[ch]; ok {
			bad("speakers[%d] channel %d already used by speakers[%d]", i, ch, j)
		}
		channels[ch] = i
	}

	for i, s := range c.Sounds {
		if s.File == "" {
			bad("sounds[%d] has no file", i)
		}
		if _, err := audio.ParseEndMode(s.End); err != nil {
			bad("sounds[%d] end %q must be loop, pad or once", i, s.End)
		}
		if s.Spread < 0 {
			bad("sounds[%d] spread %v must not be negative", i, s.Spread)
		}
		if s.GainOrDefault() < 0 {
			bad("sounds[%d] gain %v must not be negative", i, s.GainOrDefault())
		}
	}

	return errors.Join(errs...)
}
