// SPDX-License-Identifier: EPL-2.0

// Command audspat plays a spatial sound installation described by a YAML
// file, either live through the sound card or bounced to a WAV file.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/ik5/audspat"
	"github.com/ik5/audspat/internal/config"
	"github.com/ik5/audspat/internal/scene"
	"github.com/ik5/audspat/output"
	"github.com/ik5/audspat/spatial"
)

var (
	configPath = flag.String("config", "installation.yaml", "Installation config file")
	bounceTo   = flag.String("bounce", "", "Render to this WAV file instead of the sound card")
	seconds    = flag.Float64("seconds", 10, "Length of a bounce in seconds")
	bits       = flag.Int("bits", 16, "Bit depth of a bounce (16, 24 or 32)")
	volume     = flag.Float64("volume", 1, "Master volume for live playback")
	reapEvery  = flag.Duration("reap", 250*time.Millisecond, "How often finished sounds are removed during playback")
	logFile    = flag.String("log-file", "", "Also write the log to this file")
)

func main() {
	flag.Parse()

	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			log.Fatalf("error opening log file: %v", err)
		}
		defer f.Close()

		log.SetOutput(io.MultiWriter(os.Stderr, f))
	}

	if err := run(); err != nil {
		log.Fatalf("audspat: %v", err)
	}
}

func run() error {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	m := spatial.NewModel()
	ctl := spatial.NewController(m)
	defer func() {
		if err := ctl.Close(); err != nil {
			log.Printf("closing sounds: %v", err)
		}
	}()

	loader := scene.NewLoader(cfg.Output.SampleRate, filepath.Dir(*configPath), log.Default())
	sc, err := scene.Build(cfg, loader, ctl)
	if err != nil {
		return err
	}

	log.Printf("installation %s: %d speakers, %d sounds, %d output channels at %d Hz",
		*configPath, len(sc.Speakers), len(sc.Sounds), cfg.Output.Channels, cfg.Output.SampleRate)

	if *bounceTo != "" {
		return bounce(m, cfg)
	}

	return play(m, ctl, cfg, len(sc.Sounds))
}

func bounce(m *spatial.Model, cfg *config.Config) error {
	frames := int(*seconds * float64(cfg.Output.SampleRate))

	f, err := os.Create(*bounceTo)
	if err != nil {
		return fmt.Errorf("create bounce file: %w", err)
	}
	defer f.Close()

	start := time.Now()
	err = audspat.Bounce(m, f, frames, audspat.BounceOptions{
		SampleRate:      cfg.Output.SampleRate,
		Channels:        cfg.Output.Channels,
		FramesPerBuffer: cfg.Output.FramesPerBuffer,
		BitDepth:        *bits,
	})
	if err != nil {
		return err
	}

	log.Printf("bounced %d frames (%.1fs) to %s in %v", frames, *seconds, *bounceTo, time.Since(start).Round(time.Millisecond))

	return f.Close()
}

func play(m *spatial.Model, ctl *spatial.Controller, cfg *config.Config, sounds int) error {
	player, err := output.NewPlayer(m, output.Options{
		SampleRate:      cfg.Output.SampleRate,
		Channels:        cfg.Output.Channels,
		FramesPerBuffer: cfg.Output.FramesPerBuffer,
		Logger:          log.Default(),
	})
	if err != nil {
		return err
	}
	player.Stream().SetVolume(float32(*volume))

	if err := player.Start(); err != nil {
		return err
	}
	log.Printf("Press Ctrl-C to stop")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(*reapEvery)
	defer ticker.Stop()

	for {
		select {
		case sig := <-sigChan:
			log.Printf("received %v signal, shutting down", sig)
			return player.Close()

		case <-ticker.C:
			reaped, err := ctl.ReapFinished()
			if err != nil {
				log.Printf("removing finished sounds: %v", err)
			}
			for _, id := range reaped {
				log.Printf("sound %d finished", id)
			}

			if err := ctl.Reclaim(); err != nil {
				log.Printf("closing removed sounds: %v", err)
			}

			if sounds > 0 && len(ctl.Sounds()) == 0 {
				log.Printf("all sounds finished")
				return player.Close()
			}
		}
	}
}
