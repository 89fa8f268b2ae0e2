// SPDX-License-Identifier: EPL-2.0

//go:build !headless

package output

import (
	"fmt"
	"sync"

	"github.com/ebitengine/oto/v3"
)

// Player plays a Renderer on the default sound device. The device callback
// calls Render; everything else is control side. oto allows one context per
// process, so a program should create at most one Player.
type Player struct {
	opts   Options
	stream *Stream

	ctx    *oto.Context
	player *oto.Player

	started bool
	closed  bool
	mutex   sync.Mutex // Only for setup/control operations
}

func NewPlayer(r Renderer, opts Options) (*Player, error) {
	opts, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   opts.SampleRate,
		ChannelCount: opts.Channels,
		Format:       oto.FormatFloat32LE,
		BufferSize:   opts.bufferDuration(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create oto context: %w", err)
	}
	<-ready

	stream := NewStream(r, opts.Channels, opts.FramesPerBuffer)

	p := &Player{
		opts:   opts,
		stream: stream,
		ctx:    ctx,
		player: ctx.NewPlayer(stream),
	}

	opts.Logger.Printf("audio output initialized: %dHz, %d channels, %d frames per buffer (%v)",
		opts.SampleRate, opts.Channels, opts.FramesPerBuffer, opts.bufferDuration())

	return p, nil
}

// Stream returns the stream the device pulls from, for volume control.
func (p *Player) Stream() *Stream { return p.stream }

func (p *Player) Start() error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.closed {
		return ErrClosed
	}
	if p.started {
		return nil
	}

	p.player.Play()
	p.started = true
	p.opts.Logger.Printf("audio output started")

	return nil
}

// Stop pauses the device. Start resumes it.
func (p *Player) Stop() {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if !p.started {
		return
	}

	p.player.Pause()
	p.started = false
	p.opts.Logger.Printf("audio output stopped")
}

// Close stops playback for good. Render is not called again once Close
// returns.
func (p *Player) Close() error {
	p.Stop()

	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true

	if err := p.player.Close(); err != nil {
		return fmt.Errorf("close oto player: %w", err)
	}
	if err := p.ctx.Suspend(); err != nil {
		return fmt.Errorf("suspend oto context: %w", err)
	}

	return nil
}

func (p *Player) IsStarted() bool {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	return p.started
}
