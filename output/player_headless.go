// SPDX-License-Identifier: EPL-2.0

//go:build headless

package output

import (
	"sync"
	"time"
)

// Player renders a Renderer in real time without a sound device, pulling
// one block per buffer period and discarding it.
type Player struct {
	opts   Options
	stream *Stream

	stop    chan struct{}
	done    chan struct{}
	started bool
	closed  bool
	mutex   sync.Mutex
}

func NewPlayer(r Renderer, opts Options) (*Player, error) {
	opts, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}

	opts.Logger.Printf("headless audio output: %dHz, %d channels, %d frames per buffer",
		opts.SampleRate, opts.Channels, opts.FramesPerBuffer)

	return &Player{
		opts:   opts,
		stream: NewStream(r, opts.Channels, opts.FramesPerBuffer),
	}, nil
}

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

	p.stop = make(chan struct{})
	p.done = make(chan struct{})
	p.started = true

	go p.run(p.stop, p.done)

	return nil
}

func (p *Player) run(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(p.opts.bufferDuration())
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			p.stream.Next()
		}
	}
}

func (p *Player) Stop() {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if !p.started {
		return
	}

	close(p.stop)
	<-p.done
	p.started = false
}

func (p *Player) Close() error {
	p.Stop()

	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.closed = true

	return nil
}

func (p *Player) IsStarted() bool {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	return p.started
}
