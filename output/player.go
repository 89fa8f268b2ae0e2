// SPDX-License-Identifier: EPL-2.0

package output

import (
	"errors"
	"log"
	"time"

	"github.com/ik5/audspat/spatial"
)

var (
	ErrInvalidOptions = errors.New("sample rate and channels must be positive")
	ErrClosed         = errors.New("player is closed")
)

// Options configures a Player.
type Options struct {
	SampleRate      int
	Channels        int
	FramesPerBuffer int
	// Logger receives lifecycle messages. Nil means log.Default().
	Logger *log.Logger
}

func (o Options) withDefaults() (Options, error) {
	if o.SampleRate == 0 {
		o.SampleRate = spatial.SampleRate
	}
	if o.FramesPerBuffer == 0 {
		o.FramesPerBuffer = spatial.FramesPerBuffer
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
	if o.SampleRate < 1 || o.Channels < 1 || o.FramesPerBuffer < 1 {
		return o, ErrInvalidOptions
	}

	return o, nil
}

// bufferDuration is the play time of one block.
func (o Options) bufferDuration() time.Duration {
	return time.Duration(o.FramesPerBuffer) * time.Second / time.Duration(o.SampleRate)
}
