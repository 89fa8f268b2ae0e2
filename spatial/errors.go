// SPDX-License-Identifier: EPL-2.0

package spatial

import "errors"

var (
	ErrInvalidChannels   = errors.New("sound channels must be between 1 and MaxChannels")
	ErrChannelOutOfRange = errors.New("speaker channel must be between 0 and MaxChannels-1")
	ErrNilSignal         = errors.New("sound has no signal")
	ErrTooManySpeakers   = errors.New("speaker limit reached")
	ErrUnknownSound      = errors.New("unknown sound")
	ErrUnknownSpeaker    = errors.New("unknown speaker")
	ErrQueueFull         = errors.New("control queue full")
)
