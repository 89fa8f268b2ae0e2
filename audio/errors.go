// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize    = errors.New("dst size must be multiple of channels")
	ErrInvalidSampleRate = errors.New("sample rate must be positive")
	ErrInvalidChannels   = errors.New("channel count must be positive")
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	ErrEmptyClip         = errors.New("clip holds no complete frame")
	ErrUnknownEndMode    = errors.New("unknown end mode")
)
