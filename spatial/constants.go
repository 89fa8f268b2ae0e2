// SPDX-License-Identifier: EPL-2.0

package spatial

const (
	// ProximityLimit is the distance in metres at and beyond which a speaker
	// receives nothing from a sound channel.
	ProximityLimit = 5.0

	// ProximityLimit2 is ProximityLimit squared, compared against squared
	// distances to avoid a square root per speaker.
	ProximityLimit2 = ProximityLimit * ProximityLimit

	// MaxChannels is the maximum number of output channels, and so the maximum
	// number of speakers and of channels per sound.
	MaxChannels = 32

	// SampleRate is the nominal output rate in Hz. The mixing itself does not
	// depend on it.
	SampleRate = 44100

	// FramesPerBuffer is the nominal number of frames per render call.
	// Render accepts any length.
	FramesPerBuffer = 64
)
