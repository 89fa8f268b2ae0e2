// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis files through
// github.com/jfreymuth/oggvorbis.
//
// Vorbis streams can carry any number of channels, so a multichannel
// recording keeps its layout and each channel gets its own position on the
// sound's circle:
//
//	f, _ := os.Open("choir.ogg")
//	src, err := vorbis.Decoder{}.Decode(f)
package vorbis
