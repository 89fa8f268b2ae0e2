// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 files through github.com/hajimehoshi/go-mp3.
//
// The decoder always produces stereo at the file's sample rate. A sound
// configured as mono goes through audio.MonoMixer afterwards:
//
//	src, _ := mp3.Decoder{}.Decode(f)
//	mono := audio.NewMonoMixer(audio.NewResampler(src, 44100))
package mp3
