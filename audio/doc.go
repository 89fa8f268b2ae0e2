// SPDX-License-Identifier: EPL-2.0

// Package audio turns encoded files into something the spatial mixer can
// play without ever waiting on I/O.
//
// # Source Interface
//
// Decoders produce a Source, a pull stream of interleaved float32 samples
// in [-1, 1] that ends with io.EOF:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    Close() error
//	}
//
// Sources chain: a Resampler converts the rate and a MonoMixer folds
// channels down.
//
//	src, _ := wav.Decoder{}.Decode(f)
//	res := audio.NewResampler(src, 44100)
//	mono := audio.NewMonoMixer(res)
//
// # Clips
//
// A decoded stream can fail or stall, which the audio thread must never
// see. ReadClip drains a Source into memory on the control side, and a
// Playback over the resulting Clip fills any request instantly:
//
//	clip, err := audio.ReadClip(mono)
//	sig := clip.Play(audio.Loop) // Loop, Pad or Once
//
// # Format Registry
//
// Registry maps extensions to decoders:
//
//	reg := audio.NewRegistry()
//	reg.Register("wav", wav.Decoder{})
//	dec, err := reg.ForPath("rain.WAV")
package audio
