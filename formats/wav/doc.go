// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes WAV files through github.com/go-audio/wav.
//
// # Decoding
//
// Decoder handles integer PCM at 8, 16, 24 and 32 bits with any number of
// channels. Samples come out as float32 in [-1, 1]:
//
//	f, _ := os.Open("rain.wav")
//	src, err := wav.Decoder{}.Decode(f)
//
// # Encoding
//
// Encoder writes interleaved float frames as 16, 24 or 32-bit PCM, one WAV
// channel per output channel, which is how a bounced installation keeps its
// speaker layout:
//
//	out, _ := os.Create("bounce.wav")
//	enc, _ := wav.NewEncoder(out, 44100, 8, 24)
//	enc.Write(frames)
//	enc.Close()
package wav
