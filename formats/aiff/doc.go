// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF files through github.com/go-audio/aiff.
//
// Integer PCM at 8, 16, 24 and 32 bits is supported, with any channel
// count and sample rate:
//
//	f, _ := os.Open("bell.aif")
//	src, err := aiff.Decoder{}.Decode(f)
//
// Samples come out as float32 in [-1, 1].
package aiff
