// SPDX-License-Identifier: EPL-2.0

package spatial

// Signal supplies the interleaved samples of a sound.
//
// Fill must write exactly len(dst) samples, cycling through the sound's
// channels before moving to the next frame. It runs on the audio thread, so
// it must not block and has no way to report failure: a finite signal loops,
// pads with silence, or asks the control side to remove its sound.
//
// If a Signal also implements io.Closer, the Controller closes it after the
// sound has been removed from the model.
type Signal interface {
	Fill(dst []float32)
}

// SignalFunc adapts a function to a Signal.
type SignalFunc func(dst []float32)

// Fill calls f(dst).
func (f SignalFunc) Fill(dst []float32) { f(dst) }
