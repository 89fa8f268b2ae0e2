// SPDX-License-Identifier: EPL-2.0

package utils

// Clamp limits x to [-1, 1].
func Clamp(x float32) float32 {
	if x > 1 {
		return 1
	}
	if x < -1 {
		return -1
	}
	return x
}

// FullScale returns the largest positive value of a signed PCM sample of
// bitDepth bits.
func FullScale(bitDepth int) int {
	return 1<<(bitDepth-1) - 1
}

// FloatToPCM converts x to a signed integer sample of bitDepth bits,
// clamping it to [-1, 1] first. -1 and 1 map to symmetric values, so the
// most negative integer is never produced.
func FloatToPCM(x float32, bitDepth int) int {
	return int(float64(Clamp(x)) * float64(FullScale(bitDepth)))
}

// PCMToFloat converts a signed integer sample of bitDepth bits to a float
// in [-1, 1].
func PCMToFloat(v, bitDepth int) float32 {
	return Clamp(float32(float64(v) / float64(FullScale(bitDepth))))
}
