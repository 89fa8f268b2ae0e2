// SPDX-License-Identifier: EPL-2.0

package spatial

// Gain maps a squared distance in m² to a linear amplitude multiplier.
// It is 1 at the source and falls linearly to 0 at ProximityLimit2; inputs
// past the limit clamp to 0.
func Gain(distance2 float64) float32 {
	g := 1 - distance2/ProximityLimit2
	if g < 0 {
		return 0
	}

	return float32(g)
}
