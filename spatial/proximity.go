// SPDX-License-Identifier: EPL-2.0

package spatial

// Contribution is one speaker's share of a sound channel.
type Contribution struct {
	Gain    float32
	Channel int // output channel of the speaker
}

// FindInRange collects a Contribution for every speaker strictly closer to p
// than ProximityLimit. dst is truncated and reused; the result is returned
// in no particular order.
func FindInRange(p Point, speakers map[SpeakerID]*Speaker, dst []Contribution) []Contribution {
	dst = dst[:0]

	for _, s := range speakers {
		m := s.mount.Load()

		d2 := p.Distance2(m.Point)
		if d2 < ProximityLimit2 {
			dst = append(dst, Contribution{Gain: Gain(d2), Channel: m.Channel})
		}
	}

	return dst
}
