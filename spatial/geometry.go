// SPDX-License-Identifier: EPL-2.0

package spatial

import (
	"fmt"
	"math"
)

// Point is a position on the floor plan, in metres.
type Point struct {
	X float64
	Y float64
}

// Distance2 returns the squared distance between p and q.
func (p Point) Distance2(q Point) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y

	return dx*dx + dy*dy
}

// ChannelPoint returns the position of one channel of a sound centred on
// center.
//
// A single channel sits on the centre. Otherwise the channels are spaced
// evenly on a circle of radius spread, starting at angle radians, with x
// mirrored: x = center.X - spread·cos(θ), y = center.Y + spread·sin(θ).
//
// ChannelPoint panics if channel is not in [0, channels).
func ChannelPoint(center Point, channel, channels int, spread, radians float64) Point {
	if channel < 0 || channel >= channels {
		panic(fmt.Sprintf("spatial: channel %d out of range for a %d channel sound", channel, channels))
	}

	if channels == 1 {
		return center
	}

	phase := float64(channel) / float64(channels)
	angle := radians + phase*2*math.Pi

	return Point{
		X: center.X - spread*math.Cos(angle),
		Y: center.Y + spread*math.Sin(angle),
	}
}
