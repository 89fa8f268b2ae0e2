// SPDX-License-Identifier: EPL-2.0

package spatial

import "sync/atomic"

// SoundID identifies a sound for its whole lifetime. IDs start at 1 and are
// never reused by a Controller.
type SoundID uint64

// Placement is where a sound sits and how its channels are laid out.
type Placement struct {
	Point   Point
	Spread  float64 // radius of the channel circle, in metres
	Radians float64 // rotation of the channel circle
}

// Sound is a playing source. Its channel count and signal are fixed; its
// placement may change at any time through the Controller.
type Sound struct {
	id       SoundID
	channels int
	signal   Signal

	placement atomic.Pointer[Placement]
}

func newSound(id SoundID, channels int, signal Signal, p Placement) *Sound {
	s := &Sound{
		id:       id,
		channels: channels,
		signal:   signal,
	}
	s.placement.Store(&p)

	return s
}

func (s *Sound) ID() SoundID          { return s.id }
func (s *Sound) Channels() int        { return s.channels }
func (s *Sound) Signal() Signal       { return s.signal }
func (s *Sound) Placement() Placement { return *s.placement.Load() }

// setPlacement is only called by the Controller, which serialises writers.
func (s *Sound) setPlacement(p Placement) { s.placement.Store(&p) }
