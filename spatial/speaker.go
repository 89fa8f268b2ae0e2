// SPDX-License-Identifier: EPL-2.0

package spatial

import "sync/atomic"

// SpeakerID identifies a speaker for its whole lifetime. IDs start at 1 and
// are never reused by a Controller.
type SpeakerID uint64

// Mount is where a speaker stands and which output channel it is wired to.
type Mount struct {
	Point   Point
	Channel int
}

// Speaker is a physical output on the floor plan.
type Speaker struct {
	id   SpeakerID
	name string

	mount atomic.Pointer[Mount]
}

func newSpeaker(id SpeakerID, name string, m Mount) *Speaker {
	s := &Speaker{id: id, name: name}
	s.mount.Store(&m)

	return s
}

func (s *Speaker) ID() SpeakerID { return s.id }
func (s *Speaker) Name() string  { return s.name }
func (s *Speaker) Mount() Mount  { return *s.mount.Load() }

func (s *Speaker) setMount(m Mount) { s.mount.Store(&m) }
