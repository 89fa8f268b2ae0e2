// SPDX-License-Identifier: EPL-2.0

package spatial

import (
	"sync/atomic"

	"github.com/ik5/audspat/internal/ring"
)

const (
	// soundCapacity presizes the sound map so that adds on the audio thread
	// do not grow it in normal use.
	soundCapacity = 1024

	// unmixedCapacity is the initial size of the per-sound sample scratch,
	// enough for 32 channels of the nominal buffer length.
	unmixedCapacity = 1024

	// queueCapacity bounds the number of pending control commands.
	queueCapacity = 1024
)

type commandKind uint8

const (
	cmdAddSound commandKind = iota + 1
	cmdRemoveSound
	cmdAddSpeaker
	cmdRemoveSpeaker
)

// command is a structural change queued by the Controller for the audio side.
type command struct {
	kind      commandKind
	sound     *Sound
	speaker   *Speaker
	soundID   SoundID
	speakerID SpeakerID
}

// Model is the render state: the sounds and speakers the audio side mixes,
// plus scratch buffers reused across Render calls.
//
// Only the goroutine calling Render may touch a Model. Changes are made
// through the Controller bound to it.
type Model struct {
	sounds   map[SoundID]*Sound
	speakers map[SpeakerID]*Speaker

	// inRange holds the speakers near the channel being mixed.
	inRange []Contribution
	// unmixed holds the samples pulled from the sound being mixed.
	unmixed []float32

	commands *ring.Queue[command] // control -> audio
	released *ring.Queue[*Sound]  // audio -> control, for closing

	bound atomic.Bool
}

// NewModel returns an empty Model with its scratch buffers preallocated.
func NewModel() *Model {
	return &Model{
		sounds:   make(map[SoundID]*Sound, soundCapacity),
		speakers: make(map[SpeakerID]*Speaker, MaxChannels),
		inRange:  make([]Contribution, 0, MaxChannels),
		unmixed:  make([]float32, unmixedCapacity),
		commands: ring.New[command](queueCapacity),
		released: ring.New[*Sound](queueCapacity),
	}
}

// NumSounds is the number of sounds the audio side is currently mixing.
func (m *Model) NumSounds() int { return len(m.sounds) }

// NumSpeakers is the number of speakers the audio side currently mixes to.
func (m *Model) NumSpeakers() int { return len(m.speakers) }

// apply drains the control queue.
func (m *Model) apply() {
	for {
		cmd, ok := m.commands.Pop()
		if !ok {
			return
		}

		switch cmd.kind {
		case cmdAddSound:
			m.sounds[cmd.sound.id] = cmd.sound
		case cmdRemoveSound:
			s, ok := m.sounds[cmd.soundID]
			if !ok {
				continue
			}
			delete(m.sounds, cmd.soundID)
			// The Controller reclaims before every command it queues, so the
			// release queue cannot fill up; if it ever did, the sound is
			// left to the garbage collector unclosed.
			m.released.Push(s)
		case cmdAddSpeaker:
			m.speakers[cmd.speaker.id] = cmd.speaker
		case cmdRemoveSpeaker:
			delete(m.speakers, cmd.speakerID)
		}
	}
}
