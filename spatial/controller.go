// SPDX-License-Identifier: EPL-2.0

package spatial

import (
	"cmp"
	"errors"
	"fmt"
	"io"
	"slices"
	"sync"

	"github.com/ik5/audspat/internal/ring"
)

// SoundConfig describes a sound to add.
type SoundConfig struct {
	Point    Point
	Channels int
	Spread   float64
	Radians  float64
	Signal   Signal
}

// SpeakerConfig describes a speaker to add.
type SpeakerConfig struct {
	Name    string
	Point   Point
	Channel int
}

// SpeakerInfo is a snapshot of a speaker for display.
type SpeakerInfo struct {
	ID   SpeakerID
	Name string
	Mount
}

// SoundInfo is a snapshot of a sound for display.
type SoundInfo struct {
	ID       SoundID
	Channels int
	Placement
}

// Controller is the control side of a Model. All structural changes go
// through its queue; placement changes are published atomically and take
// effect on the next Render.
//
// A Controller is safe for concurrent use. The audio side never waits on it.
type Controller struct {
	mu sync.Mutex

	model    *Model
	commands *ring.Queue[command]
	released *ring.Queue[*Sound]

	sounds      map[SoundID]*Sound
	speakers    map[SpeakerID]*Speaker
	lastSound   SoundID
	lastSpeaker SpeakerID

	closeErrs []error
}

// NewController binds a Controller to m. A Model accepts only one
// Controller; binding a second one panics.
func NewController(m *Model) *Controller {
	if !m.bound.CompareAndSwap(false, true) {
		panic("spatial: model already has a controller")
	}

	return &Controller{
		model:    m,
		commands: m.commands,
		released: m.released,
		sounds:   make(map[SoundID]*Sound),
		speakers: make(map[SpeakerID]*Speaker),
	}
}

// AddSound queues a new sound and returns its id.
func (c *Controller) AddSound(cfg SoundConfig) (SoundID, error) {
	if cfg.Channels < 1 || cfg.Channels > MaxChannels {
		return 0, fmt.Errorf("add sound with %d channels: %w", cfg.Channels, ErrInvalidChannels)
	}
	if cfg.Signal == nil {
		return 0, fmt.Errorf("add sound: %w", ErrNilSignal)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.lastSound + 1
	s := newSound(id, cfg.Channels, cfg.Signal, Placement{
		Point:   cfg.Point,
		Spread:  cfg.Spread,
		Radians: cfg.Radians,
	})

	if err := c.send(command{kind: cmdAddSound, sound: s}); err != nil {
		return 0, fmt.Errorf("add sound %d: %w", id, err)
	}

	c.lastSound = id
	c.sounds[id] = s

	return id, nil
}

// RemoveSound queues the removal of a sound. Its signal is closed by a
// later Reclaim, once the audio side has let go of it.
func (c *Controller) RemoveSound(id SoundID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.removeSound(id)
}

func (c *Controller) removeSound(id SoundID) error {
	if _, ok := c.sounds[id]; !ok {
		return fmt.Errorf("remove sound %d: %w", id, ErrUnknownSound)
	}

	if err := c.send(command{kind: cmdRemoveSound, soundID: id}); err != nil {
		return fmt.Errorf("remove sound %d: %w", id, err)
	}

	delete(c.sounds, id)

	return nil
}

// AddSpeaker queues a new speaker and returns its id.
func (c *Controller) AddSpeaker(cfg SpeakerConfig) (SpeakerID, error) {
	if cfg.Channel < 0 || cfg.Channel >= MaxChannels {
		return 0, fmt.Errorf("add speaker on channel %d: %w", cfg.Channel, ErrChannelOutOfRange)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.speakers) >= MaxChannels {
		return 0, fmt.Errorf("add speaker: %w", ErrTooManySpeakers)
	}

	id := c.lastSpeaker + 1
	s := newSpeaker(id, cfg.Name, Mount{Point: cfg.Point, Channel: cfg.Channel})

	if err := c.send(command{kind: cmdAddSpeaker, speaker: s}); err != nil {
		return 0, fmt.Errorf("add speaker %d: %w", id, err)
	}

	c.lastSpeaker = id
	c.speakers[id] = s

	return id, nil
}

// RemoveSpeaker queues the removal of a speaker.
func (c *Controller) RemoveSpeaker(id SpeakerID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.speakers[id]; !ok {
		return fmt.Errorf("remove speaker %d: %w", id, ErrUnknownSpeaker)
	}

	if err := c.send(command{kind: cmdRemoveSpeaker, speakerID: id}); err != nil {
		return fmt.Errorf("remove speaker %d: %w", id, err)
	}

	delete(c.speakers, id)

	return nil
}

// MoveSound sets the centre of a sound.
func (c *Controller) MoveSound(id SoundID, p Point) error {
	return c.updateSound(id, func(pl *Placement) { pl.Point = p })
}

// SetSpread sets the radius of a sound's channel circle.
func (c *Controller) SetSpread(id SoundID, spread float64) error {
	return c.updateSound(id, func(pl *Placement) { pl.Spread = spread })
}

// SetRotation sets the rotation of a sound's channel circle.
func (c *Controller) SetRotation(id SoundID, radians float64) error {
	return c.updateSound(id, func(pl *Placement) { pl.Radians = radians })
}

// Place replaces a sound's whole placement in one snapshot.
func (c *Controller) Place(id SoundID, p Placement) error {
	return c.updateSound(id, func(pl *Placement) { *pl = p })
}

func (c *Controller) updateSound(id SoundID, update func(*Placement)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.sounds[id]
	if !ok {
		return fmt.Errorf("update sound %d: %w", id, ErrUnknownSound)
	}

	p := s.Placement()
	update(&p)
	s.setPlacement(p)

	return nil
}

// MoveSpeaker sets the position of a speaker.
func (c *Controller) MoveSpeaker(id SpeakerID, p Point) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.speakers[id]
	if !ok {
		return fmt.Errorf("move speaker %d: %w", id, ErrUnknownSpeaker)
	}

	m := s.Mount()
	m.Point = p
	s.setMount(m)

	return nil
}

// AssignChannel wires a speaker to an output channel. A speaker already on
// that channel takes over the old channel of id, so each channel stays held
// by at most one speaker.
func (c *Controller) AssignChannel(id SpeakerID, channel int) error {
	if channel < 0 || channel >= MaxChannels {
		return fmt.Errorf("assign channel %d: %w", channel, ErrChannelOutOfRange)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.speakers[id]
	if !ok {
		return fmt.Errorf("assign channel to speaker %d: %w", id, ErrUnknownSpeaker)
	}

	m := s.Mount()
	if m.Channel == channel {
		return nil
	}

	for _, other := range c.speakers {
		om := other.Mount()
		if other.id != id && om.Channel == channel {
			om.Channel = m.Channel
			other.setMount(om)
		}
	}

	m.Channel = channel
	s.setMount(m)

	return nil
}

// NextFreeChannel returns the lowest output channel no speaker is wired to.
// ok is false when all MaxChannels channels are taken.
func (c *Controller) NextFreeChannel() (channel int, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var used [MaxChannels]bool
	for _, s := range c.speakers {
		used[s.Mount().Channel] = true
	}

	for ch, taken := range used {
		if !taken {
			return ch, true
		}
	}

	return 0, false
}

// Sounds returns a snapshot of every sound, ordered by id.
func (c *Controller) Sounds() []SoundInfo {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]SoundInfo, 0, len(c.sounds))
	for _, s := range c.sounds {
		out = append(out, SoundInfo{ID: s.id, Channels: s.channels, Placement: s.Placement()})
	}
	slices.SortFunc(out, func(a, b SoundInfo) int { return cmp.Compare(a.ID, b.ID) })

	return out
}

// Speakers returns a snapshot of every speaker, ordered by id.
func (c *Controller) Speakers() []SpeakerInfo {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]SpeakerInfo, 0, len(c.speakers))
	for _, s := range c.speakers {
		out = append(out, SpeakerInfo{ID: s.id, Name: s.name, Mount: s.Mount()})
	}
	slices.SortFunc(out, func(a, b SpeakerInfo) int { return cmp.Compare(a.ID, b.ID) })

	return out
}

// ReapFinished removes every sound whose signal reports Done, such as a
// clip played once to its end. It returns the ids it removed.
func (c *Controller) ReapFinished() ([]SoundID, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var done []SoundID
	for id, s := range c.sounds {
		if d, ok := s.signal.(interface{ Done() bool }); ok && d.Done() {
			done = append(done, id)
		}
	}
	slices.Sort(done)

	var errs []error
	removed := done[:0]
	for _, id := range done {
		if err := c.removeSound(id); err != nil {
			errs = append(errs, err)
			continue
		}
		removed = append(removed, id)
	}

	return removed, errors.Join(errs...)
}

// Reclaim closes the signals of sounds the audio side has dropped and
// returns any errors from closing them since the last call.
func (c *Controller) Reclaim() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.reclaim()

	err := errors.Join(c.closeErrs...)
	c.closeErrs = nil

	return err
}

func (c *Controller) reclaim() {
	for {
		s, ok := c.released.Pop()
		if !ok {
			return
		}

		c.closeSignal(s)
	}
}

func (c *Controller) closeSignal(s *Sound) {
	closer, ok := s.signal.(io.Closer)
	if !ok {
		return
	}

	if err := closer.Close(); err != nil {
		c.closeErrs = append(c.closeErrs, fmt.Errorf("close sound %d: %w", s.id, err))
	}
}

// Close closes the signals of every sound, removed or not. The audio side
// must already have stopped calling Render: Close applies any commands still
// queued to the model itself.
func (c *Controller) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.model.apply()
	c.reclaim()
	for id, s := range c.sounds {
		c.closeSignal(s)
		delete(c.sounds, id)
	}

	err := errors.Join(c.closeErrs...)
	c.closeErrs = nil

	return err
}

// send reclaims released sounds first, which keeps the release queue from
// ever holding more than the command queue.
func (c *Controller) send(cmd command) error {
	c.reclaim()

	if !c.commands.Push(cmd) {
		return ErrQueueFull
	}

	return nil
}
