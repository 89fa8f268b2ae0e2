// SPDX-License-Identifier: EPL-2.0

package spatial

// Buffer is an interleaved block of output frames.
type Buffer struct {
	// Channels is the number of device channels per frame. Speakers wired to
	// a channel at or above it are not heard.
	Channels int
	// Samples holds Frames()*Channels values; trailing partial frames are
	// ignored.
	Samples []float32
}

// Frames is the number of whole frames in b.
func (b Buffer) Frames() int {
	if b.Channels <= 0 {
		return 0
	}

	return len(b.Samples) / b.Channels
}

// Render mixes one buffer's worth of every sound into buf.
//
// Render adds to buf.Samples and never clears it: the caller supplies the
// starting content, normally silence. With no sounds buf is left untouched.
// Pending control commands are applied first.
//
// Each sound's signal is asked for exactly Frames()*Channels() samples per
// call, whether or not any speaker is in range.
func (m *Model) Render(buf Buffer) {
	m.apply()

	frames := buf.Frames()
	if frames == 0 {
		return
	}

	for _, s := range m.sounds {
		m.mixSound(s, buf, frames)
	}
}

func (m *Model) mixSound(s *Sound, buf Buffer, frames int) {
	channels := s.channels
	n := frames * channels

	if cap(m.unmixed) < n {
		m.unmixed = make([]float32, n)
	}
	unmixed := m.unmixed[:n]
	clear(unmixed)
	s.signal.Fill(unmixed)

	p := s.placement.Load()

	for ch := range channels {
		point := ChannelPoint(p.Point, ch, channels, p.Spread, p.Radians)

		m.inRange = FindInRange(point, m.speakers, m.inRange)
		if len(m.inRange) == 0 {
			continue
		}

		for f := range frames {
			sample := unmixed[ch+f*channels]
			frame := buf.Samples[f*buf.Channels : (f+1)*buf.Channels]

			for _, c := range m.inRange {
				if c.Channel < len(frame) {
					frame[c.Channel] += sample * c.Gain
				}
			}
		}
	}
}
