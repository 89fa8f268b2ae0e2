// SPDX-License-Identifier: EPL-2.0

// Package spatial mixes concurrently playing sounds onto a fixed array of
// speaker output channels.
//
// Every sound and every speaker has a position on a 2D floor plan, in metres.
// A sound with more than one channel places each channel on a circle of
// radius Spread around its centre. Each channel is rendered to every speaker
// closer than ProximityLimit, weighted by a linear falloff over the squared
// distance:
//
//	gain = 1 - distance² / ProximityLimit²
//
// # Threads
//
// Model.Render runs on the audio driver's real-time callback. It never
// blocks, never takes a lock and does not allocate once its scratch buffers
// have reached their working size.
//
// All changes come from a Controller on the control side. Adding and removing
// sounds and speakers is queued through a lock-free queue that Render drains
// at the start of every call. Moving a sound or speaker, or reassigning a
// speaker's channel, publishes an immutable snapshot through an atomic
// pointer which the audio side reads without waiting.
//
//	model := spatial.NewModel()
//	ctl := spatial.NewController(model)
//
//	ctl.AddSpeaker(spatial.SpeakerConfig{Point: spatial.Point{X: 0, Y: 0}, Channel: 0})
//	id, _ := ctl.AddSound(spatial.SoundConfig{Channels: 1, Signal: sig})
//
//	// audio callback
//	clear(out)
//	model.Render(spatial.Buffer{Channels: 2, Samples: out})
//
//	// control side, any time
//	ctl.MoveSound(id, spatial.Point{X: 2, Y: 1})
package spatial
