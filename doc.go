// SPDX-License-Identifier: EPL-2.0

// Package audspat mixes sounds placed on a floor plan into the speakers of
// a room.
//
// Each sound sits at a point with its channels spread on a circle around
// it. Each speaker sits at a point and feeds one output channel. Every
// render, a channel is heard by every speaker closer than
// spatial.ProximityLimit, at a gain of 1 - d²/25.
//
// # Packages
//
//   - spatial: the model, its controller and the real-time Render.
//   - audio: sources, resampling, downmixing and in-memory clips.
//   - formats/wav, formats/aiff, formats/mp3, formats/vorbis: decoders.
//   - output: the device side, as an io.Reader or an oto player.
//
// # Quick Start
//
//	m := spatial.NewModel()
//	ctl := spatial.NewController(m)
//	ctl.AddSpeaker(spatial.SpeakerConfig{Name: "door", Channel: 0})
//	ctl.AddSound(spatial.SoundConfig{Channels: 1, Signal: clip.Play(audio.Loop)})
//
//	player, _ := output.NewPlayer(m, output.Options{Channels: 2})
//	player.Start()
//
// # Offline Rendering
//
// Bounce renders a model straight to a multichannel WAV file, one file
// channel per output channel, without a sound device:
//
//	f, _ := os.Create("room.wav")
//	err := audspat.Bounce(m, f, 10*44100, audspat.BounceOptions{Channels: 8})
package audspat
