// SPDX-License-Identifier: EPL-2.0

// Package output connects a spatial.Model to a sound card.
//
// Stream is the pull side: every Read renders as many fixed-size blocks as
// it needs and hands them out as little-endian float32 bytes. Player feeds
// a Stream to the device through github.com/ebitengine/oto/v3; the
// device's callback is the audio thread.
//
// Built with the headless tag, Player drives the Stream from a ticker
// instead of a device, so installations can run on machines without
// audio hardware.
package output
