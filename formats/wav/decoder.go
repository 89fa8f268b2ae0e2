// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	gowav "github.com/go-audio/wav"

	"github.com/ik5/audspat/audio"
	"github.com/ik5/audspat/formats/internal/intpcm"
)

const (
	formatPCM        = 1
	formatExtensible = 0xFFFE
)

type Decoder struct{}

// Decode reads the WAV header from r and returns a Source positioned at the
// start of the sample data. Readers that cannot seek are buffered in memory.
func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, err := intpcm.Seekable(r)
	if err != nil {
		return nil, err
	}

	dec := gowav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}

	if dec.WavAudioFormat != formatPCM && dec.WavAudioFormat != formatExtensible {
		return nil, fmt.Errorf("format tag %#x: %w", dec.WavAudioFormat, ErrOnlyPCMSupported)
	}

	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("find wav data chunk: %w", err)
	}

	// 8-bit WAV samples are unsigned.
	offset := 0
	if dec.BitDepth == 8 {
		offset = -128
	}

	src, err := intpcm.NewSource(dec, dec.Format(), int(dec.BitDepth), offset)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedBitDepth, err)
	}

	return src, nil
}
