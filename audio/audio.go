// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"path/filepath"
	"strings"
	"sync"
)

// Source is a decoded stream of interleaved float32 samples in [-1, 1].
type Source interface {
	// SampleRate of the stream in Hz.
	SampleRate() int
	// Channels per frame (1=mono, 2=stereo, ...).
	Channels() int
	// ReadSamples fills dst with interleaved samples and returns how many
	// values (not frames) it wrote. The stream is finished once it returns
	// io.EOF; it may return data together with io.EOF.
	ReadSamples(dst []float32) (n int, err error)
	// Close releases any resources.
	Close() error
}

// Decoder constructs a Source from an encoded stream.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// Registry maps format names and file extensions ("wav", "mp3", "ogg", ...)
// to decoders. It is safe for concurrent use.
type Registry struct {
	codecs map[string]Decoder

	mtx sync.RWMutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]Decoder),
	}
}

// Register adds d under format. Format names are case-insensitive and a
// leading dot is ignored, so ".WAV" and "wav" are the same key.
func (r *Registry) Register(format string, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[formatKey(format)] = d
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	d, ok := r.codecs[formatKey(format)]
	return d, ok
}

// ForPath looks a decoder up by the extension of path.
func (r *Registry) ForPath(path string) (Decoder, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return nil, ErrUnsupportedFormat
	}

	d, ok := r.Get(ext)
	if !ok {
		return nil, ErrUnsupportedFormat
	}

	return d, nil
}

func formatKey(format string) string {
	return strings.ToLower(strings.TrimPrefix(format, "."))
}
