// SPDX-License-Identifier: EPL-2.0

package spatial_test

import (
	"fmt"

	"github.com/ik5/audspat/spatial"
)

// Example shows one mono sound heard by two speakers at different distances.
func Example() {
	model := spatial.NewModel()
	ctl := spatial.NewController(model)

	ctl.AddSpeaker(spatial.SpeakerConfig{Name: "near", Point: spatial.Point{X: 0, Y: 0}, Channel: 0})
	ctl.AddSpeaker(spatial.SpeakerConfig{Name: "far", Point: spatial.Point{X: 4, Y: 0}, Channel: 1})

	tone := spatial.SignalFunc(func(dst []float32) {
		for i := range dst {
			dst[i] = 1
		}
	})
	id, _ := ctl.AddSound(spatial.SoundConfig{Point: spatial.Point{X: 1, Y: 0}, Channels: 1, Signal: tone})

	out := make([]float32, 2)
	model.Render(spatial.Buffer{Channels: 2, Samples: out})
	fmt.Printf("near %.2f far %.2f\n", out[0], out[1])

	ctl.MoveSound(id, spatial.Point{X: 4, Y: 0})

	clear(out)
	model.Render(spatial.Buffer{Channels: 2, Samples: out})
	fmt.Printf("near %.2f far %.2f\n", out[0], out[1])
	// Output:
	// near 0.96 far 0.64
	// near 0.36 far 1.00
}
