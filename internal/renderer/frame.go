package renderer

import (
	"golang.org/x/image/math/f64"

	"github.com/ivlev/scenecam/internal/camera"
	"github.com/ivlev/scenecam/internal/scene"
)

// Frame is the resolved camera and layer placement at one instant
type Frame struct {
	Index  int          `yaml:"index"`
	Time   float64      `yaml:"time"`
	Camera camera.State `yaml:"camera"`
	View   f64.Aff3     `yaml:"view"` // Scene-to-viewport transform of the ambient camera
	Layers []Placement  `yaml:"layers"`
}

// ComposeFrame resolves the camera at time t and places every layer of s
// in paint order. A layer whose animation overrides the camera is placed
// with the overridden zoom and position. Preview and export both call this.
func ComposeFrame(s *scene.Scene, tl *camera.Timeline, t float64) Frame {
	state := tl.StateAt(t)
	dims := CameraDims(tl.Segments(), state, s.Camera)
	m := NewMapper(s.Dimensions(), dims)

	layers := scene.SortedLayers(s.Layers)
	frame := Frame{
		Time:   t,
		Camera: state,
		View:   m.Affine(state),
		Layers: make([]Placement, 0, len(layers)),
	}

	for _, layer := range layers {
		layerState := state
		if o, ok := camera.Evaluate(layer.Animation, camera.LocalProgress(layer.Animation, t)); ok {
			layerState = o.Apply(state)
		}
		frame.Layers = append(frame.Layers, m.Place(layerState, layer))
	}

	return frame
}
