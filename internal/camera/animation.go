package camera

import (
	"github.com/ivlev/scenecam/internal/easing"
	"github.com/ivlev/scenecam/internal/scene"
)

const (
	AnimationZoomIn  = "zoom_in"
	AnimationZoomOut = "zoom_out"
)

// Override is the zoom/position a layer animation imposes on its layer.
type Override struct {
	Zoom     float64
	Position scene.Point
}

// Evaluate resolves a layer animation at local progress. The boolean is
// false when the animation does not override the camera, in which case the
// ambient timeline state applies. FocusPosition is used as given, it is
// not normalized.
func Evaluate(anim *scene.LayerAnimation, progress float64) (Override, bool) {
	if anim == nil {
		return Override{}, false
	}

	switch anim.Type {
	case AnimationZoomIn, AnimationZoomOut:
		startZoom := 1.0
		if anim.StartZoom != nil {
			startZoom = *anim.StartZoom
		}
		endZoom := 2.0
		if anim.EndZoom != nil {
			endZoom = *anim.EndZoom
		}
		focus := scene.Point{X: 0.5, Y: 0.5}
		if anim.FocusPosition != nil {
			focus = *anim.FocusPosition
		}
		return Override{
			Zoom:     easing.Scalar(startZoom, endZoom, progress, easing.EaseOut),
			Position: focus,
		}, true
	default:
		return Override{}, false
	}
}

// LocalProgress converts scene time into the animation's own progress.
// The result is not clamped; Evaluate clamps through the interpolator.
func LocalProgress(anim *scene.LayerAnimation, t float64) float64 {
	if anim == nil {
		return 0
	}
	if anim.Duration <= 0 {
		if t < anim.Start {
			return 0
		}
		return 1
	}
	return (t - anim.Start) / anim.Duration
}

// Apply returns ambient with the override's zoom and position. The
// segment index and transition flag of the ambient state are kept.
func (o Override) Apply(ambient State) State {
	ambient.Zoom = o.Zoom
	ambient.Position = o.Position
	return ambient
}
