package scene

import "sort"

const (
	DefaultSegmentID   = "default"
	DefaultSegmentName = "Default"
	DefaultEasing      = "ease_out"
)

// NewDefaultSegment returns the segment every scene starts with: centered,
// zoom 1, locked. Each call builds a fresh value.
func NewDefaultSegment(camera Dimensions) CameraSegment {
	return CameraSegment{
		ID:                 DefaultSegmentID,
		Name:               DefaultSegmentName,
		Zoom:               1.0,
		Position:           Point{X: 0.5, Y: 0.5},
		Width:              camera.Width,
		Height:             camera.Height,
		Duration:           5.0,
		TransitionDuration: 0,
		Easing:             DefaultEasing,
		Locked:             true,
		IsDefault:          true,
	}
}

// NewLayer returns a fully visible, unscaled layer at the scene origin.
func NewLayer(id string, t LayerType) Layer {
	return Layer{
		ID:      id,
		Type:    t,
		Scale:   1.0,
		Opacity: 1.0,
	}
}

// EnsureDefault returns a copy of s whose timeline starts with a default
// segment. If s already has one, the copy is returned unchanged.
func EnsureDefault(s Scene) Scene {
	out := s
	out.Segments = make([]CameraSegment, 0, len(s.Segments)+1)
	if !hasDefault(s.Segments) {
		out.Segments = append(out.Segments, NewDefaultSegment(s.Camera))
	}
	out.Segments = append(out.Segments, s.Segments...)
	return out
}

func hasDefault(segments []CameraSegment) bool {
	_, ok := DefaultSegment(segments)
	return ok
}

// DefaultSegment returns the first segment flagged as default.
func DefaultSegment(segments []CameraSegment) (CameraSegment, bool) {
	for _, seg := range segments {
		if seg.IsDefault {
			return seg, true
		}
	}
	return CameraSegment{}, false
}

// SortedLayers returns layers in paint order (ascending ZIndex). Layers with
// equal ZIndex keep their source order. The input slice is not modified.
func SortedLayers(layers []Layer) []Layer {
	sorted := make([]Layer, len(layers))
	copy(sorted, layers)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ZIndex < sorted[j].ZIndex
	})

	return sorted
}
