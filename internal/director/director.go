package director

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/ivlev/scenecam/internal/easing"
	"github.com/ivlev/scenecam/internal/scene"
)

// ErrNoLayers is returned when a scene has nothing the camera can visit.
var ErrNoLayers = errors.New("no visible layers to direct")

// Director generates a camera tour over a scene's layers
type Director struct {
	Camera             scene.Dimensions
	MinDwell           float64 // Minimum time per layer (seconds)
	MaxDwell           float64 // Maximum time per layer (seconds)
	TransitionDuration float64 // Time to move between layers (seconds)
}

// NewDirector creates a new Director with default settings
func NewDirector(camera scene.Dimensions) *Director {
	return &Director{
		Camera:             camera,
		MinDwell:           1.0,
		MaxDwell:           3.0,
		TransitionDuration: 0.8,
	}
}

// GenerateSegments builds a timeline that opens on the default full view,
// visits every visible layer in reading order and returns to the full view.
func (d *Director) GenerateSegments(layers []scene.Layer, totalDuration float64) ([]scene.CameraSegment, error) {
	visible := make([]scene.Layer, 0, len(layers))
	for _, l := range layers {
		if l.Type != scene.LayerAudio {
			visible = append(visible, l)
		}
	}
	if len(visible) == 0 {
		return nil, ErrNoLayers
	}

	sorted := d.sortLayers(visible)
	dwellTime := d.calculateDwellTime(totalDuration, len(sorted))
	sceneDims := scene.SceneDimensions(d.Camera)

	// Start with full view
	intro := scene.NewDefaultSegment(d.Camera)
	intro.Duration = 1.0
	segments := []scene.CameraSegment{intro}

	for i, l := range sorted {
		center := layerCenter(l)
		segments = append(segments, scene.CameraSegment{
			ID:   fmt.Sprintf("auto_%d", i+1),
			Name: focusName(l, i),
			Zoom: d.calculateZoom(l),
			Position: scene.Normalize(scene.Point{
				X: center.X / sceneDims.Width,
				Y: center.Y / sceneDims.Height,
			}),
			Width:              d.Camera.Width,
			Height:             d.Camera.Height,
			Duration:           dwellTime,
			TransitionDuration: d.TransitionDuration,
			Easing:             easing.EaseInOut,
		})
	}

	// End with full view
	segments = append(segments, scene.CameraSegment{
		ID:                 "auto_outro",
		Name:               "Full view",
		Zoom:               1.0,
		Position:           intro.Position,
		Width:              d.Camera.Width,
		Height:             d.Camera.Height,
		Duration:           1.0,
		TransitionDuration: d.TransitionDuration,
		Easing:             easing.EaseInOut,
	})

	return segments, nil
}

// KeepDefault makes the intro of a generated timeline reuse the identity of
// the scene's existing default segment. The default segment is created once
// per scene and its name and position never change afterwards. It reports
// whether generated had to be corrected.
func KeepDefault(existing, generated []scene.CameraSegment) bool {
	old, ok := scene.DefaultSegment(existing)
	if !ok || len(generated) == 0 {
		return false
	}
	if scene.CheckDefaultImmutable(old, generated[0]) == nil {
		return false
	}

	intro := &generated[0]
	intro.ID, intro.Name, intro.Position, intro.IsDefault = old.ID, old.Name, old.Position, true
	return true
}

// sortLayers sorts layers in reading order (Western: top-to-bottom, left-to-right)
func (d *Director) sortLayers(layers []scene.Layer) []scene.Layer {
	sorted := make([]scene.Layer, len(layers))
	copy(sorted, layers)

	// Threshold for "same row", 20 viewport pixels in scene units
	threshold := 20 * scene.SceneScale

	sort.SliceStable(sorted, func(i, j int) bool {
		yDiff := sorted[i].Position.Y - sorted[j].Position.Y
		if math.Abs(yDiff) > threshold {
			return sorted[i].Position.Y < sorted[j].Position.Y
		}

		// Same row, sort by X
		return sorted[i].Position.X < sorted[j].Position.X
	})

	return sorted
}

// calculateDwellTime determines how long to hold on each layer
func (d *Director) calculateDwellTime(totalDuration float64, count int) float64 {
	// Reserve time for intro/outro (full view) and the moves between layers
	reserved := 2.0 + float64(count+1)*d.TransitionDuration
	availableDuration := totalDuration - reserved

	if availableDuration <= 0 {
		availableDuration = totalDuration
	}

	dwellTime := availableDuration / float64(count)

	// Clamp to min/max
	if dwellTime < d.MinDwell {
		dwellTime = d.MinDwell
	}
	if dwellTime > d.MaxDwell {
		dwellTime = d.MaxDwell
	}

	return dwellTime
}

// calculateZoom determines zoom level to fit a layer in the viewport
func (d *Director) calculateZoom(l scene.Layer) float64 {
	padding := 0.9 // Use 90% of viewport

	viewportW := d.Camera.Width * padding
	viewportH := d.Camera.Height * padding

	w, h := layerSize(l)
	if w <= 0 || h <= 0 {
		return 1.0
	}

	zoom := math.Min(viewportW/w, viewportH/h)

	// Clamp zoom to reasonable range
	if zoom < 1.0 {
		zoom = 1.0
	}
	if zoom > 3.0 {
		zoom = 3.0
	}

	return zoom
}

func layerSize(l scene.Layer) (float64, float64) {
	scale := l.Scale
	if scale <= 0 {
		scale = 1
	}
	return l.Width * scale, l.Height * scale
}

// layerCenter finds the visual center of a layer in scene space. Text layers
// are already positioned by their center.
func layerCenter(l scene.Layer) scene.Point {
	if l.Type == scene.LayerText {
		return l.Position
	}
	w, h := layerSize(l)
	return scene.Point{X: l.Position.X + w/2, Y: l.Position.Y + h/2}
}

func focusName(l scene.Layer, i int) string {
	if l.Name != "" {
		return l.Name
	}
	if l.ID != "" {
		return l.ID
	}
	return fmt.Sprintf("region_%d", i+1)
}
