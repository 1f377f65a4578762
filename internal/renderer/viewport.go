package renderer

import (
	"golang.org/x/image/math/f64"

	"github.com/ivlev/scenecam/internal/camera"
	"github.com/ivlev/scenecam/internal/scene"
)

// Anchor tells the drawing surface which point of the layer box the
// placement coordinates refer to.
type Anchor string

const (
	AnchorTopLeft Anchor = "top_left"
	AnchorCenter  Anchor = "center"
)

// Mapper converts scene-absolute layer coordinates into coordinates
// relative to the camera viewport. The interactive preview and the export
// driver must both go through it.
type Mapper struct {
	Scene  scene.Dimensions
	Camera scene.Dimensions
}

// NewMapper creates a Mapper for a scene and the viewport of the active camera.
func NewMapper(sceneDims, cameraDims scene.Dimensions) Mapper {
	return Mapper{Scene: sceneDims, Camera: cameraDims}
}

// Origin is the scene point shown at the top-left corner of the viewport.
func (m Mapper) Origin(state camera.State) scene.Point {
	return scene.Point{
		X: state.Position.X*m.Scene.Width - m.Camera.Width/2,
		Y: state.Position.Y*m.Scene.Height - m.Camera.Height/2,
	}
}

// ToViewport maps a scene-absolute position into viewport coordinates.
func (m Mapper) ToViewport(state camera.State, layerPos scene.Point) scene.Point {
	origin := m.Origin(state)
	return scene.Point{
		X: layerPos.X - origin.X,
		Y: layerPos.Y - origin.Y,
	}
}

// Affine returns the scene-to-viewport transform as a row-major 2x3 matrix.
// Frames carry it so surfaces that compose transforms can use it directly.
func (m Mapper) Affine(state camera.State) f64.Aff3 {
	origin := m.Origin(state)
	return f64.Aff3{
		1, 0, -origin.X,
		0, 1, -origin.Y,
	}
}

// Apply transforms p by an affine matrix. For the pure translation built by
// Affine this is exactly p - origin.
func Apply(a f64.Aff3, p scene.Point) scene.Point {
	return scene.Point{
		X: a[0]*p.X + a[1]*p.Y + a[2],
		Y: a[3]*p.X + a[4]*p.Y + a[5],
	}
}

// Placement is everything a drawing surface needs to put one layer on screen.
type Placement struct {
	LayerID  string          `yaml:"layerId"`
	Type     scene.LayerType `yaml:"type"`
	X        float64         `yaml:"x"`
	Y        float64         `yaml:"y"`
	Zoom     float64         `yaml:"zoom"`
	Scale    float64         `yaml:"scale"`
	Rotation float64         `yaml:"rotation"`
	Opacity  float64         `yaml:"opacity"`
	ZIndex   int             `yaml:"zIndex"`
	Anchor   Anchor          `yaml:"anchor"`
	Offset   scene.Point     `yaml:"offset"` // Center to top-left shift of a sized text layer
}

// Place maps a layer with the given camera state. Text layers are anchored
// at their visual center. When the layer box is known Offset already holds
// TextCenterOffset, otherwise the surface applies it after measuring.
func (m Mapper) Place(state camera.State, layer scene.Layer) Placement {
	pos := Apply(m.Affine(state), layer.Position)

	var offset scene.Point
	if layer.Type == scene.LayerText && layer.Width > 0 && layer.Height > 0 {
		offset = TextCenterOffset(scene.Dimensions{Width: layer.Width, Height: layer.Height})
	}

	return Placement{
		LayerID:  layer.ID,
		Type:     layer.Type,
		X:        pos.X,
		Y:        pos.Y,
		Zoom:     state.Zoom,
		Scale:    layer.Scale,
		Rotation: layer.Rotation,
		Opacity:  layer.Opacity,
		ZIndex:   layer.ZIndex,
		Anchor:   AnchorFor(layer.Type),
		Offset:   offset,
	}
}

// AnchorFor returns the anchor convention of a layer type.
func AnchorFor(t scene.LayerType) Anchor {
	if t == scene.LayerText {
		return AnchorCenter
	}
	return AnchorTopLeft
}

// TextCenterOffset is the shift from a text layer's center to the top-left
// corner of its measured box.
func TextCenterOffset(measured scene.Dimensions) scene.Point {
	return scene.Point{X: -measured.Width / 2, Y: -measured.Height / 2}
}

// CameraDims picks the viewport size of the active segment, falling back to
// the base camera for an empty timeline or a segment without a size.
func CameraDims(segments []scene.CameraSegment, state camera.State, base scene.Dimensions) scene.Dimensions {
	i := state.SegmentIndex
	if i < 0 || i >= len(segments) {
		return base
	}
	seg := segments[i]
	if seg.Width <= 0 || seg.Height <= 0 {
		return base
	}
	return scene.Dimensions{Width: seg.Width, Height: seg.Height}
}
