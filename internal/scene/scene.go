package scene

// SceneScale is the fixed ratio between scene space and the base camera.
// An 800x450 camera works over a 9600x5400 scene.
const SceneScale = 12.0

// Point is a 2D coordinate. Camera positions are normalized to [0,1],
// layer positions are scene-absolute.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Dimensions is a width/height pair in pixels.
type Dimensions struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// SceneDimensions returns the scene space that belongs to a base camera.
func SceneDimensions(camera Dimensions) Dimensions {
	return Dimensions{
		Width:  camera.Width * SceneScale,
		Height: camera.Height * SceneScale,
	}
}

// CameraSegment is one entry of the camera timeline
type CameraSegment struct {
	ID                 string  `yaml:"id"`
	Name               string  `yaml:"name"`
	Zoom               float64 `yaml:"zoom"`
	Position           Point   `yaml:"position"` // Normalized, each axis in [0,1]
	Width              float64 `yaml:"width"`
	Height             float64 `yaml:"height"`
	Duration           float64 `yaml:"duration"`           // Hold time in seconds
	TransitionDuration float64 `yaml:"transitionDuration"` // Time spent moving in from the previous segment
	Easing             string  `yaml:"easing"`
	Locked             bool    `yaml:"locked"`
	IsDefault          bool    `yaml:"isDefault"`
	PauseDuration      float64 `yaml:"pauseDuration,omitempty"` // Informational only
}

// LayerType tags the kind of content a layer renders.
type LayerType string

const (
	LayerImage      LayerType = "image"
	LayerText       LayerType = "text"
	LayerShape      LayerType = "shape"
	LayerVideo      LayerType = "video"
	LayerAudio      LayerType = "audio"
	LayerWhiteboard LayerType = "whiteboard"
)

// Layer is a positioned piece of scene content. Type specific rendering
// config lives with the renderer and is not modelled here.
type Layer struct {
	ID        string          `yaml:"id"`
	Name      string          `yaml:"name,omitempty"`
	Type      LayerType       `yaml:"type"`
	Position  Point           `yaml:"position"` // Scene-absolute
	Width     float64         `yaml:"width,omitempty"`
	Height    float64         `yaml:"height,omitempty"`
	Scale     float64         `yaml:"scale"`
	Opacity   float64         `yaml:"opacity"`
	Rotation  float64         `yaml:"rotation"`
	ZIndex    int             `yaml:"zIndex"`
	Animation *LayerAnimation `yaml:"animation,omitempty"`
}

// LayerAnimation is a per-layer camera override driven by local progress.
// Nil pointers mean "use the evaluator default".
type LayerAnimation struct {
	Type          string   `yaml:"type"`
	StartZoom     *float64 `yaml:"startZoom,omitempty"`
	EndZoom       *float64 `yaml:"endZoom,omitempty"`
	FocusPosition *Point   `yaml:"focusPosition,omitempty"`
	Start         float64  `yaml:"start"`    // Scene time the animation begins at
	Duration      float64  `yaml:"duration"` // Seconds
}

// Scene is the unit loaded from and saved to a scene file
type Scene struct {
	ID       string          `yaml:"id"`
	Name     string          `yaml:"name"`
	Camera   Dimensions      `yaml:"camera"`
	Segments []CameraSegment `yaml:"segments"`
	Layers   []Layer         `yaml:"layers"`
}

// Dimensions returns the scene space of s.
func (s *Scene) Dimensions() Dimensions {
	return SceneDimensions(s.Camera)
}
