package engine

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/scenecam/internal/config"
	"github.com/ivlev/scenecam/internal/renderer"
	"github.com/ivlev/scenecam/internal/scene"
)

func testScene() *scene.Scene {
	cam := scene.Dimensions{Width: 800, Height: 450}

	title := scene.NewLayer("title", scene.LayerText)
	title.Position = scene.Point{X: 4800, Y: 2700}
	title.ZIndex = 1
	photo := scene.NewLayer("photo", scene.LayerImage)
	photo.Position = scene.Point{X: 6000, Y: 1200}

	return &scene.Scene{
		ID:     "intro",
		Name:   "Intro",
		Camera: cam,
		Segments: []scene.CameraSegment{
			{ID: "s0", Zoom: 1, Duration: 2, TransitionDuration: 0, Position: scene.Point{X: 0.5, Y: 0.5}, IsDefault: true},
			{ID: "s1", Zoom: 2, Duration: 3, TransitionDuration: 1.5, Position: scene.Point{X: 0.7, Y: 0.3}},
			{ID: "s2", Zoom: 1.5, Duration: 2, TransitionDuration: 1.0, Position: scene.Point{X: 0.5, Y: 0.5}},
		},
		Layers: []scene.Layer{title, photo},
	}
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Workers = 4
	return &cfg
}

func TestRun(t *testing.T) {
	project := NewExportProject(testConfig(), testScene())

	m, err := project.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if m.Duration != 9.5 {
		t.Errorf("Expected duration 9.5, got %f", m.Duration)
	}
	if len(m.Frames) != 285 {
		t.Fatalf("Expected 285 frames, got %d", len(m.Frames))
	}

	for i, f := range m.Frames {
		if f.Index != i {
			t.Fatalf("Frame %d has index %d", i, f.Index)
		}
	}

	f := m.Frames[90] // t = 3.0s
	if !f.Camera.IsTransitioning || f.Camera.SegmentIndex != 1 {
		t.Errorf("Expected transition into segment 1 at 3.0s, got %+v", f.Camera)
	}
	if f.Layers[0].LayerID != "photo" || f.Layers[1].LayerID != "title" {
		t.Errorf("Layers not in paint order: %s, %s", f.Layers[0].LayerID, f.Layers[1].LayerID)
	}
	if m.Scene.Width != 9600 || m.Scene.Height != 5400 {
		t.Errorf("Expected 9600x5400 scene, got %v", m.Scene)
	}
}

func TestExportMatchesPreview(t *testing.T) {
	tests := []struct {
		name     string
		duration float64
		frames   []int
	}{
		{"authored", 0, []int{0, 45, 60, 90, 150, 200, 284}},
		{"fitted", 19, []int{0, 60, 90, 120, 180, 300, 420, 569}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testScene()
			cfg := testConfig()
			cfg.TotalDuration = tt.duration

			m, err := NewExportProject(cfg, s).Run(context.Background())
			if err != nil {
				t.Fatalf("Run failed: %v", err)
			}

			// The preview resolves its timeline through the same project step
			tl, err := NewExportProject(cfg, s).Timeline()
			if err != nil {
				t.Fatalf("Timeline failed: %v", err)
			}
			if tt.duration > 0 && reflect.DeepEqual(tl.Segments(), s.Segments) {
				t.Fatal("Expected the fitted timeline to differ from the authored one")
			}

			for _, k := range tt.frames {
				preview := renderer.ComposeFrame(s, tl, FrameTime(k, cfg.FPS))
				preview.Index = k
				if !reflect.DeepEqual(preview, m.Frames[k]) {
					t.Errorf("Frame %d differs:\npreview %+v\nexport  %+v", k, preview, m.Frames[k])
				}
			}
		})
	}
}

func TestRunFitsDuration(t *testing.T) {
	cfg := testConfig()
	cfg.TotalDuration = 19

	m, err := NewExportProject(cfg, testScene()).Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if math.Abs(m.Duration-19) > 1e-9 {
		t.Errorf("Expected duration 19, got %f", m.Duration)
	}
	if len(m.Frames) != 570 {
		t.Errorf("Expected 570 frames, got %d", len(m.Frames))
	}
}

func TestRunInvalidTimeline(t *testing.T) {
	s := testScene()
	s.Segments[1].Zoom = 50

	_, err := NewExportProject(testConfig(), s).Run(context.Background())
	if !errors.Is(err, ErrInvalidTimeline) {
		t.Errorf("Expected ErrInvalidTimeline, got %v", err)
	}
}

func TestRunEmptyTimeline(t *testing.T) {
	s := testScene()
	s.Segments = nil

	m, err := NewExportProject(testConfig(), s).Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(m.Frames) != 1 || m.Frames[0].Camera.SegmentIndex != -1 {
		t.Errorf("Expected a single empty-state frame, got %d frames", len(m.Frames))
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewExportProject(testConfig(), testScene()).Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestFrameCount(t *testing.T) {
	tests := []struct {
		total float64
		fps   int
		want  int
	}{
		{9.5, 30, 285},
		{0, 30, 1},
		{1.01, 10, 11},
	}

	for _, tt := range tests {
		if got := FrameCount(tt.total, tt.fps); got != tt.want {
			t.Errorf("FrameCount(%v, %d): expected %d, got %d", tt.total, tt.fps, tt.want, got)
		}
	}
}

func TestManifestWriteRead(t *testing.T) {
	m, err := NewExportProject(testConfig(), testScene()).Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "manifest.yaml")
	if err := WriteManifest(m, path); err != nil {
		t.Fatalf("WriteManifest failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got Manifest
	if err := yaml.Unmarshal(data, &got); err != nil {
		t.Fatalf("Manifest is not valid YAML: %v", err)
	}
	if got.SceneID != "intro" || len(got.Frames) != len(m.Frames) {
		t.Errorf("Manifest mismatch: scene %q, %d frames", got.SceneID, len(got.Frames))
	}
	if got.Frames[90].View != m.Frames[90].View {
		t.Errorf("View not preserved: %v vs %v", got.Frames[90].View, m.Frames[90].View)
	}
}
