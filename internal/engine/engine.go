package engine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/scenecam/internal/camera"
	"github.com/ivlev/scenecam/internal/config"
	"github.com/ivlev/scenecam/internal/renderer"
	"github.com/ivlev/scenecam/internal/scene"
)

// ErrInvalidTimeline is returned when the scene's camera timeline fails validation.
var ErrInvalidTimeline = errors.New("invalid camera timeline")

// Manifest is the export result handed to an external encoder
type Manifest struct {
	Version  string           `yaml:"version"`
	SceneID  string           `yaml:"sceneId"`
	FPS      int              `yaml:"fps"`
	Duration float64          `yaml:"duration"`
	Camera   scene.Dimensions `yaml:"camera"`
	Scene    scene.Dimensions `yaml:"scene"`
	Frames   []renderer.Frame `yaml:"frames"`
}

type ExportProject struct {
	Config *config.Config
	Scene  *scene.Scene
}

func NewExportProject(cfg *config.Config, s *scene.Scene) *ExportProject {
	return &ExportProject{
		Config: cfg,
		Scene:  s,
	}
}

// Timeline validates the scene's segments and applies duration fitting.
func (p *ExportProject) Timeline() (*camera.Timeline, error) {
	segments := p.Scene.Segments

	if res := scene.ValidateTimeline(segments); !res.Valid {
		msgs := make([]string, len(res.Errors))
		for i, fe := range res.Errors {
			msgs[i] = fe.String()
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalidTimeline, strings.Join(msgs, "; "))
	}

	if p.Config.TotalDuration > 0 && len(segments) > 0 {
		authored := camera.TotalDuration(segments)
		segments = camera.ScaleToDuration(segments, p.Config.TotalDuration, p.Config.FPS)
		fmt.Printf("[*] Таймлайн масштабирован (x%.3f): %.2fs -> %.2fs\n",
			p.Config.TotalDuration/authored, authored, camera.TotalDuration(segments))
	}

	return camera.NewTimeline(segments), nil
}

// Run evaluates every output frame in parallel and returns the manifest.
func (p *ExportProject) Run(ctx context.Context) (*Manifest, error) {
	startTime := time.Now()

	if err := p.Config.Validate(); err != nil {
		return nil, err
	}

	sc := *p.Scene
	if p.Config.Width > 0 && p.Config.Height > 0 {
		sc.Camera = scene.Dimensions{Width: float64(p.Config.Width), Height: float64(p.Config.Height)}
	}
	if sc.Camera.Width <= 0 || sc.Camera.Height <= 0 {
		return nil, fmt.Errorf("сцена %q не задаёт размер камеры", sc.ID)
	}

	tl, err := p.Timeline()
	if err != nil {
		return nil, err
	}

	fps := p.Config.FPS
	total := tl.TotalDuration()
	frameCount := FrameCount(total, fps)

	workers := p.Config.Workers
	if workers <= 0 {
		workers = 1
	}
	if workers > frameCount {
		workers = frameCount
	}

	fmt.Println("--- [PROJECT: CAMERA EXPORT] ---")
	fmt.Printf("[*] Сцена: %s | Сегментов: %d | Слоёв: %d\n", sc.Name, tl.Len(), len(sc.Layers))
	fmt.Printf("[*] Камера: %.0fx%.0f @ %d FPS | Длительность: %.2fs | Кадров: %d\n",
		sc.Camera.Width, sc.Camera.Height, fps, total, frameCount)
	fmt.Println("-----------------------------")

	frames := make([]renderer.Frame, frameCount)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for k := 0; k < frameCount; k++ {
		if gctx.Err() != nil {
			break
		}
		k := k
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			// Each worker owns its slot, no locking needed
			frame := renderer.ComposeFrame(&sc, tl, FrameTime(k, fps))
			frame.Index = k
			frames[k] = frame
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("экспорт прерван: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("экспорт прерван: %w", err)
	}

	manifest := &Manifest{
		Version:  "1.0",
		SceneID:  sc.ID,
		FPS:      fps,
		Duration: total,
		Camera:   sc.Camera,
		Scene:    sc.Dimensions(),
		Frames:   frames,
	}

	if p.Config.ShowStats {
		p.report(time.Since(startTime), frameCount)
	}

	return manifest, nil
}

// FrameCount is the number of frames needed to cover total seconds.
func FrameCount(total float64, fps int) int {
	n := int(math.Ceil(total * float64(fps)))
	if n < 1 {
		n = 1
	}
	return n
}

// FrameTime is the timeline time of frame k.
func FrameTime(k, fps int) float64 {
	return float64(k) / float64(fps)
}

func (p *ExportProject) report(totalTime time.Duration, frameCount int) {
	fps := float64(frameCount) / totalTime.Seconds()

	fmt.Printf(
		"--- [PERFORMANCE REPORT] ---\n"+
			"Build: %s\n"+
			"Total Time: %.3fs\n"+
			"Frames: %d\n"+
			"Effective FPS: %.2f\n"+
			"----------------------------\n",
		p.Config.BuildVersion, totalTime.Seconds(), frameCount, fps,
	)

	logEntry := fmt.Sprintf("[%s] Build: %s | Scene: %s | Frames: %d | Total: %.3fs | FPS: %.2f\n",
		time.Now().Format("2006-01-02 15:04:05"),
		p.Config.BuildVersion,
		filepath.Base(p.Config.ScenePath),
		frameCount,
		totalTime.Seconds(),
		fps,
	)

	f, err := os.OpenFile("benchmark.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Printf("[!] Не удалось записать benchmark.log: %v\n", err)
		return
	}
	defer f.Close()
	if _, err := f.WriteString(logEntry); err != nil {
		fmt.Printf("[!] Не удалось записать benchmark.log: %v\n", err)
	}
}
