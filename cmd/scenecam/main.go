package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/ivlev/scenecam/internal/camera"
	"github.com/ivlev/scenecam/internal/config"
	"github.com/ivlev/scenecam/internal/director"
	"github.com/ivlev/scenecam/internal/easing"
	"github.com/ivlev/scenecam/internal/engine"
	"github.com/ivlev/scenecam/internal/renderer"
	"github.com/ivlev/scenecam/internal/scene"
	"github.com/ivlev/scenecam/internal/system"
)

var buildVersion = "dev"

func main() {
	// Создаем нужные директории, если их нет
	dirs := []string{"input/scenes", "input/audio", "output"}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0755); err != nil {
			log.Printf("[!] Не удалось создать папку %s: %v", d, err)
		}
	}

	modePtr := flag.String("mode", "export", "Режим: validate, inspect, direct, export")
	configPtr := flag.String("config", "", "YAML-файл настроек (флаги имеют приоритет)")
	scenePtr := flag.String("scene", "", "Путь к сцене (по умолчанию: самый свежий файл в input/scenes/)")
	outputPtr := flag.String("output", "", "Путь к результату (если пусто, генерируется автоматически в output/)")
	durationPtr := flag.Float64("duration", 0, "Подогнать таймлайн под длительность (сек, 0 - как в сцене)")
	atPtr := flag.Float64("at", 0, "Момент времени для режима inspect (сек)")
	widthPtr := flag.Int("width", 0, "Ширина базовой камеры (0 - из сцены)")
	heightPtr := flag.Int("height", 0, "Высота базовой камеры (0 - из сцены)")
	fpsPtr := flag.Int("fps", 30, "FPS")
	workersPtr := flag.Int("workers", system.DefaultWorkers(), "Потоки")
	audioPtr := flag.String("audio", "", "Путь к озвучке для подгонки длительности")
	audioSyncPtr := flag.Bool("audio-sync", true, "Синхронизировать длительность таймлайна с аудио")
	presetPtr := flag.String("preset", "", "Пресет формата: 16:9, 9:16 (Shorts/TikTok), 4:5 (Instagram)")
	statsPtr := flag.Bool("stats", false, "Показать отчет о производительности")

	flag.Parse()

	cfg := config.Default()
	if *configPtr != "" {
		loaded, err := config.LoadFile(*configPtr)
		if err != nil {
			log.Fatalf("[-] Ошибка чтения настроек: %v", err)
		}
		cfg = loaded
	}
	applyFlags(map[string]func(){
		"scene":      func() { cfg.ScenePath = *scenePtr },
		"output":     func() { cfg.OutputPath = *outputPtr },
		"duration":   func() { cfg.TotalDuration = *durationPtr },
		"width":      func() { cfg.Width = *widthPtr },
		"height":     func() { cfg.Height = *heightPtr },
		"fps":        func() { cfg.FPS = *fpsPtr },
		"audio":      func() { cfg.AudioPath = *audioPtr },
		"audio-sync": func() { cfg.AudioSync = *audioSyncPtr },
		"preset":     func() { cfg.Preset = *presetPtr },
		"stats":      func() { cfg.ShowStats = *statsPtr },
		"workers":    func() { cfg.Workers = *workersPtr },
	})
	if cfg.Workers <= 0 {
		cfg.Workers = *workersPtr
	}
	cfg.BuildVersion = buildVersion

	if w, h, ok := config.PresetSize(cfg.Preset); ok {
		cfg.Width, cfg.Height = w, h
	}

	if cfg.ScenePath == "" {
		latest, err := system.FindLatestScene("input/scenes")
		if err != nil {
			log.Fatalf("[-] Ошибка: %v. Положите сцену в input/scenes/", err)
		}
		cfg.ScenePath = latest
		fmt.Printf("[*] Выбрана сцена: %s\n", cfg.ScenePath)
	}

	sc, err := scene.ReadScene(cfg.ScenePath)
	if err != nil {
		log.Fatalf("[-] Ошибка чтения сцены: %v", err)
	}
	if cfg.Width > 0 && cfg.Height > 0 {
		sc.Camera = scene.Dimensions{Width: float64(cfg.Width), Height: float64(cfg.Height)}
	}
	authored := sc.Segments
	*sc = scene.EnsureDefault(*sc)
	if len(sc.Segments) > len(authored) {
		fmt.Println("[*] В сцене нет сегмента по умолчанию, добавлен общий план")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *modePtr != "validate" {
		system.SyncToAudio(ctx, &cfg, "input/audio")
	}

	switch *modePtr {
	case "validate":
		if !runValidate(sc) {
			os.Exit(1)
		}
	case "inspect":
		if err := runInspect(sc, &cfg, *atPtr); err != nil {
			log.Fatalf("[-] Ошибка: %v", err)
		}
	case "direct":
		if err := runDirect(sc, &cfg); err != nil {
			log.Fatalf("[-] Ошибка режиссера: %v", err)
		}
	case "export":
		if err := runExport(ctx, sc, &cfg); err != nil {
			log.Fatalf("[-] Ошибка экспорта: %v", err)
		}
	default:
		log.Fatalf("[-] Неизвестный режим: %s", *modePtr)
	}
}

// applyFlags lets explicitly passed flags override values from the config file.
func applyFlags(setters map[string]func()) {
	flag.Visit(func(f *flag.Flag) {
		if set, ok := setters[f.Name]; ok {
			set()
		}
	})
}

func runValidate(sc *scene.Scene) bool {
	for _, i := range unknownEasings(sc.Segments) {
		fmt.Printf("[!] segments[%d].easing: %q неизвестна, будет использована %s (доступны: %s)\n",
			i, sc.Segments[i].Easing, easing.EaseOut, strings.Join(easing.Names(), ", "))
	}

	res := scene.ValidateTimeline(sc.Segments)
	if res.Valid {
		fmt.Printf("[+++] Таймлайн корректен: %d сегментов, %.2fs\n", len(sc.Segments), camera.TotalDuration(sc.Segments))
		return true
	}
	for _, fe := range res.Errors {
		fmt.Printf("[!] %s\n", fe)
	}
	return false
}

// unknownEasings lists segments whose easing name falls back to ease_out.
// An empty name is the usual way to ask for the default and is not reported.
func unknownEasings(segments []scene.CameraSegment) []int {
	var out []int
	for i, seg := range segments {
		if seg.Easing != "" && !easing.Known(seg.Easing) {
			out = append(out, i)
		}
	}
	return out
}

// runInspect prints what the interactive preview shows at time t.
// Audio sync has already been applied to cfg, so the timeline matches export.
func runInspect(sc *scene.Scene, cfg *config.Config, t float64) error {
	tl, err := engine.NewExportProject(cfg, sc).Timeline()
	if err != nil {
		return err
	}
	frame := renderer.ComposeFrame(sc, tl, t)

	state := frame.Camera
	if i := state.SegmentIndex; i >= 0 {
		seg := tl.Segment(i)
		fmt.Printf("[*] Сегмент %d %q: начало %.3fs, переход %.2fs, удержание %.2fs\n",
			i, seg.Name, tl.SegmentStart(i), seg.TransitionDuration, seg.Duration)
	}
	fmt.Printf("[*] t=%.3fs | сегмент %d | zoom %.4f | позиция (%.4f, %.4f) | переход: %v\n",
		t, state.SegmentIndex, state.Zoom, state.Position.X, state.Position.Y, state.IsTransitioning)
	for _, p := range frame.Layers {
		fmt.Printf("    %-12s %-10s x=%9.2f y=%9.2f zoom=%.3f anchor=%s\n", p.LayerID, p.Type, p.X, p.Y, p.Zoom, p.Anchor)
	}
	return nil
}

func runDirect(sc *scene.Scene, cfg *config.Config) error {
	total := cfg.TotalDuration
	if total <= 0 {
		total = camera.TotalDuration(sc.Segments)
	}

	dir := director.NewDirector(sc.Camera)
	segments, err := dir.GenerateSegments(sc.Layers, total)
	if err != nil {
		return err
	}
	if director.KeepDefault(sc.Segments, segments) {
		fmt.Println("[*] Сохранены имя и позиция исходного сегмента по умолчанию")
	}
	sc.Segments = segments

	outputPath := cfg.OutputPath
	if outputPath == "" {
		outputPath = system.GenerateScenePath("input/scenes")
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("не удалось создать папку: %w", err)
	}

	if err := scene.WriteScene(sc, outputPath); err != nil {
		return err
	}

	fmt.Printf("[+++] Успех! Сцена с маршрутом камеры сохранена: %s (%d сегментов, %.2fs)\n",
		outputPath, len(segments), camera.TotalDuration(segments))
	return nil
}

func runExport(ctx context.Context, sc *scene.Scene, cfg *config.Config) error {
	if cfg.OutputPath == "" {
		baseName := filepath.Base(cfg.ScenePath)
		nameOnly := strings.TrimSuffix(baseName, filepath.Ext(baseName))
		cleanName := strings.ReplaceAll(nameOnly, " ", "_")
		timestamp := time.Now().Format("2006-01-02_15-04-05")
		cfg.OutputPath = filepath.Join("output", fmt.Sprintf("%s_%s.frames.yaml", cleanName, timestamp))
	}

	fmt.Printf("[*] Потоков: %d | Память: %s\n", cfg.Workers, system.MemoryReport())

	project := engine.NewExportProject(cfg, sc)
	manifest, err := project.Run(ctx)
	if err != nil {
		return err
	}

	if err := engine.WriteManifest(manifest, cfg.OutputPath); err != nil {
		return fmt.Errorf("ошибка записи манифеста: %w", err)
	}

	fmt.Printf("[+++] Успех! Результат: %s\n", cfg.OutputPath)
	return nil
}
