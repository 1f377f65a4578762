package system

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/ivlev/scenecam/internal/config"
)

// DefaultWorkers returns the number of logical CPUs, falling back to
// runtime.NumCPU when the host cannot be queried.
func DefaultWorkers() int {
	n, err := cpu.Counts(true)
	if err != nil || n <= 0 {
		return runtime.NumCPU()
	}
	return n
}

// MemoryReport describes available memory for the startup banner.
func MemoryReport() string {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return "недоступно"
	}
	return fmt.Sprintf("%.1f/%.1f GiB свободно", float64(vm.Available)/(1<<30), float64(vm.Total)/(1<<30))
}

// GenerateScenePath creates a timestamped scene filename inside dir
func GenerateScenePath(dir string) string {
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	return filepath.Join(dir, fmt.Sprintf("scene_%s.yaml", timestamp))
}

// FindLatestScene finds the most recently modified scene file in dir
func FindLatestScene(dir string) (string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read scenes directory: %w", err)
	}

	var latestFile string
	var latestTime time.Time

	for _, f := range files {
		if f.IsDir() {
			continue
		}
		name := strings.ToLower(f.Name())
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}
		info, err := f.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(latestTime) {
			latestTime = info.ModTime()
			latestFile = filepath.Join(dir, f.Name())
		}
	}

	if latestFile == "" {
		return "", fmt.Errorf("в папке %s не найдено файлов сцен", dir)
	}

	return latestFile, nil
}

// FindLatestAudio finds the most recently modified narration track in dir
func FindLatestAudio(dir string) (string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	extensions := []string{".mp3", ".wav", ".m4a", ".ogg", ".aac", ".flac"}
	var latestFile string
	var latestTime time.Time

	for _, f := range files {
		if f.IsDir() {
			continue
		}
		isAudio := false
		for _, ext := range extensions {
			if strings.HasSuffix(strings.ToLower(f.Name()), ext) {
				isAudio = true
				break
			}
		}
		if !isAudio {
			continue
		}
		info, err := f.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(latestTime) {
			latestTime = info.ModTime()
			latestFile = filepath.Join(dir, f.Name())
		}
	}

	if latestFile == "" {
		return "", fmt.Errorf("в папке %s не найдено аудио-файлов", dir)
	}

	return latestFile, nil
}

// GetAudioDuration probes a narration track with ffprobe
func GetAudioDuration(ctx context.Context, path string) (float64, error) {
	cmd := exec.CommandContext(ctx, "ffprobe", "-v", "error", "-show_entries", "format=duration", "-of", "default=noprint_wrappers=1:nokey=1", path)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return 0, fmt.Errorf("ffprobe %s: %w", path, err)
	}

	var duration float64
	_, err = fmt.Sscanf(strings.TrimSpace(string(out)), "%f", &duration)
	if err != nil {
		return 0, fmt.Errorf("parse ffprobe output %q: %w", strings.TrimSpace(string(out)), err)
	}

	return duration, nil
}

// audioDuration is swapped out in tests
var audioDuration = GetAudioDuration

// SyncToAudio picks the latest track from audioDir when none is configured
// and, with AudioSync on, fits the timeline duration to it. Every mode that
// resolves camera state calls it, so inspect and export see the same timeline.
func SyncToAudio(ctx context.Context, cfg *config.Config, audioDir string) {
	if cfg.AudioPath == "" {
		latest, err := FindLatestAudio(audioDir)
		if err != nil {
			return
		}
		cfg.AudioPath = latest
		fmt.Printf("[*] Выбрано аудио: %s\n", cfg.AudioPath)
	}

	if !cfg.AudioSync {
		return
	}

	dur, err := audioDuration(ctx, cfg.AudioPath)
	if err != nil {
		log.Printf("[!] Не удалось получить длительность аудио: %v", err)
		return
	}
	cfg.TotalDuration = dur
	fmt.Printf("[*] Длительность таймлайна установлена по аудио: %.2fs\n", dur)
}
