package system

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ivlev/scenecam/internal/config"
)

func TestGenerateScenePath(t *testing.T) {
	path := GenerateScenePath("scenes")

	if !strings.HasPrefix(path, filepath.Join("scenes", "scene_")) {
		t.Errorf("Path should be scenes/scene_*: %s", path)
	}
	if filepath.Ext(path) != ".yaml" {
		t.Errorf("Expected .yaml extension: %s", path)
	}
}

func TestFindLatestScene(t *testing.T) {
	dir := t.TempDir()

	files := []string{
		filepath.Join(dir, "scene_a.yaml"),
		filepath.Join(dir, "notes.txt"),
		filepath.Join(dir, "scene_c.yml"),
		filepath.Join(dir, "scene_b.yaml"),
	}

	for i, f := range files {
		if err := os.WriteFile(f, []byte("id: test"), 0644); err != nil {
			t.Fatal(err)
		}
		modTime := time.Now().Add(time.Duration(i) * time.Hour)
		if err := os.Chtimes(f, modTime, modTime); err != nil {
			t.Fatal(err)
		}
	}

	latest, err := FindLatestScene(dir)
	if err != nil {
		t.Fatalf("FindLatestScene failed: %v", err)
	}
	if latest != files[3] {
		t.Errorf("Expected %s, got %s", files[3], latest)
	}
}

func TestFindLatestSceneEmpty(t *testing.T) {
	if _, err := FindLatestScene(t.TempDir()); err == nil {
		t.Error("Expected error for directory without scenes")
	}
}

func TestDefaultWorkers(t *testing.T) {
	if n := DefaultWorkers(); n < 1 {
		t.Errorf("Expected at least one worker, got %d", n)
	}
}

func TestSyncToAudio(t *testing.T) {
	dir := t.TempDir()
	track := filepath.Join(dir, "voice.mp3")
	if err := os.WriteFile(track, []byte("ID3"), 0644); err != nil {
		t.Fatal(err)
	}

	orig := audioDuration
	defer func() { audioDuration = orig }()

	var ffprobeErr error
	audioDuration = func(ctx context.Context, path string) (float64, error) {
		if path != track {
			t.Errorf("Probed %s, expected %s", path, track)
		}
		return 12.5, ffprobeErr
	}

	tests := []struct {
		name     string
		sync     bool
		ffprobeErr error
		want     float64
	}{
		{"synced", true, nil, 12.5},
		{"sync_off", false, nil, 4},
		{"ffprobe_failed", true, errors.New("no ffprobe"), 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ffprobeErr = tt.ffprobeErr
			cfg := config.Default()
			cfg.AudioSync = tt.sync
			cfg.TotalDuration = 4

			SyncToAudio(context.Background(), &cfg, dir)

			if cfg.AudioPath != track {
				t.Errorf("Expected audio %s, got %q", track, cfg.AudioPath)
			}
			if cfg.TotalDuration != tt.want {
				t.Errorf("Expected duration %v, got %v", tt.want, cfg.TotalDuration)
			}
		})
	}
}

func TestSyncToAudioWithoutTrack(t *testing.T) {
	cfg := config.Default()
	SyncToAudio(context.Background(), &cfg, t.TempDir())

	if cfg.AudioPath != "" || cfg.TotalDuration != 0 {
		t.Errorf("Expected config untouched, got %+v", cfg)
	}
}
