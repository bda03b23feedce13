package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/config"
)

func TestCreateScene(t *testing.T) {
	tests := []struct {
		name        string
		sceneName   string
		expectError bool
	}{
		{"default scene", "default", false},
		{"single-sphere scene", "single-sphere", false},
		{"spheregrid scene", "spheregrid", false},
		{"empty scene", "empty", false},
		{"unknown scene", "nonexistent", true},
		{"empty scene name", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.Scene.Name = tt.sceneName

			s, err := createScene(cfg)
			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for scene %q, but got none", tt.sceneName)
				}
				if s != nil {
					t.Errorf("Expected nil scene, got %v", s.Name)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if s.GetCamera() == nil {
				t.Error("Expected scene camera")
			}
		})
	}
}

func TestLoadConfigFlagPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("render:\n  width: 100\n  height: 80\n  max_depth: 2\n"), 0644); err != nil {
		t.Fatal(err)
	}

	opts, err := parseFlags([]string{"-config", path, "-width", "64", "-scene", "empty"})
	if err != nil {
		t.Fatalf("parseFlags failed: %v", err)
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}

	if cfg.Render.Width != 64 {
		t.Errorf("Expected flag width 64, got %d", cfg.Render.Width)
	}
	if cfg.Render.Height != 80 || cfg.Render.MaxDepth != 2 {
		t.Errorf("Expected file values for unset flags, got %dx depth %d", cfg.Render.Height, cfg.Render.MaxDepth)
	}
	if cfg.Scene.Name != "empty" {
		t.Errorf("Expected scene from flag, got %q", cfg.Scene.Name)
	}
}

func TestLoadConfigRejectsInvalidFlags(t *testing.T) {
	opts, err := parseFlags([]string{"-width", "0"})
	if err != nil {
		t.Fatalf("parseFlags failed: %v", err)
	}
	if _, err := loadConfig(opts); err == nil {
		t.Error("Expected error for zero width")
	}
}

func TestRunWritesPNG(t *testing.T) {
	outDir := t.TempDir()
	args := []string{
		"-scene", "single-sphere",
		"-width", "24", "-height", "16",
		"-out", outDir,
		"-thumbnail", "8",
		"-env", filepath.Join(outDir, "missing.env"),
	}

	if err := run(context.Background(), args); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	images, _ := filepath.Glob(filepath.Join(outDir, "single-sphere", "render_*.png"))
	if len(images) != 2 {
		t.Errorf("Expected image and thumbnail, got %v", images)
	}
}
