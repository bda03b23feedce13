package renderer

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// recordingLogger captures log lines for assertions
type recordingLogger struct {
	lines []string
}

func (l *recordingLogger) Printf(format string, args ...interface{}) {
	l.lines = append(l.lines, format)
}

func TestRenderMatchesSequentialTrace(t *testing.T) {
	config := DefaultRenderConfig()
	config.Width = 64
	config.Height = 48
	config.TileSize = 16
	config.NumWorkers = 4

	r, err := NewRenderer(scene.NewDefaultScene(), config, nil)
	if err != nil {
		t.Fatalf("Failed to create renderer: %v", err)
	}

	img, stats, err := r.Render(context.Background(), nil)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	// Every pixel must equal the single-threaded trace of the same pixel
	rt := r.GetRaytracer()
	for j := 0; j < config.Height; j++ {
		for i := 0; i < config.Width; i++ {
			expected := rt.RenderPixel(i, j)
			if got := img.At(i, j); got != expected {
				t.Fatalf("Pixel (%d,%d): parallel %v != sequential %v", i, j, got, expected)
			}
		}
	}

	if stats.TotalPixels != 64*48 {
		t.Errorf("Expected %d pixels, got %d", 64*48, stats.TotalPixels)
	}
	if stats.Tiles != 12 {
		t.Errorf("Expected 12 tiles, got %d", stats.Tiles)
	}
	if stats.Workers != 4 {
		t.Errorf("Expected 4 workers, got %d", stats.Workers)
	}
	if stats.RaysTraced < stats.TotalPixels {
		t.Errorf("Expected at least one ray per pixel, got %d rays", stats.RaysTraced)
	}
	if stats.PrimaryHits == 0 || stats.PrimaryHits > stats.TotalPixels {
		t.Errorf("Unexpected primary hit count %d", stats.PrimaryHits)
	}
}

func TestRenderEmptyScene(t *testing.T) {
	s := scene.NewEmptyScene()
	s.Background = core.NewVec3(0.25, 0.5, 0.75)

	config := DefaultRenderConfig()
	config.Width = 20
	config.Height = 10
	config.TileSize = 8

	logger := &recordingLogger{}
	r, err := NewRenderer(s, config, logger)
	if err != nil {
		t.Fatalf("Failed to create renderer: %v", err)
	}

	img, stats, err := r.Render(context.Background(), nil)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	for idx, c := range img.Pix {
		if c != s.Background {
			t.Fatalf("Pixel %d: expected background, got %v", idx, c)
		}
	}
	if stats.PrimaryHits != 0 {
		t.Errorf("Expected no primary hits, got %d", stats.PrimaryHits)
	}
	if stats.RaysTraced != 200 {
		t.Errorf("Expected 200 rays, got %d", stats.RaysTraced)
	}
	if len(logger.lines) != 2 {
		t.Errorf("Expected start and completion log lines, got %d", len(logger.lines))
	}
}

func TestRenderTileCallback(t *testing.T) {
	config := DefaultRenderConfig()
	config.Width = 40
	config.Height = 24
	config.TileSize = 16
	config.NumWorkers = 2

	r, err := NewRenderer(scene.NewSingleSphereScene(), config, nil)
	if err != nil {
		t.Fatalf("Failed to create renderer: %v", err)
	}

	var results []TileCompletionResult
	img, _, err := r.Render(context.Background(), func(result TileCompletionResult) {
		results = append(results, result)
	})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	expectedTiles := 3 * 2
	if len(results) != expectedTiles {
		t.Fatalf("Expected %d callbacks, got %d", expectedTiles, len(results))
	}

	seen := make(map[image.Point]bool)
	for n, result := range results {
		if result.TileNumber != n+1 || result.TotalTiles != expectedTiles {
			t.Errorf("Callback %d: unexpected progress %d/%d", n, result.TileNumber, result.TotalTiles)
		}
		if result.TileImage.Bounds().Dx() != result.Bounds.Dx() || result.TileImage.Bounds().Dy() != result.Bounds.Dy() {
			t.Errorf("Tile image size %v does not match bounds %v", result.TileImage.Bounds(), result.Bounds)
		}
		seen[image.Pt(result.TileX, result.TileY)] = true

		// Tile pixels are the converted final image pixels
		expected := vec3ToColor(img.At(result.Bounds.Min.X, result.Bounds.Min.Y))
		if got := result.TileImage.RGBAAt(0, 0); got != expected {
			t.Errorf("Tile (%d,%d) origin pixel %v, expected %v", result.TileX, result.TileY, got, expected)
		}
	}
	if len(seen) != expectedTiles {
		t.Errorf("Expected %d distinct tiles, got %d", expectedTiles, len(seen))
	}
}

func TestRenderCancelled(t *testing.T) {
	r, err := NewRenderer(scene.NewDefaultScene(), testConfig(32, 3), nil)
	if err != nil {
		t.Fatalf("Failed to create renderer: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err = r.Render(ctx, nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}
