package renderer

import (
	"context"
	"image"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

func TestNewTileGrid(t *testing.T) {
	// Test tile grid generation for a 400x225 image with 64x64 tiles
	width, height, tileSize := 400, 225, 64
	tiles := NewTileGrid(width, height, tileSize)

	// Calculate expected number of tiles
	expectedTilesX := (width + tileSize - 1) / tileSize   // 7 tiles
	expectedTilesY := (height + tileSize - 1) / tileSize  // 4 tiles
	expectedTotalTiles := expectedTilesX * expectedTilesY // 28 tiles

	if len(tiles) != expectedTotalTiles {
		t.Errorf("Expected %d tiles, got %d", expectedTotalTiles, len(tiles))
	}

	// Test that tiles cover the entire image without gaps or overlaps
	covered := make([][]bool, height)
	for y := range covered {
		covered[y] = make([]bool, width)
	}

	for _, tile := range tiles {
		for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
			for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
				if x >= width || y >= height {
					t.Errorf("Tile %d extends beyond image bounds at (%d,%d)", tile.ID, x, y)
				}
				if covered[y][x] {
					t.Errorf("Pixel (%d,%d) is covered by multiple tiles", x, y)
				}
				covered[y][x] = true
			}
		}
	}

	// Verify all pixels are covered
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !covered[y][x] {
				t.Errorf("Pixel (%d,%d) is not covered by any tile", x, y)
			}
		}
	}
}

func TestTileRendererBoundsClipping(t *testing.T) {
	rt := newTestRaytracer(t, scene.NewSingleSphereScene(), testConfig(5, 3))
	tr := NewTileRenderer(rt)
	img := NewImage(5, 5)
	for i := range img.Pix {
		img.Pix[i].X = -1 // Sentinel for untouched pixels
	}

	// Only render a 2x2 subset
	stats, err := tr.RenderTileBounds(image.Rect(1, 1, 3, 3), img)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if stats.TotalPixels != 4 || stats.Tiles != 1 {
		t.Errorf("Expected 4 pixels in 1 tile, got %+v", stats)
	}

	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			inBounds := x >= 1 && x < 3 && y >= 1 && y < 3
			touched := img.At(x, y).X != -1
			if inBounds != touched {
				t.Errorf("Pixel (%d,%d): inBounds=%t touched=%t", x, y, inBounds, touched)
			}
		}
	}
}

func TestTileRendererRejectsOutOfBounds(t *testing.T) {
	rt := newTestRaytracer(t, scene.NewEmptyScene(), testConfig(4, 3))
	tr := NewTileRenderer(rt)

	if _, err := tr.RenderTileBounds(image.Rect(2, 2, 6, 6), NewImage(4, 4)); err == nil {
		t.Error("Expected error for tile outside the image")
	}
}

func TestWorkerPoolPropagatesTileError(t *testing.T) {
	rt := newTestRaytracer(t, scene.NewEmptyScene(), testConfig(4, 3))
	pool := NewWorkerPool(rt, 2, 1)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	pool.Start(ctx)

	pool.SubmitTask(TileTask{Tile: NewTile(0, image.Rect(0, 0, 8, 8)), TaskID: 0, Image: NewImage(4, 4)})
	result := <-pool.Results()
	if result.Error == nil {
		t.Error("Expected tile error in result")
	}
	if err := pool.Stop(); err == nil {
		t.Error("Expected Stop to report the worker error")
	}
}
