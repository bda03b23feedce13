package renderer

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// TileCompletionResult contains information about a completed tile for callbacks
type TileCompletionResult struct {
	TileX     int // Tile coordinates (not pixel coordinates)
	TileY     int
	Bounds    image.Rectangle // Pixel bounds of the tile
	TileImage *image.RGBA     // Image data for just this tile

	// Progress information
	TileNumber int // Completed tile count so far (1-based)
	TotalTiles int // Total number of tiles in the image
}

// Renderer splits an image into tiles and renders them in parallel
type Renderer struct {
	scene     Scene
	config    RenderConfig
	raytracer *Raytracer
	tiles     []*Tile
	logger    core.Logger
}

// NewRenderer creates a renderer for scene. A nil logger discards output.
func NewRenderer(scene Scene, config RenderConfig, logger core.Logger) (*Renderer, error) {
	raytracer, err := NewRaytracer(scene, config)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = discardLogger{}
	}

	return &Renderer{
		scene:     scene,
		config:    config,
		raytracer: raytracer,
		tiles:     NewTileGrid(config.Width, config.Height, config.TileSize),
		logger:    logger,
	}, nil
}

// GetRaytracer returns the underlying raytracer
func (r *Renderer) GetRaytracer() *Raytracer {
	return r.raytracer
}

// Render traces every pixel and returns the finished image.
// tileCallback, if non-nil, is invoked from the calling goroutine as tiles complete.
func (r *Renderer) Render(ctx context.Context, tileCallback func(TileCompletionResult)) (*Image, RenderStats, error) {
	if err := ctx.Err(); err != nil {
		return nil, RenderStats{}, err
	}

	startTime := time.Now()
	img := NewImage(r.config.Width, r.config.Height)

	pool := NewWorkerPool(r.raytracer, r.config.NumWorkers, len(r.tiles))
	stats := RenderStats{Workers: pool.GetNumWorkers()}

	r.logger.Printf("Rendering %dx%d at depth %d using %d workers (%d tiles)...\n",
		r.config.Width, r.config.Height, r.config.MaxDepth, pool.GetNumWorkers(), len(r.tiles))

	pool.Start(ctx)
	for taskID, tile := range r.tiles {
		pool.SubmitTask(TileTask{Tile: tile, TaskID: taskID, Image: img})
	}

	for completed := 0; completed < len(r.tiles); completed++ {
		var result TileResult
		select {
		case <-ctx.Done():
			_ = pool.Stop()
			r.logger.Printf("Rendering cancelled after %d/%d tiles\n", completed, len(r.tiles))
			return nil, RenderStats{}, ctx.Err()
		case result = <-pool.Results():
		}

		if result.Error != nil {
			_ = pool.Stop()
			return nil, RenderStats{}, fmt.Errorf("tile %d: %w", result.TaskID, result.Error)
		}
		stats.merge(result.Stats)

		if tileCallback != nil {
			tile := r.tiles[result.TaskID]
			tileCallback(TileCompletionResult{
				TileX:      tile.Bounds.Min.X / r.config.TileSize,
				TileY:      tile.Bounds.Min.Y / r.config.TileSize,
				Bounds:     tile.Bounds,
				TileImage:  img.SubImageRGBA(tile.Bounds),
				TileNumber: completed + 1,
				TotalTiles: len(r.tiles),
			})
		}
	}

	if err := pool.Stop(); err != nil {
		return nil, RenderStats{}, err
	}

	stats.Duration = time.Since(startTime)
	r.logger.Printf("Render completed in %v (%d rays, %d/%d primary hits)\n",
		stats.Duration, stats.RaysTraced, stats.PrimaryHits, stats.TotalPixels)

	return img, stats, nil
}

// discardLogger drops all output
type discardLogger struct{}

func (discardLogger) Printf(string, ...interface{}) {}
