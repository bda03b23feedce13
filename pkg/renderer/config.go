package renderer

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every render configuration error
var ErrInvalidConfig = errors.New("invalid render config")

// RenderConfig contains the tunable rendering parameters
type RenderConfig struct {
	Width      int // Output width in pixels
	Height     int // Output height in pixels
	MaxDepth   int // Recursion bound for reflection rays
	TileSize   int // Size of each square tile handed to a worker
	NumWorkers int // Number of parallel workers (0 = use CPU count)
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		Width:      500,
		Height:     500,
		MaxDepth:   3,
		TileSize:   64,
		NumWorkers: 0, // Auto-detect CPU count
	}
}

// Validate rejects configurations that cannot produce an image
func (c RenderConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: resolution must be positive, got %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("%w: max depth must not be negative, got %d", ErrInvalidConfig, c.MaxDepth)
	}
	if c.TileSize <= 0 {
		return fmt.Errorf("%w: tile size must be positive, got %d", ErrInvalidConfig, c.TileSize)
	}
	if c.NumWorkers < 0 {
		return fmt.Errorf("%w: worker count must not be negative, got %d", ErrInvalidConfig, c.NumWorkers)
	}
	return nil
}
