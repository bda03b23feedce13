package renderer

import (
	"fmt"
	"image"
)

// TileRenderer handles the actual rendering of individual tiles
type TileRenderer struct {
	raytracer *Raytracer
}

// NewTileRenderer creates a new tile renderer for the given raytracer
func NewTileRenderer(raytracer *Raytracer) *TileRenderer {
	return &TileRenderer{raytracer: raytracer}
}

// RenderTileBounds renders pixels within bounds directly into img.
// Tiles passed concurrently must not overlap.
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle, img *Image) (RenderStats, error) {
	if !bounds.In(img.Bounds()) {
		return RenderStats{}, fmt.Errorf("tile bounds %v outside image %v", bounds, img.Bounds())
	}

	var counters traceCounters
	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			img.Set(i, j, tr.raytracer.renderPixel(i, j, &counters))
		}
	}

	return RenderStats{
		TotalPixels: bounds.Dx() * bounds.Dy(),
		PrimaryHits: counters.primaryHits,
		RaysTraced:  counters.rays,
		Tiles:       1,
	}, nil
}
