package renderer

import (
	"image"
	"image/draw"
	"sync"
)

// Canvas is an 8-bit image that completed tiles are pasted into while a render
// is running. It is safe for one writer and any number of readers.
type Canvas struct {
	mu         sync.Mutex
	img        *image.RGBA
	tilesDone  int
	totalTiles int
}

// NewCanvas creates a black canvas
func NewCanvas(width, height int) *Canvas {
	return &Canvas{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// Paste copies a finished tile into place; use it as a Render tile callback
func (c *Canvas) Paste(tile TileCompletionResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	draw.Draw(c.img, tile.Bounds, tile.TileImage, image.Point{}, draw.Src)
	c.tilesDone = tile.TileNumber
	c.totalTiles = tile.TotalTiles
}

// Reset clears the canvas for a new render
func (c *Canvas) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	clear(c.img.Pix)
	c.tilesDone = 0
	c.totalTiles = 0
}

// CopyPixels copies the RGBA pixel bytes into dst and returns the progress
func (c *Canvas) CopyPixels(dst []byte) (tilesDone, totalTiles int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	copy(dst, c.img.Pix)
	return c.tilesDone, c.totalTiles
}

// Bounds returns the canvas rectangle
func (c *Canvas) Bounds() image.Rectangle {
	return c.img.Bounds()
}
