package output

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/nfnt/resize"
)

// EncodePNG encodes img as PNG bytes
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("error encoding PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// Thumbnail downscales img so that its longer side is maxSize pixels.
// Images already within maxSize are returned unchanged.
func Thumbnail(img image.Image, maxSize int) image.Image {
	bounds := img.Bounds()
	if maxSize <= 0 || (bounds.Dx() <= maxSize && bounds.Dy() <= maxSize) {
		return img
	}
	return resize.Thumbnail(uint(maxSize), uint(maxSize), img, resize.Bilinear)
}

// RenderPaths names the files written for one render
type RenderPaths struct {
	Image     string
	Thumbnail string // Empty when no thumbnail was requested
}

// NewRenderPaths returns output/<scene>/render_<timestamp>.png and its thumbnail sibling
func NewRenderPaths(outputDir, sceneName string, at time.Time, withThumbnail bool) RenderPaths {
	base := filepath.Join(outputDir, sceneName, fmt.Sprintf("render_%s", at.Format("20060102_150405")))
	paths := RenderPaths{Image: base + ".png"}
	if withThumbnail {
		paths.Thumbnail = base + "_thumb.png"
	}
	return paths
}

// SavePNG writes img to path, creating parent directories as needed
func SavePNG(img image.Image, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating output file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("error encoding PNG: %w", err)
	}
	return nil
}

// SaveRender writes the image and, when thumbnailSize > 0, a downscaled copy.
// It returns the paths that were written.
func SaveRender(img image.Image, outputDir, sceneName string, thumbnailSize int, at time.Time) (RenderPaths, error) {
	paths := NewRenderPaths(outputDir, sceneName, at, thumbnailSize > 0)

	if err := SavePNG(img, paths.Image); err != nil {
		return paths, err
	}
	if paths.Thumbnail != "" {
		if err := SavePNG(Thumbnail(img, thumbnailSize), paths.Thumbnail); err != nil {
			return paths, err
		}
	}
	return paths, nil
}
