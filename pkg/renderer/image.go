package renderer

import (
	"image"
	"image/color"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Image is a row-major buffer of linear RGB colors: pixel (x, y) is Pix[y*Width+x]
type Image struct {
	Width  int
	Height int
	Pix    []core.Vec3
}

// NewImage creates a black image
func NewImage(width, height int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Pix:    make([]core.Vec3, width*height),
	}
}

// At returns the color at pixel (x, y)
func (img *Image) At(x, y int) core.Vec3 {
	return img.Pix[y*img.Width+x]
}

// Set stores the color at pixel (x, y)
func (img *Image) Set(x, y int, c core.Vec3) {
	img.Pix[y*img.Width+x] = c
}

// Bounds returns the image rectangle
func (img *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, img.Width, img.Height)
}

// ToRGBA converts the image to 8-bit RGBA
func (img *Image) ToRGBA() *image.RGBA {
	return img.SubImageRGBA(img.Bounds())
}

// SubImageRGBA converts the pixels inside bounds to an RGBA image whose origin is bounds.Min
func (img *Image) SubImageRGBA(bounds image.Rectangle) *image.RGBA {
	bounds = bounds.Intersect(img.Bounds())
	out := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			out.SetRGBA(x-bounds.Min.X, y-bounds.Min.Y, vec3ToColor(img.At(x, y)))
		}
	}

	return out
}

// vec3ToColor converts a Vec3 color to RGBA with clamping
func vec3ToColor(colorVec core.Vec3) color.RGBA {
	colorVec = colorVec.Clamp(0.0, 1.0)

	return color.RGBA{
		R: uint8(255*colorVec.X + 0.5),
		G: uint8(255*colorVec.Y + 0.5),
		B: uint8(255*colorVec.Z + 0.5),
		A: 255,
	}
}
