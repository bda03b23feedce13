package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// oklchToRGB converts OKLCH color values to RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Vec3 {
	// Convert hue from degrees to radians
	hRad := h * math.Pi / 180.0

	// Convert from OKLCH to OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// Convert from OKLAB to linear RGB
	// Using simplified approximation for OKLAB to RGB conversion
	// This is not perfectly accurate but good enough for our purposes

	// First convert to LMS
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b

	// Cube the values
	l_ = l_ * l_ * l_
	m_ = m_ * m_ * m_
	s_ = s_ * s_ * s_

	// Convert LMS to linear RGB
	r := +4.0767416621*l_ - 3.3077115913*m_ + 0.2309699292*s_
	g := -1.2684380046*l_ + 2.6097574011*m_ - 0.3413193965*s_
	blue := -0.0041960863*l_ - 0.7034186147*m_ + 1.7076147010*s_

	// Clamp to [0, 1] range
	r = math.Max(0, math.Min(1, r))
	g = math.Max(0, math.Min(1, g))
	blue = math.Max(0, math.Min(1, blue))

	return core.NewVec3(r, g, blue)
}

// NewSphereGridScene creates a 5x5 grid of mirror-like spheres with rainbow hues above a
// ground plane. The grid sits in front of the camera so reflections chain between neighbours.
func NewSphereGridScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	cameraConfig := geometry.CameraConfig{
		Eye:           core.NewVec3(0, 3, -14),
		ViewPlaneZ:    -4,
		ViewPlaneSize: 12,
	}
	if len(cameraOverrides) > 0 {
		cameraConfig = MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}

	const gridSize = 5
	const spacing = 2.5
	const radius = 0.9

	primitives := make([]geometry.Primitive, 0, gridSize*gridSize+1)
	for row := 0; row < gridSize; row++ {
		for col := 0; col < gridSize; col++ {
			// Sweep the hue across the grid; lightness rises towards the back rows
			hue := float64(row*gridSize+col) / float64(gridSize*gridSize) * 360.0
			lightness := 0.6 + 0.05*float64(row)
			color := oklchToRGB(lightness, 0.15, hue)

			// Alternate reflectivity so the grid mixes matte and mirror surfaces
			reflectivity := 0.15 + 0.15*float64((row+col)%3)

			center := core.NewVec3(
				(float64(col)-float64(gridSize-1)/2)*spacing,
				radius-2,
				float64(row)*spacing,
			)
			primitives = append(primitives, geometry.NewSphere(center, radius, material.NewReflective(color, reflectivity)))
		}
	}

	ground := material.NewReflective(core.NewVec3(0.4, 0.4, 0.45), 0.25)
	primitives = append(primitives, geometry.NewPlane(core.NewVec3(0, -2, 0), core.NewVec3(0, 1, 0), ground))

	return &Scene{
		Name:         "spheregrid",
		Primitives:   primitives,
		Light:        lights.NewWhitePointLight(core.NewVec3(-8, 12, -12)),
		Camera:       geometry.NewCamera(cameraConfig),
		CameraConfig: cameraConfig,
		Shading:      material.DefaultPhong(),
	}
}
