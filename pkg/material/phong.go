package material

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
)

// Phong holds the coefficients of the ambient + diffuse + specular lighting model
type Phong struct {
	Ambient   float64 // Uniform fill light weight
	Diffuse   float64 // Lambertian term weight
	Specular  float64 // Highlight term weight
	Shininess float64 // Highlight exponent
}

// DefaultPhong returns the coefficients used by all builtin scenes
func DefaultPhong() Phong {
	return Phong{
		Ambient:   0.1,
		Diffuse:   0.7,
		Specular:  0.2,
		Shininess: 32,
	}
}

// Shade computes the local color at a surface point lit by a single point light.
//
// normal must be unit length and viewDir must point from the surface back towards
// the viewer. The result is not clamped; the tracer clamps once per trace call.
// No shadow ray is cast, so the light is treated as unobstructed.
func (p Phong) Shade(point, normal, viewDir core.Vec3, m Material, light lights.PointLight) core.Vec3 {
	ambient := m.Color.Multiply(p.Ambient)

	lightDir := light.DirectionFrom(point)
	nDotL := normal.Dot(lightDir)
	diffuse := m.Color.MultiplyVec(light.Intensity).Multiply(p.Diffuse * clamp01(nDotL))

	// Mirror the light direction about the normal: 2(N·L)N - L
	reflected := normal.Multiply(2 * nDotL).Subtract(lightDir)
	highlight := math.Pow(clamp01(viewDir.Dot(reflected)), p.Shininess)
	specular := light.Intensity.Multiply(p.Specular * highlight)

	return ambient.Add(diffuse).Add(specular)
}

func clamp01(x float64) float64 {
	return max(0, min(1, x))
}
