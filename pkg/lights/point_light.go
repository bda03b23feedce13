package lights

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// PointLight is an infinitesimal light source emitting equally in all directions
type PointLight struct {
	Position  core.Vec3 // World-space position of the light
	Intensity core.Vec3 // RGB intensity
}

// NewPointLight creates a new point light
func NewPointLight(position, intensity core.Vec3) PointLight {
	return PointLight{
		Position:  position,
		Intensity: intensity,
	}
}

// NewWhitePointLight creates a point light with unit white intensity
func NewWhitePointLight(position core.Vec3) PointLight {
	return NewPointLight(position, core.NewVec3(1, 1, 1))
}

// DirectionFrom returns the unit direction from point towards the light.
// If the point coincides with the light the zero vector is returned.
func (l PointLight) DirectionFrom(point core.Vec3) core.Vec3 {
	return l.Position.Subtract(point).Normalize()
}
