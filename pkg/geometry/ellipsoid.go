package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Ellipsoid is an axis-aligned ellipsoid with per-axis radii
type Ellipsoid struct {
	Center   core.Vec3
	Axes     core.Vec3 // Radii along x, y and z
	Material material.Material
}

// NewEllipsoid creates a new ellipsoid
func NewEllipsoid(center, axes core.Vec3, mat material.Material) *Ellipsoid {
	return &Ellipsoid{
		Center:   center,
		Axes:     axes,
		Material: mat,
	}
}

// Intersect scales the ray into the ellipsoid's object space, where the surface
// is the unit sphere. The per-axis scale is linear, so t carries over unchanged.
func (e *Ellipsoid) Intersect(ray core.Ray) (float64, bool) {
	origin := ray.Origin.Subtract(e.Center).DivideVec(e.Axes)
	direction := ray.Direction.DivideVec(e.Axes)
	return intersectSphere(origin, direction, core.Vec3{}, 1)
}

// NormalAt returns the normal recovered through the same object-space scaling
func (e *Ellipsoid) NormalAt(point core.Vec3) core.Vec3 {
	return point.Subtract(e.Center).DivideVec(e.Axes).Normalize()
}

// GetMaterial returns the ellipsoid's material
func (e *Ellipsoid) GetMaterial() material.Material {
	return e.Material
}

// Kind returns KindEllipsoid
func (e *Ellipsoid) Kind() Kind {
	return KindEllipsoid
}

// Validate checks that every radius is positive
func (e *Ellipsoid) Validate() error {
	for _, r := range []float64{e.Axes.X, e.Axes.Y, e.Axes.Z} {
		if !(r > 0) || math.IsInf(r, 0) {
			return fmt.Errorf("%w: ellipsoid axes must be positive, got %v", ErrInvalidPrimitive, e.Axes)
		}
	}
	if err := e.Material.Validate(); err != nil {
		return fmt.Errorf("%w: ellipsoid material: %v", ErrInvalidPrimitive, err)
	}
	return nil
}

func (e *Ellipsoid) sealed() {}
