package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

const (
	// DefaultPlaneBound is the half-extent in x and z used when none is given
	DefaultPlaneBound = 20.0

	// parallelEpsilon rejects rays nearly parallel to the plane
	parallelEpsilon = 1e-6
)

// Plane is a plane defined by a point and normal, limited to |x| <= Bound and |z| <= Bound
type Plane struct {
	Point    core.Vec3         // A point on the plane
	Normal   core.Vec3         // Unit normal vector
	Bound    float64           // Half-extent of the accepted region in x and z
	Material material.Material // Material of the plane
}

// NewPlane creates a plane with the default ±20 extent
func NewPlane(point, normal core.Vec3, mat material.Material) *Plane {
	return NewBoundedPlane(point, normal, DefaultPlaneBound, mat)
}

// NewBoundedPlane creates a plane with a custom extent
func NewBoundedPlane(point, normal core.Vec3, bound float64, mat material.Material) *Plane {
	return &Plane{
		Point:    point,
		Normal:   normal.Normalize(), // Ensure normal is normalized
		Bound:    bound,
		Material: mat,
	}
}

// Intersect tests if a ray intersects with the bounded plane
func (p *Plane) Intersect(ray core.Ray) (float64, bool) {
	denominator := p.Normal.Dot(ray.Direction)

	// Ray is parallel to the plane
	if math.Abs(denominator) < parallelEpsilon {
		return 0, false
	}

	// t = (point_on_plane - ray_origin) · normal / (normal · ray_direction)
	t := p.Point.Subtract(ray.Origin).Dot(p.Normal) / denominator
	if !(t > 0) {
		return 0, false
	}

	hitPoint := ray.At(t)
	if hitPoint.X < -p.Bound || hitPoint.X > p.Bound || hitPoint.Z < -p.Bound || hitPoint.Z > p.Bound {
		return 0, false
	}

	return t, true
}

// NormalAt returns the stored plane normal regardless of the point
func (p *Plane) NormalAt(core.Vec3) core.Vec3 {
	return p.Normal
}

// GetMaterial returns the plane's material
func (p *Plane) GetMaterial() material.Material {
	return p.Material
}

// Kind returns KindPlane
func (p *Plane) Kind() Kind {
	return KindPlane
}

// Validate checks the normal, the bound and the material
func (p *Plane) Validate() error {
	if p.Normal.LengthSquared() == 0 {
		return fmt.Errorf("%w: plane normal must be non-zero", ErrInvalidPrimitive)
	}
	if !(p.Bound > 0) {
		return fmt.Errorf("%w: plane bound must be positive, got %v", ErrInvalidPrimitive, p.Bound)
	}
	if err := p.Material.Validate(); err != nil {
		return fmt.Errorf("%w: plane material: %v", ErrInvalidPrimitive, err)
	}
	return nil
}

func (p *Plane) sealed() {}
