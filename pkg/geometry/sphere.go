package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material material.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, mat material.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: mat,
	}
}

// Intersect tests if a ray intersects with the sphere
func (s *Sphere) Intersect(ray core.Ray) (float64, bool) {
	return intersectSphere(ray.Origin, ray.Direction, s.Center, s.Radius)
}

// intersectSphere solves a t² + b t + c = 0 and returns the smallest positive root
func intersectSphere(origin, direction, center core.Vec3, radius float64) (float64, bool) {
	// Vector from sphere center to ray origin
	oc := origin.Subtract(center)

	a := direction.Dot(direction)
	b := 2.0 * oc.Dot(direction)
	c := oc.Dot(oc) - radius*radius

	discriminant := b*b - 4*a*c

	// Negative or NaN discriminant (e.g. from overflowing squares) means no hit
	if !(discriminant >= 0) || a == 0 {
		return 0, false
	}

	sqrtD := math.Sqrt(discriminant)
	t1 := (-b - sqrtD) / (2 * a)
	t2 := (-b + sqrtD) / (2 * a)

	root := math.Inf(1)
	if t1 > 0 {
		root = t1
	}
	if t2 > 0 && t2 < root {
		root = t2
	}
	if math.IsInf(root, 1) {
		return 0, false
	}
	return root, true
}

// NormalAt returns the outward normal (from center to the surface point)
func (s *Sphere) NormalAt(point core.Vec3) core.Vec3 {
	return point.Subtract(s.Center).Normalize()
}

// GetMaterial returns the sphere's material
func (s *Sphere) GetMaterial() material.Material {
	return s.Material
}

// Kind returns KindSphere
func (s *Sphere) Kind() Kind {
	return KindSphere
}

// Validate checks the radius and material
func (s *Sphere) Validate() error {
	if !(s.Radius > 0) || math.IsInf(s.Radius, 0) {
		return fmt.Errorf("%w: sphere radius must be positive, got %v", ErrInvalidPrimitive, s.Radius)
	}
	if err := s.Material.Validate(); err != nil {
		return fmt.Errorf("%w: sphere material: %v", ErrInvalidPrimitive, err)
	}
	return nil
}

func (s *Sphere) sealed() {}
