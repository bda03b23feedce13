package geometry

import (
	"errors"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Kind tags the concrete variant of a Primitive
type Kind string

const (
	KindSphere    Kind = "sphere"
	KindPlane     Kind = "plane"
	KindEllipsoid Kind = "ellipsoid"
)

// ErrInvalidPrimitive is wrapped by every primitive validation failure
var ErrInvalidPrimitive = errors.New("invalid primitive")

// Primitive is a surface that can be intersected by rays.
// The set of primitives is closed: only Sphere, Plane and Ellipsoid implement it.
type Primitive interface {
	// Intersect returns the nearest strictly positive parameter t where the ray
	// meets the surface, or false when there is no such hit.
	Intersect(ray core.Ray) (float64, bool)

	// NormalAt returns the unit outward normal at a point on the surface
	NormalAt(point core.Vec3) core.Vec3

	// GetMaterial returns the surface material
	GetMaterial() material.Material

	// Kind returns the variant tag
	Kind() Kind

	// Validate reports construction errors such as non-positive radii
	Validate() error

	sealed()
}
