package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// CameraConfig describes a pinhole camera looking through a square view plane
// perpendicular to the z axis
type CameraConfig struct {
	Eye           core.Vec3 // Eye (ray origin) position
	ViewPlaneZ    float64   // z coordinate of the view plane
	ViewPlaneSize float64   // Side length of the view plane in world units
}

// Camera generates primary rays for rendering
type Camera struct {
	config CameraConfig
}

// NewCamera creates a camera from the given configuration
func NewCamera(config CameraConfig) *Camera {
	return &Camera{config: config}
}

// GetConfig returns the camera configuration
func (c *Camera) GetConfig() CameraConfig {
	return c.config
}

// Eye returns the ray origin shared by all primary rays
func (c *Camera) Eye() core.Vec3 {
	return c.config.Eye
}

// ViewPlanePoint maps pixel (i, j) of a width x height image onto the view plane.
// Row 0 is the top of the image while world y grows upwards.
func (c *Camera) ViewPlanePoint(i, j, width, height int) core.Vec3 {
	size := c.config.ViewPlaneSize
	x := (float64(i)/float64(width) - 0.5) * size
	y := (0.5 - float64(j)/float64(height)) * size
	return core.NewVec3(x, y, c.config.ViewPlaneZ)
}

// GetRay returns the primary ray through pixel (i, j)
func (c *Camera) GetRay(i, j, width, height int) core.Ray {
	target := c.ViewPlanePoint(i, j, width, height)
	direction := target.Subtract(c.config.Eye).Normalize()
	return core.NewRay(c.config.Eye, direction)
}

// Validate checks that the view plane is usable
func (c CameraConfig) Validate() error {
	if !(c.ViewPlaneSize > 0) || math.IsInf(c.ViewPlaneSize, 0) {
		return fmt.Errorf("view plane size must be positive, got %v", c.ViewPlaneSize)
	}
	if c.Eye.Z == c.ViewPlaneZ {
		return fmt.Errorf("eye z (%v) must not lie on the view plane", c.Eye.Z)
	}
	return nil
}
