package material

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Material describes how a surface responds to light.
// A Reflectivity of zero means the surface is shaded locally only.
type Material struct {
	Color        core.Vec3 // Base RGB color, channels nominally in [0,1]
	Reflectivity float64   // Mirror blend weight in [0,1]
}

// NewMaterial creates a purely locally shaded material
func NewMaterial(color core.Vec3) Material {
	return Material{Color: color}
}

// NewReflective creates a material that blends local shading with a mirror reflection
func NewReflective(color core.Vec3, reflectivity float64) Material {
	return Material{Color: color, Reflectivity: reflectivity}
}

// IsReflective reports whether a recursive mirror ray should be traced
func (m Material) IsReflective() bool {
	return m.Reflectivity > 0
}

// Validate checks that the material parameters are usable
func (m Material) Validate() error {
	for _, c := range []float64{m.Color.X, m.Color.Y, m.Color.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return fmt.Errorf("color %v has a non-finite channel", m.Color)
		}
	}
	if math.IsNaN(m.Reflectivity) || m.Reflectivity < 0 || m.Reflectivity > 1 {
		return fmt.Errorf("reflectivity must be in [0,1], got %v", m.Reflectivity)
	}
	return nil
}
