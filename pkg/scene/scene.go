package scene

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// ErrInvalidScene is wrapped by scene-level validation failures
var ErrInvalidScene = errors.New("invalid scene")

// Scene contains all the elements needed for rendering.
// A scene is built once and must not be mutated while a render is running.
type Scene struct {
	Name         string
	Primitives   []geometry.Primitive // Objects in the scene, in intersection priority order
	Light        lights.PointLight    // The single point light
	Camera       *geometry.Camera
	CameraConfig geometry.CameraConfig
	Background   core.Vec3      // Color returned for rays that escape the scene
	Shading      material.Phong // Local lighting coefficients
}

// New creates and validates a scene
func New(name string, primitives []geometry.Primitive, light lights.PointLight, cameraConfig geometry.CameraConfig) (*Scene, error) {
	s := &Scene{
		Name:         name,
		Primitives:   primitives,
		Light:        light,
		Camera:       geometry.NewCamera(cameraConfig),
		CameraConfig: cameraConfig,
		Background:   core.Vec3{},
		Shading:      material.DefaultPhong(),
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// DefaultCameraConfig returns the eye at (0,0,-10) looking through a 10x10 view plane at z=0
func DefaultCameraConfig() geometry.CameraConfig {
	return geometry.CameraConfig{
		Eye:           core.NewVec3(0, 0, -10),
		ViewPlaneZ:    0,
		ViewPlaneSize: 10,
	}
}

// MergeCameraConfig applies non-zero override values on top of base
func MergeCameraConfig(base, override geometry.CameraConfig) geometry.CameraConfig {
	result := base
	if override.Eye != (core.Vec3{}) {
		result.Eye = override.Eye
	}
	if override.ViewPlaneZ != 0 {
		result.ViewPlaneZ = override.ViewPlaneZ
	}
	if override.ViewPlaneSize != 0 {
		result.ViewPlaneSize = override.ViewPlaneSize
	}
	return result
}

// ApplyCameraOverride replaces the non-zero fields of override in the camera
// configuration and revalidates the scene
func (s *Scene) ApplyCameraOverride(override geometry.CameraConfig) error {
	s.CameraConfig = MergeCameraConfig(s.CameraConfig, override)
	s.Camera = geometry.NewCamera(s.CameraConfig)
	return s.Validate()
}

// Validate rejects scenes that cannot be rendered
func (s *Scene) Validate() error {
	if s.Camera == nil {
		return fmt.Errorf("%w: scene %q has no camera", ErrInvalidScene, s.Name)
	}
	if err := s.CameraConfig.Validate(); err != nil {
		return fmt.Errorf("%w: scene %q camera: %v", ErrInvalidScene, s.Name, err)
	}
	for _, c := range []float64{s.Light.Intensity.X, s.Light.Intensity.Y, s.Light.Intensity.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) || c < 0 {
			return fmt.Errorf("%w: scene %q light intensity %v must be finite and non-negative", ErrInvalidScene, s.Name, s.Light.Intensity)
		}
	}
	for i, p := range s.Primitives {
		if p == nil {
			return fmt.Errorf("%w: scene %q primitive %d is nil", ErrInvalidScene, s.Name, i)
		}
		if err := p.Validate(); err != nil {
			return fmt.Errorf("scene %q primitive %d (%s): %w", s.Name, i, p.Kind(), err)
		}
	}
	return nil
}

// GetCamera returns the scene camera
func (s *Scene) GetCamera() *geometry.Camera {
	return s.Camera
}

// GetPrimitives returns the primitives in intersection priority order
func (s *Scene) GetPrimitives() []geometry.Primitive {
	return s.Primitives
}

// GetLight returns the scene's point light
func (s *Scene) GetLight() lights.PointLight {
	return s.Light
}

// GetBackground returns the color for rays that hit nothing
func (s *Scene) GetBackground() core.Vec3 {
	return s.Background
}

// GetShading returns the lighting model coefficients
func (s *Scene) GetShading() material.Phong {
	return s.Shading
}

// GetPrimitiveCount returns the number of primitives in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Primitives)
}
