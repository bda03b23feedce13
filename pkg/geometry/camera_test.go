package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func defaultCamera() *Camera {
	return NewCamera(CameraConfig{
		Eye:           core.NewVec3(0, 0, -10),
		ViewPlaneZ:    0,
		ViewPlaneSize: 10,
	})
}

func TestCamera_ViewPlanePoint(t *testing.T) {
	camera := defaultCamera()

	tests := []struct {
		name          string
		i, j          int
		width, height int
		expected      core.Vec3
	}{
		{"top-left pixel", 0, 0, 500, 500, core.NewVec3(-5, 5, 0)},
		{"image center", 250, 250, 500, 500, core.NewVec3(0, 0, 0)},
		{"y flips downwards", 250, 375, 500, 500, core.NewVec3(0, -2.5, 0)},
		{"non-square image", 100, 25, 200, 100, core.NewVec3(0, 2.5, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := camera.ViewPlanePoint(tt.i, tt.j, tt.width, tt.height)
			if p.Subtract(tt.expected).Length() > 1e-9 {
				t.Errorf("Expected %v, got %v", tt.expected, p)
			}
		})
	}
}

func TestCamera_GetRay(t *testing.T) {
	camera := defaultCamera()

	ray := camera.GetRay(250, 250, 500, 500)
	if ray.Origin != core.NewVec3(0, 0, -10) {
		t.Errorf("Expected origin at eye, got %v", ray.Origin)
	}
	if ray.Direction.Subtract(core.NewVec3(0, 0, 1)).Length() > 1e-9 {
		t.Errorf("Expected center ray along +z, got %v", ray.Direction)
	}

	corner := camera.GetRay(0, 0, 500, 500)
	if math.Abs(corner.Direction.Length()-1) > 1e-9 {
		t.Errorf("Expected unit direction, got length %f", corner.Direction.Length())
	}
	if corner.Direction.X >= 0 || corner.Direction.Y <= 0 {
		t.Errorf("Expected top-left ray to point left and up, got %v", corner.Direction)
	}
}

func TestCameraConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		config      CameraConfig
		expectError bool
	}{
		{"valid", CameraConfig{Eye: core.NewVec3(0, 0, -10), ViewPlaneSize: 10}, false},
		{"zero size", CameraConfig{Eye: core.NewVec3(0, 0, -10), ViewPlaneSize: 0}, true},
		{"negative size", CameraConfig{Eye: core.NewVec3(0, 0, -10), ViewPlaneSize: -1}, true},
		{"eye on view plane", CameraConfig{Eye: core.NewVec3(0, 0, 0), ViewPlaneSize: 10}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.expectError && err == nil {
				t.Error("Expected error, got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}
