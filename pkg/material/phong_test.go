package material

import (
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
)

func TestDefaultPhong_Coefficients(t *testing.T) {
	p := DefaultPhong()
	if p.Ambient != 0.1 || p.Diffuse != 0.7 || p.Specular != 0.2 || p.Shininess != 32 {
		t.Errorf("Unexpected default coefficients: %+v", p)
	}
}

func TestPhong_Shade(t *testing.T) {
	phong := DefaultPhong()
	red := NewMaterial(core.NewVec3(1, 0, 0))
	point := core.NewVec3(0, 0, 0)
	normal := core.NewVec3(0, 0, -1)
	viewDir := core.NewVec3(0, 0, -1)

	tests := []struct {
		name     string
		light    lights.PointLight
		expected core.Vec3
	}{
		{
			// Full diffuse plus a full white highlight
			name:     "light behind the viewer",
			light:    lights.NewWhitePointLight(core.NewVec3(0, 0, -10)),
			expected: core.NewVec3(1.0, 0.2, 0.2),
		},
		{
			name:     "light behind the surface",
			light:    lights.NewWhitePointLight(core.NewVec3(0, 0, 10)),
			expected: core.NewVec3(0.1, 0, 0),
		},
		{
			// Light grazes the surface: no diffuse, and the mirrored light
			// direction is perpendicular to the view direction.
			name:     "grazing light",
			light:    lights.NewWhitePointLight(core.NewVec3(10, 0, 0)),
			expected: core.NewVec3(0.1, 0, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := phong.Shade(point, normal, viewDir, red, tt.light)
			if result.Subtract(tt.expected).Length() > 1e-9 {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestPhong_ShadeIsNotClamped(t *testing.T) {
	phong := Phong{Ambient: 1, Diffuse: 1, Specular: 1, Shininess: 1}
	white := NewMaterial(core.NewVec3(1, 1, 1))
	light := lights.NewWhitePointLight(core.NewVec3(0, 0, -10))

	result := phong.Shade(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1), core.NewVec3(0, 0, -1), white, light)
	if result.X <= 1 {
		t.Errorf("Expected unclamped channel above 1, got %v", result)
	}
}

func TestPhong_DiffuseScalesWithAngle(t *testing.T) {
	phong := Phong{Diffuse: 1}
	white := NewMaterial(core.NewVec3(1, 1, 1))
	normal := core.NewVec3(0, 1, 0)

	// Light at 60 degrees from the normal gives cos = 0.5
	light := lights.NewWhitePointLight(core.NewVec3(1.7320508075688772, 1, 0))
	result := phong.Shade(core.NewVec3(0, 0, 0), normal, normal, white, light)

	if result.Subtract(core.NewVec3(0.5, 0.5, 0.5)).Length() > 1e-9 {
		t.Errorf("Expected diffuse 0.5, got %v", result)
	}
}
