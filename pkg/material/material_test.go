package material

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestMaterial_IsReflective(t *testing.T) {
	red := core.NewVec3(1, 0, 0)

	if NewMaterial(red).IsReflective() {
		t.Error("Expected plain material to be non-reflective")
	}
	if NewReflective(red, 0).IsReflective() {
		t.Error("Expected zero reflectivity to be treated as non-reflective")
	}
	if !NewReflective(red, 0.3).IsReflective() {
		t.Error("Expected reflectivity 0.3 to be reflective")
	}
}

func TestMaterial_Validate(t *testing.T) {
	tests := []struct {
		name        string
		material    Material
		expectError bool
	}{
		{"plain", NewMaterial(core.NewVec3(0.5, 0.5, 0.5)), false},
		{"fully reflective", NewReflective(core.NewVec3(1, 1, 1), 1), false},
		{"negative reflectivity", NewReflective(core.NewVec3(1, 1, 1), -0.1), true},
		{"reflectivity above one", NewReflective(core.NewVec3(1, 1, 1), 1.5), true},
		{"NaN reflectivity", NewReflective(core.NewVec3(1, 1, 1), math.NaN()), true},
		{"infinite color", NewMaterial(core.NewVec3(math.Inf(1), 0, 0)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.material.Validate()
			if tt.expectError && err == nil {
				t.Error("Expected error, got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}
