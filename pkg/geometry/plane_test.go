package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestPlane_Intersect(t *testing.T) {
	ground := NewPlane(core.NewVec3(0, -4.5, 0), core.NewVec3(0, 1, 0), grey)

	tests := []struct {
		name      string
		origin    core.Vec3
		direction core.Vec3
		expectHit bool
		expectedT float64
	}{
		{"straight down", core.NewVec3(0, 5, 0), core.NewVec3(0, -1, 0), true, 9.5},
		{"from below", core.NewVec3(0, -10, 0), core.NewVec3(0, 1, 0), true, 5.5},
		{"parallel", core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), false, 0},
		{"nearly parallel", core.NewVec3(0, 0, 0), core.NewVec3(1, -1e-8, 0), false, 0},
		{"plane behind origin", core.NewVec3(0, -10, 0), core.NewVec3(0, -1, 0), false, 0},
		{"outside x bound", core.NewVec3(25, 5, 0), core.NewVec3(0, -1, 0), false, 0},
		{"outside z bound", core.NewVec3(0, 5, -21), core.NewVec3(0, -1, 0), false, 0},
		{"on the bound edge", core.NewVec3(20, 5, -20), core.NewVec3(0, -1, 0), true, 9.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tHit, isHit := ground.Intersect(core.NewRay(tt.origin, tt.direction))
			if isHit != tt.expectHit {
				t.Fatalf("Expected hit=%t, got hit=%t (t=%f)", tt.expectHit, isHit, tHit)
			}
			if isHit && math.Abs(tHit-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, tHit)
			}
		})
	}
}

func TestPlane_CustomBound(t *testing.T) {
	plane := NewBoundedPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), 30, grey)

	if _, isHit := plane.Intersect(core.NewRay(core.NewVec3(25, 5, 0), core.NewVec3(0, -1, 0))); !isHit {
		t.Error("Expected hit inside the widened bound")
	}
}

func TestPlane_NormalIsStored(t *testing.T) {
	plane := NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 3, 0), grey)

	if plane.Normal != core.NewVec3(0, 1, 0) {
		t.Errorf("Expected normal to be normalized, got %v", plane.Normal)
	}
	if plane.NormalAt(core.NewVec3(5, 0, 5)) != plane.Normal {
		t.Errorf("Expected NormalAt to return the stored normal")
	}
}

func TestPlane_Validate(t *testing.T) {
	if err := NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 0), grey).Validate(); !errors.Is(err, ErrInvalidPrimitive) {
		t.Errorf("Expected ErrInvalidPrimitive for zero normal, got %v", err)
	}
	if err := NewBoundedPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), 0, grey).Validate(); !errors.Is(err, ErrInvalidPrimitive) {
		t.Errorf("Expected ErrInvalidPrimitive for zero bound, got %v", err)
	}
	if err := NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), grey).Validate(); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
}
