package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewDefaultScene creates three reflective spheres, a grey ground plane and a yellow ellipsoid
func NewDefaultScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	cameraConfig := DefaultCameraConfig()
	if len(cameraOverrides) > 0 {
		cameraConfig = MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}

	red := material.NewReflective(core.NewVec3(1, 0, 0), 0.3)
	green := material.NewReflective(core.NewVec3(0, 1, 0), 0.4)
	blue := material.NewReflective(core.NewVec3(0, 0, 1), 0.5)
	grey := material.NewMaterial(core.NewVec3(0.5, 0.5, 0.5))
	yellow := material.NewReflective(core.NewVec3(1, 1, 0), 0.2)

	primitives := []geometry.Primitive{
		geometry.NewSphere(core.NewVec3(-3, 0, 5), 1.5, red),
		geometry.NewSphere(core.NewVec3(2, -1, 7), 2, green),
		geometry.NewSphere(core.NewVec3(1, 2, 10), 1, blue),
		geometry.NewPlane(core.NewVec3(0, -4.5, 0), core.NewVec3(0, 1, 0), grey),
		geometry.NewEllipsoid(core.NewVec3(-4, 2, 15), core.NewVec3(1.5, 2.0, 1.0), yellow),
	}

	return &Scene{
		Name:         "default",
		Primitives:   primitives,
		Light:        lights.NewWhitePointLight(core.NewVec3(10, 10, -10)),
		Camera:       geometry.NewCamera(cameraConfig),
		CameraConfig: cameraConfig,
		Background:   core.Vec3{},
		Shading:      material.DefaultPhong(),
	}
}

// NewSingleSphereScene creates one matte red sphere in front of the default camera
func NewSingleSphereScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	cameraConfig := DefaultCameraConfig()
	if len(cameraOverrides) > 0 {
		cameraConfig = MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}

	return &Scene{
		Name: "single-sphere",
		Primitives: []geometry.Primitive{
			geometry.NewSphere(core.NewVec3(0, 0, 5), 1, material.NewMaterial(core.NewVec3(1, 0, 0))),
		},
		Light:        lights.NewWhitePointLight(core.NewVec3(10, 10, -10)),
		Camera:       geometry.NewCamera(cameraConfig),
		CameraConfig: cameraConfig,
		Shading:      material.DefaultPhong(),
	}
}

// NewEmptyScene creates a scene with a light and camera but no primitives
func NewEmptyScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	cameraConfig := DefaultCameraConfig()
	if len(cameraOverrides) > 0 {
		cameraConfig = MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}

	return &Scene{
		Name:         "empty",
		Primitives:   []geometry.Primitive{},
		Light:        lights.NewWhitePointLight(core.NewVec3(10, 10, -10)),
		Camera:       geometry.NewCamera(cameraConfig),
		CameraConfig: cameraConfig,
		Shading:      material.DefaultPhong(),
	}
}
