package renderer

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// reflectionBias offsets reflected ray origins to avoid re-hitting the same surface
const reflectionBias = 1e-4

// Scene interface to avoid circular imports
type Scene interface {
	GetCamera() *geometry.Camera
	GetPrimitives() []geometry.Primitive
	GetLight() lights.PointLight
	GetBackground() core.Vec3
	GetShading() material.Phong
}

// Hit records the nearest intersection found along a ray
type Hit struct {
	T         float64
	Primitive geometry.Primitive
}

// traceCounters accumulates per-tile statistics; never shared between workers
type traceCounters struct {
	rays        int
	primaryHits int
}

// Raytracer computes pixel colors for a read-only scene.
// All methods are safe for concurrent use.
type Raytracer struct {
	scene  Scene
	width  int
	height int
	config RenderConfig
}

// NewRaytracer creates a new raytracer after validating the configuration
func NewRaytracer(scene Scene, config RenderConfig) (*Raytracer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Raytracer{
		scene:  scene,
		width:  config.Width,
		height: config.Height,
		config: config,
	}, nil
}

// GetConfig returns the render configuration
func (rt *Raytracer) GetConfig() RenderConfig {
	return rt.config
}

// hitWorld returns the nearest hit over all primitives.
// Ties keep the first primitive in scene order.
func (rt *Raytracer) hitWorld(ray core.Ray) (Hit, bool) {
	var closest Hit
	hitAnything := false

	for _, p := range rt.scene.GetPrimitives() {
		if t, isHit := p.Intersect(ray); isHit && (!hitAnything || t < closest.T) {
			closest = Hit{T: t, Primitive: p}
			hitAnything = true
		}
	}

	return closest, hitAnything
}

// Trace returns the clamped color seen along ray, following at most depth mirror bounces
func (rt *Raytracer) Trace(ray core.Ray, depth int) core.Vec3 {
	return rt.traceRecursive(ray, depth, nil)
}

// traceRecursive returns the color for a given ray
func (rt *Raytracer) traceRecursive(ray core.Ray, depth int, counters *traceCounters) core.Vec3 {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}
	if counters != nil {
		counters.rays++
	}

	hit, isHit := rt.hitWorld(ray)
	if !isHit {
		return rt.scene.GetBackground().Clamp(0, 1)
	}
	return rt.shadeHit(ray, hit, depth, counters)
}

// shadeHit combines local Phong shading with the mirror contribution at hit
func (rt *Raytracer) shadeHit(ray core.Ray, hit Hit, depth int, counters *traceCounters) core.Vec3 {
	point := ray.At(hit.T)
	normal := hit.Primitive.NormalAt(point)
	viewDir := ray.Direction.Negate().Normalize()
	mat := hit.Primitive.GetMaterial()

	color := rt.scene.GetShading().Shade(point, normal, viewDir, mat, rt.scene.GetLight())

	if mat.IsReflective() {
		reflectedDir := ray.Direction.Reflect(normal)
		reflectedRay := core.NewRay(point.Add(reflectedDir.Multiply(reflectionBias)), reflectedDir)
		reflectedColor := rt.traceRecursive(reflectedRay, depth-1, counters)
		color = color.Lerp(reflectedColor, mat.Reflectivity)
	}

	return color.Clamp(0, 1)
}

// RenderPixel traces the primary ray through pixel (i, j)
func (rt *Raytracer) RenderPixel(i, j int) core.Vec3 {
	return rt.renderPixel(i, j, &traceCounters{})
}

// renderPixel is traceRecursive for a primary ray, additionally counting primary hits
func (rt *Raytracer) renderPixel(i, j int, counters *traceCounters) core.Vec3 {
	ray := rt.scene.GetCamera().GetRay(i, j, rt.width, rt.height)
	depth := rt.config.MaxDepth
	if depth <= 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}
	counters.rays++

	hit, isHit := rt.hitWorld(ray)
	if !isHit {
		return rt.scene.GetBackground().Clamp(0, 1)
	}
	counters.primaryHits++
	return rt.shadeHit(ray, hit, depth, counters)
}

// InspectPixel returns the primary ray through pixel (i, j) and its nearest hit, if any
func (rt *Raytracer) InspectPixel(i, j int) (core.Ray, Hit, bool) {
	ray := rt.scene.GetCamera().GetRay(i, j, rt.width, rt.height)
	hit, isHit := rt.hitWorld(ray)
	return ray, hit, isHit
}
