package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	GeometryType string                 `json:"geometryType"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	Color        [3]float64             `json:"color"` // Final traced color of the pixel
	Properties   map[string]interface{} `json:"properties"`
}

// extractMaterialInfo describes a surface material
func extractMaterialInfo(mat material.Material) map[string]interface{} {
	return map[string]interface{}{
		"color": fmt.Sprintf("#%02x%02x%02x",
			int(mat.Color.X*255), int(mat.Color.Y*255), int(mat.Color.Z*255)),
		"rgb":          vecToArray(mat.Color),
		"reflectivity": mat.Reflectivity,
		"reflective":   mat.IsReflective(),
	}
}

// extractGeometryInfo extracts detailed geometry information
func extractGeometryInfo(primitive geometry.Primitive) map[string]interface{} {
	properties := make(map[string]interface{})

	switch geom := primitive.(type) {
	case *geometry.Sphere:
		properties["center"] = vecToArray(geom.Center)
		properties["radius"] = geom.Radius
	case *geometry.Plane:
		properties["point"] = vecToArray(geom.Point)
		properties["normal"] = vecToArray(geom.Normal)
		properties["bound"] = geom.Bound
	case *geometry.Ellipsoid:
		properties["center"] = vecToArray(geom.Center)
		properties["axes"] = vecToArray(geom.Axes)
	}

	return properties
}

// handleInspect casts the primary ray through a pixel and reports what it hits
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	inspectReq := &RenderRequest{}
	if err := s.parseCommonSceneParams(r, inspectReq); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid scene parameters: " + err.Error()})
		return
	}

	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid x coordinate"})
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid y coordinate"})
		return
	}
	if pixelX < 0 || pixelX >= inspectReq.Width || pixelY < 0 || pixelY >= inspectReq.Height {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Pixel coordinates out of bounds"})
		return
	}

	sceneObj, err := s.createScene(inspectReq)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Unknown scene: " + inspectReq.Scene})
		return
	}

	rt, err := renderer.NewRaytracer(sceneObj, inspectReq.renderConfig())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	ray, hit, isHit := rt.InspectPixel(pixelX, pixelY)
	color := rt.RenderPixel(pixelX, pixelY)
	if !isHit {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false, Color: vecToArray(color)})
		return
	}

	point := ray.At(hit.T)
	response := InspectResponse{
		Hit:          true,
		GeometryType: string(hit.Primitive.Kind()),
		Point:        vecToArray(point),
		Normal:       vecToArray(hit.Primitive.NormalAt(point)),
		Distance:     hit.T,
		Color:        vecToArray(color),
		Properties: map[string]interface{}{
			"material": extractMaterialInfo(hit.Primitive.GetMaterial()),
			"geometry": extractGeometryInfo(hit.Primitive),
		},
	}

	writeJSON(w, http.StatusOK, response)
}
