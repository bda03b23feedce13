package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Request parameter limits
const (
	minDimension = 16
	maxDimension = 2000
	maxDepth     = 10
	maxViewSize  = 100.0
)

// Server handles web requests for the raytracer
type Server struct {
	port      int
	staticDir string
}

// NewServer creates a new web server. Static files are served from staticDir when it is set.
func NewServer(port int, staticDir string) *Server {
	return &Server{port: port, staticDir: staticDir}
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene    string  `json:"scene"`    // Builtin scene name
	Width    int     `json:"width"`    // Image width
	Height   int     `json:"height"`   // Image height
	MaxDepth int     `json:"maxDepth"` // Reflection recursion bound
	ViewSize float64 `json:"viewSize"` // View plane size override, 0 keeps the scene's
}

// Handler returns the HTTP routes served by s
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	if s.staticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(s.staticDir)))
	}

	// API endpoints
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/image", s.handleImage)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/scene-config", s.handleSceneConfig)

	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the builtin scenes by group
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scene.ListAllScenes())
}

// parseCommonSceneParams parses the scene and image parameters shared by all endpoints
func (s *Server) parseCommonSceneParams(r *http.Request, req *RenderRequest) error {
	query := r.URL.Query()

	req.Scene = query.Get("scene")
	if req.Scene == "" {
		req.Scene = "default"
	}

	defaults := renderer.DefaultRenderConfig()

	var err error
	if req.Width, err = parseIntParam(query, "width", defaults.Width, minDimension, maxDimension); err != nil {
		return err
	}
	if req.Height, err = parseIntParam(query, "height", defaults.Height, minDimension, maxDimension); err != nil {
		return err
	}
	if req.MaxDepth, err = parseIntParam(query, "depth", defaults.MaxDepth, 0, maxDepth); err != nil {
		return err
	}
	if req.ViewSize, err = parseFloatParam(query, "viewSize", 0, 0, maxViewSize); err != nil {
		return err
	}
	return nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %f and %f, got: %f", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// createScene resolves the requested scene and applies the view plane override
func (s *Server) createScene(req *RenderRequest) (*scene.Scene, error) {
	sceneObj, err := scene.Create(req.Scene)
	if err != nil {
		return nil, err
	}
	if req.ViewSize > 0 {
		override := sceneObj.CameraConfig
		override.ViewPlaneSize = req.ViewSize
		if err := sceneObj.ApplyCameraOverride(override); err != nil {
			return nil, err
		}
	}
	return sceneObj, nil
}

// renderConfig converts a request into a renderer configuration
func (req *RenderRequest) renderConfig() renderer.RenderConfig {
	config := renderer.DefaultRenderConfig()
	config.Width = req.Width
	config.Height = req.Height
	config.MaxDepth = req.MaxDepth
	return config
}

// handleSceneConfig returns the camera, light and request limits for a scene
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	req := &RenderRequest{}
	if err := s.parseCommonSceneParams(r, req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Unknown scene: " + req.Scene})
		return
	}

	camera := sceneObj.GetCamera().GetConfig()
	light := sceneObj.GetLight()
	defaults := renderer.DefaultRenderConfig()

	response := map[string]interface{}{
		"scene":          sceneObj.Name,
		"primitiveCount": sceneObj.GetPrimitiveCount(),
		"camera": map[string]interface{}{
			"eye":           vecToArray(camera.Eye),
			"viewPlaneZ":    camera.ViewPlaneZ,
			"viewPlaneSize": camera.ViewPlaneSize,
		},
		"light": map[string]interface{}{
			"position":  vecToArray(light.Position),
			"intensity": vecToArray(light.Intensity),
		},
		"defaults": map[string]interface{}{
			"width":    defaults.Width,
			"height":   defaults.Height,
			"maxDepth": defaults.MaxDepth,
		},
		"limits": map[string]interface{}{
			"width":    map[string]int{"min": minDimension, "max": maxDimension},
			"height":   map[string]int{"min": minDimension, "max": maxDimension},
			"maxDepth": map[string]int{"min": 0, "max": maxDepth},
			"viewSize": map[string]float64{"min": 0, "max": maxViewSize},
		},
	}

	writeJSON(w, http.StatusOK, response)
}

// writeJSON writes v as a JSON response with CORS enabled
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

func vecToArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}
