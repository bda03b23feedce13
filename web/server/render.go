package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/output"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// TileUpdate represents a single tile update sent via SSE
type TileUpdate struct {
	TileX      int    `json:"tileX"`
	TileY      int    `json:"tileY"`
	X          int    `json:"x"` // Pixel origin of the tile
	Y          int    `json:"y"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	ImageData  string `json:"imageData"`  // Base64 encoded PNG of just this tile
	TileNumber int    `json:"tileNumber"` // Completed tile count (1-based)
	TotalTiles int    `json:"totalTiles"` // Total number of tiles in the image
}

// RenderStarted is the first event of a render stream
type RenderStarted struct {
	RenderID       string `json:"renderId"`
	Scene          string `json:"scene"`
	Width          int    `json:"width"`
	Height         int    `json:"height"`
	MaxDepth       int    `json:"maxDepth"`
	PrimitiveCount int    `json:"primitiveCount"`
}

// RenderComplete is the final event of a successful render stream
type RenderComplete struct {
	RenderID    string  `json:"renderId"`
	ElapsedMs   int64   `json:"elapsedMs"`
	TotalPixels int     `json:"totalPixels"`
	PrimaryHits int     `json:"primaryHits"`
	RaysTraced  int     `json:"raysTraced"`
	Tiles       int     `json:"tiles"`
	Workers     int     `json:"workers"`
	Luminance   float64 `json:"luminance"`
}

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "start", "console", "tile", "error", "complete"
	Data string `json:"data"` // JSON-encoded data
}

// handleRender renders a scene and streams finished tiles via SSE
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	s.setSSEHeaders(w)
	ctx := r.Context()

	req := &RenderRequest{}
	if err := s.parseCommonSceneParams(r, req); err != nil {
		writeSSEEvent(w, SSEEvent{Type: "error", Data: fmt.Sprintf("Invalid request: %v", err)})
		return
	}

	// Single writer goroutine; everything else sends to sseEventChan
	sseEventChan := make(chan SSEEvent, 100)
	writerDone := make(chan struct{})
	go func() {
		s.writeSSEEvents(ctx, w, sseEventChan)
		close(writerDone)
	}()

	renderID := uuid.NewString()
	consoleChan := make(chan ConsoleMessage, 50)
	consoleDone := make(chan struct{})
	go func() {
		s.streamConsoleMessages(ctx, consoleChan, sseEventChan)
		close(consoleDone)
	}()

	s.runRender(ctx, renderID, req, NewWebLogger(renderID, consoleChan), sseEventChan)

	// Flush pending console output before closing the stream
	close(consoleChan)
	<-consoleDone
	close(sseEventChan)
	<-writerDone
}

// runRender renders req and sends start, tile, error and complete events
func (s *Server) runRender(ctx context.Context, renderID string, req *RenderRequest, logger core.Logger, sseEventChan chan<- SSEEvent) {
	sceneObj, err := s.createScene(req)
	if err != nil {
		s.handleError(ctx, sseEventChan, err.Error())
		return
	}

	r, err := renderer.NewRenderer(sceneObj, req.renderConfig(), logger)
	if err != nil {
		s.handleError(ctx, sseEventChan, err.Error())
		return
	}

	s.sendJSONEvent(ctx, sseEventChan, "start", RenderStarted{
		RenderID:       renderID,
		Scene:          sceneObj.Name,
		Width:          req.Width,
		Height:         req.Height,
		MaxDepth:       req.MaxDepth,
		PrimitiveCount: sceneObj.GetPrimitiveCount(),
	})

	startTime := time.Now()
	img, stats, err := r.Render(ctx, func(tile renderer.TileCompletionResult) {
		s.handleTileUpdate(ctx, sseEventChan, tile)
	})
	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Render error: %v", err))
		return
	}

	s.sendJSONEvent(ctx, sseEventChan, "complete", RenderComplete{
		RenderID:    renderID,
		ElapsedMs:   time.Since(startTime).Milliseconds(),
		TotalPixels: stats.TotalPixels,
		PrimaryHits: stats.PrimaryHits,
		RaysTraced:  stats.RaysTraced,
		Tiles:       stats.Tiles,
		Workers:     stats.Workers,
		Luminance:   renderer.CalculateAverageLuminance(img.ToRGBA()),
	})
}

// handleImage renders a scene and returns it as a PNG
func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	req := &RenderRequest{}
	if err := s.parseCommonSceneParams(r, req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	thumbSize, err := parseIntParam(r.URL.Query(), "thumbnail", 0, 0, maxDimension)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rend, err := renderer.NewRenderer(sceneObj, req.renderConfig(), nil)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	img, stats, err := rend.Render(r.Context(), nil)
	if err != nil {
		http.Error(w, "Render failed", http.StatusInternalServerError)
		return
	}

	data, err := output.EncodePNG(output.Thumbnail(img.ToRGBA(), thumbSize))
	if err != nil {
		http.Error(w, "Encoding failed", http.StatusInternalServerError)
		return
	}

	log.Printf("Rendered %s (%dx%d) in %v", sceneObj.Name, req.Width, req.Height, stats.Duration)
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// writeSSEEvents handles writing all SSE events in a single goroutine (thread-safe)
func (s *Server) writeSSEEvents(ctx context.Context, w http.ResponseWriter, sseEventChan <-chan SSEEvent) {
	for {
		select {
		case event, ok := <-sseEventChan:
			if !ok {
				return
			}
			if err := writeSSEEvent(w, event); err != nil {
				// Client disconnected during write
				return
			}
		case <-ctx.Done():
			// Client disconnected
			return
		}
	}
}

// writeSSEEvent writes and flushes one event
func writeSSEEvent(w http.ResponseWriter, event SSEEvent) error {
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
		return err
	}
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
	return nil
}

// streamConsoleMessages forwards console messages until consoleChan is closed
func (s *Server) streamConsoleMessages(ctx context.Context, consoleChan <-chan ConsoleMessage, sseEventChan chan<- SSEEvent) {
	for consoleMsg := range consoleChan {
		data, err := json.Marshal(consoleMsg)
		if err != nil {
			log.Printf("Error marshaling console message: %v", err)
			continue
		}

		select {
		case sseEventChan <- SSEEvent{Type: "console", Data: string(data)}:
		case <-ctx.Done():
			// Keep draining so the logger never blocks
		}
	}
}

// handleTileUpdate processes and sends tile update events
func (s *Server) handleTileUpdate(ctx context.Context, sseEventChan chan<- SSEEvent, tile renderer.TileCompletionResult) {
	if ctx.Err() != nil {
		return
	}

	png, err := output.EncodePNG(tile.TileImage)
	if err != nil {
		log.Printf("Error encoding tile image (%d, %d): %v", tile.TileX, tile.TileY, err)
		return
	}

	s.sendJSONEvent(ctx, sseEventChan, "tile", TileUpdate{
		TileX:      tile.TileX,
		TileY:      tile.TileY,
		X:          tile.Bounds.Min.X,
		Y:          tile.Bounds.Min.Y,
		Width:      tile.Bounds.Dx(),
		Height:     tile.Bounds.Dy(),
		ImageData:  base64.StdEncoding.EncodeToString(png),
		TileNumber: tile.TileNumber,
		TotalTiles: tile.TotalTiles,
	})
}

// sendJSONEvent marshals v and queues it as an event of the given type
func (s *Server) sendJSONEvent(ctx context.Context, sseEventChan chan<- SSEEvent, eventType string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("Error marshaling %s event: %v", eventType, err)
		return
	}

	select {
	case sseEventChan <- SSEEvent{Type: eventType, Data: string(data)}:
	case <-ctx.Done():
	}
}

// handleError sends an error event to the SSE channel
func (s *Server) handleError(ctx context.Context, sseEventChan chan<- SSEEvent, message string) {
	select {
	case sseEventChan <- SSEEvent{Type: "error", Data: message}:
	case <-ctx.Done():
		// Client disconnected, don't block
	}
}
