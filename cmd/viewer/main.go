// Command viewer renders a scene into a desktop window, showing tiles as they finish.
//
// Keys: R re-renders, Up/Down change the reflection depth, S saves a PNG, Escape quits.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/df07/go-whitted-raytracer/pkg/output"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

const maxViewerDepth = 10

type viewer struct {
	scene     *scene.Scene
	config    renderer.RenderConfig
	outputDir string

	canvas *renderer.Canvas
	frame  *ebiten.Image
	pixels []byte

	mu        sync.Mutex
	rendering bool
	cancel    context.CancelFunc
	lastImage *renderer.Image
	status    string
}

func newViewer(s *scene.Scene, config renderer.RenderConfig, outputDir string) *viewer {
	return &viewer{
		scene:     s,
		config:    config,
		outputDir: outputDir,
		canvas:    renderer.NewCanvas(config.Width, config.Height),
		frame:     ebiten.NewImage(config.Width, config.Height),
		pixels:    make([]byte, 4*config.Width*config.Height),
	}
}

// startRender cancels any running render and begins a new one in the background
func (v *viewer) startRender() {
	v.mu.Lock()
	if v.cancel != nil {
		v.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	v.cancel = cancel
	v.rendering = true
	config := v.config
	v.mu.Unlock()

	v.canvas.Reset()

	go func() {
		r, err := renderer.NewRenderer(v.scene, config, renderer.NewDefaultLogger())
		if err != nil {
			v.setStatus(err.Error(), false, nil)
			return
		}
		img, stats, err := r.Render(ctx, v.canvas.Paste)
		if errors.Is(err, context.Canceled) {
			return
		}
		if err != nil {
			v.setStatus(err.Error(), false, nil)
			return
		}
		v.setStatus(fmt.Sprintf("depth %d: %v, %d rays", config.MaxDepth, stats.Duration.Round(time.Millisecond), stats.RaysTraced), false, img)
	}()
}

func (v *viewer) setStatus(status string, rendering bool, img *renderer.Image) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.status = status
	v.rendering = rendering
	if img != nil {
		v.lastImage = img
	}
}

func (v *viewer) changeDepth(delta int) {
	v.mu.Lock()
	v.config.MaxDepth = max(0, min(maxViewerDepth, v.config.MaxDepth+delta))
	v.mu.Unlock()
	v.startRender()
}

func (v *viewer) save() {
	v.mu.Lock()
	img := v.lastImage
	v.mu.Unlock()
	if img == nil {
		return
	}

	name := fmt.Sprintf("render_%s.png", time.Now().Format("20060102_150405"))
	path := filepath.Join(v.outputDir, v.scene.Name, name)
	if err := output.SavePNG(img.ToRGBA(), path); err != nil {
		v.setStatus(err.Error(), false, nil)
		return
	}
	log.Printf("Render saved as %s", path)
}

func (v *viewer) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		v.startRender()
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		v.changeDepth(1)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		v.changeDepth(-1)
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		v.save()
	}
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	done, total := v.canvas.CopyPixels(v.pixels)
	v.frame.WritePixels(v.pixels)
	screen.DrawImage(v.frame, nil)

	v.mu.Lock()
	status := v.status
	rendering := v.rendering
	v.mu.Unlock()
	if rendering {
		status = fmt.Sprintf("rendering %d/%d tiles", done, total)
	}
	ebitenutil.DebugPrint(screen, status)
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return v.config.Width, v.config.Height
}

func main() {
	sceneName := flag.String("scene", "default", "Builtin scene name")
	width := flag.Int("width", 500, "Image width in pixels")
	height := flag.Int("height", 500, "Image height in pixels")
	depth := flag.Int("depth", 3, "Maximum reflection depth")
	outputDir := flag.String("out", "output", "Directory for saved renders")
	flag.Parse()

	s, err := scene.Create(*sceneName)
	if err != nil {
		log.Fatalf("Failed to create scene: %v", err)
	}

	config := renderer.DefaultRenderConfig()
	config.Width = *width
	config.Height = *height
	config.MaxDepth = *depth
	if err := config.Validate(); err != nil {
		log.Fatal(err)
	}

	v := newViewer(s, config, *outputDir)
	v.startRender()

	ebiten.SetWindowTitle("Whitted Raytracer - " + s.Name)
	ebiten.SetWindowSize(config.Width, config.Height)
	ebiten.SetTPS(30)
	if err := ebiten.RunGame(v); err != nil {
		log.Fatal(err)
	}
}
