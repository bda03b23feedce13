package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/df07/go-whitted-raytracer/pkg/config"
	"github.com/df07/go-whitted-raytracer/pkg/output"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// options holds the parsed command line
type options struct {
	configPath string
	envFile    string
	listScenes bool
	help       bool

	sceneName string
	width     int
	height    int
	depth     int
	workers   int
	viewSize  float64
	outputDir string
	thumbnail int
	upload    bool

	set map[string]bool // Flags given explicitly on the command line
}

func parseFlags(args []string) (*options, error) {
	opts := &options{set: make(map[string]bool)}
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)

	fs.StringVar(&opts.configPath, "config", "", "Path to a YAML config file")
	fs.StringVar(&opts.envFile, "env", ".env", "Path to a .env file with S3 credentials")
	fs.BoolVar(&opts.listScenes, "list", false, "List available scenes and exit")
	fs.BoolVar(&opts.help, "help", false, "Show help information")

	fs.StringVar(&opts.sceneName, "scene", "default", "Builtin scene name")
	fs.IntVar(&opts.width, "width", 500, "Image width in pixels")
	fs.IntVar(&opts.height, "height", 500, "Image height in pixels")
	fs.IntVar(&opts.depth, "depth", 3, "Maximum reflection depth")
	fs.IntVar(&opts.workers, "workers", 0, "Number of parallel workers (0 = auto-detect CPU count)")
	fs.Float64Var(&opts.viewSize, "view-size", 0, "View plane size override (0 = scene default)")
	fs.StringVar(&opts.outputDir, "out", "output", "Output directory")
	fs.IntVar(&opts.thumbnail, "thumbnail", 0, "Also write a thumbnail with this maximum side (0 = none)")
	fs.BoolVar(&opts.upload, "upload", false, "Upload the render to S3")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })

	if opts.help {
		fmt.Println("Whitted Raytracer")
		fmt.Println("Usage: raytracer [options]")
		fmt.Println()
		fmt.Println("Options:")
		fs.SetOutput(os.Stdout)
		fs.PrintDefaults()
		fmt.Println()
		fmt.Println("Available scenes:")
		for _, name := range scene.BuiltinNames() {
			fmt.Printf("  %s\n", name)
		}
		fmt.Println()
		fmt.Println("Output will be saved to output/<scene>/render_<timestamp>.png")
	}

	return opts, nil
}

// loadConfig builds the effective configuration: defaults, then the config
// file, then the environment, then explicit flags
func loadConfig(opts *options) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if opts.configPath != "" {
		loaded, err := config.LoadConfig(opts.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	cfg.ApplyEnv(os.Getenv)

	if opts.set["scene"] {
		cfg.Scene.Name = opts.sceneName
	}
	if opts.set["width"] {
		cfg.Render.Width = opts.width
	}
	if opts.set["height"] {
		cfg.Render.Height = opts.height
	}
	if opts.set["depth"] {
		cfg.Render.MaxDepth = opts.depth
	}
	if opts.set["workers"] {
		cfg.Render.Workers = opts.workers
	}
	if opts.set["view-size"] {
		cfg.Render.ViewPlaneSize = opts.viewSize
	}
	if opts.set["out"] {
		cfg.Output.Dir = opts.outputDir
	}
	if opts.set["thumbnail"] {
		cfg.Output.ThumbnailSize = opts.thumbnail
	}
	if opts.set["upload"] {
		cfg.S3.Enabled = opts.upload
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// createScene resolves the configured scene and applies camera overrides
func createScene(cfg *config.Config) (*scene.Scene, error) {
	s, err := scene.Create(cfg.Scene.Name)
	if err != nil {
		return nil, err
	}
	if err := s.ApplyCameraOverride(cfg.CameraOverride()); err != nil {
		return nil, err
	}
	return s, nil
}

func run(ctx context.Context, args []string) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}
	if opts.help {
		return nil
	}

	// A missing .env file is not an error
	if err := godotenv.Load(opts.envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Printf("Warning: failed to load %s: %v\n", opts.envFile, err)
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	if opts.listScenes {
		for _, group := range scene.ListAllScenes().Groups {
			fmt.Printf("%s:\n", group.Name)
			for _, s := range group.Scenes {
				fmt.Printf("  %-20s %s\n", s.ID, s.Description)
			}
		}
		return nil
	}

	selectedScene, err := createScene(cfg)
	if err != nil {
		return fmt.Errorf("failed to create scene: %w", err)
	}

	fmt.Printf("Starting Whitted Raytracer (scene %q, %d primitives)...\n",
		selectedScene.Name, selectedScene.GetPrimitiveCount())

	r, err := renderer.NewRenderer(selectedScene, cfg.ToRenderConfig(), renderer.NewDefaultLogger())
	if err != nil {
		return err
	}

	img, stats, err := r.Render(ctx, nil)
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	rgba := img.ToRGBA()
	fmt.Printf("Primary hit ratio: %.1f%%, average luminance: %.3f\n",
		stats.HitRatio()*100, renderer.CalculateAverageLuminance(rgba))

	paths, err := output.SaveRender(rgba, cfg.Output.Dir, selectedScene.Name, cfg.Output.ThumbnailSize, time.Now())
	if err != nil {
		return err
	}
	fmt.Printf("Render saved as %s\n", paths.Image)
	if paths.Thumbnail != "" {
		fmt.Printf("Thumbnail saved as %s\n", paths.Thumbnail)
	}

	if cfg.S3.Enabled {
		if err := uploadRender(ctx, cfg, selectedScene.Name, paths); err != nil {
			return err
		}
	}

	return nil
}

// uploadRender publishes the written files to S3
func uploadRender(ctx context.Context, cfg *config.Config, sceneName string, paths output.RenderPaths) error {
	uploader, err := output.NewS3Uploader(output.S3Options{
		Bucket:    cfg.S3.Bucket,
		Region:    cfg.S3.Region,
		Endpoint:  cfg.S3.Endpoint,
		Prefix:    cfg.S3.Prefix,
		AccessKey: cfg.S3.AccessKey,
		SecretKey: cfg.S3.SecretKey,
	}, renderer.NewDefaultLogger())
	if err != nil {
		return err
	}

	for _, p := range []string{paths.Image, paths.Thumbnail} {
		if p == "" {
			continue
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("failed to read %s for upload: %w", p, err)
		}
		if err := uploader.UploadPNG(ctx, data, uploader.ObjectKey(sceneName, filepath.Base(p))); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
