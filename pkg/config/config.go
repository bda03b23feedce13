package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"

	"gopkg.in/yaml.v2"

	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// ErrInvalidConfig is wrapped by every configuration validation error
var ErrInvalidConfig = errors.New("invalid config")

// Config represents the main configuration
type Config struct {
	Render RenderSection `yaml:"render"`
	Scene  SceneSection  `yaml:"scene"`
	Output OutputSection `yaml:"output"`
	S3     S3Section     `yaml:"s3"`
}

// RenderSection contains raytracer configuration
type RenderSection struct {
	Width         int     `yaml:"width"`
	Height        int     `yaml:"height"`
	MaxDepth      int     `yaml:"max_depth"`
	ViewPlaneSize float64 `yaml:"view_plane_size"` // 0 keeps the scene's camera
	ViewPlaneZ    float64 `yaml:"view_plane_z"`    // 0 keeps the scene's camera
	Workers       int     `yaml:"workers"`         // 0 means one per CPU
	TileSize      int     `yaml:"tile_size"`
}

// SceneSection selects the scene to render
type SceneSection struct {
	Name string `yaml:"name"` // Builtin scene name
}

// OutputSection controls where rendered images go
type OutputSection struct {
	Dir           string `yaml:"dir"`
	ThumbnailSize int    `yaml:"thumbnail_size"` // 0 disables thumbnails
}

// S3Section configures publishing renders to an S3-compatible store
type S3Section struct {
	Enabled   bool   `yaml:"enabled"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"`
	Prefix    string `yaml:"prefix"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
}

// DefaultConfig creates a default configuration
func DefaultConfig() *Config {
	defaults := renderer.DefaultRenderConfig()
	return &Config{
		Render: RenderSection{
			Width:    defaults.Width,
			Height:   defaults.Height,
			MaxDepth: defaults.MaxDepth,
			Workers:  defaults.NumWorkers,
			TileSize: defaults.TileSize,
		},
		Scene: SceneSection{
			Name: "default",
		},
		Output: OutputSection{
			Dir:           "output",
			ThumbnailSize: 0,
		},
		S3: S3Section{
			Region: "us-east-1",
			Prefix: "renders",
		},
	}
}

// LoadConfig loads the configuration from a file, overlaying it onto the defaults
func LoadConfig(filePath string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filePath)
	if err != nil {
		return config, fmt.Errorf("error reading config: %w", err)
	}

	if err := yaml.UnmarshalStrict(data, config); err != nil {
		return config, fmt.Errorf("error parsing config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return config, err
	}

	return config, nil
}

// SaveConfig saves the configuration to a file
func SaveConfig(config *Config, filePath string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("error serializing config: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// ApplyEnv overrides S3 settings from S3_* environment variables when they are set
func (c *Config) ApplyEnv(getenv func(string) string) {
	if getenv == nil {
		getenv = os.Getenv
	}

	overrides := []struct {
		key    string
		target *string
	}{
		{"S3_ACCESS_KEY", &c.S3.AccessKey},
		{"S3_SECRET_KEY", &c.S3.SecretKey},
		{"S3_ENDPOINT", &c.S3.Endpoint},
		{"S3_REGION", &c.S3.Region},
		{"S3_BUCKET", &c.S3.Bucket},
		{"S3_PREFIX", &c.S3.Prefix},
	}
	for _, o := range overrides {
		if v := getenv(o.key); v != "" {
			*o.target = v
		}
	}

	if v := getenv("S3_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			c.S3.Enabled = enabled
		}
	}
}

// Validate checks the render section and, when enabled, the S3 section
func (c *Config) Validate() error {
	if err := c.ToRenderConfig().Validate(); err != nil {
		return fmt.Errorf("%w: render: %v", ErrInvalidConfig, err)
	}
	if !slices.Contains(scene.BuiltinNames(), c.Scene.Name) {
		return fmt.Errorf("%w: unknown scene %q", ErrInvalidConfig, c.Scene.Name)
	}
	if c.Render.ViewPlaneSize < 0 {
		return fmt.Errorf("%w: render.view_plane_size must not be negative, got %v", ErrInvalidConfig, c.Render.ViewPlaneSize)
	}
	if c.Output.ThumbnailSize < 0 {
		return fmt.Errorf("%w: output.thumbnail_size must not be negative, got %d", ErrInvalidConfig, c.Output.ThumbnailSize)
	}
	if c.S3.Enabled && c.S3.Bucket == "" {
		return fmt.Errorf("%w: s3.bucket is required when s3 is enabled", ErrInvalidConfig)
	}
	return nil
}

// ToRenderConfig converts the render section to a renderer configuration
func (c *Config) ToRenderConfig() renderer.RenderConfig {
	return renderer.RenderConfig{
		Width:      c.Render.Width,
		Height:     c.Render.Height,
		MaxDepth:   c.Render.MaxDepth,
		TileSize:   c.Render.TileSize,
		NumWorkers: c.Render.Workers,
	}
}

// CameraOverride returns the view plane overrides; zero fields keep the scene's values
func (c *Config) CameraOverride() geometry.CameraConfig {
	return geometry.CameraConfig{
		ViewPlaneZ:    c.Render.ViewPlaneZ,
		ViewPlaneSize: c.Render.ViewPlaneSize,
	}
}
