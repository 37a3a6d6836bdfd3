// Package config loads viewer, camera and controls settings from a file and the environment.
package config

import (
	"io"
	"os"
	"strings"

	"github.com/Carmen-Shannon/oxycam/engine/camera"
	"github.com/Carmen-Shannon/oxycam/engine/controls"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. OXYCAM_CONTROLS_SMOOTH_TIME.
const EnvPrefix = "OXYCAM"

// Config holds the complete application configuration
type Config struct {
	Camera   CameraConfig   `mapstructure:"camera" yaml:"camera"`
	Controls ControlsConfig `mapstructure:"controls" yaml:"controls"`
	Window   WindowConfig   `mapstructure:"window" yaml:"window"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
}

// CameraConfig describes the camera the controls drive.
type CameraConfig struct {
	Projection string    `mapstructure:"projection" yaml:"projection"` // perspective, orthographic
	Position   []float64 `mapstructure:"position" yaml:"position"`
	Up         []float64 `mapstructure:"up" yaml:"up"`
	FovDegrees float64   `mapstructure:"fov_degrees" yaml:"fov_degrees"`
	Aspect     float64   `mapstructure:"aspect" yaml:"aspect"`
	// OrthoHeight is the visible height of an orthographic camera at zoom 1.
	OrthoHeight float64 `mapstructure:"ortho_height" yaml:"ortho_height"`
	Near        float64 `mapstructure:"near" yaml:"near"`
	Far         float64 `mapstructure:"far" yaml:"far"`
	Zoom        float64 `mapstructure:"zoom" yaml:"zoom"`
}

// ControlsConfig holds the camera controls settings. Angles are in radians; limits accept
// .inf / -.inf in YAML, or "inf" / "-inf" in the environment.
type ControlsConfig struct {
	Enabled bool      `mapstructure:"enabled" yaml:"enabled"`
	Target  []float64 `mapstructure:"target" yaml:"target"`

	MinDistance     float64 `mapstructure:"min_distance" yaml:"min_distance"`
	MaxDistance     float64 `mapstructure:"max_distance" yaml:"max_distance"`
	MinZoom         float64 `mapstructure:"min_zoom" yaml:"min_zoom"`
	MaxZoom         float64 `mapstructure:"max_zoom" yaml:"max_zoom"`
	MinPolarAngle   float64 `mapstructure:"min_polar_angle" yaml:"min_polar_angle"`
	MaxPolarAngle   float64 `mapstructure:"max_polar_angle" yaml:"max_polar_angle"`
	MinAzimuthAngle float64 `mapstructure:"min_azimuth_angle" yaml:"min_azimuth_angle"`
	MaxAzimuthAngle float64 `mapstructure:"max_azimuth_angle" yaml:"max_azimuth_angle"`

	SmoothTime         float64 `mapstructure:"smooth_time" yaml:"smooth_time"`
	DraggingSmoothTime float64 `mapstructure:"dragging_smooth_time" yaml:"dragging_smooth_time"`
	DollySpeed         float64 `mapstructure:"dolly_speed" yaml:"dolly_speed"`
	TruckSpeed         float64 `mapstructure:"truck_speed" yaml:"truck_speed"`
	AzimuthRotateSpeed float64 `mapstructure:"azimuth_rotate_speed" yaml:"azimuth_rotate_speed"`
	PolarRotateSpeed   float64 `mapstructure:"polar_rotate_speed" yaml:"polar_rotate_speed"`
	DollyToCursor      bool    `mapstructure:"dolly_to_cursor" yaml:"dolly_to_cursor"`
}

// WindowConfig holds the viewer window settings. The initial size must lie within the
// min/max size limits.
type WindowConfig struct {
	Title     string `mapstructure:"title" yaml:"title"`
	Width     int    `mapstructure:"width" yaml:"width"`
	Height    int    `mapstructure:"height" yaml:"height"`
	MinWidth  int    `mapstructure:"min_width" yaml:"min_width"`
	MinHeight int    `mapstructure:"min_height" yaml:"min_height"`
	MaxWidth  int    `mapstructure:"max_width" yaml:"max_width"`
	MaxHeight int    `mapstructure:"max_height" yaml:"max_height"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Pretty bool   `mapstructure:"pretty" yaml:"pretty"`
}

// DefaultConfig returns a new configuration with default values
func DefaultConfig() *Config {
	c := controls.DefaultConstraints()
	s := controls.DefaultSmoothing()
	return &Config{
		Camera: CameraConfig{
			Projection:  camera.ProjectionPerspective.String(),
			Position:    []float64{0, 2, 8},
			Up:          []float64{0, 1, 0},
			FovDegrees:  45,
			Aspect:      1280.0 / 720.0,
			OrthoHeight: 10,
			Near:        0.1,
			Far:         2000,
			Zoom:        1,
		},
		Controls: ControlsConfig{
			Enabled:            true,
			Target:             []float64{0, 0, 0},
			MinDistance:        c.MinDistance,
			MaxDistance:        c.MaxDistance,
			MinZoom:            c.MinZoom,
			MaxZoom:            c.MaxZoom,
			MinPolarAngle:      c.MinPolarAngle,
			MaxPolarAngle:      c.MaxPolarAngle,
			MinAzimuthAngle:    c.MinAzimuthAngle,
			MaxAzimuthAngle:    c.MaxAzimuthAngle,
			SmoothTime:         s.SmoothTime,
			DraggingSmoothTime: s.DraggingSmoothTime,
			DollySpeed:         1,
			TruckSpeed:         2,
			AzimuthRotateSpeed: 1,
			PolarRotateSpeed:   1,
		},
		Window: WindowConfig{
			Title:     "oxycam",
			Width:     1280,
			Height:    720,
			MinWidth:  600,
			MinHeight: 200,
			MaxWidth:  1600,
			MaxHeight: 1200,
		},
		Log: LogConfig{
			Level:  "info",
			Pretty: true,
		},
	}
}

// Load reads configuration from the file at configPath (if not empty), then applies
// OXYCAM_* environment overrides on top of the defaults.
//
// Parameters:
//   - configPath: path to a YAML, JSON or TOML config file, or "" for defaults and environment only
//
// Returns:
//   - *Config: the validated configuration
//   - error: if the file cannot be read or the configuration is invalid
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", configPath)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SaveToFile writes the configuration to path. The format follows the file extension;
// JSON cannot hold the infinite default limits, so prefer .yaml or .toml.
func (c *Config) SaveToFile(path string) error {
	v := viper.New()
	for key, value := range settings(c) {
		v.Set(key, value)
	}
	return errors.Wrapf(v.WriteConfigAs(path), "write config %s", path)
}

// Validate checks that the configuration describes a usable camera and controls.
func (c *Config) Validate() error {
	if _, err := c.Camera.NewCamera(); err != nil {
		return err
	}
	if err := c.Controls.Constraints().Validate(); err != nil {
		return errors.Wrap(err, "controls")
	}
	if err := c.Controls.Smoothing().Validate(); err != nil {
		return errors.Wrap(err, "controls")
	}
	if len(c.Controls.Target) != 3 {
		return errors.Errorf("controls.target must have 3 components, got %d", len(c.Controls.Target))
	}
	if err := c.Window.Validate(); err != nil {
		return errors.Wrap(err, "window")
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrap(err, "log.level")
	}
	return nil
}

// Validate checks that the min size is positive and that min <= size <= max on both axes.
func (w WindowConfig) Validate() error {
	if w.MinWidth <= 0 || w.MinHeight <= 0 {
		return errors.Errorf("min size %dx%d must be positive", w.MinWidth, w.MinHeight)
	}
	if w.MinWidth > w.MaxWidth || w.MinHeight > w.MaxHeight {
		return errors.Errorf("min size %dx%d exceeds max size %dx%d", w.MinWidth, w.MinHeight, w.MaxWidth, w.MaxHeight)
	}
	if w.Width < w.MinWidth || w.Width > w.MaxWidth || w.Height < w.MinHeight || w.Height > w.MaxHeight {
		return errors.Errorf("size %dx%d outside %dx%d..%dx%d",
			w.Width, w.Height, w.MinWidth, w.MinHeight, w.MaxWidth, w.MaxHeight)
	}
	return nil
}

// NewCamera builds the configured camera.
func (c CameraConfig) NewCamera() (camera.Camera, error) {
	if len(c.Position) != 3 {
		return nil, errors.Errorf("camera.position must have 3 components, got %d", len(c.Position))
	}
	if len(c.Up) != 3 {
		return nil, errors.Errorf("camera.up must have 3 components, got %d", len(c.Up))
	}
	if c.Near <= 0 || c.Far <= c.Near {
		return nil, errors.Errorf("camera clip range [%v, %v] is invalid", c.Near, c.Far)
	}
	if c.Zoom <= 0 || c.Aspect <= 0 {
		return nil, errors.Errorf("camera zoom %v and aspect %v must be positive", c.Zoom, c.Aspect)
	}

	options := []camera.CameraBuilderOption{
		camera.WithPosition(c.Position[0], c.Position[1], c.Position[2]),
		camera.WithUp(c.Up[0], c.Up[1], c.Up[2]),
		camera.WithNear(c.Near),
		camera.WithFar(c.Far),
		camera.WithZoom(c.Zoom),
	}

	switch strings.ToLower(c.Projection) {
	case camera.ProjectionPerspective.String():
		if c.FovDegrees <= 0 || c.FovDegrees >= 180 {
			return nil, errors.Errorf("camera.fov_degrees %v must be in (0, 180)", c.FovDegrees)
		}
		options = append(options, camera.WithFov(mgl64.DegToRad(c.FovDegrees)), camera.WithAspect(c.Aspect))
		return camera.NewPerspectiveCamera(options...), nil
	case camera.ProjectionOrthographic.String():
		if c.OrthoHeight <= 0 {
			return nil, errors.Errorf("camera.ortho_height %v must be positive", c.OrthoHeight)
		}
		halfHeight := c.OrthoHeight / 2
		halfWidth := halfHeight * c.Aspect
		options = append(options, camera.WithBounds(-halfWidth, halfWidth, halfHeight, -halfHeight))
		return camera.NewOrthographicCamera(options...), nil
	default:
		return nil, errors.Errorf("camera.projection %q must be perspective or orthographic", c.Projection)
	}
}

// Constraints returns the configured limits.
func (c ControlsConfig) Constraints() controls.Constraints {
	return controls.Constraints{
		MinDistance:     c.MinDistance,
		MaxDistance:     c.MaxDistance,
		MinZoom:         c.MinZoom,
		MaxZoom:         c.MaxZoom,
		MinPolarAngle:   c.MinPolarAngle,
		MaxPolarAngle:   c.MaxPolarAngle,
		MinAzimuthAngle: c.MinAzimuthAngle,
		MaxAzimuthAngle: c.MaxAzimuthAngle,
	}
}

// Smoothing returns the configured damping times.
func (c ControlsConfig) Smoothing() controls.Smoothing {
	return controls.Smoothing{SmoothTime: c.SmoothTime, DraggingSmoothTime: c.DraggingSmoothTime}
}

// Options converts the settings into builder options for controls.NewCameraControls.
func (c ControlsConfig) Options(logger zerolog.Logger) []controls.ControlsBuilderOption {
	options := []controls.ControlsBuilderOption{
		controls.WithLogger(logger),
		controls.WithEnabled(c.Enabled),
		controls.WithConstraints(c.Constraints()),
		controls.WithSmoothing(c.Smoothing()),
		controls.WithDollySpeed(c.DollySpeed),
		controls.WithTruckSpeed(c.TruckSpeed),
		controls.WithRotateSpeed(c.AzimuthRotateSpeed, c.PolarRotateSpeed),
		controls.WithDollyToCursor(c.DollyToCursor),
	}
	if len(c.Target) == 3 {
		options = append(options, controls.WithTarget(c.Target[0], c.Target[1], c.Target[2]))
	}
	return options
}

// NewLogger builds a zerolog logger writing to w, or to stderr when w is nil.
func (c LogConfig) NewLogger(w io.Writer) (zerolog.Logger, error) {
	if w == nil {
		w = os.Stderr
	}
	level, err := zerolog.ParseLevel(c.Level)
	if err != nil {
		return zerolog.Nop(), errors.Wrap(err, "log.level")
	}
	if c.Pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger(), nil
}

func setDefaults(v *viper.Viper) {
	for key, value := range settings(DefaultConfig()) {
		v.SetDefault(key, value)
	}
}

// settings flattens cfg into viper keys.
func settings(cfg *Config) map[string]any {
	return map[string]any{
		"camera.projection":   cfg.Camera.Projection,
		"camera.position":     cfg.Camera.Position,
		"camera.up":           cfg.Camera.Up,
		"camera.fov_degrees":  cfg.Camera.FovDegrees,
		"camera.aspect":       cfg.Camera.Aspect,
		"camera.ortho_height": cfg.Camera.OrthoHeight,
		"camera.near":         cfg.Camera.Near,
		"camera.far":          cfg.Camera.Far,
		"camera.zoom":         cfg.Camera.Zoom,

		"controls.enabled":              cfg.Controls.Enabled,
		"controls.target":               cfg.Controls.Target,
		"controls.min_distance":         cfg.Controls.MinDistance,
		"controls.max_distance":         cfg.Controls.MaxDistance,
		"controls.min_zoom":             cfg.Controls.MinZoom,
		"controls.max_zoom":             cfg.Controls.MaxZoom,
		"controls.min_polar_angle":      cfg.Controls.MinPolarAngle,
		"controls.max_polar_angle":      cfg.Controls.MaxPolarAngle,
		"controls.min_azimuth_angle":    cfg.Controls.MinAzimuthAngle,
		"controls.max_azimuth_angle":    cfg.Controls.MaxAzimuthAngle,
		"controls.smooth_time":          cfg.Controls.SmoothTime,
		"controls.dragging_smooth_time": cfg.Controls.DraggingSmoothTime,
		"controls.dolly_speed":          cfg.Controls.DollySpeed,
		"controls.truck_speed":          cfg.Controls.TruckSpeed,
		"controls.azimuth_rotate_speed": cfg.Controls.AzimuthRotateSpeed,
		"controls.polar_rotate_speed":   cfg.Controls.PolarRotateSpeed,
		"controls.dolly_to_cursor":      cfg.Controls.DollyToCursor,

		"window.title":      cfg.Window.Title,
		"window.width":      cfg.Window.Width,
		"window.height":     cfg.Window.Height,
		"window.min_width":  cfg.Window.MinWidth,
		"window.min_height": cfg.Window.MinHeight,
		"window.max_width":  cfg.Window.MaxWidth,
		"window.max_height": cfg.Window.MaxHeight,

		"log.level":  cfg.Log.Level,
		"log.pretty": cfg.Log.Pretty,
	}
}
