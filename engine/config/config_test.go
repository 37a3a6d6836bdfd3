package config

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxycam/engine/camera"
	"github.com/Carmen-Shannon/oxycam/engine/controls"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.True(t, math.IsInf(cfg.Controls.MaxDistance, 1))
	assert.True(t, math.IsInf(cfg.Controls.MinAzimuthAngle, -1))
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "oxycam.yaml", `
camera:
  projection: orthographic
  ortho_height: 4
controls:
  target: [1, 2, 3]
  min_distance: 2
  max_distance: 50
  min_azimuth_angle: -1.5
  max_azimuth_angle: 1.5
  smooth_time: 0.5
  dolly_to_cursor: true
window:
  width: 800
  min_width: 400
log:
  level: debug
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "orthographic", cfg.Camera.Projection)
	assert.Equal(t, 4.0, cfg.Camera.OrthoHeight)
	assert.Equal(t, 45.0, cfg.Camera.FovDegrees, "unset keys keep defaults")
	assert.Equal(t, []float64{1, 2, 3}, cfg.Controls.Target)
	assert.Equal(t, 2.0, cfg.Controls.MinDistance)
	assert.Equal(t, 50.0, cfg.Controls.MaxDistance)
	assert.Equal(t, 0.5, cfg.Controls.SmoothTime)
	assert.True(t, cfg.Controls.DollyToCursor)
	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height)
	assert.Equal(t, 400, cfg.Window.MinWidth)
	assert.Equal(t, 1200, cfg.Window.MaxHeight, "unset limits keep defaults")
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "oxycam.toml", `
[controls]
max_polar_angle = 1.2
truck_speed = 3.5
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1.2, cfg.Controls.MaxPolarAngle)
	assert.Equal(t, 3.5, cfg.Controls.TruckSpeed)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("OXYCAM_CONTROLS_SMOOTH_TIME", "0.75")
	t.Setenv("OXYCAM_CONTROLS_MAX_DISTANCE", "inf")
	t.Setenv("OXYCAM_LOG_LEVEL", "warn")

	path := writeFile(t, "oxycam.yaml", "controls:\n  smooth_time: 0.1\n  max_distance: 10\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.75, cfg.Controls.SmoothTime)
	assert.True(t, math.IsInf(cfg.Controls.MaxDistance, 1))
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"inverted distance", "controls:\n  min_distance: 10\n  max_distance: 1\n"},
		{"polar out of range", "controls:\n  max_polar_angle: 4\n"},
		{"negative smooth time", "controls:\n  smooth_time: -1\n"},
		{"short target", "controls:\n  target: [1, 2]\n"},
		{"unknown projection", "camera:\n  projection: fisheye\n"},
		{"bad fov", "camera:\n  fov_degrees: 180\n"},
		{"bad clip range", "camera:\n  near: 5\n  far: 1\n"},
		{"zero window", "window:\n  height: 0\n"},
		{"window wider than max", "window:\n  width: 2000\n"},
		{"inverted window limits", "window:\n  min_width: 900\n  max_width: 800\n  width: 850\n"},
		{"zero min window", "window:\n  min_height: 0\n"},
		{"bad log level", "log:\n  level: loud\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, "oxycam.yaml", tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSaveToFileRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Controls.MaxDistance = 42
	cfg.Camera.Projection = "orthographic"
	cfg.Window.Title = "saved"
	cfg.Window.MaxWidth = 2560

	path := filepath.Join(t.TempDir(), "saved.yaml")
	require.NoError(t, cfg.SaveToFile(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestNewCamera(t *testing.T) {
	cfg := DefaultConfig().Camera
	cam, err := cfg.NewCamera()
	require.NoError(t, err)
	require.Equal(t, camera.ProjectionPerspective, cam.Projection())
	lens := cam.(camera.PerspectiveLens)
	assert.InDelta(t, math.Pi/4, lens.Fov(), 1e-12)
	assert.InDelta(t, 1280.0/720.0, lens.Aspect(), 1e-12)

	cfg.Projection = "Orthographic"
	cfg.OrthoHeight = 6
	cfg.Aspect = 2
	cam, err = cfg.NewCamera()
	require.NoError(t, err)
	require.Equal(t, camera.ProjectionOrthographic, cam.Projection())
	l, r, top, b := cam.(camera.OrthographicLens).Bounds()
	assert.Equal(t, []float64{-6, 6, 3, -3}, []float64{l, r, top, b})
}

func TestControlsOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Controls.Target = []float64{0, 1, 0}
	cfg.Controls.MaxDistance = 20
	cfg.Controls.DollySpeed = 2.5
	cfg.Controls.Enabled = false

	cam, err := cfg.Camera.NewCamera()
	require.NoError(t, err)
	cc, err := controls.NewCameraControls(cam, cfg.Controls.Options(zerolog.Nop())...)
	require.NoError(t, err)

	assert.Equal(t, cfg.Controls.Constraints(), cc.Constraints())
	assert.Equal(t, cfg.Controls.Smoothing(), cc.Smoothing())
	assert.Equal(t, 2.5, cc.DollySpeed())
	assert.False(t, cc.Enabled())
	assert.InDelta(t, 1.0, cc.Pose().Target.Y(), 1e-12)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := LogConfig{Level: "warn"}.NewLogger(&buf)
	require.NoError(t, err)

	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"message":"shown"`)

	_, err = LogConfig{Level: "loud"}.NewLogger(&buf)
	assert.Error(t, err)
}
