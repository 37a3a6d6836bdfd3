// Command orbitview opens a window with a ground grid, axes and a focus box, and drives the
// camera with orbit controls.
//
// Mouse: left drag rotates (shift+left trucks), right drag trucks, middle drag and wheel dolly.
// Keys: 1-6 preset views, F frames the focus box, B saves the pose, Space resets to it,
// X normalizes rotations, WASD/QE move.
// With --model, the focus box is the model's bounding box.
package main

import (
	"fmt"
	"os"

	"github.com/Carmen-Shannon/oxycam/common"
	"github.com/Carmen-Shannon/oxycam/engine"
	"github.com/Carmen-Shannon/oxycam/engine/config"
	"github.com/Carmen-Shannon/oxycam/engine/controls"
	"github.com/Carmen-Shannon/oxycam/engine/input"
	"github.com/Carmen-Shannon/oxycam/engine/loader"
	"github.com/Carmen-Shannon/oxycam/engine/mesh"
	"github.com/Carmen-Shannon/oxycam/engine/renderer"
	"github.com/Carmen-Shannon/oxycam/engine/window"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type options struct {
	configFile string
	uncapped   bool
	software   bool
	profiling  bool
	fps        float64
	boxSize    float64
	modelPath  string
}

func main() {
	opts := options{}
	cmd := &cobra.Command{
		Use:          "orbitview",
		Short:        "Interactive orbit camera viewer",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts)
		},
	}
	cmd.Flags().StringVar(&opts.configFile, "config", "", "config file (YAML, JSON or TOML)")
	cmd.Flags().BoolVar(&opts.uncapped, "uncapped", false, "present without vsync")
	cmd.Flags().BoolVar(&opts.software, "software", false, "force the fallback adapter")
	cmd.Flags().BoolVar(&opts.profiling, "profile", false, "log frame stats every second")
	cmd.Flags().Float64Var(&opts.fps, "fps", 0, "render frame limit (0 = unlimited)")
	cmd.Flags().Float64Var(&opts.boxSize, "box", 2, "edge length of the focus box")
	cmd.Flags().StringVar(&opts.modelPath, "model", "", "frame the bounds of a glTF or GLB model")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(opts options) error {
	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return err
	}
	logger, err := cfg.Log.NewLogger(os.Stderr)
	if err != nil {
		return err
	}

	// ── Window ──────────────────────────────────────────────────────────
	win, err := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithWidth(cfg.Window.Width),
		window.WithHeight(cfg.Window.Height),
		window.WithMinWidth(cfg.Window.MinWidth),
		window.WithMinHeight(cfg.Window.MinHeight),
		window.WithMaxWidth(cfg.Window.MaxWidth),
		window.WithMaxHeight(cfg.Window.MaxHeight),
	)
	if err != nil {
		return err
	}

	// ── Camera + Controls ───────────────────────────────────────────────
	cam, err := cfg.Camera.NewCamera()
	if err != nil {
		return err
	}
	cc, err := controls.NewCameraControls(cam, cfg.Controls.Options(logger)...)
	if err != nil {
		return errors.Wrap(err, "create controls")
	}
	defer cc.Dispose()

	// ── Renderer ────────────────────────────────────────────────────────
	presentMode := renderer.PresentModeVSync
	if opts.uncapped {
		presentMode = renderer.PresentModeUncapped
	}
	r, err := renderer.NewRenderer(win.SurfaceDescriptor(), win.Width(), win.Height(),
		renderer.WithPresentMode(presentMode),
		renderer.WithForceSoftwareRenderer(opts.software),
	)
	if err != nil {
		return err
	}
	defer r.Release()

	// ── Scene lines ─────────────────────────────────────────────────────
	half := opts.boxSize / 2
	target := cfg.Controls.Target
	focus := common.NewBox3(
		mgl64.Vec3{target[0] - half, target[1] - half, target[2] - half},
		mgl64.Vec3{target[0] + half, target[1] + half, target[2] + half},
	)
	if opts.modelPath != "" {
		m, err := loader.Load(opts.modelPath)
		if err != nil {
			return err
		}
		logger.Info().Str("model", opts.modelPath).Int("meshes", m.Meshes).
			Floats64("min", m.Bounds.Min[:]).Floats64("max", m.Bounds.Max[:]).Msg("model bounds")
		focus = m.Bounds
		if err := cc.FitToBox(focus, false, controls.FitOptions{}); err != nil {
			return err
		}
		cc.Apply()
	}
	lines := append(mesh.Grid(20, 40, mesh.ColorGrid), mesh.Axes(5)...)
	lines = append(lines, mesh.Box(focus, mesh.ColorFocus)...)
	if err := r.SetLines(lines); err != nil {
		return err
	}

	// ── Engine ──────────────────────────────────────────────────────────
	eng, err := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithControls(cc),
		engine.WithLogger(logger),
		engine.WithProfiling(opts.profiling),
		engine.WithRenderFrameLimit(opts.fps),
		engine.WithInputOptions(input.WithFocusBox(focus)),
	)
	if err != nil {
		return err
	}

	width, height := win.Width(), win.Height()
	eng.SetRenderCallback(func(deltaTime float64, cameraChanged bool) {
		if w, h := win.Width(), win.Height(); w != width || h != height {
			width, height = w, h
			r.Resize(w, h)
		}
		if !cameraChanged {
			return
		}
		if err := r.Render(cam); err != nil {
			logger.Error().Err(err).Msg("render")
			eng.Quit()
		}
	})

	eng.Run()
	return nil
}
