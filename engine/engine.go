// Package engine hosts camera controls in a window: it forwards window input to the controls,
// advances them once per frame and hands each frame to a render callback.
package engine

import (
	"time"

	"github.com/Carmen-Shannon/oxycam/engine/controls"
	"github.com/Carmen-Shannon/oxycam/engine/input"
	"github.com/Carmen-Shannon/oxycam/engine/profiler"
	"github.com/Carmen-Shannon/oxycam/engine/window"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// engine implements the Engine interface.
// Everything runs on the window's thread: GLFW delivers events there and the controls are
// not safe for concurrent use.
type engine struct {
	window   window.Window
	controls controls.CameraControls
	input    input.Handler

	logger zerolog.Logger

	profiler         *profiler.Profiler
	profilingEnabled bool

	renderCallback func(deltaTime float64, cameraChanged bool)

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
	maxDeltaTime     time.Duration

	inputOptions []input.HandlerBuilderOption

	lastFrame time.Time
	firstDraw bool
	quit      bool
}

// Engine is the main entry point for the viewer.
// It owns the frame loop, feeds window input to the controls and drives rendering.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Controls returns the camera controls driven by the engine.
	Controls() controls.CameraControls

	// Input returns the handler translating window events into controls actions.
	Input() input.Handler

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetRenderCallback registers the function called once per frame after the controls update.
	//
	// Parameters:
	//   - callback: function receiving the frame delta in seconds and whether the camera moved
	//     (always true on the first frame)
	SetRenderCallback(callback func(deltaTime float64, cameraChanged bool))

	// SetRenderFrameLimit sets an optional frame rate cap in frames per second.
	// Pass 0 to uncap the loop (default).
	//
	// Parameters:
	//   - fps: maximum frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// Run starts the frame loop on the calling goroutine and blocks until the window closes
	// or Quit is called. The window is closed when Run returns.
	Run()

	// Quit stops the frame loop after the current frame.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
// WithWindow and WithControls are required.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
//   - error: if the window or controls are missing
func NewEngine(options ...EngineBuilderOption) (Engine, error) {
	e := &engine{
		logger:       zerolog.Nop(),
		maxDeltaTime: 100 * time.Millisecond,
		firstDraw:    true,
	}
	for _, opt := range options {
		opt(e)
	}
	if e.window == nil {
		return nil, errors.New("engine requires a window")
	}
	if e.controls == nil {
		return nil, errors.New("engine requires camera controls")
	}
	e.profiler = profiler.NewProfiler(e.logger)

	inputOptions := append([]input.HandlerBuilderOption{
		input.WithLogger(e.logger),
		input.WithSize(e.window.Width(), e.window.Height()),
	}, e.inputOptions...)
	e.input = input.NewHandler(e.controls, inputOptions...)
	e.input.Resize(e.window.Width(), e.window.Height())
	e.bindWindow()

	return e, nil
}

// bindWindow routes window events to the input handler.
func (e *engine) bindWindow() {
	e.window.SetResizeCallback(func(width, height int) {
		e.input.Resize(width, height)
		e.firstDraw = true
	})
	e.window.SetMouseDownCallback(func(button int, x, y float64) {
		e.input.MouseDown(input.MouseButton(button), x, y)
	})
	e.window.SetMouseUpCallback(func(button int, x, y float64) {
		e.input.MouseUp(input.MouseButton(button), x, y)
	})
	e.window.SetMouseMoveCallback(e.input.MouseMove)
	e.window.SetScrollCallback(e.input.Scroll)
	e.window.SetKeyDownCallback(e.input.KeyDown)
	e.window.SetKeyUpCallback(e.input.KeyUp)
	e.window.SetUpdateCallback(e.frame)
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Controls() controls.CameraControls {
	return e.controls
}

func (e *engine) Input() input.Handler {
	return e.input
}

func (e *engine) Run() {
	e.lastFrame = time.Now()
	e.logger.Info().Int("width", e.window.Width()).Int("height", e.window.Height()).Msg("engine running")
	e.window.ProcessMessages()
	e.Quit()
	e.logger.Info().Msg("engine stopped")
}

// Quit closes the window, which ends ProcessMessages. Safe to call multiple times.
func (e *engine) Quit() {
	if e.quit {
		return
	}
	e.quit = true
	if err := e.window.Close(); err != nil {
		e.logger.Warn().Err(err).Msg("close window")
	}
}

// frame runs once per window message loop iteration.
func (e *engine) frame() {
	if e.quit {
		return
	}
	now := time.Now()
	elapsed := now.Sub(e.lastFrame)
	e.lastFrame = now
	// clamp stalled frames (window drag, breakpoint)
	elapsed = min(elapsed, e.maxDeltaTime)
	dt := elapsed.Seconds()

	changed := e.input.Tick(dt)
	if e.firstDraw {
		changed = true
		e.firstDraw = false
	}

	if e.renderCallback != nil {
		e.renderCallback(dt, changed)
	}

	if e.profilingEnabled {
		e.profiler.Tick(changed)
	}

	if e.renderFrameLimit > 0 {
		if remaining := e.renderFrameLimit - time.Since(now); remaining > 0 {
			time.Sleep(remaining)
		}
	}
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

// SetRenderCallback registers the function called once per frame.
func (e *engine) SetRenderCallback(callback func(deltaTime float64, cameraChanged bool)) {
	e.renderCallback = callback
}

// SetRenderFrameLimit sets an optional frame rate cap.
// Pass 0 to uncap the loop.
func (e *engine) SetRenderFrameLimit(fps float64) {
	if fps <= 0 {
		e.renderFrameLimit = 0
		return
	}
	e.renderFrameLimit = time.Duration(float64(time.Second) / fps)
}
