package engine

import (
	"time"

	"github.com/Carmen-Shannon/oxycam/engine/controls"
	"github.com/Carmen-Shannon/oxycam/engine/input"
	"github.com/Carmen-Shannon/oxycam/engine/window"
	"github.com/rs/zerolog"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithWindow sets the window the engine reads input from and runs its loop in.
//
// Parameters:
//   - w: a created Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithControls sets the camera controls the engine drives.
//
// Parameters:
//   - cc: the controls
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithControls(cc controls.CameraControls) EngineBuilderOption {
	return func(e *engine) {
		e.controls = cc
	}
}

// WithLogger sets the logger used by the engine, its input handler and profiler.
func WithLogger(logger zerolog.Logger) EngineBuilderOption {
	return func(e *engine) {
		e.logger = logger
	}
}

// WithInputOptions passes options through to the input handler.
func WithInputOptions(options ...input.HandlerBuilderOption) EngineBuilderOption {
	return func(e *engine) {
		e.inputOptions = append(e.inputOptions, options...)
	}
}

// WithMaxDeltaTime caps the time step handed to the controls after a stalled frame.
//
// Parameters:
//   - d: the largest frame delta (default 100ms)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithMaxDeltaTime(d time.Duration) EngineBuilderOption {
	return func(e *engine) {
		if d > 0 {
			e.maxDeltaTime = d
		}
	}
}

// WithRenderFrameLimit sets an optional frame rate cap in frames per second.
// Pass 0 to uncap the loop (default).
//
// Parameters:
//   - fps: maximum frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			e.renderFrameLimit = 0
			return
		}
		e.renderFrameLimit = time.Duration(float64(time.Second) / fps)
	}
}
