package controls

import (
	"github.com/Carmen-Shannon/oxycam/common"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"
)

// ControlsBuilderOption is a functional option for configuring camera controls.
// Values are validated by NewCameraControls after all options are applied.
type ControlsBuilderOption func(*controlsImpl)

// WithLogger sets the logger used for diagnostics. Defaults to a no-op logger.
//
// Parameters:
//   - logger: the zerolog logger to use
//
// Returns:
//   - ControlsBuilderOption: a function that sets the logger
func WithLogger(logger zerolog.Logger) ControlsBuilderOption {
	return func(cc *controlsImpl) {
		cc.logger = logger.With().Str("component", "camera-controls").Logger()
	}
}

// WithTarget sets the initial orbit target. Defaults to the origin.
//
// Parameters:
//   - x, y, z: world-space coordinates
//
// Returns:
//   - ControlsBuilderOption: a function that sets the target
func WithTarget(x, y, z float64) ControlsBuilderOption {
	return func(cc *controlsImpl) {
		cc.initialTarget = mgl64.Vec3{x, y, z}
	}
}

// WithConstraints replaces the default constraints.
//
// Parameters:
//   - constraints: the constraints to use
//
// Returns:
//   - ControlsBuilderOption: a function that sets the constraints
func WithConstraints(constraints Constraints) ControlsBuilderOption {
	return func(cc *controlsImpl) {
		cc.constraints = constraints
	}
}

// WithSmoothing replaces the default damping times.
//
// Parameters:
//   - smoothing: the damping times to use
//
// Returns:
//   - ControlsBuilderOption: a function that sets the damping times
func WithSmoothing(smoothing Smoothing) ControlsBuilderOption {
	return func(cc *controlsImpl) {
		cc.smoothing = smoothing
	}
}

// WithDollySpeed sets the dolly input multiplier. Defaults to 1.
func WithDollySpeed(speed float64) ControlsBuilderOption {
	return func(cc *controlsImpl) {
		cc.dollySpeed = speed
	}
}

// WithTruckSpeed sets the truck input multiplier. Defaults to 2.
func WithTruckSpeed(speed float64) ControlsBuilderOption {
	return func(cc *controlsImpl) {
		cc.truckSpeed = speed
	}
}

// WithRotateSpeed sets the azimuth and polar input multipliers. Both default to 1.
func WithRotateSpeed(azimuth, polar float64) ControlsBuilderOption {
	return func(cc *controlsImpl) {
		cc.azimuthRotateSpeed = azimuth
		cc.polarRotateSpeed = polar
	}
}

// WithDollyToCursor enables dolly-to-cursor for DollyInput.
func WithDollyToCursor(enabled bool) ControlsBuilderOption {
	return func(cc *controlsImpl) {
		cc.dollyToCursor = enabled
	}
}

// WithEnabled sets whether the controls start enabled. Defaults to true.
func WithEnabled(enabled bool) ControlsBuilderOption {
	return func(cc *controlsImpl) {
		cc.enabled = enabled
	}
}

// WithViewport sets the viewport size in pixels used to scale pointer input.
func WithViewport(width, height float64) ControlsBuilderOption {
	return func(cc *controlsImpl) {
		cc.viewportWidth = width
		cc.viewportHeight = height
	}
}

// WithBoundary restricts the target to box.
func WithBoundary(box common.Box3) ControlsBuilderOption {
	return func(cc *controlsImpl) {
		cc.boundary = &box
	}
}
