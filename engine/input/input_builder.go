package input

import (
	"github.com/Carmen-Shannon/oxycam/common"
	"github.com/rs/zerolog"
)

// HandlerBuilderOption is a functional option for configuring a Handler.
type HandlerBuilderOption func(*handlerImpl)

// WithLogger sets the logger that records rejected input.
func WithLogger(logger zerolog.Logger) HandlerBuilderOption {
	return func(h *handlerImpl) {
		h.logger = logger.With().Str("component", "input").Logger()
	}
}

// WithMoveSpeed sets how fast held movement keys travel, as a fraction of the orbit distance
// per second.
//
// Parameters:
//   - speed: movement speed (default 1)
//
// Returns:
//   - HandlerBuilderOption: option function to apply
func WithMoveSpeed(speed float64) HandlerBuilderOption {
	return func(h *handlerImpl) {
		h.moveSpeed = speed
	}
}

// WithSize sets the initial framebuffer size used for pointer coordinates.
func WithSize(width, height int) HandlerBuilderOption {
	return func(h *handlerImpl) {
		if width > 0 && height > 0 {
			h.width, h.height = width, height
		}
	}
}

// WithFocusBox sets the box framed by the F key.
func WithFocusBox(box common.Box3) HandlerBuilderOption {
	return func(h *handlerImpl) {
		h.focusBox = &box
	}
}
