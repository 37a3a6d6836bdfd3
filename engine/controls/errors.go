package controls

import "github.com/pkg/errors"

var (
	// ErrInvalidRange is returned when a constraint minimum exceeds its maximum.
	ErrInvalidRange = errors.New("invalid range")

	// ErrInvalidValue is returned for NaN, infinite or out-of-domain arguments.
	ErrInvalidValue = errors.New("invalid value")

	// ErrNilCamera is returned when controls are created without a camera.
	ErrNilCamera = errors.New("camera is nil")

	// ErrNotPerspective is returned by operations that need a perspective lens.
	ErrNotPerspective = errors.New("camera is not perspective")

	// ErrDisposed is returned by actions invoked after Dispose.
	ErrDisposed = errors.New("camera controls disposed")
)
