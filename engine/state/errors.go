package state

import "github.com/pkg/errors"

var (
	// ErrMalformedState is returned when serialized state is missing a field, has the wrong
	// type, holds a non-finite number or describes an impossible configuration.
	ErrMalformedState = errors.New("malformed camera state")

	// ErrUnknownFormat is returned for an unsupported format name or file extension.
	ErrUnknownFormat = errors.New("unknown state format")
)
