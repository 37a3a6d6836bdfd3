package replay

import "github.com/pkg/errors"

var (
	// ErrUnknownAction is returned when a script step names an action the runner does not know.
	ErrUnknownAction = errors.New("unknown replay action")
	// ErrArgumentCount is returned when a step passes the wrong number of arguments.
	ErrArgumentCount = errors.New("wrong number of replay arguments")
	// ErrExpectation is returned when an expect_* step does not hold.
	ErrExpectation = errors.New("replay expectation failed")
	// ErrNotSettled is returned when a settle step runs out of frames.
	ErrNotSettled = errors.New("controls did not settle")
)
