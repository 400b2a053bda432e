package cli

import "errors"

var (
	// ErrNoApps is returned when no apps are specified.
	ErrNoApps = errors.New("no apps specified")

	// ErrAborted is returned when the user aborts an operation.
	ErrAborted = errors.New("operation aborted by user")

	// ErrInvalidTurbo is returned for a malformed --turbo value.
	ErrInvalidTurbo = errors.New(`invalid --turbo value, expected "on" or "off"`)
)
