package renderer

import "errors"

var (
	ErrUnknownLibrary   = errors.New("renderer.unknown_library")
	ErrDuplicateLibrary = errors.New("renderer.duplicate_library")
	ErrInvalidOptions   = errors.New("renderer.invalid_options")
)
