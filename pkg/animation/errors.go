package animation

import "errors"

var (
	// ErrApply is returned when the avatar applier rejects a frame.
	ErrApply = errors.New("apply frame")

	// ErrInvalidConfig is returned when tuning values are out of range.
	ErrInvalidConfig = errors.New("invalid animation config")
)
