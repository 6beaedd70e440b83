package face

import "errors"

var (
	// ErrInvalidObservation is returned when an observation payload is malformed.
	ErrInvalidObservation = errors.New("invalid face observation")

	// ErrModelNotFound is returned when the detector model file is missing.
	ErrModelNotFound = errors.New("detector model not found")

	// ErrCameraUnavailable is returned when the capture device cannot be opened or read.
	ErrCameraUnavailable = errors.New("camera unavailable")
)
