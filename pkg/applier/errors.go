package applier

import "errors"

var (
	// ErrRendererUnreachable is returned when the remote renderer cannot be dialed.
	ErrRendererUnreachable = errors.New("renderer unreachable")

	// ErrClosed is returned by Apply after Close.
	ErrClosed = errors.New("applier closed")
)
