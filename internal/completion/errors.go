package completion

import "errors"

// Conditions surfaced to the caller. Each maps to a single-line status
// notification; none of them is allowed to escape to the host's
// top-level error handler.
var (
	ErrEditorNotReady     = errors.New("editor not ready")
	ErrSurfaceNotWritable = errors.New("surface is not writable")
	ErrAssistantDisabled  = errors.New("assistant is disabled")
	ErrUnknownSurface     = errors.New("unknown surface")
)
