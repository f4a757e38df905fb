// Package editor defines the capability interfaces the assistant needs
// from a host text editor. The engine is written against these contracts
// only; any concrete widget toolkit can sit behind them.
package editor

// Surface is one open, independently-cursored editable document.
//
// Offsets are rune offsets into the document text. Implementations are
// expected to be driven from a single UI goroutine; Surface does not
// provide its own locking.
type Surface interface {
	ID() string
	Text() string
	CursorOffset() int
	SetCursorOffset(offset int)
	InsertText(offset int, text string) error
	ReadOnly() bool
}

// Host is the editor application hosting surfaces.
type Host interface {
	// Ready reports whether the host has finished initializing. Triggers
	// arriving before readiness must be refused, not crash.
	Ready() bool
	// Surface resolves a surface by identifier.
	Surface(id string) (Surface, bool)
}
