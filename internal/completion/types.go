package completion

import "time"

// Origin says what produced a trigger event.
type Origin int

const (
	// OriginAuto marks triggers fired automatically while typing.
	OriginAuto Origin = iota
	// OriginHotkey marks triggers the user requested explicitly.
	OriginHotkey
)

func (o Origin) String() string {
	if o == OriginHotkey {
		return "hotkey"
	}
	return "auto"
}

// TriggerEvent is a request to consider completion on a surface.
type TriggerEvent struct {
	SurfaceID string
	At        time.Time
	Origin    Origin
}

// ContextWindow is the bounded text window around the cursor sent to the
// provider. CursorOffset is the rune offset of the cursor within
// Prefix+Suffix, which always equals the rune length of Prefix.
type ContextWindow struct {
	Prefix       string
	Suffix       string
	CursorOffset int
	Indent       string
	Oversized    bool
	TotalChars   int
}

// Empty reports whether the window carries no context at all.
func (w ContextWindow) Empty() bool {
	return w.Prefix == "" && w.Suffix == ""
}

// ResultStatus classifies the outcome of a completion request.
type ResultStatus int

const (
	StatusSuccess ResultStatus = iota
	StatusProviderError
	StatusTimeout
	StatusCancelled
)

func (s ResultStatus) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusProviderError:
		return "provider-error"
	case StatusTimeout:
		return "network-timeout"
	case StatusCancelled:
		return "cancelled"
	}
	return "unknown"
}

// Result is the typed message a resolved request delivers back to the
// lifecycle controller. Seq ties it to the dispatch that produced it.
type Result struct {
	SurfaceID string
	Seq       uint64
	Status    ResultStatus
	Text      string
	Err       error
}
