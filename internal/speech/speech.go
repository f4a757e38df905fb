// Package speech defines the narration capability used to announce
// assistant activity. Concrete synthesizer backends live with the host;
// the engine only talks to the Narrator contract.
package speech

import "log/slog"

// Narrator announces text through a speech synthesizer.
type Narrator interface {
	Announce(text string)
}

type noop struct{}

func (noop) Announce(string) {}

// Noop returns a narrator that discards announcements.
func Noop() Narrator { return noop{} }

type logged struct{}

func (logged) Announce(text string) {
	slog.Debug("Narration requested", "chars", len(text))
}

// Logged returns a narrator that only records announcements in the log.
// It stands in where no synthesizer backend is available.
func Logged() Narrator { return logged{} }
