package completion

// SessionState is the render state of a suggestion session.
type SessionState string

const (
	SessionPending     SessionState = "pending"
	SessionShown       SessionState = "shown"
	SessionAccepted    SessionState = "accepted"
	SessionRejected    SessionState = "rejected"
	SessionInvalidated SessionState = "invalidated"
)

// Session is one rendered suggestion awaiting user action. It is owned
// exclusively by its surface; the preview it describes never mutates the
// document. Only the accept transition commits Text at Anchor.
type Session struct {
	SurfaceID string
	// Anchor is the rune offset the suggestion would be inserted at.
	Anchor int
	Text   string
	Seq    uint64
	State  SessionState
}

// End is the rune offset the cursor lands on after an accept.
func (s Session) End() int {
	return s.Anchor + len([]rune(s.Text))
}
