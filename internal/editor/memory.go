package editor

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// MemorySurface is an in-memory Surface implementation backing the demo
// host and the test suite.
type MemorySurface struct {
	id       string
	text     []rune
	cursor   int
	readOnly bool
}

// NewMemorySurface creates a surface with the given initial text and the
// cursor at the end of it.
func NewMemorySurface(text string) *MemorySurface {
	runes := []rune(text)
	return &MemorySurface{
		id:     uuid.New().String(),
		text:   runes,
		cursor: len(runes),
	}
}

func (s *MemorySurface) ID() string     { return s.id }
func (s *MemorySurface) Text() string   { return string(s.text) }
func (s *MemorySurface) ReadOnly() bool { return s.readOnly }

func (s *MemorySurface) SetReadOnly(ro bool) { s.readOnly = ro }

func (s *MemorySurface) CursorOffset() int { return s.cursor }

func (s *MemorySurface) SetCursorOffset(offset int) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(s.text) {
		offset = len(s.text)
	}
	s.cursor = offset
}

// SetText replaces the whole document, clamping the cursor.
func (s *MemorySurface) SetText(text string) {
	s.text = []rune(text)
	s.SetCursorOffset(s.cursor)
}

func (s *MemorySurface) InsertText(offset int, text string) error {
	if s.readOnly {
		return fmt.Errorf("surface %s is read-only", s.id)
	}
	if offset < 0 || offset > len(s.text) {
		return fmt.Errorf("insert offset %d out of range [0,%d]", offset, len(s.text))
	}
	inserted := []rune(text)
	s.text = append(s.text[:offset:offset], append(inserted, s.text[offset:]...)...)
	return nil
}

// MemoryHost is a Host backed by a map of registered surfaces.
type MemoryHost struct {
	mu       sync.RWMutex
	ready    bool
	surfaces map[string]Surface
}

func NewMemoryHost() *MemoryHost {
	return &MemoryHost{surfaces: make(map[string]Surface)}
}

func (h *MemoryHost) SetReady(ready bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ready = ready
}

func (h *MemoryHost) Ready() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.ready
}

func (h *MemoryHost) Register(s Surface) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.surfaces[s.ID()] = s
}

func (h *MemoryHost) Unregister(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.surfaces, id)
}

func (h *MemoryHost) Surface(id string) (Surface, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	s, ok := h.surfaces[id]
	return s, ok
}
