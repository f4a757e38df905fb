package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySurfaceInsert(t *testing.T) {
	t.Parallel()

	s := NewMemorySurface("hello world")
	require.NoError(t, s.InsertText(5, ","))
	assert.Equal(t, "hello, world", s.Text())

	require.NoError(t, s.InsertText(0, ">"))
	assert.Equal(t, ">hello, world", s.Text())

	err := s.InsertText(100, "x")
	assert.Error(t, err)
}

func TestMemorySurfaceInsertMultibyte(t *testing.T) {
	t.Parallel()

	s := NewMemorySurface("héllo")
	require.NoError(t, s.InsertText(2, "ß"))
	assert.Equal(t, "héßllo", s.Text())
}

func TestMemorySurfaceReadOnly(t *testing.T) {
	t.Parallel()

	s := NewMemorySurface("locked")
	s.SetReadOnly(true)
	err := s.InsertText(0, "x")
	assert.Error(t, err)
	assert.Equal(t, "locked", s.Text())
}

func TestMemorySurfaceCursorClamping(t *testing.T) {
	t.Parallel()

	s := NewMemorySurface("abc")
	s.SetCursorOffset(-1)
	assert.Equal(t, 0, s.CursorOffset())
	s.SetCursorOffset(99)
	assert.Equal(t, 3, s.CursorOffset())

	s.SetCursorOffset(3)
	s.SetText("a")
	assert.Equal(t, 1, s.CursorOffset())
}

func TestMemoryHostRegistry(t *testing.T) {
	t.Parallel()

	h := NewMemoryHost()
	assert.False(t, h.Ready())
	h.SetReady(true)
	assert.True(t, h.Ready())

	s := NewMemorySurface("doc")
	h.Register(s)
	got, ok := h.Surface(s.ID())
	require.True(t, ok)
	assert.Equal(t, s.ID(), got.ID())

	h.Unregister(s.ID())
	_, ok = h.Surface(s.ID())
	assert.False(t, ok)
}
