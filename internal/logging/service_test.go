package logging

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendAssignsIDAndTimestamp(t *testing.T) {
	t.Parallel()

	svc := NewService()
	svc.Append(Log{Level: "info", Message: "ready"})

	records := svc.List(0)
	require.Len(t, records, 1)
	assert.NotEmpty(t, records[0].ID)
	assert.False(t, records[0].Timestamp.IsZero())
	assert.Equal(t, "ready", records[0].Message)
}

func TestListReturnsNewestLast(t *testing.T) {
	t.Parallel()

	svc := NewService()
	for i := 0; i < 5; i++ {
		svc.Append(Log{Message: fmt.Sprintf("m%d", i)})
	}

	all := svc.List(0)
	require.Len(t, all, 5)
	assert.Equal(t, "m0", all[0].Message)
	assert.Equal(t, "m4", all[4].Message)

	tail := svc.List(2)
	require.Len(t, tail, 2)
	assert.Equal(t, "m3", tail[0].Message)
	assert.Equal(t, "m4", tail[1].Message)
}

func TestRetentionDropsOldestRecords(t *testing.T) {
	t.Parallel()

	svc := NewService()
	for i := 0; i < maxRetained+10; i++ {
		svc.Append(Log{Message: fmt.Sprintf("m%d", i)})
	}

	records := svc.List(0)
	require.Len(t, records, maxRetained)
	assert.Equal(t, "m10", records[0].Message)
	assert.Equal(t, fmt.Sprintf("m%d", maxRetained+9), records[maxRetained-1].Message)
}

func TestSubscribeReceivesAppendedRecord(t *testing.T) {
	t.Parallel()

	svc := NewService()
	ch := svc.Subscribe(t.Context())

	svc.Append(Log{Level: "warn", Message: "slow provider"})

	select {
	case ev := <-ch:
		assert.Equal(t, EventLogCreated, ev.Type)
		assert.Equal(t, "warn", ev.Payload.Level)
		assert.Equal(t, "slow provider", ev.Payload.Message)
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for log event")
	}
}

func TestSlogWriterDecodesLogfmt(t *testing.T) {
	msg := fmt.Sprintf("writer-decode-%d", time.Now().UnixNano())
	line := fmt.Sprintf(
		"time=2026-08-25T10:30:00.5Z level=WARN msg=%s surface=buffer-1\n", msg)

	n, err := NewSlogWriter().Write([]byte(line))
	require.NoError(t, err)
	assert.Equal(t, len(line), n)

	var found *Log
	for _, rec := range GetService().List(0) {
		if rec.Message == msg {
			rec := rec
			found = &rec
		}
	}
	require.NotNil(t, found, "record not captured")
	assert.Equal(t, "warn", found.Level)
	assert.Equal(t, "buffer-1", found.Attributes["surface"])
	assert.Equal(t, 2026, found.Timestamp.Year())
}
