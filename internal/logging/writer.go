package logging

import (
	"bytes"
	"io"
	"strings"
	"time"

	"github.com/go-logfmt/logfmt"
)

// slogWriter decodes logfmt records emitted by slog's text handler and
// feeds them into the log service. Records it cannot parse are dropped;
// a failing log sink must never take the application down with it.
type slogWriter struct{}

// NewSlogWriter returns a writer suitable as the sink of
// slog.NewTextHandler.
func NewSlogWriter() io.Writer {
	return &slogWriter{}
}

func (w *slogWriter) Write(p []byte) (int, error) {
	d := logfmt.NewDecoder(bytes.NewReader(p))
	for d.ScanRecord() {
		rec := Log{}
		for d.ScanKeyval() {
			key := string(d.Key())
			value := string(d.Value())
			switch key {
			case "time":
				if parsed, err := time.Parse(time.RFC3339Nano, value); err == nil {
					rec.Timestamp = parsed
				} else if parsed, err := time.Parse(time.RFC3339, value); err == nil {
					rec.Timestamp = parsed
				}
			case "level":
				rec.Level = strings.ToLower(value)
			case "msg", "message":
				rec.Message = value
			default:
				if rec.Attributes == nil {
					rec.Attributes = make(map[string]string)
				}
				rec.Attributes[key] = value
			}
		}
		if d.Err() != nil {
			break
		}
		GetService().Append(rec)
	}
	return len(p), nil
}
