package logging

import (
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"
	"time"
)

// RecoverPanic logs a recovered panic, writes the stack trace to a file
// next to the working directory, and runs the optional cleanup.
func RecoverPanic(name string, cleanup func()) {
	r := recover()
	if r == nil {
		return
	}

	slog.Error("Recovered from panic", "component", name, "panic", r)

	filename := fmt.Sprintf("ghostink-panic-%s-%s.log", name, time.Now().Format("20060102-150405"))
	if file, err := os.Create(filename); err == nil {
		defer file.Close()
		fmt.Fprintf(file, "Panic in %s: %v\n\n", name, r)
		fmt.Fprintf(file, "Time: %s\n\n", time.Now().Format(time.RFC3339))
		fmt.Fprintf(file, "Stack Trace:\n%s\n", debug.Stack())
		slog.Info("Panic details written", "file", filename)
	} else {
		slog.Error("Failed to create panic log file", "file", filename, "error", err)
	}

	if cleanup != nil {
		cleanup()
	}
}
