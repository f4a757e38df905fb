package main

import (
	"github.com/ghostink-ai/ghostink/cmd"
	"github.com/ghostink-ai/ghostink/internal/logging"
	"github.com/ghostink-ai/ghostink/internal/status"
)

func main() {
	defer logging.RecoverPanic("main", func() {
		status.Error("Application terminated due to unhandled panic")
	})

	cmd.Execute()
}
