package version

// Version is the current application version, overridden at build time
// with -ldflags "-X github.com/ghostink-ai/ghostink/internal/version.Version=...".
var Version = "0.1.0-dev"
