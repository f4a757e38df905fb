package status

import "sync"

var (
	global     Service
	globalOnce sync.Once
)

// GetService returns the process-wide status service, creating it on
// first use.
func GetService() Service {
	globalOnce.Do(func() {
		global = NewService()
	})
	return global
}

// Debug publishes a debug level message on the global service.
func Debug(message string) { GetService().Debug(message) }

// Info publishes an info level message on the global service.
func Info(message string) { GetService().Info(message) }

// Warn publishes a warning level message on the global service.
func Warn(message string) { GetService().Warn(message) }

// Error publishes an error level message on the global service.
func Error(message string) { GetService().Error(message) }
