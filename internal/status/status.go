// Package status is the user-facing notification channel: every condition
// the assistant surfaces to the host UI goes through here as a single-line
// message.
package status

import (
	"time"

	"github.com/ghostink-ai/ghostink/internal/pubsub"
)

// Level is the severity of a status message.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

const EventStatusPublished pubsub.EventType = "status_published"

// Message is a status update to be displayed by the host.
type Message struct {
	Level     Level     `json:"level"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Service publishes status messages to any subscribed UI component.
type Service interface {
	pubsub.Subscriber[Message]

	Debug(message string)
	Info(message string)
	Warn(message string)
	Error(message string)
}

type service struct {
	*pubsub.Broker[Message]
}

func NewService() Service {
	return &service{Broker: pubsub.NewBroker[Message]()}
}

func (s *service) Debug(message string) { s.publish(LevelDebug, message) }
func (s *service) Info(message string)  { s.publish(LevelInfo, message) }
func (s *service) Warn(message string)  { s.publish(LevelWarn, message) }
func (s *service) Error(message string) { s.publish(LevelError, message) }

func (s *service) publish(level Level, message string) {
	s.Publish(EventStatusPublished, Message{
		Level:     level,
		Message:   message,
		Timestamp: time.Now(),
	})
}
