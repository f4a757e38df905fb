package logging

import (
	"context"
	"sync"
	"time"

	"github.com/ghostink-ai/ghostink/internal/pubsub"
	"github.com/google/uuid"
)

const EventLogCreated pubsub.EventType = "log_created"

// Log is one captured log record. Records are held in memory so the host
// UI can show a recent-activity view without a storage backend.
type Log struct {
	ID         string
	Timestamp  time.Time
	Level      string
	Message    string
	Attributes map[string]string
}

// Service collects log records and fans them out to subscribers.
type Service interface {
	pubsub.Subscriber[Log]

	Append(log Log)
	List(limit int) []Log
}

// maxRetained bounds the in-memory record buffer; older records are
// discarded first.
const maxRetained = 1000

type service struct {
	*pubsub.Broker[Log]

	mu      sync.Mutex
	records []Log
}

func NewService() Service {
	return &service{Broker: pubsub.NewBroker[Log]()}
}

func (s *service) Append(log Log) {
	if log.ID == "" {
		log.ID = uuid.New().String()
	}
	if log.Timestamp.IsZero() {
		log.Timestamp = time.Now()
	}

	s.mu.Lock()
	s.records = append(s.records, log)
	if len(s.records) > maxRetained {
		s.records = s.records[len(s.records)-maxRetained:]
	}
	s.mu.Unlock()

	s.Publish(EventLogCreated, log)
}

// List returns the most recent records, newest last.
func (s *service) List(limit int) []Log {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.records)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]Log, n)
	copy(out, s.records[len(s.records)-n:])
	return out
}

var (
	global     Service
	globalOnce sync.Once
)

// GetService returns the process-wide log service.
func GetService() Service {
	globalOnce.Do(func() {
		global = NewService()
	})
	return global
}

// Subscribe subscribes to records on the global service.
func Subscribe(ctx context.Context) <-chan pubsub.Event[Log] {
	return GetService().Subscribe(ctx)
}

// List returns recent records from the global service.
func List(limit int) []Log {
	return GetService().List(limit)
}
